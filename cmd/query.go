package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Lumos-Labs-HQ/seedly/internal/export"
	"github.com/spf13/cobra"
)

var (
	queryFile   string
	queryFormat string
)

var queryCmd = &cobra.Command{
	Use:   "query [query]",
	Short: "Run a query against the connected database",
	Long: `
Run SQL against a relational database, or a JSON command against MongoDB.

Examples:
  seedly query "SELECT * FROM users LIMIT 5"
  seedly query --from-file queries/cleanup.sql
  seedly query "SELECT id, email FROM users" --format table
  seedly query '{"collection":"users","action":"find","filter":{"age":{"$gt":30}}}'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVar(&queryFile, "from-file", "", "Read the query from a file")
	queryCmd.Flags().StringVarP(&queryFormat, "format", "o", export.FormatJSON, fmt.Sprintf("Output format %v", export.Formats))
}

func runQuery(cmd *cobra.Command, args []string) error {
	var query string
	switch {
	case queryFile != "":
		content, err := os.ReadFile(queryFile)
		if err != nil {
			return fmt.Errorf("failed to read query file: %w", err)
		}
		query = string(content)
	case len(args) == 1:
		query = args[0]
	default:
		return fmt.Errorf("a query argument or --from-file is required")
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return fmt.Errorf("query is empty")
	}

	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	res := s.seeder.Query(s.ctx, query)
	if res.IsError {
		return fmt.Errorf("%s", res.Text())
	}
	return export.Write(os.Stdout, queryFormat, res.Text())
}
