package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Lumos-Labs-HQ/seedly/internal/tools"
	"github.com/spf13/cobra"
)

var toolArgs string

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool definitions exposed to agent runtimes",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tools.Definitions())
	},
}

var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Call a tool with JSON arguments",
	Long: `
Call one of the tools listed by "seedly tools".

Examples:
  seedly call list-tables
  seedly call seed-table --args '{"tableName":"users","count":5}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		callArgs := map[string]interface{}{}
		if toolArgs != "" {
			if err := json.Unmarshal([]byte(toolArgs), &callArgs); err != nil {
				return fmt.Errorf("invalid --args: %w", err)
			}
		}

		s, err := openSession(cmd, args[0] == tools.ToolSeedTable)
		if err != nil {
			return err
		}
		defer s.Close()

		return printResult(tools.NewRegistry(s.seeder).Call(s.ctx, args[0], callArgs))
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(callCmd)
	callCmd.Flags().StringVar(&toolArgs, "args", "", "Tool arguments as a JSON object")
}
