package cmd

import (
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the schema of the connected database",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, false)
		if err != nil {
			return err
		}
		defer s.Close()

		return printResult(s.seeder.Schema(s.ctx))
	},
}

var tablesCmd = &cobra.Command{
	Use:     "tables",
	Aliases: []string{"collections"},
	Short:   "List the tables or collections of the connected database",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, false)
		if err != nil {
			return err
		}
		defer s.Close()

		return printResult(s.seeder.Tables(s.ctx))
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(tablesCmd)
}
