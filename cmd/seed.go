package cmd

import (
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/seedly/internal/seeder"
	"github.com/fatih/color"
	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
)

var (
	seedCount      int
	seedNoProgress bool
)

var seedCmd = &cobra.Command{
	Use:   "seed <table>",
	Short: "Insert generated fake rows into a table or collection",
	Long: `
Generate values for every insertable column of a table and insert them.
Primary keys and columns whose name contains "id" are left to the database.

Examples:
  seedly seed users --count 20 --dialect sqlite --file app.db
  seedly seed orders --count 50 --provider faker`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 10, fmt.Sprintf("Number of rows to insert (1-%d)", seeder.MaxCount))
	seedCmd.Flags().BoolVar(&seedNoProgress, "no-progress", false, "Hide the progress bar")
}

func runSeed(cmd *cobra.Command, args []string) error {
	table := args[0]

	var bar *uiprogress.Bar
	var opts []seeder.Option
	if !seedNoProgress {
		opts = append(opts, seeder.WithProgress(func(column string, done, total int) {
			if bar == nil {
				uiprogress.Start()
				bar = uiprogress.AddBar(total).AppendCompleted().PrependElapsed()
				bar.PrependFunc(func(b *uiprogress.Bar) string {
					return "Generating: "
				})
			}
			bar.Incr()
		}))
	}

	s, err := openSession(cmd, true, opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Printf("🌱 Seeding %s with %d rows\n", table, seedCount)
	fmt.Printf("🎯 Database: %s\n", s.cfg.Database.Type)
	fmt.Println()

	start := time.Now()
	res := s.seeder.Seed(s.ctx, table, seedCount)
	if bar != nil {
		uiprogress.Stop()
		fmt.Println()
	}

	if err := printSuccess(res); err != nil {
		return err
	}
	color.Cyan("⏱  Took %s", time.Since(start).Round(time.Millisecond))
	return nil
}
