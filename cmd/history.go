package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"image-browser/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent renames from the journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		if !config.HistoryEnabled {
			return fmt.Errorf("rename history is disabled (cache directory unavailable)")
		}

		ctx := context.Background()
		journal, err := history.Open(ctx, config.HistoryPath)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer journal.Close()

		records, err := journal.Recent(ctx, historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No renames recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tFROM\tTO")
		for _, rec := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				rec.RenamedAt.Format(time.DateTime), rec.OldPath, rec.NewPath)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of records to show")
	rootCmd.AddCommand(historyCmd)
}
