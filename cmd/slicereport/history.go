package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/slicereport/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently generated reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		store, err := history.Open(historyDir(cfg))
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := store.List(limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No reports recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tTITLE\tPRINTER\tTIME\tWEIGHT\tCOST")
		for _, e := range entries {
			duration := "—"
			if e.DurationSec > 0 {
				duration = fmt.Sprintf("%dh %dm", e.DurationSec/3600, e.DurationSec%3600/60)
			}
			weight := "—"
			if e.MassGrams > 0 {
				weight = fmt.Sprintf("%.1fg", e.MassGrams)
			}
			cost := "—"
			if e.Cost > 0 {
				cost = fmt.Sprintf("%s%.2f", cfg.Report.Currency, e.Cost)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				e.GeneratedAt.Local().Format("2006-01-02 15:04"),
				e.Title, e.Printer, duration, weight, cost)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries to list")

	rootCmd.AddCommand(historyCmd)
}
