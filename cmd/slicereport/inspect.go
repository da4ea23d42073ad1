package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/slicereport/internal/metadata"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <project.3mf>",
	Short: "Dump the raw print settings of a project archive",
	Long: `Inspect lists every key-value pair of the project's settings entry in
source order, including keys the report does not show. Useful for
finding the vendor key behind a report field or diffing two exports.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := metadata.ReadSettings(args[0])
		if err != nil {
			return err
		}

		filter, _ := cmd.Flags().GetString("filter")
		filter = strings.ToLower(filter)

		shown := 0
		for _, pair := range doc.Pairs() {
			if filter != "" && !strings.Contains(strings.ToLower(pair.Key), filter) {
				continue
			}
			fmt.Printf("%s = %s\n", pair.Key, pair.Value)
			shown++
		}
		fmt.Printf("\n%d key(s)", shown)
		if filter != "" {
			fmt.Printf(" matching %q (of %d total)", filter, doc.Len())
		}
		fmt.Println()
		if doc.Warnings > 0 {
			fmt.Printf("%d value(s) could not be read\n", doc.Warnings)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().String("filter", "", "only show keys containing this substring")

	rootCmd.AddCommand(inspectCmd)
}
