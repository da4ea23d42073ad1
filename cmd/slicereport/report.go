package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pdiddy/slicereport/internal/gcode"
	"github.com/pdiddy/slicereport/internal/history"
	"github.com/pdiddy/slicereport/internal/metadata"
	"github.com/pdiddy/slicereport/internal/report"
	"github.com/pdiddy/slicereport/internal/resolve"
	"github.com/pdiddy/slicereport/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report <project.3mf>",
	Short: "Extract project metadata and generate a Markdown report",
	Long: `Report reads the project archive and the matching G-code file, merges
the extracted metadata and estimates, and writes a Markdown report to
the output directory.

When no --gcode is given, the G-code file is searched next to the
project archive. A report is still generated without one; the estimate
section then notes that no G-code data was available.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringP("gcode", "g", "", "path to the companion G-code file (default: auto-detected)")
	reportCmd.Flags().StringP("output", "o", "", "output directory for the report")
	reportCmd.Flags().BoolP("no-input", "q", false, "never prompt; skip the estimate when G-code matching is ambiguous")
	reportCmd.Flags().Bool("export-yaml", false, "also write the report model as YAML next to the report")
	reportCmd.Flags().Bool("no-history", false, "do not record this report in the history database")
	reportCmd.Flags().String("strategy", "", "G-code matching strategy: prefix or fuzzy")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	projectPath := args[0]
	if !strings.EqualFold(filepath.Ext(projectPath), ".3mf") {
		return fmt.Errorf("project file must have a .3mf extension: %s", projectPath)
	}
	if _, err := os.Stat(projectPath); err != nil {
		return fmt.Errorf("project file: %w", err)
	}

	cfg := loadConfig()
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Report.OutputDir = v
	}
	if v, _ := cmd.Flags().GetString("strategy"); v != "" {
		cfg.Resolve.Strategy = types.MatchStrategy(v)
	}
	noInput, _ := cmd.Flags().GetBool("no-input")

	gcodePath, _ := cmd.Flags().GetString("gcode")
	if gcodePath != "" {
		if _, err := os.Stat(gcodePath); err != nil {
			return fmt.Errorf("gcode file: %w", err)
		}
	} else {
		gcodePath = resolveGCode(projectPath, cfg, noInput)
	}

	// The two extractors are independent pure functions of their
	// input paths; run them concurrently and join before merging.
	var (
		wg     sync.WaitGroup
		rec    types.ProjectRecord
		recErr error
		est    types.PrintEstimate
		estErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		rec, recErr = metadata.Extract(projectPath)
	}()
	if gcodePath != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			est, estErr = gcode.NewParser(cfg.GCode).Parse(gcodePath)
		}()
	}
	wg.Wait()

	if recErr != nil {
		return recErr
	}
	hasEstimate := gcodePath != "" && estErr == nil
	if estErr != nil {
		color.Yellow("Could not read G-code file: %v", estErr)
	}

	model := report.Build(rec, est, hasEstimate, gcodePath, cfg.Report.Currency)
	outPath, err := report.Save(model, cfg.Report.OutputDir)
	if err != nil {
		return err
	}

	if exportYAML, _ := cmd.Flags().GetBool("export-yaml"); exportYAML {
		yamlPath := strings.TrimSuffix(outPath, ".md") + ".yaml"
		if err := report.ExportYAML(model, yamlPath); err != nil {
			return err
		}
		fmt.Println("Exported:", yamlPath)
	}

	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory && !cfg.History.Disabled {
		recordHistory(cfg, model, projectPath, gcodePath)
	}

	printSummary(model, outPath)
	return nil
}

// resolveGCode finds the companion G-code next to the project. It
// returns "" when none is available or the choice stays ambiguous; the
// report is then generated without an estimate.
func resolveGCode(projectPath string, cfg types.Config, noInput bool) string {
	candidates, err := resolve.Candidates(projectPath)
	if err != nil || len(candidates) == 0 {
		color.Yellow("No G-code file found next to the project; estimates will not be available.")
		return ""
	}

	if match, ok := resolve.Match(projectPath, candidates, cfg.Resolve.Strategy); ok {
		fmt.Println("G-code detected:", filepath.Base(match))
		return match
	}

	if noInput || !term.IsTerminal(int(os.Stdin.Fd())) {
		color.Yellow("Multiple G-code candidates and no match; pass --gcode to choose one.")
		return ""
	}

	choice, err := resolve.PickInteractive(candidates)
	if err != nil {
		if !errors.Is(err, resolve.ErrPickCancelled) {
			color.Yellow("Picker failed: %v", err)
		}
		return ""
	}
	return choice
}

// recordHistory appends the report to the local history database.
// History failures never fail the report run.
func recordHistory(cfg types.Config, model report.Model, projectPath, gcodePath string) {
	store, err := history.Open(historyDir(cfg))
	if err != nil {
		color.Yellow("History disabled: %v", err)
		return
	}
	defer store.Close()

	err = store.Add(history.Entry{
		Title:       model.Project.Title,
		ProjectPath: projectPath,
		GCodePath:   gcodePath,
		Printer:     model.Project.PrinterModel,
		DurationSec: model.Estimate.DurationSec,
		MassGrams:   model.Estimate.MassGrams,
		Cost:        model.Estimate.Cost,
		GeneratedAt: model.GeneratedAt,
	})
	if err != nil {
		color.Yellow("History not recorded: %v", err)
	}
}

func printSummary(model report.Model, outPath string) {
	color.Green("Report generated: %s", outPath)
	if !model.HasEstimate {
		color.Yellow("No G-code estimate available.")
		return
	}
	est := model.Estimate
	if est.Found.Duration {
		fmt.Println("  Time:  ", est.FormatDuration())
	}
	if est.Found.Mass {
		fmt.Printf("  Weight: %.1fg\n", est.MassGrams)
	}
	if est.Found.Cost {
		fmt.Printf("  Cost:   %s%.2f\n", model.Currency, est.Cost)
	}
	if !est.Confidence {
		color.Yellow("  Some estimate fields were missing or malformed.")
	}
}
