// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the slicereport CLI: it extracts
// print-preparation metadata from a 3MF project archive and its
// companion G-code file, and renders a Markdown summary.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/slicereport/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the slicereport CLI.
var rootCmd = &cobra.Command{
	Use:   "slicereport",
	Short: "Print-preparation reports from 3MF projects and G-code",
	Long: `slicereport reads a slicer project archive (.3mf) and, when available,
the matching G-code file, and generates a compact Markdown report:
print time, filament usage and cost, materials, settings, and objects.

The G-code file is auto-detected next to the project; when several
candidates exist an interactive picker is shown.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./slicereport.yaml or ~/.config/slicereport/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("slicereport")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "slicereport"))
		}
	}

	viper.SetEnvPrefix("SLICEREPORT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig merges defaults with config-file and environment values.
func loadConfig() types.Config {
	cfg := types.DefaultConfig()
	if v := viper.GetString("report.output_dir"); v != "" {
		cfg.Report.OutputDir = v
	}
	if v := viper.GetString("report.currency"); v != "" {
		cfg.Report.Currency = v
	}
	if v := viper.GetString("resolve.strategy"); v != "" {
		cfg.Resolve.Strategy = types.MatchStrategy(v)
	}
	if v := viper.GetInt64("gcode.tail_window_bytes"); v > 0 {
		cfg.GCode.TailWindowBytes = v
	}
	if v := viper.GetInt("gcode.head_lines"); v > 0 {
		cfg.GCode.HeadLines = v
	}
	cfg.History.Dir = viper.GetString("history.dir")
	cfg.History.Disabled = viper.GetBool("history.disabled")
	return cfg
}

// historyDir resolves the history database directory, defaulting to
// the user config directory.
func historyDir(cfg types.Config) string {
	if cfg.History.Dir != "" {
		return cfg.History.Dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".slicereport"
	}
	return filepath.Join(home, ".config", "slicereport")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
