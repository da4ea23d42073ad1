// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MatchStrategy selects how the resolver matches a G-code candidate to
// the project file name.
type MatchStrategy string

const (
	// MatchPrefix compares file stems by prefix, the slicer's own
	// export naming convention.
	MatchPrefix MatchStrategy = "prefix"

	// MatchFuzzy matches normalized stems by substring in either
	// direction.
	MatchFuzzy MatchStrategy = "fuzzy"
)

// ReportConfig holds settings for report generation.
type ReportConfig struct {
	// OutputDir is the directory reports are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Currency is the symbol prefixed to cost values (default "$").
	Currency string `json:"currency" yaml:"currency"`
}

// ResolveConfig holds settings for companion G-code resolution.
type ResolveConfig struct {
	// Strategy selects the matching heuristic: prefix or fuzzy.
	Strategy MatchStrategy `json:"strategy" yaml:"strategy"`
}

// GCodeConfig holds settings for the instruction-stream parser.
type GCodeConfig struct {
	// TailWindowBytes bounds the scan for the trailing annotation
	// block (default 64 KiB). Negative scans the whole file.
	TailWindowBytes int64 `json:"tail_window_bytes" yaml:"tail_window_bytes"`

	// HeadLines bounds the scan for the generator header line
	// (default 32).
	HeadLines int `json:"head_lines" yaml:"head_lines"`
}

// HistoryConfig holds settings for the report history store.
type HistoryConfig struct {
	// Dir is the directory holding history.db. Empty selects
	// ~/.config/slicereport.
	Dir string `json:"dir" yaml:"dir"`

	// Disabled turns off history recording entirely.
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// Config groups all tool configuration.
type Config struct {
	Report  ReportConfig  `json:"report" yaml:"report"`
	Resolve ResolveConfig `json:"resolve" yaml:"resolve"`
	GCode   GCodeConfig   `json:"gcode" yaml:"gcode"`
	History HistoryConfig `json:"history" yaml:"history"`
}

// DefaultConfig returns the configuration used when no config file or
// environment overrides are present.
func DefaultConfig() Config {
	return Config{
		Report: ReportConfig{
			OutputDir: "output",
			Currency:  "$",
		},
		Resolve: ResolveConfig{
			Strategy: MatchPrefix,
		},
		GCode: GCodeConfig{
			TailWindowBytes: 64 * 1024,
			HeadLines:       32,
		},
	}
}
