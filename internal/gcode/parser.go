// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gcode scans a machine-instruction file for the slicer's
// trailing annotation block and returns a PrintEstimate. It never
// parses motion commands: only comment lines are inspected, and the
// scan is bounded to a window at each end of the file so multi-megabyte
// instruction streams stay cheap.
package gcode

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/slicereport/pkg/types"
)

const (
	defaultTailWindow = 64 * 1024
	defaultHeadLines  = 32

	// maxLineSize bounds a single scanned line; annotation lines are
	// short, but raw instruction streams occasionally embed long
	// thumbnail payloads.
	maxLineSize = 1 * 1024 * 1024
)

// Parser scans instruction files for estimate annotations. Build one
// with NewParser; it applies configuration and fills in defaults.
type Parser struct {
	// TailWindow bounds the annotation scan to the final N bytes of
	// the file. Negative scans from the start.
	TailWindow int64

	// HeadLines bounds the scan for the generator header line.
	HeadLines int
}

// NewParser builds a Parser from configuration, applying defaults for
// unset fields.
func NewParser(cfg types.GCodeConfig) *Parser {
	p := &Parser{TailWindow: cfg.TailWindowBytes, HeadLines: cfg.HeadLines}
	if p.TailWindow == 0 {
		p.TailWindow = defaultTailWindow
	}
	if p.HeadLines == 0 {
		p.HeadLines = defaultHeadLines
	}
	return p
}

// Parse scans the instruction file at path with default windows. The
// returned error is non-nil only for I/O failures; a file with no
// recognizable annotations yields a zero estimate with Confidence
// false, which is an expected outcome, not a failure.
func Parse(path string) (types.PrintEstimate, error) {
	return NewParser(types.GCodeConfig{}).Parse(path)
}

// Parse scans the instruction file at path. Re-parsing the same bytes
// yields an equal estimate.
func (p *Parser) Parse(path string) (types.PrintEstimate, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.PrintEstimate{}, fmt.Errorf("opening instruction file: %w", err)
	}
	defer f.Close()

	var est types.PrintEstimate
	est.Generator = p.scanGenerator(f)

	info, err := f.Stat()
	if err != nil {
		return types.PrintEstimate{}, fmt.Errorf("stat instruction file: %w", err)
	}

	offset := int64(0)
	if p.TailWindow > 0 && info.Size() > p.TailWindow {
		offset = info.Size() - p.TailWindow
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return types.PrintEstimate{}, fmt.Errorf("seeking instruction file: %w", err)
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	// A mid-file seek lands inside a line; drop the partial one.
	if offset > 0 {
		sc.Scan()
	}

	invalid := false
	durationRank := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, ";") {
			continue
		}
		// Orca emits multiple annotations per line, ';'-separated.
		for _, seg := range strings.Split(strings.TrimPrefix(line, ";"), ";") {
			key, value, ok := splitAnnotation(seg)
			if !ok {
				continue
			}
			if !applyAnnotation(&est, &durationRank, key, value) {
				invalid = true
			}
		}
	}
	if err := sc.Err(); err != nil {
		return types.PrintEstimate{}, fmt.Errorf("scanning instruction file: %w", err)
	}

	est.Confidence = est.Found.Complete() && !invalid
	return est, nil
}

// scanGenerator reads the first HeadLines lines for the slicer
// identity comment and leaves the result empty when none is found.
func (p *Parser) scanGenerator(f *os.File) string {
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for i := 0; i < p.HeadLines && sc.Scan(); i++ {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, ";") {
			continue
		}
		body := strings.TrimSpace(strings.TrimPrefix(line, ";"))
		lower := strings.ToLower(body)
		if idx := strings.Index(lower, "generated by "); idx >= 0 {
			gen := body[idx+len("generated by "):]
			if on := strings.Index(gen, " on "); on >= 0 {
				gen = gen[:on]
			}
			return strings.TrimSpace(gen)
		}
	}
	return ""
}

// splitAnnotation splits one annotation segment into key and value.
// Both "key = value" and "key: value" forms occur across dialects; '='
// wins when present because duration values may contain ':'.
func splitAnnotation(seg string) (key, value string, ok bool) {
	sep := strings.Index(seg, "=")
	if sep < 0 {
		sep = strings.Index(seg, ":")
	}
	if sep < 0 {
		return "", "", false
	}
	key = strings.ToLower(strings.TrimSpace(seg[:sep]))
	value = strings.TrimSpace(seg[sep+1:])
	if key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}

// applyAnnotation updates est for one recognized key. The return is
// false when the key was recognized but its value did not parse; such
// fields stay absent and clear the record's confidence. Unrecognized
// keys are ignored and do not affect confidence.
func applyAnnotation(est *types.PrintEstimate, durationRank *int, key, value string) bool {
	if rank := durationKeyRank(key); rank > 0 {
		secs, err := parseDuration(value)
		if err != nil {
			return false
		}
		if rank > *durationRank {
			*durationRank = rank
			est.DurationSec = secs
			est.DurationText = value
			est.Found.Duration = true
		}
		return true
	}

	switch {
	case strings.Contains(key, "filament used [g]") || strings.Contains(key, "filament weight [g]"):
		slots, total, err := parseFloatList(value)
		if err != nil {
			return false
		}
		est.MassGrams = total
		est.MassPerSlot = slots
		est.Found.Mass = true

	case strings.Contains(key, "filament used [mm]") || strings.Contains(key, "filament length [mm]"):
		slots, total, err := parseFloatList(value)
		if err != nil {
			return false
		}
		est.LengthMM = total
		est.LengthPerSlot = slots
		est.Found.Length = true

	case strings.Contains(key, "filament cost"):
		slots, total, err := parseFloatList(value)
		if err != nil {
			return false
		}
		est.Cost = total
		est.CostPerSlot = slots
		est.Found.Cost = true

	case strings.Contains(key, "total layer number") || strings.Contains(key, "total layers count"):
		n, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		est.Layers = n

	case strings.Contains(key, "max_z_height"):
		z, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return false
		}
		est.MaxZHeight = z
	}

	return true
}

// durationKeyRank ranks competing duration annotations: the total
// estimate (including heat-up) beats the plain estimate, which beats
// the model-only time. Unrelated keys rank 0.
func durationKeyRank(key string) int {
	switch {
	case strings.Contains(key, "total estimated time"):
		return 3
	case strings.Contains(key, "estimated printing time"):
		return 2
	case strings.Contains(key, "model printing time"):
		return 1
	default:
		return 0
	}
}

var durationPart = regexp.MustCompile(`(\d+)\s*([dhms])`)

// parseDuration converts slicer duration strings like "2h 30m" or
// "1d 2h 3m 4s" to seconds. Any subset of units is accepted; a string
// with no unit tokens is an error.
func parseDuration(s string) (int, error) {
	matches := durationPart.FindAllStringSubmatch(strings.ToLower(s), -1)
	if len(matches) == 0 {
		return 0, fmt.Errorf("unrecognized duration %q", s)
	}
	total := 0
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, fmt.Errorf("unrecognized duration %q", s)
		}
		switch m[2] {
		case "d":
			total += n * 86400
		case "h":
			total += n * 3600
		case "m":
			total += n * 60
		case "s":
			total += n
		}
	}
	return total, nil
}

// parseFloatList parses a value that is either a single number or a
// comma-separated per-extruder list. It returns the per-slot map
// (1-based, in list order) and the sum.
func parseFloatList(value string) (map[int]float64, float64, error) {
	parts := strings.Split(value, ",")
	slots := make(map[int]float64, len(parts))
	total := 0.0
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("unrecognized number %q", part)
		}
		slots[i+1] = f
		total += f
	}
	if len(slots) == 0 {
		return nil, 0, fmt.Errorf("empty value")
	}
	return slots, total, nil
}
