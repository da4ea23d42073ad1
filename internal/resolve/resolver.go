// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve locates the companion G-code file for a project
// archive. The core extractors never search the filesystem; this
// package and the CLI own that policy, including interactive
// disambiguation when several candidates exist.
package resolve

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/slicereport/pkg/types"
)

// Candidates returns the G-code files in the project's directory,
// sorted by name.
func Candidates(projectPath string) ([]string, error) {
	pattern := filepath.Join(filepath.Dir(projectPath), "*.gcode")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Match picks the candidate whose name matches the project file under
// the given strategy. It returns false when no candidate matches
// uniquely enough to pick without asking the user; zero candidates
// always return false, a single candidate always wins.
func Match(projectPath string, candidates []string, strategy types.MatchStrategy) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	if len(candidates) == 1 {
		return candidates[0], true
	}

	project := strings.ToLower(stem(projectPath))
	for _, cand := range candidates {
		name := strings.ToLower(stem(cand))
		switch strategy {
		case types.MatchFuzzy:
			if fuzzyMatch(project, name) {
				return cand, true
			}
		default:
			if prefixMatch(project, name) {
				return cand, true
			}
		}
	}
	return "", false
}

// prefixMatch is the slicer export convention: the G-code name starts
// with the project stem, or the project stem starts with the G-code
// name's first underscore-delimited token.
func prefixMatch(project, candidate string) bool {
	if strings.HasPrefix(candidate, project) {
		return true
	}
	first, _, _ := strings.Cut(candidate, "_")
	return first != "" && strings.HasPrefix(project, first)
}

// fuzzyMatch compares normalized stems by substring in either direction.
func fuzzyMatch(project, candidate string) bool {
	p := normalize(project)
	c := normalize(candidate)
	if p == "" || c == "" {
		return false
	}
	return strings.Contains(c, p) || strings.Contains(p, c)
}

// normalize strips every non-alphanumeric rune.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
