// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/slicereport/pkg/types"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

func TestCandidates(t *testing.T) {
	dir := t.TempDir()
	b := touch(t, dir, "b_print.gcode")
	a := touch(t, dir, "a_print.gcode")
	touch(t, dir, "notes.txt")
	project := touch(t, dir, "widget.3mf")

	got, err := Candidates(project)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, got)
}

func TestCandidatesEmptyDir(t *testing.T) {
	project := touch(t, t.TempDir(), "widget.3mf")
	got, err := Candidates(project)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMatchSingleCandidate(t *testing.T) {
	got, ok := Match("/p/widget.3mf", []string{"/p/anything.gcode"}, types.MatchPrefix)
	assert.True(t, ok)
	assert.Equal(t, "/p/anything.gcode", got)
}

func TestMatchPrefix(t *testing.T) {
	candidates := []string{
		"/p/benchy_PLA_2h.gcode",
		"/p/widget_PLA_4h30m.gcode",
	}
	got, ok := Match("/p/widget.3mf", candidates, types.MatchPrefix)
	assert.True(t, ok)
	assert.Equal(t, "/p/widget_PLA_4h30m.gcode", got)
}

func TestMatchPrefixFirstToken(t *testing.T) {
	// The G-code stem's first token prefixes the project name.
	candidates := []string{
		"/p/other_export.gcode",
		"/p/widget_v2.gcode",
	}
	got, ok := Match("/p/widget-final.3mf", candidates, types.MatchPrefix)
	assert.True(t, ok)
	assert.Equal(t, "/p/widget_v2.gcode", got)
}

func TestMatchAmbiguous(t *testing.T) {
	candidates := []string{
		"/p/benchy.gcode",
		"/p/calicat.gcode",
	}
	_, ok := Match("/p/widget.3mf", candidates, types.MatchPrefix)
	assert.False(t, ok)

	_, ok = Match("/p/widget.3mf", nil, types.MatchPrefix)
	assert.False(t, ok)
}

func TestMatchFuzzy(t *testing.T) {
	candidates := []string{
		"/p/benchy.gcode",
		"/p/The-Widget (final).gcode",
	}
	_, ok := Match("/p/widget.3mf", candidates, types.MatchPrefix)
	assert.False(t, ok)

	got, ok := Match("/p/widget.3mf", candidates, types.MatchFuzzy)
	assert.True(t, ok)
	assert.Equal(t, "/p/The-Widget (final).gcode", got)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "thewidgetfinal", normalize("the-widget (final)"))
	assert.Equal(t, "", normalize("---"))
}
