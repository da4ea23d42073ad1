// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndList(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	now := time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC)
	require.NoError(t, s.Add(Entry{
		Title:       "Octopus",
		ProjectPath: "/prints/octopus.3mf",
		GCodePath:   "/prints/octopus.gcode",
		Printer:     "Bambu Lab P1S",
		DurationSec: 9000,
		MassGrams:   45.2,
		Cost:        5.15,
		GeneratedAt: now,
	}))
	require.NoError(t, s.Add(Entry{
		Title:       "Widget",
		ProjectPath: "/prints/widget.3mf",
		GeneratedAt: now.Add(time.Hour),
	}))

	entries, err := s.List(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "Widget", entries[0].Title)
	assert.Equal(t, "Octopus", entries[1].Title)
	assert.Equal(t, 9000, entries[1].DurationSec)
	assert.Equal(t, 45.2, entries[1].MassGrams)
	assert.Equal(t, 5.15, entries[1].Cost)
	assert.True(t, entries[1].GeneratedAt.Equal(now))
}

func TestListLimit(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Add(Entry{Title: "P", ProjectPath: "/p.3mf", GeneratedAt: time.Now()}))
	}

	entries, err := s.List(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestListEmpty(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	entries, err := s.List(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpenReopens(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Add(Entry{Title: "Kept", ProjectPath: "/k.3mf", GeneratedAt: time.Now()}))
	require.NoError(t, s.Close())

	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()

	entries, err := s2.List(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Kept", entries[0].Title)
}
