// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSettingsPreservesOrder(t *testing.T) {
	doc, err := DecodeSettings(`{
		"printer_model": "Bambu Lab P1S",
		"layer_height": "0.2",
		"nozzle_temperature": ["220", "210"],
		"enable_support": "0"
	}`)
	require.NoError(t, err)

	pairs := doc.Pairs()
	require.Len(t, pairs, 4)
	assert.Equal(t, "printer_model", pairs[0].Key)
	assert.Equal(t, "layer_height", pairs[1].Key)
	assert.Equal(t, "nozzle_temperature", pairs[2].Key)
	assert.Equal(t, "enable_support", pairs[3].Key)
	assert.Equal(t, "220,210", pairs[2].Value)
	assert.Zero(t, doc.Warnings)
}

func TestDecodeSettingsAccessors(t *testing.T) {
	doc, err := DecodeSettings(`{
		"nozzle_diameter": ["0.4"],
		"wall_loops": 2,
		"sparse_infill_density": "15%",
		"enable_support": true,
		"filament_type": ["PLA", "PETG"]
	}`)
	require.NoError(t, err)

	assert.Equal(t, 0.4, doc.Float("nozzle_diameter", 0))
	assert.Equal(t, 2, doc.Int("wall_loops", 0))
	assert.Equal(t, "15%", doc.First("sparse_infill_density", ""))
	assert.Equal(t, "true", doc.First("enable_support", ""))
	assert.Equal(t, []string{"PLA", "PETG"}, doc.Strings("filament_type"))

	// Defaults for absent or non-numeric keys.
	assert.Equal(t, 0.2, doc.Float("layer_height", 0.2))
	assert.Equal(t, 3, doc.Int("sparse_infill_density", 3))
	assert.Nil(t, doc.Strings("missing"))
}

func TestDecodeSettingsSkipsMalformedValues(t *testing.T) {
	// Nested objects and mixed arrays are outside the settings
	// contract; the rest of the document must survive them.
	doc, err := DecodeSettings(`{
		"layer_height": "0.2",
		"different_settings_to_system": {"nested": true},
		"mixed": ["ok", {"bad": 1}],
		"travel_speed": "350"
	}`)
	require.NoError(t, err)

	assert.Equal(t, 2, doc.Len())
	assert.Equal(t, "0.2", doc.First("layer_height", ""))
	assert.Equal(t, "350", doc.First("travel_speed", ""))
	assert.Equal(t, 2, doc.Warnings)
}

func TestDecodeSettingsTruncatedDocument(t *testing.T) {
	doc, err := DecodeSettings(`{"layer_height": "0.2", "travel_speed": `)
	require.NoError(t, err)

	assert.Equal(t, "0.2", doc.First("layer_height", ""))
	assert.Equal(t, 1, doc.Warnings)
}

func TestDecodeSettingsNotAnObject(t *testing.T) {
	_, err := DecodeSettings(`["not", "an", "object"]`)
	assert.Error(t, err)

	_, err = DecodeSettings(`garbage`)
	assert.Error(t, err)
}

func TestUnitFor(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"nozzle_temperature", "°C"},
		{"hot_plate_temp", "°C"},
		{"outer_wall_speed", "mm/s"},
		{"default_acceleration", "mm/s²"},
		{"layer_height", "mm"},
		{"nozzle_diameter", "mm"},
		{"filament_density", "g/cm³"},
		{"sparse_infill_pattern", ""},
		{"printer_model", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, unitFor(tt.key), tt.key)
	}
}
