// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/slicereport/pkg/types"
)

const modelSettingsXML = `<?xml version="1.0" encoding="UTF-8"?>
<config>
  <object id="1">
    <metadata key="name" value="Body"/>
    <metadata key="extruder" value="1"/>
    <metadata key="source_file" value="/home/user/models/body.stl"/>
  </object>
  <object id="2">
    <metadata key="name" value="Lid"/>
    <metadata key="extruder" value="2"/>
  </object>
  <object id="3">
    <metadata key="name" value="Logo"/>
  </object>
  <plate>
    <metadata key="plater_id" value="1"/>
  </plate>
</config>`

func TestDecodeObjects(t *testing.T) {
	objects, err := decodeObjects(modelSettingsXML)
	require.NoError(t, err)
	require.Len(t, objects, 3)

	assert.Equal(t, types.ProjectObject{ID: 1, Name: "Body", Extruder: 1, SourceFile: "body.stl"}, objects[0])
	assert.Equal(t, types.ProjectObject{ID: 2, Name: "Lid", Extruder: 2}, objects[1])

	// No extruder declaration: slot 0, unassigned.
	assert.Equal(t, 0, objects[2].Extruder)
}

func TestDecodeObjectsMalformedExtruder(t *testing.T) {
	objects, err := decodeObjects(`<config>
		<object id="7"><metadata key="extruder" value="two"/></object>
	</config>`)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, 0, objects[0].Extruder)
}

func TestDecodeObjectsInvalidXML(t *testing.T) {
	_, err := decodeObjects(`<config><object`)
	assert.Error(t, err)
}

func TestMaterialsFromSettings(t *testing.T) {
	doc, err := DecodeSettings(`{
		"filament_type": ["PLA", "PETG"],
		"filament_colour": ["#000000", "E5E5E5"],
		"filament_vendor": ["Generic"],
		"filament_density": ["1.24", "1.27"],
		"filament_cost": ["89.90", "112.50"]
	}`)
	require.NoError(t, err)

	materials := materialsFromSettings(doc)
	require.Len(t, materials, 2)

	assert.Equal(t, types.Material{
		Slot: 1, Type: "PLA", Color: "#000000", Vendor: "Generic",
		Density: 1.24, CostPerKg: 89.90,
	}, materials[0])

	// Shorter arrays fall back to defaults; bare hex gains a '#'.
	assert.Equal(t, types.Material{
		Slot: 2, Type: "PETG", Color: "#E5E5E5", Vendor: "Unknown",
		Density: 1.27, CostPerKg: 112.50,
	}, materials[1])
}

func TestMaterialsFromSettingsEmptyCatalog(t *testing.T) {
	doc, err := DecodeSettings(`{"layer_height": "0.2"}`)
	require.NoError(t, err)
	assert.Nil(t, materialsFromSettings(doc))
	assert.Nil(t, materialsFromSettings(nil))
}

func TestNormalizeColor(t *testing.T) {
	assert.Equal(t, "#FF8800", normalizeColor("#ff8800"))
	assert.Equal(t, "#FF8800", normalizeColor("ff8800"))
	assert.Equal(t, "not-a-color", normalizeColor("not-a-color"))
	assert.Equal(t, "", normalizeColor(""))
}
