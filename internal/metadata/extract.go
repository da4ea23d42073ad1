// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/slicereport/internal/archive"
	"github.com/pdiddy/slicereport/pkg/types"
)

// Conventional entry paths inside the project container.
const (
	settingsEntry = "Metadata/project_settings.config"
	objectsEntry  = "Metadata/model_settings.config"
	modelEntry    = "3D/3dmodel.model"
	platePrefix   = "Metadata/plate_"
)

// MetadataError is the single fatal extraction failure: the container
// cannot be opened, or both metadata entries are missing. A single
// missing entry degrades to an empty sub-record instead.
type MetadataError struct {
	Path string
	Err  error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("extracting metadata from %s: %v", e.Path, e.Err)
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

// Extract reads the project container at path and returns its
// normalized ProjectRecord. It is a pure function of the path: the
// companion G-code file is never consulted here.
func Extract(path string) (types.ProjectRecord, error) {
	r, err := archive.Open(path)
	if err != nil {
		return types.ProjectRecord{}, &MetadataError{Path: path, Err: err}
	}
	defer r.Close()

	settingsText, settingsErr := r.ReadText(settingsEntry)
	objectsText, objectsErr := r.ReadText(objectsEntry)
	if settingsErr != nil && objectsErr != nil {
		return types.ProjectRecord{}, &MetadataError{
			Path: path,
			Err:  fmt.Errorf("neither %s nor %s is present: %w", settingsEntry, objectsEntry, archive.ErrEntryNotFound),
		}
	}

	rec := types.ProjectRecord{
		SourceFile:     filepath.Base(path),
		PrinterModel:   "Unknown",
		NozzleDiameter: 0.4,
	}

	var doc *SettingsDoc
	if settingsErr == nil {
		doc, err = DecodeSettings(settingsText)
		if err != nil {
			// Corrupt settings degrade like a missing entry; the
			// object list may still be usable.
			rec.SettingsWarnings++
			doc = nil
		}
	}
	if doc != nil {
		rec.Settings = doc.Pairs()
		rec.SettingsWarnings += doc.Warnings
		rec.Materials = materialsFromSettings(doc)
		rec.PrinterModel = doc.First("printer_model", "Unknown")
		rec.NozzleDiameter = doc.Float("nozzle_diameter", 0.4)
	}

	if objectsErr == nil {
		objects, err := decodeObjects(objectsText)
		if err == nil {
			rec.Objects = objects
		}
	}

	title, application := modelMetadata(r)
	rec.Slicer = application
	rec.Title = title
	if rec.Title == "" {
		rec.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	rec.Plates = decodePlates(r, doc)

	return rec, nil
}

// ReadSettings opens the container and decodes only the settings
// entry, for tooling that wants the raw key-value pairs without the
// full record.
func ReadSettings(path string) (*SettingsDoc, error) {
	r, err := archive.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	text, err := r.ReadText(settingsEntry)
	if err != nil {
		return nil, err
	}
	return DecodeSettings(text)
}

// modelMetadata pulls the Title and Application metadata from the main
// model entry. The entry is optional; absence yields empty strings.
func modelMetadata(r *archive.Reader) (title, application string) {
	text, err := r.ReadText(modelEntry)
	if err != nil {
		return "", ""
	}

	var model struct {
		Metadata []struct {
			Name  string `xml:"name,attr"`
			Value string `xml:",chardata"`
		} `xml:"metadata"`
	}
	if err := xml.Unmarshal([]byte(text), &model); err != nil {
		return "", ""
	}

	for _, m := range model.Metadata {
		switch m.Name {
		case "Title":
			title = strings.TrimSpace(m.Value)
		case "Application":
			application = strings.TrimSpace(m.Value)
		}
	}
	return title, application
}

// plateFile is the per-plate JSON summary written by sliced exports.
type plateFile struct {
	BedType         string  `json:"bed_type"`
	NozzleDiameter  float64 `json:"nozzle_diameter"`
	SequentialPrint bool    `json:"is_seq_print"`
	Prediction      int     `json:"prediction"`
	Weight          float64 `json:"weight"`
}

// decodePlates collects Metadata/plate_N.json summaries. Unsliced
// projects have none; a single fallback plate is then derived from the
// model settings so the report always shows a plate count. Unparsable
// plate files are skipped.
func decodePlates(r *archive.Reader, doc *SettingsDoc) []types.Plate {
	var plates []types.Plate

	for _, name := range r.Entries() {
		if !strings.HasPrefix(name, platePrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		num, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, platePrefix), ".json"))
		if err != nil {
			continue
		}
		data, err := r.ReadBytes(name)
		if err != nil {
			continue
		}
		var pf plateFile
		if err := json.Unmarshal(data, &pf); err != nil {
			continue
		}
		plates = append(plates, types.Plate{
			ID:             num,
			Name:           fmt.Sprintf("Plate %d", num),
			BedType:        pf.BedType,
			NozzleDiameter: pf.NozzleDiameter,
			Sequential:     pf.SequentialPrint,
			DurationSec:    pf.Prediction,
			MassGrams:      pf.Weight,
		})
	}
	sort.Slice(plates, func(i, j int) bool { return plates[i].ID < plates[j].ID })

	if len(plates) == 0 && doc != nil {
		plates = append(plates, types.Plate{
			ID:             1,
			Name:           "Plate 1",
			BedType:        doc.First("curr_bed_type", "unknown"),
			NozzleDiameter: doc.Float("nozzle_diameter", 0.4),
			Sequential:     doc.First("print_sequence", "") == "by object",
		})
	}

	return plates
}
