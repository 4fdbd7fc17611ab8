package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/lixenwraith/color-cycle/core"
)

const formatWorlds = "worlds"

const secondsPerDay = core.MinutesPerDay * 60

// worldsDoc is the Living Worlds JSON layout: a Canvas Cycle base image plus named
// palettes scheduled by seconds of the day
type worldsDoc struct {
	Base     *canvasDoc              `json:"base"`
	Palettes map[string]worldPalette `json:"palettes"`
	Timeline map[string]string       `json:"timeline"`
}

type worldPalette struct {
	Colors [][]int `json:"colors"`
}

// Worlds decodes Living Worlds JSON with time-of-day palettes
type Worlds struct{}

func (Worlds) Name() string { return "Living Worlds JSON" }

func (Worlds) Detect(data []byte) bool {
	if !(Canvas{}).Detect(data) {
		return false
	}
	return hasTopLevelKey(data, "base")
}

func (Worlds) Decode(r io.Reader) (Source, error) {
	var doc worldsDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Source{}, &core.FormatError{Format: formatWorlds, Reason: "malformed JSON", Err: err}
	}
	if doc.Base == nil {
		return Source{}, core.Errorf(formatWorlds, "missing base image")
	}

	img, err := doc.Base.image(formatWorlds)
	if err != nil {
		return Source{}, err
	}

	for key, name := range doc.Timeline {
		seconds, err := strconv.ParseFloat(key, 64)
		if err != nil {
			return Source{}, &core.FormatError{Format: formatWorlds, Reason: fmt.Sprintf("timeline key %q", key), Err: err}
		}
		if seconds < 0 || seconds >= secondsPerDay {
			return Source{}, &core.FormatError{Format: formatWorlds, Reason: fmt.Sprintf("timeline key %q", key), Err: core.ErrDayPaletteMinute}
		}
		wp, ok := doc.Palettes[name]
		if !ok {
			return Source{}, core.Errorf(formatWorlds, "timeline %q names unknown palette %q", key, name)
		}
		pal, err := parseColors(formatWorlds, wp.Colors)
		if err != nil {
			return Source{}, fmt.Errorf("palette %q: %w", name, err)
		}
		img.DayPalettes = append(img.DayPalettes, core.DayPalette{Minute: seconds / 60, Palette: pal})
	}

	slices.SortFunc(img.DayPalettes, func(a, b core.DayPalette) int {
		switch {
		case a.Minute < b.Minute:
			return -1
		case a.Minute > b.Minute:
			return 1
		}
		return 0
	})

	return Source{Title: doc.Base.Filename, Image: img}, nil
}

// hasTopLevelKey reports whether the JSON object in data has key at its top level
// Values are skipped without being decoded into Go types
func hasTopLevelKey(data []byte, key string) bool {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return false
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return false
		}
		if k, ok := tok.(string); ok && k == key {
			return true
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return false
		}
	}
	return false
}
