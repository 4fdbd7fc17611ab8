package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/lixenwraith/color-cycle/core"
)

// canvasRateDivisor converts Canvas Cycle rate units to palette entries per second
const canvasRateDivisor = 280

// canvasReverse is the cycle "reverse" value meaning backward rotation
const canvasReverse = 2

const formatCanvas = "canvas"

// canvasDoc is the Canvas Cycle JSON layout
type canvasDoc struct {
	Filename string        `json:"filename"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Colors   [][]int       `json:"colors"`
	Cycles   []canvasCycle `json:"cycles"`
	Pixels   []int         `json:"pixels"`
}

type canvasCycle struct {
	Reverse int     `json:"reverse"`
	Rate    float64 `json:"rate"`
	Low     int     `json:"low"`
	High    int     `json:"high"`
}

// Canvas decodes Canvas Cycle JSON: one palette, one pixel buffer, rotating ranges
type Canvas struct{}

func (Canvas) Name() string { return "Canvas Cycle JSON" }

func (Canvas) Detect(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func (Canvas) Decode(r io.Reader) (Source, error) {
	var doc canvasDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Source{}, &core.FormatError{Format: formatCanvas, Reason: "malformed JSON", Err: err}
	}
	img, err := doc.image(formatCanvas)
	if err != nil {
		return Source{}, err
	}
	return Source{Title: doc.Filename, Image: img}, nil
}

// image converts the document, reporting errors under format
func (d *canvasDoc) image(format string) (*core.Image, error) {
	if d.Width <= 0 || d.Height <= 0 {
		return nil, &core.FormatError{Format: format, Reason: fmt.Sprintf("%dx%d", d.Width, d.Height), Err: core.ErrEmptyImage}
	}
	if len(d.Pixels) != d.Width*d.Height {
		return nil, &core.FormatError{
			Format: format,
			Reason: fmt.Sprintf("have %d pixels, want %d", len(d.Pixels), d.Width*d.Height),
			Err:    core.ErrPixelCount,
		}
	}

	img := &core.Image{
		Width:  d.Width,
		Height: d.Height,
		Pixels: make([]uint8, len(d.Pixels)),
	}

	pal, err := parseColors(format, d.Colors)
	if err != nil {
		return nil, err
	}
	img.Palette = pal

	for i, p := range d.Pixels {
		if p < 0 || p >= core.PaletteSize {
			return nil, core.Errorf(format, "pixel %d: index %d out of range", i, p)
		}
		img.Pixels[i] = uint8(p)
	}

	for i, c := range d.Cycles {
		if c.Low < 0 || c.High >= core.PaletteSize || c.Low > c.High {
			return nil, &core.FormatError{Format: format, Reason: fmt.Sprintf("cycle %d: [%d,%d]", i, c.Low, c.High), Err: core.ErrRangeBounds}
		}
		if c.Rate == 0 || c.Low == c.High {
			log.Printf("loader: %s cycle %d [%d,%d] rate %v inert, dropped", format, i, c.Low, c.High, c.Rate)
			continue
		}
		img.Cycles = append(img.Cycles, core.CycleRange{
			Low:     uint8(c.Low),
			High:    uint8(c.High),
			Rate:    c.Rate / canvasRateDivisor,
			Reverse: c.Reverse == canvasReverse,
		})
	}

	return img, nil
}

// parseColors converts exactly 256 [r,g,b] triples
func parseColors(format string, colors [][]int) (core.Palette, error) {
	var pal core.Palette
	if len(colors) != core.PaletteSize {
		return pal, &core.FormatError{Format: format, Reason: fmt.Sprintf("%d colors", len(colors)), Err: core.ErrPaletteSize}
	}
	for i, c := range colors {
		if len(c) != 3 {
			return pal, core.Errorf(format, "color %d has %d components", i, len(c))
		}
		for _, v := range c {
			if v < 0 || v > 255 {
				return pal, core.Errorf(format, "color %d component %d out of range", i, v)
			}
		}
		pal[i] = core.RGB{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2])}
	}
	return pal, nil
}
