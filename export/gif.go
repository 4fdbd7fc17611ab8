// Package export renders an animation offline to an animated GIF.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"math"

	"golang.org/x/image/draw"

	"github.com/lixenwraith/color-cycle/core"
	"github.com/lixenwraith/color-cycle/cycle"
	"github.com/lixenwraith/color-cycle/render"
)

// MaxScale bounds upscaling so a frame stays within GIF dimensions
const MaxScale = 16

var ErrOptions = errors.New("invalid export options")

// Options control an export
type Options struct {
	Seconds       float64 // Duration of the rendered clip
	FPS           int
	Blend         bool
	Scale         int     // Integer upscale factor, 1 for none
	Start         float64 // Virtual time of the first frame, seconds
	ColumnReverse bool
}

func DefaultOptions() Options {
	return Options{Seconds: 10, FPS: 20, Scale: 1}
}

func (o Options) validate(img *core.Image) error {
	switch {
	case o.FPS < 1 || o.FPS > 100:
		return fmt.Errorf("%w: fps %d outside [1, 100]", ErrOptions, o.FPS)
	case o.Seconds <= 0 || math.IsNaN(o.Seconds) || math.IsInf(o.Seconds, 0):
		return fmt.Errorf("%w: seconds %v", ErrOptions, o.Seconds)
	case o.Scale < 1 || o.Scale > MaxScale:
		return fmt.Errorf("%w: scale %d outside [1, %d]", ErrOptions, o.Scale, MaxScale)
	case img.Width*o.Scale > math.MaxUint16 || img.Height*o.Scale > math.MaxUint16:
		return fmt.Errorf("%w: %dx%d scaled by %d exceeds GIF limits", ErrOptions, img.Width, img.Height, o.Scale)
	}
	return nil
}

// Frames is the number of frames an export produces
func (o Options) Frames() int {
	return max(1, int(math.Round(o.Seconds*float64(o.FPS))))
}

// WriteGIF renders opts.Frames() frames sampled at Start + i/FPS and encodes them looping forever
// Each frame carries its effective palette as the color table, so pixels stay exact indices
func WriteGIF(w io.Writer, img *core.Image, opts Options) error {
	if err := opts.validate(img); err != nil {
		return err
	}

	plane := indexPlane(img, opts.ColumnReverse, opts.Scale)
	n := opts.Frames()
	delay := max(1, int(math.Round(100/float64(opts.FPS))))

	anim := &gif.GIF{
		Image:     make([]*image.Paletted, 0, n),
		Delay:     make([]int, 0, n),
		LoopCount: 0,
	}

	var pal core.Palette
	for i := 0; i < n; i++ {
		vt := opts.Start + float64(i)/float64(opts.FPS)
		cycle.Compute(&pal, img, vt, opts.Blend)
		anim.Image = append(anim.Image, &image.Paletted{
			Pix:     plane.Pix,
			Stride:  plane.Stride,
			Rect:    plane.Rect,
			Palette: colorPalette(&pal),
		})
		anim.Delay = append(anim.Delay, delay)
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

// indexPlane lays out palette indices as gray levels, optionally column-reversed and upscaled
// Nearest-neighbour scaling between gray images copies levels exactly
func indexPlane(img *core.Image, reverse bool, scale int) *image.Gray {
	src := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+img.Width]
		for x := range row {
			px := x
			if reverse {
				px = render.ReverseColumn(x, img.Width)
			}
			row[x] = img.At(px, y)
		}
	}
	if scale == 1 {
		return src
	}

	dst := image.NewGray(image.Rect(0, 0, img.Width*scale, img.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func colorPalette(p *core.Palette) color.Palette {
	out := make(color.Palette, len(p))
	for i, c := range p {
		out[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	}
	return out
}
