package core

import (
	"fmt"
	"math"
	"slices"
)

// MinutesPerDay is the length of the time-of-day cycle
const MinutesPerDay = 1440

// CycleRange is a contiguous block of palette entries rotating among themselves
type CycleRange struct {
	Low     uint8
	High    uint8
	Rate    float64 // Palette entries per virtual second
	Reverse bool
}

// Len returns the number of entries in the range
func (r CycleRange) Len() int {
	return int(r.High) - int(r.Low) + 1
}

// Contains reports whether palette index i lies in the range
func (r CycleRange) Contains(i uint8) bool {
	return i >= r.Low && i <= r.High
}

// DayPalette is a time-of-day keyframe
type DayPalette struct {
	Minute  float64 // [0, MinutesPerDay)
	Palette Palette
}

// Image is the format-independent representation of one animation
// Immutable after Validate succeeds; animation state lives in the virtual clock
type Image struct {
	Width       int
	Height      int
	Pixels      []uint8 // Row-major palette indices, len == Width*Height
	Palette     Palette
	Cycles      []CycleRange
	DayPalettes []DayPalette
}

// At returns the palette index at (x, y)
// Callers guarantee bounds; the hot path performs no checks beyond the slice's own
func (img *Image) At(x, y int) uint8 {
	return img.Pixels[y*img.Width+x]
}

// HasDayPalettes reports whether time-of-day blending applies
func (img *Image) HasDayPalettes() bool {
	return len(img.DayPalettes) > 0
}

// Validate checks every model invariant, returning a *FormatError on the first violation
func (img *Image) Validate() error {
	if img.Width <= 0 || img.Height <= 0 {
		return &FormatError{Format: "image", Reason: fmt.Sprintf("%dx%d", img.Width, img.Height), Err: ErrEmptyImage}
	}
	if len(img.Pixels) != img.Width*img.Height {
		return &FormatError{
			Format: "image",
			Reason: fmt.Sprintf("have %d pixels, want %d", len(img.Pixels), img.Width*img.Height),
			Err:    ErrPixelCount,
		}
	}

	for i, r := range img.Cycles {
		if r.Low > r.High {
			return &FormatError{Format: "image", Reason: fmt.Sprintf("range %d: low %d > high %d", i, r.Low, r.High), Err: ErrRangeBounds}
		}
		if r.Rate < 0 || math.IsNaN(r.Rate) || math.IsInf(r.Rate, 0) {
			return &FormatError{Format: "image", Reason: fmt.Sprintf("range %d: rate %v", i, r.Rate), Err: ErrRangeRate}
		}
	}

	sorted := slices.Clone(img.Cycles)
	slices.SortFunc(sorted, func(a, b CycleRange) int { return int(a.Low) - int(b.Low) })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Low <= sorted[i-1].High {
			return &FormatError{
				Format: "image",
				Reason: fmt.Sprintf("[%d,%d] and [%d,%d]", sorted[i-1].Low, sorted[i-1].High, sorted[i].Low, sorted[i].High),
				Err:    ErrRangeOverlap,
			}
		}
	}

	if n := len(img.DayPalettes); n > 0 {
		if n < 2 {
			return &FormatError{Format: "image", Reason: "1 keyframe", Err: ErrDayPaletteCount}
		}
		for i, kf := range img.DayPalettes {
			if kf.Minute < 0 || kf.Minute >= MinutesPerDay || math.IsNaN(kf.Minute) {
				return &FormatError{Format: "image", Reason: fmt.Sprintf("keyframe %d at minute %v", i, kf.Minute), Err: ErrDayPaletteMinute}
			}
			if i > 0 && kf.Minute <= img.DayPalettes[i-1].Minute {
				return &FormatError{
					Format: "image",
					Reason: fmt.Sprintf("keyframe %d at minute %v follows %v", i, kf.Minute, img.DayPalettes[i-1].Minute),
					Err:    ErrDayPaletteOrder,
				}
			}
		}
	}

	return nil
}
