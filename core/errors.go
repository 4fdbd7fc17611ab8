package core

import (
	"errors"
	"fmt"
)

// Validation errors for canonical images
var (
	ErrEmptyImage       = errors.New("image has zero width or height")
	ErrPixelCount       = errors.New("pixel count does not match width*height")
	ErrPaletteSize      = errors.New("palette does not have 256 entries")
	ErrRangeBounds      = errors.New("cycle range bounds out of order or outside [0,255]")
	ErrRangeRate        = errors.New("cycle range rate is negative or not finite")
	ErrRangeOverlap     = errors.New("cycle ranges overlap")
	ErrDayPaletteCount  = errors.New("time-of-day blending needs at least 2 keyframes")
	ErrDayPaletteOrder  = errors.New("time-of-day keyframes are not strictly increasing")
	ErrDayPaletteMinute = errors.New("time-of-day keyframe outside [0,1440) minutes")
)

// FormatError reports malformed or invalid source data
// Format names the source dialect ("canvas", "worlds", "ilbm", or "image" for model checks)
type FormatError struct {
	Format string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	switch {
	case e.Reason != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Format, e.Reason, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Format, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Format, e.Reason)
	}
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Errorf builds a FormatError with a formatted reason
func Errorf(format string, reason string, args ...any) *FormatError {
	return &FormatError{Format: format, Reason: fmt.Sprintf(reason, args...)}
}
