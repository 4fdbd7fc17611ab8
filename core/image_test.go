package core

import (
	"errors"
	"testing"
)

func validImage() *Image {
	img := &Image{
		Width:  4,
		Height: 2,
		Pixels: []uint8{0, 1, 2, 3, 0, 1, 2, 3},
	}
	for i := range img.Palette {
		img.Palette[i] = Gray(uint8(i))
	}
	return img
}

func TestValidate_Valid(t *testing.T) {
	img := validImage()
	img.Cycles = []CycleRange{{Low: 0, High: 3, Rate: 1}, {Low: 10, High: 20, Rate: 2.5, Reverse: true}}
	if err := img.Validate(); err != nil {
		t.Fatalf("Expected valid image, got %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	var black, white Palette
	for i := range white {
		white[i] = RGBWhite
	}

	tests := []struct {
		name   string
		modify func(img *Image)
		want   error
	}{
		{"zero width", func(img *Image) { img.Width = 0 }, ErrEmptyImage},
		{"short pixels", func(img *Image) { img.Pixels = img.Pixels[:7] }, ErrPixelCount},
		{"inverted range", func(img *Image) { img.Cycles = []CycleRange{{Low: 5, High: 4, Rate: 1}} }, ErrRangeBounds},
		{"negative rate", func(img *Image) { img.Cycles = []CycleRange{{Low: 0, High: 4, Rate: -1}} }, ErrRangeRate},
		{"overlap", func(img *Image) {
			img.Cycles = []CycleRange{{Low: 10, High: 20, Rate: 1}, {Low: 0, High: 10, Rate: 1}}
		}, ErrRangeOverlap},
		{"single keyframe", func(img *Image) {
			img.DayPalettes = []DayPalette{{Minute: 0, Palette: black}}
		}, ErrDayPaletteCount},
		{"unordered keyframes", func(img *Image) {
			img.DayPalettes = []DayPalette{{Minute: 720, Palette: black}, {Minute: 720, Palette: white}}
		}, ErrDayPaletteOrder},
		{"keyframe past midnight", func(img *Image) {
			img.DayPalettes = []DayPalette{{Minute: 0, Palette: black}, {Minute: 1440, Palette: white}}
		}, ErrDayPaletteMinute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := validImage()
			tt.modify(img)
			err := img.Validate()
			if !errors.Is(err, tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, err)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Errorf("Expected *FormatError, got %T", err)
			}
		})
	}
}

func TestCycleRange_LenContains(t *testing.T) {
	r := CycleRange{Low: 16, High: 31}
	if r.Len() != 16 {
		t.Errorf("Expected len 16, got %d", r.Len())
	}
	if !r.Contains(16) || !r.Contains(31) || r.Contains(32) || r.Contains(15) {
		t.Error("Contains does not match inclusive bounds")
	}
}

func TestFormatError_Message(t *testing.T) {
	err := Errorf("ilbm", "chunk %q truncated", "BODY")
	if got, want := err.Error(), `ilbm: chunk "BODY" truncated`; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
