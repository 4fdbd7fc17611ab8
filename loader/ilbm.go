package loader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/lixenwraith/color-cycle/core"
)

const formatILBM = "ilbm"

// BMHD compression and masking values
const (
	compressionNone     = 0
	compressionByteRun1 = 1
	maskHasMask         = 1
)

// CRNG flags and rate units: a rate of 16384 is 60 steps per second
const (
	crngActive   = 1
	crngReverse  = 2
	crngRateUnit = 16384
	crngRateBase = 60
)

var errTruncated = errors.New("truncated data")

// maxByteRun1Expansion bounds unpacked size: a 2-byte replicate run yields 128 bytes
const maxByteRun1Expansion = 64

// bitmapHeader is the BMHD chunk
type bitmapHeader struct {
	Width       uint16
	Height      uint16
	X, Y        int16
	Planes      uint8
	Masking     uint8
	Compression uint8
	Pad         uint8
	Transparent uint16
	XAspect     uint8
	YAspect     uint8
	PageWidth   int16
	PageHeight  int16
}

// colorRange is the Deluxe Paint CRNG chunk
type colorRange struct {
	Pad   int16
	Rate  int16
	Flags int16
	Low   uint8
	High  uint8
}

// cycleTiming is the Graphicraft CCRT chunk
type cycleTiming struct {
	Direction int16
	Low       uint8
	High      uint8
	Seconds   int32
	Micros    int32
	Pad       int16
}

// ILBM decodes IFF ILBM (planar) and PBM (chunky) images with color ranges
type ILBM struct{}

func (ILBM) Name() string { return "IFF ILBM" }

func (ILBM) Detect(data []byte) bool {
	if len(data) < 12 || string(data[:4]) != "FORM" {
		return false
	}
	kind := string(data[8:12])
	return kind == "ILBM" || kind == "PBM "
}

// ilbmState collects chunks until the whole FORM is read
type ilbmState struct {
	chunky  bool
	header  *bitmapHeader
	palette *core.Palette
	cycles  []core.CycleRange
	title   string
	body    []byte
}

func (ILBM) Decode(r io.Reader) (Source, error) {
	var form [12]byte
	if _, err := io.ReadFull(r, form[:]); err != nil {
		return Source{}, &core.FormatError{Format: formatILBM, Reason: "FORM header", Err: errTruncated}
	}
	if string(form[:4]) != "FORM" {
		return Source{}, core.Errorf(formatILBM, "not an IFF FORM")
	}
	kind := string(form[8:12])
	if kind != "ILBM" && kind != "PBM " {
		return Source{}, core.Errorf(formatILBM, "unsupported FORM type %q", kind)
	}

	st := &ilbmState{chunky: kind == "PBM "}
	remaining := int64(binary.BigEndian.Uint32(form[4:8])) - 4

	for remaining >= 8 {
		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			// Some writers overstate the FORM size; a clean end at a chunk boundary is accepted
			if errors.Is(err, io.EOF) {
				break
			}
			return Source{}, &core.FormatError{Format: formatILBM, Reason: "chunk header", Err: errTruncated}
		}
		id := string(hdr[:4])
		size := int64(binary.BigEndian.Uint32(hdr[4:8]))
		if size > remaining-8 {
			return Source{}, core.Errorf(formatILBM, "chunk %q size %d exceeds FORM", id, size)
		}

		data, err := io.ReadAll(io.LimitReader(r, size))
		if err != nil {
			return Source{}, &core.FormatError{Format: formatILBM, Reason: fmt.Sprintf("chunk %q", id), Err: err}
		}
		if int64(len(data)) != size {
			return Source{}, &core.FormatError{Format: formatILBM, Reason: fmt.Sprintf("chunk %q", id), Err: errTruncated}
		}
		remaining -= 8 + size
		if size&1 == 1 && remaining > 0 {
			var pad [1]byte
			if _, err := io.ReadFull(r, pad[:]); err != nil {
				// Writers that overstate the FORM size may also drop the final pad byte
				remaining = 0
			} else {
				remaining--
			}
		}

		if err := st.chunk(id, data); err != nil {
			return Source{}, err
		}
	}

	img, err := st.image()
	if err != nil {
		return Source{}, err
	}
	return Source{Title: st.title, Image: img}, nil
}

func (st *ilbmState) chunk(id string, data []byte) error {
	switch id {
	case "BMHD":
		var h bitmapHeader
		if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &h); err != nil {
			return core.Errorf(formatILBM, "BMHD chunk of %d bytes", len(data))
		}
		st.header = &h

	case "CMAP":
		if len(data)%3 != 0 {
			return core.Errorf(formatILBM, "CMAP chunk of %d bytes", len(data))
		}
		n := len(data) / 3
		if n > core.PaletteSize {
			return &core.FormatError{Format: formatILBM, Reason: fmt.Sprintf("%d colors", n), Err: core.ErrPaletteSize}
		}
		// Short maps are padded with black
		var pal core.Palette
		for i := 0; i < n; i++ {
			pal[i] = core.RGB{R: data[i*3], G: data[i*3+1], B: data[i*3+2]}
		}
		st.palette = &pal

	case "CRNG":
		var c colorRange
		if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &c); err != nil {
			return core.Errorf(formatILBM, "CRNG chunk of %d bytes", len(data))
		}
		if c.Flags&crngActive == 0 || c.Rate <= 0 || c.Low >= c.High {
			log.Printf("loader: ilbm CRNG [%d,%d] rate %d flags %#x inactive, dropped", c.Low, c.High, c.Rate, c.Flags)
			return nil
		}
		st.cycles = append(st.cycles, core.CycleRange{
			Low:     c.Low,
			High:    c.High,
			Rate:    float64(c.Rate) * crngRateBase / crngRateUnit,
			Reverse: c.Flags&crngReverse != 0,
		})

	case "CCRT":
		var c cycleTiming
		if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &c); err != nil {
			return core.Errorf(formatILBM, "CCRT chunk of %d bytes", len(data))
		}
		step := float64(c.Seconds) + float64(c.Micros)/1e6
		if c.Direction == 0 || step <= 0 || c.Low >= c.High {
			log.Printf("loader: ilbm CCRT [%d,%d] direction %d inactive, dropped", c.Low, c.High, c.Direction)
			return nil
		}
		st.cycles = append(st.cycles, core.CycleRange{
			Low:     c.Low,
			High:    c.High,
			Rate:    1 / step,
			Reverse: c.Direction < 0,
		})

	case "NAME":
		st.title = strings.TrimSpace(strings.TrimRight(string(data), "\x00"))

	case "BODY":
		st.body = data
	}
	return nil
}

func (st *ilbmState) image() (*core.Image, error) {
	h := st.header
	switch {
	case h == nil:
		return nil, core.Errorf(formatILBM, "missing BMHD chunk")
	case st.palette == nil:
		return nil, core.Errorf(formatILBM, "missing CMAP chunk")
	case st.body == nil:
		return nil, core.Errorf(formatILBM, "missing BODY chunk")
	}

	w, ht := int(h.Width), int(h.Height)
	if w == 0 || ht == 0 {
		return nil, &core.FormatError{Format: formatILBM, Reason: fmt.Sprintf("%dx%d", w, ht), Err: core.ErrEmptyImage}
	}
	if h.Planes == 0 || h.Planes > 8 {
		return nil, core.Errorf(formatILBM, "%d bitplanes not supported", h.Planes)
	}
	if st.chunky && h.Planes != 8 {
		return nil, core.Errorf(formatILBM, "PBM with %d bitplanes", h.Planes)
	}

	var rowBytes, planes int
	if st.chunky {
		rowBytes, planes = w+w&1, 1
	} else {
		rowBytes, planes = (w+15)/16*2, int(h.Planes)
		if h.Masking == maskHasMask {
			planes++
		}
	}
	size := rowBytes * planes * ht

	var body []byte
	switch h.Compression {
	case compressionNone:
		if len(st.body) < size {
			return nil, &core.FormatError{Format: formatILBM, Reason: fmt.Sprintf("BODY has %d bytes, want %d", len(st.body), size), Err: errTruncated}
		}
		body = st.body[:size]
	case compressionByteRun1:
		if size > len(st.body)*maxByteRun1Expansion {
			return nil, &core.FormatError{Format: formatILBM, Reason: fmt.Sprintf("BODY of %d packed bytes cannot hold %d", len(st.body), size), Err: errTruncated}
		}
		var err error
		if body, err = unpackByteRun1(st.body, size); err != nil {
			return nil, &core.FormatError{Format: formatILBM, Reason: "BODY", Err: err}
		}
	default:
		return nil, core.Errorf(formatILBM, "unknown compression %d", h.Compression)
	}

	img := &core.Image{
		Width:   w,
		Height:  ht,
		Pixels:  make([]uint8, w*ht),
		Palette: *st.palette,
		Cycles:  st.cycles,
	}
	if st.chunky {
		for y := 0; y < ht; y++ {
			copy(img.Pixels[y*w:(y+1)*w], body[y*rowBytes:])
		}
	} else {
		deinterleave(img.Pixels, body, w, ht, rowBytes, planes, int(h.Planes))
	}
	return img, nil
}

// deinterleave converts interleaved bitplane rows to chunky indices; plane p holds bit p
// Planes beyond depth (the mask) are skipped
func deinterleave(dst, body []byte, w, h, rowBytes, planes, depth int) {
	for y := 0; y < h; y++ {
		row := body[y*rowBytes*planes:]
		for x := 0; x < w; x++ {
			shift := 7 - uint(x&7)
			var idx uint8
			for p := 0; p < depth; p++ {
				bit := (row[p*rowBytes+x>>3] >> shift) & 1
				idx |= bit << p
			}
			dst[y*w+x] = idx
		}
	}
}

// unpackByteRun1 expands PackBits data to exactly n bytes
func unpackByteRun1(src []byte, n int) ([]byte, error) {
	dst := make([]byte, 0, min(n, len(src)*maxByteRun1Expansion))
	i := 0
	for len(dst) < n {
		if i >= len(src) {
			return nil, errTruncated
		}
		c := int8(src[i])
		i++
		switch {
		case c >= 0:
			count := int(c) + 1
			if i+count > len(src) {
				return nil, errTruncated
			}
			dst = append(dst, src[i:i+count]...)
			i += count
		case c != -128:
			if i >= len(src) {
				return nil, errTruncated
			}
			for k := 1 - int(c); k > 0; k-- {
				dst = append(dst, src[i])
			}
			i++
		}
	}
	return dst[:n], nil
}
