package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/lixenwraith/color-cycle/core"
)

// ErrUnknownFormat is returned when no loader recognizes a file's content
var ErrUnknownFormat = errors.New("unrecognized image format")

// LoadError reports a path that could not be opened or decoded
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Source is a decoded image and the title embedded in the file, if any
type Source struct {
	Title string
	Image *core.Image
}

// Loader decodes one source dialect
type Loader interface {
	Name() string
	// Detect reports whether data looks like this dialect; it must not fully decode
	Detect(data []byte) bool
	Decode(r io.Reader) (Source, error)
}

// Entry is one successfully loaded file
type Entry struct {
	Name  string
	Path  string
	Image *core.Image
}

// loaders in detection order; Canvas Cycle accepts any JSON object so it is last
var loaders = []Loader{ILBM{}, Worlds{}, Canvas{}}

// Detect returns the first loader recognizing data
func Detect(data []byte) (Loader, error) {
	for _, l := range loaders {
		if l.Detect(data) {
			return l, nil
		}
	}
	return nil, ErrUnknownFormat
}

// Open reads, detects and decodes one file
func Open(path string) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, &LoadError{Path: path, Err: err}
	}

	l, err := Detect(data)
	if err != nil {
		return Entry{}, &LoadError{Path: path, Err: err}
	}

	src, err := l.Decode(bytes.NewReader(data))
	if err != nil {
		return Entry{}, &LoadError{Path: path, Err: err}
	}
	if err := src.Image.Validate(); err != nil {
		return Entry{}, &LoadError{Path: path, Err: err}
	}

	name := src.Title
	if name == "" {
		name = filepath.Base(path)
	}
	log.Printf("loader: %s decoded as %s (%dx%d, %d cycles, %d day palettes)",
		path, l.Name(), src.Image.Width, src.Image.Height, len(src.Image.Cycles), len(src.Image.DayPalettes))

	return Entry{Name: name, Path: path, Image: src.Image}, nil
}

// LoadAll opens every path, collecting failures instead of stopping at the first
func LoadAll(paths []string) ([]Entry, []error) {
	var entries []Entry
	var errs []error
	for _, p := range paths {
		e, err := Open(p)
		if err != nil {
			log.Printf("loader: %v", err)
			errs = append(errs, err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, errs
}
