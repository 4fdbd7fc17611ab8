// Package loader decodes color-cycling sources into the canonical image model.
//
// Three dialects are recognized by content: Canvas Cycle JSON, Living Worlds JSON
// with time-of-day palettes, and IFF ILBM/PBM with CRNG or CCRT cycle chunks.
// Every decoded image is validated before it is returned.
package loader
