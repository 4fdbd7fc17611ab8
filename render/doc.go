// Package render turns an indexed image, its effective palette and a viewport into
// half-block terminal cells, and encodes changed cells as a minimal ANSI byte stream.
//
// Each terminal row shows two image rows: the upper-half-block glyph's foreground
// is the top pixel and its background the bottom pixel.
package render
