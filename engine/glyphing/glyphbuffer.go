package glyphing

import (
	"github.com/npillmayer/textshaping/core/dimen"
	"github.com/npillmayer/textshaping/core/font"
)

type offsetMode int8

const (
	offsetsUndecided offsetMode = iota
	offsetsHorizontal
	offsetsVertical
)

// GlyphBuffer collects glyphs for painting. For each glyph it stores the
// typecase to draw it from and its offset from the start of the text.
//
// Offsets are either x-only or (x,y) pairs. The first Add or AddPoint
// decides which and the buffer keeps this mode for its lifetime; mixing
// modes panics. The zero value is an empty buffer, ready to use.
type GlyphBuffer struct {
	fonts   []*font.TypeCase
	glyphs  []font.GlyphID
	offsets []float32 // x-only or interleaved x,y
	mode    offsetMode
}

// NewGlyphBuffer creates an empty glyph buffer.
func NewGlyphBuffer() *GlyphBuffer {
	return &GlyphBuffer{}
}

// Add appends a glyph with a horizontal offset.
func (b *GlyphBuffer) Add(g font.GlyphID, tc *font.TypeCase, x float32) {
	b.setMode(offsetsHorizontal)
	b.fonts = append(b.fonts, tc)
	b.glyphs = append(b.glyphs, g)
	b.offsets = append(b.offsets, x)
}

// AddPoint appends a glyph with an (x,y) offset.
func (b *GlyphBuffer) AddPoint(g font.GlyphID, tc *font.TypeCase, p dimen.Point) {
	b.setMode(offsetsVertical)
	b.fonts = append(b.fonts, tc)
	b.glyphs = append(b.glyphs, g)
	b.offsets = append(b.offsets, p.X, p.Y)
}

func (b *GlyphBuffer) setMode(m offsetMode) {
	if b.mode == offsetsUndecided {
		b.mode = m
	} else if b.mode != m {
		panic("glyph buffer: cannot mix x-only and x,y offsets")
	}
}

// HasVerticalOffsets is true if the buffer stores (x,y) offsets.
func (b *GlyphBuffer) HasVerticalOffsets() bool {
	return b.mode == offsetsVertical
}

// Size returns the number of glyphs in the buffer.
func (b *GlyphBuffer) Size() int {
	return len(b.glyphs)
}

// IsEmpty is true for a buffer without glyphs.
func (b *GlyphBuffer) IsEmpty() bool {
	return len(b.glyphs) == 0
}

// GlyphAt returns the glyph at position i.
func (b *GlyphBuffer) GlyphAt(i int) font.GlyphID {
	return b.glyphs[i]
}

// FontAt returns the typecase of the glyph at position i.
func (b *GlyphBuffer) FontAt(i int) *font.TypeCase {
	return b.fonts[i]
}

// Glyphs returns the glyph IDs of the buffer. The slice must not be
// modified.
func (b *GlyphBuffer) Glyphs() []font.GlyphID {
	return b.glyphs
}

// XOffsetAt returns the horizontal offset of the glyph at position i.
func (b *GlyphBuffer) XOffsetAt(i int) float32 {
	if b.mode == offsetsVertical {
		return b.offsets[2*i]
	}
	return b.offsets[i]
}

// YOffsetAt returns the vertical offset of the glyph at position i. It is
// always 0 for buffers in x-only mode.
func (b *GlyphBuffer) YOffsetAt(i int) float32 {
	if b.mode == offsetsVertical {
		return b.offsets[2*i+1]
	}
	return 0
}

// OffsetAt returns the offset of the glyph at position i.
func (b *GlyphBuffer) OffsetAt(i int) dimen.Point {
	return dimen.Point{X: b.XOffsetAt(i), Y: b.YOffsetAt(i)}
}

// ReverseForSimpleRTL re-positions glyphs set left-to-right by the simple
// shaper for right-to-left display. Glyphs and typecases are reversed, and
// the offset of each glyph becomes totalWidth minus the offset of the glyph
// following it; the last glyph uses afterOffset instead.
//
// Only buffers with x-only offsets can be reversed.
func (b *GlyphBuffer) ReverseForSimpleRTL(afterOffset, totalWidth float32) {
	if b.mode == offsetsVertical {
		panic("glyph buffer: cannot reverse buffer with vertical offsets")
	}
	n := len(b.glyphs)
	if n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		next := afterOffset
		if i+1 < n {
			next = b.offsets[i+1]
		}
		b.offsets[i] = totalWidth - next
	}
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		b.glyphs[i], b.glyphs[j] = b.glyphs[j], b.glyphs[i]
		b.fonts[i], b.fonts[j] = b.fonts[j], b.fonts[i]
		b.offsets[i], b.offsets[j] = b.offsets[j], b.offsets[i]
	}
}

// EachFontSpan calls f for every maximal span [from, to) of glyphs drawn
// from the same typecase, in buffer order. Painters will draw each span
// with a single call.
func (b *GlyphBuffer) EachFontSpan(f func(tc *font.TypeCase, from, to int)) {
	start := 0
	for i := 1; i <= len(b.glyphs); i++ {
		if i == len(b.glyphs) || b.fonts[i] != b.fonts[start] {
			f(b.fonts[start], start, i)
			start = i
		}
	}
}
