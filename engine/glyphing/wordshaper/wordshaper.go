/*
Package wordshaper shapes text word by word, caching the words' shape results.

Text runs are split at spaces, with every space a word of its own, and each
word is shaped by the complex shaper. Results for short words are taken from
a shape cache. Shaping word by word is only possible if the font's shaping
results do not depend on context across spaces, and if no spacing or
justification applies. Otherwise the run is shaped as a whole.

Results for a run are kept in logical order, one per word.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package wordshaper

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textshaping/core/dimen"
	"github.com/npillmayer/textshaping/core/font"
	"github.com/npillmayer/textshaping/engine/glyphing"
	"github.com/npillmayer/textshaping/engine/glyphing/harfbuzz"
	"github.com/npillmayer/textshaping/engine/glyphing/shapecache"
)

// tracer traces with key 'tyse.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("tyse.glyphs")
}

// CachingWordShaper shapes runs with the complex shaper, using a shape cache.
// It is not safe for concurrent use.
type CachingWordShaper struct {
	cache  *shapecache.Cache
	engine harfbuzz.Engine
}

// New creates a word shaper. cache may be shared with other word shapers
// for the same font.
func New(cache *shapecache.Cache, engine harfbuzz.Engine) *CachingWordShaper {
	if cache == nil {
		cache = shapecache.New(0, 0)
	}
	if engine == nil {
		engine = harfbuzz.NewTextlayoutEngine()
	}
	return &CachingWordShaper{cache: cache, engine: engine}
}

// Cache returns the shape cache of ws.
func (ws *CachingWordShaper) Cache() *shapecache.Cache {
	return ws.cache
}

// shapeResults shapes run and returns the words' results together with
// their total width. Words which cannot be shaped have results without
// glyphs.
func (ws *CachingWordShaper) shapeResults(f *font.Font, run glyphing.TextRun,
	fallbackFonts font.FontSet) ([]*glyphing.ShapeResult, float32) {
	//
	var results []*glyphing.ShapeResult
	var totalWidth float32
	it := NewIterator(ws.cache, ws.engine, f, run, fallbackFonts)
	for word, ok := it.Next(); ok; word, ok = it.Next() {
		if word == nil {
			continue
		}
		totalWidth += word.Width()
		results = append(results, word)
	}
	return results, totalWidth
}

// Width returns the advance of run. If fallbackFonts is non-nil, typecases
// other than the primary font are added to it. If bounds is non-nil, it is
// set to the union of the glyph bounds.
func (ws *CachingWordShaper) Width(f *font.Font, run glyphing.TextRun, fallbackFonts font.FontSet,
	bounds *dimen.Rect) float32 {
	//
	var width float32
	it := NewIterator(ws.cache, ws.engine, f, run, fallbackFonts)
	for word, ok := it.Next(); ok; word, ok = it.Next() {
		if word == nil {
			continue
		}
		if bounds != nil {
			*bounds = bounds.Unite(word.Bounds().Translated(width, 0))
		}
		width += word.Width()
	}
	return width
}

// OffsetForPosition returns the character offset of run closest to x.
func (ws *CachingWordShaper) OffsetForPosition(f *font.Font, run glyphing.TextRun, x float32) int {
	results, _ := ws.shapeResults(f, run, nil)
	return glyphing.OffsetForPosition(results, run, x)
}

// FillGlyphBuffer appends the glyphs for the characters [from, to) of run
// to buf and returns their advance.
func (ws *CachingWordShaper) FillGlyphBuffer(f *font.Font, run glyphing.TextRun, fallbackFonts font.FontSet,
	buf *glyphing.GlyphBuffer, from, to int) float32 {
	//
	results, _ := ws.shapeResults(f, run, fallbackFonts)
	return glyphing.FillGlyphBuffer(results, buf, run, from, to)
}

// FillGlyphBufferForTextEmphasis appends emphasis marks for the characters
// [from, to) of run to buf.
func (ws *CachingWordShaper) FillGlyphBufferForTextEmphasis(f *font.Font, run glyphing.TextRun,
	emphasis font.GlyphData, buf *glyphing.GlyphBuffer, from, to int) float32 {
	//
	results, _ := ws.shapeResults(f, run, nil)
	return glyphing.FillGlyphBufferForTextEmphasis(results, buf, run, emphasis, from, to)
}

// SelectionRect returns the rectangle covering the characters [from, to) of
// run, set at point with a given height.
func (ws *CachingWordShaper) SelectionRect(f *font.Font, run glyphing.TextRun, point dimen.Point,
	height float32, from, to int) dimen.Rect {
	//
	results, totalWidth := ws.shapeResults(f, run, nil)
	return glyphing.SelectionRect(results, run.Direction(), totalWidth, point, height, from, to)
}
