package text

import (
	"github.com/npillmayer/textshaping/core/dimen"
	"github.com/npillmayer/textshaping/core/font"
	"github.com/npillmayer/textshaping/core/parameters"
	"github.com/npillmayer/textshaping/engine/glyphing"
	"github.com/npillmayer/textshaping/engine/glyphing/bidi"
	"github.com/npillmayer/textshaping/engine/glyphing/harfbuzz"
	"github.com/npillmayer/textshaping/engine/glyphing/shapecache"
	"github.com/npillmayer/textshaping/engine/glyphing/simple"
	"github.com/npillmayer/textshaping/engine/glyphing/wordshaper"
	"golang.org/x/text/language"
)

// shaperKind selects the shaper for a run.
type shaperKind int8

const (
	simpleShaper shaperKind = iota
	complexShaper
)

// Font sets text runs in a shaping font. It owns the shape cache for the
// font's complex results.
type Font struct {
	font          *font.Font
	words         *wordshaper.CachingWordShaper
	alwaysComplex bool
}

// NewFont creates a font for text setting. Registers configure the shaping
// engine, the shape cache and code path selection; if regs is nil, defaults
// are used. A font description without a locale gets the locale of the
// language and script registers.
func NewFont(f *font.Font, regs *parameters.TypesettingRegisters) *Font {
	if regs == nil {
		regs = parameters.NewTypesettingRegisters()
	}
	if desc := f.Description(); desc.Locale == language.Und {
		desc.Locale = regs.Locale()
	}
	engine := harfbuzz.NewEngine(regs.S(parameters.P_SHAPINGENGINE))
	tracer().Debugf("font %v shapes with engine %s", f.PrimaryFont(), engine.Name())
	return &Font{
		font:          f,
		words:         wordshaper.New(shapecache.FromRegisters(regs), engine),
		alwaysComplex: regs.B(parameters.P_ALWAYSCOMPLEX),
	}
}

// ShapingFont returns the underlying shaping font.
func (f *Font) ShapingFont() *font.Font {
	return f.font
}

// CodePath returns the code path for the characters [from, to) of run.
func (f *Font) CodePath(run glyphing.TextRun, from, to int) glyphing.CodePath {
	return glyphing.CodePathFor(run, from, to, f.font.Description(), f.alwaysComplex)
}

func (f *Font) shaperFor(run glyphing.TextRun, from, to int) shaperKind {
	if f.CodePath(run, from, to) == glyphing.ComplexPath {
		return complexShaper
	}
	return simpleShaper
}

// Width returns the advance of run. If fallbackFonts is non-nil, typecases
// other than the primary font are added to it. If bounds is non-nil, it is
// set to the union of the glyph bounds, relative to the start of the run.
func (f *Font) Width(run glyphing.TextRun, fallbackFonts font.FontSet, bounds *dimen.Rect) float32 {
	switch f.shaperFor(run, 0, run.Len()) {
	case complexShaper:
		var r dimen.Rect
		w := f.words.Width(f.font, run, fallbackFonts, &r)
		if bounds != nil {
			*bounds = r
		}
		return w
	default:
		sh := simple.NewShaper(f.font, run, fallbackFonts, nil)
		sh.Advance(run.Len(), nil)
		if bounds != nil {
			*bounds = sh.GlyphBounds()
		}
		return sh.RunWidthSoFar()
	}
}

// DrawText collects the glyphs for the characters [from, to) of run. Glyph
// offsets are relative to the visual start of the whole run.
func (f *Font) DrawText(run glyphing.TextRun, from, to int) *glyphing.GlyphBuffer {
	from, to = clampRange(run, from, to)
	buf := glyphing.NewGlyphBuffer()
	if from >= to {
		return buf
	}
	switch f.shaperFor(run, from, to) {
	case complexShaper:
		f.words.FillGlyphBuffer(f.font, run, nil, buf, from, to)
	default:
		sh := simple.NewShaper(f.font, run, nil, nil)
		sh.Advance(from, nil)
		sh.Advance(to, buf)
		if run.RTL() {
			afterWidth := sh.RunWidthSoFar()
			sh.Advance(run.Len(), nil)
			buf.ReverseForSimpleRTL(afterWidth, sh.RunWidthSoFar())
		}
	}
	return buf
}

// DrawEmphasisMarks collects emphasis marks for the characters [from, to)
// of run. Only the first character of mark is used. If the font has no
// glyph for it, the buffer is empty.
func (f *Font) DrawEmphasisMarks(run glyphing.TextRun, mark string, from, to int) *glyphing.GlyphBuffer {
	from, to = clampRange(run, from, to)
	buf := glyphing.NewGlyphBuffer()
	emphasis, ok := f.font.EmphasisMarkGlyphData(mark)
	if !ok || emphasis.Font == nil || from >= to {
		return buf
	}
	switch f.shaperFor(run, from, to) {
	case complexShaper:
		f.words.FillGlyphBufferForTextEmphasis(f.font, run, emphasis, buf, from, to)
	default:
		sh := simple.NewShaper(f.font, run, nil, &emphasis)
		sh.Advance(from, nil)
		sh.Advance(to, buf)
		if run.RTL() {
			sh.Advance(run.Len(), nil)
			center := emphasis.Font.BoundsForGlyph(emphasis.Glyph).Center().X
			buf = mirrorMarks(buf, sh.RunWidthSoFar(), center)
		}
	}
	return buf
}

// mirrorMarks re-positions emphasis marks placed left-to-right for
// right-to-left display. Marks are centered above their characters, so a
// mark's new offset is the mirrored character center minus the mark's
// center.
func mirrorMarks(buf *glyphing.GlyphBuffer, totalWidth, center float32) *glyphing.GlyphBuffer {
	mirrored := glyphing.NewGlyphBuffer()
	for i := buf.Size() - 1; i >= 0; i-- {
		x := totalWidth - buf.XOffsetAt(i) - 2*center
		mirrored.Add(buf.GlyphAt(i), buf.FontAt(i), x)
	}
	return mirrored
}

// DrawBidiText collects the glyphs for run, which may contain text of
// both directions. The run is split into directional runs, which are
// set one after the other in visual order.
func (f *Font) DrawBidiText(run glyphing.TextRun) (*glyphing.GlyphBuffer, error) {
	runs, err := bidi.Resolve(run)
	if err != nil {
		tracer().Errorf("cannot draw bidi text: %v", err)
		return nil, err
	}
	buffers := make([]*glyphing.GlyphBuffer, len(runs))
	positions := make([]float32, len(runs))
	vertical := false
	var x float32
	for i, br := range runs {
		sub := run.SubRun(br.Start, br.Len()).WithDirection(br.Direction, run.DirectionalOverride())
		buffers[i] = f.DrawText(sub, 0, sub.Len())
		positions[i] = x
		vertical = vertical || buffers[i].HasVerticalOffsets()
		x += f.Width(sub, nil, nil)
	}
	buf := glyphing.NewGlyphBuffer()
	for i, b := range buffers {
		for j := 0; j < b.Size(); j++ {
			if vertical {
				p := b.OffsetAt(j)
				p.X += positions[i]
				buf.AddPoint(b.GlyphAt(j), b.FontAt(j), p)
			} else {
				buf.Add(b.GlyphAt(j), b.FontAt(j), b.XOffsetAt(j)+positions[i])
			}
		}
	}
	return buf, nil
}

// OffsetForPosition returns the character offset of run at a horizontal
// position x, relative to the start of the run. If includePartialGlyphs is
// set, positions within the second half of a character select the offset
// after it. Complex text always hit-tests at half advance.
func (f *Font) OffsetForPosition(run glyphing.TextRun, x float32, includePartialGlyphs bool) int {
	if f.shaperFor(run, 0, run.Len()) == complexShaper {
		return f.words.OffsetForPosition(f.font, run, x)
	}
	delta := x
	sh := simple.NewShaper(f.font, run, nil, nil)
	offset := 0
	if run.RTL() {
		delta -= f.Width(run, nil, nil)
		for {
			offset = sh.CurrentCharacter()
			w, ok := sh.AdvanceOneCharacter()
			if !ok {
				break
			}
			delta += w
			if includePartialGlyphs && delta-w/2 >= 0 || !includePartialGlyphs && delta >= 0 {
				break
			}
		}
		return offset
	}
	for {
		offset = sh.CurrentCharacter()
		w, ok := sh.AdvanceOneCharacter()
		if !ok {
			break
		}
		delta -= w
		if includePartialGlyphs && delta+w/2 <= 0 || !includePartialGlyphs && delta <= 0 {
			break
		}
	}
	return offset
}

// SelectionRectForText returns the rectangle covering the characters
// [from, to) of run set at point, with a given height.
func (f *Font) SelectionRectForText(run glyphing.TextRun, point dimen.Point, height float32,
	from, to int) dimen.Rect {
	//
	from, to = clampRange(run, from, to)
	if f.shaperFor(run, from, to) == complexShaper {
		return f.words.SelectionRect(f.font, run, point, height, from, to)
	}
	sh := simple.NewShaper(f.font, run, nil, nil)
	sh.Advance(from, nil)
	fromX := sh.RunWidthSoFar()
	sh.Advance(to, nil)
	toX := sh.RunWidthSoFar()
	if run.RTL() {
		sh.Advance(run.Len(), nil)
		total := sh.RunWidthSoFar()
		fromX, toX = total-toX, total-fromX
	}
	return dimen.Rect{X: point.X + fromX, Y: point.Y, W: toX - fromX, H: height}
}

// CacheStats returns the statistics of the font's shape cache.
func (f *Font) CacheStats() shapecache.Stats {
	return f.words.Cache().Stats()
}

// ClearCaches drops all cached shape results and glyph lookups.
func (f *Font) ClearCaches() {
	f.words.Cache().Clear()
	f.font.FallbackList().ClearCache()
}

func clampRange(run glyphing.TextRun, from, to int) (int, int) {
	if from < 0 {
		from = 0
	}
	if to > run.Len() {
		to = run.Len()
	}
	return from, to
}
