package simple

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textshaping/core/font"
	"github.com/npillmayer/textshaping/engine/glyphing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFont(t *testing.T, desc font.FontDescription) *font.Font {
	tc, err := font.FallbackFont().PrepareCase(16)
	require.NoError(t, err)
	desc.Size = 16
	return font.NewFont(desc, font.NewFallbackList(tc))
}

// plainWidth sums glyph widths of s in the primary font of f.
func plainWidth(f *font.Font, s string) float32 {
	var w float32
	for _, r := range s {
		gd := f.GlyphDataForCharacter(r, false, false, font.AutoVariant)
		w += gd.Font.WidthForGlyph(gd.Glyph)
	}
	return w
}

func TestSimpleAdvance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	f := testFont(t, font.FontDescription{})
	run := glyphing.TextRunFromString("ABC DEF.", glyphing.LeftToRight)
	sh := NewShaper(f, run, nil, nil)
	buf := glyphing.NewGlyphBuffer()
	assert.Equal(t, 8, sh.Advance(run.Len(), buf))
	assert.Equal(t, 8, buf.Size(), "one glyph per character")
	assert.InDelta(t, plainWidth(f, "ABC DEF."), sh.RunWidthSoFar(), 0.001)
	assert.InDelta(t, plainWidth(f, "ABC"), buf.XOffsetAt(3), 0.001)
	assert.Equal(t, 0, sh.Advance(run.Len(), buf), "nothing left to consume")
	assert.False(t, sh.GlyphBounds().IsEmpty())
	//
	sh = NewShaper(f, run, nil, nil)
	assert.Equal(t, 3, sh.Advance(3, nil))
	assert.Equal(t, 3, sh.CurrentCharacter())
	assert.InDelta(t, plainWidth(f, "ABC"), sh.RunWidthSoFar(), 0.001)
	assert.Equal(t, 5, sh.Advance(100, nil))
}

func TestAdvanceOneCharacter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	f := testFont(t, font.FontDescription{})
	run := glyphing.TextRunFromString("Wi", glyphing.RightToLeft)
	sh := NewShaper(f, run, nil, nil)
	w, ok := sh.AdvanceOneCharacter()
	assert.True(t, ok)
	assert.InDelta(t, plainWidth(f, "W"), w, 0.001)
	w, ok = sh.AdvanceOneCharacter()
	assert.True(t, ok)
	assert.InDelta(t, plainWidth(f, "i"), w, 0.001)
	_, ok = sh.AdvanceOneCharacter()
	assert.False(t, ok)
}

func TestSpacing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	f := testFont(t, font.FontDescription{LetterSpacing: 2})
	run := glyphing.TextRunFromString("ab cd", glyphing.LeftToRight)
	sh := NewShaper(f, run, nil, nil)
	sh.Advance(run.Len(), nil)
	assert.InDelta(t, plainWidth(f, "ab cd")+5*2, sh.RunWidthSoFar(), 0.001)
	//
	f = testFont(t, font.FontDescription{WordSpacing: 5})
	sh = NewShaper(f, run, nil, nil)
	sh.Advance(run.Len(), nil)
	assert.InDelta(t, plainWidth(f, "ab cd")+5, sh.RunWidthSoFar(), 0.001)
	lead := glyphing.TextRunFromString(" ab", glyphing.LeftToRight)
	sh = NewShaper(f, lead, nil, nil)
	sh.Advance(lead.Len(), nil)
	assert.InDelta(t, plainWidth(f, " ab"), sh.RunWidthSoFar(), 0.001,
		"no word spacing for a leading space")
	nbsp := glyphing.TextRunFromString("\u00a0ab", glyphing.LeftToRight)
	sh = NewShaper(f, nbsp, nil, nil)
	sh.Advance(nbsp.Len(), nil)
	assert.InDelta(t, plainWidth(f, "\u00a0ab")+5, sh.RunWidthSoFar(), 0.001,
		"a leading no-break space gets word spacing")
}

func TestExpansion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	f := testFont(t, font.FontDescription{})
	run := glyphing.TextRunFromString("a b c", glyphing.LeftToRight).
		WithExpansion(10, glyphing.DefaultExpansion)
	sh := NewShaper(f, run, nil, nil)
	buf := glyphing.NewGlyphBuffer()
	sh.Advance(run.Len(), buf)
	assert.InDelta(t, plainWidth(f, "a b c")+10, sh.RunWidthSoFar(), 0.001)
	assert.InDelta(t, plainWidth(f, "a ")+5, buf.XOffsetAt(2), 0.001)
	//
	trailing := glyphing.TextRunFromString("a b ", glyphing.LeftToRight).
		WithExpansion(10, glyphing.ForbidTrailingExpansion)
	sh = NewShaper(f, trailing, nil, nil)
	sh.Advance(trailing.Len(), nil)
	assert.InDelta(t, plainWidth(f, "a b ")+10, sh.RunWidthSoFar(), 0.001,
		"all expansion goes to the inner space")
	//
	none := run.WithTextJustify(glyphing.JustifyNone)
	sh = NewShaper(f, none, nil, nil)
	sh.Advance(none.Len(), nil)
	assert.InDelta(t, plainWidth(f, "a b c"), sh.RunWidthSoFar(), 0.001)
	//
	distribute := glyphing.TextRunFromString("abcd", glyphing.LeftToRight).
		WithExpansion(8, glyphing.ForbidTrailingExpansion).WithTextJustify(glyphing.JustifyDistribute)
	sh = NewShaper(f, distribute, nil, nil)
	buf = glyphing.NewGlyphBuffer()
	sh.Advance(distribute.Len(), buf)
	assert.InDelta(t, plainWidth(f, "abcd")+8, sh.RunWidthSoFar(), 0.001)
	assert.InDelta(t, plainWidth(f, "a")+8.0/3, buf.XOffsetAt(1), 0.001)
}

func TestIdeographExpansion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	f := testFont(t, font.FontDescription{})
	// two ideographs: opportunities before and after each, shared in between
	run := glyphing.TextRunFromString("a中文", glyphing.LeftToRight).
		WithExpansion(9, glyphing.AllowTrailingExpansion)
	sh := NewShaper(f, run, nil, nil)
	buf := glyphing.NewGlyphBuffer()
	sh.Advance(run.Len(), buf)
	wa := plainWidth(f, "a")
	assert.InDelta(t, plainWidth(f, "a中文")+9, sh.RunWidthSoFar(), 0.001)
	assert.InDelta(t, wa+3, buf.XOffsetAt(1), 0.001, "expansion before the first ideograph")
}

func TestTabsAndZeroWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	f := testFont(t, font.FontDescription{})
	tc := f.PrimaryFont()
	run := glyphing.TextRunFromString("a\tb", glyphing.LeftToRight).WithTabs(4, 0)
	sh := NewShaper(f, run, nil, nil)
	sh.Advance(run.Len(), nil)
	wa := plainWidth(f, "a")
	tab := f.TabWidth(tc, 4, wa)
	assert.InDelta(t, wa+tab+plainWidth(f, "b"), sh.RunWidthSoFar(), 0.001)
	//
	noTabs := glyphing.TextRunFromString("a\tb", glyphing.LeftToRight)
	sh = NewShaper(f, noTabs, nil, nil)
	sh.Advance(noTabs.Len(), nil)
	assert.InDelta(t, plainWidth(f, "a b"), sh.RunWidthSoFar(), 0.001, "tabs are spaces")
	//
	f = testFont(t, font.FontDescription{LetterSpacing: 3})
	ctrl := glyphing.TextRunFromString("a\x01b", glyphing.LeftToRight)
	sh = NewShaper(f, ctrl, nil, nil)
	buf := glyphing.NewGlyphBuffer()
	sh.Advance(ctrl.Len(), buf)
	assert.InDelta(t, plainWidth(f, "ab")+6, sh.RunWidthSoFar(), 0.001)
	assert.Equal(t, f.PrimaryFont().SpaceGlyph(), buf.GlyphAt(1))
}

func TestMirroringAndFallbackFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	f := testFont(t, font.FontDescription{Variant: font.FontVariantSmallCaps})
	run := glyphing.TextRunFromString("(A)", glyphing.RightToLeft)
	sh := NewShaper(f, run, nil, nil)
	buf := glyphing.NewGlyphBuffer()
	sh.Advance(run.Len(), buf)
	tc := f.PrimaryFont()
	assert.Equal(t, tc.GlyphIndex(')'), buf.GlyphAt(0))
	assert.Equal(t, tc.GlyphIndex('('), buf.GlyphAt(2))
	//
	fonts := make(font.FontSet)
	small := glyphing.TextRunFromString("Ab", glyphing.LeftToRight)
	sh = NewShaper(f, small, fonts, nil)
	sh.Advance(small.Len(), nil)
	assert.True(t, fonts.Contains(tc.SmallCapsCase()))
	assert.False(t, fonts.Contains(tc))
	assert.Equal(t, fonts, sh.FallbackFonts())
}

func TestEmphasisMarks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	f := testFont(t, font.FontDescription{})
	mark, ok := f.EmphasisMarkGlyphData("\u2022")
	require.True(t, ok)
	run := glyphing.TextRunFromString("a b", glyphing.LeftToRight)
	sh := NewShaper(f, run, nil, &mark)
	buf := glyphing.NewGlyphBuffer()
	sh.Advance(run.Len(), buf)
	require.Equal(t, 2, buf.Size(), "spaces receive no mark")
	assert.Equal(t, mark.Glyph, buf.GlyphAt(0))
	center := mark.Font.BoundsForGlyph(mark.Glyph).Center()
	assert.InDelta(t, plainWidth(f, "a")/2-center.X, buf.XOffsetAt(0), 0.001)
}
