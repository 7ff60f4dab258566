package text

import (
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textshaping/core/dimen"
	"github.com/npillmayer/textshaping/core/font"
	"github.com/npillmayer/textshaping/core/parameters"
	"github.com/npillmayer/textshaping/engine/glyphing"
	"github.com/npillmayer/textshaping/engine/glyphing/shapecache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func testFont(t *testing.T, conf testconfig.Conf) *Font {
	tc, err := font.FallbackFont().PrepareCase(16)
	require.NoError(t, err)
	f := font.NewFont(font.FontDescription{Size: 16}, font.NewFallbackList(tc))
	if conf == nil {
		return NewFont(f, nil)
	}
	return NewFont(f, parameters.FromConfiguration(conf))
}

func TestCodePath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	f := testFont(t, nil)
	latin := glyphing.TextRunFromString("abc", glyphing.LeftToRight)
	hebrew := glyphing.TextRunFromString("\u05d0\u05d1", glyphing.RightToLeft)
	arabic := glyphing.TextRunFromString("\u0628\u0627", glyphing.RightToLeft)
	assert.Equal(t, glyphing.SimplePath, f.CodePath(latin, 0, 3))
	assert.Equal(t, glyphing.SimplePath, f.CodePath(hebrew, 0, 2), "Hebrew letters need no shaping")
	assert.Equal(t, glyphing.ComplexPath, f.CodePath(arabic, 0, 2))
	assert.Equal(t, glyphing.ComplexPath, f.CodePath(latin.WithCodePath(glyphing.ComplexPath), 0, 3))
	f = testFont(t, testconfig.Conf{"shaping.always-complex": "true"})
	assert.Equal(t, glyphing.ComplexPath, f.CodePath(latin, 0, 3))
}

func TestLocaleFromRegisters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	f := testFont(t, testconfig.Conf{"shaping.language": "de"})
	assert.Equal(t, "de-Latn", f.ShapingFont().Description().Locale.String())
	tc, err := font.FallbackFont().PrepareCase(16)
	require.NoError(t, err)
	desc := font.FontDescription{Size: 16, Locale: language.Turkish}
	f = NewFont(font.NewFont(desc, font.NewFallbackList(tc)), nil)
	assert.Equal(t, "tr", f.ShapingFont().Description().Locale.String(), "explicit locale must be kept")
}

func TestSimpleAndComplexWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	f := testFont(t, nil)
	run := glyphing.TextRunFromString("minimum", glyphing.LeftToRight)
	var bs, bc dimen.Rect
	ws := f.Width(run, nil, &bs)
	wc := f.Width(run.WithCodePath(glyphing.ComplexPath), nil, &bc)
	assert.Greater(t, ws, float32(0))
	assert.InDelta(t, ws, wc, 0.1)
	assert.False(t, bs.IsEmpty())
	assert.False(t, bc.IsEmpty())
}

func TestDrawSimpleText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	f := testFont(t, nil)
	tc := f.ShapingFont().PrimaryFont()
	ltr := glyphing.TextRunFromString("abc", glyphing.LeftToRight)
	buf := f.DrawText(ltr, 0, 3)
	require.Equal(t, 3, buf.Size())
	assert.Equal(t, tc.GlyphIndex('a'), buf.GlyphAt(0))
	assert.Equal(t, float32(0), buf.XOffsetAt(0))
	assert.InDelta(t, tc.WidthForGlyph(tc.GlyphIndex('a')), buf.XOffsetAt(1), 0.01)
	// right-to-left runs are drawn from the last character on
	rtl := glyphing.TextRunFromString("abc", glyphing.RightToLeft)
	buf = f.DrawText(rtl, 0, 3)
	require.Equal(t, 3, buf.Size())
	assert.Equal(t, tc.GlyphIndex('c'), buf.GlyphAt(0))
	assert.InDelta(t, 0, buf.XOffsetAt(0), 0.01)
	assert.InDelta(t, tc.WidthForGlyph(tc.GlyphIndex('c')), buf.XOffsetAt(1), 0.01)
	buf = f.DrawText(rtl, 1, 2)
	require.Equal(t, 1, buf.Size())
	assert.Equal(t, tc.GlyphIndex('b'), buf.GlyphAt(0))
	assert.True(t, f.DrawText(rtl, 2, 2).IsEmpty())
}

func TestDrawComplexText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	f := testFont(t, testconfig.Conf{"shaping.always-complex": "true"})
	run := glyphing.TextRunFromString("hello world", glyphing.LeftToRight)
	buf := f.DrawText(run, 0, run.Len())
	assert.Equal(t, run.Len(), buf.Size())
	w := f.Width(run, nil, nil)
	assert.Equal(t, shapecache.Stats{Hits: 3, Misses: 3}, f.CacheStats())
	assert.Less(t, buf.XOffsetAt(buf.Size()-1), w)
	f.ClearCaches()
	f.Width(run, nil, nil)
	assert.Equal(t, shapecache.Stats{Hits: 3, Misses: 6}, f.CacheStats())
}

func TestOffsetForSimplePosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	f := testFont(t, nil)
	tc := f.ShapingFont().PrimaryFont()
	wa := tc.WidthForGlyph(tc.GlyphIndex('a'))
	run := glyphing.TextRunFromString("abc", glyphing.LeftToRight)
	w := f.Width(run, nil, nil)
	assert.Equal(t, 0, f.OffsetForPosition(run, 0, true))
	assert.Equal(t, 1, f.OffsetForPosition(run, 0.75*wa, true))
	assert.Equal(t, 0, f.OffsetForPosition(run, 0.75*wa, false))
	assert.Equal(t, 3, f.OffsetForPosition(run, w+1, true))
	rtl := glyphing.TextRunFromString("abc", glyphing.RightToLeft)
	assert.Equal(t, 0, f.OffsetForPosition(rtl, w, true))
	assert.Equal(t, 1, f.OffsetForPosition(rtl, w-0.75*wa, true))
	assert.Equal(t, 3, f.OffsetForPosition(rtl, -1, true))
}

func TestSelectionRectForSimpleText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	f := testFont(t, nil)
	tc := f.ShapingFont().PrimaryFont()
	wa := tc.WidthForGlyph(tc.GlyphIndex('a'))
	ltr := glyphing.TextRunFromString("abc", glyphing.LeftToRight)
	w := f.Width(ltr, nil, nil)
	origin := dimen.Point{X: 10, Y: 2}
	r := f.SelectionRectForText(ltr, origin, 12, 0, 1)
	assert.Equal(t, dimen.Rect{X: 10, Y: 2, W: wa, H: 12}, r)
	rtl := glyphing.TextRunFromString("abc", glyphing.RightToLeft)
	r = f.SelectionRectForText(rtl, origin, 12, 0, 1)
	assert.InDelta(t, 10+w-wa, r.X, 0.01)
	assert.InDelta(t, wa, r.W, 0.01)
}

func TestDrawEmphasisMarks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	f := testFont(t, nil)
	tc := f.ShapingFont().PrimaryFont()
	mark := tc.GlyphIndex('*')
	require.NotZero(t, mark)
	for _, dir := range []glyphing.Direction{glyphing.LeftToRight, glyphing.RightToLeft} {
		run := glyphing.TextRunFromString("ab c", dir)
		bySimple := f.DrawEmphasisMarks(run, "*", 0, run.Len())
		byComplex := f.DrawEmphasisMarks(run.WithCodePath(glyphing.ComplexPath), "*", 0, run.Len())
		require.Equal(t, 3, bySimple.Size(), "spaces receive no marks")
		require.Equal(t, 3, byComplex.Size())
		for i := 0; i < 3; i++ {
			assert.Equal(t, mark, bySimple.GlyphAt(i))
			assert.InDelta(t, byComplex.XOffsetAt(i), bySimple.XOffsetAt(i), 0.1, "dir=%v mark %d", dir, i)
		}
	}
	run := glyphing.TextRunFromString("ab", glyphing.LeftToRight)
	assert.True(t, f.DrawEmphasisMarks(run, "", 0, 2).IsEmpty())
}

func TestDrawBidiText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	f := testFont(t, nil)
	tc := f.ShapingFont().PrimaryFont()
	run := glyphing.TextRunFromString("abc \u05d0\u05d1\u05d2", glyphing.LeftToRight)
	buf, err := f.DrawBidiText(run)
	require.NoError(t, err)
	require.Equal(t, 7, buf.Size())
	assert.Equal(t, tc.GlyphIndex('a'), buf.GlyphAt(0))
	assert.Equal(t, float32(0), buf.XOffsetAt(0))
	latin := f.Width(run.SubRun(0, 4), nil, nil)
	for i := 4; i < 7; i++ {
		assert.GreaterOrEqual(t, buf.XOffsetAt(i), latin-0.01)
	}
}
