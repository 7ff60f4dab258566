package script

import (
	"testing"
	"unicode/utf16"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textshaping/core/font"
	"github.com/npillmayer/textshaping/engine/glyphing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFont(t *testing.T, variant font.FontVariant) *font.Font {
	tc, err := font.FallbackFont().PrepareCase(16)
	require.NoError(t, err)
	desc := font.FontDescription{Size: 16, Variant: variant}
	return font.NewFont(desc, font.NewFallbackList(tc))
}

func u16(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

func scriptsOf(runs []Run) []glyphing.Script {
	s := make([]glyphing.Script, len(runs))
	for i, r := range runs {
		s[i] = r.Script
	}
	return s
}

func iso(codes ...string) []glyphing.Script {
	s := make([]glyphing.Script, len(codes))
	for i, c := range codes {
		s[i] = glyphing.ScriptFromISO(c)
	}
	return s
}

func TestSegmentationCoversText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	f := testFont(t, font.FontVariantSmallCaps)
	inputs := []string{
		"Hello, World!",
		"(abc) [def]",
		"中文、日本語。あいう",
		"e\u0301\u0302x",
		"A\u200Db",
		"مرحبا بالعالم",
		"a😀b🇩🇪",
		"क्र( )",
	}
	for _, input := range inputs {
		text := u16(input)
		runs := Segment(text, f, false)
		require.NotEmpty(t, runs, input)
		assert.Equal(t, 0, runs[0].Start, input)
		assert.Equal(t, len(text), runs[len(runs)-1].End, input)
		for i, r := range runs {
			assert.Less(t, r.Start, r.End, input)
			if i > 0 {
				assert.Equal(t, runs[i-1].End, r.Start, "gap or overlap in %q", input)
			}
		}
	}
}

func TestMixedScripts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	f := testFont(t, font.FontVariantNormal)
	runs := Segment(u16("اก中a"), f, false)
	require.Len(t, runs, 4)
	assert.Equal(t, iso("Arab", "Thai", "Hani", "Latn"), scriptsOf(runs))
	for i, r := range runs {
		assert.Equal(t, i, r.Start)
		assert.Equal(t, 1, r.Len())
	}
}

func TestCommonIsResolved(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	f := testFont(t, font.FontVariantNormal)
	runs := Segment(u16("(abc) def!"), f, false)
	require.Len(t, runs, 1)
	assert.Equal(t, iso("Latn"), scriptsOf(runs))
	//
	text := u16("क्र( )")
	candidates := collectCandidateRuns(text, f, false)
	require.Len(t, candidates, 2)
	assert.Equal(t, iso("Deva", "Zyyy"), scriptsOf(candidates))
	assert.Equal(t, 3, candidates[0].End)
	runs = Segment(text, f, false)
	require.Len(t, runs, 1, "punctuation joins the Devanagari run if set in the same font")
	assert.Equal(t, iso("Deva"), scriptsOf(runs))
	//
	runs = Segment(u16("123"), f, false)
	assert.Equal(t, []glyphing.Script{glyphing.Common}, scriptsOf(runs))
}

func TestScriptExtensions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	assert.Equal(t, glyphing.ScriptOf(0x4e2d), glyphing.ScriptFromISO("Hani"))
	assert.Equal(t, glyphing.ScriptOf(0x3042), glyphing.ScriptFromISO("hira"))
	assert.True(t, hasScript(0x3001, glyphing.ScriptFromISO("Hani")))
	assert.True(t, hasScript(0x3001, glyphing.ScriptFromISO("Hira")))
	assert.False(t, hasScript(0x3001, glyphing.ScriptFromISO("Latn")))
	assert.True(t, hasScript('a', glyphing.ScriptFromISO("Latn")))
	//
	f := testFont(t, font.FontVariantNormal)
	runs := Segment(u16("中、あ"), f, false)
	require.Len(t, runs, 2)
	assert.Equal(t, iso("Hani", "Hira"), scriptsOf(runs))
	assert.Equal(t, 2, runs[0].End)
	runs = Segment(u16("あ、中"), f, false)
	require.Len(t, runs, 2)
	assert.Equal(t, iso("Hira", "Hani"), scriptsOf(runs))
	runs = Segment(u16("、中"), f, false)
	require.Len(t, runs, 1, "leading punctuation takes the script of the following run")
	assert.Equal(t, iso("Hani"), scriptsOf(runs))
}

func TestFontChanges(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	f := testFont(t, font.FontVariantSmallCaps)
	primary := f.PrimaryFont()
	runs := Segment(u16("ABcd"), f, false)
	require.Len(t, runs, 2)
	assert.Same(t, primary, runs[0].Font)
	assert.Same(t, primary.SmallCapsCase(), runs[1].Font)
	//
	runs = Segment(u16("Ab"), f, false)
	assert.Len(t, runs, 2)
	runs = Segment(u16("A\u200Db"), f, false)
	require.Len(t, runs, 1, "a zero width joiner keeps the next character in the run's font")
	assert.Same(t, primary, runs[0].Font)
	//
	runs = Segment(u16("e\u0301"), testFont(t, font.FontVariantNormal), false)
	assert.Len(t, runs, 1)
}

func TestSingleCharacter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	f := testFont(t, font.FontVariantNormal)
	runs := Segment(u16("("), f, false)
	require.Len(t, runs, 1)
	assert.Equal(t, glyphing.Common, runs[0].Script, "single characters are not resolved")
	assert.Nil(t, Segment(nil, f, false))
	assert.Panics(t, func() { newRun(2, 2, nil, glyphing.Common) })
}
