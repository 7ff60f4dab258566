package glyphing

import (
	"testing"
	"unicode/utf16"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textshaping/core/font"
	"github.com/stretchr/testify/assert"
)

func TestTextRunFromString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	run := TextRunFromString("Grüße", LeftToRight)
	assert.True(t, run.Is8Bit())
	assert.Equal(t, 5, run.Len())
	assert.Equal(t, "Grüße", run.String())
	run = TextRunFromString("a😀b", RightToLeft)
	assert.False(t, run.Is8Bit())
	assert.Equal(t, 4, run.Len(), "emoji takes a surrogate pair")
	assert.True(t, run.RTL())
	r, l := run.CodePointAt(1)
	assert.Equal(t, '😀', r)
	assert.Equal(t, 2, l)
	sub := run.SubRun(1, 2)
	assert.Equal(t, "😀", sub.String())
	assert.True(t, sub.RTL(), "sub-runs keep their direction")
	assert.False(t, sub.Is8Bit())
}

func TestUnpairedSurrogates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	run := NewTextRun16([]uint16{'a', 0xD83D, 'b'}, LeftToRight)
	assert.True(t, run.HasUnpairedSurrogates())
	r, l := run.CodePointAt(1)
	assert.Equal(t, rune(0xFFFD), r)
	assert.Equal(t, 1, l)
	run = NewTextRun16([]uint16{0xDE00, 'a'}, LeftToRight)
	assert.True(t, run.HasUnpairedSurrogates())
	run = NewTextRun16(utf16.Encode([]rune("x😀")), LeftToRight)
	assert.False(t, run.HasUnpairedSurrogates())
}

func TestCodePointIterator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	run := TextRunFromString("a😀b", LeftToRight)
	it := NewCodePointIterator(run, 0, run.Len())
	var runes []rune
	var offsets []int
	for r, l, ok := it.Consume(); ok; r, l, ok = it.Consume() {
		runes = append(runes, r)
		offsets = append(offsets, it.Offset())
		it.Advance(l)
	}
	assert.Equal(t, []rune{'a', '😀', 'b'}, runes)
	assert.Equal(t, []int{0, 1, 3}, offsets)
	it.Reset(3)
	r, _, ok := it.Consume()
	assert.True(t, ok)
	assert.Equal(t, 'b', r)
}

func TestCharacterClasses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	assert.True(t, TreatAsSpace(' '))
	assert.True(t, TreatAsSpace(NoBreakSpaceCharacter))
	assert.False(t, TreatAsSpace('x'))
	assert.True(t, TreatAsZeroWidthSpace(ZeroWidthJoinerCharacter))
	assert.False(t, TreatAsZeroWidthSpaceInComplexScript(ZeroWidthJoinerCharacter))
	assert.True(t, TreatAsZeroWidthSpaceInComplexScript(SoftHyphenCharacter))
	assert.True(t, IsCombiningMark(0x0301))
	assert.True(t, IsCJKIdeograph(0x4E2D))
	assert.False(t, IsCJKIdeograph('A'))
	assert.True(t, IsCJKIdeographOrSymbol(0x3001), "ideographic comma")
	assert.False(t, CanReceiveTextEmphasis(' '))
	assert.True(t, CanReceiveTextEmphasis('a'))
}

func TestExpansionOpportunities(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	after := false
	run := TextRunFromString("a b c", LeftToRight)
	assert.Equal(t, 2, ExpansionOpportunityCount(run, 0, run.Len(), &after))
	assert.False(t, after)
	after = false
	run = TextRunFromString("中文", LeftToRight)
	assert.Equal(t, 3, ExpansionOpportunityCount(run, 0, run.Len(), &after))
	assert.True(t, after)
	after = false
	run = TextRunFromString("中文", LeftToRight).WithTextJustify(JustifyInterWord)
	assert.Equal(t, 0, ExpansionOpportunityCount(run, 0, run.Len(), &after))
	after = false
	run = TextRunFromString("a😀b", LeftToRight).WithTextJustify(JustifyDistribute)
	assert.Equal(t, 3, ExpansionOpportunityCount(run, 0, run.Len(), &after))
	after = false
	run = TextRunFromString("ab ", RightToLeft)
	assert.Equal(t, 1, ExpansionOpportunityCount(run, 0, run.Len(), &after))
	assert.False(t, after, "right-to-left runs end at their first character")
	run = run.WithTextJustify(JustifyNone)
	assert.Equal(t, 0, ExpansionOpportunityCount(run, 0, run.Len(), &after))
}

func TestCharacterRangeCodePath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	u := func(s string) []uint16 { return utf16.Encode([]rune(s)) }
	assert.Equal(t, SimplePath, CharacterRangeCodePath(u("Hello, world")))
	assert.Equal(t, SimplePath, CharacterRangeCodePath(u("あいう")))
	assert.Equal(t, SimplePath, CharacterRangeCodePath(u("😀")))
	assert.Equal(t, ComplexPath, CharacterRangeCodePath(u("e\u0301")))
	assert.Equal(t, ComplexPath, CharacterRangeCodePath(u("क्र")))
	assert.Equal(t, ComplexPath, CharacterRangeCodePath(u("\U0001F1E9\U0001F1EA")))
	assert.Equal(t, ComplexPath, CharacterRangeCodePath(u("‼️")))
	assert.Equal(t, SimplePath, CharacterRangeCodePath([]uint16{0xD83D}), "lone lead surrogate")
}

func TestCodePathFor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	desc := &font.FontDescription{}
	run := TextRunFromString("ABC DEF.", LeftToRight)
	assert.Equal(t, SimplePath, CodePathFor(run, 0, run.Len(), desc, false))
	assert.Equal(t, ComplexPath, CodePathFor(run, 0, run.Len(), desc, true))
	assert.Equal(t, ComplexPath, CodePathFor(run.WithCodePath(ComplexPath), 0, run.Len(), desc, false))
	//
	kern := &font.FontDescription{Features: font.Kerning}
	assert.Equal(t, ComplexPath, CodePathFor(run, 0, run.Len(), kern, false))
	single := TextRunFromString("A", LeftToRight)
	assert.Equal(t, SimplePath, CodePathFor(single, 0, 1, kern, false))
	assert.Equal(t, ComplexPath, CodePathFor(single, 1, 1, kern, false), "partial range")
	assert.Equal(t, SimplePath, CodePathFor(single.WithCodePath(SimplePath), 0, 1, kern, false))
	//
	settings := &font.FontDescription{FeatureSettings: []font.FeatureSetting{{Tag: "smcp", Value: 1}}}
	assert.Equal(t, ComplexPath, CodePathFor(run, 0, run.Len(), settings, false))
	settings.LetterSpacing = 1
	assert.Equal(t, SimplePath, CodePathFor(run, 0, run.Len(), settings, false))
	//
	vertical := &font.FontDescription{Orientation: font.VerticalUpright}
	assert.Equal(t, ComplexPath, CodePathFor(single.WithCodePath(SimplePath), 0, 1, vertical, false),
		"feature checks take precedence over the run's request")
	legible := &font.FontDescription{TextRendering: font.OptimizeLegibility}
	assert.Equal(t, ComplexPath, CodePathFor(single, 0, 1, legible, false))
	half := &font.FontDescription{WidthVariant: font.HalfWidth}
	assert.Equal(t, ComplexPath, CodePathFor(single, 0, 1, half, false))
	//
	devanagari := TextRunFromString("क्र( )", LeftToRight)
	assert.Equal(t, ComplexPath, CodePathFor(devanagari, 3, 6, desc, false),
		"classification looks at the whole run")
	for i := 0; i < 3; i++ {
		assert.Equal(t, SimplePath, CodePathFor(run, 0, run.Len(), desc, false))
	}
}

func TestCountGraphemes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	u := utf16.Encode([]rune("ae\u0301x"))
	assert.Equal(t, 3, CountGraphemesInCluster(u, 0, len(u)))
	assert.Equal(t, 1, CountGraphemesInCluster(u, 1, 3))
	assert.Equal(t, 1, CountGraphemesInCluster(u, 3, 1), "bounds may be swapped")
	assert.Equal(t, 0, CountGraphemesInCluster(u, 2, 2))
}
