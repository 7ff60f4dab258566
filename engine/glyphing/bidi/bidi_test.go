package bidi

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textshaping/engine/glyphing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReorder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	runs := []Run{
		{Start: 0, End: 1, level: 0},
		{Start: 1, End: 2, level: 1},
		{Start: 2, End: 3, level: 2},
		{Start: 3, End: 4, level: 1},
		{Start: 4, End: 5, level: 0},
	}
	reorder(runs)
	assert.Equal(t, []int{0, 3, 2, 1, 4}, starts(runs))
}

func TestResolveLTRParagraph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	run := glyphing.TextRunFromString("abc \u05d0\u05d1\u05d2 def", glyphing.LeftToRight)
	runs, err := Resolve(run)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, glyphing.LeftToRight, runs[0].Direction)
	assert.Equal(t, 0, runs[0].Start)
	assert.Equal(t, Run{Start: 4, End: 7, Direction: glyphing.RightToLeft, level: 1}, runs[1])
	assert.Equal(t, run.Len(), runs[2].End)
}

func TestResolveRTLParagraph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	run := glyphing.TextRunFromString("\u05d0\u05d1\u05d2 abc", glyphing.RightToLeft)
	runs, err := Resolve(run)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	// visual order puts the Latin word left of the Hebrew one
	assert.Equal(t, glyphing.LeftToRight, runs[0].Direction)
	assert.Equal(t, run.Len(), runs[0].End)
	assert.Equal(t, glyphing.RightToLeft, runs[1].Direction)
	assert.Equal(t, 0, runs[1].Start)
}

func starts(runs []Run) []int {
	var s []int
	for _, r := range runs {
		s = append(s, r.Start)
	}
	return s
}

func TestResolveNumbersAfterRTL(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	// numbers between right-to-left words are Arabic numbers at level 2
	run := glyphing.TextRunFromString("ab \u0627\u0628 12 \u062a\u062b", glyphing.LeftToRight)
	runs, err := Resolve(run)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 8, 6, 3}, starts(runs))
	assert.Equal(t, Run{Start: 6, End: 8, Direction: glyphing.LeftToRight, level: 2}, runs[2])
	// numbers followed by left-to-right text are split off
	run = glyphing.TextRunFromString("\u0627\u0628 12 abc", glyphing.LeftToRight)
	runs, err = Resolve(run)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 0, 5}, starts(runs))
	assert.Equal(t, 5, runs[0].End)
	assert.Equal(t, run.Len(), runs[2].End)
	// left-to-right paragraph starting with right-to-left text
	run = glyphing.TextRunFromString("\u05d0\u05d1 abc", glyphing.LeftToRight)
	runs, err = Resolve(run)
	require.NoError(t, err)
	assert.Equal(t, []Run{
		{Start: 0, End: 2, Direction: glyphing.RightToLeft, level: 1},
		{Start: 2, End: 6, Direction: glyphing.LeftToRight},
	}, runs)
}

func TestResolveCountsCodeUnits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	run := glyphing.TextRunFromString("a\U0001F600b", glyphing.LeftToRight)
	require.Equal(t, 4, run.Len())
	runs, err := Resolve(run)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 4, runs[0].Len())
}

func TestResolveWithOverride(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	run := glyphing.TextRunFromString("abc \u05d0\u05d1", glyphing.RightToLeft).
		WithDirection(glyphing.RightToLeft, true)
	runs, err := Resolve(run)
	require.NoError(t, err)
	assert.Equal(t, []Run{{Start: 0, End: 6, Direction: glyphing.RightToLeft}}, runs)
	runs, err = Resolve(glyphing.TextRunFromString("", glyphing.LeftToRight))
	assert.NoError(t, err)
	assert.Empty(t, runs)
}
