package monospace

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textshaping/engine/glyphing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatinCells(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	m := NewMeasure(nil)
	cells, w := m.Cells(glyphing.TextRunFromString("ab", glyphing.LeftToRight))
	assert.Equal(t, 2, w)
	assert.Equal(t, []Cell{{Start: 0, End: 1, Width: 1}, {Start: 1, End: 2, Width: 1}}, cells)
	cells, w = m.Cells(glyphing.TextRunFromString("", glyphing.LeftToRight))
	assert.Empty(t, cells)
	assert.Equal(t, 0, w)
}

func TestWideCells(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	m := NewMeasure(nil)
	run := glyphing.TextRunFromString("a\u4e2d", glyphing.LeftToRight)
	cells, w := m.Cells(run)
	require.Len(t, cells, 2)
	assert.Equal(t, 2, cells[1].Width)
	assert.Equal(t, 3, w)
	assert.Equal(t, 3, m.Width(run))
}

func TestCellsCountCodeUnits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.glyphs")
	defer teardown()
	//
	m := NewMeasure(nil)
	run := glyphing.TextRunFromString("x\U0001F600y", glyphing.LeftToRight)
	cells, _ := m.Cells(run)
	require.Len(t, cells, 3)
	assert.Equal(t, 1, cells[1].Start)
	assert.Equal(t, 3, cells[1].End)
	assert.Equal(t, 4, cells[2].End)
}
