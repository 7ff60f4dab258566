package monospace

import (
	"fmt"
	"sync"
	"unicode/utf16"

	"github.com/npillmayer/textshaping/engine/glyphing"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
)

var setupGraphemes sync.Once

// Cell is a grapheme of a text run, covering the code units [Start, End)
// and Width cells.
type Cell struct {
	Start, End int
	Width      int
}

func (c Cell) String() string {
	return fmt.Sprintf("[%d…%d]×%d", c.Start, c.End, c.Width)
}

// Measure is a cell grid for a language context.
type Measure struct {
	context *uax11.Context
}

// NewMeasure creates a cell grid. If context is nil, ambiguous characters
// occupy a single cell, as they do in Latin environments.
func NewMeasure(context *uax11.Context) *Measure {
	if context == nil {
		context = uax11.LatinContext
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	return &Measure{context: context}
}

// Cells splits run into graphemes and returns them in logical order,
// together with the total number of cells.
func (m *Measure) Cells(run glyphing.TextRun) ([]Cell, int) {
	if run.Len() == 0 {
		return nil, 0
	}
	gstr := grapheme.StringFromString(run.String())
	cells := make([]Cell, 0, gstr.Len())
	pos, total := 0, 0
	for i := 0; i < gstr.Len(); i++ {
		g := gstr.Nth(i)
		l := len(utf16.Encode([]rune(g)))
		w := uax11.Width([]byte(g), m.context)
		cells = append(cells, Cell{Start: pos, End: pos + l, Width: w})
		pos += l
		total += w
	}
	if pos != run.Len() {
		tracer().Errorf("monospace: graphemes cover %d of %d code units", pos, run.Len())
	}
	return cells, total
}

// Width returns the number of cells run occupies.
func (m *Measure) Width(run glyphing.TextRun) int {
	_, w := m.Cells(run)
	return w
}
