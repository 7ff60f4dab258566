package glyphing

import (
	"fmt"

	"github.com/npillmayer/textshaping/core/dimen"
	"github.com/npillmayer/textshaping/core/font"
)

// ShapedGlyph is a glyph as output by a shaper.
type ShapedGlyph struct {
	Glyph          font.GlyphID
	CharacterIndex uint16      // cluster start, relative to the run
	Advance        float32     // in pixels
	Offset         dimen.Point // from the pen position, y growing downwards
}

// RunInfo holds the glyphs of a single shaping run: a range of characters
// set in one typecase and one script. Glyphs are stored in visual order,
// as output by the shaping engine.
//
// RunInfos are filled by shapers and frozen when the ShapeResult they are
// part of is built. Setters on frozen RunInfos panic.
type RunInfo struct {
	font          *font.TypeCase
	direction     Direction
	script        Script
	startIndex    int
	numCharacters int
	glyphs        []ShapedGlyph
	width         float32
	frozen        bool
}

// NewRunInfo creates a run for numGlyphs glyphs, which shapers will fill
// with SetGlyph. The run covers the characters [start, start+numCharacters).
func NewRunInfo(tc *font.TypeCase, dir Direction, script Script, start, numCharacters, numGlyphs int) *RunInfo {
	if numCharacters <= 0 {
		panic("run info must cover at least one character")
	}
	return &RunInfo{
		font:          tc,
		direction:     dir,
		script:        script,
		startIndex:    start,
		numCharacters: numCharacters,
		glyphs:        make([]ShapedGlyph, numGlyphs),
	}
}

// Font returns the typecase the glyphs of the run are taken from.
func (ri *RunInfo) Font() *font.TypeCase {
	return ri.font
}

// Direction returns the shaping direction of the run.
func (ri *RunInfo) Direction() Direction {
	return ri.direction
}

// RTL is true for runs shaped right-to-left.
func (ri *RunInfo) RTL() bool {
	return ri.direction == RightToLeft
}

// Script returns the script the run has been shaped for.
func (ri *RunInfo) Script() Script {
	return ri.script
}

// StartIndex returns the index of the run's first character within the
// shaped text.
func (ri *RunInfo) StartIndex() int {
	return ri.startIndex
}

// NumCharacters returns the number of characters (code units) of the run.
func (ri *RunInfo) NumCharacters() int {
	return ri.numCharacters
}

// NumGlyphs returns the number of glyphs of the run.
func (ri *RunInfo) NumGlyphs() int {
	return len(ri.glyphs)
}

// Glyph returns the glyph at visual position i.
func (ri *RunInfo) Glyph(i int) ShapedGlyph {
	return ri.glyphs[i]
}

// GlyphToCharacterIndex returns the index of the first character of the
// cluster of glyph i, relative to the shaped text.
func (ri *RunInfo) GlyphToCharacterIndex(i int) int {
	return ri.startIndex + int(ri.glyphs[i].CharacterIndex)
}

// Width returns the sum of the advances of the run's glyphs.
func (ri *RunInfo) Width() float32 {
	return ri.width
}

// SetGlyph sets the glyph at visual position i.
func (ri *RunInfo) SetGlyph(i int, g ShapedGlyph) {
	ri.assertMutable()
	ri.glyphs[i] = g
}

// SetWidth sets the width of the run.
func (ri *RunInfo) SetWidth(w float32) {
	ri.assertMutable()
	ri.width = w
}

func (ri *RunInfo) assertMutable() {
	if ri.frozen {
		panic("run info is part of a shape result and must not be modified")
	}
}

func (ri *RunInfo) String() string {
	return fmt.Sprintf("run[%d+%d, %s, %d glyphs, w=%.2f]", ri.startIndex, ri.numCharacters,
		ri.script, len(ri.glyphs), ri.width)
}

// AdjustMidCluster tells how to treat character positions in the middle of
// a cluster.
type AdjustMidCluster int8

const (
	AdjustToStart AdjustMidCluster = iota // position of the start of the cluster
	AdjustToEnd                           // position of the end of the cluster
)

// XPositionForVisualOffset returns the x position of the character at
// offset, counted in visual order from the left edge of the run.
func (ri *RunInfo) XPositionForVisualOffset(offset int, adjust AdjustMidCluster) float32 {
	if ri.RTL() {
		offset = ri.numCharacters - offset - 1
	}
	return ri.XPositionForOffset(offset, adjust)
}

// XPositionForOffset returns the x position of the logical character
// offset, relative to the left edge of the run. For RTL runs this is the
// right edge of the character.
func (ri *RunInfo) XPositionForOffset(offset int, adjust AdjustMidCluster) float32 {
	n := len(ri.glyphs)
	i := 0
	var position float32
	if ri.RTL() {
		for i < n && int(ri.glyphs[i].CharacterIndex) > offset {
			position += ri.glyphs[i].Advance
			i++
		}
		if adjust == AdjustToEnd && ri.clusterAt(i) < offset {
			return position // offset is mid-cluster: take the left side
		}
		if i == n {
			return position
		}
		for i < n-1 && ri.glyphs[i].CharacterIndex == ri.glyphs[i+1].CharacterIndex {
			position += ri.glyphs[i].Advance
			i++
		}
		position += ri.glyphs[i].Advance
		return position
	}
	for i < n && int(ri.glyphs[i].CharacterIndex) < offset {
		position += ri.glyphs[i].Advance
		i++
	}
	if adjust == AdjustToStart && i > 0 && ri.clusterAt(i) > offset {
		i--
		cluster := ri.glyphs[i].CharacterIndex
		for ; ri.glyphs[i].CharacterIndex == cluster; i-- {
			position -= ri.glyphs[i].Advance
			if i == 0 {
				break
			}
		}
	}
	return position
}

// clusterAt returns the cluster index of glyph i, or the number of
// characters if i is past the last glyph.
func (ri *RunInfo) clusterAt(i int) int {
	if i < len(ri.glyphs) {
		return int(ri.glyphs[i].CharacterIndex)
	}
	return ri.numCharacters
}

// CharacterIndexForXPosition returns the character offset closest to x,
// relative to the left edge of the run. A position within the left half
// of a cluster maps to the cluster's left boundary.
func (ri *RunInfo) CharacterIndexForXPosition(x float32) int {
	n := len(ri.glyphs)
	if n == 0 {
		return 0
	}
	i := 0
	advance := ri.glyphs[0].Advance
	for i < n-1 && ri.glyphs[i].CharacterIndex == ri.glyphs[i+1].CharacterIndex {
		i++
		advance += ri.glyphs[i].Advance
	}
	advance /= 2
	if x <= advance {
		if ri.RTL() {
			return ri.numCharacters
		}
		return 0
	}
	currentX := advance
	for i++; i < n; i++ {
		prevCharacterIndex := int(ri.glyphs[i-1].CharacterIndex)
		prevAdvance := advance
		advance = ri.glyphs[i].Advance
		for i < n-1 && ri.glyphs[i].CharacterIndex == ri.glyphs[i+1].CharacterIndex {
			i++
			advance += ri.glyphs[i].Advance
		}
		advance /= 2
		nextX := currentX + prevAdvance + advance
		if currentX <= x && x <= nextX {
			if ri.RTL() {
				return prevCharacterIndex
			}
			return int(ri.glyphs[i].CharacterIndex)
		}
		currentX = nextX
	}
	if ri.RTL() {
		return 0
	}
	return ri.numCharacters
}

// --- Shape results ---------------------------------------------------------

// ShapeResult is the output of complex shaping of a text: a sequence of
// runs in visual order. Slots for runs without glyphs are nil.
//
// Shape results are immutable and are shared between the shape cache and
// its clients.
type ShapeResult struct {
	runs               []*RunInfo
	width              float32
	bounds             dimen.Rect
	numCharacters      int
	direction          Direction
	fallbackFonts      font.FontSet
	hasVerticalOffsets bool
}

// Width returns the total advance of the result.
func (sr *ShapeResult) Width() float32 {
	return sr.width
}

// Bounds returns the union of all glyph bounding boxes, relative to the
// start of the text.
func (sr *ShapeResult) Bounds() dimen.Rect {
	return sr.bounds
}

// NumCharacters returns the length of the shaped text in code units.
func (sr *ShapeResult) NumCharacters() int {
	return sr.numCharacters
}

// Direction returns the base direction of the shaped text.
func (sr *ShapeResult) Direction() Direction {
	return sr.direction
}

// RTL is true for results for right-to-left text.
func (sr *ShapeResult) RTL() bool {
	return sr.direction == RightToLeft
}

// RunCount returns the number of run slots, including empty ones.
func (sr *ShapeResult) RunCount() int {
	return len(sr.runs)
}

// Run returns the run in visual position i. It may be nil.
func (sr *ShapeResult) Run(i int) *RunInfo {
	return sr.runs[i]
}

// NumGlyphs returns the total number of glyphs of all runs.
func (sr *ShapeResult) NumGlyphs() int {
	n := 0
	for _, run := range sr.runs {
		if run != nil {
			n += len(run.glyphs)
		}
	}
	return n
}

// HasVerticalOffsets is true if any glyph has a vertical offset or the
// text has been shaped vertically.
func (sr *ShapeResult) HasVerticalOffsets() bool {
	return sr.hasVerticalOffsets
}

// FallbackFonts adds all typecases used for shaping other than the primary
// font to set.
func (sr *ShapeResult) FallbackFonts(set font.FontSet) {
	for tc := range sr.fallbackFonts {
		set.Add(tc)
	}
}

func (sr *ShapeResult) String() string {
	return fmt.Sprintf("shape-result[%d chars, %d runs, w=%.2f]", sr.numCharacters,
		len(sr.runs), sr.width)
}

// ShapeResultBuilder assembles a ShapeResult from runs.
type ShapeResultBuilder struct {
	primary *font.TypeCase
	result  *ShapeResult
}

// NewShapeResultBuilder starts a result for a text of numCharacters code
// units. Runs set in typecases other than primary are reported as fallback
// fonts.
func NewShapeResultBuilder(primary *font.TypeCase, numCharacters int, dir Direction) *ShapeResultBuilder {
	return &ShapeResultBuilder{
		primary: primary,
		result: &ShapeResult{
			numCharacters: numCharacters,
			direction:     dir,
			fallbackFonts: make(font.FontSet),
		},
	}
}

// AddRun appends a run in visual order. run may be nil for a run which did
// not produce any glyphs.
func (b *ShapeResultBuilder) AddRun(run *RunInfo) {
	if b.result == nil {
		panic("shape result has already been built")
	}
	b.result.runs = append(b.result.runs, run)
	if run == nil {
		return
	}
	b.result.width += run.width
	if run.font != b.primary {
		b.result.fallbackFonts.Add(run.font)
	}
	if !run.direction.IsHorizontal() {
		b.result.hasVerticalOffsets = true
	}
	for _, g := range run.glyphs {
		if g.Offset.Y != 0 {
			b.result.hasVerticalOffsets = true
			break
		}
	}
}

// UniteBounds adds a glyph bounding box, already translated to its position
// within the text, to the bounds of the result.
func (b *ShapeResultBuilder) UniteBounds(r dimen.Rect) {
	b.result.bounds = b.result.bounds.Unite(r)
}

// Build freezes all runs and returns the result. The builder cannot be used
// afterwards.
func (b *ShapeResultBuilder) Build() *ShapeResult {
	result := b.result
	for _, run := range result.runs {
		if run != nil {
			run.frozen = true
		}
	}
	b.result = nil
	return result
}
