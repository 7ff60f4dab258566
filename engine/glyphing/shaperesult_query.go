package glyphing

import (
	"github.com/npillmayer/textshaping/core/dimen"
	"github.com/npillmayer/textshaping/core/font"
)

// OffsetForPosition returns the character offset closest to x, where x is
// relative to the left edge of the shaped text.
func (sr *ShapeResult) OffsetForPosition(x float32) int {
	charactersSoFar := 0
	var currentX float32
	if sr.RTL() {
		charactersSoFar = sr.numCharacters
		for _, run := range sr.runs {
			if run == nil {
				continue
			}
			charactersSoFar -= run.numCharacters
			offsetForRun := x - currentX
			if offsetForRun >= 0 && offsetForRun <= run.width {
				return charactersSoFar + run.CharacterIndexForXPosition(offsetForRun)
			}
			currentX += run.width
		}
		return 0
	}
	for _, run := range sr.runs {
		if run == nil {
			continue
		}
		offsetForRun := x - currentX
		if offsetForRun >= 0 && offsetForRun <= run.width {
			return charactersSoFar + run.CharacterIndexForXPosition(offsetForRun)
		}
		charactersSoFar += run.numCharacters
		currentX += run.width
	}
	return sr.numCharacters
}

// OffsetForPosition returns the character offset closest to x for a text
// shaped as a sequence of results (one per word, in logical order). Nil
// results are skipped.
func OffsetForPosition(results []*ShapeResult, run TextRun, x float32) int {
	if run.RTL() {
		total := run.Len()
		for i := len(results); i > 0; i-- {
			word := results[i-1]
			if word == nil {
				continue
			}
			total -= word.numCharacters
			if x >= 0 && x <= word.width {
				return total + word.OffsetForPosition(x)
			}
			x -= word.width
		}
		return total
	}
	total := 0
	for _, word := range results {
		if word == nil {
			continue
		}
		total += word.OffsetForPosition(x)
		if x >= 0 && x <= word.width {
			return total
		}
		x -= word.width
	}
	return total
}

// SelectionRect returns the rectangle covering the characters [from, to) of
// a text shaped as a sequence of results, positioned at point.
func SelectionRect(results []*ShapeResult, dir Direction, totalWidth float32, point dimen.Point,
	height float32, absoluteFrom, absoluteTo int) dimen.Rect {
	//
	rtl := dir == RightToLeft
	var currentX, fromX, toX float32
	foundFromX, foundToX := false, false
	if rtl {
		currentX = totalWidth
	}
	// from and to are relative to the current word
	from, to := absoluteFrom, absoluteTo
	totalNumCharacters := 0
	for _, result := range results {
		if result == nil {
			continue
		}
		if result.NumGlyphs() == 0 {
			// characters without glyphs take no room
			n := result.numCharacters
			if !foundFromX {
				if from >= 0 && from < n {
					fromX, foundFromX = currentX, true
				} else {
					from -= n
				}
			}
			if !foundToX {
				if to >= 0 && to < n {
					toX, foundToX = currentX, true
				} else {
					to -= n
				}
			}
			totalNumCharacters += n
			continue
		}
		if rtl {
			// results are in logical order, runs in visual order
			if !foundFromX && from >= 0 && from < result.numCharacters {
				from = result.numCharacters - from - 1
			}
			if !foundToX && to >= 0 && to < result.numCharacters {
				to = result.numCharacters - to - 1
			}
			currentX -= result.width
		}
		for _, run := range result.runs {
			if run == nil {
				continue
			}
			n := run.numCharacters
			if !foundFromX && from >= 0 && from < n {
				fromX = run.XPositionForVisualOffset(from, AdjustToStart) + currentX
				foundFromX = true
			} else {
				from -= n
			}
			if !foundToX && to >= 0 && to < n {
				toX = run.XPositionForVisualOffset(to, AdjustToEnd) + currentX
				foundToX = true
			} else {
				to -= n
			}
			if foundFromX && foundToX {
				break
			}
			currentX += run.width
		}
		if rtl {
			currentX -= result.width
		}
		totalNumCharacters += result.numCharacters
	}
	// positions just after the text
	if !foundFromX && absoluteFrom == totalNumCharacters {
		fromX, foundFromX = endOfText(rtl, totalWidth), true
	}
	if !foundToX && absoluteTo == totalNumCharacters {
		toX, foundToX = endOfText(rtl, totalWidth), true
	}
	if !foundFromX && !foundToX { // none of the runs is part of the selection
		fromX, toX = 0, 0
	} else if !foundFromX {
		fromX = 0
	} else if !foundToX {
		toX = endOfText(rtl, totalWidth)
	}
	if fromX < toX {
		return dimen.Rect{X: point.X + fromX, Y: point.Y, W: toX - fromX, H: height}
	}
	return dimen.Rect{X: point.X + toX, Y: point.Y, W: fromX - toX, H: height}
}

func endOfText(rtl bool, totalWidth float32) float32 {
	if rtl {
		return 0
	}
	return totalWidth
}

// --- Glyph buffer filling --------------------------------------------------

// FillGlyphBuffer appends the glyphs for the characters [from, to) of run
// to buf. results is the shaped text of run, one result per word in
// logical order. It returns the total advance of the glyphs added.
//
// Results are visited in visual order. If any result has vertical offsets,
// glyphs are added with (x,y) offsets, otherwise with x-only offsets.
func FillGlyphBuffer(results []*ShapeResult, buf *GlyphBuffer, run TextRun, from, to int) float32 {
	vertical := hasVerticalOffsets(results)
	var advance float32
	if run.RTL() {
		wordOffset := run.Len()
		for j := len(results) - 1; j >= 0; j-- {
			word := results[j]
			if word == nil {
				continue
			}
			wordOffset -= word.numCharacters
			for _, ri := range word.runs {
				advance += fillGlyphBufferForRun(buf, ri, vertical, true, advance, from, to, wordOffset)
			}
		}
		return advance
	}
	wordOffset := 0
	for _, word := range results {
		if word == nil {
			continue
		}
		for _, ri := range word.runs {
			advance += fillGlyphBufferForRun(buf, ri, vertical, false, advance, from, to, wordOffset)
		}
		wordOffset += word.numCharacters
	}
	return advance
}

func hasVerticalOffsets(results []*ShapeResult) bool {
	for _, r := range results {
		if r != nil && r.hasVerticalOffsets {
			return true
		}
	}
	return false
}

// fillGlyphBufferForRun adds the glyphs of ri within [from, to). Glyphs
// before the range contribute to the advance, glyphs after it are skipped.
func fillGlyphBufferForRun(buf *GlyphBuffer, ri *RunInfo, vertical, rtl bool, initialAdvance float32,
	from, to, runOffset int) float32 {
	//
	if ri == nil {
		return 0
	}
	advanceSoFar := initialAdvance
	for _, g := range ri.glyphs {
		index := ri.startIndex + int(g.CharacterIndex) + runOffset
		if (rtl && index >= to) || (!rtl && index < from) {
			advanceSoFar += g.Advance
		} else if (rtl && index >= from) || (!rtl && index < to) {
			addGlyphToBuffer(buf, ri, g, advanceSoFar, vertical)
			advanceSoFar += g.Advance
		}
	}
	return advanceSoFar - initialAdvance
}

func addGlyphToBuffer(buf *GlyphBuffer, ri *RunInfo, g ShapedGlyph, advance float32, vertical bool) {
	if !vertical {
		buf.Add(g.Glyph, ri.font, advance+g.Offset.X)
		return
	}
	start := dimen.Point{X: advance}
	if !ri.direction.IsHorizontal() {
		start = dimen.Point{Y: advance}
	}
	buf.AddPoint(g.Glyph, ri.font, start.Shift(g.Offset))
}

// FillGlyphBufferForTextEmphasis appends emphasis marks for the characters
// [from, to) of run to buf, instead of the glyphs of the shaped text. Every
// grapheme which can receive emphasis gets a mark centered above it.
//
// Within a cluster of the shaping engine, the cluster's advance is split
// evenly across its graphemes. For 8-bit text every character gets its own
// mark.
func FillGlyphBufferForTextEmphasis(results []*ShapeResult, buf *GlyphBuffer, run TextRun,
	emphasis font.GlyphData, from, to int) float32 {
	//
	if emphasis.Font == nil {
		return 0
	}
	mark := emphasisMark{
		data:   emphasis,
		center: emphasis.Font.BoundsForGlyph(emphasis.Glyph).Center(),
	}
	var advance float32
	rtl := run.RTL()
	wordOffset := 0
	if rtl {
		wordOffset = run.Len()
	}
	for j := range results {
		resolved := j
		if rtl {
			resolved = len(results) - 1 - j
		}
		word := results[resolved]
		if word == nil {
			continue
		}
		runOffset := wordOffset
		if rtl {
			runOffset -= word.numCharacters
		}
		for _, ri := range word.runs {
			advance += fillGlyphBufferForTextEmphasisRun(buf, ri, run, mark, advance, from, to, runOffset)
		}
		if rtl {
			wordOffset -= word.numCharacters
		} else {
			wordOffset += word.numCharacters
		}
	}
	return advance
}

type emphasisMark struct {
	data   font.GlyphData
	center dimen.Point
}

// addTo centers the mark horizontally at midGlyphOffset.
func (m emphasisMark) addTo(buf *GlyphBuffer, midGlyphOffset float32) {
	buf.Add(m.data.Glyph, m.data.Font, midGlyphOffset-m.center.X)
}

func fillGlyphBufferForTextEmphasisRun(buf *GlyphBuffer, ri *RunInfo, run TextRun, mark emphasisMark,
	initialAdvance float32, from, to, runOffset int) float32 {
	//
	if ri == nil || len(ri.glyphs) == 0 {
		return 0
	}
	rtl := run.RTL()
	var clusterStart int
	if rtl {
		clusterStart = ri.startIndex + ri.numCharacters + runOffset
	} else {
		clusterStart = ri.GlyphToCharacterIndex(0) + runOffset
	}
	var clusterAdvance float32
	advanceSoFar := initialAdvance
	n := len(ri.glyphs)
	for i, g := range ri.glyphs {
		index := ri.startIndex + int(g.CharacterIndex) + runOffset
		isRunEnd := i+1 == n
		isClusterEnd := isRunEnd || ri.GlyphToCharacterIndex(i+1)+runOffset != index
		if (rtl && index >= to) || (!rtl && index < from) {
			advanceSoFar += g.Advance
			if rtl {
				clusterStart--
			} else {
				clusterStart++
			}
			continue
		}
		if (rtl && index < from) || (!rtl && index >= to) {
			continue
		}
		if run.Is8Bit() {
			if CanReceiveTextEmphasis(rune(run.At(index))) {
				mark.addTo(buf, advanceSoFar+g.Advance/2)
			}
			advanceSoFar += g.Advance
			continue
		}
		clusterAdvance += g.Advance
		if !isClusterEnd {
			continue
		}
		clusterEnd := index
		if !rtl {
			if isRunEnd {
				clusterEnd = ri.startIndex + ri.numCharacters + runOffset
			} else {
				clusterEnd = ri.GlyphToCharacterIndex(i+1) + runOffset
			}
		}
		graphemes := CountGraphemesInCluster(run.Characters16(), clusterStart, clusterEnd)
		if graphemes == 0 || clusterAdvance == 0 { // nothing to place
			advanceSoFar += clusterAdvance
		} else {
			perGrapheme := clusterAdvance / float32(graphemes)
			r, _ := run.CodePointAt(index)
			for k := 0; k < graphemes; k++ {
				if CanReceiveTextEmphasis(r) {
					mark.addTo(buf, advanceSoFar+perGrapheme/2)
				}
				advanceSoFar += perGrapheme
			}
		}
		clusterStart = clusterEnd
		clusterAdvance = 0
	}
	return advanceSoFar - initialAdvance
}
