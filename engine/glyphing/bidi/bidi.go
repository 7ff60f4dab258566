/*
Package bidi splits text runs into runs of a single direction.

Resolution of bidirectional text is done by golang.org/x/text/unicode/bidi.
This package maps its results to text runs with UTF-16 offsets and orders
them visually.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package bidi

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textshaping/core"
	"github.com/npillmayer/textshaping/engine/glyphing"
	xbidi "golang.org/x/text/unicode/bidi"
)

// tracer traces with key 'tyse.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("tyse.glyphs")
}

const (
	lrm = '\u200e'
	rlm = '\u200f'
)

// Run is a range [Start, End) of a text run, in code units, to be set in a
// single direction.
type Run struct {
	Start, End int
	Direction  glyphing.Direction
	level      int
}

// Len returns the number of code units of r.
func (r Run) Len() int {
	return r.End - r.Start
}

func (r Run) String() string {
	dir := "ltr"
	if r.Direction == glyphing.RightToLeft {
		dir = "rtl"
	}
	return fmt.Sprintf("[%d…%d]%s", r.Start, r.End, dir)
}

// Direction4Bidi converts a direction to a bidi direction. Vertical
// directions are treated as left-to-right.
func Direction4Bidi(d glyphing.Direction) xbidi.Direction {
	if d == glyphing.RightToLeft {
		return xbidi.RightToLeft
	}
	return xbidi.LeftToRight
}

// DirectionOf converts a bidi direction to a text direction. Mixed and
// neutral directions are treated as left-to-right.
func DirectionOf(d xbidi.Direction) glyphing.Direction {
	if d == xbidi.RightToLeft {
		return glyphing.RightToLeft
	}
	return glyphing.LeftToRight
}

// Resolve splits run into directional runs, which are returned in visual
// order. The base direction of the paragraph is the direction of run. Runs
// with a directional override are not split.
func Resolve(run glyphing.TextRun) ([]Run, error) {
	if run.Len() == 0 {
		return nil, nil
	}
	if run.DirectionalOverride() {
		return []Run{{Start: 0, End: run.Len(), Direction: run.Direction()}}, nil
	}
	// bidi positions count runes
	offsets := make([]int, 0, run.Len()+1)
	runes := make([]rune, 0, run.Len())
	it := glyphing.NewCodePointIterator(run, 0, run.Len())
	for c, l, ok := it.Consume(); ok; c, l, ok = it.Consume() {
		offsets = append(offsets, it.Offset())
		runes = append(runes, c)
		it.Advance(l)
	}
	offsets = append(offsets, run.Len())
	rtlBase := run.RTL()
	// x/text takes the direction as a default only, a leading mark enforces it
	mark := lrm
	if rtlBase {
		mark = rlm
	}
	text := string(mark) + string(runes)
	var p xbidi.Paragraph
	if _, err := p.SetString(text, xbidi.DefaultDirection(Direction4Bidi(run.Direction()))); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot resolve bidi text")
	}
	ordering, err := p.Order()
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot order bidi text")
	}
	runs := make([]Run, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		r := ordering.Run(i)
		start, end := r.Pos() // inclusive
		start, end = start-1, end-1
		if end < 0 { // the mark only
			continue
		}
		if start < 0 {
			start = 0
		}
		if end >= len(runes) || start > end {
			return nil, core.Error(core.EINTERNAL, "bidi run [%d,%d] out of range", start, end)
		}
		br := Run{Start: offsets[start], End: offsets[end+1], Direction: glyphing.LeftToRight}
		switch {
		case r.Direction() == xbidi.RightToLeft:
			br.Direction = glyphing.RightToLeft
			br.level = 1
		case rtlBase:
			br.level = 2
		default:
			runs = append(runs, ltrRuns(runes, offsets, start, end)...)
			continue
		}
		runs = append(runs, br)
	}
	reorder(runs)
	tracer().Debugf("bidi runs %v", runs)
	return runs, nil
}

// ltrRuns splits the left-to-right runes [start, end] of a left-to-right
// paragraph into runs at level 0 and runs at level 2. Digits take the
// direction of the preceding strong character; after right-to-left text
// they are Arabic numbers, which are raised to level 2, together with
// separators between them.
func ltrRuns(runes []rune, offsets []int, start, end int) []Run {
	afterRTL := false
	for i := start - 1; i >= 0; i-- {
		if c := classOf(runes[i]); c == xbidi.L {
			break
		} else if c == xbidi.R || c == xbidi.AL {
			afterRTL = true
			break
		}
	}
	var runs []Run
	for i := start; i <= end; i++ {
		level := 0
		switch classOf(runes[i]) {
		case xbidi.L:
			afterRTL = false
		case xbidi.EN, xbidi.AN:
			if afterRTL {
				level = 2
			}
		case xbidi.CS, xbidi.ES:
			if afterRTL && i > start && i < end && isNumber(runes[i-1]) && isNumber(runes[i+1]) {
				level = 2
			}
		}
		if n := len(runs); n > 0 && runs[n-1].level == level {
			runs[n-1].End = offsets[i+1]
			continue
		}
		runs = append(runs, Run{Start: offsets[i], End: offsets[i+1], Direction: glyphing.LeftToRight,
			level: level})
	}
	return runs
}

func classOf(r rune) xbidi.Class {
	props, _ := xbidi.LookupRune(r)
	return props.Class()
}

func isNumber(r rune) bool {
	c := classOf(r)
	return c == xbidi.EN || c == xbidi.AN
}

// reorder brings runs from logical to visual order by reversing every
// maximal sequence of runs at or above a level, from the highest level down
// to level 1.
func reorder(runs []Run) {
	highest := 0
	for _, r := range runs {
		if r.level > highest {
			highest = r.level
		}
	}
	for level := highest; level >= 1; level-- {
		for i := 0; i < len(runs); {
			if runs[i].level < level {
				i++
				continue
			}
			j := i
			for j < len(runs) && runs[j].level >= level {
				j++
			}
			for a, b := i, j-1; a < b; a, b = a+1, b-1 {
				runs[a], runs[b] = runs[b], runs[a]
			}
			i = j
		}
	}
}
