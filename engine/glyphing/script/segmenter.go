/*
Package script splits text into runs of a single font and a single script.

Complex shaping engines shape text run by run. A run is a maximal range of
characters which share the typecase their glyphs are taken from and a
Unicode script. Characters of script Common or Inherited (spaces,
punctuation, combining marks) are attributed to a neighbouring script, and
characters used by multiple scripts are resolved with the help of Unicode
script extensions.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package script

import (
	"fmt"
	"unicode/utf16"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textshaping/core/font"
	"github.com/npillmayer/textshaping/engine/glyphing"
)

// tracer writes to trace with key 'tyse.glyphs'
func tracer() tracing.Trace {
	return tracing.Select("tyse.glyphs")
}

// Run is a range [Start, End) of characters set in one typecase and one
// script.
type Run struct {
	Start, End int
	Font       *font.TypeCase
	Script     glyphing.Script
}

func newRun(start, end int, tc *font.TypeCase, script glyphing.Script) Run {
	if start >= end {
		panic(fmt.Sprintf("script run must not be empty: [%d,%d)", start, end))
	}
	return Run{Start: start, End: end, Font: tc, Script: script}
}

// Len returns the number of characters of the run.
func (r Run) Len() int {
	return r.End - r.Start
}

func (r Run) String() string {
	return fmt.Sprintf("[%d,%d) %s %v", r.Start, r.End, r.Script, r.Font)
}

// Segment splits UTF-16 text into runs of a single typecase and script.
// Runs are returned in logical order and cover text without gaps.
//
// Glyphs are looked up in f, with spaces normalized if normalizeSpace is
// set. Text of length 1 is not segmented, but returned as a single run of
// the character's own script.
func Segment(text []uint16, f *font.Font, normalizeSpace bool) []Run {
	if len(text) == 0 {
		return nil
	}
	if len(text) == 1 {
		c := rune(text[0])
		tc := f.GlyphDataForCharacter(c, false, normalizeSpace, font.AutoVariant).Font
		return []Run{newRun(0, 1, tc, glyphing.ScriptOf(c))}
	}
	candidates := collectCandidateRuns(text, f, normalizeSpace)
	resolveCandidateRuns(candidates, text)
	runs := mergeRuns(candidates)
	tracer().Debugf("segmented %d characters into %d runs", len(text), len(runs))
	return runs
}

// collectCandidateRuns breaks text into runs wherever the typecase or the
// script changes. Scripts of the runs are not yet resolved.
func collectCandidateRuns(text []uint16, f *font.Font, normalizeSpace bool) []Run {
	lookup := func(c rune) *font.TypeCase {
		return f.GlyphDataForCharacter(c, false, normalizeSpace, font.AutoVariant).Font
	}
	it := glyphing.NewCodePointIterator(glyphing.NewTextRun16(text, glyphing.LeftToRight), 0, len(text))
	c, l, ok := it.Consume()
	if !ok {
		return nil
	}
	nextFont := lookup(c)
	nextScript := glyphing.ScriptOf(c)
	var runs []Run
	start := 0
	for ok {
		currentFont, currentScript := nextFont, nextScript
		baseStart := it.Offset() // start of the most recent base character
		afterZWJ := c == glyphing.ZeroWidthJoinerCharacter
		it.Advance(l)
		for c, l, ok = it.Consume(); ok; c, l, ok = it.Consume() {
			if glyphing.TreatAsZeroWidthSpace(c) {
				afterZWJ = c == glyphing.ZeroWidthJoinerCharacter
				it.Advance(l)
				continue
			}
			if glyphing.IsCombiningMark(c) {
				seq := utf16.Decode(text[baseStart : it.Offset()+l])
				if currentFont.CanRenderCombiningCharacterSequence(seq) {
					it.Advance(l)
					continue
				}
			}
			nextFont = lookup(c)
			nextScript = glyphing.ScriptOf(c)
			if afterZWJ {
				nextFont = currentFont
				afterZWJ = false
			}
			if nextFont != currentFont || (currentScript != nextScript &&
				nextScript != glyphing.Inherited && !hasScript(c, currentScript)) {
				break
			}
			baseStart = it.Offset()
			it.Advance(l)
		}
		runs = append(runs, newRun(start, it.Offset(), currentFont, currentScript))
		start = it.Offset()
	}
	return runs
}

// resolveCandidateRuns attributes runs of script Common and Inherited, and
// runs of characters shared between scripts, to a neighbouring script.
func resolveCandidateRuns(runs []Run, text []uint16) {
	for i := 0; i < len(runs); i++ {
		run := &runs[i]
		if run.Script == glyphing.Inherited {
			run.Script = glyphing.Common
			if i > 0 {
				run.Script = runs[i-1].Script
			}
		}
		c, _ := glyphing.NewTextRun16(text, glyphing.LeftToRight).CodePointAt(run.Start)
		if ext := extensionsOf(c); len(ext) > 1 || (len(ext) == 1 && ext[0] != run.Script) {
			if i > 0 && hasScript(c, runs[i-1].Script) {
				run.Script = runs[i-1].Script
				continue
			}
			for j := i + 1; j < len(runs); j++ {
				s := runs[j].Script
				if s != glyphing.Common && s != glyphing.Inherited && hasScript(c, s) {
					run.Script = s
					break
				}
			}
		}
		if run.Script != glyphing.Common {
			continue
		}
		if i > 0 && runs[i-1].Script != glyphing.Common {
			run.Script = runs[i-1].Script
			continue
		}
		j := i + 1
		for j < len(runs) && (runs[j].Script == glyphing.Common || runs[j].Script == glyphing.Inherited) {
			j++
		}
		next := glyphing.Common
		if j < len(runs) {
			next = runs[j].Script
		}
		for k := i; k < j; k++ {
			runs[k].Script = next
		}
		i = j - 1
	}
}

// mergeRuns joins adjacent runs of the same typecase and script.
func mergeRuns(candidates []Run) []Run {
	runs := make([]Run, 0, len(candidates))
	for _, c := range candidates {
		if n := len(runs); n > 0 && runs[n-1].Font == c.Font && runs[n-1].Script == c.Script {
			runs[n-1].End = c.End
			continue
		}
		runs = append(runs, c)
	}
	return runs
}
