/*
Package glyphing turns runs of text into positioned glyphs.

The base model of this package is shared by the shapers in its
sub-packages:

■ A TextRun is an immutable view of 8-bit (Latin-1) or 16-bit (UTF-16) text,
together with direction, expansion and spacing properties. Character
indices always count code units.

■ A ShapeResult is the output of complex shaping: a sequence of RunInfos, each
holding glyphs for a range of characters set in a single font and script.
Shape results are immutable and may be shared between caches and clients.

■ A GlyphBuffer collects glyphs and their offsets for painting.

Shaping is single-threaded: shapers, caches and typecases must be confined
to one goroutine at a time.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphing

import (
	"encoding/binary"
	"strings"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tyse.glyphs'
func tracer() tracing.Trace {
	return tracing.Select("tyse.glyphs")
}

// Direction is the direction to typeset text in.
type Direction int

// Direction to typeset text in.
//
//go:generate stringer -type=Direction
const (
	LeftToRight Direction = iota
	RightToLeft
	TopToBottom
	BottomToTop
)

// IsHorizontal is true for LeftToRight and RightToLeft.
func (d Direction) IsHorizontal() bool {
	return d == LeftToRight || d == RightToLeft
}

// IsBackward is true for directions against the reading order of glyph
// advances (RightToLeft and BottomToTop).
func (d Direction) IsBackward() bool {
	return d == RightToLeft || d == BottomToTop
}

// CodePath is the kind of shaper responsible for a text run.
type CodePath int8

const (
	AutoPath    CodePath = iota // let the classifier decide
	SimplePath                  // per-character glyph lookup
	ComplexPath                 // shaping by an OpenType shaping engine
)

func (p CodePath) String() string {
	switch p {
	case SimplePath:
		return "simple"
	case ComplexPath:
		return "complex"
	}
	return "auto"
}

// FeatureRange tells a shaper to set a certain OpenType feature to a value for a
// range of characters.
type FeatureRange struct {
	Feature    string // 4-letter feature tag
	Arg        int    // value for this feature, 0 = off
	Start, End int    // positions of characters to apply feature for; End < 0 means "all"
}

// Script is a Unicode script as used by the shaping engines.
type Script = language.Script

// Common scripts for segmentation.
var (
	Common    = language.Common
	Inherited = language.Inherited
)

// ScriptOf returns the Unicode script of a code point.
func ScriptOf(r rune) Script {
	return language.LookupScript(r)
}

// ScriptFromISO converts a 4-letter ISO 15924 script code, e.g. "Latn", to a
// script. Codes are case-insensitive. Malformed codes result in Common.
func ScriptFromISO(code string) Script {
	if len(code) != 4 {
		return Common
	}
	b := []byte(strings.ToLower(code))
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A' // title case, as in "Latn"
	}
	return Script(binary.BigEndian.Uint32(b))
}
