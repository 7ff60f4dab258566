package glyphing

import (
	"unicode/utf16"
	"unicode/utf8"
)

// ExpansionBehavior controls whether justification may add space before the
// first or after the last character of a run.
type ExpansionBehavior uint8

const (
	AllowTrailingExpansion  ExpansionBehavior = 0
	ForbidTrailingExpansion ExpansionBehavior = 1 << 0
	AllowLeadingExpansion   ExpansionBehavior = 1 << 1
	ForbidLeadingExpansion  ExpansionBehavior = 0
)

// DefaultExpansion allows trailing and forbids leading expansion.
const DefaultExpansion = AllowTrailingExpansion | ForbidLeadingExpansion

// TextJustify is the justification mode of a run.
type TextJustify int8

const (
	JustifyAuto       TextJustify = iota // spaces and CJK ideographs/symbols are opportunities
	JustifyNone                          // no expansion at all
	JustifyInterWord                     // spaces are opportunities
	JustifyDistribute                    // every character is an opportunity
)

// TextRun is an immutable view over a run of text, either 8-bit (Latin-1) or
// 16-bit (UTF-16), together with properties for shaping.
//
// A TextRun does not copy the text it is constructed from. Clients must not
// modify the text while a run (or a sub-run of it) is in use.
type TextRun struct {
	chars8              []byte
	chars16             []uint16
	is8Bit              bool
	direction           Direction
	directionalOverride bool
	codePath            CodePath
	expansion           float32
	expansionBehavior   ExpansionBehavior
	glyphStretch        float32
	allowTabs           bool
	tabSize             int
	xPos                float32
	textJustify         TextJustify
	normalizeSpace      bool
}

// NewTextRun8 creates a run over Latin-1 text.
func NewTextRun8(chars []byte, dir Direction) TextRun {
	return TextRun{
		chars8:            chars,
		is8Bit:            true,
		direction:         dir,
		expansionBehavior: DefaultExpansion,
		glyphStretch:      1,
		tabSize:           8,
	}
}

// NewTextRun16 creates a run over UTF-16 text.
func NewTextRun16(chars []uint16, dir Direction) TextRun {
	return TextRun{
		chars16:           chars,
		direction:         dir,
		expansionBehavior: DefaultExpansion,
		glyphStretch:      1,
		tabSize:           8,
	}
}

// TextRunFromString creates a run from a Go string. If all characters are in
// the Latin-1 range, the run is 8-bit, otherwise it is 16-bit.
func TextRunFromString(s string, dir Direction) TextRun {
	latin1 := true
	n := 0
	for _, r := range s {
		if r > 0xff {
			latin1 = false
			break
		}
		n++
	}
	if latin1 {
		b := make([]byte, 0, n)
		for _, r := range s {
			b = append(b, byte(r))
		}
		return NewTextRun8(b, dir)
	}
	return NewTextRun16(utf16.Encode([]rune(s)), dir)
}

// Len returns the number of code units of the run.
func (run TextRun) Len() int {
	if run.is8Bit {
		return len(run.chars8)
	}
	return len(run.chars16)
}

// Is8Bit is true for Latin-1 runs.
func (run TextRun) Is8Bit() bool {
	return run.is8Bit
}

// At returns the code unit at position i.
func (run TextRun) At(i int) uint16 {
	if run.is8Bit {
		return uint16(run.chars8[i])
	}
	return run.chars16[i]
}

// Characters8 returns the text of an 8-bit run, or nil.
func (run TextRun) Characters8() []byte {
	return run.chars8
}

// Characters16 returns the text of a 16-bit run, or nil.
func (run TextRun) Characters16() []uint16 {
	return run.chars16
}

// CodePointAt decodes the code point starting at position i and returns it
// together with its length in code units. Unpaired surrogates are returned
// as U+FFFD with a length of 1.
func (run TextRun) CodePointAt(i int) (rune, int) {
	if run.is8Bit {
		return rune(run.chars8[i]), 1
	}
	return decodeUTF16(run.chars16, i, len(run.chars16))
}

func decodeUTF16(chars []uint16, i, end int) (rune, int) {
	c := chars[i]
	if !utf16.IsSurrogate(rune(c)) {
		return rune(c), 1
	}
	if isLeadSurrogate(c) && i+1 < end && isTrailSurrogate(chars[i+1]) {
		return utf16.DecodeRune(rune(c), rune(chars[i+1])), 2
	}
	return utf8.RuneError, 1
}

func isLeadSurrogate(c uint16) bool {
	return c >= 0xD800 && c <= 0xDBFF
}

func isTrailSurrogate(c uint16) bool {
	return c >= 0xDC00 && c <= 0xDFFF
}

// HasUnpairedSurrogates is true if a 16-bit run contains malformed UTF-16.
func (run TextRun) HasUnpairedSurrogates() bool {
	if run.is8Bit {
		return false
	}
	for i := 0; i < len(run.chars16); i++ {
		c := run.chars16[i]
		switch {
		case isLeadSurrogate(c):
			if i+1 >= len(run.chars16) || !isTrailSurrogate(run.chars16[i+1]) {
				return true
			}
			i++
		case isTrailSurrogate(c):
			return true
		}
	}
	return false
}

// UTF16 returns the text of the run as UTF-16 code units. For 16-bit runs
// the underlying text is returned without copying.
func (run TextRun) UTF16() []uint16 {
	if !run.is8Bit {
		return run.chars16
	}
	u := make([]uint16, len(run.chars8))
	for i, c := range run.chars8 {
		u[i] = uint16(c)
	}
	return u
}

// String returns the text of the run.
func (run TextRun) String() string {
	if run.is8Bit {
		r := make([]rune, len(run.chars8))
		for i, c := range run.chars8 {
			r[i] = rune(c)
		}
		return string(r)
	}
	return string(utf16.Decode(run.chars16))
}

// SubRun returns a run for the characters [start, start+length). It keeps
// the text encoding and all properties of run.
func (run TextRun) SubRun(start, length int) TextRun {
	sub := run
	if run.is8Bit {
		sub.chars8 = run.chars8[start : start+length]
	} else {
		sub.chars16 = run.chars16[start : start+length]
	}
	return sub
}

func (run TextRun) Direction() Direction {
	return run.direction
}

// RTL is true for right-to-left runs.
func (run TextRun) RTL() bool {
	return run.direction == RightToLeft
}

// LTR is true for left-to-right runs.
func (run TextRun) LTR() bool {
	return run.direction != RightToLeft
}

func (run TextRun) DirectionalOverride() bool {
	return run.directionalOverride
}

// RequestedCodePath returns a code path forced by the client, or AutoPath.
func (run TextRun) RequestedCodePath() CodePath {
	return run.codePath
}

// Expansion returns the amount of justification space to distribute.
func (run TextRun) Expansion() float32 {
	return run.expansion
}

func (run TextRun) AllowsLeadingExpansion() bool {
	return run.expansionBehavior&AllowLeadingExpansion != 0
}

func (run TextRun) AllowsTrailingExpansion() bool {
	return run.expansionBehavior&ForbidTrailingExpansion == 0
}

// GlyphStretch returns the horizontal stretch factor for glyph advances.
func (run TextRun) GlyphStretch() float32 {
	return run.glyphStretch
}

// AllowTabs is true if tab characters advance to tab stops.
func (run TextRun) AllowTabs() bool {
	return run.allowTabs
}

// TabSize returns the distance of tab stops in multiples of a space.
func (run TextRun) TabSize() int {
	return run.tabSize
}

// XPos returns the position of the run's start within its line. Tab stops
// are calculated relative to the line start.
func (run TextRun) XPos() float32 {
	return run.xPos
}

func (run TextRun) TextJustify() TextJustify {
	return run.textJustify
}

func (run TextRun) NormalizeSpace() bool {
	return run.normalizeSpace
}

// --- Modifiers -------------------------------------------------------------

// WithDirection returns a copy of run with a different base direction.
func (run TextRun) WithDirection(dir Direction, override bool) TextRun {
	run.direction = dir
	run.directionalOverride = override
	return run
}

// WithCodePath returns a copy of run which forces a code path.
func (run TextRun) WithCodePath(p CodePath) TextRun {
	run.codePath = p
	return run
}

// WithExpansion returns a copy of run with justification space to distribute.
func (run TextRun) WithExpansion(expansion float32, behavior ExpansionBehavior) TextRun {
	run.expansion = expansion
	run.expansionBehavior = behavior
	return run
}

// WithTextJustify returns a copy of run with a justification mode.
func (run TextRun) WithTextJustify(j TextJustify) TextRun {
	run.textJustify = j
	return run
}

// WithTabs returns a copy of run which sets tab characters to tab stops every
// tabSize spaces. xpos is the position of the run within its line.
func (run TextRun) WithTabs(tabSize int, xpos float32) TextRun {
	run.allowTabs = true
	run.tabSize = tabSize
	run.xPos = xpos
	return run
}

// WithGlyphStretch returns a copy of run with a horizontal stretch factor.
func (run TextRun) WithGlyphStretch(stretch float32) TextRun {
	run.glyphStretch = stretch
	return run
}

// WithNormalizedSpace returns a copy of run which treats space-like
// characters as U+0020.
func (run TextRun) WithNormalizedSpace(normalize bool) TextRun {
	run.normalizeSpace = normalize
	return run
}
