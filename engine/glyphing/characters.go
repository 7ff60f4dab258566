package glyphing

import (
	"sort"
	"unicode"
)

// Special characters
const (
	TabulationCharacter        = '\t'
	NewlineCharacter           = '\n'
	SpaceCharacter             = ' '
	NoBreakSpaceCharacter      = 0x00A0
	SoftHyphenCharacter        = 0x00AD
	ZeroWidthSpaceCharacter    = 0x200B
	ZeroWidthNonJoiner         = 0x200C
	ZeroWidthJoinerCharacter   = 0x200D
	ZeroWidthNoBreakSpace      = 0xFEFF
	ObjectReplacementCharacter = 0xFFFC
)

// TreatAsSpace is true for characters which are set as a space and serve as
// expansion opportunities.
func TreatAsSpace(c rune) bool {
	return c == SpaceCharacter || c == TabulationCharacter || c == NewlineCharacter ||
		c == NoBreakSpaceCharacter
}

// TreatAsZeroWidthSpaceInComplexScript is true for control and format
// characters which the complex shaper replaces by U+200B.
func TreatAsZeroWidthSpaceInComplexScript(c rune) bool {
	return c < 0x20 || (c >= 0x7F && c < 0xA0) || c == SoftHyphenCharacter ||
		c == ZeroWidthSpaceCharacter || (c >= 0x200E && c <= 0x200F) ||
		(c >= 0x202A && c <= 0x202E) || c == ZeroWidthNoBreakSpace ||
		c == ObjectReplacementCharacter
}

// TreatAsZeroWidthSpace is true for characters without advance.
func TreatAsZeroWidthSpace(c rune) bool {
	return TreatAsZeroWidthSpaceInComplexScript(c) || c == ZeroWidthNonJoiner ||
		c == ZeroWidthJoinerCharacter
}

// IsCombiningMark is true for characters of general category M.
func IsCombiningMark(c rune) bool {
	return unicode.Is(unicode.M, c)
}

// interval lists are sorted pairs of inclusive bounds

func inIntervals(list []rune, c rune) bool {
	i := sort.Search(len(list)/2, func(i int) bool {
		return list[2*i+1] >= c
	})
	return i < len(list)/2 && list[2*i] <= c
}

var cjkIdeographRanges = []rune{
	// CJK Radicals Supplement, Kangxi Radicals
	0x2E80, 0x2FDF,
	// CJK Strokes
	0x31C0, 0x31EF,
	// CJK Unified Ideographs Extension A
	0x3400, 0x4DBF,
	// CJK Unified Ideographs
	0x4E00, 0x9FFF,
	// CJK Compatibility Ideographs
	0xF900, 0xFAFF,
	// CJK Unified Ideographs Extension B
	0x20000, 0x2A6DF,
	// CJK Unified Ideographs Extension C and D
	0x2A700, 0x2B81F,
	// CJK Compatibility Ideographs Supplement
	0x2F800, 0x2FA1F,
}

// IsCJKIdeograph is true for Han ideographs and radicals.
func IsCJKIdeograph(c rune) bool {
	if c < cjkIdeographRanges[0] || c > cjkIdeographRanges[len(cjkIdeographRanges)-1] {
		return false
	}
	return inIntervals(cjkIdeographRanges, c)
}

var cjkSymbolRanges = []rune{
	0x2156, 0x215A,
	0x2160, 0x216B,
	0x2170, 0x217B,
	0x23BE, 0x23CC,
	0x2460, 0x2492,
	0x249C, 0x24FF,
	0x25CE, 0x25D3,
	0x25E2, 0x25E6,
	0x2600, 0x2603,
	0x2660, 0x266F,
	0x2672, 0x267D,
	0x2776, 0x277F,
	// Ideographic Description Characters and CJK Symbols and Punctuation,
	// excluding 0x3030; Hiragana, Katakana, Bopomofo
	0x2FF0, 0x302F,
	0x3031, 0x312F,
	// Kanbun, Bopomofo Extended
	0x3190, 0x31BF,
	// Enclosed CJK Letters and Months, CJK Compatibility
	0x3200, 0x33FF,
	0xF860, 0xF862,
	// CJK Compatibility Forms
	0xFE30, 0xFE4F,
	// Halfwidth and Fullwidth Forms
	0xFF00, 0xFF0C,
	0xFF0E, 0xFF1A,
	0xFF1F, 0xFFEF,
	// Emoji
	0x1F110, 0x1F129,
	0x1F130, 0x1F149,
	0x1F150, 0x1F169,
	0x1F170, 0x1F189,
	0x1F200, 0x1F6FF,
}

var cjkIsolatedSymbols = map[rune]bool{
	0x2C7: true, 0x2CA: true, 0x2CB: true, 0x2D9: true, // Mandarin tone marks
	0x2020: true, 0x2021: true, 0x2030: true, 0x203B: true, 0x203C: true,
	0x2042: true, 0x2047: true, 0x2048: true, 0x2049: true, 0x2051: true,
	0x20DD: true, 0x20DE: true, 0x2100: true, 0x2103: true, 0x2105: true,
	0x2109: true, 0x210A: true, 0x2113: true, 0x2116: true, 0x2121: true,
	0x212B: true, 0x213B: true, 0x2150: true, 0x2151: true, 0x2152: true,
	0x217F: true, 0x2189: true, 0x2307: true, 0x2312: true, 0x23CE: true,
	0x2423: true, 0x25A0: true, 0x25A1: true, 0x25A2: true, 0x25AA: true,
	0x25AB: true, 0x25B1: true, 0x25B2: true, 0x25B3: true, 0x25B6: true,
	0x25B7: true, 0x25BC: true, 0x25BD: true, 0x25C0: true, 0x25C1: true,
	0x25C6: true, 0x25C7: true, 0x25C9: true, 0x25CB: true, 0x25CC: true,
	0x25EF: true, 0x2605: true, 0x2606: true, 0x260E: true, 0x2616: true,
	0x2617: true, 0x2640: true, 0x2642: true, 0x26A0: true, 0x26BD: true,
	0x26BE: true, 0x2713: true, 0x271A: true, 0x273F: true, 0x2740: true,
	0x2756: true, 0x2B1A: true, 0xFE10: true, 0xFE11: true, 0xFE12: true,
	0xFE19: true, 0xFF1D: true,
	0x1F100: true, // Emoji
}

// IsCJKIdeographOrSymbol is true for characters which, in auto
// justification, allow expansion both before and after them.
func IsCJKIdeographOrSymbol(c rune) bool {
	if c < 0x2C7 {
		return false
	}
	if cjkIsolatedSymbols[c] {
		return true
	}
	if IsCJKIdeograph(c) {
		return true
	}
	return inIntervals(cjkSymbolRanges, c)
}

// CanReceiveTextEmphasis is false for separators, control, format and
// unassigned characters, and for word separators of some scripts.
func CanReceiveTextEmphasis(c rune) bool {
	if unicode.In(c, unicode.Zs, unicode.Zl, unicode.Zp, unicode.Cc, unicode.Cf) {
		return false
	}
	if !unicode.In(c, unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Z, unicode.C) {
		return false // not assigned
	}
	// word separators: Ethiopic, Aegean, Ugaritic, Tibetan
	switch c {
	case 0x1361, 0x10100, 0x10101, 0x1039F, 0x0F0B, 0x0F0C:
		return false
	}
	return true
}

// ExpansionOpportunityCount counts the opportunities for justification
// expansion in the characters [from, to) of run. isAfterExpansion carries
// the state of the preceding text in and the state at the end of the range
// out. For right-to-left runs, characters are visited in visual order.
func ExpansionOpportunityCount(run TextRun, from, to int, isAfterExpansion *bool) int {
	count := 0
	switch run.textJustify {
	case JustifyNone:
		return 0
	case JustifyDistribute:
		it := NewCodePointIterator(run, from, to)
		for _, l, ok := it.Consume(); ok; _, l, ok = it.Consume() {
			count++
			it.Advance(l)
		}
		if count > 0 {
			*isAfterExpansion = true
		}
		return count
	}
	visit := func(c rune) {
		if TreatAsSpace(c) {
			count++
			*isAfterExpansion = true
			return
		}
		if run.textJustify == JustifyAuto && IsCJKIdeographOrSymbol(c) {
			if !*isAfterExpansion {
				count++
			}
			count++
			*isAfterExpansion = true
			return
		}
		*isAfterExpansion = false
	}
	if run.LTR() {
		it := NewCodePointIterator(run, from, to)
		for r, l, ok := it.Consume(); ok; r, l, ok = it.Consume() {
			visit(r)
			it.Advance(l)
		}
		return count
	}
	for i := to; i > from; {
		c := rune(run.At(i - 1))
		i--
		if isTrailSurrogate(uint16(c)) && i > from && isLeadSurrogate(run.At(i-1)) {
			c, _ = run.CodePointAt(i - 1)
			i--
		}
		visit(c)
	}
	return count
}
