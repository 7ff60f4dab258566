package glyphing

import (
	"github.com/npillmayer/textshaping/core/font"
)

// CodePathFor decides which shaper is responsible for the characters
// [from, to) of a run set in a font with a given description.
//
// The decision depends on the whole run, not only on the range, as drawing
// and highlighting measure the characters before from as well.
// Rules are applied in order, the first matching rule wins.
func CodePathFor(run TextRun, from, to int, desc *font.FontDescription, alwaysComplex bool) CodePath {
	if alwaysComplex {
		return ComplexPath
	}
	features := desc.TypesettingFeatures()
	if features != 0 && (from > 0 || to != run.Len()) {
		return ComplexPath
	}
	if len(desc.FeatureSettings) > 0 && desc.LetterSpacing == 0 {
		return ComplexPath
	}
	if desc.IsVerticalBaseline() || desc.WidthVariant != font.RegularWidth {
		return ComplexPath
	}
	if run.Len() > 1 && features != 0 {
		return ComplexPath
	}
	if desc.TextRendering == font.OptimizeLegibility || desc.TextRendering == font.GeometricPrecision {
		return ComplexPath
	}
	switch run.RequestedCodePath() {
	case SimplePath, ComplexPath:
		return run.RequestedCodePath()
	}
	if run.Is8Bit() {
		return SimplePath
	}
	return CharacterRangeCodePath(run.Characters16())
}

// complexCodePathRanges are ranges of BMP characters which need complex
// shaping. Pairs of inclusive bounds.
var complexCodePathRanges = []rune{
	// Modifier Letters: tone letters
	0x02E5, 0x02E9,
	// Combining Diacritical Marks
	0x0300, 0x036F,
	// Hebrew combining marks, excluding U+05BE Maqaf
	0x0591, 0x05BD,
	// Hebrew punctuation Paseq, Sof Pasuq and Nun Hafukha
	0x05BF, 0x05CF,
	// Arabic, Syriac, Thaana, NKo, Samaritan, Mandaic, Devanagari, Bengali,
	// Gurmukhi, Gujarati, Oriya, Tamil, Telugu, Kannada, Malayalam, Sinhala,
	// Thai, Lao, Tibetan, Myanmar
	0x0600, 0x109F,
	// Hangul Jamo
	0x1100, 0x11FF,
	// Ethiopic combining marks
	0x135D, 0x135F,
	// Tagalog, Hanunoo, Buhid, Tagbanwa, Khmer, Mongolian
	0x1700, 0x18AF,
	// Limbu
	0x1900, 0x194F,
	// New Tai Lue
	0x1980, 0x19DF,
	// Buginese, Tai Tham, Balinese, Batak, Lepcha, Vedic
	0x1A00, 0x1CFF,
	// Combining Diacritical Marks Supplement
	0x1DC0, 0x1DFF,
	// Combining Diacritical Marks for Symbols
	0x20D0, 0x20FF,
	// Coptic combining marks
	0x2CEF, 0x2CF1,
	// Ideographic and Hangul tone marks
	0x302A, 0x302F,
	// Combining Katakana-Hiragana voiced sound marks
	0x3099, 0x309A,
	// Old Cyrillic combining marks
	0xA67C, 0xA67D,
	// Bamum combining marks
	0xA6F0, 0xA6F1,
	// Syloti Nagri, Phags-pa, Saurashtra, Devanagari Extended, Hangul Jamo
	// Extended-A, Javanese, Myanmar Extended-A, Tai Viet, Meetei Mayek
	0xA800, 0xABFF,
	// Hangul Jamo Extended-B
	0xD7B0, 0xD7FF,
	// Variation Selectors
	0xFE00, 0xFE0F,
	// Combining Half Marks
	0xFE20, 0xFE2F,
}

// CharacterRangeCodePath scans UTF-16 text for characters which cannot be
// set by per-character glyph lookup.
func CharacterRangeCodePath(chars []uint16) CodePath {
	for i := 0; i < len(chars); i++ {
		c := rune(chars[i])
		if c < 0x2E5 { // shortcut for the common case
			continue
		}
		if isLeadSurrogate(uint16(c)) {
			if i == len(chars)-1 {
				continue
			}
			next := chars[i+1]
			if !isTrailSurrogate(next) {
				continue
			}
			i++
			supplementary, _ := decodeUTF16(chars, i-1, len(chars))
			if supplementary >= 0x1F1E6 && supplementary <= 0x1F1FF {
				return ComplexPath // Regional Indicator Symbols
			}
			if supplementary >= 0x1F3FB && supplementary <= 0x1F3FF {
				return ComplexPath // Emoji skin tone modifiers
			}
			if supplementary >= 0xE0100 && supplementary <= 0xE01EF {
				return ComplexPath // Variation Selectors Supplement
			}
			continue
		}
		if inIntervals(complexCodePathRanges, c) {
			return ComplexPath
		}
	}
	return SimplePath
}
