package font

import (
	"math"
	"unicode"
)

// Font is a font as requested by style: a font description resolved to a
// list of typecases.
type Font struct {
	desc     FontDescription
	fallback *FallbackList
	byWord   int8 // 0 = not yet computed, 1 = false, 2 = true
}

// NewFont creates a font from a description and a fallback list.
func NewFont(desc FontDescription, fallback *FallbackList) *Font {
	if fallback == nil {
		panic("font requires a fallback list")
	}
	return &Font{desc: desc, fallback: fallback}
}

// Description returns the font's style properties.
func (f *Font) Description() *FontDescription {
	return &f.desc
}

// FallbackList returns the list of typecases of f.
func (f *Font) FallbackList() *FallbackList {
	return f.fallback
}

// PrimaryFont returns the first typecase of the fallback list.
func (f *Font) PrimaryFont() *TypeCase {
	return f.fallback.PrimaryFont()
}

// LetterSpacing returns the letter spacing in pixels.
func (f *Font) LetterSpacing() float32 {
	return f.desc.LetterSpacing
}

// WordSpacing returns the word spacing in pixels.
func (f *Font) WordSpacing() float32 {
	return f.desc.WordSpacing
}

// GlyphDataForCharacter looks up the glyph for a code point.
//
// If mirror is set, r is replaced by its mirrored counterpart. If
// normalizeSpace is set, space-like characters (tab, line feed, form feed,
// carriage return) are looked up as U+0020. Tab, line feed and no-break
// space always use the glyph of U+0020. With AutoVariant, lower-case
// characters of a small-caps font are looked up as upper-case characters
// in the small-caps typecase.
func (f *Font) GlyphDataForCharacter(r rune, mirror, normalizeSpace bool, variant Variant) GlyphData {
	if variant == AutoVariant {
		variant = NormalVariant
		if f.desc.Variant == FontVariantSmallCaps {
			if upper := unicode.ToUpper(r); upper != r {
				r = upper
				variant = SmallCapsVariant
			}
		}
	}
	if mirror {
		r = Mirror(r)
	}
	if (normalizeSpace && IsNormalizedSpace(r)) || isSetAsSpace(r) {
		r = ' '
	}
	return f.fallback.GlyphFor(r, variant)
}

// isSetAsSpace is true for characters drawn with the space glyph, whatever
// the font provides for them.
func isSetAsSpace(r rune) bool {
	return r == '\t' || r == '\n' || r == 0xA0
}

// IsNormalizedSpace is true for characters treated as U+0020 when spaces are
// normalized.
func IsNormalizedSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\f' || r == '\r'
}

// CanShapeWordByWord is true if shaping results do not depend on context
// across spaces, i.e. no typesetting features are active or the primary
// font does not kern against the space glyph.
func (f *Font) CanShapeWordByWord() bool {
	if f.byWord == 0 {
		f.byWord = 2
		if f.desc.TypesettingFeatures() != 0 && f.PrimaryFont().HasSpaceInKerning() {
			f.byWord = 1
		}
	}
	return f.byWord == 2
}

// TabWidth returns the distance from position to the next tab stop, with tab
// stops every tabSize spaces. The distance is never smaller than half a space.
func (f *Font) TabWidth(tc *TypeCase, tabSize int, position float32) float32 {
	base := float32(tabSize)*tc.SpaceWidth() + f.desc.LetterSpacing
	if base <= 0 {
		return f.desc.LetterSpacing
	}
	dist := base - float32(math.Mod(float64(position), float64(base)))
	if dist < tc.SpaceWidth()/2 {
		dist += base
	}
	return dist
}

// EmphasisMarkGlyphData returns the glyph for the first character of an
// emphasis mark string. ok is false if the font has no glyph for it.
func (f *Font) EmphasisMarkGlyphData(mark string) (gd GlyphData, ok bool) {
	for _, r := range mark {
		gd = f.GlyphDataForCharacter(r, false, false, NormalVariant)
		return gd, gd.Glyph != 0
	}
	return GlyphData{}, false
}
