package font

import (
	"unicode"

	"golang.org/x/text/unicode/bidi"
)

// GlyphData is a glyph together with the typecase it is taken from.
type GlyphData struct {
	Glyph GlyphID
	Font  *TypeCase
}

// FontSet is a set of typecases, used to report fallback fonts which have
// been used for shaping a text.
type FontSet map[*TypeCase]struct{}

// Add puts a typecase into the set.
func (fs FontSet) Add(tc *TypeCase) {
	if fs != nil && tc != nil {
		fs[tc] = struct{}{}
	}
}

// Contains is true if tc is in the set.
func (fs FontSet) Contains(tc *TypeCase) bool {
	_, ok := fs[tc]
	return ok
}

// FallbackList is an ordered list of typecases. Glyphs are looked up in
// order, the first typecase covering a code point wins. Lookup results,
// including misses, are cached.
type FallbackList struct {
	cases []*TypeCase
	cache map[glyphKey]GlyphData
}

type glyphKey struct {
	r       rune
	variant Variant
}

// NewFallbackList creates a fallback list with a primary typecase and
// optional fallback typecases.
func NewFallbackList(primary *TypeCase, fallbacks ...*TypeCase) *FallbackList {
	if primary == nil {
		panic("fallback list requires a primary typecase")
	}
	fl := &FallbackList{
		cases: make([]*TypeCase, 0, len(fallbacks)+1),
		cache: make(map[glyphKey]GlyphData),
	}
	fl.cases = append(fl.cases, primary)
	for _, tc := range fallbacks {
		if tc != nil {
			fl.cases = append(fl.cases, tc)
		}
	}
	return fl
}

// PrimaryFont returns the first typecase of the list.
func (fl *FallbackList) PrimaryFont() *TypeCase {
	return fl.cases[0]
}

// Len returns the number of typecases in the list.
func (fl *FallbackList) Len() int {
	return len(fl.cases)
}

// GlyphFor returns the glyph for r from the first typecase covering r.
// variant must be NormalVariant or SmallCapsVariant; for small capitals the
// glyph is taken from the small-caps variant of the covering typecase.
// If no typecase covers r, the .notdef glyph of the primary font is returned.
func (fl *FallbackList) GlyphFor(r rune, variant Variant) GlyphData {
	key := glyphKey{r: r, variant: variant}
	if gd, ok := fl.cache[key]; ok {
		return gd
	}
	gd := GlyphData{Font: fl.cases[0]}
	for _, tc := range fl.cases {
		if g := tc.GlyphIndex(r); g != 0 {
			gd = GlyphData{Glyph: g, Font: tc}
			break
		}
	}
	if variant == SmallCapsVariant {
		gd.Font = gd.Font.SmallCapsCase()
	}
	if gd.Glyph == 0 {
		tracer().Debugf("no glyph for %#U in fallback list", r)
	}
	fl.cache[key] = gd
	return gd
}

// ClearCache drops cached glyph lookups.
func (fl *FallbackList) ClearCache() {
	fl.cache = make(map[glyphKey]GlyphData)
}

// --- Mirroring -------------------------------------------------------------

// Mirror returns the mirrored glyph character for r in right-to-left text,
// or r itself. Paired brackets are mirrored according to the Unicode bidi
// bracket pairs, other characters with the Bidi_Mirrored property from a
// small table.
func Mirror(r rune) rune {
	if m, ok := mirrored[r]; ok {
		return m
	}
	if r < 0x20 || !unicode.In(r, unicode.Ps, unicode.Pe) {
		return r
	}
	m := []rune(bidi.ReverseString(string(r)))
	if len(m) != 1 {
		return r
	}
	return m[0]
}

var mirrored = map[rune]rune{
	'<': '>', '>': '<',
	0x00AB: 0x00BB, 0x00BB: 0x00AB, // « »
	0x2039: 0x203A, 0x203A: 0x2039, // ‹ ›
	0x2264: 0x2265, 0x2265: 0x2264, // ≤ ≥
	0x226A: 0x226B, 0x226B: 0x226A, // ≪ ≫
	0x2208: 0x220B, 0x220B: 0x2208, // ∈ ∋
	0x2282: 0x2283, 0x2283: 0x2282, // ⊂ ⊃
	0x2286: 0x2287, 0x2287: 0x2286, // ⊆ ⊇
}
