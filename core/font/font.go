/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "typeface" is a family of fonts. An example is "Helvetica".
This corresponds to a TrueType "collection" (*.ttc).

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

* A "typecase" is a scaled font, i.e. a font in a certain size for
a certain script and language. The name is reminiscend on the wooden
boxes of typesetters in the aera of metal type.
An example is "Helvetica regular 11pt, Latin, en_US".

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

For shaping, a typecase is the unit of glyph lookup and measurement: it maps
code points to glyph IDs and reports advances and bounding boxes in pixels.
A FallbackList orders typecases for glyph lookup, and a Font combines a
FallbackList with a FontDescription (spacing, variant, features, orientation).

Font files are not loaded by this package. Clients hand in font binaries
(see ParseOpenTypeFont); Go Sans serves as an always-present fallback.

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package font

import (
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textshaping/core"
	"github.com/npillmayer/textshaping/core/dimen"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// tracer writes to trace with key 'tyse.font'
func tracer() tracing.Trace {
	return tracing.Select("tyse.font")
}

// GlyphID is a glyph index within a font. Glyph 0 is .notdef.
type GlyphID uint16

// ScalableFont is an OpenType font, not yet set to a size.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path, if any
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// ParseOpenTypeFont creates a scalable font from a font binary.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font binary")
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

// PrepareCase creates a typecase for a scalable font at a given size
// (in pixels).
func (sf *ScalableFont) PrepareCase(fontsize float32) (*TypeCase, error) {
	if sf == nil || sf.SFNT == nil {
		return nil, core.Error(core.EMISSING, "no font to prepare a typecase from")
	}
	if fontsize <= 0 {
		return nil, core.Error(core.EINVALID, "font size must be positive, is %g", fontsize)
	}
	typecase := &TypeCase{
		scalableFontParent: sf,
		size:               fontsize,
		upem:               float32(sf.SFNT.UnitsPerEm()),
	}
	if typecase.upem <= 0 {
		typecase.upem = 1000
	}
	typecase.init()
	return typecase, nil
}

// TypeCase is a scalable font at a given size. It is the glyph provider for
// shaping: glyph lookup by code point, glyph advances and glyph bounds.
//
// A typecase caches glyph data and holds a parsing buffer. It must not be
// used from more than one goroutine at a time.
type TypeCase struct {
	scalableFontParent *ScalableFont
	size               float32 // in pixels
	upem               float32
	isSmallCaps        bool
	smallCaps          *TypeCase
	buf                sfnt.Buffer
	cmap               map[rune]GlyphID
	widths             map[GlyphID]float32
	bounds             map[GlyphID]dimen.Rect
	combining          map[string]bool
	spaceGlyph         GlyphID
	spaceWidth         float32
	zwspGlyph          GlyphID
	spaceKerning       int8 // 0 = not yet checked, 1 = no, 2 = yes
}

func (tc *TypeCase) init() {
	tc.cmap = make(map[rune]GlyphID)
	tc.widths = make(map[GlyphID]float32)
	tc.bounds = make(map[GlyphID]dimen.Rect)
	tc.spaceGlyph = tc.GlyphIndex(' ')
	tc.spaceWidth = tc.WidthForGlyph(tc.spaceGlyph)
	tc.zwspGlyph = tc.GlyphIndex(0x200B)
	if tc.zwspGlyph == tc.spaceGlyph {
		tc.zwspGlyph = 0
	}
}

// ScalableFontParent returns the font this typecase has been derived from.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// Size returns the font size in pixels.
func (tc *TypeCase) Size() float32 {
	return tc.size
}

// UnitsPerEm returns the design units per em of the underlying font.
func (tc *TypeCase) UnitsPerEm() float32 {
	return tc.upem
}

// IsSmallCapsVariant is true for typecases returned by SmallCapsCase.
func (tc *TypeCase) IsSmallCapsVariant() bool {
	return tc.isSmallCaps
}

// SmallCapsCase returns a typecase for synthesized small capitals, i.e. the
// same font at 70% of the size.
func (tc *TypeCase) SmallCapsCase() *TypeCase {
	if tc.isSmallCaps {
		return tc
	}
	if tc.smallCaps == nil {
		sc := &TypeCase{
			scalableFontParent: tc.scalableFontParent,
			size:               tc.size * smallCapsScale,
			upem:               tc.upem,
			isSmallCaps:        true,
		}
		sc.init()
		tc.smallCaps = sc
	}
	return tc.smallCaps
}

const smallCapsScale = 0.7

// ScaleFontUnits converts a value in font design units to pixels.
func (tc *TypeCase) ScaleFontUnits(units float32) float32 {
	return units * tc.size / tc.upem
}

// unitsPPEM asks sfnt for values in font design units (in 26.6 format).
func (tc *TypeCase) unitsPPEM() fixed.Int26_6 {
	return fixed.I(int(tc.upem))
}

// GlyphIndex returns the glyph for a code point, or 0 if the font does not
// cover it.
func (tc *TypeCase) GlyphIndex(r rune) GlyphID {
	if g, ok := tc.cmap[r]; ok {
		return g
	}
	var g GlyphID
	x, err := tc.scalableFontParent.SFNT.GlyphIndex(&tc.buf, r)
	if err != nil {
		tracer().Debugf("glyph index for %#U: %v", r, err)
	} else {
		g = GlyphID(x)
	}
	tc.cmap[r] = g
	return g
}

// WidthForGlyph returns the advance of a glyph in pixels.
func (tc *TypeCase) WidthForGlyph(g GlyphID) float32 {
	if w, ok := tc.widths[g]; ok {
		return w
	}
	adv, err := tc.scalableFontParent.SFNT.GlyphAdvance(&tc.buf, sfnt.GlyphIndex(g),
		tc.unitsPPEM(), xfont.HintingNone)
	var w float32
	if err != nil {
		tracer().Debugf("advance of glyph %d: %v", g, err)
	} else {
		w = tc.ScaleFontUnits(dimen.FromFixed(adv))
	}
	tc.widths[g] = w
	return w
}

// BoundsForGlyph returns the ink bounds of a glyph in pixels, relative to the
// glyph origin on the baseline. Y grows downwards.
func (tc *TypeCase) BoundsForGlyph(g GlyphID) dimen.Rect {
	if r, ok := tc.bounds[g]; ok {
		return r
	}
	b, _, err := tc.scalableFontParent.SFNT.GlyphBounds(&tc.buf, sfnt.GlyphIndex(g),
		tc.unitsPPEM(), xfont.HintingNone)
	var r dimen.Rect
	if err != nil {
		tracer().Debugf("bounds of glyph %d: %v", g, err)
	} else {
		u := dimen.FromRectangle(b)
		s := tc.size / tc.upem
		r = dimen.Rect{X: u.X * s, Y: u.Y * s, W: u.W * s, H: u.H * s}
	}
	tc.bounds[g] = r
	return r
}

// SpaceGlyph returns the glyph for U+0020.
func (tc *TypeCase) SpaceGlyph() GlyphID {
	return tc.spaceGlyph
}

// SpaceWidth returns the advance of the space glyph in pixels.
func (tc *TypeCase) SpaceWidth() float32 {
	return tc.spaceWidth
}

// ZeroWidthSpaceGlyph returns the glyph for U+200B, if the font has a glyph
// for it distinct from the space glyph. Otherwise it returns 0.
func (tc *TypeCase) ZeroWidthSpaceGlyph() GlyphID {
	return tc.zwspGlyph
}

// IsZeroWidthSpaceGlyph is true if g is the (non-zero) glyph for U+200B.
func (tc *TypeCase) IsZeroWidthSpaceGlyph(g GlyphID) bool {
	return g != 0 && g == tc.zwspGlyph
}

// CanRenderCombiningCharacterSequence checks if a base character followed by
// combining marks composes to a character sequence this font has glyphs
// for. If no composition occurs, the sequence is reported as not renderable.
func (tc *TypeCase) CanRenderCombiningCharacterSequence(seq []rune) bool {
	if len(seq) == 0 {
		return false
	}
	s := string(seq)
	if ok, found := tc.combining[s]; found {
		return ok
	}
	if tc.combining == nil {
		tc.combining = make(map[string]bool)
	}
	composed := []rune(norm.NFC.String(s))
	ok := len(composed) < len(seq)
	if ok {
		for _, r := range composed {
			if tc.GlyphIndex(r) == 0 {
				ok = false
				break
			}
		}
	}
	tc.combining[s] = ok
	return ok
}

// HasSpaceInKerning reports whether the font's kerning table contains pairs
// involving the space glyph and a printable ASCII character.
func (tc *TypeCase) HasSpaceInKerning() bool {
	if tc.spaceKerning == 0 {
		tc.spaceKerning = 1
		if tc.lookupSpaceKerning() {
			tc.spaceKerning = 2
		}
	}
	return tc.spaceKerning == 2
}

func (tc *TypeCase) lookupSpaceKerning() bool {
	if tc.spaceGlyph == 0 {
		return false
	}
	f := tc.scalableFontParent.SFNT
	space := sfnt.GlyphIndex(tc.spaceGlyph)
	for c := rune(0x21); c < 0x7f; c++ {
		g := sfnt.GlyphIndex(tc.GlyphIndex(c))
		if g == 0 {
			continue
		}
		k, err := f.Kern(&tc.buf, space, g, tc.unitsPPEM(), xfont.HintingNone)
		if err == sfnt.ErrNotFound {
			return false
		}
		if err == nil && k != 0 {
			return true
		}
		if k, err = f.Kern(&tc.buf, g, space, tc.unitsPPEM(), xfont.HintingNone); err == nil && k != 0 {
			return true
		}
	}
	return false
}

func (tc *TypeCase) String() string {
	name := "?"
	if tc.scalableFontParent != nil {
		name = tc.scalableFontParent.Fontname
	}
	if tc.isSmallCaps {
		return name + " (small-caps)"
	}
	return name
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else failes.
// Currently we use Go Sans.
var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	var err error
	gofont := &ScalableFont{
		Fontname: "Go Sans",
		Filepath: "internal",
		Binary:   goregular.TTF,
	}
	gofont.SFNT, err = sfnt.Parse(gofont.Binary)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	return gofont
}
