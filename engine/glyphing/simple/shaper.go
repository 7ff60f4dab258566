package simple

import (
	"github.com/npillmayer/textshaping/core/dimen"
	"github.com/npillmayer/textshaping/core/font"
	"github.com/npillmayer/textshaping/engine/glyphing"
)

// Shaper advances through a text run character by character. It keeps
// track of the width of the characters consumed so far and, if requested,
// of the fallback fonts used and the union of glyph bounds.
//
// A Shaper is not safe for concurrent use.
type Shaper struct {
	font             *font.Font
	run              glyphing.TextRun
	currentCharacter int
	runWidthSoFar    float32
	bounds           dimen.Rect
	fallbackFonts    font.FontSet // may be nil
	emphasis         *font.GlyphData
	emphasisCenter   dimen.Point
	// justification
	expansion               float32
	expansionPerOpportunity float32
	isAfterExpansion        bool
}

// NewShaper creates a shaper for run, set in f. If fallbackFonts is non-nil,
// typecases other than the primary font used for non-empty glyphs are
// added to it. If emphasis is non-nil, the shaper emits emphasis marks
// instead of the glyphs of the text.
func NewShaper(f *font.Font, run glyphing.TextRun, fallbackFonts font.FontSet, emphasis *font.GlyphData) *Shaper {
	sh := &Shaper{
		font:             f,
		run:              run,
		fallbackFonts:    fallbackFonts,
		emphasis:         emphasis,
		expansion:        run.Expansion(),
		isAfterExpansion: !run.AllowsLeadingExpansion(),
	}
	if emphasis != nil && emphasis.Font != nil {
		sh.emphasisCenter = emphasis.Font.BoundsForGlyph(emphasis.Glyph).Center()
	}
	if sh.expansion != 0 {
		isAfterExpansion := sh.isAfterExpansion
		count := glyphing.ExpansionOpportunityCount(run, 0, run.Len(), &isAfterExpansion)
		if isAfterExpansion && !run.AllowsTrailingExpansion() {
			count--
		}
		if count > 0 {
			sh.expansionPerOpportunity = sh.expansion / float32(count)
		}
		tracer().Debugf("simple shaper: %d expansion opportunities, %.2f each", count,
			sh.expansionPerOpportunity)
	}
	return sh
}

// CurrentCharacter returns the position of the next character to consume.
func (sh *Shaper) CurrentCharacter() int {
	return sh.currentCharacter
}

// RunWidthSoFar returns the advance of all characters consumed.
func (sh *Shaper) RunWidthSoFar() float32 {
	return sh.runWidthSoFar
}

// FallbackFonts returns the set of fallback fonts collected, or nil if none
// was requested.
func (sh *Shaper) FallbackFonts() font.FontSet {
	return sh.fallbackFonts
}

// GlyphBounds returns the union of the bounding boxes of the glyphs
// consumed, relative to the start of the run.
func (sh *Shaper) GlyphBounds() dimen.Rect {
	return sh.bounds
}

// Advance consumes characters up to position offset. If buf is non-nil,
// glyphs are appended to it, positioned at the width consumed before them.
// Advance returns the number of characters consumed.
func (sh *Shaper) Advance(offset int, buf *glyphing.GlyphBuffer) int {
	if offset > sh.run.Len() {
		offset = sh.run.Len()
	}
	if sh.currentCharacter >= offset {
		return 0
	}
	it := glyphing.NewCodePointIterator(sh.run, sh.currentCharacter, offset)
	desc := sh.font.Description()
	hasExtraSpacing := desc.LetterSpacing != 0 || desc.WordSpacing != 0 || sh.expansion != 0
	primary := sh.font.PrimaryFont()
	lastFont := primary
	for c, l, ok := it.Consume(); ok; c, l, ok = it.Consume() {
		pos := it.Offset()
		gd := sh.font.GlyphDataForCharacter(c, sh.run.RTL(), sh.run.NormalizeSpace(), font.AutoVariant)
		var width float32
		if gd.Glyph == 0 && glyphing.TreatAsZeroWidthSpace(c) {
			// no glyph for a zero width character: draw an empty space
			gd = font.GlyphData{Glyph: primary.SpaceGlyph(), Font: primary}
		} else {
			if c == glyphing.TabulationCharacter && sh.run.AllowTabs() {
				width = sh.font.TabWidth(gd.Font, sh.run.TabSize(), sh.run.XPos()+sh.runWidthSoFar)
			} else {
				width = gd.Font.WidthForGlyph(gd.Glyph) * sh.run.GlyphStretch()
			}
			if sh.fallbackFonts != nil && gd.Font != lastFont && width != 0 {
				lastFont = gd.Font
				if gd.Font != primary {
					sh.fallbackFonts.Add(gd.Font)
				}
			}
			if hasExtraSpacing {
				width = sh.adjustSpacing(width, c, pos, l)
			}
		}
		glyphBounds := gd.Font.BoundsForGlyph(gd.Glyph)
		sh.bounds = sh.bounds.Unite(glyphBounds.Translated(sh.runWidthSoFar, 0))
		if buf != nil {
			if sh.emphasis == nil {
				buf.Add(gd.Glyph, gd.Font, sh.runWidthSoFar)
			} else if glyphing.CanReceiveTextEmphasis(c) {
				buf.Add(sh.emphasis.Glyph, sh.emphasis.Font,
					sh.runWidthSoFar+width/2-sh.emphasisCenter.X)
			}
		}
		sh.runWidthSoFar += width
		it.Advance(l)
	}
	consumed := it.Offset() - sh.currentCharacter
	sh.currentCharacter = it.Offset()
	return consumed
}

// AdvanceOneCharacter consumes the next character and returns its advance.
// ok is false at the end of the run.
func (sh *Shaper) AdvanceOneCharacter() (width float32, ok bool) {
	initial := sh.runWidthSoFar
	if sh.Advance(sh.currentCharacter+1, nil) == 0 {
		return 0, false
	}
	return sh.runWidthSoFar - initial, true
}

// adjustSpacing adds letter spacing, word spacing and justification space
// to the width of character c at offset, of length l.
func (sh *Shaper) adjustSpacing(width float32, c rune, offset, l int) float32 {
	desc := sh.font.Description()
	if width != 0 {
		width += desc.LetterSpacing
	}
	justify := sh.run.TextJustify()
	isSpace := glyphing.TreatAsSpace(c)
	isOpportunity := isSpace || justify == glyphing.JustifyDistribute
	if !isOpportunity && !(justify == glyphing.JustifyAuto && glyphing.IsCJKIdeographOrSymbol(c)) {
		sh.isAfterExpansion = false
		return width
	}
	if sh.expansion != 0 {
		if !isOpportunity && !sh.isAfterExpansion {
			// expansion opportunity before an ideograph
			sh.expansion -= sh.expansionPerOpportunity
			sh.runWidthSoFar += sh.expansionPerOpportunity
		}
		if sh.run.AllowsTrailingExpansion() ||
			(sh.run.LTR() && offset+l < sh.run.Len()) ||
			(sh.run.RTL() && offset > 0) {
			sh.expansion -= sh.expansionPerOpportunity
			width += sh.expansionPerOpportunity
			sh.isAfterExpansion = true
		}
	} else {
		sh.isAfterExpansion = false
	}
	// word spacing is added to the width of spaces
	if isSpace && (c != glyphing.TabulationCharacter || !sh.run.AllowTabs()) &&
		(offset > 0 || c == glyphing.NoBreakSpaceCharacter) {
		width += desc.WordSpacing
	}
	return width
}
