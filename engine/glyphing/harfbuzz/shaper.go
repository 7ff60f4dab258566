package harfbuzz

import (
	"sort"
	"unicode"
	"unicode/utf16"

	"github.com/npillmayer/textshaping/core"
	"github.com/npillmayer/textshaping/core/dimen"
	"github.com/npillmayer/textshaping/core/font"
	"github.com/npillmayer/textshaping/engine/glyphing"
	"github.com/npillmayer/textshaping/engine/glyphing/script"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// preContext is fed to the engine before the text of every run, so that
// combining marks at the start of a run are not set on a dotted circle.
const preContext = ' '

// Shaper shapes a text run with a shaping engine. A Shaper is used for a
// single call to ShapeResult and is not safe for concurrent use.
type Shaper struct {
	font          *font.Font
	run           glyphing.TextRun
	engine        Engine
	fallbackFonts font.FontSet // may be nil
	language      language.Tag
	features      []glyphing.FeatureRange
	normalized    glyphing.TextRun // 16-bit text as handed to the engine
	letterSpacing float32
	wordSpacing   float32
	// justification
	expansion                 float32
	expansionPerOpportunity   float32
	expansionOpportunityCount int
	isAfterExpansion          bool
	// accumulated over runs
	totalWidth float32
}

// NewShaper creates a complex shaper for run, set in f and shaped by engine.
// If fallbackFonts is non-nil, typecases other than the primary font used
// for the result are added to it.
func NewShaper(f *font.Font, run glyphing.TextRun, engine Engine, fallbackFonts font.FontSet) *Shaper {
	desc := f.Description()
	sh := &Shaper{
		font:             f,
		run:              run,
		engine:           engine,
		fallbackFonts:    fallbackFonts,
		language:         desc.Locale,
		features:         fontFeatures(desc),
		letterSpacing:    desc.LetterSpacing,
		wordSpacing:      desc.WordSpacing,
		isAfterExpansion: !run.AllowsLeadingExpansion(),
	}
	sh.normalized = glyphing.NewTextRun16(normalizeCharacters(run), run.Direction()).
		WithTextJustify(run.TextJustify())
	sh.setExpansion(run.Expansion())
	return sh
}

// normalizeCharacters converts the text of run to UTF-16, replacing
// space-like characters by U+0020 and control characters by U+200B. Tabs
// are kept if the run sets them as tab stops.
func normalizeCharacters(run glyphing.TextRun) []uint16 {
	text := make([]uint16, 0, run.Len())
	it := glyphing.NewCodePointIterator(run, 0, run.Len())
	for c, l, ok := it.Consume(); ok; c, l, ok = it.Consume() {
		switch {
		case run.NormalizeSpace() && font.IsNormalizedSpace(c):
			c = glyphing.SpaceCharacter
		case c == glyphing.TabulationCharacter && run.AllowTabs():
		case glyphing.TreatAsSpace(c) && c != glyphing.TabulationCharacter:
			c = glyphing.SpaceCharacter
		case glyphing.TreatAsZeroWidthSpaceInComplexScript(c):
			c = glyphing.ZeroWidthSpaceCharacter
		}
		if c >= 0x10000 {
			r1, r2 := utf16.EncodeRune(c)
			text = append(text, uint16(r1), uint16(r2))
		} else {
			text = append(text, uint16(c))
		}
		it.Advance(l)
	}
	return text
}

func (sh *Shaper) setExpansion(padding float32) {
	sh.expansion = padding
	if padding == 0 {
		return
	}
	isAfterExpansion := sh.isAfterExpansion
	count := glyphing.ExpansionOpportunityCount(sh.normalized, 0, sh.normalized.Len(), &isAfterExpansion)
	if isAfterExpansion && !sh.run.AllowsTrailingExpansion() && count > 0 {
		count--
	}
	sh.expansionOpportunityCount = count
	if count > 0 {
		sh.expansionPerOpportunity = padding / float32(count)
	}
	tracer().Debugf("complex shaper: %d expansion opportunities, %.2f each", count,
		sh.expansionPerOpportunity)
}

// ShapeResult shapes the run. It returns nil if the run cannot be shaped,
// e.g. for text with unpaired surrogates or fonts without a shaping face.
func (sh *Shaper) ShapeResult() *glyphing.ShapeResult {
	if sh.run.Len() == 0 {
		return nil
	}
	if sh.run.HasUnpairedSurrogates() {
		tracer().Errorf("complex shaper: cannot shape text with unpaired surrogates")
		return nil
	}
	text := sh.normalized.Characters16()
	runs := script.Segment(text, sh.font, sh.run.NormalizeSpace())
	builder := glyphing.NewShapeResultBuilder(sh.font.PrimaryFont(), sh.run.Len(), sh.run.Direction())
	for i := range runs {
		r := runs[i]
		if sh.run.RTL() { // visual order
			r = runs[len(runs)-1-i]
		}
		info, err := sh.shapeRun(r, builder)
		if err != nil {
			tracer().Errorf("complex shaper: %v", err)
			return nil
		}
		builder.AddRun(info)
	}
	result := builder.Build()
	if sh.fallbackFonts != nil {
		result.FallbackFonts(sh.fallbackFonts)
	}
	return result
}

// shapingDirection is the direction a run is handed to the engine with.
func (sh *Shaper) shapingDirection() glyphing.Direction {
	if sh.font.Description().IsVerticalAnyUpright() {
		return glyphing.TopToBottom
	}
	return sh.run.Direction()
}

// runText decodes the characters of r, preceded by the pre-context. It
// returns the runes for the engine and, for each rune of the run, its offset
// in code units relative to the start of r.
func (sh *Shaper) runText(r script.Run) (runes []rune, offsets []int) {
	runes = make([]rune, 1, r.Len()+1)
	runes[0] = preContext
	offsets = make([]int, 0, r.Len())
	it := glyphing.NewCodePointIterator(sh.normalized, r.Start, r.End)
	for c, l, ok := it.Consume(); ok; c, l, ok = it.Consume() {
		offsets = append(offsets, it.Offset()-r.Start)
		runes = append(runes, c)
		it.Advance(l)
	}
	if sh.font.Description().Variant == font.FontVariantSmallCaps && len(runes) > 1 &&
		unicode.IsLower(runes[1]) {
		sh.upperCase(runes[1:])
	}
	return runes, offsets
}

// upperCase replaces the runes of a small-caps run by their upper-case
// counterparts. Mappings which change the number of runes (e.g. 'ß' to "SS")
// are applied per rune instead, as clusters must keep their positions.
func (sh *Shaper) upperCase(runes []rune) {
	upper := []rune(cases.Upper(sh.language).String(string(runes)))
	if len(upper) == len(runes) {
		copy(runes, upper)
		return
	}
	for i, c := range runes {
		runes[i] = unicode.ToUpper(c)
	}
}

// shapeRun shapes the characters of r and adjusts the engine's glyph
// positions for spacing and justification.
func (sh *Shaper) shapeRun(r script.Run, builder *glyphing.ShapeResultBuilder) (*glyphing.RunInfo, error) {
	runes, offsets := sh.runText(r)
	dir := sh.shapingDirection()
	req := &Request{
		Font:      r.Font,
		Text:      runes,
		Start:     1,
		Length:    len(runes) - 1,
		Direction: dir,
		Script:    r.Script,
		Language:  sh.language,
		Features:  sh.features,
	}
	engineGlyphs, err := sh.engine.Shape(req)
	if err != nil {
		return nil, err
	}
	if len(engineGlyphs) == 0 {
		return nil, nil
	}
	glyphs := make([]glyphing.ShapedGlyph, len(engineGlyphs))
	for i, g := range engineGlyphs {
		cluster := g.Cluster - req.Start
		if cluster < 0 || cluster >= len(offsets) {
			return nil, core.Error(core.EUNSHAPEABLE, "engine %s returned cluster %d outside of run %v",
				sh.engine.Name(), g.Cluster, r)
		}
		glyphs[i].Glyph = g.Glyph
		glyphs[i].CharacterIndex = uint16(offsets[cluster])
	}
	clusterEnd := clusterEnds(glyphs, r.Len())
	tc := r.Font
	var totalAdvance float32
	for i, g := range engineGlyphs {
		charIndex := int(glyphs[i].CharacterIndex)
		isClusterEnd := i+1 == len(glyphs) || glyphs[i+1].CharacterIndex != glyphs[i].CharacterIndex
		offsetX := g.XOffset
		offsetY := -g.YOffset
		advance := g.XAdvance - g.YAdvance
		var spacing float32
		if isClusterEnd {
			from, to := r.Start+charIndex, r.Start+clusterEnd[charIndex]
			spacing = sh.adjustSpacing(glyphs, i, from, to, &offsetX, &totalAdvance)
		}
		if tc.IsZeroWidthSpaceGlyph(g.Glyph) {
			glyphs[i].Advance = 0
			continue
		}
		if c, _ := sh.normalized.CodePointAt(r.Start + charIndex); c == glyphing.TabulationCharacter {
			glyphs[i].Glyph = tc.SpaceGlyph()
			advance = sh.font.TabWidth(tc, sh.run.TabSize(), sh.run.XPos()+sh.totalWidth+totalAdvance)
		}
		advance += spacing
		if sh.run.RTL() {
			// spacing goes to the left side of glyphs
			offsetX += spacing
			if !isClusterEnd {
				offsetX += sh.letterSpacing
			}
		}
		glyphs[i].Advance = advance
		glyphs[i].Offset = dimen.Point{X: offsetX, Y: offsetY}
		bounds := tc.BoundsForGlyph(glyphs[i].Glyph)
		builder.UniteBounds(bounds.Translated(sh.totalWidth+totalAdvance+offsetX, offsetY))
		totalAdvance += advance
	}
	info := glyphing.NewRunInfo(tc, dir, r.Script, r.Start, r.Len(), len(glyphs))
	for i, g := range glyphs {
		info.SetGlyph(i, g)
	}
	if totalAdvance < 0 {
		totalAdvance = 0
	}
	info.SetWidth(totalAdvance)
	sh.totalWidth += totalAdvance
	return info, nil
}

// clusterEnds maps the start of every cluster to the start of the next
// cluster in logical order, or to runLength for the last one.
func clusterEnds(glyphs []glyphing.ShapedGlyph, runLength int) map[int]int {
	starts := make([]int, 0, len(glyphs))
	seen := make(map[int]int, len(glyphs))
	for _, g := range glyphs {
		if _, ok := seen[int(g.CharacterIndex)]; !ok {
			seen[int(g.CharacterIndex)] = 0
			starts = append(starts, int(g.CharacterIndex))
		}
	}
	sort.Ints(starts)
	for i, s := range starts {
		if i+1 < len(starts) {
			seen[s] = starts[i+1]
		} else {
			seen[s] = runLength
		}
	}
	return seen
}

// adjustSpacing returns the spacing to add to the last glyph of the
// cluster for the characters [from, to). Expansion before an ideograph is
// added to the advance of the preceding glyph, or, for the first glyph of a
// run, to offsetX.
func (sh *Shaper) adjustSpacing(glyphs []glyphing.ShapedGlyph, glyphIndex, from, to int,
	offsetX, totalAdvance *float32) float32 {
	//
	var spacing float32
	c, _ := sh.normalized.CodePointAt(from)
	if sh.letterSpacing != 0 && !glyphing.TreatAsZeroWidthSpace(c) {
		spacing += sh.letterSpacing
	}
	treatAsSpace := glyphing.TreatAsSpace(c)
	if treatAsSpace && from > 0 && (c != glyphing.TabulationCharacter || !sh.run.AllowTabs()) {
		spacing += sh.wordSpacing
	}
	if sh.expansionOpportunityCount == 0 {
		return spacing
	}
	if treatAsSpace {
		spacing += sh.nextExpansionPerOpportunity()
		sh.isAfterExpansion = true
		return spacing
	}
	switch sh.run.TextJustify() {
	case glyphing.JustifyDistribute:
		// every code point of the cluster is an opportunity
		it := glyphing.NewCodePointIterator(sh.normalized, from, to)
		for _, l, ok := it.Consume(); ok && sh.expansionOpportunityCount > 0; _, l, ok = it.Consume() {
			spacing += sh.nextExpansionPerOpportunity()
			it.Advance(l)
		}
		sh.isAfterExpansion = true
		return spacing
	case glyphing.JustifyAuto:
	default:
		sh.isAfterExpansion = false
		return spacing
	}
	if !glyphing.IsCJKIdeographOrSymbol(c) {
		sh.isAfterExpansion = false
		return spacing
	}
	if !sh.isAfterExpansion {
		// the opportunity before this ideograph
		if expandBefore := sh.nextExpansionPerOpportunity(); expandBefore != 0 {
			if glyphIndex > 0 {
				glyphs[glyphIndex-1].Advance += expandBefore
				*totalAdvance += expandBefore
			} else {
				*offsetX += expandBefore
				spacing += expandBefore
			}
		}
		if sh.expansionOpportunityCount == 0 {
			return spacing
		}
	}
	spacing += sh.nextExpansionPerOpportunity()
	sh.isAfterExpansion = true
	return spacing
}

// nextExpansionPerOpportunity consumes an expansion opportunity. The last
// opportunity takes what is left of the expansion.
func (sh *Shaper) nextExpansionPerOpportunity() float32 {
	if sh.expansionOpportunityCount == 0 {
		return 0
	}
	sh.expansionOpportunityCount--
	if sh.expansionOpportunityCount == 0 {
		remaining := sh.expansion
		sh.expansion = 0
		return remaining
	}
	sh.expansion -= sh.expansionPerOpportunity
	return sh.expansionPerOpportunity
}
