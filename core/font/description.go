package font

import "golang.org/x/text/language"

// FontVariant selects between normal glyphs and synthesized small capitals.
type FontVariant int8

const (
	FontVariantNormal FontVariant = iota
	FontVariantSmallCaps
)

// Variant is used for glyph lookup. AutoVariant derives the variant from the
// font description and the character being looked up.
type Variant int8

const (
	AutoVariant Variant = iota
	NormalVariant
	SmallCapsVariant
)

// Orientation is the font orientation for vertical writing modes.
type Orientation int8

const (
	Horizontal Orientation = iota
	VerticalRotated
	VerticalMixed
	VerticalUpright
)

// WidthVariant selects proportional, half, third or quarter width glyphs.
type WidthVariant int8

const (
	RegularWidth WidthVariant = iota
	HalfWidth
	ThirdWidth
	QuarterWidth
)

// TextRendering is the rendering intent of a font description.
type TextRendering int8

const (
	AutoTextRendering TextRendering = iota
	OptimizeSpeed
	OptimizeLegibility
	GeometricPrecision
)

// TypesettingFeatures is a set of font features which make shaping depend
// on neighbouring characters.
type TypesettingFeatures uint8

const (
	Kerning TypesettingFeatures = 1 << iota
	Ligatures
)

// FeatureSetting is an explicit OpenType feature setting, e.g. {"smcp", 1}.
type FeatureSetting struct {
	Tag   string // 4 characters
	Value int
}

// FontDescription holds the style properties of a font which influence
// shaping. Sizes and spacings are in pixels.
type FontDescription struct {
	Size            float32
	LetterSpacing   float32
	WordSpacing     float32
	Variant         FontVariant
	Features        TypesettingFeatures // requested kerning and ligatures
	FeatureSettings []FeatureSetting
	Orientation     Orientation
	WidthVariant    WidthVariant
	TextRendering   TextRendering
	Locale          language.Tag
}

// TypesettingFeatures returns the effective kerning and ligature features,
// taking the rendering intent into account.
func (d *FontDescription) TypesettingFeatures() TypesettingFeatures {
	f := d.Features
	switch d.TextRendering {
	case OptimizeSpeed:
		f &^= Kerning | Ligatures
	case OptimizeLegibility, GeometricPrecision:
		f |= Kerning | Ligatures
	}
	return f
}

// IsVerticalBaseline is true for any vertical orientation.
func (d *FontDescription) IsVerticalBaseline() bool {
	return d.Orientation != Horizontal
}

// IsVerticalAnyUpright is true if glyphs are set upright in vertical text.
func (d *FontDescription) IsVerticalAnyUpright() bool {
	return d.Orientation == VerticalUpright || d.Orientation == VerticalMixed
}
