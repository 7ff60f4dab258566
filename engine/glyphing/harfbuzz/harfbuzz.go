/*
Package harfbuzz shapes text with an OpenType shaping engine.

The complex shaper of this package is used for text which needs more than a
one-to-one mapping of characters to glyphs: ligatures, combining marks,
cursive joining and re-ordering scripts. Text is segmented into runs of a
single typecase and script, each run is handed to a shaping engine, and the
engine's output is adjusted for letter spacing, word spacing and
justification.

Two engines are available: the HarfBuzz port of benoitkugler/textlayout
(the default) and the HarfBuzz port of go-text/typesetting.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package harfbuzz

import (
	"encoding/binary"
	"math"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textshaping/core/font"
	"github.com/npillmayer/textshaping/engine/glyphing"
	"golang.org/x/text/language"
)

// tracer traces with key 'tyse.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("tyse.glyphs")
}

// --- Type conversion -------------------------------------------------------

// Lang4HB returns a language tag as a HarfBuzz language.
func Lang4HB(l language.Tag) hblang.Language {
	return hblang.NewLanguage(l.String())
}

// Script4HB returns a script as a HarfBuzz script. HarfBuzz script tags
// start with a lower case letter, e.g. 'arab' for Arabic.
func Script4HB(s glyphing.Script) hblang.Script {
	return hblang.Script(uint32(s) | 0x20000000)
}

// Direction4HB translates a direction to a HarfBuzz direction.
func Direction4HB(d glyphing.Direction) hb.Direction {
	switch d {
	case glyphing.LeftToRight:
		return hb.LeftToRight
	case glyphing.RightToLeft:
		return hb.RightToLeft
	case glyphing.TopToBottom:
		return hb.TopToBottom
	case glyphing.BottomToTop:
		return hb.BottomToTop
	}
	return hb.LeftToRight
}

// Feature4HB converts a 4-letter OpenType feature tag to a HarfBuzz truetype tag.
// Shorter tags are padded with spaces.
func Feature4HB(tag string) hbtt.Tag {
	b := []byte("    ")
	copy(b, tag)
	return hbtt.Tag(binary.BigEndian.Uint32(b))
}

// FeatureRange4HB converts a feature range struct to a HarfBuzz feature switch.
func FeatureRange4HB(frng glyphing.FeatureRange) hb.Feature {
	f := hb.Feature{
		Tag:   Feature4HB(frng.Feature),
		Start: frng.Start,
		End:   frng.End,
	}
	if frng.End < 0 {
		f.Start, f.End = 0, math.MaxInt32
	}
	if frng.Arg > 0 {
		f.Value = uint32(frng.Arg)
	}
	return f
}

// --- Features --------------------------------------------------------------

// fontFeatures derives the shaping engine features from a font description.
// All features apply to the whole text.
func fontFeatures(desc *font.FontDescription) []glyphing.FeatureRange {
	var features []glyphing.FeatureRange
	global := func(tag string, value int) {
		features = append(features, glyphing.FeatureRange{Feature: tag, Arg: value, End: -1})
	}
	typesetting := desc.TypesettingFeatures()
	if typesetting&font.Kerning == 0 {
		if desc.IsVerticalAnyUpright() {
			global("vkrn", 0)
		} else {
			global("kern", 0)
		}
	}
	// letter spacing breaks up ligatures
	if typesetting&font.Ligatures == 0 || desc.LetterSpacing != 0 {
		global("liga", 0)
		global("clig", 0)
	}
	switch desc.WidthVariant {
	case font.HalfWidth:
		global("hwid", 1)
	case font.ThirdWidth:
		global("twid", 1)
	case font.QuarterWidth:
		global("qwid", 1)
	}
	for _, setting := range desc.FeatureSettings {
		if len(setting.Tag) != 4 {
			tracer().Errorf("ignoring malformed font feature %q", setting.Tag)
			continue
		}
		global(setting.Tag, setting.Value)
	}
	return features
}
