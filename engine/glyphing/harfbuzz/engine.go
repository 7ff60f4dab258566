package harfbuzz

import (
	"bytes"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	gtlang "github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/npillmayer/textshaping/core"
	"github.com/npillmayer/textshaping/core/dimen"
	"github.com/npillmayer/textshaping/core/font"
	"github.com/npillmayer/textshaping/core/parameters"
	"github.com/npillmayer/textshaping/engine/glyphing"
	"golang.org/x/text/language"
)

// Engine is an OpenType shaping engine. Engines hold parsed font faces
// across calls and are not safe for concurrent use.
type Engine interface {
	Name() string
	Shape(req *Request) ([]EngineGlyph, error)
}

// Request is a shaping request for a single run of text in a single
// typecase and script.
type Request struct {
	Font      *font.TypeCase
	Text      []rune // context and run text
	Start     int    // start of the run text within Text
	Length    int    // length of the run text
	Direction glyphing.Direction
	Script    glyphing.Script
	Language  language.Tag
	Features  []glyphing.FeatureRange
}

// EngineGlyph is a glyph as output by a shaping engine. Positions are in
// pixels, with y growing upwards.
type EngineGlyph struct {
	Glyph              font.GlyphID
	Cluster            int // index into Request.Text
	XAdvance, YAdvance float32
	XOffset, YOffset   float32
}

// NewEngine returns the engine for one of the engine names of package
// parameters. Unknown names select the default engine.
func NewEngine(name string) Engine {
	switch name {
	case parameters.EngineGoText:
		return NewGoTextEngine()
	case parameters.EngineTextlayout:
	default:
		tracer().Errorf("unknown shaping engine %q, using %s", name, parameters.EngineTextlayout)
	}
	return NewTextlayoutEngine()
}

// --- textlayout ------------------------------------------------------------

// TextlayoutEngine shapes with the HarfBuzz port of benoitkugler/textlayout.
type TextlayoutEngine struct {
	fonts map[*font.ScalableFont]*hb.Font
}

var _ Engine = &TextlayoutEngine{}

// NewTextlayoutEngine creates a textlayout engine with an empty face cache.
func NewTextlayoutEngine() *TextlayoutEngine {
	return &TextlayoutEngine{fonts: make(map[*font.ScalableFont]*hb.Font)}
}

// Name is part of interface Engine.
func (e *TextlayoutEngine) Name() string {
	return parameters.EngineTextlayout
}

func (e *TextlayoutEngine) fontFor(tc *font.TypeCase) (*hb.Font, error) {
	sf := tc.ScalableFontParent()
	if sf == nil || len(sf.Binary) == 0 {
		return nil, core.Error(core.ENOFACE, "typecase %v has no font binary", tc)
	}
	if f, ok := e.fonts[sf]; ok {
		return f, nil
	}
	face, err := hbtt.Parse(bytes.NewReader(sf.Binary), true)
	if err != nil {
		return nil, core.WrapError(err, core.ENOFACE, "cannot create HarfBuzz face for %s", sf.Fontname)
	}
	f := hb.NewFont(face) // scaled to font units
	e.fonts[sf] = f
	return f, nil
}

// Shape is part of interface Engine.
func (e *TextlayoutEngine) Shape(req *Request) ([]EngineGlyph, error) {
	hbFont, err := e.fontFor(req.Font)
	if err != nil {
		return nil, err
	}
	buf := hb.NewBuffer()
	buf.Props.Direction = Direction4HB(req.Direction)
	buf.Props.Script = Script4HB(req.Script)
	if req.Language != language.Und {
		buf.Props.Language = Lang4HB(req.Language)
	}
	features := make([]hb.Feature, 0, len(req.Features))
	for _, feat := range req.Features {
		features = append(features, FeatureRange4HB(feat))
	}
	buf.AddRunes(req.Text, req.Start, req.Length)
	buf.Shape(hbFont, features)
	glyphs := make([]EngineGlyph, len(buf.Info))
	for i, info := range buf.Info {
		pos := &buf.Pos[i]
		glyphs[i] = EngineGlyph{
			Glyph:    font.GlyphID(info.Glyph),
			Cluster:  info.Cluster,
			XAdvance: req.Font.ScaleFontUnits(float32(pos.XAdvance)),
			YAdvance: req.Font.ScaleFontUnits(float32(pos.YAdvance)),
			XOffset:  req.Font.ScaleFontUnits(float32(pos.XOffset)),
			YOffset:  req.Font.ScaleFontUnits(float32(pos.YOffset)),
		}
	}
	return glyphs, nil
}

// --- go-text ---------------------------------------------------------------

// GoTextEngine shapes with go-text/typesetting. go-text applies features
// to the whole text, so only feature settings without a range are passed on.
type GoTextEngine struct {
	shaper shaping.HarfbuzzShaper
	fonts  map[*font.ScalableFont]*gotext.Font
}

var _ Engine = &GoTextEngine{}

// NewGoTextEngine creates a go-text engine with an empty face cache.
func NewGoTextEngine() *GoTextEngine {
	return &GoTextEngine{fonts: make(map[*font.ScalableFont]*gotext.Font)}
}

// Name is part of interface Engine.
func (e *GoTextEngine) Name() string {
	return parameters.EngineGoText
}

func (e *GoTextEngine) fontFor(tc *font.TypeCase) (*gotext.Font, error) {
	sf := tc.ScalableFontParent()
	if sf == nil || len(sf.Binary) == 0 {
		return nil, core.Error(core.ENOFACE, "typecase %v has no font binary", tc)
	}
	if f, ok := e.fonts[sf]; ok {
		return f, nil
	}
	face, err := gotext.ParseTTF(bytes.NewReader(sf.Binary))
	if err != nil {
		return nil, core.WrapError(err, core.ENOFACE, "cannot create go-text face for %s", sf.Fontname)
	}
	e.fonts[sf] = face.Font
	return face.Font, nil
}

// Shape is part of interface Engine.
func (e *GoTextEngine) Shape(req *Request) ([]EngineGlyph, error) {
	f, err := e.fontFor(req.Font)
	if err != nil {
		return nil, err
	}
	input := shaping.Input{
		Text:      req.Text,
		RunStart:  req.Start,
		RunEnd:    req.Start + req.Length,
		Direction: direction4GoText(req.Direction),
		Face:      gotext.NewFace(f),
		Size:      dimen.ToFixed(req.Font.Size()),
		Script:    gtlang.Script(req.Script),
	}
	if req.Language != language.Und {
		input.Language = gtlang.NewLanguage(req.Language.String())
	}
	for _, feat := range req.Features {
		if feat.End >= 0 {
			continue
		}
		tag := []byte("    ")
		copy(tag, feat.Feature)
		ff := shaping.FontFeature{Tag: ot.MustNewTag(string(tag))}
		if feat.Arg > 0 {
			ff.Value = uint32(feat.Arg)
		}
		input.FontFeatures = append(input.FontFeatures, ff)
	}
	output := e.shaper.Shape(input)
	vertical := input.Direction.IsVertical()
	glyphs := make([]EngineGlyph, len(output.Glyphs))
	for i, g := range output.Glyphs {
		glyphs[i] = EngineGlyph{
			Glyph:   font.GlyphID(g.GlyphID),
			Cluster: g.TextIndex(),
			XOffset: dimen.FromFixed(g.XOffset),
			YOffset: dimen.FromFixed(g.YOffset),
		}
		if vertical {
			glyphs[i].YAdvance = dimen.FromFixed(g.Advance)
		} else {
			glyphs[i].XAdvance = dimen.FromFixed(g.Advance)
		}
	}
	return glyphs, nil
}

func direction4GoText(d glyphing.Direction) di.Direction {
	switch d {
	case glyphing.RightToLeft:
		return di.DirectionRTL
	case glyphing.TopToBottom:
		return di.DirectionTTB
	case glyphing.BottomToTop:
		return di.DirectionBTT
	}
	return di.DirectionLTR
}
