/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parameters

import (
	"strconv"
	"strings"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"
)

// tracer traces with key 'tyse.core'.
func tracer() tracing.Trace {
	return tracing.Select("tyse.core")
}

type TypesettingParameter int

//go:generate stringer -type=TypesettingParameter
const (
	none TypesettingParameter = iota
	P_LANGUAGE
	P_SCRIPT
	P_TEXTDIRECTION
	P_ALWAYSCOMPLEX
	P_SHAPECACHELIMIT
	P_MAXCACHEDSTRING
	P_TABSIZE
	P_SHAPINGENGINE
	P_STOPPER
)

// Shaping engines selectable with P_SHAPINGENGINE.
const (
	EngineTextlayout = "textlayout"
	EngineGoText     = "gotext"
)

// Default values for the shape cache. The capacity of cached strings cannot
// be raised above DefaultMaxCachedString, as short strings are stored inline.
const (
	DefaultShapeCacheLimit = 10000
	DefaultMaxCachedString = 15
	DefaultTabSize         = 8
)

type ParameterGroup struct {
	params map[TypesettingParameter]interface{}
	level  int
	next   *ParameterGroup
}

type TypesettingRegisters struct {
	base       [P_STOPPER]interface{}
	groups     *ParameterGroup
	grouplevel int
}

// ----------------------------------------------------------------------

func NewTypesettingRegisters() *TypesettingRegisters {
	regs := &TypesettingRegisters{}
	initParameters(&regs.base)
	return regs
}

func initParameters(p *[P_STOPPER]interface{}) {
	p[P_LANGUAGE] = "en"                          // a BCP 47 string
	p[P_SCRIPT] = "Latn"                          // an ISO 15924 string
	p[P_TEXTDIRECTION] = bidi.LeftToRight         //
	p[P_ALWAYSCOMPLEX] = false                    // route every run to the complex shaper
	p[P_SHAPECACHELIMIT] = DefaultShapeCacheLimit // # of entries before the shape cache is cleared
	p[P_MAXCACHEDSTRING] = DefaultMaxCachedString // # of code units
	p[P_TABSIZE] = DefaultTabSize                 // # of spaces
	p[P_SHAPINGENGINE] = EngineTextlayout         // a string
}

// FromConfiguration creates typesetting registers with defaults overridden
// by values from a configuration. Recognized keys are
//
//	shaping.language           BCP 47 language tag
//	shaping.script             ISO 15924 script code
//	shaping.direction          "ltr" | "rtl"
//	shaping.always-complex     bool
//	shaping.cache-limit        int
//	shaping.max-cached-string  int
//	shaping.tab-size           int
//	shaping.engine             "textlayout" | "gotext"
//
// Malformed values are traced and ignored.
func FromConfiguration(conf schuko.Configuration) *TypesettingRegisters {
	regs := NewTypesettingRegisters()
	if conf == nil {
		return regs
	}
	if s := strings.TrimSpace(conf.GetString("shaping.language")); s != "" {
		regs.base[P_LANGUAGE] = s
	}
	if s := strings.TrimSpace(conf.GetString("shaping.script")); s != "" {
		regs.base[P_SCRIPT] = s
	}
	switch s := strings.ToLower(strings.TrimSpace(conf.GetString("shaping.direction"))); s {
	case "":
	case "ltr":
		regs.base[P_TEXTDIRECTION] = bidi.LeftToRight
	case "rtl":
		regs.base[P_TEXTDIRECTION] = bidi.RightToLeft
	default:
		tracer().Errorf("configuration shaping.direction: unknown direction %q", s)
	}
	if s := strings.TrimSpace(conf.GetString("shaping.always-complex")); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			regs.base[P_ALWAYSCOMPLEX] = b
		} else {
			tracer().Errorf("configuration shaping.always-complex: %v", err)
		}
	}
	setInt(regs, conf, "shaping.cache-limit", P_SHAPECACHELIMIT, 1, 1<<24)
	setInt(regs, conf, "shaping.max-cached-string", P_MAXCACHEDSTRING, 1, DefaultMaxCachedString)
	setInt(regs, conf, "shaping.tab-size", P_TABSIZE, 0, 256)
	switch s := strings.ToLower(strings.TrimSpace(conf.GetString("shaping.engine"))); s {
	case "":
	case EngineTextlayout, EngineGoText:
		regs.base[P_SHAPINGENGINE] = s
	default:
		tracer().Errorf("configuration shaping.engine: unknown engine %q", s)
	}
	return regs
}

func setInt(regs *TypesettingRegisters, conf schuko.Configuration, key string,
	p TypesettingParameter, lo, hi int) {
	//
	s := strings.TrimSpace(conf.GetString(key))
	if s == "" {
		return
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		tracer().Errorf("configuration %s: %v", key, err)
		return
	}
	if n < lo {
		n = lo
	} else if n > hi {
		n = hi
	}
	regs.base[p] = n
}

func (regs *TypesettingRegisters) Begingroup() {
	regs.grouplevel++
}

func (regs *TypesettingRegisters) Endgroup() {
	if regs.grouplevel > 0 {
		if regs.groups != nil && regs.groups.level == regs.grouplevel {
			regs.groups = regs.groups.next
		}
		regs.grouplevel--
	}
}

func (regs *TypesettingRegisters) Push(key TypesettingParameter, value interface{}) {
	if key <= 0 || key >= P_STOPPER {
		panic("parameter key outside range of typesetting parameters")
	}
	if regs.grouplevel > 0 {
		var g *ParameterGroup
		if regs.groups == nil || regs.groups.level < regs.grouplevel {
			g = &ParameterGroup{}
			g.params = make(map[TypesettingParameter]interface{})
			g.level = regs.grouplevel
			g.next = regs.groups
			regs.groups = g
		} else {
			g = regs.groups
		}
		g.params[key] = value
	} else {
		regs.base[key] = value
	}
}

func (regs *TypesettingRegisters) Get(key TypesettingParameter) interface{} {
	if key <= 0 || key >= P_STOPPER {
		panic("parameter key outside range of typesetting parameters")
	}
	var value interface{}
	if regs.grouplevel > 0 {
		for g := regs.groups; g != nil; g = g.next {
			value = g.params[key]
			if value != nil {
				break
			}
		}
	}
	if value == nil {
		value = regs.base[key]
	}
	return value
}

func (regs *TypesettingRegisters) S(key TypesettingParameter) string {
	return regs.Get(key).(string)
}

func (regs *TypesettingRegisters) N(key TypesettingParameter) int {
	return regs.Get(key).(int)
}

func (regs *TypesettingRegisters) B(key TypesettingParameter) bool {
	return regs.Get(key).(bool)
}

// Direction returns the base text direction register.
func (regs *TypesettingRegisters) Direction() bidi.Direction {
	return regs.Get(P_TEXTDIRECTION).(bidi.Direction)
}

// Locale returns the language register as a language tag, with the script
// taken from the script register. Malformed values are traced and
// ignored.
func (regs *TypesettingRegisters) Locale() language.Tag {
	tag, err := language.Parse(regs.S(P_LANGUAGE))
	if err != nil {
		tracer().Errorf("language register: %v", err)
		tag = language.Und
	}
	script, err := language.ParseScript(regs.S(P_SCRIPT))
	if err != nil {
		tracer().Errorf("script register: %v", err)
		return tag
	}
	if t, err := language.Compose(tag, script); err == nil {
		tag = t
	}
	return tag
}
