/*
Package text sets text runs in a font.

A Font decides for every run whether it is set by the simple shaper, glyph
by glyph, or by the complex shaper through an OpenType shaping engine.
Complex results are shaped word by word where possible and cached per
font. Clients measure runs, hit-test positions, compute selection
rectangles and collect glyphs for painting.

Fonts are not safe for concurrent use; each goroutine should work with a
font of its own.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package text

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tyse.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("tyse.glyphs")
}
