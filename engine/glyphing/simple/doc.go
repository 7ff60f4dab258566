/*
Package simple implements a shaper for text which needs no shaping engine.

The simple shaper maps characters one by one to glyphs and advances the pen
by each glyph's width. Text it is used for must not contain characters which
form clusters, ligatures or re-ordered glyph sequences (see
glyphing.CodePathFor). Letter spacing, word spacing, justification and tab
stops are applied while advancing.

Right-to-left text is measured from its logical start, i.e. glyphs are
produced left-to-right with mirrored characters and have to be reversed by
the client (see glyphing.GlyphBuffer.ReverseForSimpleRTL).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package simple

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tyse.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("tyse.glyphs")
}
