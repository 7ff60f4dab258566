/*
Package monospace measures text runs in terminal cells.

Every grapheme of a run occupies one or two cells of a fixed-width grid,
depending on its East Asian width. Fonts do not take part in measuring.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package monospace

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tyse.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("tyse.glyphs")
}
