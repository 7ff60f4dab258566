/*
Package fontregistry manages a registry for loaded fonts.

Fonts are stored from binaries handed in by clients. The registry derives
typecases at given sizes and caches them, and creates fallback lists for
glyph lookup. Go Sans is always present as the last fallback.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'tyse.font'
func tracer() tracing.Trace {
	return tracing.Select("tyse.font")
}
