/*
Package resources locates font files for an application.

Fonts are given either as a path to a font file or as the name of a font
installed on the system. Located fonts are parsed and stored in a font
registry.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'tyse.font'.
func tracer() tracing.Trace {
	return tracing.Select("tyse.font")
}
