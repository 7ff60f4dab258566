package fontregistry

import (
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textshaping/core"
	"github.com/npillmayer/textshaping/core/font"
	xfont "golang.org/x/image/font"
)

// Registry is a type for holding information about loaded fonts for a
// typesetter.
type Registry struct {
	sync.Mutex
	fonts     map[string]*font.ScalableFont
	typecases map[string]*font.TypeCase
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold information about
// loaded fonts and typecases.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

func NewRegistry() *Registry {
	fr := &Registry{
		fonts:     make(map[string]*font.ScalableFont),
		typecases: make(map[string]*font.TypeCase),
	}
	return fr
}

// StoreFont pushes a font into the registry if it isn't contained yet.
//
// The font will be stored using the normalized font name as a key. If this
// key is already associated with a font, that font will not be overridden.
func (fr *Registry) StoreFont(normalizedName string, f *font.ScalableFont) {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return
	}
	fr.Lock()
	defer fr.Unlock()
	if _, ok := fr.fonts[normalizedName]; !ok {
		tracer().Debugf("registry stores font %s as %s", f.Fontname, normalizedName)
		fr.fonts[normalizedName] = f
	}
}

// TypeCase returns a typecase with a given font and size.
// If a suitable typecase has already been cached, TypeCase will return the cached
// typecase. If a suitable font has previously been stored under key
// `normalizedName`, a typecase will be derived from this font.
//
// If no typecase can be produced, TypeCase will derive one from a system-wide
// fallback font and return it, together with an error.
func (fr *Registry) TypeCase(normalizedName string, size float32) (*font.TypeCase, error) {
	tracer().Debugf("registry searches for font %s at %.2f", normalizedName, size)
	tname := appendSize(normalizedName, size)
	fr.Lock()
	defer fr.Unlock()
	if t, ok := fr.typecases[tname]; ok {
		tracer().Debugf("registry found font %s", tname)
		return t, nil
	}
	if f, ok := fr.fonts[normalizedName]; ok {
		t, err := f.PrepareCase(size)
		if err == nil {
			tracer().Infof("font registry has font %s, caches at %.2f", normalizedName, size)
			fr.typecases[tname] = t
			return t, nil
		}
		return nil, err
	}
	tracer().Infof("registry does not contain font %s", normalizedName)
	err := core.Error(core.EMISSING, "font %s not found in registry", normalizedName)
	//
	// store typecase from fallback font, if not present yet, and return it
	t, ferr := fr.fallbackCase(size)
	if ferr != nil {
		return nil, ferr
	}
	return t, err
}

func (fr *Registry) fallbackCase(size float32) (*font.TypeCase, error) {
	fname := "fallback"
	tname := appendSize(fname, size)
	if t, ok := fr.typecases[tname]; ok {
		return t, nil
	}
	f := font.FallbackFont()
	t, err := f.PrepareCase(size)
	if err != nil {
		return nil, err
	}
	tracer().Infof("font registry caches fallback font %s at %.2f", fname, size)
	fr.fonts[fname] = f
	fr.typecases[tname] = t
	return t, nil
}

// FallbackList creates a fallback list for glyph lookup from a list of
// normalized font names, all at the same size. Fonts not contained in the
// registry are skipped. The fallback font is always appended as the last
// entry, so the resulting list is never empty.
func (fr *Registry) FallbackList(size float32, normalizedNames ...string) (*font.FallbackList, error) {
	cases := make([]*font.TypeCase, 0, len(normalizedNames)+1)
	var missing error
	for _, name := range normalizedNames {
		fr.Lock()
		_, ok := fr.fonts[name]
		fr.Unlock()
		if !ok {
			tracer().Infof("fallback list skips unknown font %s", name)
			missing = core.Error(core.EMISSING, "font %s not found in registry", name)
			continue
		}
		t, err := fr.TypeCase(name, size)
		if err != nil {
			return nil, err
		}
		cases = append(cases, t)
	}
	fr.Lock()
	fb, err := fr.fallbackCase(size)
	fr.Unlock()
	if err != nil {
		return nil, err
	}
	cases = append(cases, fb)
	return font.NewFallbackList(cases[0], cases[1:]...), missing
}

// LogFontList is a helper function to dump the list of known fonts and typecases
// in a registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts ---")
	for k, v := range fr.fonts {
		tracer().Infof("font [%s] = %v", k, v.Fontname)
	}
	for k, v := range fr.typecases {
		tracer().Infof("typecase [%s] = %v", k, v.ScalableFontParent().Fontname)
	}
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}

// NormalizeFontname creates a registry key from a font name, a style and a weight.
func NormalizeFontname(fname string, style xfont.Style, weight xfont.Weight) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ToLower(fname)
	switch style {
	case xfont.StyleItalic, xfont.StyleOblique:
		fname += "-italic"
	}
	switch weight {
	case xfont.WeightLight, xfont.WeightExtraLight:
		fname += "-light"
	case xfont.WeightBold, xfont.WeightExtraBold, xfont.WeightSemiBold:
		fname += "-bold"
	}
	return fname
}

func appendSize(fname string, size float32) string {
	fname = fmt.Sprintf("%s-%.2f", fname, size)
	return fname
}

// GuessStyleAndWeight trys to guess a font's style and weight from the
// font's file name.
func GuessStyleAndWeight(fontfilename string) (xfont.Style, xfont.Weight) {
	fontfilename = path.Base(fontfilename)
	ext := path.Ext(fontfilename)
	fontfilename = strings.ToLower(fontfilename[:len(fontfilename)-len(ext)])
	s := strings.Split(fontfilename, "-")
	if len(s) > 1 {
		switch s[len(s)-1] {
		case "light", "xlight":
			return xfont.StyleNormal, xfont.WeightLight
		case "normal", "medium", "regular", "r":
			return xfont.StyleNormal, xfont.WeightNormal
		case "bold", "b":
			return xfont.StyleNormal, xfont.WeightBold
		case "xbold", "black":
			return xfont.StyleNormal, xfont.WeightExtraBold
		}
	}
	style, weight := xfont.StyleNormal, xfont.WeightNormal
	if strings.Contains(fontfilename, "italic") {
		style = xfont.StyleItalic
	}
	if strings.Contains(fontfilename, "light") {
		weight = xfont.WeightLight
	}
	if strings.Contains(fontfilename, "bold") {
		weight = xfont.WeightBold
	}
	return style, weight
}

// Matches returns true if a font's filename contains pattern and indicators
// for a given style and weight.
func Matches(fontfilename, pattern string, style xfont.Style, weight xfont.Weight) bool {
	basename := path.Base(fontfilename)
	basename = basename[:len(basename)-len(path.Ext(basename))]
	basename = strings.ToLower(basename)
	tracer().Debugf("basename of font = %s", basename)
	if !strings.Contains(basename, strings.ToLower(pattern)) {
		return false
	}
	s, w := GuessStyleAndWeight(basename)
	if s == style && w == weight {
		return true
	}
	return false
}

// StoreFontBinary parses a font binary and stores it under a key derived
// from the font's file name. It returns the key.
func (fr *Registry) StoreFontBinary(fontfilename string, data []byte) (string, error) {
	f, err := font.ParseOpenTypeFont(data)
	if err != nil {
		return "", err
	}
	f.Filepath = fontfilename
	style, weight := GuessStyleAndWeight(fontfilename)
	name := NormalizeFontname(path.Base(fontfilename), style, weight)
	fr.StoreFont(name, f)
	return name, nil
}

// FindFont searches the registry for a font with a file name containing
// pattern and matching style and weight. It returns the registry key of the
// first match.
func (fr *Registry) FindFont(pattern string, style xfont.Style, weight xfont.Weight) (string, bool) {
	fr.Lock()
	defer fr.Unlock()
	for name, f := range fr.fonts {
		if f.Filepath != "" && Matches(f.Filepath, pattern, style, weight) {
			return name, true
		}
	}
	return "", false
}
