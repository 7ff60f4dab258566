package resources

import (
	"fmt"
	"os"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/textshaping/core"
	"github.com/npillmayer/textshaping/core/font/fontregistry"
)

// NotFound returns an application error for a missing font.
func NotFound(name string, err error) error {
	if err == nil {
		err = fmt.Errorf("resource missing: %v", name)
	}
	return core.WrapError(err, core.EMISSING, "font not found: %s", name)
}

// FindFontFile returns the path of a font file. name is either a path to
// an existing file or the file name of a system font, with or without
// extension.
func FindFontFile(name string) (string, error) {
	if name == "" {
		return "", NotFound(name, nil)
	}
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		return name, nil
	}
	fpath, err := findfont.Find(name) // try to find as system font
	if err != nil || fpath == "" {
		return "", NotFound(name, err)
	}
	tracer().Debugf("%s is a system font at %s", name, fpath)
	return fpath, nil
}

// LoadFont locates a font file, parses it and stores it in registry. It
// returns the registry key of the font.
func LoadFont(registry *fontregistry.Registry, name string) (string, error) {
	fpath, err := FindFontFile(name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(fpath)
	if err != nil {
		return "", core.WrapError(err, core.EMISSING, "cannot read font %s", fpath)
	}
	key, err := registry.StoreFontBinary(fpath, data)
	if err != nil {
		return "", err
	}
	tracer().Infof("loaded font %s as %s", fpath, key)
	return key, nil
}
