package fontregistry

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textshaping/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

func TestGuess(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.font")
	defer teardown()
	//
	for k, v := range map[string]struct {
		s xfont.Style
		w xfont.Weight
	}{
		"fonts/Clarendon-bold.ttf":               {xfont.StyleNormal, xfont.WeightBold},
		"Microsoft/Gill Sans MT Bold Italic.ttf": {xfont.StyleItalic, xfont.WeightBold},
		"Cambria Math.ttf":                       {xfont.StyleNormal, xfont.WeightNormal},
	} {
		style, weight := GuessStyleAndWeight(k)
		assert.Equal(t, v.s, style, k)
		assert.Equal(t, v.w, weight, k)
	}
}

func TestNormalizeFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.font")
	defer teardown()
	//
	n := NormalizeFontname("Clarendon", xfont.StyleItalic, xfont.WeightBold)
	assert.Equal(t, "clarendon-italic-bold", n)
}

func TestRegistryTypeCase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.font")
	defer teardown()
	//
	fr := NewRegistry()
	name, err := fr.StoreFontBinary("fonts/Go-Mono.ttf", gomono.TTF)
	require.NoError(t, err)
	assert.Equal(t, "go-mono", name)
	tc, err := fr.TypeCase(name, 12)
	require.NoError(t, err)
	tc2, _ := fr.TypeCase(name, 12)
	assert.Same(t, tc, tc2, "typecases are cached")
	//
	fb, err := fr.TypeCase("no-such-font", 12)
	assert.Equal(t, core.EMISSING, core.Code(err))
	require.NotNil(t, fb, "fallback typecase must be returned")
	assert.Equal(t, "Go Sans", fb.ScalableFontParent().Fontname)
	//
	found, ok := fr.FindFont("mono", xfont.StyleNormal, xfont.WeightNormal)
	assert.True(t, ok)
	assert.Equal(t, name, found)
}

func TestRegistryFallbackList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.font")
	defer teardown()
	//
	fr := NewRegistry()
	name, err := fr.StoreFontBinary("Go-Mono.ttf", gomono.TTF)
	require.NoError(t, err)
	fl, err := fr.FallbackList(14, name, "unknown")
	assert.Error(t, err)
	require.NotNil(t, fl)
	assert.Equal(t, 2, fl.Len())
	assert.Equal(t, float32(14), fl.PrimaryFont().Size())
}
