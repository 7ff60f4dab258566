package resources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textshaping/core"
	"github.com/npillmayer/textshaping/core/font/fontregistry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/gomono"
)

// --- Test Suite Preparation ------------------------------------------------

type FontFileTestEnviron struct {
	suite.Suite
	fpath string
}

// listen for 'go test' command --> run test methods
func TestFontFiles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.font")
	defer teardown()
	suite.Run(t, new(FontFileTestEnviron))
}

// run once, before test suite methods
func (env *FontFileTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("tyse.font").SetTraceLevel(tracing.LevelError)
	env.fpath = filepath.Join(env.T().TempDir(), "GoMono.ttf")
	env.Require().NoError(os.WriteFile(env.fpath, gomono.TTF, 0644))
	tracing.Select("tyse.font").SetTraceLevel(tracing.LevelInfo)
}

// run once, after test suite methods
func (env *FontFileTestEnviron) TearDownSuite() {
	env.T().Log("Tearing down test suite")
}

// --- Tests -----------------------------------------------------------------

func (env *FontFileTestEnviron) TestFindFontFileByPath() {
	found, err := FindFontFile(env.fpath)
	env.Require().NoError(err)
	env.Equal(env.fpath, found)
}

func (env *FontFileTestEnviron) TestLoadFont() {
	registry := fontregistry.NewRegistry()
	key, err := LoadFont(registry, env.fpath)
	env.Require().NoError(err)
	tc, err := registry.TypeCase(key, 12)
	env.Require().NoError(err)
	env.NotZero(tc.GlyphIndex('x'))
}

func TestMissingFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.font")
	defer teardown()
	//
	_, err := FindFontFile("no-such-font-anywhere-4711.ttf")
	require.Error(t, err)
	assert.Equal(t, core.EMISSING, core.Code(err))
	_, err = FindFontFile("")
	assert.Equal(t, core.EMISSING, core.Code(err))
}
