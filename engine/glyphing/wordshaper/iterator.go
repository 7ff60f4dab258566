package wordshaper

import (
	"github.com/npillmayer/textshaping/core/font"
	"github.com/npillmayer/textshaping/engine/glyphing"
	"github.com/npillmayer/textshaping/engine/glyphing/harfbuzz"
	"github.com/npillmayer/textshaping/engine/glyphing/shapecache"
)

// Iterator produces the shape results of a run, word by word if possible.
type Iterator struct {
	cache         *shapecache.Cache
	engine        harfbuzz.Engine
	font          *font.Font
	run           glyphing.TextRun
	fallbackFonts font.FontSet
	shapeByWord   bool
	cacheable     bool
	startIndex    int
}

// NewIterator creates an iterator over the words of run. If fallbackFonts is
// non-nil, typecases other than the primary font are added to it, and newly
// shaped results are not stored in the cache.
func NewIterator(cache *shapecache.Cache, engine harfbuzz.Engine, f *font.Font, run glyphing.TextRun,
	fallbackFonts font.FontSet) *Iterator {
	//
	it := &Iterator{
		cache:         cache,
		engine:        engine,
		font:          f,
		run:           run,
		fallbackFonts: fallbackFonts,
	}
	// results depend on the run's properties beyond its text
	it.cacheable = run.Expansion() == 0 && !run.AllowTabs() && !run.NormalizeSpace()
	desc := f.Description()
	it.shapeByWord = it.cacheable && desc.LetterSpacing == 0 && desc.WordSpacing == 0 &&
		f.CanShapeWordByWord()
	return it
}

// ShapesByWord is true if the run is split into words.
func (it *Iterator) ShapesByWord() bool {
	return it.shapeByWord
}

// Next returns the next word's shape result. A word which cannot be shaped
// is returned as a result without glyphs, covering the word's characters.
// If the run is not split into words and cannot be shaped, Next returns
// a nil result. ok is false after the last word.
func (it *Iterator) Next() (result *glyphing.ShapeResult, ok bool) {
	if !it.shapeByWord {
		if it.startIndex > 0 || it.run.Len() == 0 {
			return nil, false
		}
		it.startIndex = it.run.Len()
		result = it.shapeWord(it.run)
		return result, result != nil
	}
	return it.nextWord()
}

func (it *Iterator) nextWord() (*glyphing.ShapeResult, bool) {
	length := it.run.Len()
	if it.startIndex >= length {
		return nil, false
	}
	i := it.startIndex + 1
	if it.run.At(it.startIndex) != glyphing.SpaceCharacter {
		for i < length && it.run.At(i) != glyphing.SpaceCharacter {
			i++
		}
	}
	word := it.run.SubRun(it.startIndex, i-it.startIndex)
	it.startIndex = i
	if result := it.shapeWord(word); result != nil {
		return result, true
	}
	// keep the word's characters, so offsets of following words stay intact
	empty := glyphing.NewShapeResultBuilder(it.font.PrimaryFont(), word.Len(), it.run.Direction())
	return empty.Build(), true
}

func (it *Iterator) shapeWord(word glyphing.TextRun) *glyphing.ShapeResult {
	var entry *shapecache.Entry
	if it.cacheable {
		entry = it.cache.Add(word)
	}
	if entry != nil && entry.ShapeResult != nil {
		if it.fallbackFonts != nil {
			entry.ShapeResult.FallbackFonts(it.fallbackFonts)
		}
		return entry.ShapeResult
	}
	result := harfbuzz.NewShaper(it.font, word, it.engine, it.fallbackFonts).ShapeResult()
	if result == nil {
		tracer().Errorf("cannot shape %q", word.String())
		return nil
	}
	if entry != nil && it.fallbackFonts == nil {
		entry.ShapeResult = result
	}
	return result
}
