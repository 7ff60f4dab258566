/*
Package shapecache caches shape results for short texts.

Words are shaped over and over again in a document, so results of the
complex shaper are cached per font. The cache holds single characters and
strings of up to MaxCacheableStringLength code units, keyed by their
content and direction. Longer strings are never cached.

The cache does not evict entries selectively. Once the number of entries
reaches the cache's limit, the cache is cleared as a whole.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package shapecache

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textshaping/core/parameters"
	"github.com/npillmayer/textshaping/engine/glyphing"
)

// tracer traces with key 'tyse.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("tyse.glyphs")
}

// MaxCacheableStringLength is the maximum length of strings in code units
// which may be cached.
const MaxCacheableStringLength = parameters.DefaultMaxCachedString

// rtlBit marks single character keys for right-to-left text. Code points
// never use bit 31.
const rtlBit = 1 << 31

// Entry is a cache slot. A nil ShapeResult means the slot has been created
// but not yet filled.
type Entry struct {
	ShapeResult *glyphing.ShapeResult
}

// smallStringKey holds a short string inline, so that keys do not need
// allocations of their own.
type smallStringKey struct {
	chars  [MaxCacheableStringLength]uint16
	length uint8
	rtl    bool
}

func makeSmallStringKey(run glyphing.TextRun) smallStringKey {
	key := smallStringKey{length: uint8(run.Len()), rtl: run.RTL()}
	for i := 0; i < run.Len(); i++ {
		key.chars[i] = run.At(i)
	}
	return key
}

// Stats counts cache accesses.
type Stats struct {
	Hits, Misses int
	Clears       int
}

func (s Stats) String() string {
	return fmt.Sprintf("shape cache: %d hits, %d misses, %d clears", s.Hits, s.Misses, s.Clears)
}

// Cache is a shape cache. It is not safe for concurrent use.
type Cache struct {
	singleChar  map[uint32]*Entry
	shortString map[smallStringKey]*Entry
	limit       int // # of entries which trigger clearing
	maxLength   int
	stats       Stats
}

// New creates a cache which is cleared when it holds limit entries, and
// which caches strings of at most maxLength code units. Values out of range
// are replaced by defaults.
func New(limit, maxLength int) *Cache {
	if limit <= 0 {
		limit = parameters.DefaultShapeCacheLimit
	}
	if maxLength <= 0 || maxLength > MaxCacheableStringLength {
		maxLength = MaxCacheableStringLength
	}
	return &Cache{
		singleChar:  make(map[uint32]*Entry),
		shortString: make(map[smallStringKey]*Entry),
		limit:       limit,
		maxLength:   maxLength,
	}
}

// FromRegisters creates a cache configured by the typesetting registers.
func FromRegisters(regs *parameters.TypesettingRegisters) *Cache {
	return New(regs.N(parameters.P_SHAPECACHELIMIT), regs.N(parameters.P_MAXCACHEDSTRING))
}

// Add looks up the entry for the text of run, creating an empty one if the
// text is not yet cached. It returns nil if the text is not cacheable, or
// if adding the entry made the cache reach its limit and the cache has been
// cleared.
func (c *Cache) Add(run glyphing.TextRun) *Entry {
	length := run.Len()
	if length == 0 || length > c.maxLength {
		return nil
	}
	var entry *Entry
	var found bool
	if length == 1 {
		key := uint32(run.At(0))
		if run.RTL() {
			key |= rtlBit
		}
		if entry, found = c.singleChar[key]; !found {
			entry = &Entry{}
			c.singleChar[key] = entry
		}
	} else {
		key := makeSmallStringKey(run)
		if entry, found = c.shortString[key]; !found {
			entry = &Entry{}
			c.shortString[key] = entry
		}
	}
	if found && entry.ShapeResult != nil {
		c.stats.Hits++
		return entry
	}
	c.stats.Misses++
	if c.Len() < c.limit {
		return entry
	}
	c.stats.Clears++
	tracer().Debugf("%v: clearing %d entries", c.stats, c.Len())
	c.Clear()
	return nil
}

// Len returns the number of entries of the cache.
func (c *Cache) Len() int {
	return len(c.singleChar) + len(c.shortString)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.singleChar = make(map[uint32]*Entry)
	c.shortString = make(map[smallStringKey]*Entry)
}

// Stats returns the access counts of the cache.
func (c *Cache) Stats() Stats {
	return c.stats
}
