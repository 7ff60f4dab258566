package glyphing

import (
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
)

var setupGraphemes sync.Once

// CountGraphemesInCluster counts the user-perceived characters within the
// UTF-16 text chars[start:end]. start and end may be given in either order.
func CountGraphemesInCluster(chars []uint16, start, end int) int {
	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if end > len(chars) {
		end = len(chars)
	}
	if start >= end {
		return 0
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	text := string(utf16.Decode(chars[start:end]))
	graphemes := segment.NewSegmenter(grapheme.NewBreaker(1))
	graphemes.Init(strings.NewReader(text))
	n := 0
	for graphemes.Next() {
		n++
	}
	return n
}
