package glyphing

// CodePointIterator iterates over the code points of a range of a text run.
// It is aware of surrogate pairs; unpaired surrogates are reported as
// U+FFFD. Iteration may be restarted at any offset.
type CodePointIterator struct {
	run    TextRun
	offset int
	end    int
}

// NewCodePointIterator creates an iterator for the characters [from, to) of
// run.
func NewCodePointIterator(run TextRun, from, to int) *CodePointIterator {
	if to > run.Len() {
		to = run.Len()
	}
	if from < 0 {
		from = 0
	}
	return &CodePointIterator{run: run, offset: from, end: to}
}

// Consume returns the code point at the current position and its length in
// code units, without advancing. ok is false if the iterator is exhausted.
// A surrogate pair may extend beyond the end of the range, but not beyond
// the end of the run.
func (it *CodePointIterator) Consume() (r rune, length int, ok bool) {
	if it.offset >= it.end {
		return 0, 0, false
	}
	if it.run.is8Bit {
		return rune(it.run.chars8[it.offset]), 1, true
	}
	r, length = decodeUTF16(it.run.chars16, it.offset, len(it.run.chars16))
	return r, length, true
}

// Advance moves the iterator n code units forward.
func (it *CodePointIterator) Advance(n int) {
	it.offset += n
}

// Offset returns the current position, in code units.
func (it *CodePointIterator) Offset() int {
	return it.offset
}

// End returns the end of the iteration range.
func (it *CodePointIterator) End() int {
	return it.end
}

// Reset restarts iteration at offset.
func (it *CodePointIterator) Reset(offset int) {
	it.offset = offset
}
