package chunk

// Segment is one bounded, boundary-aligned slice of a document. Start and End
// are byte offsets into the document, half-open, and consecutive segments
// meet exactly.
type Segment struct {
	Start int
	End   int
	Text  string
}

// Scanner walks a document front to back, producing consecutive segments on
// demand. Usage follows bufio.Scanner: call Next until it returns false, then
// check Err.
type Scanner struct {
	text string
	max  int
	pos  int
	cur  Segment
	err  error
}

// NewScanner returns a scanner over text with segments capped at max runes.
// A non-positive max falls back to DefaultMaxSegment.
func NewScanner(text string, max int) *Scanner {
	if max <= 0 {
		max = DefaultMaxSegment
	}
	return &Scanner{text: text, max: max}
}

// Next advances to the next segment. It returns false when the document is
// exhausted or the boundary search failed; Err distinguishes the two.
func (s *Scanner) Next() bool {
	if s.err != nil || s.pos >= len(s.text) {
		return false
	}

	n, err := FindSegmentEnd(s.text[s.pos:], s.max)
	if err != nil {
		s.err = err
		return false
	}
	if n == 0 {
		// A zero-length result on a non-empty window would loop forever.
		s.err = ErrInvariant
		return false
	}

	s.cur = Segment{Start: s.pos, End: s.pos + n, Text: s.text[s.pos : s.pos+n]}
	s.pos += n
	return true
}

// Segment returns the segment found by the most recent call to Next.
func (s *Scanner) Segment() Segment {
	return s.cur
}

// Err returns the first error hit while scanning, or nil.
func (s *Scanner) Err() error {
	return s.err
}

// Segments partitions text into consecutive boundary-aligned segments of at
// most max runes each. Concatenating the segment texts in order reproduces
// text exactly; an empty document yields no segments.
func Segments(text string, max int) ([]Segment, error) {
	var segs []Segment

	sc := NewScanner(text, max)
	for sc.Next() {
		segs = append(segs, sc.Segment())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return segs, nil
}
