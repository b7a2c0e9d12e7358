package engine

// decodeRune decodes the first UTF-8 sequence of s and returns the rune and
// its width in bytes. Truncated sequences decode as U+FFFD with width 1.
func decodeRune(s string) (rune, int) {
	if len(s) == 0 {
		return 0, 0
	}

	b0 := s[0]
	if b0 < 0x80 {
		return rune(b0), 1
	}

	// stray continuation byte
	if b0 < 0xC0 || len(s) < 2 {
		return 0xFFFD, 1
	}

	if b0 < 0xE0 {
		return rune(b0&0x1F)<<6 | rune(s[1]&0x3F), 2
	}

	if len(s) < 3 {
		return 0xFFFD, 1
	}

	if b0 < 0xF0 {
		return rune(b0&0x0F)<<12 | rune(s[1]&0x3F)<<6 | rune(s[2]&0x3F), 3
	}

	if len(s) < 4 {
		return 0xFFFD, 1
	}

	return rune(b0&0x07)<<18 | rune(s[1]&0x3F)<<12 | rune(s[2]&0x3F)<<6 | rune(s[3]&0x3F), 4
}

// utf16Len is the number of UTF-16 code units needed to encode r.
func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}

// offsetCursor converts ascending byte offsets of a single string into rune
// and UTF-16 offsets in one forward pass. Offsets must be requested in
// non-decreasing order.
type offsetCursor struct {
	s     string
	pos   int // byte position reached so far
	runes int // runes before pos
	units int // UTF-16 code units before pos
}

func newOffsetCursor(s string) *offsetCursor {
	return &offsetCursor{s: s}
}

// advance moves the cursor to byte offset off and returns the rune and
// UTF-16 offsets of that position.
func (c *offsetCursor) advance(off int) (runeOff, utf16Off int) {
	for c.pos < off && c.pos < len(c.s) {
		r, size := decodeRune(c.s[c.pos:])
		c.pos += size
		c.runes++
		c.units += utf16Len(r)
	}
	return c.runes, c.units
}
