package engine

import "strings"

// indexFrom returns the first offset >= from at which needle occurs in
// haystack, or -1. It filters on the first byte before comparing the rest.
func indexFrom(haystack, needle []byte, from int) int {
	n := len(needle)
	if n == 0 || from < 0 {
		return -1
	}
	first := needle[0]
	last := len(haystack) - n
	for i := from; i <= last; i++ {
		if haystack[i] != first {
			continue
		}
		if memEqual(haystack[i:], needle, n) {
			return i
		}
	}
	return -1
}

// countLiteral counts non-overlapping occurrences of needle in s, scanning
// left to right and resuming after each match.
func countLiteral(s, needle string) int {
	if needle == "" {
		return 0
	}
	hb := unsafeStringToBytes(s)
	nb := unsafeStringToBytes(needle)

	count := 0
	for off := indexFrom(hb, nb, 0); off >= 0; off = indexFrom(hb, nb, off+len(nb)) {
		count++
	}
	return count
}

// locate fills ctx.offsets with the eligible match offsets of search in
// content: every literal match whose start is outside all widget spans.
func (ctx *scanContext) locate(content, search string) []int {
	ctx.spans = appendWidgetSpans(ctx.spans[:0], content)
	ctx.offsets = ctx.offsets[:0]
	if search == "" {
		return ctx.offsets
	}

	hb := unsafeStringToBytes(content)
	nb := unsafeStringToBytes(search)

	j := 0
	for off := indexFrom(hb, nb, 0); off >= 0; off = indexFrom(hb, nb, off+len(nb)) {
		// spans are sorted and disjoint, so skip the ones already behind us
		for j < len(ctx.spans) && ctx.spans[j].end <= off {
			j++
		}
		if j < len(ctx.spans) && ctx.spans[j].contains(off) {
			continue
		}
		ctx.offsets = append(ctx.offsets, off)
	}
	return ctx.offsets
}

// replaceContent walks every raw literal match of search in content. Matches
// whose offset appears in eligible (ascending) are replaced by fn(match);
// the rest are kept. The bool is false when nothing was eligible and content
// is returned as is.
func replaceContent(content, search string, eligible []int, fn func(match string) string) (string, bool) {
	if search == "" || len(eligible) == 0 {
		return content, false
	}

	hb := unsafeStringToBytes(content)
	nb := unsafeStringToBytes(search)

	var sb strings.Builder
	sb.Grow(len(content))

	prev, e := 0, 0
	for off := indexFrom(hb, nb, 0); off >= 0; off = indexFrom(hb, nb, off+len(nb)) {
		for e < len(eligible) && eligible[e] < off {
			e++
		}
		if e == len(eligible) {
			break
		}
		if eligible[e] != off {
			continue
		}
		e++
		sb.WriteString(content[prev:off])
		sb.WriteString(fn(content[off : off+len(nb)]))
		prev = off + len(nb)
	}
	sb.WriteString(content[prev:])
	return sb.String(), true
}
