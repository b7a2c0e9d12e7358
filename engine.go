// Package engine finds and replaces literal text in editor documents while
// leaving widget reference tokens such as "[[☃ categorizer 1]]" untouched.
//
// Occurrences are numbered globally across a document: slots in order, list
// items in order, matches left to right. Every function here is pure; inputs
// are never modified and a new Document is returned.
package engine

// Occurrence is one eligible match of a search string inside a document.
type Occurrence struct {
	Index  int    // global occurrence index
	Slot   string // name of the slot holding the field
	Item   int    // position inside a list slot, 0 for single slots
	Offset int    // byte offset inside the field content
	Rune   int    // rune offset inside the field content
	UTF16  int    // UTF-16 code unit offset inside the field content
}

// Locate returns the ascending byte offsets of every literal occurrence of
// search in content that does not start inside a widget reference token.
// The scan is non-overlapping. An empty search finds nothing.
func Locate(content, search string) []int {
	if search == "" {
		return nil
	}

	ctx := acquireScanContext()
	defer releaseScanContext(ctx)

	offsets := ctx.locate(content, search)
	if len(offsets) == 0 {
		return nil
	}
	out := make([]int, len(offsets))
	copy(out, offsets)
	return out
}

// CountLiteral counts non-overlapping occurrences of search in s without
// excluding widget tokens.
func CountLiteral(s, search string) int {
	return countLiteral(s, search)
}

// Count returns the number of eligible occurrences of search in doc.
func Count(doc Document, search string) int {
	if search == "" {
		return 0
	}

	ctx := acquireScanContext()
	defer releaseScanContext(ctx)

	total := 0
	for _, ref := range doc.flatten() {
		total += len(ctx.locate(ref.field.Content, search))
	}
	return total
}

// Occurrences lists every eligible occurrence of search in doc in global
// index order.
func Occurrences(doc Document, search string) []Occurrence {
	if search == "" {
		return nil
	}

	ctx := acquireScanContext()
	defer releaseScanContext(ctx)

	var out []Occurrence
	for _, ref := range doc.flatten() {
		content := ref.field.Content
		cur := newOffsetCursor(content)
		for _, off := range ctx.locate(content, search) {
			r, u := cur.advance(off)
			out = append(out, Occurrence{
				Index:  len(out),
				Slot:   doc.Slots[ref.slot].Name,
				Item:   ref.item,
				Offset: off,
				Rune:   r,
				UTF16:  u,
			})
		}
	}
	return out
}

// replaceFunc rewrites every field of doc, handing each eligible match to fn
// in global index order.
func replaceFunc(doc Document, search string, fn func(match string) string) Document {
	ctx := acquireScanContext()
	defer releaseScanContext(ctx)

	return doc.mapFields(func(f Field) (Field, bool) {
		eligible := ctx.locate(f.Content, search)
		content, rewritten := replaceContent(f.Content, search, eligible, fn)
		if !rewritten {
			return f, false
		}
		return f.withContent(content), true
	})
}

// ReplaceAll replaces every eligible occurrence of search in doc with
// replacement. The returned search index is always 0; callers recount with
// Count since replacement may itself contain search.
func ReplaceAll(doc Document, search, replacement string) (Document, int) {
	if search == "" {
		return doc, 0
	}
	return replaceFunc(doc, search, func(string) string { return replacement }), 0
}

// ReplaceOne replaces the eligible occurrence with global index index and
// returns the new document, index and count. count is the caller's current
// total; the new total is derived from it by how many times replacement
// contains search, and the index is clamped into the new total.
//
// An index outside [0, count) replaces nothing. When the new total reaches
// zero the search is exhausted and both index and count are 0.
func ReplaceOne(doc Document, search, replacement string, index, count int) (Document, int, int) {
	if search == "" {
		return doc, 0, 0
	}

	n := 0
	out := replaceFunc(doc, search, func(match string) string {
		hit := n == index
		n++
		if hit {
			return replacement
		}
		return match
	})

	newCount := count + countLiteral(replacement, search) - 1
	if newCount <= 0 {
		return out, 0, 0
	}
	if index >= newCount {
		index = newCount - 1
	}
	return out, index, newCount
}
