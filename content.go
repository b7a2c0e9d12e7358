package engine

// WidgetMarker is the rune that opens every widget reference token.
const WidgetMarker = '☃'

// widgetOpen is the fixed prefix of a widget reference token: "[[☃ ".
const widgetOpen = "[[☃ "

// NodeKind tags a Node as free text or as a widget reference.
type NodeKind uint8

const (
	// TextNode is a run of searchable text.
	TextNode NodeKind = iota
	// WidgetNode is a widget reference token such as "[[☃ categorizer 1]]".
	WidgetNode
)

func (k NodeKind) String() string {
	switch k {
	case TextNode:
		return "text"
	case WidgetNode:
		return "widget"
	default:
		return "unknown"
	}
}

// Node is one piece of parsed content. Start and End are byte offsets into
// the content it was parsed from, End exclusive.
type Node struct {
	Kind  NodeKind
	Start int
	End   int
	// Widget holds the widget id ("categorizer 1") for widget nodes.
	Widget string
}

// Text returns the slice of content covered by the node.
func (n Node) Text(content string) string {
	return content[n.Start:n.End]
}

// span is a half-open byte range.
type span struct {
	start, end int
}

func (s span) contains(off int) bool {
	return off >= s.start && off < s.end
}

// Parse splits content into text and widget nodes in order. Adjacent nodes
// share boundaries and together cover the whole string. Anything that does
// not form a complete token is plain text.
func Parse(content string) []Node {
	ctx := acquireScanContext()
	defer releaseScanContext(ctx)

	ctx.spans = appendWidgetSpans(ctx.spans, content)

	nodes := make([]Node, 0, 2*len(ctx.spans)+1)
	pos := 0
	for _, sp := range ctx.spans {
		if sp.start > pos {
			nodes = append(nodes, Node{Kind: TextNode, Start: pos, End: sp.start})
		}
		nodes = append(nodes, Node{
			Kind:   WidgetNode,
			Start:  sp.start,
			End:    sp.end,
			Widget: content[sp.start+len(widgetOpen) : sp.end-2],
		})
		pos = sp.end
	}
	if pos < len(content) || len(nodes) == 0 {
		nodes = append(nodes, Node{Kind: TextNode, Start: pos, End: len(content)})
	}
	return nodes
}

// appendWidgetSpans appends the span of every well-formed widget token in
// content to dst, in order.
func appendWidgetSpans(dst []span, content string) []span {
	b := unsafeStringToBytes(content)
	open := unsafeStringToBytes(widgetOpen)

	for i := 0; i+len(open) <= len(b); {
		if b[i] != '[' || !hasAt(b, open, i) {
			i++
			continue
		}
		end, ok := scanWidgetBody(b, i+len(open))
		if !ok {
			i++
			continue
		}
		dst = append(dst, span{start: i, end: end})
		i = end
	}
	return dst
}

// scanWidgetBody matches `[a-z-]+ [0-9]+]]` at b[i:] and returns the offset
// just past the closing brackets.
func scanWidgetBody(b []byte, i int) (int, bool) {
	start := i
	for i < len(b) && (b[i] >= 'a' && b[i] <= 'z' || b[i] == '-') {
		i++
	}
	if i == start || i >= len(b) || b[i] != ' ' {
		return 0, false
	}
	i++

	start = i
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
	}
	if i == start || len(b)-i < 2 || b[i] != ']' || b[i+1] != ']' {
		return 0, false
	}
	return i + 2, true
}
