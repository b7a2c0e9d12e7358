package engine

import "maps"

// Slot names used by the editor layouts.
const (
	SlotQuestion = "question"
	SlotHints    = "hints"
	SlotJSON     = "json"
)

// Field is a piece of editable content. Props carries whatever else the
// owner attached to it; the engine copies it through untouched.
type Field struct {
	Content string
	Props   map[string]any
}

// withContent returns a copy of f holding content.
func (f Field) withContent(content string) Field {
	return Field{Content: content, Props: maps.Clone(f.Props)}
}

// SlotKind tells what a Slot holds.
type SlotKind uint8

const (
	// Absent slots hold nothing and pass through every operation.
	Absent SlotKind = iota
	// Single slots hold exactly one field.
	Single
	// List slots hold an ordered, possibly empty, list of fields.
	List
)

// Slot is a named position in a Document.
type Slot struct {
	Name   string
	Kind   SlotKind
	Fields []Field
}

// SingleSlot builds a slot holding f.
func SingleSlot(name string, f Field) Slot {
	return Slot{Name: name, Kind: Single, Fields: []Field{f}}
}

// ListSlot builds a slot holding fields in order.
func ListSlot(name string, fields ...Field) Slot {
	return Slot{Name: name, Kind: List, Fields: fields}
}

// AbsentSlot builds an empty slot.
func AbsentSlot(name string) Slot {
	return Slot{Name: name, Kind: Absent}
}

// Field returns the single field of the slot.
func (s Slot) Field() (Field, bool) {
	if s.Kind != Single || len(s.Fields) == 0 {
		return Field{}, false
	}
	return s.Fields[0], true
}

// Document is an ordered set of slots. Slot order defines the global
// occurrence numbering.
type Document struct {
	Slots []Slot
}

// NewDocument builds a document from slots in traversal order.
func NewDocument(slots ...Slot) Document {
	return Document{Slots: slots}
}

// NewItemDocument builds the editor layout: question, hints, json. A nil
// question or nil list leaves the corresponding slot absent.
func NewItemDocument(question *Field, hints, sections []Field) Document {
	doc := Document{Slots: make([]Slot, 0, 3)}

	if question != nil {
		doc.Slots = append(doc.Slots, SingleSlot(SlotQuestion, *question))
	} else {
		doc.Slots = append(doc.Slots, AbsentSlot(SlotQuestion))
	}
	for _, l := range []struct {
		name   string
		fields []Field
	}{{SlotHints, hints}, {SlotJSON, sections}} {
		if l.fields != nil {
			doc.Slots = append(doc.Slots, ListSlot(l.name, l.fields...))
		} else {
			doc.Slots = append(doc.Slots, AbsentSlot(l.name))
		}
	}
	return doc
}

// Slot returns the first slot called name.
func (d Document) Slot(name string) (Slot, bool) {
	for _, s := range d.Slots {
		if s.Name == name {
			return s, true
		}
	}
	return Slot{}, false
}

// Contents returns the content strings of every field in traversal order.
func (d Document) Contents() []string {
	refs := d.flatten()
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.field.Content
	}
	return out
}

// fieldRef locates a field inside a document.
type fieldRef struct {
	slot  int
	item  int
	field *Field
}

// flatten lists every field in traversal order: slots in order, list items
// in order. Absent slots contribute nothing.
func (d Document) flatten() []fieldRef {
	n := 0
	for _, s := range d.Slots {
		if s.Kind != Absent {
			n += len(s.Fields)
		}
	}
	refs := make([]fieldRef, 0, n)
	for si := range d.Slots {
		s := &d.Slots[si]
		if s.Kind == Absent {
			continue
		}
		for fi := range s.Fields {
			refs = append(refs, fieldRef{slot: si, item: fi, field: &s.Fields[fi]})
		}
	}
	return refs
}

// mapFields returns a new document where every field is replaced by fn's
// result, visiting fields in traversal order. Slot headers, order and list
// lengths are preserved; untouched field slices are shared.
func (d Document) mapFields(fn func(f Field) (Field, bool)) Document {
	out := Document{Slots: make([]Slot, len(d.Slots))}
	for si, s := range d.Slots {
		out.Slots[si] = s
		if s.Kind == Absent {
			continue
		}

		var fields []Field
		for fi, f := range s.Fields {
			nf, changed := fn(f)
			if !changed {
				continue
			}
			if fields == nil {
				fields = make([]Field, len(s.Fields))
				copy(fields, s.Fields)
			}
			fields[fi] = nf
		}
		if fields != nil {
			out.Slots[si].Fields = fields
		}
	}
	return out
}
