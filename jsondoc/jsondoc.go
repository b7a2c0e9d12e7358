// Package jsondoc runs the search and replace engine over raw JSON
// documents. Only the "content" strings of the configured slots are ever
// rewritten; every other byte of the document is left as it was.
package jsondoc

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	engine "github.com/42atomys/go-widget-replace"
)

// ContentKey is the property holding a field's text.
const ContentKey = "content"

var (
	// ErrInvalidJSON is returned when the input is not valid JSON.
	ErrInvalidJSON = errors.New("jsondoc: invalid JSON")

	// ErrBadSlot is returned when a slot is neither an object, an array of
	// objects, null nor missing, or when a field has no string content.
	ErrBadSlot = errors.New("jsondoc: malformed slot")
)

// Schema lists the slots of a document as gjson paths, in traversal order.
type Schema struct {
	Slots []string
}

// DefaultSchema is the editor layout: question, hints, json.
var DefaultSchema = Schema{
	Slots: []string{engine.SlotQuestion, engine.SlotHints, engine.SlotJSON},
}

// Decode reads the slots named by schema out of raw. Objects become single
// slots, arrays become list slots, missing or null values become absent
// slots. Properties other than content are kept in Field.Props.
func Decode(raw []byte, schema Schema) (engine.Document, error) {
	if !gjson.ValidBytes(raw) {
		return engine.Document{}, ErrInvalidJSON
	}

	doc := engine.Document{Slots: make([]engine.Slot, 0, len(schema.Slots))}
	for _, path := range schema.Slots {
		res := gjson.GetBytes(raw, path)

		switch {
		case !res.Exists() || res.Type == gjson.Null:
			doc.Slots = append(doc.Slots, engine.AbsentSlot(path))

		case res.IsObject():
			f, err := decodeField(res, path)
			if err != nil {
				return engine.Document{}, err
			}
			doc.Slots = append(doc.Slots, engine.SingleSlot(path, f))

		case res.IsArray():
			items := res.Array()
			fields := make([]engine.Field, 0, len(items))
			for i, item := range items {
				f, err := decodeField(item, itemPath(path, i))
				if err != nil {
					return engine.Document{}, err
				}
				fields = append(fields, f)
			}
			doc.Slots = append(doc.Slots, engine.ListSlot(path, fields...))

		default:
			return engine.Document{}, fmt.Errorf("%w: %s is a %s", ErrBadSlot, path, res.Type)
		}
	}
	return doc, nil
}

func decodeField(res gjson.Result, path string) (engine.Field, error) {
	if !res.IsObject() {
		return engine.Field{}, fmt.Errorf("%w: %s is not an object", ErrBadSlot, path)
	}
	content := res.Get(ContentKey)
	if content.Type != gjson.String {
		return engine.Field{}, fmt.Errorf("%w: %s.%s is not a string", ErrBadSlot, path, ContentKey)
	}

	f := engine.Field{Content: content.String()}
	res.ForEach(func(key, value gjson.Result) bool {
		if key.String() == ContentKey {
			return true
		}
		if f.Props == nil {
			f.Props = make(map[string]any)
		}
		f.Props[key.String()] = value.Value()
		return true
	})
	return f, nil
}

// Encode writes the content of every field in doc back into a copy of raw.
// doc must have the shape Decode produced for raw and schema; only content
// values that changed are touched.
func Encode(raw []byte, schema Schema, doc engine.Document) ([]byte, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidJSON
	}

	out := make([]byte, len(raw))
	copy(out, raw)

	for _, path := range schema.Slots {
		slot, ok := doc.Slot(path)
		if !ok || slot.Kind == engine.Absent {
			continue
		}

		var err error
		switch slot.Kind {
		case engine.Single:
			if len(slot.Fields) != 1 {
				return nil, fmt.Errorf("%w: %s holds %d fields", ErrBadSlot, path, len(slot.Fields))
			}
			out, err = setContent(out, path, slot.Fields[0].Content)
		case engine.List:
			if n := gjson.GetBytes(out, path+".#").Int(); int(n) != len(slot.Fields) {
				return nil, fmt.Errorf("%w: %s has %d items, document has %d", ErrBadSlot, path, n, len(slot.Fields))
			}
			for i, f := range slot.Fields {
				if out, err = setContent(out, itemPath(path, i), f.Content); err != nil {
					break
				}
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func setContent(raw []byte, fieldPath, content string) ([]byte, error) {
	path := fieldPath + "." + ContentKey
	if gjson.GetBytes(raw, path).String() == content {
		return raw, nil
	}
	out, err := sjson.SetBytes(raw, path, content)
	if err != nil {
		return nil, fmt.Errorf("setting %s: %w", path, err)
	}
	return out, nil
}

func itemPath(path string, i int) string {
	return path + "." + strconv.Itoa(i)
}

// Count returns the number of eligible occurrences of search in raw.
func Count(raw []byte, schema Schema, search string) (int, error) {
	doc, err := Decode(raw, schema)
	if err != nil {
		return 0, err
	}
	return engine.Count(doc, search), nil
}

// Occurrences lists the eligible occurrences of search in raw. Slot names
// are the schema paths.
func Occurrences(raw []byte, schema Schema, search string) ([]engine.Occurrence, error) {
	doc, err := Decode(raw, schema)
	if err != nil {
		return nil, err
	}
	return engine.Occurrences(doc, search), nil
}

// ReplaceAll is engine.ReplaceAll over raw JSON. It returns the new
// document and its recounted occurrence total.
func ReplaceAll(raw []byte, schema Schema, search, replacement string) ([]byte, int, error) {
	doc, err := Decode(raw, schema)
	if err != nil {
		return nil, 0, err
	}
	doc, _ = engine.ReplaceAll(doc, search, replacement)
	out, err := Encode(raw, schema, doc)
	if err != nil {
		return nil, 0, err
	}
	return out, engine.Count(doc, search), nil
}

// ReplaceOne is engine.ReplaceOne over raw JSON.
func ReplaceOne(raw []byte, schema Schema, search, replacement string, index, count int) ([]byte, int, int, error) {
	doc, err := Decode(raw, schema)
	if err != nil {
		return nil, 0, 0, err
	}
	doc, index, count = engine.ReplaceOne(doc, search, replacement, index, count)
	out, err := Encode(raw, schema, doc)
	if err != nil {
		return nil, 0, 0, err
	}
	return out, index, count, nil
}
