package jsondoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	engine "github.com/42atomys/go-widget-replace"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return raw
}

func TestDecodeItem(t *testing.T) {
	raw := loadFixture(t, "item.json")

	doc, err := Decode(raw, DefaultSchema)
	require.NoError(t, err)

	require.Len(t, doc.Slots, 3)
	assert.Equal(t, engine.Single, doc.Slots[0].Kind)
	assert.Equal(t, engine.List, doc.Slots[1].Kind)
	assert.Equal(t, engine.Absent, doc.Slots[2].Kind)

	q, ok := doc.Slots[0].Field()
	require.True(t, ok)
	assert.Equal(t, "[[☃ categorizer 1]] categorizer [[☃ categorizer 2]] categorizer", q.Content)
	assert.Contains(t, q.Props, "widgets")
	assert.Contains(t, q.Props, "images")
	assert.NotContains(t, q.Props, ContentKey)

	assert.Equal(t, 3, engine.Count(doc, "categorizer"))
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		err  error
	}{
		{name: "InvalidJSON", raw: `{"question": `, err: ErrInvalidJSON},
		{name: "StringSlot", raw: `{"question": "text"}`, err: ErrBadSlot},
		{name: "NumberItem", raw: `{"hints": [1]}`, err: ErrBadSlot},
		{name: "MissingContent", raw: `{"question": {"widgets": {}}}`, err: ErrBadSlot},
		{name: "NonStringContent", raw: `{"hints": [{"content": 3}]}`, err: ErrBadSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.raw), DefaultSchema)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDecodeNullAndEmpty(t *testing.T) {
	doc, err := Decode([]byte(`{"question": null, "hints": []}`), DefaultSchema)
	require.NoError(t, err)

	assert.Equal(t, engine.Absent, doc.Slots[0].Kind)
	assert.Equal(t, engine.List, doc.Slots[1].Kind)
	assert.Empty(t, doc.Slots[1].Fields)
	assert.Equal(t, engine.Absent, doc.Slots[2].Kind)
}

func TestReplaceAllItem(t *testing.T) {
	raw := loadFixture(t, "item.json")

	out, count, err := ReplaceAll(raw, DefaultSchema, "categorizer", "eqn")
	require.NoError(t, err)

	assert.Equal(t, 0, count)
	assert.Equal(t, "[[☃ categorizer 1]] eqn [[☃ categorizer 2]] eqn", gjson.GetBytes(out, "question.content").String())
	assert.Equal(t, "[[☃ categorizer 1]] eqn", gjson.GetBytes(out, "hints.0.content").String())

	// everything except content is byte-identical
	for _, path := range []string{"question.widgets", "question.images", "answerArea", "itemDataVersion", "hints.0.widgets"} {
		assert.Equal(t, gjson.GetBytes(raw, path).Raw, gjson.GetBytes(out, path).Raw, path)
	}
}

func TestReplaceOneArticle(t *testing.T) {
	raw := loadFixture(t, "article.json")

	total, err := Count(raw, DefaultSchema, "cat")
	require.NoError(t, err)
	require.Equal(t, 3, total)

	out, index, count, err := ReplaceOne(raw, DefaultSchema, "cat", "cat cat ", 2, total)
	require.NoError(t, err)

	assert.Equal(t, 2, index)
	assert.Equal(t, 4, count)
	assert.Equal(t, "[[☃ categorizer 1]] categorizer [[☃ categorizer 2]] categorizer", gjson.GetBytes(out, "json.0.content").String())
	assert.Equal(t, "[[☃ categorizer 1]] cat cat egorizer", gjson.GetBytes(out, "json.1.content").String())

	recount, err := Count(out, DefaultSchema, "cat")
	require.NoError(t, err)
	assert.Equal(t, count, recount)
}

func TestReplaceOneLeavesUnchangedFieldsAlone(t *testing.T) {
	raw := loadFixture(t, "article.json")

	out, _, _, err := ReplaceOne(raw, DefaultSchema, "categorizer", "eqn", 2, 3)
	require.NoError(t, err)

	assert.Equal(t, gjson.GetBytes(raw, "json.0").Raw, gjson.GetBytes(out, "json.0").Raw)
	assert.NotEqual(t, gjson.GetBytes(raw, "json.1").Raw, gjson.GetBytes(out, "json.1").Raw)
}

func TestOccurrences(t *testing.T) {
	raw := loadFixture(t, "item.json")

	occ, err := Occurrences(raw, DefaultSchema, "categorizer")
	require.NoError(t, err)

	require.Len(t, occ, 3)
	assert.Equal(t, engine.SlotQuestion, occ[0].Slot)
	assert.Equal(t, engine.SlotQuestion, occ[1].Slot)
	assert.Equal(t, engine.SlotHints, occ[2].Slot)
	assert.Equal(t, 20, occ[2].UTF16)
}

func TestCustomSchema(t *testing.T) {
	raw := []byte(`{"page": {"sections": [{"content": "x cat"}, {"content": "cat", "id": 7}]}, "title": {"content": "cat"}}`)
	schema := Schema{Slots: []string{"title", "page.sections"}}

	out, count, err := ReplaceAll(raw, schema, "cat", "dog")
	require.NoError(t, err)

	assert.Equal(t, 0, count)
	assert.Equal(t, "dog", gjson.GetBytes(out, "title.content").String())
	assert.Equal(t, "x dog", gjson.GetBytes(out, "page.sections.0.content").String())
	assert.Equal(t, int64(7), gjson.GetBytes(out, "page.sections.1.id").Int())
}

func TestEncodeRejectsShapeMismatch(t *testing.T) {
	raw := loadFixture(t, "article.json")

	doc := engine.NewItemDocument(nil, nil, []engine.Field{{Content: "only one"}})
	_, err := Encode(raw, DefaultSchema, doc)
	assert.ErrorIs(t, err, ErrBadSlot)

	_, err = Encode([]byte("{"), DefaultSchema, doc)
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestEncodeDoesNotModifyInput(t *testing.T) {
	raw := loadFixture(t, "item.json")
	before := string(raw)

	_, _, err := ReplaceAll(raw, DefaultSchema, "categorizer", "eqn")
	require.NoError(t, err)

	assert.Equal(t, before, string(raw))
}
