package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openqda/qda/internal/cache"
	"github.com/openqda/qda/internal/compress"
	"github.com/openqda/qda/internal/model"
	"github.com/openqda/qda/internal/tester"
)

func TestDocumentService_AddDocuments(t *testing.T) {
	tester.Setup()

	tests := []struct {
		name  string
		codec compress.Compress
	}{
		{name: "plain text", codec: compress.NewNop()},
		{name: "gzip text", codec: compress.NewGZip()},
		{name: "brotli text", codec: compress.NewBrotli()},
		{name: "lz4 text", codec: compress.NewLZ4()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := NewDocumentService(tt.codec, tester.Provider(), nil)

			doc := &model.Document{
				Title:   "codec " + tt.name,
				Text:    "Some document text that should survive the round trip.",
				CoderID: 1,
				Author:  "Jane",
			}
			assert.True(t, docs.AddDocuments(context.TODO(), []*model.Document{doc}))

			got := docs.GetDocument(context.TODO(), doc.ID)
			assert.NotNil(t, got)
			assert.Equal(t, "Some document text that should survive the round trip.", got.Text)
			assert.Equal(t, compress.Name(tt.codec), got.Compression)
			assert.False(t, got.Date.IsZero())
		})
	}
}

func TestDocumentService_TableDocuments(t *testing.T) {
	tester.Setup()
	docs := NewDocumentService(newTestCodec(), tester.Provider(), cache.NewMemory())
	statements := NewStatementService(tester.Provider())

	second := addTestDocument(t, "second", time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC))
	first := addTestDocument(t, "first", time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC))

	st := statementTypeByLabel(t, model.BuiltinAnnotationLabel)
	note := variableByName(t, st, "note")
	statement := &model.Statement{StatementTypeID: st.ID, DocumentID: first.ID, Start: 0, Stop: 3, CoderID: 1}
	id := statements.AddStatement(context.TODO(), statement,
		[]model.VariableValue{{VariableID: note.ID, Name: "note", Value: model.LongTextValue{V: "n"}}})
	assert.Greater(t, id, int64(0))

	table := docs.GetTableDocuments(context.TODO())
	assert.Len(t, table, 2)
	// ordered by date, statement counts resolved, no text carried
	assert.Equal(t, first.ID, table[0].ID)
	assert.Equal(t, second.ID, table[1].ID)
	assert.Equal(t, int64(1), table[0].Frequency)
	assert.Equal(t, int64(0), table[1].Frequency)
	assert.Equal(t, "Admin", table[0].CoderName)

	// cached listing is invalidated by a delete
	assert.True(t, docs.DeleteDocuments(context.TODO(), []int64{second.ID}))
	table = docs.GetTableDocuments(context.TODO())
	assert.Len(t, table, 1)
}

func TestDocumentService_UpdateDocumentsWildcards(t *testing.T) {
	tester.Setup()
	docs := NewDocumentService(newTestCodec(), tester.Provider(), nil)

	doc := &model.Document{
		Title:   "report",
		Text:    "text",
		CoderID: 1,
		Author:  "Jane",
		Source:  "wire",
		Date:    time.Date(2020, 2, 3, 0, 0, 0, 0, time.UTC),
	}
	other := &model.Document{
		Title:   "essay",
		Text:    "text",
		CoderID: 1,
		Author:  "Joe",
		Source:  "print",
		Date:    time.Date(2021, 11, 24, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, docs.AddDocuments(context.TODO(), []*model.Document{doc, other}))

	// wildcards resolve against each row's own prior fields
	ok := docs.UpdateDocuments(context.TODO(), []int64{doc.ID, other.ID}, map[string]string{
		"notes":   "%author (%year-%month)",
		"section": "%source/%title",
	})
	assert.True(t, ok)

	got := docs.GetDocument(context.TODO(), doc.ID)
	assert.Equal(t, "Jane (2020-02)", got.Notes)
	assert.Equal(t, "wire/report", got.Section)

	gotOther := docs.GetDocument(context.TODO(), other.ID)
	assert.Equal(t, "Joe (2021-11)", gotOther.Notes)
	assert.Equal(t, "print/essay", gotOther.Section)
}

func TestDocumentService_DeleteDocumentsCascade(t *testing.T) {
	tester.Setup()
	docs := NewDocumentService(newTestCodec(), tester.Provider(), nil)
	statements := NewStatementService(tester.Provider())

	doc := addTestDocument(t, "to delete", time.Now())
	st := statementTypeByLabel(t, model.BuiltinStatementLabel)
	statement := &model.Statement{StatementTypeID: st.ID, DocumentID: doc.ID, Start: 0, Stop: 4, CoderID: 1}
	id := statements.AddStatement(context.TODO(), statement, statementValues(t, st, "p", "org", "c", true))
	assert.Greater(t, id, int64(0))

	assert.True(t, docs.DeleteDocuments(context.TODO(), []int64{doc.ID}))
	assert.Nil(t, docs.GetDocument(context.TODO(), doc.ID))
	assert.Nil(t, statements.GetStatement(context.TODO(), id))

	var rows int64
	assert.NoError(t, tester.TestDB().Model(&model.DataShortText{}).
		Where("statement_id = ?", id).Count(&rows).Error)
	assert.Zero(t, rows)

	// the entity dictionary is untouched by the cascade
	var entityCount int64
	assert.NoError(t, tester.TestDB().Model(&model.Entity{}).Count(&entityCount).Error)
	assert.Greater(t, entityCount, int64(0))
}

func TestDocumentService_HasTitle(t *testing.T) {
	tester.Setup()
	docs := NewDocumentService(newTestCodec(), tester.Provider(), nil)

	addTestDocument(t, "unique title", time.Now())
	assert.True(t, docs.HasTitle(context.TODO(), "unique title"))
	assert.False(t, docs.HasTitle(context.TODO(), "missing title"))
}
