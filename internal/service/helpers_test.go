package service

import (
	"context"
	"testing"
	"time"

	"github.com/openqda/qda/internal/compress"
	"github.com/openqda/qda/internal/model"
	"github.com/openqda/qda/internal/tester"
)

func newTestCodec() compress.Compress {
	return compress.NewNop()
}

func addTestDocument(t *testing.T, title string, date time.Time) *model.Document {
	t.Helper()

	docs := NewDocumentService(newTestCodec(), tester.Provider(), nil)
	doc := &model.Document{
		Title:   title,
		Text:    "The quick brown fox jumps over the lazy dog.",
		CoderID: 1,
		Date:    date,
	}
	if !docs.AddDocuments(context.TODO(), []*model.Document{doc}) {
		t.Fatalf("adding document %q failed", title)
	}

	return doc
}

func statementTypeByLabel(t *testing.T, label string) *model.StatementType {
	t.Helper()

	for _, st := range NewTypeService(tester.Provider()).GetStatementTypes(context.TODO()) {
		if st.Label == label {
			return st
		}
	}

	t.Fatalf("statement type %q not found", label)
	return nil
}

func variableByName(t *testing.T, st *model.StatementType, name string) *model.Variable {
	t.Helper()

	for i := range st.Variables {
		if st.Variables[i].Name == name {
			return &st.Variables[i]
		}
	}

	t.Fatalf("variable %q not found on type %q", name, st.Label)
	return nil
}

// statementValues builds the value set of the built-in Statement type.
func statementValues(t *testing.T, st *model.StatementType, person, organization, concept string, agreement bool) []model.VariableValue {
	t.Helper()

	return []model.VariableValue{
		{VariableID: variableByName(t, st, "person").ID, Name: "person",
			Value: model.EntityRef{Entity: model.Entity{Value: person}}},
		{VariableID: variableByName(t, st, "organization").ID, Name: "organization",
			Value: model.EntityRef{Entity: model.Entity{Value: organization}}},
		{VariableID: variableByName(t, st, "concept").ID, Name: "concept",
			Value: model.EntityRef{Entity: model.Entity{Value: concept}}},
		{VariableID: variableByName(t, st, "agreement").ID, Name: "agreement",
			Value: model.BoolValue{V: agreement}},
	}
}
