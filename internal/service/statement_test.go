package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openqda/qda/internal/model"
	"github.com/openqda/qda/internal/tester"
)

func TestStatementService_AddStatementRoundTrip(t *testing.T) {
	tester.Setup()
	statements := NewStatementService(tester.Provider())

	doc := addTestDocument(t, "round trip", time.Now())
	st := statementTypeByLabel(t, model.BuiltinStatementLabel)

	statement := &model.Statement{
		StatementTypeID: st.ID,
		DocumentID:      doc.ID,
		Start:           4,
		Stop:            9,
		CoderID:         1,
	}
	values := statementValues(t, st, "Jane Doe", "EPA", "emission limits", true)

	id := statements.AddStatement(context.TODO(), statement, values)
	assert.Greater(t, id, int64(0))

	got := statements.GetStatement(context.TODO(), id)
	assert.NotNil(t, got)
	assert.Equal(t, int64(4), got.Start)
	assert.Equal(t, int64(9), got.Stop)
	assert.Equal(t, model.BuiltinStatementLabel, got.TypeLabel)
	assert.Equal(t, "Admin", got.CoderName)
	assert.Len(t, got.Values, 4)

	person, ok := got.Value("person").(model.EntityRef)
	assert.True(t, ok)
	assert.Equal(t, "Jane Doe", person.Literal())
	// the resolved entity carries its full attribute map
	assert.Len(t, person.Entity.Attributes, 3)
	assert.Equal(t, "", person.Entity.Attributes["Alias"])

	agreement, ok := got.Value("agreement").(model.BoolValue)
	assert.True(t, ok)
	assert.True(t, agreement.V)
}

func TestStatementService_RejectsInvalidSpan(t *testing.T) {
	tester.Setup()
	statements := NewStatementService(tester.Provider())

	doc := addTestDocument(t, "invalid span", time.Now())
	st := statementTypeByLabel(t, model.BuiltinStatementLabel)
	values := statementValues(t, st, "p", "o", "c", false)

	tests := []struct {
		name  string
		start int64
		stop  int64
	}{
		{name: "start equals stop", start: 5, stop: 5},
		{name: "start after stop", start: 9, stop: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statement := &model.Statement{
				StatementTypeID: st.ID, DocumentID: doc.ID,
				Start: tt.start, Stop: tt.stop, CoderID: 1,
			}
			assert.Equal(t, int64(-1), statements.AddStatement(context.TODO(), statement, values))
		})
	}
}

func TestStatementService_SharedEntity(t *testing.T) {
	tester.Setup()
	statements := NewStatementService(tester.Provider())
	entities := NewEntityService(tester.Provider())

	doc := addTestDocument(t, "shared entity", time.Now())
	st := statementTypeByLabel(t, model.BuiltinStatementLabel)
	organization := variableByName(t, st, "organization")

	a := &model.Statement{StatementTypeID: st.ID, DocumentID: doc.ID, Start: 0, Stop: 3, CoderID: 1}
	b := &model.Statement{StatementTypeID: st.ID, DocumentID: doc.ID, Start: 4, Stop: 9, CoderID: 1}
	aID := statements.AddStatement(context.TODO(), a, statementValues(t, st, "p1", "EPA", "c1", true))
	bID := statements.AddStatement(context.TODO(), b, statementValues(t, st, "p2", "EPA", "c2", false))
	assert.Greater(t, aID, int64(0))
	assert.Greater(t, bID, int64(0))

	// both statements resolve to the same entity row
	gotA := statements.GetStatement(context.TODO(), aID)
	gotB := statements.GetStatement(context.TODO(), bID)
	refA := gotA.Value("organization").(model.EntityRef)
	refB := gotB.Value("organization").(model.EntityRef)
	assert.Equal(t, refA.Entity.ID, refB.Entity.ID)

	// deleting the shared entity is refused while the statements exist
	assert.False(t, entities.DeleteEntities(context.TODO(), []int64{refA.Entity.ID}))

	lists := entities.GetEntities(context.TODO(), []int64{organization.ID})
	assert.Len(t, lists, 1)
	assert.NotEmpty(t, lists[0])

	// after both statements are gone the entity is unused and deletable
	assert.True(t, statements.DeleteStatements(context.TODO(), []int64{aID, bID}))
	assert.True(t, entities.DeleteEntities(context.TODO(), []int64{refA.Entity.ID}))
}

func TestStatementService_UpdateStatementIdempotent(t *testing.T) {
	tester.Setup()
	statements := NewStatementService(tester.Provider())

	doc := addTestDocument(t, "update", time.Now())
	st := statementTypeByLabel(t, model.BuiltinStatementLabel)

	statement := &model.Statement{StatementTypeID: st.ID, DocumentID: doc.ID, Start: 1, Stop: 2, CoderID: 1}
	id := statements.AddStatement(context.TODO(), statement, statementValues(t, st, "p", "org", "c", true))
	assert.Greater(t, id, int64(0))

	updates := statementValues(t, st, "p", "new org", "c", false)
	assert.True(t, statements.UpdateStatement(context.TODO(), id, updates))
	assert.True(t, statements.UpdateStatement(context.TODO(), id, updates))

	got := statements.GetStatement(context.TODO(), id)
	ref := got.Value("organization").(model.EntityRef)
	assert.Equal(t, "new org", ref.Literal())
	assert.False(t, got.Value("agreement").(model.BoolValue).V)

	// field-level overwrite keeps one row per (statement, variable)
	var count int64
	err := tester.TestDB().Model(&model.DataShortText{}).
		Where("statement_id = ?", id).Count(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestStatementService_CloneStatement(t *testing.T) {
	tester.Setup()
	statements := NewStatementService(tester.Provider())
	coders := NewCoderService(tester.Provider())

	doc := addTestDocument(t, "clone", time.Now())
	st := statementTypeByLabel(t, model.BuiltinStatementLabel)

	original := &model.Statement{StatementTypeID: st.ID, DocumentID: doc.ID, Start: 2, Stop: 7, CoderID: 1}
	originalID := statements.AddStatement(context.TODO(), original, statementValues(t, st, "p", "org", "c", true))
	assert.Greater(t, originalID, int64(0))

	otherID := coders.AddCoder(context.TODO(), &model.Coder{Name: "Clone Owner"}, "secret")
	assert.Greater(t, otherID, int64(0))

	cloneID := statements.CloneStatement(context.TODO(), originalID, otherID)
	assert.Greater(t, cloneID, int64(0))
	assert.NotEqual(t, originalID, cloneID)

	clone := statements.GetStatement(context.TODO(), cloneID)
	assert.Equal(t, otherID, clone.CoderID)
	assert.Equal(t, original.Start, clone.Start)
	assert.Equal(t, original.Stop, clone.Stop)

	got := statements.GetStatement(context.TODO(), originalID)
	assert.Equal(t, int64(1), got.CoderID)

	// clone shares the entity references of the original
	originalRef := got.Value("organization").(model.EntityRef)
	cloneRef := clone.Value("organization").(model.EntityRef)
	assert.Equal(t, originalRef.Entity.ID, cloneRef.Entity.ID)
}

func TestStatementService_DeleteCascades(t *testing.T) {
	tester.Setup()
	statements := NewStatementService(tester.Provider())

	doc := addTestDocument(t, "delete cascade", time.Now())
	st := statementTypeByLabel(t, model.BuiltinStatementLabel)

	statement := &model.Statement{StatementTypeID: st.ID, DocumentID: doc.ID, Start: 0, Stop: 5, CoderID: 1}
	id := statements.AddStatement(context.TODO(), statement, statementValues(t, st, "p", "org", "c", true))
	assert.Greater(t, id, int64(0))

	assert.True(t, statements.DeleteStatement(context.TODO(), id))
	assert.Nil(t, statements.GetStatement(context.TODO(), id))

	var values int64
	assert.NoError(t, tester.TestDB().Model(&model.DataShortText{}).
		Where("statement_id = ?", id).Count(&values).Error)
	assert.Zero(t, values)

	// entities survive statement deletion
	var entityCount int64
	assert.NoError(t, tester.TestDB().Model(&model.Entity{}).Count(&entityCount).Error)
	assert.Greater(t, entityCount, int64(0))
}

func TestStatementService_GetAllStatementsOrder(t *testing.T) {
	tester.Setup()
	statements := NewStatementService(tester.Provider())

	older := addTestDocument(t, "older", time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC))
	newer := addTestDocument(t, "newer", time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC))
	st := statementTypeByLabel(t, model.BuiltinAnnotationLabel)
	note := variableByName(t, st, "note")

	values := []model.VariableValue{{VariableID: note.ID, Name: "note", Value: model.LongTextValue{V: "a note"}}}

	// insert in reverse document order
	newerStatement := &model.Statement{StatementTypeID: st.ID, DocumentID: newer.ID, Start: 0, Stop: 2, CoderID: 1}
	olderStatement := &model.Statement{StatementTypeID: st.ID, DocumentID: older.ID, Start: 0, Stop: 2, CoderID: 1}
	assert.Greater(t, statements.AddStatement(context.TODO(), newerStatement, values), int64(0))
	assert.Greater(t, statements.AddStatement(context.TODO(), olderStatement, values), int64(0))

	all := statements.GetAllStatements(context.TODO())
	assert.Len(t, all, 2)
	assert.Equal(t, older.ID, all[0].DocumentID)
	assert.Equal(t, newer.ID, all[1].DocumentID)

	long, ok := all[0].Value("note").(model.LongTextValue)
	assert.True(t, ok)
	assert.Equal(t, "a note", long.V)
}
