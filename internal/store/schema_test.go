package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/openqda/qda/internal/model"
	"github.com/openqda/qda/internal/tester"
)

func TestMain(m *testing.M) {
	code := m.Run()
	tester.RemoveDBFile()
	os.Exit(code)
}

func TestCreateSchema_SeedsAdmin(t *testing.T) {
	tester.Setup()
	st := tester.TestStore()

	admin, err := st.GetCoder(context.TODO(), 1)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, admin.ID)
	assert.Equal(t, "Admin", admin.Name)
	assert.Equal(t, 255, admin.Red)
	assert.Zero(t, admin.Green)
	assert.Zero(t, admin.Blue)
	assert.True(t, admin.Permissions.EditCoders)
	assert.True(t, admin.Permissions.ViewOthersStatements)

	hash, err := st.GetCoderPassword(context.TODO(), 1)
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(tester.AdminPassword)))
}

func TestCreateSchema_KeyCounterPastAdmin(t *testing.T) {
	tester.Setup()
	st := tester.TestStore()

	// the seed must leave the coder id counter past the admin row, so the
	// first coder created afterwards does not collide with it
	coder := &model.Coder{Name: "Alice", Red: 0, Green: 128, Blue: 0}
	assert.NoError(t, st.CreateCoder(context.TODO(), coder))
	assert.EqualValues(t, 2, coder.ID)
}

func TestCreateSchema_SeedsBuiltinTypes(t *testing.T) {
	tester.Setup()
	st := tester.TestStore()

	types, err := st.ListStatementTypes(context.TODO())
	assert.NoError(t, err)
	assert.Len(t, types, 2)

	byLabel := map[string]*model.StatementType{}
	for _, statementType := range types {
		byLabel[statementType.Label] = statementType
	}

	statement := byLabel[model.BuiltinStatementLabel]
	assert.NotNil(t, statement)
	assert.True(t, statement.IsBuiltin())
	assert.Len(t, statement.Variables, 4)

	shortText := 0
	for _, v := range statement.Variables {
		if v.DataType == model.DataTypeShortText {
			shortText++
			// every short-text variable carries the default attribute slots
			slots, err := st.ListAttributeVariables(context.TODO(), v.ID)
			assert.NoError(t, err)
			names := make([]string, 0, len(slots))
			for _, slot := range slots {
				names = append(names, slot.Name)
			}
			assert.ElementsMatch(t, []string{"Type", "Alias", "Notes"}, names)
		}
	}
	assert.Equal(t, 3, shortText)

	annotation := byLabel[model.BuiltinAnnotationLabel]
	assert.NotNil(t, annotation)
	assert.True(t, annotation.IsBuiltin())
	assert.Len(t, annotation.Variables, 1)
	assert.Equal(t, model.DataTypeLongText, annotation.Variables[0].DataType)
}

func TestCreateSchema_SeedsVersion(t *testing.T) {
	tester.Setup()
	st := tester.TestStore()

	version, err := st.GetSetting(context.TODO(), "version")
	assert.NoError(t, err)
	assert.Equal(t, model.SchemaVersion, version)
}

func TestCreateSchema_Idempotence(t *testing.T) {
	tester.Setup()
	st := tester.TestStore()

	// a second run must fail atomically and leave the seed rows untouched
	hash, err := bcrypt.GenerateFromPassword([]byte("other"), bcrypt.MinCost)
	assert.NoError(t, err)
	assert.Error(t, st.CreateSchema(context.TODO(), string(hash)))

	coders, err := st.ListCoders(context.TODO())
	assert.NoError(t, err)
	assert.Len(t, coders, 1)

	stored, err := st.GetCoderPassword(context.TODO(), 1)
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte(tester.AdminPassword)))
}
