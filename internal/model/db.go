package model

import (
	"fmt"

	"gorm.io/gorm"
)

// SchemaVersion is written to the settings table when the schema is created.
const SchemaVersion = "1.0.0"

// Migrate creates or updates all tables. Order matters: referenced tables
// first, so the per-dialect foreign keys can be emitted.
func Migrate(db *gorm.DB) error {
	tables := []any{
		&Coder{},
		&CoderRelation{},
		&Document{},
		&StatementType{},
		&Variable{},
		&VariableLink{},
		&Regex{},
		&Statement{},
		&Entity{},
		&AttributeVariable{},
		&AttributeValue{},
		&DataBoolean{},
		&DataInteger{},
		&DataShortText{},
		&DataLongText{},
		&Setting{},
	}

	for _, table := range tables {
		if err := db.AutoMigrate(table); err != nil {
			return err
		}
	}

	return nil
}

// Seed inserts the fixed initial rows: the admin coder, the two built-in
// statement types with their variables and attribute slots, and the default
// settings. Expected to run inside the same transaction as Migrate.
func Seed(db *gorm.DB, adminPasswordHash string) error {
	admin := &Coder{
		Name:     "Admin",
		Red:      255,
		Green:    0,
		Blue:     0,
		Password: adminPasswordHash,
		Permissions: CoderPermissions{
			AddDocuments:         true,
			EditDocuments:        true,
			DeleteDocuments:      true,
			ImportDocuments:      true,
			AddStatements:        true,
			EditStatements:       true,
			DeleteStatements:     true,
			EditAttributes:       true,
			EditRegex:            true,
			EditStatementTypes:   true,
			EditCoders:           true,
			EditCoderRelations:   true,
			EditCoderSettings:    true,
			ViewOthersDocuments:  true,
			ViewOthersStatements: true,
		},
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	// the id must come from the database so the postgres sequence advances
	// past it; on a fresh schema the first insert is always 1
	if admin.ID != 1 {
		return fmt.Errorf("admin coder seeded with id %d, want 1", admin.ID)
	}

	statement := &StatementType{
		Label: "Statement",
		Red:   239,
		Green: 208,
		Blue:  51,
		Variables: []Variable{
			{Name: "person", DataType: DataTypeShortText},
			{Name: "organization", DataType: DataTypeShortText},
			{Name: "concept", DataType: DataTypeShortText},
			{Name: "agreement", DataType: DataTypeBoolean},
		},
	}
	if err := db.Create(statement).Error; err != nil {
		return err
	}

	annotation := &StatementType{
		Label: "Annotation",
		Red:   211,
		Green: 211,
		Blue:  211,
		Variables: []Variable{
			{Name: "note", DataType: DataTypeLongText},
		},
	}
	if err := db.Create(annotation).Error; err != nil {
		return err
	}

	// every short-text variable gets the default attribute slots
	for _, v := range statement.Variables {
		if v.DataType != DataTypeShortText {
			continue
		}
		for _, name := range []string{"Type", "Alias", "Notes"} {
			av := &AttributeVariable{VariableID: v.ID, Name: name}
			if err := db.Create(av).Error; err != nil {
				return err
			}
		}
	}

	return db.Create(&Setting{Key: "version", Value: SchemaVersion}).Error
}
