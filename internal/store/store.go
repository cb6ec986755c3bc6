package store

import (
	"context"

	"github.com/openqda/qda/internal/model"
)

type Store interface {
	CoderStore
	DocumentStore
	StatementStore
	EntityStore
	TypeStore
	SettingStore
	// Transaction runs f against a transactional view of the store and
	// rolls back on error or panic. Every multi-step write goes through it.
	Transaction(ctx context.Context, f func(tx Store) error) error
	// CreateSchema migrates all tables and seeds the admin coder and the
	// built-in statement types in one transaction.
	CreateSchema(ctx context.Context, adminPasswordHash string) error
	Migrate() error
}

type CoderStore interface {
	// CreateCoder inserts a coder and the pairwise relation rows against
	// every existing coder, in both directions.
	CreateCoder(ctx context.Context, coder *model.Coder) error
	// GetCoder retrieves a coder with its relation map loaded.
	GetCoder(ctx context.Context, id int64) (*model.Coder, error)
	// ListCoders retrieves all coders without relation maps.
	ListCoders(ctx context.Context) ([]*model.Coder, error)
	// GetCoderPassword retrieves the stored password hash.
	GetCoderPassword(ctx context.Context, id int64) (string, error)
	// UpdateCoder rewrites a coder row and replaces its relation rows.
	UpdateCoder(ctx context.Context, coder *model.Coder, relations []model.CoderRelation) error
	// UpdateCoderSettings updates individual preference columns.
	UpdateCoderSettings(ctx context.Context, id int64, fields map[string]any) error
	// DeleteCoder deletes a coder with its documents and statements.
	DeleteCoder(ctx context.Context, id int64) error
}

type DocumentStore interface {
	CreateDocuments(ctx context.Context, docs []*model.Document) error
	GetDocument(ctx context.Context, id int64) (*model.Document, error)
	ListDocuments(ctx context.Context) ([]*model.Document, error)
	// ListTableDocuments retrieves the shallow projection without text,
	// with per-document statement counts, ordered by date.
	ListTableDocuments(ctx context.Context) ([]*model.TableDocument, error)
	UpdateDocument(ctx context.Context, doc *model.Document) error
	// DeleteDocuments removes documents and cascades to their statements
	// and per-type value rows.
	DeleteDocuments(ctx context.Context, ids []int64) error
	// DocumentTitleExists reports whether a document with the title exists.
	DocumentTitleExists(ctx context.Context, title string) (bool, error)
}

type StatementStore interface {
	// CreateStatement inserts the statement row and one per-type value row
	// per variable; short-text values resolve through the entity dictionary.
	CreateStatement(ctx context.Context, st *model.Statement, values []model.VariableValue) error
	// SetValue upserts a single per-type value row keyed by
	// (statement, variable).
	SetValue(ctx context.Context, statementID int64, value model.VariableValue) error
	GetStatement(ctx context.Context, id int64) (*model.FullStatement, error)
	// ListStatements retrieves the statements of one document ordered by
	// start offset.
	ListStatements(ctx context.Context, documentID int64) ([]*model.FullStatement, error)
	// ListAllStatements retrieves all statements ordered by document date.
	ListAllStatements(ctx context.Context) ([]*model.FullStatement, error)
	// CloneStatement copies a statement with all its value rows under a new
	// id and coder, returning the new id.
	CloneStatement(ctx context.Context, id, newCoderID int64) (int64, error)
	DeleteStatements(ctx context.Context, ids []int64) error
	CountStatements(ctx context.Context, documentID int64) (int64, error)
}

type EntityStore interface {
	// CreateEntity inserts an entity and one attribute value per attribute
	// variable of its variable, seeded from the entity's attribute map.
	CreateEntity(ctx context.Context, entity *model.Entity) error
	// ResolveEntity returns the unique entity for (variable, literal),
	// creating it when absent. A confirm read follows every create.
	ResolveEntity(ctx context.Context, variableID int64, literal string) (*model.Entity, error)
	// ListEntities returns one slice per requested variable, each entity
	// carrying color, parent, in-use flag and attribute map.
	ListEntities(ctx context.Context, variableIDs []int64) ([][]*model.Entity, error)
	UpdateEntityValue(ctx context.Context, id int64, value string) error
	UpdateEntityColor(ctx context.Context, id int64, red, green, blue int) error
	// UpdateEntityParent sets or clears ChildOf. Self reference is refused.
	UpdateEntityParent(ctx context.Context, id int64, childOf *int64) error
	SetAttributeValue(ctx context.Context, entityID, attributeVariableID int64, value string) error
	// CountEntityUsage counts statement values referencing any of the ids.
	CountEntityUsage(ctx context.Context, ids []int64) (int64, error)
	// DeleteEntities removes the entities, or refuses with ErrEntityInUse
	// when any of them is still referenced. All or nothing.
	DeleteEntities(ctx context.Context, ids []int64) error
	ListAttributeVariables(ctx context.Context, variableID int64) ([]*model.AttributeVariable, error)
	// CreateAttributeVariable adds an attribute slot and backfills an empty
	// attribute value for every existing entity of the variable.
	CreateAttributeVariable(ctx context.Context, av *model.AttributeVariable) error
	RenameAttributeVariable(ctx context.Context, id int64, name string) error
	DeleteAttributeVariable(ctx context.Context, id int64) error
}

type TypeStore interface {
	CreateStatementType(ctx context.Context, st *model.StatementType) error
	GetStatementType(ctx context.Context, id int64) (*model.StatementType, error)
	ListStatementTypes(ctx context.Context) ([]*model.StatementType, error)
	// UpdateStatementType edits label and color, refusing built-in types
	// with ErrBuiltinStatementType.
	UpdateStatementType(ctx context.Context, id int64, label string, red, green, blue int) error
	// DeleteStatementType removes a type with its variables, statements and
	// value rows. Built-in types are refused with ErrBuiltinStatementType.
	DeleteStatementType(ctx context.Context, id int64) error
	CreateVariable(ctx context.Context, v *model.Variable) error
	ListVariables(ctx context.Context, statementTypeID int64) ([]*model.Variable, error)
	// DeleteVariable removes a variable with its value rows, entities and
	// attribute definitions.
	DeleteVariable(ctx context.Context, id int64) error
	CreateVariableLink(ctx context.Context, link *model.VariableLink) error
	ListVariableLinks(ctx context.Context) ([]*model.VariableLink, error)
	DeleteVariableLink(ctx context.Context, id int64) error
	CreateRegex(ctx context.Context, r *model.Regex) error
	ListRegexes(ctx context.Context) ([]*model.Regex, error)
	DeleteRegex(ctx context.Context, label string) error
}

type SettingStore interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}
