package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/openqda/qda/internal/model"
)

const fullStatementSelect = "statements.id, statements.statement_type_id, statements.document_id, " +
	"statements.start, statements.stop, statements.coder_id, " +
	"statement_types.label AS type_label, statement_types.red AS type_red, " +
	"statement_types.green AS type_green, statement_types.blue AS type_blue, " +
	"coders.name AS coder_name, coders.red AS coder_red, " +
	"coders.green AS coder_green, coders.blue AS coder_blue, " +
	"documents.date AS document_date"

func (g *GormStore) fullStatementQuery(ctx context.Context) *gorm.DB {
	return g.db.WithContext(ctx).Model(&model.Statement{}).
		Select(fullStatementSelect).
		Joins("JOIN statement_types ON statement_types.id = statements.statement_type_id").
		Joins("JOIN coders ON coders.id = statements.coder_id").
		Joins("JOIN documents ON documents.id = statements.document_id")
}

// CreateStatement inserts the statement row and one value row per variable.
// Callers run it inside a transaction so a failing value insert rolls back
// the whole statement.
func (g *GormStore) CreateStatement(ctx context.Context, st *model.Statement, values []model.VariableValue) error {
	if !st.Valid() {
		return ErrInvalidSpan
	}

	if err := g.db.WithContext(ctx).Create(st).Error; err != nil {
		return err
	}

	for _, value := range values {
		if err := g.SetValue(ctx, st.ID, value); err != nil {
			return err
		}
	}

	return nil
}

// SetValue upserts the per-type value row keyed by (statement, variable).
// The targeted update preserves row ids; a missing row is inserted instead.
// Short-text values resolve through the entity dictionary first.
func (g *GormStore) SetValue(ctx context.Context, statementID int64, value model.VariableValue) error {
	db := g.db.WithContext(ctx)

	switch v := value.Value.(type) {
	case model.BoolValue:
		payload := 0
		if v.V {
			payload = 1
		}
		res := db.Model(&model.DataBoolean{}).
			Where("statement_id = ? AND variable_id = ?", statementID, value.VariableID).
			Update("value", payload)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return db.Create(&model.DataBoolean{
				StatementID: statementID, VariableID: value.VariableID, Value: payload,
			}).Error
		}
		return nil

	case model.IntValue:
		res := db.Model(&model.DataInteger{}).
			Where("statement_id = ? AND variable_id = ?", statementID, value.VariableID).
			Update("value", v.V)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return db.Create(&model.DataInteger{
				StatementID: statementID, VariableID: value.VariableID, Value: v.V,
			}).Error
		}
		return nil

	case model.LongTextValue:
		res := db.Model(&model.DataLongText{}).
			Where("statement_id = ? AND variable_id = ?", statementID, value.VariableID).
			Update("value", v.V)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return db.Create(&model.DataLongText{
				StatementID: statementID, VariableID: value.VariableID, Value: v.V,
			}).Error
		}
		return nil

	case model.EntityRef:
		entity, err := g.ResolveEntity(ctx, value.VariableID, v.Literal())
		if err != nil {
			return err
		}
		res := db.Model(&model.DataShortText{}).
			Where("statement_id = ? AND variable_id = ?", statementID, value.VariableID).
			Update("entity_id", entity.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return db.Create(&model.DataShortText{
				StatementID: statementID, VariableID: value.VariableID, EntityID: entity.ID,
			}).Error
		}
		return nil

	default:
		return fmt.Errorf("unhandled value variant %T", value.Value)
	}
}

func (g *GormStore) GetStatement(ctx context.Context, id int64) (*model.FullStatement, error) {
	var full model.FullStatement
	err := g.fullStatementQuery(ctx).Where("statements.id = ?", id).Scan(&full).Error
	if err != nil {
		return nil, err
	}
	if full.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	if err := g.loadValues(ctx, &full); err != nil {
		return nil, err
	}

	return &full, nil
}

func (g *GormStore) ListStatements(ctx context.Context, documentID int64) ([]*model.FullStatement, error) {
	var statements []*model.FullStatement
	err := g.fullStatementQuery(ctx).
		Where("statements.document_id = ?", documentID).
		Order("statements.start asc, statements.stop asc, statements.id asc").
		Scan(&statements).Error
	if err != nil {
		return nil, err
	}

	for _, statement := range statements {
		if err := g.loadValues(ctx, statement); err != nil {
			return nil, err
		}
	}

	return statements, nil
}

func (g *GormStore) ListAllStatements(ctx context.Context) ([]*model.FullStatement, error) {
	var statements []*model.FullStatement
	err := g.fullStatementQuery(ctx).
		Order("documents.date asc, statements.start asc, statements.id asc").
		Scan(&statements).Error
	if err != nil {
		return nil, err
	}

	for _, statement := range statements {
		if err := g.loadValues(ctx, statement); err != nil {
			return nil, err
		}
	}

	return statements, nil
}

// loadValues dispatches on each variable of the statement's type to the
// matching per-type table. Short text joins in the entity and its
// attribute map. A variable added to the type after the statement was
// written has no value row yet and is skipped.
func (g *GormStore) loadValues(ctx context.Context, full *model.FullStatement) error {
	db := g.db.WithContext(ctx)

	variables, err := g.ListVariables(ctx, full.StatementTypeID)
	if err != nil {
		return err
	}

	full.Values = make([]model.VariableValue, 0, len(variables))
	for _, variable := range variables {
		value := model.VariableValue{VariableID: variable.ID, Name: variable.Name}

		switch variable.DataType {
		case model.DataTypeBoolean:
			var row model.DataBoolean
			err := db.Where("statement_id = ? AND variable_id = ?", full.ID, variable.ID).
				First(&row).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			value.Value = model.BoolValue{V: row.Value != 0}

		case model.DataTypeInteger:
			var row model.DataInteger
			err := db.Where("statement_id = ? AND variable_id = ?", full.ID, variable.ID).
				First(&row).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			value.Value = model.IntValue{V: row.Value}

		case model.DataTypeLongText:
			var row model.DataLongText
			err := db.Where("statement_id = ? AND variable_id = ?", full.ID, variable.ID).
				First(&row).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			value.Value = model.LongTextValue{V: row.Value}

		case model.DataTypeShortText:
			var row model.DataShortText
			err := db.Where("statement_id = ? AND variable_id = ?", full.ID, variable.ID).
				First(&row).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			var entity model.Entity
			if err := db.Where("id = ?", row.EntityID).First(&entity).Error; err != nil {
				return err
			}
			attributes, err := g.entityAttributes(ctx, entity.ID)
			if err != nil {
				return err
			}
			entity.Attributes = attributes
			value.Value = model.EntityRef{Entity: entity}

		default:
			return fmt.Errorf("unhandled data type %q", variable.DataType)
		}

		full.Values = append(full.Values, value)
	}

	return nil
}

// CloneStatement copies the statement row under a new coder and duplicates
// all per-type value rows verbatim, in one transaction.
func (g *GormStore) CloneStatement(ctx context.Context, id, newCoderID int64) (int64, error) {
	var newID int64

	err := g.Transaction(ctx, func(tx Store) error {
		db := tx.(*GormStore).db.WithContext(ctx)

		var original model.Statement
		if err := db.Where("id = ?", id).First(&original).Error; err != nil {
			return err
		}

		clone := model.Statement{
			StatementTypeID: original.StatementTypeID,
			DocumentID:      original.DocumentID,
			Start:           original.Start,
			Stop:            original.Stop,
			CoderID:         newCoderID,
		}
		if err := db.Create(&clone).Error; err != nil {
			return err
		}
		newID = clone.ID

		var booleans []model.DataBoolean
		if err := db.Where("statement_id = ?", id).Find(&booleans).Error; err != nil {
			return err
		}
		for _, row := range booleans {
			copied := model.DataBoolean{StatementID: newID, VariableID: row.VariableID, Value: row.Value}
			if err := db.Create(&copied).Error; err != nil {
				return err
			}
		}

		var integers []model.DataInteger
		if err := db.Where("statement_id = ?", id).Find(&integers).Error; err != nil {
			return err
		}
		for _, row := range integers {
			copied := model.DataInteger{StatementID: newID, VariableID: row.VariableID, Value: row.Value}
			if err := db.Create(&copied).Error; err != nil {
				return err
			}
		}

		var shortTexts []model.DataShortText
		if err := db.Where("statement_id = ?", id).Find(&shortTexts).Error; err != nil {
			return err
		}
		for _, row := range shortTexts {
			copied := model.DataShortText{StatementID: newID, VariableID: row.VariableID, EntityID: row.EntityID}
			if err := db.Create(&copied).Error; err != nil {
				return err
			}
		}

		var longTexts []model.DataLongText
		if err := db.Where("statement_id = ?", id).Find(&longTexts).Error; err != nil {
			return err
		}
		for _, row := range longTexts {
			copied := model.DataLongText{StatementID: newID, VariableID: row.VariableID, Value: row.Value}
			if err := db.Create(&copied).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return newID, nil
}

// DeleteStatements removes the statements and their per-type value rows.
// Entities and attribute values stay untouched.
func (g *GormStore) DeleteStatements(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	db := g.db.WithContext(ctx)

	if err := db.Where("statement_id IN ?", ids).Delete(&model.DataBoolean{}).Error; err != nil {
		return err
	}
	if err := db.Where("statement_id IN ?", ids).Delete(&model.DataInteger{}).Error; err != nil {
		return err
	}
	if err := db.Where("statement_id IN ?", ids).Delete(&model.DataShortText{}).Error; err != nil {
		return err
	}
	if err := db.Where("statement_id IN ?", ids).Delete(&model.DataLongText{}).Error; err != nil {
		return err
	}

	return db.Where("id IN ?", ids).Delete(&model.Statement{}).Error
}

func (g *GormStore) CountStatements(ctx context.Context, documentID int64) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.Statement{}).
		Where("document_id = ?", documentID).Count(&count).Error
	return count, err
}
