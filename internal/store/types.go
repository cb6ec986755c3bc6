package store

import (
	"context"

	"github.com/openqda/qda/internal/model"
)

func (g *GormStore) CreateStatementType(ctx context.Context, st *model.StatementType) error {
	return g.db.WithContext(ctx).Create(st).Error
}

func (g *GormStore) GetStatementType(ctx context.Context, id int64) (*model.StatementType, error) {
	var st model.StatementType
	err := g.db.WithContext(ctx).Preload("Variables").Where("id = ?", id).First(&st).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (g *GormStore) ListStatementTypes(ctx context.Context) ([]*model.StatementType, error) {
	var types []*model.StatementType
	err := g.db.WithContext(ctx).Preload("Variables").Order("id asc").Find(&types).Error
	return types, err
}

func (g *GormStore) UpdateStatementType(ctx context.Context, id int64, label string, red, green, blue int) error {
	st, err := g.GetStatementType(ctx, id)
	if err != nil {
		return err
	}
	if st.IsBuiltin() {
		return ErrBuiltinStatementType
	}

	return g.db.WithContext(ctx).Model(&model.StatementType{}).Where("id = ?", id).
		Updates(map[string]any{"label": label, "red": red, "green": green, "blue": blue}).Error
}

// DeleteStatementType removes a type with its statements, variables and
// everything hanging off them. Built-in types are refused.
func (g *GormStore) DeleteStatementType(ctx context.Context, id int64) error {
	st, err := g.GetStatementType(ctx, id)
	if err != nil {
		return err
	}
	if st.IsBuiltin() {
		return ErrBuiltinStatementType
	}

	db := g.db.WithContext(ctx)

	var statementIDs []int64
	err = db.Model(&model.Statement{}).Where("statement_type_id = ?", id).
		Pluck("id", &statementIDs).Error
	if err != nil {
		return err
	}
	if len(statementIDs) > 0 {
		if err := g.DeleteStatements(ctx, statementIDs); err != nil {
			return err
		}
	}

	var variableIDs []int64
	err = db.Model(&model.Variable{}).Where("statement_type_id = ?", id).
		Pluck("id", &variableIDs).Error
	if err != nil {
		return err
	}
	for _, variableID := range variableIDs {
		if err := g.DeleteVariable(ctx, variableID); err != nil {
			return err
		}
	}

	return db.Where("id = ?", id).Delete(&model.StatementType{}).Error
}

func (g *GormStore) CreateVariable(ctx context.Context, v *model.Variable) error {
	return g.db.WithContext(ctx).Create(v).Error
}

func (g *GormStore) ListVariables(ctx context.Context, statementTypeID int64) ([]*model.Variable, error) {
	var variables []*model.Variable
	err := g.db.WithContext(ctx).Where("statement_type_id = ?", statementTypeID).
		Order("id asc").Find(&variables).Error
	return variables, err
}

// DeleteVariable removes a variable with its value rows, links, entities
// and attribute definitions.
func (g *GormStore) DeleteVariable(ctx context.Context, id int64) error {
	db := g.db.WithContext(ctx)

	for _, table := range []any{
		&model.DataBoolean{}, &model.DataInteger{}, &model.DataShortText{}, &model.DataLongText{},
	} {
		if err := db.Where("variable_id = ?", id).Delete(table).Error; err != nil {
			return err
		}
	}

	if err := db.Where("source_variable_id = ? OR target_variable_id = ?", id, id).
		Delete(&model.VariableLink{}).Error; err != nil {
		return err
	}

	var attributeVariableIDs []int64
	err := db.Model(&model.AttributeVariable{}).Where("variable_id = ?", id).
		Pluck("id", &attributeVariableIDs).Error
	if err != nil {
		return err
	}
	for _, avID := range attributeVariableIDs {
		if err := g.DeleteAttributeVariable(ctx, avID); err != nil {
			return err
		}
	}

	if err := db.Model(&model.Entity{}).Where("variable_id = ?", id).
		Update("child_of", nil).Error; err != nil {
		return err
	}
	if err := db.Where("variable_id = ?", id).Delete(&model.Entity{}).Error; err != nil {
		return err
	}

	return db.Where("id = ?", id).Delete(&model.Variable{}).Error
}

func (g *GormStore) CreateVariableLink(ctx context.Context, link *model.VariableLink) error {
	return g.db.WithContext(ctx).Create(link).Error
}

func (g *GormStore) ListVariableLinks(ctx context.Context) ([]*model.VariableLink, error) {
	var links []*model.VariableLink
	err := g.db.WithContext(ctx).Order("id asc").Find(&links).Error
	return links, err
}

func (g *GormStore) DeleteVariableLink(ctx context.Context, id int64) error {
	return g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.VariableLink{}).Error
}

func (g *GormStore) CreateRegex(ctx context.Context, r *model.Regex) error {
	return g.db.WithContext(ctx).Create(r).Error
}

func (g *GormStore) ListRegexes(ctx context.Context) ([]*model.Regex, error) {
	var regexes []*model.Regex
	err := g.db.WithContext(ctx).Order("label asc").Find(&regexes).Error
	return regexes, err
}

func (g *GormStore) DeleteRegex(ctx context.Context, label string) error {
	return g.db.WithContext(ctx).Where("label = ?", label).Delete(&model.Regex{}).Error
}
