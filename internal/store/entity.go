package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/openqda/qda/internal/model"
)

// CreateEntity inserts the entity and one attribute value per attribute
// variable of its variable, seeded from the entity's attribute map.
func (g *GormStore) CreateEntity(ctx context.Context, entity *model.Entity) error {
	db := g.db.WithContext(ctx)

	if err := db.Create(entity).Error; err != nil {
		return err
	}

	attributeVariables, err := g.ListAttributeVariables(ctx, entity.VariableID)
	if err != nil {
		return err
	}

	for _, av := range attributeVariables {
		value := ""
		if entity.Attributes != nil {
			value = entity.Attributes[av.Name]
		}
		row := &model.AttributeValue{
			EntityID:            entity.ID,
			AttributeVariableID: av.ID,
			Value:               value,
		}
		if err := db.Create(row).Error; err != nil {
			return err
		}
	}

	return nil
}

// ResolveEntity returns the unique entity for (variable, literal), creating
// it when absent. A duplicate-key error from a concurrent writer is treated
// as an expected race and resolved by re-reading; a confirm read follows
// every create so the id is trusted on all dialects.
func (g *GormStore) ResolveEntity(ctx context.Context, variableID int64, literal string) (*model.Entity, error) {
	db := g.db.WithContext(ctx)

	entity := &model.Entity{}
	err := db.Where(map[string]any{"variable_id": variableID, "value": literal}).
		FirstOrCreate(entity).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = db.Where("variable_id = ? AND value = ?", variableID, literal).
			First(entity).Error
	}
	if err != nil {
		return nil, err
	}

	// confirm read: the create path does not yield a trusted id uniformly
	err = db.Where("variable_id = ? AND value = ?", variableID, literal).First(entity).Error
	if err != nil {
		return nil, err
	}

	if err := g.ensureAttributeValues(ctx, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

// ensureAttributeValues backfills an empty attribute value for every
// attribute variable of the entity's variable that has no row yet. Checked
// individually; a duplicate-key error means another writer won the race.
func (g *GormStore) ensureAttributeValues(ctx context.Context, entity *model.Entity) error {
	db := g.db.WithContext(ctx)

	attributeVariables, err := g.ListAttributeVariables(ctx, entity.VariableID)
	if err != nil {
		return err
	}

	for _, av := range attributeVariables {
		var count int64
		err := db.Model(&model.AttributeValue{}).
			Where("entity_id = ? AND attribute_variable_id = ?", entity.ID, av.ID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		row := &model.AttributeValue{EntityID: entity.ID, AttributeVariableID: av.ID}
		if err := db.Create(row).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}

	return nil
}

// ListEntities returns one slice per requested variable, resolving the
// in-use flag and the attribute map of every entity.
func (g *GormStore) ListEntities(ctx context.Context, variableIDs []int64) ([][]*model.Entity, error) {
	db := g.db.WithContext(ctx)
	result := make([][]*model.Entity, 0, len(variableIDs))

	for _, variableID := range variableIDs {
		var entities []*model.Entity
		err := db.Where("variable_id = ?", variableID).Order("value asc").Find(&entities).Error
		if err != nil {
			return nil, err
		}

		var usedIDs []int64
		err = db.Model(&model.DataShortText{}).
			Joins("JOIN entities ON entities.id = data_short_text.entity_id").
			Where("entities.variable_id = ?", variableID).
			Distinct().Pluck("data_short_text.entity_id", &usedIDs).Error
		if err != nil {
			return nil, err
		}
		used := make(map[int64]bool, len(usedIDs))
		for _, id := range usedIDs {
			used[id] = true
		}

		for _, entity := range entities {
			entity.InUse = used[entity.ID]
			attributes, err := g.entityAttributes(ctx, entity.ID)
			if err != nil {
				return nil, err
			}
			entity.Attributes = attributes
		}

		result = append(result, entities)
	}

	return result, nil
}

func (g *GormStore) entityAttributes(ctx context.Context, entityID int64) (map[string]string, error) {
	type pair struct {
		Name  string
		Value string
	}
	var pairs []pair
	err := g.db.WithContext(ctx).Model(&model.AttributeValue{}).
		Select("attribute_variables.name, attribute_values.value").
		Joins("JOIN attribute_variables ON attribute_variables.id = attribute_values.attribute_variable_id").
		Where("attribute_values.entity_id = ?", entityID).
		Scan(&pairs).Error
	if err != nil {
		return nil, err
	}

	attributes := make(map[string]string, len(pairs))
	for _, p := range pairs {
		attributes[p.Name] = p.Value
	}
	return attributes, nil
}

func (g *GormStore) UpdateEntityValue(ctx context.Context, id int64, value string) error {
	return g.db.WithContext(ctx).Model(&model.Entity{}).Where("id = ?", id).
		Update("value", value).Error
}

func (g *GormStore) UpdateEntityColor(ctx context.Context, id int64, red, green, blue int) error {
	return g.db.WithContext(ctx).Model(&model.Entity{}).Where("id = ?", id).
		Updates(map[string]any{"red": red, "green": green, "blue": blue}).Error
}

func (g *GormStore) UpdateEntityParent(ctx context.Context, id int64, childOf *int64) error {
	if childOf != nil && *childOf == id {
		return ErrSelfParent
	}
	return g.db.WithContext(ctx).Model(&model.Entity{}).Where("id = ?", id).
		Update("child_of", childOf).Error
}

func (g *GormStore) SetAttributeValue(ctx context.Context, entityID, attributeVariableID int64, value string) error {
	return g.db.WithContext(ctx).Model(&model.AttributeValue{}).
		Where("entity_id = ? AND attribute_variable_id = ?", entityID, attributeVariableID).
		Update("value", value).Error
}

func (g *GormStore) CountEntityUsage(ctx context.Context, ids []int64) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.DataShortText{}).
		Where("entity_id IN ?", ids).Count(&count).Error
	return count, err
}

// DeleteEntities removes the entities and their attribute values, or
// refuses entirely when any of them is still referenced by a statement
// value. Nothing is deleted in the refused case.
func (g *GormStore) DeleteEntities(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	return g.Transaction(ctx, func(tx Store) error {
		count, err := tx.CountEntityUsage(ctx, ids)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrEntityInUse
		}

		gtx := tx.(*GormStore).db.WithContext(ctx)
		if err := gtx.Where("entity_id IN ?", ids).Delete(&model.AttributeValue{}).Error; err != nil {
			return err
		}
		// detach children of the deleted rows
		if err := gtx.Model(&model.Entity{}).Where("child_of IN ?", ids).
			Update("child_of", nil).Error; err != nil {
			return err
		}

		return gtx.Where("id IN ?", ids).Delete(&model.Entity{}).Error
	})
}

func (g *GormStore) ListAttributeVariables(ctx context.Context, variableID int64) ([]*model.AttributeVariable, error) {
	var attributeVariables []*model.AttributeVariable
	err := g.db.WithContext(ctx).Where("variable_id = ?", variableID).
		Order("id asc").Find(&attributeVariables).Error
	return attributeVariables, err
}

// CreateAttributeVariable adds an attribute slot and backfills an empty
// value for every existing entity of the variable.
func (g *GormStore) CreateAttributeVariable(ctx context.Context, av *model.AttributeVariable) error {
	db := g.db.WithContext(ctx)

	if err := db.Create(av).Error; err != nil {
		return err
	}

	var entityIDs []int64
	err := db.Model(&model.Entity{}).Where("variable_id = ?", av.VariableID).
		Pluck("id", &entityIDs).Error
	if err != nil {
		return err
	}

	for _, entityID := range entityIDs {
		row := &model.AttributeValue{EntityID: entityID, AttributeVariableID: av.ID}
		if err := db.Create(row).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}

	return nil
}

func (g *GormStore) RenameAttributeVariable(ctx context.Context, id int64, name string) error {
	return g.db.WithContext(ctx).Model(&model.AttributeVariable{}).Where("id = ?", id).
		Update("name", name).Error
}

func (g *GormStore) DeleteAttributeVariable(ctx context.Context, id int64) error {
	db := g.db.WithContext(ctx)
	if err := db.Where("attribute_variable_id = ?", id).Delete(&model.AttributeValue{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&model.AttributeVariable{}).Error
}
