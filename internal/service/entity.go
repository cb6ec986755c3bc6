package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/openqda/qda/internal/model"
	"github.com/openqda/qda/internal/store"
)

// NewEntityService creates a new EntityService.
func NewEntityService(provider store.Provider) *EntityService {
	return &EntityService{provider: provider}
}

// EntityService manages the shared dictionary of deduplicated named values
// and their attributes.
type EntityService struct {
	provider store.Provider
}

// AddEntity inserts an entity together with one attribute value per
// attribute slot of its variable, in one transaction. Returns the new id,
// or -1 on failure.
func (s *EntityService) AddEntity(ctx context.Context, entity *model.Entity) int64 {
	err := s.provider.Store().Transaction(ctx, func(tx store.Store) error {
		return tx.CreateEntity(ctx, entity)
	})
	if err != nil {
		logrus.Errorf("Error adding entity: %v", err)
		return -1
	}
	return entity.ID
}

// GetEntities returns one list per requested variable, each entity resolved
// with color, parent, in-use flag and attribute map.
func (s *EntityService) GetEntities(ctx context.Context, variableIDs []int64) [][]*model.Entity {
	entities, err := s.provider.Store().ListEntities(ctx, variableIDs)
	if err != nil {
		logrus.Errorf("Error listing entities: %v", err)
		return [][]*model.Entity{}
	}
	return entities
}

// SetEntityValue renames an entity's literal. A clash with an existing
// literal of the same variable surfaces as a failed update; the caller
// decides whether to revert its in-memory state.
func (s *EntityService) SetEntityValue(ctx context.Context, id int64, value string) bool {
	if err := s.provider.Store().UpdateEntityValue(ctx, id, value); err != nil {
		logrus.Errorf("Error updating entity %d value: %v", id, err)
		return false
	}
	return true
}

func (s *EntityService) SetEntityColor(ctx context.Context, id int64, red, green, blue int) bool {
	if err := s.provider.Store().UpdateEntityColor(ctx, id, red, green, blue); err != nil {
		logrus.Errorf("Error updating entity %d color: %v", id, err)
		return false
	}
	return true
}

// SetEntityParent sets or clears the ChildOf parent. Self reference is
// refused.
func (s *EntityService) SetEntityParent(ctx context.Context, id int64, childOf *int64) bool {
	if err := s.provider.Store().UpdateEntityParent(ctx, id, childOf); err != nil {
		logrus.Errorf("Error updating entity %d parent: %v", id, err)
		return false
	}
	return true
}

func (s *EntityService) SetAttributeValue(ctx context.Context, entityID, attributeVariableID int64, value string) bool {
	if err := s.provider.Store().SetAttributeValue(ctx, entityID, attributeVariableID, value); err != nil {
		logrus.Errorf("Error updating attribute of entity %d: %v", entityID, err)
		return false
	}
	return true
}

// DeleteEntities removes unused entities. When any of the ids is still
// referenced by a statement value, nothing is deleted: the refusal is a
// deliberate no-op with a warning, not an error.
func (s *EntityService) DeleteEntities(ctx context.Context, ids []int64) bool {
	err := s.provider.Store().DeleteEntities(ctx, ids)
	if errors.Is(err, store.ErrEntityInUse) {
		logrus.Warnf("Refusing to delete entities still in use")
		return false
	}
	if err != nil {
		logrus.Errorf("Error deleting entities: %v", err)
		return false
	}
	return true
}

// AddAttributeVariable adds an attribute slot to a variable and backfills
// empty values for its existing entities. Returns the new id, or -1.
func (s *EntityService) AddAttributeVariable(ctx context.Context, variableID int64, name string) int64 {
	av := &model.AttributeVariable{VariableID: variableID, Name: name}
	err := s.provider.Store().Transaction(ctx, func(tx store.Store) error {
		return tx.CreateAttributeVariable(ctx, av)
	})
	if err != nil {
		logrus.Errorf("Error adding attribute variable: %v", err)
		return -1
	}
	return av.ID
}

func (s *EntityService) GetAttributeVariables(ctx context.Context, variableID int64) []*model.AttributeVariable {
	attributeVariables, err := s.provider.Store().ListAttributeVariables(ctx, variableID)
	if err != nil {
		logrus.Errorf("Error listing attribute variables: %v", err)
		return []*model.AttributeVariable{}
	}
	return attributeVariables
}

func (s *EntityService) RenameAttributeVariable(ctx context.Context, id int64, name string) bool {
	if err := s.provider.Store().RenameAttributeVariable(ctx, id, name); err != nil {
		logrus.Errorf("Error renaming attribute variable %d: %v", id, err)
		return false
	}
	return true
}

// DeleteAttributeVariable removes an attribute slot and all its values.
func (s *EntityService) DeleteAttributeVariable(ctx context.Context, id int64) bool {
	err := s.provider.Store().Transaction(ctx, func(tx store.Store) error {
		return tx.DeleteAttributeVariable(ctx, id)
	})
	if err != nil {
		logrus.Errorf("Error deleting attribute variable %d: %v", id, err)
		return false
	}
	return true
}
