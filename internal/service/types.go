package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/openqda/qda/internal/model"
	"github.com/openqda/qda/internal/store"
)

// NewTypeService creates a new TypeService.
func NewTypeService(provider store.Provider) *TypeService {
	return &TypeService{provider: provider}
}

// TypeService manages statement types, variables, variable links, regex
// highlighter terms and settings.
type TypeService struct {
	provider store.Provider
}

// AddStatementType creates a user-defined type with its variables in one
// transaction and returns the new id, or -1 on failure.
func (s *TypeService) AddStatementType(ctx context.Context, st *model.StatementType) int64 {
	err := s.provider.Store().Transaction(ctx, func(tx store.Store) error {
		return tx.CreateStatementType(ctx, st)
	})
	if err != nil {
		logrus.Errorf("Error adding statement type: %v", err)
		return -1
	}
	return st.ID
}

func (s *TypeService) GetStatementType(ctx context.Context, id int64) *model.StatementType {
	st, err := s.provider.Store().GetStatementType(ctx, id)
	if err != nil {
		logrus.Errorf("Error getting statement type %d: %v", id, err)
		return nil
	}
	return st
}

func (s *TypeService) GetStatementTypes(ctx context.Context) []*model.StatementType {
	types, err := s.provider.Store().ListStatementTypes(ctx)
	if err != nil {
		logrus.Errorf("Error listing statement types: %v", err)
		return []*model.StatementType{}
	}
	return types
}

func (s *TypeService) UpdateStatementType(ctx context.Context, id int64, label string, red, green, blue int) bool {
	err := s.provider.Store().UpdateStatementType(ctx, id, label, red, green, blue)
	if errors.Is(err, store.ErrBuiltinStatementType) {
		logrus.Warnf("Refusing to edit built-in statement type %d", id)
		return false
	}
	if err != nil {
		logrus.Errorf("Error updating statement type %d: %v", id, err)
		return false
	}
	return true
}

// DeleteStatementType removes a user type with its statements and
// variables in one transaction. Built-in types are protected.
func (s *TypeService) DeleteStatementType(ctx context.Context, id int64) bool {
	err := s.provider.Store().Transaction(ctx, func(tx store.Store) error {
		return tx.DeleteStatementType(ctx, id)
	})
	if errors.Is(err, store.ErrBuiltinStatementType) {
		logrus.Warnf("Refusing to delete built-in statement type %d", id)
		return false
	}
	if err != nil {
		logrus.Errorf("Error deleting statement type %d: %v", id, err)
		return false
	}
	return true
}

// AddVariable adds a variable to a statement type and returns the new id,
// or -1. Existing statements of the type get their value for the new
// variable on their next update.
func (s *TypeService) AddVariable(ctx context.Context, v *model.Variable) int64 {
	if err := s.provider.Store().CreateVariable(ctx, v); err != nil {
		logrus.Errorf("Error adding variable: %v", err)
		return -1
	}
	return v.ID
}

func (s *TypeService) GetVariables(ctx context.Context, statementTypeID int64) []*model.Variable {
	variables, err := s.provider.Store().ListVariables(ctx, statementTypeID)
	if err != nil {
		logrus.Errorf("Error listing variables: %v", err)
		return []*model.Variable{}
	}
	return variables
}

// DeleteVariable removes a variable with its value rows, entities and
// attribute definitions in one transaction.
func (s *TypeService) DeleteVariable(ctx context.Context, id int64) bool {
	err := s.provider.Store().Transaction(ctx, func(tx store.Store) error {
		return tx.DeleteVariable(ctx, id)
	})
	if err != nil {
		logrus.Errorf("Error deleting variable %d: %v", id, err)
		return false
	}
	return true
}

func (s *TypeService) AddVariableLink(ctx context.Context, sourceID, targetID int64) int64 {
	link := &model.VariableLink{SourceVariableID: sourceID, TargetVariableID: targetID}
	if err := s.provider.Store().CreateVariableLink(ctx, link); err != nil {
		logrus.Errorf("Error adding variable link: %v", err)
		return -1
	}
	return link.ID
}

func (s *TypeService) GetVariableLinks(ctx context.Context) []*model.VariableLink {
	links, err := s.provider.Store().ListVariableLinks(ctx)
	if err != nil {
		logrus.Errorf("Error listing variable links: %v", err)
		return []*model.VariableLink{}
	}
	return links
}

func (s *TypeService) DeleteVariableLink(ctx context.Context, id int64) bool {
	if err := s.provider.Store().DeleteVariableLink(ctx, id); err != nil {
		logrus.Errorf("Error deleting variable link %d: %v", id, err)
		return false
	}
	return true
}

func (s *TypeService) AddRegex(ctx context.Context, label string, red, green, blue int) bool {
	regex := &model.Regex{Label: label, Red: red, Green: green, Blue: blue}
	if err := s.provider.Store().CreateRegex(ctx, regex); err != nil {
		logrus.Errorf("Error adding regex %q: %v", label, err)
		return false
	}
	return true
}

func (s *TypeService) GetRegexes(ctx context.Context) []*model.Regex {
	regexes, err := s.provider.Store().ListRegexes(ctx)
	if err != nil {
		logrus.Errorf("Error listing regexes: %v", err)
		return []*model.Regex{}
	}
	return regexes
}

func (s *TypeService) DeleteRegex(ctx context.Context, label string) bool {
	if err := s.provider.Store().DeleteRegex(ctx, label); err != nil {
		logrus.Errorf("Error deleting regex %q: %v", label, err)
		return false
	}
	return true
}

func (s *TypeService) GetSetting(ctx context.Context, key string) string {
	value, err := s.provider.Store().GetSetting(ctx, key)
	if err != nil {
		logrus.Errorf("Error getting setting %q: %v", key, err)
		return ""
	}
	return value
}

func (s *TypeService) SetSetting(ctx context.Context, key, value string) bool {
	if err := s.provider.Store().SetSetting(ctx, key, value); err != nil {
		logrus.Errorf("Error setting %q: %v", key, err)
		return false
	}
	return true
}
