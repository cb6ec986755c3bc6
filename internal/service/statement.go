package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/openqda/qda/internal/model"
	"github.com/openqda/qda/internal/store"
)

// NewStatementService creates a new StatementService.
func NewStatementService(provider store.Provider) *StatementService {
	return &StatementService{provider: provider}
}

// StatementService manages statements and their typed values. Every
// multi-step write runs in one transaction; a failure rolls back the whole
// statement so no partial write is ever observable.
type StatementService struct {
	provider store.Provider
}

// AddStatement persists a statement with all its values and returns the
// assigned id, or -1 on failure. A statement whose start offset is not
// strictly smaller than its stop offset is rejected.
func (s *StatementService) AddStatement(ctx context.Context, st *model.Statement, values []model.VariableValue) int64 {
	if !st.Valid() {
		logrus.Warnf("Rejecting statement with span [%d, %d)", st.Start, st.Stop)
		return -1
	}

	err := s.provider.Store().Transaction(ctx, func(tx store.Store) error {
		return tx.CreateStatement(ctx, st, values)
	})
	if err != nil {
		logrus.Errorf("Error adding statement: %v", err)
		return -1
	}

	return st.ID
}

// UpdateStatement overwrites the given values field by field, keyed by
// (statement, variable). Short-text values resolve through the entity
// dictionary again, since a new literal may need a new entity. Applying the
// same values twice leaves the database unchanged.
func (s *StatementService) UpdateStatement(ctx context.Context, id int64, values []model.VariableValue) bool {
	err := s.provider.Store().Transaction(ctx, func(tx store.Store) error {
		for _, value := range values {
			if err := tx.SetValue(ctx, id, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logrus.Errorf("Error updating statement %d: %v", id, err)
		return false
	}
	return true
}

// CloneStatement copies a statement under a new coder and returns the new
// id, or -1 on failure. The original is not touched.
func (s *StatementService) CloneStatement(ctx context.Context, id, newCoderID int64) int64 {
	newID, err := s.provider.Store().CloneStatement(ctx, id, newCoderID)
	if err != nil {
		logrus.Errorf("Error cloning statement %d: %v", id, err)
		return -1
	}
	return newID
}

func (s *StatementService) GetStatement(ctx context.Context, id int64) *model.FullStatement {
	statement, err := s.provider.Store().GetStatement(ctx, id)
	if err != nil {
		logrus.Errorf("Error getting statement %d: %v", id, err)
		return nil
	}
	return statement
}

// GetStatements returns the statements of one document ordered by start
// offset.
func (s *StatementService) GetStatements(ctx context.Context, documentID int64) []*model.FullStatement {
	statements, err := s.provider.Store().ListStatements(ctx, documentID)
	if err != nil {
		logrus.Errorf("Error listing statements of document %d: %v", documentID, err)
		return []*model.FullStatement{}
	}
	return statements
}

// GetAllStatements returns every statement, ordered by document date.
func (s *StatementService) GetAllStatements(ctx context.Context) []*model.FullStatement {
	statements, err := s.provider.Store().ListAllStatements(ctx)
	if err != nil {
		logrus.Errorf("Error listing statements: %v", err)
		return []*model.FullStatement{}
	}
	return statements
}

// DeleteStatement removes a single statement as its own autonomous
// operation.
func (s *StatementService) DeleteStatement(ctx context.Context, id int64) bool {
	err := s.provider.Store().Transaction(ctx, func(tx store.Store) error {
		return tx.DeleteStatements(ctx, []int64{id})
	})
	if err != nil {
		logrus.Errorf("Error deleting statement %d: %v", id, err)
		return false
	}
	return true
}

// DeleteStatements removes a batch of statements in one transaction.
func (s *StatementService) DeleteStatements(ctx context.Context, ids []int64) bool {
	err := s.provider.Store().Transaction(ctx, func(tx store.Store) error {
		return tx.DeleteStatements(ctx, ids)
	})
	if err != nil {
		logrus.Errorf("Error deleting statements: %v", err)
		return false
	}
	return true
}

func (s *StatementService) CountStatements(ctx context.Context, documentID int64) int64 {
	count, err := s.provider.Store().CountStatements(ctx, documentID)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logrus.Errorf("Error counting statements of document %d: %v", documentID, err)
		}
		return 0
	}
	return count
}
