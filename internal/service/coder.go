package service

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/openqda/qda/internal/model"
	"github.com/openqda/qda/internal/store"
)

// NewCoderService creates a new CoderService.
func NewCoderService(provider store.Provider) *CoderService {
	return &CoderService{provider: provider}
}

// CoderService manages coder identities, permissions and preferences.
// Storage errors never escape: they are logged and converted to sentinel
// returns, so callers poll the result instead of catching.
type CoderService struct {
	provider store.Provider
}

// HashPassword derives the stored one-way hash from a clear-text password.
func HashPassword(clear string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(clear), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Authenticate compares a clear-text password against the stored hash.
// Failures are logged and reported as false, never raised.
func (s *CoderService) Authenticate(ctx context.Context, coderID int64, clearPassword string) bool {
	hash, err := s.provider.Store().GetCoderPassword(ctx, coderID)
	if err != nil {
		logrus.Errorf("Error reading password of coder %d: %v", coderID, err)
		return false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(clearPassword)); err != nil {
		logrus.Warnf("Authentication failed for coder %d", coderID)
		return false
	}

	return true
}

func (s *CoderService) GetCoder(ctx context.Context, id int64) *model.Coder {
	coder, err := s.provider.Store().GetCoder(ctx, id)
	if err != nil {
		logrus.Errorf("Error getting coder %d: %v", id, err)
		return nil
	}
	return coder
}

func (s *CoderService) GetCoders(ctx context.Context) []*model.Coder {
	coders, err := s.provider.Store().ListCoders(ctx)
	if err != nil {
		logrus.Errorf("Error listing coders: %v", err)
		return []*model.Coder{}
	}
	return coders
}

// AddCoder creates a coder with its pairwise relation rows in one
// transaction and returns the new id, or -1 on failure.
func (s *CoderService) AddCoder(ctx context.Context, coder *model.Coder, clearPassword string) int64 {
	hash, err := HashPassword(clearPassword)
	if err != nil {
		logrus.Errorf("Error hashing password: %v", err)
		return -1
	}
	coder.Password = hash

	err = s.provider.Store().Transaction(ctx, func(tx store.Store) error {
		return tx.CreateCoder(ctx, coder)
	})
	if err != nil {
		logrus.Errorf("Error adding coder: %v", err)
		return -1
	}

	return coder.ID
}

// UpdateCoder rewrites the coder row and its relation rows in one
// transaction.
func (s *CoderService) UpdateCoder(ctx context.Context, coder *model.Coder, relations []model.CoderRelation) bool {
	err := s.provider.Store().Transaction(ctx, func(tx store.Store) error {
		return tx.UpdateCoder(ctx, coder, relations)
	})
	if err != nil {
		logrus.Errorf("Error updating coder %d: %v", coder.ID, err)
		return false
	}
	return true
}

func (s *CoderService) DeleteCoder(ctx context.Context, id int64) bool {
	err := s.provider.Store().Transaction(ctx, func(tx store.Store) error {
		return tx.DeleteCoder(ctx, id)
	})
	if err != nil {
		logrus.Errorf("Error deleting coder %d: %v", id, err)
		return false
	}
	return true
}

// SetPassword stores a new hash for the coder's password.
func (s *CoderService) SetPassword(ctx context.Context, id int64, clearPassword string) bool {
	hash, err := HashPassword(clearPassword)
	if err != nil {
		logrus.Errorf("Error hashing password: %v", err)
		return false
	}
	return s.setFields(ctx, id, map[string]any{"password": hash})
}

func (s *CoderService) SetColor(ctx context.Context, id int64, red, green, blue int) bool {
	return s.setFields(ctx, id, map[string]any{"red": red, "green": green, "blue": blue})
}

func (s *CoderService) SetFontSize(ctx context.Context, id int64, size int) bool {
	return s.setFields(ctx, id, map[string]any{"font_size": size})
}

func (s *CoderService) SetPopupWidth(ctx context.Context, id int64, width int) bool {
	return s.setFields(ctx, id, map[string]any{"popup_width": width})
}

func (s *CoderService) SetPopupDecoration(ctx context.Context, id int64, decoration bool) bool {
	return s.setFields(ctx, id, map[string]any{"popup_decoration": decoration})
}

func (s *CoderService) SetPopupAutoComplete(ctx context.Context, id int64, autoComplete bool) bool {
	return s.setFields(ctx, id, map[string]any{"popup_auto_complete": autoComplete})
}

func (s *CoderService) SetColorByCoder(ctx context.Context, id int64, colorByCoder bool) bool {
	return s.setFields(ctx, id, map[string]any{"color_by_coder": colorByCoder})
}

func (s *CoderService) setFields(ctx context.Context, id int64, fields map[string]any) bool {
	if err := s.provider.Store().UpdateCoderSettings(ctx, id, fields); err != nil {
		logrus.Errorf("Error updating coder %d settings: %v", id, err)
		return false
	}
	return true
}
