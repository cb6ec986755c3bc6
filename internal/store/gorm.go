package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/openqda/qda/internal/model"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

// GormStore implements Store on top of a gorm connection. The same type
// serves both the root connection and transactional views of it.
type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

// CreateSchema builds all tables and seed rows in one transaction. On any
// failure nothing is left behind.
func (g *GormStore) CreateSchema(ctx context.Context, adminPasswordHash string) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := model.Migrate(tx); err != nil {
			return err
		}

		return model.Seed(tx, adminPasswordHash)
	})
}

func (g *GormStore) GetSetting(ctx context.Context, key string) (string, error) {
	var setting model.Setting
	err := g.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (g *GormStore) SetSetting(ctx context.Context, key, value string) error {
	setting := &model.Setting{Key: key, Value: value}
	err := g.db.WithContext(ctx).Create(setting).Error
	if err != nil {
		return g.db.WithContext(ctx).Model(&model.Setting{}).
			Where("key = ?", key).Update("value", value).Error
	}
	return nil
}
