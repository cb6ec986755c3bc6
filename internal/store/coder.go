package store

import (
	"context"

	"github.com/openqda/qda/internal/model"
)

func (g *GormStore) CreateCoder(ctx context.Context, coder *model.Coder) error {
	db := g.db.WithContext(ctx)

	var others []*model.Coder
	if err := db.Find(&others).Error; err != nil {
		return err
	}

	if err := db.Create(coder).Error; err != nil {
		return err
	}

	// pairwise visibility rows against every existing coder, both directions
	for _, other := range others {
		if other.ID == coder.ID {
			continue
		}
		relations := []model.CoderRelation{
			{CoderID: coder.ID, OtherCoderID: other.ID,
				ViewDocuments: true, EditDocuments: true, ViewStatements: true, EditStatements: true},
			{CoderID: other.ID, OtherCoderID: coder.ID,
				ViewDocuments: true, EditDocuments: true, ViewStatements: true, EditStatements: true},
		}
		for i := range relations {
			if err := db.Create(&relations[i]).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func (g *GormStore) GetCoder(ctx context.Context, id int64) (*model.Coder, error) {
	var coder model.Coder
	if err := g.db.WithContext(ctx).Where("id = ?", id).First(&coder).Error; err != nil {
		return nil, err
	}

	var relations []*model.CoderRelation
	if err := g.db.WithContext(ctx).Where("coder_id = ?", id).Find(&relations).Error; err != nil {
		return nil, err
	}

	coder.Relations = make(map[int64]*model.CoderRelation, len(relations))
	for _, relation := range relations {
		coder.Relations[relation.OtherCoderID] = relation
	}

	return &coder, nil
}

func (g *GormStore) ListCoders(ctx context.Context) ([]*model.Coder, error) {
	var coders []*model.Coder
	err := g.db.WithContext(ctx).Order("id asc").Find(&coders).Error
	return coders, err
}

func (g *GormStore) GetCoderPassword(ctx context.Context, id int64) (string, error) {
	var coder model.Coder
	err := g.db.WithContext(ctx).Select("password").Where("id = ?", id).First(&coder).Error
	if err != nil {
		return "", err
	}
	return coder.Password, nil
}

// UpdateCoder rewrites the coder row and replaces its outgoing relation
// rows with the supplied set.
func (g *GormStore) UpdateCoder(ctx context.Context, coder *model.Coder, relations []model.CoderRelation) error {
	db := g.db.WithContext(ctx)

	if err := db.Save(coder).Error; err != nil {
		return err
	}

	if err := db.Where("coder_id = ?", coder.ID).Delete(&model.CoderRelation{}).Error; err != nil {
		return err
	}

	for i := range relations {
		relations[i].ID = 0
		relations[i].CoderID = coder.ID
		if err := db.Create(&relations[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

func (g *GormStore) UpdateCoderSettings(ctx context.Context, id int64, fields map[string]any) error {
	return g.db.WithContext(ctx).Model(&model.Coder{}).Where("id = ?", id).Updates(fields).Error
}

// DeleteCoder removes a coder together with its documents, statements and
// relation rows.
func (g *GormStore) DeleteCoder(ctx context.Context, id int64) error {
	db := g.db.WithContext(ctx)

	var documentIDs []int64
	if err := db.Model(&model.Document{}).Where("coder_id = ?", id).Pluck("id", &documentIDs).Error; err != nil {
		return err
	}
	if len(documentIDs) > 0 {
		if err := g.DeleteDocuments(ctx, documentIDs); err != nil {
			return err
		}
	}

	var statementIDs []int64
	if err := db.Model(&model.Statement{}).Where("coder_id = ?", id).Pluck("id", &statementIDs).Error; err != nil {
		return err
	}
	if len(statementIDs) > 0 {
		if err := g.DeleteStatements(ctx, statementIDs); err != nil {
			return err
		}
	}

	if err := db.Where("coder_id = ? OR other_coder_id = ?", id, id).Delete(&model.CoderRelation{}).Error; err != nil {
		return err
	}

	return db.Where("id = ?", id).Delete(&model.Coder{}).Error
}
