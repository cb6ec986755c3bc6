package store

import (
	"context"

	"github.com/openqda/qda/internal/model"
)

func (g *GormStore) CreateDocuments(ctx context.Context, docs []*model.Document) error {
	db := g.db.WithContext(ctx)
	for _, doc := range docs {
		if err := db.Create(doc).Error; err != nil {
			return err
		}
	}
	return nil
}

func (g *GormStore) GetDocument(ctx context.Context, id int64) (*model.Document, error) {
	var doc model.Document
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (g *GormStore) ListDocuments(ctx context.Context) ([]*model.Document, error) {
	var docs []*model.Document
	err := g.db.WithContext(ctx).Order("date asc, id asc").Find(&docs).Error
	return docs, err
}

// ListTableDocuments reads the listing projection without the text column
// and counts each document's statements in the same query.
func (g *GormStore) ListTableDocuments(ctx context.Context) ([]*model.TableDocument, error) {
	var docs []*model.TableDocument
	err := g.db.WithContext(ctx).Model(&model.Document{}).
		Select("documents.id, documents.title, documents.coder_id, coders.name AS coder_name, " +
			"documents.author, documents.source, documents.section, documents.type, " +
			"documents.notes, documents.date, COUNT(statements.id) AS frequency").
		Joins("LEFT JOIN coders ON coders.id = documents.coder_id").
		Joins("LEFT JOIN statements ON statements.document_id = documents.id").
		Group("documents.id, documents.title, documents.coder_id, coders.name, " +
			"documents.author, documents.source, documents.section, documents.type, " +
			"documents.notes, documents.date").
		Order("documents.date asc, documents.id asc").
		Scan(&docs).Error
	return docs, err
}

func (g *GormStore) UpdateDocument(ctx context.Context, doc *model.Document) error {
	return g.db.WithContext(ctx).Save(doc).Error
}

// DeleteDocuments removes documents and everything hanging off them. The
// cascade is explicit so it behaves the same on all three dialects.
func (g *GormStore) DeleteDocuments(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	db := g.db.WithContext(ctx)

	var statementIDs []int64
	err := db.Model(&model.Statement{}).Where("document_id IN ?", ids).Pluck("id", &statementIDs).Error
	if err != nil {
		return err
	}

	if len(statementIDs) > 0 {
		if err := g.DeleteStatements(ctx, statementIDs); err != nil {
			return err
		}
	}

	return db.Where("id IN ?", ids).Delete(&model.Document{}).Error
}

func (g *GormStore) DocumentTitleExists(ctx context.Context, title string) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.Document{}).Where("title = ?", title).Count(&count).Error
	return count > 0, err
}
