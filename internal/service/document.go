package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/openqda/qda/internal/cache"
	"github.com/openqda/qda/internal/compress"
	"github.com/openqda/qda/internal/model"
	"github.com/openqda/qda/internal/store"
)

const tableDocumentsKey = "documents:table"
const tableDocumentsTTL = time.Minute

// NewDocumentService creates a new DocumentService. The codec is applied to
// document text before storage; kv may be nil to disable listing caching.
func NewDocumentService(codec compress.Compress, provider store.Provider, kv cache.KV) *DocumentService {
	return &DocumentService{
		codec:    codec,
		provider: provider,
		kv:       kv,
	}
}

type DocumentService struct {
	codec    compress.Compress
	provider store.Provider
	kv       cache.KV
}

// AddDocuments stores a batch of documents in one transaction. Text runs
// through the configured codec; the codec name is recorded per row.
func (s *DocumentService) AddDocuments(ctx context.Context, docs []*model.Document) bool {
	for _, doc := range docs {
		encoded, err := s.codec.Encode([]byte(doc.Text))
		if err != nil {
			logrus.Errorf("Error encoding document text: %v", err)
			return false
		}
		doc.Text = string(encoded)
		doc.Compression = compress.Name(s.codec)
		if doc.Date.IsZero() {
			doc.Date = time.Now()
		}
	}

	err := s.provider.Store().Transaction(ctx, func(tx store.Store) error {
		return tx.CreateDocuments(ctx, docs)
	})
	if err != nil {
		logrus.Errorf("Error adding documents: %v", err)
		return false
	}

	s.invalidate(ctx)
	return true
}

func (s *DocumentService) GetDocument(ctx context.Context, id int64) *model.Document {
	doc, err := s.provider.Store().GetDocument(ctx, id)
	if err != nil {
		logrus.Errorf("Error getting document %d: %v", id, err)
		return nil
	}

	if err := decodeText(doc); err != nil {
		logrus.Errorf("Error decoding document %d text: %v", id, err)
		return nil
	}

	return doc
}

func (s *DocumentService) GetDocuments(ctx context.Context) []*model.Document {
	docs, err := s.provider.Store().ListDocuments(ctx)
	if err != nil {
		logrus.Errorf("Error listing documents: %v", err)
		return []*model.Document{}
	}

	for _, doc := range docs {
		if err := decodeText(doc); err != nil {
			logrus.Errorf("Error decoding document %d text: %v", doc.ID, err)
			return []*model.Document{}
		}
	}

	return docs
}

// GetTableDocuments returns the shallow listing projection, memoized in the
// cache when one is configured.
func (s *DocumentService) GetTableDocuments(ctx context.Context) []*model.TableDocument {
	if s.kv != nil {
		if data, err := s.kv.Get(ctx, tableDocumentsKey); err == nil {
			var docs []*model.TableDocument
			if err := json.Unmarshal(data, &docs); err == nil {
				return docs
			}
		}
	}

	docs, err := s.provider.Store().ListTableDocuments(ctx)
	if err != nil {
		logrus.Errorf("Error listing documents: %v", err)
		return []*model.TableDocument{}
	}

	if s.kv != nil {
		if data, err := json.Marshal(docs); err == nil {
			_ = s.kv.Set(ctx, tableDocumentsKey, data, tableDocumentsTTL)
		}
	}

	return docs
}

// UpdateDocuments bulk-edits the metadata of many documents in one
// transaction. Field values may contain wildcard placeholders that are
// resolved from each row's own prior values before rewriting.
func (s *DocumentService) UpdateDocuments(ctx context.Context, ids []int64, fields map[string]string) bool {
	err := s.provider.Store().Transaction(ctx, func(tx store.Store) error {
		for _, id := range ids {
			doc, err := tx.GetDocument(ctx, id)
			if err != nil {
				return err
			}
			if err := decodeText(doc); err != nil {
				return err
			}

			applyFields(doc, fields)

			encoded, err := compress.FromName(doc.Compression).Encode([]byte(doc.Text))
			if err != nil {
				return err
			}
			doc.Text = string(encoded)

			if err := tx.UpdateDocument(ctx, doc); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logrus.Errorf("Error updating documents: %v", err)
		return false
	}

	s.invalidate(ctx)
	return true
}

func (s *DocumentService) DeleteDocuments(ctx context.Context, ids []int64) bool {
	err := s.provider.Store().Transaction(ctx, func(tx store.Store) error {
		return tx.DeleteDocuments(ctx, ids)
	})
	if err != nil {
		logrus.Errorf("Error deleting documents: %v", err)
		return false
	}

	s.invalidate(ctx)
	return true
}

// HasTitle reports whether a document with the given title already exists,
// used by importers to skip duplicates.
func (s *DocumentService) HasTitle(ctx context.Context, title string) bool {
	exists, err := s.provider.Store().DocumentTitleExists(ctx, title)
	if err != nil {
		logrus.Errorf("Error checking document title: %v", err)
		return false
	}
	return exists
}

func (s *DocumentService) invalidate(ctx context.Context) {
	if s.kv != nil {
		_ = s.kv.Delete(ctx, tableDocumentsKey)
	}
}

func decodeText(doc *model.Document) error {
	decoded, err := compress.FromName(doc.Compression).Decode([]byte(doc.Text))
	if err != nil {
		return err
	}
	doc.Text = string(decoded)
	return nil
}

// applyFields rewrites the editable metadata fields, expanding wildcards
// against the document's prior values first.
func applyFields(doc *model.Document, fields map[string]string) {
	resolved := make(map[string]string, len(fields))
	for field, value := range fields {
		resolved[field] = resolveWildcards(doc, value)
	}

	for field, value := range resolved {
		switch field {
		case "title":
			doc.Title = value
		case "text":
			doc.Text = value
		case "author":
			doc.Author = value
		case "source":
			doc.Source = value
		case "section":
			doc.Section = value
		case "type":
			doc.Type = value
		case "notes":
			doc.Notes = value
		}
	}
}

// resolveWildcards interpolates a document's own fields and date parts into
// a replacement pattern.
func resolveWildcards(doc *model.Document, pattern string) string {
	replacer := strings.NewReplacer(
		"%title", doc.Title,
		"%text", doc.Text,
		"%author", doc.Author,
		"%source", doc.Source,
		"%section", doc.Section,
		"%type", doc.Type,
		"%notes", doc.Notes,
		"%yearmonth", fmt.Sprintf("%04d-%02d", doc.Date.Year(), int(doc.Date.Month())),
		"%year", fmt.Sprintf("%04d", doc.Date.Year()),
		"%month", fmt.Sprintf("%02d", int(doc.Date.Month())),
		"%day", fmt.Sprintf("%02d", doc.Date.Day()),
	)
	return replacer.Replace(pattern)
}
