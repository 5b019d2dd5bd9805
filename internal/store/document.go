package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/apatilgtn/Kairos-isdp-sub001/internal/store/model"
)

// Document interface for read access to generated documents. The
// export subsystem never mutates a document; Create exists for seeding
// and tests.
type Document interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Document, error)
	List(ctx context.Context, filter *DocumentQueryFilter) (model.DocumentList, error)
	Create(ctx context.Context, document model.Document) (*model.Document, error)
}

type DocumentStore struct {
	db *gorm.DB
}

// Make sure we conform to Document interface
var _ Document = (*DocumentStore)(nil)

func NewDocumentStore(db *gorm.DB) Document {
	return &DocumentStore{db: db}
}

func (s *DocumentStore) Get(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	var document model.Document
	result := s.getDB(ctx).First(&document, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("querying document: %w", result.Error)
	}
	return &document, nil
}

func (s *DocumentStore) List(ctx context.Context, filter *DocumentQueryFilter) (model.DocumentList, error) {
	var documents model.DocumentList
	tx := s.getDB(ctx).Model(&documents).Order("created_at")

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	result := tx.Find(&documents)
	if result.Error != nil {
		return nil, result.Error
	}
	return documents, nil
}

func (s *DocumentStore) Create(ctx context.Context, document model.Document) (*model.Document, error) {
	result := s.getDB(ctx).Create(&document)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("creating document: %w", result.Error)
	}
	return &document, nil
}

func (s *DocumentStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
