package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/apatilgtn/Kairos-isdp-sub001/internal/store/model"
)

// Integration interface for integration registry operations.
type Integration interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Integration, error)
	List(ctx context.Context, filter *IntegrationQueryFilter) (model.IntegrationList, error)
	Create(ctx context.Context, integration model.Integration) (*model.Integration, error)
}

type IntegrationStore struct {
	db *gorm.DB
}

// Make sure we conform to Integration interface
var _ Integration = (*IntegrationStore)(nil)

func NewIntegrationStore(db *gorm.DB) Integration {
	return &IntegrationStore{db: db}
}

func (s *IntegrationStore) Get(ctx context.Context, id uuid.UUID) (*model.Integration, error) {
	var integration model.Integration
	result := s.getDB(ctx).First(&integration, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("querying integration: %w", result.Error)
	}
	return &integration, nil
}

func (s *IntegrationStore) List(ctx context.Context, filter *IntegrationQueryFilter) (model.IntegrationList, error) {
	var integrations model.IntegrationList
	tx := s.getDB(ctx).Model(&integrations).Order("created_at")

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	result := tx.Find(&integrations)
	if result.Error != nil {
		return nil, result.Error
	}
	return integrations, nil
}

func (s *IntegrationStore) Create(ctx context.Context, integration model.Integration) (*model.Integration, error) {
	result := s.getDB(ctx).Create(&integration)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("creating integration: %w", result.Error)
	}
	return &integration, nil
}

func (s *IntegrationStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
