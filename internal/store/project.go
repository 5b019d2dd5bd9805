package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/apatilgtn/Kairos-isdp-sub001/internal/store/model"
)

// Project interface for project lookups.
type Project interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context) (model.ProjectList, error)
	Create(ctx context.Context, project model.Project) (*model.Project, error)
}

type ProjectStore struct {
	db *gorm.DB
}

// Make sure we conform to Project interface
var _ Project = (*ProjectStore)(nil)

func NewProjectStore(db *gorm.DB) Project {
	return &ProjectStore{db: db}
}

func (s *ProjectStore) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	result := s.getDB(ctx).First(&project, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("querying project: %w", result.Error)
	}
	return &project, nil
}

func (s *ProjectStore) List(ctx context.Context) (model.ProjectList, error) {
	var projects model.ProjectList
	result := s.getDB(ctx).Model(&projects).Order("created_at").Find(&projects)
	if result.Error != nil {
		return nil, result.Error
	}
	return projects, nil
}

func (s *ProjectStore) Create(ctx context.Context, project model.Project) (*model.Project, error) {
	result := s.getDB(ctx).Create(&project)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("creating project: %w", result.Error)
	}
	return &project, nil
}

func (s *ProjectStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
