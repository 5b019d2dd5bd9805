package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/apatilgtn/Kairos-isdp-sub001/internal/store/model"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	ExportJob() ExportJob
	Document() Document
	Integration() Integration
	Project() Project
	InitialMigration() error
	Close() error
}

type DataStore struct {
	db          *gorm.DB
	exportJob   ExportJob
	document    Document
	integration Integration
	project     Project
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		db:          db,
		exportJob:   NewExportJobStore(db),
		document:    NewDocumentStore(db),
		integration: NewIntegrationStore(db),
		project:     NewProjectStore(db),
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) ExportJob() ExportJob {
	return s.exportJob
}

func (s *DataStore) Document() Document {
	return s.document
}

func (s *DataStore) Integration() Integration {
	return s.integration
}

func (s *DataStore) Project() Project {
	return s.project
}

func (s *DataStore) InitialMigration() error {
	return s.db.AutoMigrate(
		&model.Project{},
		&model.Document{},
		&model.Integration{},
		&model.ExportJob{},
	)
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
