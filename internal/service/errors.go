package service

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id uuid.UUID, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrProjectNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "project")
}

func NewErrIntegrationNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "integration")
}

func NewErrDocumentNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "document")
}

func NewErrExportJobNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "export job")
}

type ErrEmptyBatch struct {
	error
}

func NewErrEmptyBatch() *ErrEmptyBatch {
	return &ErrEmptyBatch{fmt.Errorf("export batch has no documents")}
}

type ErrIntegrationTypeMismatch struct {
	error
}

func NewErrIntegrationTypeMismatch(id uuid.UUID, requested, configured string) *ErrIntegrationTypeMismatch {
	return &ErrIntegrationTypeMismatch{fmt.Errorf("integration %s is of type %s, not %s", id, configured, requested)}
}
