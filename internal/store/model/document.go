package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Document is an immutable generated document supplied by the document
// store. The export subsystem only ever reads these records.
type Document struct {
	ID           uuid.UUID `gorm:"primaryKey;column:id;type:VARCHAR(255);"`
	CreatedAt    time.Time `gorm:"not null"`
	ProjectID    uuid.UUID `gorm:"not null;index:documents_project_id_idx"`
	DocumentType string    `gorm:"not null;type:VARCHAR(100)"`
	Title        string    `gorm:"not null"`
	Content      string    `gorm:"type:text"`
}

type DocumentList []Document

func (d Document) String() string {
	val, _ := json.Marshal(d)
	return string(val)
}
