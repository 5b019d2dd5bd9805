package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// IntegrationConfig holds the per-platform connection settings. Tokens
// are provisioned by the credential subsystem, the exporter only
// consumes them.
type IntegrationConfig struct {
	BaseURL     string `json:"base_url"`
	Token       string `json:"token"`
	SiteID      string `json:"site_id,omitempty"`
	LibraryName string `json:"library_name,omitempty"`
	SpaceKey    string `json:"space_key,omitempty"`
}

// Integration is one configured destination platform for a project.
type Integration struct {
	ID        uuid.UUID                     `gorm:"primaryKey;column:id;type:VARCHAR(255);"`
	CreatedAt time.Time                     `gorm:"not null"`
	ProjectID uuid.UUID                     `gorm:"not null;index:integrations_project_id_idx"`
	Type      string                        `gorm:"not null;type:VARCHAR(100)"`
	Name      string                        `gorm:"not null"`
	Config    *JSONField[IntegrationConfig] `gorm:"type:jsonb;not null"`
}

type IntegrationList []Integration

func (i Integration) String() string {
	val, _ := json.Marshal(i)
	return string(val)
}
