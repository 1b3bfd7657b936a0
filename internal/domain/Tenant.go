package domain

import (
	"time"
)

// ComposerMode controla quando o compositor de linguagem natural é acionado
type ComposerMode string

const (
	ComposerModeNever      ComposerMode = "never"
	ComposerModeAlways     ComposerMode = "always"
	ComposerModeScheduled  ComposerMode = "scheduled"
	ComposerModeMeaningful ComposerMode = "meaningful"
)

type Tenant struct {
	ID             string       `json:"id"`
	DisplayName    *string      `json:"display_name"`
	ComposerMode   ComposerMode `json:"composer_mode"`
	MinChangeCount int          `json:"min_change_count"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Mode retorna o modo configurado, aplicando o default quando vazio
func (t *Tenant) Mode() ComposerMode {
	if t == nil || t.ComposerMode == "" {
		return ComposerModeMeaningful
	}
	return t.ComposerMode
}

type UpdateTenantRequest struct {
	DisplayName    *string       `json:"display_name"`
	ComposerMode   *ComposerMode `json:"composer_mode" validate:"omitempty,oneof=never always scheduled meaningful"`
	MinChangeCount *int          `json:"min_change_count" validate:"omitempty,gte=0"`
}
