package domain

import (
	"time"
)

// AuditEntry é um registro append-only de uma ação relevante no sistema
type AuditEntry struct {
	ID         int            `json:"id"`
	TenantID   string         `json:"tenant_id"`
	UserID     *string        `json:"user_id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Metadata   map[string]any `json:"metadata"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Ações auditadas
const (
	AuditActionLogin            = "login"
	AuditActionSignup           = "signup"
	AuditActionConnectQBO       = "connect_qbo"
	AuditActionConnectGmail     = "connect_gmail"
	AuditActionUpdateClient     = "update_client"
	AuditActionUpdateTenant     = "update_tenant"
	AuditActionDisconnectClient = "disconnect_client"
	AuditActionRunDrafts        = "run_drafts"
	AuditActionRunScheduled     = "run_scheduled"
	AuditActionApproveDraft     = "approve_draft"
	AuditActionRunRetention     = "run_retention"
)
