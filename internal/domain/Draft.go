package domain

import (
	"time"
)

type DraftStatus string

const (
	DraftStatusPending  DraftStatus = "pending"
	DraftStatusApproved DraftStatus = "approved"
)

// Draft é uma atualização gerada e ainda não enviada, aguardando aprovação
// humana. A transição pending→approved acontece exatamente uma vez e nunca
// é revertida.
type Draft struct {
	ID           string      `json:"id"`
	TenantID     string      `json:"tenant_id"`
	ClientID     string      `json:"client_id"`
	ClientName   string      `json:"client_name"`
	ClientEmail  string      `json:"client_email"`
	Subject      string      `json:"subject"`
	Body         string      `json:"body"`
	ChangeCount  int         `json:"change_count"`
	Status       DraftStatus `json:"status"`
	GmailDraftID *string     `json:"gmail_draft_id"`
	CreatedAt    time.Time   `json:"created_at"`
	ApprovedAt   *time.Time  `json:"approved_at"`
}

// EmailContent é o par assunto/corpo produzido pelo compositor
type EmailContent struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
