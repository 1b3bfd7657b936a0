package drafting

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/gmail"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/repository"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
)

var (
	ErrDraftNotFound         = errors.New("rascunho não encontrado")
	ErrDraftAlreadyProcessed = errors.New("rascunho já aprovado")
	ErrMailboxNotConnected   = errors.New("tenant sem caixa de e-mail conectada")
)

// Manager expõe as operações sobre rascunhos já persistidos: listagem e a
// aprovação que materializa o rascunho na caixa do Gmail
type Manager interface {
	ListDrafts(tenantID string, status *domain.DraftStatus) ([]*domain.Draft, error)
	ApproveDraft(tenantID, draftID string, userID *string) (*domain.Draft, error)
}

type Service struct {
	draftRepo         repository.DraftRepository
	auditRepo         repository.AuditRepository
	mailboxIntegrator gmail.MailboxIntegrator
}

func NewService(
	draftRepo repository.DraftRepository,
	auditRepo repository.AuditRepository,
	mailboxIntegrator gmail.MailboxIntegrator,
) Manager {
	return &Service{
		draftRepo:         draftRepo,
		auditRepo:         auditRepo,
		mailboxIntegrator: mailboxIntegrator,
	}
}

func (s *Service) ListDrafts(tenantID string, status *domain.DraftStatus) ([]*domain.Draft, error) {
	return s.draftRepo.ListDrafts(tenantID, status)
}

// ApproveDraft cria o rascunho na caixa do tenant e grava a transição
// pending→approved. A aprovação acontece no máximo uma vez por rascunho.
func (s *Service) ApproveDraft(tenantID, draftID string, userID *string) (*domain.Draft, error) {
	draft, err := s.draftRepo.GetDraftByID(tenantID, draftID)
	if err != nil {
		return nil, err
	}

	if draft == nil {
		return nil, ErrDraftNotFound
	}

	if draft.Status != domain.DraftStatusPending {
		return nil, ErrDraftAlreadyProcessed
	}

	hasMailbox, err := s.mailboxIntegrator.HasToken(tenantID)
	if err != nil {
		return nil, err
	}
	if !hasMailbox {
		return nil, ErrMailboxNotConnected
	}

	gmailDraftID, err := s.mailboxIntegrator.CreateDraft(tenantID, draft.ClientEmail, draft.Subject, draft.Body)
	if err != nil {
		return nil, err
	}

	approvedAt := time.Now()
	if err := s.draftRepo.MarkApproved(tenantID, draftID, gmailDraftID, approvedAt); err != nil {
		return nil, err
	}

	draft.Status = domain.DraftStatusApproved
	draft.GmailDraftID = &gmailDraftID
	draft.ApprovedAt = &approvedAt

	if err := s.auditRepo.Append(&domain.AuditEntry{
		TenantID:   tenantID,
		UserID:     userID,
		Action:     domain.AuditActionApproveDraft,
		EntityType: "draft",
		EntityID:   draftID,
		Metadata: map[string]any{
			"gmail_draft_id": gmailDraftID,
			"client_id":      draft.ClientID,
		},
	}); err != nil {
		logrus.WithFields(logrus.Fields{
			"tenant_id": tenantID,
			"draft_id":  draftID,
		}).Warn("Erro ao gravar auditoria da aprovação: ", err)
	}

	logrus.WithFields(logrus.Fields{
		"tenant_id":      tenantID,
		"draft_id":       draftID,
		"gmail_draft_id": gmailDraftID,
	}).Info("Rascunho aprovado e criado no Gmail")

	return draft, nil
}
