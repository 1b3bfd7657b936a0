package managing

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/repository"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/scheduling"
)

var (
	ErrClientNotFound = errors.New("cliente não encontrado")
	ErrTenantNotFound = errors.New("tenant não encontrado")
)

var validate = validator.New()

// ClientManager expõe o cadastro de clientes do tenant. A conexão com o
// QuickBooks acontece no fluxo OAuth, não aqui.
type ClientManager interface {
	ListClients(tenantID string) ([]*domain.Client, error)
	GetClient(tenantID, clientID string) (*domain.Client, error)
	UpdateClient(tenantID string, req *domain.UpdateClientRequest, userID *string) (*domain.Client, error)
	DisconnectClient(tenantID, clientID string, userID *string) error
	GetTenant(tenantID string) (*domain.Tenant, error)
	UpdateTenant(tenantID string, req *domain.UpdateTenantRequest, userID *string) (*domain.Tenant, error)
}

type Service struct {
	clientRepo repository.ClientRepository
	tenantRepo repository.TenantRepository
	tokenRepo  repository.TokenRepository
	auditRepo  repository.AuditRepository
}

func NewService(
	clientRepo repository.ClientRepository,
	tenantRepo repository.TenantRepository,
	tokenRepo repository.TokenRepository,
	auditRepo repository.AuditRepository,
) ClientManager {
	return &Service{
		clientRepo: clientRepo,
		tenantRepo: tenantRepo,
		tokenRepo:  tokenRepo,
		auditRepo:  auditRepo,
	}
}

func (s *Service) ListClients(tenantID string) ([]*domain.Client, error) {
	return s.clientRepo.ListClients(tenantID)
}

func (s *Service) GetClient(tenantID, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.GetClientByID(tenantID, clientID)
	if err != nil {
		return nil, err
	}

	if client == nil {
		return nil, ErrClientNotFound
	}

	return client, nil
}

// UpdateClient aplica uma edição parcial. Um schedule presente é validado e
// substituído por inteiro; o próximo disparo é recalculado na hora para
// manter o invariante de que só schedules ativos têm next_run_at.
func (s *Service) UpdateClient(tenantID string, req *domain.UpdateClientRequest, userID *string) (*domain.Client, error) {
	client, err := s.GetClient(tenantID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Schedule != nil {
		if err := scheduling.Validate(*req.Schedule); err != nil {
			return nil, err
		}
	}

	if err := s.clientRepo.UpdateClient(tenantID, req); err != nil {
		return nil, err
	}

	if req.Schedule != nil {
		nextRunAt := scheduling.NextRun(*req.Schedule, time.Now())
		if err := s.clientRepo.UpdateNextRunAt(tenantID, client.ID, nextRunAt); err != nil {
			return nil, err
		}
	}

	s.appendAudit(tenantID, userID, domain.AuditActionUpdateClient, client.ID, nil)

	return s.GetClient(tenantID, req.ID)
}

// DisconnectClient remove o vínculo com o QuickBooks e apaga o token da
// empresa. Snapshots e drafts históricos são preservados.
func (s *Service) DisconnectClient(tenantID, clientID string, userID *string) error {
	client, err := s.GetClient(tenantID, clientID)
	if err != nil {
		return err
	}

	if client.RealmID != nil {
		if err := s.tokenRepo.DeleteToken(tenantID, domain.TokenProviderQBO, *client.RealmID); err != nil {
			return err
		}
	}

	if err := s.clientRepo.DisconnectClient(tenantID, clientID); err != nil {
		return err
	}

	s.appendAudit(tenantID, userID, domain.AuditActionDisconnectClient, clientID, nil)

	return nil
}

func (s *Service) GetTenant(tenantID string) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.GetTenantByID(tenantID)
	if err != nil {
		return nil, err
	}

	if tenant == nil {
		return nil, ErrTenantNotFound
	}

	return tenant, nil
}

// UpdateTenant altera as configurações de composição do escritório. Campos
// nulos na requisição preservam o valor atual.
func (s *Service) UpdateTenant(tenantID string, req *domain.UpdateTenantRequest, userID *string) (*domain.Tenant, error) {
	if _, err := s.GetTenant(tenantID); err != nil {
		return nil, err
	}

	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.UpdateTenant(tenantID, req); err != nil {
		return nil, err
	}

	if err := s.auditRepo.Append(&domain.AuditEntry{
		TenantID:   tenantID,
		UserID:     userID,
		Action:     domain.AuditActionUpdateTenant,
		EntityType: "tenant",
		EntityID:   tenantID,
	}); err != nil {
		logrus.WithField("tenant_id", tenantID).Warn("Erro ao gravar auditoria: ", err)
	}

	return s.GetTenant(tenantID)
}

func (s *Service) appendAudit(tenantID string, userID *string, action, entityID string, metadata map[string]any) {
	if err := s.auditRepo.Append(&domain.AuditEntry{
		TenantID:   tenantID,
		UserID:     userID,
		Action:     action,
		EntityType: "client",
		EntityID:   entityID,
		Metadata:   metadata,
	}); err != nil {
		logrus.WithFields(logrus.Fields{
			"tenant_id": tenantID,
			"action":    action,
		}).Warn("Erro ao gravar auditoria: ", err)
	}
}
