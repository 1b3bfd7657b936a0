package connecting

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/gmail"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/qbo"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/repository"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/scheduling"
	"github.com/vfg2006/ledger-pulse-api/pkg/utils"
)

// ConnectionStatus resume o estado das integrações do tenant
type ConnectionStatus struct {
	QBOConnectedClients int  `json:"qbo_connected_clients"`
	GmailConnected      bool `json:"gmail_connected"`
}

// Connector conduz os fluxos OAuth das duas integrações. O callback do
// QuickBooks também materializa o cliente no cadastro do tenant.
type Connector interface {
	QBOAuthURL(state string) string
	HandleQBOCallback(tenantID, realmID, code string, userID *string) (*domain.Client, error)
	GmailAuthURL(state string) string
	HandleGmailCallback(tenantID, code string, userID *string) error
	Status(tenantID string) (*ConnectionStatus, error)
}

type Service struct {
	qboIntegrator     qbo.QBOIntegrator
	mailboxIntegrator gmail.MailboxIntegrator
	clientRepo        repository.ClientRepository
	auditRepo         repository.AuditRepository
}

func NewService(
	qboIntegrator qbo.QBOIntegrator,
	mailboxIntegrator gmail.MailboxIntegrator,
	clientRepo repository.ClientRepository,
	auditRepo repository.AuditRepository,
) Connector {
	return &Service{
		qboIntegrator:     qboIntegrator,
		mailboxIntegrator: mailboxIntegrator,
		clientRepo:        clientRepo,
		auditRepo:         auditRepo,
	}
}

func (s *Service) QBOAuthURL(state string) string {
	return s.qboIntegrator.GetAuthURL(state)
}

// HandleQBOCallback troca o código por tokens e cria ou reconecta o cliente
// dono do realm. Clientes novos nascem com o schedule mensal default e o
// próximo disparo já calculado.
func (s *Service) HandleQBOCallback(tenantID, realmID, code string, userID *string) (*domain.Client, error) {
	if err := s.qboIntegrator.ExchangeCode(tenantID, realmID, code); err != nil {
		return nil, err
	}

	existing, err := s.clientRepo.GetClientByRealmID(tenantID, realmID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		s.appendAudit(tenantID, userID, domain.AuditActionConnectQBO, existing.ID, map[string]any{"realm_id": realmID})
		return existing, nil
	}

	// Os dados cadastrais preenchem nome e e-mail iniciais; falha aqui não
	// impede a conexão
	name := "New Client"
	email := ""
	if info, err := s.qboIntegrator.GetCompanyInfo(tenantID, realmID); err == nil {
		name = info.DisplayName()
		email = info.EmailOrEmpty()
	} else {
		logrus.WithFields(logrus.Fields{
			"tenant_id": tenantID,
			"realm_id":  realmID,
		}).Warn("Erro ao buscar dados cadastrais da empresa: ", err)
	}

	clientID, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	schedule := domain.DefaultSchedule()
	client := &domain.Client{
		ID:          clientID,
		TenantID:    tenantID,
		RealmID:     &realmID,
		Name:        name,
		ClientEmail: email,
		Tags:        []string{},
		Schedule:    schedule,
		NextRunAt:   scheduling.NextRun(schedule, time.Now()),
		Source:      "quickbooks",
	}

	if _, err := s.clientRepo.CreateClient(client); err != nil {
		return nil, err
	}

	s.appendAudit(tenantID, userID, domain.AuditActionConnectQBO, client.ID, map[string]any{"realm_id": realmID})

	logrus.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"client_id": client.ID,
		"realm_id":  realmID,
	}).Info("Empresa QuickBooks conectada")

	return client, nil
}

func (s *Service) GmailAuthURL(state string) string {
	return s.mailboxIntegrator.GetAuthURL(state)
}

func (s *Service) HandleGmailCallback(tenantID, code string, userID *string) error {
	if err := s.mailboxIntegrator.ExchangeCode(tenantID, code); err != nil {
		return err
	}

	s.appendAudit(tenantID, userID, domain.AuditActionConnectGmail, tenantID, nil)

	return nil
}

func (s *Service) Status(tenantID string) (*ConnectionStatus, error) {
	connected, err := s.clientRepo.ListConnectedClients(tenantID)
	if err != nil {
		return nil, err
	}

	gmailConnected, err := s.mailboxIntegrator.HasToken(tenantID)
	if err != nil {
		return nil, err
	}

	return &ConnectionStatus{
		QBOConnectedClients: len(connected),
		GmailConnected:      gmailConnected,
	}, nil
}

func (s *Service) appendAudit(tenantID string, userID *string, action, entityID string, metadata map[string]any) {
	if err := s.auditRepo.Append(&domain.AuditEntry{
		TenantID:   tenantID,
		UserID:     userID,
		Action:     action,
		EntityType: "connection",
		EntityID:   entityID,
		Metadata:   metadata,
	}); err != nil {
		logrus.WithFields(logrus.Fields{
			"tenant_id": tenantID,
			"action":    action,
		}).Warn("Erro ao gravar auditoria: ", err)
	}
}
