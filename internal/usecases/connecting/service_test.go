package connecting

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	gmailmocks "github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/gmail/mocks"
	qbodomain "github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/qbo/domain"
	qbomocks "github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/qbo/mocks"
	repomocks "github.com/vfg2006/ledger-pulse-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
	"go.uber.org/mock/gomock"
)

const (
	testTenantID = "tenant-01"
	testRealmID  = "realm-123"
)

func newTestService(ctrl *gomock.Controller) (Connector, *qbomocks.MockQBOIntegrator, *gmailmocks.MockMailboxIntegrator, *repomocks.MockClientRepository, *repomocks.MockAuditRepository) {
	qboIntegrator := qbomocks.NewMockQBOIntegrator(ctrl)
	mailboxIntegrator := gmailmocks.NewMockMailboxIntegrator(ctrl)
	clientRepo := repomocks.NewMockClientRepository(ctrl)
	auditRepo := repomocks.NewMockAuditRepository(ctrl)

	service := NewService(qboIntegrator, mailboxIntegrator, clientRepo, auditRepo)

	return service, qboIntegrator, mailboxIntegrator, clientRepo, auditRepo
}

func TestHandleQBOCallback_CriaClienteNovo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, qboIntegrator, _, clientRepo, auditRepo := newTestService(ctrl)

	qboIntegrator.EXPECT().ExchangeCode(testTenantID, testRealmID, "auth-code").Return(nil)
	clientRepo.EXPECT().GetClientByRealmID(testTenantID, testRealmID).Return(nil, nil)
	qboIntegrator.EXPECT().GetCompanyInfo(testTenantID, testRealmID).Return(&qbodomain.CompanyInfo{
		CompanyName: "Acme Corp",
		Email:       &qbodomain.EmailAddress{Address: "finance@acme.com"},
	}, nil)
	clientRepo.EXPECT().
		CreateClient(gomock.Any()).
		DoAndReturn(func(client *domain.Client) (*domain.Client, error) {
			assert.NotEmpty(t, client.ID)
			assert.Equal(t, testTenantID, client.TenantID)
			assert.Equal(t, testRealmID, *client.RealmID)
			assert.Equal(t, "Acme Corp", client.Name)
			assert.Equal(t, "finance@acme.com", client.ClientEmail)
			assert.Equal(t, "quickbooks", client.Source)
			assert.Equal(t, domain.DefaultSchedule(), client.Schedule)
			assert.NotNil(t, client.NextRunAt)
			assert.True(t, client.NextRunAt.After(time.Now()))
			return client, nil
		})
	auditRepo.EXPECT().
		Append(gomock.Any()).
		DoAndReturn(func(entry *domain.AuditEntry) error {
			assert.Equal(t, domain.AuditActionConnectQBO, entry.Action)
			assert.Equal(t, testRealmID, entry.Metadata["realm_id"])
			return nil
		})

	client, err := service.HandleQBOCallback(testTenantID, testRealmID, "auth-code", nil)

	assert.NoError(t, err)
	assert.NotNil(t, client)
}

func TestHandleQBOCallback_RealmJaConectadoReaproveitaOCliente(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, qboIntegrator, _, clientRepo, auditRepo := newTestService(ctrl)

	realmID := testRealmID
	existing := &domain.Client{ID: "client-01", TenantID: testTenantID, RealmID: &realmID}

	qboIntegrator.EXPECT().ExchangeCode(testTenantID, testRealmID, "auth-code").Return(nil)
	clientRepo.EXPECT().GetClientByRealmID(testTenantID, testRealmID).Return(existing, nil)
	auditRepo.EXPECT().Append(gomock.Any()).Return(nil)
	// nenhum CreateClient esperado

	client, err := service.HandleQBOCallback(testTenantID, testRealmID, "auth-code", nil)

	assert.NoError(t, err)
	assert.Equal(t, existing, client)
}

func TestHandleQBOCallback_FalhaNosDadosCadastraisNaoImpedeAConexao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, qboIntegrator, _, clientRepo, auditRepo := newTestService(ctrl)

	qboIntegrator.EXPECT().ExchangeCode(testTenantID, testRealmID, "auth-code").Return(nil)
	clientRepo.EXPECT().GetClientByRealmID(testTenantID, testRealmID).Return(nil, nil)
	qboIntegrator.EXPECT().GetCompanyInfo(testTenantID, testRealmID).Return(nil, errors.New("401 Unauthorized"))
	clientRepo.EXPECT().
		CreateClient(gomock.Any()).
		DoAndReturn(func(client *domain.Client) (*domain.Client, error) {
			assert.Equal(t, "New Client", client.Name)
			assert.Empty(t, client.ClientEmail)
			return client, nil
		})
	auditRepo.EXPECT().Append(gomock.Any()).Return(nil)

	client, err := service.HandleQBOCallback(testTenantID, testRealmID, "auth-code", nil)

	assert.NoError(t, err)
	assert.NotNil(t, client)
}

func TestHandleQBOCallback_FalhaNaTrocaDoCodigo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, qboIntegrator, _, _, _ := newTestService(ctrl)

	qboIntegrator.EXPECT().
		ExchangeCode(testTenantID, testRealmID, "auth-code").
		Return(errors.New("invalid_grant"))

	client, err := service.HandleQBOCallback(testTenantID, testRealmID, "auth-code", nil)

	assert.Nil(t, client)
	assert.Error(t, err)
}

func TestHandleGmailCallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, mailboxIntegrator, _, auditRepo := newTestService(ctrl)
	userID := "user-01"

	mailboxIntegrator.EXPECT().ExchangeCode(testTenantID, "auth-code").Return(nil)
	auditRepo.EXPECT().
		Append(gomock.Any()).
		DoAndReturn(func(entry *domain.AuditEntry) error {
			assert.Equal(t, domain.AuditActionConnectGmail, entry.Action)
			assert.Equal(t, &userID, entry.UserID)
			return nil
		})

	err := service.HandleGmailCallback(testTenantID, "auth-code", &userID)

	assert.NoError(t, err)
}

func TestStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, mailboxIntegrator, clientRepo, _ := newTestService(ctrl)

	clientRepo.EXPECT().ListConnectedClients(testTenantID).Return([]*domain.Client{{ID: "client-01"}, {ID: "client-02"}}, nil)
	mailboxIntegrator.EXPECT().HasToken(testTenantID).Return(true, nil)

	status, err := service.Status(testTenantID)

	assert.NoError(t, err)
	assert.Equal(t, 2, status.QBOConnectedClients)
	assert.True(t, status.GmailConnected)
}
