package managing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	repomocks "github.com/vfg2006/ledger-pulse-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/scheduling"
	"go.uber.org/mock/gomock"
)

const (
	testTenantID = "tenant-01"
	testClientID = "client-01"
)

func newTestService(ctrl *gomock.Controller) (ClientManager, *repomocks.MockClientRepository, *repomocks.MockTenantRepository, *repomocks.MockTokenRepository, *repomocks.MockAuditRepository) {
	clientRepo := repomocks.NewMockClientRepository(ctrl)
	tenantRepo := repomocks.NewMockTenantRepository(ctrl)
	tokenRepo := repomocks.NewMockTokenRepository(ctrl)
	auditRepo := repomocks.NewMockAuditRepository(ctrl)

	service := NewService(clientRepo, tenantRepo, tokenRepo, auditRepo)

	return service, clientRepo, tenantRepo, tokenRepo, auditRepo
}

func storedClient() *domain.Client {
	realmID := "realm-123"
	return &domain.Client{
		ID:       testClientID,
		TenantID: testTenantID,
		RealmID:  &realmID,
		Name:     "Acme Corp",
		Schedule: domain.DefaultSchedule(),
	}
}

func TestGetClient_Inexistente(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, clientRepo, _, _, _ := newTestService(ctrl)

	clientRepo.EXPECT().GetClientByID(testTenantID, testClientID).Return(nil, nil)

	client, err := service.GetClient(testTenantID, testClientID)

	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestUpdateClient_ComScheduleRecalculaProximoDisparo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, clientRepo, _, _, auditRepo := newTestService(ctrl)

	req := &domain.UpdateClientRequest{
		ID: testClientID,
		Schedule: &domain.Schedule{
			Frequency: domain.ScheduleFrequencyWeekly,
			DayOfWeek: 1,
			Hour:      9,
		},
	}

	clientRepo.EXPECT().GetClientByID(testTenantID, testClientID).Return(storedClient(), nil).Times(2)
	clientRepo.EXPECT().UpdateClient(testTenantID, req).Return(nil)
	clientRepo.EXPECT().
		UpdateNextRunAt(testTenantID, testClientID, gomock.Any()).
		DoAndReturn(func(tenantID, clientID string, nextRunAt *time.Time) error {
			assert.NotNil(t, nextRunAt)
			assert.True(t, nextRunAt.After(time.Now()))
			assert.Equal(t, time.Monday, nextRunAt.Weekday())
			assert.Equal(t, 9, nextRunAt.Hour())
			return nil
		})
	auditRepo.EXPECT().
		Append(gomock.Any()).
		DoAndReturn(func(entry *domain.AuditEntry) error {
			assert.Equal(t, domain.AuditActionUpdateClient, entry.Action)
			return nil
		})

	client, err := service.UpdateClient(testTenantID, req, nil)

	assert.NoError(t, err)
	assert.NotNil(t, client)
}

func TestUpdateClient_ScheduleInvalidoNaoPersiste(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, clientRepo, _, _, _ := newTestService(ctrl)

	req := &domain.UpdateClientRequest{
		ID: testClientID,
		Schedule: &domain.Schedule{
			Frequency:  domain.ScheduleFrequencyMonthly,
			DayOfMonth: 31,
			Hour:       9,
		},
	}

	clientRepo.EXPECT().GetClientByID(testTenantID, testClientID).Return(storedClient(), nil)
	// nenhum UpdateClient esperado

	client, err := service.UpdateClient(testTenantID, req, nil)

	assert.Nil(t, client)

	var configErr *scheduling.ScheduleConfigError
	assert.ErrorAs(t, err, &configErr)
}

func TestUpdateClient_SemScheduleNaoTocaOAgendamento(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, clientRepo, _, _, auditRepo := newTestService(ctrl)

	name := "Acme Corporation"
	req := &domain.UpdateClientRequest{
		ID:   testClientID,
		Name: &name,
	}

	clientRepo.EXPECT().GetClientByID(testTenantID, testClientID).Return(storedClient(), nil).Times(2)
	clientRepo.EXPECT().UpdateClient(testTenantID, req).Return(nil)
	auditRepo.EXPECT().Append(gomock.Any()).Return(nil)

	client, err := service.UpdateClient(testTenantID, req, nil)

	assert.NoError(t, err)
	assert.NotNil(t, client)
}

func TestDisconnectClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, clientRepo, _, tokenRepo, auditRepo := newTestService(ctrl)
	userID := "user-01"

	clientRepo.EXPECT().GetClientByID(testTenantID, testClientID).Return(storedClient(), nil)
	tokenRepo.EXPECT().DeleteToken(testTenantID, domain.TokenProviderQBO, "realm-123").Return(nil)
	clientRepo.EXPECT().DisconnectClient(testTenantID, testClientID).Return(nil)
	auditRepo.EXPECT().
		Append(gomock.Any()).
		DoAndReturn(func(entry *domain.AuditEntry) error {
			assert.Equal(t, domain.AuditActionDisconnectClient, entry.Action)
			assert.Equal(t, &userID, entry.UserID)
			return nil
		})

	err := service.DisconnectClient(testTenantID, testClientID, &userID)

	assert.NoError(t, err)
}

func TestDisconnectClient_SemRealmNaoApagaToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, clientRepo, _, _, auditRepo := newTestService(ctrl)

	client := storedClient()
	client.RealmID = nil

	clientRepo.EXPECT().GetClientByID(testTenantID, testClientID).Return(client, nil)
	clientRepo.EXPECT().DisconnectClient(testTenantID, testClientID).Return(nil)
	auditRepo.EXPECT().Append(gomock.Any()).Return(nil)

	err := service.DisconnectClient(testTenantID, testClientID, nil)

	assert.NoError(t, err)
}

func TestUpdateTenant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, tenantRepo, _, auditRepo := newTestService(ctrl)

	mode := domain.ComposerModeAlways
	minChangeCount := 4
	req := &domain.UpdateTenantRequest{
		ComposerMode:   &mode,
		MinChangeCount: &minChangeCount,
	}

	current := &domain.Tenant{ID: testTenantID, ComposerMode: domain.ComposerModeMeaningful}
	updated := &domain.Tenant{ID: testTenantID, ComposerMode: mode, MinChangeCount: minChangeCount}

	gomock.InOrder(
		tenantRepo.EXPECT().GetTenantByID(testTenantID).Return(current, nil),
		tenantRepo.EXPECT().UpdateTenant(testTenantID, req).Return(nil),
		tenantRepo.EXPECT().GetTenantByID(testTenantID).Return(updated, nil),
	)
	auditRepo.EXPECT().
		Append(gomock.Any()).
		DoAndReturn(func(entry *domain.AuditEntry) error {
			assert.Equal(t, domain.AuditActionUpdateTenant, entry.Action)
			return nil
		})

	tenant, err := service.UpdateTenant(testTenantID, req, nil)

	assert.NoError(t, err)
	assert.Equal(t, updated, tenant)
}

func TestUpdateTenant_ModoInvalido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, tenantRepo, _, _ := newTestService(ctrl)

	mode := domain.ComposerMode("sometimes")
	req := &domain.UpdateTenantRequest{ComposerMode: &mode}

	tenantRepo.EXPECT().GetTenantByID(testTenantID).Return(&domain.Tenant{ID: testTenantID}, nil)

	tenant, err := service.UpdateTenant(testTenantID, req, nil)

	assert.Nil(t, tenant)
	assert.Error(t, err)
}

func TestUpdateTenant_TenantInexistente(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, tenantRepo, _, _ := newTestService(ctrl)

	tenantRepo.EXPECT().GetTenantByID(testTenantID).Return(nil, nil)

	tenant, err := service.UpdateTenant(testTenantID, &domain.UpdateTenantRequest{}, nil)

	assert.Nil(t, tenant)
	assert.ErrorIs(t, err, ErrTenantNotFound)
}
