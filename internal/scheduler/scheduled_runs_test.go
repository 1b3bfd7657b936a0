package scheduler

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	repomocks "github.com/vfg2006/ledger-pulse-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ledger-pulse-api/internal/config"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
	runningmocks "github.com/vfg2006/ledger-pulse-api/internal/usecases/running/mocks"
	"go.uber.org/mock/gomock"
)

func testRunsConfig() *config.Config {
	return &config.Config{
		ScheduledRuns: config.ScheduledRuns{
			CronSchedule:      "0 * * * *",
			MaxConcurrentJobs: 3,
			Enabled:           true,
		},
	}
}

func dueClient(id, tenantID string) *domain.Client {
	realmID := "realm-" + id
	past := time.Now().Add(-time.Hour)
	return &domain.Client{
		ID:       id,
		TenantID: tenantID,
		RealmID:  &realmID,
		Schedule: domain.Schedule{
			Frequency: domain.ScheduleFrequencyWeekly,
			DayOfWeek: 1,
			Hour:      9,
		},
		NextRunAt: &past,
	}
}

func TestRunDueClients(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := repomocks.NewMockClientRepository(ctrl)
	auditRepo := repomocks.NewMockAuditRepository(ctrl)
	orchestrator := runningmocks.NewMockOrchestrator(ctrl)

	client := dueClient("client-01", "tenant-01")
	draftID := "draft-01"

	clientRepo.EXPECT().ListDueClients(gomock.Any()).Return([]*domain.Client{client}, nil)
	orchestrator.EXPECT().
		RunForClients("tenant-01", []*domain.Client{client}, true).
		Return([]domain.RunResult{{ClientID: "client-01", DraftID: &draftID, ChangeCount: 2}})
	auditRepo.EXPECT().
		Append(gomock.Any()).
		DoAndReturn(func(entry *domain.AuditEntry) error {
			assert.Equal(t, "tenant-01", entry.TenantID)
			assert.Equal(t, domain.AuditActionRunScheduled, entry.Action)
			assert.Equal(t, 1, entry.Metadata["clients"])
			assert.Equal(t, 1, entry.Metadata["drafts"])
			return nil
		})

	service := NewScheduledRunsService(clientRepo, auditRepo, orchestrator, testRunsConfig())

	service.runDueClients()

	status := service.GetStatus()
	assert.Equal(t, false, status["running"])
	assert.Equal(t, 1, status["last_run_client_count"])
}

func TestRunDueClients_ReavaliaElegibilidade(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := repomocks.NewMockClientRepository(ctrl)
	auditRepo := repomocks.NewMockAuditRepository(ctrl)
	orchestrator := runningmocks.NewMockOrchestrator(ctrl)

	// devolvido pelo banco mas com schedule desativado nesse meio tempo
	inactive := dueClient("client-01", "tenant-01")
	inactive.Schedule = domain.Schedule{Frequency: domain.ScheduleFrequencyNone}

	clientRepo.EXPECT().ListDueClients(gomock.Any()).Return([]*domain.Client{inactive}, nil)
	// nenhuma execução nem auditoria esperada

	service := NewScheduledRunsService(clientRepo, auditRepo, orchestrator, testRunsConfig())

	service.runDueClients()

	status := service.GetStatus()
	assert.Equal(t, 0, status["last_run_client_count"])
}

func TestRunDueClients_AgrupaPorTenant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := repomocks.NewMockClientRepository(ctrl)
	auditRepo := repomocks.NewMockAuditRepository(ctrl)
	orchestrator := runningmocks.NewMockOrchestrator(ctrl)

	clientA := dueClient("client-01", "tenant-a")
	clientB := dueClient("client-02", "tenant-b")

	clientRepo.EXPECT().ListDueClients(gomock.Any()).Return([]*domain.Client{clientA, clientB}, nil)
	orchestrator.EXPECT().
		RunForClients("tenant-a", []*domain.Client{clientA}, true).
		Return([]domain.RunResult{{ClientID: "client-01"}})
	orchestrator.EXPECT().
		RunForClients("tenant-b", []*domain.Client{clientB}, true).
		Return([]domain.RunResult{{ClientID: "client-02"}})
	auditRepo.EXPECT().Append(gomock.Any()).Return(nil).Times(2)

	service := NewScheduledRunsService(clientRepo, auditRepo, orchestrator, testRunsConfig())

	service.runDueClients()

	status := service.GetStatus()
	assert.Equal(t, 2, status["last_run_client_count"])
}

func TestRunDueClients_FalhaNaBuscaNaoDispara(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := repomocks.NewMockClientRepository(ctrl)
	auditRepo := repomocks.NewMockAuditRepository(ctrl)
	orchestrator := runningmocks.NewMockOrchestrator(ctrl)

	clientRepo.EXPECT().ListDueClients(gomock.Any()).Return(nil, errors.New("connection refused"))

	service := NewScheduledRunsService(clientRepo, auditRepo, orchestrator, testRunsConfig())

	service.runDueClients()

	status := service.GetStatus()
	assert.Equal(t, false, status["running"])
}

func TestGetStatus_ConcorrenteComOCiclo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := repomocks.NewMockClientRepository(ctrl)
	auditRepo := repomocks.NewMockAuditRepository(ctrl)
	orchestrator := runningmocks.NewMockOrchestrator(ctrl)

	client := dueClient("client-01", "tenant-01")

	clientRepo.EXPECT().ListDueClients(gomock.Any()).Return([]*domain.Client{client}, nil)
	orchestrator.EXPECT().
		RunForClients("tenant-01", []*domain.Client{client}, true).
		Return([]domain.RunResult{{ClientID: "client-01"}})
	auditRepo.EXPECT().Append(gomock.Any()).Return(nil)

	service := NewScheduledRunsService(clientRepo, auditRepo, orchestrator, testRunsConfig())

	// lê o status em paralelo ao ciclo; os campos de última execução
	// precisam ser visíveis sob o mesmo mutex que o ciclo usa para gravá-los
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			service.GetStatus()
		}
	}()

	service.runDueClients()
	<-done

	status := service.GetStatus()
	assert.Equal(t, false, status["running"])
	assert.Equal(t, 1, status["last_run_client_count"])
	assert.False(t, status["last_run_completed_at"].(time.Time).IsZero())
}

func TestTriggerManualRun_CicloJaEmAndamento(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := repomocks.NewMockClientRepository(ctrl)
	auditRepo := repomocks.NewMockAuditRepository(ctrl)
	orchestrator := runningmocks.NewMockOrchestrator(ctrl)

	service := NewScheduledRunsService(clientRepo, auditRepo, orchestrator, testRunsConfig())

	service.syncMutex.Lock()
	service.syncRunning = true
	service.syncMutex.Unlock()

	err := service.TriggerManualRun()

	assert.Error(t, err)
}
