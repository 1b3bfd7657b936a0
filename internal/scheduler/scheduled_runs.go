package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/repository"
	"github.com/vfg2006/ledger-pulse-api/internal/config"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/running"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/scheduling"
)

// ScheduledRunsConfig representa a configuração do agendador de execuções
type ScheduledRunsConfig struct {
	CronSchedule      string
	MaxConcurrentJobs int
	Enabled           bool
}

// ScheduledRunsService dispara, a cada tick do cron, o pipeline para os
// clientes cujo próximo disparo venceu
type ScheduledRunsService struct {
	scheduler          *gocron.Scheduler
	config             ScheduledRunsConfig
	clientRepo         repository.ClientRepository
	auditRepo          repository.AuditRepository
	orchestrator       running.Orchestrator
	syncRunning        bool
	syncMutex          sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastRunClientCount int
}

// NewScheduledRunsService cria uma nova instância do agendador de execuções
func NewScheduledRunsService(
	clientRepo repository.ClientRepository,
	auditRepo repository.AuditRepository,
	orchestrator running.Orchestrator,
	appConfig *config.Config,
) *ScheduledRunsService {
	runsConfig := ScheduledRunsConfig{
		CronSchedule:      appConfig.ScheduledRuns.CronSchedule,
		MaxConcurrentJobs: appConfig.ScheduledRuns.MaxConcurrentJobs,
		Enabled:           appConfig.ScheduledRuns.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       runsConfig.CronSchedule,
		"max_concurrent_jobs": runsConfig.MaxConcurrentJobs,
		"enabled":             runsConfig.Enabled,
	}).Info("Configuração do agendador de execuções carregada")

	return &ScheduledRunsService{
		scheduler:    scheduler,
		config:       runsConfig,
		clientRepo:   clientRepo,
		auditRepo:    auditRepo,
		orchestrator: orchestrator,
		syncRunning:  false,
	}
}

// Start inicia o agendador
func (s *ScheduledRunsService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Execuções agendadas desabilitadas por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de execuções")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runDueClients()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar execuções: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de execuções")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualRun dispara o ciclo fora do horário do cron
func (s *ScheduledRunsService) TriggerManualRun() error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		return fmt.Errorf("ciclo de execuções já em andamento")
	}
	s.syncMutex.Unlock()

	go s.runDueClients()
	return nil
}

// GetStatus retorna o estado corrente do agendador
func (s *ScheduledRunsService) GetStatus() map[string]interface{} {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]interface{}{
		"enabled":               s.config.Enabled,
		"cron_schedule":         s.config.CronSchedule,
		"running":               s.syncRunning,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_run_client_count": s.lastRunClientCount,
	}
}

// runDueClients busca os clientes devidos e processa um lote por tenant
func (s *ScheduledRunsService) runDueClients() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Ciclo de execuções já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastRunStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando ciclo de execuções agendadas")

	dueClients, err := s.clientRepo.ListDueClients(startTime)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar clientes devidos")
		return
	}

	// O filtro do banco é um pré-corte; a decisão final de elegibilidade é
	// reavaliada aqui por cliente
	due := make([]*domain.Client, 0, len(dueClients))
	for _, client := range dueClients {
		if scheduling.IsDue(client.Schedule, client.NextRunAt, startTime) {
			due = append(due, client)
		}
	}

	s.syncMutex.Lock()
	s.lastRunClientCount = len(due)
	s.syncMutex.Unlock()

	if len(due) == 0 {
		logrus.Info("Nenhum cliente devido neste ciclo")
		s.syncMutex.Lock()
		s.lastRunCompletedAt = time.Now()
		s.syncMutex.Unlock()
		return
	}

	byTenant := make(map[string][]*domain.Client)
	for _, client := range due {
		byTenant[client.TenantID] = append(byTenant[client.TenantID], client)
	}

	totalDrafts := 0
	for tenantID, clients := range byTenant {
		results := s.orchestrator.RunForClients(tenantID, clients, true)

		drafts := 0
		for _, result := range results {
			if result.Completed() {
				drafts++
			}
		}
		totalDrafts += drafts

		if err := s.auditRepo.Append(&domain.AuditEntry{
			TenantID:   tenantID,
			Action:     domain.AuditActionRunScheduled,
			EntityType: "run",
			EntityID:   tenantID,
			Metadata: map[string]any{
				"clients": len(clients),
				"drafts":  drafts,
			},
		}); err != nil {
			logrus.WithField("tenant_id", tenantID).Warn("Erro ao gravar auditoria do ciclo: ", err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"clients":  len(due),
		"tenants":  len(byTenant),
		"drafts":   totalDrafts,
	}).Info("Ciclo de execuções agendadas concluído")

	s.syncMutex.Lock()
	s.lastRunCompletedAt = time.Now()
	s.syncMutex.Unlock()
}
