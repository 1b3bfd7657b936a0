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
)

// RetentionConfig representa a configuração da limpeza de dados antigos
type RetentionConfig struct {
	CronSchedule string
	SnapshotDays int
	DraftDays    int
	Enabled      bool
}

// RetentionService apaga periodicamente snapshots antigos e rascunhos já
// aprovados que passaram do prazo de retenção
type RetentionService struct {
	scheduler       *gocron.Scheduler
	config          RetentionConfig
	snapshotRepo    repository.SnapshotRepository
	draftRepo       repository.DraftRepository
	cleanupRunning  bool
	cleanupMutex    sync.Mutex
	lastCleanupAt   time.Time
	lastDeleteCount int64
}

// NewRetentionService cria uma nova instância do serviço de retenção
func NewRetentionService(
	snapshotRepo repository.SnapshotRepository,
	draftRepo repository.DraftRepository,
	appConfig *config.Config,
) *RetentionService {
	retentionConfig := RetentionConfig{
		CronSchedule: appConfig.Retention.CronSchedule,
		SnapshotDays: appConfig.Retention.SnapshotDays,
		DraftDays:    appConfig.Retention.DraftDays,
		Enabled:      appConfig.Retention.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": retentionConfig.CronSchedule,
		"snapshot_days": retentionConfig.SnapshotDays,
		"draft_days":    retentionConfig.DraftDays,
		"enabled":       retentionConfig.Enabled,
	}).Info("Configuração da retenção de dados carregada")

	return &RetentionService{
		scheduler:    scheduler,
		config:       retentionConfig,
		snapshotRepo: snapshotRepo,
		draftRepo:    draftRepo,
	}
}

// Start inicia o agendador
func (s *RetentionService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Retenção de dados desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de retenção de dados")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runCleanup()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar retenção de dados: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de retenção de dados")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualCleanup dispara a limpeza fora do horário do cron
func (s *RetentionService) TriggerManualCleanup() error {
	s.cleanupMutex.Lock()
	if s.cleanupRunning {
		s.cleanupMutex.Unlock()
		return fmt.Errorf("limpeza já em andamento")
	}
	s.cleanupMutex.Unlock()

	go s.runCleanup()
	return nil
}

// GetStatus retorna o estado corrente da retenção
func (s *RetentionService) GetStatus() map[string]interface{} {
	s.cleanupMutex.Lock()
	defer s.cleanupMutex.Unlock()

	return map[string]interface{}{
		"enabled":           s.config.Enabled,
		"cron_schedule":     s.config.CronSchedule,
		"running":           s.cleanupRunning,
		"last_cleanup_at":   s.lastCleanupAt,
		"last_delete_count": s.lastDeleteCount,
	}
}

func (s *RetentionService) runCleanup() {
	s.cleanupMutex.Lock()
	if s.cleanupRunning {
		s.cleanupMutex.Unlock()
		logrus.Info("Limpeza de dados já em andamento, ignorando")
		return
	}
	s.cleanupRunning = true
	s.cleanupMutex.Unlock()

	startTime := time.Now()

	defer func() {
		s.cleanupMutex.Lock()
		s.cleanupRunning = false
		s.cleanupMutex.Unlock()
	}()

	logrus.Info("Iniciando limpeza de dados antigos")

	snapshotCutoff := startTime.AddDate(0, 0, -s.config.SnapshotDays)
	snapshotsDeleted, err := s.snapshotRepo.DeleteOlderThan(snapshotCutoff)
	if err != nil {
		logrus.WithError(err).Error("Erro ao apagar snapshots antigos")
		return
	}

	draftCutoff := startTime.AddDate(0, 0, -s.config.DraftDays)
	draftsDeleted, err := s.draftRepo.DeleteOlderThan(draftCutoff, domain.DraftStatusApproved)
	if err != nil {
		logrus.WithError(err).Error("Erro ao apagar rascunhos antigos")
		return
	}

	s.cleanupMutex.Lock()
	s.lastCleanupAt = time.Now()
	s.lastDeleteCount = snapshotsDeleted + draftsDeleted
	s.cleanupMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"duration":          time.Since(startTime).String(),
		"snapshots_deleted": snapshotsDeleted,
		"drafts_deleted":    draftsDeleted,
	}).Info("Limpeza de dados antigos concluída")
}
