package running

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/repository"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/drafting"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/scheduling"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/snapshotting"
	"github.com/vfg2006/ledger-pulse-api/pkg/utils"
)

// ErrClientNotFound indica que um dos IDs pedidos não existe no tenant
var ErrClientNotFound = errors.New("cliente não encontrado")

// Orchestrator sequencia o pipeline por cliente: captura, comparação,
// política de composição, persistência do draft e reagendamento
type Orchestrator interface {
	RunForClients(tenantID string, clients []*domain.Client, isScheduledRun bool) []domain.RunResult
	RunOnDemand(tenantID string, clientIDs []string, userID *string) ([]domain.RunResult, error)
}

type Service struct {
	builder           snapshotting.Builder
	composer          drafting.Composer
	snapshotRepo      repository.SnapshotRepository
	draftRepo         repository.DraftRepository
	clientRepo        repository.ClientRepository
	tenantRepo        repository.TenantRepository
	auditRepo         repository.AuditRepository
	maxConcurrentJobs int

	// Serializa execuções concorrentes do mesmo cliente: o par leitura do
	// snapshot anterior + gravação do novo não é transacional no banco
	clientLocks sync.Map
}

func NewService(
	builder snapshotting.Builder,
	composer drafting.Composer,
	snapshotRepo repository.SnapshotRepository,
	draftRepo repository.DraftRepository,
	clientRepo repository.ClientRepository,
	tenantRepo repository.TenantRepository,
	auditRepo repository.AuditRepository,
	maxConcurrentJobs int,
) Orchestrator {
	if maxConcurrentJobs < 1 {
		maxConcurrentJobs = 1
	}

	return &Service{
		builder:           builder,
		composer:          composer,
		snapshotRepo:      snapshotRepo,
		draftRepo:         draftRepo,
		clientRepo:        clientRepo,
		tenantRepo:        tenantRepo,
		auditRepo:         auditRepo,
		maxConcurrentJobs: maxConcurrentJobs,
	}
}

// RunOnDemand resolve a lista de clientes e processa o lote como execução
// sob demanda. Uma lista vazia significa todos os clientes conectados.
func (s *Service) RunOnDemand(tenantID string, clientIDs []string, userID *string) ([]domain.RunResult, error) {
	var clients []*domain.Client

	if len(clientIDs) == 0 {
		connected, err := s.clientRepo.ListConnectedClients(tenantID)
		if err != nil {
			return nil, fmt.Errorf("erro ao listar clientes conectados: %w", err)
		}
		clients = connected
	} else {
		for _, clientID := range clientIDs {
			client, err := s.clientRepo.GetClientByID(tenantID, clientID)
			if err != nil {
				return nil, fmt.Errorf("erro ao carregar cliente %s: %w", clientID, err)
			}
			if client == nil {
				return nil, fmt.Errorf("cliente %s: %w", clientID, ErrClientNotFound)
			}
			clients = append(clients, client)
		}
	}

	results := s.RunForClients(tenantID, clients, false)

	drafts := 0
	for _, result := range results {
		if result.Completed() {
			drafts++
		}
	}

	if err := s.auditRepo.Append(&domain.AuditEntry{
		TenantID:   tenantID,
		UserID:     userID,
		Action:     domain.AuditActionRunDrafts,
		EntityType: "run",
		EntityID:   tenantID,
		Metadata: map[string]any{
			"clients": len(clients),
			"drafts":  drafts,
		},
	}); err != nil {
		logrus.WithField("tenant_id", tenantID).Warn("Erro ao gravar auditoria da execução: ", err)
	}

	return results, nil
}

// RunForClients processa o lote com isolamento por cliente: a falha de um
// não impede os demais. O resultado preserva a ordem da lista de entrada.
func (s *Service) RunForClients(tenantID string, clients []*domain.Client, isScheduledRun bool) []domain.RunResult {
	startTime := time.Now()
	results := make([]domain.RunResult, len(clients))

	semaphore := make(chan struct{}, s.maxConcurrentJobs)
	var wg sync.WaitGroup

	for i, client := range clients {
		wg.Add(1)
		semaphore <- struct{}{} // Adquirir semáforo

		go func(index int, c *domain.Client) {
			defer func() {
				<-semaphore // Liberar semáforo
				wg.Done()
			}()

			results[index] = s.runForClient(tenantID, c, isScheduledRun)
		}(i, client)
	}

	wg.Wait()

	logrus.WithFields(logrus.Fields{
		"tenant_id":    tenantID,
		"clients":      len(clients),
		"is_scheduled": isScheduledRun,
		"duration":     time.Since(startTime).String(),
	}).Info("Lote de execuções concluído")

	return results
}

func (s *Service) runForClient(tenantID string, client *domain.Client, isScheduledRun bool) domain.RunResult {
	result := domain.RunResult{ClientID: client.ID}

	if !client.IsConnected() {
		reason := domain.SkipReasonNotConnected
		result.SkippedReason = &reason
		return result
	}

	unlock := s.lockClient(client.ID)
	defer unlock()

	previous, err := s.snapshotRepo.Latest(tenantID, client.ID)
	if err != nil {
		return s.failed(result, client, fmt.Errorf("erro ao carregar snapshot anterior: %w", err))
	}

	snapshot, err := s.builder.Build(tenantID, *client.RealmID, time.Now())
	if err != nil {
		return s.failed(result, client, err)
	}

	diff := snapshotting.Diff(snapshot, previous)
	result.ChangeCount = len(diff.Changes)

	// O snapshot é persistido incondicionalmente: mesmo sem mudanças ele
	// vira a base de comparação da próxima execução
	if err := s.snapshotRepo.Save(tenantID, client.ID, snapshot); err != nil {
		return s.failed(result, client, fmt.Errorf("erro ao persistir snapshot: %w", err))
	}

	switch {
	case diff.IsFirstRun:
		reason := domain.SkipReasonBaseline
		result.SkippedReason = &reason
	case len(diff.Changes) == 0:
		reason := domain.SkipReasonNoChanges
		result.SkippedReason = &reason
	default:
		draft, err := s.createDraft(tenantID, client, diff, snapshot, isScheduledRun)
		if err != nil {
			return s.failed(result, client, err)
		}
		result.DraftID = &draft.ID
	}

	s.reschedule(tenantID, client, isScheduledRun)

	logrus.WithFields(logrus.Fields{
		"tenant_id":    tenantID,
		"client_id":    client.ID,
		"change_count": result.ChangeCount,
		"draft_id":     result.DraftID,
		"skipped":      result.SkippedReason,
	}).Info("Execução do cliente concluída")

	return result
}

func (s *Service) createDraft(
	tenantID string,
	client *domain.Client,
	diff domain.DiffResult,
	snapshot *domain.Snapshot,
	isScheduledRun bool,
) (*domain.Draft, error) {
	tenant, err := s.tenantRepo.GetTenantByID(tenantID)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar tenant: %w", err)
	}

	mode, minChangeCount := drafting.PolicyForTenant(tenant)
	useNaturalLanguage := drafting.UseComposerLLM(mode, minChangeCount, len(diff.Changes), isScheduledRun)

	content := s.composer.Compose(client.Name, diff.Changes, snapshot, useNaturalLanguage)

	draftID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar ID do draft: %w", err)
	}

	draft := &domain.Draft{
		ID:          draftID,
		TenantID:    tenantID,
		ClientID:    client.ID,
		ClientName:  client.Name,
		ClientEmail: client.ClientEmail,
		Subject:     content.Subject,
		Body:        content.Body,
		ChangeCount: len(diff.Changes),
		Status:      domain.DraftStatusPending,
	}

	if _, err := s.draftRepo.CreateDraft(draft); err != nil {
		return nil, fmt.Errorf("erro ao persistir draft: %w", err)
	}

	return draft, nil
}

// reschedule recalcula o próximo disparo apenas para execuções agendadas de
// clientes com schedule ativo. Execuções sob demanda nunca tocam o agendamento.
func (s *Service) reschedule(tenantID string, client *domain.Client, isScheduledRun bool) {
	if !isScheduledRun || !client.Schedule.IsActive() {
		return
	}

	nextRunAt := scheduling.NextRun(client.Schedule, time.Now())
	if err := s.clientRepo.UpdateNextRunAt(tenantID, client.ID, nextRunAt); err != nil {
		logrus.WithFields(logrus.Fields{
			"tenant_id": tenantID,
			"client_id": client.ID,
			"error":     err.Error(),
		}).Error("Erro ao atualizar próximo disparo do cliente")
	}
}

func (s *Service) failed(result domain.RunResult, client *domain.Client, err error) domain.RunResult {
	message := err.Error()
	result.Error = &message

	logrus.WithFields(logrus.Fields{
		"client_id": client.ID,
		"error":     message,
	}).Error("Execução do cliente falhou")

	return result
}

// lockClient adquire o mutex do cliente, criando-o na primeira execução
func (s *Service) lockClient(clientID string) func() {
	value, _ := s.clientLocks.LoadOrStore(clientID, &sync.Mutex{})
	mutex := value.(*sync.Mutex)
	mutex.Lock()
	return mutex.Unlock
}
