package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ledger-pulse-api/internal/scheduler"
	"github.com/vfg2006/ledger-pulse-api/pkg/apiErrors"
	"github.com/vfg2006/ledger-pulse-api/pkg/middleware"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeRuns      = "runs"
	CronJobTypeRetention = "retention"
	CronJobTypeAll       = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	ScheduledRunsService *scheduler.ScheduledRunsService
	RetentionService     *scheduler.RetentionService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Verificar permissões - apenas administradores podem executar cron jobs
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok || !userClaims.IsAdmin() {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem executar cron jobs", nil)
			return
		}

		// Obter o tipo de cron job da URL
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeRuns:
			if services.ScheduledRunsService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de execuções agendadas não disponível", nil)
				return
			}
			if err := services.ScheduledRunsService.TriggerManualRun(); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrAlreadyProcessed, err.Error(), nil)
				return
			}

		case CronJobTypeRetention:
			if services.RetentionService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de retenção não disponível", nil)
				return
			}
			if err := services.RetentionService.TriggerManualCleanup(); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrAlreadyProcessed, err.Error(), nil)
				return
			}

		case CronJobTypeAll:
			if services.ScheduledRunsService != nil {
				if err := services.ScheduledRunsService.TriggerManualRun(); err != nil {
					logrus.Warn("Execuções agendadas não disparadas: ", err)
				}
			}
			if services.RetentionService != nil {
				if err := services.RetentionService.TriggerManualCleanup(); err != nil {
					logrus.Warn("Limpeza de dados não disparada: ", err)
				}
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: runs, retention, all", nil)
			return
		}

		// Responder com sucesso
		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok || !userClaims.IsAdmin() {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem verificar status de cron jobs", nil)
			return
		}

		status := map[string]any{
			"runs":      services.ScheduledRunsService.GetStatus(),
			"retention": services.RetentionService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
