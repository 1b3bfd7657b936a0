package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/drafting"
	"github.com/vfg2006/ledger-pulse-api/pkg/apiErrors"
	"github.com/vfg2006/ledger-pulse-api/pkg/middleware"
)

// ListDrafts retorna os rascunhos do tenant, com filtro opcional por status
func ListDrafts(service drafting.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var status *domain.DraftStatus
		if raw := r.URL.Query().Get("status"); raw != "" {
			parsed := domain.DraftStatus(raw)
			if parsed != domain.DraftStatusPending && parsed != domain.DraftStatusApproved {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Status inválido. Valores aceitos: pending, approved", nil)
				return
			}
			status = &parsed
		}

		drafts, err := service.ListDrafts(userClaims.TenantID, status)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar rascunhos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"drafts": drafts,
		})
	}
}

// ApproveDraft cria o rascunho na caixa do Gmail e marca a aprovação
func ApproveDraft(service drafting.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ApproveDraft")

		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		draftID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if draftID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do rascunho não fornecido", nil)
			return
		}

		draft, err := service.ApproveDraft(userClaims.TenantID, draftID, &userClaims.UserID)
		if err != nil {
			handleDraftError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(draft)
	}
}

// handleDraftError mapeia os erros da aprovação para a resposta da API
func handleDraftError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, drafting.ErrDraftNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Rascunho não encontrado", nil)

	case errors.Is(err, drafting.ErrDraftAlreadyProcessed):
		apiErrors.WriteError(w, apiErrors.ErrAlreadyProcessed, "Rascunho já aprovado", nil)

	case errors.Is(err, drafting.ErrMailboxNotConnected):
		apiErrors.WriteError(w, apiErrors.ErrMailboxNotConnected, "Conecte uma caixa de e-mail antes de aprovar rascunhos", nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao criar rascunho no Gmail", nil)
	}
}
