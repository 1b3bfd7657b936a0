package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/managing"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/scheduling"
	"github.com/vfg2006/ledger-pulse-api/pkg/apiErrors"
	"github.com/vfg2006/ledger-pulse-api/pkg/middleware"
)

// ListClients retorna os clientes do escritório do usuário logado
func ListClients(service managing.ClientManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		clients, err := service.ListClients(userClaims.TenantID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar clientes", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"clients": clients,
		})
	}
}

func GetClient(service managing.ClientManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		clientID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if clientID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do cliente não fornecido", nil)
			return
		}

		client, err := service.GetClient(userClaims.TenantID, clientID)
		if err != nil {
			handleClientError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client)
	}
}

// UpdateClient aplica uma edição parcial ao cadastro do cliente. O schedule,
// quando presente, é validado e substituído por inteiro.
func UpdateClient(service managing.ClientManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		clientID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if clientID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do cliente não fornecido", nil)
			return
		}

		var req domain.UpdateClientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}
		req.ID = clientID

		client, err := service.UpdateClient(userClaims.TenantID, &req, &userClaims.UserID)
		if err != nil {
			handleClientError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client)
	}
}

// DisconnectClient desvincula a empresa QuickBooks do cliente e remove o token
func DisconnectClient(service managing.ClientManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		clientID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if clientID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do cliente não fornecido", nil)
			return
		}

		if err := service.DisconnectClient(userClaims.TenantID, clientID, &userClaims.UserID); err != nil {
			handleClientError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Cliente desconectado com sucesso",
		})
	}
}

// handleClientError mapeia os erros do cadastro de clientes para a resposta da API
func handleClientError(w http.ResponseWriter, err error) {
	var scheduleErr *scheduling.ScheduleConfigError

	switch {
	case errors.Is(err, managing.ErrClientNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Cliente não encontrado", nil)

	case errors.As(err, &scheduleErr):
		apiErrors.WriteError(w, apiErrors.ErrInvalidSchedule, scheduleErr.Error(), nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar cliente", nil)
	}
}
