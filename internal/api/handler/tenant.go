package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/managing"
	"github.com/vfg2006/ledger-pulse-api/pkg/apiErrors"
	"github.com/vfg2006/ledger-pulse-api/pkg/middleware"
)

// GetTenantSettings retorna as configurações do escritório do usuário logado
func GetTenantSettings(service managing.ClientManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		tenant, err := service.GetTenant(userClaims.TenantID)
		if err != nil {
			if errors.Is(err, managing.ErrTenantNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Tenant não encontrado", nil)
				return
			}
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao obter configurações", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(tenant)
	}
}

// UpdateTenantSettings altera a política de composição do escritório
func UpdateTenantSettings(service managing.ClientManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.UpdateTenantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		tenant, err := service.UpdateTenant(userClaims.TenantID, &req, &userClaims.UserID)
		if err != nil {
			if errors.Is(err, managing.ErrTenantNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Tenant não encontrado", nil)
				return
			}
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Configuração inválida", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(tenant)
	}
}
