package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/connecting"
	"github.com/vfg2006/ledger-pulse-api/pkg/apiErrors"
	"github.com/vfg2006/ledger-pulse-api/pkg/middleware"
)

// ConnectQBO retorna a URL de autorização do QuickBooks para o tenant logado
func ConnectQBO(service connecting.Connector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		// TODO assinar o state com o segredo da aplicação em vez de usar o
		// tenant ID puro
		authURL := service.QBOAuthURL(userClaims.TenantID)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"auth_url": authURL,
		})
	}
}

// QBOCallback recebe o redirecionamento do QuickBooks após o consentimento.
// O state carrega o tenant que iniciou o fluxo.
func QBOCallback(service connecting.Connector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		code := query.Get("code")
		realmID := query.Get("realmId")
		state := query.Get("state")

		if code == "" || realmID == "" || state == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetros code, realmId e state são obrigatórios", nil)
			return
		}

		client, err := service.HandleQBOCallback(state, realmID, code, nil)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"realm_id": realmID,
				"error":    err.Error(),
			}).Error("Erro no callback do QuickBooks")
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao conectar empresa QuickBooks", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Empresa conectada com sucesso",
			"client":  client,
		})
	}
}

// ConnectGmail retorna a URL de autorização do Gmail para o tenant logado
func ConnectGmail(service connecting.Connector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		authURL := service.GmailAuthURL(userClaims.TenantID)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"auth_url": authURL,
		})
	}
}

// GmailCallback recebe o redirecionamento do Google após o consentimento
func GmailCallback(service connecting.Connector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		code := query.Get("code")
		state := query.Get("state")

		if code == "" || state == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetros code e state são obrigatórios", nil)
			return
		}

		if err := service.HandleGmailCallback(state, code, nil); err != nil {
			logrus.WithField("error", err.Error()).Error("Erro no callback do Gmail")
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao conectar caixa de e-mail", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Caixa de e-mail conectada com sucesso",
		})
	}
}

// ConnectionStatus resume o estado das integrações do tenant logado
func ConnectionStatus(service connecting.Connector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		status, err := service.Status(userClaims.TenantID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao consultar status das integrações", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}
