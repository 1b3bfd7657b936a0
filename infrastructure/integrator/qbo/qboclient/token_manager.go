package qboclient

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/repository"
	"github.com/vfg2006/ledger-pulse-api/internal/config"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
)

const tokenURL = "https://oauth.platform.intuit.com/oauth2/v1/tokens/bearer"

// TokenManager gerencia os tokens OAuth do QuickBooks por tenant e realm.
// A renovação é serializada pelo mutex para evitar dois refreshes simultâneos
// consumindo o mesmo refresh token.
type TokenManager struct {
	cfg               *config.Config
	tokenRepo         repository.TokenRepository
	httpClient        *http.Client
	TokenRefreshMutex sync.Mutex
}

// NewTokenManager cria uma nova instância do gerenciador de tokens
func NewTokenManager(cfg *config.Config, tokenRepo repository.TokenRepository) *TokenManager {
	return &TokenManager{
		cfg:       cfg,
		tokenRepo: tokenRepo,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// ExchangeCode troca o código de autorização por tokens e os persiste
func (tm *TokenManager) ExchangeCode(tenantID, realmID, code string) error {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", tm.cfg.QBO.RedirectURI)

	token, err := tm.requestToken(form)
	if err != nil {
		return fmt.Errorf("erro ao trocar código de autorização: %w", err)
	}

	if err := tm.tokenRepo.SaveToken(tenantID, domain.TokenProviderQBO, realmID, token); err != nil {
		return fmt.Errorf("erro ao persistir token do QuickBooks: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"realm_id":  realmID,
	}).Info("Token do QuickBooks obtido e persistido com sucesso")

	return nil
}

// GetAccessToken retorna um access token válido, renovando quando o atual
// está a menos de um minuto de expirar
func (tm *TokenManager) GetAccessToken(tenantID, realmID string) (string, error) {
	tm.TokenRefreshMutex.Lock()
	defer tm.TokenRefreshMutex.Unlock()

	existing, err := tm.tokenRepo.GetToken(tenantID, domain.TokenProviderQBO, realmID)
	if err != nil {
		return "", err
	}

	if existing == nil {
		return "", fmt.Errorf("nenhum token do QuickBooks para o realm %s", realmID)
	}

	if !existing.NeedsRefresh(time.Now()) {
		return existing.AccessToken, nil
	}

	logrus.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"realm_id":  realmID,
	}).Info("Token do QuickBooks expirando, renovando")

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", existing.RefreshToken)

	refreshed, err := tm.requestToken(form)
	if err != nil {
		return "", fmt.Errorf("erro ao renovar token do QuickBooks: %w", err)
	}

	if err := tm.tokenRepo.SaveToken(tenantID, domain.TokenProviderQBO, realmID, refreshed); err != nil {
		return "", fmt.Errorf("erro ao persistir token renovado: %w", err)
	}

	return refreshed.AccessToken, nil
}

// HasToken indica se o tenant possui token persistido para o realm
func (tm *TokenManager) HasToken(tenantID, realmID string) (bool, error) {
	return tm.tokenRepo.HasToken(tenantID, domain.TokenProviderQBO, realmID)
}

func (tm *TokenManager) requestToken(form url.Values) (*domain.OAuthToken, error) {
	req, err := http.NewRequest(http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	basic := base64.StdEncoding.EncodeToString(
		[]byte(tm.cfg.QBO.ClientID + ":" + tm.cfg.QBO.ClientSecret),
	)
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := tm.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("requisição de token falhou com status %s: %s", resp.Status, string(body))
	}

	var payload tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return &domain.OAuthToken{
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second),
	}, nil
}
