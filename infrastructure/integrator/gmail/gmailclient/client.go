package gmailclient

import (
	"context"
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

const (
	tokenURL  = "https://oauth2.googleapis.com/token"
	draftsURL = "https://gmail.googleapis.com/gmail/v1/users/me/drafts"
)

type Client interface {
	ExchangeCode(tenantID, code string) error
	CreateDraft(tenantID, to, subject, body string) (string, error)
	HasToken(tenantID string) (bool, error)
}

type GmailClient struct {
	httpClient        *http.Client
	cfg               *config.Config
	tokenRepo         repository.TokenRepository
	tokenRefreshMutex sync.Mutex
}

func NewClient(cfg *config.Config, tokenRepo repository.TokenRepository) Client {
	return &GmailClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cfg:       cfg,
		tokenRepo: tokenRepo,
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// ExchangeCode troca o código de autorização por tokens e os persiste.
// O Gmail usa um token por tenant: a caixa de e-mail é do escritório, não
// do cliente final.
func (c *GmailClient) ExchangeCode(tenantID, code string) error {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", c.cfg.Google.ClientID)
	form.Set("client_secret", c.cfg.Google.ClientSecret)
	form.Set("redirect_uri", c.cfg.Google.RedirectURI)

	token, err := c.requestToken(form)
	if err != nil {
		return fmt.Errorf("erro ao trocar código de autorização do Gmail: %w", err)
	}

	if err := c.tokenRepo.SaveToken(tenantID, domain.TokenProviderGmail, "", token); err != nil {
		return fmt.Errorf("erro ao persistir token do Gmail: %w", err)
	}

	logrus.WithField("tenant_id", tenantID).Info("Token do Gmail obtido e persistido com sucesso")
	return nil
}

func (c *GmailClient) HasToken(tenantID string) (bool, error) {
	return c.tokenRepo.HasToken(tenantID, domain.TokenProviderGmail, "")
}

// CreateDraft cria um rascunho na caixa do tenant e retorna o ID atribuído
// pelo Gmail
func (c *GmailClient) CreateDraft(tenantID, to, subject, body string) (string, error) {
	token, err := c.getAccessToken(tenantID)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	payload := map[string]any{
		"message": map[string]string{
			"raw": rawMessage(to, subject, body),
		},
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar o rascunho: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, draftsURL, strings.NewReader(string(encoded)))
	if err != nil {
		return "", fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("criação de rascunho falhou com status %s: %s", resp.Status, string(raw))
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return created.ID, nil
}

// getAccessToken retorna um access token válido, renovando quando necessário
func (c *GmailClient) getAccessToken(tenantID string) (string, error) {
	c.tokenRefreshMutex.Lock()
	defer c.tokenRefreshMutex.Unlock()

	existing, err := c.tokenRepo.GetToken(tenantID, domain.TokenProviderGmail, "")
	if err != nil {
		return "", err
	}

	if existing == nil {
		return "", fmt.Errorf("nenhum token do Gmail para o tenant %s", tenantID)
	}

	if !existing.NeedsRefresh(time.Now()) {
		return existing.AccessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", existing.RefreshToken)
	form.Set("client_id", c.cfg.Google.ClientID)
	form.Set("client_secret", c.cfg.Google.ClientSecret)

	refreshed, err := c.requestToken(form)
	if err != nil {
		return "", fmt.Errorf("erro ao renovar token do Gmail: %w", err)
	}

	// O Google só devolve refresh_token na primeira troca
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = existing.RefreshToken
	}

	if err := c.tokenRepo.SaveToken(tenantID, domain.TokenProviderGmail, "", refreshed); err != nil {
		return "", fmt.Errorf("erro ao persistir token renovado: %w", err)
	}

	return refreshed.AccessToken, nil
}

func (c *GmailClient) requestToken(form url.Values) (*domain.OAuthToken, error) {
	req, err := http.NewRequest(http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("requisição de token falhou com status %s: %s", resp.Status, string(raw))
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

// rawMessage monta a mensagem RFC 2822 em base64url, como o Gmail exige
func rawMessage(to, subject, body string) string {
	message := strings.Join([]string{
		"To: " + to,
		"Subject: " + subject,
		`Content-Type: text/plain; charset="UTF-8"`,
		"Content-Transfer-Encoding: 7bit",
		"",
		body,
	}, "\n")

	return base64.RawURLEncoding.EncodeToString([]byte(message))
}
