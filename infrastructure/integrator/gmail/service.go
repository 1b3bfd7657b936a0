package gmail

import (
	"fmt"
	"net/url"

	"github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/gmail/gmailclient"
	"github.com/vfg2006/ledger-pulse-api/internal/config"
)

const authBaseURL = "https://accounts.google.com/o/oauth2/v2/auth"

// MailboxIntegrator é o contrato com a caixa de e-mail do tenant. Os
// rascunhos aprovados são criados aqui; o envio em si fica a cargo do
// usuário, dentro do Gmail.
type MailboxIntegrator interface {
	GetAuthURL(state string) string
	ExchangeCode(tenantID, code string) error
	CreateDraft(tenantID, to, subject, body string) (string, error)
	HasToken(tenantID string) (bool, error)
}

type GmailService struct {
	cfg    *config.Config
	Client gmailclient.Client
}

func New(cfg *config.Config, client gmailclient.Client) MailboxIntegrator {
	return &GmailService{
		cfg:    cfg,
		Client: client,
	}
}

// GetAuthURL monta a URL de autorização OAuth para conectar a caixa do tenant
func (s *GmailService) GetAuthURL(state string) string {
	params := url.Values{}
	params.Set("client_id", s.cfg.Google.ClientID)
	params.Set("redirect_uri", s.cfg.Google.RedirectURI)
	params.Set("response_type", "code")
	params.Set("scope", "https://www.googleapis.com/auth/gmail.compose")
	params.Set("access_type", "offline")
	params.Set("prompt", "consent")
	params.Set("state", state)

	return fmt.Sprintf("%s?%s", authBaseURL, params.Encode())
}

func (s *GmailService) ExchangeCode(tenantID, code string) error {
	return s.Client.ExchangeCode(tenantID, code)
}

func (s *GmailService) CreateDraft(tenantID, to, subject, body string) (string, error) {
	return s.Client.CreateDraft(tenantID, to, subject, body)
}

func (s *GmailService) HasToken(tenantID string) (bool, error) {
	return s.Client.HasToken(tenantID)
}
