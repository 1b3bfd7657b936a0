package qbo

import (
	"fmt"
	"net/url"

	qbodomain "github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/qbo/domain"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/qbo/qboclient"
	"github.com/vfg2006/ledger-pulse-api/internal/config"
)

const authBaseURL = "https://appcenter.intuit.com/connect/oauth2"

// QBOIntegrator é o contrato com a plataforma contábil. O core consome
// apenas o formato dos dados retornados; transporte, OAuth e timeouts ficam
// do lado do colaborador.
type QBOIntegrator interface {
	FetchReport(tenantID, realmID, reportKind string, params map[string]string) (*qbodomain.ReportTree, error)
	FetchRecords(tenantID, realmID, query string) (*qbodomain.QueryResponse, error)
	GetCompanyInfo(tenantID, realmID string) (*qbodomain.CompanyInfo, error)
	GetAuthURL(state string) string
	ExchangeCode(tenantID, realmID, code string) error
	HasToken(tenantID, realmID string) (bool, error)
}

type QBOService struct {
	cfg    *config.Config
	Client qboclient.Client
}

func New(cfg *config.Config, client qboclient.Client) QBOIntegrator {
	return &QBOService{
		cfg:    cfg,
		Client: client,
	}
}

func (s *QBOService) FetchReport(tenantID, realmID, reportKind string, params map[string]string) (*qbodomain.ReportTree, error) {
	return s.Client.GetReport(tenantID, realmID, reportKind, params)
}

func (s *QBOService) FetchRecords(tenantID, realmID, query string) (*qbodomain.QueryResponse, error) {
	return s.Client.RunQuery(tenantID, realmID, query)
}

func (s *QBOService) GetCompanyInfo(tenantID, realmID string) (*qbodomain.CompanyInfo, error) {
	return s.Client.GetCompanyInfo(tenantID, realmID)
}

// GetAuthURL monta a URL de autorização OAuth para conectar uma empresa
func (s *QBOService) GetAuthURL(state string) string {
	params := url.Values{}
	params.Set("client_id", s.cfg.QBO.ClientID)
	params.Set("scope", "com.intuit.quickbooks.accounting")
	params.Set("redirect_uri", s.cfg.QBO.RedirectURI)
	params.Set("response_type", "code")
	params.Set("state", state)

	return fmt.Sprintf("%s?%s", authBaseURL, params.Encode())
}

func (s *QBOService) ExchangeCode(tenantID, realmID, code string) error {
	return s.Client.ExchangeCode(tenantID, realmID, code)
}

func (s *QBOService) HasToken(tenantID, realmID string) (bool, error) {
	return s.Client.HasToken(tenantID, realmID)
}
