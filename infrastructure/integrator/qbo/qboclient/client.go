package qboclient

import (
	"net/http"
	"time"

	qbodomain "github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/qbo/domain"
	"github.com/vfg2006/ledger-pulse-api/internal/config"
)

type Client interface {
	GetReport(tenantID, realmID, reportName string, params map[string]string) (*qbodomain.ReportTree, error)
	RunQuery(tenantID, realmID, query string) (*qbodomain.QueryResponse, error)
	GetCompanyInfo(tenantID, realmID string) (*qbodomain.CompanyInfo, error)
	ExchangeCode(tenantID, realmID, code string) error
	HasToken(tenantID, realmID string) (bool, error)
}

type QBOClient struct {
	httpClient   *http.Client
	cfg          *config.Config
	TokenManager *TokenManager
}

func NewClient(cfg *config.Config, tokenManager *TokenManager) Client {
	return &QBOClient{
		httpClient: &http.Client{
			Timeout: 45 * time.Second,
		},
		cfg:          cfg,
		TokenManager: tokenManager,
	}
}

// apiBase resolve a URL base da API conforme o ambiente configurado
func (c *QBOClient) apiBase() string {
	if c.cfg.QBO.Environment == "production" {
		return "https://quickbooks.api.intuit.com"
	}
	return "https://sandbox-quickbooks.api.intuit.com"
}

func (c *QBOClient) ExchangeCode(tenantID, realmID, code string) error {
	return c.TokenManager.ExchangeCode(tenantID, realmID, code)
}

func (c *QBOClient) HasToken(tenantID, realmID string) (bool, error) {
	return c.TokenManager.HasToken(tenantID, realmID)
}
