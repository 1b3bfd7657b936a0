package qboclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	qbodomain "github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/qbo/domain"
)

// GetReport busca um relatório hierárquico (BalanceSheet, ProfitAndLoss)
// para a empresa conectada
func (c *QBOClient) GetReport(tenantID, realmID, reportName string, params map[string]string) (*qbodomain.ReportTree, error) {
	token, err := c.TokenManager.GetAccessToken(tenantID, realmID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	// Construir a URL da requisição
	endpoint, err := url.Parse(c.apiBase())
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, "v3", "company", realmID, "reports", reportName)

	query := endpoint.Query()
	for key, value := range params {
		query.Set(key, value)
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requisição de relatório %s falhou com status: %s", reportName, resp.Status)
	}

	var tree qbodomain.ReportTree
	if err := json.NewDecoder(resp.Body).Decode(&tree); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return &tree, nil
}
