package domain

import (
	"encoding/json"
)

// Transaction é um lançamento retornado por uma consulta (fatura ou conta a
// pagar). Balance chega como número ou string dependendo da versão da API,
// por isso o json.Number.
type Transaction struct {
	ID      string      `json:"Id"`
	TxnDate string      `json:"TxnDate"`
	Balance json.Number `json:"Balance"`
}

// BalanceOrZero retorna o saldo em aberto do lançamento. Saldos sem parse
// contribuem com zero, o lançamento não é descartado.
func (t Transaction) BalanceOrZero() float64 {
	value, err := t.Balance.Float64()
	if err != nil {
		return 0
	}
	return value
}

// QueryResponse agrupa os lançamentos de uma consulta por tipo de entidade
type QueryResponse struct {
	Invoice []Transaction `json:"Invoice"`
	Bill    []Transaction `json:"Bill"`
}

// QueryResult é o envelope da resposta do endpoint de consulta
type QueryResult struct {
	QueryResponse QueryResponse `json:"QueryResponse"`
}

// CompanyInfo são os dados cadastrais da empresa conectada
type CompanyInfo struct {
	CompanyName string        `json:"CompanyName"`
	LegalName   string        `json:"LegalName"`
	Email       *EmailAddress `json:"Email"`
}

type EmailAddress struct {
	Address string `json:"Address"`
}

// CompanyInfoResult é o envelope da resposta do endpoint companyinfo
type CompanyInfoResult struct {
	CompanyInfo CompanyInfo `json:"CompanyInfo"`
}

// DisplayName resolve o melhor nome disponível para exibição
func (c CompanyInfo) DisplayName() string {
	if c.CompanyName != "" {
		return c.CompanyName
	}
	if c.LegalName != "" {
		return c.LegalName
	}
	return "New Client"
}

// EmailOrEmpty retorna o e-mail cadastral, quando houver
func (c CompanyInfo) EmailOrEmpty() string {
	if c.Email == nil {
		return ""
	}
	return c.Email.Address
}
