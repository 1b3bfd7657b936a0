package domain

import (
	"time"
)

// OpenItemSummary agrega uma lista de lançamentos em aberto (faturas ou contas a pagar)
type OpenItemSummary struct {
	// RecentCount conta os lançamentos datados dos últimos 7 dias
	RecentCount int `json:"recent_count"`
	// OpenTotal soma os saldos em aberto; saldos sem parse contribuem com zero
	OpenTotal float64 `json:"open_total"`
}

// Snapshot é uma captura pontual das métricas financeiras de um cliente.
// Métricas escalares ausentes ficam nulas, pois ausência não é zero. Uma vez
// criado, o snapshot é imutável e vira a base de comparação da próxima execução.
type Snapshot struct {
	CapturedAt          time.Time        `json:"captured_at"`
	Cash                *float64         `json:"cash"`
	AccountsReceivable  *float64         `json:"accounts_receivable"`
	AccountsPayable     *float64         `json:"accounts_payable"`
	NetIncomeLast30Days *float64         `json:"net_income_last_30_days"`
	InvoicesOpen        *OpenItemSummary `json:"invoices_open"`
	BillsOpen           *OpenItemSummary `json:"bills_open"`
}
