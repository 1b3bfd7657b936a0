package snapshotting

import (
	"fmt"

	"github.com/vfg2006/ledger-pulse-api/internal/domain"
	"github.com/vfg2006/ledger-pulse-api/pkg/utils"
)

// Limiares de significância. Métricas escalares mudam com qualquer um dos
// dois critérios; agregados usam apenas o delta absoluto.
const (
	scalarDeltaThreshold    = 500.0
	scalarPercentThreshold  = 10.0
	aggregateDeltaThreshold = 3.0
)

// Diff compara a captura atual com a anterior e produz a lista de mudanças
// significativas, na ordem fixa esperada pelo compositor. Na primeira
// execução (sem captura anterior) retorna IsFirstRun e lista vazia.
// Comparações com qualquer lado nulo são puladas: desconhecido não é zero.
func Diff(current, previous *domain.Snapshot) domain.DiffResult {
	if previous == nil {
		return domain.DiffResult{IsFirstRun: true, Changes: []domain.ChangeRecord{}}
	}

	changes := make([]domain.ChangeRecord, 0)

	scalars := []struct {
		label    string
		current  *float64
		previous *float64
	}{
		{"Cash balance", current.Cash, previous.Cash},
		{"Accounts receivable", current.AccountsReceivable, previous.AccountsReceivable},
		{"Accounts payable", current.AccountsPayable, previous.AccountsPayable},
		{"Net income (last 30 days)", current.NetIncomeLast30Days, previous.NetIncomeLast30Days},
	}

	for _, metric := range scalars {
		if change := diffScalar(metric.label, metric.current, metric.previous); change != nil {
			changes = append(changes, *change)
		}
	}

	aggregates := []struct {
		label    string
		current  *float64
		previous *float64
		currency bool
	}{
		{"Open invoices (count)", countOf(current.InvoicesOpen), countOf(previous.InvoicesOpen), false},
		{"Open bills (count)", countOf(current.BillsOpen), countOf(previous.BillsOpen), false},
		{"Open invoices (balance)", totalOf(current.InvoicesOpen), totalOf(previous.InvoicesOpen), true},
		{"Open bills (balance)", totalOf(current.BillsOpen), totalOf(previous.BillsOpen), true},
	}

	for _, metric := range aggregates {
		if change := diffAggregate(metric.label, metric.current, metric.previous, metric.currency); change != nil {
			changes = append(changes, *change)
		}
	}

	return domain.DiffResult{IsFirstRun: false, Changes: changes}
}

func diffScalar(label string, current, previous *float64) *domain.ChangeRecord {
	if current == nil || previous == nil {
		return nil
	}

	delta := *current - *previous

	var percent *float64
	if *previous != 0 {
		p := delta / *previous * 100
		percent = &p
	}

	significant := abs(delta) >= scalarDeltaThreshold ||
		(percent != nil && abs(*percent) >= scalarPercentThreshold)
	if !significant {
		return nil
	}

	return &domain.ChangeRecord{
		Label:    label,
		Current:  utils.FormatCurrency(*current),
		Previous: utils.FormatCurrency(*previous),
		Delta:    utils.FormatCurrency(delta),
		Percent:  formatPercent(percent),
	}
}

// diffAggregate aplica apenas o limiar absoluto: contagens e somas de itens
// em aberto oscilam pouco e o critério percentual geraria ruído
func diffAggregate(label string, current, previous *float64, currency bool) *domain.ChangeRecord {
	if current == nil || previous == nil {
		return nil
	}

	delta := *current - *previous
	if abs(delta) < aggregateDeltaThreshold {
		return nil
	}

	format := func(value float64) string {
		if currency {
			return utils.FormatCurrency(value)
		}
		return utils.FormatInteger(int(value))
	}

	return &domain.ChangeRecord{
		Label:    label,
		Current:  format(*current),
		Previous: format(*previous),
		Delta:    format(delta),
		Percent:  domain.PercentNotApplicable,
	}
}

func countOf(summary *domain.OpenItemSummary) *float64 {
	if summary == nil {
		return nil
	}
	count := float64(summary.RecentCount)
	return &count
}

func totalOf(summary *domain.OpenItemSummary) *float64 {
	if summary == nil {
		return nil
	}
	total := summary.OpenTotal
	return &total
}

func formatPercent(percent *float64) string {
	if percent == nil {
		return domain.PercentNotApplicable
	}
	return fmt.Sprintf("%.1f%%", *percent)
}

func abs(value float64) float64 {
	if value < 0 {
		return -value
	}
	return value
}
