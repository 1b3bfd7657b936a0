package snapshotting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
)

func snapshotWith(cash, receivable, payable, netIncome *float64) *domain.Snapshot {
	return &domain.Snapshot{
		Cash:                cash,
		AccountsReceivable:  receivable,
		AccountsPayable:     payable,
		NetIncomeLast30Days: netIncome,
	}
}

func TestDiff_PrimeiraExecucao(t *testing.T) {
	result := Diff(snapshotWith(floatPtr(1000), nil, nil, nil), nil)

	assert.True(t, result.IsFirstRun)
	assert.Empty(t, result.Changes)
	assert.NotNil(t, result.Changes)
}

func TestDiff_Escalares(t *testing.T) {
	tests := []struct {
		name     string
		current  *float64
		previous *float64
		expected *domain.ChangeRecord
	}{
		{
			name:     "Snapshots idênticos não geram mudança",
			current:  floatPtr(1000),
			previous: floatPtr(1000),
			expected: nil,
		},
		{
			name:     "Delta e percentual acima dos limiares",
			current:  floatPtr(1600),
			previous: floatPtr(1000),
			expected: &domain.ChangeRecord{
				Label:    "Cash balance",
				Current:  "$1,600",
				Previous: "$1,000",
				Delta:    "$600",
				Percent:  "60.0%",
			},
		},
		{
			name:     "Variação pequena abaixo dos dois limiares",
			current:  floatPtr(1040),
			previous: floatPtr(1000),
			expected: nil,
		},
		{
			name:     "Delta abaixo de 500 mas percentual atinge 10",
			current:  floatPtr(1100),
			previous: floatPtr(1000),
			expected: &domain.ChangeRecord{
				Label:    "Cash balance",
				Current:  "$1,100",
				Previous: "$1,000",
				Delta:    "$100",
				Percent:  "10.0%",
			},
		},
		{
			name:     "Anterior zero com delta significativo não tem percentual",
			current:  floatPtr(600),
			previous: floatPtr(0),
			expected: &domain.ChangeRecord{
				Label:    "Cash balance",
				Current:  "$600",
				Previous: "$0",
				Delta:    "$600",
				Percent:  "n/a",
			},
		},
		{
			name:     "Anterior zero com delta pequeno não gera mudança",
			current:  floatPtr(300),
			previous: floatPtr(0),
			expected: nil,
		},
		{
			name:     "Queda significativa formata delta negativo",
			current:  floatPtr(500),
			previous: floatPtr(1000),
			expected: &domain.ChangeRecord{
				Label:    "Cash balance",
				Current:  "$500",
				Previous: "$1,000",
				Delta:    "-$500",
				Percent:  "-50.0%",
			},
		},
		{
			name:     "Métrica ausente em um dos lados é pulada",
			current:  nil,
			previous: floatPtr(1000),
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := snapshotWith(tt.current, nil, nil, nil)
			previous := snapshotWith(tt.previous, nil, nil, nil)

			result := Diff(current, previous)

			assert.False(t, result.IsFirstRun)
			if tt.expected == nil {
				assert.Empty(t, result.Changes)
				return
			}

			assert.Len(t, result.Changes, 1)
			assert.Equal(t, *tt.expected, result.Changes[0])
		})
	}
}

func TestDiff_Agregados(t *testing.T) {
	tests := []struct {
		name     string
		current  *domain.OpenItemSummary
		previous *domain.OpenItemSummary
		expected []domain.ChangeRecord
	}{
		{
			name:     "Contagem varia três ou mais",
			current:  &domain.OpenItemSummary{RecentCount: 8, OpenTotal: 100},
			previous: &domain.OpenItemSummary{RecentCount: 5, OpenTotal: 100},
			expected: []domain.ChangeRecord{
				{
					Label:    "Open invoices (count)",
					Current:  "8",
					Previous: "5",
					Delta:    "3",
					Percent:  "n/a",
				},
			},
		},
		{
			name:     "Variação de dois fica abaixo do limiar",
			current:  &domain.OpenItemSummary{RecentCount: 7, OpenTotal: 100},
			previous: &domain.OpenItemSummary{RecentCount: 5, OpenTotal: 100},
			expected: nil,
		},
		{
			name:     "Saldo em aberto usa formatação monetária",
			current:  &domain.OpenItemSummary{RecentCount: 5, OpenTotal: 1250},
			previous: &domain.OpenItemSummary{RecentCount: 5, OpenTotal: 1000},
			expected: []domain.ChangeRecord{
				{
					Label:    "Open invoices (balance)",
					Current:  "$1,250",
					Previous: "$1,000",
					Delta:    "$250",
					Percent:  "n/a",
				},
			},
		},
		{
			name:     "Resumo ausente em um dos lados é pulado",
			current:  nil,
			previous: &domain.OpenItemSummary{RecentCount: 5, OpenTotal: 100},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := &domain.Snapshot{InvoicesOpen: tt.current}
			previous := &domain.Snapshot{InvoicesOpen: tt.previous}

			result := Diff(current, previous)

			assert.Equal(t, len(tt.expected), len(result.Changes))
			for i, expected := range tt.expected {
				assert.Equal(t, expected, result.Changes[i])
			}
		})
	}
}

func TestDiff_OrdemFixaDasMudancas(t *testing.T) {
	current := &domain.Snapshot{
		Cash:                floatPtr(2000),
		AccountsReceivable:  floatPtr(5000),
		AccountsPayable:     floatPtr(3000),
		NetIncomeLast30Days: floatPtr(4000),
		InvoicesOpen:        &domain.OpenItemSummary{RecentCount: 10, OpenTotal: 9000},
		BillsOpen:           &domain.OpenItemSummary{RecentCount: 6, OpenTotal: 7000},
	}
	previous := &domain.Snapshot{
		Cash:                floatPtr(1000),
		AccountsReceivable:  floatPtr(4000),
		AccountsPayable:     floatPtr(2000),
		NetIncomeLast30Days: floatPtr(3000),
		InvoicesOpen:        &domain.OpenItemSummary{RecentCount: 5, OpenTotal: 8000},
		BillsOpen:           &domain.OpenItemSummary{RecentCount: 2, OpenTotal: 6000},
	}

	result := Diff(current, previous)

	labels := make([]string, 0, len(result.Changes))
	for _, change := range result.Changes {
		labels = append(labels, change.Label)
	}

	assert.Equal(t, []string{
		"Cash balance",
		"Accounts receivable",
		"Accounts payable",
		"Net income (last 30 days)",
		"Open invoices (count)",
		"Open bills (count)",
		"Open invoices (balance)",
		"Open bills (balance)",
	}, labels)
}

func floatPtr(v float64) *float64 {
	return &v
}
