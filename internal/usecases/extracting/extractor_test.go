package extracting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	qbodomain "github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/qbo/domain"
)

func row(label, value string) *qbodomain.ReportRow {
	return &qbodomain.ReportRow{
		ColData: []qbodomain.ReportCell{
			{Value: label},
			{Value: value},
		},
	}
}

func TestFindValue(t *testing.T) {
	tests := []struct {
		name     string
		nodes    []qbodomain.ReportNode
		matchers []string
		expected *float64
	}{
		{
			name: "Valor em linha de primeiro nível",
			nodes: []qbodomain.ReportNode{
				{Header: row("Cash and cash equivalents", "12,500.00")},
			},
			matchers: []string{"cash"},
			expected: float64Ptr(12500),
		},
		{
			name: "Valor aninhado em três níveis",
			nodes: []qbodomain.ReportNode{
				{
					Header: row("ASSETS", ""),
					Rows: &qbodomain.ReportNodeList{
						Row: []qbodomain.ReportNode{
							{
								Header: row("Current Assets", ""),
								Rows: &qbodomain.ReportNodeList{
									Row: []qbodomain.ReportNode{
										{Summary: row("Total Accounts Receivable", "3,200.50")},
									},
								},
							},
						},
					},
				},
			},
			matchers: []string{"accounts receivable"},
			expected: float64Ptr(3200.50),
		},
		{
			name: "Casamento no Summary quando o Header não casa",
			nodes: []qbodomain.ReportNode{
				{
					Header:  row("Liabilities", ""),
					Summary: row("Total Accounts Payable", "890.00"),
				},
			},
			matchers: []string{"accounts payable"},
			expected: float64Ptr(890),
		},
		{
			name: "Nenhum nó casa",
			nodes: []qbodomain.ReportNode{
				{Header: row("Equity", "5,000.00")},
			},
			matchers: []string{"net income"},
			expected: nil,
		},
		{
			name: "Linha casada com valor sem parse degrada para nulo",
			nodes: []qbodomain.ReportNode{
				{Header: row("Net Income", "--")},
			},
			matchers: []string{"net income"},
			expected: nil,
		},
		{
			name: "Rótulo insensível a caixa",
			nodes: []qbodomain.ReportNode{
				{Header: row("NET INCOME", "1,000.00")},
			},
			matchers: []string{"net income"},
			expected: float64Ptr(1000),
		},
		{
			name:     "Árvore vazia",
			nodes:    nil,
			matchers: []string{"cash"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindValue(tt.nodes, tt.matchers)

			if tt.expected == nil {
				assert.Nil(t, result)
				return
			}

			assert.NotNil(t, result)
			assert.InDelta(t, *tt.expected, *result, 0.001)
		})
	}
}

func TestFindValue_PrimeiroCasamentoVence(t *testing.T) {
	nodes := []qbodomain.ReportNode{
		{Header: row("Cash and cash equivalents", "100.00")},
		{Header: row("Petty cash", "999.00")},
	}

	result := FindValue(nodes, []string{"cash"})

	assert.NotNil(t, result)
	assert.Equal(t, 100.0, *result)
}

func TestNumberOrNull(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected *float64
	}{
		{"Número com separador de milhar", "1,234.56", float64Ptr(1234.56)},
		{"Número negativo", "-500.00", float64Ptr(-500)},
		{"Valor vazio", "", nil},
		{"Valor com espaços", "  42  ", float64Ptr(42)},
		{"Valor malformado", "abc", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NumberOrNull(tt.value)

			if tt.expected == nil {
				assert.Nil(t, result)
				return
			}

			assert.NotNil(t, result)
			assert.InDelta(t, *tt.expected, *result, 0.001)
		})
	}
}

func TestSumLastColumn(t *testing.T) {
	assert.Nil(t, SumLastColumn(nil))
	assert.Nil(t, SumLastColumn(&qbodomain.ReportRow{}))

	result := SumLastColumn(row("Total", "7,500.00"))
	assert.NotNil(t, result)
	assert.Equal(t, 7500.0, *result)
}

func float64Ptr(v float64) *float64 {
	return &v
}
