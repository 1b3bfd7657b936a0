package domain

// Tipos de relatório suportados pela API do QuickBooks
const (
	ReportBalanceSheet  = "BalanceSheet"
	ReportProfitAndLoss = "ProfitAndLoss"
)

// ReportCell é uma célula de uma linha de relatório
type ReportCell struct {
	Value string `json:"value"`
}

// ReportRow é uma linha ordenada de células. A primeira coluna normalmente
// carrega o rótulo e a última o valor.
type ReportRow struct {
	ColData []ReportCell `json:"ColData"`
}

// ReportNode é um nó da árvore hierárquica de um relatório financeiro.
// Um nó é uma linha de dados (ColData preenchido) ou uma seção com
// Header/Summary e filhos aninhados em Rows. Todos os campos são opcionais:
// relatórios são formatados pelo fornecedor e variam por versão e locale.
type ReportNode struct {
	Header  *ReportRow      `json:"Header,omitempty"`
	Summary *ReportRow      `json:"Summary,omitempty"`
	ColData []ReportCell    `json:"ColData,omitempty"`
	Rows    *ReportNodeList `json:"Rows,omitempty"`
	Type    string          `json:"type,omitempty"`
	Group   string          `json:"group,omitempty"`
}

// ReportNodeList envolve a lista de nós filhos, espelhando o formato da API
type ReportNodeList struct {
	Row []ReportNode `json:"Row"`
}

// ReportTree é o corpo de um relatório retornado pela API
type ReportTree struct {
	Rows *ReportNodeList `json:"Rows"`
}

// RootRows retorna as linhas de primeiro nível do relatório, tolerando
// árvores nulas ou sem linhas
func (t *ReportTree) RootRows() []ReportNode {
	if t == nil || t.Rows == nil {
		return nil
	}
	return t.Rows.Row
}
