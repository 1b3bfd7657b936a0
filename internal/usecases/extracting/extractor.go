package extracting

import (
	"strconv"
	"strings"

	qbodomain "github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/qbo/domain"
)

// FindValue percorre a árvore do relatório em profundidade (pré-ordem)
// procurando uma linha cujo rótulo contenha algum dos matchers. O rótulo é a
// primeira coluna do Header do nó; se não casar, a mesma checagem é feita no
// Summary; por fim a busca desce para os filhos antes de seguir para o
// próximo irmão. O valor retornado é o parse numérico da última coluna da
// linha que casou. Retorna nil quando nenhum nó casa ou quando o valor da
// linha casada não tem parse: relatórios malformados degradam a métrica
// para "desconhecida", nunca quebram a extração.
//
// Os matchers devem estar em minúsculas; a comparação é por substring,
// insensível a caixa no rótulo. O conjunto de sinônimos pequeno absorve as
// variações de texto entre versões e locales do relatório.
func FindValue(nodes []qbodomain.ReportNode, matchers []string) *float64 {
	for i := range nodes {
		node := &nodes[i]

		if value, ok := matchRow(node.Header, matchers); ok {
			return value
		}

		if value, ok := matchRow(node.Summary, matchers); ok {
			return value
		}

		if node.Rows != nil && len(node.Rows.Row) > 0 {
			if nested := FindValue(node.Rows.Row, matchers); nested != nil {
				return nested
			}
		}
	}

	return nil
}

// matchRow verifica se o rótulo da linha contém algum matcher. O segundo
// retorno indica que houve casamento, mesmo quando o valor não tem parse.
func matchRow(row *qbodomain.ReportRow, matchers []string) (*float64, bool) {
	if row == nil || len(row.ColData) == 0 {
		return nil, false
	}

	label := strings.ToLower(row.ColData[0].Value)
	for _, matcher := range matchers {
		if strings.Contains(label, matcher) {
			return NumberOrNull(row.ColData[len(row.ColData)-1].Value), true
		}
	}

	return nil, false
}

// SumLastColumn lê o valor da última coluna de uma linha já conhecida pelo
// chamador, aplicando a mesma regra de parse-ou-nulo de FindValue
func SumLastColumn(row *qbodomain.ReportRow) *float64 {
	if row == nil || len(row.ColData) == 0 {
		return nil
	}
	return NumberOrNull(row.ColData[len(row.ColData)-1].Value)
}

// NumberOrNull converte o texto de uma célula em número. Separadores de
// milhar são removidos antes do parse. Valores vazios ou malformados
// resultam em nil, nunca em erro.
func NumberOrNull(value string) *float64 {
	trimmed := strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	if trimmed == "" {
		return nil
	}

	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}

	return &parsed
}
