package drafting

import (
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
)

// DefaultMinChangeCount é aplicado quando o tenant não configurou um mínimo
const DefaultMinChangeCount = 2

// UseComposerLLM decide se o compositor de linguagem natural entra na
// execução. Função pura, avaliada uma vez por cliente por execução.
func UseComposerLLM(mode domain.ComposerMode, minChangeCount, changeCount int, isScheduledRun bool) bool {
	switch mode {
	case domain.ComposerModeNever:
		return false
	case domain.ComposerModeAlways:
		return true
	case domain.ComposerModeScheduled:
		return isScheduledRun && changeCount >= minChangeCount
	default:
		// meaningful, o default: basta o volume de mudanças
		return changeCount >= minChangeCount
	}
}

// PolicyForTenant resolve modo e mínimo a partir da configuração do tenant,
// aplicando os defaults quando ausente
func PolicyForTenant(tenant *domain.Tenant) (domain.ComposerMode, int) {
	if tenant == nil {
		return domain.ComposerModeMeaningful, DefaultMinChangeCount
	}

	minChangeCount := DefaultMinChangeCount
	if tenant.MinChangeCount > 0 {
		minChangeCount = tenant.MinChangeCount
	}

	return tenant.Mode(), minChangeCount
}
