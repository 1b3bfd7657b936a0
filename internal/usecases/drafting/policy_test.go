package drafting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
)

func TestUseComposerLLM(t *testing.T) {
	tests := []struct {
		name           string
		mode           domain.ComposerMode
		minChangeCount int
		changeCount    int
		isScheduledRun bool
		expected       bool
	}{
		{
			name:           "Never não aciona nem com muitas mudanças",
			mode:           domain.ComposerModeNever,
			minChangeCount: 2,
			changeCount:    10,
			isScheduledRun: true,
			expected:       false,
		},
		{
			name:           "Always aciona mesmo sem mudanças",
			mode:           domain.ComposerModeAlways,
			minChangeCount: 2,
			changeCount:    0,
			isScheduledRun: false,
			expected:       true,
		},
		{
			name:           "Scheduled aciona em execução agendada com volume",
			mode:           domain.ComposerModeScheduled,
			minChangeCount: 2,
			changeCount:    3,
			isScheduledRun: true,
			expected:       true,
		},
		{
			name:           "Scheduled não aciona em execução sob demanda",
			mode:           domain.ComposerModeScheduled,
			minChangeCount: 2,
			changeCount:    3,
			isScheduledRun: false,
			expected:       false,
		},
		{
			name:           "Scheduled não aciona abaixo do mínimo",
			mode:           domain.ComposerModeScheduled,
			minChangeCount: 2,
			changeCount:    1,
			isScheduledRun: true,
			expected:       false,
		},
		{
			name:           "Meaningful aciona a partir do mínimo",
			mode:           domain.ComposerModeMeaningful,
			minChangeCount: 2,
			changeCount:    2,
			isScheduledRun: false,
			expected:       true,
		},
		{
			name:           "Meaningful não aciona abaixo do mínimo",
			mode:           domain.ComposerModeMeaningful,
			minChangeCount: 2,
			changeCount:    1,
			isScheduledRun: true,
			expected:       false,
		},
		{
			name:           "Modo desconhecido se comporta como meaningful",
			mode:           domain.ComposerMode("whatever"),
			minChangeCount: 2,
			changeCount:    2,
			isScheduledRun: false,
			expected:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := UseComposerLLM(tt.mode, tt.minChangeCount, tt.changeCount, tt.isScheduledRun)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPolicyForTenant(t *testing.T) {
	tests := []struct {
		name         string
		tenant       *domain.Tenant
		expectedMode domain.ComposerMode
		expectedMin  int
	}{
		{
			name:         "Tenant nulo usa os defaults",
			tenant:       nil,
			expectedMode: domain.ComposerModeMeaningful,
			expectedMin:  DefaultMinChangeCount,
		},
		{
			name:         "Tenant sem configuração usa os defaults",
			tenant:       &domain.Tenant{},
			expectedMode: domain.ComposerModeMeaningful,
			expectedMin:  DefaultMinChangeCount,
		},
		{
			name: "Mínimo zero cai no default",
			tenant: &domain.Tenant{
				ComposerMode:   domain.ComposerModeAlways,
				MinChangeCount: 0,
			},
			expectedMode: domain.ComposerModeAlways,
			expectedMin:  DefaultMinChangeCount,
		},
		{
			name: "Configuração explícita é respeitada",
			tenant: &domain.Tenant{
				ComposerMode:   domain.ComposerModeScheduled,
				MinChangeCount: 5,
			},
			expectedMode: domain.ComposerModeScheduled,
			expectedMin:  5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, minChangeCount := PolicyForTenant(tt.tenant)

			assert.Equal(t, tt.expectedMode, mode)
			assert.Equal(t, tt.expectedMin, minChangeCount)
		})
	}
}
