package drafting

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/openai"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
	"github.com/vfg2006/ledger-pulse-api/pkg/utils"
)

const notAvailable = "n/a"

// Composer produz o assunto e o corpo de um rascunho de atualização.
// O template determinístico está sempre disponível; o texto em linguagem
// natural é opcional e nunca bloqueia nem falha o pipeline.
type Composer interface {
	Compose(clientName string, changes []domain.ChangeRecord, snapshot *domain.Snapshot, useNaturalLanguage bool) domain.EmailContent
}

type composer struct {
	composerIntegrator openai.ComposerIntegrator
}

// NewComposer aceita integrator nulo: sem chave de API configurada o
// compositor opera apenas com o template
func NewComposer(composerIntegrator openai.ComposerIntegrator) Composer {
	return &composer{
		composerIntegrator: composerIntegrator,
	}
}

func (c *composer) Compose(clientName string, changes []domain.ChangeRecord, snapshot *domain.Snapshot, useNaturalLanguage bool) domain.EmailContent {
	subject := fmt.Sprintf("QuickBooks update - %s", clientName)

	if useNaturalLanguage && c.composerIntegrator != nil {
		if body, err := c.composeNaturalLanguage(clientName, changes, snapshot); err == nil && body != "" {
			return domain.EmailContent{Subject: subject, Body: body}
		} else if err != nil {
			logrus.WithFields(logrus.Fields{
				"client_name": clientName,
				"error":       err.Error(),
			}).Warn("Compositor de linguagem natural falhou, usando o template")
		}
	}

	return domain.EmailContent{
		Subject: subject,
		Body:    buildTemplate(clientName, changes, snapshot),
	}
}

func (c *composer) composeNaturalLanguage(clientName string, changes []domain.ChangeRecord, snapshot *domain.Snapshot) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"clientName": clientName,
		"changes":    changes,
		"snapshot":   snapshot,
	})
	if err != nil {
		return "", fmt.Errorf("erro ao serializar o payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	return c.composerIntegrator.ComposeUpdate(ctx, string(payload))
}

// buildTemplate monta o corpo determinístico: saudação, mudanças na ordem
// produzida pela detecção, bloco com as seis métricas atuais e fechamento
func buildTemplate(clientName string, changes []domain.ChangeRecord, snapshot *domain.Snapshot) string {
	lines := []string{
		fmt.Sprintf("Hi %s,", clientName),
		"",
	}

	if len(changes) == 0 {
		lines = append(lines, "No major changes stood out since the last update. Here is a quick snapshot:")
	} else {
		lines = append(lines, "Here are the most meaningful changes since the last update:")
		for _, change := range changes {
			lines = append(lines, fmt.Sprintf("- %s: %s (was %s, change %s)",
				change.Label, change.Current, change.Previous, change.Delta))
		}
	}

	lines = append(lines,
		"",
		"Current snapshot:",
		fmt.Sprintf("- Cash: %s", currencyOrNA(snapshot.Cash)),
		fmt.Sprintf("- Accounts receivable: %s", currencyOrNA(snapshot.AccountsReceivable)),
		fmt.Sprintf("- Accounts payable: %s", currencyOrNA(snapshot.AccountsPayable)),
		fmt.Sprintf("- Net income (last 30 days): %s", currencyOrNA(snapshot.NetIncomeLast30Days)),
		fmt.Sprintf("- Open invoices: %s", summaryOrNA(snapshot.InvoicesOpen)),
		fmt.Sprintf("- Open bills: %s", summaryOrNA(snapshot.BillsOpen)),
		"",
		"If you want a deeper dive or any follow-up, just reply and I can send a detailed report.",
		"",
		"Best,",
		"Your bookkeeping team",
	)

	return strings.Join(lines, "\n")
}

func currencyOrNA(value *float64) string {
	if value == nil {
		return notAvailable
	}
	return utils.FormatCurrency(*value)
}

func summaryOrNA(summary *domain.OpenItemSummary) string {
	if summary == nil {
		return fmt.Sprintf("%s (%s)", notAvailable, notAvailable)
	}
	return fmt.Sprintf("%s (%s)", utils.FormatInteger(summary.RecentCount), utils.FormatCurrency(summary.OpenTotal))
}
