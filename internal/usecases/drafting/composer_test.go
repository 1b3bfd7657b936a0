package drafting

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/openai/mocks"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func fullSnapshot() *domain.Snapshot {
	cash := 12500.0
	receivable := 3000.0
	payable := 890.0
	netIncome := 4200.0

	return &domain.Snapshot{
		Cash:                &cash,
		AccountsReceivable:  &receivable,
		AccountsPayable:     &payable,
		NetIncomeLast30Days: &netIncome,
		InvoicesOpen:        &domain.OpenItemSummary{RecentCount: 3, OpenTotal: 1500},
		BillsOpen:           &domain.OpenItemSummary{RecentCount: 1, OpenTotal: 200},
	}
}

func TestCompose_TemplateSemMudancas(t *testing.T) {
	composer := NewComposer(nil)

	content := composer.Compose("Acme Corp", nil, fullSnapshot(), false)

	assert.Equal(t, "QuickBooks update - Acme Corp", content.Subject)
	assert.Contains(t, content.Body, "Hi Acme Corp,")
	assert.Contains(t, content.Body, "No major changes stood out since the last update. Here is a quick snapshot:")
	assert.Contains(t, content.Body, "- Cash: $12,500")
	assert.Contains(t, content.Body, "- Accounts receivable: $3,000")
	assert.Contains(t, content.Body, "- Accounts payable: $890")
	assert.Contains(t, content.Body, "- Net income (last 30 days): $4,200")
	assert.Contains(t, content.Body, "- Open invoices: 3 ($1,500)")
	assert.Contains(t, content.Body, "- Open bills: 1 ($200)")
	assert.Contains(t, content.Body, "Your bookkeeping team")
}

func TestCompose_TemplateComMudancas(t *testing.T) {
	composer := NewComposer(nil)

	changes := []domain.ChangeRecord{
		{Label: "Cash balance", Current: "$1,600", Previous: "$1,000", Delta: "$600", Percent: "60.0%"},
		{Label: "Open bills (count)", Current: "8", Previous: "5", Delta: "3", Percent: "n/a"},
	}

	content := composer.Compose("Acme Corp", changes, fullSnapshot(), false)

	assert.Contains(t, content.Body, "Here are the most meaningful changes since the last update:")
	assert.Contains(t, content.Body, "- Cash balance: $1,600 (was $1,000, change $600)")
	assert.Contains(t, content.Body, "- Open bills (count): 8 (was 5, change 3)")

	// as mudanças aparecem na ordem recebida
	cashIdx := strings.Index(content.Body, "- Cash balance:")
	billsIdx := strings.Index(content.Body, "- Open bills (count):")
	assert.Less(t, cashIdx, billsIdx)
}

func TestCompose_MetricasAusentesViramNA(t *testing.T) {
	composer := NewComposer(nil)

	content := composer.Compose("Acme Corp", nil, &domain.Snapshot{}, false)

	assert.Contains(t, content.Body, "- Cash: n/a")
	assert.Contains(t, content.Body, "- Accounts receivable: n/a")
	assert.Contains(t, content.Body, "- Open invoices: n/a (n/a)")
	assert.Contains(t, content.Body, "- Open bills: n/a (n/a)")
}

func TestCompose_LinguagemNatural(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	integrator := mocks.NewMockComposerIntegrator(ctrl)
	integrator.EXPECT().
		ComposeUpdate(gomock.Any(), gomock.Any()).
		Return("Hi Acme Corp, cash is up sharply this month.", nil)

	composer := NewComposer(integrator)

	content := composer.Compose("Acme Corp", nil, fullSnapshot(), true)

	assert.Equal(t, "QuickBooks update - Acme Corp", content.Subject)
	assert.Equal(t, "Hi Acme Corp, cash is up sharply this month.", content.Body)
}

func TestCompose_FalhaDoModeloCaiNoTemplate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	integrator := mocks.NewMockComposerIntegrator(ctrl)
	integrator.EXPECT().
		ComposeUpdate(gomock.Any(), gomock.Any()).
		Return("", errors.New("429 Too Many Requests"))

	composer := NewComposer(integrator)

	content := composer.Compose("Acme Corp", nil, fullSnapshot(), true)

	assert.Equal(t, "QuickBooks update - Acme Corp", content.Subject)
	assert.Contains(t, content.Body, "Current snapshot:")
	assert.Contains(t, content.Body, "Your bookkeeping team")
}

func TestCompose_RespostaVaziaCaiNoTemplate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	integrator := mocks.NewMockComposerIntegrator(ctrl)
	integrator.EXPECT().
		ComposeUpdate(gomock.Any(), gomock.Any()).
		Return("", nil)

	composer := NewComposer(integrator)

	content := composer.Compose("Acme Corp", nil, fullSnapshot(), true)

	assert.Contains(t, content.Body, "Current snapshot:")
}

func TestCompose_ModeloNaoChamadoQuandoDesligado(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// nenhuma expectativa registrada: qualquer chamada ao integrator falha o teste
	integrator := mocks.NewMockComposerIntegrator(ctrl)

	composer := NewComposer(integrator)

	content := composer.Compose("Acme Corp", nil, fullSnapshot(), false)

	assert.Contains(t, content.Body, "Current snapshot:")
}
