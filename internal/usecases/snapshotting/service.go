package snapshotting

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/qbo"
	qbodomain "github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/qbo/domain"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/extracting"
	"github.com/vfg2006/ledger-pulse-api/pkg/utils"
)

// Sinônimos de rótulo por métrica. A comparação é por substring, em
// minúsculas, para absorver variações de texto entre versões do relatório.
var (
	cashMatchers       = []string{"cash and cash equivalents", "cash"}
	receivableMatchers = []string{"accounts receivable", "total accounts receivable"}
	payableMatchers    = []string{"accounts payable", "total accounts payable"}
	netIncomeMatchers  = []string{"net income", "net earnings"}
)

const (
	openInvoicesQuery = "select Id, TxnDate, Balance from Invoice where Balance > '0' order by TxnDate desc maxresults 50"
	openBillsQuery    = "select Id, TxnDate, Balance from Bill where Balance > '0' order by TxnDate desc maxresults 50"

	// Janela usada na contagem de lançamentos recentes
	recentWindow = 7 * 24 * time.Hour
)

// Builder captura as métricas financeiras de uma empresa conectada e as
// congela em um Snapshot
type Builder interface {
	Build(tenantID, realmID string, now time.Time) (*domain.Snapshot, error)
}

type service struct {
	qboIntegrator qbo.QBOIntegrator
}

func NewService(qboIntegrator qbo.QBOIntegrator) Builder {
	return &service{
		qboIntegrator: qboIntegrator,
	}
}

// Build busca, em paralelo, o balanço patrimonial, o DRE dos últimos 30 dias
// e as listas de faturas e contas em aberto. Uma fonte inacessível ou com
// estrutura inválida aborta a captura com CollectionError; métricas ausentes
// dentro de relatórios válidos degradam para nulo via extração.
func (s *service) Build(tenantID, realmID string, now time.Time) (*domain.Snapshot, error) {
	var (
		balanceSheet *qbodomain.ReportTree
		profitLoss   *qbodomain.ReportTree
		invoices     *qbodomain.QueryResponse
		bills        *qbodomain.QueryResponse

		balanceSheetErr error
		profitLossErr   error
		invoicesErr     error
		billsErr        error
	)

	profitLossParams := map[string]string{
		"start_date": now.AddDate(0, 0, -30).Format("2006-01-02"),
		"end_date":   now.Format("2006-01-02"),
	}

	wg := &sync.WaitGroup{}
	wg.Add(4)

	go func() {
		defer wg.Done()
		balanceSheet, balanceSheetErr = s.qboIntegrator.FetchReport(tenantID, realmID, qbodomain.ReportBalanceSheet, nil)
	}()

	go func() {
		defer wg.Done()
		profitLoss, profitLossErr = s.qboIntegrator.FetchReport(tenantID, realmID, qbodomain.ReportProfitAndLoss, profitLossParams)
	}()

	go func() {
		defer wg.Done()
		invoices, invoicesErr = s.qboIntegrator.FetchRecords(tenantID, realmID, openInvoicesQuery)
	}()

	go func() {
		defer wg.Done()
		bills, billsErr = s.qboIntegrator.FetchRecords(tenantID, realmID, openBillsQuery)
	}()

	wg.Wait()

	for _, err := range []error{balanceSheetErr, profitLossErr, invoicesErr, billsErr} {
		if err != nil {
			return nil, &CollectionError{RealmID: realmID, Err: err}
		}
	}

	if balanceSheet == nil || balanceSheet.Rows == nil {
		return nil, &CollectionError{RealmID: realmID, Err: fmt.Errorf("balanço patrimonial sem linhas")}
	}

	if profitLoss == nil || profitLoss.Rows == nil {
		return nil, &CollectionError{RealmID: realmID, Err: fmt.Errorf("DRE sem linhas")}
	}

	snapshot := &domain.Snapshot{
		CapturedAt:          now,
		Cash:                extracting.FindValue(balanceSheet.RootRows(), cashMatchers),
		AccountsReceivable:  extracting.FindValue(balanceSheet.RootRows(), receivableMatchers),
		AccountsPayable:     extracting.FindValue(balanceSheet.RootRows(), payableMatchers),
		NetIncomeLast30Days: extracting.FindValue(profitLoss.RootRows(), netIncomeMatchers),
		InvoicesOpen:        summarizeOpenItems(invoices.Invoice, now),
		BillsOpen:           summarizeOpenItems(bills.Bill, now),
	}

	logrus.WithFields(logrus.Fields{
		"realm_id":         realmID,
		"open_invoices":    snapshot.InvoicesOpen.RecentCount,
		"open_bills":       snapshot.BillsOpen.RecentCount,
		"cash_available":   snapshot.Cash != nil,
		"net_income_found": snapshot.NetIncomeLast30Days != nil,
	}).Debug("Snapshot capturado")

	return snapshot, nil
}

// summarizeOpenItems agrega os lançamentos em aberto. A contagem considera
// apenas lançamentos datados nos últimos 7 dias; a soma considera todos,
// com saldos sem parse contribuindo zero.
func summarizeOpenItems(transactions []qbodomain.Transaction, now time.Time) *domain.OpenItemSummary {
	summary := &domain.OpenItemSummary{}
	cutoff := now.Add(-recentWindow)

	for _, txn := range transactions {
		summary.OpenTotal += txn.BalanceOrZero()

		if txn.TxnDate == "" {
			continue
		}

		txnDate, err := utils.ParseDate(txn.TxnDate)
		if err != nil {
			continue
		}

		if !txnDate.Before(cutoff) {
			summary.RecentCount++
		}
	}

	return summary
}
