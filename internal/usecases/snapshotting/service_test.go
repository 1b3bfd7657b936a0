package snapshotting

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	qbodomain "github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/qbo/domain"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/qbo/mocks"
	"go.uber.org/mock/gomock"
)

const (
	testTenantID = "tenant-01"
	testRealmID  = "realm-123"
)

func reportWith(label, value string) *qbodomain.ReportTree {
	return &qbodomain.ReportTree{
		Rows: &qbodomain.ReportNodeList{
			Row: []qbodomain.ReportNode{
				{
					Header: &qbodomain.ReportRow{
						ColData: []qbodomain.ReportCell{
							{Value: label},
							{Value: value},
						},
					},
				},
			},
		},
	}
}

func TestBuild(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	balanceSheet := &qbodomain.ReportTree{
		Rows: &qbodomain.ReportNodeList{
			Row: []qbodomain.ReportNode{
				{
					Header: &qbodomain.ReportRow{
						ColData: []qbodomain.ReportCell{
							{Value: "Cash and cash equivalents"},
							{Value: "12,500.00"},
						},
					},
				},
				{
					Summary: &qbodomain.ReportRow{
						ColData: []qbodomain.ReportCell{
							{Value: "Total Accounts Receivable"},
							{Value: "3,000.00"},
						},
					},
				},
			},
		},
	}

	invoices := &qbodomain.QueryResponse{
		Invoice: []qbodomain.Transaction{
			{ID: "1", TxnDate: "2025-06-14", Balance: json.Number("100.00")},
			{ID: "2", TxnDate: "2025-06-01", Balance: json.Number("200.00")},
			{ID: "3", TxnDate: "", Balance: json.Number("abc")},
		},
	}
	bills := &qbodomain.QueryResponse{
		Bill: []qbodomain.Transaction{
			{ID: "4", TxnDate: "2025-06-10", Balance: json.Number("50.00")},
		},
	}

	qboIntegrator := mocks.NewMockQBOIntegrator(ctrl)
	qboIntegrator.EXPECT().
		FetchReport(testTenantID, testRealmID, qbodomain.ReportBalanceSheet, nil).
		Return(balanceSheet, nil)
	qboIntegrator.EXPECT().
		FetchReport(testTenantID, testRealmID, qbodomain.ReportProfitAndLoss, map[string]string{
			"start_date": "2025-05-16",
			"end_date":   "2025-06-15",
		}).
		Return(reportWith("Net Income", "4,200.00"), nil)
	qboIntegrator.EXPECT().
		FetchRecords(testTenantID, testRealmID, openInvoicesQuery).
		Return(invoices, nil)
	qboIntegrator.EXPECT().
		FetchRecords(testTenantID, testRealmID, openBillsQuery).
		Return(bills, nil)

	service := NewService(qboIntegrator)

	snapshot, err := service.Build(testTenantID, testRealmID, now)

	assert.NoError(t, err)
	assert.NotNil(t, snapshot)
	assert.Equal(t, now, snapshot.CapturedAt)

	assert.NotNil(t, snapshot.Cash)
	assert.Equal(t, 12500.0, *snapshot.Cash)
	assert.NotNil(t, snapshot.AccountsReceivable)
	assert.Equal(t, 3000.0, *snapshot.AccountsReceivable)
	assert.Nil(t, snapshot.AccountsPayable)
	assert.NotNil(t, snapshot.NetIncomeLast30Days)
	assert.Equal(t, 4200.0, *snapshot.NetIncomeLast30Days)

	// apenas a fatura de 14/06 cai na janela de 7 dias; o saldo sem parse soma zero
	assert.Equal(t, 1, snapshot.InvoicesOpen.RecentCount)
	assert.Equal(t, 300.0, snapshot.InvoicesOpen.OpenTotal)
	assert.Equal(t, 1, snapshot.BillsOpen.RecentCount)
	assert.Equal(t, 50.0, snapshot.BillsOpen.OpenTotal)
}

func TestBuild_FonteInacessivel(t *testing.T) {
	now := time.Now()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	qboIntegrator := mocks.NewMockQBOIntegrator(ctrl)
	qboIntegrator.EXPECT().
		FetchReport(testTenantID, testRealmID, qbodomain.ReportBalanceSheet, nil).
		Return(nil, errors.New("503 Service Unavailable"))
	qboIntegrator.EXPECT().
		FetchReport(testTenantID, testRealmID, qbodomain.ReportProfitAndLoss, gomock.Any()).
		Return(reportWith("Net Income", "100.00"), nil)
	qboIntegrator.EXPECT().
		FetchRecords(testTenantID, testRealmID, openInvoicesQuery).
		Return(&qbodomain.QueryResponse{}, nil)
	qboIntegrator.EXPECT().
		FetchRecords(testTenantID, testRealmID, openBillsQuery).
		Return(&qbodomain.QueryResponse{}, nil)

	service := NewService(qboIntegrator)

	snapshot, err := service.Build(testTenantID, testRealmID, now)

	assert.Nil(t, snapshot)
	assert.Error(t, err)
	assert.True(t, IsCollectionError(err))
}

func TestBuild_RelatorioSemLinhas(t *testing.T) {
	now := time.Now()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	qboIntegrator := mocks.NewMockQBOIntegrator(ctrl)
	qboIntegrator.EXPECT().
		FetchReport(testTenantID, testRealmID, qbodomain.ReportBalanceSheet, nil).
		Return(&qbodomain.ReportTree{}, nil)
	qboIntegrator.EXPECT().
		FetchReport(testTenantID, testRealmID, qbodomain.ReportProfitAndLoss, gomock.Any()).
		Return(reportWith("Net Income", "100.00"), nil)
	qboIntegrator.EXPECT().
		FetchRecords(testTenantID, testRealmID, openInvoicesQuery).
		Return(&qbodomain.QueryResponse{}, nil)
	qboIntegrator.EXPECT().
		FetchRecords(testTenantID, testRealmID, openBillsQuery).
		Return(&qbodomain.QueryResponse{}, nil)

	service := NewService(qboIntegrator)

	snapshot, err := service.Build(testTenantID, testRealmID, now)

	assert.Nil(t, snapshot)
	assert.True(t, IsCollectionError(err))
}
