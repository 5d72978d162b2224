package csvexport

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/domain"
)

func readAll(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	rows, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteResult_IncomeStatement(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteResult(&domain.ParseResult{
		Type: domain.DocumentTypeIncomeStatement,
		IncomeStatement: &domain.IncomeStatementRecord{
			Period:           domain.NewPeriod(2024, 12),
			OperatingRevenue: 1000000,
			NetProfit:        -1234.5,
		},
	}))
	w.Flush()
	require.NoError(t, w.Error())

	rows := readAll(t, &buf)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 15)
	assert.Equal(t, "Period", rows[0][0])
	assert.Equal(t, "Net Profit", rows[0][14])
	assert.Equal(t, "2024-12", rows[1][0])
	assert.Equal(t, "1000000.00", rows[1][1])
	assert.Equal(t, "-1234.50", rows[1][14])
}

func TestWriteResult_BalanceSheetColumnsMatchValues(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteResult(&domain.ParseResult{
		Type:         domain.DocumentTypeBalanceSheet,
		BalanceSheet: &domain.BalanceSheetRecord{Period: domain.NewPeriod(2024, 6), Cash: 10, TotalEquity: 99},
	}))
	w.Flush()

	rows := readAll(t, &buf)
	require.Len(t, rows, 2)
	assert.Equal(t, len(rows[0]), len(rows[1]))
	assert.Equal(t, "10.00", rows[1][1])
	assert.Equal(t, "99.00", rows[1][len(rows[1])-1])
}

func TestWriteResult_RowTypes(t *testing.T) {
	p := domain.NewPeriod(2024, 3)
	tests := []struct {
		name  string
		res   *domain.ParseResult
		first []string
	}{
		{
			name: "tax",
			res: &domain.ParseResult{Type: domain.DocumentTypeTaxReport, TaxReports: []domain.TaxReportRecord{
				{Period: p, TaxType: "增值税", TaxBasis: 100000, TaxRate: 0.13, TaxPayable: 13000, TaxPaid: 13000},
			}},
			first: []string{"2024-03", "增值税", "100000.00", "0.13", "13000.00", "13000.00"},
		},
		{
			name: "invoice",
			res: &domain.ParseResult{Type: domain.DocumentTypeInvoiceData, Invoices: []domain.InvoiceRecord{
				{Period: p, InvoiceType: "增值税专用发票", InvoiceCode: "3100", InvoiceNumber: "0001",
					InvoiceDate: "2024-03-05", Counterparty: "甲公司", Amount: 100, TaxAmount: 13, TotalAmount: 113},
			}},
			first: []string{"2024-03", "增值税专用发票", "3100", "0001", "2024-03-05", "甲公司", "100.00", "13.00", "113.00"},
		},
		{
			name: "hr",
			res: &domain.ParseResult{Type: domain.DocumentTypeHRSalary, HRSalaries: []domain.HRSalaryRecord{
				{Period: p, Department: "财务部", Headcount: 4, TotalSalary: 40000, AverageSalary: 10000},
			}},
			first: []string{"2024-03", "财务部", "4", "40000.00", "10000.00", "0.00", "0.00"},
		},
		{
			name: "account balance",
			res: &domain.ParseResult{Type: domain.DocumentTypeAccountBalance, AccountBalances: []domain.AccountBalanceRecord{
				{Period: p, AccountCode: "1001", AccountName: "库存现金", OpeningBalance: 5, ClosingBalance: 7},
			}},
			first: []string{"2024-03", "1001", "库存现金", "5.00", "0.00", "0.00", "7.00"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf)
			require.NoError(t, w.WriteResult(tt.res))
			w.Flush()

			rows := readAll(t, &buf)
			require.Len(t, rows, 2)
			assert.Equal(t, len(rows[0]), len(rows[1]))
			assert.Equal(t, tt.first, rows[1])
		})
	}
}

func TestWriteResult_EmptyRowsStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteResult(&domain.ParseResult{Type: domain.DocumentTypeInvoiceData}))
	w.Flush()

	rows := readAll(t, &buf)
	require.Len(t, rows, 1)
	assert.Equal(t, "Invoice Type", rows[0][1])
}

func TestWriteResult_UnknownType(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter(&buf).WriteResult(&domain.ParseResult{Type: domain.DocumentTypeUnknown})
	assert.ErrorIs(t, err, domain.ErrUnknownDocumentType)
}

func TestWriteResult_CompanyInfo(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteResult(&domain.ParseResult{
		Type:        domain.DocumentTypeCompanyInfo,
		CompanyInfo: &domain.CompanyInfoRecord{Name: "星辰科技, 有限公司", RegisteredCapital: 5000000},
	}))
	w.Flush()

	rows := readAll(t, &buf)
	require.Len(t, rows, 2)
	assert.Equal(t, "星辰科技, 有限公司", rows[1][0])
	assert.Equal(t, "5000000.00", rows[1][3])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"simple", "simple"},
		{"2024年 资产负债表", "2024年_资产负债表"},
		{"a//b??c", "a_b_c"},
		{"__leading__", "leading"},
		{"keep-dash_and_underscore", "keep-dash_and_underscore"},
		{strings.Repeat("表", 150), strings.Repeat("表", 100)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	got := BuildFilename("2024 利润表.xlsx", domain.DocumentTypeIncomeStatement)
	date := time.Now().Format("2006-01-02")
	assert.Equal(t, "2024_利润表_income_statement_"+date+".csv", got)
}

func TestBOM(t *testing.T) {
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, BOM)
}
