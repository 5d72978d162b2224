// Package classifier identifies which of the known spreadsheet templates a
// workbook follows by probing a fixed set of cells.
package classifier

import (
	"strings"

	"finsight/internal/domain"
	"finsight/internal/workbook"
)

// ProbeCells is the fixed set of addresses read for classification.
var ProbeCells = []string{
	"A1", "A2", "A3", "A4", "A5", "A6", "A7",
	"B1", "B2", "B3",
	"C1",
	"D1", "E1", "F1", "G1",
}

// Snapshot is the trimmed text of the probe cells. Missing cells read as "".
type Snapshot map[string]string

// Probe reads the probe cells of wb.
func Probe(wb workbook.Workbook) Snapshot {
	s := make(Snapshot, len(ProbeCells))
	for _, addr := range ProbeCells {
		s[addr] = wb.Cell(addr).String()
	}
	return s
}

// has reports whether any of the cells contains substr.
func (s Snapshot) has(substr string, cells ...string) bool {
	for _, c := range cells {
		if strings.Contains(s[c], substr) {
			return true
		}
	}
	return false
}

// Populated returns the probe cells that hold a value, in probe order.
func (s Snapshot) Populated() map[string]string {
	out := make(map[string]string)
	for _, addr := range ProbeCells {
		if v := s[addr]; v != "" {
			out[addr] = v
		}
	}
	return out
}

type rule struct {
	docType domain.DocumentType
	matches func(Snapshot) bool
}

// rules run in order and the first match wins. Account balance and balance
// sheet templates come before the income statement because malformed
// sheets of either kind can satisfy the weaker income statement fallbacks.
var rules = []rule{
	{domain.DocumentTypeAccountBalance, isAccountBalance},
	{domain.DocumentTypeBalanceSheet, isBalanceSheet},
	{domain.DocumentTypeIncomeStatement, isIncomeStatement},
	{domain.DocumentTypeCompanyInfo, isCompanyInfo},
	{domain.DocumentTypeTaxReport, isTaxReport},
	{domain.DocumentTypeInvoiceData, isInvoiceData},
	{domain.DocumentTypeHRSalary, isHRSalary},
}

// Classify maps a probe snapshot to a document type.
func Classify(s Snapshot) domain.DocumentType {
	for _, r := range rules {
		if r.matches(s) {
			return r.docType
		}
	}
	return domain.DocumentTypeUnknown
}

// Identify classifies wb.
func Identify(wb workbook.Workbook) domain.DocumentType {
	return Classify(Probe(wb))
}

func isAccountBalance(s Snapshot) bool {
	if s.has("科目编码", "A1") && s.has("科目名称", "B1") {
		return true
	}
	return (s.has("会计科目", "A1") || s.has("科目代码", "A1")) &&
		(s.has("会计科目名称", "B1") || s.has("科目名称", "B2"))
}

func isBalanceSheet(s Snapshot) bool {
	if s.has("资产负债表", "A3") && s.has("资产", "A4") {
		return true
	}
	return s.has("资产负债表", "A1", "A2") && s.has("资产", "A4", "A5")
}

func isIncomeStatement(s Snapshot) bool {
	if s.has("利润表", "A2") && s.has("管理费用", "A7") {
		return true
	}
	if s.has("利润表", "A1", "A3") && s.has("管理费用", "A6", "A7") {
		return true
	}
	titled := s.has("利润表", "A1", "A2", "A3") || s.has("损益表", "A1", "A2", "A3")
	return titled && s.has("营业收入", "A3", "A4") && s.has("营业成本", "A4", "A5")
}

func isCompanyInfo(s Snapshot) bool {
	if s.has("企业名称", "A1") && s.has("统一社会信用代码", "A2") {
		return true
	}
	return s.has("公司名称", "A1") && (s.has("税号", "A2") || s.has("纳税人识别号", "A2"))
}

func isTaxReport(s Snapshot) bool {
	if !s.has("税种", "A1") {
		return false
	}
	return s.has("增值税", "A2") || s.has("企业所得税", "A3")
}

func isInvoiceData(s Snapshot) bool {
	if s.has("发票类型", "A1") && s.has("增值税专用发票", "A2") {
		return true
	}
	return s.has("发票", "A1") && (s.has("专用", "A2") || s.has("普通", "A3"))
}

func isHRSalary(s Snapshot) bool {
	if !s.has("部门", "A1") {
		return false
	}
	return s.has("人数", "B1") || s.has("员工", "B1") || s.has("薪资", "C1") || s.has("工资", "C1")
}
