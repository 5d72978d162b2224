package domain

// DocumentType identifies which fixed spreadsheet template an upload follows.
type DocumentType string

const (
	DocumentTypeCompanyInfo     DocumentType = "company_info"
	DocumentTypeBalanceSheet    DocumentType = "balance_sheet"
	DocumentTypeIncomeStatement DocumentType = "income_statement"
	DocumentTypeTaxReport       DocumentType = "tax_report"
	DocumentTypeInvoiceData     DocumentType = "invoice_data"
	DocumentTypeHRSalary        DocumentType = "hr_salary"
	DocumentTypeAccountBalance  DocumentType = "account_balance"
	DocumentTypeUnknown         DocumentType = "unknown"
)

// KnownDocumentTypes lists every recognizable type, in classification order.
var KnownDocumentTypes = []DocumentType{
	DocumentTypeAccountBalance,
	DocumentTypeBalanceSheet,
	DocumentTypeIncomeStatement,
	DocumentTypeCompanyInfo,
	DocumentTypeTaxReport,
	DocumentTypeInvoiceData,
	DocumentTypeHRSalary,
}

// Valid reports whether t is one of the recognizable types.
func (t DocumentType) Valid() bool {
	for _, k := range KnownDocumentTypes {
		if t == k {
			return true
		}
	}
	return false
}

// Label returns the Chinese template name shown to users.
func (t DocumentType) Label() string {
	switch t {
	case DocumentTypeCompanyInfo:
		return "企业基本信息"
	case DocumentTypeBalanceSheet:
		return "资产负债表"
	case DocumentTypeIncomeStatement:
		return "利润表"
	case DocumentTypeTaxReport:
		return "纳税申报表"
	case DocumentTypeInvoiceData:
		return "发票数据"
	case DocumentTypeHRSalary:
		return "人力薪酬表"
	case DocumentTypeAccountBalance:
		return "科目余额表"
	default:
		return "未知类型"
	}
}

// ParseDocumentType converts a request value into a DocumentType.
// Unrecognized values return DocumentTypeUnknown and false.
func ParseDocumentType(s string) (DocumentType, bool) {
	t := DocumentType(s)
	if t.Valid() {
		return t, true
	}
	return DocumentTypeUnknown, false
}

// AllowedExtensions lists the spreadsheet extensions (without dot) accepted for upload.
var AllowedExtensions = map[string]bool{
	"xlsx": true,
	"xlsm": true,
	"xltx": true,
}

// ImportStatus represents the outcome of one upload.
type ImportStatus string

const (
	ImportStatusSucceeded    ImportStatus = "succeeded"
	ImportStatusFailed       ImportStatus = "failed"
	ImportStatusUnrecognized ImportStatus = "unrecognized"
)
