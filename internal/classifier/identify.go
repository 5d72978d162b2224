package classifier

import (
	"finsight/internal/domain"
	"finsight/internal/workbook"
)

// Result is the outcome of identifying an uploaded workbook.
type Result struct {
	Type   domain.DocumentType `json:"document_type"`
	Label  string              `json:"label"`
	Sheet  string              `json:"sheet"`
	Probes map[string]string   `json:"probes,omitempty"`
}

// IdentifyBytes opens data as a workbook and classifies its first sheet.
// Only unreadable input is an error; an unmatched sheet yields
// DocumentTypeUnknown together with the probed cell contents.
func IdentifyBytes(data []byte) (*Result, error) {
	wb, err := workbook.Open(data)
	if err != nil {
		return nil, err
	}
	defer func() { _ = wb.Close() }()

	return IdentifyWorkbook(wb), nil
}

// IdentifyWorkbook classifies an already opened workbook.
func IdentifyWorkbook(wb workbook.Workbook) *Result {
	snap := Probe(wb)
	t := Classify(snap)
	res := &Result{Type: t, Label: t.Label(), Sheet: wb.SheetName()}
	if t == domain.DocumentTypeUnknown {
		res.Probes = snap.Populated()
	}
	return res
}

// UnknownError converts an unknown result into the error surfaced to users.
func (r *Result) UnknownError() *domain.UnknownDocumentError {
	return &domain.UnknownDocumentError{Sheet: r.Sheet, Probes: r.Probes}
}
