package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrDuplicateCreditCode = errors.New("credit code already registered")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrMalformedWorkbook   = errors.New("workbook cannot be read")
	ErrUnknownDocumentType = errors.New("document type not recognized")
	ErrTypeMismatch        = errors.New("document does not match the requested type")
	ErrInvalidDocType      = errors.New("invalid document type")
	ErrInvalidCompany      = errors.New("company name and credit code are required")
)

// MalformedInputError indicates the uploaded bytes could not be opened as a workbook.
type MalformedInputError struct {
	Err error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%v: %v", ErrMalformedWorkbook, e.Err)
}

func (e *MalformedInputError) Unwrap() []error {
	return []error{ErrMalformedWorkbook, e.Err}
}

// NewMalformedInputError wraps the spreadsheet library's open error.
func NewMalformedInputError(err error) *MalformedInputError {
	return &MalformedInputError{Err: err}
}

// UnknownDocumentError carries the probed cell contents of a workbook that
// matched no template, so the caller can echo them back for diagnosis.
type UnknownDocumentError struct {
	Sheet  string
	Probes map[string]string
}

func (e *UnknownDocumentError) Error() string {
	return fmt.Sprintf("%v (sheet %q)", ErrUnknownDocumentType, e.Sheet)
}

func (e *UnknownDocumentError) Unwrap() error {
	return ErrUnknownDocumentType
}
