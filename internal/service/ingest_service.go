package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"finsight/internal/classifier"
	"finsight/internal/config"
	"finsight/internal/domain"
	"finsight/internal/extractor"
	"finsight/internal/port"
	"finsight/internal/workbook"
)

// IdentifyInput is the DTO for classifying an uploaded workbook.
type IdentifyInput struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// IngestInput is the DTO for parsing and storing an uploaded workbook.
// An empty ExpectedType lets the classifier decide.
type IngestInput struct {
	CompanyID    uuid.UUID
	ExpectedType domain.DocumentType
	Filename     string
	Size         int64
	Body         io.Reader
}

// IngestService defines the upload pipeline contract.
type IngestService interface {
	Identify(ctx context.Context, input IdentifyInput) (*classifier.Result, error)
	Ingest(ctx context.Context, input IngestInput) (*domain.ImportResult, error)
}

type ingestService struct {
	companyRepo port.CompanyRepository
	recordRepo  port.FinancialRecordRepository
	importRepo  port.ImportRepository
	extractor   *extractor.Extractor
	cfg         *config.UploadConfig
}

// NewIngestService creates a new IngestService implementation.
func NewIngestService(
	companyRepo port.CompanyRepository,
	recordRepo port.FinancialRecordRepository,
	importRepo port.ImportRepository,
	ext *extractor.Extractor,
	cfg *config.UploadConfig,
) IngestService {
	return &ingestService{
		companyRepo: companyRepo,
		recordRepo:  recordRepo,
		importRepo:  importRepo,
		extractor:   ext,
		cfg:         cfg,
	}
}

func (s *ingestService) Identify(ctx context.Context, input IdentifyInput) (*classifier.Result, error) {
	data, err := s.readUpload(input.Filename, input.Size, input.Body)
	if err != nil {
		return nil, err
	}

	res, err := classifier.IdentifyBytes(data)
	if err != nil {
		log.Printf("ingestService.Identify: cannot open %s: %v", input.Filename, err)
		return nil, err
	}
	log.Printf("ingestService.Identify: %s classified as %s", input.Filename, res.Type)
	return res, nil
}

func (s *ingestService) Ingest(ctx context.Context, input IngestInput) (*domain.ImportResult, error) {
	if _, err := s.companyRepo.GetByID(ctx, input.CompanyID); err != nil {
		return nil, err
	}
	if input.ExpectedType != "" && !input.ExpectedType.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDocType, input.ExpectedType)
	}

	imp := &domain.Import{
		ID:           uuid.New(),
		CompanyID:    input.CompanyID,
		OriginalName: input.Filename,
		FileSize:     input.Size,
		DocumentType: domain.DocumentTypeUnknown,
	}

	data, err := s.readUpload(input.Filename, input.Size, input.Body)
	if err != nil {
		s.recordFailure(ctx, imp, domain.ImportStatusFailed, err)
		return nil, err
	}
	imp.FileSize = int64(len(data))

	wb, err := workbook.Open(data)
	if err != nil {
		s.recordFailure(ctx, imp, domain.ImportStatusFailed, err)
		return nil, err
	}
	defer func() { _ = wb.Close() }()

	ident := classifier.IdentifyWorkbook(wb)
	docType, err := resolveType(ident.Type, input.ExpectedType)
	if err != nil {
		imp.DocumentType = ident.Type
		s.recordFailure(ctx, imp, domain.ImportStatusFailed, err)
		return nil, err
	}
	if docType == domain.DocumentTypeUnknown {
		unknown := ident.UnknownError()
		log.Printf("ingestService.Ingest: %s matched no template, probes=%v", input.Filename, unknown.Probes)
		s.recordFailure(ctx, imp, domain.ImportStatusUnrecognized, unknown)
		return nil, unknown
	}
	imp.DocumentType = docType

	res, err := s.extractor.Parse(docType, wb)
	if err != nil {
		s.recordFailure(ctx, imp, domain.ImportStatusFailed, err)
		return nil, err
	}

	var notes []string
	if res.Type == domain.DocumentTypeInvoiceData {
		var skipped int
		res.Invoices, skipped = storableInvoices(res.Invoices)
		if skipped > 0 {
			notes = append(notes, fmt.Sprintf("%d invoice row(s) without a unique code and number skipped", skipped))
		}
	}

	if err := s.persist(ctx, input.CompanyID, imp.ID, res); err != nil {
		log.Printf("ingestService.Ingest: persisting %s for company %s failed: %v", docType, input.CompanyID, err)
		s.recordFailure(ctx, imp, domain.ImportStatusFailed, err)
		return nil, fmt.Errorf("storing %s records: %w", docType, err)
	}

	imp.Status = domain.ImportStatusSucceeded
	imp.RecordCount = res.RecordCount()
	if res.FallbackPeriods > 0 {
		notes = append([]string{fmt.Sprintf("%d period(s) defaulted to the current month", res.FallbackPeriods)}, notes...)
	}
	imp.Message = strings.Join(notes, "; ")
	if err := s.importRepo.Create(ctx, imp); err != nil {
		return nil, fmt.Errorf("recording import: %w", err)
	}

	log.Printf("ingestService.Ingest: stored %d %s record(s) for company %s from %s",
		imp.RecordCount, docType, input.CompanyID, input.Filename)

	return &domain.ImportResult{Import: imp, Result: res}, nil
}

// resolveType reconciles the classifier's verdict with the caller's
// expectation. An expected type overrides an unknown verdict but never a
// conflicting known one.
func resolveType(detected, expected domain.DocumentType) (domain.DocumentType, error) {
	switch {
	case expected == "":
		return detected, nil
	case detected == domain.DocumentTypeUnknown || detected == expected:
		return expected, nil
	default:
		return "", fmt.Errorf("%w: detected %s, expected %s", domain.ErrTypeMismatch, detected, expected)
	}
}

// storableInvoices drops rows that cannot be told apart in storage: rows
// with neither code nor number, and earlier rows repeating a later row's
// code and number. It returns the kept rows in sheet order.
func storableInvoices(recs []domain.InvoiceRecord) ([]domain.InvoiceRecord, int) {
	type key struct{ code, number string }
	last := make(map[key]int, len(recs))
	for i, r := range recs {
		if r.InvoiceCode == "" && r.InvoiceNumber == "" {
			continue
		}
		last[key{r.InvoiceCode, r.InvoiceNumber}] = i
	}

	kept := make([]domain.InvoiceRecord, 0, len(last))
	for i, r := range recs {
		if j, ok := last[key{r.InvoiceCode, r.InvoiceNumber}]; ok && j == i {
			kept = append(kept, r)
		}
	}
	return kept, len(recs) - len(kept)
}

func (s *ingestService) persist(ctx context.Context, companyID, importID uuid.UUID, res *domain.ParseResult) error {
	switch res.Type {
	case domain.DocumentTypeCompanyInfo:
		return s.companyRepo.UpdateProfile(ctx, companyID, res.CompanyInfo)
	case domain.DocumentTypeBalanceSheet:
		return s.recordRepo.UpsertBalanceSheet(ctx, companyID, importID, res.BalanceSheet)
	case domain.DocumentTypeIncomeStatement:
		return s.recordRepo.UpsertIncomeStatement(ctx, companyID, importID, res.IncomeStatement)
	case domain.DocumentTypeTaxReport:
		return s.recordRepo.UpsertTaxReports(ctx, companyID, importID, res.TaxReports)
	case domain.DocumentTypeInvoiceData:
		return s.recordRepo.UpsertInvoices(ctx, companyID, importID, res.Invoices)
	case domain.DocumentTypeHRSalary:
		return s.recordRepo.UpsertHRSalaries(ctx, companyID, importID, res.HRSalaries)
	case domain.DocumentTypeAccountBalance:
		return s.recordRepo.UpsertAccountBalances(ctx, companyID, importID, res.AccountBalances)
	default:
		return domain.ErrUnknownDocumentType
	}
}

// recordFailure logs an unsuccessful upload. A failure to write the log row
// is reported but does not mask the original error.
func (s *ingestService) recordFailure(ctx context.Context, imp *domain.Import, status domain.ImportStatus, cause error) {
	imp.Status = status
	imp.Message = cause.Error()
	if err := s.importRepo.Create(ctx, imp); err != nil {
		log.Printf("ingestService.recordFailure: failed to record import %s: %v", imp.ID, err)
	}
}

// readUpload validates the extension and size of an upload and reads it
// into memory. Size may be unknown (<= 0); the limit is then enforced on
// the bytes actually read.
func (s *ingestService) readUpload(filename string, size int64, body io.Reader) ([]byte, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !s.allowedExtension(ext) {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxFileSizeBytes()
	if size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	if body == nil {
		return nil, domain.NewMalformedInputError(errors.New("empty upload"))
	}

	var buf bytes.Buffer
	n, err := buf.ReadFrom(io.LimitReader(body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if n > maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	return buf.Bytes(), nil
}

func (s *ingestService) allowedExtension(ext string) bool {
	if !domain.AllowedExtensions[ext] {
		return false
	}
	if len(s.cfg.AllowedExtensions) == 0 {
		return true
	}
	for _, e := range s.cfg.AllowedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
