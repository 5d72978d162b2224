package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"finsight/internal/domain"
	"finsight/internal/service"
)

// IngestHandler handles workbook identification and upload endpoints.
type IngestHandler struct {
	ingestService service.IngestService
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(ingestService service.IngestService) *IngestHandler {
	return &IngestHandler{ingestService: ingestService}
}

// Identify handles POST /api/v1/files/identify
// @Summary Identify a workbook template
// @Description Classify an uploaded Excel workbook without storing it
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Excel workbook (xlsx, xlsm, xltx)"
// @Success 200 {object} APIResponse{data=classifier.Result}
// @Failure 400 {object} APIResponse "Missing file, unsupported type or unreadable workbook"
// @Failure 413 {object} APIResponse "File too large"
// @Router /files/identify [post]
func (h *IngestHandler) Identify(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	res, err := h.ingestService.Identify(c.Request.Context(), service.IdentifyInput{
		Filename: header.Filename,
		Size:     header.Size,
		Body:     file,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, res)
}

// Upload handles POST /api/v1/companies/:id/uploads
// @Summary Upload a financial workbook
// @Description Classify, parse and store a workbook for the company. The optional
// @Description document_type field forces a template.
// @Tags companies
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Company ID"
// @Param file formData file true "Excel workbook"
// @Param document_type formData string false "Expected document type"
// @Success 201 {object} APIResponse{data=domain.ImportResult}
// @Failure 404 {object} APIResponse "Company not found"
// @Failure 422 {object} APIResponse{data=UnknownDocumentDetail} "Unrecognized template"
// @Router /companies/{id}/uploads [post]
func (h *IngestHandler) Upload(c *gin.Context) {
	companyID, ok := parseCompanyID(c)
	if !ok {
		return
	}

	var expected domain.DocumentType
	if raw := strings.TrimSpace(c.PostForm("document_type")); raw != "" {
		t, valid := domain.ParseDocumentType(raw)
		if !valid {
			HandleError(c, domain.ErrInvalidDocType)
			return
		}
		expected = t
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.ingestService.Ingest(c.Request.Context(), service.IngestInput{
		CompanyID:    companyID,
		ExpectedType: expected,
		Filename:     header.Filename,
		Size:         header.Size,
		Body:         file,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}
