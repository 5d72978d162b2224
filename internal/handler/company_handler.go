package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"finsight/internal/service"
)

// CompanyHandler handles company and stored-record endpoints.
type CompanyHandler struct {
	companyService service.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyService service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Create handles POST /api/v1/companies
// @Summary Register a company
// @Tags companies
// @Accept json
// @Produce json
// @Param request body service.CreateCompanyInput true "Company details"
// @Success 201 {object} APIResponse{data=domain.Company}
// @Failure 400 {object} APIResponse "Missing name or credit code"
// @Failure 409 {object} APIResponse "Duplicate credit code"
// @Router /companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	var input service.CreateCompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, company)
}

// GetByID handles GET /api/v1/companies/:id
func (h *CompanyHandler) GetByID(c *gin.Context) {
	id, ok := parseCompanyID(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, company)
}

// List handles GET /api/v1/companies
func (h *CompanyHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	companies, total, err := h.companyService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, companies, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ListBalanceSheets handles GET /api/v1/companies/:id/balance-sheets
func (h *CompanyHandler) ListBalanceSheets(c *gin.Context) {
	id, ok := parseCompanyID(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	sheets, total, err := h.companyService.ListBalanceSheets(c.Request.Context(), id, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, sheets, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ListIncomeStatements handles GET /api/v1/companies/:id/income-statements
func (h *CompanyHandler) ListIncomeStatements(c *gin.Context) {
	id, ok := parseCompanyID(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	statements, total, err := h.companyService.ListIncomeStatements(c.Request.Context(), id, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, statements, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ListImports handles GET /api/v1/companies/:id/imports
func (h *CompanyHandler) ListImports(c *gin.Context) {
	id, ok := parseCompanyID(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	imports, total, err := h.companyService.ListImports(c.Request.Context(), id, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, imports, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// parseCompanyID reads the :id path parameter. Returns false if invalid
// (error response already written).
func parseCompanyID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid company ID")
		return uuid.Nil, false
	}
	return id, true
}
