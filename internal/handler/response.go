package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"finsight/internal/domain"
	"finsight/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// UnknownDocumentDetail is returned alongside UNKNOWN_DOCUMENT_TYPE so the
// uploader can see which cells were inspected.
type UnknownDocumentDetail struct {
	Sheet  string            `json:"sheet"`
	Probes map[string]string `json:"probes"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrCompanyNotFound):
		return http.StatusNotFound, "COMPANY_NOT_FOUND", "company not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrDuplicateCreditCode):
		return http.StatusConflict, "DUPLICATE_CREDIT_CODE", "a company with this credit code already exists"
	case errors.Is(err, domain.ErrInvalidCompany):
		return http.StatusBadRequest, "INVALID_COMPANY", "company name and credit code are required"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: xlsx, xlsm, xltx"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrMalformedWorkbook):
		return http.StatusBadRequest, "MALFORMED_WORKBOOK", "file could not be read as an Excel workbook"
	case errors.Is(err, domain.ErrUnknownDocumentType):
		return http.StatusUnprocessableEntity, "UNKNOWN_DOCUMENT_TYPE", "workbook does not match any supported template"
	case errors.Is(err, domain.ErrTypeMismatch):
		return http.StatusUnprocessableEntity, "DOCUMENT_TYPE_MISMATCH", "workbook does not match the requested document type"
	case errors.Is(err, domain.ErrInvalidDocType):
		return http.StatusBadRequest, "INVALID_DOCUMENT_TYPE", "unknown document_type value"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get(middleware.ContextKeyRequestID)
		log.Printf("[%s] internal error: %v", requestID, err)
	}

	var unknown *domain.UnknownDocumentError
	if errors.As(err, &unknown) {
		c.JSON(status, APIResponse{
			Success: false,
			Data:    UnknownDocumentDetail{Sheet: unknown.Sheet, Probes: unknown.Probes},
			Error:   &APIError{Code: code, Message: msg},
		})
		return
	}
	RespondError(c, status, code, msg)
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
