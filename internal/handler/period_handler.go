package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"finsight/internal/service"
)

// ResolvePeriodRequest carries one raw cell value. Value may be a string,
// a number or null.
type ResolvePeriodRequest struct {
	Value json.RawMessage `json:"value"`
}

// PeriodHandler exposes the period cascade for diagnosing templates.
type PeriodHandler struct {
	periodService service.PeriodService
}

// NewPeriodHandler creates a new PeriodHandler.
func NewPeriodHandler(periodService service.PeriodService) *PeriodHandler {
	return &PeriodHandler{periodService: periodService}
}

// Resolve handles POST /api/v1/periods/resolve
// @Summary Resolve a cell value to a reporting period
// @Tags periods
// @Accept json
// @Produce json
// @Param request body ResolvePeriodRequest true "Raw cell value"
// @Success 200 {object} APIResponse{data=service.PeriodResolution}
// @Router /periods/resolve [post]
func (h *PeriodHandler) Resolve(c *gin.Context) {
	var req ResolvePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	var value any
	if len(req.Value) > 0 {
		dec := json.NewDecoder(bytes.NewReader(req.Value))
		dec.UseNumber()
		if err := dec.Decode(&value); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "value must be a string, number or null")
			return
		}
	}
	switch value.(type) {
	case nil, string, json.Number, bool:
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "value must be a string, number or null")
		return
	}

	RespondOK(c, h.periodService.Resolve(value))
}
