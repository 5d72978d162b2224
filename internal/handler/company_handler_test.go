package handler_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"finsight/internal/domain"
	"finsight/internal/handler"
	"finsight/internal/service"
	"finsight/mocks"
)

func TestCompanyHandler_Create_Success(t *testing.T) {
	mockSvc := new(mocks.MockCompanyService)
	h := handler.NewCompanyHandler(mockSvc)

	company := &domain.Company{ID: uuid.New(), Name: "星辰科技", CreditCode: "91310000MA1FL0001X"}
	mockSvc.On("Create", mock.Anything, service.CreateCompanyInput{Name: "星辰科技", CreditCode: "91310000MA1FL0001X"}).
		Return(company, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/companies",
		bytes.NewBufferString(`{"name":"星辰科技","credit_code":"91310000MA1FL0001X"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
	mockSvc.AssertExpectations(t)
}

func TestCompanyHandler_Create_MissingFields(t *testing.T) {
	mockSvc := new(mocks.MockCompanyService)
	h := handler.NewCompanyHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/companies", bytes.NewBufferString(`{"name":"x"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeResponse(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCompanyHandler_Create_Duplicate(t *testing.T) {
	mockSvc := new(mocks.MockCompanyService)
	h := handler.NewCompanyHandler(mockSvc)
	mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateCreditCode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/companies",
		bytes.NewBufferString(`{"name":"a","credit_code":"b"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_CREDIT_CODE", decodeResponse(t, w).Error.Code)
}

func TestCompanyHandler_GetByID_NotFound(t *testing.T) {
	mockSvc := new(mocks.MockCompanyService)
	h := handler.NewCompanyHandler(mockSvc)
	id := uuid.New()
	mockSvc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrCompanyNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/companies/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompanyHandler_List_Pagination(t *testing.T) {
	mockSvc := new(mocks.MockCompanyService)
	h := handler.NewCompanyHandler(mockSvc)
	mockSvc.On("List", mock.Anything, 40, 20).Return([]domain.Company{{ID: uuid.New()}}, 41, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/companies?offset=40&limit=500", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, &handler.PagMeta{Total: 41, Offset: 40, Limit: 20}, resp.Meta)
	mockSvc.AssertExpectations(t)
}

func TestCompanyHandler_ListRecords(t *testing.T) {
	mockSvc := new(mocks.MockCompanyService)
	h := handler.NewCompanyHandler(mockSvc)
	id := uuid.New()

	mockSvc.On("ListBalanceSheets", mock.Anything, id, 0, 20).Return([]domain.StoredBalanceSheet{}, 0, nil)
	mockSvc.On("ListIncomeStatements", mock.Anything, id, 0, 20).Return([]domain.StoredIncomeStatement{}, 0, nil)
	mockSvc.On("ListImports", mock.Anything, id, 0, 20).Return([]domain.Import{}, 0, nil)

	for _, fn := range []gin.HandlerFunc{h.ListBalanceSheets, h.ListIncomeStatements, h.ListImports} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		fn(c)

		assert.Equal(t, http.StatusOK, w.Code)
	}
	mockSvc.AssertExpectations(t)
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", nil)
	handler.NewHealthHandler(stubPinger{}).Readiness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", nil)
	handler.NewHealthHandler(stubPinger{err: assert.AnError}).Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
