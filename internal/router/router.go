package router

import (
	"github.com/gin-gonic/gin"

	"finsight/internal/handler"
	"finsight/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	allowedOrigins []string,
	healthH *handler.HealthHandler,
	companyH *handler.CompanyHandler,
	ingestH *handler.IngestHandler,
	periodH *handler.PeriodHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Stateless diagnostics
	v1.POST("/files/identify", ingestH.Identify)
	v1.POST("/periods/resolve", periodH.Resolve)

	// Companies and their stored records
	companies := v1.Group("/companies")
	companies.POST("", companyH.Create)
	companies.GET("", companyH.List)
	companies.GET("/:id", companyH.GetByID)
	companies.POST("/:id/uploads", ingestH.Upload)
	companies.GET("/:id/imports", companyH.ListImports)
	companies.GET("/:id/balance-sheets", companyH.ListBalanceSheets)
	companies.GET("/:id/income-statements", companyH.ListIncomeStatements)

	return r
}
