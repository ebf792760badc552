// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/freshmart/retail-ops/backend-go/internal/api/handlers"
	"github.com/freshmart/retail-ops/backend-go/internal/api/middleware"
	"github.com/freshmart/retail-ops/backend-go/internal/dataset"
	"github.com/freshmart/retail-ops/backend-go/internal/recommend"
	"github.com/freshmart/retail-ops/backend-go/internal/service"
)

type Services struct {
	Analytics   *service.AnalyticsService
	Source      dataset.Source
	Recommender recommend.Recommender
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Logger(),
		middleware.Recovery(),
	)

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.Analytics != nil {
			analyticsHandler := handlers.NewAnalyticsHandler(services.Analytics)
			analyticsGroup := apiGroup.Group("/analytics")
			{
				analyticsGroup.GET("/kpi", analyticsHandler.GetKPI)
				analyticsGroup.GET("/kpi/top-stores/export", analyticsHandler.ExportTopStores)
				analyticsGroup.GET("/sales-summary", analyticsHandler.GetSalesSummary)
				analyticsGroup.GET("/sales-summary/export", analyticsHandler.ExportSalesSummary)
				analyticsGroup.GET("/manager-dashboard", analyticsHandler.GetManagerDashboard)
			}
			apiGroup.GET("/filters", analyticsHandler.GetFilterOptions)
		}

		if services.Source != nil {
			catalogHandler := handlers.NewCatalogHandler(services.Source)
			catalogGroup := apiGroup.Group("/catalog")
			{
				catalogGroup.GET("/products", catalogHandler.GetProducts)
				catalogGroup.GET("/suppliers", catalogHandler.GetSuppliers)
				catalogGroup.GET("/stores", catalogHandler.GetStores)
			}
		}

		if services.Recommender != nil && services.Source != nil {
			recommendHandler := handlers.NewRecommendHandler(services.Source, services.Recommender)
			apiGroup.POST("/recommendation", recommendHandler.GetRecommendation)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
