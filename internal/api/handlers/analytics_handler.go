// internal/api/handlers/analytics_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freshmart/retail-ops/backend-go/internal/domain"
	"github.com/freshmart/retail-ops/backend-go/internal/service"
)

const dateLayout = "2006-01-02"

type AnalyticsHandler struct {
	service *service.AnalyticsService
}

func NewAnalyticsHandler(svc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: svc}
}

// allValue reports whether the query value means "no restriction".
// The dashboard sends either "all" or the labelled variants
// ("All Regions", "All Stores", "All Suppliers").
func allValue(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "" || v == "all" || strings.HasPrefix(v, "all ")
}

// parseKPIFilter validates the query parameters and builds the filter
// criteria. Malformed input is rejected here, before any filtering
// begins, naming the offending field.
func (h *AnalyticsHandler) parseKPIFilter(c *gin.Context) (domain.KPIFilter, error) {
	var filter domain.KPIFilter

	start, err := time.Parse(dateLayout, c.Query("start_date"))
	if err != nil {
		return filter, fmt.Errorf("invalid start_date: expected YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, c.Query("end_date"))
	if err != nil {
		return filter, fmt.Errorf("invalid end_date: expected YYYY-MM-DD")
	}
	filter.Start = start
	// The end bound is inclusive for the whole day.
	filter.End = end.Add(24*time.Hour - time.Nanosecond)

	if raw := c.Query("region"); !allValue(raw) {
		region := domain.Region(raw)
		if !domain.ValidRegion(region) {
			return filter, fmt.Errorf("invalid region: %q", raw)
		}
		filter.Region = &region
	}

	if raw := c.Query("store"); !allValue(raw) {
		storeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("invalid store: expected a store id")
		}
		filter.StoreID = &storeID
	}

	if raw := c.Query("supplier"); !allValue(raw) {
		supplier := strings.TrimSpace(raw)
		filter.Supplier = &supplier
	}

	return filter, nil
}

func (h *AnalyticsHandler) GetKPI(c *gin.Context) {
	filter, err := h.parseKPIFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := h.service.GetKPIData(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build kpi snapshot", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, data)
}

func (h *AnalyticsHandler) ExportTopStores(c *gin.Context) {
	filter, err := h.parseKPIFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	csv, filename, err := h.service.ExportTopStores(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export top stores", "details": err.Error()})
		return
	}

	writeCSVAttachment(c, filename, csv)
}

func (h *AnalyticsHandler) GetSalesSummary(c *gin.Context) {
	dimension := domain.SummaryDimension(c.DefaultQuery("dimension", "store"))

	rows, err := h.service.GetSalesSummary(c.Request.Context(), dimension)
	if err != nil {
		if errors.Is(err, service.ErrUnknownDimension) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build sales summary", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dimension": dimension, "rows": rows})
}

func (h *AnalyticsHandler) ExportSalesSummary(c *gin.Context) {
	dimension := domain.SummaryDimension(c.DefaultQuery("dimension", "store"))

	csv, filename, err := h.service.ExportSalesSummary(c.Request.Context(), dimension)
	if err != nil {
		if errors.Is(err, service.ErrUnknownDimension) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export sales summary", "details": err.Error()})
		return
	}

	writeCSVAttachment(c, filename, csv)
}

func (h *AnalyticsHandler) GetManagerDashboard(c *gin.Context) {
	filter, err := h.parseKPIFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	storeID, err := strconv.ParseInt(c.Query("store_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid store_id: expected a store id"})
		return
	}
	filter.StoreID = &storeID

	data, err := h.service.GetManagerDashboard(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build manager dashboard", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, data)
}

func (h *AnalyticsHandler) GetFilterOptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.FilterOptions())
}

func writeCSVAttachment(c *gin.Context, filename string, csv []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", csv)
}
