// internal/api/handlers/recommend_handler.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/freshmart/retail-ops/backend-go/internal/dataset"
	"github.com/freshmart/retail-ops/backend-go/internal/recommend"
)

type RecommendHandler struct {
	src         dataset.Source
	recommender recommend.Recommender
}

func NewRecommendHandler(src dataset.Source, recommender recommend.Recommender) *RecommendHandler {
	return &RecommendHandler{src: src, recommender: recommender}
}

type recommendRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// GetRecommendation proxies the external AI collaborator. A
// collaborator failure is surfaced to the user as a distinct message,
// never replaced with a default recommendation.
func (h *RecommendHandler) GetRecommendation(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date: expected YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date: expected YYYY-MM-DD"})
		return
	}

	product, ok := h.src.ProductByID(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown product_id"})
		return
	}

	rec, err := h.recommender.Recommend(c.Request.Context(), product, start, end)
	if err != nil {
		var depErr *recommend.DependencyError
		if errors.As(err, &depErr) {
			log.Error().Err(depErr.Err).Int64("product_id", req.ProductID).Msg("recommendation dependency failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": depErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "recommendation failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rec)
}
