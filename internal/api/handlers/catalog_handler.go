// internal/api/handlers/catalog_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshmart/retail-ops/backend-go/internal/dataset"
)

type CatalogHandler struct {
	src dataset.Source
}

func NewCatalogHandler(src dataset.Source) *CatalogHandler {
	return &CatalogHandler{src: src}
}

func (h *CatalogHandler) GetProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.src.Products()})
}

func (h *CatalogHandler) GetSuppliers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suppliers": h.src.Suppliers()})
}

func (h *CatalogHandler) GetStores(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stores": h.src.Stores()})
}
