package handlers

import (
	"net/http"

	"github.com/SscSPs/invoice_drafting_app/internal/dto"
	"github.com/gin-gonic/gin"
)

func registerCatalogRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog", getCatalog)
}

// getCatalog godoc
// @Summary List form catalogs
// @Description Vendors with their addresses, departments, accounts, locations and purchase orders.
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.CatalogResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /catalog [get]
func getCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewCatalogResponse())
}
