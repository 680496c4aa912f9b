package controllers

import (
	"estoque-console/models"
	"estoque-console/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	Catalog *services.CatalogService
}

// @Summary List products
// @Description List the catalog, narrowed by a stock-health filter or a free-text search
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param filtro query string false "Stock-health filter" Enums(VENCIDOS, VENCENDO, BAIXO_ESTOQUE, SEM_ESTOQUE)
// @Param busca query string false "Search by name, brand or category (ignored when filtro is set)"
// @Param atualizar query bool false "Fetch a fresh list instead of searching the loaded one"
// @Success 200 {object} models.Response{data=models.CatalogView}
// @Failure 422 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /api/produtos [get]
func (ctrl *ProductController) List(c *gin.Context) {
	filter, ok := models.ParseCatalogFilter(c.Query("filtro"))
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Success: false,
			Message: "invalid filter",
			Error:   c.Query("filtro"),
		})
		return
	}

	list := ctrl.Catalog.List
	if c.Query("atualizar") == "true" {
		list = ctrl.Catalog.Reload
	}

	view, err := list(c.Request.Context(), filter, c.Query("busca"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Products retrieved", view)
}

// @Summary List categories
// @Description Fixed product categories with display labels
// @Tags Products
// @Produce json
// @Success 200 {object} models.Response{data=[]models.CategoryOption}
// @Router /api/categorias [get]
func (ctrl *ProductController) Categories(c *gin.Context) {
	respondOK(c, http.StatusOK, "Categories retrieved", ctrl.Catalog.Categories())
}

// @Summary Create product
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ProductRequest true "Product"
// @Success 201 {object} models.Response{data=models.Product}
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /api/produtos [post]
func (ctrl *ProductController) Create(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := ctrl.Catalog.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Product created", product)
}

// @Summary Update product
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body models.ProductRequest true "Product"
// @Success 200 {object} models.Response{data=models.Product}
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/produtos/{id} [put]
func (ctrl *ProductController) Update(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := ctrl.Catalog.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Product updated", product)
}

// @Summary Delete product
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/produtos/{id} [delete]
func (ctrl *ProductController) Delete(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.Catalog.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Product deleted", nil)
}
