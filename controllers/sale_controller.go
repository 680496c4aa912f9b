package controllers

import (
	"estoque-console/models"
	"estoque-console/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SaleController struct {
	Sales *services.SaleService
}

// @Summary Open sale
// @Description Start a sale draft with a fresh product list and an empty cart
// @Tags Sales
// @Security BearerAuth
// @Produce json
// @Success 201 {object} models.Response{data=models.SaleDraftView}
// @Failure 502 {object} models.ErrorResponse
// @Router /api/vendas/rascunhos [post]
func (ctrl *SaleController) Open(c *gin.Context) {
	draft, err := ctrl.Sales.Open(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Sale opened", draft)
}

// @Summary Get sale
// @Tags Sales
// @Security BearerAuth
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} models.Response{data=models.SaleDraftView}
// @Failure 404 {object} models.ErrorResponse
// @Router /api/vendas/rascunhos/{id} [get]
func (ctrl *SaleController) Get(c *gin.Context) {
	draft, err := ctrl.Sales.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Sale retrieved", draft)
}

// @Summary Add item
// @Description Add a product to the cart, merging with an existing line for the same product
// @Tags Sales
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body models.AddLineRequest true "Line"
// @Success 200 {object} models.Response{data=models.SaleDraftView}
// @Failure 422 {object} models.ErrorResponse
// @Router /api/vendas/rascunhos/{id}/itens [post]
func (ctrl *SaleController) AddLine(c *gin.Context) {
	var req models.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	draft, err := ctrl.Sales.AddLine(c.Param("id"), req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Item added", draft)
}

// @Summary Remove item
// @Tags Sales
// @Security BearerAuth
// @Produce json
// @Param id path string true "Draft ID"
// @Param produtoId path int true "Product ID"
// @Success 200 {object} models.Response{data=models.SaleDraftView}
// @Router /api/vendas/rascunhos/{id}/itens/{produtoId} [delete]
func (ctrl *SaleController) RemoveLine(c *gin.Context) {
	productID, ok := intParam(c, "produtoId")
	if !ok {
		return
	}

	draft, err := ctrl.Sales.RemoveLine(c.Param("id"), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Item removed", draft)
}

// @Summary Complete sale
// @Description Submit the cart as an order. On failure the cart is kept and the inventory message is returned.
// @Tags Sales
// @Security BearerAuth
// @Produce json
// @Param id path string true "Draft ID"
// @Success 201 {object} models.Response{data=models.SaleResult}
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /api/vendas/rascunhos/{id}/finalizar [post]
func (ctrl *SaleController) Submit(c *gin.Context) {
	result, err := ctrl.Sales.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, result.Message, result)
}

// @Summary Close sale
// @Description Discard the draft and its cart
// @Tags Sales
// @Security BearerAuth
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/vendas/rascunhos/{id} [delete]
func (ctrl *SaleController) Close(c *gin.Context) {
	if err := ctrl.Sales.Close(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Sale closed"})
}
