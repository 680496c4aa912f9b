package controllers

import (
	"estoque-console/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Orders *services.OrderService
}

// @Summary List orders
// @Description Order history, newest first
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param atualizar query bool false "Force a refetch"
// @Success 200 {object} models.Response{data=[]models.OrderSummary}
// @Failure 502 {object} models.ErrorResponse
// @Router /api/pedidos [get]
func (ctrl *OrderController) List(c *gin.Context) {
	list := ctrl.Orders.List
	if c.Query("atualizar") == "true" {
		list = ctrl.Orders.Refresh
	}

	orders, err := list(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Orders retrieved", services.Summarize(orders))
}

// @Summary Get order
// @Description Order with its line items
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response{data=models.Order}
// @Failure 404 {object} models.ErrorResponse
// @Router /api/pedidos/{id} [get]
func (ctrl *OrderController) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.Orders.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Order retrieved", order)
}
