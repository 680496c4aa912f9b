package controllers

import (
	"estoque-console/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Dashboard *services.DashboardService
}

// @Summary Dashboard
// @Description Stock-health alert cards; cards with a positive count link to the filtered catalog
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.Dashboard}
// @Failure 502 {object} models.ErrorResponse
// @Router /api/dashboard [get]
func (ctrl *DashboardController) Get(c *gin.Context) {
	dashboard, err := ctrl.Dashboard.Cards(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Dashboard retrieved", dashboard)
}
