package controllers

import (
	"estoque-console/models"
	"estoque-console/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

// @Summary Operator login
// @Description Login with the configured operator credential
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if !ctrl.Auth.Enabled() {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "operator login is disabled",
		})
		return
	}

	resp, err := ctrl.Auth.Login(req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	respondOK(c, http.StatusOK, "Login successful", resp)
}
