package controllers

import (
	"errors"
	"estoque-console/models"
	"estoque-console/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.Response{Success: true, Message: message, Data: data})
}

// respondError answers with the status and message carried by a service error.
// Anything else is reported as an internal error.
func respondError(c *gin.Context, err error) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		_ = c.Error(err)
		c.JSON(svcErr.HTTPStatus(), models.ErrorResponse{
			Success: false,
			Message: svcErr.Message,
			Error:   svcErr.Kind.String(),
		})
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Success: false,
		Message: "internal error",
		Error:   err.Error(),
	})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
		Success: false,
		Message: "invalid request body",
		Error:   err.Error(),
	})
}

func intParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "invalid " + name,
		})
		return 0, false
	}
	return id, true
}
