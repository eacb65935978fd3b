package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/gridiron/models"
)

// StatusFor translates an error code to an HTTP status code.
func StatusFor(code string) int {
	switch code {
	case models.ErrCodeInvalidInput, models.ErrCodeUnknownPage:
		return http.StatusBadRequest // 400
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	case models.ErrCodePageShape:
		return http.StatusUnprocessableEntity // 422
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeNavigation:
		return http.StatusBadGateway // 502
	case models.ErrCodeTimeout:
		return http.StatusGatewayTimeout // 504
	default:
		return http.StatusInternalServerError // 500
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ParseResponse{
		Success: false,
		Error:   &models.ErrorDetail{Code: models.ErrCodeInvalidInput, Message: err.Error()},
	})
}
