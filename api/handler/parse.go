package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/gridiron/models"
)

// Runner executes one parse request. The response is never nil.
type Runner interface {
	Run(ctx context.Context, req models.ParseRequest) (*models.ParseResponse, error)
}

// Parse returns a handler for POST /api/v1/parse.
func Parse(runner Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ParseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		resp, err := runner.Run(c.Request.Context(), req)
		if err != nil {
			status := http.StatusInternalServerError
			if resp.Error != nil {
				status = StatusFor(resp.Error.Code)
			}
			c.JSON(status, resp)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
