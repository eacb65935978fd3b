package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/gridiron/batch"
	"github.com/use-agent/gridiron/models"
)

// PostBatch returns a handler for POST /api/v1/batch.
func PostBatch(mgr *batch.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		job := mgr.Submit(req)
		c.JSON(http.StatusAccepted, models.BatchResponse{ID: job.ID, Status: models.BatchProcessing, Total: job.Total})
	}
}

// GetBatch returns a handler for GET /api/v1/batch/:id.
func GetBatch(mgr *batch.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		job, ok := mgr.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"error": models.ErrorDetail{Code: models.ErrCodeInvalidInput, Message: "batch job not found"},
			})
			return
		}
		c.JSON(http.StatusOK, job.Snapshot())
	}
}
