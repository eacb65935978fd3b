package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/gridiron/cleaner"
	"github.com/use-agent/gridiron/models"
)

// Tables returns a handler for POST /api/v1/tables. It lists every table on
// the posted page, hidden ones included, and optionally returns the markup
// matched by a CSS selector after unwrapping.
func Tables() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.TablesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		found, err := cleaner.ListTables(req.HTML)
		if err != nil {
			badRequest(c, err)
			return
		}
		resp := models.TablesResponse{Success: true, Tables: make([]models.TableEntry, len(found))}
		for i, t := range found {
			resp.Tables[i] = models.TableEntry{ID: t.ID, Classes: t.Classes, Rows: t.Rows, Hidden: t.Hidden}
		}

		if req.Selector != "" {
			if resp.HTML, err = cleaner.ApplyCSSSelector(req.HTML, req.Selector); err != nil {
				badRequest(c, err)
				return
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}
