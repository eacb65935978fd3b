package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/gridiron/models"
	"github.com/use-agent/gridiron/pages"
)

// Pages returns a handler for GET /api/v1/pages listing every page type.
func Pages() gin.HandlerFunc {
	list := pages.List()
	types := make([]models.PageType, len(list))
	for i, p := range list {
		types[i] = models.PageType{Name: p.Name, Description: p.Description, Path: p.Path, Params: p.Params}
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pages": types})
	}
}
