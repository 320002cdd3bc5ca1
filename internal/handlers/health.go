package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"storeadmin/internal/apperror"
	"storeadmin/internal/response"
)

// PingFunc reports whether the store is reachable.
type PingFunc func(ctx context.Context) error

// GET /health
func Health(ping PingFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			if err := ping(c.Request.Context()); err != nil {
				response.Error(c, apperror.Wrap(apperror.KindUnavailable, err, "database unavailable"))
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "status": "up"})
	}
}
