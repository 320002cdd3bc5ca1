package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storeadmin/internal/admin"
	"storeadmin/internal/middleware"
	"storeadmin/internal/response"
)

// GET /orders
// Lists the caller's own orders, newest first.
func GetMyOrders(orders *admin.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries, err := orders.CustomerSummaries(c.Request.Context(), middleware.PrincipalFrom(c))
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "ordersSummary": summaries})
	}
}
