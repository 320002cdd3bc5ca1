package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storeadmin/internal/admin"
	"storeadmin/internal/middleware"
	"storeadmin/internal/models"
	"storeadmin/internal/response"
)

type orderStatusRequest struct {
	OrderID     formValue `json:"orderId" validate:"required,objectid"`
	OrderStatus formValue `json:"orderStatus" validate:"required,orderstatus"`
}

// POST /admin/updateOrderStatus
func PostOrderStatus(orders *admin.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := middleware.PrincipalFrom(c)
		if err := admin.RequireAdmin(principal); err != nil {
			response.Error(c, err)
			return
		}

		var req orderStatusRequest
		if err := bindJSON(c, &req); err != nil {
			response.Error(c, err)
			return
		}

		id, err := parseID("orderId", req.OrderID.String())
		if err != nil {
			response.Error(c, err)
			return
		}

		status := models.OrderStatus(req.OrderStatus.String())
		if err := orders.UpdateStatus(c.Request.Context(), principal, id, status); err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// GET /admin/orders
func GetAllOrders(orders *admin.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries, err := orders.Summaries(c.Request.Context(), middleware.PrincipalFrom(c))
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "ordersSummary": summaries})
	}
}
