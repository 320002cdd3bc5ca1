package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storeadmin/internal/admin"
	"storeadmin/internal/apperror"
	"storeadmin/internal/response"
)

// GET /products
// Pagination is optional; without page and limit every available product is
// returned.
func GetProducts(catalog *admin.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			response.Error(c, err)
			return
		}

		products, err := catalog.Available(c.Request.Context(), page, limit)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "products": products})
	}
}

// GET /product?productId=<hex>
func GetProduct(catalog *admin.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query("productId")
		if raw == "" {
			response.Error(c, apperror.Validation(apperror.FieldError{Field: "productId", ErrorMessage: requiredMessage}))
			return
		}
		id, err := parseID("productId", raw)
		if err != nil {
			response.Error(c, err)
			return
		}

		product, err := catalog.Published(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "product": product})
	}
}
