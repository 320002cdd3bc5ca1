package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storeadmin/internal/admin"
	"storeadmin/internal/apperror"
	"storeadmin/internal/middleware"
	"storeadmin/internal/models"
	"storeadmin/internal/response"
)

type productRequest struct {
	ProductID           formValue `json:"productId" validate:"optionalid"`
	ItemName            formValue `json:"itemName" validate:"required,itemname"`
	ItemPrice           formValue `json:"itemPrice" validate:"required,amount"`
	ItemDiscount        formValue `json:"itemDiscount" validate:"required,amount"`
	ItemDescription     formValue `json:"itemDescription" validate:"required"`
	ItemTag             formValue `json:"itemTag"`
	ItemCategory        formValue `json:"itemCategory"`
	ItemGender          formValue `json:"itemGender"`
	ItemAvailableSizes  sizeList  `json:"itemAvailableSizes"`
	ItemAvailableColors string    `json:"itemAvailableColors" validate:"required"`
	ItemAvailableImages string    `json:"itemAvailableImages" validate:"required"`
	Available           formValue `json:"available" validate:"omitempty,boolean"`
}

func (r productRequest) toInput() (admin.ProductInput, error) {
	price, err := parseAmount(r.ItemPrice.String())
	if err != nil {
		return admin.ProductInput{}, apperror.Validation(apperror.FieldError{Field: "itemPrice", ErrorMessage: "Invalid Item price"})
	}
	discount, err := parseAmount(r.ItemDiscount.String())
	if err != nil {
		return admin.ProductInput{}, apperror.Validation(apperror.FieldError{Field: "itemDiscount", ErrorMessage: "Invalid Item discount"})
	}

	available := false
	if r.Available != "" {
		available, _ = strconv.ParseBool(r.Available.String())
	}

	id, err := parseOptionalID("productId", r.ProductID.String())
	if err != nil {
		return admin.ProductInput{}, err
	}

	return admin.ProductInput{
		ID:          id,
		Name:        r.ItemName.String(),
		Price:       price,
		Discount:    discount,
		Description: r.ItemDescription.String(),
		Tag:         r.ItemTag.String(),
		Category:    r.ItemCategory.String(),
		Gender:      r.ItemGender.String(),
		Available:   available,
		Sizes:       []string(r.ItemAvailableSizes),
		Colors:      admin.SplitColors(r.ItemAvailableColors),
		Images:      admin.SplitImages(r.ItemAvailableImages),
	}, nil
}

// GET /admin/
func GetAllProducts(catalog *admin.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.List(c.Request.Context(), middleware.PrincipalFrom(c))
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "products": products})
	}
}

// GET /admin/product/:productId
// productId "null" means no product is selected; the response then carries
// only ok.
func GetProductByID(catalog *admin.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := middleware.PrincipalFrom(c)
		if err := admin.RequireAdmin(principal); err != nil {
			response.Error(c, err)
			return
		}

		id, err := parseOptionalID("productId", c.Param("productId"))
		if err != nil {
			response.Error(c, err)
			return
		}

		view, err := catalog.Get(c.Request.Context(), principal, id)
		if err != nil {
			response.Error(c, err)
			return
		}

		body := gin.H{"ok": true}
		if view.Product != nil {
			body["product"] = view.Product
			body["colors"] = view.Colors
			body["imgs"] = view.Images
		}
		c.JSON(http.StatusOK, body)
	}
}

// POST /admin/add-product
// Creates the product when productId is absent, otherwise replaces it.
func PostProduct(catalog *admin.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := middleware.PrincipalFrom(c)
		if err := admin.RequireAdmin(principal); err != nil {
			response.Error(c, err)
			return
		}

		var req productRequest
		if err := bindJSON(c, &req); err != nil {
			response.Error(c, err)
			return
		}

		input, err := req.toInput()
		if err != nil {
			response.Error(c, err)
			return
		}

		if _, err := catalog.Upsert(c.Request.Context(), principal, input); err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	}
}

// parseAmount parses a money value that the store can hold as Decimal128.
func parseAmount(raw string) (models.Decimal, error) {
	amount, err := models.ParseDecimal(raw)
	if err != nil {
		return models.Decimal{}, err
	}
	if _, err := primitive.ParseDecimal128(amount.String()); err != nil {
		return models.Decimal{}, err
	}
	return amount, nil
}
