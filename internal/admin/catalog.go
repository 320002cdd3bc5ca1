package admin

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storeadmin/internal/apperror"
	"storeadmin/internal/database"
	"storeadmin/internal/models"
)

// ProductStore is the subset of the products collection the catalog uses.
type ProductStore interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindAvailable(ctx context.Context, page, limit int64) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Insert(ctx context.Context, product *models.Product) (primitive.ObjectID, error)
	Replace(ctx context.Context, product *models.Product) error
}

// ProductInput is a complete product submission. A nil ID creates a new
// product; otherwise every mutable field of the existing one is overwritten.
type ProductInput struct {
	ID          *primitive.ObjectID
	Name        string
	Price       models.Decimal
	Discount    models.Decimal
	Description string
	Tag         string
	Category    string
	Gender      string
	Available   bool
	Sizes       []string
	Colors      []string
	Images      []string
}

// ProductView is a product prepared for the edit form, with colors and images
// joined back into their wire form.
type ProductView struct {
	Product *models.Product
	Colors  string
	Images  string
}

type Catalog struct {
	products ProductStore
}

func NewCatalog(products ProductStore) *Catalog {
	return &Catalog{products: products}
}

// CheckImageCount enforces six images per color.
func CheckImageCount(colors, images []string) error {
	if len(colors)*models.ImagesPerColor != len(images) {
		return apperror.Validation(apperror.FieldError{
			Field:        "itemAvailableImages",
			ErrorMessage: "Images has to be 6 multiple of sizes",
		})
	}
	return nil
}

func (c *Catalog) List(ctx context.Context, p Principal) ([]models.Product, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}

	products, err := c.products.FindAll(ctx)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, err, "products could not be fetched")
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// Get loads one product for editing. A nil id means nothing is selected and
// yields an empty view.
func (c *Catalog) Get(ctx context.Context, p Principal, id *primitive.ObjectID) (ProductView, error) {
	if err := RequireAdmin(p); err != nil {
		return ProductView{}, err
	}
	if id == nil {
		return ProductView{}, nil
	}

	product, err := c.lookup(ctx, *id)
	if err != nil {
		return ProductView{}, err
	}
	return ProductView{
		Product: product,
		Colors:  JoinColors(product.Colors),
		Images:  JoinImages(product.Images),
	}, nil
}

// Upsert creates or fully overwrites a product and returns its id.
func (c *Catalog) Upsert(ctx context.Context, p Principal, in ProductInput) (primitive.ObjectID, error) {
	if err := RequireAdmin(p); err != nil {
		return primitive.NilObjectID, err
	}
	if err := CheckImageCount(in.Colors, in.Images); err != nil {
		return primitive.NilObjectID, err
	}

	if in.ID != nil {
		return c.update(ctx, *in.ID, in)
	}
	return c.create(ctx, in)
}

func (c *Catalog) update(ctx context.Context, id primitive.ObjectID, in ProductInput) (primitive.ObjectID, error) {
	existing, err := c.products.FindByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return primitive.NilObjectID, apperror.NotFound("product not found")
	}
	if err != nil {
		return primitive.NilObjectID, apperror.Wrap(apperror.KindInternal, err, "product lookup failed")
	}

	applyInput(existing, in)
	if err := c.products.Replace(ctx, existing); err != nil {
		return primitive.NilObjectID, apperror.Persistence(err, "product update failed")
	}

	logrus.WithField("productId", id.Hex()).Info("product updated")
	return id, nil
}

func (c *Catalog) create(ctx context.Context, in ProductInput) (primitive.ObjectID, error) {
	product := &models.Product{}
	applyInput(product, in)

	id, err := c.products.Insert(ctx, product)
	if err != nil {
		return primitive.NilObjectID, apperror.Persistence(err, "Error occured while saving product")
	}
	if id.IsZero() {
		return primitive.NilObjectID, apperror.Persistence(database.ErrNoResult, "Error occured while saving product")
	}

	logrus.WithField("productId", id.Hex()).Info("product created")
	return id, nil
}

// Available lists the products open for sale. It needs no principal.
func (c *Catalog) Available(ctx context.Context, page, limit int64) ([]models.Product, error) {
	products, err := c.products.FindAvailable(ctx, page, limit)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, err, "products could not be fetched")
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// Published returns a product for the storefront. Products that are not
// available are reported as missing.
func (c *Catalog) Published(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := c.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.Available {
		return nil, apperror.NotFound("No product found with id " + id.Hex())
	}
	return product, nil
}

func (c *Catalog) lookup(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := c.products.FindByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperror.NotFound("No product found with id " + id.Hex())
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, err, "product lookup failed")
	}
	return product, nil
}

// applyInput overwrites every mutable field. Nothing from the previous state
// survives except identity and creation time.
func applyInput(product *models.Product, in ProductInput) {
	product.Name = in.Name
	product.Price = in.Price
	product.Discount = in.Discount
	product.Description = in.Description
	product.Tag = in.Tag
	product.Category = in.Category
	product.Gender = in.Gender
	product.Available = in.Available
	product.Sizes = models.StringList(cloneStrings(in.Sizes))
	product.Colors = cloneStrings(in.Colors)
	product.Images = cloneStrings(in.Images)
}

func cloneStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}
