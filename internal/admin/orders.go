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

type OrderStore interface {
	ListNewestFirst(ctx context.Context, owner *primitive.ObjectID) ([]models.Order, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error
}

// ProductLookup resolves many product ids in one round trip.
type ProductLookup interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
}

type OrderSummary struct {
	OrderID     primitive.ObjectID `json:"orderId"`
	OrderStatus models.OrderStatus `json:"orderStatus"`
	Products    []SummaryLine      `json:"products"`
}

// SummaryLine is a display-ready line item. Name is empty when the product no
// longer exists.
type SummaryLine struct {
	Name  string `json:"name"`
	Qty   int    `json:"qty"`
	Color string `json:"color"`
	Size  string `json:"size"`
}

type Orders struct {
	orders   OrderStore
	products ProductLookup
}

func NewOrders(orders OrderStore, products ProductLookup) *Orders {
	return &Orders{orders: orders, products: products}
}

// UpdateStatus sets the order's status. Any status may follow any other.
func (o *Orders) UpdateStatus(ctx context.Context, p Principal, id primitive.ObjectID, status models.OrderStatus) error {
	if err := RequireAdmin(p); err != nil {
		return err
	}
	if !status.Valid() {
		return apperror.Validation(apperror.FieldError{
			Field:        "orderStatus",
			ErrorMessage: InvalidStatusMessage(),
		})
	}

	if _, err := o.orders.FindByID(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperror.NotFound("No order found")
		}
		return apperror.Wrap(apperror.KindInternal, err, "order lookup failed")
	}

	if err := o.orders.UpdateStatus(ctx, id, status); err != nil {
		return apperror.Persistence(err, "Order not saved")
	}

	logrus.WithFields(logrus.Fields{
		"orderId": id.Hex(),
		"status":  status,
	}).Info("order status updated")
	return nil
}

// Summaries lists every order, newest first, with product names resolved.
func (o *Orders) Summaries(ctx context.Context, p Principal) ([]OrderSummary, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	return o.summarize(ctx, nil)
}

// CustomerSummaries lists the caller's own orders, newest first.
func (o *Orders) CustomerSummaries(ctx context.Context, p Principal) ([]OrderSummary, error) {
	if p.UserID.IsZero() {
		return nil, apperror.Unauthorized()
	}
	owner := p.UserID
	return o.summarize(ctx, &owner)
}

func (o *Orders) summarize(ctx context.Context, owner *primitive.ObjectID) ([]OrderSummary, error) {
	orders, err := o.orders.ListNewestFirst(ctx, owner)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, err, "orders could not be fetched")
	}

	names := make(map[primitive.ObjectID]string)
	ids := make([]primitive.ObjectID, 0)
	for _, order := range orders {
		for _, item := range order.Items {
			if _, seen := names[item.ProductID]; seen {
				continue
			}
			names[item.ProductID] = ""
			ids = append(ids, item.ProductID)
		}
	}

	products, err := o.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, err, "products could not be fetched")
	}
	for _, product := range products {
		names[product.ID] = product.Name
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, order := range orders {
		lines := make([]SummaryLine, 0, len(order.Items))
		for _, item := range order.Items {
			lines = append(lines, SummaryLine{
				Name:  names[item.ProductID],
				Qty:   item.Quantity,
				Color: item.Color,
				Size:  item.Size,
			})
		}
		summaries = append(summaries, OrderSummary{
			OrderID:     order.ID,
			OrderStatus: order.Status,
			Products:    lines,
		})
	}
	return summaries, nil
}

// InvalidStatusMessage is reported for a status outside OrderStatuses.
func InvalidStatusMessage() string {
	msg := "Invalid status. Must be one of: "
	for i, status := range models.OrderStatuses {
		if i > 0 {
			msg += ", "
		}
		msg += string(status)
	}
	return msg
}
