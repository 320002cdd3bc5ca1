package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderApproved  OrderStatus = "Approved"
	OrderDelivered OrderStatus = "Delivered"
)

// OrderStatuses lists every status an order may hold. Any status may follow any
// other.
var OrderStatuses = []OrderStatus{OrderPending, OrderApproved, OrderDelivered}

func (s OrderStatus) Valid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// LineItem is one purchased product variant. It is written once at checkout
// and never modified. ProductID is a weak reference: the product may have been
// removed since.
type LineItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Color     string             `bson:"color" json:"color"`
	Size      string             `bson:"size,omitempty" json:"size,omitempty"`
}

// Order defines the persisted order document.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Items     []LineItem         `bson:"items" json:"items"`
	Status    OrderStatus        `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
