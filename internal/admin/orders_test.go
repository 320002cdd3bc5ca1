package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storeadmin/internal/apperror"
	"storeadmin/internal/models"
)

func summaryFixture() (*fakeOrders, *fakeProducts, models.Order, models.Order) {
	shirt := models.Product{ID: primitive.NewObjectID(), Name: "Shirt"}
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	o1 := models.Order{
		ID:        primitive.NewObjectID(),
		UserID:    customerPrincipal.UserID,
		Status:    models.OrderPending,
		CreatedAt: base,
		Items: []models.LineItem{
			{ProductID: shirt.ID, Quantity: 2, Color: "red", Size: "M"},
		},
	}
	o2 := models.Order{
		ID:        primitive.NewObjectID(),
		UserID:    primitive.NewObjectID(),
		Status:    models.OrderPending,
		CreatedAt: base.Add(time.Hour),
		Items: []models.LineItem{
			{ProductID: shirt.ID, Quantity: 1, Color: "blue"},
		},
	}
	return &fakeOrders{list: []models.Order{o1, o2}}, newFakeProducts(shirt), o1, o2
}

func TestSummariesNewestFirst(t *testing.T) {
	orders, products, o1, o2 := summaryFixture()
	engine := NewOrders(orders, products)

	summaries, err := engine.Summaries(context.Background(), adminPrincipal)
	require.NoError(t, err)

	assert.Equal(t, []OrderSummary{
		{
			OrderID:     o2.ID,
			OrderStatus: models.OrderPending,
			Products:    []SummaryLine{{Name: "Shirt", Qty: 1, Color: "blue", Size: ""}},
		},
		{
			OrderID:     o1.ID,
			OrderStatus: models.OrderPending,
			Products:    []SummaryLine{{Name: "Shirt", Qty: 2, Color: "red", Size: "M"}},
		},
	}, summaries)
}

func TestSummariesBatchProductLookup(t *testing.T) {
	orders, products, _, _ := summaryFixture()
	other := models.Product{ID: primitive.NewObjectID(), Name: "Cap"}
	products.byID[other.ID] = other
	orders.list[0].Items = append(orders.list[0].Items,
		models.LineItem{ProductID: other.ID, Quantity: 1, Color: "black"},
		models.LineItem{ProductID: other.ID, Quantity: 3, Color: "white"},
	)

	_, err := NewOrders(orders, products).Summaries(context.Background(), adminPrincipal)
	require.NoError(t, err)
	assert.Equal(t, 1, products.batchHits)
	assert.Equal(t, 1, products.calls)
}

func TestSummariesTolerateDanglingProduct(t *testing.T) {
	orders, products, o1, _ := summaryFixture()
	for id := range products.byID {
		delete(products.byID, id)
	}

	summaries, err := NewOrders(orders, products).Summaries(context.Background(), adminPrincipal)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	last := summaries[1]
	assert.Equal(t, o1.ID, last.OrderID)
	assert.Equal(t, "", last.Products[0].Name)
	assert.Equal(t, 2, last.Products[0].Qty)
}

func TestSummariesWithNoOrders(t *testing.T) {
	summaries, err := NewOrders(&fakeOrders{}, newFakeProducts()).Summaries(context.Background(), adminPrincipal)
	require.NoError(t, err)
	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}

func TestCustomerSummariesOnlyOwnOrders(t *testing.T) {
	orders, products, o1, _ := summaryFixture()

	summaries, err := NewOrders(orders, products).CustomerSummaries(context.Background(), customerPrincipal)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, o1.ID, summaries[0].OrderID)

	_, err = NewOrders(orders, products).CustomerSummaries(context.Background(), Principal{})
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
}

func TestUpdateStatus(t *testing.T) {
	orders, products, o1, _ := summaryFixture()
	engine := NewOrders(orders, products)

	require.NoError(t, engine.UpdateStatus(context.Background(), adminPrincipal, o1.ID, models.OrderDelivered))
	assert.Equal(t, models.OrderDelivered, orders.list[0].Status)

	// no transition graph: going back is allowed
	require.NoError(t, engine.UpdateStatus(context.Background(), adminPrincipal, o1.ID, models.OrderPending))
	assert.Equal(t, models.OrderPending, orders.list[0].Status)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	orders, products, _, _ := summaryFixture()
	before := append([]models.Order(nil), orders.list...)

	err := NewOrders(orders, products).UpdateStatus(context.Background(), adminPrincipal, primitive.NewObjectID(), models.OrderApproved)
	typed := apperror.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperror.KindNotFound, typed.Kind())
	assert.Equal(t, "No order found", typed.Message())
	assert.Equal(t, before, orders.list)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	orders, products, o1, _ := summaryFixture()

	err := NewOrders(orders, products).UpdateStatus(context.Background(), adminPrincipal, o1.ID, "Shipped")
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Zero(t, orders.calls)
}

func TestUpdateStatusPersistenceFailure(t *testing.T) {
	orders, products, o1, _ := summaryFixture()
	orders.updateErr = errors.New("not primary")

	err := NewOrders(orders, products).UpdateStatus(context.Background(), adminPrincipal, o1.ID, models.OrderApproved)
	typed := apperror.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperror.KindPersistence, typed.Kind())
	assert.Equal(t, models.OrderPending, orders.list[0].Status)
}

func TestOrdersRequireAdmin(t *testing.T) {
	orders, products, o1, _ := summaryFixture()
	engine := NewOrders(orders, products)

	err := engine.UpdateStatus(context.Background(), customerPrincipal, o1.ID, models.OrderApproved)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))

	_, err = engine.Summaries(context.Background(), customerPrincipal)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))

	assert.Zero(t, orders.calls)
	assert.Zero(t, products.calls)
	assert.Equal(t, models.OrderPending, orders.list[0].Status)
}

func TestInvalidStatusMessage(t *testing.T) {
	assert.Equal(t, "Invalid status. Must be one of: pending, Approved, Delivered", InvalidStatusMessage())
}
