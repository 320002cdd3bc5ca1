package admin

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storeadmin/internal/database"
	"storeadmin/internal/models"
)

type fakeProducts struct {
	byID       map[primitive.ObjectID]models.Product
	calls      int
	batchHits  int
	insertErr  error
	replaceErr error
	findErr    error
}

func newFakeProducts(products ...models.Product) *fakeProducts {
	f := &fakeProducts{byID: map[primitive.ObjectID]models.Product{}}
	for _, p := range products {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProducts) FindAll(context.Context) ([]models.Product, error) {
	f.calls++
	out := make([]models.Product, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, f.findErr
}

func (f *fakeProducts) FindAvailable(_ context.Context, _, _ int64) ([]models.Product, error) {
	f.calls++
	out := make([]models.Product, 0)
	for _, p := range f.byID {
		if p.Available {
			out = append(out, p)
		}
	}
	return out, f.findErr
}

func (f *fakeProducts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	f.calls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProducts) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	f.calls++
	f.batchHits++
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, f.findErr
}

func (f *fakeProducts) Insert(_ context.Context, p *models.Product) (primitive.ObjectID, error) {
	f.calls++
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now()
	f.byID[p.ID] = *p
	return p.ID, nil
}

func (f *fakeProducts) Replace(_ context.Context, p *models.Product) error {
	f.calls++
	if f.replaceErr != nil {
		return f.replaceErr
	}
	if _, ok := f.byID[p.ID]; !ok {
		return database.ErrNoResult
	}
	f.byID[p.ID] = *p
	return nil
}

type fakeOrders struct {
	list      []models.Order
	calls     int
	updateErr error
}

func (f *fakeOrders) ListNewestFirst(_ context.Context, owner *primitive.ObjectID) ([]models.Order, error) {
	f.calls++
	out := make([]models.Order, 0, len(f.list))
	for _, o := range f.list {
		if owner == nil || o.UserID == *owner {
			out = append(out, o)
		}
	}
	// newest first, like the store-level sort
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (f *fakeOrders) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	f.calls++
	for _, o := range f.list {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	f.calls++
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.list {
		if f.list[i].ID == id {
			f.list[i].Status = status
			return nil
		}
	}
	return database.ErrNoResult
}

var (
	adminPrincipal    = Principal{UserID: primitive.NewObjectID(), IsAdmin: true}
	customerPrincipal = Principal{UserID: primitive.NewObjectID(), IsAdmin: false}
)
