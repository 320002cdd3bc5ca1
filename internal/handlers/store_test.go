package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storeadmin/internal/admin"
	"storeadmin/internal/database"
	"storeadmin/internal/middleware"
	"storeadmin/internal/models"
)

const testSecret = "handler-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// memStore keeps products and orders in memory behind the store interfaces
// the engines depend on.
type memStore struct {
	mu            sync.Mutex
	products      map[primitive.ObjectID]models.Product
	orders        map[primitive.ObjectID]models.Order
	findByIDsHits int
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[primitive.ObjectID]models.Product),
		orders:   make(map[primitive.ObjectID]models.Order),
	}
}

func (s *memStore) FindAll(context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *memStore) FindAvailable(_ context.Context, page, limit int64) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, 0)
	for _, p := range s.products {
		if p.Available {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 {
		start := (page - 1) * limit
		if start >= int64(len(out)) {
			return []models.Product{}, nil
		}
		end := start + limit
		if end > int64(len(out)) {
			end = int64(len(out))
		}
		out = out[start:end]
	}
	return out, nil
}

func (s *memStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &p, nil
}

func (s *memStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.findByIDsHits++
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memStore) Insert(_ context.Context, product *models.Product) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	s.products[product.ID] = *product
	return product.ID, nil
}

func (s *memStore) Replace(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ID]; !ok {
		return database.ErrNoResult
	}
	s.products[product.ID] = *product
	return nil
}

func (s *memStore) seedProduct(p models.Product) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.products[p.ID] = p
	return p.ID
}

func (s *memStore) productCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products)
}

func (s *memStore) product(id primitive.ObjectID) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id]
}

func (s *memStore) ListNewestFirst(_ context.Context, owner *primitive.ObjectID) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if owner != nil && o.UserID != *owner {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// orderStore adapts memStore to admin.OrderStore; FindByID is taken by the
// product side.
type orderStore struct{ *memStore }

func (s orderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &o, nil
}

func (s orderStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return database.ErrNoResult
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	s.orders[id] = o
	return nil
}

func (s *memStore) seedOrder(o models.Order) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	s.orders[o.ID] = o
	return o.ID
}

func (s *memStore) order(id primitive.ObjectID) models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id]
}

type fakeUsers map[string]models.User

func (f fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f[email]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &user, nil
}

type testEnv struct {
	store   *memStore
	catalog *admin.Catalog
	orders  *admin.Orders
}

func newTestEnv() *testEnv {
	store := newMemStore()
	return &testEnv{
		store:   store,
		catalog: admin.NewCatalog(store),
		orders:  admin.NewOrders(orderStore{store}, store),
	}
}

// engine mounts the handlers the way the service does.
func (e *testEnv) engine() *gin.Engine {
	r := gin.New()
	r.GET("/products", GetProducts(e.catalog))
	r.GET("/product", GetProduct(e.catalog))
	r.GET("/orders", middleware.AuthGuard(testSecret), GetMyOrders(e.orders))

	g := r.Group("/admin", middleware.AuthGuard(testSecret))
	g.GET("/", GetAllProducts(e.catalog))
	g.GET("/product/:productId", GetProductByID(e.catalog))
	g.POST("/add-product", PostProduct(e.catalog))
	g.POST("/updateOrderStatus", PostOrderStatus(e.orders))
	g.GET("/orders", GetAllOrders(e.orders))
	return r
}

func token(t *testing.T, userID primitive.ObjectID, isAdmin bool) string {
	t.Helper()
	signed, err := middleware.IssueToken(testSecret, userID, isAdmin, time.Hour)
	require.NoError(t, err)
	return signed
}

func adminToken(t *testing.T) string {
	return token(t, primitive.NewObjectID(), true)
}

func do(t *testing.T, r http.Handler, method, path, bearer string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	decoded := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), w.Body.String())
	}
	return w, decoded
}

func fieldMessagesOf(body map[string]any) map[string]string {
	out := map[string]string{}
	fields, _ := body["errorFields"].([]any)
	for _, raw := range fields {
		field := raw.(map[string]any)
		out[field["field"].(string)] = field["errorMessage"].(string)
	}
	return out
}
