package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/domain"
	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/repository"
	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/service"
)

// envelope mirrors the response wrapper for assertions.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
}

// Mock repositories for testing

type mockProductRepository struct {
	products map[primitive.ObjectID]*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[primitive.ObjectID]*domain.Product)}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now().UTC()
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (m *mockProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*domain.Product, error) {
	seen := make(map[primitive.ObjectID]struct{})
	found := []*domain.Product{}
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if product, ok := m.products[id]; ok {
			found = append(found, product)
		}
	}
	return found, nil
}

func (m *mockProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	products := []*domain.Product{}
	for _, p := range m.products {
		products = append(products, p)
	}
	return products, nil
}

func (m *mockProductRepository) Update(ctx context.Context, id primitive.ObjectID, patch domain.ProductPatch) (*domain.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	return product, nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

type mockOrderRepository struct {
	orders map[primitive.ObjectID]*domain.Order
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[primitive.ObjectID]*domain.Order)}
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now().UTC()
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

func (m *mockOrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	orders := []*domain.Order{}
	for _, o := range m.orders {
		orders = append(orders, o)
	}
	return orders, nil
}

func (m *mockOrderRepository) Update(ctx context.Context, id primitive.ObjectID, patch domain.OrderPatch) (*domain.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	if patch.UserID != nil {
		order.UserID = *patch.UserID
	}
	if patch.ProductIDs != nil {
		order.ProductIDs = patch.ProductIDs
	}
	return order, nil
}

func (m *mockOrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := m.orders[id]; !ok {
		return repository.ErrOrderNotFound
	}
	delete(m.orders, id)
	return nil
}

type mockUserRepository struct {
	users  map[string]*domain.User
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	if _, exists := m.users[username]; exists {
		return nil, repository.ErrUsernameTaken
	}
	m.nextID++
	user := &domain.User{
		ID:           m.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	m.users[username] = user
	return user, nil
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, exists := m.users[username]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	users := []*domain.User{}
	for _, u := range m.users {
		users = append(users, &domain.User{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt})
	}
	return users, nil
}

var (
	_ repository.ProductRepository = (*mockProductRepository)(nil)
	_ repository.OrderRepository   = (*mockOrderRepository)(nil)
	_ repository.UserRepository    = (*mockUserRepository)(nil)
)

// noopLimiter stands in for the Redis rate limiter in handler tests.
func noopLimiter(next http.Handler) http.Handler {
	return next
}

// newTestRouter wires real services over mock repositories behind the same
// /api routes the server registers.
func newTestRouter() (chi.Router, *mockProductRepository, *mockOrderRepository, *mockUserRepository) {
	logger := zap.NewNop()

	productRepo := newMockProductRepository()
	orderRepo := newMockOrderRepository()
	userRepo := newMockUserRepository()

	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo, productRepo)
	userService := service.NewUserService(userRepo)

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		NewProductHandler(productService, logger).RegisterRoutes(r)
		NewOrderHandler(orderService, logger).RegisterRoutes(r)
		NewUserHandler(userService, logger).RegisterRoutes(r, noopLimiter)
	})

	return router, productRepo, orderRepo, userRepo
}
