package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/domain"
	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/repository"
)

// OrderService defines the interface for order business logic
type OrderService interface {
	Create(ctx context.Context, userID string, productIDs []string) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	Update(ctx context.Context, id string, userID *string, productIDs []string) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// Create resolves every referenced product in one batch lookup, derives the
// total as a price-at-order-time snapshot, persists the order, and returns it
// with the references expanded. Resolution and persistence are two separate
// store operations; a concurrent product deletion in between is best-effort.
func (s *orderService) Create(ctx context.Context, userID string, productIDs []string) (*domain.Order, error) {
	refs := make([]primitive.ObjectID, 0, len(productIDs))
	for _, id := range productIDs {
		oid, ok := parseObjectID(id)
		if !ok {
			return nil, repository.ErrProductNotFound
		}
		refs = append(refs, oid)
	}

	// Resolve the distinct id set; the batch query returns each matching
	// document once, however many times it is referenced.
	distinct := distinctIDs(refs)
	products, err := s.productRepo.FindByIDs(ctx, distinct)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}
	if len(products) != len(distinct) {
		return nil, repository.ErrProductNotFound
	}

	byID := make(map[primitive.ObjectID]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// Sum each occurrence in the original sequence; duplicates count each
	// time they appear.
	var total float64
	expanded := make([]*domain.Product, 0, len(refs))
	for _, ref := range refs {
		p := byID[ref]
		total += p.Price
		expanded = append(expanded, p)
	}

	order := &domain.Order{
		UserID:      userID,
		ProductIDs:  refs,
		TotalAmount: total,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	order.Products = expanded
	return order, nil
}

func (s *orderService) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, repository.ErrOrderNotFound
	}

	order, err := s.orderRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if err := s.populate(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (s *orderService) List(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.populate(ctx, orders...); err != nil {
		return nil, err
	}

	return orders, nil
}

// Update applies the patch and returns the populated result. The stored total
// is left alone even when the reference sequence changes.
func (s *orderService) Update(ctx context.Context, id string, userID *string, productIDs []string) (*domain.Order, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, repository.ErrOrderNotFound
	}

	patch := domain.OrderPatch{UserID: userID}
	if productIDs != nil {
		refs := make([]primitive.ObjectID, 0, len(productIDs))
		for _, pid := range productIDs {
			ref, ok := parseObjectID(pid)
			if !ok {
				return nil, repository.ErrProductNotFound
			}
			refs = append(refs, ref)
		}
		patch.ProductIDs = refs
	}

	order, err := s.orderRepo.Update(ctx, oid, patch)
	if err != nil {
		return nil, err
	}

	if err := s.populate(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (s *orderService) Delete(ctx context.Context, id string) error {
	oid, ok := parseObjectID(id)
	if !ok {
		return repository.ErrOrderNotFound
	}
	return s.orderRepo.Delete(ctx, oid)
}

// populate expands the stored product references of the given orders with one
// batch lookup. A dangling reference (product deleted after the order was
// created) expands to a nil placeholder rather than failing.
func (s *orderService) populate(ctx context.Context, orders ...*domain.Order) error {
	var all []primitive.ObjectID
	for _, order := range orders {
		all = append(all, order.ProductIDs...)
	}

	if len(all) == 0 {
		for _, order := range orders {
			order.Products = []*domain.Product{}
		}
		return nil
	}

	products, err := s.productRepo.FindByIDs(ctx, distinctIDs(all))
	if err != nil {
		return fmt.Errorf("failed to expand product references: %w", err)
	}

	byID := make(map[primitive.ObjectID]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, order := range orders {
		expanded := make([]*domain.Product, 0, len(order.ProductIDs))
		for _, ref := range order.ProductIDs {
			expanded = append(expanded, byID[ref])
		}
		order.Products = expanded
	}

	return nil
}

func distinctIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	distinct := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}
	return distinct
}
