package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/domain"
	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/repository"
)

// ProductService defines the interface for product business logic
type ProductService interface {
	Create(ctx context.Context, name string, price float64, description string) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) Create(ctx context.Context, name string, price float64, description string) (*domain.Product, error) {
	product := &domain.Product{
		Name:        name,
		Price:       price,
		Description: description,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *productService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return s.productRepo.FindByID(ctx, oid)
}

func (s *productService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *productService) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return s.productRepo.Update(ctx, oid, patch)
}

func (s *productService) Delete(ctx context.Context, id string) error {
	oid, ok := parseObjectID(id)
	if !ok {
		return repository.ErrProductNotFound
	}
	return s.productRepo.Delete(ctx, oid)
}

// parseObjectID maps an id string to an ObjectID. An id that is not valid hex
// cannot name any stored document, so callers treat a failure as not-found.
func parseObjectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
