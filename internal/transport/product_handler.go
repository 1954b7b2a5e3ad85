package transport

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/domain"
	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/middleware"
	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/repository"
	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/service"
)

// CreateProductRequest represents the product creation payload. Price uses
// `required`, so a zero price is rejected at creation.
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"required,gte=0"`
	Description string  `json:"description" validate:"required"`
}

// UpdateProductRequest is an explicit partial patch; absent fields stay as
// they are. id and createdAt are not patchable.
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description" validate:"omitempty,min=1"`
}

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product creation validation failed", zap.Error(err))

		if msg := middleware.ValidationMessage(err); msg != "" {
			middleware.RespondWithError(w, http.StatusBadRequest, msg)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.Create(r.Context(), req.Name, req.Price, req.Description)
	if err != nil {
		h.logger.Error("Product creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("Product created", zap.String("product_id", product.ID.Hex()))
	middleware.RespondWithData(w, http.StatusCreated, product, "Product created successfully")
}

// List handles listing all products, newest first
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		h.logger.Error("Product listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	middleware.RespondWithCount(w, http.StatusOK, products, len(products))
}

// GetByID handles fetching a single product
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.productService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}

		h.logger.Error("Product lookup failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	middleware.RespondWithData(w, http.StatusOK, product, "")
}

// Update handles partial product updates
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product update validation failed", zap.Error(err))

		if msg := middleware.ValidationMessage(err); msg != "" {
			middleware.RespondWithError(w, http.StatusBadRequest, msg)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := domain.ProductPatch{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	}

	product, err := h.productService.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}

		h.logger.Error("Product update failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	middleware.RespondWithData(w, http.StatusOK, product, "Product updated successfully")
}

// Delete handles product deletion. Orders referencing the product keep their
// references.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.productService.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}

		h.logger.Error("Product deletion failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	middleware.RespondWithMessage(w, http.StatusOK, "Product deleted successfully")
}
