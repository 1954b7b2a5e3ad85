package transport

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/middleware"
	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/repository"
	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/service"
)

// CreateOrderRequest represents the order creation payload. The reference
// sequence must be non-empty; duplicates are permitted and kept in order.
type CreateOrderRequest struct {
	UserID     string   `json:"userId" validate:"required"`
	ProductIDs []string `json:"productIds" validate:"required,min=1"`
}

// UpdateOrderRequest is an explicit partial patch. Patching productIds does
// not recompute the stored total.
type UpdateOrderRequest struct {
	UserID     *string  `json:"userId" validate:"omitempty,min=1"`
	ProductIDs []string `json:"productIds"`
}

// OrderHandler handles HTTP requests for order operations
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// Create handles order creation: validate, resolve products, derive total,
// persist, respond with expanded references.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order creation validation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "userId and productIds array are required")
		return
	}

	order, err := h.orderService.Create(r.Context(), req.UserID, req.ProductIDs)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "One or more products not found")
			return
		}

		h.logger.Error("Order creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("Order created",
		zap.String("order_id", order.ID.Hex()),
		zap.String("user_id", order.UserID),
		zap.Float64("total_amount", order.TotalAmount),
	)
	middleware.RespondWithData(w, http.StatusCreated, order, "Order created successfully")
}

// List handles listing all orders with expanded references, newest first
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.List(r.Context())
	if err != nil {
		h.logger.Error("Order listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	middleware.RespondWithCount(w, http.StatusOK, orders, len(orders))
}

// GetByID handles fetching a single order with expanded references
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}

		h.logger.Error("Order lookup failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	middleware.RespondWithData(w, http.StatusOK, order, "")
}

// Update handles partial order updates. The stored total stays as-is even
// when productIds changes.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order update validation failed", zap.Error(err))

		if msg := middleware.ValidationMessage(err); msg != "" {
			middleware.RespondWithError(w, http.StatusBadRequest, msg)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The `min=1` tag with omitempty would wave an empty slice through, so
	// the non-empty invariant is checked here.
	if req.ProductIDs != nil && len(req.ProductIDs) == 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "productIds must be a non-empty array")
		return
	}

	order, err := h.orderService.Update(r.Context(), chi.URLParam(r, "id"), req.UserID, req.ProductIDs)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "One or more products not found")
			return
		}

		h.logger.Error("Order update failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	middleware.RespondWithData(w, http.StatusOK, order, "Order updated successfully")
}

// Delete handles order deletion
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.orderService.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}

		h.logger.Error("Order deletion failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	middleware.RespondWithMessage(w, http.StatusOK, "Order deleted successfully")
}
