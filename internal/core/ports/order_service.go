package ports

import (
	"context"

	"github.com/oladokun-o/engine/internal/core/domain"
)

// CreateOrderInput carries everything needed to place an order.
type CreateOrderInput struct {
	UserID   string
	Location domain.Location
	Details  domain.Details
	Payment  domain.Payment
}

// UpdateStatusInput requests a status change on an order.
type UpdateStatusInput struct {
	OrderID string
	Status  domain.OrderStatus
	// ActingUserID is the user performing the change; couriers become the
	// order's courier when they accept it.
	ActingUserID string
	// CallerID is the authenticated identity and must equal ActingUserID.
	CallerID string
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	Create(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	Get(ctx context.Context, callerID, orderID string) (*domain.Order, error)
	List(ctx context.Context, callerID string) ([]*domain.Order, error)
	Delete(ctx context.Context, callerID, orderID string) error
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*domain.Order, error)
}

// MessageService handles the chat attached to an order.
type MessageService interface {
	Create(ctx context.Context, senderID, orderID, content string) (*domain.Message, error)
	List(ctx context.Context, callerID, orderID string) ([]*domain.Message, error)
}
