package ports

import (
	"context"
	"time"

	"github.com/oladokun-o/engine/internal/core/domain"
)

// StatusUpdate describes a single compare-and-swap status change.
type StatusUpdate struct {
	OrderID   string
	From      domain.OrderStatus
	To        domain.OrderStatus
	CourierID string // empty keeps the current courier
	ActorID   string
	At        time.Time
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// List returns all orders, or only those owned by or assigned to
	// participantID when it is non-empty.
	List(ctx context.Context, participantID string) ([]*domain.Order, error)
	Delete(ctx context.Context, id string) error

	// UpdateStatus atomically sets the new status (and courier) and appends
	// a history entry, but only while the stored status still equals From.
	// Returns domain.ErrInvalidTransition when the status moved underneath.
	UpdateStatus(ctx context.Context, update StatusUpdate) error
}
