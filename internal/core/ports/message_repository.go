package ports

import (
	"context"

	"github.com/oladokun-o/engine/internal/core/domain"
)

// MessageRepository persists order chat messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	// ListByOrder returns messages ordered by timestamp, oldest first.
	ListByOrder(ctx context.Context, orderID string) ([]*domain.Message, error)
}
