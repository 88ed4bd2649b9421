package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

type MessageRepository struct {
	db DBTX
}

func NewMessageRepository(db DBTX) *MessageRepository {
	return &MessageRepository{db: db}
}

var _ ports.MessageRepository = (*MessageRepository)(nil)

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *msg
	created.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (id, order_id, sender_id, content, created_at) VALUES ($1, $2, $3, $4, $5)`,
		created.ID, created.OrderID, created.SenderID, created.Content, created.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &created, nil
}

func (r *MessageRepository) ListByOrder(ctx context.Context, orderID string) ([]*domain.Message, error) {
	if !validID(orderID) {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, sender_id, content, created_at FROM messages
		 WHERE order_id = $1 ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var msgs []*domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.OrderID, &m.SenderID, &m.Content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		msgs = append(msgs, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return msgs, nil
}
