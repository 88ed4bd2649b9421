package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

// OrderRepository keeps the order row and its status history in separate
// tables and writes them together in one transaction.
type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

var _ ports.OrderRepository = (*OrderRepository)(nil)

const orderSelect = `SELECT o.id, o.status, o.location, o.details, o.payment, o.user_id,
	COALESCE(o.courier_id::text, ''), o.created_at, o.updated_at,
	COALESCE((SELECT json_agg(json_build_object('status', h.status, 'timestamp', h.at, 'actor_id', h.actor_id) ORDER BY h.id)
	          FROM order_status_history h WHERE h.order_id = o.id), '[]'::json)
	FROM orders o`

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o                                   domain.Order
		status                              string
		location, details, payment, history []byte
	)
	err := row.Scan(&o.ID, &status, &location, &details, &payment, &o.UserID, &o.CourierID,
		&o.CreatedAt, &o.UpdatedAt, &history)
	if err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	for _, part := range []struct {
		raw []byte
		dst any
	}{
		{location, &o.Location},
		{details, &o.Details},
		{payment, &o.Payment},
		{history, &o.StatusHistory},
	} {
		if err := json.Unmarshal(part.raw, part.dst); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
	}
	return &o, nil
}

// Create inserts the order and its initial history in one transaction.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	location, err := json.Marshal(o.Location)
	if err != nil {
		return nil, fmt.Errorf("encode location: %w", err)
	}
	details, err := json.Marshal(o.Details)
	if err != nil {
		return nil, fmt.Errorf("encode details: %w", err)
	}
	payment, err := json.Marshal(o.Payment)
	if err != nil {
		return nil, fmt.Errorf("encode payment: %w", err)
	}

	created := *o
	created.ID = uuid.NewString()

	err = WithTx(ctx, r.db, nil, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO orders (id, status, location, details, payment, user_id, courier_id, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::uuid, $8, $9)`,
			created.ID, string(created.Status), string(location), string(details), string(payment),
			created.UserID, created.CourierID, created.CreatedAt, created.UpdatedAt)
		if err != nil {
			return err
		}
		for _, h := range created.StatusHistory {
			if err := insertHistory(ctx, tx, created.ID, h); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &created, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	if !validID(id) {
		return nil, domain.ErrOrderNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	o, err := scanOrder(r.db.QueryRowContext(ctx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return o, nil
}

func (r *OrderRepository) List(ctx context.Context, participantID string) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var (
		rows *sql.Rows
		err  error
	)
	switch {
	case participantID == "":
		rows, err = r.db.QueryContext(ctx, orderSelect+` ORDER BY o.created_at DESC`)
	case !validID(participantID):
		return nil, nil
	default:
		rows, err = r.db.QueryContext(ctx,
			orderSelect+` WHERE o.user_id = $1 OR o.courier_id = $1 ORDER BY o.created_at DESC`, participantID)
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrOrderNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// UpdateStatus is a compare-and-swap on status; the history row is written
// in the same transaction.
func (r *OrderRepository) UpdateStatus(ctx context.Context, u ports.StatusUpdate) error {
	if !validID(u.OrderID) {
		return domain.ErrOrderNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return WithTx(ctx, r.db, nil, func(ctx context.Context, tx DBTX) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE orders SET status = $3, courier_id = COALESCE(NULLIF($4, '')::uuid, courier_id), updated_at = $5
			 WHERE id = $1 AND status = $2`,
			u.OrderID, string(u.From), string(u.To), u.CourierID, u.At)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if n == 0 {
			var found bool
			if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, u.OrderID).Scan(&found); err != nil {
				return fmt.Errorf("db error: %w", err)
			}
			if !found {
				return domain.ErrOrderNotFound
			}
			return domain.ErrInvalidTransition
		}

		entry := domain.StatusHistoryEntry{Status: u.To, Timestamp: u.At, ActorID: u.ActorID}
		if err := insertHistory(ctx, tx, u.OrderID, entry); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
}

func insertHistory(ctx context.Context, tx DBTX, orderID string, h domain.StatusHistoryEntry) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO order_status_history (order_id, status, actor_id, at) VALUES ($1, $2, $3, $4)`,
		orderID, string(h.Status), h.ActorID, h.Timestamp)
	return err
}
