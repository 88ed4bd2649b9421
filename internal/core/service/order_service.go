package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
	"github.com/oladokun-o/engine/internal/pkg/metrics"
)

type OrderService struct {
	orders   ports.OrderRepository
	users    ports.UserRepository
	messages ports.MessageRepository
	locker   ports.Locker
	clock    Clock
	logger   zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	users ports.UserRepository,
	messages ports.MessageRepository,
	locker ports.Locker,
	clock Clock,
	logger zerolog.Logger,
) *OrderService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &OrderService{
		orders:   orders,
		users:    users,
		messages: messages,
		locker:   locker,
		clock:    clock,
		logger:   logger,
	}
}

// Create places a new Pending order owned by input.UserID.
func (s *OrderService) Create(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	now := s.clock.Now()
	order := &domain.Order{
		Status:        domain.StatusPending,
		Location:      input.Location,
		Details:       input.Details,
		Payment:       input.Payment,
		UserID:        input.UserID,
		StatusHistory: []domain.StatusHistoryEntry{{Status: domain.StatusPending, Timestamp: now, ActorID: input.UserID}},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if order.Details.Sender.UserID == "" {
		order.Details.Sender.UserID = input.UserID
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create order")
		return nil, err
	}
	metrics.OrdersCreated.Inc()

	s.logger.Info().Str("order_id", created.ID).Str("user_id", input.UserID).Msg("order created")
	return created, nil
}

// Get returns an order visible to callerID. Couriers may see unassigned
// Pending orders so they can accept them.
func (s *OrderService) Get(ctx context.Context, callerID, orderID string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsParticipant(callerID) {
		return order, nil
	}
	if order.CourierID == "" && order.Status == domain.StatusPending {
		caller, err := s.users.FindByID(ctx, callerID)
		if err != nil {
			return nil, err
		}
		if caller.Role == domain.RoleCourier {
			return order, nil
		}
	}
	return nil, domain.ErrForbidden
}

// List returns orders the caller owns or is assigned to.
func (s *OrderService) List(ctx context.Context, callerID string) ([]*domain.Order, error) {
	return s.orders.List(ctx, callerID)
}

// Delete removes an order. Only the owner may delete it.
func (s *OrderService) Delete(ctx context.Context, callerID, orderID string) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.UserID != callerID {
		return domain.ErrForbidden
	}
	if err := s.orders.Delete(ctx, orderID); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	s.logger.Info().Str("order_id", orderID).Msg("order deleted")
	return nil
}

// UpdateStatus applies a validated transition. A courier accepting an
// unassigned order becomes its courier, and the accept-transition seeds
// the order chat with the package message on behalf of the owner. The
// status commit and the seed are separate writes; if the seed fails, the
// assigned courier re-submitting accepted creates it, at most once.
func (s *OrderService) UpdateStatus(ctx context.Context, input ports.UpdateStatusInput) (*domain.Order, error) {
	order, err := s.updateStatus(ctx, input)
	metrics.OrderTransitions.WithLabelValues(string(input.Status), outcome(err)).Inc()
	return order, err
}

func (s *OrderService) updateStatus(ctx context.Context, input ports.UpdateStatusInput) (*domain.Order, error) {
	if input.CallerID == "" || input.CallerID != input.ActingUserID {
		return nil, domain.ErrForbidden
	}
	if !input.Status.Valid() {
		return nil, fmt.Errorf("update status: %w (unknown status %q)", domain.ErrInvalidTransition, input.Status)
	}

	release, err := s.locker.Acquire(ctx, "order:"+input.OrderID)
	if err != nil {
		return nil, err
	}
	defer release()

	order, err := s.orders.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	actor, err := s.users.FindByID(ctx, input.ActingUserID)
	if err != nil {
		return nil, err
	}

	// Re-submitting the current status changes nothing, apart from
	// repairing a missing seed message.
	if order.Status == input.Status {
		if !order.IsParticipant(actor.ID) {
			return nil, domain.ErrForbidden
		}
		if order.Status == domain.StatusAccepted && actor.ID == order.CourierID {
			if err := s.ensureSeed(ctx, order, s.clock.Now()); err != nil {
				return nil, err
			}
		}
		return order, nil
	}

	if !order.Status.CanTransitionTo(input.Status) {
		return nil, fmt.Errorf("update status: %w (from %s to %s)", domain.ErrInvalidTransition, order.Status, input.Status)
	}
	if err := order.Authorize(actor, input.Status); err != nil {
		return nil, err
	}

	update := ports.StatusUpdate{
		OrderID: order.ID,
		From:    order.Status,
		To:      input.Status,
		ActorID: actor.ID,
		At:      s.clock.Now(),
	}
	if actor.Role == domain.RoleCourier && order.CourierID == "" {
		update.CourierID = actor.ID
	}

	if err := s.orders.UpdateStatus(ctx, update); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	accepted := order.Status != domain.StatusAccepted && input.Status == domain.StatusAccepted

	order.Status = update.To
	order.UpdatedAt = update.At
	if update.CourierID != "" {
		order.CourierID = update.CourierID
	}
	order.StatusHistory = append(order.StatusHistory, domain.StatusHistoryEntry{
		Status:    update.To,
		Timestamp: update.At,
		ActorID:   update.ActorID,
	})

	s.logger.Info().
		Str("order_id", order.ID).
		Str("from", string(update.From)).
		Str("to", string(update.To)).
		Str("actor_id", actor.ID).
		Msg("order status updated")

	if accepted {
		if err := s.seed(ctx, order, update.At); err != nil {
			return nil, err
		}
	}

	return order, nil
}

// ensureSeed creates the accept message only if the order chat is empty.
func (s *OrderService) ensureSeed(ctx context.Context, order *domain.Order, at time.Time) error {
	existing, err := s.messages.ListByOrder(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("update status: seed message: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	return s.seed(ctx, order, at)
}

func (s *OrderService) seed(ctx context.Context, order *domain.Order, at time.Time) error {
	msg := &domain.Message{
		OrderID:   order.ID,
		SenderID:  order.UserID,
		Content:   order.Details.Package.Message,
		Timestamp: at,
	}
	if _, err := s.messages.Create(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to create accept message")
		return fmt.Errorf("update status: seed message: %w", err)
	}
	return nil
}
