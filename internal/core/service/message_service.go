package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

type messageService struct {
	orders   ports.OrderRepository
	messages ports.MessageRepository
	clock    Clock
	log      zerolog.Logger
}

// NewMessageService returns a MessageService.
func NewMessageService(orders ports.OrderRepository, messages ports.MessageRepository, clock Clock, log zerolog.Logger) ports.MessageService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &messageService{orders: orders, messages: messages, clock: clock, log: log}
}

// Create posts a message on an order the sender participates in.
func (s *messageService) Create(ctx context.Context, senderID, orderID, content string) (*domain.Message, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsParticipant(senderID) {
		return nil, domain.ErrForbidden
	}

	msg, err := s.messages.Create(ctx, &domain.Message{
		OrderID:   orderID,
		SenderID:  senderID,
		Content:   content,
		Timestamp: s.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	s.log.Debug().Str("order_id", orderID).Str("sender_id", senderID).Msg("message created")
	return msg, nil
}

// List returns an order's messages, oldest first.
func (s *messageService) List(ctx context.Context, callerID, orderID string) ([]*domain.Message, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsParticipant(callerID) {
		return nil, domain.ErrForbidden
	}
	msgs, err := s.messages.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}
