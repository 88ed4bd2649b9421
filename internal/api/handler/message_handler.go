package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

// MessageHandler serves the chat attached to an order.
type MessageHandler struct {
	messages ports.MessageService
}

func NewMessageHandler(messages ports.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// Create posts a message as the caller.
//
// @Summary      Post a chat message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMessageRequest  true  "Order and content"
// @Success      201   {object}  Envelope{data=domain.Message}
// @Failure      403   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /messages [post]
func (h *MessageHandler) Create(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}
	var req createMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.messages.Create(c.Request().Context(), id, req.OrderID, req.Content)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "message sent", msg)
}

// List returns an order's messages, oldest first.
//
// @Summary      List chat messages
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        orderId  path      string  true  "Order id"
// @Success      200      {object}  Envelope{data=[]domain.Message}
// @Failure      403      {object}  Envelope
// @Failure      404      {object}  Envelope
// @Router       /messages/{orderId} [get]
func (h *MessageHandler) List(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}
	msgs, err := h.messages.List(c.Request().Context(), id, c.Param("orderId"))
	if err != nil {
		return err
	}
	if msgs == nil {
		msgs = []*domain.Message{}
	}
	return respond(c, http.StatusOK, "messages found", msgs)
}
