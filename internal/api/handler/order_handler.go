package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Create places an order owned by the caller.
//
// @Summary      Create an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Order details"
// @Success      201   {object}  Envelope{data=domain.Order}
// @Failure      401   {object}  Envelope
// @Failure      403   {object}  Envelope
// @Failure      422   {object}  Envelope
// @Router       /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}
	var req createOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orders.Create(c.Request().Context(), toCreateOrderInput(req, id))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "order created", order)
}

// List returns the orders the caller owns or delivers.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope{data=[]domain.Order}
// @Failure      401  {object}  Envelope
// @Router       /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}
	orders, err := h.orders.List(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return respond(c, http.StatusOK, "orders found", orders)
}

// Get
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  Envelope{data=domain.Order}
// @Failure      403  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}
	order, err := h.orders.Get(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "order found", order)
}

// UpdateStatus moves an order through its lifecycle. A courier accepting a
// pending order becomes its courier and the package message opens the chat.
//
// @Summary      Update order status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Order id"
// @Param        body  body      updateStatusRequest  true  "Target status"
// @Success      200   {object}  Envelope{data=domain.Order}
// @Failure      403   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Failure      422   {object}  Envelope
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}
	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	actor := req.ActingUserID
	if actor == "" {
		actor = id
	}

	order, err := h.orders.UpdateStatus(c.Request().Context(), ports.UpdateStatusInput{
		OrderID:      c.Param("id"),
		Status:       domain.OrderStatus(req.Status),
		ActingUserID: actor,
		CallerID:     id,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "order status updated", order)
}

// Delete removes an order. Only the owner may delete it.
//
// @Summary      Delete an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  Envelope
// @Failure      403  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}
	if err := h.orders.Delete(c.Request().Context(), id, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "order deleted", nil)
}
