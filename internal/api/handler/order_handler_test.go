package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

const orderBody = `{
	"location": {
		"pickup":   {"address":"1 Marina","city":"Lagos","country":"NG","coordinates":[3.38,6.45]},
		"delivery": {"address":"2 Allen","city":"Ikeja","country":"NG"}
	},
	"details": {
		"sender":    {"name":"Ada","phone":"+234800"},
		"recipient": {"first_name":"Bola","last_name":"Ade","phone":"+234801"},
		"package":   {"title":"Shoes","quantity":1,"message":"Handle with care"}
	},
	"payment": {"price": 2500}
}`

func withParam(c echo.Context, name, value string) {
	c.SetParamNames(name)
	c.SetParamValues(value)
}

func TestOrderHandler_Create(t *testing.T) {
	orders := &stubOrderService{
		createFn: func(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
			if in.UserID != "u1" {
				t.Fatalf("owner must be the caller, got %q", in.UserID)
			}
			if in.Location.Pickup.City != "Lagos" || len(in.Location.Pickup.Coordinates) != 2 {
				t.Fatalf("unexpected pickup %+v", in.Location.Pickup)
			}
			if in.Details.Package.Message != "Handle with care" || in.Payment.Price != 2500 {
				t.Fatalf("unexpected details %+v", in.Details)
			}
			return &domain.Order{ID: "o1", Status: domain.StatusPending, UserID: in.UserID}, nil
		},
	}
	h := NewOrderHandler(orders)

	c, rec := newContext(http.MethodPost, "/orders", orderBody, "u1")
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusCreated)

	_, data := decodeEnvelope(t, rec)
	if data["id"] != "o1" || data["status"] != "Pending" {
		t.Fatalf("unexpected payload: %+v", data)
	}
}

func TestOrderHandler_Create_MissingRecipient(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{})

	body := `{"location":{"pickup":{"address":"a","city":"b","country":"c"},"delivery":{"address":"a","city":"b","country":"c"}},
		"details":{"sender":{"name":"Ada","phone":"1"},"package":{"title":"x","quantity":1}}}`
	c, _ := newContext(http.MethodPost, "/orders", body, "u1")
	expectHTTPError(t, h.Create(c), http.StatusUnprocessableEntity)
}

func TestOrderHandler_List_Empty(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{
		listFn: func(ctx context.Context, callerID string) ([]*domain.Order, error) {
			if callerID != "u1" {
				t.Fatalf("unexpected caller %q", callerID)
			}
			return nil, nil
		},
	})

	c, rec := newContext(http.MethodGet, "/orders", "", "u1")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	env, _ := decodeEnvelope(t, rec)
	if list, ok := env.Data.([]any); !ok || len(list) != 0 {
		t.Fatalf("expected empty list, got %#v", env.Data)
	}
}

func TestOrderHandler_Get_Forbidden(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{
		getFn: func(ctx context.Context, callerID, orderID string) (*domain.Order, error) {
			if orderID != "o1" {
				t.Fatalf("unexpected order %q", orderID)
			}
			return nil, domain.ErrForbidden
		},
	})

	c, _ := newContext(http.MethodGet, "/orders/o1", "", "stranger")
	withParam(c, "id", "o1")
	if err := h.Get(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestOrderHandler_UpdateStatus_DefaultsActorToCaller(t *testing.T) {
	var got ports.UpdateStatusInput
	h := NewOrderHandler(&stubOrderService{
		statusFn: func(ctx context.Context, in ports.UpdateStatusInput) (*domain.Order, error) {
			got = in
			return &domain.Order{ID: in.OrderID, Status: in.Status, CourierID: in.ActingUserID}, nil
		},
	})

	c, rec := newContext(http.MethodPatch, "/orders/o1/status", `{"status":"Accepted"}`, "c1")
	withParam(c, "id", "o1")
	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	if got.OrderID != "o1" || got.Status != domain.StatusAccepted || got.ActingUserID != "c1" || got.CallerID != "c1" {
		t.Fatalf("unexpected input %+v", got)
	}
}

func TestOrderHandler_UpdateStatus_ExplicitActor(t *testing.T) {
	var got ports.UpdateStatusInput
	h := NewOrderHandler(&stubOrderService{
		statusFn: func(ctx context.Context, in ports.UpdateStatusInput) (*domain.Order, error) {
			got = in
			return nil, domain.ErrForbidden
		},
	})

	c, _ := newContext(http.MethodPatch, "/orders/o1/status", `{"status":"Cancelled","acting_user_id":"other"}`, "u1")
	withParam(c, "id", "o1")
	if err := h.UpdateStatus(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if got.ActingUserID != "other" || got.CallerID != "u1" {
		t.Fatalf("unexpected input %+v", got)
	}
}

func TestOrderHandler_UpdateStatus_UnknownStatus(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{})

	c, _ := newContext(http.MethodPatch, "/orders/o1/status", `{"status":"Lost"}`, "u1")
	withParam(c, "id", "o1")
	expectHTTPError(t, h.UpdateStatus(c), http.StatusUnprocessableEntity)
}

func TestOrderHandler_Delete(t *testing.T) {
	var deleted string
	h := NewOrderHandler(&stubOrderService{
		deleteFn: func(ctx context.Context, callerID, orderID string) error {
			deleted = callerID + "/" + orderID
			return nil
		},
	})

	c, rec := newContext(http.MethodDelete, "/orders/o1", "", "u1")
	withParam(c, "id", "o1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)
	if deleted != "u1/o1" {
		t.Fatalf("unexpected delete %q", deleted)
	}
}
