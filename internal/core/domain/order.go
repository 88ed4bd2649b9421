package domain

import "time"

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusAccepted   OrderStatus = "Accepted"
	StatusInProgress OrderStatus = "InProgress"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
	StatusFailed     OrderStatus = "Failed"
)

// validTransitions defines the allowed state machine transitions.
// Delivered, Cancelled and Failed are terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusAccepted, StatusCancelled},
	StatusAccepted:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusDelivered, StatusFailed},
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusInProgress, StatusDelivered, StatusCancelled, StatusFailed:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Place is a pickup or delivery point.
type Place struct {
	Address          string    `json:"address" bson:"address"`
	City             string    `json:"city" bson:"city"`
	State            string    `json:"state" bson:"state"`
	PostalCode       string    `json:"postal_code" bson:"postal_code"`
	FloorOrApartment string    `json:"floor_or_apartment" bson:"floor_or_apartment"`
	Country          string    `json:"country" bson:"country"`
	LocationType     string    `json:"location_type" bson:"location_type"`
	Coordinates      []float64 `json:"coordinates" bson:"coordinates"`
	EstimatedTime    string    `json:"estimated_time,omitempty" bson:"estimated_time,omitempty"`
}

// Location groups both ends of a delivery.
type Location struct {
	Pickup   Place `json:"pickup" bson:"pickup"`
	Delivery Place `json:"delivery" bson:"delivery"`
}

// Sender is the party handing the package over.
type Sender struct {
	Name   string `json:"name" bson:"name"`
	Phone  string `json:"phone" bson:"phone"`
	Email  string `json:"email" bson:"email"`
	UserID string `json:"user_id" bson:"user_id"`
}

// Recipient is the party receiving the package.
type Recipient struct {
	FirstName string `json:"first_name" bson:"first_name"`
	LastName  string `json:"last_name" bson:"last_name"`
	Phone     string `json:"phone" bson:"phone"`
	Email     string `json:"email" bson:"email"`
}

// Package describes what is being delivered. Message seeds the order chat
// once a courier accepts the order.
type Package struct {
	Title          string `json:"title" bson:"title"`
	Type           string `json:"type" bson:"type"`
	Quantity       int    `json:"quantity" bson:"quantity"`
	Size           string `json:"size" bson:"size"`
	Image          string `json:"image,omitempty" bson:"image,omitempty"`
	ModeOfDelivery string `json:"mode_of_delivery" bson:"mode_of_delivery"`
	Message        string `json:"message" bson:"message"`
}

// Details carries the parties and the package of an order.
type Details struct {
	Sender    Sender    `json:"sender" bson:"sender"`
	Recipient Recipient `json:"recipient" bson:"recipient"`
	Package   Package   `json:"package" bson:"package"`
}

// Payment is the quoted price of an order. It is a passive record.
type Payment struct {
	Price float64 `json:"price" bson:"price"`
}

// StatusHistoryEntry records a single status transition on an order.
type StatusHistoryEntry struct {
	Status    OrderStatus `json:"status" bson:"status"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
	ActorID   string      `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
}

// Order is the delivery aggregate root.
type Order struct {
	ID            string               `json:"id"`
	Status        OrderStatus          `json:"status"`
	Location      Location             `json:"location"`
	Details       Details              `json:"details"`
	Payment       Payment              `json:"payment"`
	UserID        string               `json:"user_id"`
	CourierID     string               `json:"courier_id,omitempty"`
	StatusHistory []StatusHistoryEntry `json:"status_history"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// IsParticipant reports whether userID is the order owner or its courier.
func (o *Order) IsParticipant(userID string) bool {
	return userID != "" && (o.UserID == userID || o.CourierID == userID)
}

// Authorize checks that actor may move the order into next. Customers act
// only on their own orders and may only cancel. Accepting requires a
// courier and is open to any courier while the order has none; every other
// courier transition requires being the assigned courier.
func (o *Order) Authorize(actor *User, next OrderStatus) error {
	switch actor.Role {
	case RoleCustomer:
		if o.UserID != actor.ID || next != StatusCancelled {
			return ErrForbidden
		}
		return nil
	case RoleCourier:
		if o.CourierID != "" && o.CourierID != actor.ID {
			return ErrForbidden
		}
		if o.CourierID == "" && next != StatusAccepted {
			return ErrForbidden
		}
		return nil
	}
	return ErrForbidden
}
