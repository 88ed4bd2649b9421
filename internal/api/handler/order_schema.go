package handler

type placeRequest struct {
	Address          string    `json:"address"            validate:"required"`
	City             string    `json:"city"               validate:"required"`
	State            string    `json:"state"`
	PostalCode       string    `json:"postal_code"`
	FloorOrApartment string    `json:"floor_or_apartment"`
	Country          string    `json:"country"            validate:"required"`
	LocationType     string    `json:"location_type"`
	Coordinates      []float64 `json:"coordinates"        validate:"omitempty,len=2"`
	EstimatedTime    string    `json:"estimated_time"`
}

type locationRequest struct {
	Pickup   placeRequest `json:"pickup"   validate:"required"`
	Delivery placeRequest `json:"delivery" validate:"required"`
}

type senderRequest struct {
	Name  string `json:"name"  validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

type recipientRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Phone     string `json:"phone"      validate:"required"`
	Email     string `json:"email"      validate:"omitempty,email"`
}

type packageRequest struct {
	Title          string `json:"title"            validate:"required"`
	Type           string `json:"type"`
	Quantity       int    `json:"quantity"         validate:"gte=1"`
	Size           string `json:"size"`
	Image          string `json:"image"`
	ModeOfDelivery string `json:"mode_of_delivery"`
	Message        string `json:"message"`
}

type detailsRequest struct {
	Sender    senderRequest    `json:"sender"    validate:"required"`
	Recipient recipientRequest `json:"recipient" validate:"required"`
	Package   packageRequest   `json:"package"   validate:"required"`
}

type paymentRequest struct {
	Price float64 `json:"price" validate:"gte=0"`
}

type createOrderRequest struct {
	Location locationRequest `json:"location" validate:"required"`
	Details  detailsRequest  `json:"details"  validate:"required"`
	Payment  paymentRequest  `json:"payment"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Accepted InProgress Delivered Cancelled Failed"`
	// ActingUserID defaults to the caller.
	ActingUserID string `json:"acting_user_id"`
}

type createMessageRequest struct {
	OrderID string `json:"order_id" validate:"required"`
	Content string `json:"content"  validate:"required"`
}
