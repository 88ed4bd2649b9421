package handler

type changeEmailRequest struct {
	CurrentEmail string `json:"current_email" validate:"required,email"`
	NewEmail     string `json:"new_email"     validate:"required,email"`
}

type changePhoneRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type changeAddressRequest struct {
	Street          string `json:"street"           validate:"required"`
	City            string `json:"city"             validate:"required"`
	State           string `json:"state"`
	PostalCode      string `json:"postal_code"`
	Country         string `json:"country"          validate:"required"`
	Floor           string `json:"floor"`
	ZipCode         string `json:"zip_code"`
	ApartmentNumber string `json:"apartment_number"`
}

type updateProfileRequest struct {
	FirstName  string `json:"first_name" validate:"required"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"  validate:"required"`
}

type updatePreferencesRequest struct {
	NotificationsEmail    bool `json:"notifications_email"`
	NotificationsSms      bool `json:"notifications_sms"`
	SecurityTwoFactorAuth bool `json:"security_two_factor_auth"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6"`
}

type changeLanguageRequest struct {
	Language string `json:"language" validate:"required,oneof=en ru fr"`
}
