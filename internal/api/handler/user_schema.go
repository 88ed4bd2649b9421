package handler

import "time"

type registerRequest struct {
	FirstName       string `json:"first_name"       validate:"required"`
	MiddleName      string `json:"middle_name"`
	LastName        string `json:"last_name"        validate:"required"`
	Email           string `json:"email"            validate:"required,email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"         validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	Role            string `json:"role"             validate:"required,oneof=customer courier"`
}

type resendOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyOtpRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Code   string `json:"code"    validate:"required,len=4,numeric"`
}

type otpResponse struct {
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type resetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type updatePasswordRequest struct {
	Token           string `json:"token"            validate:"required"`
	Password        string `json:"password"         validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type resetTokenResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
