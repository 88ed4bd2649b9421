package domain

import "time"

// Role distinguishes marketplace customers from couriers.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleCourier  Role = "courier"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleCourier
}

// Supported interface languages.
var Languages = []string{"en", "ru", "fr"}

// SupportsLanguage reports whether lang is one of Languages.
func SupportsLanguage(lang string) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Settings is the per-user preferences block embedded in User.
type Settings struct {
	Language              string `json:"language" bson:"language"`
	NotificationsEmail    bool   `json:"notifications_email" bson:"notifications_email"`
	NotificationsSms      bool   `json:"notifications_sms" bson:"notifications_sms"`
	SecurityTwoFactorAuth bool   `json:"security_two_factor_auth" bson:"security_two_factor_auth"`
	Verified              bool   `json:"verified" bson:"verified"`
}

// DefaultSettings returns the settings a freshly registered user starts with.
func DefaultSettings() Settings {
	return Settings{Language: "en", NotificationsEmail: true}
}

// Preferences is the communication subset of Settings that users edit together.
type Preferences struct {
	NotificationsEmail    bool
	NotificationsSms      bool
	SecurityTwoFactorAuth bool
}

// Address is the user's postal address.
type Address struct {
	Street          string `json:"street" bson:"street"`
	City            string `json:"city" bson:"city"`
	State           string `json:"state" bson:"state"`
	PostalCode      string `json:"postal_code" bson:"postal_code"`
	Country         string `json:"country" bson:"country"`
	Floor           string `json:"floor" bson:"floor"`
	ZipCode         string `json:"zip_code" bson:"zip_code"`
	ApartmentNumber string `json:"apartment_number" bson:"apartment_number"`
}

// User models an account in the marketplace.
type User struct {
	ID                 string     `json:"id"`
	FirstName          string     `json:"first_name"`
	MiddleName         string     `json:"middle_name,omitempty"`
	LastName           string     `json:"last_name"`
	Email              string     `json:"email"`
	PasswordHash       string     `json:"-"`
	Phone              string     `json:"phone,omitempty"`
	ProfilePicture     string     `json:"profile_picture,omitempty"`
	Address            Address    `json:"address"`
	Role               Role       `json:"role"`
	Settings           Settings   `json:"settings"`
	Token              string     `json:"-"`
	ResetPasswordToken string     `json:"-"`
	LastLogin          *time.Time `json:"last_login,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
