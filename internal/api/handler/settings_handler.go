package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

// SettingsHandler edits the caller's own account. Every route requires Auth.
type SettingsHandler struct {
	settings ports.SettingsService
}

func NewSettingsHandler(settings ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get returns the caller's settings.
//
// @Summary      Get account settings
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope{data=domain.Settings}
// @Failure      401  {object}  Envelope
// @Router       /settings [get]
func (h *SettingsHandler) Get(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}
	settings, err := h.settings.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "settings found", settings)
}

// ChangeEmail moves the account to a new address and marks it unverified.
//
// @Summary      Change email
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changeEmailRequest  true  "Current and new email"
// @Success      200   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /settings/email [post]
func (h *SettingsHandler) ChangeEmail(c echo.Context) error {
	var req changeEmailRequest
	return h.update(c, &req, "email updated", func(id string) error {
		return h.settings.ChangeEmail(c.Request().Context(), id, req.CurrentEmail, req.NewEmail)
	})
}

// ChangePhone
//
// @Summary      Change phone
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePhoneRequest  true  "New phone"
// @Success      200   {object}  Envelope
// @Router       /settings/phone [post]
func (h *SettingsHandler) ChangePhone(c echo.Context) error {
	var req changePhoneRequest
	return h.update(c, &req, "phone updated", func(id string) error {
		return h.settings.ChangePhone(c.Request().Context(), id, req.Phone)
	})
}

// ChangeAddress replaces the postal address.
//
// @Summary      Change address
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changeAddressRequest  true  "New address"
// @Success      200   {object}  Envelope
// @Router       /settings/address [post]
func (h *SettingsHandler) ChangeAddress(c echo.Context) error {
	var req changeAddressRequest
	return h.update(c, &req, "address updated", func(id string) error {
		return h.settings.ChangeAddress(c.Request().Context(), id, domain.Address{
			Street:          req.Street,
			City:            req.City,
			State:           req.State,
			PostalCode:      req.PostalCode,
			Country:         req.Country,
			Floor:           req.Floor,
			ZipCode:         req.ZipCode,
			ApartmentNumber: req.ApartmentNumber,
		})
	})
}

// UpdateProfile
//
// @Summary      Update profile names
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Names"
// @Success      200   {object}  Envelope
// @Router       /settings/profile [post]
func (h *SettingsHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	return h.update(c, &req, "profile updated", func(id string) error {
		return h.settings.UpdateProfile(c.Request().Context(), id, ports.ProfileInput{
			FirstName:  req.FirstName,
			MiddleName: req.MiddleName,
			LastName:   req.LastName,
		})
	})
}

// UpdatePreferences sets the communication flags together.
//
// @Summary      Update communication preferences
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updatePreferencesRequest  true  "Preferences"
// @Success      200   {object}  Envelope
// @Router       /settings/preferences [post]
func (h *SettingsHandler) UpdatePreferences(c echo.Context) error {
	var req updatePreferencesRequest
	return h.update(c, &req, "preferences updated", func(id string) error {
		return h.settings.UpdatePreferences(c.Request().Context(), id, domain.Preferences{
			NotificationsEmail:    req.NotificationsEmail,
			NotificationsSms:      req.NotificationsSms,
			SecurityTwoFactorAuth: req.SecurityTwoFactorAuth,
		})
	})
}

// ChangePassword requires the current password.
//
// @Summary      Change password
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Router       /settings/password [post]
func (h *SettingsHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	return h.update(c, &req, "password updated", func(id string) error {
		return h.settings.ChangePassword(c.Request().Context(), id, req.CurrentPassword, req.NewPassword)
	})
}

// ChangeLanguage switches the interface language.
//
// @Summary      Change interface language
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changeLanguageRequest  true  "Language (en, ru, fr)"
// @Success      200   {object}  Envelope
// @Failure      422   {object}  Envelope
// @Router       /settings/language [post]
func (h *SettingsHandler) ChangeLanguage(c echo.Context) error {
	var req changeLanguageRequest
	return h.update(c, &req, "language updated", func(id string) error {
		return h.settings.ChangeLanguage(c.Request().Context(), id, req.Language)
	})
}

// update binds req, then runs apply for the caller.
func (h *SettingsHandler) update(c echo.Context, req any, message string, apply func(userID string) error) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}
	if err := bindAndValidate(c, req); err != nil {
		return err
	}
	if err := apply(id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, message, nil)
}
