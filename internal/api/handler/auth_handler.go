package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type emailLoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=customer courier"`
}

type phoneLoginRequest struct {
	Phone    string `json:"phone"    validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=customer courier"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type sessionResponse struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// LoginWithEmail authenticates by email and password for the requested role.
//
// @Summary      Login with email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      emailLoginRequest  true  "Login credentials"
// @Success      200   {object}  Envelope{data=loginResponse}
// @Failure      401   {object}  Envelope
// @Failure      403   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Failure      422   {object}  Envelope
// @Router       /auth/login/email [post]
func (h *AuthHandler) LoginWithEmail(c echo.Context) error {
	var req emailLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.LoginWithEmail(c.Request().Context(), req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "login successful", loginResponse{Token: res.Token, User: res.User})
}

// LoginWithPhone authenticates by phone number and password.
//
// @Summary      Login with phone
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      phoneLoginRequest  true  "Login credentials"
// @Success      200   {object}  Envelope{data=loginResponse}
// @Failure      401   {object}  Envelope
// @Failure      403   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Failure      422   {object}  Envelope
// @Router       /auth/login/phone [post]
func (h *AuthHandler) LoginWithPhone(c echo.Context) error {
	var req phoneLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.LoginWithPhone(c.Request().Context(), req.Phone, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "login successful", loginResponse{Token: res.Token, User: res.User})
}

// Validate echoes the session behind the bearer token. The Auth middleware
// has already checked it.
//
// @Summary      Validate session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope{data=sessionResponse}
// @Failure      401  {object}  Envelope
// @Router       /auth/validate [get]
func (h *AuthHandler) Validate(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}
	email, _ := c.Get(CtxEmail).(string)
	return respond(c, http.StatusOK, "token is valid", sessionResponse{ID: id, Email: email, Role: callerRole(c)})
}

// Logout revokes the caller's session token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope
// @Failure      401  {object}  Envelope
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "logged out", nil)
}
