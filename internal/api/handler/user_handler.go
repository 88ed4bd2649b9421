package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

// UserHandler serves account registration, email verification and the
// password reset flow.
type UserHandler struct {
	users ports.UserService
	otp   ports.OtpService
	reset ports.ResetService
}

func NewUserHandler(users ports.UserService, otp ports.OtpService, reset ports.ResetService) *UserHandler {
	return &UserHandler{users: users, otp: otp, reset: reset}
}

// Register opens an account and sends the first verification code.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  Envelope{data=domain.User}
// @Failure      400   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Failure      422   {object}  Envelope
// @Router       /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.Register(c.Request().Context(), ports.RegisterInput{
		FirstName:       req.FirstName,
		MiddleName:      req.MiddleName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "user created", user)
}

// List returns every account.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope{data=[]domain.User}
// @Failure      401  {object}  Envelope
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return respond(c, http.StatusOK, "users found", users)
}

// GetByID returns one account.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  Envelope{data=domain.User}
// @Failure      404  {object}  Envelope
// @Router       /users/id/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	user, err := h.users.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "user found", user)
}

// GetByEmail looks an account up by email.
//
// @Summary      Get a user by email
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Email address"
// @Success      200    {object}  Envelope{data=domain.User}
// @Failure      404    {object}  Envelope
// @Router       /users/email/{email} [get]
func (h *UserHandler) GetByEmail(c echo.Context) error {
	user, err := h.users.GetByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "user found", user)
}

// ResendOtp replaces the user's verification code with a fresh one.
//
// @Summary      Resend verification code
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      resendOtpRequest  true  "Account email"
// @Success      200   {object}  Envelope{data=otpResponse}
// @Failure      404   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /users/otp/resend [post]
func (h *UserHandler) ResendOtp(c echo.Context) error {
	var req resendOtpRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := h.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if user.Settings.Verified {
		return domain.ErrAlreadyVerified
	}
	issued, err := h.otp.Reissue(ctx, user.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "verification code sent", otpResponse{UserID: issued.UserID, ExpiresAt: issued.ExpiresAt})
}

// VerifyOtp marks the account verified when the code matches.
//
// @Summary      Verify email with a code
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      verifyOtpRequest  true  "User id and code"
// @Success      200   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /users/otp/verify [post]
func (h *UserHandler) VerifyOtp(c echo.Context) error {
	var req verifyOtpRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.otp.Verify(c.Request().Context(), req.UserID, req.Code); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "user verified", nil)
}

// RequestReset mails a password reset link.
//
// @Summary      Request a password reset
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      resetRequest  true  "Account email"
// @Success      200   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /users/password/reset [post]
func (h *UserHandler) RequestReset(c echo.Context) error {
	var req resetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.reset.RequestReset(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "password reset link sent", nil)
}

// VerifyReset checks a reset token before the new password form is shown.
//
// @Summary      Verify a password reset token
// @Tags         users
// @Produce      json
// @Param        token  path      string  true  "Reset token"
// @Success      200    {object}  Envelope{data=resetTokenResponse}
// @Failure      401    {object}  Envelope
// @Router       /users/password/reset/{token} [get]
func (h *UserHandler) VerifyReset(c echo.Context) error {
	user, err := h.reset.VerifyToken(c.Request().Context(), c.Param("token"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "token is valid", resetTokenResponse{UserID: user.ID, Email: user.Email})
}

// UpdatePassword consumes a reset token.
//
// @Summary      Set a new password with a reset token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updatePasswordRequest  true  "Token and new password"
// @Success      200   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Failure      422   {object}  Envelope
// @Router       /users/password/update [post]
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	var req updatePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.reset.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "password updated", nil)
}
