package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

type stubAuthService struct {
	emailFn    func(ctx context.Context, email, password string, role domain.Role) (*ports.LoginResult, error)
	phoneFn    func(ctx context.Context, phone, password string, role domain.Role) (*ports.LoginResult, error)
	validateFn func(ctx context.Context, token string) (*ports.SessionClaims, error)
	logoutFn   func(ctx context.Context, userID string) error
}

func (s *stubAuthService) LoginWithEmail(ctx context.Context, email, password string, role domain.Role) (*ports.LoginResult, error) {
	return s.emailFn(ctx, email, password, role)
}

func (s *stubAuthService) LoginWithPhone(ctx context.Context, phone, password string, role domain.Role) (*ports.LoginResult, error) {
	return s.phoneFn(ctx, phone, password, role)
}

func (s *stubAuthService) ValidateToken(ctx context.Context, token string) (*ports.SessionClaims, error) {
	return s.validateFn(ctx, token)
}

func (s *stubAuthService) Logout(ctx context.Context, userID string) error {
	return s.logoutFn(ctx, userID)
}

type stubUserService struct {
	registerFn   func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	listFn       func(ctx context.Context) ([]*domain.User, error)
	getByIDFn    func(ctx context.Context, id string) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
}

func (s *stubUserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubUserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getByEmailFn(ctx, email)
}

type stubOtpService struct {
	issueFn   func(ctx context.Context, userID string) (*ports.OtpIssued, error)
	reissueFn func(ctx context.Context, userID string) (*ports.OtpIssued, error)
	verifyFn  func(ctx context.Context, userID, code string) error
}

func (s *stubOtpService) Issue(ctx context.Context, userID string) (*ports.OtpIssued, error) {
	return s.issueFn(ctx, userID)
}

func (s *stubOtpService) Reissue(ctx context.Context, userID string) (*ports.OtpIssued, error) {
	return s.reissueFn(ctx, userID)
}

func (s *stubOtpService) Verify(ctx context.Context, userID, code string) error {
	return s.verifyFn(ctx, userID, code)
}

type stubResetService struct {
	requestFn func(ctx context.Context, email string) error
	verifyFn  func(ctx context.Context, token string) (*domain.User, error)
	resetFn   func(ctx context.Context, token, newPassword string) error
}

func (s *stubResetService) RequestReset(ctx context.Context, email string) error {
	return s.requestFn(ctx, email)
}

func (s *stubResetService) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	return s.verifyFn(ctx, token)
}

func (s *stubResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return s.resetFn(ctx, token, newPassword)
}

type stubSettingsService struct {
	ports.SettingsService
	getFn         func(ctx context.Context, userID string) (*domain.Settings, error)
	emailFn       func(ctx context.Context, userID, current, next string) error
	addressFn     func(ctx context.Context, userID string, a domain.Address) error
	preferencesFn func(ctx context.Context, userID string, p domain.Preferences) error
	passwordFn    func(ctx context.Context, userID, current, next string) error
	languageFn    func(ctx context.Context, userID, lang string) error
}

func (s *stubSettingsService) Get(ctx context.Context, userID string) (*domain.Settings, error) {
	return s.getFn(ctx, userID)
}

func (s *stubSettingsService) ChangeEmail(ctx context.Context, userID, current, next string) error {
	return s.emailFn(ctx, userID, current, next)
}

func (s *stubSettingsService) ChangeAddress(ctx context.Context, userID string, a domain.Address) error {
	return s.addressFn(ctx, userID, a)
}

func (s *stubSettingsService) UpdatePreferences(ctx context.Context, userID string, p domain.Preferences) error {
	return s.preferencesFn(ctx, userID, p)
}

func (s *stubSettingsService) ChangePassword(ctx context.Context, userID, current, next string) error {
	return s.passwordFn(ctx, userID, current, next)
}

func (s *stubSettingsService) ChangeLanguage(ctx context.Context, userID, lang string) error {
	return s.languageFn(ctx, userID, lang)
}

type stubOrderService struct {
	createFn func(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error)
	getFn    func(ctx context.Context, callerID, orderID string) (*domain.Order, error)
	listFn   func(ctx context.Context, callerID string) ([]*domain.Order, error)
	deleteFn func(ctx context.Context, callerID, orderID string) error
	statusFn func(ctx context.Context, in ports.UpdateStatusInput) (*domain.Order, error)
}

func (s *stubOrderService) Create(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
	return s.createFn(ctx, in)
}

func (s *stubOrderService) Get(ctx context.Context, callerID, orderID string) (*domain.Order, error) {
	return s.getFn(ctx, callerID, orderID)
}

func (s *stubOrderService) List(ctx context.Context, callerID string) ([]*domain.Order, error) {
	return s.listFn(ctx, callerID)
}

func (s *stubOrderService) Delete(ctx context.Context, callerID, orderID string) error {
	return s.deleteFn(ctx, callerID, orderID)
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, in ports.UpdateStatusInput) (*domain.Order, error) {
	return s.statusFn(ctx, in)
}

type stubMessageService struct {
	createFn func(ctx context.Context, senderID, orderID, content string) (*domain.Message, error)
	listFn   func(ctx context.Context, callerID, orderID string) ([]*domain.Message, error)
}

func (s *stubMessageService) Create(ctx context.Context, senderID, orderID, content string) (*domain.Message, error) {
	return s.createFn(ctx, senderID, orderID, content)
}

func (s *stubMessageService) List(ctx context.Context, callerID, orderID string) ([]*domain.Message, error) {
	return s.listFn(ctx, callerID, orderID)
}

// newContext builds an echo context with the JSON validator installed. A
// non-empty userID simulates the Auth middleware.
func newContext(method, target, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(CtxUserID, userID)
		c.Set(CtxEmail, userID+"@example.com")
		c.Set(CtxRole, domain.RoleCustomer)
	}
	return c, rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (Envelope, map[string]any) {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	data, _ := env.Data.(map[string]any)
	return env, data
}

func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected HTTPError %d, got %v", code, err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d (%v)", code, he.Code, he.Message)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("expected %d, got %d: %s", code, rec.Code, rec.Body.String())
	}
}
