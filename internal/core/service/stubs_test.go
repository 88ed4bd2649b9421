package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users        map[string]*domain.User
	markErr      error
	consumeCalls int
	sessionCalls int
	nextID       int
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = cloneUser(u)
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) get(id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	created := cloneUser(user)
	if created.ID == "" {
		r.nextID++
		created.ID = fmt.Sprintf("user_%d", r.nextID)
	}
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, err := r.get(id)
	return cloneUser(u), err
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByPhone(_ context.Context, phone string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) SetSession(_ context.Context, id, token string, lastLogin time.Time) error {
	u, err := r.get(id)
	if err != nil {
		return err
	}
	r.sessionCalls++
	u.Token = token
	if !lastLogin.IsZero() {
		u.LastLogin = &lastLogin
	}
	return nil
}

func (r *stubUserRepo) MarkVerified(_ context.Context, id string) (bool, error) {
	if r.markErr != nil {
		return false, r.markErr
	}
	u, err := r.get(id)
	if err != nil {
		return false, err
	}
	if u.Settings.Verified {
		return false, nil
	}
	u.Settings.Verified = true
	return true, nil
}

func (r *stubUserRepo) SetResetToken(_ context.Context, id, token string) error {
	u, err := r.get(id)
	if err != nil {
		return err
	}
	u.ResetPasswordToken = token
	return nil
}

func (r *stubUserRepo) ConsumeResetToken(_ context.Context, id, token, passwordHash string) (bool, error) {
	r.consumeCalls++
	u, err := r.get(id)
	if err != nil {
		return false, err
	}
	if u.ResetPasswordToken == "" || u.ResetPasswordToken != token {
		return false, nil
	}
	u.PasswordHash = passwordHash
	u.ResetPasswordToken = ""
	return true, nil
}

func (r *stubUserRepo) UpdateEmail(_ context.Context, id, email string) error {
	u, err := r.get(id)
	if err != nil {
		return err
	}
	u.Email = email
	u.Settings.Verified = false
	return nil
}

func (r *stubUserRepo) UpdatePhone(_ context.Context, id, phone string) error {
	u, err := r.get(id)
	if err != nil {
		return err
	}
	u.Phone = phone
	return nil
}

func (r *stubUserRepo) UpdateAddress(_ context.Context, id string, address domain.Address) error {
	u, err := r.get(id)
	if err != nil {
		return err
	}
	u.Address = address
	return nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id, first, middle, last string) error {
	u, err := r.get(id)
	if err != nil {
		return err
	}
	u.FirstName, u.MiddleName, u.LastName = first, middle, last
	return nil
}

func (r *stubUserRepo) UpdatePreferences(_ context.Context, id string, p domain.Preferences) error {
	u, err := r.get(id)
	if err != nil {
		return err
	}
	u.Settings.NotificationsEmail = p.NotificationsEmail
	u.Settings.NotificationsSms = p.NotificationsSms
	u.Settings.SecurityTwoFactorAuth = p.SecurityTwoFactorAuth
	return nil
}

func (r *stubUserRepo) UpdateLanguage(_ context.Context, id, language string) error {
	u, err := r.get(id)
	if err != nil {
		return err
	}
	u.Settings.Language = language
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, err := r.get(id)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

type stubOtpRepo struct {
	records   map[string]*domain.OtpRecord
	nextID    int
	createErr error
	deleteErr error
}

func newStubOtpRepo() *stubOtpRepo {
	return &stubOtpRepo{records: make(map[string]*domain.OtpRecord)}
}

func (r *stubOtpRepo) Create(_ context.Context, rec *domain.OtpRecord) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	rec.ID = fmt.Sprintf("otp_%d", r.nextID)
	clone := *rec
	r.records[rec.ID] = &clone
	return nil
}

func (r *stubOtpRepo) FindByUserAndCode(_ context.Context, userID, code string) (*domain.OtpRecord, error) {
	for _, rec := range r.records {
		if rec.UserID == userID && rec.Code == code {
			clone := *rec
			return &clone, nil
		}
	}
	return nil, domain.ErrOtpNotFound
}

func (r *stubOtpRepo) Delete(_ context.Context, id string) (bool, error) {
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	_, ok := r.records[id]
	delete(r.records, id)
	return ok, nil
}

func (r *stubOtpRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	var n int64
	for id, rec := range r.records {
		if rec.UserID == userID {
			delete(r.records, id)
			n++
		}
	}
	return n, nil
}

func (r *stubOtpRepo) countFor(userID string) int {
	n := 0
	for _, rec := range r.records {
		if rec.UserID == userID {
			n++
		}
	}
	return n
}

type stubOrderRepo struct {
	orders    map[string]*domain.Order
	nextID    int
	updateErr error
	updates   []ports.StatusUpdate
}

func newStubOrderRepo(orders ...*domain.Order) *stubOrderRepo {
	r := &stubOrderRepo{orders: make(map[string]*domain.Order)}
	for _, o := range orders {
		clone := *o
		r.orders[o.ID] = &clone
	}
	return r
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	r.nextID++
	clone := *o
	clone.ID = fmt.Sprintf("order_%d", r.nextID)
	r.orders[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	clone.StatusHistory = append([]domain.StatusHistoryEntry(nil), o.StatusHistory...)
	return &clone, nil
}

func (r *stubOrderRepo) List(_ context.Context, participantID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.orders {
		if participantID != "" && !o.IsParticipant(participantID) {
			continue
		}
		clone := *o
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

// UpdateStatus mirrors the conditional write of the real repositories.
func (r *stubOrderRepo) UpdateStatus(_ context.Context, u ports.StatusUpdate) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	o, ok := r.orders[u.OrderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if o.Status != u.From {
		return domain.ErrInvalidTransition
	}
	r.updates = append(r.updates, u)
	o.Status = u.To
	if u.CourierID != "" {
		o.CourierID = u.CourierID
	}
	o.StatusHistory = append(o.StatusHistory, domain.StatusHistoryEntry{Status: u.To, Timestamp: u.At, ActorID: u.ActorID})
	return nil
}

type stubMessageRepo struct {
	msgs      []*domain.Message
	createErr error
}

func (r *stubMessageRepo) Create(_ context.Context, m *domain.Message) (*domain.Message, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *m
	clone.ID = fmt.Sprintf("msg_%d", len(r.msgs)+1)
	r.msgs = append(r.msgs, &clone)
	out := clone
	return &out, nil
}

func (r *stubMessageRepo) ListByOrder(_ context.Context, orderID string) ([]*domain.Message, error) {
	var out []*domain.Message
	for _, m := range r.msgs {
		if m.OrderID == orderID {
			clone := *m
			out = append(out, &clone)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

// ---------------------------------------------------------------------------
// Collaborator stubs
// ---------------------------------------------------------------------------

type recordingSink struct {
	mu   sync.Mutex
	sent []ports.Notification
}

func (s *recordingSink) Notify(n ports.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
}

type stubLocker struct {
	busy     bool
	acquired []string
	released int
}

func (l *stubLocker) Acquire(_ context.Context, key string) (func(), error) {
	if l.busy {
		return nil, domain.ErrBusy
	}
	l.acquired = append(l.acquired, key)
	return func() { l.released++ }, nil
}

// plainHasher prefixes passwords so tests can read hashes back.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }

func (plainHasher) Compare(hash, p string) error {
	if hash != "hashed:"+p {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// stubCodec encodes claims as "user|email|unix-expiry|seq" and checks expiry
// against now.
type stubCodec struct {
	now func() time.Time
	seq int
}

func (c *stubCodec) Sign(claims ports.ResetClaims) (string, error) {
	c.seq++
	return fmt.Sprintf("%s|%s|%d|%d", claims.UserID, claims.Email, claims.ExpiresAt.Unix(), c.seq), nil
}

func (c *stubCodec) Verify(token string) (*ports.ResetClaims, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 4 {
		return nil, domain.ErrInvalidToken
	}
	var exp int64
	if _, err := fmt.Sscanf(parts[2], "%d", &exp); err != nil {
		return nil, domain.ErrInvalidToken
	}
	expiresAt := time.Unix(exp, 0)
	if !c.now().Before(expiresAt) {
		return nil, domain.ErrInvalidToken
	}
	return &ports.ResetClaims{UserID: parts[0], Email: parts[1], ExpiresAt: expiresAt}, nil
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixedCode string

func (c fixedCode) Code() (string, error) { return string(c), nil }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newCustomer(id, email string) *domain.User {
	return &domain.User{
		ID:           id,
		Email:        email,
		FirstName:    "Ada",
		PasswordHash: "hashed:secret",
		Role:         domain.RoleCustomer,
		Settings:     domain.DefaultSettings(),
	}
}

func newCourier(id, email string) *domain.User {
	u := newCustomer(id, email)
	u.Role = domain.RoleCourier
	return u
}
