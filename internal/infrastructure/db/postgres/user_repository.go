package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

var _ ports.UserRepository = (*UserRepository)(nil)

const userColumns = `id, first_name, middle_name, last_name, email, password_hash, phone, profile_picture,
	address, role, language, notifications_email, notifications_sms, security_two_factor_auth, verified,
	token, reset_password_token, last_login, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u         domain.User
		role      string
		address   []byte
		lastLogin sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.FirstName, &u.MiddleName, &u.LastName, &u.Email, &u.PasswordHash, &u.Phone, &u.ProfilePicture,
		&address, &role, &u.Settings.Language, &u.Settings.NotificationsEmail, &u.Settings.NotificationsSms,
		&u.Settings.SecurityTwoFactorAuth, &u.Settings.Verified,
		&u.Token, &u.ResetPasswordToken, &lastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(address) > 0 {
		if err := json.Unmarshal(address, &u.Address); err != nil {
			return nil, fmt.Errorf("decode address: %w", err)
		}
	}
	u.Role = domain.Role(role)
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	address, err := json.Marshal(user.Address)
	if err != nil {
		return nil, fmt.Errorf("encode address: %w", err)
	}

	created := *user
	created.ID = uuid.NewString()

	query := `INSERT INTO users (id, first_name, middle_name, last_name, email, password_hash, phone,
		profile_picture, address, role, language, notifications_email, notifications_sms,
		security_two_factor_auth, verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err = r.db.ExecContext(ctx, query,
		created.ID, created.FirstName, created.MiddleName, created.LastName, created.Email, created.PasswordHash,
		created.Phone, created.ProfilePicture, string(address), string(created.Role), created.Settings.Language,
		created.Settings.NotificationsEmail, created.Settings.NotificationsSms,
		created.Settings.SecurityTwoFactorAuth, created.Settings.Verified, created.CreatedAt, created.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if !validID(id) {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE phone = $1 LIMIT 1`, phone)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return users, nil
}

func (r *UserRepository) SetSession(ctx context.Context, id, token string, lastLogin time.Time) error {
	if lastLogin.IsZero() {
		return r.exec(ctx, `UPDATE users SET token = $2, updated_at = now() WHERE id = $1`, id, token)
	}
	return r.exec(ctx, `UPDATE users SET token = $2, last_login = $3, updated_at = now() WHERE id = $1`, id, token, lastLogin)
}

// MarkVerified flips verified only while it is still false.
func (r *UserRepository) MarkVerified(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, domain.ErrUserNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET verified = TRUE, updated_at = now() WHERE id = $1 AND verified = FALSE`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	if n == 1 {
		return true, nil
	}
	return false, r.exists(ctx, id)
}

func (r *UserRepository) SetResetToken(ctx context.Context, id, token string) error {
	return r.exec(ctx, `UPDATE users SET reset_password_token = $2, updated_at = now() WHERE id = $1`, id, token)
}

// ConsumeResetToken is a compare-and-clear on reset_password_token.
func (r *UserRepository) ConsumeResetToken(ctx context.Context, id, token, passwordHash string) (bool, error) {
	if !validID(id) || token == "" {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $3, reset_password_token = '', updated_at = now()
		 WHERE id = $1 AND reset_password_token = $2`, id, token, passwordHash)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n == 1, nil
}

func (r *UserRepository) UpdateEmail(ctx context.Context, id, email string) error {
	return r.exec(ctx, `UPDATE users SET email = $2, verified = FALSE, updated_at = now() WHERE id = $1`, id, email)
}

func (r *UserRepository) UpdatePhone(ctx context.Context, id, phone string) error {
	return r.exec(ctx, `UPDATE users SET phone = $2, updated_at = now() WHERE id = $1`, id, phone)
}

func (r *UserRepository) UpdateAddress(ctx context.Context, id string, address domain.Address) error {
	raw, err := json.Marshal(address)
	if err != nil {
		return fmt.Errorf("encode address: %w", err)
	}
	return r.exec(ctx, `UPDATE users SET address = $2, updated_at = now() WHERE id = $1`, id, string(raw))
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id, firstName, middleName, lastName string) error {
	return r.exec(ctx,
		`UPDATE users SET first_name = $2, middle_name = $3, last_name = $4, updated_at = now() WHERE id = $1`,
		id, firstName, middleName, lastName)
}

func (r *UserRepository) UpdatePreferences(ctx context.Context, id string, prefs domain.Preferences) error {
	return r.exec(ctx,
		`UPDATE users SET notifications_email = $2, notifications_sms = $3, security_two_factor_auth = $4,
		 updated_at = now() WHERE id = $1`,
		id, prefs.NotificationsEmail, prefs.NotificationsSms, prefs.SecurityTwoFactorAuth)
}

func (r *UserRepository) UpdateLanguage(ctx context.Context, id, language string) error {
	return r.exec(ctx, `UPDATE users SET language = $2, updated_at = now() WHERE id = $1`, id, language)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.exec(ctx, `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
}

// exec runs a single-row update and maps zero affected rows to not found.
func (r *UserRepository) exec(ctx context.Context, query string, id string, args ...any) error {
	if !validID(id) {
		return domain.ErrUserNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) exists(ctx context.Context, id string) error {
	var found bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&found); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if !found {
		return domain.ErrUserNotFound
	}
	return nil
}
