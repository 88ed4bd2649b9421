package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

var _ ports.UserRepository = (*UserRepository)(nil)

type mongoUser struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	FirstName          string             `bson:"first_name"`
	MiddleName         string             `bson:"middle_name,omitempty"`
	LastName           string             `bson:"last_name"`
	Email              string             `bson:"email"`
	PasswordHash       string             `bson:"password_hash"`
	Phone              string             `bson:"phone,omitempty"`
	ProfilePicture     string             `bson:"profile_picture,omitempty"`
	Address            domain.Address     `bson:"address"`
	Role               string             `bson:"role"`
	Settings           domain.Settings    `bson:"settings"`
	Token              string             `bson:"token,omitempty"`
	ResetPasswordToken string             `bson:"reset_password_token,omitempty"`
	LastLogin          *time.Time         `bson:"last_login,omitempty"`
	CreatedAt          time.Time          `bson:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at"`
}

func (m *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:                 m.ID.Hex(),
		FirstName:          m.FirstName,
		MiddleName:         m.MiddleName,
		LastName:           m.LastName,
		Email:              m.Email,
		PasswordHash:       m.PasswordHash,
		Phone:              m.Phone,
		ProfilePicture:     m.ProfilePicture,
		Address:            m.Address,
		Role:               domain.Role(m.Role),
		Settings:           m.Settings,
		Token:              m.Token,
		ResetPasswordToken: m.ResetPasswordToken,
		LastLogin:          m.LastLogin,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		ID:             primitive.NewObjectID(),
		FirstName:      user.FirstName,
		MiddleName:     user.MiddleName,
		LastName:       user.LastName,
		Email:          user.Email,
		PasswordHash:   user.PasswordHash,
		Phone:          user.Phone,
		ProfilePicture: user.ProfilePicture,
		Address:        user.Address,
		Role:           string(user.Role),
		Settings:       user.Settings,
		CreatedAt:      user.CreatedAt.UTC(),
		UpdatedAt:      user.UpdatedAt.UTC(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"phone": phone})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoUser
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toDomain())
	}
	return users, nil
}

func (r *UserRepository) SetSession(ctx context.Context, id, token string, lastLogin time.Time) error {
	set := bson.M{"token": token}
	if !lastLogin.IsZero() {
		set["last_login"] = lastLogin.UTC()
	}
	return r.set(ctx, id, set)
}

// MarkVerified only matches while settings.verified is still false, so of
// two concurrent calls exactly one flips the flag.
func (r *UserRepository) MarkVerified(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, domain.ErrUserNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "settings.verified": false},
		bson.M{"$set": bson.M{"settings.verified": true, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return false, fmt.Errorf("mark verified: %w", err)
	}
	if res.MatchedCount == 1 {
		return true, nil
	}
	return false, r.exists(ctx, oid)
}

func (r *UserRepository) SetResetToken(ctx context.Context, id, token string) error {
	return r.set(ctx, id, bson.M{"reset_password_token": token})
}

// ConsumeResetToken writes the new hash and clears the token in one update
// filtered on the presented token.
func (r *UserRepository) ConsumeResetToken(ctx context.Context, id, token, passwordHash string) (bool, error) {
	oid, ok := objectID(id)
	if !ok || token == "" {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "reset_password_token": token},
		bson.M{
			"$set":   bson.M{"password_hash": passwordHash, "updated_at": time.Now().UTC()},
			"$unset": bson.M{"reset_password_token": ""},
		},
	)
	if err != nil {
		return false, fmt.Errorf("consume reset token: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (r *UserRepository) UpdateEmail(ctx context.Context, id, email string) error {
	return r.set(ctx, id, bson.M{"email": email, "settings.verified": false})
}

func (r *UserRepository) UpdatePhone(ctx context.Context, id, phone string) error {
	return r.set(ctx, id, bson.M{"phone": phone})
}

func (r *UserRepository) UpdateAddress(ctx context.Context, id string, address domain.Address) error {
	return r.set(ctx, id, bson.M{"address": address})
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id, firstName, middleName, lastName string) error {
	return r.set(ctx, id, bson.M{"first_name": firstName, "middle_name": middleName, "last_name": lastName})
}

func (r *UserRepository) UpdatePreferences(ctx context.Context, id string, prefs domain.Preferences) error {
	return r.set(ctx, id, bson.M{
		"settings.notifications_email":      prefs.NotificationsEmail,
		"settings.notifications_sms":        prefs.NotificationsSms,
		"settings.security_two_factor_auth": prefs.SecurityTwoFactorAuth,
	})
}

func (r *UserRepository) UpdateLanguage(ctx context.Context, id, language string) error {
	return r.set(ctx, id, bson.M{"settings.language": language})
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.set(ctx, id, bson.M{"password_hash": passwordHash})
}

// set applies a $set on the listed fields only.
func (r *UserRepository) set(ctx context.Context, id string, fields bson.M) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrUserNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	fields["updated_at"] = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) exists(ctx context.Context, oid primitive.ObjectID) error {
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("count user: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
