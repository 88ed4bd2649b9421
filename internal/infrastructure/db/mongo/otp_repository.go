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

type OtpRepository struct {
	col *mongo.Collection
}

func NewOtpRepository(db *mongo.Database) *OtpRepository {
	return &OtpRepository{col: db.Collection(collectionOtps)}
}

var _ ports.OtpRepository = (*OtpRepository)(nil)

type mongoOtp struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Code      string             `bson:"code"`
	CreatedAt time.Time          `bson:"created_at"`
	ExpiresAt time.Time          `bson:"expires_at"`
}

func (m *mongoOtp) toDomain() *domain.OtpRecord {
	return &domain.OtpRecord{
		ID:        m.ID.Hex(),
		UserID:    m.UserID,
		Code:      m.Code,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
	}
}

func (r *OtpRepository) Create(ctx context.Context, record *domain.OtpRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoOtp{
		ID:        primitive.NewObjectID(),
		UserID:    record.UserID,
		Code:      record.Code,
		CreatedAt: record.CreatedAt.UTC(),
		ExpiresAt: record.ExpiresAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert otp: %w", err)
	}
	record.ID = doc.ID.Hex()
	return nil
}

func (r *OtpRepository) FindByUserAndCode(ctx context.Context, userID, code string) (*domain.OtpRecord, error) {
	return r.findOne(ctx, bson.M{"user_id": userID, "code": code})
}

func (r *OtpRepository) findOne(ctx context.Context, filter bson.M) (*domain.OtpRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoOtp
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOtpNotFound
		}
		return nil, fmt.Errorf("find otp: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OtpRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete otp: %w", err)
	}
	return res.DeletedCount == 1, nil
}

func (r *OtpRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("delete otps: %w", err)
	}
	return res.DeletedCount, nil
}
