package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

var _ ports.OrderRepository = (*OrderRepository)(nil)

type mongoOrder struct {
	ID            primitive.ObjectID          `bson:"_id,omitempty"`
	Status        string                      `bson:"status"`
	Location      domain.Location             `bson:"location"`
	Details       domain.Details              `bson:"details"`
	Payment       domain.Payment              `bson:"payment"`
	UserID        string                      `bson:"user_id"`
	CourierID     string                      `bson:"courier_id,omitempty"`
	StatusHistory []domain.StatusHistoryEntry `bson:"status_history"`
	CreatedAt     time.Time                   `bson:"created_at"`
	UpdatedAt     time.Time                   `bson:"updated_at"`
}

func (m *mongoOrder) toDomain() *domain.Order {
	return &domain.Order{
		ID:            m.ID.Hex(),
		Status:        domain.OrderStatus(m.Status),
		Location:      m.Location,
		Details:       m.Details,
		Payment:       m.Payment,
		UserID:        m.UserID,
		CourierID:     m.CourierID,
		StatusHistory: m.StatusHistory,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// Create inserts a new order document.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoOrder{
		ID:            primitive.NewObjectID(),
		Status:        string(o.Status),
		Location:      o.Location,
		Details:       o.Details,
		Payment:       o.Payment,
		UserID:        o.UserID,
		CourierID:     o.CourierID,
		StatusHistory: o.StatusHistory,
		CreatedAt:     o.CreatedAt.UTC(),
		UpdatedAt:     o.UpdatedAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoOrder
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns orders newest first, restricted to participantID when set.
func (r *OrderRepository) List(ctx context.Context, participantID string) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if participantID != "" {
		filter["$or"] = bson.A{
			bson.M{"user_id": participantID},
			bson.M{"courier_id": participantID},
		}
	}

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoOrder
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	orders := make([]*domain.Order, 0, len(docs))
	for i := range docs {
		orders = append(orders, docs[i].toDomain())
	}
	return orders, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrOrderNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// UpdateStatus sets the status and appends a history entry in one update
// that only matches while the stored status still equals u.From.
func (r *OrderRepository) UpdateStatus(ctx context.Context, u ports.StatusUpdate) error {
	oid, ok := objectID(u.OrderID)
	if !ok {
		return domain.ErrOrderNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"status": string(u.To), "updated_at": u.At.UTC()}
	if u.CourierID != "" {
		set["courier_id"] = u.CourierID
	}
	entry := domain.StatusHistoryEntry{Status: u.To, Timestamp: u.At.UTC(), ActorID: u.ActorID}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "status": string(u.From)},
		bson.M{"$set": set, "$push": bson.M{"status_history": entry}},
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("count order: %w", err)
	}
	if n == 0 {
		return domain.ErrOrderNotFound
	}
	return domain.ErrInvalidTransition
}
