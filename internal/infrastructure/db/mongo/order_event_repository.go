package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/littlelemon/restaurant-api/internal/core/domain"
)

const collectionOrderEvents = "order_events"

type orderEventDoc struct {
	OrderID     uint      `bson:"order_id"`
	Kind        string    `bson:"kind"`
	ActorID     uint      `bson:"actor_id"`
	ActorRole   string    `bson:"actor_role"`
	FromStatus  *int      `bson:"from_status,omitempty"`
	ToStatus    *int      `bson:"to_status,omitempty"`
	CrewID      *uint     `bson:"delivery_crew_id,omitempty"`
	Total       string    `bson:"total,omitempty"`
	LineCount   int       `bson:"line_count,omitempty"`
	At          time.Time `bson:"at"`
	ProcessedAt time.Time `bson:"processed_at"`
}

// OrderEventRepository persists the order audit trail.
type OrderEventRepository struct {
	col *mongo.Collection
}

func NewOrderEventRepository(db *mongo.Database) *OrderEventRepository {
	return &OrderEventRepository{col: db.Collection(collectionOrderEvents)}
}

// InsertEvent appends one audit record.
func (r *OrderEventRepository) InsertEvent(ctx context.Context, event *domain.OrderEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, toOrderEventDoc(event, time.Now().UTC()))
	return err
}

// EnsureIndexes creates the lookup indexes on the order_events collection.
func (r *OrderEventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "order_id", Value: 1}, {Key: "at", Value: 1}}},
		{Keys: bson.D{{Key: "actor_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toOrderEventDoc(e *domain.OrderEvent, processedAt time.Time) orderEventDoc {
	doc := orderEventDoc{
		OrderID:     e.OrderID,
		Kind:        string(e.Kind),
		ActorID:     e.ActorID,
		ActorRole:   e.ActorRole.String(),
		CrewID:      e.CrewID,
		LineCount:   e.LineCount,
		At:          e.At.UTC(),
		ProcessedAt: processedAt,
	}
	if e.FromStatus != nil {
		v := int(*e.FromStatus)
		doc.FromStatus = &v
	}
	if e.ToStatus != nil {
		v := int(*e.ToStatus)
		doc.ToStatus = &v
	}
	if !e.Total.IsZero() {
		doc.Total = e.Total.StringFixed(2)
	}
	return doc
}
