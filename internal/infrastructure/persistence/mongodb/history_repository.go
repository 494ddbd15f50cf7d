package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/workforce"
)

type historyDoc struct {
	ID         string    `bson:"_id"`
	EmployeeID string    `bson:"employee_id"`
	Action     string    `bson:"action"`
	Field      string    `bson:"field,omitempty"`
	OldValue   string    `bson:"old_value,omitempty"`
	NewValue   string    `bson:"new_value,omitempty"`
	ActorID    string    `bson:"actor_id"`
	Note       string    `bson:"note,omitempty"`
	OccurredAt time.Time `bson:"occurred_at"`
}

func newHistoryDoc(r *workforce.HistoryRecord) historyDoc {
	return historyDoc{
		ID:         r.ID.String(),
		EmployeeID: r.EmployeeID.String(),
		Action:     string(r.Action),
		Field:      r.Field,
		OldValue:   r.OldValue,
		NewValue:   r.NewValue,
		ActorID:    r.ActorID.String(),
		Note:       r.Note,
		OccurredAt: r.OccurredAt.UTC(),
	}
}

func (d historyDoc) toDomain() (workforce.HistoryRecord, error) {
	return workforce.HistoryRecord{
		ID:         parseUUID(d.ID),
		EmployeeID: parseUUID(d.EmployeeID),
		Action:     workforce.HistoryAction(d.Action),
		Field:      d.Field,
		OldValue:   d.OldValue,
		NewValue:   d.NewValue,
		ActorID:    parseUUID(d.ActorID),
		Note:       d.Note,
		OccurredAt: d.OccurredAt,
	}, nil
}

// HistoryRepository stores the append-only employee audit trail. Records
// are only ever inserted, never replaced or removed.
type HistoryRepository struct {
	coll *mongo.Collection
}

// NewHistoryRepository creates a history repository
func NewHistoryRepository(db *mongo.Database) *HistoryRepository {
	return &HistoryRepository{coll: db.Collection(collHistory)}
}

func (r *HistoryRepository) Append(ctx context.Context, records ...*workforce.HistoryRecord) error {
	if len(records) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(records))
	for _, record := range records {
		docs = append(docs, newHistoryDoc(record))
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return mapSaveError(err)
}

func historyQuery(employeeID uuid.UUID, filter shared.Filter) bson.M {
	query := bson.M{"employee_id": employeeID.String()}
	if v, ok := filter.Filters["action"].(string); ok && v != "" {
		query["action"] = v
	}
	return query
}

func (r *HistoryRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID, filter shared.Filter) ([]workforce.HistoryRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(filter.Skip()).
		SetLimit(int64(filter.Limit()))
	cur, err := r.coll.Find(ctx, historyQuery(employeeID, filter), opts)
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, historyDoc.toDomain)
}

func (r *HistoryRepository) CountByEmployee(ctx context.Context, employeeID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.coll.CountDocuments(ctx, historyQuery(employeeID, filter))
}
