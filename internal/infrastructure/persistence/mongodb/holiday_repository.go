package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/timekeeping"
)

type holidayDoc struct {
	aggregateDoc `bson:",inline"`
	Date         time.Time `bson:"date"`
	Name         string    `bson:"name"`
	Recurring    bool      `bson:"recurring"`
	BranchID     *string   `bson:"branch_id,omitempty"`
}

func newHolidayDoc(h *timekeeping.Holiday) holidayDoc {
	return holidayDoc{
		aggregateDoc: newAggregateDoc(h.ID, h.CreatedAt, h.UpdatedAt, h.Version),
		Date:         h.Date,
		Name:         h.Name,
		Recurring:    h.Recurring,
		BranchID:     uuidPtr(h.BranchID),
	}
}

func (d holidayDoc) toDomain() (*timekeeping.Holiday, error) {
	root, err := d.root()
	if err != nil {
		return nil, err
	}
	return &timekeeping.Holiday{
		BaseAggregateRoot: root,
		Date:              d.Date,
		Name:              d.Name,
		Recurring:         d.Recurring,
		BranchID:          parseUUIDPtr(d.BranchID),
	}, nil
}

// HolidayRepository persists the holiday calendar. Company-wide entries
// carry no branch; branch-scoped entries apply on top of them.
type HolidayRepository struct {
	coll *mongo.Collection
}

// NewHolidayRepository creates a holiday repository
func NewHolidayRepository(db *mongo.Database) *HolidayRepository {
	return &HolidayRepository{coll: db.Collection(collHolidays)}
}

var holidaySortFields = map[string]bool{
	"date": true, "name": true, "created_at": true, "updated_at": true,
}

func holidayQuery(filter shared.Filter) bson.M {
	query := bson.M{}
	if v, ok := filter.Filters["year"].(int); ok && v > 0 {
		query["date"] = yearRange(v)
	}
	if v, ok := filter.Filters["branch_id"].(uuid.UUID); ok {
		query["$or"] = scopeClauses(&v)
	}
	if filter.Search != "" {
		query["$and"] = []bson.M{searchClause(filter.Search, "name")}
	}
	return query
}

func yearRange(year int) bson.M {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return bson.M{"$gte": start, "$lt": start.AddDate(1, 0, 0)}
}

// scopeClauses matches company-wide holidays plus the branch's own
func scopeClauses(branchID *uuid.UUID) []bson.M {
	clauses := []bson.M{{"branch_id": nil}}
	if branchID != nil {
		clauses = append(clauses, bson.M{"branch_id": branchID.String()})
	}
	return clauses
}

func (r *HolidayRepository) FindByID(ctx context.Context, id uuid.UUID) (*timekeeping.Holiday, error) {
	var doc holidayDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		return nil, mapFindError(err)
	}
	return doc.toDomain()
}

func (r *HolidayRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*timekeeping.Holiday, error) {
	cur, err := r.coll.Find(ctx, holidayQuery(filter), findOptions(filter, holidaySortFields))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, holidayDoc.toDomain)
}

// FindForYear returns the year's own entries plus every recurring entry,
// the caller projects recurring ones onto the year
func (r *HolidayRepository) FindForYear(ctx context.Context, year int, branchID *uuid.UUID) ([]*timekeeping.Holiday, error) {
	query := bson.M{"$and": []bson.M{
		{"$or": []bson.M{
			{"date": yearRange(year)},
			{"recurring": true},
		}},
		{"$or": scopeClauses(branchID)},
	}}
	return r.findMany(ctx, query)
}

// FindBetween returns dated entries within the range plus every recurring
// entry, the caller checks occurrence per day
func (r *HolidayRepository) FindBetween(ctx context.Context, start, end time.Time, branchID *uuid.UUID) ([]*timekeeping.Holiday, error) {
	query := bson.M{"$and": []bson.M{
		{"$or": []bson.M{
			{"date": bson.M{"$gte": start, "$lte": end}},
			{"recurring": true},
		}},
		{"$or": scopeClauses(branchID)},
	}}
	return r.findMany(ctx, query)
}

func (r *HolidayRepository) findMany(ctx context.Context, query bson.M) ([]*timekeeping.Holiday, error) {
	cur, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, holidayDoc.toDomain)
}

func (r *HolidayRepository) ExistsOnDate(ctx context.Context, date time.Time, branchID *uuid.UUID) (bool, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	query := bson.M{"$and": []bson.M{
		{"$or": []bson.M{
			{"date": bson.M{"$gte": day, "$lt": day.AddDate(0, 0, 1)}},
			{"recurring": true, "$expr": bson.M{"$and": bson.A{
				bson.M{"$eq": bson.A{bson.M{"$month": "$date"}, int(day.Month())}},
				bson.M{"$eq": bson.A{bson.M{"$dayOfMonth": "$date"}, day.Day()}},
			}}},
		}},
		{"$or": scopeClauses(branchID)},
	}}
	count, err := r.coll.CountDocuments(ctx, query, options.Count().SetLimit(1))
	return count > 0, err
}

func (r *HolidayRepository) Save(ctx context.Context, holiday *timekeeping.Holiday) error {
	return replaceByID(ctx, r.coll, holiday.ID.String(), newHolidayDoc(holiday))
}

func (r *HolidayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *HolidayRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.coll.CountDocuments(ctx, holidayQuery(filter))
}
