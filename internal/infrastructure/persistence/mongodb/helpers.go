package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
)

// aggregateDoc carries the fields shared by every aggregate document
type aggregateDoc struct {
	ID        string    `bson:"_id"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
	Version   int       `bson:"version"`
}

func newAggregateDoc(id uuid.UUID, createdAt, updatedAt time.Time, version int) aggregateDoc {
	return aggregateDoc{
		ID:        id.String(),
		CreatedAt: createdAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
		Version:   version,
	}
}

func (d aggregateDoc) root() (shared.BaseAggregateRoot, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return shared.BaseAggregateRoot{}, fmt.Errorf("invalid document id %q: %w", d.ID, err)
	}
	return shared.BaseAggregateRoot{
		BaseEntity: shared.BaseEntity{
			ID:        id,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
		Version: d.Version,
	}, nil
}

// uuidPtr maps an optional UUID to its string form for storage
func uuidPtr(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func parseUUIDPtr(s *string) *uuid.UUID {
	if s == nil || *s == "" {
		return nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil
	}
	return &id
}

func parseUUID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// decString stores decimals as exact strings
func decString(d decimal.Decimal) string {
	return d.String()
}

func decStringPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseDecimalPtr(s *string) *decimal.Decimal {
	if s == nil || *s == "" {
		return nil
	}
	d := parseDecimal(*s)
	return &d
}

// geoPointDoc is a GeoJSON point, coordinates ordered [lng, lat]
type geoPointDoc struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

func newGeoPointDoc(p valueobject.GeoPoint) geoPointDoc {
	return geoPointDoc{Type: "Point", Coordinates: []float64{p.Lng(), p.Lat()}}
}

func newGeoPointDocPtr(p *valueobject.GeoPoint) *geoPointDoc {
	if p == nil {
		return nil
	}
	d := newGeoPointDoc(*p)
	return &d
}

func (d geoPointDoc) toPoint() valueobject.GeoPoint {
	if len(d.Coordinates) != 2 {
		return valueobject.GeoPoint{}
	}
	p, err := valueobject.NewGeoPoint(d.Coordinates[1], d.Coordinates[0])
	if err != nil {
		return valueobject.GeoPoint{}
	}
	return p
}

func geoPointPtr(d *geoPointDoc) *valueobject.GeoPoint {
	if d == nil {
		return nil
	}
	p := d.toPoint()
	return &p
}

func moneyDocOf(m valueobject.Money) moneyDoc {
	return moneyDoc{Amount: decString(m.Amount()), Currency: string(m.Currency())}
}

// moneyDoc stores a monetary value with its currency
type moneyDoc struct {
	Amount   string `bson:"amount"`
	Currency string `bson:"currency"`
}

func (d moneyDoc) toMoney() valueobject.Money {
	m, err := valueobject.NewMoney(parseDecimal(d.Amount), valueobject.Currency(d.Currency))
	if err != nil {
		return valueobject.Money{}
	}
	return m
}

// findOptions builds pagination and sorting options from the filter. The
// sort field must be whitelisted per collection so arbitrary client input
// never reaches the query planner.
func findOptions(filter shared.Filter, allowedSort map[string]bool) *options.FindOptions {
	field := filter.OrderBy
	if field == "" || !allowedSort[field] {
		field = "created_at"
	}
	dir := -1
	if filter.OrderDir == "asc" {
		dir = 1
	}
	return options.Find().
		SetSort(bson.D{{Key: field, Value: dir}, {Key: "_id", Value: 1}}).
		SetSkip(filter.Skip()).
		SetLimit(int64(filter.Limit()))
}

// searchClause builds a case-insensitive substring match over the fields
func searchClause(term string, fields ...string) bson.M {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	ors := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		ors = append(ors, bson.M{f: pattern})
	}
	return bson.M{"$or": ors}
}

// pathPrefixClause matches every node strictly below the given path
func pathPrefixClause(path string) bson.M {
	return bson.M{"path": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(path) + "/", Options: ""}}
}

// mapSaveError translates driver write errors to domain sentinels
func mapSaveError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return shared.ErrAlreadyExists
	}
	return err
}

// mapFindError translates a missing document to the domain sentinel
func mapFindError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return shared.ErrNotFound
	}
	return err
}

// decodeAll drains a cursor into documents of type D and maps each one
func decodeAll[D any, T any](ctx context.Context, cur *mongo.Cursor, mapFn func(D) (T, error)) ([]T, error) {
	defer cur.Close(ctx)

	var out []T
	for cur.Next(ctx) {
		var doc D
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		item, err := mapFn(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return out, nil
}

// replaceByID upserts the document under its string UUID key
func replaceByID(ctx context.Context, coll *mongo.Collection, id string, doc any) error {
	_, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return mapSaveError(err)
}

// deleteByID removes one document, reporting shared.ErrNotFound when absent
func deleteByID(ctx context.Context, coll *mongo.Collection, id uuid.UUID) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}
