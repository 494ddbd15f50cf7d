package mongodb

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/logistics-erp/hrm/internal/domain/org"
	"github.com/logistics-erp/hrm/internal/domain/shared"
)

type compensationDoc struct {
	MinSalary moneyDoc `bson:"min_salary"`
	MaxSalary moneyDoc `bson:"max_salary"`
}

type headcountDoc struct {
	Authorized int `bson:"authorized"`
	Filled     int `bson:"filled"`
}

type positionDoc struct {
	aggregateDoc `bson:",inline"`
	Code         string          `bson:"code"`
	Title        string          `bson:"title"`
	DivisionID   string          `bson:"division_id"`
	ReportsToID  *string         `bson:"reports_to_id,omitempty"`
	Path         string          `bson:"path"`
	Level        int             `bson:"level"`
	Grade        int             `bson:"grade"`
	Compensation compensationDoc `bson:"compensation"`
	Requirements []string        `bson:"requirements,omitempty"`
	Headcount    headcountDoc    `bson:"headcount"`
	Status       string          `bson:"status"`
}

func newPositionDoc(p *org.Position) positionDoc {
	return positionDoc{
		aggregateDoc: newAggregateDoc(p.ID, p.CreatedAt, p.UpdatedAt, p.Version),
		Code:         p.Code,
		Title:        p.Title,
		DivisionID:   p.DivisionID.String(),
		ReportsToID:  uuidPtr(p.ReportsToID),
		Path:         p.Path,
		Level:        p.Level,
		Grade:        p.Grade,
		Compensation: compensationDoc{
			MinSalary: moneyDocOf(p.Compensation.MinSalary),
			MaxSalary: moneyDocOf(p.Compensation.MaxSalary),
		},
		Requirements: p.Requirements,
		Headcount:    headcountDoc(p.Headcount),
		Status:       string(p.Status),
	}
}

func (d positionDoc) toDomain() (org.Position, error) {
	root, err := d.root()
	if err != nil {
		return org.Position{}, err
	}
	return org.Position{
		BaseAggregateRoot: root,
		Code:              d.Code,
		Title:             d.Title,
		DivisionID:        parseUUID(d.DivisionID),
		ReportsToID:       parseUUIDPtr(d.ReportsToID),
		Path:              d.Path,
		Level:             d.Level,
		Grade:             d.Grade,
		Compensation: org.CompensationBand{
			MinSalary: d.Compensation.MinSalary.toMoney(),
			MaxSalary: d.Compensation.MaxSalary.toMoney(),
		},
		Requirements: d.Requirements,
		Headcount:    org.Headcount(d.Headcount),
		Status:       org.PositionStatus(d.Status),
	}, nil
}

// PositionRepository persists positions in the positions collection
type PositionRepository struct {
	coll *mongo.Collection
}

// NewPositionRepository creates a position repository
func NewPositionRepository(db *mongo.Database) *PositionRepository {
	return &PositionRepository{coll: db.Collection(collPositions)}
}

var positionSortFields = map[string]bool{
	"code": true, "title": true, "grade": true, "level": true,
	"status": true, "created_at": true, "updated_at": true,
}

func positionQuery(filter shared.Filter) bson.M {
	query := bson.M{}
	if v, ok := filter.Filters["status"].(string); ok && v != "" {
		query["status"] = v
	}
	if v, ok := filter.Filters["division_id"].(uuid.UUID); ok {
		query["division_id"] = v.String()
	}
	if v, ok := filter.Filters["grade"].(int); ok {
		query["grade"] = v
	}
	if filter.Search != "" {
		query["$and"] = []bson.M{searchClause(filter.Search, "code", "title")}
	}
	return query
}

func (r *PositionRepository) FindByID(ctx context.Context, id uuid.UUID) (*org.Position, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *PositionRepository) FindByCode(ctx context.Context, code string) (*org.Position, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *PositionRepository) findOne(ctx context.Context, query bson.M) (*org.Position, error) {
	var doc positionDoc
	if err := r.coll.FindOne(ctx, query).Decode(&doc); err != nil {
		return nil, mapFindError(err)
	}
	position, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *PositionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]org.Position, error) {
	cur, err := r.coll.Find(ctx, positionQuery(filter), findOptions(filter, positionSortFields))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, positionDoc.toDomain)
}

func (r *PositionRepository) FindByDivision(ctx context.Context, divisionID uuid.UUID) ([]org.Position, error) {
	return r.findMany(ctx, bson.M{"division_id": divisionID.String()}, options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
}

func (r *PositionRepository) FindDirectReports(ctx context.Context, positionID uuid.UUID) ([]org.Position, error) {
	return r.findMany(ctx, bson.M{"reports_to_id": positionID.String()}, options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
}

func (r *PositionRepository) FindDescendants(ctx context.Context, positionID uuid.UUID) ([]org.Position, error) {
	position, err := r.FindByID(ctx, positionID)
	if err != nil {
		return nil, err
	}
	return r.findMany(ctx, pathPrefixClause(position.Path), options.Find().SetSort(bson.D{{Key: "path", Value: 1}}))
}

func (r *PositionRepository) findMany(ctx context.Context, query bson.M, opts ...*options.FindOptions) ([]org.Position, error) {
	cur, err := r.coll.Find(ctx, query, opts...)
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, positionDoc.toDomain)
}

func (r *PositionRepository) Save(ctx context.Context, position *org.Position) error {
	return replaceByID(ctx, r.coll, position.ID.String(), newPositionDoc(position))
}

func (r *PositionRepository) UpdateSubtreePaths(ctx context.Context, oldPath, newPath string, levelDelta int) error {
	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.M{
			"path": bson.M{"$replaceOne": bson.M{
				"input":       "$path",
				"find":        oldPath + "/",
				"replacement": newPath + "/",
			}},
			"level": bson.M{"$add": bson.A{"$level", levelDelta}},
		}}},
	}
	_, err := r.coll.UpdateMany(ctx, pathPrefixClause(oldPath), update)
	return err
}

func (r *PositionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *PositionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.coll.CountDocuments(ctx, positionQuery(filter))
}

func (r *PositionRepository) CountDirectReports(ctx context.Context, positionID uuid.UUID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"reports_to_id": positionID.String()})
}

func (r *PositionRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"code": code}, options.Count().SetLimit(1))
	return count > 0, err
}
