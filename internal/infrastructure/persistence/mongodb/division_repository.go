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

type divisionDoc struct {
	aggregateDoc `bson:",inline"`
	Code         string   `bson:"code"`
	Name         string   `bson:"name"`
	Description  string   `bson:"description,omitempty"`
	ParentID     *string  `bson:"parent_id,omitempty"`
	Path         string   `bson:"path"`
	Level        int      `bson:"level"`
	BranchID     *string  `bson:"branch_id,omitempty"`
	ManagerID    *string  `bson:"manager_id,omitempty"`
	Budget       moneyDoc `bson:"budget"`
	Status       string   `bson:"status"`
}

func newDivisionDoc(d *org.Division) divisionDoc {
	return divisionDoc{
		aggregateDoc: newAggregateDoc(d.ID, d.CreatedAt, d.UpdatedAt, d.Version),
		Code:         d.Code,
		Name:         d.Name,
		Description:  d.Description,
		ParentID:     uuidPtr(d.ParentID),
		Path:         d.Path,
		Level:        d.Level,
		BranchID:     uuidPtr(d.BranchID),
		ManagerID:    uuidPtr(d.ManagerID),
		Budget:       moneyDocOf(d.Budget),
		Status:       string(d.Status),
	}
}

func (d divisionDoc) toDomain() (org.Division, error) {
	root, err := d.root()
	if err != nil {
		return org.Division{}, err
	}
	return org.Division{
		BaseAggregateRoot: root,
		Code:              d.Code,
		Name:              d.Name,
		Description:       d.Description,
		ParentID:          parseUUIDPtr(d.ParentID),
		Path:              d.Path,
		Level:             d.Level,
		BranchID:          parseUUIDPtr(d.BranchID),
		ManagerID:         parseUUIDPtr(d.ManagerID),
		Budget:            d.Budget.toMoney(),
		Status:            org.DivisionStatus(d.Status),
	}, nil
}

// DivisionRepository persists divisions in the divisions collection
type DivisionRepository struct {
	coll *mongo.Collection
}

// NewDivisionRepository creates a division repository
func NewDivisionRepository(db *mongo.Database) *DivisionRepository {
	return &DivisionRepository{coll: db.Collection(collDivisions)}
}

var divisionSortFields = map[string]bool{
	"code": true, "name": true, "level": true, "status": true,
	"created_at": true, "updated_at": true,
}

func divisionQuery(filter shared.Filter) bson.M {
	query := bson.M{}
	if v, ok := filter.Filters["status"].(string); ok && v != "" {
		query["status"] = v
	}
	if v, ok := filter.Filters["parent_id"].(uuid.UUID); ok {
		query["parent_id"] = v.String()
	}
	if v, ok := filter.Filters["branch_id"].(uuid.UUID); ok {
		query["branch_id"] = v.String()
	}
	if filter.Search != "" {
		query["$and"] = []bson.M{searchClause(filter.Search, "code", "name")}
	}
	return query
}

func (r *DivisionRepository) FindByID(ctx context.Context, id uuid.UUID) (*org.Division, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *DivisionRepository) FindByCode(ctx context.Context, code string) (*org.Division, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *DivisionRepository) findOne(ctx context.Context, query bson.M) (*org.Division, error) {
	var doc divisionDoc
	if err := r.coll.FindOne(ctx, query).Decode(&doc); err != nil {
		return nil, mapFindError(err)
	}
	division, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	return &division, nil
}

func (r *DivisionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]org.Division, error) {
	cur, err := r.coll.Find(ctx, divisionQuery(filter), findOptions(filter, divisionSortFields))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, divisionDoc.toDomain)
}

func (r *DivisionRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]org.Division, error) {
	return r.findMany(ctx, bson.M{"parent_id": parentID.String()}, options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
}

func (r *DivisionRepository) FindRoots(ctx context.Context) ([]org.Division, error) {
	return r.findMany(ctx, bson.M{"parent_id": nil}, options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
}

func (r *DivisionRepository) FindDescendants(ctx context.Context, divisionID uuid.UUID) ([]org.Division, error) {
	division, err := r.FindByID(ctx, divisionID)
	if err != nil {
		return nil, err
	}
	return r.findMany(ctx, pathPrefixClause(division.Path), options.Find().SetSort(bson.D{{Key: "path", Value: 1}}))
}

func (r *DivisionRepository) findMany(ctx context.Context, query bson.M, opts ...*options.FindOptions) ([]org.Division, error) {
	cur, err := r.coll.Find(ctx, query, opts...)
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, divisionDoc.toDomain)
}

func (r *DivisionRepository) Save(ctx context.Context, division *org.Division) error {
	return replaceByID(ctx, r.coll, division.ID.String(), newDivisionDoc(division))
}

func (r *DivisionRepository) UpdateSubtreePaths(ctx context.Context, oldPath, newPath string, levelDelta int) error {
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

func (r *DivisionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *DivisionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.coll.CountDocuments(ctx, divisionQuery(filter))
}

func (r *DivisionRepository) CountChildren(ctx context.Context, parentID uuid.UUID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"parent_id": parentID.String()})
}

func (r *DivisionRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"code": code}, options.Count().SetLimit(1))
	return count > 0, err
}
