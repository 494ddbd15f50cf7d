package mongodb

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/logistics-erp/hrm/internal/domain/coverage"
	"github.com/logistics-erp/hrm/internal/domain/shared"
)

type assignmentDoc struct {
	aggregateDoc `bson:",inline"`
	AreaID       string `bson:"area_id"`
	BranchID     string `bson:"branch_id"`
	Priority     int    `bson:"priority"`
	Active       bool   `bson:"active"`
}

func newAssignmentDoc(a *coverage.ServiceAreaAssignment) assignmentDoc {
	return assignmentDoc{
		aggregateDoc: newAggregateDoc(a.ID, a.CreatedAt, a.UpdatedAt, a.Version),
		AreaID:       a.AreaID.String(),
		BranchID:     a.BranchID.String(),
		Priority:     a.Priority,
		Active:       a.Active,
	}
}

func (d assignmentDoc) toDomain() (*coverage.ServiceAreaAssignment, error) {
	root, err := d.root()
	if err != nil {
		return nil, err
	}
	return &coverage.ServiceAreaAssignment{
		BaseAggregateRoot: root,
		AreaID:            parseUUID(d.AreaID),
		BranchID:          parseUUID(d.BranchID),
		Priority:          d.Priority,
		Active:            d.Active,
	}, nil
}

// AssignmentRepository persists area-to-branch assignments
type AssignmentRepository struct {
	coll *mongo.Collection
}

// NewAssignmentRepository creates an assignment repository
func NewAssignmentRepository(db *mongo.Database) *AssignmentRepository {
	return &AssignmentRepository{coll: db.Collection(collAssignments)}
}

var assignmentSortFields = map[string]bool{
	"priority": true, "created_at": true, "updated_at": true,
}

func assignmentQuery(filter shared.Filter) bson.M {
	query := bson.M{}
	if v, ok := filter.Filters["branch_id"].(uuid.UUID); ok {
		query["branch_id"] = v.String()
	}
	if v, ok := filter.Filters["active"].(bool); ok {
		query["active"] = v
	}
	return query
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*coverage.ServiceAreaAssignment, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *AssignmentRepository) FindByAreaAndBranch(ctx context.Context, areaID, branchID uuid.UUID) (*coverage.ServiceAreaAssignment, error) {
	return r.findOne(ctx, bson.M{"area_id": areaID.String(), "branch_id": branchID.String()})
}

func (r *AssignmentRepository) findOne(ctx context.Context, query bson.M) (*coverage.ServiceAreaAssignment, error) {
	var doc assignmentDoc
	if err := r.coll.FindOne(ctx, query).Decode(&doc); err != nil {
		return nil, mapFindError(err)
	}
	return doc.toDomain()
}

func (r *AssignmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*coverage.ServiceAreaAssignment, error) {
	cur, err := r.coll.Find(ctx, assignmentQuery(filter), findOptions(filter, assignmentSortFields))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, assignmentDoc.toDomain)
}

func (r *AssignmentRepository) FindByArea(ctx context.Context, areaID uuid.UUID) ([]*coverage.ServiceAreaAssignment, error) {
	return r.findMany(ctx, bson.M{"area_id": areaID.String()})
}

func (r *AssignmentRepository) FindByBranch(ctx context.Context, branchID uuid.UUID) ([]*coverage.ServiceAreaAssignment, error) {
	return r.findMany(ctx, bson.M{"branch_id": branchID.String()})
}

func (r *AssignmentRepository) FindActiveByAreas(ctx context.Context, areaIDs []uuid.UUID) ([]*coverage.ServiceAreaAssignment, error) {
	if len(areaIDs) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(areaIDs))
	for _, id := range areaIDs {
		ids = append(ids, id.String())
	}
	return r.findMany(ctx, bson.M{"area_id": bson.M{"$in": ids}, "active": true})
}

func (r *AssignmentRepository) findMany(ctx context.Context, query bson.M) ([]*coverage.ServiceAreaAssignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "priority", Value: 1}, {Key: "created_at", Value: 1}})
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, assignmentDoc.toDomain)
}

func (r *AssignmentRepository) CountByArea(ctx context.Context, areaID uuid.UUID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"area_id": areaID.String()})
}

func (r *AssignmentRepository) CountByBranch(ctx context.Context, branchID uuid.UUID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"branch_id": branchID.String()})
}

func (r *AssignmentRepository) Save(ctx context.Context, assignment *coverage.ServiceAreaAssignment) error {
	return replaceByID(ctx, r.coll, assignment.ID.String(), newAssignmentDoc(assignment))
}

func (r *AssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *AssignmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.coll.CountDocuments(ctx, assignmentQuery(filter))
}
