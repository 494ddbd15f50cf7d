package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/logistics-erp/hrm/internal/domain/org"
	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
)

type branchAddressDoc struct {
	Street     string       `bson:"street"`
	City       string       `bson:"city"`
	State      string       `bson:"state"`
	PostalCode string       `bson:"postal_code"`
	Country    string       `bson:"country"`
	Location   *geoPointDoc `bson:"location,omitempty"`
}

type dayHoursDoc struct {
	Weekday int    `bson:"weekday"`
	Open    string `bson:"open"`
	Close   string `bson:"close"`
	Closed  bool   `bson:"closed"`
}

type branchResourcesDoc struct {
	Vehicles          int     `bson:"vehicles"`
	StaffCapacity     int     `bson:"staff_capacity"`
	StorageCapacityM3 float64 `bson:"storage_capacity_m3"`
}

type branchMetricsDoc struct {
	MonthlyShipments int64   `bson:"monthly_shipments"`
	OnTimeRate       float64 `bson:"on_time_rate"`
	UtilizationPct   float64 `bson:"utilization_pct"`
}

type branchDoc struct {
	aggregateDoc     `bson:",inline"`
	Code             string           `bson:"code"`
	Name             string           `bson:"name"`
	Type             string           `bson:"type"`
	ParentID         *string          `bson:"parent_id,omitempty"`
	Path             string           `bson:"path"`
	Level            int              `bson:"level"`
	Address          branchAddressDoc `bson:"address"`
	OperationalHours []dayHoursDoc    `bson:"operational_hours,omitempty"`
	Resources        branchResourcesDoc `bson:"resources"`
	Metrics          branchMetricsDoc `bson:"metrics"`
	ManagerID        *string          `bson:"manager_id,omitempty"`
	Status           string           `bson:"status"`
}

func newBranchDoc(b *org.Branch) branchDoc {
	address := branchAddressDoc{
		Street:     b.Address.Street,
		City:       b.Address.City,
		State:      b.Address.State,
		PostalCode: b.Address.PostalCode,
		Country:    b.Address.Country,
	}
	if !b.Address.Location.IsZero() {
		loc := newGeoPointDoc(b.Address.Location)
		address.Location = &loc
	}

	hours := make([]dayHoursDoc, 0, len(b.OperationalHours))
	for _, h := range b.OperationalHours {
		hours = append(hours, dayHoursDoc{Weekday: int(h.Weekday), Open: h.Open, Close: h.Close, Closed: h.Closed})
	}

	return branchDoc{
		aggregateDoc:     newAggregateDoc(b.ID, b.CreatedAt, b.UpdatedAt, b.Version),
		Code:             b.Code,
		Name:             b.Name,
		Type:             string(b.Type),
		ParentID:         uuidPtr(b.ParentID),
		Path:             b.Path,
		Level:            b.Level,
		Address:          address,
		OperationalHours: hours,
		Resources:        branchResourcesDoc(b.Resources),
		Metrics:          branchMetricsDoc(b.Metrics),
		ManagerID:        uuidPtr(b.ManagerID),
		Status:           string(b.Status),
	}
}

func (d branchDoc) toDomain() (org.Branch, error) {
	root, err := d.root()
	if err != nil {
		return org.Branch{}, err
	}

	address := org.Address{
		Street:     d.Address.Street,
		City:       d.Address.City,
		State:      d.Address.State,
		PostalCode: d.Address.PostalCode,
		Country:    d.Address.Country,
	}
	if d.Address.Location != nil {
		address.Location = d.Address.Location.toPoint()
	}

	hours := make([]org.DayHours, 0, len(d.OperationalHours))
	for _, h := range d.OperationalHours {
		hours = append(hours, org.DayHours{Weekday: time.Weekday(h.Weekday), Open: h.Open, Close: h.Close, Closed: h.Closed})
	}

	return org.Branch{
		BaseAggregateRoot: root,
		Code:              d.Code,
		Name:              d.Name,
		Type:              org.BranchType(d.Type),
		ParentID:          parseUUIDPtr(d.ParentID),
		Path:              d.Path,
		Level:             d.Level,
		Address:           address,
		OperationalHours:  hours,
		Resources:         org.BranchResources(d.Resources),
		Metrics:           org.BranchMetrics(d.Metrics),
		ManagerID:         parseUUIDPtr(d.ManagerID),
		Status:            org.BranchStatus(d.Status),
	}, nil
}

// BranchRepository persists branches in the branches collection
type BranchRepository struct {
	coll *mongo.Collection
}

// NewBranchRepository creates a branch repository
func NewBranchRepository(db *mongo.Database) *BranchRepository {
	return &BranchRepository{coll: db.Collection(collBranches)}
}

var branchSortFields = map[string]bool{
	"code": true, "name": true, "type": true, "level": true,
	"status": true, "created_at": true, "updated_at": true,
}

func branchQuery(filter shared.Filter) bson.M {
	query := bson.M{}
	if v, ok := filter.Filters["status"].(string); ok && v != "" {
		query["status"] = v
	}
	if v, ok := filter.Filters["type"].(string); ok && v != "" {
		query["type"] = v
	}
	if v, ok := filter.Filters["parent_id"].(uuid.UUID); ok {
		query["parent_id"] = v.String()
	}
	if filter.Search != "" {
		query["$and"] = []bson.M{searchClause(filter.Search, "code", "name", "address.city")}
	}
	return query
}

func (r *BranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*org.Branch, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *BranchRepository) FindByCode(ctx context.Context, code string) (*org.Branch, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *BranchRepository) findOne(ctx context.Context, query bson.M) (*org.Branch, error) {
	var doc branchDoc
	if err := r.coll.FindOne(ctx, query).Decode(&doc); err != nil {
		return nil, mapFindError(err)
	}
	branch, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *BranchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]org.Branch, error) {
	cur, err := r.coll.Find(ctx, branchQuery(filter), findOptions(filter, branchSortFields))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, branchDoc.toDomain)
}

func (r *BranchRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]org.Branch, error) {
	return r.findMany(ctx, bson.M{"parent_id": parentID.String()}, options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
}

func (r *BranchRepository) FindRoots(ctx context.Context) ([]org.Branch, error) {
	return r.findMany(ctx, bson.M{"parent_id": nil}, options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
}

func (r *BranchRepository) FindDescendants(ctx context.Context, branchID uuid.UUID) ([]org.Branch, error) {
	branch, err := r.FindByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	return r.findMany(ctx, pathPrefixClause(branch.Path), options.Find().SetSort(bson.D{{Key: "path", Value: 1}}))
}

func (r *BranchRepository) FindNearest(ctx context.Context, point valueobject.GeoPoint, limit int) ([]org.Branch, error) {
	if limit <= 0 {
		limit = 5
	}
	query := bson.M{
		"status": string(org.BranchStatusActive),
		"address.location": bson.M{
			"$nearSphere": bson.M{
				"$geometry": newGeoPointDoc(point),
			},
		},
	}
	// $nearSphere already orders results by distance
	return r.findMany(ctx, query, options.Find().SetLimit(int64(limit)))
}

func (r *BranchRepository) findMany(ctx context.Context, query bson.M, opts ...*options.FindOptions) ([]org.Branch, error) {
	cur, err := r.coll.Find(ctx, query, opts...)
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, branchDoc.toDomain)
}

func (r *BranchRepository) Save(ctx context.Context, branch *org.Branch) error {
	return replaceByID(ctx, r.coll, branch.ID.String(), newBranchDoc(branch))
}

func (r *BranchRepository) UpdateSubtreePaths(ctx context.Context, oldPath, newPath string, levelDelta int) error {
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

func (r *BranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *BranchRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.coll.CountDocuments(ctx, branchQuery(filter))
}

func (r *BranchRepository) CountChildren(ctx context.Context, parentID uuid.UUID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"parent_id": parentID.String()})
}

func (r *BranchRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"code": code}, options.Count().SetLimit(1))
	return count > 0, err
}
