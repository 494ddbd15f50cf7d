package mongodb

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/logistics-erp/hrm/internal/domain/coverage"
	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
)

type polygonDoc struct {
	Type        string        `bson:"type"`
	Coordinates [][][]float64 `bson:"coordinates"`
}

type serviceAreaDoc struct {
	aggregateDoc `bson:",inline"`
	Code         string     `bson:"code"`
	Name         string     `bson:"name"`
	Polygon      polygonDoc `bson:"polygon"`
	ServiceTypes []string   `bson:"service_types"`
	Status       string     `bson:"status"`
}

func newServiceAreaDoc(a *coverage.ServiceArea) serviceAreaDoc {
	types := make([]string, 0, len(a.ServiceTypes))
	for _, t := range a.ServiceTypes {
		types = append(types, string(t))
	}
	return serviceAreaDoc{
		aggregateDoc: newAggregateDoc(a.ID, a.CreatedAt, a.UpdatedAt, a.Version),
		Code:         a.Code,
		Name:         a.Name,
		Polygon:      polygonDoc(a.Polygon),
		ServiceTypes: types,
		Status:       string(a.Status),
	}
}

func (d serviceAreaDoc) toDomain() (*coverage.ServiceArea, error) {
	root, err := d.root()
	if err != nil {
		return nil, err
	}
	types := make([]coverage.ServiceType, 0, len(d.ServiceTypes))
	for _, t := range d.ServiceTypes {
		types = append(types, coverage.ServiceType(t))
	}
	return &coverage.ServiceArea{
		BaseAggregateRoot: root,
		Code:              d.Code,
		Name:              d.Name,
		Polygon:           coverage.Polygon(d.Polygon),
		ServiceTypes:      types,
		Status:            coverage.AreaStatus(d.Status),
	}, nil
}

// ServiceAreaRepository persists delivery zones. Polygons are stored as
// GeoJSON under a 2dsphere index so point lookups run in the database.
type ServiceAreaRepository struct {
	coll *mongo.Collection
}

// NewServiceAreaRepository creates a service area repository
func NewServiceAreaRepository(db *mongo.Database) *ServiceAreaRepository {
	return &ServiceAreaRepository{coll: db.Collection(collServiceAreas)}
}

var areaSortFields = map[string]bool{
	"code": true, "name": true, "status": true,
	"created_at": true, "updated_at": true,
}

func serviceAreaQuery(filter shared.Filter) bson.M {
	query := bson.M{}
	if v, ok := filter.Filters["status"].(string); ok && v != "" {
		query["status"] = v
	}
	if v, ok := filter.Filters["service_type"].(string); ok && v != "" {
		query["service_types"] = v
	}
	if filter.Search != "" {
		query["$and"] = []bson.M{searchClause(filter.Search, "code", "name")}
	}
	return query
}

func (r *ServiceAreaRepository) FindByID(ctx context.Context, id uuid.UUID) (*coverage.ServiceArea, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *ServiceAreaRepository) FindByCode(ctx context.Context, code string) (*coverage.ServiceArea, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *ServiceAreaRepository) findOne(ctx context.Context, query bson.M) (*coverage.ServiceArea, error) {
	var doc serviceAreaDoc
	if err := r.coll.FindOne(ctx, query).Decode(&doc); err != nil {
		return nil, mapFindError(err)
	}
	return doc.toDomain()
}

func (r *ServiceAreaRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*coverage.ServiceArea, error) {
	cur, err := r.coll.Find(ctx, serviceAreaQuery(filter), findOptions(filter, areaSortFields))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, serviceAreaDoc.toDomain)
}

// FindContaining returns active areas whose polygon covers the point
func (r *ServiceAreaRepository) FindContaining(ctx context.Context, point valueobject.GeoPoint) ([]*coverage.ServiceArea, error) {
	query := bson.M{
		"status": string(coverage.AreaStatusActive),
		"polygon": bson.M{
			"$geoIntersects": bson.M{
				"$geometry": newGeoPointDoc(point),
			},
		},
	}
	return r.findMany(ctx, query, options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
}

// FindNear returns active areas within maxDistanceM meters of the point,
// closest first
func (r *ServiceAreaRepository) FindNear(ctx context.Context, point valueobject.GeoPoint, maxDistanceM float64, limit int) ([]*coverage.ServiceArea, error) {
	if limit <= 0 {
		limit = 10
	}
	query := bson.M{
		"status": string(coverage.AreaStatusActive),
		"polygon": bson.M{
			"$nearSphere": bson.M{
				"$geometry":    newGeoPointDoc(point),
				"$maxDistance": maxDistanceM,
			},
		},
	}
	return r.findMany(ctx, query, options.Find().SetLimit(int64(limit)))
}

func (r *ServiceAreaRepository) findMany(ctx context.Context, query bson.M, opts ...*options.FindOptions) ([]*coverage.ServiceArea, error) {
	cur, err := r.coll.Find(ctx, query, opts...)
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, serviceAreaDoc.toDomain)
}

func (r *ServiceAreaRepository) Save(ctx context.Context, area *coverage.ServiceArea) error {
	return replaceByID(ctx, r.coll, area.ID.String(), newServiceAreaDoc(area))
}

func (r *ServiceAreaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *ServiceAreaRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.coll.CountDocuments(ctx, serviceAreaQuery(filter))
}

func (r *ServiceAreaRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"code": code}, options.Count().SetLimit(1))
	return count > 0, err
}
