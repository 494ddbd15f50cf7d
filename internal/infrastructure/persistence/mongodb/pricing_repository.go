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

type pricingDoc struct {
	aggregateDoc `bson:",inline"`
	AreaID       string  `bson:"area_id"`
	ServiceType  string  `bson:"service_type"`
	BasePrice    string  `bson:"base_price"`
	PricePerKm   string  `bson:"price_per_km"`
	PricePerKg   string  `bson:"price_per_kg"`
	MinCharge    string  `bson:"min_charge"`
	MaxCharge    *string `bson:"max_charge,omitempty"`
	InsuranceFee string  `bson:"insurance_fee"`
	PackagingFee string  `bson:"packaging_fee"`
	Currency     string  `bson:"currency"`
	Active       bool    `bson:"active"`
}

func newPricingDoc(p *coverage.ServiceAreaPricing) pricingDoc {
	return pricingDoc{
		aggregateDoc: newAggregateDoc(p.ID, p.CreatedAt, p.UpdatedAt, p.Version),
		AreaID:       p.AreaID.String(),
		ServiceType:  string(p.ServiceType),
		BasePrice:    decString(p.BasePrice),
		PricePerKm:   decString(p.PricePerKm),
		PricePerKg:   decString(p.PricePerKg),
		MinCharge:    decString(p.MinCharge),
		MaxCharge:    decStringPtr(p.MaxCharge),
		InsuranceFee: decString(p.InsuranceFee),
		PackagingFee: decString(p.PackagingFee),
		Currency:     string(p.Currency),
		Active:       p.Active,
	}
}

func (d pricingDoc) toDomain() (*coverage.ServiceAreaPricing, error) {
	root, err := d.root()
	if err != nil {
		return nil, err
	}
	return &coverage.ServiceAreaPricing{
		BaseAggregateRoot: root,
		AreaID:            parseUUID(d.AreaID),
		ServiceType:       coverage.ServiceType(d.ServiceType),
		BasePrice:         parseDecimal(d.BasePrice),
		PricePerKm:        parseDecimal(d.PricePerKm),
		PricePerKg:        parseDecimal(d.PricePerKg),
		MinCharge:         parseDecimal(d.MinCharge),
		MaxCharge:         parseDecimalPtr(d.MaxCharge),
		InsuranceFee:      parseDecimal(d.InsuranceFee),
		PackagingFee:      parseDecimal(d.PackagingFee),
		Currency:          valueobject.Currency(d.Currency),
		Active:            d.Active,
	}, nil
}

// PricingRepository persists per-area tariffs
type PricingRepository struct {
	coll *mongo.Collection
}

// NewPricingRepository creates a pricing repository
func NewPricingRepository(db *mongo.Database) *PricingRepository {
	return &PricingRepository{coll: db.Collection(collPricing)}
}

var pricingSortFields = map[string]bool{
	"service_type": true, "created_at": true, "updated_at": true,
}

func pricingQuery(filter shared.Filter) bson.M {
	query := bson.M{}
	if v, ok := filter.Filters["service_type"].(string); ok && v != "" {
		query["service_type"] = v
	}
	if v, ok := filter.Filters["active"].(bool); ok {
		query["active"] = v
	}
	return query
}

func (r *PricingRepository) FindByID(ctx context.Context, id uuid.UUID) (*coverage.ServiceAreaPricing, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *PricingRepository) FindByAreaAndType(ctx context.Context, areaID uuid.UUID, serviceType coverage.ServiceType) (*coverage.ServiceAreaPricing, error) {
	return r.findOne(ctx, bson.M{"area_id": areaID.String(), "service_type": string(serviceType)})
}

func (r *PricingRepository) FindActiveByAreaAndType(ctx context.Context, areaID uuid.UUID, serviceType coverage.ServiceType) (*coverage.ServiceAreaPricing, error) {
	return r.findOne(ctx, bson.M{
		"area_id":      areaID.String(),
		"service_type": string(serviceType),
		"active":       true,
	})
}

func (r *PricingRepository) findOne(ctx context.Context, query bson.M) (*coverage.ServiceAreaPricing, error) {
	var doc pricingDoc
	if err := r.coll.FindOne(ctx, query).Decode(&doc); err != nil {
		return nil, mapFindError(err)
	}
	return doc.toDomain()
}

func (r *PricingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*coverage.ServiceAreaPricing, error) {
	cur, err := r.coll.Find(ctx, pricingQuery(filter), findOptions(filter, pricingSortFields))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, pricingDoc.toDomain)
}

func (r *PricingRepository) FindByArea(ctx context.Context, areaID uuid.UUID) ([]*coverage.ServiceAreaPricing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "service_type", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"area_id": areaID.String()}, opts)
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, pricingDoc.toDomain)
}

func (r *PricingRepository) CountByArea(ctx context.Context, areaID uuid.UUID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"area_id": areaID.String()})
}

func (r *PricingRepository) Save(ctx context.Context, pricing *coverage.ServiceAreaPricing) error {
	return replaceByID(ctx, r.coll, pricing.ID.String(), newPricingDoc(pricing))
}

func (r *PricingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *PricingRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.coll.CountDocuments(ctx, pricingQuery(filter))
}
