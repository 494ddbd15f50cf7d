package mongodb

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/logistics-erp/hrm/internal/domain/document"
	"github.com/logistics-erp/hrm/internal/domain/shared"
)

type marginsDoc struct {
	Top    float64 `bson:"top"`
	Right  float64 `bson:"right"`
	Bottom float64 `bson:"bottom"`
	Left   float64 `bson:"left"`
}

type templateDoc struct {
	aggregateDoc `bson:",inline"`
	DocumentType string     `bson:"document_type"`
	Name         string     `bson:"name"`
	Description  string     `bson:"description,omitempty"`
	Content      string     `bson:"content"`
	PaperSize    string     `bson:"paper_size"`
	Orientation  string     `bson:"orientation"`
	Margins      marginsDoc `bson:"margins"`
	IsDefault    bool       `bson:"is_default"`
	Active       bool       `bson:"active"`
}

func newTemplateDoc(t *document.Template) templateDoc {
	return templateDoc{
		aggregateDoc: newAggregateDoc(t.ID, t.CreatedAt, t.UpdatedAt, t.Version),
		DocumentType: string(t.DocumentType),
		Name:         t.Name,
		Description:  t.Description,
		Content:      t.Content,
		PaperSize:    string(t.PaperSize),
		Orientation:  string(t.Orientation),
		Margins:      marginsDoc(t.Margins),
		IsDefault:    t.IsDefault,
		Active:       t.Active,
	}
}

func (d templateDoc) toDomain() (*document.Template, error) {
	root, err := d.root()
	if err != nil {
		return nil, err
	}
	return &document.Template{
		BaseAggregateRoot: root,
		DocumentType:      document.DocumentType(d.DocumentType),
		Name:              d.Name,
		Description:       d.Description,
		Content:           d.Content,
		PaperSize:         document.PaperSize(d.PaperSize),
		Orientation:       document.Orientation(d.Orientation),
		Margins:           document.Margins(d.Margins),
		IsDefault:         d.IsDefault,
		Active:            d.Active,
	}, nil
}

// TemplateRepository persists document templates
type TemplateRepository struct {
	coll *mongo.Collection
}

// NewTemplateRepository creates a template repository
func NewTemplateRepository(db *mongo.Database) *TemplateRepository {
	return &TemplateRepository{coll: db.Collection(collTemplates)}
}

var templateSortFields = map[string]bool{
	"name": true, "document_type": true, "created_at": true, "updated_at": true,
}

func templateQuery(filter shared.Filter) bson.M {
	query := bson.M{}
	if v, ok := filter.Filters["document_type"].(string); ok && v != "" {
		query["document_type"] = v
	}
	if filter.Search != "" {
		query["$and"] = []bson.M{searchClause(filter.Search, "name", "description")}
	}
	return query
}

func (r *TemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Template, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *TemplateRepository) FindDefault(ctx context.Context, docType document.DocumentType) (*document.Template, error) {
	return r.findOne(ctx, bson.M{"document_type": string(docType), "is_default": true})
}

func (r *TemplateRepository) findOne(ctx context.Context, query bson.M) (*document.Template, error) {
	var doc templateDoc
	if err := r.coll.FindOne(ctx, query).Decode(&doc); err != nil {
		return nil, mapFindError(err)
	}
	return doc.toDomain()
}

func (r *TemplateRepository) FindByType(ctx context.Context, docType document.DocumentType) ([]*document.Template, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"document_type": string(docType)}, opts)
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, templateDoc.toDomain)
}

func (r *TemplateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*document.Template, error) {
	cur, err := r.coll.Find(ctx, templateQuery(filter), findOptions(filter, templateSortFields))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, templateDoc.toDomain)
}

func (r *TemplateRepository) Save(ctx context.Context, template *document.Template) error {
	return replaceByID(ctx, r.coll, template.ID.String(), newTemplateDoc(template))
}

func (r *TemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *TemplateRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.coll.CountDocuments(ctx, templateQuery(filter))
}
