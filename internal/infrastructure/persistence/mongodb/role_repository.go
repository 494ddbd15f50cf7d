package mongodb

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/logistics-erp/hrm/internal/domain/identity"
	"github.com/logistics-erp/hrm/internal/domain/shared"
)

type permissionDoc struct {
	Code     string `bson:"code"`
	Resource string `bson:"resource"`
	Action   string `bson:"action"`
}

type roleDoc struct {
	aggregateDoc `bson:",inline"`
	Code         string          `bson:"code"`
	Name         string          `bson:"name"`
	Description  string          `bson:"description,omitempty"`
	IsSystemRole bool            `bson:"is_system_role"`
	IsEnabled    bool            `bson:"is_enabled"`
	Permissions  []permissionDoc `bson:"permissions,omitempty"`
}

func newRoleDoc(role *identity.Role) roleDoc {
	permissions := make([]permissionDoc, 0, len(role.Permissions))
	for _, p := range role.Permissions {
		permissions = append(permissions, permissionDoc(p))
	}
	return roleDoc{
		aggregateDoc: newAggregateDoc(role.ID, role.CreatedAt, role.UpdatedAt, role.Version),
		Code:         role.Code,
		Name:         role.Name,
		Description:  role.Description,
		IsSystemRole: role.IsSystemRole,
		IsEnabled:    role.IsEnabled,
		Permissions:  permissions,
	}
}

func (d roleDoc) toDomain() (*identity.Role, error) {
	root, err := d.root()
	if err != nil {
		return nil, err
	}
	permissions := make([]identity.Permission, 0, len(d.Permissions))
	for _, p := range d.Permissions {
		permissions = append(permissions, identity.Permission(p))
	}
	return &identity.Role{
		BaseAggregateRoot: root,
		Code:              d.Code,
		Name:              d.Name,
		Description:       d.Description,
		IsSystemRole:      d.IsSystemRole,
		IsEnabled:         d.IsEnabled,
		Permissions:       permissions,
	}, nil
}

// RoleRepository persists roles and their permission sets
type RoleRepository struct {
	coll *mongo.Collection
}

// NewRoleRepository creates a role repository
func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(collRoles)}
}

var roleSortFields = map[string]bool{
	"code": true, "name": true, "created_at": true, "updated_at": true,
}

func roleQuery(filter shared.Filter) bson.M {
	query := bson.M{}
	if filter.Search != "" {
		query["$and"] = []bson.M{searchClause(filter.Search, "code", "name")}
	}
	return query
}

func (r *RoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *RoleRepository) FindByCode(ctx context.Context, code string) (*identity.Role, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *RoleRepository) findOne(ctx context.Context, query bson.M) (*identity.Role, error) {
	var doc roleDoc
	if err := r.coll.FindOne(ctx, query).Decode(&doc); err != nil {
		return nil, mapFindError(err)
	}
	return doc.toDomain()
}

func (r *RoleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*identity.Role, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	strIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		strIDs = append(strIDs, id.String())
	}
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": strIDs}})
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, roleDoc.toDomain)
}

func (r *RoleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*identity.Role, error) {
	cur, err := r.coll.Find(ctx, roleQuery(filter), findOptions(filter, roleSortFields))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, roleDoc.toDomain)
}

func (r *RoleRepository) Save(ctx context.Context, role *identity.Role) error {
	return replaceByID(ctx, r.coll, role.ID.String(), newRoleDoc(role))
}

func (r *RoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *RoleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.coll.CountDocuments(ctx, roleQuery(filter))
}

func (r *RoleRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"code": code}, options.Count().SetLimit(1))
	return count > 0, err
}
