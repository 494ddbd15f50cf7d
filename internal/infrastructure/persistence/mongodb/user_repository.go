package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/logistics-erp/hrm/internal/domain/identity"
	"github.com/logistics-erp/hrm/internal/domain/shared"
)

type userDoc struct {
	aggregateDoc       `bson:",inline"`
	Username           string     `bson:"username"`
	Email              string     `bson:"email,omitempty"`
	DisplayName        string     `bson:"display_name,omitempty"`
	PasswordHash       string     `bson:"password_hash"`
	Status             string     `bson:"status"`
	EmployeeID         *string    `bson:"employee_id,omitempty"`
	RoleIDs            []string   `bson:"role_ids,omitempty"`
	LastLoginAt        *time.Time `bson:"last_login_at,omitempty"`
	LastLoginIP        string     `bson:"last_login_ip,omitempty"`
	FailedAttempts     int        `bson:"failed_attempts"`
	LockedUntil        *time.Time `bson:"locked_until,omitempty"`
	PasswordChangedAt  *time.Time `bson:"password_changed_at,omitempty"`
	MustChangePassword bool       `bson:"must_change_password"`
}

func newUserDoc(u *identity.User) userDoc {
	roleIDs := make([]string, 0, len(u.RoleIDs))
	for _, id := range u.RoleIDs {
		roleIDs = append(roleIDs, id.String())
	}
	return userDoc{
		aggregateDoc:       newAggregateDoc(u.ID, u.CreatedAt, u.UpdatedAt, u.Version),
		Username:           u.Username,
		Email:              u.Email,
		DisplayName:        u.DisplayName,
		PasswordHash:       u.PasswordHash,
		Status:             string(u.Status),
		EmployeeID:         uuidPtr(u.EmployeeID),
		RoleIDs:            roleIDs,
		LastLoginAt:        u.LastLoginAt,
		LastLoginIP:        u.LastLoginIP,
		FailedAttempts:     u.FailedAttempts,
		LockedUntil:        u.LockedUntil,
		PasswordChangedAt:  u.PasswordChangedAt,
		MustChangePassword: u.MustChangePassword,
	}
}

func (d userDoc) toDomain() (*identity.User, error) {
	root, err := d.root()
	if err != nil {
		return nil, err
	}
	roleIDs := make([]uuid.UUID, 0, len(d.RoleIDs))
	for _, id := range d.RoleIDs {
		if parsed := parseUUID(id); parsed != uuid.Nil {
			roleIDs = append(roleIDs, parsed)
		}
	}
	return &identity.User{
		BaseAggregateRoot:  root,
		Username:           d.Username,
		Email:              d.Email,
		DisplayName:        d.DisplayName,
		PasswordHash:       d.PasswordHash,
		Status:             identity.UserStatus(d.Status),
		EmployeeID:         parseUUIDPtr(d.EmployeeID),
		RoleIDs:            roleIDs,
		LastLoginAt:        d.LastLoginAt,
		LastLoginIP:        d.LastLoginIP,
		FailedAttempts:     d.FailedAttempts,
		LockedUntil:        d.LockedUntil,
		PasswordChangedAt:  d.PasswordChangedAt,
		MustChangePassword: d.MustChangePassword,
	}, nil
}

// UserRepository persists user accounts
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a user repository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(collUsers)}
}

var userSortFields = map[string]bool{
	"username": true, "status": true, "last_login_at": true,
	"created_at": true, "updated_at": true,
}

func userQuery(filter shared.Filter) bson.M {
	query := bson.M{}
	if v, ok := filter.Filters["status"].(string); ok && v != "" {
		query["status"] = v
	}
	if v, ok := filter.Filters["role_id"].(uuid.UUID); ok {
		query["role_ids"] = v.String()
	}
	if filter.Search != "" {
		query["$and"] = []bson.M{searchClause(filter.Search, "username", "email", "display_name")}
	}
	return query
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) (*identity.User, error) {
	return r.findOne(ctx, bson.M{"employee_id": employeeID.String()})
}

func (r *UserRepository) findOne(ctx context.Context, query bson.M) (*identity.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, query).Decode(&doc); err != nil {
		return nil, mapFindError(err)
	}
	return doc.toDomain()
}

func (r *UserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*identity.User, error) {
	cur, err := r.coll.Find(ctx, userQuery(filter), findOptions(filter, userSortFields))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, userDoc.toDomain)
}

func (r *UserRepository) Save(ctx context.Context, user *identity.User) error {
	return replaceByID(ctx, r.coll, user.ID.String(), newUserDoc(user))
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *UserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.coll.CountDocuments(ctx, userQuery(filter))
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"username": username}, options.Count().SetLimit(1))
	return count > 0, err
}

func (r *UserRepository) CountByRole(ctx context.Context, roleID uuid.UUID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"role_ids": roleID.String()})
}
