package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/timekeeping"
)

type leaveRequestDoc struct {
	aggregateDoc    `bson:",inline"`
	EmployeeID      string     `bson:"employee_id"`
	Type            string     `bson:"type"`
	StartDate       time.Time  `bson:"start_date"`
	EndDate         time.Time  `bson:"end_date"`
	Days            string     `bson:"days"`
	Reason          string     `bson:"reason,omitempty"`
	Status          string     `bson:"status"`
	ApproverID      *string    `bson:"approver_id,omitempty"`
	DecidedAt       *time.Time `bson:"decided_at,omitempty"`
	RejectionReason string     `bson:"rejection_reason,omitempty"`
}

func newLeaveRequestDoc(l *timekeeping.LeaveRequest) leaveRequestDoc {
	return leaveRequestDoc{
		aggregateDoc:    newAggregateDoc(l.ID, l.CreatedAt, l.UpdatedAt, l.Version),
		EmployeeID:      l.EmployeeID.String(),
		Type:            string(l.Type),
		StartDate:       l.StartDate,
		EndDate:         l.EndDate,
		Days:            decString(l.Days),
		Reason:          l.Reason,
		Status:          string(l.Status),
		ApproverID:      uuidPtr(l.ApproverID),
		DecidedAt:       l.DecidedAt,
		RejectionReason: l.RejectionReason,
	}
}

func (d leaveRequestDoc) toDomain() (*timekeeping.LeaveRequest, error) {
	root, err := d.root()
	if err != nil {
		return nil, err
	}
	return &timekeeping.LeaveRequest{
		BaseAggregateRoot: root,
		EmployeeID:        parseUUID(d.EmployeeID),
		Type:              timekeeping.LeaveType(d.Type),
		StartDate:         d.StartDate,
		EndDate:           d.EndDate,
		Days:              parseDecimal(d.Days),
		Reason:            d.Reason,
		Status:            timekeeping.LeaveStatus(d.Status),
		ApproverID:        parseUUIDPtr(d.ApproverID),
		DecidedAt:         d.DecidedAt,
		RejectionReason:   d.RejectionReason,
	}, nil
}

// LeaveRequestRepository persists leave requests
type LeaveRequestRepository struct {
	coll *mongo.Collection
}

// NewLeaveRequestRepository creates a leave request repository
func NewLeaveRequestRepository(db *mongo.Database) *LeaveRequestRepository {
	return &LeaveRequestRepository{coll: db.Collection(collLeaveRequests)}
}

var leaveSortFields = map[string]bool{
	"start_date": true, "end_date": true, "status": true, "type": true,
	"created_at": true, "updated_at": true,
}

func leaveRequestQuery(filter shared.Filter) bson.M {
	query := bson.M{}
	if v, ok := filter.Filters["employee_id"].(uuid.UUID); ok {
		query["employee_id"] = v.String()
	}
	if v, ok := filter.Filters["status"].(string); ok && v != "" {
		query["status"] = v
	}
	if v, ok := filter.Filters["type"].(string); ok && v != "" {
		query["type"] = v
	}
	return query
}

func (r *LeaveRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*timekeeping.LeaveRequest, error) {
	var doc leaveRequestDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		return nil, mapFindError(err)
	}
	return doc.toDomain()
}

func (r *LeaveRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*timekeeping.LeaveRequest, error) {
	cur, err := r.coll.Find(ctx, leaveRequestQuery(filter), findOptions(filter, leaveSortFields))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, leaveRequestDoc.toDomain)
}

func (r *LeaveRequestRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID, filter shared.Filter) ([]*timekeeping.LeaveRequest, error) {
	query := leaveRequestQuery(filter)
	query["employee_id"] = employeeID.String()
	cur, err := r.coll.Find(ctx, query, findOptions(filter, leaveSortFields))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, leaveRequestDoc.toDomain)
}

func (r *LeaveRequestRepository) Save(ctx context.Context, request *timekeeping.LeaveRequest) error {
	return replaceByID(ctx, r.coll, request.ID.String(), newLeaveRequestDoc(request))
}

func (r *LeaveRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *LeaveRequestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.coll.CountDocuments(ctx, leaveRequestQuery(filter))
}

type balanceAdjustmentDoc struct {
	Bucket  string    `bson:"bucket"`
	Delta   string    `bson:"delta"`
	Reason  string    `bson:"reason,omitempty"`
	ActorID string    `bson:"actor_id"`
	At      time.Time `bson:"at"`
}

type leaveBalanceDoc struct {
	aggregateDoc `bson:",inline"`
	EmployeeID   string                 `bson:"employee_id"`
	Year         int                    `bson:"year"`
	Type         string                 `bson:"type"`
	Allocated    string                 `bson:"allocated"`
	Used         string                 `bson:"used"`
	Pending      string                 `bson:"pending"`
	Adjustments  []balanceAdjustmentDoc `bson:"adjustments,omitempty"`
}

func newLeaveBalanceDoc(b *timekeeping.LeaveBalance) leaveBalanceDoc {
	adjustments := make([]balanceAdjustmentDoc, 0, len(b.Adjustments))
	for _, a := range b.Adjustments {
		adjustments = append(adjustments, balanceAdjustmentDoc{
			Bucket:  string(a.Bucket),
			Delta:   decString(a.Delta),
			Reason:  a.Reason,
			ActorID: a.ActorID.String(),
			At:      a.At,
		})
	}
	return leaveBalanceDoc{
		aggregateDoc: newAggregateDoc(b.ID, b.CreatedAt, b.UpdatedAt, b.Version),
		EmployeeID:   b.EmployeeID.String(),
		Year:         b.Year,
		Type:         string(b.Type),
		Allocated:    decString(b.Allocated),
		Used:         decString(b.Used),
		Pending:      decString(b.Pending),
		Adjustments:  adjustments,
	}
}

func (d leaveBalanceDoc) toDomain() (*timekeeping.LeaveBalance, error) {
	root, err := d.root()
	if err != nil {
		return nil, err
	}
	adjustments := make([]timekeeping.BalanceAdjustment, 0, len(d.Adjustments))
	for _, a := range d.Adjustments {
		adjustments = append(adjustments, timekeeping.BalanceAdjustment{
			Bucket:  timekeeping.BalanceBucket(a.Bucket),
			Delta:   parseDecimal(a.Delta),
			Reason:  a.Reason,
			ActorID: parseUUID(a.ActorID),
			At:      a.At,
		})
	}
	return &timekeeping.LeaveBalance{
		BaseAggregateRoot: root,
		EmployeeID:        parseUUID(d.EmployeeID),
		Year:              d.Year,
		Type:              timekeeping.LeaveType(d.Type),
		Allocated:         parseDecimal(d.Allocated),
		Used:              parseDecimal(d.Used),
		Pending:           parseDecimal(d.Pending),
		Adjustments:       adjustments,
	}, nil
}

// LeaveBalanceRepository persists yearly leave entitlements. The unique
// employee/year/type index keeps one balance per period.
type LeaveBalanceRepository struct {
	coll *mongo.Collection
}

// NewLeaveBalanceRepository creates a leave balance repository
func NewLeaveBalanceRepository(db *mongo.Database) *LeaveBalanceRepository {
	return &LeaveBalanceRepository{coll: db.Collection(collLeaveBalances)}
}

var balanceSortFields = map[string]bool{
	"year": true, "type": true, "created_at": true, "updated_at": true,
}

func leaveBalanceQuery(filter shared.Filter) bson.M {
	query := bson.M{}
	if v, ok := filter.Filters["employee_id"].(uuid.UUID); ok {
		query["employee_id"] = v.String()
	}
	if v, ok := filter.Filters["year"].(int); ok && v > 0 {
		query["year"] = v
	}
	if v, ok := filter.Filters["type"].(string); ok && v != "" {
		query["type"] = v
	}
	return query
}

func (r *LeaveBalanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*timekeeping.LeaveBalance, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *LeaveBalanceRepository) FindForPeriod(ctx context.Context, employeeID uuid.UUID, year int, leaveType timekeeping.LeaveType) (*timekeeping.LeaveBalance, error) {
	return r.findOne(ctx, bson.M{
		"employee_id": employeeID.String(),
		"year":        year,
		"type":        string(leaveType),
	})
}

func (r *LeaveBalanceRepository) findOne(ctx context.Context, query bson.M) (*timekeeping.LeaveBalance, error) {
	var doc leaveBalanceDoc
	if err := r.coll.FindOne(ctx, query).Decode(&doc); err != nil {
		return nil, mapFindError(err)
	}
	return doc.toDomain()
}

func (r *LeaveBalanceRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID, year int) ([]*timekeeping.LeaveBalance, error) {
	query := bson.M{"employee_id": employeeID.String(), "year": year}
	cur, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "type", Value: 1}}))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, leaveBalanceDoc.toDomain)
}

func (r *LeaveBalanceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*timekeeping.LeaveBalance, error) {
	cur, err := r.coll.Find(ctx, leaveBalanceQuery(filter), findOptions(filter, balanceSortFields))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, leaveBalanceDoc.toDomain)
}

func (r *LeaveBalanceRepository) Save(ctx context.Context, balance *timekeeping.LeaveBalance) error {
	return replaceByID(ctx, r.coll, balance.ID.String(), newLeaveBalanceDoc(balance))
}

func (r *LeaveBalanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *LeaveBalanceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.coll.CountDocuments(ctx, leaveBalanceQuery(filter))
}
