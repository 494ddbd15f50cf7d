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

type attendanceFlagsDoc struct {
	Late            bool `bson:"late"`
	EarlyDeparture  bool `bson:"early_departure"`
	OutsideGeofence bool `bson:"outside_geofence"`
	MissingCheckOut bool `bson:"missing_check_out"`
}

type attendanceDoc struct {
	aggregateDoc     `bson:",inline"`
	EmployeeID       string             `bson:"employee_id"`
	Date             string             `bson:"date"`
	CheckInAt        time.Time          `bson:"check_in_at"`
	CheckInLocation  *geoPointDoc       `bson:"check_in_location,omitempty"`
	CheckOutAt       *time.Time         `bson:"check_out_at,omitempty"`
	CheckOutLocation *geoPointDoc       `bson:"check_out_location,omitempty"`
	WorkHours        string             `bson:"work_hours"`
	Flags            attendanceFlagsDoc `bson:"flags"`
	LateMinutes      int                `bson:"late_minutes"`
	EarlyMinutes     int                `bson:"early_minutes"`
	OvertimeMinutes  int                `bson:"overtime_minutes"`
	Status           string             `bson:"status"`
	Note             string             `bson:"note,omitempty"`
}

func newAttendanceDoc(a *timekeeping.Attendance) attendanceDoc {
	doc := attendanceDoc{
		aggregateDoc:     newAggregateDoc(a.ID, a.CreatedAt, a.UpdatedAt, a.Version),
		EmployeeID:       a.EmployeeID.String(),
		Date:             a.Date,
		CheckInAt:        a.CheckInAt,
		CheckOutAt:       a.CheckOutAt,
		CheckOutLocation: newGeoPointDocPtr(a.CheckOutLocation),
		WorkHours:        decString(a.WorkHours),
		Flags:            attendanceFlagsDoc(a.Flags),
		LateMinutes:      a.LateMinutes,
		EarlyMinutes:     a.EarlyMinutes,
		OvertimeMinutes:  a.OvertimeMinutes,
		Status:           string(a.Status),
		Note:             a.Note,
	}
	if !a.CheckInLocation.IsZero() {
		loc := newGeoPointDoc(a.CheckInLocation)
		doc.CheckInLocation = &loc
	}
	return doc
}

func (d attendanceDoc) toDomain() (*timekeeping.Attendance, error) {
	root, err := d.root()
	if err != nil {
		return nil, err
	}
	attendance := &timekeeping.Attendance{
		BaseAggregateRoot: root,
		EmployeeID:        parseUUID(d.EmployeeID),
		Date:              d.Date,
		CheckInAt:         d.CheckInAt,
		CheckOutAt:        d.CheckOutAt,
		CheckOutLocation:  geoPointPtr(d.CheckOutLocation),
		WorkHours:         parseDecimal(d.WorkHours),
		Flags:             timekeeping.AttendanceFlags(d.Flags),
		LateMinutes:       d.LateMinutes,
		EarlyMinutes:      d.EarlyMinutes,
		OvertimeMinutes:   d.OvertimeMinutes,
		Status:            timekeeping.AttendanceStatus(d.Status),
		Note:              d.Note,
	}
	if d.CheckInLocation != nil {
		attendance.CheckInLocation = d.CheckInLocation.toPoint()
	}
	return attendance, nil
}

// AttendanceRepository persists daily attendance records. The unique
// employee/date index backs the one-record-per-day invariant.
type AttendanceRepository struct {
	coll *mongo.Collection
}

// NewAttendanceRepository creates an attendance repository
func NewAttendanceRepository(db *mongo.Database) *AttendanceRepository {
	return &AttendanceRepository{coll: db.Collection(collAttendance)}
}

var attendanceSortFields = map[string]bool{
	"date": true, "check_in_at": true, "status": true,
	"created_at": true, "updated_at": true,
}

func attendanceQuery(filter shared.Filter) bson.M {
	query := bson.M{}
	if v, ok := filter.Filters["employee_id"].(uuid.UUID); ok {
		query["employee_id"] = v.String()
	}
	if v, ok := filter.Filters["date"].(string); ok && v != "" {
		query["date"] = v
	}
	dateRange := bson.M{}
	if v, ok := filter.Filters["date_from"].(string); ok && v != "" {
		dateRange["$gte"] = v
	}
	if v, ok := filter.Filters["date_to"].(string); ok && v != "" {
		dateRange["$lte"] = v
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}
	if v, ok := filter.Filters["status"].(string); ok && v != "" {
		query["status"] = v
	}
	return query
}

func (r *AttendanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*timekeeping.Attendance, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *AttendanceRepository) FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date string) (*timekeeping.Attendance, error) {
	return r.findOne(ctx, bson.M{"employee_id": employeeID.String(), "date": date})
}

func (r *AttendanceRepository) findOne(ctx context.Context, query bson.M) (*timekeeping.Attendance, error) {
	var doc attendanceDoc
	if err := r.coll.FindOne(ctx, query).Decode(&doc); err != nil {
		return nil, mapFindError(err)
	}
	return doc.toDomain()
}

func (r *AttendanceRepository) FindByEmployeeBetween(ctx context.Context, employeeID uuid.UUID, from, to string) ([]*timekeeping.Attendance, error) {
	query := bson.M{
		"employee_id": employeeID.String(),
		"date":        bson.M{"$gte": from, "$lte": to},
	}
	return r.findMany(ctx, query, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
}

func (r *AttendanceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*timekeeping.Attendance, error) {
	cur, err := r.coll.Find(ctx, attendanceQuery(filter), findOptions(filter, attendanceSortFields))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, attendanceDoc.toDomain)
}

func (r *AttendanceRepository) FindOpenByDate(ctx context.Context, date string) ([]*timekeeping.Attendance, error) {
	query := bson.M{"date": date, "status": string(timekeeping.AttendanceStatusOpen)}
	return r.findMany(ctx, query, options.Find().SetSort(bson.D{{Key: "check_in_at", Value: 1}}))
}

func (r *AttendanceRepository) EmployeeIDsWithRecord(ctx context.Context, date string) ([]uuid.UUID, error) {
	values, err := r.coll.Distinct(ctx, "employee_id", bson.M{"date": date})
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			if id := parseUUID(s); id != uuid.Nil {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

func (r *AttendanceRepository) findMany(ctx context.Context, query bson.M, opts ...*options.FindOptions) ([]*timekeeping.Attendance, error) {
	cur, err := r.coll.Find(ctx, query, opts...)
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, attendanceDoc.toDomain)
}

func (r *AttendanceRepository) Save(ctx context.Context, attendance *timekeeping.Attendance) error {
	return replaceByID(ctx, r.coll, attendance.ID.String(), newAttendanceDoc(attendance))
}

func (r *AttendanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *AttendanceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.coll.CountDocuments(ctx, attendanceQuery(filter))
}
