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

type shiftDoc struct {
	Weekday int    `bson:"weekday"`
	Start   string `bson:"start,omitempty"`
	End     string `bson:"end,omitempty"`
	Working bool   `bson:"working"`
}

type scheduleDoc struct {
	aggregateDoc          `bson:",inline"`
	EmployeeID            string       `bson:"employee_id"`
	EffectiveFrom         time.Time    `bson:"effective_from"`
	Shifts                []shiftDoc   `bson:"shifts"`
	TimezoneOffsetMinutes int          `bson:"timezone_offset_minutes"`
	GeofenceCenter        *geoPointDoc `bson:"geofence_center,omitempty"`
	GeofenceRadiusM       float64      `bson:"geofence_radius_m,omitempty"`
	Active                bool         `bson:"active"`
}

func newScheduleDoc(s *timekeeping.WorkSchedule) scheduleDoc {
	shifts := make([]shiftDoc, 0, len(s.Shifts))
	for _, sh := range s.Shifts {
		shifts = append(shifts, shiftDoc{Weekday: int(sh.Weekday), Start: sh.Start, End: sh.End, Working: sh.Working})
	}
	return scheduleDoc{
		aggregateDoc:          newAggregateDoc(s.ID, s.CreatedAt, s.UpdatedAt, s.Version),
		EmployeeID:            s.EmployeeID.String(),
		EffectiveFrom:         s.EffectiveFrom,
		Shifts:                shifts,
		TimezoneOffsetMinutes: s.TimezoneOffsetMinutes,
		GeofenceCenter:        newGeoPointDocPtr(s.GeofenceCenter),
		GeofenceRadiusM:       s.GeofenceRadiusM,
		Active:                s.Active,
	}
}

func (d scheduleDoc) toDomain() (*timekeeping.WorkSchedule, error) {
	root, err := d.root()
	if err != nil {
		return nil, err
	}
	schedule := &timekeeping.WorkSchedule{
		BaseAggregateRoot:     root,
		EmployeeID:            parseUUID(d.EmployeeID),
		EffectiveFrom:         d.EffectiveFrom,
		TimezoneOffsetMinutes: d.TimezoneOffsetMinutes,
		GeofenceCenter:        geoPointPtr(d.GeofenceCenter),
		GeofenceRadiusM:       d.GeofenceRadiusM,
		Active:                d.Active,
	}
	for _, sh := range d.Shifts {
		if sh.Weekday >= 0 && sh.Weekday <= 6 {
			schedule.Shifts[sh.Weekday] = timekeeping.Shift{
				Weekday: time.Weekday(sh.Weekday),
				Start:   sh.Start,
				End:     sh.End,
				Working: sh.Working,
			}
		}
	}
	return schedule, nil
}

// ScheduleRepository persists weekly work schedules
type ScheduleRepository struct {
	coll *mongo.Collection
}

// NewScheduleRepository creates a schedule repository
func NewScheduleRepository(db *mongo.Database) *ScheduleRepository {
	return &ScheduleRepository{coll: db.Collection(collSchedules)}
}

var scheduleSortFields = map[string]bool{
	"effective_from": true, "created_at": true, "updated_at": true,
}

func scheduleQuery(filter shared.Filter) bson.M {
	query := bson.M{}
	if v, ok := filter.Filters["employee_id"].(uuid.UUID); ok {
		query["employee_id"] = v.String()
	}
	if v, ok := filter.Filters["active"].(bool); ok {
		query["active"] = v
	}
	return query
}

func (r *ScheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*timekeeping.WorkSchedule, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()}, nil)
}

func (r *ScheduleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*timekeeping.WorkSchedule, error) {
	cur, err := r.coll.Find(ctx, scheduleQuery(filter), findOptions(filter, scheduleSortFields))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, scheduleDoc.toDomain)
}

func (r *ScheduleRepository) FindActiveByEmployee(ctx context.Context, employeeID uuid.UUID) (*timekeeping.WorkSchedule, error) {
	query := bson.M{"employee_id": employeeID.String(), "active": true}
	opts := options.FindOne().SetSort(bson.D{{Key: "effective_from", Value: -1}})
	return r.findOne(ctx, query, opts)
}

// FindEffective returns the latest schedule effective on or before the date
func (r *ScheduleRepository) FindEffective(ctx context.Context, employeeID uuid.UUID, date time.Time) (*timekeeping.WorkSchedule, error) {
	query := bson.M{
		"employee_id":    employeeID.String(),
		"active":         true,
		"effective_from": bson.M{"$lte": date},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "effective_from", Value: -1}})
	return r.findOne(ctx, query, opts)
}

func (r *ScheduleRepository) findOne(ctx context.Context, query bson.M, opts *options.FindOneOptions) (*timekeeping.WorkSchedule, error) {
	var doc scheduleDoc
	var err error
	if opts != nil {
		err = r.coll.FindOne(ctx, query, opts).Decode(&doc)
	} else {
		err = r.coll.FindOne(ctx, query).Decode(&doc)
	}
	if err != nil {
		return nil, mapFindError(err)
	}
	return doc.toDomain()
}

func (r *ScheduleRepository) FindAllActive(ctx context.Context) ([]*timekeeping.WorkSchedule, error) {
	cur, err := r.coll.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, scheduleDoc.toDomain)
}

// DeactivatePrior clears the active flag on every schedule of the
// employee except the given one
func (r *ScheduleRepository) DeactivatePrior(ctx context.Context, employeeID uuid.UUID, exceptID uuid.UUID) error {
	query := bson.M{
		"employee_id": employeeID.String(),
		"active":      true,
		"_id":         bson.M{"$ne": exceptID.String()},
	}
	update := bson.M{
		"$set": bson.M{"active": false, "updated_at": time.Now().UTC()},
		"$inc": bson.M{"version": 1},
	}
	_, err := r.coll.UpdateMany(ctx, query, update)
	return err
}

func (r *ScheduleRepository) Save(ctx context.Context, schedule *timekeeping.WorkSchedule) error {
	return replaceByID(ctx, r.coll, schedule.ID.String(), newScheduleDoc(schedule))
}

func (r *ScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *ScheduleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.coll.CountDocuments(ctx, scheduleQuery(filter))
}
