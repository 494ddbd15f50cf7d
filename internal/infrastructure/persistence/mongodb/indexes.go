package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	collBranches       = "branches"
	collDivisions      = "divisions"
	collPositions      = "positions"
	collEmployees      = "employees"
	collHistory        = "employee_history"
	collCounters       = "counters"
	collAttendance     = "attendance"
	collSchedules      = "work_schedules"
	collHolidays       = "holidays"
	collLeaveRequests  = "leave_requests"
	collLeaveBalances  = "leave_balances"
	collServiceAreas   = "service_areas"
	collAssignments    = "area_assignments"
	collPricing        = "area_pricing"
	collUsers          = "users"
	collRoles          = "roles"
	collTemplates      = "document_templates"
)

// EnsureIndexes creates all indexes the repositories rely on. Safe to run
// on every startup; an index whose options changed is dropped and rebuilt.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := []struct {
		coll   string
		models []mongo.IndexModel
	}{
		{collBranches, []mongo.IndexModel{
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_branch_code")},
			{Keys: bson.D{{Key: "parent_id", Value: 1}}, Options: options.Index().SetName("idx_branch_parent")},
			{Keys: bson.D{{Key: "path", Value: 1}}, Options: options.Index().SetName("idx_branch_path")},
			{Keys: bson.D{{Key: "address.location", Value: "2dsphere"}}, Options: options.Index().SetName("geo_branch_location")},
		}},
		{collDivisions, []mongo.IndexModel{
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_division_code")},
			{Keys: bson.D{{Key: "parent_id", Value: 1}}, Options: options.Index().SetName("idx_division_parent")},
			{Keys: bson.D{{Key: "path", Value: 1}}, Options: options.Index().SetName("idx_division_path")},
		}},
		{collPositions, []mongo.IndexModel{
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_position_code")},
			{Keys: bson.D{{Key: "division_id", Value: 1}}, Options: options.Index().SetName("idx_position_division")},
			{Keys: bson.D{{Key: "reports_to_id", Value: 1}}, Options: options.Index().SetName("idx_position_reports_to")},
			{Keys: bson.D{{Key: "path", Value: 1}}, Options: options.Index().SetName("idx_position_path")},
		}},
		{collEmployees, []mongo.IndexModel{
			{Keys: bson.D{{Key: "employee_no", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_employee_no")},
			{Keys: bson.D{{Key: "national_id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_national_id")},
			{Keys: bson.D{{Key: "branch_id", Value: 1}, {Key: "status", Value: 1}}, Options: options.Index().SetName("idx_employee_branch_status")},
			{Keys: bson.D{{Key: "division_id", Value: 1}}, Options: options.Index().SetName("idx_employee_division")},
			{Keys: bson.D{{Key: "position_id", Value: 1}}, Options: options.Index().SetName("idx_employee_position")},
		}},
		{collHistory, []mongo.IndexModel{
			{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "occurred_at", Value: -1}}, Options: options.Index().SetName("idx_history_employee_time")},
		}},
		{collAttendance, []mongo.IndexModel{
			{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "date", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_attendance_employee_date")},
			{Keys: bson.D{{Key: "date", Value: 1}, {Key: "status", Value: 1}}, Options: options.Index().SetName("idx_attendance_date_status")},
		}},
		{collSchedules, []mongo.IndexModel{
			{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "active", Value: 1}}, Options: options.Index().SetName("idx_schedule_employee_active")},
			{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "effective_from", Value: -1}}, Options: options.Index().SetName("idx_schedule_employee_effective")},
		}},
		{collHolidays, []mongo.IndexModel{
			{Keys: bson.D{{Key: "date", Value: 1}, {Key: "branch_id", Value: 1}}, Options: options.Index().SetName("idx_holiday_date_branch")},
		}},
		{collLeaveRequests, []mongo.IndexModel{
			{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("idx_leave_employee_time")},
			{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index().SetName("idx_leave_status")},
		}},
		{collLeaveBalances, []mongo.IndexModel{
			{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "year", Value: 1}, {Key: "type", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_balance_period")},
		}},
		{collServiceAreas, []mongo.IndexModel{
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_area_code")},
			{Keys: bson.D{{Key: "polygon", Value: "2dsphere"}}, Options: options.Index().SetName("geo_area_polygon")},
		}},
		{collAssignments, []mongo.IndexModel{
			{Keys: bson.D{{Key: "area_id", Value: 1}, {Key: "branch_id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_assignment_area_branch")},
			{Keys: bson.D{{Key: "branch_id", Value: 1}}, Options: options.Index().SetName("idx_assignment_branch")},
		}},
		{collPricing, []mongo.IndexModel{
			{Keys: bson.D{{Key: "area_id", Value: 1}, {Key: "service_type", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_pricing_area_type")},
		}},
		{collUsers, []mongo.IndexModel{
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_username")},
			{Keys: bson.D{{Key: "employee_id", Value: 1}}, Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"employee_id": bson.M{"$type": "string"}}).
				SetName("uniq_user_employee")},
		}},
		{collRoles, []mongo.IndexModel{
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_role_code")},
		}},
		{collTemplates, []mongo.IndexModel{
			{Keys: bson.D{{Key: "document_type", Value: 1}, {Key: "is_default", Value: 1}}, Options: options.Index().SetName("idx_template_type_default")},
		}},
	}

	for _, spec := range specs {
		coll := db.Collection(spec.coll)
		for _, model := range spec.models {
			if err := ensureIndex(ctx, coll, model); err != nil {
				return fmt.Errorf("failed to ensure index on %s: %w", spec.coll, err)
			}
		}
	}
	return nil
}

func ensureIndex(ctx context.Context, coll *mongo.Collection, model mongo.IndexModel) error {
	_, err := coll.Indexes().CreateOne(ctx, model)
	if err == nil {
		return nil
	}
	// An index with the same name but different options already exists:
	// drop it and recreate with the current definition.
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 85 { // IndexOptionsConflict
		name := *model.Options.Name
		if _, dropErr := coll.Indexes().DropOne(ctx, name); dropErr != nil {
			return fmt.Errorf("drop index %s: %w", name, dropErr)
		}
		_, createErr := coll.Indexes().CreateOne(ctx, model)
		return createErr
	}
	return err
}
