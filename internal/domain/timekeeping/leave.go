package timekeeping

import (
	"fmt"
	"strings"
	"time"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaveType classifies a leave request
type LeaveType string

const (
	LeaveTypeAnnual      LeaveType = "annual"
	LeaveTypeSick        LeaveType = "sick"
	LeaveTypeUnpaid      LeaveType = "unpaid"
	LeaveTypeMaternity   LeaveType = "maternity"
	LeaveTypeBereavement LeaveType = "bereavement"
)

// LeaveStatus represents the leave request lifecycle
type LeaveStatus string

const (
	LeaveStatusPending   LeaveStatus = "pending"
	LeaveStatusApproved  LeaveStatus = "approved"
	LeaveStatusRejected  LeaveStatus = "rejected"
	LeaveStatusCancelled LeaveStatus = "cancelled"
)

// LeaveRequest is a dated absence request. Days counts only working days,
// the application computes it from the employee's schedule and the holiday
// calendar before construction.
type LeaveRequest struct {
	shared.BaseAggregateRoot
	EmployeeID      uuid.UUID
	Type            LeaveType
	StartDate       time.Time
	EndDate         time.Time
	Days            decimal.Decimal
	Reason          string
	Status          LeaveStatus
	ApproverID      *uuid.UUID
	DecidedAt       *time.Time
	RejectionReason string
}

// NewLeaveRequest creates a pending leave request
func NewLeaveRequest(employeeID uuid.UUID, leaveType LeaveType, startDate, endDate time.Time, days decimal.Decimal, reason string) (*LeaveRequest, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee is required")
	}
	if err := validateLeaveType(leaveType); err != nil {
		return nil, err
	}
	if startDate.IsZero() || endDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Start and end dates are required")
	}
	start := DateOnly(startDate)
	end := DateOnly(endDate)
	if end.Before(start) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Leave end date cannot precede start date")
	}
	if !days.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Requested range contains no working days")
	}

	return &LeaveRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EmployeeID:        employeeID,
		Type:              leaveType,
		StartDate:         start,
		EndDate:           end,
		Days:              days,
		Reason:            strings.TrimSpace(reason),
		Status:            LeaveStatusPending,
	}, nil
}

// Approve moves a pending request to approved
func (r *LeaveRequest) Approve(approverID uuid.UUID) error {
	if r.Status != LeaveStatusPending {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Only pending leave requests can be approved, current status is %s", r.Status))
	}
	if approverID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Approver is required")
	}

	now := time.Now()
	r.Status = LeaveStatusApproved
	r.ApproverID = &approverID
	r.DecidedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()
	return nil
}

// Reject moves a pending request to rejected with a mandatory reason
func (r *LeaveRequest) Reject(approverID uuid.UUID, reason string) error {
	if r.Status != LeaveStatusPending {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Only pending leave requests can be rejected, current status is %s", r.Status))
	}
	if approverID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Approver is required")
	}
	if strings.TrimSpace(reason) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Rejection reason is required")
	}

	now := time.Now()
	r.Status = LeaveStatusRejected
	r.ApproverID = &approverID
	r.DecidedAt = &now
	r.RejectionReason = strings.TrimSpace(reason)
	r.UpdatedAt = now
	r.IncrementVersion()
	return nil
}

// Cancel withdraws a pending request, or an approved one before it starts
func (r *LeaveRequest) Cancel(now time.Time) error {
	switch r.Status {
	case LeaveStatusPending:
	case LeaveStatusApproved:
		if !DateOnly(now).Before(r.StartDate) {
			return shared.NewDomainError("INVALID_STATE", "Approved leave can only be cancelled before it starts")
		}
	default:
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Leave request in status %s cannot be cancelled", r.Status))
	}

	r.Status = LeaveStatusCancelled
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// IsPending reports whether the request still awaits a decision
func (r *LeaveRequest) IsPending() bool {
	return r.Status == LeaveStatusPending
}

// IsApproved reports whether the request was approved
func (r *LeaveRequest) IsApproved() bool {
	return r.Status == LeaveStatusApproved
}

// BalanceBucket names the counter a balance movement applies to
type BalanceBucket string

const (
	BucketAllocated BalanceBucket = "allocated"
	BucketPending   BalanceBucket = "pending"
	BucketUsed      BalanceBucket = "used"
)

// BalanceAdjustment is one append-only balance movement
type BalanceAdjustment struct {
	Bucket  BalanceBucket
	Delta   decimal.Decimal
	Reason  string
	ActorID uuid.UUID
	At      time.Time
}

// LeaveBalance tracks an employee's entitlement for one leave type and
// year. Remaining is always computed, never stored. Every movement is
// appended to the adjustments trail.
type LeaveBalance struct {
	shared.BaseAggregateRoot
	EmployeeID  uuid.UUID
	Year        int
	Type        LeaveType
	Allocated   decimal.Decimal
	Used        decimal.Decimal
	Pending     decimal.Decimal
	Adjustments []BalanceAdjustment
}

// NewLeaveBalance allocates an entitlement for a year
func NewLeaveBalance(employeeID uuid.UUID, year int, leaveType LeaveType, allocated decimal.Decimal, actorID uuid.UUID) (*LeaveBalance, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee is required")
	}
	if year < 2000 || year > 2100 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Year is out of range")
	}
	if err := validateLeaveType(leaveType); err != nil {
		return nil, err
	}
	if allocated.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Allocation cannot be negative")
	}

	balance := &LeaveBalance{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EmployeeID:        employeeID,
		Year:              year,
		Type:              leaveType,
		Allocated:         allocated,
		Used:              decimal.Zero,
		Pending:           decimal.Zero,
	}
	balance.record(BucketAllocated, allocated, "initial allocation", actorID)
	return balance, nil
}

// Remaining is allocated minus used minus pending
func (b *LeaveBalance) Remaining() decimal.Decimal {
	return b.Allocated.Sub(b.Used).Sub(b.Pending)
}

// Reserve moves days into pending when enough balance remains
func (b *LeaveBalance) Reserve(days decimal.Decimal, actorID uuid.UUID, reason string) error {
	if !days.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Days must be positive")
	}
	if b.Remaining().LessThan(days) {
		return shared.ErrInsufficientBalance
	}

	b.Pending = b.Pending.Add(days)
	b.record(BucketPending, days, reason, actorID)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// CommitPending converts reserved days into used days on approval
func (b *LeaveBalance) CommitPending(days decimal.Decimal, actorID uuid.UUID, reason string) error {
	if !days.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Days must be positive")
	}
	if b.Pending.LessThan(days) {
		return shared.NewDomainError("INVALID_STATE", "Pending balance is smaller than the requested movement")
	}

	b.Pending = b.Pending.Sub(days)
	b.Used = b.Used.Add(days)
	b.record(BucketPending, days.Neg(), reason, actorID)
	b.record(BucketUsed, days, reason, actorID)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// ReleasePending returns reserved days on rejection or cancellation
func (b *LeaveBalance) ReleasePending(days decimal.Decimal, actorID uuid.UUID, reason string) error {
	if !days.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Days must be positive")
	}
	if b.Pending.LessThan(days) {
		return shared.NewDomainError("INVALID_STATE", "Pending balance is smaller than the requested movement")
	}

	b.Pending = b.Pending.Sub(days)
	b.record(BucketPending, days.Neg(), reason, actorID)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// ReleaseUsed returns used days when approved leave is cancelled in time
func (b *LeaveBalance) ReleaseUsed(days decimal.Decimal, actorID uuid.UUID, reason string) error {
	if !days.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Days must be positive")
	}
	if b.Used.LessThan(days) {
		return shared.NewDomainError("INVALID_STATE", "Used balance is smaller than the requested movement")
	}

	b.Used = b.Used.Sub(days)
	b.record(BucketUsed, days.Neg(), reason, actorID)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// Adjust changes the allocation by delta. The remaining balance must stay
// non-negative.
func (b *LeaveBalance) Adjust(delta decimal.Decimal, reason string, actorID uuid.UUID) error {
	if delta.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Adjustment delta cannot be zero")
	}
	if strings.TrimSpace(reason) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Adjustment reason is required")
	}

	allocated := b.Allocated.Add(delta)
	if allocated.IsNegative() || allocated.Sub(b.Used).Sub(b.Pending).IsNegative() {
		return shared.NewDomainError("INVALID_ADJUSTMENT", "Adjustment would make the remaining balance negative")
	}

	b.Allocated = allocated
	b.record(BucketAllocated, delta, strings.TrimSpace(reason), actorID)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

func (b *LeaveBalance) record(bucket BalanceBucket, delta decimal.Decimal, reason string, actorID uuid.UUID) {
	b.Adjustments = append(b.Adjustments, BalanceAdjustment{
		Bucket:  bucket,
		Delta:   delta,
		Reason:  reason,
		ActorID: actorID,
		At:      time.Now(),
	})
}

// CountLeaveDays counts the working days in the inclusive date range. The
// callback decides whether a calendar day is a working day, folding in the
// employee's schedule and the holiday calendar.
func CountLeaveDays(startDate, endDate time.Time, isWorkingDay func(time.Time) bool) decimal.Decimal {
	start := DateOnly(startDate)
	end := DateOnly(endDate)

	days := int64(0)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if isWorkingDay(day) {
			days++
		}
	}
	return decimal.NewFromInt(days)
}

// DateOnly strips the clock, keeping the calendar day in UTC
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// validateLeaveType validates the leave type
func validateLeaveType(t LeaveType) error {
	switch t {
	case LeaveTypeAnnual, LeaveTypeSick, LeaveTypeUnpaid, LeaveTypeMaternity, LeaveTypeBereavement:
		return nil
	default:
		return shared.NewDomainError("INVALID_INPUT", "Unknown leave type")
	}
}
