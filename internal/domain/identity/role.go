package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/logistics-erp/hrm/internal/domain/shared"
)

// Permission is a functional permission in resource:action form, e.g.
// "hr.employee:read". It is a value object.
type Permission struct {
	Code     string // e.g. "hr.employee:read"
	Resource string // e.g. "hr.employee"
	Action   string // e.g. "read"
}

// NewPermission creates a Permission value object
func NewPermission(resource, action string) (*Permission, error) {
	if err := validatePermissionResource(resource); err != nil {
		return nil, err
	}
	if err := validatePermissionAction(action); err != nil {
		return nil, err
	}

	resource = strings.ToLower(strings.TrimSpace(resource))
	action = strings.ToLower(strings.TrimSpace(action))

	return &Permission{
		Code:     resource + ":" + action,
		Resource: resource,
		Action:   action,
	}, nil
}

// NewPermissionFromCode creates a Permission from "resource:action"
func NewPermissionFromCode(code string) (*Permission, error) {
	if code == WildcardPermission {
		return &Permission{Code: WildcardPermission, Resource: "*", Action: "*"}, nil
	}
	parts := strings.SplitN(code, ":", 2)
	if len(parts) != 2 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Permission code must be in format 'resource:action'")
	}
	return NewPermission(parts[0], parts[1])
}

// Equals checks if two permissions are equal
func (p Permission) Equals(other Permission) bool {
	return p.Code == other.Code
}

// IsEmpty returns true if the permission is empty
func (p Permission) IsEmpty() bool {
	return p.Code == ""
}

// WildcardPermission grants everything
const WildcardPermission = "*"

// PermissionMatches reports whether a granted permission code satisfies
// the required one. "*" grants everything, "hr.employee:*" grants every
// action on hr.employee.
func PermissionMatches(granted, required string) bool {
	if granted == WildcardPermission || granted == required {
		return true
	}
	if resource, ok := strings.CutSuffix(granted, ":*"); ok {
		return strings.HasPrefix(required, resource+":")
	}
	return false
}

// Role is a named bundle of permissions
type Role struct {
	shared.BaseAggregateRoot
	Code         string
	Name         string
	Description  string
	IsSystemRole bool // system roles cannot be deleted
	IsEnabled    bool
	Permissions  []Permission
}

// NewRole creates a role with required fields
func NewRole(code, name string) (*Role, error) {
	if err := validateRoleCode(code); err != nil {
		return nil, err
	}
	if err := validateRoleName(name); err != nil {
		return nil, err
	}

	return &Role{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(strings.TrimSpace(code)),
		Name:              strings.TrimSpace(name),
		IsEnabled:         true,
		Permissions:       make([]Permission, 0),
	}, nil
}

// NewSystemRole creates a role that cannot be deleted
func NewSystemRole(code, name string) (*Role, error) {
	role, err := NewRole(code, name)
	if err != nil {
		return nil, err
	}

	role.IsSystemRole = true
	return role, nil
}

// Update updates the role's basic information
func (r *Role) Update(name, description string) error {
	if err := validateRoleName(name); err != nil {
		return err
	}

	r.Name = strings.TrimSpace(name)
	r.Description = description
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// Enable enables the role
func (r *Role) Enable() error {
	if r.IsEnabled {
		return shared.NewDomainError("INVALID_STATE", "Role is already enabled")
	}

	r.IsEnabled = true
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// Disable disables the role
func (r *Role) Disable() error {
	if !r.IsEnabled {
		return shared.NewDomainError("INVALID_STATE", "Role is already disabled")
	}

	r.IsEnabled = false
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// GrantPermission grants a permission to the role
func (r *Role) GrantPermission(perm Permission) error {
	if perm.IsEmpty() {
		return shared.NewDomainError("INVALID_INPUT", "Permission cannot be empty")
	}

	for _, p := range r.Permissions {
		if p.Equals(perm) {
			return shared.NewDomainError("ALREADY_EXISTS", "Role already has this permission")
		}
	}

	r.Permissions = append(r.Permissions, perm)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// GrantPermissionByCode grants a permission by code string
func (r *Role) GrantPermissionByCode(code string) error {
	perm, err := NewPermissionFromCode(code)
	if err != nil {
		return err
	}
	return r.GrantPermission(*perm)
}

// RevokePermission revokes a permission from the role
func (r *Role) RevokePermission(code string) error {
	found := false
	remaining := make([]Permission, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		if p.Code != code {
			remaining = append(remaining, p)
		} else {
			found = true
		}
	}

	if !found {
		return shared.NewDomainError("NOT_FOUND", "Role does not have this permission")
	}

	r.Permissions = remaining
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetPermissions replaces all permissions of the role
func (r *Role) SetPermissions(permissions []Permission) error {
	seen := make(map[string]bool, len(permissions))
	unique := make([]Permission, 0, len(permissions))
	for _, p := range permissions {
		if p.IsEmpty() {
			return shared.NewDomainError("INVALID_INPUT", "Permission cannot be empty")
		}
		if !seen[p.Code] {
			seen[p.Code] = true
			unique = append(unique, p)
		}
	}

	r.Permissions = unique
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// HasPermission checks for an exact permission code
func (r *Role) HasPermission(code string) bool {
	for _, p := range r.Permissions {
		if p.Code == code {
			return true
		}
	}
	return false
}

// Allows checks whether any granted permission satisfies the required
// code, wildcards included
func (r *Role) Allows(required string) bool {
	if !r.IsEnabled {
		return false
	}
	for _, p := range r.Permissions {
		if PermissionMatches(p.Code, required) {
			return true
		}
	}
	return false
}

// PermissionCodes returns the granted codes in order
func (r *Role) PermissionCodes() []string {
	codes := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		codes = append(codes, p.Code)
	}
	return codes
}

// CanDelete returns true if the role can be deleted
func (r *Role) CanDelete() bool {
	return !r.IsSystemRole
}

// Validation functions

var roleCodePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

func validateRoleCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_INPUT", "Role code cannot be empty")
	}
	if len(code) < 2 {
		return shared.NewDomainError("INVALID_INPUT", "Role code must be at least 2 characters")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_INPUT", "Role code cannot exceed 50 characters")
	}
	if !roleCodePattern.MatchString(code) {
		return shared.NewDomainError("INVALID_INPUT", "Role code must start with a letter and contain only letters, numbers, and underscores")
	}
	return nil
}

func validateRoleName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Role name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_INPUT", "Role name cannot exceed 100 characters")
	}
	return nil
}

var permissionPartPattern = regexp.MustCompile(`^[a-z][a-z0-9_.]*$`)

func validatePermissionResource(resource string) error {
	resource = strings.ToLower(strings.TrimSpace(resource))
	if resource == "" {
		return shared.NewDomainError("INVALID_INPUT", "Permission resource cannot be empty")
	}
	if len(resource) > 50 {
		return shared.NewDomainError("INVALID_INPUT", "Permission resource cannot exceed 50 characters")
	}
	if !permissionPartPattern.MatchString(resource) {
		return shared.NewDomainError("INVALID_INPUT", "Permission resource must start with a letter and contain only lowercase letters, numbers, dots, and underscores")
	}
	return nil
}

func validatePermissionAction(action string) error {
	action = strings.ToLower(strings.TrimSpace(action))
	if action == "*" {
		return nil
	}
	if action == "" {
		return shared.NewDomainError("INVALID_INPUT", "Permission action cannot be empty")
	}
	if len(action) > 50 {
		return shared.NewDomainError("INVALID_INPUT", "Permission action cannot exceed 50 characters")
	}
	if !permissionPartPattern.MatchString(action) {
		return shared.NewDomainError("INVALID_INPUT", "Permission action must start with a letter and contain only lowercase letters, numbers, dots, and underscores")
	}
	return nil
}

// Predefined system role codes
const (
	RoleCodeAdmin         = "ADMIN"
	RoleCodeHRManager     = "HR_MANAGER"
	RoleCodeBranchManager = "BRANCH_MANAGER"
	RoleCodeSupervisor    = "SUPERVISOR"
	RoleCodeEmployee      = "EMPLOYEE"
)

// Predefined resources
const (
	ResourceEmployee   = "hr.employee"
	ResourceBranch     = "hr.branch"
	ResourceDivision   = "hr.division"
	ResourcePosition   = "hr.position"
	ResourceAttendance = "hr.attendance"
	ResourceLeave      = "hr.leave"
	ResourceSchedule   = "hr.schedule"
	ResourceHoliday    = "hr.holiday"
	ResourceArea       = "hr.area"
	ResourcePricing    = "hr.pricing"
	ResourceDocument   = "hr.document"
	ResourceUser       = "identity.user"
	ResourceRole       = "identity.role"
)

// Predefined actions
const (
	ActionCreate   = "create"
	ActionRead     = "read"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionApprove  = "approve"
	ActionReject   = "reject"
	ActionAdjust   = "adjust"
	ActionTransfer = "transfer"
	ActionRender   = "render"
	ActionAssign   = "assign"
)
