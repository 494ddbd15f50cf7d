package org

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/logistics-erp/hrm/internal/domain/org"
	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
	"github.com/logistics-erp/hrm/internal/domain/workforce"
	"go.uber.org/zap"
)

// BranchService handles branch network administration
type BranchService struct {
	branchRepo   org.BranchRepository
	employeeRepo workforce.EmployeeRepository
	logger       *zap.Logger
}

// NewBranchService creates a new branch service
func NewBranchService(
	branchRepo org.BranchRepository,
	employeeRepo workforce.EmployeeRepository,
	logger *zap.Logger,
) *BranchService {
	return &BranchService{
		branchRepo:   branchRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// Create creates a new branch, optionally under a parent
func (s *BranchService) Create(ctx context.Context, req CreateBranchRequest) (*BranchResponse, error) {
	exists, err := s.branchRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		s.logger.Error("Failed to check branch code", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check branch code availability")
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Branch with this code already exists")
	}

	address, err := req.Address.ToAddress()
	if err != nil {
		return nil, err
	}

	var branch *org.Branch
	if req.ParentID != nil {
		parent, err := s.branchRepo.FindByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent branch not found")
			}
			return nil, err
		}
		branch, err = org.NewChildBranch(req.Code, req.Name, org.BranchType(req.Type), address, parent)
		if err != nil {
			return nil, err
		}
	} else {
		branch, err = org.NewBranch(req.Code, req.Name, org.BranchType(req.Type), address)
		if err != nil {
			return nil, err
		}
	}

	if len(req.OperationalHours) > 0 {
		if err := branch.SetOperationalHours(toDayHours(req.OperationalHours)); err != nil {
			return nil, err
		}
	}
	if req.Resources != nil {
		if err := branch.UpdateResources(org.BranchResources{
			Vehicles:          req.Resources.Vehicles,
			StaffCapacity:     req.Resources.StaffCapacity,
			StorageCapacityM3: req.Resources.StorageCapacityM3,
		}); err != nil {
			return nil, err
		}
	}
	if req.ManagerID != nil {
		branch.SetManager(req.ManagerID)
	}

	if err := s.branchRepo.Save(ctx, branch); err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, domainErr
		}
		s.logger.Error("Failed to create branch", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create branch")
	}

	s.logger.Info("Branch created",
		zap.String("branch_id", branch.ID.String()),
		zap.String("code", branch.Code))

	return ToBranchResponse(branch), nil
}

// GetByID retrieves a branch by ID
func (s *BranchService) GetByID(ctx context.Context, id uuid.UUID) (*BranchResponse, error) {
	branch, err := s.findBranch(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToBranchResponse(branch), nil
}

// GetByCode retrieves a branch by its unique code
func (s *BranchService) GetByCode(ctx context.Context, code string) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Branch not found")
		}
		return nil, err
	}
	return ToBranchResponse(branch), nil
}

// List retrieves a paginated list of branches
func (s *BranchService) List(ctx context.Context, req ListBranchesFilter) (*shared.Paginated[BranchResponse], error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	if req.Type != "" {
		filter.Filters["type"] = req.Type
	}
	if req.ParentID != nil {
		filter.Filters["parent_id"] = *req.ParentID
	}

	branches, err := s.branchRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list branches", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list branches")
	}

	total, err := s.branchRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count branches", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count branches")
	}

	items := make([]BranchResponse, len(branches))
	for i := range branches {
		items[i] = *ToBranchResponse(&branches[i])
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &result, nil
}

// Update updates branch fields
func (s *BranchService) Update(ctx context.Context, id uuid.UUID, req UpdateBranchRequest) (*BranchResponse, error) {
	branch, err := s.findBranch(ctx, id)
	if err != nil {
		return nil, err
	}

	name := branch.Name
	if req.Name != nil {
		name = *req.Name
	}
	branchType := branch.Type
	if req.Type != nil {
		branchType = org.BranchType(*req.Type)
	}
	if err := branch.Update(name, branchType); err != nil {
		return nil, err
	}

	if req.Address != nil {
		address, err := req.Address.ToAddress()
		if err != nil {
			return nil, err
		}
		branch.UpdateAddress(address)
	}
	if len(req.OperationalHours) > 0 {
		if err := branch.SetOperationalHours(toDayHours(req.OperationalHours)); err != nil {
			return nil, err
		}
	}
	if req.UnsetManager {
		branch.SetManager(nil)
	} else if req.ManagerID != nil {
		branch.SetManager(req.ManagerID)
	}

	if err := s.branchRepo.Save(ctx, branch); err != nil {
		s.logger.Error("Failed to update branch", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update branch")
	}

	return ToBranchResponse(branch), nil
}

// ChangeStatus transitions the branch lifecycle status
func (s *BranchService) ChangeStatus(ctx context.Context, id uuid.UUID, req ChangeStatusRequest) (*BranchResponse, error) {
	branch, err := s.findBranch(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := branch.ChangeStatus(org.BranchStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.branchRepo.Save(ctx, branch); err != nil {
		s.logger.Error("Failed to change branch status", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to change branch status")
	}

	s.logger.Info("Branch status changed",
		zap.String("branch_id", id.String()),
		zap.String("status", req.Status))

	return ToBranchResponse(branch), nil
}

// UpdateMetrics replaces the reported branch metrics
func (s *BranchService) UpdateMetrics(ctx context.Context, id uuid.UUID, req MetricsInput) (*BranchResponse, error) {
	branch, err := s.findBranch(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := branch.UpdateMetrics(org.BranchMetrics{
		MonthlyShipments: req.MonthlyShipments,
		OnTimeRate:       req.OnTimeRate,
		UtilizationPct:   req.UtilizationPct,
	}); err != nil {
		return nil, err
	}

	if err := s.branchRepo.Save(ctx, branch); err != nil {
		s.logger.Error("Failed to update branch metrics", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update branch metrics")
	}

	return ToBranchResponse(branch), nil
}

// UpdateResources replaces the branch resource counters
func (s *BranchService) UpdateResources(ctx context.Context, id uuid.UUID, req ResourcesInput) (*BranchResponse, error) {
	branch, err := s.findBranch(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := branch.UpdateResources(org.BranchResources{
		Vehicles:          req.Vehicles,
		StaffCapacity:     req.StaffCapacity,
		StorageCapacityM3: req.StorageCapacityM3,
	}); err != nil {
		return nil, err
	}

	if err := s.branchRepo.Save(ctx, branch); err != nil {
		s.logger.Error("Failed to update branch resources", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update branch resources")
	}

	return ToBranchResponse(branch), nil
}

// GetChildren retrieves the direct children of a branch
func (s *BranchService) GetChildren(ctx context.Context, id uuid.UUID) ([]BranchResponse, error) {
	if _, err := s.findBranch(ctx, id); err != nil {
		return nil, err
	}

	children, err := s.branchRepo.FindChildren(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load branch children", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load branch children")
	}

	items := make([]BranchResponse, len(children))
	for i := range children {
		items[i] = *ToBranchResponse(&children[i])
	}
	return items, nil
}

// GetDescendants retrieves the whole subtree below a branch
func (s *BranchService) GetDescendants(ctx context.Context, id uuid.UUID) ([]BranchResponse, error) {
	if _, err := s.findBranch(ctx, id); err != nil {
		return nil, err
	}

	descendants, err := s.branchRepo.FindDescendants(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load branch descendants", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load branch descendants")
	}

	items := make([]BranchResponse, len(descendants))
	for i := range descendants {
		items[i] = *ToBranchResponse(&descendants[i])
	}
	return items, nil
}

// Transfer moves a branch under a new parent. The whole subtree is
// re-pathed so descendant level/path stay consistent with the move.
func (s *BranchService) Transfer(ctx context.Context, id uuid.UUID, req TransferRequest) (*BranchResponse, error) {
	branch, err := s.findBranch(ctx, id)
	if err != nil {
		return nil, err
	}

	var parent *org.Branch
	if req.NewParentID != nil {
		if *req.NewParentID == id {
			return nil, shared.NewDomainError("CIRCULAR_REFERENCE", "Branch cannot be its own parent")
		}
		parent, err = s.branchRepo.FindByID(ctx, *req.NewParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "New parent branch not found")
			}
			return nil, err
		}
		if branch.IsAncestorOf(parent) {
			return nil, shared.NewDomainError("CIRCULAR_REFERENCE", "Cannot move a branch under its own descendant")
		}
	}

	oldPath := branch.Path
	oldLevel := branch.Level
	if err := branch.MoveTo(parent); err != nil {
		return nil, err
	}

	if err := s.branchRepo.Save(ctx, branch); err != nil {
		s.logger.Error("Failed to save transferred branch", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to transfer branch")
	}

	if err := s.branchRepo.UpdateSubtreePaths(ctx, oldPath, branch.Path, branch.Level-oldLevel); err != nil {
		s.logger.Error("Failed to re-path branch subtree",
			zap.String("branch_id", id.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update branch subtree")
	}

	s.logger.Info("Branch transferred",
		zap.String("branch_id", id.String()),
		zap.String("new_path", branch.Path))

	return ToBranchResponse(branch), nil
}

// FindNearest finds active branches ordered by distance from a point
func (s *BranchService) FindNearest(ctx context.Context, req NearestBranchesQuery) ([]BranchResponse, error) {
	point, err := valueobject.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 5
	}

	branches, err := s.branchRepo.FindNearest(ctx, point, limit)
	if err != nil {
		s.logger.Error("Failed to find nearest branches", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find nearest branches")
	}

	items := make([]BranchResponse, len(branches))
	for i := range branches {
		resp := ToBranchResponse(&branches[i])
		if !branches[i].Address.Location.IsZero() {
			distance := point.DistanceM(branches[i].Address.Location)
			resp.DistanceM = &distance
		}
		items[i] = *resp
	}
	return items, nil
}

// Delete removes a branch. Branches with children or assigned employees
// cannot be deleted.
func (s *BranchService) Delete(ctx context.Context, id uuid.UUID) error {
	branch, err := s.findBranch(ctx, id)
	if err != nil {
		return err
	}

	children, err := s.branchRepo.CountChildren(ctx, id)
	if err != nil {
		s.logger.Error("Failed to count branch children", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check branch children")
	}
	if children > 0 {
		return shared.NewDomainError("HAS_CHILDREN", "Branch has child branches and cannot be deleted")
	}

	assigned, err := s.employeeRepo.CountByAssignment(ctx, id, uuid.Nil, uuid.Nil)
	if err != nil {
		s.logger.Error("Failed to count assigned employees", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check branch employees")
	}
	if assigned > 0 {
		return shared.NewDomainError("IN_USE", "Branch has assigned employees and cannot be deleted")
	}

	if err := s.branchRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete branch", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete branch")
	}

	s.logger.Info("Branch deleted",
		zap.String("branch_id", id.String()),
		zap.String("code", branch.Code))

	return nil
}

func (s *BranchService) findBranch(ctx context.Context, id uuid.UUID) (*org.Branch, error) {
	branch, err := s.branchRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Branch not found")
		}
		s.logger.Error("Failed to load branch", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load branch")
	}
	return branch, nil
}

func toDayHours(inputs []DayHoursInput) []org.DayHours {
	hours := make([]org.DayHours, len(inputs))
	for i, h := range inputs {
		hours[i] = org.DayHours{
			Weekday: time.Weekday(h.Weekday),
			Open:    h.Open,
			Close:   h.Close,
			Closed:  h.Closed,
		}
	}
	return hours
}
