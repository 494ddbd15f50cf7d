package org

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/logistics-erp/hrm/internal/domain/org"
	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/workforce"
	"go.uber.org/zap"
)

// DivisionService handles division (org chart department) administration
type DivisionService struct {
	divisionRepo org.DivisionRepository
	branchRepo   org.BranchRepository
	positionRepo org.PositionRepository
	employeeRepo workforce.EmployeeRepository
	logger       *zap.Logger
}

// NewDivisionService creates a new division service
func NewDivisionService(
	divisionRepo org.DivisionRepository,
	branchRepo org.BranchRepository,
	positionRepo org.PositionRepository,
	employeeRepo workforce.EmployeeRepository,
	logger *zap.Logger,
) *DivisionService {
	return &DivisionService{
		divisionRepo: divisionRepo,
		branchRepo:   branchRepo,
		positionRepo: positionRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// Create creates a new division, optionally under a parent
func (s *DivisionService) Create(ctx context.Context, req CreateDivisionRequest) (*DivisionResponse, error) {
	exists, err := s.divisionRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		s.logger.Error("Failed to check division code", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check division code availability")
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Division with this code already exists")
	}

	var division *org.Division
	if req.ParentID != nil {
		parent, err := s.divisionRepo.FindByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent division not found")
			}
			return nil, err
		}
		division, err = org.NewChildDivision(req.Code, req.Name, parent)
		if err != nil {
			return nil, err
		}
	} else {
		division, err = org.NewDivision(req.Code, req.Name)
		if err != nil {
			return nil, err
		}
	}

	if req.Description != "" {
		if err := division.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.BranchID != nil {
		if err := s.checkBranchExists(ctx, *req.BranchID); err != nil {
			return nil, err
		}
		division.SetBranch(req.BranchID)
	}
	if req.ManagerID != nil {
		division.SetManager(req.ManagerID)
	}
	if req.Budget != nil {
		budget, err := req.Budget.ToMoney()
		if err != nil {
			return nil, err
		}
		if err := division.SetBudget(budget); err != nil {
			return nil, err
		}
	}

	if err := s.divisionRepo.Save(ctx, division); err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, domainErr
		}
		s.logger.Error("Failed to create division", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create division")
	}

	s.logger.Info("Division created",
		zap.String("division_id", division.ID.String()),
		zap.String("code", division.Code))

	return ToDivisionResponse(division), nil
}

// GetByID retrieves a division by ID
func (s *DivisionService) GetByID(ctx context.Context, id uuid.UUID) (*DivisionResponse, error) {
	division, err := s.findDivision(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDivisionResponse(division), nil
}

// GetByCode retrieves a division by its unique code
func (s *DivisionService) GetByCode(ctx context.Context, code string) (*DivisionResponse, error) {
	division, err := s.divisionRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Division not found")
		}
		return nil, err
	}
	return ToDivisionResponse(division), nil
}

// List retrieves a paginated list of divisions
func (s *DivisionService) List(ctx context.Context, req ListDivisionsFilter) (*shared.Paginated[DivisionResponse], error) {
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
	if req.ParentID != nil {
		filter.Filters["parent_id"] = *req.ParentID
	}
	if req.BranchID != nil {
		filter.Filters["branch_id"] = *req.BranchID
	}

	divisions, err := s.divisionRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list divisions", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list divisions")
	}

	total, err := s.divisionRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count divisions", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count divisions")
	}

	items := make([]DivisionResponse, len(divisions))
	for i := range divisions {
		items[i] = *ToDivisionResponse(&divisions[i])
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &result, nil
}

// Update updates division fields
func (s *DivisionService) Update(ctx context.Context, id uuid.UUID, req UpdateDivisionRequest) (*DivisionResponse, error) {
	division, err := s.findDivision(ctx, id)
	if err != nil {
		return nil, err
	}

	name := division.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := division.Description
	if req.Description != nil {
		description = *req.Description
	}
	if err := division.Update(name, description); err != nil {
		return nil, err
	}

	if req.UnsetBranch {
		division.SetBranch(nil)
	} else if req.BranchID != nil {
		if err := s.checkBranchExists(ctx, *req.BranchID); err != nil {
			return nil, err
		}
		division.SetBranch(req.BranchID)
	}
	if req.UnsetManager {
		division.SetManager(nil)
	} else if req.ManagerID != nil {
		division.SetManager(req.ManagerID)
	}
	if req.Budget != nil {
		budget, err := req.Budget.ToMoney()
		if err != nil {
			return nil, err
		}
		if err := division.SetBudget(budget); err != nil {
			return nil, err
		}
	}

	if err := s.divisionRepo.Save(ctx, division); err != nil {
		s.logger.Error("Failed to update division", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update division")
	}

	return ToDivisionResponse(division), nil
}

// Activate re-activates an inactive division
func (s *DivisionService) Activate(ctx context.Context, id uuid.UUID) (*DivisionResponse, error) {
	return s.changeStatus(ctx, id, func(d *org.Division) error { return d.Activate() })
}

// Deactivate deactivates a division
func (s *DivisionService) Deactivate(ctx context.Context, id uuid.UUID) (*DivisionResponse, error) {
	return s.changeStatus(ctx, id, func(d *org.Division) error { return d.Deactivate() })
}

func (s *DivisionService) changeStatus(ctx context.Context, id uuid.UUID, transition func(*org.Division) error) (*DivisionResponse, error) {
	division, err := s.findDivision(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := transition(division); err != nil {
		return nil, err
	}

	if err := s.divisionRepo.Save(ctx, division); err != nil {
		s.logger.Error("Failed to change division status", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to change division status")
	}

	return ToDivisionResponse(division), nil
}

// GetChildren retrieves the direct children of a division
func (s *DivisionService) GetChildren(ctx context.Context, id uuid.UUID) ([]DivisionResponse, error) {
	if _, err := s.findDivision(ctx, id); err != nil {
		return nil, err
	}

	children, err := s.divisionRepo.FindChildren(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load division children", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load division children")
	}

	items := make([]DivisionResponse, len(children))
	for i := range children {
		items[i] = *ToDivisionResponse(&children[i])
	}
	return items, nil
}

// GetDescendants retrieves the whole subtree below a division
func (s *DivisionService) GetDescendants(ctx context.Context, id uuid.UUID) ([]DivisionResponse, error) {
	if _, err := s.findDivision(ctx, id); err != nil {
		return nil, err
	}

	descendants, err := s.divisionRepo.FindDescendants(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load division descendants", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load division descendants")
	}

	items := make([]DivisionResponse, len(descendants))
	for i := range descendants {
		items[i] = *ToDivisionResponse(&descendants[i])
	}
	return items, nil
}

// Transfer moves a division under a new parent, re-pathing the subtree
func (s *DivisionService) Transfer(ctx context.Context, id uuid.UUID, req TransferRequest) (*DivisionResponse, error) {
	division, err := s.findDivision(ctx, id)
	if err != nil {
		return nil, err
	}

	var parent *org.Division
	if req.NewParentID != nil {
		if *req.NewParentID == id {
			return nil, shared.NewDomainError("CIRCULAR_REFERENCE", "Division cannot be its own parent")
		}
		parent, err = s.divisionRepo.FindByID(ctx, *req.NewParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "New parent division not found")
			}
			return nil, err
		}
		if division.IsAncestorOf(parent) {
			return nil, shared.NewDomainError("CIRCULAR_REFERENCE", "Cannot move a division under its own descendant")
		}
	}

	oldPath := division.Path
	oldLevel := division.Level
	if err := division.MoveTo(parent); err != nil {
		return nil, err
	}

	if err := s.divisionRepo.Save(ctx, division); err != nil {
		s.logger.Error("Failed to save transferred division", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to transfer division")
	}

	if err := s.divisionRepo.UpdateSubtreePaths(ctx, oldPath, division.Path, division.Level-oldLevel); err != nil {
		s.logger.Error("Failed to re-path division subtree",
			zap.String("division_id", id.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update division subtree")
	}

	s.logger.Info("Division transferred",
		zap.String("division_id", id.String()),
		zap.String("new_path", division.Path))

	return ToDivisionResponse(division), nil
}

// Delete removes a division. Divisions with children, positions or
// assigned employees cannot be deleted.
func (s *DivisionService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findDivision(ctx, id); err != nil {
		return err
	}

	children, err := s.divisionRepo.CountChildren(ctx, id)
	if err != nil {
		s.logger.Error("Failed to count division children", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check division children")
	}
	if children > 0 {
		return shared.NewDomainError("HAS_CHILDREN", "Division has child divisions and cannot be deleted")
	}

	positions, err := s.positionRepo.FindByDivision(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load division positions", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check division positions")
	}
	if len(positions) > 0 {
		return shared.NewDomainError("IN_USE", "Division has positions and cannot be deleted")
	}

	assigned, err := s.employeeRepo.CountByAssignment(ctx, uuid.Nil, id, uuid.Nil)
	if err != nil {
		s.logger.Error("Failed to count assigned employees", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check division employees")
	}
	if assigned > 0 {
		return shared.NewDomainError("IN_USE", "Division has assigned employees and cannot be deleted")
	}

	if err := s.divisionRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete division", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete division")
	}

	s.logger.Info("Division deleted", zap.String("division_id", id.String()))

	return nil
}

func (s *DivisionService) findDivision(ctx context.Context, id uuid.UUID) (*org.Division, error) {
	division, err := s.divisionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Division not found")
		}
		s.logger.Error("Failed to load division", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load division")
	}
	return division, nil
}

func (s *DivisionService) checkBranchExists(ctx context.Context, branchID uuid.UUID) error {
	if _, err := s.branchRepo.FindByID(ctx, branchID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_BRANCH", "Branch not found")
		}
		return err
	}
	return nil
}
