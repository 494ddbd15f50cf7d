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

// PositionService handles position (org chart role) administration
type PositionService struct {
	positionRepo org.PositionRepository
	divisionRepo org.DivisionRepository
	employeeRepo workforce.EmployeeRepository
	logger       *zap.Logger
}

// NewPositionService creates a new position service
func NewPositionService(
	positionRepo org.PositionRepository,
	divisionRepo org.DivisionRepository,
	employeeRepo workforce.EmployeeRepository,
	logger *zap.Logger,
) *PositionService {
	return &PositionService{
		positionRepo: positionRepo,
		divisionRepo: divisionRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// Create creates a new position, optionally under a reporting position
func (s *PositionService) Create(ctx context.Context, req CreatePositionRequest) (*PositionResponse, error) {
	exists, err := s.positionRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		s.logger.Error("Failed to check position code", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check position code availability")
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Position with this code already exists")
	}

	if _, err := s.divisionRepo.FindByID(ctx, req.DivisionID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_DIVISION", "Division not found")
		}
		return nil, err
	}

	var position *org.Position
	if req.ReportsToID != nil {
		reportsTo, err := s.positionRepo.FindByID(ctx, *req.ReportsToID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Reporting position not found")
			}
			return nil, err
		}
		position, err = org.NewReportingPosition(req.Code, req.Title, req.DivisionID, req.Grade, reportsTo)
		if err != nil {
			return nil, err
		}
	} else {
		position, err = org.NewPosition(req.Code, req.Title, req.DivisionID, req.Grade)
		if err != nil {
			return nil, err
		}
	}

	if len(req.Requirements) > 0 {
		if err := position.Update(req.Title, req.Grade, req.Requirements); err != nil {
			return nil, err
		}
	}
	if req.Compensation != nil {
		band, err := req.Compensation.ToBand()
		if err != nil {
			return nil, err
		}
		if err := position.SetCompensation(band); err != nil {
			return nil, err
		}
	}
	if req.Authorized != nil {
		if err := position.SetHeadcount(*req.Authorized); err != nil {
			return nil, err
		}
	}

	if err := s.positionRepo.Save(ctx, position); err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, domainErr
		}
		s.logger.Error("Failed to create position", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create position")
	}

	s.logger.Info("Position created",
		zap.String("position_id", position.ID.String()),
		zap.String("code", position.Code))

	return ToPositionResponse(position), nil
}

// GetByID retrieves a position by ID
func (s *PositionService) GetByID(ctx context.Context, id uuid.UUID) (*PositionResponse, error) {
	position, err := s.findPosition(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToPositionResponse(position), nil
}

// GetByCode retrieves a position by its unique code
func (s *PositionService) GetByCode(ctx context.Context, code string) (*PositionResponse, error) {
	position, err := s.positionRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Position not found")
		}
		return nil, err
	}
	return ToPositionResponse(position), nil
}

// List retrieves a paginated list of positions
func (s *PositionService) List(ctx context.Context, req ListPositionsFilter) (*shared.Paginated[PositionResponse], error) {
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
	if req.DivisionID != nil {
		filter.Filters["division_id"] = *req.DivisionID
	}
	if req.Grade != nil {
		filter.Filters["grade"] = *req.Grade
	}

	positions, err := s.positionRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list positions", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list positions")
	}

	total, err := s.positionRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count positions", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count positions")
	}

	items := make([]PositionResponse, len(positions))
	for i := range positions {
		items[i] = *ToPositionResponse(&positions[i])
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &result, nil
}

// Update updates position fields
func (s *PositionService) Update(ctx context.Context, id uuid.UUID, req UpdatePositionRequest) (*PositionResponse, error) {
	position, err := s.findPosition(ctx, id)
	if err != nil {
		return nil, err
	}

	title := position.Title
	if req.Title != nil {
		title = *req.Title
	}
	grade := position.Grade
	if req.Grade != nil {
		grade = *req.Grade
	}
	requirements := position.Requirements
	if req.Requirements != nil {
		requirements = req.Requirements
	}
	if err := position.Update(title, grade, requirements); err != nil {
		return nil, err
	}

	if req.Compensation != nil {
		band, err := req.Compensation.ToBand()
		if err != nil {
			return nil, err
		}
		if err := position.SetCompensation(band); err != nil {
			return nil, err
		}
	}
	if req.Authorized != nil {
		if err := position.SetHeadcount(*req.Authorized); err != nil {
			return nil, err
		}
	}

	if err := s.positionRepo.Save(ctx, position); err != nil {
		s.logger.Error("Failed to update position", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update position")
	}

	return ToPositionResponse(position), nil
}

// ChangeStatus transitions the position lifecycle status
func (s *PositionService) ChangeStatus(ctx context.Context, id uuid.UUID, req ChangePositionStatusRequest) (*PositionResponse, error) {
	position, err := s.findPosition(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := position.ChangeStatus(org.PositionStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.positionRepo.Save(ctx, position); err != nil {
		s.logger.Error("Failed to change position status", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to change position status")
	}

	return ToPositionResponse(position), nil
}

// GetDirectReports retrieves positions reporting directly to the given one
func (s *PositionService) GetDirectReports(ctx context.Context, id uuid.UUID) ([]PositionResponse, error) {
	if _, err := s.findPosition(ctx, id); err != nil {
		return nil, err
	}

	reports, err := s.positionRepo.FindDirectReports(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load direct reports", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load direct reports")
	}

	items := make([]PositionResponse, len(reports))
	for i := range reports {
		items[i] = *ToPositionResponse(&reports[i])
	}
	return items, nil
}

// GetDescendants retrieves the whole reporting subtree below a position
func (s *PositionService) GetDescendants(ctx context.Context, id uuid.UUID) ([]PositionResponse, error) {
	if _, err := s.findPosition(ctx, id); err != nil {
		return nil, err
	}

	descendants, err := s.positionRepo.FindDescendants(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load position descendants", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load position descendants")
	}

	items := make([]PositionResponse, len(descendants))
	for i := range descendants {
		items[i] = *ToPositionResponse(&descendants[i])
	}
	return items, nil
}

// GetReportingChain walks the reporting line upward from a position to the
// root, nearest manager first. A repeated node aborts the walk.
func (s *PositionService) GetReportingChain(ctx context.Context, id uuid.UUID) ([]PositionResponse, error) {
	position, err := s.findPosition(ctx, id)
	if err != nil {
		return nil, err
	}

	visited := map[uuid.UUID]bool{position.ID: true}
	chain := make([]PositionResponse, 0, position.Level)
	current := position

	for current.ReportsToID != nil {
		next := *current.ReportsToID
		if visited[next] {
			return nil, shared.NewDomainError("INVALID_HIERARCHY", "Reporting chain contains a cycle")
		}
		visited[next] = true

		current, err = s.positionRepo.FindByID(ctx, next)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_HIERARCHY", "Reporting chain references a missing position")
			}
			return nil, err
		}
		chain = append(chain, *ToPositionResponse(current))
	}

	return chain, nil
}

// Transfer moves a position under a new reporting position, re-pathing the
// reporting subtree below it
func (s *PositionService) Transfer(ctx context.Context, id uuid.UUID, req TransferRequest) (*PositionResponse, error) {
	position, err := s.findPosition(ctx, id)
	if err != nil {
		return nil, err
	}

	var reportsTo *org.Position
	if req.NewParentID != nil {
		if *req.NewParentID == id {
			return nil, shared.NewDomainError("CIRCULAR_REFERENCE", "Position cannot report to itself")
		}
		reportsTo, err = s.positionRepo.FindByID(ctx, *req.NewParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "New reporting position not found")
			}
			return nil, err
		}
		if position.IsAncestorOf(reportsTo) {
			return nil, shared.NewDomainError("CIRCULAR_REFERENCE", "Cannot move a position under its own report")
		}
	}

	oldPath := position.Path
	oldLevel := position.Level
	if err := position.MoveTo(reportsTo); err != nil {
		return nil, err
	}

	if err := s.positionRepo.Save(ctx, position); err != nil {
		s.logger.Error("Failed to save transferred position", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to transfer position")
	}

	if err := s.positionRepo.UpdateSubtreePaths(ctx, oldPath, position.Path, position.Level-oldLevel); err != nil {
		s.logger.Error("Failed to re-path position subtree",
			zap.String("position_id", id.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update position subtree")
	}

	s.logger.Info("Position transferred",
		zap.String("position_id", id.String()),
		zap.String("new_path", position.Path))

	return ToPositionResponse(position), nil
}

// Delete removes a position. Positions with direct reports or assigned
// employees cannot be deleted.
func (s *PositionService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findPosition(ctx, id); err != nil {
		return err
	}

	reports, err := s.positionRepo.CountDirectReports(ctx, id)
	if err != nil {
		s.logger.Error("Failed to count direct reports", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check direct reports")
	}
	if reports > 0 {
		return shared.NewDomainError("HAS_CHILDREN", "Position has direct reports and cannot be deleted")
	}

	assigned, err := s.employeeRepo.CountByAssignment(ctx, uuid.Nil, uuid.Nil, id)
	if err != nil {
		s.logger.Error("Failed to count assigned employees", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check position employees")
	}
	if assigned > 0 {
		return shared.NewDomainError("IN_USE", "Position has assigned employees and cannot be deleted")
	}

	if err := s.positionRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete position", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete position")
	}

	s.logger.Info("Position deleted", zap.String("position_id", id.String()))

	return nil
}

func (s *PositionService) findPosition(ctx context.Context, id uuid.UUID) (*org.Position, error) {
	position, err := s.positionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Position not found")
		}
		s.logger.Error("Failed to load position", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load position")
	}
	return position, nil
}
