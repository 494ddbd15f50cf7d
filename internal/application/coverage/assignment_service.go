package coverage

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/logistics-erp/hrm/internal/domain/coverage"
	"github.com/logistics-erp/hrm/internal/domain/org"
	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
)

// AssignmentService handles branch-to-area assignment and point routing
type AssignmentService struct {
	assignmentRepo coverage.AssignmentRepository
	areaRepo       coverage.ServiceAreaRepository
	branchRepo     org.BranchRepository
	logger         *zap.Logger
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(
	assignmentRepo coverage.AssignmentRepository,
	areaRepo coverage.ServiceAreaRepository,
	branchRepo org.BranchRepository,
	logger *zap.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		areaRepo:       areaRepo,
		branchRepo:     branchRepo,
		logger:         logger,
	}
}

// Create links a branch to a service area. Area and branch form a unique
// pair.
func (s *AssignmentService) Create(ctx context.Context, req CreateAssignmentRequest) (*AssignmentResponse, error) {
	if _, err := s.areaRepo.FindByID(ctx, req.AreaID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_AREA", "Service area not found")
		}
		s.logger.Error("Failed to load service area", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create assignment")
	}
	if _, err := s.branchRepo.FindByID(ctx, req.BranchID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_BRANCH", "Branch not found")
		}
		s.logger.Error("Failed to load branch", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create assignment")
	}

	if _, err := s.assignmentRepo.FindByAreaAndBranch(ctx, req.AreaID, req.BranchID); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "This branch is already assigned to the area")
	} else if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to look up assignment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create assignment")
	}

	assignment, err := coverage.NewServiceAreaAssignment(req.AreaID, req.BranchID, req.Priority)
	if err != nil {
		return nil, err
	}

	if err := s.assignmentRepo.Save(ctx, assignment); err != nil {
		s.logger.Error("Failed to save assignment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create assignment")
	}

	s.logger.Info("Branch assigned to service area",
		zap.String("area_id", req.AreaID.String()),
		zap.String("branch_id", req.BranchID.String()),
		zap.Int("priority", req.Priority))

	return ToAssignmentResponse(assignment), nil
}

// SetPriority changes an assignment's rank
func (s *AssignmentService) SetPriority(ctx context.Context, id uuid.UUID, req SetPriorityRequest) (*AssignmentResponse, error) {
	assignment, err := s.findAssignment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := assignment.SetPriority(req.Priority); err != nil {
		return nil, err
	}

	if err := s.assignmentRepo.Save(ctx, assignment); err != nil {
		s.logger.Error("Failed to save assignment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update assignment")
	}

	return ToAssignmentResponse(assignment), nil
}

// Activate puts an assignment back into routing decisions
func (s *AssignmentService) Activate(ctx context.Context, id uuid.UUID) (*AssignmentResponse, error) {
	return s.changeStatus(ctx, id, (*coverage.ServiceAreaAssignment).Activate)
}

// Deactivate removes an assignment from routing decisions
func (s *AssignmentService) Deactivate(ctx context.Context, id uuid.UUID) (*AssignmentResponse, error) {
	return s.changeStatus(ctx, id, (*coverage.ServiceAreaAssignment).Deactivate)
}

func (s *AssignmentService) changeStatus(ctx context.Context, id uuid.UUID, transition func(*coverage.ServiceAreaAssignment)) (*AssignmentResponse, error) {
	assignment, err := s.findAssignment(ctx, id)
	if err != nil {
		return nil, err
	}

	transition(assignment)

	if err := s.assignmentRepo.Save(ctx, assignment); err != nil {
		s.logger.Error("Failed to save assignment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update assignment")
	}

	return ToAssignmentResponse(assignment), nil
}

// BranchesForArea lists the assignments of an area ordered by priority
func (s *AssignmentService) BranchesForArea(ctx context.Context, areaID uuid.UUID) ([]AssignmentResponse, error) {
	if _, err := s.areaRepo.FindByID(ctx, areaID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Service area not found")
		}
		s.logger.Error("Failed to load service area", zap.Error(err))
		return nil, err
	}

	assignments, err := s.assignmentRepo.FindByArea(ctx, areaID)
	if err != nil {
		s.logger.Error("Failed to list assignments", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list assignments")
	}

	items := make([]AssignmentResponse, len(assignments))
	for i := range assignments {
		items[i] = *ToAssignmentResponse(assignments[i])
	}
	return items, nil
}

// BranchForPoint routes a point to the serving branch: the active
// assignment with the lowest priority number among the active areas
// containing the point
func (s *AssignmentService) BranchForPoint(ctx context.Context, req LocateRequest) (*BranchForPointResponse, error) {
	point, err := valueobject.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return nil, err
	}

	areas, err := s.areaRepo.FindContaining(ctx, point)
	if err != nil {
		s.logger.Error("Failed to locate service areas", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resolve coverage")
	}

	byID := make(map[uuid.UUID]*coverage.ServiceArea, len(areas))
	areaIDs := make([]uuid.UUID, 0, len(areas))
	for _, area := range areas {
		if !area.IsActive() {
			continue
		}
		byID[area.ID] = area
		areaIDs = append(areaIDs, area.ID)
	}
	if len(areaIDs) == 0 {
		return nil, shared.NewDomainError("OUT_OF_COVERAGE", "No service area covers this point")
	}

	assignments, err := s.assignmentRepo.FindActiveByAreas(ctx, areaIDs)
	if err != nil {
		s.logger.Error("Failed to load assignments", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resolve coverage")
	}
	if len(assignments) == 0 {
		return nil, shared.NewDomainError("OUT_OF_COVERAGE", "No branch serves this point")
	}

	sort.SliceStable(assignments, func(i, j int) bool {
		return assignments[i].Priority < assignments[j].Priority
	})
	winner := assignments[0]
	area := byID[winner.AreaID]

	return &BranchForPointResponse{
		AreaID:   winner.AreaID,
		AreaCode: area.Code,
		BranchID: winner.BranchID,
		Priority: winner.Priority,
	}, nil
}

// Delete removes an assignment
func (s *AssignmentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findAssignment(ctx, id); err != nil {
		return err
	}

	if err := s.assignmentRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete assignment", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete assignment")
	}

	s.logger.Info("Assignment deleted", zap.String("assignment_id", id.String()))
	return nil
}

func (s *AssignmentService) findAssignment(ctx context.Context, id uuid.UUID) (*coverage.ServiceAreaAssignment, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Assignment not found")
		}
		s.logger.Error("Failed to find assignment", zap.Error(err))
		return nil, err
	}
	return assignment, nil
}
