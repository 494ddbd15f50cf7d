package coverage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/logistics-erp/hrm/internal/domain/coverage"
	"github.com/logistics-erp/hrm/internal/domain/org"
	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
)

// MockServiceAreaRepository is a mock implementation of coverage.ServiceAreaRepository
type MockServiceAreaRepository struct {
	mock.Mock
}

func (m *MockServiceAreaRepository) FindByID(ctx context.Context, id uuid.UUID) (*coverage.ServiceArea, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coverage.ServiceArea), args.Error(1)
}

func (m *MockServiceAreaRepository) FindByCode(ctx context.Context, code string) (*coverage.ServiceArea, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coverage.ServiceArea), args.Error(1)
}

func (m *MockServiceAreaRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*coverage.ServiceArea, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*coverage.ServiceArea), args.Error(1)
}

func (m *MockServiceAreaRepository) FindContaining(ctx context.Context, point valueobject.GeoPoint) ([]*coverage.ServiceArea, error) {
	args := m.Called(ctx, point)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*coverage.ServiceArea), args.Error(1)
}

func (m *MockServiceAreaRepository) FindNear(ctx context.Context, point valueobject.GeoPoint, maxDistanceM float64, limit int) ([]*coverage.ServiceArea, error) {
	args := m.Called(ctx, point, maxDistanceM, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*coverage.ServiceArea), args.Error(1)
}

func (m *MockServiceAreaRepository) Save(ctx context.Context, area *coverage.ServiceArea) error {
	args := m.Called(ctx, area)
	return args.Error(0)
}

func (m *MockServiceAreaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockServiceAreaRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockServiceAreaRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockAssignmentRepository is a mock implementation of coverage.AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*coverage.ServiceAreaAssignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coverage.ServiceAreaAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*coverage.ServiceAreaAssignment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*coverage.ServiceAreaAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindByArea(ctx context.Context, areaID uuid.UUID) ([]*coverage.ServiceAreaAssignment, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*coverage.ServiceAreaAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindByBranch(ctx context.Context, branchID uuid.UUID) ([]*coverage.ServiceAreaAssignment, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*coverage.ServiceAreaAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindByAreaAndBranch(ctx context.Context, areaID, branchID uuid.UUID) (*coverage.ServiceAreaAssignment, error) {
	args := m.Called(ctx, areaID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coverage.ServiceAreaAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindActiveByAreas(ctx context.Context, areaIDs []uuid.UUID) ([]*coverage.ServiceAreaAssignment, error) {
	args := m.Called(ctx, areaIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*coverage.ServiceAreaAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) CountByArea(ctx context.Context, areaID uuid.UUID) (int64, error) {
	args := m.Called(ctx, areaID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssignmentRepository) CountByBranch(ctx context.Context, branchID uuid.UUID) (int64, error) {
	args := m.Called(ctx, branchID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssignmentRepository) Save(ctx context.Context, assignment *coverage.ServiceAreaAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockPricingRepository is a mock implementation of coverage.PricingRepository
type MockPricingRepository struct {
	mock.Mock
}

func (m *MockPricingRepository) FindByID(ctx context.Context, id uuid.UUID) (*coverage.ServiceAreaPricing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coverage.ServiceAreaPricing), args.Error(1)
}

func (m *MockPricingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*coverage.ServiceAreaPricing, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*coverage.ServiceAreaPricing), args.Error(1)
}

func (m *MockPricingRepository) FindByArea(ctx context.Context, areaID uuid.UUID) ([]*coverage.ServiceAreaPricing, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*coverage.ServiceAreaPricing), args.Error(1)
}

func (m *MockPricingRepository) FindByAreaAndType(ctx context.Context, areaID uuid.UUID, serviceType coverage.ServiceType) (*coverage.ServiceAreaPricing, error) {
	args := m.Called(ctx, areaID, serviceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coverage.ServiceAreaPricing), args.Error(1)
}

func (m *MockPricingRepository) FindActiveByAreaAndType(ctx context.Context, areaID uuid.UUID, serviceType coverage.ServiceType) (*coverage.ServiceAreaPricing, error) {
	args := m.Called(ctx, areaID, serviceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coverage.ServiceAreaPricing), args.Error(1)
}

func (m *MockPricingRepository) CountByArea(ctx context.Context, areaID uuid.UUID) (int64, error) {
	args := m.Called(ctx, areaID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPricingRepository) Save(ctx context.Context, pricing *coverage.ServiceAreaPricing) error {
	args := m.Called(ctx, pricing)
	return args.Error(0)
}

func (m *MockPricingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPricingRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockBranchRepository is a mock implementation of org.BranchRepository
type MockBranchRepository struct {
	mock.Mock
}

func (m *MockBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*org.Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*org.Branch), args.Error(1)
}

func (m *MockBranchRepository) FindByCode(ctx context.Context, code string) (*org.Branch, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*org.Branch), args.Error(1)
}

func (m *MockBranchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]org.Branch, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]org.Branch), args.Error(1)
}

func (m *MockBranchRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]org.Branch, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]org.Branch), args.Error(1)
}

func (m *MockBranchRepository) FindRoots(ctx context.Context) ([]org.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]org.Branch), args.Error(1)
}

func (m *MockBranchRepository) FindDescendants(ctx context.Context, branchID uuid.UUID) ([]org.Branch, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]org.Branch), args.Error(1)
}

func (m *MockBranchRepository) FindNearest(ctx context.Context, point valueobject.GeoPoint, limit int) ([]org.Branch, error) {
	args := m.Called(ctx, point, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]org.Branch), args.Error(1)
}

func (m *MockBranchRepository) Save(ctx context.Context, branch *org.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) UpdateSubtreePaths(ctx context.Context, oldPath, newPath string, levelDelta int) error {
	args := m.Called(ctx, oldPath, newPath, levelDelta)
	return args.Error(0)
}

func (m *MockBranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBranchRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBranchRepository) CountChildren(ctx context.Context, parentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBranchRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockQuoteCache is a mock implementation of QuoteCache
type MockQuoteCache struct {
	mock.Mock
}

func (m *MockQuoteCache) GetQuote(ctx context.Context, key string) (*QuoteResponse, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*QuoteResponse), args.Error(1)
}

func (m *MockQuoteCache) SetQuote(ctx context.Context, key string, quote *QuoteResponse, ttl time.Duration) error {
	args := m.Called(ctx, key, quote, ttl)
	return args.Error(0)
}
