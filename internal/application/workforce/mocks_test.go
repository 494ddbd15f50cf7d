package workforce

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/logistics-erp/hrm/internal/domain/org"
	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
	"github.com/logistics-erp/hrm/internal/domain/workforce"
	"github.com/stretchr/testify/mock"
)

// MockEmployeeRepository is a mock implementation of workforce.EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByEmployeeNo(ctx context.Context, employeeNo string) (*workforce.Employee, error) {
	args := m.Called(ctx, employeeNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]workforce.Employee, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, employee *workforce.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) ExistsByNationalID(ctx context.Context, nationalID string) (bool, error) {
	args := m.Called(ctx, nationalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) NextEmployeeSequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) CountByAssignment(ctx context.Context, branchID, divisionID, positionID uuid.UUID) (int64, error) {
	args := m.Called(ctx, branchID, divisionID, positionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) CountByStatus(ctx context.Context) ([]workforce.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.StatusCount), args.Error(1)
}

func (m *MockEmployeeRepository) CountByBranch(ctx context.Context) ([]workforce.BranchCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.BranchCount), args.Error(1)
}

// MockHistoryRepository is a mock implementation of workforce.HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Append(ctx context.Context, records ...*workforce.HistoryRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockHistoryRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID, filter shared.Filter) ([]workforce.HistoryRecord, error) {
	args := m.Called(ctx, employeeID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.HistoryRecord), args.Error(1)
}

func (m *MockHistoryRepository) CountByEmployee(ctx context.Context, employeeID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, employeeID, filter)
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

// MockDivisionRepository is a mock implementation of org.DivisionRepository
type MockDivisionRepository struct {
	mock.Mock
}

func (m *MockDivisionRepository) FindByID(ctx context.Context, id uuid.UUID) (*org.Division, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*org.Division), args.Error(1)
}

func (m *MockDivisionRepository) FindByCode(ctx context.Context, code string) (*org.Division, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*org.Division), args.Error(1)
}

func (m *MockDivisionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]org.Division, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]org.Division), args.Error(1)
}

func (m *MockDivisionRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]org.Division, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]org.Division), args.Error(1)
}

func (m *MockDivisionRepository) FindRoots(ctx context.Context) ([]org.Division, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]org.Division), args.Error(1)
}

func (m *MockDivisionRepository) FindDescendants(ctx context.Context, divisionID uuid.UUID) ([]org.Division, error) {
	args := m.Called(ctx, divisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]org.Division), args.Error(1)
}

func (m *MockDivisionRepository) Save(ctx context.Context, division *org.Division) error {
	args := m.Called(ctx, division)
	return args.Error(0)
}

func (m *MockDivisionRepository) UpdateSubtreePaths(ctx context.Context, oldPath, newPath string, levelDelta int) error {
	args := m.Called(ctx, oldPath, newPath, levelDelta)
	return args.Error(0)
}

func (m *MockDivisionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDivisionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDivisionRepository) CountChildren(ctx context.Context, parentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDivisionRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockPositionRepository is a mock implementation of org.PositionRepository
type MockPositionRepository struct {
	mock.Mock
}

func (m *MockPositionRepository) FindByID(ctx context.Context, id uuid.UUID) (*org.Position, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*org.Position), args.Error(1)
}

func (m *MockPositionRepository) FindByCode(ctx context.Context, code string) (*org.Position, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*org.Position), args.Error(1)
}

func (m *MockPositionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]org.Position, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]org.Position), args.Error(1)
}

func (m *MockPositionRepository) FindByDivision(ctx context.Context, divisionID uuid.UUID) ([]org.Position, error) {
	args := m.Called(ctx, divisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]org.Position), args.Error(1)
}

func (m *MockPositionRepository) FindDirectReports(ctx context.Context, positionID uuid.UUID) ([]org.Position, error) {
	args := m.Called(ctx, positionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]org.Position), args.Error(1)
}

func (m *MockPositionRepository) FindDescendants(ctx context.Context, positionID uuid.UUID) ([]org.Position, error) {
	args := m.Called(ctx, positionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]org.Position), args.Error(1)
}

func (m *MockPositionRepository) Save(ctx context.Context, position *org.Position) error {
	args := m.Called(ctx, position)
	return args.Error(0)
}

func (m *MockPositionRepository) UpdateSubtreePaths(ctx context.Context, oldPath, newPath string, levelDelta int) error {
	args := m.Called(ctx, oldPath, newPath, levelDelta)
	return args.Error(0)
}

func (m *MockPositionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPositionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPositionRepository) CountDirectReports(ctx context.Context, positionID uuid.UUID) (int64, error) {
	args := m.Called(ctx, positionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPositionRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockObjectStorage is a mock implementation of ObjectStorageService
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}
