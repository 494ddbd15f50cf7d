package org

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/logistics-erp/hrm/internal/domain/org"
	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBranchService(branchRepo *MockBranchRepository, employeeRepo *MockEmployeeRepository) *BranchService {
	return NewBranchService(branchRepo, employeeRepo, zap.NewNop())
}

func makeBranch(t *testing.T, code string) *org.Branch {
	t.Helper()
	branch, err := org.NewBranch(code, "Branch "+code, org.BranchTypeDepot, org.Address{City: "Jakarta"})
	require.NoError(t, err)
	return branch
}

func makeChildBranch(t *testing.T, code string, parent *org.Branch) *org.Branch {
	t.Helper()
	branch, err := org.NewChildBranch(code, "Branch "+code, org.BranchTypeStation, org.Address{}, parent)
	require.NoError(t, err)
	return branch
}

func TestBranchService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates root branch", func(t *testing.T) {
		branchRepo := new(MockBranchRepository)
		employeeRepo := new(MockEmployeeRepository)
		service := newBranchService(branchRepo, employeeRepo)

		branchRepo.On("ExistsByCode", ctx, "JKT-HUB").Return(false, nil)
		branchRepo.On("Save", ctx, mock.AnythingOfType("*org.Branch")).Return(nil)

		resp, err := service.Create(ctx, CreateBranchRequest{
			Code: "JKT-HUB",
			Name: "Jakarta Hub",
			Type: "hub",
			Address: AddressInput{
				City:     "Jakarta",
				Location: &GeoPointInput{Lat: -6.2, Lng: 106.8},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "JKT-HUB", resp.Code)
		assert.Equal(t, 0, resp.Level)
		assert.Equal(t, resp.ID.String(), resp.Path)
		require.NotNil(t, resp.Address.Location)
		assert.InDelta(t, -6.2, resp.Address.Location.Lat, 1e-9)
		branchRepo.AssertExpectations(t)
	})

	t.Run("creates child branch under parent", func(t *testing.T) {
		branchRepo := new(MockBranchRepository)
		employeeRepo := new(MockEmployeeRepository)
		service := newBranchService(branchRepo, employeeRepo)

		parent := makeBranch(t, "JKT-HUB")
		branchRepo.On("ExistsByCode", ctx, "JKT-01").Return(false, nil)
		branchRepo.On("FindByID", ctx, parent.ID).Return(parent, nil)
		branchRepo.On("Save", ctx, mock.AnythingOfType("*org.Branch")).Return(nil)

		resp, err := service.Create(ctx, CreateBranchRequest{
			Code:     "JKT-01",
			Name:     "Jakarta Station 1",
			Type:     "station",
			ParentID: &parent.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, resp.Level)
		assert.Equal(t, parent.Path+"/"+resp.ID.String(), resp.Path)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		branchRepo := new(MockBranchRepository)
		employeeRepo := new(MockEmployeeRepository)
		service := newBranchService(branchRepo, employeeRepo)

		branchRepo.On("ExistsByCode", ctx, "JKT-HUB").Return(true, nil)

		_, err := service.Create(ctx, CreateBranchRequest{Code: "JKT-HUB", Name: "Dup", Type: "hub"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("rejects missing parent", func(t *testing.T) {
		branchRepo := new(MockBranchRepository)
		employeeRepo := new(MockEmployeeRepository)
		service := newBranchService(branchRepo, employeeRepo)

		missing := uuid.New()
		branchRepo.On("ExistsByCode", ctx, "JKT-01").Return(false, nil)
		branchRepo.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, CreateBranchRequest{
			Code: "JKT-01", Name: "Orphan", Type: "station", ParentID: &missing,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PARENT", domainErr.Code)
	})
}

func TestBranchService_Transfer(t *testing.T) {
	ctx := context.Background()

	t.Run("re-paths the whole subtree", func(t *testing.T) {
		branchRepo := new(MockBranchRepository)
		employeeRepo := new(MockEmployeeRepository)
		service := newBranchService(branchRepo, employeeRepo)

		oldParent := makeBranch(t, "HUB-A")
		newParent := makeBranch(t, "HUB-B")
		moved := makeChildBranch(t, "DEPOT-1", oldParent)
		oldPath := moved.Path

		branchRepo.On("FindByID", ctx, moved.ID).Return(moved, nil)
		branchRepo.On("FindByID", ctx, newParent.ID).Return(newParent, nil)
		branchRepo.On("Save", ctx, moved).Return(nil)
		branchRepo.On("UpdateSubtreePaths", ctx, oldPath, newParent.Path+"/"+moved.ID.String(), 0).Return(nil)

		resp, err := service.Transfer(ctx, moved.ID, TransferRequest{NewParentID: &newParent.ID})

		require.NoError(t, err)
		assert.Equal(t, newParent.Path+"/"+moved.ID.String(), resp.Path)
		assert.Equal(t, 1, resp.Level)
		branchRepo.AssertExpectations(t)
	})

	t.Run("moves to root when parent is nil", func(t *testing.T) {
		branchRepo := new(MockBranchRepository)
		employeeRepo := new(MockEmployeeRepository)
		service := newBranchService(branchRepo, employeeRepo)

		parent := makeBranch(t, "HUB-A")
		moved := makeChildBranch(t, "DEPOT-1", parent)
		oldPath := moved.Path

		branchRepo.On("FindByID", ctx, moved.ID).Return(moved, nil)
		branchRepo.On("Save", ctx, moved).Return(nil)
		branchRepo.On("UpdateSubtreePaths", ctx, oldPath, moved.ID.String(), -1).Return(nil)

		resp, err := service.Transfer(ctx, moved.ID, TransferRequest{})

		require.NoError(t, err)
		assert.Equal(t, 0, resp.Level)
		assert.Nil(t, resp.ParentID)
	})

	t.Run("rejects transfer to itself", func(t *testing.T) {
		branchRepo := new(MockBranchRepository)
		employeeRepo := new(MockEmployeeRepository)
		service := newBranchService(branchRepo, employeeRepo)

		branch := makeBranch(t, "HUB-A")
		branchRepo.On("FindByID", ctx, branch.ID).Return(branch, nil)

		_, err := service.Transfer(ctx, branch.ID, TransferRequest{NewParentID: &branch.ID})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CIRCULAR_REFERENCE", domainErr.Code)
	})

	t.Run("rejects transfer under own descendant", func(t *testing.T) {
		branchRepo := new(MockBranchRepository)
		employeeRepo := new(MockEmployeeRepository)
		service := newBranchService(branchRepo, employeeRepo)

		root := makeBranch(t, "HUB-A")
		child := makeChildBranch(t, "DEPOT-1", root)

		branchRepo.On("FindByID", ctx, root.ID).Return(root, nil)
		branchRepo.On("FindByID", ctx, child.ID).Return(child, nil)

		_, err := service.Transfer(ctx, root.ID, TransferRequest{NewParentID: &child.ID})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CIRCULAR_REFERENCE", domainErr.Code)
		branchRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestBranchService_ChangeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("soft closes an active branch", func(t *testing.T) {
		branchRepo := new(MockBranchRepository)
		employeeRepo := new(MockEmployeeRepository)
		service := newBranchService(branchRepo, employeeRepo)

		branch := makeBranch(t, "JKT-01")
		branchRepo.On("FindByID", ctx, branch.ID).Return(branch, nil)
		branchRepo.On("Save", ctx, branch).Return(nil)

		resp, err := service.ChangeStatus(ctx, branch.ID, ChangeStatusRequest{Status: "closed"})

		require.NoError(t, err)
		assert.Equal(t, "closed", resp.Status)
	})

	t.Run("closed branch cannot reopen", func(t *testing.T) {
		branchRepo := new(MockBranchRepository)
		employeeRepo := new(MockEmployeeRepository)
		service := newBranchService(branchRepo, employeeRepo)

		branch := makeBranch(t, "JKT-01")
		require.NoError(t, branch.ChangeStatus(org.BranchStatusClosed))
		branchRepo.On("FindByID", ctx, branch.ID).Return(branch, nil)

		_, err := service.ChangeStatus(ctx, branch.ID, ChangeStatusRequest{Status: "active"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestBranchService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes a leaf branch without employees", func(t *testing.T) {
		branchRepo := new(MockBranchRepository)
		employeeRepo := new(MockEmployeeRepository)
		service := newBranchService(branchRepo, employeeRepo)

		branch := makeBranch(t, "JKT-01")
		branchRepo.On("FindByID", ctx, branch.ID).Return(branch, nil)
		branchRepo.On("CountChildren", ctx, branch.ID).Return(int64(0), nil)
		employeeRepo.On("CountByAssignment", ctx, branch.ID, uuid.Nil, uuid.Nil).Return(int64(0), nil)
		branchRepo.On("Delete", ctx, branch.ID).Return(nil)

		err := service.Delete(ctx, branch.ID)

		require.NoError(t, err)
		branchRepo.AssertExpectations(t)
	})

	t.Run("blocks delete when branch has children", func(t *testing.T) {
		branchRepo := new(MockBranchRepository)
		employeeRepo := new(MockEmployeeRepository)
		service := newBranchService(branchRepo, employeeRepo)

		branch := makeBranch(t, "JKT-HUB")
		branchRepo.On("FindByID", ctx, branch.ID).Return(branch, nil)
		branchRepo.On("CountChildren", ctx, branch.ID).Return(int64(3), nil)

		err := service.Delete(ctx, branch.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "HAS_CHILDREN", domainErr.Code)
		branchRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("blocks delete when employees are assigned", func(t *testing.T) {
		branchRepo := new(MockBranchRepository)
		employeeRepo := new(MockEmployeeRepository)
		service := newBranchService(branchRepo, employeeRepo)

		branch := makeBranch(t, "JKT-01")
		branchRepo.On("FindByID", ctx, branch.ID).Return(branch, nil)
		branchRepo.On("CountChildren", ctx, branch.ID).Return(int64(0), nil)
		employeeRepo.On("CountByAssignment", ctx, branch.ID, uuid.Nil, uuid.Nil).Return(int64(12), nil)

		err := service.Delete(ctx, branch.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "IN_USE", domainErr.Code)
	})
}

func TestBranchService_FindNearest(t *testing.T) {
	ctx := context.Background()

	branchRepo := new(MockBranchRepository)
	employeeRepo := new(MockEmployeeRepository)
	service := newBranchService(branchRepo, employeeRepo)

	near, err := org.NewBranch("JKT-01", "Near", org.BranchTypeStation, org.Address{})
	require.NoError(t, err)
	branchRepo.On("FindNearest", ctx, mock.Anything, 5).Return([]org.Branch{*near}, nil)

	items, err := service.FindNearest(ctx, NearestBranchesQuery{Lat: -6.2, Lng: 106.8})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "JKT-01", items[0].Code)
}
