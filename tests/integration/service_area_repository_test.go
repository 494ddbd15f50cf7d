//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logistics-erp/hrm/internal/domain/coverage"
	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
	"github.com/logistics-erp/hrm/internal/infrastructure/persistence/mongodb"
	"github.com/logistics-erp/hrm/tests/testutil"
)

// squareArea builds a closed [lng, lat] ring covering the given bounds.
func squareArea(t *testing.T, code, name string, minLng, minLat, maxLng, maxLat float64) *coverage.ServiceArea {
	t.Helper()
	polygon, err := coverage.NewPolygon([][]float64{
		{minLng, minLat},
		{maxLng, minLat},
		{maxLng, maxLat},
		{minLng, maxLat},
		{minLng, minLat},
	})
	require.NoError(t, err)
	area, err := coverage.NewServiceArea(code, name, polygon, []coverage.ServiceType{coverage.ServiceTypeStandard})
	require.NoError(t, err)
	return area
}

func TestServiceAreaRepository_SaveAndFind(t *testing.T) {
	db := testutil.MongoDatabase(t)
	repo := mongodb.NewServiceAreaRepository(db)
	ctx := context.Background()

	area := squareArea(t, "BKK-CENTRAL", "Central Bangkok", 100.50, 13.70, 100.55, 13.75)
	require.NoError(t, repo.Save(ctx, area))

	found, err := repo.FindByID(ctx, area.ID)
	require.NoError(t, err)
	assert.Equal(t, "BKK-CENTRAL", found.Code)
	assert.Equal(t, coverage.AreaStatusActive, found.Status)
	assert.Equal(t, []coverage.ServiceType{coverage.ServiceTypeStandard}, found.ServiceTypes)

	byCode, err := repo.FindByCode(ctx, "BKK-CENTRAL")
	require.NoError(t, err)
	assert.Equal(t, area.ID, byCode.ID)

	exists, err := repo.ExistsByCode(ctx, "BKK-CENTRAL")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.FindByCode(ctx, "BKK-NOWHERE")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestServiceAreaRepository_FindContaining(t *testing.T) {
	db := testutil.MongoDatabase(t)
	repo := mongodb.NewServiceAreaRepository(db)
	ctx := context.Background()

	central := squareArea(t, "BKK-CENTRAL", "Central Bangkok", 100.50, 13.70, 100.55, 13.75)
	north := squareArea(t, "BKK-NORTH", "North Bangkok", 100.50, 13.80, 100.60, 13.90)
	require.NoError(t, repo.Save(ctx, central))
	require.NoError(t, repo.Save(ctx, north))

	inside, err := valueobject.NewGeoPoint(13.72, 100.52)
	require.NoError(t, err)
	areas, err := repo.FindContaining(ctx, inside)
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, "BKK-CENTRAL", areas[0].Code)

	outside, err := valueobject.NewGeoPoint(13.78, 100.52)
	require.NoError(t, err)
	areas, err = repo.FindContaining(ctx, outside)
	require.NoError(t, err)
	assert.Empty(t, areas)
}

func TestServiceAreaRepository_FindNear(t *testing.T) {
	db := testutil.MongoDatabase(t)
	repo := mongodb.NewServiceAreaRepository(db)
	ctx := context.Background()

	central := squareArea(t, "BKK-CENTRAL", "Central Bangkok", 100.50, 13.70, 100.55, 13.75)
	north := squareArea(t, "BKK-NORTH", "North Bangkok", 100.50, 13.80, 100.60, 13.90)
	require.NoError(t, repo.Save(ctx, central))
	require.NoError(t, repo.Save(ctx, north))

	// Just south of the central area boundary.
	point, err := valueobject.NewGeoPoint(13.69, 100.52)
	require.NoError(t, err)

	// ~10km reaches the central polygon but not the northern one.
	areas, err := repo.FindNear(ctx, point, 10_000, 5)
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, "BKK-CENTRAL", areas[0].Code)

	areas, err = repo.FindNear(ctx, point, 50_000, 5)
	require.NoError(t, err)
	require.Len(t, areas, 2)
	assert.Equal(t, "BKK-CENTRAL", areas[0].Code)
	assert.Equal(t, "BKK-NORTH", areas[1].Code)
}
