package table

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comanda/internal/domain"
	"comanda/internal/errors"
	"comanda/internal/testutil"
)

func TestGormRepository_FindAvailableByComercial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewGormRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &domain.Table{IDComercial: 1, Numero: 1, Disponible: true}))
	require.NoError(t, repo.Insert(ctx, &domain.Table{IDComercial: 1, Numero: 2, Disponible: false}))
	require.NoError(t, repo.Insert(ctx, &domain.Table{IDComercial: 2, Numero: 1, Disponible: true}))

	tables, err := repo.FindAvailableByComercial(ctx, 1)
	require.NoError(t, err)

	require.Len(t, tables, 1)
	assert.Equal(t, 1, tables[0].Numero)
	assert.True(t, tables[0].Disponible)
}

func TestGormRepository_UpdateFlipsAvailability(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewGormRepository(db)
	ctx := context.Background()

	mesa := &domain.Table{IDComercial: 1, Numero: 3, Disponible: true}
	require.NoError(t, repo.Insert(ctx, mesa))

	updated, err := repo.Update(ctx, mesa.IDMesa, map[string]interface{}{"disponible": false})
	require.NoError(t, err)
	assert.False(t, updated.Disponible)
	assert.Equal(t, 3, updated.Numero)

	got, err := repo.FindByID(ctx, mesa.IDMesa)
	require.NoError(t, err)
	assert.False(t, got.Disponible)
}

func TestGormRepository_FindByIDNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewGormRepository(db)

	_, err := repo.FindByID(context.Background(), 9999)
	require.Error(t, err)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}
