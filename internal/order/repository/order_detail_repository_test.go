package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"comanda/internal/domain"
	"comanda/internal/errors"
	"comanda/internal/testutil"
)

func seedTwoOrders(t *testing.T, db *gorm.DB, repo *GormOrderRepository) (uint, uint) {
	t.Helper()
	seedComercialAndCatalog(t, db)

	first := newOrder(1, false, false)
	require.NoError(t, repo.Insert(context.Background(), first))
	second := newOrder(1, false, false)
	require.NoError(t, repo.Insert(context.Background(), second))

	return first.IDOrden, second.IDOrden
}

func TestOrderDetailRepository_DeleteScopedToOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	orderRepo := NewGormOrderRepository(db)
	repo := NewGormOrderDetailRepository(db)
	ctx := context.Background()

	firstID, secondID := seedTwoOrders(t, db, orderRepo)

	require.NoError(t, repo.BulkInsert(ctx, []domain.OrderDetail{
		{IDOrden: firstID, IDMenuItem: 5, Cantidad: 1, Importe: 5},
		{IDOrden: firstID, IDMenuItem: 7, Cantidad: 1, Importe: 7},
		{IDOrden: secondID, IDMenuItem: 5, Cantidad: 1, Importe: 5},
	}))

	require.NoError(t, repo.DeleteByOrderAndMenuItems(ctx, firstID, []int{5}))

	var remaining []domain.OrderDetail
	require.NoError(t, db.Order("idOrderDetail").Find(&remaining).Error)

	require.Len(t, remaining, 2)
	assert.Equal(t, firstID, remaining[0].IDOrden)
	assert.Equal(t, 7, remaining[0].IDMenuItem)
	// Same menu item under another order is untouched.
	assert.Equal(t, secondID, remaining[1].IDOrden)
	assert.Equal(t, 5, remaining[1].IDMenuItem)
}

func TestOrderDetailRepository_UpdateForcesDoneFalse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	orderRepo := NewGormOrderRepository(db)
	repo := NewGormOrderDetailRepository(db)
	ctx := context.Background()

	firstID, _ := seedTwoOrders(t, db, orderRepo)

	require.NoError(t, repo.BulkInsert(ctx, []domain.OrderDetail{
		{IDOrden: firstID, IDMenuItem: 3, Cantidad: 1, Importe: 9.5, Done: true},
	}))

	values := map[string]interface{}{"cantidad": 2, "done": false}
	require.NoError(t, repo.UpdateByOrderAndMenuItem(ctx, firstID, 3, values))

	var got domain.OrderDetail
	require.NoError(t, db.Where("idOrden = ? AND id_menu_item = ?", firstID, 3).First(&got).Error)
	assert.Equal(t, 2, got.Cantidad)
	assert.False(t, got.Done)
}

func TestOrderDetailRepository_UpdateMissingRowIsSkipped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	orderRepo := NewGormOrderRepository(db)
	repo := NewGormOrderDetailRepository(db)

	firstID, _ := seedTwoOrders(t, db, orderRepo)

	err := repo.UpdateByOrderAndMenuItem(context.Background(), firstID, 99, map[string]interface{}{"done": false})
	assert.NoError(t, err)
}

func TestOrderDetailRepository_SetDone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	orderRepo := NewGormOrderRepository(db)
	repo := NewGormOrderDetailRepository(db)
	ctx := context.Background()

	firstID, _ := seedTwoOrders(t, db, orderRepo)

	details := []domain.OrderDetail{{IDOrden: firstID, IDMenuItem: 3, Cantidad: 1, Importe: 9.5}}
	require.NoError(t, repo.BulkInsert(ctx, details))

	require.NoError(t, repo.SetDone(ctx, details[0].IDOrderDetail, true))

	var got domain.OrderDetail
	require.NoError(t, db.First(&got, "idOrderDetail = ?", details[0].IDOrderDetail).Error)
	assert.True(t, got.Done)
}

func TestOrderDetailRepository_SetDone_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewGormOrderDetailRepository(db)

	err := repo.SetDone(context.Background(), 9999, true)
	require.Error(t, err)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}
