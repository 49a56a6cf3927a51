package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"comanda/internal/domain"
	apperrors "comanda/internal/errors"
)

type GormOrderDetailRepository struct {
	db *gorm.DB
}

func NewGormOrderDetailRepository(db *gorm.DB) *GormOrderDetailRepository {
	return &GormOrderDetailRepository{db: db}
}

func (r *GormOrderDetailRepository) BulkInsert(ctx context.Context, details []domain.OrderDetail) error {
	if len(details) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(&details).Error
	if err != nil {
		return fmt.Errorf("inserting order details: %w", err)
	}
	return nil
}

// DeleteByOrderAndMenuItems removes the detail rows of one order matching any
// of the given menu item ids. Rows of other orders are never touched.
func (r *GormOrderDetailRepository) DeleteByOrderAndMenuItems(ctx context.Context, orderID uint, menuItemIDs []int) error {
	if len(menuItemIDs) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).
		Where("idOrden = ? AND id_menu_item IN ?", orderID, menuItemIDs).
		Delete(&domain.OrderDetail{}).Error
	if err != nil {
		return fmt.Errorf("deleting order details: %w", err)
	}
	return nil
}

// UpdateByOrderAndMenuItem patches the detail row identified by order id plus
// menu item id. Callers always include done=false in values: an edited line
// goes back to the kitchen.
func (r *GormOrderDetailRepository) UpdateByOrderAndMenuItem(ctx context.Context, orderID uint, menuItemID int, values map[string]interface{}) error {
	var detail domain.OrderDetail
	err := r.db.WithContext(ctx).
		Where("idOrden = ? AND id_menu_item = ?", orderID, menuItemID).
		First(&detail).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Mirrors the lookup-then-update flow: a missing row is skipped,
		// not an error.
		return nil
	}
	if err != nil {
		return fmt.Errorf("querying order detail: %w", err)
	}

	err = r.db.WithContext(ctx).
		Model(&detail).
		Updates(values).Error
	if err != nil {
		return fmt.Errorf("updating order detail: %w", err)
	}
	return nil
}

// SetDone flips the item-level completion flag of a single detail row.
func (r *GormOrderDetailRepository) SetDone(ctx context.Context, id uint, done bool) error {
	var detail domain.OrderDetail
	err := r.db.WithContext(ctx).
		Where("idOrderDetail = ?", id).
		First(&detail).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFoundError(fmt.Sprintf("order detail with id %d not found", id))
	}
	if err != nil {
		return fmt.Errorf("querying order detail by id: %w", err)
	}

	err = r.db.WithContext(ctx).
		Model(&detail).
		Update("done", done).Error
	if err != nil {
		return fmt.Errorf("updating order detail done flag: %w", err)
	}
	return nil
}
