package menuitem

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"comanda/internal/domain"
	apperrors "comanda/internal/errors"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) FindByComercial(ctx context.Context, idComercial int) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	err := r.db.WithContext(ctx).
		Where("idComercial = ?", idComercial).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("querying menu items: %w", err)
	}
	return items, nil
}

func (r *GormRepository) Exists(ctx context.Context, id int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.MenuItem{}).
		Where("id_menu_item = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking menu item existence: %w", err)
	}
	return count > 0, nil
}

// UpdateDisponibilidad flips a menu item's availability and returns the
// updated row.
func (r *GormRepository) UpdateDisponibilidad(ctx context.Context, id int, disponible bool) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.db.WithContext(ctx).
		Where("id_menu_item = ?", id).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("menu item with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying menu item by id: %w", err)
	}

	err = r.db.WithContext(ctx).
		Model(&item).
		Update("disponibilidad", disponible).Error
	if err != nil {
		return nil, fmt.Errorf("updating menu item availability: %w", err)
	}

	item.Disponibilidad = disponible
	return &item, nil
}
