package table

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

func (r *GormRepository) FindByComercial(ctx context.Context, idComercial int) ([]domain.Table, error) {
	var tables []domain.Table
	err := r.db.WithContext(ctx).
		Where("idComercial = ?", idComercial).
		Find(&tables).Error
	if err != nil {
		return nil, fmt.Errorf("querying tables: %w", err)
	}
	return tables, nil
}

func (r *GormRepository) FindAvailableByComercial(ctx context.Context, idComercial int) ([]domain.Table, error) {
	var tables []domain.Table
	err := r.db.WithContext(ctx).
		Where("idComercial = ? AND disponible = ?", idComercial, true).
		Find(&tables).Error
	if err != nil {
		return nil, fmt.Errorf("querying available tables: %w", err)
	}
	return tables, nil
}

func (r *GormRepository) FindByID(ctx context.Context, id int) (*domain.Table, error) {
	var t domain.Table
	err := r.db.WithContext(ctx).
		Where("idMesa = ?", id).
		First(&t).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("table with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying table by id: %w", err)
	}

	return &t, nil
}

func (r *GormRepository) Insert(ctx context.Context, t *domain.Table) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("inserting table: %w", err)
	}
	return nil
}

// Update patches the given columns of one table row.
func (r *GormRepository) Update(ctx context.Context, id int, values map[string]interface{}) (*domain.Table, error) {
	t, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Model(t).
		Updates(values).Error
	if err != nil {
		return nil, fmt.Errorf("updating table: %w", err)
	}

	return r.FindByID(ctx, id)
}
