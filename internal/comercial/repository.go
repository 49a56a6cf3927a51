package comercial

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"comanda/internal/domain"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Exists(ctx context.Context, id int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Comercial{}).
		Where("idComercial = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking comercial existence: %w", err)
	}
	return count > 0, nil
}
