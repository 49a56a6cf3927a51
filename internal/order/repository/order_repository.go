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

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// withRelations preloads the full join shape every read endpoint returns:
// details with their menu item, the employee and the table.
func (r *GormOrderRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Details.MenuItem").
		Preload("Employee").
		Preload("Table")
}

func (r *GormOrderRepository) FindUndoneByComercial(ctx context.Context, idComercial int) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.withRelations(r.db.WithContext(ctx)).
		Where("done = ? AND idComercial = ?", false, idComercial).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("querying undone orders: %w", err)
	}
	return orders, nil
}

func (r *GormOrderRepository) FindDoneWithoutPaying(ctx context.Context, idComercial int) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.withRelations(r.db.WithContext(ctx)).
		Where("done = ? AND pagado = ? AND idComercial = ?", true, false, idComercial).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("querying unpaid orders: %w", err)
	}
	return orders, nil
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	var order domain.Order
	err := r.withRelations(r.db.WithContext(ctx)).
		Where("idOrden = ?", id).
		First(&order).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return &order, nil
}

// FindHeaderByID fetches the order row alone, without its relations.
func (r *GormOrderRepository) FindHeaderByID(ctx context.Context, id uint) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Where("idOrden = ?", id).
		First(&order).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order header by id: %w", err)
	}

	return &order, nil
}

// Insert writes the order header only; detail rows are bulk-inserted
// afterwards carrying the generated idOrden.
func (r *GormOrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(order).Error
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}
	return nil
}

// UpdateHeader applies the given column values to one order. The map form
// forces writes of zero values (done=false, pagado=false).
func (r *GormOrderRepository) UpdateHeader(ctx context.Context, id uint, values map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("idOrden = ?", id).
		Updates(values)
	if result.Error != nil {
		return fmt.Errorf("updating order header: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	return nil
}
