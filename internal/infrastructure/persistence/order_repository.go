package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/ordering"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID, items included
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByNumber finds an order by its display number
func (r *GormOrderRepository) FindByNumber(ctx context.Context, number string) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all orders matching the filter, newest first by default
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Order, error) {
	var orders []ordering.Order
	query := r.applyFilter(r.db.WithContext(ctx).Model(&ordering.Order{}), filter).
		Preload("Items")

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByOpenAccount finds all orders attached to a tab, newest first
func (r *GormOrderRepository) FindByOpenAccount(ctx context.Context, openAccountID uuid.UUID) ([]*ordering.Order, error) {
	var orders []*ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("open_account_id = ?", openAccountID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order and its items
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
}

// SaveBatch persists multiple orders in one call
func (r *GormOrderRepository) SaveBatch(ctx context.Context, orders []*ordering.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(orders).Error
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&ordering.Order{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MaxNumberSuffix returns the largest numeric suffix among existing
// order numbers, 0 when there are none
func (r *GormOrderRepository) MaxNumberSuffix(ctx context.Context) (int64, error) {
	var max int64
	if err := r.db.WithContext(ctx).Raw(
		`SELECT COALESCE(MAX(CAST(SUBSTRING(number FROM 2) AS BIGINT)), 0) FROM orders WHERE number LIKE '#%'`,
	).Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("number ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "payment_method":
			query = query.Where("payment_method = ?", value)
		case "open_account_id":
			if value == nil {
				query = query.Where("open_account_id IS NULL")
			} else {
				query = query.Where("open_account_id = ?", value)
			}
		}
	}
	return query
}

// Ensure GormOrderRepository implements OrderRepository
var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
