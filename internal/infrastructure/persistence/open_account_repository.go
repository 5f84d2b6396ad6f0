package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/ordering"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOpenAccountRepository implements OpenAccountRepository using GORM
type GormOpenAccountRepository struct {
	db *gorm.DB
}

// NewGormOpenAccountRepository creates a new GormOpenAccountRepository
func NewGormOpenAccountRepository(db *gorm.DB) *GormOpenAccountRepository {
	return &GormOpenAccountRepository{db: db}
}

// FindByID finds a tab by its ID
func (r *GormOpenAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.OpenAccount, error) {
	var account ordering.OpenAccount
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindAll finds all tabs matching the filter
func (r *GormOpenAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.OpenAccount, error) {
	var accounts []ordering.OpenAccount
	query := r.applyFilter(r.db.WithContext(ctx).Model(&ordering.OpenAccount{}), filter)

	if err := query.Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// FindOpen finds all open tabs
func (r *GormOpenAccountRepository) FindOpen(ctx context.Context, filter shared.Filter) ([]ordering.OpenAccount, error) {
	var accounts []ordering.OpenAccount
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&ordering.OpenAccount{}).
			Where("status = ?", ordering.OpenAccountStatusOpen),
		filter,
	)

	if err := query.Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// Save creates or updates a tab
func (r *GormOpenAccountRepository) Save(ctx context.Context, account *ordering.OpenAccount) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// Count counts tabs matching the filter
func (r *GormOpenAccountRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&ordering.OpenAccount{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOpenAccountRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, OpenAccountSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormOpenAccountRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

// Ensure GormOpenAccountRepository implements OpenAccountRepository
var _ ordering.OpenAccountRepository = (*GormOpenAccountRepository)(nil)
