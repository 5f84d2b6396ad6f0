package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/menu"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMenuItemRepository implements MenuItemRepository using GORM
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewGormMenuItemRepository creates a new GormMenuItemRepository
func NewGormMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

// FindByID finds a menu item by its ID, ingredients included
func (r *GormMenuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.MenuItem, error) {
	var item menu.MenuItem
	if err := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll finds all menu items matching the filter
func (r *GormMenuItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]menu.MenuItem, error) {
	var items []menu.MenuItem
	query := r.applyFilter(r.db.WithContext(ctx).Model(&menu.MenuItem{}), filter).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindActive finds all active menu items
func (r *GormMenuItemRepository) FindActive(ctx context.Context, filter shared.Filter) ([]menu.MenuItem, error) {
	var items []menu.MenuItem
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&menu.MenuItem{}).
			Where("status = ?", menu.MenuItemStatusActive),
		filter,
	).Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates a menu item. Ingredient lines are replaced
// wholesale so removed ingredients do not linger.
func (r *GormMenuItemRepository) Save(ctx context.Context, item *menu.MenuItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_item_id = ?", item.ID).Delete(&menu.IngredientLine{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(item).Error
	})
}

// Delete deletes a menu item
func (r *GormMenuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&menu.MenuItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts menu items matching the filter
func (r *GormMenuItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&menu.MenuItem{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks whether a menu item with the given name exists,
// optionally excluding one ID
func (r *GormMenuItemRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&menu.MenuItem{}).
		Where("name = ?", name)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountReferencingSupply counts menu items whose recipe uses the given supply
func (r *GormMenuItemRepository) CountReferencingSupply(ctx context.Context, supplyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&menu.IngredientLine{}).
		Where("supply_id = ?", supplyID).
		Distinct("menu_item_id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormMenuItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, MenuItemSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if orderBy == "name" && filter.OrderBy == "" {
		orderDir = "ASC"
	}
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormMenuItemRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "min_price":
			query = query.Where("selling_price >= ?", value)
		case "max_price":
			query = query.Where("selling_price <= ?", value)
		}
	}
	return query
}

// Ensure GormMenuItemRepository implements MenuItemRepository
var _ menu.MenuItemRepository = (*GormMenuItemRepository)(nil)
