package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/supply"
	"gorm.io/gorm"
)

// GormSupplyRepository implements SupplyRepository using GORM
type GormSupplyRepository struct {
	db *gorm.DB
}

// NewGormSupplyRepository creates a new GormSupplyRepository
func NewGormSupplyRepository(db *gorm.DB) *GormSupplyRepository {
	return &GormSupplyRepository{db: db}
}

// FindByID finds a supply by its ID, recipe lines included
func (r *GormSupplyRepository) FindByID(ctx context.Context, id uuid.UUID) (*supply.Supply, error) {
	var s supply.Supply
	if err := r.db.WithContext(ctx).
		Preload("RecipeLines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindAll finds all supplies matching the filter
func (r *GormSupplyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]supply.Supply, error) {
	var supplies []supply.Supply
	query := r.applyFilter(r.db.WithContext(ctx).Model(&supply.Supply{}), filter).
		Preload("RecipeLines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})

	if err := query.Find(&supplies).Error; err != nil {
		return nil, err
	}
	return supplies, nil
}

// Snapshot loads the entire catalog with recipe lines in one pass
func (r *GormSupplyRepository) Snapshot(ctx context.Context) ([]supply.Supply, error) {
	var supplies []supply.Supply
	if err := r.db.WithContext(ctx).
		Preload("RecipeLines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Find(&supplies).Error; err != nil {
		return nil, err
	}
	return supplies, nil
}

// Save creates or updates a supply. Recipe lines are replaced wholesale
// so removed ingredients do not linger.
func (r *GormSupplyRepository) Save(ctx context.Context, s *supply.Supply) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("supply_id = ?", s.ID).Delete(&supply.RecipeLine{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(s).Error
	})
}

// Delete deletes a supply
func (r *GormSupplyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&supply.Supply{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts supplies matching the filter
func (r *GormSupplyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&supply.Supply{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks whether a supply with the given name exists
func (r *GormSupplyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&supply.Supply{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountReferencedBy counts supplies whose recipe uses the given supply
func (r *GormSupplyRepository) CountReferencedBy(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&supply.RecipeLine{}).
		Where("ingredient_id = ?", id).
		Distinct("supply_id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSupplyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, SupplySortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if orderBy == "name" && filter.OrderBy == "" {
		orderDir = "ASC"
	}
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormSupplyRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "kind":
			query = query.Where("kind = ?", value)
		case "unit":
			query = query.Where("unit = ?", value)
		}
	}
	return query
}

// Ensure GormSupplyRepository implements SupplyRepository
var _ supply.SupplyRepository = (*GormSupplyRepository)(nil)
