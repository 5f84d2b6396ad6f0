package menu

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/menu"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared/valueobject"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/supply"
	"go.uber.org/zap"
)

// MenuItemService handles menu item operations. Ingredient references
// are checked against the supply catalog on every write so a menu item
// never points at a supply that was never there.
type MenuItemService struct {
	menuRepo   menu.MenuItemRepository
	supplyRepo supply.SupplyRepository
	logger     *zap.Logger
}

// NewMenuItemService creates a new MenuItemService
func NewMenuItemService(
	menuRepo menu.MenuItemRepository,
	supplyRepo supply.SupplyRepository,
	logger *zap.Logger,
) *MenuItemService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MenuItemService{
		menuRepo:   menuRepo,
		supplyRepo: supplyRepo,
		logger:     logger,
	}
}

// Create creates a new menu item
func (s *MenuItemService) Create(ctx context.Context, req CreateMenuItemRequest) (*MenuItemResponse, error) {
	exists, err := s.menuRepo.ExistsByName(ctx, req.Name, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Menu item with this name already exists")
	}

	if err := s.checkIngredients(ctx, req.Ingredients); err != nil {
		return nil, err
	}

	item, err := menu.NewMenuItem(req.Name, valueobject.NewMoneyMXN(req.SellingPrice), toIngredientLines(req.Ingredients))
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := item.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}

	if err := s.menuRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("menu item created",
		zap.String("menu_item_id", item.ID.String()),
		zap.String("name", item.Name))

	return ToMenuItemResponse(item), nil
}

// Update updates an existing menu item
func (s *MenuItemService) Update(ctx context.Context, id uuid.UUID, req UpdateMenuItemRequest) (*MenuItemResponse, error) {
	item, err := s.menuRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := item.Name
		if req.Name != nil {
			name = *req.Name
		}
		description := item.Description
		if req.Description != nil {
			description = *req.Description
		}
		if req.Name != nil && *req.Name != item.Name {
			taken, err := s.menuRepo.ExistsByName(ctx, *req.Name, &id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "Menu item with this name already exists")
			}
		}
		if err := item.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.SellingPrice != nil {
		if err := item.SetSellingPrice(valueobject.NewMoneyMXN(*req.SellingPrice)); err != nil {
			return nil, err
		}
	}

	if req.Ingredients != nil {
		if err := s.checkIngredients(ctx, req.Ingredients); err != nil {
			return nil, err
		}
		item.SetIngredients(toIngredientLines(req.Ingredients))
	}

	if req.Active != nil {
		if *req.Active {
			item.Activate()
		} else {
			item.Deactivate()
		}
	}

	if err := s.menuRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("menu item updated", zap.String("menu_item_id", id.String()))

	return ToMenuItemResponse(item), nil
}

// Delete deletes a menu item
func (s *MenuItemService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.menuRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.menuRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("menu item deleted", zap.String("menu_item_id", id.String()))
	return nil
}

// GetByID retrieves a menu item by its ID
func (s *MenuItemService) GetByID(ctx context.Context, id uuid.UUID) (*MenuItemResponse, error) {
	item, err := s.menuRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToMenuItemResponse(item), nil
}

// List retrieves menu items matching the filter
func (s *MenuItemService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[MenuItemResponse], error) {
	items, err := s.menuRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.menuRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]MenuItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, *ToMenuItemResponse(&items[i]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetCost computes the ingredient cost and margin of a menu item
// against a fresh supply snapshot
func (s *MenuItemService) GetCost(ctx context.Context, id uuid.UUID) (*MenuItemCostResponse, error) {
	item, err := s.menuRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	supplies, err := s.supplyRepo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	graph := supply.NewCostGraph(supplies)

	return ToMenuItemCostResponse(item, menu.CostMenuItem(item, graph)), nil
}

// checkIngredients verifies that every referenced supply exists
func (s *MenuItemService) checkIngredients(ctx context.Context, lines []IngredientLineRequest) error {
	for _, line := range lines {
		if _, err := s.supplyRepo.FindByID(ctx, line.SupplyID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_INGREDIENT", "Ingredient supply not found")
			}
			return err
		}
	}
	return nil
}

func toIngredientLines(reqs []IngredientLineRequest) []menu.IngredientLine {
	lines := make([]menu.IngredientLine, 0, len(reqs))
	for _, r := range reqs {
		lines = append(lines, menu.IngredientLine{
			SupplyID: r.SupplyID,
			Quantity: r.Quantity,
		})
	}
	return lines
}
