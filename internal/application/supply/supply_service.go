package supply

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/menu"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared/valueobject"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/supply"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SupplyService handles supply catalog operations. Writes run inside a
// transaction scope: the candidate is validated against a snapshot
// taken in the same transaction that persists it, so two concurrent
// recipe edits cannot jointly commit a cycle. Every write invalidates
// the cost cache.
type SupplyService struct {
	scope      TransactionScope
	supplyRepo supply.SupplyRepository
	menuRepo   menu.MenuItemRepository
	costCache  supply.CostCache
	logger     *zap.Logger
}

// NewSupplyService creates a new SupplyService
func NewSupplyService(
	scope TransactionScope,
	supplyRepo supply.SupplyRepository,
	menuRepo menu.MenuItemRepository,
	costCache supply.CostCache,
	logger *zap.Logger,
) *SupplyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupplyService{
		scope:      scope,
		supplyRepo: supplyRepo,
		menuRepo:   menuRepo,
		costCache:  costCache,
		logger:     logger,
	}
}

// Create creates a new supply
func (s *SupplyService) Create(ctx context.Context, req CreateSupplyRequest) (*SupplyResponse, error) {
	candidate, err := buildSupply(req)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.Supplies().ExistsByName(ctx, req.Name)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "Supply with this name already exists")
		}

		graph, err := snapshotGraph(ctx, repos.Supplies())
		if err != nil {
			return err
		}
		if err := supply.ValidateSupply(candidate, graph); err != nil {
			return err
		}
		return repos.Supplies().Save(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateCosts(ctx)

	s.logger.Info("supply created",
		zap.String("supply_id", candidate.ID.String()),
		zap.String("name", candidate.Name),
		zap.String("kind", string(candidate.Kind)))

	return ToSupplyResponse(candidate), nil
}

// Update updates an existing supply. The whole read-mutate-validate-save
// sequence runs inside the transaction scope so the validation snapshot
// reflects every previously committed write.
func (s *SupplyService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplyRequest) (*SupplyResponse, error) {
	var existing *supply.Supply
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		existing, err = repos.Supplies().FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil && *req.Name != existing.Name {
			taken, err := repos.Supplies().ExistsByName(ctx, *req.Name)
			if err != nil {
				return err
			}
			if taken {
				return shared.NewDomainError("ALREADY_EXISTS", "Supply with this name already exists")
			}
			if err := existing.Rename(*req.Name); err != nil {
				return err
			}
		}

		if err := applyUpdate(existing, req); err != nil {
			return err
		}

		graph, err := snapshotGraph(ctx, repos.Supplies())
		if err != nil {
			return err
		}
		if err := supply.ValidateSupply(existing, graph); err != nil {
			return err
		}
		return repos.Supplies().Save(ctx, existing)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateCosts(ctx)

	s.logger.Info("supply updated", zap.String("supply_id", id.String()))

	return ToSupplyResponse(existing), nil
}

// Delete deletes a supply. Deletion is refused while any other
// supply's recipe or any menu item still references it.
func (s *SupplyService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.supplyRepo.FindByID(ctx, id); err != nil {
		return err
	}

	refs, err := s.supplyRepo.CountReferencedBy(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return shared.ErrSupplyInUse
	}

	menuRefs, err := s.menuRepo.CountReferencingSupply(ctx, id)
	if err != nil {
		return err
	}
	if menuRefs > 0 {
		return shared.ErrSupplyInUse
	}

	if err := s.supplyRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCosts(ctx)

	s.logger.Info("supply deleted", zap.String("supply_id", id.String()))
	return nil
}

// GetByID retrieves a supply by its ID
func (s *SupplyService) GetByID(ctx context.Context, id uuid.UUID) (*SupplyResponse, error) {
	found, err := s.supplyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSupplyResponse(found), nil
}

// List retrieves supplies matching the filter
func (s *SupplyService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[SupplyResponse], error) {
	supplies, err := s.supplyRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.supplyRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]SupplyResponse, 0, len(supplies))
	for i := range supplies {
		items = append(items, *ToSupplyResponse(&supplies[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetCost resolves the per-unit cost of one supply against a fresh
// snapshot. A cycle through the supply is reported as status circular,
// not as an error.
func (s *SupplyService) GetCost(ctx context.Context, id uuid.UUID) (*CostResponse, error) {
	graph, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if !graph.Contains(id) {
		return nil, shared.ErrNotFound
	}

	cost, err := supply.Resolve(graph, id)
	if err != nil {
		if errors.Is(err, shared.ErrCircularReference) {
			resp := ToCostResponse(id, supply.UnknownCost(), true)
			return &resp, nil
		}
		return nil, err
	}

	resp := ToCostResponse(id, cost, false)
	return &resp, nil
}

// GetAllCosts resolves the cost of every supply in the catalog,
// serving from the cost cache when a snapshot is already there.
func (s *SupplyService) GetAllCosts(ctx context.Context) ([]CostResponse, error) {
	if costs, ok := s.cachedCosts(ctx); ok {
		return toCostResponses(costs), nil
	}

	graph, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	costs := supply.ResolveAll(graph)

	if s.costCache != nil {
		if err := s.costCache.Set(ctx, costs, 0); err != nil {
			s.logger.Warn("cost cache set failed", zap.Error(err))
		}
	}
	return toCostResponses(costs), nil
}

func (s *SupplyService) snapshot(ctx context.Context) (supply.CostGraph, error) {
	return snapshotGraph(ctx, s.supplyRepo)
}

func snapshotGraph(ctx context.Context, repo supply.SupplyRepository) (supply.CostGraph, error) {
	supplies, err := repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return supply.NewCostGraph(supplies), nil
}

func (s *SupplyService) cachedCosts(ctx context.Context) (map[uuid.UUID]supply.UnitCost, bool) {
	if s.costCache == nil {
		return nil, false
	}
	costs, ok, err := s.costCache.Get(ctx)
	if err != nil {
		s.logger.Warn("cost cache get failed", zap.Error(err))
		return nil, false
	}
	return costs, ok
}

func (s *SupplyService) invalidateCosts(ctx context.Context) {
	if s.costCache == nil {
		return
	}
	if err := s.costCache.Invalidate(ctx); err != nil {
		s.logger.Warn("cost cache invalidation failed", zap.Error(err))
	}
}

func toCostResponses(costs map[uuid.UUID]supply.UnitCost) []CostResponse {
	responses := make([]CostResponse, 0, len(costs))
	for id, cost := range costs {
		responses = append(responses, ToCostResponse(id, cost, false))
	}
	return responses
}

func buildSupply(req CreateSupplyRequest) (*supply.Supply, error) {
	switch supply.SupplyKind(req.Kind) {
	case supply.SupplyKindPurchased:
		unit, err := valueobject.NewUnit(req.Unit)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_UNIT", err.Error())
		}
		if req.PurchaseQuantity == nil {
			return nil, shared.NewDomainError("INVALID_PURCHASE_QUANTITY", "Purchase quantity is required")
		}
		created, err := supply.NewPurchasedSupply(req.Name, unit, derefDecimal(req.PurchasePrice), *req.PurchaseQuantity)
		if err != nil {
			return nil, err
		}
		if req.PurchasePrice == nil {
			created.PurchasePrice = nil
		}
		return created, nil

	case supply.SupplyKindComposed:
		yieldUnit, err := valueobject.NewUnit(req.YieldUnit)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_YIELD_UNIT", err.Error())
		}
		if req.YieldAmount == nil {
			return nil, shared.NewDomainError("INVALID_YIELD", "Yield amount is required")
		}
		return supply.NewComposedSupply(req.Name, toRecipeLines(req.RecipeLines), *req.YieldAmount, yieldUnit)

	default:
		return nil, shared.NewDomainError("INVALID_KIND", "Supply kind must be purchased or composed")
	}
}

func applyUpdate(existing *supply.Supply, req UpdateSupplyRequest) error {
	if existing.IsPurchased() {
		if req.Unit != nil {
			unit, err := valueobject.NewUnit(*req.Unit)
			if err != nil {
				return shared.NewDomainError("INVALID_UNIT", err.Error())
			}
			existing.Unit = unit
		}
		if req.PurchasePrice != nil || req.PurchaseQuantity != nil {
			price := derefDecimal(req.PurchasePrice)
			if req.PurchasePrice == nil && existing.PurchasePrice != nil {
				price = *existing.PurchasePrice
			}
			quantity := derefDecimal(req.PurchaseQuantity)
			if req.PurchaseQuantity == nil && existing.PurchaseQuantity != nil {
				quantity = *existing.PurchaseQuantity
			}
			if err := existing.SetPurchaseTerms(price, quantity); err != nil {
				return err
			}
		}
		return nil
	}

	if req.RecipeLines != nil {
		existing.SetRecipeLines(toRecipeLines(req.RecipeLines))
	}
	if req.YieldAmount != nil || req.YieldUnit != nil {
		amount := derefDecimal(req.YieldAmount)
		if req.YieldAmount == nil && existing.YieldAmount != nil {
			amount = *existing.YieldAmount
		}
		unit := existing.YieldUnit
		if req.YieldUnit != nil {
			parsed, err := valueobject.NewUnit(*req.YieldUnit)
			if err != nil {
				return shared.NewDomainError("INVALID_YIELD_UNIT", err.Error())
			}
			unit = parsed
		}
		if err := existing.SetYield(amount, unit); err != nil {
			return err
		}
	}
	return nil
}

func toRecipeLines(reqs []RecipeLineRequest) []supply.RecipeLine {
	lines := make([]supply.RecipeLine, 0, len(reqs))
	for _, r := range reqs {
		lines = append(lines, supply.RecipeLine{
			IngredientID: r.IngredientID,
			Quantity:     r.Quantity,
		})
	}
	return lines
}

func derefDecimal(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
