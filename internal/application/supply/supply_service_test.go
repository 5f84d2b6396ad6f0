package supply

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/menu"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared/valueobject"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/supply"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSupplyRepository is a mock implementation of SupplyRepository
type MockSupplyRepository struct {
	mock.Mock
}

func (m *MockSupplyRepository) FindByID(ctx context.Context, id uuid.UUID) (*supply.Supply, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supply.Supply), args.Error(1)
}

func (m *MockSupplyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]supply.Supply, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]supply.Supply), args.Error(1)
}

func (m *MockSupplyRepository) Snapshot(ctx context.Context) ([]supply.Supply, error) {
	args := m.Called(ctx)
	return args.Get(0).([]supply.Supply), args.Error(1)
}

func (m *MockSupplyRepository) Save(ctx context.Context, s *supply.Supply) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSupplyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupplyRepository) CountReferencedBy(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockMenuItemRepository is a mock implementation of MenuItemRepository
type MockMenuItemRepository struct {
	mock.Mock
}

func (m *MockMenuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]menu.MenuItem, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]menu.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) FindActive(ctx context.Context, filter shared.Filter) ([]menu.MenuItem, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]menu.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) Save(ctx context.Context, item *menu.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMenuItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMenuItemRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMenuItemRepository) CountReferencingSupply(ctx context.Context, supplyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, supplyID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCostCache is a mock implementation of CostCache
type MockCostCache struct {
	mock.Mock
}

func (m *MockCostCache) Get(ctx context.Context) (map[uuid.UUID]supply.UnitCost, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(map[uuid.UUID]supply.UnitCost), args.Bool(1), args.Error(2)
}

func (m *MockCostCache) Set(ctx context.Context, costs map[uuid.UUID]supply.UnitCost, ttl time.Duration) error {
	args := m.Called(ctx, costs, ttl)
	return args.Error(0)
}

func (m *MockCostCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func purchasedSupply(name, price, quantity string) *supply.Supply {
	s, err := supply.NewPurchasedSupply(name, valueobject.MustNewUnit("KG"), dec(price), dec(quantity))
	if err != nil {
		panic(err)
	}
	return s
}

func composedSupply(name string, ingredientID uuid.UUID) *supply.Supply {
	s, err := supply.NewComposedSupply(name,
		[]supply.RecipeLine{{IngredientID: ingredientID, Quantity: dec("1")}},
		dec("1"), valueobject.MustNewUnit("KG"))
	if err != nil {
		panic(err)
	}
	return s
}

func newService(supplyRepo *MockSupplyRepository, menuRepo *MockMenuItemRepository, cache *MockCostCache) *SupplyService {
	var costCache supply.CostCache
	if cache != nil {
		costCache = cache
	}
	return NewSupplyService(NewNoOpTransactionScope(supplyRepo), supplyRepo, menuRepo, costCache, nil)
}

func TestSupplyService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates purchased supply and invalidates cost cache", func(t *testing.T) {
		supplyRepo := new(MockSupplyRepository)
		cache := new(MockCostCache)
		service := newService(supplyRepo, new(MockMenuItemRepository), cache)

		supplyRepo.On("ExistsByName", ctx, "Harina").Return(false, nil)
		supplyRepo.On("Snapshot", ctx).Return([]supply.Supply{}, nil)
		supplyRepo.On("Save", ctx, mock.AnythingOfType("*supply.Supply")).Return(nil)
		cache.On("Invalidate", ctx).Return(nil)

		resp, err := service.Create(ctx, CreateSupplyRequest{
			Name:             "Harina",
			Kind:             "purchased",
			Unit:             "KG",
			PurchasePrice:    decPtr("45.50"),
			PurchaseQuantity: decPtr("2"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Harina", resp.Name)
		assert.Equal(t, "purchased", resp.Kind)
		supplyRepo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		supplyRepo := new(MockSupplyRepository)
		service := newService(supplyRepo, new(MockMenuItemRepository), nil)

		supplyRepo.On("ExistsByName", ctx, "Harina").Return(true, nil)

		_, err := service.Create(ctx, CreateSupplyRequest{Name: "Harina", Kind: "purchased", Unit: "KG", PurchaseQuantity: decPtr("1")})

		assert.Error(t, err)
		supplyRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("creates composed supply validated against the snapshot", func(t *testing.T) {
		base := purchasedSupply("Harina", "10", "1")
		eater := composedSupply("Masa", base.ID)

		supplyRepo := new(MockSupplyRepository)
		cache := new(MockCostCache)
		service := newService(supplyRepo, new(MockMenuItemRepository), cache)

		supplyRepo.On("ExistsByName", ctx, "Relleno").Return(false, nil)
		supplyRepo.On("Snapshot", ctx).Return([]supply.Supply{*base, *eater}, nil)
		supplyRepo.On("Save", ctx, mock.AnythingOfType("*supply.Supply")).Return(nil)
		cache.On("Invalidate", ctx).Return(nil)

		resp, err := service.Create(ctx, CreateSupplyRequest{
			Name:        "Relleno",
			Kind:        "composed",
			RecipeLines: []RecipeLineRequest{{IngredientID: eater.ID, Quantity: dec("2")}},
			YieldAmount: decPtr("4"),
			YieldUnit:   "KG",
		})

		require.NoError(t, err)
		assert.Equal(t, "composed", resp.Kind)
	})

	t.Run("propagates validation failures", func(t *testing.T) {
		supplyRepo := new(MockSupplyRepository)
		service := newService(supplyRepo, new(MockMenuItemRepository), nil)

		supplyRepo.On("ExistsByName", ctx, "Masa").Return(false, nil)
		supplyRepo.On("Snapshot", ctx).Return([]supply.Supply{}, nil)

		_, err := service.Create(ctx, CreateSupplyRequest{
			Name:        "Masa",
			Kind:        "composed",
			YieldAmount: decPtr("4"),
			YieldUnit:   "KG",
		})

		assert.Error(t, err, "empty recipe")
		supplyRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSupplyService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an edit that closes a cycle", func(t *testing.T) {
		base := purchasedSupply("Harina", "10", "1")
		a := composedSupply("Masa", base.ID)
		b := composedSupply("Relleno", a.ID)

		supplyRepo := new(MockSupplyRepository)
		service := newService(supplyRepo, new(MockMenuItemRepository), nil)

		supplyRepo.On("FindByID", ctx, a.ID).Return(a, nil)
		supplyRepo.On("Snapshot", ctx).Return([]supply.Supply{*base, *a, *b}, nil)

		_, err := service.Update(ctx, a.ID, UpdateSupplyRequest{
			RecipeLines: []RecipeLineRequest{{IngredientID: b.ID, Quantity: dec("1")}},
		})

		assert.ErrorIs(t, err, shared.ErrCircularReference)
		supplyRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("validates against the transaction snapshot", func(t *testing.T) {
		base := purchasedSupply("Harina", "10", "1")
		a := composedSupply("Masa", base.ID)
		// Committed by another writer after the service was handed
		// its ambient repository.
		b := composedSupply("Relleno", a.ID)

		txRepo := new(MockSupplyRepository)
		ambient := new(MockSupplyRepository)
		service := NewSupplyService(NewNoOpTransactionScope(txRepo), ambient, new(MockMenuItemRepository), nil, nil)

		txRepo.On("FindByID", ctx, a.ID).Return(a, nil)
		txRepo.On("Snapshot", ctx).Return([]supply.Supply{*base, *a, *b}, nil)

		_, err := service.Update(ctx, a.ID, UpdateSupplyRequest{
			RecipeLines: []RecipeLineRequest{{IngredientID: b.ID, Quantity: dec("1")}},
		})

		assert.ErrorIs(t, err, shared.ErrCircularReference)
		txRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		ambient.AssertNotCalled(t, "Snapshot", mock.Anything)
	})

	t.Run("updates purchase terms", func(t *testing.T) {
		s := purchasedSupply("Harina", "10", "1")

		supplyRepo := new(MockSupplyRepository)
		cache := new(MockCostCache)
		service := newService(supplyRepo, new(MockMenuItemRepository), cache)

		supplyRepo.On("FindByID", ctx, s.ID).Return(s, nil)
		supplyRepo.On("Snapshot", ctx).Return([]supply.Supply{*s}, nil)
		supplyRepo.On("Save", ctx, s).Return(nil)
		cache.On("Invalidate", ctx).Return(nil)

		resp, err := service.Update(ctx, s.ID, UpdateSupplyRequest{
			PurchasePrice: decPtr("12.50"),
		})

		require.NoError(t, err)
		require.NotNil(t, resp.PurchasePrice)
		assert.True(t, resp.PurchasePrice.Equal(dec("12.50")))
		assert.True(t, resp.PurchaseQuantity.Equal(dec("1")), "quantity untouched")
	})
}

func TestSupplyService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses while another recipe references it", func(t *testing.T) {
		s := purchasedSupply("Harina", "10", "1")

		supplyRepo := new(MockSupplyRepository)
		service := newService(supplyRepo, new(MockMenuItemRepository), nil)

		supplyRepo.On("FindByID", ctx, s.ID).Return(s, nil)
		supplyRepo.On("CountReferencedBy", ctx, s.ID).Return(int64(2), nil)

		err := service.Delete(ctx, s.ID)

		assert.ErrorIs(t, err, shared.ErrSupplyInUse)
		supplyRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("refuses while a menu item references it", func(t *testing.T) {
		s := purchasedSupply("Harina", "10", "1")

		supplyRepo := new(MockSupplyRepository)
		menuRepo := new(MockMenuItemRepository)
		service := newService(supplyRepo, menuRepo, nil)

		supplyRepo.On("FindByID", ctx, s.ID).Return(s, nil)
		supplyRepo.On("CountReferencedBy", ctx, s.ID).Return(int64(0), nil)
		menuRepo.On("CountReferencingSupply", ctx, s.ID).Return(int64(1), nil)

		err := service.Delete(ctx, s.ID)

		assert.ErrorIs(t, err, shared.ErrSupplyInUse)
	})

	t.Run("deletes unreferenced supplies", func(t *testing.T) {
		s := purchasedSupply("Harina", "10", "1")

		supplyRepo := new(MockSupplyRepository)
		menuRepo := new(MockMenuItemRepository)
		cache := new(MockCostCache)
		service := newService(supplyRepo, menuRepo, cache)

		supplyRepo.On("FindByID", ctx, s.ID).Return(s, nil)
		supplyRepo.On("CountReferencedBy", ctx, s.ID).Return(int64(0), nil)
		menuRepo.On("CountReferencingSupply", ctx, s.ID).Return(int64(0), nil)
		supplyRepo.On("Delete", ctx, s.ID).Return(nil)
		cache.On("Invalidate", ctx).Return(nil)

		require.NoError(t, service.Delete(ctx, s.ID))
		supplyRepo.AssertExpectations(t)
	})
}

func TestSupplyService_GetCost(t *testing.T) {
	ctx := context.Background()

	t.Run("known cost renders with two decimals", func(t *testing.T) {
		base := purchasedSupply("Mantequilla", "5", "1")
		a, err := supply.NewComposedSupply("Masa",
			[]supply.RecipeLine{{IngredientID: base.ID, Quantity: dec("2")}},
			dec("10"), valueobject.MustNewUnit("KG"))
		require.NoError(t, err)

		supplyRepo := new(MockSupplyRepository)
		service := newService(supplyRepo, new(MockMenuItemRepository), nil)
		supplyRepo.On("Snapshot", ctx).Return([]supply.Supply{*base, *a}, nil)

		resp, err := service.GetCost(ctx, a.ID)

		require.NoError(t, err)
		assert.Equal(t, CostStatusKnown, resp.Status)
		require.NotNil(t, resp.Cost)
		assert.Equal(t, "1.00", *resp.Cost)
	})

	t.Run("cycle reports circular with null cost", func(t *testing.T) {
		a := composedSupply("A", uuid.New())
		b := composedSupply("B", a.ID)
		a.SetRecipeLines([]supply.RecipeLine{{IngredientID: b.ID, Quantity: dec("1")}})

		supplyRepo := new(MockSupplyRepository)
		service := newService(supplyRepo, new(MockMenuItemRepository), nil)
		supplyRepo.On("Snapshot", ctx).Return([]supply.Supply{*a, *b}, nil)

		resp, err := service.GetCost(ctx, a.ID)

		require.NoError(t, err)
		assert.Equal(t, CostStatusCircular, resp.Status)
		assert.Nil(t, resp.Cost)
	})

	t.Run("unknown supply id is not found", func(t *testing.T) {
		supplyRepo := new(MockSupplyRepository)
		service := newService(supplyRepo, new(MockMenuItemRepository), nil)
		supplyRepo.On("Snapshot", ctx).Return([]supply.Supply{}, nil)

		_, err := service.GetCost(ctx, uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestSupplyService_GetAllCosts(t *testing.T) {
	ctx := context.Background()

	t.Run("serves from cache on a hit", func(t *testing.T) {
		id := uuid.New()
		cached := map[uuid.UUID]supply.UnitCost{id: supply.KnownCost(dec("3.5"))}

		supplyRepo := new(MockSupplyRepository)
		cache := new(MockCostCache)
		service := newService(supplyRepo, new(MockMenuItemRepository), cache)
		cache.On("Get", ctx).Return(cached, true, nil)

		costs, err := service.GetAllCosts(ctx)

		require.NoError(t, err)
		require.Len(t, costs, 1)
		assert.Equal(t, "3.50", *costs[0].Cost)
		supplyRepo.AssertNotCalled(t, "Snapshot", mock.Anything)
	})

	t.Run("resolves and fills the cache on a miss", func(t *testing.T) {
		base := purchasedSupply("Harina", "10", "4")

		supplyRepo := new(MockSupplyRepository)
		cache := new(MockCostCache)
		service := newService(supplyRepo, new(MockMenuItemRepository), cache)

		cache.On("Get", ctx).Return(nil, false, nil)
		supplyRepo.On("Snapshot", ctx).Return([]supply.Supply{*base}, nil)
		cache.On("Set", ctx, mock.Anything, time.Duration(0)).Return(nil)

		costs, err := service.GetAllCosts(ctx)

		require.NoError(t, err)
		require.Len(t, costs, 1)
		assert.Equal(t, CostStatusKnown, costs[0].Status)
		assert.Equal(t, "2.50", *costs[0].Cost)
		cache.AssertExpectations(t)
	})
}
