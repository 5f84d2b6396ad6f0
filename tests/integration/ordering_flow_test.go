package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderingapp "github.com/ldipasquale/terzo-posto-server/internal/application/ordering"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/menu"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/ordering"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared/valueobject"
	"github.com/ldipasquale/terzo-posto-server/internal/infrastructure/persistence"
)

// orderingFixture wires the ordering services against a real database,
// the same way cmd/server does.
type orderingFixture struct {
	db        *TestDB
	orders    *orderingapp.OrderService
	accounts  *orderingapp.OpenAccountService
	orderRepo *persistence.GormOrderRepository
	menuRepo  *persistence.GormMenuItemRepository
}

func newOrderingFixture(t *testing.T) *orderingFixture {
	t.Helper()

	db := NewSharedTestDB(t)
	db.CleanTables()

	orderRepo := persistence.NewGormOrderRepository(db.DB)
	accountRepo := persistence.NewGormOpenAccountRepository(db.DB)
	menuRepo := persistence.NewGormMenuItemRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)

	return &orderingFixture{
		db:        db,
		orders:    orderingapp.NewOrderService(scope, orderRepo, accountRepo, menuRepo, nil),
		accounts:  orderingapp.NewOpenAccountService(scope, accountRepo, orderRepo, nil),
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
	}
}

func (f *orderingFixture) seedMenuItem(t *testing.T, name string, price int64) *menu.MenuItem {
	t.Helper()

	item, err := menu.NewMenuItem(name, valueobject.NewMoneyMXN(decimal.NewFromInt(price)), nil)
	require.NoError(t, err)
	require.NoError(t, f.menuRepo.Save(context.Background(), item))
	return item
}

func (f *orderingFixture) placeOrder(t *testing.T, item *menu.MenuItem, qty int64, accountID *uuid.UUID) *orderingapp.OrderResponse {
	t.Helper()

	resp, err := f.orders.Create(context.Background(), orderingapp.CreateOrderRequest{
		Items: []orderingapp.OrderItemRequest{
			{MenuItemID: item.ID, Quantity: decimal.NewFromInt(qty)},
		},
		OpenAccountID: accountID,
	})
	require.NoError(t, err)
	return resp
}

func TestOrderSequencingIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	f := newOrderingFixture(t)
	ctx := context.Background()

	t.Run("numbers are sequential from one", func(t *testing.T) {
		f.db.CleanTables()
		taco := f.seedMenuItem(t, "Taco al Pastor", 45)

		first := f.placeOrder(t, taco, 2, nil)
		second := f.placeOrder(t, taco, 1, nil)

		assert.Equal(t, "#1", first.Number)
		assert.Equal(t, "#2", second.Number)
		assert.True(t, first.Total.Equal(decimal.NewFromInt(90)))
	})

	t.Run("counter continues past existing orders", func(t *testing.T) {
		f.db.CleanTables()
		taco := f.seedMenuItem(t, "Taco al Pastor", 45)

		// Orders saved outside the service, as a restored backup
		// would leave them.
		item, err := ordering.NewOrderItem(taco.ID, taco.Name, decimal.NewFromInt(45), decimal.NewFromInt(1))
		require.NoError(t, err)
		restored, err := ordering.NewOrder("#7", []ordering.OrderItem{item}, nil)
		require.NoError(t, err)
		require.NoError(t, f.orderRepo.Save(ctx, restored))

		next := f.placeOrder(t, taco, 1, nil)
		assert.Equal(t, "#8", next.Number)
	})

	t.Run("persisted order round trips with items", func(t *testing.T) {
		f.db.CleanTables()
		taco := f.seedMenuItem(t, "Taco al Pastor", 45)

		placed := f.placeOrder(t, taco, 3, nil)

		found, err := f.orders.GetByID(ctx, placed.ID)
		require.NoError(t, err)
		assert.Equal(t, placed.Number, found.Number)
		assert.Equal(t, "pending", found.Status)
		require.Len(t, found.Items, 1)
		assert.Equal(t, taco.ID, found.Items[0].MenuItemID)
		assert.True(t, found.Items[0].Amount.Equal(decimal.NewFromInt(135)))
	})
}

func TestOpenAccountCloseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	f := newOrderingFixture(t)
	ctx := context.Background()

	t.Run("close settles orders and allocates discount", func(t *testing.T) {
		f.db.CleanTables()
		taco := f.seedMenuItem(t, "Taco al Pastor", 100)
		agua := f.seedMenuItem(t, "Agua de Jamaica", 60)

		account, err := f.accounts.Create(ctx, orderingapp.CreateOpenAccountRequest{Name: "Mesa 4"})
		require.NoError(t, err)

		f.placeOrder(t, taco, 1, &account.ID)
		f.placeOrder(t, agua, 1, &account.ID)

		discount := decimal.NewFromInt(40)
		closed, err := f.accounts.Close(ctx, account.ID, orderingapp.CloseAccountRequest{
			Discount:      &discount,
			Reason:        "regular",
			PaymentMethod: "cash",
		})
		require.NoError(t, err)

		assert.Equal(t, "closed", closed.Account.Status)
		assert.NotNil(t, closed.Account.ClosedAt)
		assert.True(t, closed.DiscountApplied.Equal(discount))
		require.Len(t, closed.Orders, 2)

		total := decimal.Zero
		allocated := decimal.Zero
		for _, order := range closed.Orders {
			assert.Equal(t, "paid", order.Status)
			assert.Equal(t, "cash", order.PaymentMethod)
			total = total.Add(order.Total)
			allocated = allocated.Add(order.Discount)
		}
		assert.True(t, allocated.Equal(discount))
		assert.True(t, total.Equal(decimal.NewFromInt(120)))

		// The settlement must be visible in the database too.
		persisted, err := f.orderRepo.FindByOpenAccount(ctx, account.ID)
		require.NoError(t, err)
		require.Len(t, persisted, 2)
		for _, order := range persisted {
			assert.Equal(t, ordering.OrderStatusPaid, order.Status)
		}
	})

	t.Run("closed account rejects new orders", func(t *testing.T) {
		f.db.CleanTables()
		taco := f.seedMenuItem(t, "Taco al Pastor", 100)

		account, err := f.accounts.Create(ctx, orderingapp.CreateOpenAccountRequest{Name: "Mesa 2"})
		require.NoError(t, err)
		f.placeOrder(t, taco, 1, &account.ID)

		_, err = f.accounts.Close(ctx, account.ID, orderingapp.CloseAccountRequest{PaymentMethod: "card"})
		require.NoError(t, err)

		_, err = f.orders.Create(ctx, orderingapp.CreateOrderRequest{
			Items: []orderingapp.OrderItemRequest{
				{MenuItemID: taco.ID, Quantity: decimal.NewFromInt(1)},
			},
			OpenAccountID: &account.ID,
		})
		assert.ErrorIs(t, err, shared.ErrAccountClosed)

		order := f.placeOrder(t, taco, 1, nil)
		_, err = f.accounts.AttachOrder(ctx, account.ID, orderingapp.AttachOrderRequest{OrderID: order.ID})
		assert.ErrorIs(t, err, shared.ErrAccountClosed)
	})

	t.Run("closing twice fails", func(t *testing.T) {
		f.db.CleanTables()

		account, err := f.accounts.Create(ctx, orderingapp.CreateOpenAccountRequest{Name: "Barra"})
		require.NoError(t, err)

		_, err = f.accounts.Close(ctx, account.ID, orderingapp.CloseAccountRequest{PaymentMethod: "transfer"})
		require.NoError(t, err)

		_, err = f.accounts.Close(ctx, account.ID, orderingapp.CloseAccountRequest{PaymentMethod: "transfer"})
		assert.ErrorIs(t, err, shared.ErrAccountClosed)
	})
}
