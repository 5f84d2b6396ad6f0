package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderingapp "github.com/ldipasquale/terzo-posto-server/internal/application/ordering"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/menu"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/ordering"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared/valueobject"
	"github.com/ldipasquale/terzo-posto-server/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockOrderRepository mocks ordering.OrderRepository
type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *mockOrderRepository) FindByNumber(ctx context.Context, number string) (*ordering.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *mockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *mockOrderRepository) FindByOpenAccount(ctx context.Context, openAccountID uuid.UUID) ([]*ordering.Order, error) {
	args := m.Called(ctx, openAccountID)
	return args.Get(0).([]*ordering.Order), args.Error(1)
}

func (m *mockOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) SaveBatch(ctx context.Context, orders []*ordering.Order) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}

func (m *mockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepository) MaxNumberSuffix(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// mockOrderCounterRepository mocks ordering.OrderCounterRepository
type mockOrderCounterRepository struct {
	mock.Mock
}

func (m *mockOrderCounterRepository) Next(ctx context.Context, seed int64) (int64, error) {
	args := m.Called(ctx, seed)
	return args.Get(0).(int64), args.Error(1)
}

// mockOpenAccountRepository mocks ordering.OpenAccountRepository
type mockOpenAccountRepository struct {
	mock.Mock
}

func (m *mockOpenAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.OpenAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.OpenAccount), args.Error(1)
}

func (m *mockOpenAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.OpenAccount, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ordering.OpenAccount), args.Error(1)
}

func (m *mockOpenAccountRepository) FindOpen(ctx context.Context, filter shared.Filter) ([]ordering.OpenAccount, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ordering.OpenAccount), args.Error(1)
}

func (m *mockOpenAccountRepository) Save(ctx context.Context, account *ordering.OpenAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *mockOpenAccountRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type orderTestDeps struct {
	orderRepo   *mockOrderRepository
	counterRepo *mockOrderCounterRepository
	accountRepo *mockOpenAccountRepository
	menuRepo    *mockMenuItemRepository
}

func newOrderTestRouter(t *testing.T) (*gin.Engine, orderTestDeps) {
	t.Helper()
	deps := orderTestDeps{
		orderRepo:   new(mockOrderRepository),
		counterRepo: new(mockOrderCounterRepository),
		accountRepo: new(mockOpenAccountRepository),
		menuRepo:    new(mockMenuItemRepository),
	}
	scope := orderingapp.NewNoOpTransactionScope(deps.orderRepo, deps.counterRepo, deps.accountRepo)
	service := orderingapp.NewOrderService(scope, deps.orderRepo, deps.accountRepo, deps.menuRepo, nil)
	h := NewOrderHandler(service)

	engine := gin.New()
	engine.POST("/orders", h.Create)
	engine.GET("/orders", h.List)
	engine.GET("/orders/:id", h.GetByID)
	return engine, deps
}

func newTestMenuItem(t *testing.T, name string, price int64) *menu.MenuItem {
	t.Helper()
	item, err := menu.NewMenuItem(name, valueobject.NewMoneyMXN(decimal.NewFromInt(price)), nil)
	require.NoError(t, err)
	return item
}

func TestOrderHandlerCreate(t *testing.T) {
	engine, deps := newOrderTestRouter(t)

	item := newTestMenuItem(t, "Espresso", 45)
	deps.menuRepo.On("FindByID", mock.Anything, item.ID).Return(item, nil)
	deps.orderRepo.On("MaxNumberSuffix", mock.Anything).Return(int64(41), nil)
	deps.counterRepo.On("Next", mock.Anything, int64(41)).Return(int64(42), nil)
	deps.orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*ordering.Order")).Return(nil)

	body := `{"items": [{"menu_item_id": "` + item.ID.String() + `", "quantity": "2"}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "#42", data["number"])
	assert.Equal(t, "90", data["total"])
	deps.orderRepo.AssertExpectations(t)
	deps.counterRepo.AssertExpectations(t)
}

func TestOrderHandlerCreateUnknownMenuItem(t *testing.T) {
	engine, deps := newOrderTestRouter(t)

	id := uuid.New()
	deps.menuRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	body := `{"items": [{"menu_item_id": "` + id.String() + `", "quantity": "1"}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_MENU_ITEM", resp.Error.Code)
	deps.orderRepo.AssertNotCalled(t, "Save")
}

func TestOrderHandlerCreateEmptyItems(t *testing.T) {
	engine, deps := newOrderTestRouter(t)

	body := `{"items": []}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	deps.menuRepo.AssertNotCalled(t, "FindByID")
}

func TestOrderHandlerCreateClosedAccount(t *testing.T) {
	engine, deps := newOrderTestRouter(t)

	item := newTestMenuItem(t, "Espresso", 45)
	deps.menuRepo.On("FindByID", mock.Anything, item.ID).Return(item, nil)

	account, err := ordering.NewOpenAccount("Mesa 4")
	require.NoError(t, err)
	require.NoError(t, account.Close(decimal.Zero))
	deps.accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)

	body := `{
		"items": [{"menu_item_id": "` + item.ID.String() + `", "quantity": "1"}],
		"open_account_id": "` + account.ID.String() + `"
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ACCOUNT_CLOSED", resp.Error.Code)
}

func TestOrderHandlerGetByID(t *testing.T) {
	engine, deps := newOrderTestRouter(t)

	item, err := ordering.NewOrderItem(uuid.New(), "Espresso", decimal.NewFromInt(45), decimal.NewFromInt(1))
	require.NoError(t, err)
	order, err := ordering.NewOrder("#7", []ordering.OrderItem{item}, nil)
	require.NoError(t, err)
	deps.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/orders/"+order.ID.String(), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "#7", data["number"])
}

func TestOrderHandlerListFilters(t *testing.T) {
	engine, deps := newOrderTestRouter(t)

	deps.orderRepo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).Return([]ordering.Order{}, nil)
	deps.orderRepo.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/orders?status=pending&open_account_id=none", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	filterArg := deps.orderRepo.Calls[0].Arguments.Get(1).(shared.Filter)
	assert.Equal(t, "pending", filterArg.Filters["status"])
	val, present := filterArg.Filters["open_account_id"]
	assert.True(t, present)
	assert.Nil(t, val)
}

func TestOrderHandlerListBadAccountFilter(t *testing.T) {
	engine, deps := newOrderTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/orders?open_account_id=nope", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	deps.orderRepo.AssertNotCalled(t, "FindAll")
}
