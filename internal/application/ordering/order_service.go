package ordering

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/menu"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/ordering"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderService handles order placement and lookup. Placement runs
// inside a transaction scope so the counter increment and the order
// insert are atomic: a rolled-back order never consumes a number.
type OrderService struct {
	scope           TransactionScope
	orderRepo       ordering.OrderRepository
	openAccountRepo ordering.OpenAccountRepository
	menuRepo        menu.MenuItemRepository
	logger          *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	scope TransactionScope,
	orderRepo ordering.OrderRepository,
	openAccountRepo ordering.OpenAccountRepository,
	menuRepo menu.MenuItemRepository,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		scope:           scope,
		orderRepo:       orderRepo,
		openAccountRepo: openAccountRepo,
		menuRepo:        menuRepo,
		logger:          logger,
	}
}

// Create places an order. The order number is allocated under a row
// lock inside the same transaction as the insert.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	if req.OpenAccountID != nil {
		account, err := s.openAccountRepo.FindByID(ctx, *req.OpenAccountID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_OPEN_ACCOUNT", "Open account not found")
			}
			return nil, err
		}
		if !account.IsOpen() {
			return nil, shared.ErrAccountClosed
		}
	}

	var order *ordering.Order
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		seed, err := repos.Orders().MaxNumberSuffix(ctx)
		if err != nil {
			return err
		}
		value, err := repos.Counter().Next(ctx, seed)
		if err != nil {
			return err
		}

		order, err = ordering.NewOrder(ordering.FormatOrderNumber(value), items, req.OpenAccountID)
		if err != nil {
			return err
		}
		return repos.Orders().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("number", order.Number),
		zap.String("total", order.Total.String()))

	return ToOrderResponse(order), nil
}

// GetByID retrieves an order by its ID
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// List retrieves orders matching the filter, newest first
func (s *OrderService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[OrderResponse], error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, *ToOrderResponse(&orders[i]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// buildItems prices the requested lines from the menu
func (s *OrderService) buildItems(ctx context.Context, reqs []OrderItemRequest) ([]ordering.OrderItem, error) {
	items := make([]ordering.OrderItem, 0, len(reqs))
	for _, r := range reqs {
		menuItem, err := s.menuRepo.FindByID(ctx, r.MenuItemID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_MENU_ITEM", "Menu item not found")
			}
			return nil, err
		}
		if !menuItem.IsActive() {
			return nil, shared.NewDomainError("INVALID_MENU_ITEM", "Menu item is not available")
		}

		item, err := ordering.NewOrderItem(menuItem.ID, menuItem.Name, menuItem.SellingPrice.Amount(), r.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
