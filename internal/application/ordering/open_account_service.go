package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/ordering"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OpenAccountService handles tab lifecycle: opening, attaching orders
// and settlement. Closing spreads the tab discount over the attached
// orders newest first and persists everything in one transaction.
type OpenAccountService struct {
	scope           TransactionScope
	openAccountRepo ordering.OpenAccountRepository
	orderRepo       ordering.OrderRepository
	logger          *zap.Logger
}

// NewOpenAccountService creates a new OpenAccountService
func NewOpenAccountService(
	scope TransactionScope,
	openAccountRepo ordering.OpenAccountRepository,
	orderRepo ordering.OrderRepository,
	logger *zap.Logger,
) *OpenAccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAccountService{
		scope:           scope,
		openAccountRepo: openAccountRepo,
		orderRepo:       orderRepo,
		logger:          logger,
	}
}

// Create opens a tab
func (s *OpenAccountService) Create(ctx context.Context, req CreateOpenAccountRequest) (*OpenAccountResponse, error) {
	account, err := ordering.NewOpenAccount(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.openAccountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("open account created",
		zap.String("open_account_id", account.ID.String()),
		zap.String("name", account.Name))

	return ToOpenAccountResponse(account), nil
}

// GetByID retrieves a tab by its ID
func (s *OpenAccountService) GetByID(ctx context.Context, id uuid.UUID) (*OpenAccountResponse, error) {
	account, err := s.openAccountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOpenAccountResponse(account), nil
}

// List retrieves tabs matching the filter
func (s *OpenAccountService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[OpenAccountResponse], error) {
	accounts, err := s.openAccountRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.openAccountRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]OpenAccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, *ToOpenAccountResponse(&accounts[i]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// AttachOrder attaches an existing pending order to an open tab
func (s *OpenAccountService) AttachOrder(ctx context.Context, accountID uuid.UUID, req AttachOrderRequest) (*OrderResponse, error) {
	account, err := s.openAccountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsOpen() {
		return nil, shared.ErrAccountClosed
	}

	order, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != ordering.OrderStatusPending {
		return nil, shared.ErrInvalidState
	}
	if order.OpenAccountID != nil {
		return nil, shared.NewDomainError("ALREADY_ATTACHED", "Order is already attached to an open account")
	}

	order.OpenAccountID = &accountID
	order.IncrementVersion()
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order attached to open account",
		zap.String("order_id", order.ID.String()),
		zap.String("open_account_id", accountID.String()))

	return ToOrderResponse(order), nil
}

// Close settles a tab: the discount is allocated over the attached
// orders newest first, every pending order is marked paid with the
// given method, and the orders and the tab's closed state commit
// together.
func (s *OpenAccountService) Close(ctx context.Context, id uuid.UUID, req CloseAccountRequest) (*CloseAccountResponse, error) {
	method := ordering.PaymentMethod(req.PaymentMethod)
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be cash, card or transfer")
	}
	discount := decimal.Zero
	if req.Discount != nil {
		discount = *req.Discount
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}

	var (
		account   *ordering.OpenAccount
		orders    []*ordering.Order
		allocated decimal.Decimal
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		account, err = repos.OpenAccounts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !account.IsOpen() {
			return shared.ErrAccountClosed
		}

		orders, err = repos.Orders().FindByOpenAccount(ctx, id)
		if err != nil {
			return err
		}

		pending := make([]*ordering.Order, 0, len(orders))
		for _, order := range orders {
			if order.Status == ordering.OrderStatusPending {
				pending = append(pending, order)
			}
		}

		if discount.IsPositive() {
			allocated, err = ordering.AllocateDiscount(pending, discount, req.Reason)
			if err != nil {
				return err
			}
		}

		for _, order := range pending {
			if err := order.MarkPaid(method); err != nil {
				return err
			}
		}

		if len(pending) > 0 {
			if err := repos.Orders().SaveBatch(ctx, pending); err != nil {
				return err
			}
		}

		if err := account.Close(allocated); err != nil {
			return err
		}
		return repos.OpenAccounts().Save(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("open account closed",
		zap.String("open_account_id", id.String()),
		zap.String("discount_applied", allocated.String()),
		zap.Int("orders", len(orders)))

	return buildCloseResponse(account, orders, allocated), nil
}

func buildCloseResponse(account *ordering.OpenAccount, orders []*ordering.Order, allocated decimal.Decimal) *CloseAccountResponse {
	resp := &CloseAccountResponse{
		Account:         *ToOpenAccountResponse(account),
		DiscountApplied: allocated,
		Total:           decimal.Zero,
	}
	for _, order := range orders {
		resp.Orders = append(resp.Orders, *ToOrderResponse(order))
		resp.Total = resp.Total.Add(order.Total)
	}
	return resp
}
