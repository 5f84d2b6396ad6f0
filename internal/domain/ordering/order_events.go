package ordering

import (
	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeOrder       = "Order"
	AggregateTypeOpenAccount = "OpenAccount"
)

// Event type constants
const (
	EventTypeOrderCreated         = "OrderCreated"
	EventTypeOrderDiscountApplied = "OrderDiscountApplied"
	EventTypeOrderPaid            = "OrderPaid"
	EventTypeOrderCancelled       = "OrderCancelled"
	EventTypeOpenAccountOpened    = "OpenAccountOpened"
	EventTypeOpenAccountClosed    = "OpenAccountClosed"
)

// OrderCreatedEvent is published when an order is created
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID       `json:"order_id"`
	Number  string          `json:"number"`
	Total   decimal.Decimal `json:"total"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		Number:          o.Number,
		Total:           o.Total,
	}
}

// OrderDiscountAppliedEvent is published when a discount lands on an order
type OrderDiscountAppliedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID       `json:"order_id"`
	Number  string          `json:"number"`
	Amount  decimal.Decimal `json:"amount"`
}

// NewOrderDiscountAppliedEvent creates a new OrderDiscountAppliedEvent
func NewOrderDiscountAppliedEvent(o *Order, amount decimal.Decimal) *OrderDiscountAppliedEvent {
	return &OrderDiscountAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderDiscountApplied, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		Number:          o.Number,
		Amount:          amount,
	}
}

// OrderPaidEvent is published when an order is settled
type OrderPaidEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID     `json:"order_id"`
	Number        string        `json:"number"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}

// NewOrderPaidEvent creates a new OrderPaidEvent
func NewOrderPaidEvent(o *Order) *OrderPaidEvent {
	return &OrderPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaid, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		Number:          o.Number,
		PaymentMethod:   o.PaymentMethod,
	}
}

// OrderCancelledEvent is published when an order is voided
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
	Number  string    `json:"number"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(o *Order) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		Number:          o.Number,
	}
}

// OpenAccountOpenedEvent is published when a tab is opened
type OpenAccountOpenedEvent struct {
	shared.BaseDomainEvent
	OpenAccountID uuid.UUID `json:"open_account_id"`
	Name          string    `json:"name"`
}

// NewOpenAccountOpenedEvent creates a new OpenAccountOpenedEvent
func NewOpenAccountOpenedEvent(a *OpenAccount) *OpenAccountOpenedEvent {
	return &OpenAccountOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOpenAccountOpened, AggregateTypeOpenAccount, a.ID),
		OpenAccountID:   a.ID,
		Name:            a.Name,
	}
}

// OpenAccountClosedEvent is published when a tab is closed
type OpenAccountClosedEvent struct {
	shared.BaseDomainEvent
	OpenAccountID uuid.UUID       `json:"open_account_id"`
	Name          string          `json:"name"`
	Discount      decimal.Decimal `json:"discount"`
}

// NewOpenAccountClosedEvent creates a new OpenAccountClosedEvent
func NewOpenAccountClosedEvent(a *OpenAccount, discount decimal.Decimal) *OpenAccountClosedEvent {
	return &OpenAccountClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOpenAccountClosed, AggregateTypeOpenAccount, a.ID),
		OpenAccountID:   a.ID,
		Name:            a.Name,
		Discount:        discount,
	}
}
