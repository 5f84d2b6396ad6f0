package ordering

import (
	"time"

	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OpenAccountStatus represents the lifecycle of a tab
type OpenAccountStatus string

const (
	OpenAccountStatusOpen   OpenAccountStatus = "open"
	OpenAccountStatusClosed OpenAccountStatus = "closed"
)

// OpenAccount represents a tab: a named group of orders settled
// together. Closing freezes membership; orders stay attached.
type OpenAccount struct {
	shared.BaseAggregateRoot
	Name     string            `gorm:"type:varchar(200);not null"`
	Status   OpenAccountStatus `gorm:"type:varchar(20);not null;default:'open'"`
	ClosedAt *time.Time
}

// TableName returns the table name for GORM
func (OpenAccount) TableName() string {
	return "open_accounts"
}

// NewOpenAccount opens a tab
func NewOpenAccount(name string) (*OpenAccount, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Open account name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Open account name cannot exceed 200 characters")
	}

	account := &OpenAccount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Status:            OpenAccountStatusOpen,
	}
	account.AddDomainEvent(NewOpenAccountOpenedEvent(account))
	return account, nil
}

// IsOpen returns true while orders can still be attached
func (a *OpenAccount) IsOpen() bool {
	return a.Status == OpenAccountStatusOpen
}

// Close closes the tab. Idempotent closes are an error so double
// settlement is caught.
func (a *OpenAccount) Close(totalDiscount decimal.Decimal) error {
	if !a.IsOpen() {
		return shared.ErrAccountClosed
	}

	now := time.Now()
	a.Status = OpenAccountStatusClosed
	a.ClosedAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()
	a.AddDomainEvent(NewOpenAccountClosedEvent(a, totalDiscount))
	return nil
}
