package supply

import (
	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeSupply = "Supply"

// Event type constants
const (
	EventTypeSupplyCreated = "SupplyCreated"
	EventTypeSupplyUpdated = "SupplyUpdated"
	EventTypeSupplyDeleted = "SupplyDeleted"
)

// SupplyCreatedEvent is published when a new supply is created
type SupplyCreatedEvent struct {
	shared.BaseDomainEvent
	SupplyID uuid.UUID  `json:"supply_id"`
	Name     string     `json:"name"`
	Kind     SupplyKind `json:"kind"`
}

// NewSupplyCreatedEvent creates a new SupplyCreatedEvent
func NewSupplyCreatedEvent(s *Supply) *SupplyCreatedEvent {
	return &SupplyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplyCreated, AggregateTypeSupply, s.ID),
		SupplyID:        s.ID,
		Name:            s.Name,
		Kind:            s.Kind,
	}
}

// SupplyUpdatedEvent is published when a supply is updated
type SupplyUpdatedEvent struct {
	shared.BaseDomainEvent
	SupplyID uuid.UUID  `json:"supply_id"`
	Name     string     `json:"name"`
	Kind     SupplyKind `json:"kind"`
}

// NewSupplyUpdatedEvent creates a new SupplyUpdatedEvent
func NewSupplyUpdatedEvent(s *Supply) *SupplyUpdatedEvent {
	return &SupplyUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplyUpdated, AggregateTypeSupply, s.ID),
		SupplyID:        s.ID,
		Name:            s.Name,
		Kind:            s.Kind,
	}
}

// SupplyDeletedEvent is published when a supply is deleted
type SupplyDeletedEvent struct {
	shared.BaseDomainEvent
	SupplyID uuid.UUID `json:"supply_id"`
	Name     string    `json:"name"`
}

// NewSupplyDeletedEvent creates a new SupplyDeletedEvent
func NewSupplyDeletedEvent(s *Supply) *SupplyDeletedEvent {
	return &SupplyDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplyDeleted, AggregateTypeSupply, s.ID),
		SupplyID:        s.ID,
		Name:            s.Name,
	}
}
