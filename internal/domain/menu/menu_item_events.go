package menu

import (
	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeMenuItem = "MenuItem"

// Event type constants
const (
	EventTypeMenuItemCreated = "MenuItemCreated"
	EventTypeMenuItemUpdated = "MenuItemUpdated"
	EventTypeMenuItemDeleted = "MenuItemDeleted"
)

// MenuItemCreatedEvent is published when a new menu item is created
type MenuItemCreatedEvent struct {
	shared.BaseDomainEvent
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Name       string    `json:"name"`
}

// NewMenuItemCreatedEvent creates a new MenuItemCreatedEvent
func NewMenuItemCreatedEvent(m *MenuItem) *MenuItemCreatedEvent {
	return &MenuItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMenuItemCreated, AggregateTypeMenuItem, m.ID),
		MenuItemID:      m.ID,
		Name:            m.Name,
	}
}

// MenuItemUpdatedEvent is published when a menu item is updated
type MenuItemUpdatedEvent struct {
	shared.BaseDomainEvent
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Name       string    `json:"name"`
}

// NewMenuItemUpdatedEvent creates a new MenuItemUpdatedEvent
func NewMenuItemUpdatedEvent(m *MenuItem) *MenuItemUpdatedEvent {
	return &MenuItemUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMenuItemUpdated, AggregateTypeMenuItem, m.ID),
		MenuItemID:      m.ID,
		Name:            m.Name,
	}
}

// MenuItemDeletedEvent is published when a menu item is deleted
type MenuItemDeletedEvent struct {
	shared.BaseDomainEvent
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Name       string    `json:"name"`
}

// NewMenuItemDeletedEvent creates a new MenuItemDeletedEvent
func NewMenuItemDeletedEvent(m *MenuItem) *MenuItemDeletedEvent {
	return &MenuItemDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMenuItemDeleted, AggregateTypeMenuItem, m.ID),
		MenuItemID:      m.ID,
		Name:            m.Name,
	}
}
