package supply

import (
	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
)

// ValidateSupply checks a candidate supply against the given snapshot
// before it is allowed to enter the cost graph. The graph must reflect
// the candidate's prospective state for cycle detection to mean
// anything, so callers pass the pre-write snapshot and ValidateSupply
// splices the candidate in itself.
//
// Rules run in order and the first failure wins.
func ValidateSupply(candidate *Supply, graph CostGraph) error {
	if err := validateSupplyName(candidate.Name); err != nil {
		return err
	}

	switch candidate.Kind {
	case SupplyKindPurchased:
		if err := validatePurchased(candidate); err != nil {
			return err
		}
	case SupplyKindComposed:
		if err := validateComposed(candidate); err != nil {
			return err
		}
	default:
		return shared.NewDomainError("INVALID_KIND", "Supply kind must be purchased or composed")
	}

	// Structural check runs last and unconditionally for composed
	// supplies: a candidate whose cost would be Unknown anyway can
	// still close a cycle, and that must never reach the store.
	if candidate.IsComposed() {
		prospective := graph.With(candidate)
		if err := detectCycle(prospective, candidate.ID, make(map[uuid.UUID]bool)); err != nil {
			return err
		}
	}

	return nil
}

func validatePurchased(candidate *Supply) error {
	if candidate.Unit.IsZero() {
		return shared.NewDomainError("INVALID_UNIT", "Purchased supply requires a mass, volume or count unit")
	}
	if candidate.PurchaseQuantity == nil || !candidate.PurchaseQuantity.IsPositive() {
		return shared.NewDomainError("INVALID_PURCHASE_QUANTITY", "Purchase quantity must be greater than zero")
	}
	if candidate.PurchasePrice != nil && candidate.PurchasePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PURCHASE_PRICE", "Purchase price cannot be negative")
	}
	return nil
}

func validateComposed(candidate *Supply) error {
	lines := candidate.WellFormedRecipeLines()
	if len(lines) == 0 {
		return shared.NewDomainError("EMPTY_RECIPE", "Composed supply requires at least one recipe line")
	}
	if candidate.YieldAmount == nil || !candidate.YieldAmount.IsPositive() {
		return shared.NewDomainError("INVALID_YIELD", "Yield amount must be greater than zero")
	}
	if candidate.YieldUnit.IsZero() {
		return shared.NewDomainError("INVALID_YIELD_UNIT", "Composed supply requires a yield unit")
	}
	for _, line := range lines {
		if line.IngredientID == candidate.ID {
			return shared.NewDomainError("SELF_REFERENCE", "Recipe cannot reference the supply itself")
		}
	}
	return nil
}
