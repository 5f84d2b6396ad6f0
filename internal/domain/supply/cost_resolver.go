package supply

import (
	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// UnitCost is the outcome of resolving a supply's per-unit cost.
// A cost is either a known decimal amount or Unknown. Unknown is a
// value, not an error: it covers missing purchase data, non-positive
// divisors, dangling ingredient references and any ingredient that is
// itself Unknown.
type UnitCost struct {
	amount decimal.Decimal
	known  bool
}

// KnownCost returns a known per-unit cost
func KnownCost(amount decimal.Decimal) UnitCost {
	return UnitCost{amount: amount, known: true}
}

// UnknownCost returns the Unknown sentinel
func UnknownCost() UnitCost {
	return UnitCost{}
}

// Known reports whether the cost could be computed
func (c UnitCost) Known() bool {
	return c.known
}

// Amount returns the per-unit cost. Only meaningful when Known is true.
func (c UnitCost) Amount() decimal.Decimal {
	return c.amount
}

// StringFixed renders the amount with the given decimal places,
// or "unknown" when the cost could not be computed
func (c UnitCost) StringFixed(places int32) string {
	if !c.known {
		return "unknown"
	}
	return c.amount.StringFixed(places)
}

// Resolve computes the per-unit cost of the supply with the given id
// against the snapshot. It is a pure function of the graph: identical
// snapshots always yield identical results.
//
// The only error it returns is shared.ErrCircularReference, raised when
// the id's recipe path revisits a supply already on the current walk.
// Every data-quality problem resolves to UnknownCost instead.
func Resolve(graph CostGraph, id uuid.UUID) (UnitCost, error) {
	return resolve(graph, id, make(map[uuid.UUID]bool))
}

// ResolveAll computes the cost of every supply in the snapshot
// independently. A cycle only hides the costs of the supplies on it:
// each node is resolved from scratch so the rest of the catalog stays
// computable, with cycle members reported as Unknown.
func ResolveAll(graph CostGraph) map[uuid.UUID]UnitCost {
	costs := make(map[uuid.UUID]UnitCost, len(graph))
	for id := range graph {
		cost, err := Resolve(graph, id)
		if err != nil {
			cost = UnknownCost()
		}
		costs[id] = cost
	}
	return costs
}

// resolve walks depth-first. The path set holds exactly the ids on the
// current root-to-node walk: ids are removed on backtrack, so diamond
// references in a DAG are legal while any repeat along one path is a
// genuine cycle.
func resolve(graph CostGraph, id uuid.UUID, path map[uuid.UUID]bool) (UnitCost, error) {
	if path[id] {
		return UnknownCost(), shared.ErrCircularReference
	}

	node := graph.Get(id)
	if node == nil {
		// Dangling reference: the supply was deleted out from under a
		// recipe. Treated as missing data, not an integrity error.
		return UnknownCost(), nil
	}

	switch node.Kind {
	case SupplyKindPurchased:
		return purchasedCost(node), nil
	case SupplyKindComposed:
		return composedCost(graph, node, path)
	default:
		return UnknownCost(), nil
	}
}

func purchasedCost(node *Supply) UnitCost {
	if node.PurchasePrice == nil || node.PurchaseQuantity == nil {
		return UnknownCost()
	}
	if !node.PurchaseQuantity.IsPositive() {
		return UnknownCost()
	}
	return KnownCost(node.PurchasePrice.Div(*node.PurchaseQuantity))
}

func composedCost(graph CostGraph, node *Supply, path map[uuid.UUID]bool) (UnitCost, error) {
	lines := node.WellFormedRecipeLines()
	if len(lines) == 0 {
		return UnknownCost(), nil
	}
	if node.YieldAmount == nil || !node.YieldAmount.IsPositive() {
		return UnknownCost(), nil
	}

	path[node.ID] = true
	defer delete(path, node.ID)

	total := decimal.Zero
	for _, line := range lines {
		sub, err := resolve(graph, line.IngredientID, path)
		if err != nil {
			return UnknownCost(), err
		}
		if !sub.Known() {
			// One unknown ingredient makes the whole recipe unknown;
			// a partial sum would be worse than no answer.
			return UnknownCost(), nil
		}
		total = total.Add(line.Quantity.Mul(sub.Amount()))
	}

	return KnownCost(total.Div(*node.YieldAmount)), nil
}

// detectCycle walks every recipe edge reachable from id, ignoring cost
// computability entirely. Validation needs this because a candidate
// whose cost is Unknown for unrelated reasons (bad yield, missing
// price) can still introduce a structural cycle that must be rejected.
func detectCycle(graph CostGraph, id uuid.UUID, path map[uuid.UUID]bool) error {
	if path[id] {
		return shared.ErrCircularReference
	}

	node := graph.Get(id)
	if node == nil {
		return nil
	}

	path[id] = true
	defer delete(path, id)

	for _, line := range node.RecipeLines {
		if line.IngredientID == uuid.Nil {
			continue
		}
		if err := detectCycle(graph, line.IngredientID, path); err != nil {
			return err
		}
	}
	return nil
}
