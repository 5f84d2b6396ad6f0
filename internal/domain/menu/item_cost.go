package menu

import (
	"github.com/ldipasquale/terzo-posto-server/internal/domain/supply"
	"github.com/shopspring/decimal"
)

// ItemCost is the costing of one menu item against a supply snapshot:
// the summed ingredient cost and, when that cost is known, the margin
// left by the selling price.
type ItemCost struct {
	IngredientCost supply.UnitCost
	Margin         supply.UnitCost
}

// CostMenuItem computes the ingredient cost of a menu item as
// Σ(lineQty × supply unit cost) over its well-formed ingredient lines.
// Any line whose supply is missing, Unknown or on a cycle makes the
// whole item Unknown; there is no partial sum. Menu items cannot form
// cycles themselves because supplies never reference them back.
func CostMenuItem(item *MenuItem, graph supply.CostGraph) ItemCost {
	lines := item.WellFormedIngredients()
	if len(lines) == 0 {
		return ItemCost{IngredientCost: supply.UnknownCost(), Margin: supply.UnknownCost()}
	}

	total := decimal.Zero
	for _, line := range lines {
		sub, err := supply.Resolve(graph, line.SupplyID)
		if err != nil || !sub.Known() {
			return ItemCost{IngredientCost: supply.UnknownCost(), Margin: supply.UnknownCost()}
		}
		total = total.Add(line.Quantity.Mul(sub.Amount()))
	}

	return ItemCost{
		IngredientCost: supply.KnownCost(total),
		Margin:         supply.KnownCost(item.SellingPrice.Amount().Sub(total)),
	}
}
