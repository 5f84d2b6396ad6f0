package ordering

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DiscountNotePrefix is the audit note prepended to the operator's
// reason on every order a tab discount touches.
const DiscountNotePrefix = "Descuento de la cuenta: "

// AllocateDiscount spreads a tab-level discount over the tab's orders,
// newest first. Each order absorbs min(remaining, total); its total
// shrinks, its discount grows and the audit note is appended to any
// existing reason. Orders with a non-positive total are skipped without
// consuming anything, and whatever the orders cannot absorb is dropped.
// Returns the amount actually allocated.
func AllocateDiscount(orders []*Order, amount decimal.Decimal, reason string) (decimal.Decimal, error) {
	allocated := decimal.Zero
	if !amount.IsPositive() || len(orders) == 0 {
		return allocated, nil
	}

	sorted := make([]*Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	note := DiscountNotePrefix + reason
	remaining := amount
	for _, order := range sorted {
		if !remaining.IsPositive() {
			break
		}
		if !order.Total.IsPositive() {
			continue
		}

		slice := decimal.Min(remaining, order.Total)
		if err := order.ApplyDiscount(slice, note); err != nil {
			return allocated, err
		}
		remaining = remaining.Sub(slice)
		allocated = allocated.Add(slice)
	}

	return allocated, nil
}
