package ordering

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderAt(number, total string, age time.Duration) *Order {
	o := pendingOrder(number, orderItem("Consumo", total, "1"))
	o.CreatedAt = time.Now().Add(-age)
	return o
}

func TestAllocateDiscount(t *testing.T) {
	t.Run("newest order absorbs first", func(t *testing.T) {
		oldest := orderAt("#1", "100", 3*time.Hour)
		middle := orderAt("#2", "100", 2*time.Hour)
		newest := orderAt("#3", "100", 1*time.Hour)

		allocated, err := AllocateDiscount([]*Order{oldest, middle, newest}, dec("150"), "promo")

		require.NoError(t, err)
		assert.True(t, allocated.Equal(dec("150")))
		assert.True(t, newest.Total.IsZero())
		assert.True(t, newest.Discount.Equal(dec("100")))
		assert.True(t, middle.Total.Equal(dec("50")))
		assert.True(t, middle.Discount.Equal(dec("50")))
		assert.True(t, oldest.Total.Equal(dec("100")), "oldest untouched")
		assert.True(t, oldest.Discount.IsZero())
	})

	t.Run("input order does not matter", func(t *testing.T) {
		oldest := orderAt("#1", "100", 3*time.Hour)
		newest := orderAt("#2", "100", 1*time.Hour)

		_, err := AllocateDiscount([]*Order{newest, oldest}, dec("60"), "promo")

		require.NoError(t, err)
		assert.True(t, newest.Discount.Equal(dec("60")))
		assert.True(t, oldest.Discount.IsZero())
	})

	t.Run("audit note is appended to the existing reason", func(t *testing.T) {
		o := orderAt("#1", "100", time.Hour)
		o.DiscountReason = "cortesía"

		_, err := AllocateDiscount([]*Order{o}, dec("10"), "cliente frecuente")

		require.NoError(t, err)
		assert.Equal(t, "cortesía | Descuento de la cuenta: cliente frecuente", o.DiscountReason)
	})

	t.Run("zero total orders are skipped without consuming", func(t *testing.T) {
		empty := orderAt("#2", "100", time.Hour)
		require.NoError(t, empty.ApplyDiscount(dec("100"), "previo"))
		older := orderAt("#1", "80", 2*time.Hour)

		allocated, err := AllocateDiscount([]*Order{empty, older}, dec("50"), "promo")

		require.NoError(t, err)
		assert.True(t, allocated.Equal(dec("50")))
		assert.True(t, empty.Discount.Equal(dec("100")), "already exhausted order untouched")
		assert.True(t, older.Discount.Equal(dec("50")))
	})

	t.Run("excess beyond all totals is dropped", func(t *testing.T) {
		a := orderAt("#1", "30", 2*time.Hour)
		b := orderAt("#2", "20", time.Hour)

		allocated, err := AllocateDiscount([]*Order{a, b}, dec("500"), "promo")

		require.NoError(t, err)
		assert.True(t, allocated.Equal(dec("50")))
		assert.True(t, a.Total.IsZero())
		assert.True(t, b.Total.IsZero())
	})

	t.Run("non-positive amount allocates nothing", func(t *testing.T) {
		o := orderAt("#1", "100", time.Hour)

		allocated, err := AllocateDiscount([]*Order{o}, dec("0"), "promo")

		require.NoError(t, err)
		assert.True(t, allocated.IsZero())
		assert.True(t, o.Total.Equal(dec("100")))
	})

	t.Run("fractional remainders allocate exactly", func(t *testing.T) {
		a := orderAt("#1", "10.25", 2*time.Hour)
		b := orderAt("#2", "5.50", time.Hour)

		allocated, err := AllocateDiscount([]*Order{a, b}, dec("7.75"), "promo")

		require.NoError(t, err)
		assert.True(t, allocated.Equal(dec("7.75")))
		assert.True(t, b.Total.IsZero())
		assert.True(t, a.Total.Equal(dec("8.00")))
	})
}

func TestOpenAccount(t *testing.T) {
	t.Run("opens with a name", func(t *testing.T) {
		a, err := NewOpenAccount("Mesa 4")

		require.NoError(t, err)
		assert.True(t, a.IsOpen())
		assert.Nil(t, a.ClosedAt)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewOpenAccount("")
		assert.Error(t, err)
	})

	t.Run("close is not idempotent", func(t *testing.T) {
		a, err := NewOpenAccount("Mesa 4")
		require.NoError(t, err)

		require.NoError(t, a.Close(dec("50")))
		assert.False(t, a.IsOpen())
		require.NotNil(t, a.ClosedAt)

		assert.Error(t, a.Close(decimal.Zero))
	})
}
