package ordering

import "time"

// OrderCounter is the single-row source of order numbers. The value is
// the last number handed out; the sequencer increments it under a row
// lock inside the order-creation transaction, so numbers are gap-free
// and never reused.
type OrderCounter struct {
	ID        uint  `gorm:"primaryKey"`
	Value     int64 `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (OrderCounter) TableName() string {
	return "order_counters"
}

// Next advances the counter and returns the new value
func (c *OrderCounter) Next() int64 {
	c.Value++
	c.UpdatedAt = time.Now()
	return c.Value
}
