package distribution

import (
	"database/sql/driver"
	"fmt"
)

// Cents is a monetary amount in hundredths of the currency unit. Prices and
// totals are kept as integers so that total = quantity * unit price holds
// exactly after a round trip through a DECIMAL(10,2) column.
type Cents int64

// Times returns the amount multiplied by a quantity.
func (c Cents) Times(qty int) Cents {
	return c * Cents(qty)
}

func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Float64 is for reporting only; never feed it back into arithmetic.
func (c Cents) Float64() float64 {
	return float64(c) / 100
}

// DecimalParts exposes the amount as an unscaled integer and a scale so that
// sinks with a native numeric type can store it without going through float.
func (c Cents) DecimalParts() (int64, int32) {
	return int64(c), 2
}

// Value lets database/sql drivers store the amount as a decimal string.
func (c Cents) Value() (driver.Value, error) {
	return c.String(), nil
}
