package domain

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Quantity is an arbitrary-precision decimal. Reversal rows carry negative
// quantities.
type Quantity struct {
	d decimal.Decimal
}

// NewQuantity creates a whole-number quantity.
func NewQuantity(n int64) Quantity {
	return Quantity{d: decimal.NewFromInt(n)}
}

// ParseQuantity parses a decimal string such as "2" or "-1.5".
func ParseQuantity(s string) (Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	return Quantity{d: d}, nil
}

// Decimal exposes the underlying value.
func (q Quantity) Decimal() decimal.Decimal {
	return q.d
}

// IsNegative reports whether q < 0.
func (q Quantity) IsNegative() bool {
	return q.d.IsNegative()
}

// Equal compares numerically, so "2" equals "2.0".
func (q Quantity) Equal(other Quantity) bool {
	return q.d.Equal(other.d)
}

func (q Quantity) String() string {
	return q.d.String()
}

// MarshalText encodes the quantity as its decimal string.
func (q Quantity) MarshalText() ([]byte, error) {
	return []byte(q.d.String()), nil
}

// UnmarshalText accepts any decimal literal. YAML and TOML decoders hand
// numeric scalars to it as text.
func (q *Quantity) UnmarshalText(text []byte) error {
	parsed, err := ParseQuantity(string(text))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

// MarshalJSON encodes the quantity as a JSON string to keep full precision.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + q.d.String() + `"`), nil
}

// UnmarshalJSON accepts both JSON numbers and strings.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	return q.UnmarshalText(bytes.Trim(data, `"`))
}
