package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor currency units tagged with an ISO 4217 code.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency" validate:"required,len=3,uppercase"`
}

// NewMoney creates a Money value.
func NewMoney(amount int64, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// Zero returns a zero amount in the given currency.
func Zero(currency string) Money {
	return Money{Currency: currency}
}

// Add returns m + other. Mixing currencies or overflowing int64 is a
// programming error and panics; use CheckedAdd for untrusted amounts.
func (m Money) Add(other Money) Money {
	sum, ok := m.CheckedAdd(other)
	if !ok {
		panic(fmt.Errorf("%w: %s + %s", ErrAmountOverflow, m, other))
	}
	return sum
}

// Sub returns m - other. It panics like Add.
func (m Money) Sub(other Money) Money {
	m.mustMatch(other)
	diff := m.Amount - other.Amount
	if (other.Amount > 0 && diff > m.Amount) || (other.Amount < 0 && diff < m.Amount) {
		panic(fmt.Errorf("%w: %s - %s", ErrAmountOverflow, m, other))
	}
	return Money{Amount: diff, Currency: m.Currency}
}

// CheckedAdd returns m + other. The second return value is false when the
// sum does not fit in int64. Mixing currencies still panics.
func (m Money) CheckedAdd(other Money) (Money, bool) {
	m.mustMatch(other)
	sum := m.Amount + other.Amount
	if (other.Amount > 0 && sum < m.Amount) || (other.Amount < 0 && sum > m.Amount) {
		return Money{}, false
	}
	return Money{Amount: sum, Currency: m.Currency}, true
}

// Neg returns the negated amount.
func (m Money) Neg() Money {
	return Money{Amount: -m.Amount, Currency: m.Currency}
}

// Abs returns the absolute amount.
func (m Money) Abs() Money {
	if m.Amount < 0 {
		return m.Neg()
	}
	return m
}

// IsZero reports whether the amount is zero, regardless of currency.
func (m Money) IsZero() bool {
	return m.Amount == 0
}

// Equal requires both the amount and the currency code to match.
func (m Money) Equal(other Money) bool {
	return m.Amount == other.Amount && m.Currency == other.Currency
}

// MulQuantity multiplies the amount by q. The second return value is false
// when the product is not a whole number of minor units or overflows int64.
func (m Money) MulQuantity(q Quantity) (Money, bool) {
	product := decimal.NewFromInt(m.Amount).Mul(q.Decimal())
	if !product.IsInteger() {
		return Money{}, false
	}
	n := product.BigInt()
	if !n.IsInt64() {
		return Money{}, false
	}
	return Money{Amount: n.Int64(), Currency: m.Currency}, true
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.Amount, m.Currency)
}

func (m Money) mustMatch(other Money) {
	if m.Currency != other.Currency {
		panic(fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.Currency, other.Currency))
	}
}
