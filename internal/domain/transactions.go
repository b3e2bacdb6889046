package domain

import (
	"fmt"
	"strings"
	"time"
)

// Line item codes the breakdown knows how to render.
const (
	LineItemNight              = "line-item/night"
	LineItemDay                = "line-item/day"
	LineItemUnits              = "line-item/units"
	LineItemProviderCommission = "line-item/provider-commission"
	LineItemCustomerCommission = "line-item/customer-commission"
)

// LineItem is one priced row of a transaction. UnitPrice and LineTotal are
// pointers so a missing field can be told apart from a zero amount.
type LineItem struct {
	Code       string    `json:"code" validate:"required"`
	IncludeFor RoleSet   `json:"includeFor"`
	Quantity   *Quantity `json:"quantity,omitempty"`
	UnitPrice  *Money    `json:"unitPrice" validate:"required"`
	LineTotal  *Money    `json:"lineTotal" validate:"required"`
	Reversal   bool      `json:"reversal"`
}

// IsReversal is true for rows flagged as reversals and for rows with a
// negative quantity.
func (li LineItem) IsReversal() bool {
	return li.Reversal || (li.Quantity != nil && li.Quantity.IsNegative())
}

// UnitType selects which line item code carries the booked units.
type UnitType string

const (
	UnitNight UnitType = "night"
	UnitDay   UnitType = "day"
	UnitUnits UnitType = "units"
)

// ParseUnitType accepts both the short form ("night") and the line item
// code ("line-item/night").
func ParseUnitType(s string) (UnitType, error) {
	switch u := UnitType(strings.TrimPrefix(s, "line-item/")); u {
	case UnitNight, UnitDay, UnitUnits:
		return u, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownUnitType, s)
}

// Code returns the line item code for the unit type.
func (u UnitType) Code() string {
	return "line-item/" + string(u)
}

// Actor is who performed a transition.
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorProvider Actor = "provider"
	ActorSystem   Actor = "system"
	ActorOperator Actor = "operator"
)

// TransitionEntry is one element of a transaction's history.
type TransitionEntry struct {
	At         time.Time  `json:"at"`
	By         Actor      `json:"by"`
	Transition Transition `json:"transition"`
	// Name is the identifier as received, kept for unknown transitions.
	Name string `json:"-"`
}

// Transaction is an immutable snapshot of a booking transaction.
type Transaction struct {
	ID                 string            `json:"id"`
	CreatedAt          time.Time         `json:"createdAt"`
	LastTransitionedAt time.Time         `json:"lastTransitionedAt"`
	LastTransition     Transition        `json:"lastTransition"`
	LastTransitionName string            `json:"-"`
	Transitions        []TransitionEntry `json:"transitions"`
	PayinTotal         Money             `json:"payinTotal"`
	PayoutTotal        Money             `json:"payoutTotal"`
	LineItems          []LineItem        `json:"lineItems"`
}

// Currency is the currency of the transaction, taken from the payin total.
func (tx Transaction) Currency() string {
	if tx.PayinTotal.Currency != "" {
		return tx.PayinTotal.Currency
	}
	return tx.PayoutTotal.Currency
}

// AuthoritativeTotal returns the total the backend reports for role.
func (tx Transaction) AuthoritativeTotal(r Role) Money {
	if r == RoleProvider {
		return tx.PayoutTotal
	}
	return tx.PayinTotal
}

// CheckHistory reports violations of the transition history invariants:
// entries ordered by time and the last entry matching LastTransition.
func (tx Transaction) CheckHistory() []string {
	var problems []string
	for i := 1; i < len(tx.Transitions); i++ {
		if tx.Transitions[i].At.Before(tx.Transitions[i-1].At) {
			problems = append(problems, fmt.Sprintf("transition %d happens before transition %d", i, i-1))
		}
	}
	if n := len(tx.Transitions); n > 0 {
		last := tx.Transitions[n-1]
		if last.Transition != tx.LastTransition || (last.Transition == TransitionUnknown && last.Name != tx.LastTransitionName) {
			problems = append(problems, fmt.Sprintf("last transition %q does not match final history entry %q", tx.LastTransitionName, last.Name))
		}
	}
	return problems
}

// Booking is the booked period.
type Booking struct {
	ID    string    `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Validate checks Start < End.
func (b Booking) Validate() error {
	if !b.Start.Before(b.End) {
		return fmt.Errorf("%w: start %s is not before end %s", ErrInvalidBooking, b.Start.Format(time.RFC3339), b.End.Format(time.RFC3339))
	}
	return nil
}

// UnitCount derives the number of nights or days in the booking from the
// UTC calendar dates of Start and End. Units have no period-derived count.
func (b Booking) UnitCount(u UnitType) (int64, bool) {
	if b.Validate() != nil {
		return 0, false
	}
	switch u {
	case UnitNight, UnitDay:
		return int64(dateOf(b.End).Sub(dateOf(b.Start)) / (24 * time.Hour)), true
	}
	return 0, false
}

// Snapshot is a transaction and its booking as loaded from storage, with
// optional defaults for the view to compute.
type Snapshot struct {
	Transaction Transaction
	Booking     Booking
	Role        *Role
	UnitType    *UnitType
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
