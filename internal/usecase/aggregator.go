package usecase

import (
	"fmt"

	"booking-breakdown/internal/domain"
)

// Totals are the role-specific sums of a classification. Warnings lists
// rows left out of the sums because adding them would overflow.
type Totals struct {
	Subtotal   domain.Money
	Adjustment domain.Money
	Total      domain.Money
	Warnings   []domain.Warning
}

// BreakdownAggregator sums classified line items and checks them against
// the transaction's authoritative totals.
type BreakdownAggregator struct{}

// Aggregate sums unit lines into the subtotal and everything else into the
// adjustment. Originals and their reversals are both summed. A row that would
// overflow its running sum is left out with a warning, and an overflowing
// total falls back to the subtotal; no sum ever wraps.
func (BreakdownAggregator) Aggregate(c Classification, currency string) Totals {
	totals := Totals{
		Subtotal:   domain.Zero(currency),
		Adjustment: domain.Zero(currency),
	}
	for i, item := range c.Visible {
		sum := &totals.Adjustment
		if item.Bucket == domain.BucketUnit {
			sum = &totals.Subtotal
		}
		next, ok := sum.CheckedAdd(*item.LineTotal)
		if !ok {
			msg := fmt.Sprintf("row %d (%s): adding %s to %s overflows, row left out of totals", i, item.Code, item.LineTotal, *sum)
			totals.Warnings = append(totals.Warnings, domain.Warning{Kind: domain.WarningAmountOverflow, Message: msg})
			continue
		}
		*sum = next
	}

	total, ok := totals.Subtotal.CheckedAdd(totals.Adjustment)
	if !ok {
		msg := fmt.Sprintf("subtotal %s plus adjustment %s overflows, total shows the subtotal", totals.Subtotal, totals.Adjustment)
		totals.Warnings = append(totals.Warnings, domain.Warning{Kind: domain.WarningAmountOverflow, Message: msg})
		total = totals.Subtotal
	}
	totals.Total = total
	return totals
}

// CheckConsistency compares the computed total with the payin total for the
// customer or the payout total for the provider. A mismatch is reported,
// never corrected.
func (BreakdownAggregator) CheckConsistency(role domain.Role, totals Totals, tx domain.Transaction) (string, bool) {
	want := tx.AuthoritativeTotal(role)
	if totals.Total.Equal(want) {
		return "", true
	}
	field := "payinTotal"
	if role == domain.RoleProvider {
		field = "payoutTotal"
	}
	return fmt.Sprintf("computed %s total %s does not match %s %s", role, totals.Total, field, want), false
}

// LineTotalWarnings flags visible rows whose line total is not unit price
// times quantity. Flat fees have no quantity and are not checked.
func (BreakdownAggregator) LineTotalWarnings(c Classification) []domain.Warning {
	var warnings []domain.Warning
	for i, item := range c.Visible {
		if item.Quantity == nil {
			continue
		}
		want, ok := item.UnitPrice.MulQuantity(*item.Quantity)
		if ok && want.Equal(*item.LineTotal) {
			continue
		}
		msg := fmt.Sprintf("row %d (%s): line total %s is not %s x %s", i, item.Code, item.LineTotal, item.UnitPrice, item.Quantity)
		warnings = append(warnings, domain.Warning{Kind: domain.WarningLineTotalMismatch, Message: msg})
	}
	return warnings
}

// UnitCountWarnings flags unit rows of the selected unit type whose quantity
// differs from the number of units derived from the booking period.
func (BreakdownAggregator) UnitCountWarnings(c Classification, booking domain.Booking, unitType domain.UnitType) []domain.Warning {
	count, ok := booking.UnitCount(unitType)
	if !ok {
		if booking.Validate() != nil {
			return []domain.Warning{{Kind: domain.WarningUnitCountMismatch, Message: "booking period is empty or inverted"}}
		}
		return nil
	}
	want := domain.NewQuantity(count)
	var warnings []domain.Warning
	for _, item := range c.InBucket(domain.BucketUnit) {
		if item.Code != unitType.Code() || item.Quantity.Equal(want) {
			continue
		}
		msg := fmt.Sprintf("%s quantity %s does not match %d %s(s) booked", item.Code, item.Quantity, count, unitType)
		warnings = append(warnings, domain.Warning{Kind: domain.WarningUnitCountMismatch, Message: msg})
	}
	return warnings
}
