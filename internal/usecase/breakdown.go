package usecase

import (
	"fmt"

	"booking-breakdown/internal/domain"
)

var defaultClassifier = NewLineItemClassifier()

// ComputeBreakdown turns a transaction and its booking into a breakdown
// summary for role. It is a pure function of its inputs: anomalies are
// attached to the summary as warnings and nothing is returned as an error.
func ComputeBreakdown(tx domain.Transaction, booking domain.Booking, role domain.Role, unitType domain.UnitType) domain.BreakdownSummary {
	var (
		aggregator BreakdownAggregator
		labeler    StateLabeler
		warnings   []domain.Warning
		currency   = tx.Currency()
	)
	if currency == "" {
		currency = lineItemCurrency(tx.LineItems)
		warnings = append(warnings, domain.Warning{
			Kind:    domain.WarningMissingCurrency,
			Message: fmt.Sprintf("payinTotal and payoutTotal carry no currency, line items read as %q", currency),
		})
	}

	c := defaultClassifier.Classify(tx.LineItems, role, currency)
	totals := aggregator.Aggregate(c, currency)

	summary := domain.BreakdownSummary{
		TransactionID:    tx.ID,
		Role:             role,
		UnitType:         unitType,
		VisibleLineItems: c.Visible,
		HiddenCount:      len(c.Hidden),
		Subtotal:         totals.Subtotal,
		Adjustment:       totals.Adjustment,
		Total:            totals.Total,
		LastTransition:   tx.LastTransitionName,
		StateLabel:       labeler.Label(tx.LastTransition, role),
		Warnings:         warnings,
		SkippedLineItems: c.Skipped,
	}
	if summary.LastTransition == "" {
		summary.LastTransition = tx.LastTransition.String()
	}
	if summary.VisibleLineItems == nil {
		summary.VisibleLineItems = []domain.ClassifiedLineItem{}
	}
	if count, ok := booking.UnitCount(unitType); ok {
		summary.UnitCount = &count
	}

	for _, s := range c.Skipped {
		summary.Warnings = append(summary.Warnings, domain.Warning{
			Kind:    domain.WarningMalformedLineItem,
			Message: fmt.Sprintf("line item %d (%q) skipped: %s", s.Index, s.Code, s.Reason),
		})
	}
	summary.Warnings = append(summary.Warnings, totals.Warnings...)
	summary.Warnings = append(summary.Warnings, aggregator.LineTotalWarnings(c)...)
	summary.Warnings = append(summary.Warnings, aggregator.UnitCountWarnings(c, booking, unitType)...)
	for _, problem := range tx.CheckHistory() {
		summary.Warnings = append(summary.Warnings, domain.Warning{Kind: domain.WarningTransitionHistory, Message: problem})
	}
	if tx.LastTransition == domain.TransitionUnknown {
		summary.Warnings = append(summary.Warnings, domain.Warning{
			Kind:    domain.WarningUnknownTransition,
			Message: fmt.Sprintf("unrecognised transition %q", tx.LastTransitionName),
		})
	}
	if msg, ok := aggregator.CheckConsistency(role, totals, tx); !ok {
		summary.ConsistencyWarning = msg
		summary.Warnings = append(summary.Warnings, domain.Warning{Kind: domain.WarningConsistencyMismatch, Message: msg})
	}

	return summary
}

// lineItemCurrency returns the currency of the first priced line item.
func lineItemCurrency(items []domain.LineItem) string {
	for _, item := range items {
		if item.LineTotal != nil && item.LineTotal.Currency != "" {
			return item.LineTotal.Currency
		}
	}
	return ""
}
