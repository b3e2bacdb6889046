package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"booking-breakdown/internal/domain"
)

var (
	unitCodes = map[string]bool{
		domain.LineItemNight: true,
		domain.LineItemDay:   true,
		domain.LineItemUnits: true,
	}
	commissionCodes = map[string]bool{
		domain.LineItemProviderCommission: true,
		domain.LineItemCustomerCommission: true,
	}
)

// Classification is the result of splitting line items for one viewer role.
type Classification struct {
	Visible []domain.ClassifiedLineItem
	Hidden  []domain.LineItem
	Skipped []domain.SkippedLineItem
}

// InBucket returns the visible items of bucket b in their original order.
func (c Classification) InBucket(b domain.Bucket) []domain.ClassifiedLineItem {
	var items []domain.ClassifiedLineItem
	for _, item := range c.Visible {
		if item.Bucket == b {
			items = append(items, item)
		}
	}
	return items
}

// LineItemClassifier partitions line items by role visibility and kind.
type LineItemClassifier struct {
	validate *validator.Validate
}

// NewLineItemClassifier creates a classifier.
func NewLineItemClassifier() *LineItemClassifier {
	return &LineItemClassifier{validate: validator.New()}
}

// Classify splits items into visible and hidden sequences for role and
// buckets the visible ones. Items that fail validation or are priced in a
// currency other than currency are skipped. It never fails.
func (c *LineItemClassifier) Classify(items []domain.LineItem, role domain.Role, currency string) Classification {
	var result Classification

	for i, item := range items {
		if reason := c.malformed(item, currency); reason != "" {
			result.Skipped = append(result.Skipped, domain.SkippedLineItem{Index: i, Code: item.Code, Reason: reason})
			continue
		}
		if !item.IncludeFor.Has(role) {
			result.Hidden = append(result.Hidden, item)
			continue
		}
		result.Visible = append(result.Visible, classify(item))
	}

	pairReversals(result.Visible)
	return result
}

func (c *LineItemClassifier) malformed(item domain.LineItem, currency string) string {
	if err := c.validate.Struct(item); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err.Error()
		}
		reasons := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			reasons = append(reasons, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
		}
		return strings.Join(reasons, "; ")
	}
	if item.UnitPrice.Currency != currency || item.LineTotal.Currency != currency {
		return fmt.Sprintf("priced in %s/%s, transaction is in %s", item.UnitPrice.Currency, item.LineTotal.Currency, currency)
	}
	return ""
}

func classify(item domain.LineItem) domain.ClassifiedLineItem {
	ci := domain.ClassifiedLineItem{LineItem: item, Bucket: domain.BucketOther}
	known := unitCodes[item.Code] || commissionCodes[item.Code]
	switch {
	case item.IsReversal():
		// reversals always adjust, whatever they reverse
	case unitCodes[item.Code] && item.Quantity != nil:
		ci.Bucket = domain.BucketUnit
	case commissionCodes[item.Code]:
		ci.Bucket = domain.BucketCommission
	}
	ci.Generic = !known
	return ci
}

// pairReversals links each reversal to the first unpaired original row with
// the same code and unit price magnitude.
func pairReversals(items []domain.ClassifiedLineItem) {
	paired := make(map[int]bool)
	for i := range items {
		if !items[i].IsReversal() {
			continue
		}
		for j := range items {
			if paired[j] || items[j].IsReversal() || items[j].Code != items[i].Code {
				continue
			}
			if items[j].UnitPrice.Abs() != items[i].UnitPrice.Abs() {
				continue
			}
			paired[j] = true
			original := j
			items[i].ReversalOf = &original
			break
		}
	}
}
