package domain

// Bucket is the semantic kind of a visible line item.
type Bucket string

const (
	BucketUnit       Bucket = "unit"
	BucketCommission Bucket = "commission"
	BucketOther      Bucket = "other"
)

// ClassifiedLineItem is a visible line item annotated for rendering.
type ClassifiedLineItem struct {
	LineItem
	Bucket Bucket `json:"bucket"`
	// Generic marks codes the renderer has no dedicated row for.
	Generic bool `json:"generic,omitempty"`
	// ReversalOf is the index in VisibleLineItems of the row this one reverses.
	ReversalOf *int `json:"reversalOf,omitempty"`
}

// SkippedLineItem is a malformed line item left out of aggregation.
type SkippedLineItem struct {
	Index  int    `json:"index"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// WarningKind classifies a non-fatal anomaly found while computing a breakdown.
type WarningKind string

const (
	WarningConsistencyMismatch WarningKind = "consistency_mismatch"
	WarningUnknownTransition   WarningKind = "unknown_transition"
	WarningMalformedLineItem   WarningKind = "malformed_line_item"
	WarningLineTotalMismatch   WarningKind = "line_total_mismatch"
	WarningUnitCountMismatch   WarningKind = "unit_count_mismatch"
	WarningTransitionHistory   WarningKind = "transition_history"
	WarningAmountOverflow      WarningKind = "amount_overflow"
	WarningMissingCurrency     WarningKind = "missing_currency"
)

// Warning is a diagnostic attached to a breakdown.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

// State is the booking state derived from the last transition.
type State string

const (
	StatePreauthorized State = "preauthorized"
	StateAccepted      State = "accepted"
	StateDeclined      State = "declined"
	StateAutoDeclined  State = "auto-declined"
	StateCanceled      State = "canceled"
	StateDelivered     State = "delivered"
	StateFallback      State = "fallback"
)

// Section is the display section a breakdown is styled for.
type Section string

const (
	SectionPending   Section = "pending"
	SectionConfirmed Section = "confirmed"
	SectionRejected  Section = "rejected"
	SectionCanceled  Section = "canceled"
	SectionCompleted Section = "completed"
	SectionUnknown   Section = "unknown"
)

// TotalKind tells the renderer how to label the total row.
type TotalKind string

const (
	// TotalExpected is a total that will be charged or paid out.
	TotalExpected TotalKind = "expected"
	// TotalFinal is a settled total.
	TotalFinal TotalKind = "final"
	// TotalVoid is a total that was never charged.
	TotalVoid     TotalKind = "void"
	TotalRefunded TotalKind = "refunded"
	TotalUnknown  TotalKind = "unknown"
)

// StateDisplay is what the state labeler decides for one transition and role.
type StateDisplay struct {
	State          State     `json:"state"`
	Section        Section   `json:"section"`
	TotalKind      TotalKind `json:"totalKind"`
	ShowCommission bool      `json:"showCommission"`
	CommissionCode string    `json:"commissionCode"`
	ShowReversals  bool      `json:"showReversals"`
}

// BreakdownSummary is the display-ready result for a single render pass.
type BreakdownSummary struct {
	TransactionID      string               `json:"transactionId"`
	Role               Role                 `json:"role"`
	UnitType           UnitType             `json:"unitType"`
	UnitCount          *int64               `json:"unitCount,omitempty"`
	VisibleLineItems   []ClassifiedLineItem `json:"visibleLineItems"`
	HiddenCount        int                  `json:"hiddenCount"`
	Subtotal           Money                `json:"subtotal"`
	Adjustment         Money                `json:"adjustment"`
	Total              Money                `json:"total"`
	LastTransition     string               `json:"lastTransition"`
	StateLabel         StateDisplay         `json:"stateLabel"`
	ConsistencyWarning string               `json:"consistencyWarning,omitempty"`
	Warnings           []Warning            `json:"warnings,omitempty"`
	SkippedLineItems   []SkippedLineItem    `json:"skippedLineItems,omitempty"`
}

// HasWarning reports whether a warning of the given kind is attached.
func (s BreakdownSummary) HasWarning(kind WarningKind) bool {
	for _, w := range s.Warnings {
		if w.Kind == kind {
			return true
		}
	}
	return false
}

// FixtureResult is the outcome of checking one fixture from one role's view.
type FixtureResult struct {
	Path     string    `json:"path"`
	Role     Role      `json:"role"`
	Total    Money     `json:"total"`
	State    State     `json:"state"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// ValidationReport is the top-level structure for the validate command output.
type ValidationReport struct {
	FixturesChecked int             `json:"fixtures_checked"`
	ViewsWithIssues int             `json:"views_with_issues"`
	Results         []FixtureResult `json:"results"`
}
