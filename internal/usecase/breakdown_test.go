package usecase_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-breakdown/internal/domain"
	"booking-breakdown/internal/usecase"
)

func TestComputeBreakdown(t *testing.T) {
	tests := []struct {
		name           string
		tx             domain.Transaction
		booking        domain.Booking
		role           domain.Role
		unitType       domain.UnitType
		wantSubtotal   int64
		wantAdjustment int64
		wantTotal      int64
		wantVisible    int
		wantHidden     int
		wantState      domain.State
		wantWarnings   []domain.WarningKind
	}{
		{
			name: "provider sale",
			tx: exampleTransaction(domain.TransitionPreauthorize, 9000, 7000,
				nightLine(2, 4500, 9000),
				commissionLine(-2000, -2000),
			),
			booking:        exampleBooking(2),
			role:           domain.RoleProvider,
			unitType:       domain.UnitNight,
			wantSubtotal:   9000,
			wantAdjustment: -2000,
			wantTotal:      7000,
			wantVisible:    2,
			wantState:      domain.StatePreauthorized,
		},
		{
			name: "customer does not see provider commission",
			tx: exampleTransaction(domain.TransitionPreauthorize, 9000, 7000,
				nightLine(2, 4500, 9000),
				commissionLine(-2000, -2000),
			),
			booking:      exampleBooking(2),
			role:         domain.RoleCustomer,
			unitType:     domain.UnitNight,
			wantSubtotal: 9000,
			wantTotal:    9000,
			wantVisible:  1,
			wantHidden:   1,
			wantState:    domain.StatePreauthorized,
		},
		{
			name: "zero commission",
			tx: exampleTransaction(domain.TransitionPreauthorize, 9000, 9000,
				nightLine(2, 4500, 9000),
				commissionLine(0, 0),
			),
			booking:      exampleBooking(2),
			role:         domain.RoleProvider,
			unitType:     domain.UnitNight,
			wantSubtotal: 9000,
			wantTotal:    9000,
			wantVisible:  2,
			wantState:    domain.StatePreauthorized,
		},
		{
			name: "single night accepted",
			tx: exampleTransaction(domain.TransitionAccept, 4500, 2500,
				nightLine(1, 4500, 4500),
				commissionLine(-2000, -2000),
			),
			booking:        exampleBooking(1),
			role:           domain.RoleProvider,
			unitType:       domain.UnitNight,
			wantSubtotal:   4500,
			wantAdjustment: -2000,
			wantTotal:      2500,
			wantVisible:    2,
			wantState:      domain.StateAccepted,
		},
		{
			name: "canceled with every row reversed",
			tx: exampleTransaction(domain.TransitionCancel, 0, 0,
				nightLine(1, 4500, 4500),
				nightLine(-1, 4500, -4500),
				commissionLine(-2000, -2000),
				commissionReversal(-2000, 2000),
			),
			booking:        exampleBooking(1),
			role:           domain.RoleProvider,
			unitType:       domain.UnitNight,
			wantSubtotal:   4500,
			wantAdjustment: -4500,
			wantTotal:      0,
			wantVisible:    4,
			wantState:      domain.StateCanceled,
		},
		{
			name: "line items disagree with payin total",
			tx: exampleTransaction(domain.TransitionPreauthorize, 9000, 8000,
				nightLine(2, 4000, 8000),
			),
			booking:      exampleBooking(2),
			role:         domain.RoleCustomer,
			unitType:     domain.UnitNight,
			wantSubtotal: 8000,
			wantTotal:    8000,
			wantVisible:  1,
			wantState:    domain.StatePreauthorized,
			wantWarnings: []domain.WarningKind{domain.WarningConsistencyMismatch},
		},
		{
			name: "day units",
			tx: exampleTransaction(domain.TransitionMarkDelivered, 9000, 9000,
				domain.LineItem{Code: domain.LineItemDay, IncludeFor: both, Quantity: qty(2), UnitPrice: usdp(4500), LineTotal: usdp(9000)},
			),
			booking:      exampleBooking(2),
			role:         domain.RoleCustomer,
			unitType:     domain.UnitDay,
			wantSubtotal: 9000,
			wantTotal:    9000,
			wantVisible:  1,
			wantState:    domain.StateDelivered,
		},
		{
			name: "unit quantity disagrees with booking",
			tx: exampleTransaction(domain.TransitionPreauthorize, 13500, 13500,
				nightLine(3, 4500, 13500),
			),
			booking:      exampleBooking(2),
			role:         domain.RoleCustomer,
			unitType:     domain.UnitNight,
			wantSubtotal: 13500,
			wantTotal:    13500,
			wantVisible:  1,
			wantState:    domain.StatePreauthorized,
			wantWarnings: []domain.WarningKind{domain.WarningUnitCountMismatch},
		},
		{
			name: "line total is not unit price times quantity",
			tx: exampleTransaction(domain.TransitionPreauthorize, 9500, 9500,
				nightLine(2, 4500, 9500),
			),
			booking:      exampleBooking(2),
			role:         domain.RoleCustomer,
			unitType:     domain.UnitNight,
			wantSubtotal: 9500,
			wantTotal:    9500,
			wantVisible:  1,
			wantState:    domain.StatePreauthorized,
			wantWarnings: []domain.WarningKind{domain.WarningLineTotalMismatch},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usecase.ComputeBreakdown(tt.tx, tt.booking, tt.role, tt.unitType)

			assert.Equal(t, usd(tt.wantSubtotal), got.Subtotal)
			assert.Equal(t, usd(tt.wantAdjustment), got.Adjustment)
			assert.Equal(t, usd(tt.wantTotal), got.Total)
			assert.Len(t, got.VisibleLineItems, tt.wantVisible)
			assert.Equal(t, tt.wantHidden, got.HiddenCount)
			assert.Equal(t, tt.wantState, got.StateLabel.State)

			var kinds []domain.WarningKind
			for _, w := range got.Warnings {
				kinds = append(kinds, w.Kind)
			}
			assert.Equal(t, tt.wantWarnings, kinds)
			assert.Equal(t, got.HasWarning(domain.WarningConsistencyMismatch), got.ConsistencyWarning != "")
		})
	}
}

func TestComputeBreakdown_RoundTrip(t *testing.T) {
	tx := exampleTransaction(domain.TransitionPreauthorize, 9000, 7000,
		nightLine(2, 4500, 9000),
		commissionLine(-2000, -2000),
	)

	got := usecase.ComputeBreakdown(tx, exampleBooking(2), domain.RoleProvider, domain.UnitNight)

	assert.Equal(t, usd(7000), got.Total)
	assert.Empty(t, got.ConsistencyWarning)
	assert.Empty(t, got.Warnings)
	assert.Empty(t, got.SkippedLineItems)
	require.NotNil(t, got.UnitCount)
	assert.Equal(t, int64(2), *got.UnitCount)
	assert.Equal(t, "example-transaction", got.TransactionID)
	assert.Equal(t, domain.BucketUnit, got.VisibleLineItems[0].Bucket)
	assert.Equal(t, domain.BucketCommission, got.VisibleLineItems[1].Bucket)
}

func TestComputeBreakdown_Cancellation(t *testing.T) {
	tx := exampleTransaction(domain.TransitionCancel, 0, 0,
		nightLine(1, 4500, 4500),
		nightLine(-1, 4500, -4500),
		commissionLine(-2000, -2000),
		commissionReversal(-2000, 2000),
	)

	got := usecase.ComputeBreakdown(tx, exampleBooking(1), domain.RoleProvider, domain.UnitNight)

	assert.Equal(t, usd(0), got.Total)
	assert.Empty(t, got.ConsistencyWarning)
	require.Len(t, got.VisibleLineItems, 4)
	for i, item := range got.VisibleLineItems {
		assert.Equal(t, tx.LineItems[i], item.LineItem, "row %d must be rendered unchanged", i)
	}
	require.NotNil(t, got.VisibleLineItems[1].ReversalOf)
	assert.Equal(t, 0, *got.VisibleLineItems[1].ReversalOf)
	require.NotNil(t, got.VisibleLineItems[3].ReversalOf)
	assert.Equal(t, 2, *got.VisibleLineItems[3].ReversalOf)
	assert.Equal(t, domain.StateDisplay{
		State:          domain.StateCanceled,
		Section:        domain.SectionCanceled,
		TotalKind:      domain.TotalRefunded,
		ShowCommission: true,
		CommissionCode: domain.LineItemProviderCommission,
		ShowReversals:  true,
	}, got.StateLabel)

	customer := usecase.ComputeBreakdown(tx, exampleBooking(1), domain.RoleCustomer, domain.UnitNight)
	assert.Equal(t, usd(0), customer.Total)
	assert.Len(t, customer.VisibleLineItems, 2)
	assert.Equal(t, 2, customer.HiddenCount)
}

// The commission reversal here keeps the sign of the original commission, so
// the rows net to -4000 while the payout total says 0. The breakdown keeps
// the computed figure and reports the divergence.
func TestComputeBreakdown_SameSignedCommissionReversal(t *testing.T) {
	reversal := commissionReversal(2000, -2000)
	tx := exampleTransaction(domain.TransitionCancel, 0, 0,
		nightLine(1, 4500, 4500),
		nightLine(-1, 4500, -4500),
		commissionLine(-2000, -2000),
		reversal,
	)

	got := usecase.ComputeBreakdown(tx, exampleBooking(1), domain.RoleProvider, domain.UnitNight)

	assert.Equal(t, usd(-4000), got.Total)
	assert.Contains(t, got.ConsistencyWarning, "payoutTotal")
	require.NotNil(t, got.VisibleLineItems[3].ReversalOf)
	assert.Equal(t, 2, *got.VisibleLineItems[3].ReversalOf)
}

func TestComputeBreakdown_PartialReversal(t *testing.T) {
	// One of two nights is reversed and the commission is kept.
	tx := exampleTransaction(domain.TransitionCancel, 4500, 2500,
		nightLine(2, 4500, 9000),
		nightLine(-1, 4500, -4500),
		commissionLine(-2000, -2000),
	)

	provider := usecase.ComputeBreakdown(tx, exampleBooking(2), domain.RoleProvider, domain.UnitNight)
	assert.Equal(t, usd(9000), provider.Subtotal)
	assert.Equal(t, usd(-6500), provider.Adjustment)
	assert.Equal(t, usd(2500), provider.Total)
	assert.Empty(t, provider.ConsistencyWarning)
	assert.Len(t, provider.VisibleLineItems, 3)

	customer := usecase.ComputeBreakdown(tx, exampleBooking(2), domain.RoleCustomer, domain.UnitNight)
	assert.Equal(t, usd(4500), customer.Total)
	assert.Empty(t, customer.ConsistencyWarning)

	// Authoritative totals that assume a full reversal are flagged, not adopted.
	fullRefund := tx
	fullRefund.PayinTotal = usd(0)
	customer = usecase.ComputeBreakdown(fullRefund, exampleBooking(2), domain.RoleCustomer, domain.UnitNight)
	assert.Equal(t, usd(4500), customer.Total)
	assert.NotEmpty(t, customer.ConsistencyWarning)
}

func TestComputeBreakdown_UnknownTransition(t *testing.T) {
	tx := exampleTransaction(domain.TransitionPreauthorize, 9000, 9000, nightLine(2, 4500, 9000))
	tx.LastTransition = domain.ParseTransition("transition/request-payment")
	tx.LastTransitionName = "transition/request-payment"
	tx.Transitions = append(tx.Transitions, domain.TransitionEntry{
		At:         created.Add(1),
		By:         domain.ActorSystem,
		Transition: tx.LastTransition,
		Name:       tx.LastTransitionName,
	})

	var got domain.BreakdownSummary
	require.NotPanics(t, func() {
		got = usecase.ComputeBreakdown(tx, exampleBooking(2), domain.RoleProvider, domain.UnitNight)
	})

	assert.Equal(t, domain.StateFallback, got.StateLabel.State)
	assert.Equal(t, domain.SectionUnknown, got.StateLabel.Section)
	assert.True(t, got.HasWarning(domain.WarningUnknownTransition))
	assert.Equal(t, "transition/request-payment", got.LastTransition)
	assert.Equal(t, usd(9000), got.Total)
	assert.Empty(t, got.ConsistencyWarning)
}

func TestComputeBreakdown_MalformedLineItems(t *testing.T) {
	missingPrice := nightLine(1, 4500, 4500)
	missingPrice.UnitPrice = nil
	foreign := commissionLine(-2000, -2000)
	foreign.LineTotal = &domain.Money{Amount: -2000, Currency: "EUR"}
	foreign.UnitPrice = &domain.Money{Amount: -2000, Currency: "EUR"}

	tx := exampleTransaction(domain.TransitionPreauthorize, 9000, 9000,
		nightLine(2, 4500, 9000),
		missingPrice,
		foreign,
	)

	var got domain.BreakdownSummary
	require.NotPanics(t, func() {
		got = usecase.ComputeBreakdown(tx, exampleBooking(2), domain.RoleProvider, domain.UnitNight)
	})

	assert.Equal(t, usd(9000), got.Total)
	assert.Len(t, got.VisibleLineItems, 1)
	require.Len(t, got.SkippedLineItems, 2)
	assert.Equal(t, 1, got.SkippedLineItems[0].Index)
	assert.Contains(t, got.SkippedLineItems[0].Reason, "UnitPrice")
	assert.Equal(t, 2, got.SkippedLineItems[1].Index)
	assert.Contains(t, got.SkippedLineItems[1].Reason, "EUR")
	assert.True(t, got.HasWarning(domain.WarningMalformedLineItem))
	assert.Empty(t, got.ConsistencyWarning)
}

func TestComputeBreakdown_ExactSums(t *testing.T) {
	prices := []int64{1, 99, 4500, 123457, 999999999}
	for _, price := range prices {
		var (
			items []domain.LineItem
			want  int64
		)
		for q := int64(1); q <= 5; q++ {
			items = append(items, domain.LineItem{
				Code:       "line-item/extra",
				IncludeFor: both,
				Quantity:   qty(q),
				UnitPrice:  usdp(price),
				LineTotal:  usdp(price * q),
			})
			want += price * q
		}
		items = append(items, commissionLine(-price, -price))
		want -= price

		tx := exampleTransaction(domain.TransitionAccept, want+price, want, items...)
		got := usecase.ComputeBreakdown(tx, exampleBooking(1), domain.RoleProvider, domain.UnitUnits)

		assert.Equal(t, usd(want), got.Total, "price %d", price)
		assert.Empty(t, got.Warnings, "price %d", price)
	}
}

func TestComputeBreakdown_Idempotent(t *testing.T) {
	tx := exampleTransaction(domain.TransitionCancel, 0, 0,
		nightLine(1, 4500, 4500),
		nightLine(-1, 4500, -4500),
		commissionLine(-2000, -2000),
		commissionReversal(-2000, 2000),
	)
	booking := exampleBooking(1)

	first := usecase.ComputeBreakdown(tx, booking, domain.RoleProvider, domain.UnitNight)
	second := usecase.ComputeBreakdown(tx, booking, domain.RoleProvider, domain.UnitNight)
	assert.Equal(t, first, second)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestComputeBreakdown_DoesNotMutateInput(t *testing.T) {
	tx := exampleTransaction(domain.TransitionCancel, 0, 0,
		nightLine(1, 4500, 4500),
		nightLine(-1, 4500, -4500),
	)
	before, err := json.Marshal(tx)
	require.NoError(t, err)

	usecase.ComputeBreakdown(tx, exampleBooking(1), domain.RoleCustomer, domain.UnitNight)

	after, err := json.Marshal(tx)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestComputeBreakdown_OverflowNeverWraps(t *testing.T) {
	const maxAmount = 9223372036854775807
	fee := func(amount int64) domain.LineItem {
		return domain.LineItem{Code: "line-item/fee", IncludeFor: both, UnitPrice: usdp(amount), LineTotal: usdp(amount)}
	}
	// A wrapped sum of these rows would equal the payin total exactly.
	tx := exampleTransaction(domain.TransitionAccept, -maxAmount, 0, fee(maxAmount), fee(2))

	var got domain.BreakdownSummary
	require.NotPanics(t, func() {
		got = usecase.ComputeBreakdown(tx, exampleBooking(1), domain.RoleCustomer, domain.UnitUnits)
	})

	assert.Equal(t, usd(maxAmount), got.Total)
	assert.True(t, got.HasWarning(domain.WarningAmountOverflow))
	assert.NotEmpty(t, got.ConsistencyWarning)
}

func TestComputeBreakdown_CustomerCommission(t *testing.T) {
	serviceFee := domain.LineItem{
		Code:       domain.LineItemCustomerCommission,
		IncludeFor: domain.NewRoleSet("customer"),
		UnitPrice:  usdp(500),
		LineTotal:  usdp(500),
	}
	tx := exampleTransaction(domain.TransitionAccept, 9500, 7000,
		nightLine(2, 4500, 9000),
		serviceFee,
		commissionLine(-2000, -2000),
	)

	customer := usecase.ComputeBreakdown(tx, exampleBooking(2), domain.RoleCustomer, domain.UnitNight)
	assert.Equal(t, usd(9500), customer.Total)
	assert.Empty(t, customer.Warnings)
	require.Len(t, customer.VisibleLineItems, 2)
	assert.Equal(t, domain.BucketCommission, customer.VisibleLineItems[1].Bucket)
	assert.True(t, customer.StateLabel.ShowCommission)
	assert.Equal(t, customer.VisibleLineItems[1].Code, customer.StateLabel.CommissionCode)

	provider := usecase.ComputeBreakdown(tx, exampleBooking(2), domain.RoleProvider, domain.UnitNight)
	assert.Equal(t, usd(7000), provider.Total)
	require.Len(t, provider.VisibleLineItems, 2)
	assert.Equal(t, provider.VisibleLineItems[1].Code, provider.StateLabel.CommissionCode)
}

func TestComputeBreakdown_MissingCurrency(t *testing.T) {
	tx := exampleTransaction(domain.TransitionAccept, 0, 0, nightLine(2, 4500, 9000))
	tx.PayinTotal = domain.Money{}
	tx.PayoutTotal = domain.Money{}

	got := usecase.ComputeBreakdown(tx, exampleBooking(2), domain.RoleCustomer, domain.UnitNight)

	assert.Equal(t, usd(9000), got.Total)
	assert.Len(t, got.VisibleLineItems, 1)
	assert.Empty(t, got.SkippedLineItems)
	assert.False(t, got.HasWarning(domain.WarningMalformedLineItem))
	require.NotEmpty(t, got.Warnings)
	assert.Equal(t, domain.WarningMissingCurrency, got.Warnings[0].Kind)
	assert.Contains(t, got.Warnings[0].Message, `"USD"`)
	assert.NotEmpty(t, got.ConsistencyWarning)
}

func TestComputeBreakdown_LastTransitionName(t *testing.T) {
	tx := exampleTransaction(domain.TransitionAccept, 9000, 9000, nightLine(2, 4500, 9000))
	got := usecase.ComputeBreakdown(tx, exampleBooking(2), domain.RoleCustomer, domain.UnitNight)
	assert.Equal(t, "transition/accept", got.LastTransition)

	tx.LastTransitionName = ""
	got = usecase.ComputeBreakdown(tx, exampleBooking(2), domain.RoleCustomer, domain.UnitNight)
	assert.Equal(t, "transition/accept", got.LastTransition)
}
