package usecase_test

import (
	"time"

	"booking-breakdown/internal/domain"
)

var (
	created = time.Date(2017, 2, 1, 0, 0, 0, 0, time.UTC)
	both    = domain.NewRoleSet("customer", "provider")
	prov    = domain.NewRoleSet("provider")
)

func usd(amount int64) domain.Money {
	return domain.NewMoney(amount, "USD")
}

func usdp(amount int64) *domain.Money {
	m := usd(amount)
	return &m
}

func qty(n int64) *domain.Quantity {
	q := domain.NewQuantity(n)
	return &q
}

func nightLine(quantity, unitPrice, lineTotal int64) domain.LineItem {
	return domain.LineItem{
		Code:       domain.LineItemNight,
		IncludeFor: both,
		Quantity:   qty(quantity),
		UnitPrice:  usdp(unitPrice),
		LineTotal:  usdp(lineTotal),
		Reversal:   quantity < 0,
	}
}

func commissionLine(unitPrice, lineTotal int64) domain.LineItem {
	return domain.LineItem{
		Code:       domain.LineItemProviderCommission,
		IncludeFor: prov,
		UnitPrice:  usdp(unitPrice),
		LineTotal:  usdp(lineTotal),
	}
}

func commissionReversal(unitPrice, lineTotal int64) domain.LineItem {
	li := commissionLine(unitPrice, lineTotal)
	li.Quantity = qty(-1)
	li.Reversal = true
	return li
}

func exampleTransaction(last domain.Transition, payin, payout int64, items ...domain.LineItem) domain.Transaction {
	tx := domain.Transaction{
		ID:                 "example-transaction",
		CreatedAt:          created,
		LastTransitionedAt: created,
		LastTransition:     last,
		LastTransitionName: last.String(),
		Transitions: []domain.TransitionEntry{
			{At: created, By: domain.ActorCustomer, Transition: domain.TransitionPreauthorize, Name: domain.TransitionPreauthorize.String()},
		},
		PayinTotal:  usd(payin),
		PayoutTotal: usd(payout),
		LineItems:   items,
	}
	if last != domain.TransitionPreauthorize {
		at := created.Add(24 * time.Hour)
		tx.LastTransitionedAt = at
		tx.Transitions = append(tx.Transitions, domain.TransitionEntry{At: at, By: domain.ActorProvider, Transition: last, Name: last.String()})
	}
	return tx
}

func exampleBooking(nights int) domain.Booking {
	start := time.Date(2017, 4, 14, 0, 0, 0, 0, time.UTC)
	return domain.Booking{ID: "example-booking", Start: start, End: start.AddDate(0, 0, nights)}
}
