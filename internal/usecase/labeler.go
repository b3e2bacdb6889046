package usecase

import "booking-breakdown/internal/domain"

// StateLabeler maps the last transition of a transaction to display state.
type StateLabeler struct{}

// Label is total over domain.Transition: anything it does not recognise,
// including TransitionUnknown, gets the fallback state.
//
// Each role sees the commission charged to it in every state, provisionally
// before acceptance. Commission rows visible to a role are summed into its
// total, so they are never hidden.
func (StateLabeler) Label(t domain.Transition, role domain.Role) domain.StateDisplay {
	d := domain.StateDisplay{ShowCommission: true, CommissionCode: role.CommissionCode()}

	switch t {
	case domain.TransitionPreauthorize:
		d.State, d.Section, d.TotalKind = domain.StatePreauthorized, domain.SectionPending, domain.TotalExpected
	case domain.TransitionAccept:
		d.State, d.Section, d.TotalKind = domain.StateAccepted, domain.SectionConfirmed, domain.TotalExpected
	case domain.TransitionDecline:
		d.State, d.Section, d.TotalKind = domain.StateDeclined, domain.SectionRejected, domain.TotalVoid
	case domain.TransitionAutoDecline:
		d.State, d.Section, d.TotalKind = domain.StateAutoDeclined, domain.SectionRejected, domain.TotalVoid
	case domain.TransitionCancel:
		d.State, d.Section, d.TotalKind = domain.StateCanceled, domain.SectionCanceled, domain.TotalRefunded
		d.ShowReversals = true
	case domain.TransitionMarkDelivered:
		d.State, d.Section, d.TotalKind = domain.StateDelivered, domain.SectionCompleted, domain.TotalFinal
	default:
		return fallback(role)
	}
	return d
}

// fallback shows every row so nothing is hidden from a state we cannot read.
func fallback(role domain.Role) domain.StateDisplay {
	return domain.StateDisplay{
		State:          domain.StateFallback,
		Section:        domain.SectionUnknown,
		TotalKind:      domain.TotalUnknown,
		ShowCommission: true,
		CommissionCode: role.CommissionCode(),
		ShowReversals:  true,
	}
}
