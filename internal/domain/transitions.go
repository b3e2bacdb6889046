package domain

// Transition is the closed set of transaction transitions. Identifiers the
// set does not contain parse to TransitionUnknown.
type Transition uint8

const (
	TransitionUnknown Transition = iota
	TransitionPreauthorize
	TransitionAccept
	TransitionDecline
	TransitionAutoDecline
	TransitionCancel
	TransitionMarkDelivered
)

var transitionNames = map[Transition]string{
	TransitionPreauthorize:  "transition/preauthorize",
	TransitionAccept:        "transition/accept",
	TransitionDecline:       "transition/decline",
	TransitionAutoDecline:   "transition/auto-decline",
	TransitionCancel:        "transition/cancel",
	TransitionMarkDelivered: "transition/mark-delivered",
}

// ParseTransition maps a transition identifier to the enumeration.
func ParseTransition(name string) Transition {
	for t, n := range transitionNames {
		if n == name {
			return t
		}
	}
	return TransitionUnknown
}

func (t Transition) String() string {
	if name, ok := transitionNames[t]; ok {
		return name
	}
	return "transition/unknown"
}

// MarshalText encodes the transition identifier.
func (t Transition) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
