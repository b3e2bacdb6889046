package domain

import "errors"

var (
	ErrCurrencyMismatch  = errors.New("currency mismatch")
	ErrAmountOverflow    = errors.New("amount overflows int64")
	ErrMalformedLineItem = errors.New("malformed line item")
	ErrInvalidBooking    = errors.New("invalid booking period")
	ErrUnknownRole       = errors.New("unknown viewer role")
	ErrUnknownUnitType   = errors.New("unknown unit type")
	ErrUnsupportedFormat = errors.New("unsupported fixture format")
)
