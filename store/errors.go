package store

import "errors"

var (
	ErrBookableNotFound  = errors.New("bookable not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrBookableInactive  = errors.New("bookable is not active")
	ErrRangeTooLong      = errors.New("booking range exceeds the maximum number of units")
	ErrBelowMinimumUnits = errors.New("booking is shorter than the bookable's minimum units")
	ErrAboveMaximumUnits = errors.New("booking is longer than the bookable's maximum units")
	ErrNotCancelable     = errors.New("bookable does not allow cancellation")
	ErrAlreadyCanceled   = errors.New("booking is already canceled")

	ErrAvailabilityNotFound = errors.New("availability not found")
	ErrAddonNotFound        = errors.New("addon not found")

	ErrTicketableNotFound    = errors.New("ticketable not found")
	ErrTicketNotFound        = errors.New("ticket not found")
	ErrTicketInactive        = errors.New("ticket is not active")
	ErrTicketBookingNotFound = errors.New("ticket booking not found")
)
