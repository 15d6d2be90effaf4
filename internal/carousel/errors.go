package carousel

import "errors"

var (
	// ErrCapacityExceeded is returned by AddEntry once the carousel holds MaxPositions entries.
	ErrCapacityExceeded = errors.New("carousel is full")
	// ErrIllegalPromotion is returned when a reorder would place a hidden entry in the live section.
	ErrIllegalPromotion = errors.New("only visible entries can be moved into the live section")
	// ErrUnresolvableReference is returned when a reorder names an entry that is no longer present.
	ErrUnresolvableReference = errors.New("entry not found")
)
