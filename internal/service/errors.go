package service

import (
	"errors"
	"fmt"
)

// Error kinds returned by OrganizerService. Callers match with errors.Is;
// the wrapped message is what gets shown to the organizer.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidationFailed   = errors.New("validation failed")
	ErrTicketTypeHasSales = errors.New("cannot delete ticket type with existing sales")
	ErrSoldOut            = errors.New("ticket type is sold out")
	ErrTicketTypeInactive = errors.New("ticket type is not on sale")
	ErrNoOrganizer        = errors.New("no organizer in session")
	ErrStorage            = errors.New("storage failure")
)

var (
	errEventNotFound    = fmt.Errorf("event %w", ErrNotFound)
	errTicketNotFound   = fmt.Errorf("ticket type %w", ErrNotFound)
	errAttendeeNotFound = fmt.Errorf("attendee %w", ErrNotFound)
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, fmt.Sprintf(format, args...))
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}
