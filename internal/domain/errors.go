package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// SeatConflictError reports seats that are already held for the
// requested bus and journey date. Seats lists every offending number so
// the client can re-prompt seat selection in one round trip.
type SeatConflictError struct {
	Seats []int
	Err   error
}

func (e SeatConflictError) Error() string {
	if len(e.Seats) == 0 {
		return "seat already booked"
	}
	parts := make([]string, 0, len(e.Seats))
	for _, s := range e.Seats {
		parts = append(parts, strconv.Itoa(s))
	}
	return fmt.Sprintf("seat(s) %s already booked", strings.Join(parts, ", "))
}

func (e SeatConflictError) Unwrap() error { return e.Err }

// AlreadyCancelledError signals a cancel on a booking that was already
// cancelled. The caller is told explicitly; nothing is silently ignored.
type AlreadyCancelledError struct {
	BookingID int64
}

func (e AlreadyCancelledError) Error() string {
	return fmt.Sprintf("booking %d is already cancelled", e.BookingID)
}

// BusyError signals lock or transaction contention that outlasted the
// bounded wait. The operation left no state change; callers may retry.
type BusyError struct {
	Key string
	Err error
}

func (e BusyError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("seat inventory busy for %s, retry later", e.Key)
	}
	return "seat inventory busy, retry later"
}

func (e BusyError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsSeatConflict(err error) bool {
	var target SeatConflictError
	return errors.As(err, &target)
}

// ConflictSeats extracts the offending seat numbers from a seat
// conflict, or nil when err is not one.
func ConflictSeats(err error) []int {
	var target SeatConflictError
	if errors.As(err, &target) {
		return target.Seats
	}
	return nil
}

func IsAlreadyCancelled(err error) bool {
	var target AlreadyCancelledError
	return errors.As(err, &target)
}

func IsBusy(err error) bool {
	var target BusyError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
