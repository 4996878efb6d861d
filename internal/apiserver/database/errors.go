package database

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidState    = errors.New("invalid state transition")
	ErrConflict        = errors.New("unique constraint violated")
	ErrInvalidArgument = errors.New("invalid argument")
)

var (
	ErrReportLocked    = fmt.Errorf("%w: cannot modify approved report", ErrInvalidState)
	ErrAlreadyApproved = fmt.Errorf("%w: report already approved", ErrInvalidState)
	ErrNotApproved     = fmt.Errorf("%w: report is not approved", ErrInvalidState)
	ErrOrderNotPending = fmt.Errorf("%w: only pending orders can be cancelled", ErrInvalidState)
	ErrOrderClosed     = fmt.Errorf("%w: order is closed", ErrInvalidState)

	ErrEmptyIDs   = fmt.Errorf("%w: farmer id list is empty", ErrInvalidArgument)
	ErrEmptyOrder = fmt.Errorf("%w: order has no items", ErrInvalidArgument)
)

// FeedTypeUnavailableError reports an order line naming a feed type that is
// missing or not available.
type FeedTypeUnavailableError struct {
	ID uint
}

func (e *FeedTypeUnavailableError) Error() string {
	return fmt.Sprintf("feed type %d is not available", e.ID)
}

func (e *FeedTypeUnavailableError) Unwrap() error { return ErrInvalidArgument }

// OrderClosedError reports a change to a delivered or cancelled order
type OrderClosedError struct {
	Status OrderStatus
}

func (e *OrderClosedError) Error() string {
	return fmt.Sprintf("order is already %s", e.Status)
}

func (e *OrderClosedError) Unwrap() error { return ErrOrderClosed }

// translate maps driver errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isDuplicate(err):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate entry")
}
