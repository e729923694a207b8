package shift

import "errors"

var (
	ErrShiftNotFound      = errors.New("shift not found")
	ErrShiftNotOpen       = errors.New("shift is not open for signups")
	ErrShiftAlreadyBegun  = errors.New("shift has already started")
	ErrCapacityExceeded   = errors.New("shift is already at full capacity")
	ErrAlreadySignedUp    = errors.New("already signed up for this shift")
	ErrSignupNotFound     = errors.New("signup not found")
	ErrInvalidTimeWindow  = errors.New("shift must end after it starts")
	ErrShiftNotCancelable = errors.New("shift has already completed or been cancelled")
)
