package attendance

import "errors"

var (
	ErrNotSignedUp       = errors.New("not signed up for this shift")
	ErrAlreadyCheckedIn  = errors.New("an open check-in session already exists")
	ErrAlreadyCheckedOut = errors.New("session has already been checked out")
	ErrSessionNotFound   = errors.New("attendance session not found")
	ErrNotSessionOwner   = errors.New("not authorized to access this session")
	ErrShiftNotActive    = errors.New("shift is cancelled or completed")
)
