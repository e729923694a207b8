package shift

import "context"

// ShiftService defines business logic for shifts and the signup ledger
type ShiftService interface {
	// CreateShift creates a new open shift (admin)
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)

	// UpdateShift edits shift details (admin)
	UpdateShift(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)

	// CancelShift cancels a shift at any time before completion (admin)
	CancelShift(ctx context.Context, shiftID string) (ShiftResponse, error)

	// GetShift retrieves a single shift with its signup count
	GetShift(ctx context.Context, shiftID string) (ShiftResponse, error)

	// ListShifts retrieves shifts matching the filter
	ListShifts(ctx context.Context, filter ListShiftsFilter) ([]ShiftResponse, error)

	// SignUp reserves a slot for the authenticated volunteer. The capacity
	// check and insert happen atomically.
	SignUp(ctx context.Context, shiftID string) (SignupResponse, error)

	// CancelSignup releases the authenticated volunteer's slot before the
	// shift starts
	CancelSignup(ctx context.Context, shiftID string) error

	// MyShifts lists shifts the authenticated volunteer is signed up for
	MyShifts(ctx context.Context) ([]ShiftResponse, error)

	// Roster lists the volunteers signed up for a shift (admin)
	Roster(ctx context.Context, shiftID string) ([]SignupResponse, error)
}
