package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShift_IsTerminal(t *testing.T) {
	assert.False(t, (&Shift{Status: StatusOpen}).IsTerminal())
	assert.False(t, (&Shift{Status: StatusFull}).IsTerminal())
	assert.True(t, (&Shift{Status: StatusCompleted}).IsTerminal())
	assert.True(t, (&Shift{Status: StatusCancelled}).IsTerminal())
}

func TestShift_AcceptsSignups(t *testing.T) {
	now := time.Now().UTC()
	future := now.Add(2 * time.Hour)

	s := &Shift{Status: StatusOpen, StartsAt: future}
	assert.True(t, s.AcceptsSignups(now))

	// Full shifts reject signups even before start
	s.Status = StatusFull
	assert.False(t, s.AcceptsSignups(now))

	// Open shifts reject signups once the start time passed
	s.Status = StatusOpen
	assert.False(t, s.AcceptsSignups(future.Add(time.Minute)))
}

func TestCreateShiftRequest_Validate_Success(t *testing.T) {
	req := CreateShiftRequest{
		Title:    "Food Bank Sorting",
		Location: "Main Warehouse",
		StartsAt: "2026-10-01T09:00:00Z",
		EndsAt:   "2026-10-01T13:00:00Z",
		Capacity: 8,
	}

	err := req.Validate()
	assert.NoError(t, err)
	assert.Equal(t, 2026, req.ParsedStartsAt.Year())
	assert.True(t, req.ParsedEndsAt.After(req.ParsedStartsAt))
}

func TestCreateShiftRequest_Validate_TimeWindow(t *testing.T) {
	req := CreateShiftRequest{
		Title:    "Food Bank Sorting",
		Location: "Main Warehouse",
		StartsAt: "2026-10-01T13:00:00Z",
		EndsAt:   "2026-10-01T09:00:00Z",
		Capacity: 8,
	}

	err := req.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ends_at must be after starts_at")
}

func TestCreateShiftRequest_Validate_MissingFields(t *testing.T) {
	req := CreateShiftRequest{Capacity: 0}

	err := req.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "title is required")
	assert.Contains(t, err.Error(), "location is required")
	assert.Contains(t, err.Error(), "capacity must be a positive integer")
}

func TestUpdateShiftRequest_Validate(t *testing.T) {
	title := ""
	capacity := 0

	req := UpdateShiftRequest{ShiftID: "some-id", Title: &title, Capacity: &capacity}
	err := req.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "title must not be empty")
	assert.Contains(t, err.Error(), "capacity must be a positive integer")

	goodTitle := "Evening Shift"
	goodCapacity := 5
	req = UpdateShiftRequest{ShiftID: "some-id", Title: &goodTitle, Capacity: &goodCapacity}
	assert.NoError(t, req.Validate())
}
