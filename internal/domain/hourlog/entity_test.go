package hourlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTotal_Add(t *testing.T) {
	total := Total{}

	total = total.Add(2, 30)
	assert.Equal(t, Total{Hours: 2, Minutes: 30}, total)

	// Minute overflow carries into hours
	total = total.Add(1, 45)
	assert.Equal(t, Total{Hours: 4, Minutes: 15}, total)

	total = total.Add(0, 120)
	assert.Equal(t, Total{Hours: 6, Minutes: 15}, total)
}

func TestFromMinutes(t *testing.T) {
	hours, minutes := FromMinutes(250)
	assert.Equal(t, 4, hours)
	assert.Equal(t, 10, minutes)

	hours, minutes = FromMinutes(59)
	assert.Equal(t, 0, hours)
	assert.Equal(t, 59, minutes)

	hours, minutes = FromMinutes(0)
	assert.Equal(t, 0, hours)
	assert.Equal(t, 0, minutes)
}

func TestLogHoursRequest_Validate(t *testing.T) {
	req := LogHoursRequest{
		Hours:       2,
		Minutes:     15,
		Description: "Community garden maintenance",
		Date:        "2026-04-12",
	}
	assert.NoError(t, req.Validate())
	assert.Equal(t, 2026, req.ParsedDate.Year())

	zero := LogHoursRequest{Description: "Helped out", Date: "2026-04-12"}
	err := zero.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "logged time must be greater than zero")

	bad := LogHoursRequest{Hours: 1, Minutes: 75, Description: "Helped out", Date: "2026-04-12"}
	err = bad.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "minutes must be between 0 and 59")

	noDesc := LogHoursRequest{Hours: 1, Date: "2026-04-12"}
	err = noDesc.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "description is required")
}

func TestLogHoursRequest_Validate_FutureDate(t *testing.T) {
	future := LogHoursRequest{
		Hours:       1,
		Description: "Helped out",
		Date:        time.Now().UTC().AddDate(1, 0, 0).Format("2006-01-02"),
	}
	err := future.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "date must not be in the future")

	tomorrow := LogHoursRequest{
		Hours:       1,
		Description: "Helped out",
		Date:        time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02"),
	}
	err = tomorrow.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "date must not be in the future")

	today := LogHoursRequest{
		Hours:       1,
		Description: "Helped out",
		Date:        time.Now().UTC().Format("2006-01-02"),
	}
	assert.NoError(t, today.Validate())
}
