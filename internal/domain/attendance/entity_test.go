package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_IsOpen(t *testing.T) {
	s := &Session{}
	assert.True(t, s.IsOpen())

	now := time.Now()
	s.CheckOutAt = &now
	assert.False(t, s.IsOpen())
}

func TestDuration(t *testing.T) {
	checkIn := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 240, Duration(checkIn, checkIn.Add(4*time.Hour)))

	// Partial minutes floor
	assert.Equal(t, 90, Duration(checkIn, checkIn.Add(90*time.Minute+45*time.Second)))

	// Clock skew never yields a negative duration
	assert.Equal(t, 0, Duration(checkIn, checkIn.Add(-5*time.Minute)))

	assert.Equal(t, 0, Duration(checkIn, checkIn))
}
