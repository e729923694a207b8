package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_RunOnce(t *testing.T) {
	var ran atomic.Int32

	s := NewScheduler()
	s.AddJob("counter", time.Hour, func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})
	s.AddJob("failing", time.Hour, func(ctx context.Context) error {
		return errors.New("boom")
	})

	err := s.RunOnce(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failing: boom")
	assert.Equal(t, int32(1), ran.Load())

	// A failing job does not stop the others from running
	err = s.RunOnce(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(2), ran.Load())
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	ran := make(chan struct{}, 1)

	s := NewScheduler()
	s.AddJob("immediate", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start(context.Background())

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run on start")
	}

	// Stop must return once the job goroutine exits
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s := NewScheduler()
	s.AddJob("never", time.Hour, func(ctx context.Context) error { return nil })
	s.Stop()
}
