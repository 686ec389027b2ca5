package progress

import (
	"errors"
	"testing"
)

func TestTracker(t *testing.T) {
	tracker := NewTracker("Processing...", 3)
	for range 3 {
		tracker.Tick()
	}
	tracker.FinishSuccess()
}

func TestTrackerFinishError(t *testing.T) {
	tracker := NewTracker("Processing...", 2)
	tracker.Tick()
	tracker.FinishError(errors.New("boom"))
}
