package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalStatuses(t *testing.T) {
	for _, s := range AllStatuses {
		if s == StatusCancelled || s == StatusRefunded {
			assert.True(t, IsTerminal(s), "expected %s to be terminal", s)
			assert.Empty(t, NextStatuses(s))
		} else {
			assert.False(t, IsTerminal(s), "expected %s to be non-terminal", s)
			assert.NotEmpty(t, NextStatuses(s))
		}
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, IsValidStatus(s))
	}
	assert.False(t, IsValidStatus("shipped"))
	assert.False(t, IsValidStatus(""))
}

func TestValidateTransitionRejectsNoOp(t *testing.T) {
	for _, s := range AllStatuses {
		ok, reason := ValidateTransition(s, s)
		assert.False(t, ok, "no-op transition for %s should be rejected", s)
		assert.NotEmpty(t, reason)
	}
}

func TestValidateTransitionRejectsTerminalExits(t *testing.T) {
	for _, from := range []Status{StatusCancelled, StatusRefunded} {
		for _, to := range AllStatuses {
			if to == from {
				continue
			}
			ok, reason := ValidateTransition(from, to)
			assert.False(t, ok, "%s -> %s should be rejected", from, to)
			assert.NotEmpty(t, reason)
		}
	}
}

func TestValidateTransitionMatchesTable(t *testing.T) {
	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			ok, _ := ValidateTransition(from, to)
			expected := from != to && !IsTerminal(from) && CanTransition(from, to)
			assert.Equal(t, expected, ok, "%s -> %s", from, to)
		}
	}
}

func TestValidateTransitionUnknownStatus(t *testing.T) {
	ok, reason := ValidateTransition("mystery", StatusReady)
	require.False(t, ok)
	assert.Contains(t, reason, "unknown status")

	ok, reason = ValidateTransition(StatusReceived, "mystery")
	require.False(t, ok)
	assert.Contains(t, reason, "unknown status")
}

func TestBakingTransitions(t *testing.T) {
	ok, reason := ValidateTransition(StatusBaking, StatusDelivered)
	assert.False(t, ok)
	assert.NotEmpty(t, reason)

	ok, reason = ValidateTransition(StatusBaking, StatusQualityCheck)
	assert.True(t, ok)
	assert.Empty(t, reason)
}

func TestCanCancel(t *testing.T) {
	cancellable := map[Status]bool{
		StatusReceived:   true,
		StatusConfirmed:  true,
		StatusBaking:     true,
		StatusDecorating: true,
		StatusReady:      true,
	}
	for _, s := range AllStatuses {
		assert.Equal(t, cancellable[s], CanCancel(s), "CanCancel(%s)", s)
	}
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 85, Progress(StatusReady))
	assert.Equal(t, 0, Progress(StatusCancelled))
	assert.Equal(t, 0, Progress(StatusRefunded))
	assert.Equal(t, 100, Progress(StatusDelivered))
	assert.Equal(t, 100, Progress(StatusPickedUp))

	// Progress is monotonic along the happy delivery path.
	path := []Status{
		StatusReceived, StatusConfirmed, StatusBaking, StatusDecorating,
		StatusQualityCheck, StatusReady, StatusOutForDelivery, StatusDelivered,
	}
	for i := 1; i < len(path); i++ {
		assert.Greater(t, Progress(path[i]), Progress(path[i-1]),
			"progress should increase from %s to %s", path[i-1], path[i])
	}
}

func TestEstimatedTimeRemaining(t *testing.T) {
	assert.Empty(t, EstimatedTimeRemaining(StatusDelivered, FulfillmentDelivery))
	assert.Empty(t, EstimatedTimeRemaining(StatusPickedUp, FulfillmentPickup))
	assert.Empty(t, EstimatedTimeRemaining(StatusCancelled, FulfillmentDelivery))
	assert.Empty(t, EstimatedTimeRemaining(StatusRefunded, FulfillmentPickup))

	assert.NotEmpty(t, EstimatedTimeRemaining(StatusBaking, FulfillmentDelivery))
	assert.NotEqual(t,
		EstimatedTimeRemaining(StatusReady, FulfillmentDelivery),
		EstimatedTimeRemaining(StatusReady, FulfillmentPickup))
}

func TestHappyPathsAreWalkable(t *testing.T) {
	paths := [][]Status{
		{StatusReceived, StatusConfirmed, StatusBaking, StatusDecorating,
			StatusQualityCheck, StatusReady, StatusOutForDelivery, StatusDelivered},
		{StatusReceived, StatusConfirmed, StatusBaking, StatusQualityCheck,
			StatusReady, StatusPickedUp},
	}
	for _, path := range paths {
		for i := 1; i < len(path); i++ {
			ok, reason := ValidateTransition(path[i-1], path[i])
			require.True(t, ok, "%s -> %s: %s", path[i-1], path[i], reason)
		}
	}
}
