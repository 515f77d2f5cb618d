package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionDispatch(t *testing.T) {
	tests := []struct {
		from, to DispatchStatus
		want     bool
	}{
		{DispatchStatusAssigned, DispatchStatusDone, true},
		{DispatchStatusAssigned, DispatchStatusCancelled, true},
		{DispatchStatusDone, DispatchStatusAssigned, false},
		{DispatchStatusDone, DispatchStatusCancelled, false},
		{DispatchStatusCancelled, DispatchStatusAssigned, false},
		{DispatchStatusCancelled, DispatchStatusDone, false},
		{DispatchStatusAssigned, DispatchStatusAssigned, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransitionDispatch(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestReservationStatusAfter(t *testing.T) {
	s, err := ReservationStatusAfter(DispatchStatusDone)
	require.NoError(t, err)
	assert.Equal(t, ReservationStatusCompleted, s)

	s, err = ReservationStatusAfter(DispatchStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, ReservationStatusPending, s)

	_, err = ReservationStatusAfter(DispatchStatusAssigned)
	require.Error(t, err)
}

func TestDispatchIsLive(t *testing.T) {
	assert.True(t, Dispatch{Status: DispatchStatusAssigned}.IsLive())
	assert.True(t, Dispatch{Status: DispatchStatusDone}.IsLive())
	assert.False(t, Dispatch{Status: DispatchStatusCancelled}.IsLive())
}
