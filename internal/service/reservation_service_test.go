package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch-service/internal/model"
)

func TestCreateVehicleReservation(t *testing.T) {
	f := seedFixture()
	svc := NewReservationService(reservationStoreAdapter{f})

	r, err := svc.CreateVehicleReservation(context.Background(), requester, CreateReservationInput{
		Title:        "site visit",
		Participants: 4,
		StartTime:    ts(13, 0),
		EndTime:      ts(15, 0),
		Departure:    "HQ",
		Destination:  "North campus",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReservationTypeVehicle, r.Type)
	assert.Equal(t, model.ReservationStatusPending, r.Status)
	assert.Equal(t, requester.UserID, r.UserID)
	require.NotNil(t, r.Departure)
	assert.Equal(t, "HQ", *r.Departure)

	mine, err := svc.ListMine(context.Background(), requester, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestCreateVehicleReservationValidation(t *testing.T) {
	f := seedFixture()
	svc := NewReservationService(reservationStoreAdapter{f})

	cases := []CreateReservationInput{
		{Title: "", Participants: 2, StartTime: ts(9, 0), EndTime: ts(10, 0)},
		{Title: "x", Participants: 0, StartTime: ts(9, 0), EndTime: ts(10, 0)},
		{Title: "x", Participants: 2, StartTime: ts(10, 0), EndTime: ts(10, 0)},
		{Title: "x", Participants: 2, StartTime: ts(11, 0), EndTime: ts(10, 0)},
	}
	for _, input := range cases {
		_, err := svc.CreateVehicleReservation(context.Background(), requester, input)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestCancelOwnReservation(t *testing.T) {
	f := seedFixture()
	svc := NewReservationService(reservationStoreAdapter{f})

	require.NoError(t, svc.CancelOwn(context.Background(), requester, 100))
	assert.Equal(t, model.ReservationStatusCancelled, f.reservations[100].Status)

	// Already terminal.
	assert.ErrorIs(t, svc.CancelOwn(context.Background(), requester, 100), ErrInvalidStatus)
}

func TestCancelOwnReservationRules(t *testing.T) {
	f := seedFixture()
	svc := NewReservationService(reservationStoreAdapter{f})

	other := model.Principal{UserID: admin.UserID, Role: model.UserRoleRequester}
	assert.ErrorIs(t, svc.CancelOwn(context.Background(), other, 100), ErrPermissionDenied)
	assert.ErrorIs(t, svc.CancelOwn(context.Background(), requester, 999), ErrNotFound)

	// Admins may cancel on a requester's behalf.
	require.NoError(t, svc.CancelOwn(context.Background(), admin, 100))
}
