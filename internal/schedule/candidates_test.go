package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch-service/internal/model"
)

// Driver D1 has one assignment 09:00-10:00. A request for 10:00-11:00 must
// list D1 assignable; 09:30-10:30 must list D1 blocked with TIME_CONFLICT.
func TestFilterDriversAroundExistingAssignment(t *testing.T) {
	drivers := []model.Driver{
		{ID: 1, Name: "Kim", Status: model.DriverStatusActive},
	}
	dispatches := []model.Dispatch{
		liveDispatch(1, int64Ptr(1), 10, model.DispatchStatusAssigned, at(9, 0), at(10, 0)),
	}
	idx := NewAvailabilityIndex(drivers, testVehicles(), dispatches)

	free := FilterDrivers(drivers, idx, at(10, 0), at(11, 0))
	require.Len(t, free, 1)
	assert.Nil(t, free[0].Reason)

	blocked := FilterDrivers(drivers, idx, at(9, 30), at(10, 30))
	require.Len(t, blocked, 1)
	require.NotNil(t, blocked[0].Reason)
	assert.Equal(t, ReasonTimeConflict, *blocked[0].Reason)
}

func TestFilterDriversDeterministicOrder(t *testing.T) {
	drivers := []model.Driver{
		{ID: 3, Name: "Park", Status: model.DriverStatusActive},
		{ID: 1, Name: "Kim", Status: model.DriverStatusActive},
		{ID: 2, Name: "Kim", Status: model.DriverStatusInactive},
	}
	idx := NewAvailabilityIndex(drivers, nil, nil)

	out := FilterDrivers(drivers, idx, at(9, 0), at(10, 0))
	require.Len(t, out, 3)
	assert.Equal(t, int64(1), out[0].Driver.ID)
	assert.Equal(t, int64(2), out[1].Driver.ID)
	assert.Equal(t, int64(3), out[2].Driver.ID)
}

func TestFilterVehiclesCapacityAndOrder(t *testing.T) {
	vehicles := []model.Vehicle{
		{ID: 10, PlateNo: "99가1111", Model: "Starex", Capacity: intPtr(4), Status: model.VehicleStatusAvailable},
		{ID: 11, PlateNo: "11나2222", Model: "Carnival", Capacity: intPtr(9), Status: model.VehicleStatusAvailable},
	}
	idx := NewAvailabilityIndex(nil, vehicles, nil)

	out := FilterVehicles(vehicles, idx, at(9, 0), at(10, 0), intPtr(5))
	require.Len(t, out, 2)

	// Sorted by model: Carnival before Starex.
	assert.Equal(t, int64(11), out[0].Vehicle.ID)
	assert.Nil(t, out[0].Reason)

	require.NotNil(t, out[1].Reason)
	assert.Equal(t, ReasonInsufficientCapacity, *out[1].Reason)
}

func TestFreeDriversLimit(t *testing.T) {
	drivers := []model.Driver{
		{ID: 1, Name: "Ahn", Status: model.DriverStatusActive},
		{ID: 2, Name: "Bae", Status: model.DriverStatusActive},
		{ID: 3, Name: "Cho", Status: model.DriverStatusInactive},
		{ID: 4, Name: "Doh", Status: model.DriverStatusActive},
	}
	idx := NewAvailabilityIndex(drivers, nil, nil)

	out := FreeDrivers(drivers, idx, at(9, 0), at(10, 0), 2)
	require.Len(t, out, 2)
	assert.Equal(t, "Ahn", out[0].Name)
	assert.Equal(t, "Bae", out[1].Name)
}
