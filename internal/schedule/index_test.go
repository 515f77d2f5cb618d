package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch-service/internal/model"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func testDrivers() []model.Driver {
	return []model.Driver{
		{ID: 1, Name: "Kim", Status: model.DriverStatusActive},
		{ID: 2, Name: "Lee", Status: model.DriverStatusInactive},
	}
}

func testVehicles() []model.Vehicle {
	return []model.Vehicle{
		{ID: 10, PlateNo: "12가3456", Model: "Carnival", Capacity: intPtr(9), Status: model.VehicleStatusAvailable},
		{ID: 11, PlateNo: "34나5678", Model: "Starex", Capacity: intPtr(11), Status: model.VehicleStatusMaintenance},
		{ID: 12, PlateNo: "56다7890", Model: "Bus", Capacity: nil, Status: model.VehicleStatusAvailable},
	}
}

func liveDispatch(id int64, driverID *int64, vehicleID int64, status model.DispatchStatus, start, end time.Time) model.Dispatch {
	return model.Dispatch{
		ID:            id,
		ReservationID: id + 100,
		DriverID:      driverID,
		VehicleID:     vehicleID,
		Status:        status,
		Reservation: &model.Reservation{
			ID:        id + 100,
			Type:      model.ReservationTypeVehicle,
			StartTime: start,
			EndTime:   end,
		},
	}
}

func TestDriverBlockReason(t *testing.T) {
	dispatches := []model.Dispatch{
		liveDispatch(1, int64Ptr(1), 10, model.DispatchStatusAssigned, at(9, 0), at(10, 0)),
	}
	idx := NewAvailabilityIndex(testDrivers(), testVehicles(), dispatches)

	t.Run("free after existing window", func(t *testing.T) {
		assert.Nil(t, idx.DriverBlockReason(1, at(10, 0), at(11, 0)))
		assert.True(t, idx.IsDriverFree(1, at(10, 0), at(11, 0)))
	})

	t.Run("overlap blocks", func(t *testing.T) {
		r := idx.DriverBlockReason(1, at(9, 30), at(10, 30))
		require.NotNil(t, r)
		assert.Equal(t, ReasonTimeConflict, *r)
	})

	t.Run("inactive driver", func(t *testing.T) {
		r := idx.DriverBlockReason(2, at(14, 0), at(15, 0))
		require.NotNil(t, r)
		assert.Equal(t, ReasonNotActive, *r)
	})

	t.Run("unknown driver", func(t *testing.T) {
		r := idx.DriverBlockReason(99, at(14, 0), at(15, 0))
		require.NotNil(t, r)
		assert.Equal(t, ReasonNotActive, *r)
	})
}

func TestVehicleBlockReason(t *testing.T) {
	dispatches := []model.Dispatch{
		liveDispatch(1, int64Ptr(1), 10, model.DispatchStatusDone, at(9, 0), at(10, 0)),
	}
	idx := NewAvailabilityIndex(testDrivers(), testVehicles(), dispatches)

	t.Run("status has highest precedence", func(t *testing.T) {
		r := idx.VehicleBlockReason(11, at(9, 0), at(10, 0), intPtr(99))
		require.NotNil(t, r)
		assert.Equal(t, ReasonNotAvailable, *r)
	})

	t.Run("capacity beats time conflict", func(t *testing.T) {
		r := idx.VehicleBlockReason(10, at(9, 30), at(10, 30), intPtr(10))
		require.NotNil(t, r)
		assert.Equal(t, ReasonInsufficientCapacity, *r)
	})

	t.Run("insufficient capacity even when free all day", func(t *testing.T) {
		r := idx.VehicleBlockReason(10, at(14, 0), at(15, 0), intPtr(10))
		require.NotNil(t, r)
		assert.Equal(t, ReasonInsufficientCapacity, *r)
	})

	t.Run("nil capacity passes any requirement", func(t *testing.T) {
		assert.Nil(t, idx.VehicleBlockReason(12, at(14, 0), at(15, 0), intPtr(45)))
	})

	t.Run("done dispatch still occupies", func(t *testing.T) {
		r := idx.VehicleBlockReason(10, at(9, 30), at(10, 30), intPtr(4))
		require.NotNil(t, r)
		assert.Equal(t, ReasonTimeConflict, *r)
	})

	t.Run("boundary end equals start is free", func(t *testing.T) {
		assert.Nil(t, idx.VehicleBlockReason(10, at(10, 0), at(11, 0), intPtr(4)))
	})
}

func TestCancelledDispatchesNeverBlock(t *testing.T) {
	dispatches := []model.Dispatch{
		liveDispatch(1, int64Ptr(1), 10, model.DispatchStatusCancelled, at(9, 0), at(10, 0)),
	}
	idx := NewAvailabilityIndex(testDrivers(), testVehicles(), dispatches)

	assert.True(t, idx.IsDriverFree(1, at(9, 0), at(10, 0)))
	assert.True(t, idx.IsVehicleFree(10, at(9, 0), at(10, 0), nil))
}

func TestIndexIdempotence(t *testing.T) {
	dispatches := []model.Dispatch{
		liveDispatch(1, int64Ptr(1), 10, model.DispatchStatusAssigned, at(9, 0), at(10, 0)),
		liveDispatch(2, int64Ptr(1), 12, model.DispatchStatusDone, at(13, 0), at(14, 0)),
	}
	a := NewAvailabilityIndex(testDrivers(), testVehicles(), dispatches)
	b := NewAvailabilityIndex(testDrivers(), testVehicles(), dispatches)

	windows := [][2]time.Time{
		{at(8, 0), at(9, 0)},
		{at(9, 0), at(10, 0)},
		{at(9, 30), at(13, 30)},
		{at(14, 0), at(15, 0)},
	}
	for _, w := range windows {
		for _, d := range testDrivers() {
			assert.Equal(t, a.IsDriverFree(d.ID, w[0], w[1]), b.IsDriverFree(d.ID, w[0], w[1]))
		}
		for _, v := range testVehicles() {
			assert.Equal(t, a.IsVehicleFree(v.ID, w[0], w[1], nil), b.IsVehicleFree(v.ID, w[0], w[1], nil))
		}
	}
}

func TestReserveExtendsIndex(t *testing.T) {
	idx := NewAvailabilityIndex(testDrivers(), testVehicles(), nil)
	require.True(t, idx.IsDriverFree(1, at(9, 0), at(10, 0)))

	idx.Reserve(1, 10, at(9, 0), at(10, 0))

	assert.False(t, idx.IsDriverFree(1, at(9, 30), at(10, 30)))
	assert.False(t, idx.IsVehicleFree(10, at(9, 30), at(10, 30), nil))
	assert.True(t, idx.IsDriverFree(1, at(10, 0), at(11, 0)))
}
