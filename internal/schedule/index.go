package schedule

import (
	"sort"
	"time"

	"dispatch-service/internal/model"
)

// BlockReason explains why a driver or vehicle cannot take a window.
type BlockReason string

const (
	ReasonNotActive            BlockReason = "NOT_ACTIVE"
	ReasonNotAvailable         BlockReason = "NOT_AVAILABLE"
	ReasonInsufficientCapacity BlockReason = "INSUFFICIENT_CAPACITY"
	ReasonTimeConflict         BlockReason = "TIME_CONFLICT"
)

type interval struct {
	start time.Time
	end   time.Time
}

// AvailabilityIndex answers "is resource R free during [start, end)?" for
// the drivers and vehicles it was built with. It is rebuilt from source
// rows after any cancellation rather than supporting interval removal;
// Reserve only appends, which is all a successful commit needs.
type AvailabilityIndex struct {
	drivers  map[int64]model.Driver
	vehicles map[int64]model.Vehicle

	byDriver  map[int64][]interval
	byVehicle map[int64][]interval
}

// NewAvailabilityIndex groups the live dispatches (ASSIGNED or DONE) by
// driver and by vehicle, taking each occupied window from the dispatch's
// linked reservation. Dispatches without a loaded reservation, and
// CANCELLED dispatches, are skipped.
func NewAvailabilityIndex(drivers []model.Driver, vehicles []model.Vehicle, dispatches []model.Dispatch) *AvailabilityIndex {
	idx := &AvailabilityIndex{
		drivers:   make(map[int64]model.Driver, len(drivers)),
		vehicles:  make(map[int64]model.Vehicle, len(vehicles)),
		byDriver:  make(map[int64][]interval),
		byVehicle: make(map[int64][]interval),
	}
	for _, d := range drivers {
		idx.drivers[d.ID] = d
	}
	for _, v := range vehicles {
		idx.vehicles[v.ID] = v
	}
	for _, d := range dispatches {
		if !d.IsLive() || d.Reservation == nil {
			continue
		}
		iv := interval{start: d.Reservation.StartTime, end: d.Reservation.EndTime}
		if d.DriverID != nil {
			idx.byDriver[*d.DriverID] = append(idx.byDriver[*d.DriverID], iv)
		}
		idx.byVehicle[d.VehicleID] = append(idx.byVehicle[d.VehicleID], iv)
	}
	for id := range idx.byDriver {
		sortIntervals(idx.byDriver[id])
	}
	for id := range idx.byVehicle {
		sortIntervals(idx.byVehicle[id])
	}
	return idx
}

func sortIntervals(ivs []interval) {
	sort.Slice(ivs, func(i, j int) bool {
		return ivs[i].start.Before(ivs[j].start)
	})
}

// Reserve appends one occupied window for the committed assignment so
// subsequent queries against the same index see it.
func (idx *AvailabilityIndex) Reserve(driverID, vehicleID int64, start, end time.Time) {
	iv := interval{start: start, end: end}
	idx.byDriver[driverID] = append(idx.byDriver[driverID], iv)
	sortIntervals(idx.byDriver[driverID])
	idx.byVehicle[vehicleID] = append(idx.byVehicle[vehicleID], iv)
	sortIntervals(idx.byVehicle[vehicleID])
}

func anyOverlap(ivs []interval, start, end time.Time) bool {
	for _, iv := range ivs {
		// Sorted by start; nothing later can reach back before end.
		if !iv.start.Before(end) {
			return false
		}
		if Overlaps(start, end, iv.start, iv.end) {
			return true
		}
	}
	return false
}

// DriverBlockReason returns nil when the driver can take [start, end).
// Unknown drivers are reported as not active.
func (idx *AvailabilityIndex) DriverBlockReason(driverID int64, start, end time.Time) *BlockReason {
	d, ok := idx.drivers[driverID]
	if !ok || d.Status != model.DriverStatusActive {
		return reason(ReasonNotActive)
	}
	if anyOverlap(idx.byDriver[driverID], start, end) {
		return reason(ReasonTimeConflict)
	}
	return nil
}

// VehicleBlockReason returns nil when the vehicle can take [start, end)
// with at least minCapacity seats. minCapacity == nil skips the capacity
// check, as does a vehicle with no recorded capacity. Tie-break order is
// fixed: status, then capacity, then time.
func (idx *AvailabilityIndex) VehicleBlockReason(vehicleID int64, start, end time.Time, minCapacity *int) *BlockReason {
	v, ok := idx.vehicles[vehicleID]
	if !ok || v.Status != model.VehicleStatusAvailable {
		return reason(ReasonNotAvailable)
	}
	if minCapacity != nil && v.Capacity != nil && *v.Capacity < *minCapacity {
		return reason(ReasonInsufficientCapacity)
	}
	if anyOverlap(idx.byVehicle[vehicleID], start, end) {
		return reason(ReasonTimeConflict)
	}
	return nil
}

func (idx *AvailabilityIndex) IsDriverFree(driverID int64, start, end time.Time) bool {
	return idx.DriverBlockReason(driverID, start, end) == nil
}

func (idx *AvailabilityIndex) IsVehicleFree(vehicleID int64, start, end time.Time, minCapacity *int) bool {
	return idx.VehicleBlockReason(vehicleID, start, end, minCapacity) == nil
}

func reason(r BlockReason) *BlockReason {
	return &r
}
