package schedule

import (
	"sort"
	"time"

	"dispatch-service/internal/model"
)

// DriverCandidate is one roster entry annotated for a specific window.
// Reason == nil means assignable; otherwise it carries why not.
type DriverCandidate struct {
	Driver model.Driver `json:"driver"`
	Reason *BlockReason `json:"reason"`
}

type VehicleCandidate struct {
	Vehicle model.Vehicle `json:"vehicle"`
	Reason  *BlockReason  `json:"reason"`
}

// FilterDrivers annotates every roster driver for [start, end), sorted by
// name then id so the operator sees the same ordering regardless of
// backing-store return order. The result is advisory: the commit path
// re-validates against a fresh index regardless.
func FilterDrivers(drivers []model.Driver, idx *AvailabilityIndex, start, end time.Time) []DriverCandidate {
	out := make([]DriverCandidate, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, DriverCandidate{
			Driver: d,
			Reason: idx.DriverBlockReason(d.ID, start, end),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Driver.Name != out[j].Driver.Name {
			return out[i].Driver.Name < out[j].Driver.Name
		}
		return out[i].Driver.ID < out[j].Driver.ID
	})
	return out
}

// FilterVehicles annotates every roster vehicle for [start, end) and the
// requested capacity, sorted by model then plate number.
func FilterVehicles(vehicles []model.Vehicle, idx *AvailabilityIndex, start, end time.Time, minCapacity *int) []VehicleCandidate {
	out := make([]VehicleCandidate, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, VehicleCandidate{
			Vehicle: v,
			Reason:  idx.VehicleBlockReason(v.ID, start, end, minCapacity),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Vehicle.Model != out[j].Vehicle.Model {
			return out[i].Vehicle.Model < out[j].Vehicle.Model
		}
		return out[i].Vehicle.PlateNo < out[j].Vehicle.PlateNo
	})
	return out
}

// FreeDrivers returns assignable drivers only, in filter order. The commit
// path uses it to suggest alternatives when a conflict is detected.
func FreeDrivers(drivers []model.Driver, idx *AvailabilityIndex, start, end time.Time, limit int) []model.Driver {
	var out []model.Driver
	for _, c := range FilterDrivers(drivers, idx, start, end) {
		if c.Reason != nil {
			continue
		}
		out = append(out, c.Driver)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
