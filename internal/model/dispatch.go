package model

import (
	"fmt"
	"time"
)

type DispatchStatus string

const (
	DispatchStatusAssigned  DispatchStatus = "ASSIGNED"
	DispatchStatusDone      DispatchStatus = "DONE"
	DispatchStatusCancelled DispatchStatus = "CANCELLED"
)

// Dispatch binds one reservation to one vehicle and at most one driver.
// The dispatch carries no time window of its own; the linked reservation's
// start/end is the window authority.
type Dispatch struct {
	ID            int64          `gorm:"column:dispatch_id;primaryKey;autoIncrement" json:"dispatch_id"`
	ReservationID int64          `gorm:"column:reservation_id;not null" json:"reservation_id"`
	DriverID      *int64         `gorm:"column:driver_id" json:"driver_id"`
	VehicleID     int64          `gorm:"column:vehicle_id;not null" json:"vehicle_id"`
	Status        DispatchStatus `gorm:"type:dispatch_status;not null;default:'ASSIGNED'" json:"status"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	Reservation *Reservation `gorm:"foreignKey:ReservationID" json:"reservation,omitempty"`
	Driver      *Driver      `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	Vehicle     *Vehicle     `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}

func (Dispatch) TableName() string {
	return "dispatches"
}

// IsLive reports whether the dispatch occupies its driver and vehicle for
// conflict purposes. CANCELLED dispatches never block.
func (d Dispatch) IsLive() bool {
	return d.Status == DispatchStatusAssigned || d.Status == DispatchStatusDone
}

// dispatchTransitions is the allowed status graph. DONE and CANCELLED are
// terminal; ASSIGNED is only ever entered at creation.
var dispatchTransitions = map[DispatchStatus][]DispatchStatus{
	DispatchStatusAssigned:  {DispatchStatusDone, DispatchStatusCancelled},
	DispatchStatusDone:      {},
	DispatchStatusCancelled: {},
}

func CanTransitionDispatch(from, to DispatchStatus) bool {
	for _, s := range dispatchTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ReservationStatusAfter returns the reservation-side status that must
// accompany a dispatch transition. Cancelling a dispatch is the only path
// that returns an APPROVED reservation to PENDING.
func ReservationStatusAfter(to DispatchStatus) (ReservationStatus, error) {
	switch to {
	case DispatchStatusDone:
		return ReservationStatusCompleted, nil
	case DispatchStatusCancelled:
		return ReservationStatusPending, nil
	default:
		return "", fmt.Errorf("no reservation side effect for dispatch status %s", to)
	}
}
