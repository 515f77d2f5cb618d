package model

import "time"

type DriverBrief struct {
	ID    int64  `json:"driver_id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type VehicleBrief struct {
	ID       int64  `json:"vehicle_id"`
	PlateNo  string `json:"plate_no"`
	Model    string `json:"model,omitempty"`
	Capacity *int   `json:"capacity,omitempty"`
}

// AssignmentCard is one row of the assigned board: an ASSIGNED dispatch
// with its reservation window and route flattened in.
type AssignmentCard struct {
	DispatchID    int64          `json:"dispatch_id"`
	ReservationID int64          `json:"reservation_id"`
	Status        DispatchStatus `json:"status"`
	StartTime     time.Time      `json:"start_time"`
	EndTime       time.Time      `json:"end_time"`
	Title         string         `json:"title,omitempty"`
	Departure     *string        `json:"departure,omitempty"`
	Destination   *string        `json:"destination,omitempty"`
	Driver        *DriverBrief   `json:"driver,omitempty"`
	Vehicle       *VehicleBrief  `json:"vehicle,omitempty"`
}

// DriverSchedule is the per-driver overview: every live dispatch for one
// driver, ordered by reservation start time.
type DriverSchedule struct {
	Driver DriverBrief      `json:"driver"`
	Items  []AssignmentCard `json:"items"`
}
