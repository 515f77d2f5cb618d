package model

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusApproved  ReservationStatus = "APPROVED"
	ReservationStatusRejected  ReservationStatus = "REJECTED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
)

type ReservationType string

const (
	ReservationTypeTraining  ReservationType = "TRAINING"
	ReservationTypeAuxiliary ReservationType = "AUXILIARY"
	ReservationTypeVehicle   ReservationType = "VEHICLE"
)

type Reservation struct {
	ID           int64             `gorm:"column:reservation_id;primaryKey;autoIncrement" json:"reservation_id"`
	Type         ReservationType   `gorm:"column:reservation_type;type:reservation_type;not null" json:"reservation_type"`
	UserID       uuid.UUID         `gorm:"type:uuid;not null" json:"user_id"`
	OrgID        *int64            `gorm:"column:org_id" json:"org_id"`
	FacilityID   *int64            `gorm:"column:facility_id" json:"facility_id"`
	VehicleID    *int64            `gorm:"column:vehicle_id" json:"vehicle_id"`
	Title        string            `gorm:"type:text" json:"title"`
	Participants int               `gorm:"not null;default:1" json:"participants"`
	StartTime    time.Time         `gorm:"column:start_time;not null" json:"start_time"`
	EndTime      time.Time         `gorm:"column:end_time;not null" json:"end_time"`
	Status       ReservationStatus `gorm:"type:reservation_status;not null;default:'PENDING'" json:"status"`
	Departure    *string           `gorm:"type:text" json:"departure"`
	Destination  *string           `gorm:"type:text" json:"destination"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Reservation) TableName() string {
	return "reservations"
}

// Live reservations are the only ones the dispatch queue and conflict
// checks consider; REJECTED/CANCELLED/COMPLETED never come back.
func (r Reservation) IsLive() bool {
	return r.Status == ReservationStatusPending || r.Status == ReservationStatusApproved
}
