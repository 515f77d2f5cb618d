package model

import "time"

type DriverStatus string

const (
	DriverStatusActive   DriverStatus = "ACTIVE"
	DriverStatusInactive DriverStatus = "INACTIVE"
)

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusInService   VehicleStatus = "IN_SERVICE"
	VehicleStatusMaintenance VehicleStatus = "MAINTENANCE"
)

type Driver struct {
	ID        int64        `gorm:"column:driver_id;primaryKey;autoIncrement" json:"driver_id"`
	Name      string       `gorm:"type:varchar(255);not null" json:"name"`
	Phone     string       `gorm:"type:varchar(32)" json:"phone"`
	Status    DriverStatus `gorm:"type:driver_status;not null;default:'ACTIVE'" json:"status"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func (Driver) TableName() string {
	return "drivers"
}

type Vehicle struct {
	ID        int64         `gorm:"column:vehicle_id;primaryKey;autoIncrement" json:"vehicle_id"`
	PlateNo   string        `gorm:"column:plate_no;type:varchar(32);not null" json:"plate_no"`
	Model     string        `gorm:"type:varchar(64)" json:"model"`
	Capacity  *int          `gorm:"column:capacity" json:"capacity"`
	Status    VehicleStatus `gorm:"type:vehicle_status;not null;default:'AVAILABLE'" json:"status"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}
