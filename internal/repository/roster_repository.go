package repository

import (
	"context"

	"gorm.io/gorm"

	"dispatch-service/internal/model"
)

// RosterRepository reads the driver and vehicle rosters. The rosters are
// reference data for the engine; this service never mutates them.
type RosterRepository struct {
	db *gorm.DB
}

func NewRosterRepository(db *gorm.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListDrivers(ctx context.Context) ([]model.Driver, error) {
	var drivers []model.Driver
	if err := r.db.WithContext(ctx).Order("driver_id ASC").Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

func (r *RosterRepository) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := r.db.WithContext(ctx).Order("vehicle_id ASC").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *RosterRepository) GetDriver(ctx context.Context, id int64) (*model.Driver, error) {
	var driver model.Driver
	if err := r.db.WithContext(ctx).First(&driver, "driver_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *RosterRepository) GetVehicle(ctx context.Context, id int64) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, "vehicle_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}
