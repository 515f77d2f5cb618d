package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"dispatch-service/internal/model"
)

type DispatchRepository struct {
	db *gorm.DB
}

func NewDispatchRepository(db *gorm.DB) *DispatchRepository {
	return &DispatchRepository{db: db}
}

// ListLive returns every ASSIGNED or DONE dispatch with its reservation
// window and driver/vehicle rows preloaded. This is the availability
// index's source of truth; CANCELLED dispatches are excluded here rather
// than filtered downstream.
func (r *DispatchRepository) ListLive(ctx context.Context) ([]model.Dispatch, error) {
	var dispatches []model.Dispatch
	err := r.db.WithContext(ctx).
		Where("status IN ?", []model.DispatchStatus{
			model.DispatchStatusAssigned,
			model.DispatchStatusDone,
		}).
		Order("dispatch_id ASC").
		Preload("Reservation").
		Preload("Driver").
		Preload("Vehicle").
		Find(&dispatches).Error
	if err != nil {
		return nil, err
	}
	return dispatches, nil
}

// ListAssignedFrom returns ASSIGNED dispatches whose reservation starts at
// or after the given instant, for the assigned board.
func (r *DispatchRepository) ListAssignedFrom(ctx context.Context, from time.Time) ([]model.Dispatch, error) {
	var dispatches []model.Dispatch
	err := r.db.WithContext(ctx).
		Joins("JOIN reservations res ON res.reservation_id = dispatches.reservation_id").
		Where("dispatches.status = ?", model.DispatchStatusAssigned).
		Where("res.start_time >= ?", from).
		Order("res.start_time ASC").
		Preload("Reservation").
		Preload("Driver").
		Preload("Vehicle").
		Find(&dispatches).Error
	if err != nil {
		return nil, err
	}
	return dispatches, nil
}

func (r *DispatchRepository) GetByID(ctx context.Context, id int64) (*model.Dispatch, error) {
	var dispatch model.Dispatch
	err := r.db.WithContext(ctx).
		Preload("Reservation").
		First(&dispatch, "dispatch_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &dispatch, nil
}

// HasLiveAssignment reports whether the reservation already holds an
// ASSIGNED dispatch, which removes it from the queue until cancelled.
func (r *DispatchRepository) HasLiveAssignment(ctx context.Context, reservationID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Dispatch{}).
		Where("reservation_id = ?", reservationID).
		Where("status = ?", model.DispatchStatusAssigned).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *DispatchRepository) Create(ctx context.Context, dispatch *model.Dispatch) error {
	return r.db.WithContext(ctx).Create(dispatch).Error
}

func (r *DispatchRepository) UpdateStatus(ctx context.Context, id int64, status model.DispatchStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Dispatch{}).
		Where("dispatch_id = ?", id).
		Update("status", status).Error
}
