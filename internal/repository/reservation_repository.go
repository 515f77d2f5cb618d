package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dispatch-service/internal/model"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	var res model.Reservation
	if err := r.db.WithContext(ctx).
		First(&res, "reservation_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

// ListPendingVehicle returns the dispatch queue input: vehicle reservations
// still live (PENDING or APPROVED), ordered by start time.
func (r *ReservationRepository) ListPendingVehicle(ctx context.Context) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := r.db.WithContext(ctx).
		Where("reservation_type = ?", model.ReservationTypeVehicle).
		Where("status IN ?", []model.ReservationStatus{
			model.ReservationStatusPending,
			model.ReservationStatusApproved,
		}).
		Order("start_time ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Reservation, error) {
	query := r.db.WithContext(ctx).
		Where("reservation_type = ?", model.ReservationTypeVehicle).
		Where("user_id = ?", userID).
		Order("start_time ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var reservations []model.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *ReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

// UpdateFields applies a partial update to one reservation row. The map
// form keeps NULL writes possible (clearing vehicle_id on re-dispatch).
func (r *ReservationRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("reservation_id = ?", id).
		Updates(fields).Error
}
