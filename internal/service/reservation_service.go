package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"dispatch-service/internal/model"
	"dispatch-service/internal/schedule"
)

type reservationUserStore interface {
	reservationStore
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Reservation, error)
	Create(ctx context.Context, reservation *model.Reservation) error
}

// ReservationService covers the requester side of the vehicle flow:
// submitting a request, listing own requests, cancelling an own pending
// one. Assignment and approval live in DispatchService.
type ReservationService struct {
	reservations reservationUserStore
}

func NewReservationService(reservations reservationUserStore) *ReservationService {
	return &ReservationService{reservations: reservations}
}

type CreateReservationInput struct {
	Title        string
	Participants int
	StartTime    time.Time
	EndTime      time.Time
	Departure    string
	Destination  string
	OrgID        *int64
}

func (s *ReservationService) CreateVehicleReservation(ctx context.Context, principal model.Principal, input CreateReservationInput) (*model.Reservation, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrInvalidInput
	}
	if input.Participants <= 0 {
		return nil, ErrInvalidInput
	}
	if err := schedule.ValidateInterval(input.StartTime, input.EndTime); err != nil {
		return nil, ErrInvalidInput
	}

	reservation := &model.Reservation{
		Type:         model.ReservationTypeVehicle,
		UserID:       principal.UserID,
		OrgID:        input.OrgID,
		Title:        strings.TrimSpace(input.Title),
		Participants: input.Participants,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		Status:       model.ReservationStatusPending,
	}
	if departure := strings.TrimSpace(input.Departure); departure != "" {
		reservation.Departure = &departure
	}
	if destination := strings.TrimSpace(input.Destination); destination != "" {
		reservation.Destination = &destination
	}

	if err := s.reservations.Create(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

func (s *ReservationService) ListMine(ctx context.Context, principal model.Principal, limit int) ([]model.Reservation, error) {
	return s.reservations.ListByUser(ctx, principal.UserID, limit)
}

// CancelOwn lets a requester withdraw their own reservation while it is
// still PENDING. Once assigned, only an operator can unwind it through
// the dispatch lifecycle.
func (s *ReservationService) CancelOwn(ctx context.Context, principal model.Principal, reservationID int64) error {
	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return translateNotFound(err)
	}
	if reservation.UserID != principal.UserID && !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	if reservation.Status != model.ReservationStatusPending {
		return ErrInvalidStatus
	}

	return s.reservations.UpdateFields(ctx, reservation.ID, map[string]interface{}{
		"status": model.ReservationStatusCancelled,
	})
}
