package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"dispatch-service/internal/model"
	"dispatch-service/internal/schedule"
)

type reservationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Reservation, error)
	ListPendingVehicle(ctx context.Context) ([]model.Reservation, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
}

type dispatchStore interface {
	ListLive(ctx context.Context) ([]model.Dispatch, error)
	ListAssignedFrom(ctx context.Context, from time.Time) ([]model.Dispatch, error)
	GetByID(ctx context.Context, id int64) (*model.Dispatch, error)
	HasLiveAssignment(ctx context.Context, reservationID int64) (bool, error)
	Create(ctx context.Context, dispatch *model.Dispatch) error
	UpdateStatus(ctx context.Context, id int64, status model.DispatchStatus) error
}

type rosterStore interface {
	ListDrivers(ctx context.Context) ([]model.Driver, error)
	ListVehicles(ctx context.Context) ([]model.Vehicle, error)
	GetDriver(ctx context.Context, id int64) (*model.Driver, error)
	GetVehicle(ctx context.Context, id int64) (*model.Vehicle, error)
}

// DispatchService runs the assignment transaction and the dispatch
// lifecycle. All compound mutations are ordered write pairs with no
// cross-record transaction underneath: the dispatch write always lands
// first and a reservation-side failure surfaces as PartialCommitError.
type DispatchService struct {
	reservations    reservationStore
	dispatches      dispatchStore
	roster          rosterStore
	maxAlternatives int
}

func NewDispatchService(reservations reservationStore, dispatches dispatchStore, roster rosterStore, maxAlternatives int) *DispatchService {
	if maxAlternatives <= 0 {
		maxAlternatives = 5
	}
	return &DispatchService{
		reservations:    reservations,
		dispatches:      dispatches,
		roster:          roster,
		maxAlternatives: maxAlternatives,
	}
}

// Queue returns the pending vehicle reservations awaiting an operator
// decision: live (PENDING or APPROVED) and not already holding an
// ASSIGNED dispatch.
func (s *DispatchService) Queue(ctx context.Context, principal model.Principal) ([]model.Reservation, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	reservations, err := s.reservations.ListPendingVehicle(ctx)
	if err != nil {
		return nil, err
	}

	live, err := s.dispatches.ListLive(ctx)
	if err != nil {
		return nil, err
	}
	assigned := make(map[int64]bool, len(live))
	for _, d := range live {
		if d.Status == model.DispatchStatusAssigned {
			assigned[d.ReservationID] = true
		}
	}

	out := make([]model.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if assigned[r.ID] {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// CandidateSet is the annotated roster for one pending reservation.
type CandidateSet struct {
	Reservation model.Reservation           `json:"reservation"`
	Drivers     []schedule.DriverCandidate  `json:"drivers"`
	Vehicles    []schedule.VehicleCandidate `json:"vehicles"`
}

// Candidates builds a fresh availability index and annotates every driver
// and vehicle for the reservation's window. Advisory only; CommitAssignment
// re-validates on its own index.
func (s *DispatchService) Candidates(ctx context.Context, principal model.Principal, reservationID int64) (*CandidateSet, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	reservation, err := s.getVehicleReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	drivers, vehicles, idx, err := s.buildIndex(ctx)
	if err != nil {
		return nil, err
	}

	minCapacity := capacityRequirement(reservation)
	return &CandidateSet{
		Reservation: *reservation,
		Drivers:     schedule.FilterDrivers(drivers, idx, reservation.StartTime, reservation.EndTime),
		Vehicles:    schedule.FilterVehicles(vehicles, idx, reservation.StartTime, reservation.EndTime, minCapacity),
	}, nil
}

type CommitAssignmentInput struct {
	ReservationID   int64
	DriverID        *int64
	VehicleID       *int64
	DurationMinutes *int
}

// CommitAssignment validates the operator's choice against current data
// and performs the two linked writes: insert the dispatch, then move the
// reservation to APPROVED with the chosen vehicle and effective end time.
// Every validation failure happens before anything is written.
func (s *DispatchService) CommitAssignment(ctx context.Context, principal model.Principal, input CommitAssignmentInput) (int64, error) {
	if !principal.IsAdmin() {
		return 0, ErrPermissionDenied
	}
	if input.DriverID == nil || input.VehicleID == nil {
		return 0, ErrInvalidInput
	}

	reservation, err := s.getVehicleReservation(ctx, input.ReservationID)
	if err != nil {
		return 0, err
	}
	alreadyAssigned, err := s.dispatches.HasLiveAssignment(ctx, reservation.ID)
	if err != nil {
		return 0, err
	}
	if alreadyAssigned {
		return 0, ErrInvalidStatus
	}

	end, err := effectiveEnd(reservation, input.DurationMinutes)
	if err != nil {
		return 0, err
	}
	start := reservation.StartTime

	if _, err := s.roster.GetDriver(ctx, *input.DriverID); err != nil {
		return 0, translateNotFound(err)
	}
	vehicle, err := s.roster.GetVehicle(ctx, *input.VehicleID)
	if err != nil {
		return 0, translateNotFound(err)
	}
	if vehicle.Capacity != nil && *vehicle.Capacity < reservation.Participants {
		return 0, ErrCapacityExceeded
	}

	// Race-safe re-check: the operator picked from a snapshot that may be
	// seconds stale, so rebuild the index from current live dispatches.
	drivers, _, idx, err := s.buildIndex(ctx)
	if err != nil {
		return 0, err
	}
	driverReason := idx.DriverBlockReason(*input.DriverID, start, end)
	vehicleReason := idx.VehicleBlockReason(*input.VehicleID, start, end, capacityRequirement(reservation))
	if driverReason != nil || vehicleReason != nil {
		return 0, &ConflictError{
			DriverReason:  driverReason,
			VehicleReason: vehicleReason,
			Alternatives:  driverBriefs(schedule.FreeDrivers(drivers, idx, start, end, s.maxAlternatives)),
		}
	}

	dispatch := &model.Dispatch{
		ReservationID: reservation.ID,
		DriverID:      input.DriverID,
		VehicleID:     *input.VehicleID,
		Status:        model.DispatchStatusAssigned,
	}
	if err := s.dispatches.Create(ctx, dispatch); err != nil {
		return 0, err
	}

	if err := s.reservations.UpdateFields(ctx, reservation.ID, map[string]interface{}{
		"status":     model.ReservationStatusApproved,
		"vehicle_id": *input.VehicleID,
		"end_time":   end,
	}); err != nil {
		// The dispatch row exists and the reservation is still PENDING.
		// Deleting the orphan here could race another operator's index
		// rebuild, so surface the inconsistency instead.
		return dispatch.ID, &PartialCommitError{
			DispatchID: dispatch.ID,
			Step:       "reservation update",
			Cause:      err,
		}
	}

	return dispatch.ID, nil
}

// CompleteDispatch marks the trip done and completes the reservation.
func (s *DispatchService) CompleteDispatch(ctx context.Context, principal model.Principal, dispatchID int64) error {
	return s.transition(ctx, principal, dispatchID, model.DispatchStatusDone)
}

// CancelDispatch voids the assignment and returns the reservation to the
// pool: status back to PENDING, vehicle cleared.
func (s *DispatchService) CancelDispatch(ctx context.Context, principal model.Principal, dispatchID int64) error {
	return s.transition(ctx, principal, dispatchID, model.DispatchStatusCancelled)
}

func (s *DispatchService) transition(ctx context.Context, principal model.Principal, dispatchID int64, to model.DispatchStatus) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}

	dispatch, err := s.dispatches.GetByID(ctx, dispatchID)
	if err != nil {
		return translateNotFound(err)
	}
	if !model.CanTransitionDispatch(dispatch.Status, to) {
		return ErrInvalidStatus
	}

	if err := s.dispatches.UpdateStatus(ctx, dispatch.ID, to); err != nil {
		return err
	}

	resStatus, err := model.ReservationStatusAfter(to)
	if err != nil {
		return err
	}
	fields := map[string]interface{}{"status": resStatus}
	if to == model.DispatchStatusCancelled {
		fields["vehicle_id"] = nil
	}
	if err := s.reservations.UpdateFields(ctx, dispatch.ReservationID, fields); err != nil {
		// Dispatch status already changed; not rolled back. Same manual
		// reconciliation path as a partial assignment commit.
		return &PartialCommitError{
			DispatchID: dispatch.ID,
			Step:       "reservation update",
			Cause:      err,
		}
	}
	return nil
}

// RejectReservation declines a pending request outright; no dispatch is
// created and REJECTED is terminal.
func (s *DispatchService) RejectReservation(ctx context.Context, principal model.Principal, reservationID int64) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}

	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return translateNotFound(err)
	}
	if reservation.Status != model.ReservationStatusPending {
		return ErrInvalidStatus
	}

	return s.reservations.UpdateFields(ctx, reservation.ID, map[string]interface{}{
		"status": model.ReservationStatusRejected,
	})
}

// AssignedBoard lists ASSIGNED dispatches whose trip starts at or after
// from, flattened into cards sorted by start time.
func (s *DispatchService) AssignedBoard(ctx context.Context, principal model.Principal, from time.Time) ([]model.AssignmentCard, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	dispatches, err := s.dispatches.ListAssignedFrom(ctx, from)
	if err != nil {
		return nil, err
	}
	cards := make([]model.AssignmentCard, 0, len(dispatches))
	for _, d := range dispatches {
		if d.Reservation == nil {
			continue
		}
		cards = append(cards, buildCard(d))
	}
	return cards, nil
}

// DriverSchedules groups the live dispatches by driver for the overview
// column, every driver present even with an empty schedule.
func (s *DispatchService) DriverSchedules(ctx context.Context, principal model.Principal) ([]model.DriverSchedule, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	drivers, err := s.roster.ListDrivers(ctx)
	if err != nil {
		return nil, err
	}
	live, err := s.dispatches.ListLive(ctx)
	if err != nil {
		return nil, err
	}

	byDriver := make(map[int64][]model.AssignmentCard)
	for _, d := range live {
		if d.DriverID == nil || d.Reservation == nil {
			continue
		}
		byDriver[*d.DriverID] = append(byDriver[*d.DriverID], buildCard(d))
	}

	schedules := make([]model.DriverSchedule, 0, len(drivers))
	for _, drv := range drivers {
		items := byDriver[drv.ID]
		sortCards(items)
		schedules = append(schedules, model.DriverSchedule{
			Driver: model.DriverBrief{ID: drv.ID, Name: drv.Name, Phone: drv.Phone},
			Items:  items,
		})
	}
	return schedules, nil
}

func (s *DispatchService) getVehicleReservation(ctx context.Context, id int64) (*model.Reservation, error) {
	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	if reservation.Type != model.ReservationTypeVehicle || !reservation.IsLive() {
		return nil, ErrInvalidStatus
	}
	return reservation, nil
}

func (s *DispatchService) buildIndex(ctx context.Context) ([]model.Driver, []model.Vehicle, *schedule.AvailabilityIndex, error) {
	drivers, err := s.roster.ListDrivers(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	vehicles, err := s.roster.ListVehicles(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	live, err := s.dispatches.ListLive(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return drivers, vehicles, schedule.NewAvailabilityIndex(drivers, vehicles, live), nil
}

// effectiveEnd resolves the occupied window's end: the operator-supplied
// trip duration when given, otherwise the originally requested length.
func effectiveEnd(reservation *model.Reservation, durationMinutes *int) (time.Time, error) {
	if durationMinutes != nil {
		if *durationMinutes <= 0 {
			return time.Time{}, ErrInvalidInput
		}
		return reservation.StartTime.Add(time.Duration(*durationMinutes) * time.Minute), nil
	}
	if err := schedule.ValidateInterval(reservation.StartTime, reservation.EndTime); err != nil {
		return time.Time{}, ErrInvalidInput
	}
	return reservation.EndTime, nil
}

func capacityRequirement(reservation *model.Reservation) *int {
	if reservation.Participants <= 0 {
		return nil
	}
	p := reservation.Participants
	return &p
}

func buildCard(d model.Dispatch) model.AssignmentCard {
	card := model.AssignmentCard{
		DispatchID:    d.ID,
		ReservationID: d.ReservationID,
		Status:        d.Status,
		StartTime:     d.Reservation.StartTime,
		EndTime:       d.Reservation.EndTime,
		Title:         d.Reservation.Title,
		Departure:     d.Reservation.Departure,
		Destination:   d.Reservation.Destination,
	}
	if d.Driver != nil {
		card.Driver = &model.DriverBrief{ID: d.Driver.ID, Name: d.Driver.Name, Phone: d.Driver.Phone}
	}
	if d.Vehicle != nil {
		card.Vehicle = &model.VehicleBrief{ID: d.Vehicle.ID, PlateNo: d.Vehicle.PlateNo, Model: d.Vehicle.Model, Capacity: d.Vehicle.Capacity}
	}
	return card
}

func sortCards(cards []model.AssignmentCard) {
	sort.Slice(cards, func(i, j int) bool {
		return cards[i].StartTime.Before(cards[j].StartTime)
	})
}

func driverBriefs(drivers []model.Driver) []model.DriverBrief {
	out := make([]model.DriverBrief, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, model.DriverBrief{ID: d.ID, Name: d.Name, Phone: d.Phone})
	}
	return out
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
