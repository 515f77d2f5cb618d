package service

import (
	"errors"
	"fmt"
	"strings"

	"dispatch-service/internal/model"
	"dispatch-service/internal/schedule"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidStatus    = errors.New("invalid status transition")
	ErrCapacityExceeded = errors.New("vehicle capacity below participant count")
)

// ConflictError is returned when commit-time re-validation finds the
// chosen driver or vehicle blocked. Alternatives lists free drivers the
// operator could pick instead.
type ConflictError struct {
	DriverReason  *schedule.BlockReason
	VehicleReason *schedule.BlockReason
	Alternatives  []model.DriverBrief
}

func (e *ConflictError) Error() string {
	var parts []string
	if e.DriverReason != nil {
		parts = append(parts, fmt.Sprintf("driver: %s", *e.DriverReason))
	}
	if e.VehicleReason != nil {
		parts = append(parts, fmt.Sprintf("vehicle: %s", *e.VehicleReason))
	}
	return "scheduling conflict (" + strings.Join(parts, ", ") + ")"
}

// PartialCommitError reports a two-write sequence whose first write landed
// and whose second failed. It carries the id of the record the first write
// produced or changed so the operator can reconcile manually; the service
// never retries or compensates on its own.
type PartialCommitError struct {
	DispatchID int64
	Step       string
	Cause      error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("partial commit: %s failed after dispatch %d was written: %v", e.Step, e.DispatchID, e.Cause)
}

func (e *PartialCommitError) Unwrap() error {
	return e.Cause
}
