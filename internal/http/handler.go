package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"dispatch-service/internal/http/middleware"
	"dispatch-service/internal/model"
	"dispatch-service/internal/service"
)

type Handler struct {
	dispatchService    *service.DispatchService
	reservationService *service.ReservationService
	log                zerolog.Logger
}

func NewHandler(
	dispatchService *service.DispatchService,
	reservationService *service.ReservationService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		dispatchService:    dispatchService,
		reservationService: reservationService,
		log:                log,
	}
}

func (h *Handler) createReservation(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		Title        string `json:"title" binding:"required"`
		Participants int    `json:"participants" binding:"required"`
		StartTime    string `json:"start_time" binding:"required"`
		EndTime      string `json:"end_time" binding:"required"`
		Departure    string `json:"departure"`
		Destination  string `json:"destination"`
		OrgID        *int64 `json:"org_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid start_time"))
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid end_time"))
		return
	}

	reservation, err := h.reservationService.CreateVehicleReservation(c.Request.Context(), principal, service.CreateReservationInput{
		Title:        req.Title,
		Participants: req.Participants,
		StartTime:    start,
		EndTime:      end,
		Departure:    req.Departure,
		Destination:  req.Destination,
		OrgID:        req.OrgID,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(reservation))
}

func (h *Handler) listMyReservations(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	reservations, err := h.reservationService.ListMine(c.Request.Context(), principal, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": reservations}))
}

func (h *Handler) cancelReservation(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid reservation id"))
		return
	}

	if err := h.reservationService.CancelOwn(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"status": "cancelled"}))
}

func (h *Handler) rejectReservation(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid reservation id"))
		return
	}

	if err := h.dispatchService.RejectReservation(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"status": "rejected"}))
}

func (h *Handler) listQueue(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	reservations, err := h.dispatchService.Queue(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": reservations}))
}

func (h *Handler) listCandidates(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid reservation id"))
		return
	}

	candidates, err := h.dispatchService.Candidates(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(candidates))
}

func (h *Handler) commitAssignment(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		ReservationID   int64  `json:"reservation_id" binding:"required"`
		DriverID        *int64 `json:"driver_id"`
		VehicleID       *int64 `json:"vehicle_id"`
		DurationMinutes *int   `json:"duration_minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	dispatchID, err := h.dispatchService.CommitAssignment(c.Request.Context(), principal, service.CommitAssignmentInput{
		ReservationID:   req.ReservationID,
		DriverID:        req.DriverID,
		VehicleID:       req.VehicleID,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(gin.H{"dispatch_id": dispatchID}))
}

func (h *Handler) listAssigned(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	from := time.Now()
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid from"))
			return
		}
		from = ts
	}

	cards, err := h.dispatchService.AssignedBoard(c.Request.Context(), principal, from)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": cards}))
}

func (h *Handler) completeDispatch(c *gin.Context) {
	h.transitionDispatch(c, h.dispatchService.CompleteDispatch, "completed")
}

func (h *Handler) cancelDispatch(c *gin.Context) {
	h.transitionDispatch(c, h.dispatchService.CancelDispatch, "cancelled")
}

func (h *Handler) transitionDispatch(c *gin.Context, fn func(context.Context, model.Principal, int64) error, result string) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid dispatch id"))
		return
	}

	if err := fn(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"status": result}))
}

func (h *Handler) listDriverSchedules(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	schedules, err := h.dispatchService.DriverSchedules(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": schedules}))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var conflictErr *service.ConflictError
	var partialErr *service.PartialCommitError

	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrCapacityExceeded):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":          conflictErr.Error(),
			"driver_reason":  conflictErr.DriverReason,
			"vehicle_reason": conflictErr.VehicleReason,
			"alternatives":   conflictErr.Alternatives,
		})
	case errors.As(err, &partialErr):
		// Must reach the operator with the orphan id; never swallowed.
		h.log.Error().Err(partialErr.Cause).Int64("dispatch_id", partialErr.DispatchID).Msg("partial commit")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":       partialErr.Error(),
			"dispatch_id": partialErr.DispatchID,
		})
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func parseID(c *gin.Context, param string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(c.Param(param)), 10, 64)
}

type responseEnvelope struct {
	Data interface{} `json:"data"`
}

func successResponse(data interface{}) responseEnvelope {
	return responseEnvelope{Data: data}
}

func errorResponse(msg string) gin.H {
	return gin.H{"error": msg}
}
