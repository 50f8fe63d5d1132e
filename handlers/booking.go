package handlers

import (
	"errors"
	"net/http"

	"fixmate/middleware"
	"fixmate/models"
	"fixmate/services/booking"
	"fixmate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// respondError maps the service error taxonomy onto HTTP statuses. Anything
// unrecognized is logged in full and reported generically.
func (h *BookingHandler) respondError(c *gin.Context, err error) {
	var (
		validationErr *booking.ValidationError
		notFoundErr   *booking.NotFoundError
		conflictErr   *booking.ConflictError
		stateErr      *booking.StateError
		transientErr  *booking.TransientCommitError
	)

	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, validationErr.Message, validationErr.Field)
	case errors.As(err, &notFoundErr):
		utils.JSONError(c, http.StatusNotFound, notFoundErr.Error(), "")
	case errors.As(err, &conflictErr):
		utils.JSONError(c, http.StatusBadRequest, conflictErr.Message, "")
	case errors.As(err, &stateErr):
		utils.JSONError(c, http.StatusBadRequest, stateErr.Message, "")
	case errors.As(err, &transientErr):
		h.Logger.Warn("transient commit failure", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Booking could not complete. Please try again.", "")
	default:
		h.Logger.Error("unexpected booking error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Server error", "")
	}
}

// CreateBooking handles POST /api/bookings/create.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	customerID := c.GetString(middleware.CtxUserID)

	var input models.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	created, err := h.Service.CreateBooking(c.Request.Context(), customerID, input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Booking created successfully", "booking": created})
}

// UpdateStatus handles PUT /api/bookings/update-status/:bookingId.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var input models.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	updated, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("bookingId"), input.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking status updated successfully", "booking": updated})
}

// Reschedule handles POST /api/bookings/reschedule/:bookingId.
func (h *BookingHandler) Reschedule(c *gin.Context) {
	var input models.RescheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	updated, err := h.Service.Reschedule(c.Request.Context(), c.Param("bookingId"), input.NewDate, input.NewTime)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking rescheduled successfully", "booking": updated})
}

// VerifyJobCode handles POST /api/bookings/verify-job-code/:bookingId.
func (h *BookingHandler) VerifyJobCode(c *gin.Context) {
	var input models.VerifyJobCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	completed, err := h.Service.VerifyJobCode(c.Request.Context(), c.Param("bookingId"), input.JobCode)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job code verified successfully", "booking": completed})
}

// GetBooking handles GET /api/bookings/:bookingId.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	view, err := h.Service.GetBooking(c.Request.Context(), c.Param("bookingId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking retrieved successfully", "booking": view})
}

// MyBookings handles GET /api/bookings/my-bookings.
func (h *BookingHandler) MyBookings(c *gin.Context) {
	views, err := h.Service.MyBookings(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if len(views) == 0 {
		utils.JSONError(c, http.StatusNotFound, "No bookings found", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bookings retrieved successfully", "bookings": views})
}

// AssignedBookings handles GET /api/bookings/assigned-bookings.
func (h *BookingHandler) AssignedBookings(c *gin.Context) {
	views, err := h.Service.AssignedBookings(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if len(views) == 0 {
		utils.JSONError(c, http.StatusNotFound, "No bookings found", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bookings retrieved successfully", "bookings": views})
}

// AllBookings handles GET /api/bookings/all, the admin overview of every
// active booking.
func (h *BookingHandler) AllBookings(c *gin.Context) {
	views, err := h.Service.ActiveBookings(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if len(views) == 0 {
		utils.JSONError(c, http.StatusNotFound, "No bookings found", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bookings retrieved successfully", "bookings": views})
}

// RecentAssignedBookings handles GET /api/bookings/recent.
func (h *BookingHandler) RecentAssignedBookings(c *gin.Context) {
	views, err := h.Service.RecentAssignedBookings(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recent bookings retrieved successfully", "recentBookings": views})
}
