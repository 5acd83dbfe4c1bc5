// controllers/booking_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"boardroom-backend/middleware"
	"boardroom-backend/services"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingRequest struct {
	BoardroomID uint   `json:"boardroom_id" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`

	OwnerUserID *uint `json:"owner_user_id"`

	// External (paid) booking fields; a non-empty price makes the booking
	// external and skips the token ledger entirely.
	Price       string `json:"price"`
	BookerName  string `json:"booker_name"`
	BookerEmail string `json:"booker_email"`
}

type EditBookingRequest struct {
	BoardroomID uint   `json:"boardroom_id"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	Price       string `json:"price"`
}

type StatusChangeRequest struct {
	Status string `json:"status" binding:"required"`
}

type FinanceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// parseBookingTime accepts RFC3339 or "2006-01-02 15:04" (frontend sends both).
func parseBookingTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04", s)
}

func bookingIDParam(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	parsed, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || parsed == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "error.invalidBookingId", "message": "booking id must be a positive integer"},
		})
		return 0, false
	}
	return uint(parsed), true
}

// respondServiceError maps the lifecycle failure taxonomy onto HTTP. Unknown
// errors are logged and surfaced as a generic internal failure.
func respondServiceError(c *gin.Context, err error) {
	var conflict *services.ConflictError
	switch {
	case errors.Is(err, services.ErrInvalidInterval):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "error.invalidInterval", "message": "end time must be after start time"},
		})
	case errors.Is(err, services.ErrBoardroomNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{"code": "error.boardroomNotFound", "message": "boardroom not found"},
		})
	case errors.Is(err, services.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{"code": "error.bookingNotFound", "message": "booking not found"},
		})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{"code": "error.userNotFound", "message": "user not found"},
		})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": gin.H{
				"code":    "error.conflictDetected",
				"message": "Time slot conflicts with another booking",
				"details": gin.H{
					"booking_id": conflict.BookingID,
					"start_time": conflict.Start,
					"end_time":   conflict.End,
				},
			},
		})
	case errors.Is(err, services.ErrConflictDetected):
		c.JSON(http.StatusConflict, gin.H{
			"error": gin.H{"code": "error.conflictDetected", "message": "Time slot conflicts with another booking"},
		})
	case errors.Is(err, services.ErrInsufficientTokens):
		c.JSON(http.StatusConflict, gin.H{
			"error": gin.H{"code": "error.insufficientTokens", "message": "Not enough tokens available for this booking"},
		})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": gin.H{"code": "error.invalidTransition", "message": "Operation not allowed in the booking's current state"},
		})
	case errors.Is(err, services.ErrAlreadyProcessed):
		c.JSON(http.StatusConflict, gin.H{
			"error": gin.H{"code": "error.alreadyProcessed", "message": "Finance status was already processed"},
		})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{
			"error": gin.H{"code": "error.unauthorized", "message": "Your role does not permit this operation"},
		})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"code": "error.internal", "message": "internal server error"},
		})
	}
}

// ---------------------------
// CRUD: Bookings
// ---------------------------

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.GetAllWithRelations()
	if err != nil {
		log.Printf("GetBookings error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"code": "error.fetchBookings", "message": "failed to fetch bookings"},
		})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var payload CreateBookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("CreateBooking bind error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	start, err := parseBookingTime(payload.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_time format", "details": err.Error()})
		return
	}
	end, err := parseBookingTime(payload.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_time format", "details": err.Error()})
		return
	}

	input := services.CreateBookingInput{
		BoardroomID: payload.BoardroomID,
		StartTime:   start,
		EndTime:     end,
		IsExisting:  payload.Price == "",
		OwnerUserID: payload.OwnerUserID,
		Price:       payload.Price,
		BookerName:  payload.BookerName,
		BookerEmail: payload.BookerEmail,
	}

	booking, err := ctrl.BookingSvc.Create(input, middleware.RoleFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Booking created successfully", "data": booking})
}

func (ctrl *BookingController) EditBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var payload EditBookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	start, err := parseBookingTime(payload.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_time format", "details": err.Error()})
		return
	}
	end, err := parseBookingTime(payload.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_time format", "details": err.Error()})
		return
	}

	input := services.EditBookingInput{
		BoardroomID: payload.BoardroomID,
		StartTime:   start,
		EndTime:     end,
		Price:       payload.Price,
	}
	booking, err := ctrl.BookingSvc.Edit(id, input, middleware.RoleFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking updated successfully", "data": booking})
}

func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.BookingSvc.Delete(id, middleware.RoleFrom(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Booking deleted"})
}

// ---------------------------
// Lifecycle transitions
// ---------------------------

func (ctrl *BookingController) ApproveBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.Approve(id, middleware.RoleFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": booking})
}

func (ctrl *BookingController) RejectBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.Reject(id, middleware.RoleFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": booking})
}

func (ctrl *BookingController) ChangeBookingStatus(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var payload StatusChangeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required", "details": err.Error()})
		return
	}
	booking, err := ctrl.BookingSvc.ChangeStatus(id, payload.Status, middleware.RoleFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": booking})
}

func (ctrl *BookingController) SetFinanceStatus(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var payload FinanceStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required", "details": err.Error()})
		return
	}
	booking, err := ctrl.BookingSvc.SetFinanceStatus(id, payload.Status, middleware.RoleFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": booking})
}
