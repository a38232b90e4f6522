package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"metrobook/internal/domain"
	"metrobook/internal/http/middleware"
	"metrobook/internal/services"
	"metrobook/internal/utils"

	"github.com/gin-gonic/gin"
)

// POST /api/book
func Book(c *gin.Context) {
	var req services.BookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	ticketID, err := svc.Book(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "ticket_id": ticketID})
}

// POST /api/bookings/:id/update
func UpdateBooking(c *gin.Context) {
	ticketID, ok := ticketIDParam(c)
	if !ok {
		return
	}

	var req services.RelocateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	if err := svc.Relocate(ticketID, req); err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "booking updated"})
}

// POST /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	ticketID, ok := ticketIDParam(c)
	if !ok {
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	if err := svc.Cancel(ticketID); err != nil {
		if domain.IsNotFound(err) {
			RespondError(c, http.StatusNotFound, "ticket not found or already cancelled")
			return
		}
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "booking cancelled"})
}

// POST /api/pay — payment gateway stub: succeeds for any existing booking.
func Pay(c *gin.Context) {
	var req struct {
		TicketID int64 `json:"ticket_id"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.TicketID <= 0 {
		RespondError(c, http.StatusBadRequest, "ticket_id is required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "payment accepted (charged at booking time)"})
}

// GET /api/active_bookings?passenger_name=
func ActiveBookings(c *gin.Context) {
	name := utils.TrimOrEmpty(c.Query("passenger_name"))
	if name == "" {
		RespondError(c, http.StatusBadRequest, "passenger_name is required")
		return
	}

	svc := services.TicketService{}
	bookings, err := svc.ActiveBookings(name)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /api/completed_bookings?passenger_name=
func CompletedBookings(c *gin.Context) {
	name := utils.TrimOrEmpty(c.Query("passenger_name"))
	if name == "" {
		RespondError(c, http.StatusBadRequest, "passenger_name is required")
		return
	}

	svc := services.TicketService{}
	bookings, err := svc.CompletedBookings(name)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /api/bookings/active/:passenger_id — staff lookup by identity number.
func ActiveBookingsForPassenger(c *gin.Context) {
	if claims, ok := middleware.GetClaims(c); ok {
		utils.LogEvent(middleware.GetRequestID(c), "booking", "staff_lookup",
			fmt.Sprintf("role=%v passenger_id=%s", claims["role"], c.Param("passenger_id")))
	}

	svc := services.TicketService{}
	bookings, err := svc.ActiveBookingsByPassengerID(c.Param("passenger_id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}

func ticketIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid ticket id")
		return 0, false
	}
	return id, true
}
