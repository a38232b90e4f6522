package handlers

import (
	"net/http"
	"strconv"

	"metrobook/internal/services"
	"metrobook/internal/utils"

	"github.com/gin-gonic/gin"
)

// POST /api/booked_seats — seat/class pairs at an exact slot, route ignored.
// An absent slot yields an empty list, matching the seat-map renderer's
// expectation of always getting an array.
func BookedSeats(c *gin.Context) {
	var req struct {
		TimeSlot string `json:"time_slot"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}
	if utils.TrimOrEmpty(req.TimeSlot) == "" {
		c.JSON(http.StatusOK, []any{})
		return
	}

	svc := services.AvailabilityService{}
	seats, err := svc.SeatsAtTime(req.TimeSlot)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, seats)
}

// POST /api/booked_seats/status?exclude_ticket_id= — taken seats for one
// trip partition, optionally ignoring the caller's own ticket during a
// seat change.
func BookedSeatsStatus(c *gin.Context) {
	var req services.TripRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if raw := utils.TrimOrEmpty(c.Query("exclude_ticket_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			RespondError(c, http.StatusBadRequest, "invalid exclude_ticket_id")
			return
		}
		req.ExcludeTicketID = id
	}

	svc := services.AvailabilityService{}
	seats, err := svc.OccupiedSeats(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booked_seats": seats})
}
