package handlers

import (
	"net/http"
	"time"

	"metrobook/internal/domain"
	"metrobook/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/verify_ticket — boarding-time validity check.
func VerifyTicket(c *gin.Context) {
	var req struct {
		TicketID int64 `json:"ticket_id"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.TicketID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "message": "ticket_id is required"})
		return
	}

	svc := services.TicketService{}
	result, err := svc.CheckValidity(req.TicketID, time.Now())
	if err != nil {
		if domain.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"valid": false, "message": "ticket does not exist"})
			return
		}
		RespondDomainError(c, err)
		return
	}

	status := http.StatusOK
	if !result.Valid {
		status = http.StatusBadRequest
	}
	c.JSON(status, result)
}
