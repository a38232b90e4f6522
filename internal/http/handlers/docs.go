package handlers

import (
	"net/http"

	"metrobook/internal/http/middleware"
	"metrobook/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/tickets/:id/eticket — printable PDF for a booking.
func GetETicketPDF(c *gin.Context) {
	ticketID, ok := ticketIDParam(c)
	if !ok {
		return
	}

	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateETicket(ticketID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
