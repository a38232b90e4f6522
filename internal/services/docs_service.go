package services

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "metrobook/internal/config"
	"metrobook/internal/domain"
	"metrobook/internal/domain/models"
	"metrobook/internal/repositories"
	"metrobook/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders a printable e-ticket for a booking. Loader can be
// injected in tests to bypass the database.
type DocsService struct {
	TicketRepo repositories.TicketRepository
	DB         *sql.DB
	RequestID  string
	Loader     func(int64) (models.Ticket, error)
}

func (s DocsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s DocsService) tickets() repositories.TicketRepository {
	if s.TicketRepo.DB != nil {
		return s.TicketRepo
	}
	return repositories.TicketRepository{DB: s.db()}
}

// GenerateETicket returns the PDF bytes and a download filename.
func (s DocsService) GenerateETicket(ticketID int64) ([]byte, string, error) {
	ticket, err := s.loadTicket(ticketID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("ticket_id=%d", ticketID))
	return buildETicketPDF(ticket)
}

func (s DocsService) loadTicket(ticketID int64) (models.Ticket, error) {
	if s.Loader != nil {
		return s.Loader(ticketID)
	}
	ticket, err := s.tickets().GetByID(ticketID)
	if errors.Is(err, sql.ErrNoRows) {
		return ticket, domain.NotFoundError{Resource: "ticket", Err: err}
	}
	if err != nil {
		return ticket, domain.InternalError{Msg: "failed to load ticket", Err: err}
	}
	return ticket, nil
}

func buildETicketPDF(t models.Ticket) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	class := domain.SeatClass(t.ClassRank)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger : %s", safe(t.PassengerName, "-")),
		fmt.Sprintf("Seat      : %s", safe(t.SeatNumber, "-")),
		fmt.Sprintf("Class     : %s", class),
		fmt.Sprintf("Line      : %s", safe(t.Line, "-")),
		fmt.Sprintf("Route     : %s -> %s", safe(t.DepartureStation, "-"), safe(t.ArrivalStation, "-")),
		fmt.Sprintf("Departure : %s", safe(t.ScheduledAt, "-")),
		fmt.Sprintf("Booked at : %s", safe(t.CreatedAt, "-")),
		fmt.Sprintf("Ticket No : TCK-%d", t.ID),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This e-ticket admits one passenger and is valid from one hour before until one hour after the departure slot.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render e-ticket", Err: err}
	}
	return buf.Bytes(), fmt.Sprintf("eticket-%d.pdf", t.ID), nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
