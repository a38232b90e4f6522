package services

import (
	"database/sql"
	"errors"
	"time"

	intconfig "metrobook/internal/config"
	"metrobook/internal/domain"
	"metrobook/internal/domain/models"
	"metrobook/internal/repositories"
	"metrobook/internal/utils"
)

// TicketService verifies ticket validity at boarding and serves the booking
// history listings.
type TicketService struct {
	TicketRepo repositories.TicketRepository
	UserRepo   repositories.UserRepository
	DB         *sql.DB
}

func (s TicketService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s TicketService) tickets() repositories.TicketRepository {
	if s.TicketRepo.DB != nil {
		return s.TicketRepo
	}
	return repositories.TicketRepository{DB: s.db()}
}

func (s TicketService) users() repositories.UserRepository {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepository{DB: s.db()}
}

// ValidityResult is the boarding-check outcome. Details is set only when the
// ticket is valid.
type ValidityResult struct {
	Valid   bool           `json:"valid"`
	Message string         `json:"message"`
	Details *TicketDetails `json:"details,omitempty"`
}

// TicketDetails is shown to staff when a ticket passes the check.
type TicketDetails struct {
	Name string `json:"name"`
	Seat string `json:"seat"`
	Time string `json:"time"`
}

// boardingWindow is how far before and after its slot a ticket is accepted.
const boardingWindow = time.Hour

// CheckValidity decides whether a ticket may board at the given instant.
// The window is scheduledAt ± 1h, inclusive at both ends. Pure time
// comparison; nothing is mutated.
func (s TicketService) CheckValidity(ticketID int64, now time.Time) (ValidityResult, error) {
	if ticketID <= 0 {
		return ValidityResult{}, domain.ValidationError{Field: "ticket_id", Msg: "required"}
	}

	ticket, err := s.tickets().GetByID(ticketID)
	if errors.Is(err, sql.ErrNoRows) {
		return ValidityResult{}, domain.NotFoundError{Resource: "ticket", Err: err}
	}
	if err != nil {
		return ValidityResult{}, domain.InternalError{Msg: "failed to load ticket", Err: err}
	}

	if ticket.Paid != 1 {
		return ValidityResult{Valid: false, Message: "ticket is not paid (cancelled or incomplete)"}, nil
	}

	scheduledAt, err := utils.ParseDateTime(ticket.ScheduledAt)
	if err != nil {
		return ValidityResult{}, domain.InternalError{Msg: "stored slot is unreadable", Err: err}
	}

	start := scheduledAt.Add(-boardingWindow)
	end := scheduledAt.Add(boardingWindow)

	switch {
	case now.After(end):
		return ValidityResult{Valid: false, Message: "ticket expired (more than one hour past its slot)"}, nil
	case now.Before(start):
		return ValidityResult{Valid: false, Message: "ticket presented too early (more than one hour before its slot)"}, nil
	default:
		return ValidityResult{
			Valid:   true,
			Message: "ticket is valid for its time slot",
			Details: &TicketDetails{
				Name: ticket.PassengerName,
				Seat: ticket.SeatNumber,
				Time: ticket.ScheduledAt,
			},
		}, nil
	}
}

// ActiveBookings lists a passenger's upcoming paid tickets by display name.
func (s TicketService) ActiveBookings(passengerName string) ([]models.Ticket, error) {
	if utils.TrimOrEmpty(passengerName) == "" {
		return nil, domain.ValidationError{Field: "passenger_name", Msg: "required"}
	}
	out, err := s.tickets().ListActiveByName(passengerName)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load bookings", Err: err}
	}
	return out, nil
}

// CompletedBookings lists cancelled or past tickets by display name.
func (s TicketService) CompletedBookings(passengerName string) ([]models.Ticket, error) {
	if utils.TrimOrEmpty(passengerName) == "" {
		return nil, domain.ValidationError{Field: "passenger_name", Msg: "required"}
	}
	out, err := s.tickets().ListCompletedByName(passengerName)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load bookings", Err: err}
	}
	return out, nil
}

// ActiveBookingsByPassengerID is the staff-facing listing: it resolves the
// passenger's display name from the identity number first.
func (s TicketService) ActiveBookingsByPassengerID(passengerID string) ([]models.Ticket, error) {
	if utils.TrimOrEmpty(passengerID) == "" {
		return nil, domain.ValidationError{Field: "passenger_id", Msg: "required"}
	}
	name, err := s.users().PassengerNameByID(passengerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError{Resource: "passenger", Err: err}
	}
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load passenger", Err: err}
	}
	return s.ActiveBookings(name)
}
