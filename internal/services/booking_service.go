package services

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "metrobook/internal/config"
	"metrobook/internal/domain"
	"metrobook/internal/repositories"
	"metrobook/internal/utils"
)

// BookingService creates, relocates and cancels tickets. All conflict
// detection happens inside the repository's transactions; this layer owns
// input validation and class resolution.
type BookingService struct {
	TicketRepo repositories.TicketRepository
	DB         *sql.DB
	RequestID  string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) tickets() repositories.TicketRepository {
	if s.TicketRepo.DB != nil {
		return s.TicketRepo
	}
	return repositories.TicketRepository{DB: s.db()}
}

// BookingRequest carries the seven required fields for a new booking.
type BookingRequest struct {
	PassengerName    string `json:"name"`
	TimeSlot         string `json:"time"`
	SeatNumber       string `json:"seat_number"`
	SeatType         string `json:"seat_type"`
	Line             string `json:"line"`
	DepartureStation string `json:"departure_station"`
	ArrivalStation   string `json:"arrival_station"`
}

// RelocateRequest carries the new placement for an existing ticket.
type RelocateRequest struct {
	Line             string `json:"line"`
	DepartureStation string `json:"departure_station"`
	ArrivalStation   string `json:"arrival_station"`
	TimeSlot         string `json:"time"`
	SeatNumber       string `json:"new_seat_number"`
}

// Book validates the request, resolves the fare class and inserts the
// ticket. Returns the new ticket id.
func (s BookingService) Book(req BookingRequest) (int64, error) {
	required := []struct{ field, value string }{
		{"name", req.PassengerName},
		{"time", req.TimeSlot},
		{"seat_number", req.SeatNumber},
		{"seat_type", req.SeatType},
		{"line", req.Line},
		{"departure_station", req.DepartureStation},
		{"arrival_station", req.ArrivalStation},
	}
	for _, f := range required {
		if utils.TrimOrEmpty(f.value) == "" {
			return 0, domain.ValidationError{Field: f.field, Msg: "required"}
		}
	}
	if _, err := utils.ParseDateTime(req.TimeSlot); err != nil {
		return 0, domain.ValidationError{Field: "time", Msg: "must be YYYY-MM-DD HH:MM:SS", Err: err}
	}

	class := domain.ClassifySeat(req.SeatType)

	id, err := s.tickets().Insert(repositories.NewTicket{
		PassengerName:    req.PassengerName,
		TimeSlot:         req.TimeSlot,
		SeatNumber:       req.SeatNumber,
		ClassRank:        class.Rank(),
		Line:             req.Line,
		DepartureStation: req.DepartureStation,
		ArrivalStation:   req.ArrivalStation,
	})
	if err != nil {
		if domain.IsConflict(err) {
			return 0, err
		}
		return 0, domain.InternalError{Msg: "failed to save booking", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "book",
		fmt.Sprintf("ticket_id=%d slot=%s seat=%s class=%s", id, req.TimeSlot, req.SeatNumber, class))
	return id, nil
}

// Relocate moves a paid ticket to a new slot/seat/route. The fare class is
// carried over from the stored ticket, never re-derived from input.
func (s BookingService) Relocate(ticketID int64, req RelocateRequest) error {
	if ticketID <= 0 {
		return domain.ValidationError{Field: "ticket_id", Msg: "required"}
	}
	required := []struct{ field, value string }{
		{"line", req.Line},
		{"departure_station", req.DepartureStation},
		{"arrival_station", req.ArrivalStation},
		{"time", req.TimeSlot},
		{"new_seat_number", req.SeatNumber},
	}
	for _, f := range required {
		if utils.TrimOrEmpty(f.value) == "" {
			return domain.ValidationError{Field: f.field, Msg: "required"}
		}
	}
	if _, err := utils.ParseDateTime(req.TimeSlot); err != nil {
		return domain.ValidationError{Field: "time", Msg: "must be YYYY-MM-DD HH:MM:SS", Err: err}
	}

	err := s.tickets().Relocate(ticketID, repositories.Move{
		Line:             req.Line,
		DepartureStation: req.DepartureStation,
		ArrivalStation:   req.ArrivalStation,
		TimeSlot:         req.TimeSlot,
		SeatNumber:       req.SeatNumber,
	})
	if err != nil {
		if domain.IsNotFound(err) || domain.IsConflict(err) {
			return err
		}
		return domain.InternalError{Msg: "failed to update booking", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "relocate",
		fmt.Sprintf("ticket_id=%d slot=%s seat=%s", ticketID, req.TimeSlot, req.SeatNumber))
	return nil
}

// Cancel flips the ticket to unpaid. The row stays for history listings.
func (s BookingService) Cancel(ticketID int64) error {
	if ticketID <= 0 {
		return domain.ValidationError{Field: "ticket_id", Msg: "required"}
	}

	err := s.tickets().Cancel(ticketID)
	if err != nil {
		if domain.IsNotFound(err) || errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "ticket", Err: err}
		}
		return domain.InternalError{Msg: "failed to cancel booking", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "cancel", fmt.Sprintf("ticket_id=%d", ticketID))
	return nil
}
