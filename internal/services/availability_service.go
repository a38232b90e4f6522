package services

import (
	"database/sql"

	intconfig "metrobook/internal/config"
	"metrobook/internal/domain"
	"metrobook/internal/domain/models"
	"metrobook/internal/repositories"
	"metrobook/internal/utils"
)

// AvailabilityService answers which seats are taken for a trip, so callers
// can render a seat map before booking or relocating.
type AvailabilityService struct {
	TicketRepo repositories.TicketRepository
	DB         *sql.DB
}

func (s AvailabilityService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s AvailabilityService) tickets() repositories.TicketRepository {
	if s.TicketRepo.DB != nil {
		return s.TicketRepo
	}
	return repositories.TicketRepository{DB: s.db()}
}

// TripRequest pins a journey partition for the seat-status query. SeatType
// is a class label; empty defaults to Single. ExcludeTicketID keeps a
// ticket's own seat out of the result during a seat change.
type TripRequest struct {
	TimeSlot         string `json:"time_slot"`
	Line             string `json:"line"`
	DepartureStation string `json:"departure_station"`
	ArrivalStation   string `json:"arrival_station"`
	SeatType         string `json:"seat_type"`
	ExcludeTicketID  int64  `json:"-"`
}

// OccupiedSeats lists taken seat numbers in the trip's class partition.
// No matching rows is an empty list, never an error.
func (s AvailabilityService) OccupiedSeats(req TripRequest) ([]string, error) {
	required := []struct{ field, value string }{
		{"time_slot", req.TimeSlot},
		{"line", req.Line},
		{"departure_station", req.DepartureStation},
		{"arrival_station", req.ArrivalStation},
	}
	for _, f := range required {
		if utils.TrimOrEmpty(f.value) == "" {
			return nil, domain.ValidationError{Field: f.field, Msg: "required"}
		}
	}

	seats, err := s.tickets().OccupiedSeats(repositories.TripQuery{
		TimeSlot:         req.TimeSlot,
		Line:             req.Line,
		DepartureStation: req.DepartureStation,
		ArrivalStation:   req.ArrivalStation,
		ClassRank:        domain.ClassifySeat(req.SeatType).Rank(),
		ExcludeTicketID:  req.ExcludeTicketID,
	})
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load booked seats", Err: err}
	}
	return seats, nil
}

// SeatsAtTime lists every paid seat at the exact slot regardless of route or
// class, for callers that have not pinned a trip yet.
func (s AvailabilityService) SeatsAtTime(timeSlot string) ([]models.SeatStatus, error) {
	if utils.TrimOrEmpty(timeSlot) == "" {
		return nil, domain.ValidationError{Field: "time_slot", Msg: "required"}
	}

	seats, err := s.tickets().SeatsAtTime(timeSlot)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load booked seats", Err: err}
	}
	return seats, nil
}
