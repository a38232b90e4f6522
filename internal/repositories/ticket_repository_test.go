package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestOccupiedSeatsFiltersByPartition(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT seat_number").
		WithArgs("2024-01-01 10:00:00", "Green Line", "Central", "Harbor", 2).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow("A1").AddRow("A3"))

	repo := TicketRepository{DB: db}
	seats, err := repo.OccupiedSeats(TripQuery{
		TimeSlot:         "2024-01-01 10:00:00",
		Line:             "Green Line",
		DepartureStation: "Central",
		ArrivalStation:   "Harbor",
		ClassRank:        2,
	})
	if err != nil {
		t.Fatalf("OccupiedSeats returned error: %v", err)
	}
	if len(seats) != 2 || seats[0] != "A1" || seats[1] != "A3" {
		t.Fatalf("unexpected seats: %v", seats)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOccupiedSeatsExcludesTicket(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("id_ticket != ").
		WithArgs("2024-01-01 10:00:00", "Green Line", "Central", "Harbor", 0, int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}))

	repo := TicketRepository{DB: db}
	seats, err := repo.OccupiedSeats(TripQuery{
		TimeSlot:         "2024-01-01 10:00:00",
		Line:             "Green Line",
		DepartureStation: "Central",
		ArrivalStation:   "Harbor",
		ClassRank:        0,
		ExcludeTicketID:  12,
	})
	if err != nil {
		t.Fatalf("OccupiedSeats returned error: %v", err)
	}
	if len(seats) != 0 {
		t.Fatalf("expected empty result, got %v", seats)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeatsAtTimeCollapsesRankToFlag(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT seat_number, vip").
		WithArgs("2024-01-01 10:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"seat_number", "vip"}).
			AddRow("A1", 0).
			AddRow("B2", 1).
			AddRow("C3", 2))

	repo := TicketRepository{DB: db}
	seats, err := repo.SeatsAtTime("2024-01-01 10:00:00")
	if err != nil {
		t.Fatalf("SeatsAtTime returned error: %v", err)
	}
	if len(seats) != 3 {
		t.Fatalf("expected 3 seats, got %d", len(seats))
	}
	wantFlags := []int{0, 1, 1}
	for i, s := range seats {
		if s.VIP != wantFlags[i] {
			t.Fatalf("seat %s vip = %d, want %d", s.SeatNumber, s.VIP, wantFlags[i])
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByIDFormatsTimestampsAndTrimsRoute(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	scheduledAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	createdAt := time.Date(2023, 12, 30, 18, 4, 5, 0, time.Local)

	mock.ExpectQuery("SELECT id_ticket, name, date_ticket_time").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id_ticket", "name", "date_ticket_time", "date_ticket_find",
			"seat_number", "vip", "paid", "line", "departure_station", "arrival_station",
		}).AddRow(3, "Omar", scheduledAt, createdAt, "A1", 1, 1, " Green Line ", " Central", "Harbor "))

	repo := TicketRepository{DB: db}
	ticket, err := repo.GetByID(3)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if ticket.ScheduledAt != "2024-01-01 10:00:00" {
		t.Fatalf("scheduled at = %q", ticket.ScheduledAt)
	}
	if ticket.CreatedAt != "2023-12-30 18:04:05" {
		t.Fatalf("created at = %q", ticket.CreatedAt)
	}
	if ticket.Line != "Green Line" || ticket.DepartureStation != "Central" || ticket.ArrivalStation != "Harbor" {
		t.Fatalf("route fields not trimmed: %+v", ticket)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListActiveByNameOrdersSoonestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	first := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	second := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)

	mock.ExpectQuery("ORDER BY date_ticket_time ASC").
		WithArgs("Omar").
		WillReturnRows(sqlmock.NewRows([]string{
			"id_ticket", "name", "date_ticket_time", "date_ticket_find",
			"seat_number", "vip", "paid", "line", "departure_station", "arrival_station",
		}).
			AddRow(1, "Omar", first, first, "A1", 2, 1, "Green", "Central", "Harbor").
			AddRow(2, "Omar", second, second, "B2", 0, 1, "Green", "Central", "Harbor"))

	repo := TicketRepository{DB: db}
	tickets, err := repo.ListActiveByName("Omar")
	if err != nil {
		t.Fatalf("ListActiveByName returned error: %v", err)
	}
	if len(tickets) != 2 {
		t.Fatalf("expected 2 tickets, got %d", len(tickets))
	}
	if tickets[0].ScheduledAt != "2024-01-01 09:00:00" {
		t.Fatalf("first ticket slot = %q", tickets[0].ScheduledAt)
	}
	// listings collapse the class rank to the boundary's 0/1 vip flag
	if tickets[0].ClassRank != 1 || tickets[1].ClassRank != 0 {
		t.Fatalf("vip flags = %d, %d", tickets[0].ClassRank, tickets[1].ClassRank)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
