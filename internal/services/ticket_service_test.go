package services

import (
	"testing"
	"time"

	"metrobook/internal/domain"
	"metrobook/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func ticketColumns() []string {
	return []string{
		"id_ticket", "name", "date_ticket_time", "date_ticket_find",
		"seat_number", "vip", "paid", "line", "departure_station", "arrival_station",
	}
}

func expectTicketRow(mock sqlmock.Sqlmock, id int64, paid int, scheduledAt time.Time) {
	mock.ExpectQuery("SELECT id_ticket, name, date_ticket_time").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(ticketColumns()).
			AddRow(id, "Amira Hassan", scheduledAt, scheduledAt.Add(-24*time.Hour),
				"A1", 2, paid, "Green Line", "Central", "Harbor"))
}

func validityService(t *testing.T) (TicketService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := TicketService{TicketRepo: repositories.TicketRepository{DB: db}, DB: db}
	return svc, mock, func() { db.Close() }
}

func TestCheckValidityInsideWindow(t *testing.T) {
	svc, mock, done := validityService(t)
	defer done()

	scheduledAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	expectTicketRow(mock, 1, 1, scheduledAt)

	now := time.Date(2024, 1, 1, 9, 0, 1, 0, time.Local)
	result, err := svc.CheckValidity(1, now)
	if err != nil {
		t.Fatalf("CheckValidity returned error: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid ticket, got %+v", result)
	}
	if result.Details == nil {
		t.Fatal("valid result must carry details")
	}
	if result.Details.Name != "Amira Hassan" || result.Details.Seat != "A1" {
		t.Fatalf("unexpected details: %+v", result.Details)
	}
	if result.Details.Time != "2024-01-01 10:00:00" {
		t.Fatalf("details time = %q", result.Details.Time)
	}
}

func TestCheckValidityTooEarly(t *testing.T) {
	svc, mock, done := validityService(t)
	defer done()

	scheduledAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	expectTicketRow(mock, 1, 1, scheduledAt)

	now := time.Date(2024, 1, 1, 8, 59, 59, 0, time.Local)
	result, err := svc.CheckValidity(1, now)
	if err != nil {
		t.Fatalf("CheckValidity returned error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid ticket before the window")
	}
	if result.Message != "ticket presented too early (more than one hour before its slot)" {
		t.Fatalf("unexpected message: %q", result.Message)
	}
	if result.Details != nil {
		t.Fatal("invalid result must not carry details")
	}
}

func TestCheckValidityExpired(t *testing.T) {
	svc, mock, done := validityService(t)
	defer done()

	scheduledAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	expectTicketRow(mock, 1, 1, scheduledAt)

	now := time.Date(2024, 1, 1, 11, 0, 1, 0, time.Local)
	result, err := svc.CheckValidity(1, now)
	if err != nil {
		t.Fatalf("CheckValidity returned error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid ticket after the window")
	}
	if result.Message != "ticket expired (more than one hour past its slot)" {
		t.Fatalf("unexpected message: %q", result.Message)
	}
}

func TestCheckValidityWindowEdgesInclusive(t *testing.T) {
	svc, mock, done := validityService(t)
	defer done()

	scheduledAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)

	for _, now := range []time.Time{
		scheduledAt.Add(-time.Hour), // exactly one hour early
		scheduledAt.Add(time.Hour),  // exactly one hour late
	} {
		expectTicketRow(mock, 1, 1, scheduledAt)
		result, err := svc.CheckValidity(1, now)
		if err != nil {
			t.Fatalf("CheckValidity(%v) returned error: %v", now, err)
		}
		if !result.Valid {
			t.Fatalf("window edges are inclusive, got invalid at %v", now)
		}
	}
}

func TestCheckValidityCancelledTicket(t *testing.T) {
	svc, mock, done := validityService(t)
	defer done()

	scheduledAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	expectTicketRow(mock, 1, 0, scheduledAt)

	// inside the window, but paid=0 wins
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	result, err := svc.CheckValidity(1, now)
	if err != nil {
		t.Fatalf("CheckValidity returned error: %v", err)
	}
	if result.Valid {
		t.Fatal("cancelled ticket must be invalid")
	}
	if result.Message != "ticket is not paid (cancelled or incomplete)" {
		t.Fatalf("unexpected message: %q", result.Message)
	}
}

func TestCheckValidityMissingTicket(t *testing.T) {
	svc, mock, done := validityService(t)
	defer done()

	mock.ExpectQuery("SELECT id_ticket, name, date_ticket_time").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(ticketColumns()))

	_, err := svc.CheckValidity(404, time.Now())
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
