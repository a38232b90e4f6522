package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intconfig "metrobook/internal/config"
	"metrobook/internal/domain"
	"metrobook/internal/domain/models"
	"metrobook/internal/utils"

	"github.com/go-sql-driver/mysql"
)

// TicketRepository owns all reads and writes of the tickets table, including
// the seat-conflict transactions. Seat uniqueness among paid tickets is
// enforced here with SELECT ... FOR UPDATE inside the booking transaction;
// InnoDB next-key locks serialize two requests racing for the same
// (slot, seat, class) partition. A duplicate-key error from the store is
// still mapped to a conflict as a second line of defense.
type TicketRepository struct {
	DB *sql.DB
}

func (r TicketRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// TripQuery identifies one scheduled journey partition. Route fields are
// compared case- and whitespace-insensitively.
type TripQuery struct {
	TimeSlot         string
	Line             string
	DepartureStation string
	ArrivalStation   string
	ClassRank        int
	ExcludeTicketID  int64
}

// NewTicket carries the validated fields for one booking insert.
type NewTicket struct {
	PassengerName    string
	TimeSlot         string
	SeatNumber       string
	ClassRank        int
	Line             string
	DepartureStation string
	ArrivalStation   string
}

// Move carries the new placement for an existing ticket. Class and paid flag
// are never touched by a move.
type Move struct {
	Line             string
	DepartureStation string
	ArrivalStation   string
	TimeSlot         string
	SeatNumber       string
}

// OccupiedSeats lists seat numbers taken by paid tickets in the given
// (slot, route, class) partition, optionally excluding one ticket id.
func (r TicketRepository) OccupiedSeats(q TripQuery) ([]string, error) {
	query := `
		SELECT seat_number
		FROM tickets
		WHERE date_ticket_time = ?
		  AND TRIM(LOWER(line)) = TRIM(LOWER(?))
		  AND TRIM(LOWER(departure_station)) = TRIM(LOWER(?))
		  AND TRIM(LOWER(arrival_station)) = TRIM(LOWER(?))
		  AND paid = 1
		  AND vip = ?`
	args := []any{q.TimeSlot, q.Line, q.DepartureStation, q.ArrivalStation, q.ClassRank}

	if q.ExcludeTicketID > 0 {
		query += ` AND id_ticket != ?`
		args = append(args, q.ExcludeTicketID)
	}

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			return out, err
		}
		out = append(out, seat)
	}
	return out, rows.Err()
}

// SeatsAtTime lists every paid seat at the exact slot, route and class
// ignored. The class rank is collapsed to a 0/1 vip flag for the boundary.
func (r TicketRepository) SeatsAtTime(timeSlot string) ([]models.SeatStatus, error) {
	rows, err := r.db().Query(`
		SELECT seat_number, vip
		FROM tickets
		WHERE date_ticket_time = ? AND paid = 1
	`, timeSlot)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.SeatStatus{}
	for rows.Next() {
		var s models.SeatStatus
		var rank int
		if err := rows.Scan(&s.SeatNumber, &rank); err != nil {
			return out, err
		}
		if rank > 0 {
			s.VIP = 1
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID fetches one ticket row regardless of paid state.
func (r TicketRepository) GetByID(id int64) (models.Ticket, error) {
	var (
		t           models.Ticket
		scheduledAt time.Time
		createdAt   sql.NullTime
	)
	err := r.db().QueryRow(`
		SELECT id_ticket, name, date_ticket_time, date_ticket_find,
		       seat_number, vip, paid, line, departure_station, arrival_station
		FROM tickets
		WHERE id_ticket = ?
	`, id).Scan(
		&t.ID,
		&t.PassengerName,
		&scheduledAt,
		&createdAt,
		&t.SeatNumber,
		&t.ClassRank,
		&t.Paid,
		&t.Line,
		&t.DepartureStation,
		&t.ArrivalStation,
	)
	if err != nil {
		return t, err
	}
	t.ScheduledAt = utils.FormatDateTime(scheduledAt)
	if createdAt.Valid {
		t.CreatedAt = utils.FormatDateTime(createdAt.Time)
	}
	t.Line = strings.TrimSpace(t.Line)
	t.DepartureStation = strings.TrimSpace(t.DepartureStation)
	t.ArrivalStation = strings.TrimSpace(t.ArrivalStation)
	return t, nil
}

// Insert books a seat with paid=1, created_at stamped by the store. Returns
// domain.ConflictError when the (slot, seat, class) partition is taken.
func (r TicketRepository) Insert(nt NewTicket) (int64, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	taken, err := seatTaken(tx, nt.TimeSlot, nt.SeatNumber, nt.ClassRank, 0)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, domain.ConflictError{Msg: fmt.Sprintf("seat %s is already booked", strings.TrimSpace(nt.SeatNumber))}
	}

	res, err := tx.Exec(`
		INSERT INTO tickets (
			name, date_ticket_time, date_ticket_find,
			seat_number, vip, paid,
			line, departure_station, arrival_station
		)
		VALUES (?, ?, NOW(), ?, ?, 1, ?, ?, ?)
	`,
		nt.PassengerName,
		nt.TimeSlot,
		nt.SeatNumber,
		nt.ClassRank,
		nt.Line,
		nt.DepartureStation,
		nt.ArrivalStation,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, domain.ConflictError{Msg: fmt.Sprintf("seat %s is already booked", strings.TrimSpace(nt.SeatNumber)), Err: err}
		}
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// Relocate moves a paid ticket to a new slot/seat/route in one atomic write.
// The conflict check is skipped when the seat is unchanged and always runs
// against the ticket's stored class, excluding the ticket itself.
func (r TicketRepository) Relocate(id int64, mv Move) error {
	tx, err := r.db().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var (
		currentSeat string
		classRank   int
	)
	err = tx.QueryRow(`
		SELECT seat_number, vip
		FROM tickets
		WHERE id_ticket = ? AND paid = 1
		FOR UPDATE
	`, id).Scan(&currentSeat, &classRank)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: "ticket", Err: err}
	}
	if err != nil {
		return err
	}

	if strings.TrimSpace(mv.SeatNumber) != strings.TrimSpace(currentSeat) {
		taken, err := seatTaken(tx, mv.TimeSlot, mv.SeatNumber, classRank, id)
		if err != nil {
			return err
		}
		if taken {
			return domain.ConflictError{Msg: fmt.Sprintf("seat %s is already booked", strings.TrimSpace(mv.SeatNumber))}
		}
	}

	_, err = tx.Exec(`
		UPDATE tickets
		SET line = ?,
		    departure_station = ?,
		    arrival_station = ?,
		    date_ticket_time = ?,
		    seat_number = ?
		WHERE id_ticket = ? AND paid = 1
	`, mv.Line, mv.DepartureStation, mv.ArrivalStation, mv.TimeSlot, mv.SeatNumber, id)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ConflictError{Msg: fmt.Sprintf("seat %s is already booked", strings.TrimSpace(mv.SeatNumber)), Err: err}
		}
		return err
	}

	return tx.Commit()
}

// Cancel flips paid to 0. A missing or already-cancelled ticket reports
// NotFound; the row itself is kept.
func (r TicketRepository) Cancel(id int64) error {
	res, err := r.db().Exec(`UPDATE tickets SET paid = 0 WHERE id_ticket = ? AND paid = 1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "ticket"}
	}
	return nil
}

// ListActiveByName returns upcoming paid tickets for a passenger name,
// soonest first.
func (r TicketRepository) ListActiveByName(name string) ([]models.Ticket, error) {
	return r.listByName(name, `paid = 1 AND date_ticket_time > NOW()`, "ASC")
}

// ListCompletedByName returns cancelled or past tickets, most recent first.
func (r TicketRepository) ListCompletedByName(name string) ([]models.Ticket, error) {
	return r.listByName(name, `(paid = 0 OR date_ticket_time <= NOW())`, "DESC")
}

func (r TicketRepository) listByName(name, cond, order string) ([]models.Ticket, error) {
	rows, err := r.db().Query(`
		SELECT id_ticket, name, date_ticket_time, date_ticket_find,
		       seat_number, vip, paid, line, departure_station, arrival_station
		FROM tickets
		WHERE TRIM(LOWER(name)) = TRIM(LOWER(?))
		  AND `+cond+`
		ORDER BY date_ticket_time `+order,
		name,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Ticket{}
	for rows.Next() {
		var (
			t           models.Ticket
			scheduledAt time.Time
			createdAt   sql.NullTime
		)
		if err := rows.Scan(
			&t.ID,
			&t.PassengerName,
			&scheduledAt,
			&createdAt,
			&t.SeatNumber,
			&t.ClassRank,
			&t.Paid,
			&t.Line,
			&t.DepartureStation,
			&t.ArrivalStation,
		); err != nil {
			return out, err
		}
		t.ScheduledAt = utils.FormatDateTime(scheduledAt)
		if createdAt.Valid {
			t.CreatedAt = utils.FormatDateTime(createdAt.Time)
		}
		if t.ClassRank > 0 {
			t.ClassRank = 1
		}
		t.Line = strings.TrimSpace(t.Line)
		t.DepartureStation = strings.TrimSpace(t.DepartureStation)
		t.ArrivalStation = strings.TrimSpace(t.ArrivalStation)
		out = append(out, t)
	}
	return out, rows.Err()
}

// seatTaken locks and counts paid tickets in one (slot, seat, class)
// partition. Runs inside the caller's transaction so the gap stays locked
// until the write commits.
func seatTaken(tx *sql.Tx, timeSlot, seatNumber string, classRank int, excludeID int64) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM tickets
		WHERE date_ticket_time = ?
		  AND seat_number = ?
		  AND vip = ?
		  AND paid = 1`
	args := []any{timeSlot, seatNumber, classRank}
	if excludeID > 0 {
		query += ` AND id_ticket != ?`
		args = append(args, excludeID)
	}
	query += ` FOR UPDATE`

	var n int
	if err := tx.QueryRow(query, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
