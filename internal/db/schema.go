package db

import (
	"database/sql"
	"database/sql/driver"
	"errors"
)

// QueryRower is satisfied by *sql.DB and *sql.Tx alike.
type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

func HasTable(q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)

	if err != nil {
		if errors.Is(err, driver.ErrBadConn) {
			return false
		}
		return false
	}
	return name.Valid && name.String != ""
}

func HasColumn(q QueryRower, table, column string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		  AND column_name = ?
		LIMIT 1
	`, table, column).Scan(&name)

	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

// EnsureSchema creates the tables this service owns when they are missing.
// Seat uniqueness among active tickets is enforced transactionally in the
// ticket repository, not by a unique key: MySQL cannot scope a unique index
// to paid=1 rows, and a plain key would block rebooking a cancelled seat.
func EnsureSchema(dbc *sql.DB) error {
	ddls := map[string]string{"users": `
CREATE TABLE IF NOT EXISTS users (
	id VARCHAR(50) PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	date_of_birth DATE NOT NULL,
	resettle_date VARCHAR(50),
	address VARCHAR(255),
	username VARCHAR(100) NOT NULL,
	password VARCHAR(255) NOT NULL,
	email VARCHAR(255),
	phone VARCHAR(50),
	priority_card_path VARCHAR(255),
	UNIQUE KEY uniq_username (username),
	UNIQUE KEY uniq_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`, "employee": `
CREATE TABLE IF NOT EXISTS employee (
	employee_id BIGINT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	username VARCHAR(100) NOT NULL,
	password VARCHAR(255) NOT NULL,
	email VARCHAR(255),
	phone VARCHAR(50),
	UNIQUE KEY uniq_employee_username (username)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`, "tickets": `
CREATE TABLE IF NOT EXISTS tickets (
	id_ticket BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	date_ticket_time DATETIME NOT NULL,
	date_ticket_find TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	seat_number VARCHAR(50) NOT NULL,
	vip TINYINT NOT NULL DEFAULT 0,
	paid TINYINT NOT NULL DEFAULT 1,
	line VARCHAR(100) NOT NULL,
	departure_station VARCHAR(100) NOT NULL,
	arrival_station VARCHAR(100) NOT NULL,
	KEY idx_slot_seat (date_ticket_time, seat_number, vip, paid),
	KEY idx_passenger (name)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`}

	for table, ddl := range ddls {
		if HasTable(dbc, table) {
			continue
		}
		if _, err := dbc.Exec(ddl); err != nil {
			return err
		}
	}

	// Installs that predate route descriptors on tickets get the columns
	// added in place.
	migrations := map[string]string{
		"line":              `ALTER TABLE tickets ADD COLUMN line VARCHAR(100) NOT NULL DEFAULT ''`,
		"departure_station": `ALTER TABLE tickets ADD COLUMN departure_station VARCHAR(100) NOT NULL DEFAULT ''`,
		"arrival_station":   `ALTER TABLE tickets ADD COLUMN arrival_station VARCHAR(100) NOT NULL DEFAULT ''`,
	}
	for column, stmt := range migrations {
		if HasColumn(dbc, "tickets", column) {
			continue
		}
		if _, err := dbc.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
