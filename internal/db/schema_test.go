package db

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestEnsureSchemaSkipsExistingTables(t *testing.T) {
	dbc, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer dbc.Close()
	mock.MatchExpectationsInOrder(false)

	for _, table := range []string{"users", "employee", "tickets"} {
		mock.ExpectQuery("information_schema\\.tables").WithArgs(table).
			WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow(table))
	}
	for _, column := range []string{"line", "departure_station", "arrival_station"} {
		mock.ExpectQuery("information_schema\\.columns").WithArgs("tickets", column).
			WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow(column))
	}

	if err := EnsureSchema(dbc); err != nil {
		t.Fatalf("EnsureSchema returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureSchemaBackfillsRouteColumns(t *testing.T) {
	dbc, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer dbc.Close()
	mock.MatchExpectationsInOrder(false)

	for _, table := range []string{"users", "employee", "tickets"} {
		mock.ExpectQuery("information_schema\\.tables").WithArgs(table).
			WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow(table))
	}
	mock.ExpectQuery("information_schema\\.columns").WithArgs("tickets", "line").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("tickets", "departure_station").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("departure_station"))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("tickets", "arrival_station").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("arrival_station"))
	mock.ExpectExec("ALTER TABLE tickets ADD COLUMN line").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := EnsureSchema(dbc); err != nil {
		t.Fatalf("EnsureSchema returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
