package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCounterNextReturnsAdvancedSerial(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO sequence_counters").
		WithArgs("receipt", "2026-01-16").
		WillReturnResult(sqlmock.NewResult(6, 2))

	repo := CounterRepo{DB: db}
	serial, err := repo.Next("receipt", "2026-01-16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if serial != 6 {
		t.Fatalf("serial = %d, want 6", serial)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCounterNextCreatesRowOnFirstUse(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// fresh insert: one affected row, LAST_INSERT_ID forced to 1
	mock.ExpectExec("INSERT INTO sequence_counters").
		WithArgs("trip", "2026-01-16").
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := CounterRepo{DB: db}
	serial, err := repo.Next("trip", "2026-01-16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if serial != 1 {
		t.Fatalf("first-use serial = %d, want 1", serial)
	}
}

func TestCounterNextRejectsEmptyArgs(t *testing.T) {
	repo := CounterRepo{}
	if _, err := repo.Next("", "2026-01-16"); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if _, err := repo.Next("receipt", ""); err == nil {
		t.Fatalf("expected error for empty date")
	}
}

func TestCounterNextRejectsNonPositiveSerial(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO sequence_counters").
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo := CounterRepo{DB: db}
	if _, err := repo.Next("payment", "2026-01-16"); err == nil {
		t.Fatalf("expected error for non-positive serial")
	}
}
