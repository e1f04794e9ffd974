package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/domain"
)

func TestUpdateStatusStampsDeliveredAt(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("delivered_at=NOW").
		WithArgs("delivered", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := BookingRepo{DB: db}
	if err := repo.UpdateStatus(7, "delivered"); err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateStatusNoTimestampForOtherStatuses(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings SET status=\\? WHERE id=\\?").
		WithArgs("reached_depot", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := BookingRepo{DB: db}
	if err := repo.UpdateStatus(7, "reached_depot"); err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	repo := BookingRepo{}
	if err := repo.UpdateStatus(7, "teleported"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusNotFoundWhenRowMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM bookings").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	repo := BookingRepo{DB: db}
	if err := repo.UpdateStatus(7, "loading"); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestAssignTripBuildsSingleBulkUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings SET trip_id").
		WithArgs(int64(4), "in_transit", int64(2), int64(10), int64(11), int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := BookingRepo{DB: db}
	if err := repo.AssignTrip(4, []int64{10, 11, 12}, "in_transit", 2); err != nil {
		t.Fatalf("AssignTrip error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAssignTripNoopWithoutBookings(t *testing.T) {
	repo := BookingRepo{}
	if err := repo.AssignTrip(4, nil, "in_transit", 2); err != nil {
		t.Fatalf("empty assignment must be a no-op, got %v", err)
	}
}

func TestRecomputeTotalsRunsSingleUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := BookingRepo{DB: db}
	if err := repo.RecomputeTotals(db, 9); err != nil {
		t.Fatalf("RecomputeTotals error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
