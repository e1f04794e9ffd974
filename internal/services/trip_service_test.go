package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "receipt_no", "origin_depot_id", "dest_depot_id", "sender_name", "sender_phone",
		"payment_method", "delivery_type", "delivery_charge", "subtotal", "total", "status",
		"trip_id", "current_location_depot_id", "booked_at", "delivered_at",
	})
}

func TestAssignWritesFKThenJunction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings SET trip_id").
		WithArgs(int64(7), "in_transit", int64(2), int64(101), int64(102)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT IGNORE INTO trip_bookings").
		WithArgs(int64(7), int64(101), int64(7), int64(102)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	svc := TripService{DB: db}
	if err := svc.Assign(7, []int64{101, 102}, false, 2); err != nil {
		t.Fatalf("Assign error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAssignForwardingUsesDistinctStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings SET trip_id").
		WithArgs(int64(8), "in_transit_forwarding", int64(4), int64(55)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT IGNORE INTO trip_bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := TripService{DB: db}
	if err := svc.Assign(8, []int64{55}, true, 4); err != nil {
		t.Fatalf("Assign error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAssignToleratesJunctionFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings SET trip_id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT IGNORE INTO trip_bookings").
		WillReturnError(errors.New("lock wait timeout"))

	svc := TripService{DB: db}
	if err := svc.Assign(7, []int64{101}, false, 2); err != nil {
		t.Fatalf("junction failure must not fail Assign, got %v", err)
	}
}

func TestAssignFailsWhenFKWriteFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings SET trip_id").
		WillReturnError(errors.New("lock wait timeout"))

	svc := TripService{DB: db}
	if err := svc.Assign(7, []int64{101}, false, 2); err == nil {
		t.Fatalf("expected error when the FK write fails")
	}
}

func TestBookingsForTripFallsBackToJunction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// FK column read comes back empty, junction still has the rows
	mock.ExpectQuery("FROM bookings b WHERE b.trip_id").
		WithArgs(int64(7)).
		WillReturnRows(bookingRows())
	mock.ExpectQuery("FROM trip_bookings").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"booking_id"}).AddRow(102).AddRow(101))
	mock.ExpectQuery("FROM bookings b WHERE b.id IN").
		WithArgs(int64(102), int64(101)).
		WillReturnRows(bookingRows().
			AddRow(102, "DRT-15012026-002", 1, 2, "Asha", "98", "paid", "door", 0, 100, 100, "in_transit", 0, 1, "", "").
			AddRow(101, "DRT-15012026-001", 1, 2, "Lata", "97", "to_pay", "door", 0, 80, 80, "in_transit", 0, 1, "", ""))

	svc := TripService{DB: db}
	got, err := svc.BookingsForTrip(7)
	if err != nil {
		t.Fatalf("BookingsForTrip error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d bookings, want 2", len(got))
	}
	if got[0].ID != 102 || got[1].ID != 101 {
		t.Errorf("ordering = [%d %d], want newest first [102 101]", got[0].ID, got[1].ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingsForTripPrefersFKRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings b WHERE b.trip_id").
		WithArgs(int64(7)).
		WillReturnRows(bookingRows().
			AddRow(102, "DRT-15012026-002", 1, 2, "Asha", "98", "paid", "door", 0, 100, 100, "in_transit", 7, 1, "", ""))

	svc := TripService{DB: db}
	got, err := svc.BookingsForTrip(7)
	if err != nil {
		t.Fatalf("BookingsForTrip error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 102 {
		t.Fatalf("got %+v, want single booking 102 without touching the junction", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEligibleForForwardingExcludesByJunctionMembership(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM depot_routes").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"to_depot_id"}).AddRow(9))

	// both candidates still carry their origin-leg trip_id; that alone
	// must not exclude them
	mock.ExpectQuery("b.status IN").
		WithArgs(int64(9)).
		WillReturnRows(bookingRows().
			AddRow(111, "DRT-15012026-004", 1, 9, "Asha", "98", "paid", "door", 0, 100, 100, "reached_depot", 3, 5, "", "").
			AddRow(110, "DRT-15012026-003", 1, 9, "Lata", "97", "paid", "door", 0, 90, 90, "reached_depot", 3, 5, "", ""))

	mock.ExpectQuery("FROM trips").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(70))
	mock.ExpectQuery("FROM trip_bookings").
		WithArgs(int64(70)).
		WillReturnRows(sqlmock.NewRows([]string{"booking_id"}).AddRow(111))

	svc := TripService{DB: db}
	got, err := svc.EligibleForForwarding(5)
	if err != nil {
		t.Fatalf("EligibleForForwarding error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 110 {
		t.Fatalf("got %+v, want only booking 110 (111 already enrolled)", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEligibleForForwardingNoRoutes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM depot_routes").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"to_depot_id"}))

	svc := TripService{DB: db}
	got, err := svc.EligibleForForwarding(5)
	if err != nil {
		t.Fatalf("EligibleForForwarding error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d candidates from a depot with no forward routes", len(got))
	}
}

func TestOnDeliveredCompletesTripWhenAllDelivered(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings b WHERE b.id").
		WithArgs(int64(77)).
		WillReturnRows(bookingRows().
			AddRow(77, "DRT-15012026-005", 1, 2, "Asha", "98", "paid", "door", 0, 100, 100, "delivered", 4, 2, "", ""))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"total", "delivered"}).AddRow(3, 3))
	mock.ExpectExec("UPDATE trips SET status='completed'").
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := TripService{DB: db}
	if err := svc.OnDelivered(77, false); err != nil {
		t.Fatalf("OnDelivered error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOnDeliveredLeavesTripOpenWhileParcelsRemain(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings b WHERE b.id").
		WithArgs(int64(77)).
		WillReturnRows(bookingRows().
			AddRow(77, "DRT-15012026-005", 1, 2, "Asha", "98", "paid", "door", 0, 100, 100, "delivered", 4, 2, "", ""))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"total", "delivered"}).AddRow(3, 2))

	svc := TripService{DB: db}
	if err := svc.OnDelivered(77, false); err != nil {
		t.Fatalf("OnDelivered error: %v", err)
	}
	// no MarkCompleted exec expected
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOnDeliveredStrictCountsQualifiedOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings b WHERE b.id").
		WithArgs(int64(77)).
		WillReturnRows(bookingRows().
			AddRow(77, "DRT-15012026-005", 1, 2, "Asha", "98", "paid", "door", 0, 100, 100, "delivered", 4, 2, "", ""))
	mock.ExpectQuery("JOIN depots").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"total", "delivered"}).AddRow(2, 2))
	mock.ExpectExec("UPDATE trips SET status='completed'").
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := TripService{DB: db}
	if err := svc.OnDelivered(77, true); err != nil {
		t.Fatalf("OnDelivered error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOnDeliveredSkipsBookingWithoutTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings b WHERE b.id").
		WithArgs(int64(77)).
		WillReturnRows(bookingRows().
			AddRow(77, "DRT-15012026-005", 1, 2, "Asha", "98", "paid", "door", 0, 100, 100, "delivered", 0, 2, "", ""))

	svc := TripService{DB: db}
	if err := svc.OnDelivered(77, false); err != nil {
		t.Fatalf("OnDelivered error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkDeliveredSwallowsDetectorError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs("delivered", int64(77)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM bookings b WHERE b.id").
		WillReturnError(errors.New("connection reset"))

	svc := TripService{DB: db}
	if err := svc.MarkDelivered(77, false); err != nil {
		t.Fatalf("detector failure must not surface, got %v", err)
	}
}

func TestMarkDeliveredSurfacesStatusUpdateError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings SET status").
		WillReturnError(errors.New("connection reset"))

	svc := TripService{DB: db}
	if err := svc.MarkDelivered(77, false); err == nil {
		t.Fatalf("expected error when the status update itself fails")
	}
}
