package repositories

import (
	"database/sql"
	"strings"

	intconfig "github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/config"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/domain"
)

// TripBookingRepo owns the trip_bookings junction rows. Rows are inserted
// once and never updated; absence is the failure mode the reconciling read
// tolerates.
type TripBookingRepo struct {
	DB *sql.DB
}

func (r TripBookingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// InsertPairs records one junction row per booking. INSERT IGNORE keeps
// the (trip_id, booking_id) pair unique under retries.
func (r TripBookingRepo) InsertPairs(tripID int64, bookingIDs []int64) error {
	if tripID <= 0 {
		return domain.ValidationError{Field: "trip_id", Msg: "invalid id"}
	}
	if len(bookingIDs) == 0 {
		return nil
	}
	values := strings.TrimSuffix(strings.Repeat("(?,?),", len(bookingIDs)), ",")
	args := make([]any, 0, len(bookingIDs)*2)
	for _, id := range bookingIDs {
		args = append(args, tripID, id)
	}
	_, err := r.db().Exec(`INSERT IGNORE INTO trip_bookings (trip_id, booking_id) VALUES `+values, args...)
	return err
}

// BookingIDsForTrip resolves membership through the junction, newest row
// first to match the FK read's ordering.
func (r TripBookingRepo) BookingIDsForTrip(tripID int64) ([]int64, error) {
	rows, err := r.db().Query(`
		SELECT booking_id FROM trip_bookings
		WHERE trip_id = ?
		ORDER BY booking_id DESC
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return out, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// BookingIDsInTrips returns the set of booking ids present in any of the
// given trips' junction rows. Second step of the forwarding exclusion
// test; membership here is the correct check, not trip_id being null,
// because a booking keeps its origin-leg trip_id while awaiting forwarding.
func (r TripBookingRepo) BookingIDsInTrips(tripIDs []int64) (map[int64]bool, error) {
	out := map[int64]bool{}
	if len(tripIDs) == 0 {
		return out, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(tripIDs)), ",")
	args := make([]any, 0, len(tripIDs))
	for _, id := range tripIDs {
		args = append(args, id)
	}
	rows, err := r.db().Query(
		`SELECT booking_id FROM trip_bookings WHERE trip_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return out, err
		}
		out[id] = true
	}
	return out, rows.Err()
}
