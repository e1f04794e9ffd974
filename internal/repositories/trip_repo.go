package repositories

import (
	"database/sql"

	intconfig "github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/config"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/domain"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/domain/models"
)

type TripRepo struct {
	DB *sql.DB
}

func (r TripRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const tripCols = `
	t.id,
	t.trip_no,
	COALESCE(t.driver_name,''),
	COALESCE(t.vehicle_code,''),
	t.origin_depot_id,
	t.dest_depot_id,
	COALESCE(t.status,''),
	t.is_forwarding,
	COALESCE(DATE_FORMAT(t.completed_at,'%Y-%m-%d %H:%i:%s'),''),
	COALESCE(DATE_FORMAT(t.created_at,'%Y-%m-%d %H:%i:%s'),'')`

func scanTrip(row interface{ Scan(...any) error }) (models.Trip, error) {
	var t models.Trip
	err := row.Scan(
		&t.ID,
		&t.TripNo,
		&t.DriverName,
		&t.VehicleCode,
		&t.OriginDepotID,
		&t.DestDepotID,
		&t.Status,
		&t.IsForwarding,
		&t.CompletedAt,
		&t.CreatedAt,
	)
	return t, err
}

func (r TripRepo) Insert(t models.Trip) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO trips (trip_no, driver_name, vehicle_code, origin_depot_id, dest_depot_id, status, is_forwarding)
		VALUES (?,?,?,?,?,?,?)
	`, t.TripNo, t.DriverName, t.VehicleCode, t.OriginDepotID, t.DestDepotID, t.Status, t.IsForwarding)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TripRepo) GetByID(id int64) (models.Trip, error) {
	if id <= 0 {
		return models.Trip{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	t, err := scanTrip(r.db().QueryRow(`SELECT`+tripCols+` FROM trips t WHERE t.id = ? LIMIT 1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Trip{}, domain.NotFoundError{Resource: "trip", Err: err}
		}
		return models.Trip{}, err
	}
	return t, nil
}

// List returns trips newest first. Legacy rows numbered TRIP- surface
// alongside current TRP- rows; no prefix filtering on read.
func (r TripRepo) List() ([]models.Trip, error) {
	rows, err := r.db().Query(`SELECT` + tripCols + ` FROM trips t ORDER BY t.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepo) UpdateStatus(id int64, status string) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	if !domain.ValidTripStatus(status) {
		return domain.ValidationError{Field: "status", Msg: "unknown status " + status}
	}
	_, err := r.db().Exec(`UPDATE trips SET status=? WHERE id=?`, status, id)
	return err
}

// MarkCompleted flips the trip to completed and stamps completed_at. The
// status guard makes re-application a no-op, so the detector can fire more
// than once without toggling anything.
func (r TripRepo) MarkCompleted(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	_, err := r.db().Exec(`
		UPDATE trips SET status='completed', completed_at=NOW()
		WHERE id=? AND status <> 'completed'
	`, id)
	return err
}

// ForwardingTripIDsFrom returns ids of forwarding trips originating at the
// depot. First step of the junction-membership exclusion test.
func (r TripRepo) ForwardingTripIDsFrom(depotID int64) ([]int64, error) {
	rows, err := r.db().Query(`
		SELECT id FROM trips
		WHERE origin_depot_id = ? AND is_forwarding = 1
	`, depotID)
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
