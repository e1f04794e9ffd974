package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/config"
	intdb "github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/db"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/domain"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/domain/models"
)

type BookingRepo struct {
	DB *sql.DB
}

func (r BookingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingCols = `
	b.id,
	b.receipt_no,
	b.origin_depot_id,
	b.dest_depot_id,
	COALESCE(b.sender_name,''),
	COALESCE(b.sender_phone,''),
	COALESCE(b.payment_method,''),
	COALESCE(b.delivery_type,''),
	COALESCE(b.delivery_charge,0),
	COALESCE(b.subtotal,0),
	COALESCE(b.total,0),
	COALESCE(b.status,''),
	COALESCE(b.trip_id,0),
	COALESCE(b.current_location_depot_id,0),
	COALESCE(DATE_FORMAT(b.booked_at,'%Y-%m-%d %H:%i:%s'),''),
	COALESCE(DATE_FORMAT(b.delivered_at,'%Y-%m-%d %H:%i:%s'),'')`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID,
		&b.ReceiptNo,
		&b.OriginDepotID,
		&b.DestDepotID,
		&b.SenderName,
		&b.SenderPhone,
		&b.PaymentMethod,
		&b.DeliveryType,
		&b.DeliveryCharge,
		&b.Subtotal,
		&b.Total,
		&b.Status,
		&b.TripID,
		&b.CurrentLocationID,
		&b.BookedAt,
		&b.DeliveredAt,
	)
	return b, err
}

// InsertBooking writes the booking header on the given executor and
// returns the new row id.
func (r BookingRepo) InsertBooking(ex intdb.Execer, b models.Booking) (int64, error) {
	res, err := ex.Exec(`
		INSERT INTO bookings
			(receipt_no, origin_depot_id, dest_depot_id, sender_name, sender_phone,
			 payment_method, delivery_type, delivery_charge, subtotal, total, status)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)
	`,
		b.ReceiptNo, b.OriginDepotID, b.DestDepotID, b.SenderName, b.SenderPhone,
		b.PaymentMethod, b.DeliveryType, b.DeliveryCharge, b.Subtotal, b.Total, b.Status,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertReceiver writes one receiver row and returns its id.
func (r BookingRepo) InsertReceiver(ex intdb.Execer, rc models.Receiver) (int64, error) {
	res, err := ex.Exec(`
		INSERT INTO booking_receivers (booking_id, position, name, phone, address)
		VALUES (?,?,?,?,?)
	`, rc.BookingID, rc.Position, rc.Name, rc.Phone, rc.Address)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertPackageLine writes one package line row and returns its id.
func (r BookingRepo) InsertPackageLine(ex intdb.Execer, l models.PackageLine) (int64, error) {
	res, err := ex.Exec(`
		INSERT INTO package_lines (receiver_id, package_id, size_text, quantity, unit_price)
		VALUES (?,?,?,?,?)
	`, l.ReceiverID, intdb.NullIfZero(l.PackageID), l.SizeText, l.Quantity, l.UnitPrice)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// CreateAtomic writes the booking header, receivers and package lines as
// one transaction. nextReceipt generates the receipt number on the same
// transaction so numbering commits or rolls back with the rows it names.
// Signatures from the enumerated capability set come back as
// domain.CapabilityError so the caller can downgrade to the sequential path.
func (r BookingRepo) CreateAtomic(b models.Booking, receivers []models.Receiver, nextReceipt func(intdb.Execer) (string, error)) (models.Booking, error) {
	tx, err := r.db().Begin()
	if err != nil {
		if IsCapabilitySignature(err) {
			return models.Booking{}, domain.CapabilityError{Operation: "atomic booking create", Err: err}
		}
		return models.Booking{}, err
	}

	created, err := r.createOn(tx, b, receivers, nextReceipt)
	if err != nil {
		_ = tx.Rollback()
		if IsCapabilitySignature(err) {
			return models.Booking{}, domain.CapabilityError{Operation: "atomic booking create", Err: err}
		}
		return models.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Booking{}, err
	}
	return created, nil
}

func (r BookingRepo) createOn(ex intdb.Execer, b models.Booking, receivers []models.Receiver, nextReceipt func(intdb.Execer) (string, error)) (models.Booking, error) {
	receipt, err := nextReceipt(ex)
	if err != nil {
		return models.Booking{}, err
	}
	b.ReceiptNo = receipt

	id, err := r.InsertBooking(ex, b)
	if err != nil {
		return models.Booking{}, err
	}
	b.ID = id

	for i := range receivers {
		receivers[i].BookingID = id
		rid, err := r.InsertReceiver(ex, receivers[i])
		if err != nil {
			return models.Booking{}, err
		}
		receivers[i].ID = rid
		for j := range receivers[i].Packages {
			receivers[i].Packages[j].ReceiverID = rid
			lid, err := r.InsertPackageLine(ex, receivers[i].Packages[j])
			if err != nil {
				return models.Booking{}, err
			}
			receivers[i].Packages[j].ID = lid
		}
	}
	return b, nil
}

// DeleteCascade removes a booking with its receivers and package lines.
// Used as the compensating transaction when the sequential create path
// fails partway through.
func (r BookingRepo) DeleteCascade(bookingID int64) error {
	if bookingID <= 0 {
		return fmt.Errorf("invalid booking id")
	}
	db := r.db()
	if _, err := db.Exec(`
		DELETE pl FROM package_lines pl
		JOIN booking_receivers br ON br.id = pl.receiver_id
		WHERE br.booking_id = ?
	`, bookingID); err != nil {
		return err
	}
	if _, err := db.Exec(`DELETE FROM booking_receivers WHERE booking_id = ?`, bookingID); err != nil {
		return err
	}
	_, err := db.Exec(`DELETE FROM bookings WHERE id = ?`, bookingID)
	return err
}

func (r BookingRepo) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	b, err := scanBooking(r.db().QueryRow(
		`SELECT`+bookingCols+` FROM bookings b WHERE b.id = ? LIMIT 1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, err
	}
	return b, nil
}

func (r BookingRepo) GetByReceipt(receiptNo string) (models.Booking, error) {
	receiptNo = strings.TrimSpace(receiptNo)
	if receiptNo == "" {
		return models.Booking{}, domain.ValidationError{Field: "receipt_no", Msg: "required"}
	}
	b, err := scanBooking(r.db().QueryRow(
		`SELECT`+bookingCols+` FROM bookings b WHERE b.receipt_no = ? LIMIT 1`, receiptNo))
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, err
	}
	return b, nil
}

// ListReceivers loads a booking's receivers in submitted order, each with
// its package lines.
func (r BookingRepo) ListReceivers(bookingID int64) ([]models.Receiver, error) {
	db := r.db()
	rows, err := db.Query(`
		SELECT id, booking_id, position, COALESCE(name,''), COALESCE(phone,''), COALESCE(address,'')
		FROM booking_receivers
		WHERE booking_id = ?
		ORDER BY position ASC, id ASC
	`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Receiver{}
	for rows.Next() {
		var rc models.Receiver
		if err := rows.Scan(&rc.ID, &rc.BookingID, &rc.Position, &rc.Name, &rc.Phone, &rc.Address); err != nil {
			return out, err
		}
		out = append(out, rc)
	}
	if err := rows.Err(); err != nil {
		return out, err
	}

	for i := range out {
		lines, err := r.listPackageLines(out[i].ID)
		if err != nil {
			return out, err
		}
		out[i].Packages = lines
	}
	return out, nil
}

func (r BookingRepo) listPackageLines(receiverID int64) ([]models.PackageLine, error) {
	rows, err := r.db().Query(`
		SELECT id, receiver_id, COALESCE(package_id,0), COALESCE(size_text,''), quantity, unit_price
		FROM package_lines
		WHERE receiver_id = ?
		ORDER BY id ASC
	`, receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.PackageLine{}
	for rows.Next() {
		var l models.PackageLine
		if err := rows.Scan(&l.ID, &l.ReceiverID, &l.PackageID, &l.SizeText, &l.Quantity, &l.UnitPrice); err != nil {
			return out, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// UpdateStatus sets the booking lifecycle status, stamping delivered_at on
// the delivered transition.
func (r BookingRepo) UpdateStatus(id int64, status string) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	if !domain.ValidBookingStatus(status) {
		return domain.ValidationError{Field: "status", Msg: "unknown status " + status}
	}
	var res sql.Result
	var err error
	if status == string(domain.BookingDelivered) {
		res, err = r.db().Exec(`UPDATE bookings SET status=?, delivered_at=NOW() WHERE id=?`, status, id)
	} else {
		res, err = r.db().Exec(`UPDATE bookings SET status=? WHERE id=?`, status, id)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// status may be unchanged; verify existence before reporting not found
		var one int
		if err := r.db().QueryRow(`SELECT 1 FROM bookings WHERE id=? LIMIT 1`, id).Scan(&one); err == sql.ErrNoRows {
			return domain.NotFoundError{Resource: "booking"}
		}
	}
	return nil
}

// AssignTrip is the FK half of the trip-assignment dual write: trip_id,
// status and current location on every named booking in one statement.
func (r BookingRepo) AssignTrip(tripID int64, bookingIDs []int64, status string, destDepotID int64) error {
	if tripID <= 0 {
		return domain.ValidationError{Field: "trip_id", Msg: "invalid id"}
	}
	if len(bookingIDs) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(bookingIDs)), ",")
	args := []any{tripID, status, destDepotID}
	for _, id := range bookingIDs {
		args = append(args, id)
	}
	_, err := r.db().Exec(
		`UPDATE bookings SET trip_id=?, status=?, current_location_depot_id=? WHERE id IN (`+placeholders+`)`,
		args...,
	)
	return err
}

// ListByTripFK returns bookings whose trip_id column points at the trip,
// newest first. This is the primary half of the reconciling read.
func (r BookingRepo) ListByTripFK(tripID int64) ([]models.Booking, error) {
	rows, err := r.db().Query(
		`SELECT`+bookingCols+` FROM bookings b WHERE b.trip_id = ? ORDER BY b.id DESC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// ListByIDs returns the named bookings, newest first, matching the
// ordering contract of ListByTripFK for the junction fallback.
func (r BookingRepo) ListByIDs(ids []int64) ([]models.Booking, error) {
	if len(ids) == 0 {
		return []models.Booking{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	rows, err := r.db().Query(
		`SELECT`+bookingCols+` FROM bookings b WHERE b.id IN (`+placeholders+`) ORDER BY b.id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func collectBookings(rows *sql.Rows) ([]models.Booking, error) {
	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// CountByTrip returns total and delivered booking counts under a trip.
func (r BookingRepo) CountByTrip(tripID int64) (total, delivered int, err error) {
	err = r.db().QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(status = 'delivered'), 0)
		FROM bookings
		WHERE trip_id = ?
	`, tripID).Scan(&total, &delivered)
	return total, delivered, err
}

// CountQualifiedByTrip restricts the completion counts to bookings whose
// destination is a managed depot and whose delivery type is not pickup.
// Pickup parcels are tracked outside this system and must never gate
// completion, so the counts are computed independently of CountByTrip.
func (r BookingRepo) CountQualifiedByTrip(tripID int64) (total, delivered int, err error) {
	err = r.db().QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(b.status = 'delivered'), 0)
		FROM bookings b
		JOIN depots d ON d.id = b.dest_depot_id
		WHERE b.trip_id = ?
		  AND d.depot_type = 'managed'
		  AND b.delivery_type <> 'pickup'
	`, tripID).Scan(&total, &delivered)
	return total, delivered, err
}

// ListForwardCandidates returns bookings eligible for a forwarding trip
// before junction-based exclusion: in transit or at a depot, destined for
// one of the depots the origin forwards to.
func (r BookingRepo) ListForwardCandidates(destDepotIDs []int64) ([]models.Booking, error) {
	if len(destDepotIDs) == 0 {
		return []models.Booking{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(destDepotIDs)), ",")
	args := make([]any, 0, len(destDepotIDs))
	for _, id := range destDepotIDs {
		args = append(args, id)
	}
	rows, err := r.db().Query(
		`SELECT`+bookingCols+` FROM bookings b
		WHERE b.status IN ('in_transit','reached_depot')
		  AND b.dest_depot_id IN (`+placeholders+`)
		ORDER BY b.id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// RecomputeTotals recalculates subtotal and total from the booking's
// package lines. MySQL applies SET clauses left to right, so total sees
// the freshly assigned subtotal.
func (r BookingRepo) RecomputeTotals(ex intdb.Execer, bookingID int64) error {
	if bookingID <= 0 {
		return domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}
	_, err := ex.Exec(`
		UPDATE bookings
		SET subtotal = (
			SELECT COALESCE(SUM(pl.quantity * pl.unit_price), 0)
			FROM booking_receivers br
			LEFT JOIN package_lines pl ON pl.receiver_id = br.id
			WHERE br.booking_id = bookings.id
		),
		total = subtotal + delivery_charge
		WHERE id = ?
	`, bookingID)
	return err
}

// UpdatePackageLine rewrites one line's quantity and price and returns the
// owning booking id so the caller can recompute totals.
func (r BookingRepo) UpdatePackageLine(lineID int64, quantity int, unitPrice int64) (int64, error) {
	bookingID, err := r.bookingIDForLine(lineID)
	if err != nil {
		return 0, err
	}
	if _, err := r.db().Exec(
		`UPDATE package_lines SET quantity=?, unit_price=? WHERE id=?`,
		quantity, unitPrice, lineID,
	); err != nil {
		return 0, err
	}
	return bookingID, nil
}

// DeletePackageLine removes one line and returns the owning booking id.
func (r BookingRepo) DeletePackageLine(lineID int64) (int64, error) {
	bookingID, err := r.bookingIDForLine(lineID)
	if err != nil {
		return 0, err
	}
	if _, err := r.db().Exec(`DELETE FROM package_lines WHERE id=?`, lineID); err != nil {
		return 0, err
	}
	return bookingID, nil
}

func (r BookingRepo) bookingIDForLine(lineID int64) (int64, error) {
	if lineID <= 0 {
		return 0, domain.ValidationError{Field: "line_id", Msg: "invalid id"}
	}
	var bookingID int64
	err := r.db().QueryRow(`
		SELECT br.booking_id
		FROM package_lines pl
		JOIN booking_receivers br ON br.id = pl.receiver_id
		WHERE pl.id = ?
		LIMIT 1
	`, lineID).Scan(&bookingID)
	if err == sql.ErrNoRows {
		return 0, domain.NotFoundError{Resource: "package line", Err: err}
	}
	return bookingID, err
}
