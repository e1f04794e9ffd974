package repositories

import (
	"database/sql"

	intconfig "github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/config"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/domain/models"
)

type PaymentRepo struct {
	DB *sql.DB
}

func (r PaymentRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r PaymentRepo) InsertAdvance(p models.AdvancePayment) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO advance_payments (receipt_no, booking_id, amount, method)
		VALUES (?,?,?,?)
	`, p.ReceiptNo, p.BookingID, p.Amount, p.Method)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PaymentRepo) ListByBooking(bookingID int64) ([]models.AdvancePayment, error) {
	rows, err := r.db().Query(`
		SELECT id, receipt_no, booking_id, amount, COALESCE(method,''),
		       COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),'')
		FROM advance_payments
		WHERE booking_id = ?
		ORDER BY id DESC
	`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.AdvancePayment{}
	for rows.Next() {
		var p models.AdvancePayment
		if err := rows.Scan(&p.ID, &p.ReceiptNo, &p.BookingID, &p.Amount, &p.Method, &p.CreatedAt); err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
