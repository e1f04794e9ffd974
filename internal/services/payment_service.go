package services

import (
	"database/sql"
	"time"

	intconfig "github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/config"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/domain"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/domain/models"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/repositories"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/utils"
)

// PaymentService records advance payments against to-pay bookings,
// numbered from the payment sequence.
type PaymentService struct {
	PaymentRepo repositories.PaymentRepo
	BookingRepo repositories.BookingRepo
	SequenceSvc SequenceService
	DB          *sql.DB
	RequestID   string
	Now         func() time.Time
}

func (s PaymentService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s PaymentService) payments() repositories.PaymentRepo {
	if s.PaymentRepo.DB != nil {
		return s.PaymentRepo
	}
	return repositories.PaymentRepo{DB: s.db()}
}

func (s PaymentService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s PaymentService) sequences() SequenceService {
	if s.SequenceSvc.CounterRepo.DB != nil || s.SequenceSvc.DB != nil {
		return s.SequenceSvc
	}
	return SequenceService{DB: s.db()}
}

func (s PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// RecordAdvance issues an ADV receipt and stores the prepayment.
func (s PaymentService) RecordAdvance(bookingID, amount int64, method string) (models.AdvancePayment, error) {
	if amount <= 0 {
		return models.AdvancePayment{}, domain.ValidationError{Field: "amount", Msg: "must be positive"}
	}
	booking, err := s.bookings().GetByID(bookingID)
	if err != nil {
		return models.AdvancePayment{}, err
	}

	_, receipt, err := s.sequences().Next(domain.SeqPayment, s.now())
	if err != nil {
		return models.AdvancePayment{}, err
	}

	p := models.AdvancePayment{
		ReceiptNo: receipt,
		BookingID: booking.ID,
		Amount:    amount,
		Method:    utils.TrimOrEmpty(method),
	}
	if p.Method == "" {
		p.Method = "cash"
	}
	id, err := s.payments().InsertAdvance(p)
	if err != nil {
		return models.AdvancePayment{}, err
	}
	p.ID = id
	utils.LogEvent(s.RequestID, "payment", "advance", "receipt="+receipt)
	return p, nil
}
