package services

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	intconfig "github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/config"
	intdb "github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/db"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/domain"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/domain/models"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/repositories"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/utils"
)

// atomicCreate is the process-wide capability flag for the transactional
// booking-create path. It is set once from config and downgraded at most
// once when the store reports one of the enumerated unavailable
// signatures; it is never flipped per call from generic errors.
var atomicCreate atomic.Bool

func init() {
	atomicCreate.Store(true)
}

// SetAtomicCreate configures the capability at startup.
func SetAtomicCreate(enabled bool) {
	atomicCreate.Store(enabled)
}

// BookingService is the booking write path: validation, price resolution,
// numbering, atomic-or-sequential persistence and total recomputation.
type BookingService struct {
	BookingRepo repositories.BookingRepo
	PriceRepo   repositories.PriceRepo
	SequenceSvc SequenceService
	DB          *sql.DB
	RequestID   string
	Now         func() time.Time
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s BookingService) prices() repositories.PriceRepo {
	if s.PriceRepo.DB != nil {
		return s.PriceRepo
	}
	return repositories.PriceRepo{DB: s.db()}
}

func (s BookingService) sequences() SequenceService {
	if s.SequenceSvc.CounterRepo.DB != nil || s.SequenceSvc.DB != nil {
		return s.SequenceSvc
	}
	return SequenceService{DB: s.db()}
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create persists a booking with its receivers and package lines. The
// transactional path is preferred; when the store lacks it the sequential
// path runs instead, and a partial failure there is compensated by
// deleting the rows already written.
func (s BookingService) Create(input models.BookingInput) (models.Booking, error) {
	booking, receivers, err := s.prepare(input)
	if err != nil {
		return models.Booking{}, err
	}

	nextReceipt := func(ex intdb.Execer) (string, error) {
		_, formatted, err := s.sequences().NextIn(ex, domain.SeqReceipt, s.now())
		return formatted, err
	}

	if atomicCreate.Load() {
		created, err := s.bookings().CreateAtomic(booking, receivers, nextReceipt)
		if err == nil {
			return created, nil
		}
		if !domain.IsCapability(err) {
			return models.Booking{}, err
		}
		// one-time downgrade; subsequent creates go sequential directly
		atomicCreate.Store(false)
		utils.LogEvent(s.RequestID, "booking", "create", "atomic create unavailable, falling back to sequential: "+err.Error())
	}

	return s.createSequential(booking, receivers)
}

// createSequential inserts header, receivers and lines as separate units
// of work. On failure it deletes whatever was already written so no
// orphaned partial booking survives.
func (s BookingService) createSequential(booking models.Booking, receivers []models.Receiver) (models.Booking, error) {
	db := s.db()
	repo := s.bookings()

	_, receipt, err := s.sequences().Next(domain.SeqReceipt, s.now())
	if err != nil {
		return models.Booking{}, err
	}
	booking.ReceiptNo = receipt

	id, err := repo.InsertBooking(db, booking)
	if err != nil {
		return models.Booking{}, err
	}
	booking.ID = id

	for i := range receivers {
		receivers[i].BookingID = id
		rid, err := repo.InsertReceiver(db, receivers[i])
		if err != nil {
			s.compensate(id, err)
			return models.Booking{}, err
		}
		receivers[i].ID = rid
		for j := range receivers[i].Packages {
			receivers[i].Packages[j].ReceiverID = rid
			if _, err := repo.InsertPackageLine(db, receivers[i].Packages[j]); err != nil {
				s.compensate(id, err)
				return models.Booking{}, err
			}
		}
	}
	return booking, nil
}

func (s BookingService) compensate(bookingID int64, cause error) {
	utils.LogEvent(s.RequestID, "booking", "create", fmt.Sprintf("sequential create failed for booking %d, compensating: %v", bookingID, cause))
	if err := s.bookings().DeleteCascade(bookingID); err != nil {
		utils.LogEvent(s.RequestID, "booking", "create", fmt.Sprintf("compensating delete failed for booking %d: %v", bookingID, err))
	}
}

// prepare validates the input, resolves unsupplied prices and computes the
// totals the insert carries.
func (s BookingService) prepare(input models.BookingInput) (models.Booking, []models.Receiver, error) {
	if input.OriginDepotID <= 0 {
		return models.Booking{}, nil, domain.ValidationError{Field: "origin_depot_id", Msg: "required"}
	}
	if input.DestDepotID <= 0 {
		return models.Booking{}, nil, domain.ValidationError{Field: "dest_depot_id", Msg: "required"}
	}
	if utils.TrimOrEmpty(input.SenderName) == "" {
		return models.Booking{}, nil, domain.ValidationError{Field: "sender_name", Msg: "required"}
	}
	if len(input.Receivers) == 0 {
		return models.Booking{}, nil, domain.ValidationError{Field: "receivers", Msg: "at least one receiver required"}
	}
	if input.DeliveryCharge < 0 {
		return models.Booking{}, nil, domain.ValidationError{Field: "delivery_charge", Msg: "must not be negative"}
	}

	deliveryType := utils.TrimOrEmpty(input.DeliveryType)
	if deliveryType == "" {
		deliveryType = string(domain.DeliveryDoor)
	}
	paymentMethod := utils.TrimOrEmpty(input.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = "paid"
	}
	senderPhone := utils.NormalizePhone(input.SenderPhone)

	var subtotal int64
	receivers := make([]models.Receiver, 0, len(input.Receivers))
	for i, in := range input.Receivers {
		name := utils.NormalizeSpace(in.Name)
		if name == "" {
			return models.Booking{}, nil, domain.ValidationError{Field: fmt.Sprintf("receivers[%d].name", i), Msg: "required"}
		}
		if len(in.Packages) == 0 {
			return models.Booking{}, nil, domain.ValidationError{Field: fmt.Sprintf("receivers[%d].packages", i), Msg: "at least one package required"}
		}
		rc := models.Receiver{
			Position: i,
			Name:     name,
			Phone:    utils.NormalizePhone(in.Phone),
			Address:  utils.TrimOrEmpty(in.Address),
		}
		for j, pin := range in.Packages {
			if pin.Quantity <= 0 {
				return models.Booking{}, nil, domain.ValidationError{Field: fmt.Sprintf("receivers[%d].packages[%d].quantity", i, j), Msg: "must be positive"}
			}
			if pin.PackageID <= 0 && utils.TrimOrEmpty(pin.SizeText) == "" {
				return models.Booking{}, nil, domain.ValidationError{Field: fmt.Sprintf("receivers[%d].packages[%d]", i, j), Msg: "package or size required"}
			}
			price := pin.UnitPrice
			if price < 0 {
				return models.Booking{}, nil, domain.ValidationError{Field: fmt.Sprintf("receivers[%d].packages[%d].unit_price", i, j), Msg: "must not be negative"}
			}
			if price == 0 && pin.PackageID > 0 {
				resolved, err := s.prices().ResolveUnitPrice(senderPhone, input.OriginDepotID, pin.PackageID)
				if err != nil {
					return models.Booking{}, nil, err
				}
				price = resolved
			}
			rc.Packages = append(rc.Packages, models.PackageLine{
				PackageID: pin.PackageID,
				SizeText:  utils.TrimOrEmpty(pin.SizeText),
				Quantity:  pin.Quantity,
				UnitPrice: price,
			})
			subtotal += int64(pin.Quantity) * price
		}
		receivers = append(receivers, rc)
	}

	booking := models.Booking{
		OriginDepotID:  input.OriginDepotID,
		DestDepotID:    input.DestDepotID,
		SenderName:     utils.NormalizeSpace(input.SenderName),
		SenderPhone:    senderPhone,
		PaymentMethod:  paymentMethod,
		DeliveryType:   deliveryType,
		DeliveryCharge: input.DeliveryCharge,
		Subtotal:       subtotal,
		Total:          subtotal + input.DeliveryCharge,
		Status:         string(domain.BookingBooked),
	}
	return booking, receivers, nil
}

// GetByReceipt loads a booking with its receivers and package lines.
func (s BookingService) GetByReceipt(receiptNo string) (models.Booking, []models.Receiver, error) {
	b, err := s.bookings().GetByReceipt(receiptNo)
	if err != nil {
		return models.Booking{}, nil, err
	}
	receivers, err := s.bookings().ListReceivers(b.ID)
	if err != nil {
		return models.Booking{}, nil, err
	}
	return b, receivers, nil
}

// UpdatePackageLine rewrites one line and recomputes the owning booking's
// totals as a side effect.
func (s BookingService) UpdatePackageLine(lineID int64, quantity int, unitPrice int64) error {
	if quantity <= 0 {
		return domain.ValidationError{Field: "quantity", Msg: "must be positive"}
	}
	if unitPrice < 0 {
		return domain.ValidationError{Field: "unit_price", Msg: "must not be negative"}
	}
	bookingID, err := s.bookings().UpdatePackageLine(lineID, quantity, unitPrice)
	if err != nil {
		return err
	}
	return s.bookings().RecomputeTotals(s.db(), bookingID)
}

// DeletePackageLine removes one line and recomputes the owning booking's
// totals as a side effect.
func (s BookingService) DeletePackageLine(lineID int64) error {
	bookingID, err := s.bookings().DeletePackageLine(lineID)
	if err != nil {
		return err
	}
	return s.bookings().RecomputeTotals(s.db(), bookingID)
}
