package services

import (
	"database/sql"
	"fmt"
	"time"

	intconfig "github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/config"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/domain"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/domain/models"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/repositories"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/utils"
)

// TripService links bookings to trips through the FK column and the
// trip_bookings junction, reconciles the two on read, builds forwarding
// candidate sets and flips trips to completed.
type TripService struct {
	TripRepo        repositories.TripRepo
	TripBookingRepo repositories.TripBookingRepo
	BookingRepo     repositories.BookingRepo
	DepotRepo       repositories.DepotRepo
	SequenceSvc     SequenceService
	DB              *sql.DB
	RequestID       string
	Now             func() time.Time
}

func (s TripService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s TripService) trips() repositories.TripRepo {
	if s.TripRepo.DB != nil {
		return s.TripRepo
	}
	return repositories.TripRepo{DB: s.db()}
}

func (s TripService) junctions() repositories.TripBookingRepo {
	if s.TripBookingRepo.DB != nil {
		return s.TripBookingRepo
	}
	return repositories.TripBookingRepo{DB: s.db()}
}

func (s TripService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s TripService) depots() repositories.DepotRepo {
	if s.DepotRepo.DB != nil {
		return s.DepotRepo
	}
	return repositories.DepotRepo{DB: s.db()}
}

func (s TripService) sequences() SequenceService {
	if s.SequenceSvc.CounterRepo.DB != nil || s.SequenceSvc.DB != nil {
		return s.SequenceSvc
	}
	return SequenceService{DB: s.db()}
}

func (s TripService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateTripInput carries the trip header plus the bookings to enroll.
type CreateTripInput struct {
	DriverName    string
	VehicleCode   string
	OriginDepotID int64
	DestDepotID   int64
	IsForwarding  bool
	BookingIDs    []int64
}

// CreateTrip numbers and inserts the trip, then assigns the named
// bookings. A junction-side assignment failure does not fail the call.
func (s TripService) CreateTrip(input CreateTripInput) (models.Trip, error) {
	if input.OriginDepotID <= 0 {
		return models.Trip{}, domain.ValidationError{Field: "origin_depot_id", Msg: "required"}
	}
	if input.DestDepotID <= 0 {
		return models.Trip{}, domain.ValidationError{Field: "dest_depot_id", Msg: "required"}
	}

	_, tripNo, err := s.sequences().Next(domain.SeqTrip, s.now())
	if err != nil {
		return models.Trip{}, err
	}

	trip := models.Trip{
		TripNo:        tripNo,
		DriverName:    utils.NormalizeSpace(input.DriverName),
		VehicleCode:   utils.TrimOrEmpty(input.VehicleCode),
		OriginDepotID: input.OriginDepotID,
		DestDepotID:   input.DestDepotID,
		Status:        string(domain.TripPlanned),
		IsForwarding:  input.IsForwarding,
	}
	id, err := s.trips().Insert(trip)
	if err != nil {
		return models.Trip{}, err
	}
	trip.ID = id

	if len(input.BookingIDs) > 0 {
		if err := s.Assign(id, input.BookingIDs, input.IsForwarding, input.DestDepotID); err != nil {
			return models.Trip{}, err
		}
	}
	return trip, nil
}

// Assign performs the dual write. Step 1 updates trip_id, status and
// current location on each booking; step 2 inserts the junction rows.
// The two steps are deliberately separate units of work: a step-2 failure
// is logged and tolerated because BookingsForTrip reconciles the divergence.
func (s TripService) Assign(tripID int64, bookingIDs []int64, isForwarding bool, destDepotID int64) error {
	if tripID <= 0 {
		return domain.ValidationError{Field: "trip_id", Msg: "invalid id"}
	}
	if len(bookingIDs) == 0 {
		return nil
	}

	status := string(domain.BookingInTransit)
	if isForwarding {
		// the distinct status keeps a forwarded booking out of
		// status-filtered forwarding candidate sets
		status = string(domain.BookingInTransitFwd)
	}

	if err := s.bookings().AssignTrip(tripID, bookingIDs, status, destDepotID); err != nil {
		return err
	}

	if err := s.junctions().InsertPairs(tripID, bookingIDs); err != nil {
		utils.LogEvent(s.RequestID, "trip", "assign",
			fmt.Sprintf("junction insert failed for trip %d (%d bookings), read path will reconcile: %v", tripID, len(bookingIDs), err))
	}
	return nil
}

// BookingsForTrip is the canonical reconciling read: the FK column first,
// then the junction rows when the FK set is empty. Both paths return
// newest-created first; the printable manifest depends on that ordering.
func (s TripService) BookingsForTrip(tripID int64) ([]models.Booking, error) {
	if tripID <= 0 {
		return nil, domain.ValidationError{Field: "trip_id", Msg: "invalid id"}
	}
	byFK, err := s.bookings().ListByTripFK(tripID)
	if err != nil {
		return nil, err
	}
	if len(byFK) > 0 {
		return byFK, nil
	}

	ids, err := s.junctions().BookingIDsForTrip(tripID)
	if err != nil {
		return nil, err
	}
	return s.bookings().ListByIDs(ids)
}

// EligibleForForwarding builds the candidate set for a new forwarding trip
// out of the given depot: bookings in transit or at a depot, destined for
// a depot this one forwards to, minus any booking already enrolled in a
// forwarding trip from here. Exclusion is junction membership, never
// "trip_id is null" — a booking legitimately keeps its origin-leg trip_id.
func (s TripService) EligibleForForwarding(depotID int64) ([]models.Booking, error) {
	if depotID <= 0 {
		return nil, domain.ValidationError{Field: "depot_id", Msg: "invalid id"}
	}

	routes, err := s.depots().ForwardRoutesFrom(depotID)
	if err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return []models.Booking{}, nil
	}

	candidates, err := s.bookings().ListForwardCandidates(routes)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return candidates, nil
	}

	fwdTrips, err := s.trips().ForwardingTripIDsFrom(depotID)
	if err != nil {
		return nil, err
	}
	enrolled, err := s.junctions().BookingIDsInTrips(fwdTrips)
	if err != nil {
		return nil, err
	}

	out := make([]models.Booking, 0, len(candidates))
	for _, b := range candidates {
		if enrolled[b.ID] {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// OnDelivered is the completion detector, invoked after a booking's status
// transitions to delivered. Strict additionally restricts the qualifying
// set to managed-depot, non-pickup bookings with independently computed
// counts. Failures are swallowed by the caller; the status update itself
// must never be blocked by detection.
func (s TripService) OnDelivered(bookingID int64, strict bool) error {
	booking, err := s.bookings().GetByID(bookingID)
	if err != nil {
		return err
	}
	if booking.TripID == 0 {
		return nil
	}

	var total, delivered int
	if strict {
		total, delivered, err = s.bookings().CountQualifiedByTrip(booking.TripID)
	} else {
		total, delivered, err = s.bookings().CountByTrip(booking.TripID)
	}
	if err != nil {
		return err
	}
	if total == 0 || delivered != total {
		return nil
	}
	return s.trips().MarkCompleted(booking.TripID)
}

// MarkDelivered updates the booking status and then runs completion
// detection. Detector errors are logged, never surfaced: the delivery
// update has already succeeded.
func (s TripService) MarkDelivered(bookingID int64, strict bool) error {
	if err := s.bookings().UpdateStatus(bookingID, string(domain.BookingDelivered)); err != nil {
		return err
	}
	if err := s.OnDelivered(bookingID, strict); err != nil {
		utils.LogEvent(s.RequestID, "trip", "complete",
			fmt.Sprintf("completion detection failed for booking %d: %v", bookingID, err))
	}
	return nil
}
