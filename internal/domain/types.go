package domain

// BookingStatus is the parcel booking lifecycle state.
type BookingStatus string

const (
	BookingBooked         BookingStatus = "booked"
	BookingLoading        BookingStatus = "loading"
	BookingInTransit      BookingStatus = "in_transit"
	BookingInTransitFwd   BookingStatus = "in_transit_forwarding"
	BookingReachedDepot   BookingStatus = "reached_depot"
	BookingOutForDelivery BookingStatus = "out_for_delivery"
	BookingDelivered      BookingStatus = "delivered"
)

// ValidBookingStatus reports whether s is a known booking status.
func ValidBookingStatus(s string) bool {
	switch BookingStatus(s) {
	case BookingBooked, BookingLoading, BookingInTransit, BookingInTransitFwd,
		BookingReachedDepot, BookingOutForDelivery, BookingDelivered:
		return true
	}
	return false
}

// TripStatus is the road trip lifecycle state.
type TripStatus string

const (
	TripPlanned   TripStatus = "planned"
	TripLoading   TripStatus = "loading"
	TripInTransit TripStatus = "in_transit"
	TripCompleted TripStatus = "completed"
	TripCancelled TripStatus = "cancelled"
)

// ValidTripStatus reports whether s is a known trip status.
func ValidTripStatus(s string) bool {
	switch TripStatus(s) {
	case TripPlanned, TripLoading, TripInTransit, TripCompleted, TripCancelled:
		return true
	}
	return false
}

// DepotType classifies a depot node.
type DepotType string

const (
	DepotOrigin       DepotType = "origin"
	DepotManaged      DepotType = "managed"
	DepotDirectPickup DepotType = "direct-pickup"
)

// DeliveryType distinguishes door delivery from counter pickup. Pickup
// parcels are tracked outside this system and never gate trip completion.
type DeliveryType string

const (
	DeliveryDoor   DeliveryType = "door"
	DeliveryPickup DeliveryType = "pickup"
)

// Sequence names for the keyed counter store.
const (
	SeqReceipt = "receipt"
	SeqTrip    = "trip"
	SeqPayment = "payment"
)
