package models

// Trip is a road trip between two depots. IsForwarding marks trips that
// carry parcels onward from a depot that received them on an earlier leg.
type Trip struct {
	ID            int64
	TripNo        string
	DriverName    string
	VehicleCode   string
	OriginDepotID int64
	DestDepotID   int64
	Status        string
	IsForwarding  bool
	CompletedAt   string
	CreatedAt     string
}

// TripBooking is one junction row: this booking rode on this trip.
type TripBooking struct {
	TripID    int64
	BookingID int64
}

// Depot is a physical node in the courier network.
type Depot struct {
	ID   int64
	Name string
	Type string
}
