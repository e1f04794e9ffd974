package models

// Booking is a parcel booking moving through the depot network. ReceiptNo
// is the business identifier printed on documents; ID is the row key used
// for joins and the trip_bookings junction.
type Booking struct {
	ID                int64
	ReceiptNo         string
	OriginDepotID     int64
	DestDepotID       int64
	SenderName        string
	SenderPhone       string
	PaymentMethod     string
	DeliveryType      string
	DeliveryCharge    int64
	Subtotal          int64
	Total             int64
	Status            string
	TripID            int64
	CurrentLocationID int64
	BookedAt          string
	DeliveredAt       string
}

// Receiver is one consignee of a booking. Position preserves the order
// receivers were submitted in.
type Receiver struct {
	ID        int64
	BookingID int64
	Position  int
	Name      string
	Phone     string
	Address   string
	Packages  []PackageLine
}

// PackageLine is one package row under a receiver. PackageID references a
// catalog package; SizeText is the free-text alternative.
type PackageLine struct {
	ID         int64
	ReceiverID int64
	PackageID  int64
	SizeText   string
	Quantity   int
	UnitPrice  int64
}

// BookingInput is the create payload before numbering and pricing.
type BookingInput struct {
	OriginDepotID  int64
	DestDepotID    int64
	SenderName     string
	SenderPhone    string
	PaymentMethod  string
	DeliveryType   string
	DeliveryCharge int64
	Receivers      []ReceiverInput
}

type ReceiverInput struct {
	Name     string
	Phone    string
	Address  string
	Packages []PackageLineInput
}

type PackageLineInput struct {
	PackageID int64
	SizeText  string
	Quantity  int
	// UnitPrice <= 0 means "resolve from pricing tables".
	UnitPrice int64
}
