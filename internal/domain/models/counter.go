package models

// SequenceCounter stores the last serial for a named date-scoped sequence.
// One row per sequence; the value resets to 1 whenever CounterDate moves.
type SequenceCounter struct {
	Name        string
	CounterDate string
	Value       int64
}

// AdvancePayment is a prepayment recorded against a to-pay booking,
// numbered from the payment sequence.
type AdvancePayment struct {
	ID        int64
	ReceiptNo string
	BookingID int64
	Amount    int64
	Method    string
	CreatedAt string
}
