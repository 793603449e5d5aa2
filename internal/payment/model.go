package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

const Currency = "pln"

type Payment struct {
	ID              uint
	OrderID         uint
	StripeSessionID string
	Amount          decimal.Decimal
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type SessionLine struct {
	Name        string
	Description string
	// UnitAmount is in grosze.
	UnitAmount int64
	Quantity   int64
}

type SessionRequest struct {
	OrderID       uint
	UserID        uint
	CustomerEmail string
	Lines         []SessionLine
	SuccessURL    string
	CancelURL     string
}

type Session struct {
	ID  string
	URL string
}

// Event is a verified provider notification.
type Event struct {
	ID        string
	Type      string
	SessionID string
}

const EventCheckoutCompleted = "checkout.session.completed"

// ToMinorUnits converts an amount in złoty to grosze.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
