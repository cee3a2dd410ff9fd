package models

import "time"

// TimestampLayout is the layout used for timestamps in exported datasets.
const TimestampLayout = "2006-01-02 15:04:05"

// StatusCompleted is the only status a generated transaction carries.
const StatusCompleted = "completed"

// TransactionType is the kind of mobile-money operation.
type TransactionType string

// Supported transaction types
const (
	TypeTransfer   TransactionType = "transfer"
	TypePayment    TransactionType = "payment"
	TypeWithdrawal TransactionType = "withdrawal"
	TypeDeposit    TransactionType = "deposit"
)

// IsValid reports whether t is one of the supported transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case TypeTransfer, TypePayment, TypeWithdrawal, TypeDeposit:
		return true
	default:
		return false
	}
}

// Transaction represents a synthetic mobile-money transaction.
type Transaction struct {
	TransactionID   string          `json:"transaction_id"`   // TransactionID identifies the transaction within a run.
	Timestamp       time.Time       `json:"timestamp"`        // Timestamp is when the transaction happened inside the lookback window.
	UserID          string          `json:"user_id"`          // UserID has the form user_<prefix><7 digits>.
	Amount          int64           `json:"amount"`           // Amount in whole currency units (FCFA).
	City            string          `json:"city"`             // City where the transaction took place.
	TransactionType TransactionType `json:"transaction_type"` // TransactionType is transfer, payment, withdrawal or deposit.
	Operator        string          `json:"operator"`         // Operator is the mobile-money provider.
	Status          string          `json:"status"`           // Status is always "completed".
}

// CSVHeader is the column order of an exported dataset.
var CSVHeader = []string{
	"transaction_id",
	"timestamp",
	"user_id",
	"amount",
	"city",
	"transaction_type",
	"operator",
	"status",
}
