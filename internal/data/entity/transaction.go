package entity

import (
	"time"

	"github.com/google/uuid"
)

// TransactionStatus is the stored status. "waiting_confirmation" is never
// stored, it is derived from a pending status plus a proof of payment.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusSuccess   TransactionStatus = "success"
	TransactionStatusRejected  TransactionStatus = "rejected"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

type Transaction struct {
	BaseNoDelete
	InvoiceID       string            `db:"invoice_id"`
	UserID          uuid.UUID         `db:"user_id"`
	PaymentMethodID uuid.UUID         `db:"payment_method_id"`
	TotalAmount     int64             `db:"total_amount"`
	Status          TransactionStatus `db:"status"`
	ProofPaymentURL *string           `db:"proof_payment_url"`
	RejectionReason *string           `db:"rejection_reason"`
}

// TransactionSummary is a transaction joined with its owner and payment
// method. The joined columns are nil when the referenced row is gone.
type TransactionSummary struct {
	Transaction
	UserName          *string `db:"user_name"`
	UserEmail         *string `db:"user_email"`
	PaymentMethodName *string `db:"payment_method_name"`
}

type TransactionItem struct {
	BaseSimple
	TransactionID uuid.UUID `db:"transaction_id"`
	ActivityID    uuid.UUID `db:"activity_id"`
	Title         string    `db:"title"`
	Price         int64     `db:"price"`
	Quantity      int       `db:"quantity"`
}

// The methods below let the transaction list views filter stored records.

func (t *Transaction) TransactionID() string { return t.ID.String() }

func (t *Transaction) StoredStatus() string { return string(t.Status) }

func (t *Transaction) ProofURL() string {
	if t.ProofPaymentURL == nil {
		return ""
	}
	return *t.ProofPaymentURL
}

func (t *Transaction) CreatedTime() time.Time { return t.CreatedAt }
