// Package trxview derives what users and admins see of a transaction list:
// the display status of each record and the filtered, sorted, paginated
// window of a list. Every function here is pure.
package trxview

import "time"

// DisplayStatus is a presentation-only status, never persisted.
type DisplayStatus string

const (
	StatusPending             DisplayStatus = "pending"
	StatusWaitingConfirmation DisplayStatus = "waiting_confirmation"
	StatusSuccess             DisplayStatus = "success"
	StatusRejected            DisplayStatus = "rejected"
	StatusCancelled           DisplayStatus = "cancelled"
	StatusUnknown             DisplayStatus = "unknown"
)

// stored status values as written by the API
const (
	storedPending   = "pending"
	storedSuccess   = "success"
	storedRejected  = "rejected"
	storedCancelled = "cancelled"
)

// Record is the read-only view of a transaction the engine works on.
type Record interface {
	TransactionID() string
	StoredStatus() string
	ProofURL() string
	CreatedTime() time.Time
}

// Derive maps a stored status and proof of payment URL to a display status.
func Derive(stored, proofURL string) DisplayStatus {
	switch stored {
	case storedPending:
		if proofURL != "" {
			return StatusWaitingConfirmation
		}
		return StatusPending
	case storedSuccess:
		return StatusSuccess
	case storedRejected:
		return StatusRejected
	case storedCancelled:
		return StatusCancelled
	default:
		return StatusUnknown
	}
}

// DeriveRecord is Derive applied to a Record.
func DeriveRecord(r Record) DisplayStatus {
	return Derive(r.StoredStatus(), r.ProofURL())
}

// Meta is the label and affordance rendered next to a display status.
type Meta struct {
	Status DisplayStatus `json:"status"`
	Label  string        `json:"label"`
	Color  string        `json:"color"`
	Icon   string        `json:"icon"`
}

var metas = map[DisplayStatus]Meta{
	StatusPending:             {Status: StatusPending, Label: "Menunggu Pembayaran", Color: "yellow", Icon: "clock"},
	StatusWaitingConfirmation: {Status: StatusWaitingConfirmation, Label: "Menunggu Konfirmasi", Color: "blue", Icon: "hourglass"},
	StatusSuccess:             {Status: StatusSuccess, Label: "Berhasil", Color: "green", Icon: "check-circle"},
	StatusRejected:            {Status: StatusRejected, Label: "Ditolak", Color: "red", Icon: "x-circle"},
	StatusCancelled:           {Status: StatusCancelled, Label: "Dibatalkan", Color: "gray", Icon: "ban"},
}

var unknownMeta = Meta{Status: StatusUnknown, Label: "Status Tidak Diketahui", Color: "gray", Icon: "help-circle"}

// Describe returns the label metadata for s, falling back to the unknown entry.
func Describe(s DisplayStatus) Meta {
	if m, ok := metas[s]; ok {
		return m
	}
	return unknownMeta
}

// DescribeRecord derives and describes the display status of r.
func DescribeRecord(r Record) Meta {
	return Describe(DeriveRecord(r))
}

// Statuses lists the display statuses a filter can select, in display order.
func Statuses() []DisplayStatus {
	return []DisplayStatus{
		StatusPending,
		StatusWaitingConfirmation,
		StatusSuccess,
		StatusRejected,
		StatusCancelled,
	}
}

// ServiceFee is the 5% admin fee shown next to a total, rounded half up.
func ServiceFee(totalAmount int64) int64 {
	if totalAmount <= 0 {
		return 0
	}
	return (totalAmount*5 + 50) / 100
}
