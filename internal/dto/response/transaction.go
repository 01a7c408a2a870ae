package response

import (
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/trxview"
)

// Shown when the joined user or payment method no longer exists.
const (
	UnknownUser          = "Unknown user"
	UnknownPaymentMethod = "Unknown method"
)

type TransactionItemResponse struct {
	ID         string `json:"id"`
	ActivityID string `json:"activity_id"`
	Title      string `json:"title"`
	Price      int64  `json:"price"`
	Quantity   int    `json:"quantity"`
	Subtotal   int64  `json:"subtotal"`
}

type TransactionResponse struct {
	ID                string                    `json:"id"`
	InvoiceID         string                    `json:"invoice_id"`
	UserID            string                    `json:"user_id"`
	UserName          string                    `json:"user_name"`
	UserEmail         string                    `json:"user_email,omitempty"`
	PaymentMethodID   string                    `json:"payment_method_id"`
	PaymentMethodName string                    `json:"payment_method_name"`
	TotalAmount       int64                     `json:"total_amount"`
	ServiceFee        int64                     `json:"service_fee"`
	Status            string                    `json:"status"`
	DisplayStatus     trxview.Meta              `json:"display_status"`
	ProofPaymentURL   *string                   `json:"proof_payment_url,omitempty"`
	RejectionReason   *string                   `json:"rejection_reason,omitempty"`
	Items             []TransactionItemResponse `json:"items,omitempty"`
	CreatedAt         time.Time                 `json:"created_at"`
	UpdatedAt         time.Time                 `json:"updated_at"`
}

// TransactionResponse is a trxview.Record so clients can filter what they fetched.

func (t TransactionResponse) TransactionID() string  { return t.ID }
func (t TransactionResponse) StoredStatus() string   { return t.Status }
func (t TransactionResponse) CreatedTime() time.Time { return t.CreatedAt }

func (t TransactionResponse) ProofURL() string {
	if t.ProofPaymentURL == nil {
		return ""
	}
	return *t.ProofPaymentURL
}

// TransactionListResponse is one page of a filtered transaction view.
type TransactionListResponse struct {
	PaginatedResponse[TransactionResponse]
	FilterActive bool   `json:"filter_active"`
	EmptyMessage string `json:"empty_message,omitempty"`
}

func TransactionToResponse(t *entity.TransactionSummary, items []*entity.TransactionItem) TransactionResponse {
	resp := TransactionResponse{
		ID:                t.ID.String(),
		InvoiceID:         t.InvoiceID,
		UserID:            t.UserID.String(),
		UserName:          orDefault(t.UserName, UnknownUser),
		UserEmail:         orDefault(t.UserEmail, ""),
		PaymentMethodID:   t.PaymentMethodID.String(),
		PaymentMethodName: orDefault(t.PaymentMethodName, UnknownPaymentMethod),
		TotalAmount:       t.TotalAmount,
		ServiceFee:        trxview.ServiceFee(t.TotalAmount),
		Status:            string(t.Status),
		DisplayStatus:     trxview.DescribeRecord(t),
		ProofPaymentURL:   t.ProofPaymentURL,
		RejectionReason:   t.RejectionReason,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}

	for _, item := range items {
		resp.Items = append(resp.Items, TransactionItemResponse{
			ID:         item.ID.String(),
			ActivityID: item.ActivityID.String(),
			Title:      item.Title,
			Price:      item.Price,
			Quantity:   item.Quantity,
			Subtotal:   item.Price * int64(item.Quantity),
		})
	}

	return resp
}

func NewTransactionListResponse(result trxview.Result[*entity.TransactionSummary], filter trxview.Filter) *TransactionListResponse {
	data := make([]TransactionResponse, 0, len(result.Items))
	for _, t := range result.Items {
		data = append(data, TransactionToResponse(t, nil))
	}

	resp := &TransactionListResponse{
		PaginatedResponse: *NewPaginatedResponse(data, result.Page, result.PageSize, int64(result.TotalMatching)),
		FilterActive:      filter.Active(),
	}
	if result.Empty() {
		resp.EmptyMessage = filter.EmptyMessage()
	}

	return resp
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
