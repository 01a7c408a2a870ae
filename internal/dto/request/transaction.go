package request

import "travel-booking/internal/trxview"

type CreateTransactionRequest struct {
	CartIDs         []string `json:"cart_ids" validate:"required,min=1,dive,uuid"`
	PaymentMethodID string   `json:"payment_method_id" validate:"required,uuid"`
}

type UpdateProofRequest struct {
	ProofPaymentURL string `json:"proof_payment_url" validate:"required,url"`
}

type UpdateStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=success rejected"`
	Reason *string `json:"rejection_reason,omitempty" validate:"omitempty,max=500"`
}

// TransactionListRequest is parsed from the list query string.
type TransactionListRequest struct {
	Filter trxview.Filter
	Page   int
}
