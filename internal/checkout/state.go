// Package checkout drives a booking from selected cart lines to an admin
// decision on its proof of payment. Each stage is its own type, so a
// transition is only reachable from the stage that allows it, and a failed
// transition leaves the current stage in place.
package checkout

import "travel-booking/internal/dto/response"

// State is one stage of the flow.
type State interface {
	Name() string
	isState()
}

// CartSelected is the starting stage: lines picked in the cart.
type CartSelected struct {
	Items []response.CartItemResponse
}

// CheckoutForm is reached with at least one line.
type CheckoutForm struct {
	Items []response.CartItemResponse
	Total int64
}

// TransactionCreated holds a pending transaction without proof.
type TransactionCreated struct {
	Transaction response.TransactionResponse
}

// ProofUploaded holds a pending transaction awaiting an admin decision.
type ProofUploaded struct {
	Transaction response.TransactionResponse
}

// Decided holds a transaction that is success or rejected.
type Decided struct {
	Transaction response.TransactionResponse
}

func (CartSelected) Name() string       { return "cart-selected" }
func (CheckoutForm) Name() string       { return "checkout-form" }
func (TransactionCreated) Name() string { return "transaction-created" }
func (ProofUploaded) Name() string      { return "proof-uploaded" }
func (Decided) Name() string            { return "decided" }

func (CartSelected) isState()       {}
func (CheckoutForm) isState()       {}
func (TransactionCreated) isState() {}
func (ProofUploaded) isState()      {}
func (Decided) isState()            {}
