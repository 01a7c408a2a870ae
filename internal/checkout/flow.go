package checkout

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/internal/trxview"
	"travel-booking/pkg/storage"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

// MaxProofBytes is the single upload limit for proofs of payment.
const MaxProofBytes int64 = 1 << 20

var (
	ErrEmptySelection          = errors.New("checkout: no cart items selected")
	ErrInvalidCustomer         = errors.New("checkout: invalid customer information")
	ErrNoPaymentMethod         = errors.New("checkout: no payment method chosen")
	ErrNotImage                = storage.ErrNotImage
	ErrFileTooLarge            = storage.ErrFileTooLarge
	ErrEmptyFile               = storage.ErrEmptyFile
	ErrRejectionReasonRequired = errors.New("checkout: rejection reason is required")
	ErrIllegalTransition       = errors.New("checkout: transition not allowed from the current stage")
)

// Transactions is the part of the transaction service the flow calls.
type Transactions interface {
	Create(ctx context.Context, req *request.CreateTransactionRequest) (*response.TransactionResponse, error)
	UpdateProof(ctx context.Context, id, proofURL string) (*response.TransactionResponse, error)
}

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Image(ctx context.Context, filename string, r io.Reader) (string, error)
}

// Customer is the contact block of the checkout form.
type Customer struct {
	Name  string `validate:"required,min=3"`
	Email string `validate:"required,contains=@"`
	Phone string `validate:"required,phonedigits"`
}

// Form is what the checkout page submits.
type Form struct {
	Customer        Customer
	PaymentMethodID string
}

// Validate reports every problem with the form, keyed by field.
func (f Form) Validate() map[string]string {
	c := f.Customer
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)

	errs := utils.ValidateStruct(c)
	if f.PaymentMethodID == "" {
		if errs == nil {
			errs = make(map[string]string)
		}
		errs["PaymentMethodID"] = "This field is required"
	}
	return errs
}

// Ready reports whether submit is enabled.
func (f Form) Ready() bool {
	return len(f.Validate()) == 0
}

// Flow is one checkout in progress. It is safe for concurrent use; a
// transition in flight blocks the others.
type Flow struct {
	mu    sync.Mutex
	state State
	trx   Transactions
	up    Uploader
	log   *zap.Logger
}

func NewFlow(trx Transactions, up Uploader, log *zap.Logger) *Flow {
	return &Flow{
		state: CartSelected{},
		trx:   trx,
		up:    up,
		log:   log.With(zap.String("component", "checkout")),
	}
}

// Resume picks the flow up at the stage matching an existing transaction.
func Resume(t response.TransactionResponse, trx Transactions, up Uploader, log *zap.Logger) *Flow {
	f := NewFlow(trx, up, log)
	f.state = stageOf(t)
	return f
}

func stageOf(t response.TransactionResponse) State {
	switch trxview.DeriveRecord(t) {
	case trxview.StatusPending:
		return TransactionCreated{Transaction: t}
	case trxview.StatusWaitingConfirmation:
		return ProofUploaded{Transaction: t}
	default:
		return Decided{Transaction: t}
	}
}

// State returns the current stage.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Select replaces the picked cart lines. Allowed before a transaction exists.
func (f *Flow) Select(items []response.CartItemResponse) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state.(type) {
	case CartSelected, CheckoutForm:
		f.state = CartSelected{Items: append([]response.CartItemResponse(nil), items...)}
		return nil
	default:
		return f.illegal("select")
	}
}

// Begin moves the selection to the checkout form. An empty selection stays
// in the cart.
func (f *Flow) Begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	sel, ok := f.state.(CartSelected)
	if !ok {
		return f.illegal("begin")
	}
	if len(sel.Items) == 0 {
		return ErrEmptySelection
	}

	var total int64
	for _, item := range sel.Items {
		total += item.Subtotal
	}
	f.state = CheckoutForm{Items: sel.Items, Total: total}
	return nil
}

// Submit validates the form and creates the transaction.
func (f *Flow) Submit(ctx context.Context, form Form) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	cf, ok := f.state.(CheckoutForm)
	if !ok {
		return f.illegal("submit")
	}
	if errs := form.Validate(); len(errs) > 0 {
		if _, missing := errs["PaymentMethodID"]; missing && len(errs) == 1 {
			return ErrNoPaymentMethod
		}
		return fmt.Errorf("%w: %s", ErrInvalidCustomer, utils.FormatValidationErrors(errs))
	}

	ids := make([]string, 0, len(cf.Items))
	for _, item := range cf.Items {
		ids = append(ids, item.ID)
	}

	trx, err := f.trx.Create(ctx, &request.CreateTransactionRequest{
		CartIDs:         ids,
		PaymentMethodID: form.PaymentMethodID,
	})
	if err != nil {
		f.log.Warn("Create transaction failed", zap.Error(err))
		return err
	}

	f.log.Info("Transaction created", zap.String("transaction_id", trx.ID), zap.String("invoice_id", trx.InvoiceID))
	f.state = TransactionCreated{Transaction: *trx}
	return nil
}

// UploadProof checks the file is an image within MaxProofBytes, uploads it
// and attaches the URL to the transaction.
func (f *Flow) UploadProof(ctx context.Context, filename string, r io.Reader) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	tc, ok := f.state.(TransactionCreated)
	if !ok {
		return f.illegal("upload proof")
	}

	data, _, err := storage.Sniff(r, MaxProofBytes)
	if err != nil {
		return err
	}

	url, err := f.up.Image(ctx, filename, bytes.NewReader(data))
	if err != nil {
		f.log.Warn("Proof upload failed", zap.Error(err))
		return err
	}

	trx, err := f.trx.UpdateProof(ctx, tc.Transaction.ID, url)
	if err != nil {
		f.log.Warn("Attach proof failed", zap.Error(err), zap.String("transaction_id", tc.Transaction.ID))
		return err
	}

	f.state = ProofUploaded{Transaction: *trx}
	return nil
}

// Decide applies an admin decision to the uploaded proof.
func (f *Flow) Decide(ctx context.Context, d Decider, decision Decision) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	pu, ok := f.state.(ProofUploaded)
	if !ok {
		return f.illegal("decide")
	}

	trx, err := Decide(ctx, d, pu.Transaction, decision)
	if err != nil {
		return err
	}

	f.state = Decided{Transaction: *trx}
	return nil
}

func (f *Flow) illegal(op string) error {
	return fmt.Errorf("%w: %s in %s", ErrIllegalTransition, op, f.state.Name())
}
