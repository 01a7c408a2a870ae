package checkout

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// smallest valid PNG header mimetype recognises
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

type fakeTransactions struct {
	createReq   *request.CreateTransactionRequest
	createErr   error
	proofURL    string
	proofErr    error
	statusReq   *request.UpdateStatusRequest
	statusCalls int
}

func (f *fakeTransactions) Create(_ context.Context, req *request.CreateTransactionRequest) (*response.TransactionResponse, error) {
	f.createReq = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &response.TransactionResponse{ID: "trx-1", InvoiceID: "INV-1", Status: "pending", CreatedAt: time.Now()}, nil
}

func (f *fakeTransactions) UpdateProof(_ context.Context, id, proofURL string) (*response.TransactionResponse, error) {
	if f.proofErr != nil {
		return nil, f.proofErr
	}
	f.proofURL = proofURL
	return &response.TransactionResponse{ID: id, Status: "pending", ProofPaymentURL: &proofURL}, nil
}

func (f *fakeTransactions) UpdateStatus(_ context.Context, id string, req *request.UpdateStatusRequest) (*response.TransactionResponse, error) {
	f.statusCalls++
	f.statusReq = req
	return &response.TransactionResponse{ID: id, Status: req.Status, RejectionReason: req.Reason}, nil
}

type fakeUploader struct {
	calls int
	err   error
}

func (u *fakeUploader) Image(_ context.Context, filename string, r io.Reader) (string, error) {
	u.calls++
	if u.err != nil {
		return "", u.err
	}
	_, _ = io.ReadAll(r)
	return "https://cdn.example.com/" + filename, nil
}

func validForm() Form {
	return Form{
		Customer:        Customer{Name: "Budi", Email: "budi@example.com", Phone: "0812-3456-7890"},
		PaymentMethodID: "pm-1",
	}
}

func items() []response.CartItemResponse {
	return []response.CartItemResponse{
		{ID: "cart-1", Quantity: 2, Subtotal: 200000},
		{ID: "cart-2", Quantity: 1, Subtotal: 50000},
	}
}

func newTestFlow(t *testing.T) (*Flow, *fakeTransactions, *fakeUploader) {
	trx := &fakeTransactions{}
	up := &fakeUploader{}
	return NewFlow(trx, up, zaptest.NewLogger(t)), trx, up
}

func TestFlow_HappyPath(t *testing.T) {
	ctx := context.Background()
	f, trx, up := newTestFlow(t)

	require.NoError(t, f.Select(items()))
	require.NoError(t, f.Begin())

	form, ok := f.State().(CheckoutForm)
	require.True(t, ok)
	assert.Equal(t, int64(250000), form.Total)

	require.NoError(t, f.Submit(ctx, validForm()))
	assert.Equal(t, []string{"cart-1", "cart-2"}, trx.createReq.CartIDs)
	assert.Equal(t, "pm-1", trx.createReq.PaymentMethodID)
	assert.IsType(t, TransactionCreated{}, f.State())

	require.NoError(t, f.UploadProof(ctx, "proof.png", bytes.NewReader(pngBytes)))
	assert.Equal(t, 1, up.calls)
	assert.Equal(t, "https://cdn.example.com/proof.png", trx.proofURL)

	uploaded, ok := f.State().(ProofUploaded)
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/proof.png", uploaded.Transaction.ProofURL())

	require.NoError(t, f.Decide(ctx, trx, Approve()))
	decided, ok := f.State().(Decided)
	require.True(t, ok)
	assert.Equal(t, "success", decided.Transaction.Status)
	assert.Nil(t, trx.statusReq.Reason)
}

func TestFlow_EmptySelectionStaysInCart(t *testing.T) {
	f, _, _ := newTestFlow(t)

	err := f.Begin()
	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.IsType(t, CartSelected{}, f.State())
}

func TestFlow_SubmitValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Form)
		want   error
	}{
		{"short name", func(f *Form) { f.Customer.Name = "Bu" }, ErrInvalidCustomer},
		{"email without at", func(f *Form) { f.Customer.Email = "budi.example.com" }, ErrInvalidCustomer},
		{"nine digit phone", func(f *Form) { f.Customer.Phone = "0812-345-67" }, ErrInvalidCustomer},
		{"no payment method", func(f *Form) { f.PaymentMethodID = "" }, ErrNoPaymentMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, trx, _ := newTestFlow(t)
			require.NoError(t, f.Select(items()))
			require.NoError(t, f.Begin())

			form := validForm()
			tt.mutate(&form)
			assert.False(t, form.Ready())

			err := f.Submit(context.Background(), form)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, trx.createReq, "no request may be sent")
			assert.IsType(t, CheckoutForm{}, f.State())
		})
	}
}

func TestFlow_NetworkFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	f, trx, up := newTestFlow(t)
	require.NoError(t, f.Select(items()))
	require.NoError(t, f.Begin())

	trx.createErr = errors.New("connection refused")
	assert.Error(t, f.Submit(ctx, validForm()))
	assert.IsType(t, CheckoutForm{}, f.State())

	// retry is the same call
	trx.createErr = nil
	require.NoError(t, f.Submit(ctx, validForm()))

	up.err = errors.New("timeout")
	assert.Error(t, f.UploadProof(ctx, "proof.png", bytes.NewReader(pngBytes)))
	assert.IsType(t, TransactionCreated{}, f.State())
}

func TestFlow_UploadProofRejectsBadFiles(t *testing.T) {
	ctx := context.Background()
	f, trx, up := newTestFlow(t)
	require.NoError(t, f.Select(items()))
	require.NoError(t, f.Begin())
	require.NoError(t, f.Submit(ctx, validForm()))

	err := f.UploadProof(ctx, "notes.txt", bytes.NewReader([]byte("just some text")))
	assert.ErrorIs(t, err, ErrNotImage)

	big := append(append([]byte{}, pngBytes...), make([]byte, MaxProofBytes)...)
	err = f.UploadProof(ctx, "big.png", bytes.NewReader(big))
	assert.ErrorIs(t, err, ErrFileTooLarge)

	assert.Equal(t, 0, up.calls)
	assert.Empty(t, trx.proofURL)
	assert.IsType(t, TransactionCreated{}, f.State())
}

func TestFlow_IllegalTransitions(t *testing.T) {
	ctx := context.Background()
	f, trx, _ := newTestFlow(t)

	assert.ErrorIs(t, f.Submit(ctx, validForm()), ErrIllegalTransition)
	assert.ErrorIs(t, f.UploadProof(ctx, "p.png", bytes.NewReader(pngBytes)), ErrIllegalTransition)
	assert.ErrorIs(t, f.Decide(ctx, trx, Approve()), ErrIllegalTransition)

	require.NoError(t, f.Select(items()))
	require.NoError(t, f.Begin())
	require.NoError(t, f.Submit(ctx, validForm()))
	assert.ErrorIs(t, f.Select(items()), ErrIllegalTransition)
	assert.ErrorIs(t, f.Begin(), ErrIllegalTransition)
}

func TestDecide_RejectRequiresReasonBeforeNetwork(t *testing.T) {
	proof := "https://cdn.example.com/p.png"
	waiting := response.TransactionResponse{ID: "trx-9", Status: "pending", ProofPaymentURL: &proof}
	trx := &fakeTransactions{}

	for _, reason := range []string{"", "   ", "\t\n"} {
		_, err := Decide(context.Background(), trx, waiting, Reject(reason))
		assert.ErrorIs(t, err, ErrRejectionReasonRequired)
	}
	assert.Equal(t, 0, trx.statusCalls)

	out, err := Decide(context.Background(), trx, waiting, Reject("  transfer not received "))
	require.NoError(t, err)
	assert.Equal(t, "rejected", out.Status)
	require.NotNil(t, trx.statusReq.Reason)
	assert.Equal(t, "transfer not received", *trx.statusReq.Reason)
}

func TestDecide_OnlyWaitingConfirmation(t *testing.T) {
	trx := &fakeTransactions{}
	pending := response.TransactionResponse{ID: "trx-1", Status: "pending"}
	done := response.TransactionResponse{ID: "trx-2", Status: "success"}

	_, err := Decide(context.Background(), trx, pending, Approve())
	assert.ErrorIs(t, err, ErrIllegalTransition)
	_, err = Decide(context.Background(), trx, done, Approve())
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, 0, trx.statusCalls)
}

func TestResume(t *testing.T) {
	proof := "https://cdn.example.com/p.png"
	log := zaptest.NewLogger(t)

	f := Resume(response.TransactionResponse{ID: "a", Status: "pending"}, &fakeTransactions{}, &fakeUploader{}, log)
	assert.IsType(t, TransactionCreated{}, f.State())

	f = Resume(response.TransactionResponse{ID: "b", Status: "pending", ProofPaymentURL: &proof}, &fakeTransactions{}, &fakeUploader{}, log)
	assert.IsType(t, ProofUploaded{}, f.State())

	f = Resume(response.TransactionResponse{ID: "c", Status: "rejected"}, &fakeTransactions{}, &fakeUploader{}, log)
	assert.IsType(t, Decided{}, f.State())
}
