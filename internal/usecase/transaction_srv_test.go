package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/trxview"
	"travel-booking/pkg/cache"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeTransactions struct {
	repository.TransactionRepository
	byID  map[uuid.UUID]*entity.TransactionSummary
	items map[uuid.UUID][]*entity.TransactionItem
	order []uuid.UUID

	removedCart []uuid.UUID
	// collisions makes the next inserts fail as duplicate invoices
	collisions int
	invoices   []string
}

func newFakeTransactions() *fakeTransactions {
	return &fakeTransactions{
		byID:  map[uuid.UUID]*entity.TransactionSummary{},
		items: map[uuid.UUID][]*entity.TransactionItem{},
	}
}

func (f *fakeTransactions) put(t *entity.TransactionSummary) {
	f.byID[t.ID] = t
	f.order = append(f.order, t.ID)
}

func (f *fakeTransactions) CreateWithItems(_ context.Context, trx *entity.Transaction, items []*entity.TransactionItem, cartIDs []uuid.UUID) error {
	f.invoices = append(f.invoices, trx.InvoiceID)
	if f.collisions > 0 {
		f.collisions--
		return fmt.Errorf("insert transaction %s: %w", trx.InvoiceID, repository.ErrDuplicateInvoice)
	}
	name := "Budi"
	f.put(&entity.TransactionSummary{Transaction: *trx, UserName: &name})
	f.items[trx.ID] = items
	f.removedCart = cartIDs
	return nil
}

func (f *fakeTransactions) FindByID(_ context.Context, id uuid.UUID) (*entity.TransactionSummary, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTransactions) FindAll(context.Context) ([]*entity.TransactionSummary, error) {
	out := make([]*entity.TransactionSummary, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.byID[id])
	}
	return out, nil
}

func (f *fakeTransactions) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.TransactionSummary, error) {
	var out []*entity.TransactionSummary
	for _, id := range f.order {
		if f.byID[id].UserID == userID {
			out = append(out, f.byID[id])
		}
	}
	return out, nil
}

func (f *fakeTransactions) FindItems(_ context.Context, id uuid.UUID) ([]*entity.TransactionItem, error) {
	return f.items[id], nil
}

func (f *fakeTransactions) UpdateProof(_ context.Context, id, userID uuid.UUID, proofURL string) error {
	t := f.byID[id]
	if t == nil || t.UserID != userID {
		return fmt.Errorf("transaction not found")
	}
	t.ProofPaymentURL = &proofURL
	return nil
}

func (f *fakeTransactions) UpdateStatus(_ context.Context, id uuid.UUID, status entity.TransactionStatus, reason *string) error {
	t := f.byID[id]
	if t == nil {
		return fmt.Errorf("transaction not found")
	}
	t.Status = status
	t.RejectionReason = reason
	return nil
}

type fakeCart struct {
	repository.CartRepository
	lines []*entity.CartItem
}

func (f *fakeCart) FindByIDs(_ context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*entity.CartItem, error) {
	var out []*entity.CartItem
	for _, id := range ids {
		for _, line := range f.lines {
			if line.ID == id && line.UserID == userID {
				out = append(out, line)
			}
		}
	}
	return out, nil
}

type fakePaymentMethods struct {
	repository.PaymentMethodRepository
	methods map[uuid.UUID]*entity.PaymentMethod
}

func (f *fakePaymentMethods) FindByID(_ context.Context, id uuid.UUID) (*entity.PaymentMethod, error) {
	return f.methods[id], nil
}

type trxFixture struct {
	svc    *transactionService
	trx    *fakeTransactions
	cart   *fakeCart
	userID uuid.UUID
	bca    uuid.UUID
	closed uuid.UUID
}

func newTrxFixture(t *testing.T) *trxFixture {
	t.Helper()

	fx := &trxFixture{
		trx:    newFakeTransactions(),
		cart:   &fakeCart{},
		userID: uuid.New(),
		bca:    uuid.New(),
		closed: uuid.New(),
	}

	methods := &fakePaymentMethods{methods: map[uuid.UUID]*entity.PaymentMethod{}}
	bca := &entity.PaymentMethod{Name: "BCA", IsActive: true}
	bca.ID = fx.bca
	closed := &entity.PaymentMethod{Name: "Mandiri", IsActive: false}
	closed.ID = fx.closed
	methods.methods[fx.bca] = bca
	methods.methods[fx.closed] = closed

	repo := &repository.Repository{
		Transaction:   fx.trx,
		Cart:          fx.cart,
		PaymentMethod: methods,
	}

	svc := NewTransactionService(repo, cache.Noop{}, utils.ListingConfig{AdminPageSize: 10, UserPageSize: 2}, zaptest.NewLogger(t)).(*transactionService)
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC) }
	fx.svc = svc
	return fx
}

func (fx *trxFixture) addLine(title string, price int64, discount *int64, qty int) uuid.UUID {
	activity := &entity.Activity{Title: title, Price: price, PriceDiscount: discount}
	activity.ID = uuid.New()

	line := &entity.CartItem{UserID: fx.userID, ActivityID: activity.ID, Quantity: qty, Activity: activity}
	line.ID = uuid.New()
	fx.cart.lines = append(fx.cart.lines, line)
	return line.ID
}

func (fx *trxFixture) seed(status entity.TransactionStatus, proof string, created time.Time) uuid.UUID {
	t := &entity.TransactionSummary{}
	t.ID = uuid.New()
	t.UserID = fx.userID
	t.InvoiceID = "INV-" + t.ID.String()[:8]
	t.Status = status
	t.CreatedAt = created
	if proof != "" {
		t.ProofPaymentURL = &proof
	}
	fx.trx.put(t)
	return t.ID
}

func TestTransactionService_CreateChargesEffectivePrices(t *testing.T) {
	fx := newTrxFixture(t)
	discount := int64(400000)
	snorkel := fx.addLine("Snorkeling Gili", 500000, &discount, 2)
	rafting := fx.addLine("Rafting Ayung", 350000, nil, 1)

	resp, err := fx.svc.Create(context.Background(), fx.userID.String(), &request.CreateTransactionRequest{
		CartIDs:         []string{snorkel.String(), rafting.String(), snorkel.String()},
		PaymentMethodID: fx.bca.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1150000), resp.TotalAmount)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, trxview.StatusPending, resp.DisplayStatus.Status)
	assert.Regexp(t, `^INV-20240305-093000-\d{4}$`, resp.InvoiceID)
	assert.Len(t, resp.Items, 2)
	assert.ElementsMatch(t, []uuid.UUID{snorkel, rafting}, fx.trx.removedCart)
}

func TestTransactionService_CreateRetriesInvoiceCollision(t *testing.T) {
	fx := newTrxFixture(t)
	line := fx.addLine("Snorkeling Gili", 500000, nil, 1)
	req := &request.CreateTransactionRequest{CartIDs: []string{line.String()}, PaymentMethodID: fx.bca.String()}

	fx.trx.collisions = 2
	resp, err := fx.svc.Create(context.Background(), fx.userID.String(), req)
	require.NoError(t, err)
	assert.Len(t, fx.trx.invoices, 3)
	assert.Equal(t, fx.trx.invoices[2], resp.InvoiceID)
	assert.Len(t, fx.trx.order, 1)

	fx.trx.invoices = nil
	fx.trx.collisions = invoiceAttempts
	_, err = fx.svc.Create(context.Background(), fx.userID.String(), req)
	require.Error(t, err)
	assert.Equal(t, "failed to create transaction", err.Error())
	assert.Len(t, fx.trx.invoices, invoiceAttempts)
	assert.Len(t, fx.trx.order, 1)
}

func TestTransactionService_CreateRejectsBadInput(t *testing.T) {
	fx := newTrxFixture(t)
	line := fx.addLine("Snorkeling Gili", 500000, nil, 1)

	tests := []struct {
		name string
		req  request.CreateTransactionRequest
		want string
	}{
		{
			name: "no cart lines",
			req:  request.CreateTransactionRequest{PaymentMethodID: fx.bca.String()},
			want: "validation failed",
		},
		{
			name: "unknown cart line",
			req:  request.CreateTransactionRequest{CartIDs: []string{uuid.NewString()}, PaymentMethodID: fx.bca.String()},
			want: "cart item not found",
		},
		{
			name: "inactive payment method",
			req:  request.CreateTransactionRequest{CartIDs: []string{line.String()}, PaymentMethodID: fx.closed.String()},
			want: "payment method not found",
		},
		{
			name: "unknown payment method",
			req:  request.CreateTransactionRequest{CartIDs: []string{line.String()}, PaymentMethodID: uuid.NewString()},
			want: "payment method not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.svc.Create(context.Background(), fx.userID.String(), &tt.req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
	assert.Empty(t, fx.trx.order)
}

func TestTransactionService_GetMinePagesAndFilters(t *testing.T) {
	fx := newTrxFixture(t)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		fx.seed(entity.TransactionStatusPending, "", base.AddDate(0, 0, i))
	}
	fx.seed(entity.TransactionStatusSuccess, "https://cdn.example.com/p.png", base.AddDate(0, 0, 5))

	resp, err := fx.svc.GetMine(context.Background(), fx.userID.String(), &request.TransactionListRequest{
		Filter: trxview.DefaultFilter(),
		Page:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "success", resp.Data[0].Status)
	assert.False(t, resp.FilterActive)

	filter := trxview.DefaultFilter()
	filter.Status = string(trxview.StatusRejected)
	resp, err = fx.svc.GetMine(context.Background(), fx.userID.String(), &request.TransactionListRequest{Filter: filter, Page: 1})
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
	assert.True(t, resp.FilterActive)
	assert.NotEmpty(t, resp.EmptyMessage)
}

func TestTransactionService_GetByIDOwnership(t *testing.T) {
	fx := newTrxFixture(t)
	id := fx.seed(entity.TransactionStatusPending, "", time.Now())

	_, err := fx.svc.GetByID(context.Background(), uuid.NewString(), string(entity.RoleCustomer), id.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")

	resp, err := fx.svc.GetByID(context.Background(), uuid.NewString(), string(entity.RoleAdmin), id.String())
	require.NoError(t, err)
	assert.Equal(t, id.String(), resp.ID)

	_, err = fx.svc.GetByID(context.Background(), fx.userID.String(), string(entity.RoleCustomer), uuid.NewString())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestTransactionService_UpdateProof(t *testing.T) {
	fx := newTrxFixture(t)
	pending := fx.seed(entity.TransactionStatusPending, "", time.Now())
	decided := fx.seed(entity.TransactionStatusSuccess, "https://cdn.example.com/old.png", time.Now())
	proof := &request.UpdateProofRequest{ProofPaymentURL: "https://cdn.example.com/proof.png"}

	resp, err := fx.svc.UpdateProof(context.Background(), fx.userID.String(), pending.String(), proof)
	require.NoError(t, err)
	assert.Equal(t, trxview.StatusWaitingConfirmation, resp.DisplayStatus.Status)
	require.NotNil(t, resp.ProofPaymentURL)
	assert.Equal(t, proof.ProofPaymentURL, *resp.ProofPaymentURL)

	_, err = fx.svc.UpdateProof(context.Background(), uuid.NewString(), pending.String(), proof)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")

	_, err = fx.svc.UpdateProof(context.Background(), fx.userID.String(), decided.String(), proof)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot upload proof")

	_, err = fx.svc.UpdateProof(context.Background(), fx.userID.String(), pending.String(), &request.UpdateProofRequest{ProofPaymentURL: "not a url"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestTransactionService_UpdateStatus(t *testing.T) {
	fx := newTrxFixture(t)
	adminID := uuid.NewString()
	reason := func(s string) *string { return &s }

	t.Run("pending without proof cannot be decided", func(t *testing.T) {
		id := fx.seed(entity.TransactionStatusPending, "", time.Now())
		_, err := fx.svc.UpdateStatus(context.Background(), adminID, id.String(), &request.UpdateStatusRequest{Status: "success"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot decide")
	})

	t.Run("approve", func(t *testing.T) {
		id := fx.seed(entity.TransactionStatusPending, "https://cdn.example.com/p.png", time.Now())
		resp, err := fx.svc.UpdateStatus(context.Background(), adminID, id.String(), &request.UpdateStatusRequest{Status: "success", Reason: reason("ignored")})
		require.NoError(t, err)
		assert.Equal(t, trxview.StatusSuccess, resp.DisplayStatus.Status)
		assert.Nil(t, resp.RejectionReason)
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		id := fx.seed(entity.TransactionStatusPending, "https://cdn.example.com/p.png", time.Now())
		_, err := fx.svc.UpdateStatus(context.Background(), adminID, id.String(), &request.UpdateStatusRequest{Status: "rejected", Reason: reason("   ")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reason is required")
		assert.Equal(t, entity.TransactionStatusPending, fx.trx.byID[id].Status)
	})

	t.Run("reject stores trimmed reason", func(t *testing.T) {
		id := fx.seed(entity.TransactionStatusPending, "https://cdn.example.com/p.png", time.Now())
		resp, err := fx.svc.UpdateStatus(context.Background(), adminID, id.String(), &request.UpdateStatusRequest{Status: "rejected", Reason: reason("  blurry  ")})
		require.NoError(t, err)
		assert.Equal(t, trxview.StatusRejected, resp.DisplayStatus.Status)
		require.NotNil(t, resp.RejectionReason)
		assert.Equal(t, "blurry", *resp.RejectionReason)
	})

	t.Run("decided transaction cannot be decided again", func(t *testing.T) {
		id := fx.seed(entity.TransactionStatusSuccess, "https://cdn.example.com/p.png", time.Now())
		_, err := fx.svc.UpdateStatus(context.Background(), adminID, id.String(), &request.UpdateStatusRequest{Status: "rejected", Reason: reason("late")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot decide")
	})

	t.Run("unknown status", func(t *testing.T) {
		id := fx.seed(entity.TransactionStatusPending, "https://cdn.example.com/p.png", time.Now())
		_, err := fx.svc.UpdateStatus(context.Background(), adminID, id.String(), &request.UpdateStatusRequest{Status: "cancelled"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})
}
