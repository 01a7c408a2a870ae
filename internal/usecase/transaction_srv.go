package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/internal/trxview"
	"travel-booking/pkg/cache"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// invoiceAttempts bounds how often Create draws a new invoice id after a collision.
const invoiceAttempts = 5

type TransactionService interface {
	GetPaymentMethods(ctx context.Context) ([]response.PaymentMethodResponse, error)

	Create(ctx context.Context, userID string, req *request.CreateTransactionRequest) (*response.TransactionResponse, error)
	GetMine(ctx context.Context, userID string, req *request.TransactionListRequest) (*response.TransactionListResponse, error)
	GetAll(ctx context.Context, req *request.TransactionListRequest) (*response.TransactionListResponse, error)
	GetByID(ctx context.Context, userID, role, id string) (*response.TransactionResponse, error)

	UpdateProof(ctx context.Context, userID, id string, req *request.UpdateProofRequest) (*response.TransactionResponse, error)
	UpdateStatus(ctx context.Context, adminID, id string, req *request.UpdateStatusRequest) (*response.TransactionResponse, error)
}

type transactionService struct {
	repo    *repository.Repository
	cache   cache.Cache
	listing utils.ListingConfig
	now     func() time.Time
	log     *zap.Logger
}

func NewTransactionService(repo *repository.Repository, c cache.Cache, listing utils.ListingConfig, log *zap.Logger) TransactionService {
	return &transactionService{
		repo:    repo,
		cache:   c,
		listing: listing,
		now:     time.Now,
		log:     log.With(zap.String("service", "transaction")),
	}
}

func (s *transactionService) GetPaymentMethods(ctx context.Context) ([]response.PaymentMethodResponse, error) {
	return cached(ctx, s.cache, cache.KeyPaymentMethods, func(ctx context.Context) ([]response.PaymentMethodResponse, error) {
		methods, err := s.repo.PaymentMethod.FindAllActive(ctx)
		if err != nil {
			s.log.Error("Failed to get payment methods", zap.Error(err))
			return nil, fmt.Errorf("failed to get payment methods")
		}

		data := make([]response.PaymentMethodResponse, 0, len(methods))
		for _, pm := range methods {
			data = append(data, response.PaymentMethodToResponse(pm))
		}
		return data, nil
	})
}

func (s *transactionService) Create(ctx context.Context, userID string, req *request.CreateTransactionRequest) (*response.TransactionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create transaction validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	uid, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}

	cartIDs, err := uniqueIDs(req.CartIDs)
	if err != nil {
		return nil, err
	}

	pmID, err := parseID("payment method", req.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	method, err := s.repo.PaymentMethod.FindByID(ctx, pmID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment method")
	}
	if method == nil || !method.IsActive {
		return nil, fmt.Errorf("payment method not found")
	}

	lines, err := s.repo.Cart.FindByIDs(ctx, uid, cartIDs)
	if err != nil {
		s.log.Error("Failed to load cart lines", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to load cart")
	}
	if len(lines) != len(cartIDs) {
		return nil, fmt.Errorf("cart item not found")
	}

	now := s.now()
	trx := &entity.Transaction{
		BaseNoDelete:    entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		InvoiceID:       utils.GenerateInvoiceID(now),
		UserID:          uid,
		PaymentMethodID: method.ID,
		Status:          entity.TransactionStatusPending,
	}

	items := make([]*entity.TransactionItem, 0, len(lines))
	for _, line := range lines {
		price := line.Activity.EffectivePrice()
		items = append(items, &entity.TransactionItem{
			BaseSimple:    entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			TransactionID: trx.ID,
			ActivityID:    line.ActivityID,
			Title:         line.Activity.Title,
			Price:         price,
			Quantity:      line.Quantity,
		})
		trx.TotalAmount += price * int64(line.Quantity)
	}

	for attempt := 1; ; attempt++ {
		err = s.repo.Transaction.CreateWithItems(ctx, trx, items, cartIDs)
		if errors.Is(err, repository.ErrDuplicateInvoice) && attempt < invoiceAttempts {
			trx.InvoiceID = utils.GenerateInvoiceID(now)
			continue
		}
		break
	}
	if err != nil {
		s.log.Error("Failed to create transaction", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to create transaction")
	}

	s.log.Info("Transaction created",
		zap.String("transaction_id", trx.ID.String()),
		zap.String("invoice_id", trx.InvoiceID),
		zap.String("user_id", userID),
		zap.Int("item_count", len(items)),
		zap.Int64("total_amount", trx.TotalAmount),
	)

	return s.detail(ctx, trx.ID)
}

func (s *transactionService) GetMine(ctx context.Context, userID string, req *request.TransactionListRequest) (*response.TransactionListResponse, error) {
	uid, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.repo.Transaction.FindByUserID(ctx, uid)
	if err != nil {
		s.log.Error("Failed to get user transactions", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to get transactions")
	}

	return s.page(transactions, req, s.listing.UserPageSize), nil
}

func (s *transactionService) GetAll(ctx context.Context, req *request.TransactionListRequest) (*response.TransactionListResponse, error) {
	transactions, err := s.repo.Transaction.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get all transactions", zap.Error(err))
		return nil, fmt.Errorf("failed to get transactions")
	}

	return s.page(transactions, req, s.listing.AdminPageSize), nil
}

func (s *transactionService) page(transactions []*entity.TransactionSummary, req *request.TransactionListRequest, pageSize int) *response.TransactionListResponse {
	result := trxview.Apply(transactions, req.Filter, req.Page, pageSize)
	return response.NewTransactionListResponse(result, req.Filter)
}

func (s *transactionService) GetByID(ctx context.Context, userID, role, id string) (*response.TransactionResponse, error) {
	trx, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if role != string(entity.RoleAdmin) && trx.UserID.String() != userID {
		s.log.Warn("Transaction access denied",
			zap.String("transaction_id", id),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("forbidden: transaction belongs to another user")
	}

	return s.withItems(ctx, trx)
}

func (s *transactionService) UpdateProof(ctx context.Context, userID, id string, req *request.UpdateProofRequest) (*response.TransactionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	trx, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if trx.UserID.String() != userID {
		return nil, fmt.Errorf("forbidden: transaction belongs to another user")
	}
	if trx.Status != entity.TransactionStatusPending {
		return nil, fmt.Errorf("cannot upload proof for a %s transaction", trx.Status)
	}

	if err := s.repo.Transaction.UpdateProof(ctx, trx.ID, trx.UserID, req.ProofPaymentURL); err != nil {
		return nil, err
	}

	s.log.Info("Proof of payment uploaded",
		zap.String("transaction_id", id),
		zap.String("user_id", userID),
	)

	return s.detail(ctx, trx.ID)
}

func (s *transactionService) UpdateStatus(ctx context.Context, adminID, id string, req *request.UpdateStatusRequest) (*response.TransactionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	status := entity.TransactionStatus(req.Status)

	// the reason is stored for rejections only
	var reason *string
	if status == entity.TransactionStatusRejected {
		if req.Reason == nil || strings.TrimSpace(*req.Reason) == "" {
			return nil, fmt.Errorf("validation failed: reason is required when rejecting")
		}
		trimmed := strings.TrimSpace(*req.Reason)
		reason = &trimmed
	}

	trx, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if display := trxview.DeriveRecord(trx); display != trxview.StatusWaitingConfirmation {
		return nil, fmt.Errorf("cannot decide a transaction in status %s", display)
	}

	if err := s.repo.Transaction.UpdateStatus(ctx, trx.ID, status, reason); err != nil {
		return nil, err
	}

	s.log.Info("Transaction decided",
		zap.String("transaction_id", id),
		zap.String("admin_id", adminID),
		zap.String("status", req.Status),
	)

	return s.detail(ctx, trx.ID)
}

func (s *transactionService) find(ctx context.Context, id string) (*entity.TransactionSummary, error) {
	tid, err := parseID("transaction", id)
	if err != nil {
		return nil, err
	}

	trx, err := s.repo.Transaction.FindByID(ctx, tid)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction")
	}
	if trx == nil {
		return nil, fmt.Errorf("transaction not found")
	}

	return trx, nil
}

func (s *transactionService) detail(ctx context.Context, id uuid.UUID) (*response.TransactionResponse, error) {
	trx, err := s.repo.Transaction.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction")
	}
	if trx == nil {
		return nil, fmt.Errorf("transaction not found")
	}

	return s.withItems(ctx, trx)
}

func (s *transactionService) withItems(ctx context.Context, trx *entity.TransactionSummary) (*response.TransactionResponse, error) {
	items, err := s.repo.Transaction.FindItems(ctx, trx.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction items")
	}

	resp := response.TransactionToResponse(trx, items)
	return &resp, nil
}

func uniqueIDs(raw []string) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))

	for _, s := range raw {
		id, err := parseID("cart", s)
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	return ids, nil
}
