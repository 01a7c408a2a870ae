package repository

import (
	"context"
	"errors"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicateInvoice means the invoice id is already taken. The caller may
// retry with a fresh one.
var ErrDuplicateInvoice = errors.New("duplicate invoice id")

const invoiceUniqueConstraint = "transactions_invoice_id_key"

type TransactionRepository interface {
	// CreateWithItems stores the transaction and its items and removes the
	// purchased cart lines, all or nothing
	CreateWithItems(ctx context.Context, trx *entity.Transaction, items []*entity.TransactionItem, cartIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TransactionSummary, error)
	FindAll(ctx context.Context) ([]*entity.TransactionSummary, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.TransactionSummary, error)
	FindItems(ctx context.Context, transactionID uuid.UUID) ([]*entity.TransactionItem, error)

	// UpdateProof attaches a proof of payment to a pending transaction of userID
	UpdateProof(ctx context.Context, id, userID uuid.UUID, proofURL string) error
	// UpdateStatus decides a pending transaction that carries a proof
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.TransactionStatus, reason *string) error

	HasSuccessfulPurchase(ctx context.Context, userID, activityID uuid.UUID) (bool, error)
}

type transactionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTransactionRepository(db database.PgxIface, log *zap.Logger) TransactionRepository {
	return &transactionRepository{
		db:  db,
		log: log.With(zap.String("repository", "transaction")),
	}
}

const transactionSelect = `
		SELECT t.id, t.invoice_id, t.user_id, t.payment_method_id, t.total_amount, t.status,
		       t.proof_payment_url, t.rejection_reason, t.created_at, t.updated_at,
		       u.name, u.email, pm.name
		FROM transactions t
		LEFT JOIN users u ON u.id = t.user_id AND u.deleted_at IS NULL
		LEFT JOIN payment_methods pm ON pm.id = t.payment_method_id
`

func scanTransaction(row pgx.Row) (*entity.TransactionSummary, error) {
	var t entity.TransactionSummary
	err := row.Scan(
		&t.ID,
		&t.InvoiceID,
		&t.UserID,
		&t.PaymentMethodID,
		&t.TotalAmount,
		&t.Status,
		&t.ProofPaymentURL,
		&t.RejectionReason,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.UserName,
		&t.UserEmail,
		&t.PaymentMethodName,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepository) CreateWithItems(ctx context.Context, trx *entity.Transaction, items []*entity.TransactionItem, cartIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction %s: %w", trx.InvoiceID, err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (id, invoice_id, user_id, payment_method_id, total_amount,
		                          status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		trx.ID,
		trx.InvoiceID,
		trx.UserID,
		trx.PaymentMethodID,
		trx.TotalAmount,
		trx.Status,
		trx.CreatedAt,
		trx.UpdatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == invoiceUniqueConstraint {
		r.log.Warn("Invoice id collision", zap.String("invoice_id", trx.InvoiceID))
		return fmt.Errorf("insert transaction %s: %w", trx.InvoiceID, ErrDuplicateInvoice)
	}
	if err != nil {
		r.log.Error("Failed to insert transaction",
			zap.Error(err),
			zap.String("invoice_id", trx.InvoiceID),
			zap.String("user_id", trx.UserID.String()),
		)
		return fmt.Errorf("insert transaction %s: %w", trx.InvoiceID, err)
	}

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(`
			INSERT INTO transaction_items (id, transaction_id, activity_id, title, price, quantity, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, item.ID, trx.ID, item.ActivityID, item.Title, item.Price, item.Quantity, item.CreatedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		r.log.Error("Failed to insert transaction items",
			zap.Error(err),
			zap.String("invoice_id", trx.InvoiceID),
			zap.Int("item_count", len(items)),
		)
		return fmt.Errorf("insert items of transaction %s: %w", trx.InvoiceID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM carts WHERE user_id = $1 AND id = ANY($2)`, trx.UserID, cartIDs); err != nil {
		r.log.Error("Failed to clear purchased cart lines", zap.Error(err), zap.String("invoice_id", trx.InvoiceID))
		return fmt.Errorf("clear cart for transaction %s: %w", trx.InvoiceID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction %s: %w", trx.InvoiceID, err)
	}

	return nil
}

func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TransactionSummary, error) {
	trx, err := scanTransaction(r.db.QueryRow(ctx, transactionSelect+` WHERE t.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find transaction by ID",
			zap.Error(err),
			zap.String("transaction_id", id.String()),
		)
		return nil, fmt.Errorf("find transaction by ID %s: %w", id.String(), err)
	}

	return trx, nil
}

func (r *transactionRepository) FindAll(ctx context.Context) ([]*entity.TransactionSummary, error) {
	return r.query(ctx, transactionSelect+` ORDER BY t.created_at DESC`)
}

func (r *transactionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.TransactionSummary, error) {
	return r.query(ctx, transactionSelect+` WHERE t.user_id = $1 ORDER BY t.created_at DESC`, userID)
}

func (r *transactionRepository) query(ctx context.Context, query string, args ...any) ([]*entity.TransactionSummary, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query transactions", zap.Error(err))
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*entity.TransactionSummary
	for rows.Next() {
		trx, err := scanTransaction(rows)
		if err != nil {
			r.log.Error("Failed to scan transaction row", zap.Error(err))
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		transactions = append(transactions, trx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}

	return transactions, nil
}

func (r *transactionRepository) FindItems(ctx context.Context, transactionID uuid.UUID) ([]*entity.TransactionItem, error) {
	query := `
		SELECT id, transaction_id, activity_id, title, price, quantity, created_at
		FROM transaction_items
		WHERE transaction_id = $1
		ORDER BY created_at, title
	`

	rows, err := r.db.Query(ctx, query, transactionID)
	if err != nil {
		r.log.Error("Failed to find transaction items",
			zap.Error(err),
			zap.String("transaction_id", transactionID.String()),
		)
		return nil, fmt.Errorf("find items of transaction %s: %w", transactionID.String(), err)
	}
	defer rows.Close()

	var items []*entity.TransactionItem
	for rows.Next() {
		var item entity.TransactionItem
		err := rows.Scan(
			&item.ID,
			&item.TransactionID,
			&item.ActivityID,
			&item.Title,
			&item.Price,
			&item.Quantity,
			&item.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan transaction item row", zap.Error(err))
			return nil, fmt.Errorf("scan transaction item row: %w", err)
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

func (r *transactionRepository) UpdateProof(ctx context.Context, id, userID uuid.UUID, proofURL string) error {
	query := `
		UPDATE transactions
		SET proof_payment_url = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id, userID, proofURL)
	if err != nil {
		r.log.Error("Failed to update proof of payment",
			zap.Error(err),
			zap.String("transaction_id", id.String()),
		)
		return fmt.Errorf("update proof of transaction %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s cannot accept a proof of payment", id.String())
	}

	r.log.Info("Proof of payment attached", zap.String("transaction_id", id.String()))
	return nil
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.TransactionStatus, reason *string) error {
	query := `
		UPDATE transactions
		SET status = $2, rejection_reason = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'pending' AND proof_payment_url IS NOT NULL
	`

	result, err := r.db.Exec(ctx, query, id, status, reason)
	if err != nil {
		r.log.Error("Failed to update transaction status",
			zap.Error(err),
			zap.String("transaction_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update status of transaction %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s cannot be decided", id.String())
	}

	r.log.Info("Transaction status updated",
		zap.String("transaction_id", id.String()),
		zap.String("status", string(status)),
	)
	return nil
}

func (r *transactionRepository) HasSuccessfulPurchase(ctx context.Context, userID, activityID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM transactions t
			INNER JOIN transaction_items ti ON ti.transaction_id = t.id
			WHERE t.user_id = $1 AND ti.activity_id = $2 AND t.status = 'success'
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, activityID).Scan(&exists); err != nil {
		r.log.Error("Failed to check purchase",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("activity_id", activityID.String()),
		)
		return false, fmt.Errorf("check purchase of activity %s: %w", activityID.String(), err)
	}

	return exists, nil
}
