package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/UVLabs/gateway-currency/internal/domain/errors"
	"github.com/UVLabs/gateway-currency/internal/domain/model"
	"github.com/UVLabs/gateway-currency/internal/domain/repository"
)

// undefinedTableCode is the SQLSTATE reported when the analytics summary
// table does not exist. The summary update degrades to a no-op then.
const undefinedTableCode = "42P01"

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type refundRepository struct {
	storage *Storage
}

type summaryRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Refunds() repository.RefundRepository {
	return &refundRepository{storage: s}
}

func (s *Storage) Summaries() repository.SummaryRepository {
	return &summaryRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	// sales_summary is owned by the analytics layer and is deliberately not
	// created here.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            order_total NUMERIC(20,2) NOT NULL,
            original_order_total NUMERIC(20,2),
            converted_order_total NUMERIC(20,2),
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS refunds (
            id TEXT PRIMARY KEY,
            order_id TEXT NOT NULL REFERENCES orders(id),
            settlement_amount NUMERIC(20,2) NOT NULL,
            display_amount NUMERIC(20,2) NOT NULL,
            running_total NUMERIC(20,2) NOT NULL,
            is_partial BOOLEAN NOT NULL,
            processed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_refunds_order ON refunds(order_id, processed_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse stored amount %q: %w", s, err)
	}
	return d, nil
}

func parseOptionalAmount(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := parseAmount(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, orderID string, total decimal.Decimal) (*model.Order, bool, error) {
	const query = `INSERT INTO orders (id, order_total, status) VALUES ($1, $2::numeric, $3)
                   ON CONFLICT (id) DO NOTHING
                   RETURNING created_at, updated_at`
	var order model.Order
	err := r.storage.pool.QueryRow(ctx, query, orderID, total.StringFixed(2), model.OrderStatusCreated).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, err := r.GetByID(ctx, orderID)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	order.ID = orderID
	order.Total = total
	order.Status = model.OrderStatusCreated
	return &order, true, nil
}

func (r *orderRepository) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	const query = `SELECT id, order_total::text, original_order_total::text, converted_order_total::text,
                          status, created_at, updated_at
                   FROM orders WHERE id=$1`
	var (
		order     model.Order
		totalStr  string
		origStr   *string
		convStr   *string
	)
	err := r.storage.pool.QueryRow(ctx, query, orderID).Scan(&order.ID, &totalStr, &origStr, &convStr, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	if order.Total, err = parseAmount(totalStr); err != nil {
		return nil, err
	}
	if order.DisplayTotal, err = parseOptionalAmount(origStr); err != nil {
		return nil, err
	}
	if order.ConvertedTotal, err = parseOptionalAmount(convStr); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) SetPersistedTotals(ctx context.Context, orderID string, display, converted decimal.Decimal) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const selectQuery = `SELECT original_order_total::text FROM orders WHERE id=$1 FOR UPDATE`
		var existing *string
		if err := tx.QueryRow(ctx, selectQuery, orderID).Scan(&existing); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if existing != nil {
			return domainErrors.ErrImmutableTotals
		}

		const updateQuery = `UPDATE orders
                             SET original_order_total=$2::numeric, converted_order_total=$3::numeric, updated_at=NOW()
                             WHERE id=$1`
		if _, err := tx.Exec(ctx, updateQuery, orderID, display.StringFixed(2), converted.StringFixed(2)); err != nil {
			return err
		}
		return nil
	})
}

func (r *orderRepository) SetTotal(ctx context.Context, orderID string, total decimal.Decimal, status model.OrderStatus) error {
	const query = `UPDATE orders SET order_total=$2::numeric, status=$3, updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, orderID, total.StringFixed(2), status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- RefundRepository implementation ---

func (r *refundRepository) Save(ctx context.Context, refund *model.Refund) error {
	const query = `INSERT INTO refunds (id, order_id, settlement_amount, display_amount, running_total, is_partial)
                   VALUES ($1, $2, $3::numeric, $4::numeric, $5::numeric, $6)
                   ON CONFLICT (id) DO UPDATE
                   SET settlement_amount=EXCLUDED.settlement_amount,
                       display_amount=EXCLUDED.display_amount,
                       running_total=EXCLUDED.running_total,
                       is_partial=EXCLUDED.is_partial
                   RETURNING processed_at`
	return r.storage.pool.QueryRow(ctx, query,
		refund.ID,
		refund.OrderID,
		refund.SettlementAmount.StringFixed(2),
		refund.DisplayAmount.StringFixed(2),
		refund.RunningTotal.StringFixed(2),
		refund.IsPartial,
	).Scan(&refund.ProcessedAt)
}

func (r *refundRepository) ListByOrder(ctx context.Context, orderID string) ([]model.Refund, error) {
	const query = `SELECT id, order_id, settlement_amount::text, display_amount::text, running_total::text,
                          is_partial, processed_at
                   FROM refunds WHERE order_id=$1 ORDER BY processed_at`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Refund
	for rows.Next() {
		var (
			refund        model.Refund
			settlementStr string
			displayStr    string
			runningStr    string
		)
		if err := rows.Scan(&refund.ID, &refund.OrderID, &settlementStr, &displayStr, &runningStr, &refund.IsPartial, &refund.ProcessedAt); err != nil {
			return nil, err
		}
		if refund.SettlementAmount, err = parseAmount(settlementStr); err != nil {
			return nil, err
		}
		if refund.DisplayAmount, err = parseAmount(displayStr); err != nil {
			return nil, err
		}
		if refund.RunningTotal, err = parseAmount(runningStr); err != nil {
			return nil, err
		}
		result = append(result, refund)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- SummaryRepository implementation ---

func (r *summaryRepository) OverwriteRefundRow(ctx context.Context, refundID string, total decimal.Decimal) error {
	const query = `INSERT INTO sales_summary (refund_id, gross_sales, net_sales)
                   VALUES ($1, $2::numeric, $2::numeric)
                   ON CONFLICT (refund_id) DO UPDATE
                   SET gross_sales=EXCLUDED.gross_sales, net_sales=EXCLUDED.net_sales`
	if _, err := r.storage.pool.Exec(ctx, query, refundID, total.StringFixed(2)); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == undefinedTableCode {
			r.storage.logger.Info("sales summary table absent, skipping analytics update", slog.String("refund", refundID))
			return nil
		}
		return err
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
