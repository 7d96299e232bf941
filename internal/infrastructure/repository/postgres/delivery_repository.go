package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/karinemajda/delivery-email-app/internal/core/domain"
)

// DeliveryRepository is the append-only delivery record store. Records are
// inserted once and never updated; id and created_at come from the server.
type DeliveryRepository struct {
	db        *sql.DB
	opTimeout time.Duration
}

func NewDeliveryRepository(db *sql.DB, opTimeout time.Duration) *DeliveryRepository {
	if opTimeout <= 0 {
		opTimeout = 10 * time.Second
	}
	return &DeliveryRepository{db: db, opTimeout: opTimeout}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// EnsureSchema is safe to call on every startup.
func (r *DeliveryRepository) EnsureSchema(ctx context.Context) error {
	opCtx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(opCtx, nil)
	if err != nil {
		return domain.WrapError(domain.ErrStore, "begin schema tx", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(opCtx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082501)); err != nil {
		return domain.WrapError(domain.ErrStore, "acquire schema lock", err)
	}

	// delivery_date is TEXT: a value that failed the date check upstream is
	// stored verbatim instead of being discarded.
	const query = `
CREATE TABLE IF NOT EXISTS deliveries (
	id BIGSERIAL PRIMARY KEY,
	delivery TEXT NOT NULL DEFAULT 'no',
	price_num NUMERIC(12,2) NOT NULL DEFAULT 0,
	description TEXT NOT NULL DEFAULT '',
	order_id TEXT NOT NULL DEFAULT '',
	delivery_date TEXT,
	store TEXT NOT NULL DEFAULT '',
	tracking_number TEXT NOT NULL DEFAULT '',
	carrier TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_deliveries_created_at ON deliveries(created_at DESC);
`
	if _, err := tx.ExecContext(opCtx, query); err != nil {
		return domain.WrapError(domain.ErrStore, "execute schema ddl", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(domain.ErrStore, "commit schema tx", err)
	}
	return nil
}

// Insert appends one record and fills in the assigned id and created_at.
func (r *DeliveryRepository) Insert(ctx context.Context, record *domain.DeliveryRecord) error {
	opCtx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	var deliveryDate any
	if record.DeliveryDate != "" {
		deliveryDate = record.DeliveryDate
	}

	row := r.db.QueryRowContext(opCtx, `
INSERT INTO deliveries (delivery, price_num, description, order_id, delivery_date, store, tracking_number, carrier)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING id, created_at
`,
		string(record.Delivery), record.PriceNum, record.Description, record.OrderID,
		deliveryDate, record.Store, record.TrackingNumber, record.Carrier,
	)

	if err := row.Scan(&record.ID, &record.CreatedAt); err != nil {
		return domain.WrapError(domain.ErrStore, "insert delivery", err)
	}
	return nil
}

// History returns all records newest first. Errors carry the
// ErrHistoryUnavailable kind so callers can degrade instead of failing.
func (r *DeliveryRepository) History(ctx context.Context) ([]domain.DeliveryRecord, error) {
	opCtx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(opCtx, `
SELECT id, delivery, price_num, description, order_id, delivery_date, store, tracking_number, carrier, created_at
FROM deliveries
ORDER BY created_at DESC, id DESC
`)
	if err != nil {
		return nil, domain.WrapError(domain.ErrHistoryUnavailable, "list deliveries", err)
	}
	defer rows.Close()

	out := make([]domain.DeliveryRecord, 0)
	for rows.Next() {
		record, err := scanDelivery(rows)
		if err != nil {
			return nil, domain.WrapError(domain.ErrHistoryUnavailable, "scan delivery", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrHistoryUnavailable, "iterate deliveries", err)
	}
	return out, nil
}

func scanDelivery(rows *sql.Rows) (domain.DeliveryRecord, error) {
	var record domain.DeliveryRecord
	var delivery string
	var deliveryDate sql.NullString

	err := rows.Scan(
		&record.ID,
		&delivery,
		&record.PriceNum,
		&record.Description,
		&record.OrderID,
		&deliveryDate,
		&record.Store,
		&record.TrackingNumber,
		&record.Carrier,
		&record.CreatedAt,
	)
	if err != nil {
		return domain.DeliveryRecord{}, err
	}

	record.Delivery = domain.DeliveryStatus(delivery)
	record.DeliveryDate = deliveryDate.String
	return record, nil
}
