package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/karinemajda/delivery-email-app/internal/core/domain"
)

func TestInsertAssignsIDAndCreatedAt(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewDeliveryRepository(db, time.Second)
	createdAt := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO deliveries").
		WithArgs("yes", 12.5, "wireless mouse", "O-1", "2026-08-01", "Amazon", "TRK-9", "UPS").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), createdAt))

	record := domain.DeliveryRecord{
		Delivery:       domain.DeliveryConfirmed,
		PriceNum:       12.5,
		Description:    "wireless mouse",
		OrderID:        "O-1",
		DeliveryDate:   "2026-08-01",
		Store:          "Amazon",
		TrackingNumber: "TRK-9",
		Carrier:        "UPS",
	}
	if err := repo.Insert(context.Background(), &record); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if record.ID != 7 {
		t.Fatalf("expected id 7, got %d", record.ID)
	}
	if !record.CreatedAt.Equal(createdAt) {
		t.Fatalf("expected created_at %v, got %v", createdAt, record.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestInsertStoresEmptyDateAsNull(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewDeliveryRepository(db, time.Second)
	mock.ExpectQuery("INSERT INTO deliveries").
		WithArgs("no", 0.0, "", "", nil, "", "", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))

	record := domain.DeliveryRecord{Delivery: domain.DeliveryNotConfirmed}
	if err := repo.Insert(context.Background(), &record); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestInsertWrapsStoreError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewDeliveryRepository(db, time.Second)
	mock.ExpectQuery("INSERT INTO deliveries").
		WillReturnError(errors.New("connection reset"))

	record := domain.DeliveryRecord{Delivery: domain.DeliveryNotConfirmed}
	err = repo.Insert(context.Background(), &record)
	if !domain.IsKind(err, domain.ErrStore) {
		t.Fatalf("expected store error kind, got %v", err)
	}
}

func TestHistoryReturnsNewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewDeliveryRepository(db, time.Second)
	now := time.Now().UTC()
	columns := []string{"id", "delivery", "price_num", "description", "order_id", "delivery_date", "store", "tracking_number", "carrier", "created_at"}
	rows := sqlmock.NewRows(columns).
		AddRow(int64(2), "yes", 20.0, "keyboard", "O-2", "2026-08-20", "Ozon", "T2", "DHL", now).
		AddRow(int64(1), "no", 0.0, "", "", nil, "", "", "", now.Add(-time.Hour))

	mock.ExpectQuery("FROM deliveries").WillReturnRows(rows)

	records, err := repo.History(context.Background())
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != 2 || records[1].ID != 1 {
		t.Fatalf("unexpected order: %v, %v", records[0].ID, records[1].ID)
	}
	if records[1].DeliveryDate != "" {
		t.Fatalf("expected empty date for NULL column, got %q", records[1].DeliveryDate)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestHistoryErrorCarriesUnavailableKind(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewDeliveryRepository(db, time.Second)
	mock.ExpectQuery("FROM deliveries").WillReturnError(errors.New("dial tcp: refused"))

	_, err = repo.History(context.Background())
	if !domain.IsKind(err, domain.ErrHistoryUnavailable) {
		t.Fatalf("expected history unavailable kind, got %v", err)
	}
}

func TestEnsureSchemaRunsIdempotentDDL(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewDeliveryRepository(db, time.Second)
	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").
		WithArgs(int64(2026082501)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS deliveries").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
