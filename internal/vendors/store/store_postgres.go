package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"bloodhound/internal/risk"
	"bloodhound/internal/vendors"
	id "bloodhound/pkg/domain"
)

// PostgresStore persists vendor records in the vendors table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema is the DDL for the vendors table. Applied by migrations in
// production and by test setup in integration suites.
const Schema = `
CREATE TABLE IF NOT EXISTS vendors (
    id                 UUID PRIMARY KEY,
    entity_id          UUID NOT NULL,
    name               TEXT NOT NULL DEFAULT '',
    gstin              TEXT NOT NULL,
    pan                TEXT NOT NULL DEFAULT '',
    registration_days  INT NOT NULL DEFAULT 0,
    address_type       TEXT NOT NULL DEFAULT '',
    director_companies INT NOT NULL DEFAULT 0,
    gstr1_status       TEXT NOT NULL DEFAULT '',
    months_not_filed   INT NOT NULL DEFAULT 0,
    transaction_count  INT NOT NULL DEFAULT 0,
    itc_amount         DOUBLE PRECISION NOT NULL DEFAULT 0,
    cash_payments      DOUBLE PRECISION NOT NULL DEFAULT 0,
    risk_score         INT NOT NULL DEFAULT 0,
    risk_tier          SMALLINT NOT NULL DEFAULT 0,
    risk_factors       JSONB NOT NULL DEFAULT '[]',
    watchlisted        BOOLEAN NOT NULL DEFAULT FALSE,
    last_analyzed_at   TIMESTAMPTZ NOT NULL,
    created_at         TIMESTAMPTZ NOT NULL,
    UNIQUE (entity_id, gstin)
);
CREATE INDEX IF NOT EXISTS idx_vendors_entity_score ON vendors (entity_id, risk_score DESC);
`

const vendorColumns = `id, entity_id, name, gstin, pan, registration_days, address_type,
	director_companies, gstr1_status, months_not_filed, transaction_count,
	itc_amount, cash_payments, risk_score, risk_tier, risk_factors,
	watchlisted, last_analyzed_at, created_at`

func (s *PostgresStore) Upsert(ctx context.Context, record *vendor.Vendor) error {
	factors, err := json.Marshal(record.RiskFactors)
	if err != nil {
		return fmt.Errorf("marshal risk factors: %w", err)
	}

	const query = `
		INSERT INTO vendors (` + vendorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (entity_id, gstin) DO UPDATE SET
			name = EXCLUDED.name,
			pan = EXCLUDED.pan,
			registration_days = EXCLUDED.registration_days,
			address_type = EXCLUDED.address_type,
			director_companies = EXCLUDED.director_companies,
			gstr1_status = EXCLUDED.gstr1_status,
			months_not_filed = EXCLUDED.months_not_filed,
			transaction_count = EXCLUDED.transaction_count,
			itc_amount = EXCLUDED.itc_amount,
			cash_payments = EXCLUDED.cash_payments,
			risk_score = EXCLUDED.risk_score,
			risk_tier = EXCLUDED.risk_tier,
			risk_factors = EXCLUDED.risk_factors,
			watchlisted = EXCLUDED.watchlisted,
			last_analyzed_at = EXCLUDED.last_analyzed_at`

	_, err = s.db.ExecContext(ctx, query,
		record.ID.String(), record.EntityID.String(), record.Name, record.GSTIN, record.PAN.String(),
		record.RegistrationDays, record.AddressType, record.DirectorCompanies,
		record.GSTR1Status, record.MonthsNotFiled, record.TransactionCount,
		record.ITCAmount, record.CashPayments, record.RiskScore, int(record.RiskTier),
		factors, record.Watchlisted, record.LastAnalyzedAt, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert vendor: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByGSTIN(ctx context.Context, entityID id.EntityID, gstin string) (*vendor.Vendor, error) {
	const query = `SELECT ` + vendorColumns + ` FROM vendors WHERE entity_id = $1 AND gstin = $2`

	record, err := scanVendor(s.db.QueryRowContext(ctx, query, entityID.String(), gstin))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, vendor.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find vendor: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) ListByEntity(ctx context.Context, entityID id.EntityID) ([]vendor.Vendor, error) {
	const query = `SELECT ` + vendorColumns + ` FROM vendors
		WHERE entity_id = $1 ORDER BY risk_score DESC, name`

	rows, err := s.db.QueryContext(ctx, query, entityID.String())
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	var records []vendor.Vendor
	for rows.Next() {
		record, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func (s *PostgresStore) SetWatchlist(ctx context.Context, entityID id.EntityID, vendorID id.VendorID, watchlisted bool) error {
	const query = `UPDATE vendors SET watchlisted = $1 WHERE entity_id = $2 AND id = $3`

	result, err := s.db.ExecContext(ctx, query, watchlisted, entityID.String(), vendorID.String())
	if err != nil {
		return fmt.Errorf("update watchlist: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update watchlist: %w", err)
	}
	if affected == 0 {
		return vendor.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVendor(row rowScanner) (*vendor.Vendor, error) {
	var (
		record             vendor.Vendor
		vendorID, entityID string
		pan                string
		tier               int
		factors            []byte
	)
	err := row.Scan(
		&vendorID, &entityID, &record.Name, &record.GSTIN, &pan,
		&record.RegistrationDays, &record.AddressType, &record.DirectorCompanies,
		&record.GSTR1Status, &record.MonthsNotFiled, &record.TransactionCount,
		&record.ITCAmount, &record.CashPayments, &record.RiskScore, &tier,
		&factors, &record.Watchlisted, &record.LastAnalyzedAt, &record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if record.ID, err = id.ParseVendorID(vendorID); err != nil {
		return nil, fmt.Errorf("parse vendor id: %w", err)
	}
	if record.EntityID, err = id.ParseEntityID(entityID); err != nil {
		return nil, fmt.Errorf("parse entity id: %w", err)
	}
	record.PAN = id.PAN(pan)
	record.RiskTier = risk.Tier(tier)
	if err := json.Unmarshal(factors, &record.RiskFactors); err != nil {
		return nil, fmt.Errorf("unmarshal risk factors: %w", err)
	}
	return &record, nil
}
