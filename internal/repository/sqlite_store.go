package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"TradePulse/internal/domain/models"
)

// SQLiteStore keeps trade records in a local SQLite database seeded from the
// processed JSON files. Static prediction documents are stored alongside in
// a single-row documents table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and migrates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Name() string { return "sqlite" }

func (s *SQLiteStore) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS trade_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			flow TEXT NOT NULL,
			quarter TEXT NOT NULL,
			country TEXT NOT NULL DEFAULT '',
			commodity TEXT NOT NULL DEFAULT '',
			value REAL NOT NULL DEFAULT 0,
			ingested_at TIMESTAMP NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_trade_records_flow_quarter
			ON trade_records (flow, quarter);`,
		`CREATE TABLE IF NOT EXISTS documents (
			name TEXT PRIMARY KEY,
			body TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("sqlite migrate: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Records(ctx context.Context, flow models.Flow) ([]models.TradeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT quarter, country, commodity, value
		FROM trade_records
		WHERE flow = ?
		ORDER BY quarter, id
	`, string(flow))
	if err != nil {
		return nil, fmt.Errorf("sqlite query: %w", err)
	}
	defer rows.Close()

	var records []models.TradeRecord
	for rows.Next() {
		var (
			rec   models.TradeRecord
			value float64
		)
		if err := rows.Scan(&rec.Quarter, &rec.Country, &rec.Commodity, &value); err != nil {
			return nil, fmt.Errorf("sqlite scan: %w", err)
		}
		if flow == models.FlowImport {
			rec.ImportValue = models.FlexValue(value)
		} else {
			rec.ExportValue = models.FlexValue(value)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ReplaceRecords swaps out all records for a flow in one transaction. Used
// by the seeding command.
func (s *SQLiteStore) ReplaceRecords(ctx context.Context, flow models.Flow, records []models.TradeRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM trade_records WHERE flow = ?`, string(flow)); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trade_records (flow, quarter, country, commodity, value, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, rec := range records {
		_, err = stmt.ExecContext(ctx,
			string(flow),
			rec.Quarter,
			rec.Partner(),
			rec.Commodity,
			rec.Value(flow),
			now,
		)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) StaticPredictions(ctx context.Context) (json.RawMessage, bool, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE name = 'predictions'`,
	).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sqlite query: %w", err)
	}
	if !json.Valid([]byte(body)) {
		return nil, false, nil
	}
	return json.RawMessage(body), true, nil
}

// PutDocument stores a named JSON document, replacing any previous version.
func (s *SQLiteStore) PutDocument(ctx context.Context, name string, body json.RawMessage) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (name, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at
	`, name, string(body), time.Now().UTC())
	return err
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
