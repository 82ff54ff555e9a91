package repository

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"TradePulse/internal/domain/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "trade.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	seed := []models.TradeRecord{
		{Quarter: "2024Q1", ExportValue: 120, Country: "UAE"},
		{Quarter: "2024Q2", ExportValue: 140, Country: "DRC"},
	}
	if err := store.ReplaceRecords(ctx, models.FlowExport, seed); err != nil {
		t.Fatalf("replace: %v", err)
	}

	records, err := store.Records(ctx, models.FlowExport)
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Quarter != "2024Q1" || records[0].Value(models.FlowExport) != 120 {
		t.Fatalf("unexpected record %+v", records[0])
	}

	// Imports are isolated from exports.
	imports, err := store.Records(ctx, models.FlowImport)
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(imports) != 0 {
		t.Fatalf("expected no import records, got %d", len(imports))
	}
}

func TestSQLiteStoreReplaceOverwrites(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	first := []models.TradeRecord{{Quarter: "2024Q1", ExportValue: 100}}
	second := []models.TradeRecord{{Quarter: "2024Q2", ExportValue: 200}}

	if err := store.ReplaceRecords(ctx, models.FlowExport, first); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := store.ReplaceRecords(ctx, models.FlowExport, second); err != nil {
		t.Fatalf("replace: %v", err)
	}

	records, err := store.Records(ctx, models.FlowExport)
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(records) != 1 || records[0].Quarter != "2024Q2" {
		t.Fatalf("replace did not overwrite: %+v", records)
	}
}

func TestSQLiteStoreDocuments(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	if _, ok, err := store.StaticPredictions(ctx); err != nil || ok {
		t.Fatalf("expected absent document, ok=%v err=%v", ok, err)
	}

	doc := json.RawMessage(`{"method":"seasonal","confidence":72}`)
	if err := store.PutDocument(ctx, "predictions", doc); err != nil {
		t.Fatalf("put: %v", err)
	}

	raw, ok, err := store.StaticPredictions(ctx)
	if err != nil || !ok {
		t.Fatalf("expected document, ok=%v err=%v", ok, err)
	}
	if string(raw) != string(doc) {
		t.Fatalf("unexpected document: %s", raw)
	}
}
