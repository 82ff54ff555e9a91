// Command seed loads the pre-processed JSON data drop into the SQLite
// backend. Run it once after a new data release:
//
//	go run ./cmd/seed -data data/processed -db data/tradepulse.db
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"TradePulse/internal/domain/models"
	"TradePulse/internal/repository"

	"github.com/joho/godotenv"
)

func main() {
	dataDir := flag.String("data", "data/processed", "directory with exports.json, imports.json, predictions.json")
	dbPath := flag.String("db", "data/tradepulse.db", "SQLite database path")
	flag.Parse()

	_ = godotenv.Load()
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		*dbPath = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		*dataDir = v
	}

	if err := run(*dataDir, *dbPath); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run(dataDir, dbPath string) error {
	store, err := repository.NewSQLiteStore(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, src := range []struct {
		file string
		flow models.Flow
	}{
		{"exports.json", models.FlowExport},
		{"imports.json", models.FlowImport},
	} {
		records, err := readRecords(filepath.Join(dataDir, src.file))
		if err != nil {
			return fmt.Errorf("%s: %w", src.file, err)
		}
		if records == nil {
			log.Printf("%s: not found, skipping", src.file)
			continue
		}
		if err := store.ReplaceRecords(ctx, src.flow, records); err != nil {
			return fmt.Errorf("seed %s: %w", src.flow, err)
		}
		log.Printf("%s: loaded %d records", src.file, len(records))
	}

	predictions, err := os.ReadFile(filepath.Join(dataDir, "predictions.json"))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Print("predictions.json: not found, skipping")
	case err != nil:
		return fmt.Errorf("predictions.json: %w", err)
	default:
		if !json.Valid(predictions) {
			return errors.New("predictions.json: invalid JSON")
		}
		if err := store.PutDocument(ctx, "predictions", predictions); err != nil {
			return fmt.Errorf("store predictions: %w", err)
		}
		log.Print("predictions.json: stored")
	}

	return nil
}

func readRecords(path string) ([]models.TradeRecord, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var records []models.TradeRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return records, nil
}
