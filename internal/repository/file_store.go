package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"TradePulse/internal/domain/models"
	xlogger "TradePulse/pkg/logger"
)

const (
	exportsFile     = "exports.json"
	importsFile     = "imports.json"
	predictionsFile = "predictions.json"
)

// FileStore reads pre-processed JSON arrays from a data directory. Files are
// re-read on every call so a refreshed data drop is picked up without a
// restart.
type FileStore struct {
	dir    string
	logger *xlogger.Logger
}

// NewFileStore creates a store over the given directory.
func NewFileStore(dir string, logger *xlogger.Logger) *FileStore {
	return &FileStore{dir: dir, logger: logger}
}

func (s *FileStore) Name() string { return "file" }

func (s *FileStore) Records(_ context.Context, flow models.Flow) ([]models.TradeRecord, error) {
	name := exportsFile
	if flow == models.FlowImport {
		name = importsFile
	}

	b, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		// Absent data is empty input, not a failure.
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var records []models.TradeRecord
	if err := json.Unmarshal(b, &records); err != nil {
		if s.logger != nil {
			s.logger.Warn("unparseable data file treated as empty",
				xlogger.String("file", name),
				xlogger.Error(err),
			)
		}
		return nil, nil
	}
	return records, nil
}

func (s *FileStore) StaticPredictions(_ context.Context) (json.RawMessage, bool, error) {
	b, err := os.ReadFile(filepath.Join(s.dir, predictionsFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if !json.Valid(b) {
		return nil, false, nil
	}
	return json.RawMessage(b), true, nil
}

func (s *FileStore) Close() error { return nil }
