package services

import (
	"context"
	"fmt"

	"github.com/sbilibin2017/gw-transaction-generator/internal/logger"
	"github.com/sbilibin2017/gw-transaction-generator/internal/models"
)

//go:generate mockgen -source=dataset.go -destination=mock_dataset_test.go -package=services

// TransactionAssembler builds ordered datasets.
type TransactionAssembler interface {
	Assemble(n int) ([]models.Transaction, error) // Returns n transactions sorted by timestamp
}

// TransactionWriter persists datasets.
type TransactionWriter interface {
	Write(ctx context.Context, path string, txns []models.Transaction) (int64, error) // Writes txns to path, returns bytes written
}

// DatasetService generates a dataset, summarizes it and hands it to a writer.
type DatasetService struct {
	assembler TransactionAssembler
	writer    TransactionWriter
}

// NewDatasetService creates a new DatasetService.
func NewDatasetService(assembler TransactionAssembler, writer TransactionWriter) *DatasetService {
	return &DatasetService{
		assembler: assembler,
		writer:    writer,
	}
}

// Generate assembles n transactions, writes them to path and returns their summary
// together with the size of the written file. A write error aborts the run.
func (s *DatasetService) Generate(ctx context.Context, n int, path string) (models.Summary, int64, error) {
	txns, err := s.assembler.Assemble(n)
	if err != nil {
		logger.Log.Errorw("failed to assemble transactions", "count", n, "error", err)
		return models.Summary{}, 0, err
	}

	summary := Summarize(txns)

	size, err := s.writer.Write(ctx, path, txns)
	if err != nil {
		logger.Log.Errorw("failed to write dataset", "path", path, "error", err)
		return models.Summary{}, 0, fmt.Errorf("write dataset %s: %w", path, err)
	}

	logger.Log.Infow("dataset written", "path", path, "count", summary.Count, "bytes", size)
	return summary, size, nil
}
