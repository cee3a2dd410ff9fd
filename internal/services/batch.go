package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sbilibin2017/gw-transaction-generator/internal/logger"
	"github.com/sbilibin2017/gw-transaction-generator/internal/models"
)

// DefaultProgressEvery is how many records are generated between progress reports.
const DefaultProgressEvery = 200

// maxIDAttempts bounds redraws of a colliding transaction ID.
const maxIDAttempts = 16

var (
	// ErrInvalidCount is returned when a batch size is not positive.
	ErrInvalidCount = errors.New("transaction count must be positive")
	// ErrIDSpaceExhausted is returned when no unique transaction ID could be drawn.
	ErrIDSpaceExhausted = errors.New("could not draw a unique transaction id")
)

// ProgressFunc is called with the number of records generated so far and the batch size.
type ProgressFunc func(done, total int)

// BatchOption customizes a BatchAssembler.
type BatchOption func(*BatchAssembler)

// WithProgress registers an observer for generation progress.
func WithProgress(fn ProgressFunc) BatchOption {
	return func(b *BatchAssembler) {
		b.progress = fn
	}
}

// WithProgressEvery sets the progress cadence. Non-positive values disable reporting.
func WithProgressEvery(every int) BatchOption {
	return func(b *BatchAssembler) {
		b.every = every
	}
}

// BatchAssembler builds timestamp-ordered datasets over a rolling lookback window.
type BatchAssembler struct {
	gen      *Generator
	progress ProgressFunc
	every    int
}

// NewBatchAssembler creates a BatchAssembler on top of gen.
func NewBatchAssembler(gen *Generator, opts ...BatchOption) *BatchAssembler {
	b := &BatchAssembler{
		gen:   gen,
		every: DefaultProgressEvery,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Assemble generates n transactions spread over the lookback window ending now,
// sorted by timestamp. Records sharing a timestamp keep their generation order.
func (b *BatchAssembler) Assemble(n int) ([]models.Transaction, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}

	lookbackHours := b.gen.cfg.LookbackDays * 24
	windowStart := b.gen.clock().Truncate(time.Second).Add(-time.Duration(lookbackHours) * time.Hour)

	var seen map[string]struct{}
	if b.gen.cfg.UniqueIDs {
		seen = make(map[string]struct{}, n)
	}

	txns := make([]models.Transaction, 0, n)
	for i := 0; i < n; i++ {
		txn, err := b.gen.GenerateRecord()
		if err != nil {
			logger.Log.Errorw("failed to generate transaction", "index", i, "error", err)
			return nil, err
		}

		if seen != nil {
			if txn.TransactionID, err = b.uniqueID(txn.TransactionID, seen); err != nil {
				logger.Log.Errorw("failed to draw unique transaction id", "index", i, "error", err)
				return nil, err
			}
		}

		offset := time.Duration(b.gen.rng.IntN(lookbackHours+1)) * time.Hour
		txn.Timestamp = windowStart.Add(offset)
		txns = append(txns, txn)

		if b.progress != nil && b.every > 0 && (i+1)%b.every == 0 {
			b.progress(i+1, n)
		}
	}

	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Timestamp.Before(txns[j].Timestamp)
	})

	logger.Log.Infow("transactions assembled",
		"count", len(txns),
		"window_start", windowStart.Format(models.TimestampLayout),
		"lookback_days", b.gen.cfg.LookbackDays,
	)
	return txns, nil
}

func (b *BatchAssembler) uniqueID(id string, seen map[string]struct{}) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			return id, nil
		}
		var err error
		if id, err = b.gen.GenerateTransactionID(); err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrIDSpaceExhausted, maxIDAttempts)
}
