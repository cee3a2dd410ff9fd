package repositories

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/sbilibin2017/gw-transaction-generator/internal/logger"
	"github.com/sbilibin2017/gw-transaction-generator/internal/models"
)

// ctxCheckEvery is how many rows are processed between context checks.
const ctxCheckEvery = 1000

// CSVRepository stores datasets as comma-separated files.
// Paths ending in .gz are gzip-compressed.
type CSVRepository struct {
	loc *time.Location // location timestamps are read in
}

// NewCSVRepository creates a new repository. A nil location means time.Local.
func NewCSVRepository(loc *time.Location) *CSVRepository {
	if loc == nil {
		loc = time.Local
	}
	return &CSVRepository{loc: loc}
}

// Write stores txns at path with a header row and returns the size of the file on disk.
// Missing parent directories are created.
func (r *CSVRepository) Write(ctx context.Context, path string, txns []models.Transaction) (size int64, err error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			size, err = 0, cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	var (
		w  io.Writer = f
		gz *gzip.Writer
	)
	if isGzip(path) {
		gz = gzip.NewWriter(f)
		w = gz
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(models.CSVHeader); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}
	for i, t := range txns {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		if err := cw.Write(toRecord(t)); err != nil {
			return 0, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flush csv: %w", err)
	}

	if gz != nil {
		if err := gz.Close(); err != nil {
			return 0, fmt.Errorf("close gzip: %w", err)
		}
	}

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}

	logger.Log.Debugw("csv written", "path", path, "rows", len(txns), "bytes", info.Size())
	return info.Size(), nil
}

// Read loads a dataset previously written by Write.
// Columns are located by header name; amounts such as "1500.0" are accepted when integral.
// Timestamps carry no zone and are read in the repository's location, which must match the writer's.
func (r *CSVRepository) Read(ctx context.Context, path string) ([]models.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var src io.Reader = f
	if isGzip(path) {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	cr := csv.NewReader(src)
	headers, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := toIndex(headers)
	for _, k := range models.CSVHeader {
		if _, ok := col[k]; !ok {
			return nil, fmt.Errorf("missing column: %s", k)
		}
	}

	var out []models.Transaction
	for row := 1; ; row++ {
		if row%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}

		txn, err := r.fromRecord(rec, col)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		out = append(out, txn)
	}
	return out, nil
}

func (r *CSVRepository) fromRecord(rec []string, col map[string]int) (models.Transaction, error) {
	id := rec[col["transaction_id"]]

	ts, err := time.ParseInLocation(models.TimestampLayout, rec[col["timestamp"]], r.loc)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction_id=%s timestamp parse: %w", id, err)
	}

	amount, err := parseAmount(rec[col["amount"]])
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction_id=%s amount parse: %w", id, err)
	}

	typ := models.TransactionType(rec[col["transaction_type"]])
	if !typ.IsValid() {
		return models.Transaction{}, fmt.Errorf("transaction_id=%s invalid type: %s", id, typ)
	}

	return models.Transaction{
		TransactionID:   id,
		Timestamp:       ts,
		UserID:          rec[col["user_id"]],
		Amount:          amount,
		City:            rec[col["city"]],
		TransactionType: typ,
		Operator:        rec[col["operator"]],
		Status:          rec[col["status"]],
	}, nil
}

func toRecord(t models.Transaction) []string {
	return []string{
		t.TransactionID,
		t.Timestamp.Format(models.TimestampLayout),
		t.UserID,
		strconv.FormatInt(t.Amount, 10),
		t.City,
		string(t.TransactionType),
		t.Operator,
		t.Status,
	}
}

func toIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("amount %q is not a whole number", s)
	}
	return int64(f), nil
}

func isGzip(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gz")
}
