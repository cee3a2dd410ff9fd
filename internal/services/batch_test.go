package services

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/sbilibin2017/gw-transaction-generator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_Properties(t *testing.T) {
	cfg := models.DefaultGeneratorConfig()
	b := NewBatchAssembler(newTestGenerator(t, cfg, 42))

	txns, err := b.Assemble(1000)
	require.NoError(t, err)
	require.Len(t, txns, 1000)

	bounds := map[models.TransactionType]models.TypeProfile{}
	for _, p := range cfg.Types {
		bounds[p.Type] = p
	}

	windowEnd := fixedNow.Truncate(time.Second)
	windowStart := windowEnd.Add(-7 * 24 * time.Hour)

	for i, txn := range txns {
		p, ok := bounds[txn.TransactionType]
		require.True(t, ok, "unexpected type %s", txn.TransactionType)
		assert.GreaterOrEqual(t, txn.Amount, p.MinAmount)
		assert.LessOrEqual(t, txn.Amount, p.MaxAmount)

		assert.False(t, txn.Timestamp.Before(windowStart), "timestamp %s before window", txn.Timestamp)
		assert.False(t, txn.Timestamp.After(windowEnd), "timestamp %s after window", txn.Timestamp)
		assert.Zero(t, txn.Timestamp.Sub(windowStart)%time.Hour, "offset must be whole hours")

		if i > 0 {
			assert.False(t, txn.Timestamp.Before(txns[i-1].Timestamp), "not sorted at %d", i)
		}
	}
}

func TestAssemble_CustomLookback(t *testing.T) {
	cfg := models.DefaultGeneratorConfig()
	cfg.LookbackDays = 1
	b := NewBatchAssembler(newTestGenerator(t, cfg, 5))

	txns, err := b.Assemble(300)
	require.NoError(t, err)

	windowStart := fixedNow.Add(-24 * time.Hour)
	for _, txn := range txns {
		assert.False(t, txn.Timestamp.Before(windowStart))
		assert.False(t, txn.Timestamp.After(fixedNow))
	}
}

func TestAssemble_HugeLookbackRejected(t *testing.T) {
	cfg := models.DefaultGeneratorConfig()
	cfg.LookbackDays = 200000

	// The window would overflow time.Duration, so the config never reaches Assemble.
	_, err := NewGenerator(cfg, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = NewGenerator(cfg, rand.New(rand.NewPCG(1, 1)))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestAssemble_InvalidCount(t *testing.T) {
	b := NewBatchAssembler(newTestGenerator(t, models.DefaultGeneratorConfig(), 1))

	for _, n := range []int{0, -5} {
		txns, err := b.Assemble(n)
		assert.ErrorIs(t, err, ErrInvalidCount)
		assert.Nil(t, txns)
	}
}

func TestAssemble_Progress(t *testing.T) {
	var calls [][2]int
	b := NewBatchAssembler(
		newTestGenerator(t, models.DefaultGeneratorConfig(), 1),
		WithProgress(func(done, total int) { calls = append(calls, [2]int{done, total}) }),
	)

	_, err := b.Assemble(1000)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{200, 1000}, {400, 1000}, {600, 1000}, {800, 1000}, {1000, 1000}}, calls)
}

func TestAssemble_ProgressDisabled(t *testing.T) {
	var called bool
	b := NewBatchAssembler(
		newTestGenerator(t, models.DefaultGeneratorConfig(), 1),
		WithProgress(func(done, total int) { called = true }),
		WithProgressEvery(0),
	)

	_, err := b.Assemble(500)
	require.NoError(t, err)
	assert.False(t, called)
}

func TestAssemble_StableOnEqualTimestamps(t *testing.T) {
	g := newTestGenerator(t, models.DefaultGeneratorConfig(), 9, WithClock(steppingClock(fixedNow)))
	b := NewBatchAssembler(g)

	txns, err := b.Assemble(2000)
	require.NoError(t, err)

	// The stepping clock makes the millisecond part of every id grow with generation order.
	for i := 1; i < len(txns); i++ {
		if !txns[i].Timestamp.Equal(txns[i-1].Timestamp) {
			continue
		}
		assert.Less(t, idMillis(t, txns[i-1].TransactionID), idMillis(t, txns[i].TransactionID))
	}
}

func TestAssemble_UniqueIDs(t *testing.T) {
	cfg := models.DefaultGeneratorConfig()

	// A frozen clock leaves only the 4-digit suffix to tell ids apart.
	loose, err := NewBatchAssembler(newTestGenerator(t, cfg, 42)).Assemble(3000)
	require.NoError(t, err)
	assert.Less(t, countUnique(loose), len(loose), "expected collisions without uniqueness check")

	cfg.UniqueIDs = true
	strict, err := NewBatchAssembler(newTestGenerator(t, cfg, 42)).Assemble(3000)
	require.NoError(t, err)
	assert.Equal(t, len(strict), countUnique(strict))
}

func TestAssemble_IDSpaceExhausted(t *testing.T) {
	cfg := models.DefaultGeneratorConfig()
	cfg.UniqueIDs = true

	_, err := NewBatchAssembler(newTestGenerator(t, cfg, 42)).Assemble(9001)
	assert.ErrorIs(t, err, ErrIDSpaceExhausted)
}

func TestAssemble_Deterministic(t *testing.T) {
	cfg := models.DefaultGeneratorConfig()

	first, err := NewBatchAssembler(newTestGenerator(t, cfg, 42)).Assemble(1000)
	require.NoError(t, err)
	second, err := NewBatchAssembler(newTestGenerator(t, cfg, 42)).Assemble(1000)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func idMillis(t *testing.T, id string) int64 {
	t.Helper()
	ms, _, ok := strings.Cut(strings.TrimPrefix(id, "TXN"), "_")
	require.True(t, ok, "unexpected id %q", id)
	v, err := strconv.ParseInt(ms, 10, 64)
	require.NoError(t, err)
	return v
}

func countUnique(txns []models.Transaction) int {
	ids := make(map[string]struct{}, len(txns))
	for _, txn := range txns {
		ids[txn.TransactionID] = struct{}{}
	}
	return len(ids)
}
