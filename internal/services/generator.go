package services

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-transaction-generator/internal/models"
)

var (
	// ErrUnknownTransactionType is returned when an amount is requested for a type missing from the config.
	ErrUnknownTransactionType = errors.New("unknown transaction type")
)

// GeneratorOption customizes a Generator.
type GeneratorOption func(*Generator)

// WithClock replaces time.Now as the source of generation time.
func WithClock(clock func() time.Time) GeneratorOption {
	return func(g *Generator) {
		if clock != nil {
			g.clock = clock
		}
	}
}

// Generator produces single synthetic transactions.
// It is not safe for concurrent use: the random source is shared by all draws.
type Generator struct {
	cfg      models.GeneratorConfig
	rng      *rand.Rand
	clock    func() time.Time
	profiles map[models.TransactionType]models.TypeProfile
}

// NewGenerator validates cfg and returns a Generator drawing from rng.
func NewGenerator(cfg models.GeneratorConfig, rng *rand.Rand, opts ...GeneratorOption) (*Generator, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	cfg.Cities = slices.Clone(cfg.Cities)
	cfg.Operators = slices.Clone(cfg.Operators)
	cfg.UserPrefixes = slices.Clone(cfg.UserPrefixes)
	cfg.Types = slices.Clone(cfg.Types)
	if cfg.IDScheme == "" {
		cfg.IDScheme = models.IDSchemeTimestamp
	}

	g := &Generator{
		cfg:      cfg,
		rng:      rng,
		clock:    time.Now,
		profiles: make(map[models.TransactionType]models.TypeProfile, len(cfg.Types)),
	}
	for _, p := range cfg.Types {
		g.profiles[p.Type] = p
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// ChooseTransactionType draws a type according to the configured weights.
func (g *Generator) ChooseTransactionType() models.TransactionType {
	u := g.rng.Float64()
	var cumulative float64
	for _, p := range g.cfg.Types {
		cumulative += p.Weight
		if u < cumulative {
			return p.Type
		}
	}

	// Rounding left u above the last cumulative bound.
	for i := len(g.cfg.Types) - 1; i >= 0; i-- {
		if g.cfg.Types[i].Weight > 0 {
			return g.cfg.Types[i].Type
		}
	}
	return g.cfg.Types[len(g.cfg.Types)-1].Type
}

// GenerateAmount draws a log-normal amount for t, rounded and clamped to the type's bounds.
// The location parameter is ln(min + (max-min)/3).
func (g *Generator) GenerateAmount(t models.TransactionType) (int64, error) {
	p, ok := g.profiles[t]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTransactionType, t)
	}

	lo, hi := float64(p.MinAmount), float64(p.MaxAmount)
	mu := math.Log(lo + (hi-lo)/3)
	amount := math.RoundToEven(math.Exp(mu + g.cfg.AmountSigma*g.rng.NormFloat64()))

	switch {
	case amount < lo:
		return p.MinAmount, nil
	case amount > hi:
		return p.MaxAmount, nil
	default:
		return int64(amount), nil
	}
}

// GenerateUserID returns user_<prefix><7 digits>.
func (g *Generator) GenerateUserID() string {
	prefix := g.cfg.UserPrefixes[g.rng.IntN(len(g.cfg.UserPrefixes))]
	number := 1_000_000 + g.rng.IntN(9_000_000)
	return fmt.Sprintf("user_%s%d", prefix, number)
}

// GenerateTransactionID returns a new identifier according to the configured scheme.
// Timestamp identifiers are only probabilistically unique.
func (g *Generator) GenerateTransactionID() (string, error) {
	if g.cfg.IDScheme == models.IDSchemeUUID {
		id, err := uuid.NewRandomFromReader(randReader{rng: g.rng})
		if err != nil {
			return "", err
		}
		return id.String(), nil
	}
	return fmt.Sprintf("TXN%d_%d", g.clock().UnixMilli(), 1000+g.rng.IntN(9000)), nil
}

// GenerateRecord returns a fully populated transaction.
// Timestamp is the current clock value; BatchAssembler moves it into the lookback window.
func (g *Generator) GenerateRecord() (models.Transaction, error) {
	txnType := g.ChooseTransactionType()
	amount, err := g.GenerateAmount(txnType)
	if err != nil {
		return models.Transaction{}, err
	}

	city := g.cfg.Cities[g.rng.IntN(len(g.cfg.Cities))]
	operator := g.cfg.Operators[g.rng.IntN(len(g.cfg.Operators))]
	userID := g.GenerateUserID()

	id, err := g.GenerateTransactionID()
	if err != nil {
		return models.Transaction{}, err
	}

	return models.Transaction{
		TransactionID:   id,
		Timestamp:       g.clock(),
		UserID:          userID,
		Amount:          amount,
		City:            city,
		TransactionType: txnType,
		Operator:        operator,
		Status:          models.StatusCompleted,
	}, nil
}

// randReader exposes a seeded source as an io.Reader so UUIDs stay reproducible.
type randReader struct {
	rng *rand.Rand
}

func (r randReader) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := r.rng.Uint64()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}
