package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/sbilibin2017/gw-transaction-generator/internal/models"
)

// weightTolerance is how far the sum of type weights may drift from 1.
const weightTolerance = 1e-6

var (
	// ErrInvalidConfig is returned when a generator configuration cannot be used.
	ErrInvalidConfig = errors.New("invalid generator config")
)

var validate = validator.New()

// ValidateConfig checks a generator configuration before any generation happens.
func ValidateConfig(cfg models.GeneratorConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	seen := make(map[models.TransactionType]struct{}, len(cfg.Types))
	var sum float64
	for _, p := range cfg.Types {
		if _, ok := seen[p.Type]; ok {
			return fmt.Errorf("%w: duplicate transaction type %q", ErrInvalidConfig, p.Type)
		}
		seen[p.Type] = struct{}{}
		sum += p.Weight
	}
	if math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("%w: transaction type weights sum to %g, want 1", ErrInvalidConfig, sum)
	}

	return nil
}
