package service

import (
	"context"
	"errors"

	"github.com/agbru/snfscalc/internal/config"
	"github.com/agbru/snfscalc/internal/factor"
	"github.com/agbru/snfscalc/internal/u128"
)

var (
	// ErrModulusTooLarge is returned when n exceeds the configured bit limit.
	ErrModulusTooLarge = errors.New("maximum modulus size exceeded")
)

// Service defines the interface for factorization services.
// This abstraction enables dependency injection and easier testing/mocking.
type Service interface {
	// Factorize runs the named attacker against the modulus n.
	//
	// Parameters:
	//   - ctx: The context for cancellation.
	//   - algoName: The name of the algorithm to use.
	//   - n: The modulus to factor.
	//
	// Returns:
	//   - factor.Result: The factor pair and run statistics.
	//   - error: An error if validation or the attack fails.
	Factorize(ctx context.Context, algoName string, n u128.Uint128) (factor.Result, error)
}

// FactorizerService handles the core logic for running factorization attacks.
// It centralizes validation, attacker retrieval, and execution options.
// Implements the Service interface.
type FactorizerService struct {
	factory factor.AttackerFactory
	config  config.AppConfig
	maxBits int
}

// Ensure FactorizerService implements Service interface.
var _ Service = (*FactorizerService)(nil)

// NewFactorizerService creates a new instance of FactorizerService.
//
// Parameters:
//   - factory: The factory to retrieve attackers from.
//   - cfg: The application configuration.
//   - maxBits: The maximum allowed bit length of n (0 for no limit).
func NewFactorizerService(factory factor.AttackerFactory, cfg config.AppConfig, maxBits int) *FactorizerService {
	return &FactorizerService{
		factory: factory,
		config:  cfg,
		maxBits: maxBits,
	}
}

// Factorize retrieves the requested attacker and executes the attack with the
// configured options. It also performs validation on the input n.
//
// Parameters:
//   - ctx: The context for cancellation.
//   - algoName: The name of the algorithm to use.
//   - n: The modulus to factor.
//
// Returns:
//   - factor.Result: The factor pair and run statistics.
//   - error: An error if validation or the attack fails.
func (s *FactorizerService) Factorize(ctx context.Context, algoName string, n u128.Uint128) (factor.Result, error) {
	// Validation
	if s.maxBits > 0 && n.BitLen() > s.maxBits {
		return factor.Result{}, ErrModulusTooLarge
	}

	// Retrieve Algorithm
	att, err := s.factory.Get(algoName)
	if err != nil {
		return factor.Result{}, err
	}

	// Attack with centralized options
	// Note: We pass nil for progressChan as this is intended for
	// synchronous/service usage where progress updates are not rendered.
	return att.Factorize(ctx, nil, 0, n, s.config.ToAttackOptions())
}
