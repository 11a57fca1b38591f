package service

import (
	"context"
	"errors"
	"testing"

	"github.com/agbru/snfscalc/internal/config"
	apperrors "github.com/agbru/snfscalc/internal/errors"
	"github.com/agbru/snfscalc/internal/factor"
	"github.com/agbru/snfscalc/internal/u128"
)

func testConfig() config.AppConfig {
	return config.AppConfig{Degree: 8, FactorBaseBound: 200, SearchWindow: 5000}
}

func TestServiceFactorize(t *testing.T) {
	t.Parallel()
	svc := NewFactorizerService(factor.NewDefaultFactory(), testConfig(), 128)

	res, err := svc.Factorize(context.Background(), "trial", u128.From64(10403))
	if err != nil {
		t.Fatalf("Factorize failed: %v", err)
	}
	if res.Factor.Cmp(u128.From64(101)) != 0 || res.Cofactor.Cmp(u128.From64(103)) != 0 {
		t.Errorf("result = %s x %s, want 101 x 103", res.Factor.String(), res.Cofactor.String())
	}
}

func TestServiceUnknownAlgorithm(t *testing.T) {
	t.Parallel()
	svc := NewFactorizerService(factor.NewDefaultFactory(), testConfig(), 128)
	if _, err := svc.Factorize(context.Background(), "ecm", u128.From64(15)); err == nil {
		t.Error("unknown algorithm accepted")
	}
}

func TestServiceModulusSizeLimit(t *testing.T) {
	t.Parallel()
	svc := NewFactorizerService(factor.NewDefaultFactory(), testConfig(), 16)

	// 17 bits, one past the limit.
	if _, err := svc.Factorize(context.Background(), "trial", u128.From64(1<<16)); !errors.Is(err, ErrModulusTooLarge) {
		t.Errorf("err = %v, want ErrModulusTooLarge", err)
	}

	// Exactly at the limit passes validation.
	if _, err := svc.Factorize(context.Background(), "trial", u128.From64((1<<16)-1)); errors.Is(err, ErrModulusTooLarge) {
		t.Error("modulus at the bit limit rejected")
	}
}

func TestServiceNoLimitWhenZero(t *testing.T) {
	t.Parallel()
	svc := NewFactorizerService(factor.NewDefaultFactory(), testConfig(), 0)
	res, err := svc.Factorize(context.Background(), "trial", u128.From64(1<<20))
	if err != nil {
		t.Fatalf("maxBits=0 rejected a modulus: %v", err)
	}
	if res.Factor.Cmp(u128.From64(2)) != 0 {
		t.Errorf("factor = %s, want 2 for an even modulus", res.Factor.String())
	}
}

func TestServicePropagatesAttackErrors(t *testing.T) {
	t.Parallel()
	svc := NewFactorizerService(factor.NewDefaultFactory(), testConfig(), 128)
	// A prime exhausts trial division.
	_, err := svc.Factorize(context.Background(), "trial", u128.From64(1_000_003))
	if !apperrors.IsNoFactor(err) {
		t.Errorf("err = %v, want a no-factor error", err)
	}
}
