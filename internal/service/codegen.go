package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sefazor/groupslot-backend/internal/apperror"
	"github.com/sefazor/groupslot-backend/internal/repository"
	"github.com/sefazor/groupslot-backend/pkg/utils"
)

// CodeGenerator produces short random codes that must be unique within one
// collection. The number of attempts is bounded; running out is reported as
// CodeSpaceExhausted instead of looping forever.
type CodeGenerator struct {
	alphabet    string
	length      int
	maxAttempts int
	random      func(alphabet string, length int) (string, error)
}

func NewCodeGenerator(length, maxAttempts int) *CodeGenerator {
	return &CodeGenerator{
		alphabet:    utils.CodeCharset,
		length:      length,
		maxAttempts: maxAttempts,
		random:      utils.GenerateFromAlphabet,
	}
}

// Generate returns a code that exists reports as free.
func (g *CodeGenerator) Generate(ctx context.Context, exists func(ctx context.Context, code string) (bool, error)) (string, error) {
	return g.Claim(ctx, exists, func(context.Context, string) error { return nil })
}

// Claim generates a free code and hands it to claim, which persists it. A
// duplicate-key error from claim means another request took the code between
// the check and the write; that counts as a collision and another code is tried.
func (g *CodeGenerator) Claim(
	ctx context.Context,
	exists func(ctx context.Context, code string) (bool, error),
	claim func(ctx context.Context, code string) error,
) (string, error) {
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		code, err := g.random(g.alphabet, g.length)
		if err != nil {
			return "", apperror.NewInternal("failed to generate code", err)
		}

		taken, err := exists(ctx, code)
		if err != nil {
			return "", apperror.NewDatabaseError("failed to check code", err)
		}
		if taken {
			continue
		}

		err = claim(ctx, code)
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, repository.ErrDuplicateKey) {
			return "", err
		}
	}
	return "", apperror.NewCodeSpaceExhausted(fmt.Errorf("no free code of length %d after %d attempts", g.length, g.maxAttempts))
}
