package parser

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/doeshing/intentshell/internal/domain"
)

// Result bundles one full parse of an input line.
type Result struct {
	Candidates []domain.ScoredCandidate
	Entities   []domain.Entity
	Decision   domain.Decision
}

// Parse runs entity extraction and semantic matching concurrently (they are
// independent), then resolves the ranked candidates into a decision.
func Parse(ctx context.Context, input string, triggers []domain.Trigger) (Result, error) {
	var res Result

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.Entities = Extract(input)
		return nil
	})
	g.Go(func() error {
		res.Candidates = Score(input, triggers)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res.Decision = Resolve(res.Candidates)
	return res, nil
}
