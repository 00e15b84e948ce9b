// Package batch generates many identifiers concurrently.
package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrDuplicate is returned when a batch contains the same identifier twice.
var ErrDuplicate = errors.New("duplicate identifier")

// Generator produces identifiers.
type Generator interface {
	Generate() (string, error)
}

// Service splits a batch across a bounded number of goroutines that share a
// single Generator.
type Service struct {
	gen     Generator
	workers int
	log     zerolog.Logger
}

// New creates a batch Service. workers below 1 is treated as 1.
func New(gen Generator, workers int, log zerolog.Logger) *Service {
	return &Service{
		gen:     gen,
		workers: max(workers, 1),
		log:     log,
	}
}

// Generate returns n identifiers in slot order. It stops at the first
// generation error or when ctx is cancelled, and verifies that the batch has
// no duplicates before returning.
func (s *Service) Generate(ctx context.Context, n int) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("count must not be negative, got %d", n)
	}

	start := time.Now()
	ids := make([]string, n)

	workers := min(s.workers, max(n, 1))
	chunk := (n + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}

				id, err := s.gen.Generate()
				if err != nil {
					return fmt.Errorf("generate identifier %d: %w", i, err)
				}
				ids[i] = id
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := checkUnique(ids); err != nil {
		return nil, err
	}

	s.log.Debug().
		Int("count", n).
		Int("workers", workers).
		Dur("elapsed", time.Since(start)).
		Msg("generated batch")

	return ids, nil
}

func checkUnique(ids []string) error {
	seen := make(map[string]int, len(ids))
	for i, id := range ids {
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("%w %q at positions %d and %d", ErrDuplicate, id, prev, i)
		}
		seen[id] = i
	}
	return nil
}
