// File: internal/generator/generator.go
package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/Volas171/handlegen/internal/identity"
	"go.uber.org/zap"
)

// ErrAttemptsExhausted is returned when every fetched title filtered to an empty name.
var ErrAttemptsExhausted = errors.New("no usable title within the attempt limit")

// TitleSource yields raw article titles.
type TitleSource interface {
	RandomTitle(ctx context.Context) (string, error)
}

// Recorder persists generated identities.
type Recorder interface {
	Append(id identity.Identity) error
}

// Service produces one identity per call to Generate.
type Service struct {
	titles      TitleSource
	gen         *identity.Generator
	recorder    Recorder
	maxAttempts int
	logger      *zap.Logger
}

// New wires a Service. maxAttempts below one is treated as one.
func New(titles TitleSource, gen *identity.Generator, recorder Recorder, maxAttempts int, logger *zap.Logger) *Service {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		titles:      titles,
		gen:         gen,
		recorder:    recorder,
		maxAttempts: maxAttempts,
		logger:      logger.Named("generator"),
	}
}

// Generate fetches titles until one yields a non-empty name, records the
// resulting identity and returns it. Fetch and record errors are returned
// immediately; only empty names trigger another fetch.
func (s *Service) Generate(ctx context.Context) (identity.Identity, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return identity.Identity{}, err
		}

		raw, err := s.titles.RandomTitle(ctx)
		if err != nil {
			return identity.Identity{}, fmt.Errorf("fetching title: %w", err)
		}

		id, err := s.gen.Derive(raw)
		if errors.Is(err, identity.ErrEmptyName) {
			s.logger.Warn("Title has no usable characters, fetching another",
				zap.String("title", raw), zap.Int("attempt", attempt), zap.Int("max_attempts", s.maxAttempts))
			continue
		}
		if err != nil {
			return identity.Identity{}, fmt.Errorf("deriving identity: %w", err)
		}

		if err := s.recorder.Append(id); err != nil {
			return identity.Identity{}, fmt.Errorf("recording identity: %w", err)
		}

		s.logger.Info("Generated identity", zap.String("username", id.Username()), zap.String("title", raw))
		return id, nil
	}
	return identity.Identity{}, fmt.Errorf("%w (%d attempts)", ErrAttemptsExhausted, s.maxAttempts)
}

// GenerateN calls Generate count times, stopping at the first error.
func (s *Service) GenerateN(ctx context.Context, count int) ([]identity.Identity, error) {
	ids := make([]identity.Identity, 0, count)
	for range count {
		id, err := s.Generate(ctx)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
