// Package recipebook is the application service the TUI and CLI talk to.
// It wraps the recipe registry with submission IDs, tracing, logging,
// outcome counters and change notifications.
package recipebook

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/recipebox/internal/config"
	"github.com/zjrosen/recipebox/internal/log"
	"github.com/zjrosen/recipebox/internal/pubsub"
	"github.com/zjrosen/recipebox/internal/recipe"
	"github.com/zjrosen/recipebox/internal/tracing"
)

// Submission is one processed submission: the registry's result plus the ID
// it was logged and traced under.
type Submission struct {
	ID     string
	Result recipe.SubmissionResult
	// Size is the registry size right after the submission.
	Size int
}

// Stats counts submission outcomes since the service was created.
type Stats struct {
	Accepted  int
	Blank     int
	Duplicate int
}

// Service owns the registry for the lifetime of the process.
type Service struct {
	registry *recipe.Registry
	tracer   trace.Tracer
	broker   *pubsub.Broker[Submission]
	newID    func() string

	mu    sync.Mutex
	stats Stats
}

// Option configures a Service.
type Option func(*Service)

// WithTracer sets the tracer used for submission spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithBroker sets the broker submissions are published on.
func WithBroker(broker *pubsub.Broker[Submission]) Option {
	return func(s *Service) {
		if broker != nil {
			s.broker = broker
		}
	}
}

// WithIDGenerator overrides submission ID generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New creates a service around an empty registry.
func New(opts ...Option) *Service {
	s := &Service{
		registry: recipe.NewRegistry(),
		tracer:   noop.NewTracerProvider().Tracer("recipebook"),
		broker:   pubsub.NewBroker[Submission](),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Broker returns the broker submissions are published on.
func (s *Service) Broker() *pubsub.Broker[Submission] {
	return s.broker
}

// Submit hands the raw input to the registry and records the outcome.
// Rejections are ordinary results and are logged at info level at most.
func (s *Service) Submit(ctx context.Context, label, imageRef string) Submission {
	id := s.newID()
	_, span := s.tracer.Start(ctx, tracing.SpanSubmit,
		trace.WithAttributes(attribute.String(tracing.AttrSubmissionID, id)),
	)
	defer span.End()

	result, size := s.registry.SubmitLen(label, imageRef)
	sub := Submission{ID: id, Result: result, Size: size}

	span.SetAttributes(
		attribute.String(tracing.AttrOutcome, result.Outcome.String()),
		attribute.Int(tracing.AttrRegistrySize, sub.Size),
	)

	s.mu.Lock()
	switch result.Outcome {
	case recipe.OutcomeAccepted:
		s.stats.Accepted++
	case recipe.OutcomeRejectedBlank:
		s.stats.Blank++
	case recipe.OutcomeRejectedDuplicate:
		s.stats.Duplicate++
	}
	s.mu.Unlock()

	switch result.Outcome {
	case recipe.OutcomeAccepted:
		span.SetAttributes(attribute.String(tracing.AttrLabel, result.Item.Label()))
		span.SetStatus(codes.Ok, "")
		log.Debug(log.CatRecipe, "Recipe added",
			"id", id, "label", result.Item.Label(), "size", sub.Size)
		s.broker.Publish(pubsub.AcceptedEvent, sub)
	case recipe.OutcomeRejectedDuplicate:
		span.SetAttributes(attribute.String(tracing.AttrExistingLabel, result.ExistingLabel))
		log.Info(log.CatRecipe, "Recipe rejected",
			"id", id, "reason", result.Outcome, "existing", result.ExistingLabel)
		s.broker.Publish(pubsub.RejectedEvent, sub)
	default:
		log.Info(log.CatRecipe, "Recipe rejected", "id", id, "reason", result.Outcome)
		s.broker.Publish(pubsub.RejectedEvent, sub)
	}

	return sub
}

// List returns the current recipes in insertion order.
func (s *Service) List() []recipe.Item {
	return s.registry.List()
}

// Len returns the number of recipes.
func (s *Service) Len() int {
	return s.registry.Len()
}

// Stats returns a copy of the outcome counters.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// SeedReport summarizes a Seed call.
type SeedReport struct {
	Accepted int
	Rejected []Submission
}

// Seed submits configured starter recipes in order through Submit.
func (s *Service) Seed(ctx context.Context, recipes []config.RecipeConfig) SeedReport {
	ctx, span := s.tracer.Start(ctx, tracing.SpanSeed,
		trace.WithAttributes(attribute.Int(tracing.AttrSeedCount, len(recipes))),
	)
	defer span.End()

	var report SeedReport
	for _, r := range recipes {
		sub := s.Submit(ctx, r.Label, r.Image)
		if sub.Result.Accepted() {
			report.Accepted++
			continue
		}
		report.Rejected = append(report.Rejected, sub)
		log.Warn(log.CatConfig, "Skipping starter recipe",
			"label", r.Label, "reason", sub.Result.Outcome)
	}

	span.SetAttributes(attribute.Int(tracing.AttrSeedRejected, len(report.Rejected)))
	return report
}
