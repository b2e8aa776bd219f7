package recipebook

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/recipebox/internal/config"
	"github.com/zjrosen/recipebox/internal/pubsub"
	"github.com/zjrosen/recipebox/internal/recipe"
	"github.com/zjrosen/recipebox/internal/tracing"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("sub-%d", n)
	}
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestService_Submit_Accepted(t *testing.T) {
	svc := New(WithIDGenerator(sequentialIDs()))

	sub := svc.Submit(context.Background(), "Pasta", "http://img/p.png")

	require.Equal(t, "sub-1", sub.ID)
	require.True(t, sub.Result.Accepted())
	require.Equal(t, 1, sub.Size)
	require.Len(t, svc.List(), 1)
	require.Equal(t, "Pasta", svc.List()[0].Label())
	require.Equal(t, Stats{Accepted: 1}, svc.Stats())
}

func TestService_Submit_CountsRejections(t *testing.T) {
	svc := New()
	ctx := context.Background()

	svc.Submit(ctx, "Pasta", "p.png")
	svc.Submit(ctx, "pasta", "q.png")
	svc.Submit(ctx, "", "q.png")
	svc.Submit(ctx, "Soup", " ")

	stats := svc.Stats()
	require.Equal(t, Stats{Accepted: 1, Blank: 2, Duplicate: 1}, stats)
	require.Equal(t, 1, svc.Len())
}

func TestService_Submit_ConcurrentSizesMatchInsertOrder(t *testing.T) {
	svc := New()
	const n = 30

	subs := make([]Submission, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			subs[i] = svc.Submit(context.Background(), fmt.Sprintf("recipe-%d", i), "img.png")
		}(i)
	}
	wg.Wait()

	items := svc.List()
	require.Len(t, items, n)
	for _, sub := range subs {
		require.True(t, sub.Result.Accepted())
		require.Equal(t, sub.Result.Item, items[sub.Size-1], "size is the item's position after insert")
	}
}

func TestService_Submit_DefaultIDsAreUnique(t *testing.T) {
	svc := New()

	a := svc.Submit(context.Background(), "A", "a.png")
	b := svc.Submit(context.Background(), "A", "a.png")

	require.NotEmpty(t, a.ID)
	require.NotEqual(t, a.ID, b.ID)
}

func TestService_Submit_PublishesEvents(t *testing.T) {
	broker := pubsub.NewBroker[Submission]()
	defer broker.Close()
	svc := New(WithBroker(broker))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := svc.Broker().Subscribe(ctx)

	svc.Submit(ctx, "Pasta", "p.png")
	svc.Submit(ctx, "PASTA", "p.png")

	expect := []struct {
		eventType pubsub.EventType
		outcome   recipe.Outcome
	}{
		{pubsub.AcceptedEvent, recipe.OutcomeAccepted},
		{pubsub.RejectedEvent, recipe.OutcomeRejectedDuplicate},
	}
	for _, want := range expect {
		select {
		case event := <-events:
			require.Equal(t, want.eventType, event.Type)
			require.Equal(t, want.outcome, event.Payload.Result.Outcome)
		case <-time.After(time.Second):
			require.FailNow(t, "timeout waiting for submission event")
		}
	}
}

func TestService_Submit_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	svc := New(WithTracer(tp.Tracer("test")), WithIDGenerator(sequentialIDs()))
	svc.Submit(context.Background(), "Pasta", "p.png")
	svc.Submit(context.Background(), "pasta", "p.png")

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	first := spans[0]
	require.Equal(t, tracing.SpanSubmit, first.Name())
	id, ok := attrValue(first.Attributes(), tracing.AttrSubmissionID)
	require.True(t, ok)
	require.Equal(t, "sub-1", id.AsString())
	outcome, _ := attrValue(first.Attributes(), tracing.AttrOutcome)
	require.Equal(t, "accepted", outcome.AsString())

	existing, ok := attrValue(spans[1].Attributes(), tracing.AttrExistingLabel)
	require.True(t, ok)
	require.Equal(t, "Pasta", existing.AsString())
}

func TestService_Seed(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	svc := New(WithTracer(tp.Tracer("test")))

	report := svc.Seed(context.Background(), []config.RecipeConfig{
		{Label: "Pasta", Image: "p.png"},
		{Label: "  Soup ", Image: " s.png "},
		{Label: "pasta", Image: "other.png"},
		{Label: "", Image: "x.png"},
	})

	require.Equal(t, 2, report.Accepted)
	require.Len(t, report.Rejected, 2)
	require.Equal(t, recipe.OutcomeRejectedDuplicate, report.Rejected[0].Result.Outcome)
	require.Equal(t, recipe.OutcomeRejectedBlank, report.Rejected[1].Result.Outcome)

	items := svc.List()
	require.Len(t, items, 2)
	require.Equal(t, "Soup", items[1].Label())
	require.Equal(t, "s.png", items[1].ImageRef())

	// Four submit spans parented under one seed span.
	spans := recorder.Ended()
	require.Len(t, spans, 5)
	seed := spans[len(spans)-1]
	require.Equal(t, tracing.SpanSeed, seed.Name())
	for _, s := range spans[:4] {
		require.Equal(t, seed.SpanContext().SpanID(), s.Parent().SpanID())
	}
}

func TestService_Seed_Empty(t *testing.T) {
	svc := New()

	report := svc.Seed(context.Background(), nil)

	require.Zero(t, report.Accepted)
	require.Empty(t, report.Rejected)
	require.Zero(t, svc.Len())
}
