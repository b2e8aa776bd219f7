package tracing

// Span names.
const (
	SpanSubmit = "recipe.submit"
	SpanSeed   = "recipe.seed"
)

// Span attribute keys.
const (
	AttrSubmissionID  = "submission.id"
	AttrOutcome       = "submission.outcome"
	AttrLabel         = "recipe.label"
	AttrExistingLabel = "recipe.existing_label"
	AttrRegistrySize  = "registry.size"
	AttrSeedCount     = "seed.count"
	AttrSeedRejected  = "seed.rejected"
)
