package recipe

import (
	"strings"
	"sync"
)

// Registry holds the ordered collection of registered recipes.
//
// Submit serializes check-then-insert under a mutex so the case-insensitive
// uniqueness of labels holds even if the registry is shared across goroutines.
type Registry struct {
	mu    sync.Mutex
	items []Item
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		items: make([]Item, 0),
	}
}

// Submit trims both inputs and tries to append a new item.
//
// A blank label or image reference is rejected before the duplicate check.
// Labels collide when strings.EqualFold reports them equal. That is Unicode
// simple case folding, so folding variants such as final sigma "ς" and "σ",
// or "K" and the Kelvin sign, are the same label. Internal whitespace and
// accents are compared as-is.
func (r *Registry) Submit(rawLabel, rawImageRef string) SubmissionResult {
	result, _ := r.SubmitLen(rawLabel, rawImageRef)
	return result
}

// SubmitLen is Submit that also returns the registry size observed in the
// same critical section as the insert.
func (r *Registry) SubmitLen(rawLabel, rawImageRef string) (SubmissionResult, int) {
	label := strings.TrimSpace(rawLabel)
	imageRef := strings.TrimSpace(rawImageRef)

	r.mu.Lock()
	defer r.mu.Unlock()

	if label == "" || imageRef == "" {
		return rejectedBlank(), len(r.items)
	}
	if existing, ok := r.find(label); ok {
		return rejectedDuplicate(existing.label), len(r.items)
	}

	item := Item{label: label, imageRef: imageRef}
	r.items = append(r.items, item)
	return accepted(item), len(r.items)
}

// find returns the stored item whose label case-insensitively matches label.
// Caller must hold r.mu.
func (r *Registry) find(label string) (Item, bool) {
	for _, existing := range r.items {
		if strings.EqualFold(existing.label, label) {
			return existing, true
		}
	}
	return Item{}, false
}

// List returns a snapshot of the items in insertion order.
func (r *Registry) List() []Item {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

// Len returns the number of registered items.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Reset drops every item.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make([]Item, 0)
}
