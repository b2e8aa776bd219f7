// Package recipe implements the domain layer for the recipe registry.
//
// The package contains only standard library code and has no knowledge of
// the terminal UI, configuration, logging or tracing. Callers hand it raw
// strings and get back a SubmissionResult describing what happened.
//
// # Core Types
//
// Item is an immutable (label, image reference) pair. Items are only ever
// created by a successful Registry.Submit.
//
// Registry is the ordered, duplicate-free collection of items. Labels are
// compared case-insensitively; image references are opaque and are never
// part of the identity check.
//
// SubmissionResult is the tagged outcome of one Submit call: accepted,
// rejected as blank, or rejected as a duplicate of an existing label.
// Rejections are ordinary values, never errors returned by the registry.
package recipe
