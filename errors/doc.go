// Package errors provides the error taxonomy for command pipelines.
// Errors are structured values with machine-readable codes; they travel
// through a chain as data rather than as raised control flow.
package errors
