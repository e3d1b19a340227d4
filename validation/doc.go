// Package validation validates configuration structs using struct tags,
// backed by go-playground/validator. Failures are reported as structured
// errors with per-field details.
package validation
