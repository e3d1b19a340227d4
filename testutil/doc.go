// Package testutil provides helpers for tests that spawn real processes:
// skipping when a required binary is missing, writing throwaway executable
// scripts, and draining streams.
package testutil
