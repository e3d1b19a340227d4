package process_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/Jonathas-Conceicao/pipers/errors"
	"github.com/Jonathas-Conceicao/pipers/process"
)

func TestStartCapturesStdout(t *testing.T) {
	h, err := process.Start(context.Background(), process.Command{
		Binary: "echo",
		Args:   []string{"hello"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := h.Output()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(string(out)) != "hello" {
		t.Fatalf("expected 'hello', got %q", out)
	}
	if h.ExitCode() != 0 {
		t.Fatalf("expected exit code 0, got %d", h.ExitCode())
	}
}

func TestStartAssignsStageID(t *testing.T) {
	a, err := process.Start(context.Background(), process.Command{Binary: "true"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := process.Start(context.Background(), process.Command{Binary: "true"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer a.Wait()
	defer b.Wait()

	if a.ID() == b.ID() {
		t.Fatal("expected distinct stage IDs")
	}
	if a.PID() <= 0 {
		t.Fatalf("expected a real pid, got %d", a.PID())
	}
}

func TestStartStdinWiring(t *testing.T) {
	h, err := process.Start(context.Background(), process.Command{
		Binary: "cat",
		Stdin:  strings.NewReader("from stdin"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := h.Output()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "from stdin" {
		t.Fatalf("expected 'from stdin', got %q", out)
	}
}

func TestStartSpawnFailure(t *testing.T) {
	_, err := process.Start(context.Background(), process.Command{
		Binary: "definitely-not-a-real-binary-2a7f",
	})
	if err == nil {
		t.Fatal("expected spawn failure")
	}
	if !errors.HasCode(err, errors.ErrCodeSpawnFailure) {
		t.Fatalf("expected SPAWN_FAILURE, got %v", err)
	}
}

func TestStartEmptyBinary(t *testing.T) {
	_, err := process.Start(context.Background(), process.Command{})
	if err == nil {
		t.Fatal("expected error for empty binary")
	}
	if !errors.HasCode(err, errors.ErrCodeEmptyCommand) {
		t.Fatalf("expected EMPTY_COMMAND, got %v", err)
	}
}

func TestTakeStdoutTransfersOwnership(t *testing.T) {
	h, err := process.Start(context.Background(), process.Command{
		Binary: "echo",
		Args:   []string{"once"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rc, err := h.TakeStdout()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if h.Stdout() != nil {
		t.Fatal("expected Stdout to be nil after take")
	}
	if _, err := h.TakeStdout(); !errors.HasCode(err, errors.ErrCodeNoOutputStream) {
		t.Fatalf("expected NO_OUTPUT_STREAM on second take, got %v", err)
	}

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	if strings.TrimSpace(string(data)) != "once" {
		t.Fatalf("expected 'once', got %q", data)
	}
	rc.Close()

	if err := h.Wait(); err != nil {
		t.Fatalf("unexpected wait error: %v", err)
	}
}

func TestStdoutPeekDoesNotConsume(t *testing.T) {
	h, err := process.Start(context.Background(), process.Command{
		Binary: "echo",
		Args:   []string{"peeked"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := h.Stdout()
	second := h.Stdout()
	if first == nil || second == nil {
		t.Fatal("expected a readable stdout alias")
	}
	if first != second {
		t.Fatal("expected repeated peeks to alias the same stream")
	}

	// The stream is still available for the real consumer.
	out, err := h.Output()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(string(out)) != "peeked" {
		t.Fatalf("expected 'peeked', got %q", out)
	}
}

func TestOutputAfterTakeJustWaits(t *testing.T) {
	h, err := process.Start(context.Background(), process.Command{
		Binary: "echo",
		Args:   []string{"gone"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rc, err := h.TakeStdout()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	io.Copy(io.Discard, rc)
	rc.Close()

	out, err := h.Output()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no output after take, got %q", out)
	}
}
