package process_test

import (
	"testing"

	"github.com/Jonathas-Conceicao/pipers/errors"
	"github.com/Jonathas-Conceicao/pipers/process"
)

func TestParseSingleToken(t *testing.T) {
	cmd, err := process.Parse("ls")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Binary != "ls" || len(cmd.Args) != 0 {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestParseWithArgs(t *testing.T) {
	cmd, err := process.Parse("grep -v usr /etc/passwd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Binary != "grep" {
		t.Fatalf("expected binary 'grep', got %q", cmd.Binary)
	}
	want := []string{"-v", "usr", "/etc/passwd"}
	if len(cmd.Args) != len(want) {
		t.Fatalf("expected %d args, got %v", len(want), cmd.Args)
	}
	for i, arg := range want {
		if cmd.Args[i] != arg {
			t.Errorf("arg %d: expected %q, got %q", i, arg, cmd.Args[i])
		}
	}
}

func TestParseCollapsesWhitespace(t *testing.T) {
	cmd, err := process.Parse("  head \t -c \n 1  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Binary != "head" || len(cmd.Args) != 2 {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n "} {
		_, err := process.Parse(input)
		if err == nil {
			t.Fatalf("expected error for %q", input)
		}
		if !errors.HasCode(err, errors.ErrCodeEmptyCommand) {
			t.Fatalf("expected EMPTY_COMMAND for %q, got %v", input, err)
		}
	}
}

func TestCommandString(t *testing.T) {
	cmd := process.Command{Binary: "grep", Args: []string{"usr"}}
	if cmd.String() != "grep usr" {
		t.Fatalf("unexpected string: %q", cmd.String())
	}
	cmd = process.Command{Binary: "ls"}
	if cmd.String() != "ls" {
		t.Fatalf("unexpected string: %q", cmd.String())
	}
}
