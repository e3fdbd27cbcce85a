package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestNewPatternsCommand(t *testing.T) {
	cmd := NewPatternsCommand()

	if cmd.Use != "patterns" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}
	if cmd.Flags().Lookup("output") == nil {
		t.Error("Missing flag: output")
	}
}

func TestNewDiagnoseCommand(t *testing.T) {
	cmd := NewDiagnoseCommand()

	if !strings.HasPrefix(cmd.Use, "diagnose") {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}
	if cmd.Flags().Lookup("sample") == nil {
		t.Error("Missing flag: sample")
	}
}

func TestNewValidateCommand(t *testing.T) {
	cmd := NewValidateCommand()

	if cmd.Use != "validate <config-file>" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}
	if !strings.Contains(cmd.Long, "Validate") {
		t.Error("Missing description in Long")
	}
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()

	if cmd.Use != "version" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}
}

func TestRunPatterns_TextOutput(t *testing.T) {
	out, err := runCommand(t, NewPatternsCommand())
	if err != nil {
		t.Fatalf("Patterns failed: %v", err)
	}

	checks := []string{
		"=== Election Event Patterns ===",
		" 1. role-switch",
		"11. zoo-client",
		"election-started",
		"Starting[103] as slave",
		"Patterns are tried in this order; the first match wins.",
	}
	for _, check := range checks {
		if !strings.Contains(out, check) {
			t.Errorf("Output missing %q", check)
		}
	}
}

func TestRunPatterns_JSONOutput(t *testing.T) {
	out, err := runCommand(t, NewPatternsCommand(), "-o", "json")
	if err != nil {
		t.Fatalf("Patterns failed: %v", err)
	}

	var patterns []JSONPattern
	if err := json.Unmarshal([]byte(out), &patterns); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}

	if len(patterns) != 11 {
		t.Fatalf("Pattern count = %d, want 11", len(patterns))
	}
	if patterns[0].Name != "role-switch" {
		t.Errorf("First pattern = %s, want role-switch", patterns[0].Name)
	}
	if !patterns[0].NeedsTimestamp {
		t.Error("role-switch should need a timestamp")
	}

	for _, p := range patterns {
		if p.Name == "tx-id-opened-log" && p.NeedsTimestamp {
			t.Error("tx-id-opened-log should not need a timestamp")
		}
		if p.Pattern == "" || p.Example == "" || p.Emits == "" {
			t.Errorf("Pattern %s has empty fields", p.Name)
		}
	}
}

func TestRunValidate_Success(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := writeLogFile(t, tmpDir, "messages.log", electionLog)
	configPath := writeFile(t, tmpDir, "cluster.yaml", "log_sources:\n  - "+logPath+"\n")

	out, err := runCommand(t, NewValidateCommand(), configPath)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	checks := []string{
		"Configuration valid!",
		"Log sources: 1 pattern(s)",
		"Output:      text",
		"  - " + logPath,
	}
	for _, check := range checks {
		if !strings.Contains(out, check) {
			t.Errorf("Output missing %q", check)
		}
	}
}

func TestRunValidate_MissingLogFile(t *testing.T) {
	// A source that matches nothing is a warning, not a failure.
	tmpDir := t.TempDir()
	configPath := writeFile(t, tmpDir, "cluster.yaml",
		"log_sources:\n  - /nonexistent/messages.log\n")

	out, err := runCommand(t, NewValidateCommand(), configPath)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !strings.Contains(out, "(missing)") {
		t.Errorf("Expected missing marker, got: %s", out)
	}
}

func TestRunValidate_InvalidOutput(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeFile(t, tmpDir, "cluster.yaml", "output: xml\n")

	_, err := runCommand(t, NewValidateCommand(), configPath)
	if err == nil {
		t.Fatal("Expected error for invalid output value")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	_, err := runCommand(t, NewValidateCommand(), "/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestRunVersion(t *testing.T) {
	out, err := runCommand(t, NewVersionCommand())
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}

	if out != "electionhistory "+Version+"\n" {
		t.Errorf("Output = %q", out)
	}
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	// A nil slice would make cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	var buf bytes.Buffer
	cmd.SetOut(&buf)

	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}
