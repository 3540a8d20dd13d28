package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExecute_Version(t *testing.T) {
	err := Execute("1.0.0", "abc123", "markwright", []string{"--version"})
	if err != nil {
		t.Errorf("Expected no error for --version, got: %v", err)
	}
}

func TestExecute_Help(t *testing.T) {
	err := Execute("1.0.0", "abc123", "markwright", []string{"--help"})
	if err != nil {
		t.Errorf("Expected no error for --help, got: %v", err)
	}
}

func TestExecute_InvalidFlag(t *testing.T) {
	err := Execute("1.0.0", "abc123", "markwright", []string{"--invalid-flag"})
	if err == nil {
		t.Error("Expected error for invalid flag")
	}
}

func TestExecute_MissingInput(t *testing.T) {
	err := Execute("1.0.0", "abc123", "markwright", []string{})
	if err == nil {
		t.Error("Expected error when no input file is given")
	}
}

func TestExecute_Build(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "doc.md")
	output := filepath.Join(dir, "doc.html")
	if err := os.WriteFile(input, []byte("# Hello\n\nSome text.\n"), 0644); err != nil {
		t.Fatalf("Failed to write input file: %v", err)
	}

	err := Execute("1.0.0", "abc123", "markwright", []string{input, "--output", output})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if !strings.Contains(string(data), "<h1") {
		t.Error("Output is missing the rendered heading")
	}
}

func TestExecute_DictionaryAdd(t *testing.T) {
	dictPath := filepath.Join(t.TempDir(), "dictionary.txt")

	err := Execute("1.0.0", "abc123", "markwright", []string{"dictionary", "add", "goroutine", "--dictionary", dictPath})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := os.ReadFile(dictPath)
	if err != nil {
		t.Fatalf("Failed to read dictionary: %v", err)
	}
	if !strings.Contains(string(data), "goroutine") {
		t.Errorf("Dictionary should contain the added word, got %q", string(data))
	}
}

func TestRunMain_Success(t *testing.T) {
	exitCode := -1
	mockExit := func(code int) {
		exitCode = code
	}

	// --help should succeed
	runMain([]string{"markwright", "--help"}, mockExit)

	if exitCode != -1 {
		t.Errorf("Expected no exit call for --help, got exit code: %d", exitCode)
	}
}

func TestRunMain_Failure(t *testing.T) {
	exitCode := -1
	mockExit := func(code int) {
		exitCode = code
	}

	runMain([]string{"markwright", "--invalid"}, mockExit)

	if exitCode != 1 {
		t.Errorf("Expected exit code 1 for invalid flag, got: %d", exitCode)
	}
}
