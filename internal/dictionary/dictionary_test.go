package dictionary

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"markwright/internal/checker"
	"markwright/internal/languagetool"
)

func spellingMatch(context string, offset, length int) languagetool.Match {
	return languagetool.Match{
		ContextText:     context,
		ContextOffset:   offset,
		ContextLength:   length,
		Message:         "Possible spelling mistake found.",
		ShortMessage:    "Spelling mistake",
		RuleDescription: "Possible spelling mistake",
		TypeName:        languagetool.TypeNameUnknownWord,
	}
}

func TestLoad_MissingFile(t *testing.T) {
	d, err := Load(filepath.Join(t.TempDir(), "nope", "dictionary.txt"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if d.Len() != 0 {
		t.Errorf("Load() missing file Len() = %d, want 0", d.Len())
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.txt")
	content := "kubernetes\nGoroutine\n\n  whitespace  \n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write dictionary file: %v", err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"goroutine", "kubernetes", "whitespace"}
	if got := d.Words(); !reflect.DeepEqual(got, want) {
		t.Errorf("Words() = %v, want %v", got, want)
	}
}

func TestDictionary_Contains(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.txt")
	if err := os.WriteFile(path, []byte("goroutine\n"), 0644); err != nil {
		t.Fatalf("Failed to write dictionary file: %v", err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name string
		word string
		want bool
	}{
		{
			name: "exact match",
			word: "goroutine",
			want: true,
		},
		{
			name: "mixed case match",
			word: "GoRoutine",
			want: true,
		},
		{
			name: "unknown word",
			word: "channel",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Contains(tt.word); got != tt.want {
				t.Errorf("Contains(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestDictionary_Add(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dictionary.txt")

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	added, err := d.Add("Zettelkasten")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if !added {
		t.Error("Add() new word = false, want true")
	}

	added, err = d.Add("zettelkasten")
	if err != nil {
		t.Fatalf("Add() duplicate error = %v", err)
	}
	if added {
		t.Error("Add() duplicate = true, want false")
	}

	if _, err := d.Add("  "); err == nil {
		t.Error("Add() blank word expected error, got nil")
	}

	if _, err := d.Add("anki"); err != nil {
		t.Fatalf("Add() second word error = %v", err)
	}

	// Reload and confirm the file was written sorted and lowercased
	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() after Add error = %v", err)
	}
	want := []string{"anki", "zettelkasten"}
	if got := reloaded.Words(); !reflect.DeepEqual(got, want) {
		t.Errorf("Words() after reload = %v, want %v", got, want)
	}
}

func TestDictionary_FilterReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.txt")
	if err := os.WriteFile(path, []byte("zettelkasten\n"), 0644); err != nil {
		t.Fatalf("Failed to write dictionary file: %v", err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	accepted := spellingMatch("My Zettelkasten grows.", 3, 12)
	unknown := spellingMatch("It has fooxbar inside.", 7, 7)
	grammar := languagetool.Match{
		ContextText:   "My Zettelkasten grow.",
		ContextOffset: 16,
		ContextLength: 4,
		Message:       "Use 'grows' with a singular subject.",
		TypeName:      "Other",
	}

	report := &checker.Report{
		Matches: []languagetool.Match{accepted, unknown, grammar},
	}

	d.FilterReport(report)

	want := []languagetool.Match{unknown, grammar}
	if !reflect.DeepEqual(report.Matches, want) {
		t.Errorf("FilterReport() matches = %+v, want %+v", report.Matches, want)
	}
}

func TestDictionary_FilterReport_EmptyDictionary(t *testing.T) {
	d, err := Load(filepath.Join(t.TempDir(), "dictionary.txt"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	matches := []languagetool.Match{spellingMatch("A fooxbar here.", 2, 7)}
	report := &checker.Report{Matches: matches}

	d.FilterReport(report)

	if !reflect.DeepEqual(report.Matches, matches) {
		t.Errorf("FilterReport() with empty dictionary changed matches: %+v", report.Matches)
	}
}
