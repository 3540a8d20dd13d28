package dictionary

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"markwright/internal/checker"
	"markwright/internal/languagetool"
)

// DefaultPath is where the word list lives relative to the working directory.
const DefaultPath = ".markwright/dictionary.txt"

// Dictionary is a set of words the user has accepted as correctly spelled.
// It is backed by a plain text file with one word per line.
type Dictionary struct {
	path  string
	words map[string]struct{}
}

// Load reads the word list at path. A missing file yields an empty
// dictionary so first runs need no setup. Words are stored lowercase.
func Load(path string) (*Dictionary, error) {
	d := &Dictionary{
		path:  path,
		words: make(map[string]struct{}),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		word := strings.TrimSpace(line)
		if word == "" {
			continue
		}
		d.words[strings.ToLower(word)] = struct{}{}
	}

	return d, nil
}

// Contains reports whether word is in the dictionary, ignoring case.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of words in the dictionary.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Words returns the dictionary contents sorted alphabetically.
func (d *Dictionary) Words() []string {
	words := make([]string, 0, len(d.words))
	for w := range d.words {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Add stores word and rewrites the backing file with the full sorted list.
// It reports whether the word was new. The parent directory is created if
// it does not exist yet.
func (d *Dictionary) Add(word string) (bool, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return false, errors.New("cannot add an empty word")
	}

	if _, ok := d.words[word]; ok {
		return false, nil
	}
	d.words[word] = struct{}{}

	if dir := filepath.Dir(d.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, fmt.Errorf("failed to create dictionary directory: %w", err)
		}
	}

	content := strings.Join(d.Words(), "\n") + "\n"
	if err := os.WriteFile(d.path, []byte(content), 0644); err != nil {
		return false, fmt.Errorf("failed to write dictionary: %w", err)
	}

	return true, nil
}

// FilterReport drops spelling findings for accepted words from report.
// Grammar and style findings always pass through, as do spelling findings
// for words not in the dictionary.
func (d *Dictionary) FilterReport(report *checker.Report) {
	report.Matches = d.filterMatches(report.Matches)
}

func (d *Dictionary) filterMatches(matches []languagetool.Match) []languagetool.Match {
	if len(d.words) == 0 {
		return matches
	}

	kept := make([]languagetool.Match, 0, len(matches))
	for _, m := range matches {
		if m.TypeName == languagetool.TypeNameUnknownWord && d.Contains(m.Span()) {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}
