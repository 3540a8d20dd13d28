package storage

import "time"

// CheckResult represents one cached grammar-check outcome in the database.
type CheckResult struct {
	ID          string    // UUID
	KeyHash     string    // SHA256 hex string over language, level, and segment text
	MatchesJSON string    // JSON-encoded []languagetool.Match
	CreatedAt   time.Time
}
