package languagetool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"markwright/internal/contextutil"
)

// DefaultBaseURL is the hosted checking endpoint used when no override is
// configured.
const DefaultBaseURL = "https://api.languagetoolplus.com/v2/check"

// maxReplacements caps the suggestions carried per finding; the API can
// return dozens and only the first few are worth showing.
const maxReplacements = 5

var (
	// ErrTransport is returned when the request produced no usable response.
	ErrTransport = errors.New("languagetool: request failed")
	// ErrResponseParse is returned when a response arrived but its status or
	// shape is unusable.
	ErrResponseParse = errors.New("languagetool: unexpected response")
)

// Client checks text against a LanguageTool-compatible HTTP API.
type Client struct {
	BaseURL  string
	Language string
	Level    string
	http     *resty.Client
}

// NewClient creates a checking client. An empty baseURL falls back to
// DefaultBaseURL; a zero timeout leaves requests bounded only by the caller's
// context.
func NewClient(baseURL, language, level string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:  baseURL,
		Language: language,
		Level:    level,
		http:     resty.New().SetTimeout(timeout),
	}
}

// Check submits one segment of text as a form-encoded POST and returns its
// findings normalized for aggregation. Failures are classified as
// ErrTransport or ErrResponseParse.
func (c *Client) Check(ctx context.Context, text string) ([]Match, error) {
	logger := contextutil.LoggerFromContext(ctx)

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetFormData(map[string]string{
			"text":     text,
			"language": c.Language,
			"level":    c.Level,
		}).
		Post(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrResponseParse, resp.StatusCode(), resp.String())
	}

	var decoded Response
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseParse, err)
	}

	logger.DebugContext(ctx, "check response received",
		"engine", decoded.Software.Name,
		"language", decoded.Language.Code,
		"matches", len(decoded.Matches),
		"sentence_ranges", len(decoded.SentenceRanges),
		"incomplete_results", decoded.Warnings.IncompleteResults)

	return normalizeMatches(decoded.Matches), nil
}

// normalizeMatches flattens wire matches, capping replacement suggestions at
// maxReplacements in their original order.
func normalizeMatches(in []ResponseMatch) []Match {
	matches := make([]Match, 0, len(in))
	for _, m := range in {
		n := len(m.Replacements)
		if n > maxReplacements {
			n = maxReplacements
		}
		replacements := make([]string, 0, n)
		for _, r := range m.Replacements[:n] {
			replacements = append(replacements, r.Value)
		}

		matches = append(matches, Match{
			ContextText:     m.Context.Text,
			ContextOffset:   m.Context.Offset,
			ContextLength:   m.Context.Length,
			Message:         m.Message,
			ShortMessage:    m.ShortMessage,
			Sentence:        m.Sentence,
			RuleDescription: m.Rule.Description,
			TypeName:        m.Type.TypeName,
			Replacements:    replacements,
		})
	}
	return matches
}
