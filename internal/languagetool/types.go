package languagetool

// TypeNameUnknownWord is the match type the engine assigns to spelling
// findings. The dictionary filter keys off it.
const TypeNameUnknownWord = "UnknownWord"

// Response is the checking API's reply for one segment of text.
type Response struct {
	Software       Software        `json:"software"`
	Warnings       Warnings        `json:"warnings"`
	Language       Language        `json:"language"`
	Matches        []ResponseMatch `json:"matches"`
	SentenceRanges [][]int         `json:"sentenceRanges"`
}

// Software identifies the engine that produced a response.
type Software struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	BuildDate  string `json:"buildDate"`
	APIVersion int    `json:"apiVersion"`
	Premium    bool   `json:"premium"`
	Status     string `json:"status"`
}

// Warnings flags degraded responses.
type Warnings struct {
	IncompleteResults bool `json:"incompleteResults"`
}

// Language reports the language the text was checked as.
type Language struct {
	Name             string           `json:"name"`
	Code             string           `json:"code"`
	DetectedLanguage DetectedLanguage `json:"detectedLanguage"`
}

// DetectedLanguage is the engine's own guess at the text's language.
type DetectedLanguage struct {
	Name       string  `json:"name"`
	Code       string  `json:"code"`
	Confidence float64 `json:"confidence"`
}

// ResponseMatch is one finding as it appears on the wire.
type ResponseMatch struct {
	Message      string        `json:"message"`
	ShortMessage string        `json:"shortMessage"`
	Replacements []Replacement `json:"replacements"`
	Offset       int           `json:"offset"`
	Length       int           `json:"length"`
	Context      Context       `json:"context"`
	Sentence     string        `json:"sentence"`
	Type         MatchType     `json:"type"`
	Rule         Rule          `json:"rule"`
}

// Replacement is one suggested correction.
type Replacement struct {
	Value string `json:"value"`
}

// Context is the snippet surrounding a finding. Offset and Length locate the
// flagged span within Text.
type Context struct {
	Text   string `json:"text"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
}

// MatchType carries the engine's coarse classification of a finding.
type MatchType struct {
	TypeName string `json:"typeName"`
}

// Rule describes the rule that produced a finding.
type Rule struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	IssueType   string   `json:"issueType"`
	Category    Category `json:"category"`
	IsPremium   bool     `json:"isPremium"`
}

// Category groups related rules.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Match is one finding normalized for aggregation and display. ContextOffset
// and ContextLength locate the flagged span within ContextText, not within
// the document.
type Match struct {
	ContextText     string   `json:"context_text"`
	ContextOffset   int      `json:"context_offset"`
	ContextLength   int      `json:"context_length"`
	Message         string   `json:"message"`
	ShortMessage    string   `json:"short_message"`
	Sentence        string   `json:"sentence"`
	RuleDescription string   `json:"rule_description"`
	TypeName        string   `json:"type_name"`
	Replacements    []string `json:"replacements"`
}

// Span returns the flagged text within the context window, or "" when the
// reported offsets fall outside it.
func (m Match) Span() string {
	start := m.ContextOffset
	end := m.ContextOffset + m.ContextLength
	if start < 0 || start > end || end > len(m.ContextText) {
		return ""
	}
	return m.ContextText[start:end]
}
