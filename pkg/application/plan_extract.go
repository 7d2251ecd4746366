package application

import (
	"regexp"
	"strings"
)

// Extractor pulls a JSON candidate out of free-form backend text.
type Extractor interface {
	Name() string
	TryExtract(text string) (string, bool)
}

var (
	fencedJSONPattern = regexp.MustCompile("(?s)```json[ \t]*\r?\n(.*?)\r?\n[ \t]*```")
	fencedAnyPattern  = regexp.MustCompile("(?s)```[ \t]*\r?\n(.*?)\r?\n[ \t]*```")
)

type fencedExtractor struct {
	name    string
	pattern *regexp.Regexp
}

func (e fencedExtractor) Name() string { return e.name }

func (e fencedExtractor) TryExtract(text string) (string, bool) {
	m := e.pattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// braceSpan takes everything from the first '{' to the last '}'.
type braceSpan struct{}

func (braceSpan) Name() string { return "brace-span" }

func (braceSpan) TryExtract(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// FencedJSON matches a code fence tagged json.
func FencedJSON() Extractor { return fencedExtractor{name: "fenced-json", pattern: fencedJSONPattern} }

// FencedAny matches the first code fence that carries no language tag.
func FencedAny() Extractor { return fencedExtractor{name: "fenced-any", pattern: fencedAnyPattern} }

// BraceSpan matches the outermost brace span.
func BraceSpan() Extractor { return braceSpan{} }

// DefaultExtractors returns the extraction strategies in priority order.
func DefaultExtractors() []Extractor {
	return []Extractor{FencedJSON(), FencedAny(), BraceSpan()}
}

// extractCandidate returns the first strategy match, or the whole text when none match.
func extractCandidate(text string, extractors []Extractor) (candidate string, strategy string) {
	for _, e := range extractors {
		if c, ok := e.TryExtract(text); ok {
			return c, e.Name()
		}
	}
	return text, "raw"
}
