package transcript

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Utterance is one speaker turn. Multi-line turns keep their internal
// newlines.
type Utterance struct {
	Speaker    string
	Text       string
	LineNumber int
}

// Warning flags a malformed line that was skipped rather than failing the
// whole parse.
type Warning struct {
	LineNumber int
	Message    string
	RawLine    string
}

// Result is a parsed transcript. Speakers are unique and ordered by first
// appearance.
type Result struct {
	Utterances []Utterance
	Speakers   []string
	Warnings   []Warning
	Source     string
}

// Text joins all utterances back into speaker-labelled lines, the form the
// extraction prompt consumes.
func (r *Result) Text() string {
	lines := make([]string, len(r.Utterances))
	for i, u := range r.Utterances {
		lines[i] = fmt.Sprintf("[%s]: %s", u.Speaker, u.Text)
	}
	return strings.Join(lines, "\n")
}

// Non-greedy speaker capture stops at the first closing bracket.
var utteranceRe = regexp.MustCompile(`^\[(.+?)\]:\s*(.*)$`)

// Parse parses transcript text. A line matching "[Speaker]: text" starts a
// new utterance; non-blank lines after it continue the current utterance.
// Orphan lines before the first speaker and empty speaker names produce
// warnings, never errors. Empty input yields an empty result.
func Parse(text, source string) *Result {
	result := &Result{Source: source}
	if strings.TrimSpace(text) == "" {
		return result
	}

	var (
		curSpeaker string
		curParts   []string
		curLine    int
	)

	flush := func() {
		if curSpeaker == "" {
			return
		}
		result.Utterances = append(result.Utterances, Utterance{
			Speaker:    curSpeaker,
			Text:       strings.Join(curParts, "\n"),
			LineNumber: curLine,
		})
	}

	for i, rawLine := range strings.Split(text, "\n") {
		lineNumber := i + 1

		if strings.TrimSpace(rawLine) == "" {
			continue
		}

		m := utteranceRe.FindStringSubmatch(rawLine)
		switch {
		case m != nil:
			flush()

			speaker := strings.TrimSpace(m[1])
			if speaker == "" {
				result.Warnings = append(result.Warnings, Warning{
					LineNumber: lineNumber,
					Message:    "empty speaker name",
					RawLine:    rawLine,
				})
				curSpeaker = ""
				curParts = nil
				curLine = 0
				continue
			}

			curSpeaker = speaker
			curParts = []string{strings.TrimRight(m[2], " \t")}
			curLine = lineNumber

		case curSpeaker != "":
			curParts = append(curParts, strings.TrimSpace(rawLine))

		default:
			result.Warnings = append(result.Warnings, Warning{
				LineNumber: lineNumber,
				Message:    "line does not match expected format and no prior speaker context",
				RawLine:    rawLine,
			})
		}
	}
	flush()

	seen := make(map[string]bool)
	for _, u := range result.Utterances {
		if !seen[u.Speaker] {
			seen[u.Speaker] = true
			result.Speakers = append(result.Speakers, u.Speaker)
		}
	}

	return result
}

// ParseFile reads and parses a transcript file.
func ParseFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	return Parse(string(data), path), nil
}
