package grading

import (
	"encoding/json"
	"strings"

	"literacylab/internal/models"
)

// Question types supported by the grader
const (
	TypeMultipleChoice = "multiple-choice"
	TypeShortAnswer    = "short-answer"
	TypeParagraph      = "paragraph"
	TypeMatching       = "matching"
)

// Pair is one left/right item of a matching question
type Pair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Question is the strongly-shaped form of a questions row. Exactly one of
// the type-specific fields is meaningful, selected by Type.
type Question struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Text          string   `json:"question"`
	Points        int      `json:"points"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"-"`
	Pairs         []Pair   `json:"pairs,omitempty"`
}

// Normalize converts a loosely-typed questions row into a well-formed
// question of its declared type. Stored payloads vary: options may be a
// JSON array of strings, an array of {id,text} objects, or the whole array
// re-encoded as a JSON string; matching pairs may be {left,right} objects
// or positional two-element tuples. Malformed or missing payloads degrade
// to empty defaults; Normalize never returns an error.
func Normalize(row models.Question) Question {
	q := Question{
		ID:            row.ID,
		Type:          row.QuestionType,
		Text:          row.QuestionText,
		Points:        row.Points,
		CorrectAnswer: row.CorrectAnswer,
	}
	if q.Points <= 0 {
		q.Points = 1
	}

	switch row.QuestionType {
	case TypeMultipleChoice:
		q.Options = parseOptions(row.Options)
	case TypeMatching:
		q.Pairs = parsePairs(row.Options)
	}

	return q
}

// NormalizeAll normalizes a slice of rows, preserving order.
func NormalizeAll(rows []models.Question) []Question {
	questions := make([]Question, len(rows))
	for i, row := range rows {
		questions[i] = Normalize(row)
	}
	return questions
}

// parseOptions extracts an option list from a raw payload
func parseOptions(raw json.RawMessage) []string {
	raw = unwrapString(raw)
	if len(raw) == 0 {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	options := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			options = append(options, s)
			continue
		}
		// Authoring form stores options as {id, text} objects
		var obj struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(item, &obj); err == nil && obj.Text != "" {
			options = append(options, obj.Text)
		}
	}
	return options
}

// parsePairs extracts matching pairs from a raw payload
func parsePairs(raw json.RawMessage) []Pair {
	raw = unwrapString(raw)
	if len(raw) == 0 {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	pairs := make([]Pair, 0, len(items))
	for _, item := range items {
		var pair Pair
		if err := json.Unmarshal(item, &pair); err == nil && (pair.Left != "" || pair.Right != "") {
			pairs = append(pairs, pair)
			continue
		}
		// Positional tuple form: ["left", "right"]
		var tuple []string
		if err := json.Unmarshal(item, &tuple); err == nil && len(tuple) >= 2 {
			pairs = append(pairs, Pair{Left: tuple[0], Right: tuple[1]})
		}
	}
	return pairs
}

// unwrapString peels one level of JSON string encoding: some rows store
// the payload array re-encoded as a quoted JSON string.
func unwrapString(raw json.RawMessage) json.RawMessage {
	trimmed := strings.TrimSpace(string(raw))
	if len(trimmed) == 0 || trimmed == "null" {
		return nil
	}
	if trimmed[0] != '"' {
		return json.RawMessage(trimmed)
	}
	var inner string
	if err := json.Unmarshal([]byte(trimmed), &inner); err != nil {
		return nil
	}
	return json.RawMessage(inner)
}
