package grading

import (
	"encoding/json"
	"reflect"
	"testing"

	"literacylab/internal/models"
)

func TestNormalizeOptionsVariants(t *testing.T) {
	tests := []struct {
		name    string
		options string
		want    []string
	}{
		{
			name:    "native string array",
			options: `["one","two","three"]`,
			want:    []string{"one", "two", "three"},
		},
		{
			name:    "array re-encoded as JSON string",
			options: `"[\"one\",\"two\",\"three\"]"`,
			want:    []string{"one", "two", "three"},
		},
		{
			name:    "object form from the authoring flow",
			options: `[{"id":"a","text":"one"},{"id":"b","text":"two"}]`,
			want:    []string{"one", "two"},
		},
		{
			name:    "malformed payload degrades to empty",
			options: `{"not":"an array"}`,
			want:    nil,
		},
		{
			name:    "null payload",
			options: `null`,
			want:    nil,
		},
		{
			name:    "empty payload",
			options: ``,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := models.Question{
				ID:           "q1",
				QuestionType: TypeMultipleChoice,
				Options:      json.RawMessage(tt.options),
			}
			q := Normalize(row)
			if !reflect.DeepEqual(q.Options, tt.want) {
				t.Errorf("Options = %#v, want %#v", q.Options, tt.want)
			}
		})
	}
}

func TestNormalizeOptionsRoundTrip(t *testing.T) {
	// A question row with options stored as a JSON-encoded string array must
	// normalize to the same list as one stored as a native array.
	native := Normalize(models.Question{
		ID:           "a",
		QuestionType: TypeMultipleChoice,
		Options:      json.RawMessage(`["x","y"]`),
	})
	encoded := Normalize(models.Question{
		ID:           "b",
		QuestionType: TypeMultipleChoice,
		Options:      json.RawMessage(`"[\"x\",\"y\"]"`),
	})

	if !reflect.DeepEqual(native.Options, encoded.Options) {
		t.Errorf("native %#v != string-encoded %#v", native.Options, encoded.Options)
	}
}

func TestNormalizePairsVariants(t *testing.T) {
	tests := []struct {
		name    string
		options string
		want    []Pair
	}{
		{
			name:    "object pairs",
			options: `[{"left":"l1","right":"r1"},{"left":"l2","right":"r2"}]`,
			want:    []Pair{{Left: "l1", Right: "r1"}, {Left: "l2", Right: "r2"}},
		},
		{
			name:    "positional tuples",
			options: `[["l1","r1"],["l2","r2"]]`,
			want:    []Pair{{Left: "l1", Right: "r1"}, {Left: "l2", Right: "r2"}},
		},
		{
			name:    "string-encoded object pairs",
			options: `"[{\"left\":\"l1\",\"right\":\"r1\"}]"`,
			want:    []Pair{{Left: "l1", Right: "r1"}},
		},
		{
			name:    "malformed payload degrades to empty",
			options: `"not even json`,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := models.Question{
				ID:           "q1",
				QuestionType: TypeMatching,
				Options:      json.RawMessage(tt.options),
			}
			q := Normalize(row)
			if !reflect.DeepEqual(q.Pairs, tt.want) {
				t.Errorf("Pairs = %#v, want %#v", q.Pairs, tt.want)
			}
		})
	}
}

func TestNormalizeDefaultsPoints(t *testing.T) {
	q := Normalize(models.Question{ID: "q1", QuestionType: TypeShortAnswer})
	if q.Points != 1 {
		t.Errorf("Points = %d, want default 1", q.Points)
	}

	q = Normalize(models.Question{ID: "q2", QuestionType: TypeParagraph, Points: 4})
	if q.Points != 4 {
		t.Errorf("Points = %d, want declared 4", q.Points)
	}
}

func TestNormalizeAllPreservesOrder(t *testing.T) {
	rows := []models.Question{
		{ID: "q1", QuestionType: TypeMultipleChoice, Options: json.RawMessage(`["a"]`)},
		{ID: "q2", QuestionType: TypeParagraph},
		{ID: "q3", QuestionType: TypeMatching, Options: json.RawMessage(`[["l","r"]]`)},
	}

	questions := NormalizeAll(rows)

	if len(questions) != 3 {
		t.Fatalf("length = %d, want 3", len(questions))
	}
	for i, row := range rows {
		if questions[i].ID != row.ID {
			t.Errorf("position %d: got %s, want %s", i, questions[i].ID, row.ID)
		}
	}
}
