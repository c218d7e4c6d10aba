package grading

import (
	"reflect"
	"testing"
)

func TestScoreMultipleChoice(t *testing.T) {
	question := Question{
		ID:     "q1",
		Type:   TypeMultipleChoice,
		Text:   "What was unusual about the night sky Maria saw?",
		Points: 1,
		Options: []string{
			"She could see stars despite city lights",
			"It was stormy",
			"It was midday",
			"Stars were red",
		},
		CorrectAnswer: "She could see stars despite city lights",
	}

	tests := []struct {
		name        string
		answer      string
		wantCorrect bool
		wantAwarded int
	}{
		{
			name:        "exact correct option",
			answer:      "She could see stars despite city lights",
			wantCorrect: true,
			wantAwarded: 1,
		},
		{
			name:   "wrong option",
			answer: "It was stormy",
		},
		{
			name:   "empty answer",
			answer: "",
		},
		{
			name:   "case difference is not accepted",
			answer: "she could see stars despite city lights",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := scoreQuestion(question, Answer{Text: tt.answer})
			if fb.Correct != tt.wantCorrect {
				t.Errorf("Correct = %v, want %v", fb.Correct, tt.wantCorrect)
			}
			if fb.Awarded != tt.wantAwarded {
				t.Errorf("Awarded = %d, want %d", fb.Awarded, tt.wantAwarded)
			}
		})
	}
}

func TestScoreShortAnswerNormalizesCaseAndWhitespace(t *testing.T) {
	question := Question{
		ID:            "q2",
		Type:          TypeShortAnswer,
		Points:        2,
		CorrectAnswer: "To check for news about the power outage",
	}

	tests := []struct {
		name        string
		answer      string
		wantCorrect bool
	}{
		{
			name:        "exact match",
			answer:      "To check for news about the power outage",
			wantCorrect: true,
		},
		{
			name:        "trailing whitespace and different casing",
			answer:      "  to check for NEWS about the power outage  ",
			wantCorrect: true,
		},
		{
			name:   "partial answer is not accepted",
			answer: "the power outage",
		},
		{
			name:   "empty answer",
			answer: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := scoreQuestion(question, Answer{Text: tt.answer})
			if fb.Correct != tt.wantCorrect {
				t.Errorf("Correct = %v, want %v", fb.Correct, tt.wantCorrect)
			}
			wantAwarded := 0
			if tt.wantCorrect {
				wantAwarded = question.Points
			}
			if fb.Awarded != wantAwarded {
				t.Errorf("Awarded = %d, want %d", fb.Awarded, wantAwarded)
			}
		})
	}
}

func TestScoreParagraphWordCountSteps(t *testing.T) {
	tests := []struct {
		name        string
		points      int
		words       int
		wantAwarded int
	}{
		{name: "no answer", points: 4, words: 0, wantAwarded: 0},
		{name: "nine words", points: 4, words: 9, wantAwarded: 0},
		{name: "ten words earns half", points: 4, words: 10, wantAwarded: 2},
		{name: "fifteen words earns half", points: 4, words: 15, wantAwarded: 2},
		{name: "nineteen words earns half", points: 4, words: 19, wantAwarded: 2},
		{name: "twenty words earns full", points: 4, words: 20, wantAwarded: 4},
		{name: "long answer earns full", points: 4, words: 50, wantAwarded: 4},
		{name: "odd points floor on half", points: 3, words: 12, wantAwarded: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			question := Question{ID: "q3", Type: TypeParagraph, Points: tt.points}
			fb := scoreQuestion(question, Answer{Text: repeatWords("detail", tt.words)})
			if fb.Awarded != tt.wantAwarded {
				t.Errorf("Awarded = %d, want %d", fb.Awarded, tt.wantAwarded)
			}
			if wantCorrect := tt.wantAwarded == tt.points; fb.Correct != wantCorrect {
				t.Errorf("Correct = %v, want %v", fb.Correct, wantCorrect)
			}
		})
	}
}

func TestScoreMatchingPositionalAgreement(t *testing.T) {
	question := Question{
		ID:     "q5",
		Type:   TypeMatching,
		Points: 2,
		Pairs: []Pair{
			{Left: "Pulsating glow", Right: "The craft's exterior light"},
			{Left: "Soft humming sound", Right: "The musical note-like tone"},
			{Left: "Warm golden light", Right: "Interior of the craft"},
			{Left: "Sequential colored lights", Right: "Perimeter indicators"},
		},
	}

	tests := []struct {
		name        string
		matches     []string
		wantAwarded int
		wantMessage string
	}{
		{
			name: "all four correct",
			matches: []string{
				"The craft's exterior light",
				"The musical note-like tone",
				"Interior of the craft",
				"Perimeter indicators",
			},
			wantAwarded: 2,
			wantMessage: "You matched 4 out of 4 items correctly.",
		},
		{
			name: "three of four floors to one point",
			matches: []string{
				"The craft's exterior light",
				"The musical note-like tone",
				"Interior of the craft",
				"The craft's exterior light",
			},
			wantAwarded: 1,
			wantMessage: "You matched 3 out of 4 items correctly.",
		},
		{
			name:        "empty submission",
			matches:     nil,
			wantAwarded: 0,
			wantMessage: "You matched 0 out of 4 items correctly.",
		},
		{
			name: "partial submission only checks provided positions",
			matches: []string{
				"The craft's exterior light",
			},
			wantAwarded: 0,
			wantMessage: "You matched 1 out of 4 items correctly.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := scoreQuestion(question, Answer{Matches: tt.matches})
			if fb.Awarded != tt.wantAwarded {
				t.Errorf("Awarded = %d, want %d", fb.Awarded, tt.wantAwarded)
			}
			if fb.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", fb.Message, tt.wantMessage)
			}
		})
	}
}

func TestScoreAggregatesAcrossTypes(t *testing.T) {
	questions := []Question{
		{ID: "q1", Type: TypeMultipleChoice, Points: 1, Options: []string{"a", "b"}, CorrectAnswer: "a"},
		{ID: "q2", Type: TypeShortAnswer, Points: 2, CorrectAnswer: "power outage"},
		{ID: "q3", Type: TypeParagraph, Points: 4},
		{ID: "q4", Type: TypeMatching, Points: 2, Pairs: []Pair{
			{Left: "l1", Right: "r1"},
			{Left: "l2", Right: "r2"},
		}},
	}
	answers := map[string]Answer{
		"q1": {Text: "a"},
		"q2": {Text: "Power Outage "},
		"q3": {Text: repeatWords("word", 15)},
		"q4": {Matches: []string{"r1", "wrong"}},
	}

	result := Score(questions, answers)

	if result.TotalPoints != 9 {
		t.Errorf("TotalPoints = %d, want 9", result.TotalPoints)
	}
	// 1 (mc) + 2 (sa) + 2 (paragraph half) + 1 (one of two pairs)
	if result.Score != 6 {
		t.Errorf("Score = %d, want 6", result.Score)
	}
	if result.CorrectAnswers != 2 {
		t.Errorf("CorrectAnswers = %d, want 2", result.CorrectAnswers)
	}
	if result.TotalQuestions != 4 {
		t.Errorf("TotalQuestions = %d, want 4", result.TotalQuestions)
	}
	if result.Score > result.TotalPoints || result.Score < 0 {
		t.Errorf("Score %d outside [0, %d]", result.Score, result.TotalPoints)
	}
}

func TestScoreIsPure(t *testing.T) {
	questions := []Question{
		{ID: "q1", Type: TypeMultipleChoice, Points: 1, CorrectAnswer: "a"},
		{ID: "q2", Type: TypeParagraph, Points: 4},
	}
	answers := map[string]Answer{
		"q1": {Text: "a"},
		"q2": {Text: repeatWords("w", 12)},
	}

	first := Score(questions, answers)
	second := Score(questions, answers)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated grading differs: first %+v, second %+v", first, second)
	}
}

func TestScoreUnansweredQuestionsEarnZero(t *testing.T) {
	questions := []Question{
		{ID: "q1", Type: TypeMultipleChoice, Points: 1, CorrectAnswer: "a"},
		{ID: "q2", Type: TypeMatching, Points: 2, Pairs: []Pair{{Left: "l", Right: "r"}}},
	}

	result := Score(questions, nil)

	if result.Score != 0 {
		t.Errorf("Score = %d, want 0", result.Score)
	}
	if result.TotalPoints != 3 {
		t.Errorf("TotalPoints = %d, want 3", result.TotalPoints)
	}
}

func repeatWords(word string, count int) string {
	if count == 0 {
		return ""
	}
	words := make([]byte, 0, count*(len(word)+1))
	for i := 0; i < count; i++ {
		if i > 0 {
			words = append(words, ' ')
		}
		words = append(words, word...)
	}
	return string(words)
}
