package grading

import (
	"fmt"
	"strings"
)

// Answer is a student's submission for a single question. Text carries the
// selected option or written response; Matches carries the right-side
// selection per left item for matching questions.
type Answer struct {
	Text    string   `json:"text,omitempty"`
	Matches []string `json:"matches,omitempty"`
}

// Feedback is the graded outcome of one question
type Feedback struct {
	Correct bool   `json:"correct"`
	Message string `json:"message"`
	Awarded int    `json:"awarded"`
	Points  int    `json:"points"`
}

// Result aggregates per-question feedback into a composite score
type Result struct {
	Score          int                 `json:"score"`
	TotalPoints    int                 `json:"total_points"`
	TotalQuestions int                 `json:"total_questions"`
	CorrectAnswers int                 `json:"correct_answers"`
	Feedback       map[string]Feedback `json:"feedback"`
}

// Score grades a set of normalized questions against the submitted answer
// map. Unanswered questions earn zero. Score is a pure function: grading
// the same inputs twice yields identical results.
func Score(questions []Question, answers map[string]Answer) Result {
	result := Result{
		TotalQuestions: len(questions),
		Feedback:       make(map[string]Feedback, len(questions)),
	}

	for _, q := range questions {
		fb := scoreQuestion(q, answers[q.ID])
		result.Score += fb.Awarded
		result.TotalPoints += q.Points
		if fb.Correct {
			result.CorrectAnswers++
		}
		result.Feedback[q.ID] = fb
	}

	return result
}

func scoreQuestion(q Question, answer Answer) Feedback {
	switch q.Type {
	case TypeMultipleChoice:
		return scoreMultipleChoice(q, answer.Text)
	case TypeShortAnswer:
		return scoreShortAnswer(q, answer.Text)
	case TypeParagraph:
		return scoreParagraph(q, answer.Text)
	case TypeMatching:
		return scoreMatching(q, answer.Matches)
	default:
		return Feedback{Message: "This question type cannot be graded.", Points: q.Points}
	}
}

// scoreMultipleChoice awards full points iff the submitted option equals the
// stored correct answer exactly.
func scoreMultipleChoice(q Question, answer string) Feedback {
	if answer == q.CorrectAnswer {
		return Feedback{Correct: true, Message: "Correct!", Awarded: q.Points, Points: q.Points}
	}
	return Feedback{
		Message: fmt.Sprintf("The correct answer is: %s", q.CorrectAnswer),
		Points:  q.Points,
	}
}

// scoreShortAnswer compares the trimmed, lowercased submission against the
// trimmed, lowercased answer key.
func scoreShortAnswer(q Question, answer string) Feedback {
	submitted := strings.ToLower(strings.TrimSpace(answer))
	expected := strings.ToLower(strings.TrimSpace(q.CorrectAnswer))

	if submitted != "" && submitted == expected {
		return Feedback{Correct: true, Message: "Good answer!", Awarded: q.Points, Points: q.Points}
	}
	return Feedback{
		Message: fmt.Sprintf("A model answer would be: %s", q.CorrectAnswer),
		Points:  q.Points,
	}
}

// scoreParagraph scores written responses as a step function of word count:
// under 10 words earns nothing, 10-19 earns half the points (floored), 20 or
// more earns full points.
func scoreParagraph(q Question, answer string) Feedback {
	wordCount := len(strings.Fields(answer))

	var awarded int
	switch {
	case wordCount >= 20:
		awarded = q.Points
	case wordCount >= 10:
		awarded = q.Points / 2
	}

	message := fmt.Sprintf("You wrote %d words. ", wordCount)
	if awarded == q.Points {
		message += "Good detailed response!"
	} else {
		message += "Consider adding more specific details from the text to support your answer."
	}

	return Feedback{
		Correct: awarded == q.Points,
		Message: message,
		Awarded: awarded,
		Points:  q.Points,
	}
}

// scoreMatching counts positional agreement between the submitted right-side
// selections and the stored pairs, awarding floor(points * correct / total).
func scoreMatching(q Question, matches []string) Feedback {
	total := len(q.Pairs)
	if total == 0 {
		return Feedback{Message: "This question has no pairs to match.", Points: q.Points}
	}

	correct := 0
	for i, pair := range q.Pairs {
		if i < len(matches) && matches[i] == pair.Right {
			correct++
		}
	}

	awarded := q.Points * correct / total

	return Feedback{
		Correct: correct == total,
		Message: fmt.Sprintf("You matched %d out of %d items correctly.", correct, total),
		Awarded: awarded,
		Points:  q.Points,
	}
}
