package content

import (
	"strings"
	"testing"
)

func TestQuizValidates(t *testing.T) {
	raw := parseJSON(t, `{
		"title": "Water Cycle Quiz",
		"time_limit": 15,
		"questions": [
			{"type": "multiple_choice", "question": "What drives evaporation?", "options": ["The sun", "The moon", "Wind"], "answer": "The sun"},
			{"type": "true_false", "question": "Condensation forms clouds.", "answer": true},
			{"type": "short_answer", "question": "Name one form of precipitation.", "answer": "Rain"}
		]
	}`)
	doc, err := Validate(KindQuiz, raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if doc.Fields["time_limit"] != "15 min" {
		t.Fatalf("time_limit coercion: want=%q got=%v", "15 min", doc.Fields["time_limit"])
	}
	questions := doc.Fields["questions"].([]any)
	if len(questions) != 3 {
		t.Fatalf("questions: want=3 got=%d", len(questions))
	}
	tf := questions[1].(map[string]any)
	if tf["answer"] != true {
		t.Fatalf("true_false answer: want=true got=%v", tf["answer"])
	}
}

func TestQuizRejectsUnknownQuestionType(t *testing.T) {
	raw := parseJSON(t, `{
		"title": "Quiz",
		"questions": [
			{"type": "essay", "question": "Discuss.", "answer": "..."}
		]
	}`)
	_, err := Validate(KindQuiz, raw)
	if err == nil {
		t.Fatalf("want error for unknown question type")
	}
	if !strings.Contains(err.Error(), "question 1") || !strings.Contains(err.Error(), "essay") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestQuizMultipleChoiceAnswerMustBeAnOption(t *testing.T) {
	raw := parseJSON(t, `{
		"title": "Quiz",
		"questions": [
			{"type": "multiple_choice", "question": "Pick one.", "options": ["A", "B"], "answer": "C"}
		]
	}`)
	_, err := Validate(KindQuiz, raw)
	if err == nil || !strings.Contains(err.Error(), "not one of its options") {
		t.Fatalf("want option membership error, got: %v", err)
	}
}

func TestQuizMultipleChoiceNeedsTwoOptions(t *testing.T) {
	raw := parseJSON(t, `{
		"title": "Quiz",
		"questions": [
			{"type": "multiple_choice", "question": "Pick one.", "options": ["A"], "answer": "A"}
		]
	}`)
	if _, err := Validate(KindQuiz, raw); err == nil {
		t.Fatalf("want error for single-option multiple choice")
	}
}

func TestQuizTrueFalseAcceptsStringAnswer(t *testing.T) {
	raw := parseJSON(t, `{
		"title": "Quiz",
		"questions": [
			{"type": "true_false", "question": "Go has generics.", "answer": "true"}
		]
	}`)
	doc, err := Validate(KindQuiz, raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	q := doc.Fields["questions"].([]any)[0].(map[string]any)
	if q["answer"] != true {
		t.Fatalf("normalized answer: want=true got=%v", q["answer"])
	}
}

func TestQuizRequiresQuestions(t *testing.T) {
	_, err := Validate(KindQuiz, parseJSON(t, `{"title": "Quiz", "questions": []}`))
	if err == nil {
		t.Fatalf("want error for empty questions")
	}
}
