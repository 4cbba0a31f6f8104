package content

import (
	"encoding/json"
	"testing"
)

func TestParseKind(t *testing.T) {
	for _, k := range []string{"quiz", "lesson_plan", "worksheet", "project", "presentation", "activity"} {
		kind, ok := ParseKind(k)
		if !ok {
			t.Fatalf("ParseKind(%q): want ok", k)
		}
		if CreditCost(kind) < 1 || CreditCost(kind) > 2 {
			t.Fatalf("CreditCost(%q): want 1..2 got %d", k, CreditCost(kind))
		}
	}
	if _, ok := ParseKind("novel"); ok {
		t.Fatalf("ParseKind(novel): want !ok")
	}
}

func TestWorksheetValidates(t *testing.T) {
	raw := parseJSON(t, `{"title":"T","instructions":"I","questions":[{"problem":"1+1","answer":"2"}]}`)
	doc, err := Validate(KindWorksheet, raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if doc.Title != "T" || doc.Fields["instructions"] != "I" {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestWorksheetCoercesNumericAnswer(t *testing.T) {
	raw := parseJSON(t, `{"title":"T","questions":[{"problem":"1+1","answer":2}]}`)
	doc, err := Validate(KindWorksheet, raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	q := doc.Fields["questions"].([]any)[0].(map[string]any)
	if q["answer"] != "2" {
		t.Fatalf("coerced answer: want=%q got=%v", "2", q["answer"])
	}
}

func TestWorksheetRequiresAnswer(t *testing.T) {
	raw := parseJSON(t, `{"title":"T","questions":[{"problem":"1+1"}]}`)
	if _, err := Validate(KindWorksheet, raw); err == nil {
		t.Fatalf("want error for missing answer")
	}
}

func TestProjectValidates(t *testing.T) {
	raw := parseJSON(t, `{
		"title": "Build a volcano",
		"description": "A classic baking-soda volcano.",
		"materials": ["baking soda", "vinegar"],
		"steps": ["Build the cone", "Add baking soda", "Pour vinegar"]
	}`)
	doc, err := Validate(KindProject, raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if doc.Fields["overview"] != "A classic baking-soda volcano." {
		t.Fatalf("description alias not normalized to overview: %v", doc.Fields["overview"])
	}
}

func TestPresentationSlideNeedsBodyOrBullets(t *testing.T) {
	raw := parseJSON(t, `{
		"title": "Deck",
		"slides": [{"title": "Empty slide"}]
	}`)
	if _, err := Validate(KindPresentation, raw); err == nil {
		t.Fatalf("want error for empty slide")
	}
}

func TestActivityAcceptsSingleInstructionString(t *testing.T) {
	raw := parseJSON(t, `{
		"title": "Silent ball",
		"objective": "Practice focus",
		"instructions": "Throw the ball without talking."
	}`)
	doc, err := Validate(KindActivity, raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got := len(doc.Fields["instructions"].([]any)); got != 1 {
		t.Fatalf("instructions: want=1 got=%d", got)
	}
}

// Re-validating a validated document's serialized fields must succeed and
// produce the same normalized shape.
func TestValidateIsIdempotent(t *testing.T) {
	cases := map[Kind]string{
		KindQuiz: `{"title":"Q","time_limit":10,"questions":[
			{"type":"multiple_choice","question":"?","options":["a","b"],"answer":"a"},
			{"type":"true_false","question":"?","answer":"false"}]}`,
		KindLessonPlan: `{"title":"L","duration":30,"activities":[
			{"name":"A","time":10,"outcome":"o"},{"name":"B","time":20,"outcome":"o"}]}`,
		KindWorksheet: `{"title":"W","questions":[{"problem":"p","answer":1}]}`,
	}
	for kind, raw := range cases {
		first, err := Validate(kind, parseJSON(t, raw))
		if err != nil {
			t.Fatalf("%s first pass: %v", kind, err)
		}
		serialized, err := json.Marshal(first.Fields)
		if err != nil {
			t.Fatalf("%s marshal: %v", kind, err)
		}
		var reparsed any
		if err := json.Unmarshal(serialized, &reparsed); err != nil {
			t.Fatalf("%s reparse: %v", kind, err)
		}
		second, err := Validate(kind, reparsed)
		if err != nil {
			t.Fatalf("%s second pass: %v", kind, err)
		}
		a, _ := json.Marshal(first.Fields)
		b, _ := json.Marshal(second.Fields)
		if string(a) != string(b) {
			t.Fatalf("%s not idempotent:\nfirst=%s\nsecond=%s", kind, a, b)
		}
	}
}
