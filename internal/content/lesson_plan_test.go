package content

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func parseJSON(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("parse test JSON: %v", err)
	}
	return v
}

func TestLessonPlanValidates(t *testing.T) {
	raw := parseJSON(t, `{
		"title": "Photosynthesis Basics",
		"duration": "45 min",
		"activities": [
			{"name": "Warmup", "time": "10 min", "outcome": "Recall prior knowledge"},
			{"name": "Lab", "time": "25 min", "outcome": "Observe leaf starch"},
			{"name": "Exit ticket", "time": "10 min", "outcome": "Summarize the process"}
		]
	}`)
	doc, err := Validate(KindLessonPlan, raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if doc.Title != "Photosynthesis Basics" {
		t.Fatalf("title: want=%q got=%q", "Photosynthesis Basics", doc.Title)
	}
	if doc.Fields["duration"] != "45 min" {
		t.Fatalf("duration: want=%q got=%v", "45 min", doc.Fields["duration"])
	}
	activities, ok := doc.Fields["activities"].([]any)
	if !ok || len(activities) != 3 {
		t.Fatalf("activities: want 3 entries, got %v", doc.Fields["activities"])
	}
}

func TestLessonPlanDefaultsDuration(t *testing.T) {
	raw := parseJSON(t, `{
		"title": "Fractions",
		"activities": [
			{"name": "Whole lesson", "time": "45 min", "outcome": "Add fractions"}
		]
	}`)
	doc, err := Validate(KindLessonPlan, raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if doc.Fields["duration"] != "45 min" {
		t.Fatalf("default duration: want=%q got=%v", "45 min", doc.Fields["duration"])
	}
}

func TestLessonPlanMinuteMismatchNamesShortfallAndActivities(t *testing.T) {
	raw := parseJSON(t, `{
		"title": "Fractions",
		"duration": "45 min",
		"activities": [
			{"name": "Warmup", "time": "10 min", "outcome": "Recall"},
			{"name": "Main", "time": "30 min", "outcome": "Practice"}
		]
	}`)
	_, err := Validate(KindLessonPlan, raw)
	var serr *SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("want SchemaError, got %v", err)
	}
	msg := serr.Reason
	for _, want := range []string{"40 min", "45 min", "5 min short", "Warmup (10 min)", "Main (30 min)"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("mismatch message missing %q: %s", want, msg)
		}
	}
}

func TestLessonPlanBadActivityReports1BasedIndex(t *testing.T) {
	raw := parseJSON(t, `{
		"title": "Fractions",
		"activities": [
			{"name": "Warmup", "time": "10 min", "outcome": "Recall"},
			{"name": "Broken", "time": "ten minutes", "outcome": "n/a"}
		]
	}`)
	_, err := Validate(KindLessonPlan, raw)
	if err == nil {
		t.Fatalf("want error for malformed time")
	}
	if !strings.Contains(err.Error(), "activity 2") {
		t.Fatalf("want 1-based activity index in message, got: %v", err)
	}
}

func TestLessonPlanNumericTimeCoerced(t *testing.T) {
	raw := parseJSON(t, `{
		"title": "Fractions",
		"duration": 45,
		"activities": [
			{"name": "Everything", "time": 45, "outcome": "Done"}
		]
	}`)
	doc, err := Validate(KindLessonPlan, raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	activities := doc.Fields["activities"].([]any)
	first := activities[0].(map[string]any)
	if first["time"] != "45 min" {
		t.Fatalf("coerced time: want=%q got=%v", "45 min", first["time"])
	}
}

func TestLessonPlanRejectsNonObject(t *testing.T) {
	_, err := Validate(KindLessonPlan, parseJSON(t, `["not", "an", "object"]`))
	if err == nil {
		t.Fatalf("want error for non-object content")
	}
}

func TestLessonPlanIgnoresExtraFields(t *testing.T) {
	raw := parseJSON(t, `{
		"title": "Fractions",
		"duration": "20 min",
		"unexpected": {"deeply": ["nested", 1]},
		"activities": [
			{"name": "Everything", "time": "20 min", "outcome": "Done", "mystery": 42}
		]
	}`)
	if _, err := Validate(KindLessonPlan, raw); err != nil {
		t.Fatalf("extra fields must be ignored: %v", err)
	}
}
