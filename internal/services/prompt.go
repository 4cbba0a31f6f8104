package services

import (
	"fmt"
	"strings"

	"github.com/edudraft/edudraft-backend/internal/content"
)

// GenerationRequest is one teacher's ask. It lives only for the duration of
// a single orchestration run and is never persisted.
type GenerationRequest struct {
	Kind       content.Kind
	Topic      string
	GradeLevel string
	Subject    string
	ItemCount  int
	Duration   string
	Extra      string
}

var kindInstructions = map[content.Kind]string{
	content.KindQuiz: `Produce a quiz as a single JSON object with "title" and "questions". Every question needs "type" (one of multiple_choice, true_false, short_answer), "question" and "answer"; multiple_choice questions also need an "options" list that contains the answer.`,
	content.KindLessonPlan: `Produce a lesson plan as a single JSON object with "title", "duration" (like "45 min") and "activities". Every activity needs "name", "time" (like "10 min") and "outcome". Activity times must sum exactly to the duration.`,
	content.KindWorksheet: `Produce a worksheet as a single JSON object with "title", "instructions" and "questions". Every question needs "problem" and "answer".`,
	content.KindProject: `Produce a project as a single JSON object with "title", "overview", "materials" and "steps" (a list of strings).`,
	content.KindPresentation: `Produce a presentation as a single JSON object with "title" and "slides". Every slide needs "title" and either "content" or "bullets".`,
	content.KindActivity: `Produce a classroom activity as a single JSON object with "title", "objective" and "instructions" (a list of strings).`,
}

// BuildPrompt assembles the system and user prompts for one request.
func BuildPrompt(req GenerationRequest) (system string, user string) {
	system = strings.Join([]string{
		"You create classroom-ready teaching materials for teachers.",
		"Respond with exactly one JSON object and nothing else; no prose, no markdown fences.",
		kindInstructions[req.Kind],
	}, " ")

	var b strings.Builder
	fmt.Fprintf(&b, "Create a %s about: %s.", strings.ReplaceAll(string(req.Kind), "_", " "), req.Topic)
	if req.GradeLevel != "" {
		fmt.Fprintf(&b, " Grade level: %s.", req.GradeLevel)
	}
	if req.Subject != "" {
		fmt.Fprintf(&b, " Subject: %s.", req.Subject)
	}
	if req.ItemCount > 0 {
		fmt.Fprintf(&b, " Include %d items.", req.ItemCount)
	}
	if req.Duration != "" {
		fmt.Fprintf(&b, " Total duration: %s.", req.Duration)
	}
	if req.Extra != "" {
		fmt.Fprintf(&b, " Additional requirements: %s", req.Extra)
	}
	return system, b.String()
}
