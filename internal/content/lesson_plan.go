package content

import (
	"fmt"
	"strings"
)

// validateLessonPlan checks title, per-activity shape, and that activity
// times sum exactly to the plan's duration. Duration defaults to "45 min"
// when absent.
func validateLessonPlan(obj map[string]any) (*Document, error) {
	title, serr := requireString(obj, "title", KindLessonPlan)
	if serr != nil {
		return nil, serr
	}

	durationRaw, ok := obj["duration"]
	if !ok {
		durationRaw = "45 min"
	}
	duration, durationMin, valid := coerceMinutes(durationRaw)
	if !valid {
		return nil, schemaErrf("lesson_plan duration %v is not of the form \"<minutes> min\"", durationRaw)
	}

	activities, serr := requireObjectList(obj, "activities", KindLessonPlan)
	if serr != nil {
		return nil, serr
	}

	type activity struct {
		name    string
		time    string
		minutes int
		outcome string
	}
	parsed := make([]activity, 0, len(activities))
	for i, a := range activities {
		name, ok := optionalString(a, "name")
		if !ok || name == "" {
			return nil, schemaErrf("lesson_plan activity %d is missing a name", i+1)
		}
		timeRaw, present := a["time"]
		if !present {
			return nil, schemaErrf("lesson_plan activity %d (%s) is missing a time", i+1, name)
		}
		timeStr, minutes, valid := coerceMinutes(timeRaw)
		if !valid {
			return nil, schemaErrf("lesson_plan activity %d (%s) has time %v, expected the form \"<minutes> min\"", i+1, name, timeRaw)
		}
		outcome, ok := optionalString(a, "outcome")
		if !ok || outcome == "" {
			return nil, schemaErrf("lesson_plan activity %d (%s) is missing an outcome", i+1, name)
		}
		parsed = append(parsed, activity{name: name, time: timeStr, minutes: minutes, outcome: outcome})
	}

	total := 0
	for _, a := range parsed {
		total += a.minutes
	}
	if total != durationMin {
		breakdown := make([]string, 0, len(parsed))
		for _, a := range parsed {
			breakdown = append(breakdown, fmt.Sprintf("%s (%s)", a.name, a.time))
		}
		diff := durationMin - total
		relation := "short"
		if diff < 0 {
			relation = "over"
			diff = -diff
		}
		return nil, schemaErrf(
			"lesson_plan activities total %d min but duration is %s, %d min %s: %s",
			total, duration, diff, relation, strings.Join(breakdown, ", "),
		)
	}

	normActivities := make([]any, 0, len(parsed))
	for _, a := range parsed {
		normActivities = append(normActivities, map[string]any{
			"name":    a.name,
			"time":    a.time,
			"outcome": a.outcome,
		})
	}
	fields := map[string]any{
		"title":      title,
		"duration":   duration,
		"activities": normActivities,
	}
	copyOptionalStrings(obj, fields, "subject", "grade_level", "description", "objective")
	copyTags(obj, fields)

	return &Document{Kind: KindLessonPlan, Title: title, Fields: fields}, nil
}

func copyOptionalStrings(src, dst map[string]any, keys ...string) {
	for _, key := range keys {
		if s, ok := optionalString(src, key); ok && s != "" {
			dst[key] = s
		}
	}
}

func copyTags(src, dst map[string]any) {
	v, ok := src["tags"]
	if !ok {
		return
	}
	tags, ok := stringList(v)
	if !ok || len(tags) == 0 {
		return
	}
	out := make([]any, 0, len(tags))
	for _, t := range tags {
		out = append(out, strings.ToLower(t))
	}
	dst["tags"] = out
}
