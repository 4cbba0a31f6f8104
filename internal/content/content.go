package content

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind is an artifact kind. Each kind has its own validator and a fixed
// credit cost.
type Kind string

const (
	KindQuiz         Kind = "quiz"
	KindLessonPlan   Kind = "lesson_plan"
	KindWorksheet    Kind = "worksheet"
	KindProject      Kind = "project"
	KindPresentation Kind = "presentation"
	KindActivity     Kind = "activity"
)

var creditCosts = map[Kind]int{
	KindQuiz:         2,
	KindLessonPlan:   2,
	KindWorksheet:    1,
	KindProject:      2,
	KindPresentation: 2,
	KindActivity:     1,
}

func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.TrimSpace(strings.ToLower(s)))
	if _, ok := creditCosts[k]; !ok {
		return "", false
	}
	return k, true
}

func CreditCost(k Kind) int {
	return creditCosts[k]
}

// SchemaError reports the first structural violation found in generated
// content. Messages are user-facing and must be specific enough to act on.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string { return e.Reason }

func schemaErrf(format string, args ...any) *SchemaError {
	return &SchemaError{Reason: fmt.Sprintf(format, args...)}
}

// Document is a validated, normalized artifact body. Fields holds the
// canonical shape; re-validating it yields an equivalent Document.
type Document struct {
	Kind   Kind
	Title  string
	Fields map[string]any
}

// Validate runs the kind-specific validator over parsed JSON. Unknown extra
// fields are ignored; only structural violations of the kind's contract are
// rejected.
func Validate(kind Kind, raw any) (*Document, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, schemaErrf("%s content must be a JSON object", kind)
	}
	switch kind {
	case KindQuiz:
		return validateQuiz(obj)
	case KindLessonPlan:
		return validateLessonPlan(obj)
	case KindWorksheet:
		return validateWorksheet(obj)
	case KindProject:
		return validateProject(obj)
	case KindPresentation:
		return validatePresentation(obj)
	case KindActivity:
		return validateActivity(obj)
	default:
		return nil, schemaErrf("unknown artifact kind %q", kind)
	}
}

// ---- shared coercions ----

var minutesPattern = regexp.MustCompile(`^([0-9]+) min$`)

// coerceString normalizes a JSON scalar to a string. Integral numbers are
// rendered without a decimal point so a model emitting 2 instead of "2"
// still validates.
func coerceString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10), true
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// coerceMinutes normalizes a time value to the canonical "<n> min" string
// and its integer minute count. Accepts either the canonical string or a
// bare number.
func coerceMinutes(v any) (string, int, bool) {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) || t < 0 {
			return "", 0, false
		}
		n := int(t)
		return fmt.Sprintf("%d min", n), n, true
	case string:
		s := strings.TrimSpace(t)
		if m := minutesPattern.FindStringSubmatch(s); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return "", 0, false
			}
			return s, n, true
		}
		// A bare numeric string gets the same treatment as a number.
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			return fmt.Sprintf("%d min", n), n, true
		}
		return "", 0, false
	default:
		return "", 0, false
	}
}

func requireString(obj map[string]any, field string, kind Kind) (string, *SchemaError) {
	v, ok := obj[field]
	if !ok {
		return "", schemaErrf("%s is missing required field %q", kind, field)
	}
	s, ok := coerceString(v)
	if !ok {
		return "", schemaErrf("%s field %q must be a string", kind, field)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", schemaErrf("%s field %q must not be empty", kind, field)
	}
	return s, nil
}

func optionalString(obj map[string]any, field string) (string, bool) {
	v, ok := obj[field]
	if !ok {
		return "", false
	}
	s, ok := coerceString(v)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

func requireObjectList(obj map[string]any, field string, kind Kind) ([]map[string]any, *SchemaError) {
	v, ok := obj[field]
	if !ok {
		return nil, schemaErrf("%s is missing required field %q", kind, field)
	}
	list, ok := v.([]any)
	if !ok {
		return nil, schemaErrf("%s field %q must be a list", kind, field)
	}
	if len(list) == 0 {
		return nil, schemaErrf("%s field %q must not be empty", kind, field)
	}
	out := make([]map[string]any, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, schemaErrf("%s %s entry %d must be an object", kind, field, i+1)
		}
		out = append(out, m)
	}
	return out, nil
}

func stringList(v any) ([]string, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := coerceString(item)
		if !ok {
			return nil, false
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
