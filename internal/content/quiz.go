package content

import "strings"

const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionTrueFalse      = "true_false"
	QuestionShortAnswer    = "short_answer"
)

// validateQuiz requires every question to declare a gradable type and, for
// multiple choice, an option set containing the answer.
func validateQuiz(obj map[string]any) (*Document, error) {
	title, serr := requireString(obj, "title", KindQuiz)
	if serr != nil {
		return nil, serr
	}

	questions, serr := requireObjectList(obj, "questions", KindQuiz)
	if serr != nil {
		return nil, serr
	}

	normQuestions := make([]any, 0, len(questions))
	for i, q := range questions {
		prompt, ok := optionalString(q, "question")
		if !ok || prompt == "" {
			return nil, schemaErrf("quiz question %d is missing its question text", i+1)
		}
		qType, ok := optionalString(q, "type")
		if !ok || qType == "" {
			return nil, schemaErrf("quiz question %d is missing a type", i+1)
		}
		qType = strings.ToLower(qType)

		norm := map[string]any{
			"question": prompt,
			"type":     qType,
		}

		switch qType {
		case QuestionMultipleChoice:
			rawOptions, present := q["options"]
			if !present {
				return nil, schemaErrf("quiz question %d is multiple_choice but has no options", i+1)
			}
			options, ok := stringList(rawOptions)
			if !ok || len(options) < 2 {
				return nil, schemaErrf("quiz question %d must have at least two string options", i+1)
			}
			answer, ok := optionalString(q, "answer")
			if !ok || answer == "" {
				return nil, schemaErrf("quiz question %d is missing its answer", i+1)
			}
			found := false
			for _, opt := range options {
				if opt == answer {
					found = true
					break
				}
			}
			if !found {
				return nil, schemaErrf("quiz question %d answer %q is not one of its options", i+1, answer)
			}
			optAny := make([]any, 0, len(options))
			for _, opt := range options {
				optAny = append(optAny, opt)
			}
			norm["options"] = optAny
			norm["answer"] = answer

		case QuestionTrueFalse:
			answer, valid := coerceBool(q["answer"])
			if !valid {
				return nil, schemaErrf("quiz question %d is true_false but its answer is not true or false", i+1)
			}
			norm["answer"] = answer

		case QuestionShortAnswer:
			answer, ok := optionalString(q, "answer")
			if !ok || answer == "" {
				return nil, schemaErrf("quiz question %d is missing its answer", i+1)
			}
			norm["answer"] = answer

		default:
			return nil, schemaErrf("quiz question %d has unknown type %q (expected multiple_choice, true_false or short_answer)", i+1, qType)
		}

		if expl, ok := optionalString(q, "explanation"); ok && expl != "" {
			norm["explanation"] = expl
		}
		normQuestions = append(normQuestions, norm)
	}

	fields := map[string]any{
		"title":     title,
		"questions": normQuestions,
	}
	if raw, present := obj["time_limit"]; present {
		if limit, _, valid := coerceMinutes(raw); valid {
			fields["time_limit"] = limit
		}
	}
	copyOptionalStrings(obj, fields, "subject", "grade_level", "description")
	copyTags(obj, fields)

	return &Document{Kind: KindQuiz, Title: title, Fields: fields}, nil
}

func coerceBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}
