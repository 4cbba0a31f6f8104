package content

// validateWorksheet requires a non-empty question list where every entry
// carries a problem and an answer.
func validateWorksheet(obj map[string]any) (*Document, error) {
	title, serr := requireString(obj, "title", KindWorksheet)
	if serr != nil {
		return nil, serr
	}

	questions, serr := requireObjectList(obj, "questions", KindWorksheet)
	if serr != nil {
		return nil, serr
	}

	normQuestions := make([]any, 0, len(questions))
	for i, q := range questions {
		problem, ok := optionalString(q, "problem")
		if !ok || problem == "" {
			return nil, schemaErrf("worksheet question %d is missing its problem", i+1)
		}
		answer, ok := optionalString(q, "answer")
		if !ok || answer == "" {
			return nil, schemaErrf("worksheet question %d is missing its answer", i+1)
		}
		norm := map[string]any{
			"problem": problem,
			"answer":  answer,
		}
		if hint, ok := optionalString(q, "hint"); ok && hint != "" {
			norm["hint"] = hint
		}
		normQuestions = append(normQuestions, norm)
	}

	fields := map[string]any{
		"title":     title,
		"questions": normQuestions,
	}
	if instructions, ok := optionalString(obj, "instructions"); ok && instructions != "" {
		fields["instructions"] = instructions
	}
	copyOptionalStrings(obj, fields, "subject", "grade_level", "description")
	copyTags(obj, fields)

	return &Document{Kind: KindWorksheet, Title: title, Fields: fields}, nil
}
