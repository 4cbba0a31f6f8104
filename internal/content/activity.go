package content

// validateActivity requires a title, an objective and step-by-step
// instructions.
func validateActivity(obj map[string]any) (*Document, error) {
	title, serr := requireString(obj, "title", KindActivity)
	if serr != nil {
		return nil, serr
	}

	objective, serr := requireString(obj, "objective", KindActivity)
	if serr != nil {
		return nil, serr
	}

	rawInstructions, present := obj["instructions"]
	if !present {
		return nil, schemaErrf("activity is missing required field \"instructions\"")
	}
	var instructions []string
	switch rawInstructions.(type) {
	case string:
		if s, ok := optionalString(obj, "instructions"); ok && s != "" {
			instructions = []string{s}
		}
	default:
		instructions, _ = stringList(rawInstructions)
	}
	if len(instructions) == 0 {
		return nil, schemaErrf("activity field \"instructions\" must be a non-empty string or list of strings")
	}
	instAny := make([]any, 0, len(instructions))
	for _, ins := range instructions {
		instAny = append(instAny, ins)
	}

	fields := map[string]any{
		"title":        title,
		"objective":    objective,
		"instructions": instAny,
	}
	if raw, present := obj["duration"]; present {
		if d, _, valid := coerceMinutes(raw); valid {
			fields["duration"] = d
		}
	}
	if rawMaterials, present := obj["materials"]; present {
		if materials, ok := stringList(rawMaterials); ok && len(materials) > 0 {
			matAny := make([]any, 0, len(materials))
			for _, m := range materials {
				matAny = append(matAny, m)
			}
			fields["materials"] = matAny
		}
	}
	copyOptionalStrings(obj, fields, "subject", "grade_level", "description")
	copyTags(obj, fields)

	return &Document{Kind: KindActivity, Title: title, Fields: fields}, nil
}
