package content

// validateProject requires a title, an overview and ordered steps. A model
// that emits "description" instead of "overview" still validates.
func validateProject(obj map[string]any) (*Document, error) {
	title, serr := requireString(obj, "title", KindProject)
	if serr != nil {
		return nil, serr
	}

	overview, ok := optionalString(obj, "overview")
	if !ok || overview == "" {
		overview, ok = optionalString(obj, "description")
		if !ok || overview == "" {
			return nil, schemaErrf("project is missing required field \"overview\"")
		}
	}

	rawSteps, present := obj["steps"]
	if !present {
		return nil, schemaErrf("project is missing required field \"steps\"")
	}
	steps, ok := stringList(rawSteps)
	if !ok || len(steps) == 0 {
		return nil, schemaErrf("project field \"steps\" must be a non-empty list of strings")
	}
	stepAny := make([]any, 0, len(steps))
	for _, s := range steps {
		stepAny = append(stepAny, s)
	}

	fields := map[string]any{
		"title":    title,
		"overview": overview,
		"steps":    stepAny,
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
	copyOptionalStrings(obj, fields, "subject", "grade_level")
	copyTags(obj, fields)

	return &Document{Kind: KindProject, Title: title, Fields: fields}, nil
}
