package content

// validatePresentation requires a non-empty slide deck; every slide needs a
// title and either body text or bullet points.
func validatePresentation(obj map[string]any) (*Document, error) {
	title, serr := requireString(obj, "title", KindPresentation)
	if serr != nil {
		return nil, serr
	}

	slides, serr := requireObjectList(obj, "slides", KindPresentation)
	if serr != nil {
		return nil, serr
	}

	normSlides := make([]any, 0, len(slides))
	for i, s := range slides {
		slideTitle, ok := optionalString(s, "title")
		if !ok || slideTitle == "" {
			return nil, schemaErrf("presentation slide %d is missing a title", i+1)
		}
		norm := map[string]any{"title": slideTitle}

		body, hasBody := optionalString(s, "content")
		var bullets []string
		if rawBullets, present := s["bullets"]; present {
			bullets, _ = stringList(rawBullets)
		}
		switch {
		case len(bullets) > 0:
			bulletAny := make([]any, 0, len(bullets))
			for _, b := range bullets {
				bulletAny = append(bulletAny, b)
			}
			norm["bullets"] = bulletAny
			if hasBody && body != "" {
				norm["content"] = body
			}
		case hasBody && body != "":
			norm["content"] = body
		default:
			return nil, schemaErrf("presentation slide %d (%s) has neither content nor bullets", i+1, slideTitle)
		}
		normSlides = append(normSlides, norm)
	}

	fields := map[string]any{
		"title":  title,
		"slides": normSlides,
	}
	copyOptionalStrings(obj, fields, "subject", "grade_level", "description")
	copyTags(obj, fields)

	return &Document{Kind: KindPresentation, Title: title, Fields: fields}, nil
}
