package content

import (
	"regexp"
	"strings"
)

const maxDerivedTags = 8

type subjectRule struct {
	tag      string
	keywords []string
}

// Ordered so derived tags come out deterministic.
var subjectRules = []subjectRule{
	{"math", []string{"math", "algebra", "geometry", "fraction", "multiplication", "division", "arithmetic", "equation"}},
	{"science", []string{"science", "biology", "chemistry", "physics", "ecosystem", "photosynthesis", "experiment", "cell"}},
	{"history", []string{"history", "revolution", "ancient", "civil war", "empire", "medieval"}},
	{"reading", []string{"reading", "literature", "novel", "poem", "poetry", "comprehension", "vocabulary", "grammar"}},
	{"writing", []string{"writing", "essay", "paragraph", "narrative", "persuasive"}},
	{"geography", []string{"geography", "continent", "map skills", "climate", "landform"}},
	{"art", []string{"art class", "painting", "drawing", "sculpture", "collage"}},
	{"music", []string{"music", "rhythm", "melody", "instrument"}},
	{"social-studies", []string{"social studies", "community", "government", "civics", "economics"}},
}

var gradePattern = regexp.MustCompile(`(?i)\b(?:grade\s+(\d{1,2})|(\d{1,2})(?:st|nd|rd|th)\s+grade)\b`)

// DeriveTags returns a best-effort tag set for an artifact. Explicit tags
// from the validated document win when present; otherwise tags are guessed
// from the title, subject and description text. Never fails; an empty
// result is fine.
func DeriveTags(doc *Document) []string {
	if doc == nil {
		return nil
	}
	if raw, present := doc.Fields["tags"]; present {
		if explicit, ok := stringList(raw); ok && len(explicit) > 0 {
			return dedupeTags(explicit)
		}
	}

	var text strings.Builder
	text.WriteString(doc.Title)
	for _, key := range []string{"subject", "description", "objective"} {
		if s, ok := optionalString(doc.Fields, key); ok && s != "" {
			text.WriteString(" ")
			text.WriteString(s)
		}
	}
	haystack := strings.ToLower(text.String())

	var tags []string
	for _, rule := range subjectRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				tags = append(tags, rule.tag)
				break
			}
		}
	}
	if m := gradePattern.FindStringSubmatch(haystack); m != nil {
		grade := m[1]
		if grade == "" {
			grade = m[2]
		}
		tags = append(tags, "grade-"+grade)
	}
	tags = append(tags, strings.ReplaceAll(string(doc.Kind), "_", "-"))
	return dedupeTags(tags)
}

func dedupeTags(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) == maxDerivedTags {
			break
		}
	}
	return out
}
