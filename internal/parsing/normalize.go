// Package parsing turns raw resume text and untrusted JSON-like payloads into
// the canonical structured resume via lenient coercion, a deterministic
// heuristic pass, and LLM-backed extraction.
package parsing

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/jonathan/resume-portfolio/internal/types"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	listSplitter  = regexp.MustCompile(`\n|,|\||•|·`)
	schemePrefix  = regexp.MustCompile(`(?i)^https?://`)
	bareWWWPrefix = regexp.MustCompile(`(?i)^www\.`)
)

// asObject returns the input as a map when it is a JSON object, or an empty
// map for anything else (nil, scalars, arrays).
func asObject(input any) map[string]any {
	if m, ok := input.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// toText coerces a scalar to trimmed text. Numbers and booleans stringify;
// everything else becomes empty.
func toText(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case int:
		return fmt.Sprintf("%d", v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		return ""
	}
}

// firstText returns the first non-empty coerced text among the candidates.
// Used to lift legacy flat payloads where fields sit at the root.
func firstText(values ...any) string {
	for _, v := range values {
		if text := toText(v); text != "" {
			return text
		}
	}
	return ""
}

// toValidEmail returns the text when it matches a simple email pattern,
// otherwise empty.
func toValidEmail(value any) string {
	text := toText(value)
	if text == "" {
		return ""
	}
	if emailPattern.MatchString(text) {
		return text
	}
	return ""
}

// toValidURL parses the text as a URL, accepting bare www. prefixes by
// assuming https. Invalid URLs become empty.
func toValidURL(value any) string {
	text := toText(value)
	if text == "" {
		return ""
	}

	if !schemePrefix.MatchString(text) && bareWWWPrefix.MatchString(text) {
		text = "https://" + text
	}

	parsed, err := url.Parse(text)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	return parsed.String()
}

// toStringList accepts either an array or a delimited string. Strings split
// on newlines, commas, pipes, and bullet characters; entries are trimmed and
// empties dropped.
func toStringList(value any) []string {
	if items, ok := value.([]any); ok {
		out := make([]string, 0, len(items))
		for _, item := range items {
			if text := toText(item); text != "" {
				out = append(out, text)
			}
		}
		return out
	}

	text := toText(value)
	if text == "" {
		return []string{}
	}

	parts := listSplitter.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// normalizeExperience coerces an experience array, dropping entries whose
// meaningful text fields are all empty so sparse model output does not
// persist blank rows.
func normalizeExperience(value any) []types.Experience {
	items, ok := value.([]any)
	if !ok {
		return []types.Experience{}
	}

	out := make([]types.Experience, 0, len(items))
	for _, raw := range items {
		item := asObject(raw)
		entry := types.Experience{
			Company:     toText(item["company"]),
			Role:        toText(item["role"]),
			StartDate:   toText(item["startDate"]),
			EndDate:     toText(item["endDate"]),
			Description: toText(item["description"]),
		}
		if entry.Company == "" && entry.Role == "" && entry.Description == "" {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// normalizeProjects coerces a projects array, dropping entries with nothing
// meaningful in them.
func normalizeProjects(value any) []types.Project {
	items, ok := value.([]any)
	if !ok {
		return []types.Project{}
	}

	out := make([]types.Project, 0, len(items))
	for _, raw := range items {
		item := asObject(raw)
		entry := types.Project{
			Name:        toText(item["name"]),
			Description: toText(item["description"]),
			Tech:        toStringList(item["tech"]),
			Link:        toValidURL(item["link"]),
		}
		if entry.Name == "" && entry.Description == "" && len(entry.Tech) == 0 {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// Normalize coerces arbitrary JSON-like input into a fully-shaped resume.
// It accepts the legacy flat shape (name/email/github at the root) as well as
// the nested canonical shape, and never fails: garbage degrades to empty
// defaults rather than errors.
func Normalize(input any) types.Resume {
	// Already-typed resumes and raw JSON take the same path as generic maps
	// so every input is subject to the same coercion rules.
	switch v := input.(type) {
	case types.Resume:
		if data, err := json.Marshal(v); err == nil {
			var generic any
			_ = json.Unmarshal(data, &generic)
			input = generic
		}
	case json.RawMessage:
		var generic any
		_ = json.Unmarshal(v, &generic)
		input = generic
	case []byte:
		var generic any
		_ = json.Unmarshal(v, &generic)
		input = generic
	}

	root := asObject(input)
	personalRaw := asObject(root["personal"])
	contactRaw := asObject(root["contact"])
	linksRaw := asObject(root["links"])

	personal := types.Personal{
		Name:           firstText(personalRaw["name"], root["name"]),
		Title:          firstText(personalRaw["title"], root["title"]),
		Summary:        firstText(personalRaw["summary"], root["summary"]),
		Photo:          toValidURL(personalRaw["photo"]),
		PrimaryPhoto:   toValidURL(personalRaw["primaryPhoto"]),
		SecondaryPhoto: toValidURL(personalRaw["secondaryPhoto"]),
	}

	// Keep photo and primaryPhoto aligned for older payloads.
	if personal.PrimaryPhoto == "" && personal.Photo != "" {
		personal.PrimaryPhoto = personal.Photo
	}
	if personal.Photo == "" && personal.PrimaryPhoto != "" {
		personal.Photo = personal.PrimaryPhoto
	}

	return types.Resume{
		Personal: personal,
		Contact: types.Contact{
			Email:    toValidEmail(firstText(contactRaw["email"], root["email"])),
			Phone:    firstText(contactRaw["phone"], root["phone"]),
			Location: firstText(contactRaw["location"], root["location"]),
		},
		Links: types.Links{
			GitHub:    toValidURL(firstText(linksRaw["github"], root["github"])),
			LinkedIn:  toValidURL(firstText(linksRaw["linkedin"], root["linkedin"])),
			Twitter:   toValidURL(firstText(linksRaw["twitter"], root["twitter"])),
			Portfolio: toValidURL(firstText(linksRaw["portfolio"], root["portfolio"])),
		},
		Experience: normalizeExperience(root["experience"]),
		Projects:   normalizeProjects(root["projects"]),
		Skills:     toStringList(root["skills"]),
		Education:  toStringList(root["education"]),
	}
}
