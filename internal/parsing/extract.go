package parsing

import (
	"context"
	"strings"

	"github.com/jonathan/resume-portfolio/internal/llm"
	"github.com/jonathan/resume-portfolio/internal/schemas"
	"github.com/jonathan/resume-portfolio/internal/types"
)

// Extractor turns raw resume text into a structured resume using the model,
// with the heuristic pass as baseline and fallback.
type Extractor struct {
	client llm.Client
}

// NewExtractor creates an extractor backed by the given model client.
func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{client: client}
}

// buildExtractionPrompt constructs the extraction prompt. The schema example
// embedded in it is derived from the canonical resume schema definition.
func buildExtractionPrompt(resumeText string) string {
	return strings.Join([]string{
		"You are a resume parser. Extract ALL relevant details from the resume text.",
		"Return ONLY valid JSON (no markdown, no code fences, no commentary).",
		"Use empty strings or empty arrays when a field is missing.",
		"Keep descriptions concise.",
		"If an email/URL is unclear, return an empty string instead of invalid format.",
		"",
		"Schema:",
		schemas.ResumeSchema().PromptExample(),
		"",
		"Resume text:",
		resumeText,
	}, "\n")
}

// mergeResume overlays the model result on the heuristic baseline: scalar
// fields prefer the model's non-empty value, list sections are taken
// wholesale from whichever side is non-empty, model first.
func mergeResume(primary, fallback types.Resume) types.Resume {
	pick := func(a, b string) string {
		if a != "" {
			return a
		}
		return b
	}

	merged := types.Resume{
		Personal: types.Personal{
			Name:           pick(primary.Personal.Name, fallback.Personal.Name),
			Title:          pick(primary.Personal.Title, fallback.Personal.Title),
			Summary:        pick(primary.Personal.Summary, fallback.Personal.Summary),
			Photo:          pick(primary.Personal.Photo, fallback.Personal.Photo),
			PrimaryPhoto:   pick(primary.Personal.PrimaryPhoto, fallback.Personal.PrimaryPhoto),
			SecondaryPhoto: pick(primary.Personal.SecondaryPhoto, fallback.Personal.SecondaryPhoto),
		},
		Contact: types.Contact{
			Email:    pick(primary.Contact.Email, fallback.Contact.Email),
			Phone:    pick(primary.Contact.Phone, fallback.Contact.Phone),
			Location: pick(primary.Contact.Location, fallback.Contact.Location),
		},
		Links: types.Links{
			GitHub:    pick(primary.Links.GitHub, fallback.Links.GitHub),
			LinkedIn:  pick(primary.Links.LinkedIn, fallback.Links.LinkedIn),
			Twitter:   pick(primary.Links.Twitter, fallback.Links.Twitter),
			Portfolio: pick(primary.Links.Portfolio, fallback.Links.Portfolio),
		},
		Experience: primary.Experience,
		Projects:   primary.Projects,
		Skills:     primary.Skills,
		Education:  primary.Education,
	}

	if len(merged.Experience) == 0 {
		merged.Experience = fallback.Experience
	}
	if len(merged.Projects) == 0 {
		merged.Projects = fallback.Projects
	}
	if len(merged.Skills) == 0 {
		merged.Skills = fallback.Skills
	}
	if len(merged.Education) == 0 {
		merged.Education = fallback.Education
	}
	return merged
}

// extractViaModel runs one model call and merges the normalized result over
// the heuristic baseline.
func (e *Extractor) extractViaModel(ctx context.Context, prompt string, fallback types.Resume) (types.Resume, error) {
	responseText, err := e.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return types.Resume{}, &APICallError{Message: "resume extraction call failed", Cause: err}
	}

	payload, err := llm.ExtractJSONObject(responseText)
	if err != nil {
		return types.Resume{}, &ParseError{Message: "resume extraction response", Cause: err}
	}

	return mergeResume(Normalize(payload), fallback), nil
}

// ExtractResume extracts a structured resume from raw text. The heuristic
// baseline is computed first; the model call is retried once with a stricter
// prompt, and the heuristic result alone is returned when the model cannot
// produce usable content. It fails only when nothing qualifies.
func (e *Extractor) ExtractResume(ctx context.Context, resumeText string) (types.Resume, error) {
	fallback := ExtractHeuristically(resumeText)

	if e.client != nil {
		schemaPrompt := buildExtractionPrompt(resumeText)
		strictPrompt := schemaPrompt + "\n\nIMPORTANT: Output ONLY a JSON object. No prose, no markdown. Start with '{' and end with '}'."

		for _, prompt := range []string{schemaPrompt, strictPrompt} {
			merged, err := e.extractViaModel(ctx, prompt, fallback)
			if err == nil && merged.HasContent() {
				return merged, nil
			}
		}
	}

	if fallback.HasContent() {
		return fallback, nil
	}

	return types.Resume{}, &ExtractionError{Message: "could not extract structured resume data from the document"}
}
