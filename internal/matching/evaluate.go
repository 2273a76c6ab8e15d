package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-portfolio/internal/llm"
	"github.com/jonathan/resume-portfolio/internal/parsing"
	"github.com/jonathan/resume-portfolio/internal/schemas"
	"github.com/jonathan/resume-portfolio/internal/types"
)

// Evaluator scores a resume against a job description via a chain of model
// strategies, falling back to the local heuristic scorer when all of them
// fail. Concurrent calls are independent; the only shared state is the model
// client, which is safe for concurrent use.
type Evaluator struct {
	client llm.Client
}

// NewEvaluator creates an evaluator. A nil client is allowed and routes every
// evaluation straight to the heuristic fallback.
func NewEvaluator(client llm.Client) *Evaluator {
	return &Evaluator{client: client}
}

// strategy is one model invocation style. Strategies share a uniform
// signature and are tried strictly in order, never raced.
type strategy struct {
	name string
	run  func(ctx context.Context, prompt string) (types.JobMatchResult, error)
}

// buildPrompt assembles the evaluation prompt. The anti-hallucination
// instructions apply to every strategy since they share this prompt.
func buildPrompt(sourceResume types.Resume, jobDescription string) string {
	resumeJSON, _ := json.Marshal(sourceResume)
	return strings.Join([]string{
		"You are an expert resume strategist and ATS evaluator.",
		"Evaluate job fit and regenerate a stronger resume while staying truthful to the candidate's profile.",
		"Return scores from 0 to 100.",
		"Improved score must be greater than or equal to original score.",
		"Do not invent fake employers, degrees, or achievements.",
		"Do not invent contact details or links.",
		"Keep fields concise and practical for a real resume.",
		"Keep `analysis` under 1200 characters.",
		"",
		"Output requirements:",
		"- Return only structured output matching the schema.",
		"- improvedResume must include keys: personal, contact, links, experience, projects, skills, education.",
		"",
		"Job description:\n" + jobDescription,
		"",
		"Current resume JSON:\n" + string(resumeJSON),
	}, "\n")
}

// parsePayload converts a decoded model object into a result. Scores and
// analysis must be present; the improved resume is coerced through the
// normalizer like any other untrusted payload.
func parsePayload(payload map[string]any) (types.JobMatchResult, error) {
	original, ok := payload["originalScore"].(float64)
	if !ok {
		return types.JobMatchResult{}, fmt.Errorf("missing or non-numeric originalScore")
	}
	improved, ok := payload["improvedScore"].(float64)
	if !ok {
		return types.JobMatchResult{}, fmt.Errorf("missing or non-numeric improvedScore")
	}
	analysis, ok := payload["analysis"].(string)
	if !ok || strings.TrimSpace(analysis) == "" {
		return types.JobMatchResult{}, fmt.Errorf("missing analysis text")
	}
	resumeRaw, ok := payload["improvedResume"].(map[string]any)
	if !ok {
		return types.JobMatchResult{}, fmt.Errorf("missing improvedResume object")
	}

	return types.JobMatchResult{
		OriginalScore:  original,
		ImprovedScore:  improved,
		ImprovedResume: parsing.Normalize(resumeRaw),
		Analysis:       strings.TrimSpace(analysis),
	}, nil
}

// structuredStrategy invokes the model with the derived response schema.
func (e *Evaluator) structuredStrategy(ctx context.Context, prompt string) (types.JobMatchResult, error) {
	text, err := e.client.GenerateStructured(ctx, prompt, schemas.JobMatchSchema().Genai())
	if err != nil {
		return types.JobMatchResult{}, err
	}
	payload, err := llm.ExtractJSONObjectLenient(text)
	if err != nil {
		return types.JobMatchResult{}, err
	}
	return parsePayload(payload)
}

// strictJSONStrategy invokes the model in JSON mode and validates the
// repaired response against the derived JSON Schema before accepting it.
func (e *Evaluator) strictJSONStrategy(ctx context.Context, prompt string) (types.JobMatchResult, error) {
	text, err := e.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return types.JobMatchResult{}, err
	}
	payload, err := llm.ExtractJSONObjectLenient(text)
	if err != nil {
		return types.JobMatchResult{}, err
	}

	document, err := json.Marshal(payload)
	if err != nil {
		return types.JobMatchResult{}, err
	}
	if err := schemas.ValidateJSONString(schemas.JobMatchSchema().JSONSchema(), string(document)); err != nil {
		return types.JobMatchResult{}, err
	}
	return parsePayload(payload)
}

// freeTextStrategy invokes the model with an even stricter plain-text
// instruction and extracts JSON by brace matching with repair.
func (e *Evaluator) freeTextStrategy(ctx context.Context, prompt string) (types.JobMatchResult, error) {
	strictPrompt := strings.Join([]string{
		prompt,
		"",
		"IMPORTANT:",
		"- Return ONLY valid JSON.",
		"- Do not include markdown, prose, or code fences.",
		"- Ensure all strings are properly escaped JSON strings.",
		"- Keep `analysis` concise (max 6 bullet-like sentences in plain text).",
	}, "\n")

	text, err := e.client.GenerateContent(ctx, strictPrompt)
	if err != nil {
		return types.JobMatchResult{}, err
	}
	payload, err := llm.ExtractJSONObjectLenient(text)
	if err != nil {
		return types.JobMatchResult{}, err
	}
	return parsePayload(payload)
}

// heuristicResult builds the terminal fallback result from the local scorer.
// The analysis text carries the per-strategy failure reasons so degraded
// evaluations stay diagnosable without raising an error.
func heuristicResult(source types.Resume, jobDescription string, reasons []string) types.JobMatchResult {
	originalScore := MatchScore(source, jobDescription)
	improvedScore := ClampScore(originalScore + 7)
	if improvedScore < originalScore {
		improvedScore = originalScore
	}

	improved := source
	if improved.Personal.Title == "" {
		improved.Personal.Title = "Software Engineer"
	}
	if improved.Personal.Summary == "" {
		improved.Personal.Summary = "Experienced software professional with strong technical foundations and adaptable problem-solving skills."
	}

	parts := []string{
		"Generated fallback evaluation because the model response could not be parsed reliably.",
		fmt.Sprintf("Estimated score improved from %g to %g based on keyword overlap and resume structure.", originalScore, improvedScore),
		"You can still review and edit the regenerated resume before applying changes.",
	}
	if len(reasons) > 0 {
		parts = append(parts, "Technical note: "+strings.Join(reasons, "; "))
	}

	return types.JobMatchResult{
		OriginalScore:  originalScore,
		ImprovedScore:  improvedScore,
		ImprovedResume: improved,
		Analysis:       strings.Join(parts, " "),
	}
}

// finalize applies the truthfulness guard and score invariants to whichever
// branch produced the result.
func finalize(result types.JobMatchResult, source types.Resume) types.JobMatchResult {
	result.ImprovedResume = applyTruthfulnessGuard(result.ImprovedResume, source)
	result.OriginalScore = ClampScore(result.OriginalScore)
	result.ImprovedScore = ClampScore(result.ImprovedScore)
	if result.ImprovedScore < result.OriginalScore {
		result.ImprovedScore = result.OriginalScore
	}
	result.Analysis = strings.TrimSpace(result.Analysis)
	return result
}

// Evaluate scores a resume payload against a job description. The input is
// coerced through the normalizer, so legacy shapes and untrusted JSON are
// accepted. Evaluate never returns an error: when every model strategy
// fails, the heuristic fallback result is returned instead.
func (e *Evaluator) Evaluate(ctx context.Context, resumeInput any, jobDescription string) types.JobMatchResult {
	source := parsing.Normalize(resumeInput)

	if e.client == nil {
		return finalize(heuristicResult(source, jobDescription, []string{"model client is not configured"}), source)
	}

	prompt := buildPrompt(source, jobDescription)
	strategies := []strategy{
		{name: "structured-output", run: e.structuredStrategy},
		{name: "strict-json", run: e.strictJSONStrategy},
		{name: "free-text", run: e.freeTextStrategy},
	}

	var reasons []string
	for _, s := range strategies {
		result, err := s.run(ctx, prompt)
		if err == nil {
			return finalize(result, source)
		}
		reasons = append(reasons, fmt.Sprintf("%s failed: %v", s.name, err))
	}

	return finalize(heuristicResult(source, jobDescription, reasons), source)
}
