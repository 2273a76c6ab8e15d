// Package matching evaluates a resume against a job description, producing a
// score pair, an improved resume, and analysis text. Model strategies are
// tried in decreasing strictness and degrade to a local heuristic scorer, so
// evaluation never fails outward.
package matching

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/resume-portfolio/internal/types"
)

var tokenPattern = regexp.MustCompile(`[a-z0-9+#.-]{3,}`)

// stopWords are common English and job-posting filler tokens excluded from
// keyword matching.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "from": true, "have": true, "will": true, "your": true,
	"you": true, "are": true, "our": true, "their": true, "about": true,
	"into": true, "through": true, "role": true, "required": true,
	"skills": true, "experience": true, "team": true, "work": true, "job": true,
}

// ClampScore bounds a score to [0, 100] with one decimal of precision.
func ClampScore(value float64) float64 {
	rounded := math.Round(value*10) / 10
	return math.Max(0, math.Min(100, rounded))
}

// tokenize lowercases the text and returns its distinct non-stop-word tokens
// in first-seen order.
func tokenize(text string) []string {
	seen := map[string]bool{}
	var tokens []string
	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if stopWords[token] || seen[token] {
			continue
		}
		seen[token] = true
		tokens = append(tokens, token)
	}
	return tokens
}

// resumeCorpus concatenates the searchable narrative text of a resume:
// title, summary, skills, experience roles and descriptions, and project
// names, descriptions, and tech lists.
func resumeCorpus(resume types.Resume) string {
	var parts []string
	parts = append(parts, resume.Personal.Title, resume.Personal.Summary)
	parts = append(parts, strings.Join(resume.Skills, " "))
	for _, exp := range resume.Experience {
		parts = append(parts, exp.Role+" "+exp.Description)
	}
	for _, proj := range resume.Projects {
		parts = append(parts, proj.Name+" "+proj.Description+" "+strings.Join(proj.Tech, " "))
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// MatchScore computes a deterministic keyword-overlap score in [0, 100].
// A job description with no usable tokens scores a fixed baseline of 30;
// otherwise the score is 20 plus coverage-weighted 55 plus a structure bonus
// of up to 25 (skills 8, experience 8, projects 5, education 4).
func MatchScore(resume types.Resume, jobDescription string) float64 {
	jdTokens := tokenize(jobDescription)
	if len(jdTokens) == 0 {
		return 30
	}

	corpus := resumeCorpus(resume)

	overlap := 0
	for _, token := range jdTokens {
		if strings.Contains(corpus, token) {
			overlap++
		}
	}
	coverage := float64(overlap) / float64(len(jdTokens))

	bonus := 0.0
	if len(resume.Skills) > 0 {
		bonus += 8
	}
	if len(resume.Experience) > 0 {
		bonus += 8
	}
	if len(resume.Projects) > 0 {
		bonus += 5
	}
	if len(resume.Education) > 0 {
		bonus += 4
	}

	return ClampScore(20 + coverage*55 + bonus)
}
