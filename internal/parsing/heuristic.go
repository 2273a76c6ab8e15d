package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-portfolio/internal/types"
)

var (
	anyEmailPattern = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	phonePattern    = regexp.MustCompile(`(?:\+?\d{1,3}[\s-]?)?(?:\(?\d{2,4}\)?[\s-]?)?\d{3,4}[\s-]?\d{3,4}`)
	urlTokenPattern = regexp.MustCompile(`(?i)(?:https?://|www\.)[^\s)]+`)
	namePattern     = regexp.MustCompile(`^[A-Za-z][A-Za-z .'-]{2,40}$`)
	titlePattern    = regexp.MustCompile(`(?i)(engineer|developer|designer|manager|analyst|consultant|architect|specialist|lead|intern|scientist)`)
	headingPattern  = regexp.MustCompile(`(?i)^(summary|profile|experience|work experience|employment|projects?|skills?|education|certifications?|contact|links?)\b`)
	genericHeading  = regexp.MustCompile(`(?i)^(summary|profile|experience|work experience|employment|projects?|skills?|education|certifications?|contact|links?)\b[: ]*$`)
	skillsSplitter  = regexp.MustCompile(`,|\||•|·`)
)

// splitLines breaks text into trimmed non-empty lines.
func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// findSectionLines collects up to maxLines lines following the first line
// that matches one of the given headings. Collection stops early at the next
// generic section heading.
func findSectionLines(lines []string, headings []string, maxLines int) []string {
	matcher := regexp.MustCompile(`(?i)^(` + strings.Join(headings, "|") + `)\b[: ]*$`)

	start := -1
	for i, line := range lines {
		if matcher.MatchString(line) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	var collected []string
	for i := start + 1; i < len(lines) && len(collected) < maxLines; i++ {
		if genericHeading.MatchString(lines[i]) {
			break
		}
		collected = append(collected, lines[i])
	}
	return collected
}

// classifyURLs buckets collected URL tokens into known profile hosts; the
// first URL matching none of them becomes the portfolio link.
func classifyURLs(urls []string) types.Links {
	var links types.Links
	for _, u := range urls {
		lower := strings.ToLower(u)
		switch {
		case strings.Contains(lower, "github.com"):
			if links.GitHub == "" {
				links.GitHub = u
			}
		case strings.Contains(lower, "linkedin.com"):
			if links.LinkedIn == "" {
				links.LinkedIn = u
			}
		case strings.Contains(lower, "twitter.com") || strings.Contains(lower, "x.com"):
			if links.Twitter == "" {
				links.Twitter = u
			}
		default:
			if links.Portfolio == "" {
				links.Portfolio = u
			}
		}
	}
	return links
}

// ExtractHeuristically produces a best-effort structured resume from raw text
// with no model call. It is a deliberately approximate parser used as a
// safety net and merge source, not a primary extraction path: experience
// entries carry only the raw line as role and description.
func ExtractHeuristically(resumeText string) types.Resume {
	lines := splitLines(resumeText)

	email := anyEmailPattern.FindString(resumeText)
	phone := phonePattern.FindString(resumeText)

	seen := map[string]bool{}
	var urls []string
	for _, u := range urlTokenPattern.FindAllString(resumeText, -1) {
		if !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}
	links := classifyURLs(urls)

	var topLines []string
	for _, line := range lines {
		if len(topLines) >= 8 {
			break
		}
		topLines = append(topLines, line)
	}
	candidates := make([]string, 0, len(topLines))
	for _, line := range topLines {
		if !headingPattern.MatchString(line) {
			candidates = append(candidates, line)
		}
	}

	var name string
	for _, line := range candidates {
		if namePattern.MatchString(line) && len(strings.Fields(line)) <= 5 {
			name = line
			break
		}
	}

	var title string
	for _, line := range candidates {
		if titlePattern.MatchString(line) {
			title = line
			break
		}
	}

	summaryLines := findSectionLines(lines, []string{"summary", "profile"}, 5)
	summary := strings.Join(summaryLines, " ")
	if summary == "" && len(candidates) > 2 {
		end := len(candidates)
		if end > 5 {
			end = 5
		}
		summary = strings.Join(candidates[2:end], " ")
	}

	skillsSection := findSectionLines(lines, []string{"skills", "technical skills"}, 10)
	var skills []string
	for _, part := range skillsSplitter.Split(strings.Join(skillsSection, " | "), -1) {
		if trimmed := strings.TrimSpace(part); len(trimmed) > 1 {
			skills = append(skills, trimmed)
		}
	}

	educationSection := findSectionLines(lines, []string{"education", "academic background"}, 8)
	var education []string
	for _, line := range educationSection {
		if len(line) > 2 {
			education = append(education, line)
		}
	}

	experienceSection := findSectionLines(lines, []string{"experience", "work experience", "employment"}, 20)
	var experience []map[string]any
	for _, line := range experienceSection {
		if len(experience) >= 6 {
			break
		}
		if len(line) <= 5 {
			continue
		}
		experience = append(experience, map[string]any{
			"company":     "",
			"role":        line,
			"startDate":   "",
			"endDate":     "",
			"description": line,
		})
	}

	skillsAny := make([]any, len(skills))
	for i, s := range skills {
		skillsAny[i] = s
	}
	educationAny := make([]any, len(education))
	for i, e := range education {
		educationAny[i] = e
	}
	experienceAny := make([]any, len(experience))
	for i, e := range experience {
		experienceAny[i] = e
	}

	return Normalize(map[string]any{
		"personal": map[string]any{
			"name":    name,
			"title":   title,
			"summary": summary,
		},
		"contact": map[string]any{
			"email":    email,
			"phone":    phone,
			"location": "",
		},
		"links": map[string]any{
			"github":    links.GitHub,
			"linkedin":  links.LinkedIn,
			"twitter":   links.Twitter,
			"portfolio": links.Portfolio,
		},
		"experience": experienceAny,
		"projects":   []any{},
		"skills":     skillsAny,
		"education":  educationAny,
	})
}
