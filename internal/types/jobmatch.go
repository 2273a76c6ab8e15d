package types

import (
	"time"

	"github.com/google/uuid"
)

// JobMatchResult is the output of a job-fit evaluation. Scores are in
// [0, 100] with one decimal of precision and ImprovedScore is always at
// least OriginalScore. ImprovedResume preserves the source resume's
// identity, contact, and link fields verbatim.
type JobMatchResult struct {
	OriginalScore  float64 `json:"originalScore"`
	ImprovedScore  float64 `json:"improvedScore"`
	ImprovedResume Resume  `json:"improvedResume"`
	Analysis       string  `json:"analysis"`
}

// JobMatchRecord is a persisted evaluation, identified by a store-assigned
// UUID rather than an in-process sequence.
type JobMatchRecord struct {
	ID             uuid.UUID `json:"id"`
	JobDescription string    `json:"job_description"`
	OriginalScore  float64   `json:"original_score"`
	ImprovedScore  float64   `json:"improved_score"`
	ImprovedResume Resume    `json:"improved_resume"`
	Analysis       string    `json:"analysis"`
	CreatedAt      time.Time `json:"created_at"`
}

// Portfolio is a published resume page record keyed by username slug.
type Portfolio struct {
	Username string `json:"username"`
	Template string `json:"template"`
	Resume   Resume `json:"resume_json"`
	IsPublic bool   `json:"is_public"`
}
