package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/resume-portfolio/internal/types"
)

// SaveJobMatch persists an evaluation result and returns its store-assigned
// record ID.
func (db *DB) SaveJobMatch(ctx context.Context, jobDescription string, result types.JobMatchResult) (uuid.UUID, error) {
	resumeJSON, err := json.Marshal(result.ImprovedResume)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal improved resume: %w", err)
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO job_matches (id, job_description, original_score, improved_score, improved_resume_json, analysis_text)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, jobDescription, result.OriginalScore, result.ImprovedScore, resumeJSON, result.Analysis,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save job match: %w", err)
	}
	return id, nil
}
