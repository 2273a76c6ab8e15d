package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-portfolio/internal/types"
)

// ErrPortfolioNotFound indicates no public portfolio exists for a username.
var ErrPortfolioNotFound = errors.New("portfolio not found")

// UpsertPortfolio publishes or republishes a resume under a username slug.
// Usernames are stored lowercase.
func (db *DB) UpsertPortfolio(ctx context.Context, p types.Portfolio) error {
	resumeJSON, err := json.Marshal(p.Resume)
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO portfolios (username, template, resume_json, is_public)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (username) DO UPDATE
		 SET template = $2, resume_json = $3, is_public = $4, updated_at = NOW()`,
		strings.ToLower(p.Username), p.Template, resumeJSON, p.IsPublic,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert portfolio: %w", err)
	}
	return nil
}

// GetPortfolio returns the portfolio for a username. Unpublished portfolios
// return ErrPortfolioNotFound, same as missing ones.
func (db *DB) GetPortfolio(ctx context.Context, username string) (types.Portfolio, error) {
	var (
		p          types.Portfolio
		resumeJSON []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT username, template, resume_json, is_public
		 FROM portfolios WHERE username = $1`,
		strings.ToLower(username),
	).Scan(&p.Username, &p.Template, &resumeJSON, &p.IsPublic)
	if errors.Is(err, pgx.ErrNoRows) {
		return types.Portfolio{}, ErrPortfolioNotFound
	}
	if err != nil {
		return types.Portfolio{}, fmt.Errorf("failed to load portfolio: %w", err)
	}
	if !p.IsPublic {
		return types.Portfolio{}, ErrPortfolioNotFound
	}

	if err := json.Unmarshal(resumeJSON, &p.Resume); err != nil {
		return types.Portfolio{}, fmt.Errorf("failed to decode stored resume: %w", err)
	}
	return p, nil
}

// PortfolioExists reports whether any record (public or not) holds the slug.
func (db *DB) PortfolioExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM portfolios WHERE username = $1)`,
		strings.ToLower(username),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check portfolio: %w", err)
	}
	return exists, nil
}

// UnpublishPortfolio flips a portfolio to private.
func (db *DB) UnpublishPortfolio(ctx context.Context, username string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE portfolios SET is_public = FALSE, updated_at = NOW() WHERE username = $1`,
		strings.ToLower(username),
	)
	if err != nil {
		return fmt.Errorf("failed to unpublish portfolio: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPortfolioNotFound
	}
	return nil
}
