// Package server provides the HTTP REST API for the resume portfolio service.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-portfolio/internal/db"
	"github.com/jonathan/resume-portfolio/internal/parsing"
	"github.com/jonathan/resume-portfolio/internal/uploadtoken"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUploadNotFound indicates the upload token did not resolve to resume text
type ErrUploadNotFound struct{}

func (e *ErrUploadNotFound) Error() string {
	return "upload not found or expired"
}

// ErrUsernameTaken indicates the portfolio slug belongs to someone else
type ErrUsernameTaken struct {
	Username string
}

func (e *ErrUsernameTaken) Error() string {
	return fmt.Sprintf("username already taken: %s", e.Username)
}

// ErrInvalidManageToken indicates a missing or unverifiable manage token
type ErrInvalidManageToken struct{}

func (e *ErrInvalidManageToken) Error() string {
	return "manage token is missing or invalid"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var invalidToken *uploadtoken.InvalidTokenError
	var tokenValidation *uploadtoken.ValidationError
	var extraction *parsing.ExtractionError

	switch {
	case errors.As(err, &invalidToken):
		return http.StatusNotFound
	case errors.As(err, &tokenValidation):
		return http.StatusBadRequest
	case errors.As(err, &extraction):
		return http.StatusUnprocessableEntity
	case errors.Is(err, db.ErrPortfolioNotFound):
		return http.StatusNotFound
	}

	switch err.(type) {
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrUploadNotFound:
		return http.StatusNotFound
	case *ErrUsernameTaken:
		return http.StatusConflict
	case *ErrInvalidManageToken:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
