package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-portfolio/internal/db"
	"github.com/jonathan/resume-portfolio/internal/ingestion"
	"github.com/jonathan/resume-portfolio/internal/parsing"
	"github.com/jonathan/resume-portfolio/internal/types"
)

// maxUploadBytes caps resume uploads at 10 MB.
const maxUploadBytes = 10 << 20

// usernamePattern constrains portfolio slugs to lowercase alphanumerics and
// hyphens, 3 to 30 characters.
var usernamePattern = regexp.MustCompile(`^[a-z0-9-]{3,30}$`)

// UploadResponse represents the response for /api/resume/upload
type UploadResponse struct {
	UploadID   string `json:"uploadId"`
	Characters int    `json:"characters"`
}

// EvaluateResponse represents the response for /api/job-match/evaluate
type EvaluateResponse struct {
	ID             string       `json:"id,omitempty"`
	OriginalScore  float64      `json:"originalScore"`
	ImprovedScore  float64      `json:"improvedScore"`
	ImprovedResume types.Resume `json:"improvedResume"`
	Analysis       string       `json:"analysis"`
}

// DeployResponse represents the response for /api/portfolio/deploy
type DeployResponse struct {
	Username    string `json:"username"`
	URL         string `json:"url"`
	ManageToken string `json:"manageToken,omitempty"`
}

// handleUpload accepts a multipart PDF upload, extracts its text, and
// returns a signed upload token for the parse step.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		s.errorResponse(w, http.StatusBadRequest, "only PDF uploads are supported")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read upload: "+err.Error())
		return
	}

	text, err := ingestion.ExtractPDFText(data)
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, "failed to extract text: "+err.Error())
		return
	}

	token, err := s.uploadCodec.Encode(text)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, UploadResponse{UploadID: token, Characters: len(text)})
}

// handleParse resolves an upload token back to text and runs structured
// resume extraction on it.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req types.ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "uploadId is required")
		return
	}

	text, err := s.uploadCodec.Decode(req.UploadID)
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusNotFound {
			s.errorResponse(w, status, (&ErrUploadNotFound{}).Error())
			return
		}
		s.errorResponse(w, status, err.Error())
		return
	}

	resume, err := s.extractor.ExtractResume(r.Context(), text)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}

// handleEvaluate scores a resume against a job description and persists
// the evaluation.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req types.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "resume and jobDescription are required")
		return
	}

	result := s.evaluator.Evaluate(r.Context(), req.Resume, req.JobDescription)

	resp := EvaluateResponse{
		OriginalScore:  result.OriginalScore,
		ImprovedScore:  result.ImprovedScore,
		ImprovedResume: result.ImprovedResume,
		Analysis:       result.Analysis,
	}

	// Persistence is best effort, the evaluation itself is the product.
	id, err := s.store.SaveJobMatch(r.Context(), req.JobDescription, result)
	if err != nil {
		log.Printf("Failed to persist job match: %v", err)
	} else if id != uuid.Nil {
		resp.ID = id.String()
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleDeploy publishes a resume under a username slug. The first deploy
// of a slug returns a manage token; later deploys of the same slug must
// present it.
func (s *Server) handleDeploy(w http.ResponseWriter, r *http.Request) {
	var req types.DeployRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "username, template, and resume are required")
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	if !usernamePattern.MatchString(username) {
		s.errorResponse(w, http.StatusBadRequest, "username must be 3-30 lowercase letters, digits, or hyphens")
		return
	}

	exists, err := s.store.PortfolioExists(r.Context(), username)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to check username: "+err.Error())
		return
	}
	if exists {
		if err := s.manageTokens.ValidateToken(req.ManageToken, username); err != nil {
			s.errorResponse(w, HTTPStatus(&ErrUsernameTaken{Username: username}), (&ErrUsernameTaken{Username: username}).Error())
			return
		}
	}

	portfolio := types.Portfolio{
		Username: username,
		Template: req.Template,
		Resume:   parsing.Normalize(req.Resume),
		IsPublic: true,
	}
	if err := s.store.UpsertPortfolio(r.Context(), portfolio); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to save portfolio: "+err.Error())
		return
	}

	resp := DeployResponse{Username: username, URL: "/api/portfolio/" + username}
	if !exists {
		token, err := s.manageTokens.GenerateToken(username)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "failed to issue manage token: "+err.Error())
			return
		}
		resp.ManageToken = token
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleGetPortfolio returns a published portfolio by username.
func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	username := strings.ToLower(r.PathValue("username"))
	if !usernamePattern.MatchString(username) {
		s.errorResponse(w, http.StatusBadRequest, "invalid username")
		return
	}

	portfolio, err := s.store.GetPortfolio(r.Context(), username)
	if err != nil {
		if errors.Is(err, db.ErrPortfolioNotFound) {
			s.errorResponse(w, http.StatusNotFound, "portfolio not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "failed to load portfolio: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, portfolio)
}

// handleUnpublish takes a portfolio offline. The manage token issued at
// deploy time is presented as a bearer token.
func (s *Server) handleUnpublish(w http.ResponseWriter, r *http.Request) {
	username := strings.ToLower(r.PathValue("username"))
	if !usernamePattern.MatchString(username) {
		s.errorResponse(w, http.StatusBadRequest, "invalid username")
		return
	}

	token := bearerToken(r)
	if err := s.manageTokens.ValidateToken(token, username); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if err := s.store.UnpublishPortfolio(r.Context(), username); err != nil {
		if errors.Is(err, db.ErrPortfolioNotFound) {
			s.errorResponse(w, http.StatusNotFound, "portfolio not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "failed to unpublish portfolio: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "unpublished", "username": username})
}

// bearerToken extracts a bearer token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}
