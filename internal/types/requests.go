package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// ParseRequest carries the signed upload token produced by the upload step.
type ParseRequest struct {
	UploadID string `json:"uploadId" validate:"required"`
}

// EvaluateRequest carries a resume payload and a job description. The resume
// is accepted as raw JSON so the normalizer can coerce legacy shapes.
type EvaluateRequest struct {
	Resume         json.RawMessage `json:"resume" validate:"required"`
	JobDescription string          `json:"jobDescription" validate:"required,min=1"`
}

// DeployRequest publishes a resume under a username slug.
// Slugs are lowercase alphanumerics and hyphens, 3-30 characters.
type DeployRequest struct {
	Username    string          `json:"username" validate:"required,min=3,max=30,lowercase"`
	Template    string          `json:"template" validate:"required"`
	Resume      json.RawMessage `json:"resume" validate:"required"`
	ManageToken string          `json:"manageToken,omitempty"`
}

// Validate validates the ParseRequest using the validator.
func (r *ParseRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the EvaluateRequest using the validator.
func (r *EvaluateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the DeployRequest using the validator.
func (r *DeployRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
