// Package uploadtoken signs and time-limits extracted document text so it can
// cross a stateless request boundary without server-side session storage.
// Tokens have the form version.payload.signature: the payload is a
// deflate-compressed, base64url-encoded JSON object {text, exp}, and the
// signature is an HMAC-SHA256 over the payload component.
package uploadtoken

import (
	"bytes"
	"compress/flate"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	tokenVersion = "v1"
	// TTL is how long an issued token stays decodable.
	TTL = 10 * time.Minute
)

// ValidationError indicates the caller supplied unusable input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// InvalidTokenError indicates a malformed, tampered, or expired token. It is
// never ignored silently, since it implies tampering or stale state.
type InvalidTokenError struct {
	Message string
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("invalid upload token: %s", e.Message)
}

type payload struct {
	Text string `json:"text"`
	Exp  int64  `json:"exp"`
}

// Codec encodes and decodes upload tokens with a fixed secret. It holds no
// runtime state, so concurrent use needs no locking.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// NewCodec creates a codec signing with the given secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret), now: time.Now}
}

func (c *Codec) sign(encodedPayload string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(encodedPayload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Encode wraps the text into a signed token that expires after TTL.
// Empty text is rejected with a ValidationError.
func (c *Codec) Encode(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &ValidationError{Message: "extracted resume text is empty"}
	}

	body, err := json.Marshal(payload{
		Text: text,
		Exp:  c.now().Unix() + int64(TTL.Seconds()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to serialize token payload: %w", err)
	}

	var compressed bytes.Buffer
	writer, err := flate.NewWriter(&compressed, flate.DefaultCompression)
	if err != nil {
		return "", fmt.Errorf("failed to create compressor: %w", err)
	}
	if _, err := writer.Write(body); err != nil {
		return "", fmt.Errorf("failed to compress token payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finish compression: %w", err)
	}

	encodedPayload := base64.RawURLEncoding.EncodeToString(compressed.Bytes())
	return tokenVersion + "." + encodedPayload + "." + c.sign(encodedPayload), nil
}

// Decode verifies and unwraps a token, returning the original text. The
// signature is checked in constant time before the payload is touched.
func (c *Codec) Decode(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", &InvalidTokenError{Message: "malformed token structure"}
	}
	if parts[0] != tokenVersion {
		return "", &InvalidTokenError{Message: "unsupported token version"}
	}

	expected := c.sign(parts[1])
	if len(expected) != len(parts[2]) || subtle.ConstantTimeCompare([]byte(expected), []byte(parts[2])) != 1 {
		return "", &InvalidTokenError{Message: "signature mismatch"}
	}

	compressed, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", &InvalidTokenError{Message: "payload is not valid base64url"}
	}

	body, err := io.ReadAll(flate.NewReader(bytes.NewReader(compressed)))
	if err != nil {
		return "", &InvalidTokenError{Message: "payload decompression failed"}
	}

	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return "", &InvalidTokenError{Message: "payload is not valid JSON"}
	}
	if p.Text == "" || p.Exp == 0 {
		return "", &InvalidTokenError{Message: "payload shape is invalid"}
	}
	if c.now().Unix() > p.Exp {
		return "", &InvalidTokenError{Message: "token expired"}
	}

	return p.Text, nil
}
