package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// MsgNotConfigured is returned to clients when any upstream credential is unset.
const MsgNotConfigured = "API keys not configured"

// ConfigurationError reports an unset upstream credential. It is raised before
// any outbound call is made.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return MsgNotConfigured
}

// RequireConfigured returns a ConfigurationError naming every provider whose
// credential is missing, or nil when all are set.
func RequireConfigured(providers ...Configurable) error {
	var missing []string
	for _, p := range providers {
		if !p.Configured() {
			missing = append(missing, p.Name())
		}
	}
	if len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}
	return nil
}

// Configurable is implemented by provider clients that depend on an API key.
type Configurable interface {
	Name() string
	Configured() bool
}

// ProviderError is an upstream HTTP failure or a non-success envelope.
type ProviderError struct {
	Provider string
	Status   int
	Message  string
	Body     string
	Err      error
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("%s API error", e.Provider)
	}
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ProviderError) Unwrap() error { return e.Err }

// HTTPStatus is the status surfaced to clients for this failure.
func (e *ProviderError) HTTPStatus() int {
	if e.Status >= 400 && e.Status <= 599 {
		return e.Status
	}
	return http.StatusInternalServerError
}

// RateLimitError is a provider throttle signal.
type RateLimitError struct {
	Provider string
	Message  string
	// Local is set when the denial came from our own quota guard.
	Local bool
}

func (e *RateLimitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: rate limited", e.Provider)
	}
	return e.Message
}

// LLMError carries the message of an error envelope returned by the LLM provider.
type LLMError struct {
	Message string
	Status  int
	Err     error
}

func (e *LLMError) Error() string {
	if e.Message == "" {
		return "Claude API error"
	}
	return e.Message
}

func (e *LLMError) Unwrap() error { return e.Err }

// IsRateLimited reports whether err is, or wraps, a RateLimitError.
func IsRateLimited(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}
