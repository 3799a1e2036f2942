package api

import (
	"errors"
	"net/http"

	"SignalStories/internal/domain"
	"SignalStories/internal/service/fred"
	xhttp "SignalStories/pkg/http"
)

// toAppError maps domain failures onto response statuses and bodies.
func toAppError(err error) error {
	var (
		appErr  *xhttp.AppError
		cfgErr  *domain.ConfigurationError
		rlErr   *domain.RateLimitError
		provErr *domain.ProviderError
		llmErr  *domain.LLMError
	)
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.As(err, &cfgErr):
		return xhttp.InternalError(domain.MsgNotConfigured).WithError(err)
	case errors.As(err, &rlErr):
		return xhttp.TooManyRequestsError(rlErr.Error()).WithError(err)
	case errors.As(err, &provErr):
		msg := provErr.Message
		if msg == "" {
			msg = http.StatusText(provErr.HTTPStatus())
		}
		out := xhttp.NewAppError(provErr.HTTPStatus(), msg).WithError(err)
		if provErr.Body != "" {
			out.WithExtra("status", provErr.Status)
			if provErr.Provider == fred.ProviderName {
				out.WithExtra("details", provErr.Body)
			}
		}
		return out
	case errors.As(err, &llmErr):
		return xhttp.InternalError(llmErr.Error()).WithError(err)
	default:
		return xhttp.InternalError(err.Error()).WithError(err)
	}
}
