package integrations

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/repolens/pkg/buildinfo"
	apperrors "github.com/matzehuels/repolens/pkg/errors"
)

const httpTimeout = 10 * time.Second

// UserAgent is sent with every request.
var UserAgent = buildinfo.UserAgent()

var (
	// ErrNotFound is returned when a repository or file doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized is returned when the token is missing or rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the token lacks access to the resource.
	ErrForbidden = errors.New("forbidden")

	// ErrRateLimited is returned when the upstream API throttles requests.
	ErrRateLimited = errors.New("rate limited")
)

// NewHTTPClient creates an HTTP client with a standard timeout for API requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

var repoURLReplacer = strings.NewReplacer(
	"git@github.com:", "https://github.com/",
	"git://github.com/", "https://github.com/",
	"git@gitlab.com:", "https://gitlab.com/",
)

// NormalizeRepoURL converts various repository URL formats to canonical HTTPS form.
// Handles git@, git://, and git+ prefixes, and removes .git suffixes.
// Returns empty string if raw is empty.
func NormalizeRepoURL(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "git+")
	s = repoURLReplacer.Replace(s)
	return strings.TrimSuffix(strings.TrimSuffix(s, "/"), ".git")
}

// Classify attaches an error code to a transport error so that callers can
// report it consistently. Errors that already carry a code pass through.
func Classify(err error, repo string) error {
	if err == nil || apperrors.GetCode(err) != "" {
		return err
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return apperrors.Wrap(apperrors.ErrCodeRepoNotFound, err, "repository not found: %s", repo)
	case errors.Is(err, ErrUnauthorized):
		return apperrors.Wrap(apperrors.ErrCodeUnauthorized, err, "access to %s requires a valid token", repo)
	case errors.Is(err, ErrForbidden):
		return apperrors.Wrap(apperrors.ErrCodeForbidden, err, "access to %s denied", repo)
	case errors.Is(err, ErrRateLimited):
		return apperrors.Wrap(apperrors.ErrCodeRateLimited, err, "API rate limit exceeded while fetching %s", repo)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(apperrors.ErrCodeTimeout, err, "timed out fetching %s", repo)
	case errors.Is(err, ErrNetwork):
		return apperrors.Wrap(apperrors.ErrCodeNetwork, err, "fetch %s", repo)
	}
	return apperrors.Wrap(apperrors.ErrCodeInternal, err, "fetch %s", repo)
}
