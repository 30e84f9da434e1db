package services

import (
	"strings"

	"github.com/doeshing/intentshell/internal/domain"
)

// classifyFailure maps a failed handler result onto the error taxonomy. A
// handler that sets ErrorKind explicitly wins; otherwise the message is
// matched against the usual phrasings, with Unknown as the fallback.
func classifyFailure(res domain.ActionResult) domain.ErrorKind {
	if res.ErrorKind != "" {
		return res.ErrorKind
	}
	msg := strings.ToLower(res.Message)
	switch {
	case strings.Contains(msg, "not found"),
		strings.Contains(msg, "does not exist"),
		strings.Contains(msg, "no such"):
		return domain.ErrHandlerNotFound
	case strings.Contains(msg, "permission"),
		strings.Contains(msg, "access denied"),
		strings.Contains(msg, "operation not permitted"):
		return domain.ErrHandlerPermissionDenied
	case strings.Contains(msg, "timeout"),
		strings.Contains(msg, "timed out"),
		strings.Contains(msg, "deadline exceeded"):
		return domain.ErrHandlerTimeout
	default:
		return domain.ErrHandlerUnknown
	}
}
