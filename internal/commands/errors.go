package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to wrapped command failures so embedders can match on
// outcomes without parsing messages.
const (
	codeMessageRejected = "CONTENT_MESSAGE_REJECTED"
	codeRunCancelled    = "CONTENT_RUN_CANCELLED"
	codeRunTimedOut     = "CONTENT_RUN_TIMED_OUT"
	codeRunAborted      = "CONTENT_RUN_ABORTED"
	codeRunFailed       = "CONTENT_RUN_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "content command message rejected").
		WithTextCode(codeMessageRejected)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	message, code := "content command context error", codeRunAborted
	switch {
	case errors.Is(err, context.Canceled):
		message, code = "content command cancelled", codeRunCancelled
	case errors.Is(err, context.DeadlineExceeded):
		message, code = "content command deadline exceeded", codeRunTimedOut
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).WithTextCode(code)
}

func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "content command failed").
		WithTextCode(codeRunFailed)
}
