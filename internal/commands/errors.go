package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeValidation = "COMMAND_VALIDATION_FAILED"
	textCodeCanceled   = "COMMAND_CONTEXT_CANCELED"
	textCodeTimeout    = "COMMAND_CONTEXT_TIMEOUT"
	textCodeExecute    = "COMMAND_EXECUTION_FAILED"
)

func wrapValidationError(err error) error {
	return wrap(err, goerrors.CategoryValidation, "command message is invalid", textCodeValidation)
}

func wrapContextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return wrap(err, goerrors.CategoryCommand, "command deadline exceeded", textCodeTimeout)
	}
	return wrap(err, goerrors.CategoryCommand, "command cancelled", textCodeCanceled)
}

func wrapExecuteError(err error) error {
	return wrap(err, goerrors.CategoryCommand, "command execution failed", textCodeExecute)
}

func wrap(err error, category goerrors.Category, message, textCode string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, message).WithTextCode(textCode)
}
