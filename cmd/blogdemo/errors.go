package main

import (
	domainerr "blogdemo/internal/domain/errors"
	"context"
	"errors"
	goerrors "github.com/goliatone/go-errors"
	"github.com/rs/zerolog"
)

const (
	contentInvalidCode    = "CONTENT_INVALID"
	configInvalidCode     = "CONFIG_INVALID"
	commandCanceledCode   = "COMMAND_CANCELED"
	commandFailedCode     = "COMMAND_FAILED"
	commandUsageErrorCode = "COMMAND_USAGE"
)

// wrapError logs err once and converts it to a categorized error for the
// exit code. Errors that are already categorized pass through.
func wrapError(logger zerolog.Logger, err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}

	switch {
	case domainerr.IsContent(err):
		logger.Error().Err(err).Str("kind", string(domainerr.KindOf(err))).Msg("content build failed")
		return goerrors.Wrap(err, goerrors.CategoryValidation, "content build failed").
			WithTextCode(contentInvalidCode)
	case errors.Is(err, domainerr.ErrInvalid):
		ev := logger.Error().Err(err)
		var ve domainerr.ValidationError
		if errors.As(err, &ve) {
			ev = ev.Strs("fields", ve.Paths())
		}
		ev.Msg("invalid configuration")
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid configuration").
			WithTextCode(configInvalidCode)
	case errors.Is(err, context.Canceled):
		logger.Warn().Msg("canceled")
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command canceled").
			WithTextCode(commandCanceledCode)
	default:
		logger.Error().Err(err).Msg("command failed")
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command failed").
			WithTextCode(commandFailedCode)
	}
}
