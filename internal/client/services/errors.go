package services

import (
	"errors"

	"github.com/dmitrijs2005/fittrack/internal/common"
)

// normalize maps any failure onto the error taxonomy. Validation errors pass
// through untouched, API errors get their message sanitized, and everything
// else collapses to an UnexpectedError carrying generic.
func normalize(err error, generic string) error {
	if err == nil {
		return nil
	}

	var ve *common.ValidationError
	if errors.As(err, &ve) {
		return ve
	}

	var ae *common.APIError
	if errors.As(err, &ae) {
		msg := common.SanitizeMessage(ae.Message)
		if msg == "" {
			msg = generic
		}
		return &common.APIError{Status: ae.Status, Message: msg, Err: ae.Err}
	}

	return &common.UnexpectedError{Message: generic, Err: err}
}
