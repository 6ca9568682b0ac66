package handlers

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// ErrorEnvelope is the error body every endpoint returns, replacing huma's
// default problem+json model so failures share the frontend's
// {success, error} contract.
type ErrorEnvelope struct {
	status  int
	Success bool   `json:"success"`
	Message string `json:"error"`
}

func (e *ErrorEnvelope) Error() string {
	return e.Message
}

func (e *ErrorEnvelope) GetStatus() int {
	return e.status
}

func (e *ErrorEnvelope) ContentType(ct string) string {
	return "application/json"
}

func init() {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		if len(errs) > 0 {
			details := make([]string, len(errs))
			for i, err := range errs {
				details[i] = err.Error()
			}
			message = message + ": " + strings.Join(details, "; ")
		}
		return &ErrorEnvelope{status: status, Message: message}
	}
}
