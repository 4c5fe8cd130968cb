package api

import (
	"errors"
	"fmt"
)

// Codes reported in GraphQL error extensions.
const (
	CodeBadUserInput  = "BAD_USER_INPUT"
	CodeNotFound      = "NOT_FOUND"
	CodeInternalError = "INTERNAL_SERVER_ERROR"
)

// Error is the first GraphQL error of a response.
type Error struct {
	Code    string
	Field   string
	Message string
}

func (e *Error) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("%s (%s): %s", e.Code, e.Field, e.Message)
	case e.Code != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	default:
		return e.Message
	}
}

// IsNotFound reports whether err is a NOT_FOUND GraphQL error.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsBadInput reports whether err is a BAD_USER_INPUT GraphQL error.
func IsBadInput(err error) bool {
	return hasCode(err, CodeBadUserInput)
}

func hasCode(err error, code string) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == code
}
