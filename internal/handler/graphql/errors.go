package graphql

import (
	"errors"

	"sports-articles/internal/domain/entity"
	"sports-articles/internal/usecase/article"
)

// Error codes carried in the "code" extension.
const (
	CodeBadUserInput  = "BAD_USER_INPUT"
	CodeNotFound      = "NOT_FOUND"
	CodeInternalError = "INTERNAL_SERVER_ERROR"
)

// MsgInternal is returned for failures outside the service taxonomy.
const MsgInternal = "Internal server error"

// ResolverError is a service error as seen by a GraphQL client.
type ResolverError struct {
	Message string
	Code    string
	Field   string
}

func (e *ResolverError) Error() string { return e.Message }

// Extensions implements graphql-go's resolver error interface.
func (e *ResolverError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.Code}
	if e.Field != "" {
		ext["field"] = e.Field
	}
	return ext
}

// ErrorEnvelope maps a service error to its client-facing form. Bad input
// keeps the validation message and field, not found keeps the id message,
// and anything else exposes only the generic server message.
func ErrorEnvelope(err error) *ResolverError {
	if err == nil {
		return nil
	}

	var verr *entity.ValidationError
	if errors.As(err, &verr) {
		return &ResolverError{Message: verr.Message, Code: CodeBadUserInput, Field: verr.Field}
	}

	var nf *article.NotFoundError
	if errors.As(err, &nf) {
		return &ResolverError{Message: nf.Error(), Code: CodeNotFound}
	}

	var serr *article.ServerError
	if errors.As(err, &serr) && serr.Message != "" {
		return &ResolverError{Message: serr.Message, Code: CodeInternalError}
	}
	return &ResolverError{Message: MsgInternal, Code: CodeInternalError}
}
