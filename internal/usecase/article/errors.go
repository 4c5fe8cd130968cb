// Package article implements the article query service: listing, paging,
// lookup and mutations, with every failure reduced to one of three kinds
// (bad input, not found, server error) before it leaves the package.
package article

import (
	"errors"
	"fmt"

	"sports-articles/internal/domain/entity"
)

// ErrArticleNotFound indicates that no active article has the requested id.
var ErrArticleNotFound = errors.New("article not found")

// Caller-facing messages for server errors. They never carry internal detail.
const (
	MsgFetchArticles = "Failed to fetch articles"
	MsgFetchArticle  = "Failed to fetch article"
	MsgCreateArticle = "Failed to create article"
	MsgUpdateArticle = "Failed to update article"
	MsgDeleteArticle = "Failed to delete article"
)

// Kind is the caller-visible classification of a service error.
type Kind int

const (
	KindServer Kind = iota
	KindBadInput
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindBadInput:
		return "bad_input"
	case KindNotFound:
		return "not_found"
	default:
		return "server_error"
	}
}

// NotFoundError reports a lookup of an id with no matching active article.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Article with id %s not found", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrArticleNotFound }

// ServerError is any failure that is neither bad input nor not found.
// Error returns only Message; Err keeps the cause for logs.
type ServerError struct {
	Op      string
	Message string
	Err     error
}

func (e *ServerError) Error() string { return e.Message }

func (e *ServerError) Unwrap() error { return e.Err }

// Classify reports which of the three kinds err belongs to.
func Classify(err error) Kind {
	var verr *entity.ValidationError
	var nf *NotFoundError
	switch {
	case errors.As(err, &verr):
		return KindBadInput
	case errors.As(err, &nf):
		return KindNotFound
	default:
		return KindServer
	}
}
