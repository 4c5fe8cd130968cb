package graphql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"sports-articles/internal/domain/entity"
	"sports-articles/internal/usecase/article"
)

func TestErrorEnvelope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want ResolverError
	}{
		{
			name: "validation error keeps field",
			err:  &entity.ValidationError{Field: "title", Message: "Title is required and cannot be empty"},
			want: ResolverError{Message: "Title is required and cannot be empty", Code: CodeBadUserInput, Field: "title"},
		},
		{
			name: "wrapped validation error",
			err:  fmt.Errorf("create: %w", &entity.ValidationError{Field: "content", Message: "Content is required and cannot be empty"}),
			want: ResolverError{Message: "Content is required and cannot be empty", Code: CodeBadUserInput, Field: "content"},
		},
		{
			name: "not found",
			err:  &article.NotFoundError{ID: "abc"},
			want: ResolverError{Message: "Article with id abc not found", Code: CodeNotFound},
		},
		{
			name: "server error shows only its message",
			err:  &article.ServerError{Op: "List", Message: article.MsgFetchArticles, Err: errors.New("dial tcp 10.0.0.1:5432: refused")},
			want: ResolverError{Message: article.MsgFetchArticles, Code: CodeInternalError},
		},
		{
			name: "unknown error",
			err:  errors.New("pq: password authentication failed"),
			want: ResolverError{Message: MsgInternal, Code: CodeInternalError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ErrorEnvelope(tt.err)
			assert.Equal(t, tt.want, *got)
			assert.Equal(t, tt.want.Message, got.Error())
		})
	}
}

func TestResolverError_Extensions(t *testing.T) {
	t.Parallel()

	withField := &ResolverError{Message: "bad", Code: CodeBadUserInput, Field: "title"}
	assert.Equal(t, map[string]interface{}{"code": CodeBadUserInput, "field": "title"}, withField.Extensions())

	noField := &ResolverError{Message: "missing", Code: CodeNotFound}
	assert.Equal(t, map[string]interface{}{"code": CodeNotFound}, noField.Extensions())
}
