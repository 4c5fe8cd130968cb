package graphql

import (
	"context"

	"github.com/graph-gophers/graphql-go"
	"go.opentelemetry.io/otel/attribute"

	"sports-articles/internal/domain/entity"
	"sports-articles/internal/observability/tracing"
	"sports-articles/internal/usecase/article"
)

// ArticleService is the slice of the article service the resolvers call.
type ArticleService interface {
	List(ctx context.Context) ([]article.View, error)
	Page(ctx context.Context, page, limit *int) (*article.PageResult, error)
	Get(ctx context.Context, id string) (*article.View, error)
	Create(ctx context.Context, in entity.ArticleInput) (*article.View, error)
	Update(ctx context.Context, id string, in entity.ArticleInput) (*article.View, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Resolver is the root resolver for Query and Mutation.
type Resolver struct {
	svc ArticleService
}

// NewResolver returns a root resolver backed by svc.
func NewResolver(svc ArticleService) *Resolver {
	return &Resolver{svc: svc}
}

type articleInput struct {
	Title    *string
	Content  *string
	ImageURL *string
}

func (in articleInput) toEntity() entity.ArticleInput {
	return entity.ArticleInput{Title: in.Title, Content: in.Content, ImageURL: in.ImageURL}
}

// pageArgs fields are values because the schema declares defaults for both;
// graphql-go cannot unpack a default into a pointer.
type pageArgs struct {
	Page  int32
	Limit int32
}

type idArgs struct {
	ID graphql.ID
}

type createArgs struct {
	Input articleInput
}

type updateArgs struct {
	ID    graphql.ID
	Input articleInput
}

func intPtr(v int32) *int {
	n := int(v)
	return &n
}

// resolve runs fn inside a span named after the field and maps its error.
func resolve[T any](ctx context.Context, field string, fn func(context.Context) (T, error), attrs ...attribute.KeyValue) (T, error) {
	ctx, span := tracing.StartSpan(ctx, "graphql."+field, attrs...)
	defer span.End()

	v, err := fn(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		var zero T
		return zero, ErrorEnvelope(err)
	}
	return v, nil
}

// Articles resolves Query.articles.
func (r *Resolver) Articles(ctx context.Context) ([]*articleResolver, error) {
	return resolve(ctx, "articles", func(ctx context.Context) ([]*articleResolver, error) {
		views, err := r.svc.List(ctx)
		if err != nil {
			return nil, err
		}
		return wrapArticles(views), nil
	})
}

// ArticlesPage resolves Query.articlesPage.
func (r *Resolver) ArticlesPage(ctx context.Context, args pageArgs) (*pageResolver, error) {
	return resolve(ctx, "articlesPage", func(ctx context.Context) (*pageResolver, error) {
		res, err := r.svc.Page(ctx, intPtr(args.Page), intPtr(args.Limit))
		if err != nil {
			return nil, err
		}
		return &pageResolver{res: res}, nil
	})
}

// Article resolves Query.article.
func (r *Resolver) Article(ctx context.Context, args idArgs) (*articleResolver, error) {
	return resolve(ctx, "article", func(ctx context.Context) (*articleResolver, error) {
		v, err := r.svc.Get(ctx, string(args.ID))
		if err != nil {
			return nil, err
		}
		return &articleResolver{v: *v}, nil
	}, attribute.String("article.id", string(args.ID)))
}

// CreateArticle resolves Mutation.createArticle.
func (r *Resolver) CreateArticle(ctx context.Context, args createArgs) (*articleResolver, error) {
	return resolve(ctx, "createArticle", func(ctx context.Context) (*articleResolver, error) {
		v, err := r.svc.Create(ctx, args.Input.toEntity())
		if err != nil {
			return nil, err
		}
		return &articleResolver{v: *v}, nil
	})
}

// UpdateArticle resolves Mutation.updateArticle.
func (r *Resolver) UpdateArticle(ctx context.Context, args updateArgs) (*articleResolver, error) {
	return resolve(ctx, "updateArticle", func(ctx context.Context) (*articleResolver, error) {
		v, err := r.svc.Update(ctx, string(args.ID), args.Input.toEntity())
		if err != nil {
			return nil, err
		}
		return &articleResolver{v: *v}, nil
	}, attribute.String("article.id", string(args.ID)))
}

// DeleteArticle resolves Mutation.deleteArticle.
func (r *Resolver) DeleteArticle(ctx context.Context, args idArgs) (bool, error) {
	return resolve(ctx, "deleteArticle", func(ctx context.Context) (bool, error) {
		return r.svc.Delete(ctx, string(args.ID))
	}, attribute.String("article.id", string(args.ID)))
}
