package circuitbreaker

import (
	"context"
	"errors"
	"fmt"

	"github.com/sony/gobreaker"

	"sports-articles/internal/domain/entity"
	"sports-articles/internal/observability/metrics"
	"sports-articles/internal/repository"
)

// ErrStoreUnavailable is returned while the breaker rejects calls.
var ErrStoreUnavailable = errors.New("article store unavailable")

// GuardedArticleRepo decorates an ArticleRepository with a circuit breaker.
// entity.ErrNotFound is an answer, not a failure, and never trips it.
type GuardedArticleRepo struct {
	next repository.ArticleRepository
	cb   *CircuitBreaker
}

// NewGuardedArticleRepo wraps next. The config's IsSuccessful and
// OnStateChange are replaced; transitions drive the store_circuit_open gauge.
func NewGuardedArticleRepo(next repository.ArticleRepository, cfg Config) *GuardedArticleRepo {
	cfg.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, entity.ErrNotFound)
	}
	cfg.OnStateChange = func(_, to gobreaker.State) {
		metrics.SetStoreCircuitOpen(to == gobreaker.StateOpen)
	}
	return &GuardedArticleRepo{next: next, cb: New(cfg)}
}

// Breaker exposes the underlying breaker for health reporting.
func (g *GuardedArticleRepo) Breaker() *CircuitBreaker { return g.cb }

func guard[T any](g *GuardedArticleRepo, fn func() (T, error)) (T, error) {
	res, err := Execute(g.cb, fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return res, fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, g.cb.Name(), err)
	}
	return res, err
}

func (g *GuardedArticleRepo) Create(ctx context.Context, draft entity.Draft) (*entity.Article, error) {
	return guard(g, func() (*entity.Article, error) { return g.next.Create(ctx, draft) })
}

func (g *GuardedArticleRepo) Insert(ctx context.Context, article *entity.Article) error {
	_, err := guard(g, func() (struct{}, error) { return struct{}{}, g.next.Insert(ctx, article) })
	return err
}

func (g *GuardedArticleRepo) Get(ctx context.Context, id string) (*entity.Article, error) {
	return guard(g, func() (*entity.Article, error) { return g.next.Get(ctx, id) })
}

func (g *GuardedArticleRepo) List(ctx context.Context) ([]*entity.Article, error) {
	return guard(g, func() ([]*entity.Article, error) { return g.next.List(ctx) })
}

type page struct {
	items []*entity.Article
	total int64
}

func (g *GuardedArticleRepo) FindPage(ctx context.Context, offset, limit int) ([]*entity.Article, int64, error) {
	p, err := guard(g, func() (page, error) {
		items, total, err := g.next.FindPage(ctx, offset, limit)
		return page{items: items, total: total}, err
	})
	return p.items, p.total, err
}

func (g *GuardedArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	_, err := guard(g, func() (struct{}, error) { return struct{}{}, g.next.Update(ctx, article) })
	return err
}

func (g *GuardedArticleRepo) SoftDelete(ctx context.Context, id string) error {
	_, err := guard(g, func() (struct{}, error) { return struct{}{}, g.next.SoftDelete(ctx, id) })
	return err
}

func (g *GuardedArticleRepo) CountAll(ctx context.Context) (int64, error) {
	return guard(g, func() (int64, error) { return g.next.CountAll(ctx) })
}

var _ repository.ArticleRepository = (*GuardedArticleRepo)(nil)
