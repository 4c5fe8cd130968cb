package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"sports-articles/internal/common/pagination"
	"sports-articles/internal/domain/entity"
	"sports-articles/internal/handler/http/requestid"
	"sports-articles/internal/observability/logging"
	"sports-articles/internal/repository"
)

// Service provides article use cases on top of an ArticleRepository.
// It holds no state between calls.
type Service struct {
	Repo       repository.ArticleRepository
	Pagination pagination.Config
	Logger     *slog.Logger
}

// PageResult is one page of formatted articles with its envelope.
type PageResult = pagination.Response[View]

// List returns every active article, earliest first.
func (s *Service) List(ctx context.Context) (views []View, err error) {
	defer s.finish(ctx, "List", MsgFetchArticles, &err)

	articles, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return formatAll(articles), nil
}

// Page returns one page of active articles. A nil page or limit takes the
// configured default; supplied values are clamped, never rejected.
func (s *Service) Page(ctx context.Context, page, limit *int) (result *PageResult, err error) {
	params := pagination.FromOptional(page, limit, s.paginationConfig())
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = Classify(err).String()
		}
		pagination.ObservePage(outcome, params, time.Since(start))
	}()
	defer s.finish(ctx, "Page", MsgFetchArticles, &err)

	strategy := pagination.OffsetStrategy{Config: s.paginationConfig()}
	q := strategy.CalculateQuery(params)

	articles, total, err := s.Repo.FindPage(ctx, q.Offset, q.Limit)
	if err != nil {
		pagination.ObserveStoreError()
		return nil, fmt.Errorf("find page: %w", err)
	}
	pagination.ObserveTotal(total)

	meta := strategy.BuildMetadata(params, total)
	res := pagination.NewResponse(formatAll(articles), meta)
	pagination.LogResponse(s.baseLogger(ctx), requestid.FromContext(ctx), meta, len(res.Items), time.Since(start))
	return &res, nil
}

// Get returns one active article.
func (s *Service) Get(ctx context.Context, id string) (view *View, err error) {
	defer s.finish(ctx, "Get", MsgFetchArticle, &err)

	a, err := s.Repo.Get(ctx, id)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	v := Format(a)
	return &v, nil
}

// Create validates input and stores a new article.
func (s *Service) Create(ctx context.Context, in entity.ArticleInput) (view *View, err error) {
	defer s.finish(ctx, "Create", MsgCreateArticle, &err)

	draft, err := entity.ValidateArticleInput(in)
	if err != nil {
		return nil, err
	}

	a, err := s.Repo.Create(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	s.logger(ctx).Info("article created", slog.String("article_id", a.ID))
	v := Format(a)
	return &v, nil
}

// Update validates input and overwrites title and content of an active
// article. The image is replaced only when in.ImageURL is non-nil; an empty
// or blank value clears it.
func (s *Service) Update(ctx context.Context, id string, in entity.ArticleInput) (view *View, err error) {
	defer s.finish(ctx, "Update", MsgUpdateArticle, &err)

	draft, err := entity.ValidateArticleInput(in)
	if err != nil {
		return nil, err
	}

	a, err := s.Repo.Get(ctx, id)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}

	a.Title = draft.Title
	a.Content = draft.Content
	if in.ImageURL != nil {
		a.ImageURL = draft.ImageURL
	}

	err = s.Repo.Update(ctx, a)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	v := Format(a)
	return &v, nil
}

// Delete soft-deletes an active article. It reports true on success and
// never returns the deleted record.
func (s *Service) Delete(ctx context.Context, id string) (ok bool, err error) {
	defer s.finish(ctx, "Delete", MsgDeleteArticle, &err)

	err = s.Repo.SoftDelete(ctx, id)
	if errors.Is(err, entity.ErrNotFound) {
		return false, &NotFoundError{ID: id}
	}
	if err != nil {
		return false, fmt.Errorf("delete article: %w", err)
	}
	s.logger(ctx).Info("article deleted", slog.String("article_id", id))
	return true, nil
}

// finish is deferred by every operation. It turns panics and unclassified
// errors into a ServerError carrying the operation's generic message.
func (s *Service) finish(ctx context.Context, op, message string, errp *error) {
	if r := recover(); r != nil {
		*errp = fmt.Errorf("panic: %v", r)
	}
	if *errp == nil || Classify(*errp) != KindServer {
		return
	}

	var serr *ServerError
	if !errors.As(*errp, &serr) {
		serr = &ServerError{Op: op, Message: message, Err: *errp}
	}
	s.logger(ctx).Error("article operation failed",
		slog.String("op", op),
		slog.Any("error", serr.Err))
	*errp = serr
}

func (s *Service) paginationConfig() pagination.Config {
	if s.Pagination.MaxLimit < 1 {
		return pagination.DefaultConfig()
	}
	return s.Pagination
}

func (s *Service) baseLogger(ctx context.Context) *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logging.FromContext(ctx)
}

func (s *Service) logger(ctx context.Context) *slog.Logger {
	return logging.WithRequestID(ctx, s.baseLogger(ctx))
}
