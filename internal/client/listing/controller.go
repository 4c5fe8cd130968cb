package listing

import (
	"context"
	"log/slog"
	"sync"

	"sports-articles/internal/client/api"
	"sports-articles/internal/observability/logging"
)

// PageFetcher loads one page of articles.
type PageFetcher interface {
	Page(ctx context.Context, page, limit int) (*api.Page, error)
}

// Deleter soft-deletes one article.
type Deleter interface {
	Delete(ctx context.Context, id string) error
}

// Controller serialises access to a State. Fetches run without the lock;
// a page that arrives after a Refresh is discarded.
type Controller struct {
	mu      sync.Mutex
	state   *State
	gen     uint64
	fetcher PageFetcher
	deleter Deleter
	logger  *slog.Logger
}

// NewController returns a Controller for an empty list.
func NewController(fetcher PageFetcher, deleter Deleter, limit int, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &Controller{
		state:   NewState(limit),
		fetcher: fetcher,
		deleter: deleter,
		logger:  logger,
	}
}

// Proximity is the "near the end of the list" signal. It loads the next
// page unless a fetch is already in flight or nothing is left, and reports
// whether a page was merged.
func (c *Controller) Proximity(ctx context.Context) (bool, error) {
	c.mu.Lock()
	page, ok := c.state.RequestNextPage()
	gen, limit := c.gen, c.state.Limit
	c.mu.Unlock()
	if !ok {
		return false, nil
	}

	p, err := c.fetcher.Page(ctx, page, limit)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false, nil
	}
	if err != nil {
		c.state.PageFailed(err)
		c.logger.Warn("page fetch failed", slog.Int("page", page), slog.Any("error", err))
		return false, err
	}
	c.state.PageArrived(*p)
	c.logger.Debug("page merged",
		slog.Int("page", p.Page),
		slog.Int("items", len(c.state.Items)),
		slog.Bool("has_next_page", p.HasNextPage))
	return true, nil
}

// Delete removes id on the server and then from the list. An id the
// server no longer knows is removed locally as well.
func (c *Controller) Delete(ctx context.Context, id string) error {
	err := c.deleter.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case err == nil:
		c.state.ItemDeleted(id)
		return nil
	case api.IsNotFound(err):
		c.state.ItemGone(id)
		c.state.DeleteFailed(err)
	default:
		c.state.DeleteFailed(err)
	}
	c.logger.Warn("delete failed", slog.String("article_id", id), slog.Any("error", err))
	return err
}

// Refresh reloads the first page, dropping everything accumulated.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen, limit := c.gen, c.state.Limit
	c.state.BeginRefresh()
	c.mu.Unlock()

	p, err := c.fetcher.Page(ctx, 1, limit)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	if err != nil {
		c.state.PageFailed(err)
		return err
	}
	c.state.Reset(*p)
	return nil
}

// DismissNotice clears the current notice.
func (c *Controller) DismissNotice() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.DismissNotice()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.snapshot()
}
