package listing_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sports-articles/internal/client/api"
	"sports-articles/internal/client/listing"
)

/* ───────── スタブ実装 ───────── */

// gatedFetcher は release されるまで Page をブロックする
type gatedFetcher struct {
	mu      sync.Mutex
	calls   []int
	started chan int
	release chan struct{}
	pages   map[int]api.Page
	err     error
}

func newGatedFetcher(pages map[int]api.Page) *gatedFetcher {
	return &gatedFetcher{
		started: make(chan int, 8),
		release: make(chan struct{}),
		pages:   pages,
	}
}

func (f *gatedFetcher) Page(ctx context.Context, page, _ int) (*api.Page, error) {
	f.mu.Lock()
	f.calls = append(f.calls, page)
	f.mu.Unlock()
	f.started <- page

	select {
	case <-f.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	p := f.pages[page]
	return &p, nil
}

func (f *gatedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// instantFetcher はブロックしない
type instantFetcher struct {
	pages map[int]api.Page
	err   error
}

func (f *instantFetcher) Page(_ context.Context, page, _ int) (*api.Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := f.pages[page]
	return &p, nil
}

type stubDeleter struct {
	err     error
	deleted []string
}

func (d *stubDeleter) Delete(_ context.Context, id string) error {
	if d.err != nil {
		return d.err
	}
	d.deleted = append(d.deleted, id)
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func page(n int, next bool, total int, ids ...string) api.Page {
	arts := make([]api.Article, len(ids))
	for i, id := range ids {
		arts[i] = api.Article{ID: id}
	}
	return api.Page{Articles: arts, Page: n, Limit: 2, TotalCount: total, HasNextPage: next}
}

func itemIDs(s listing.Snapshot) []string {
	out := make([]string, len(s.Items))
	for i, a := range s.Items {
		out[i] = a.ID
	}
	return out
}

func waitStarted(t *testing.T, f *gatedFetcher) int {
	t.Helper()
	select {
	case p := <-f.started:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("fetch did not start")
		return 0
	}
}

/* ───────── シナリオ ───────── */

func TestController_IgnoresSignalWhileInFlight(t *testing.T) {
	t.Parallel()

	f := newGatedFetcher(map[int]api.Page{
		1: page(1, true, 4, "a", "b"),
		2: page(2, false, 4, "c", "d"),
	})
	c := listing.NewController(f, &stubDeleter{}, 2, quietLogger())
	ctx := context.Background()

	first := make(chan bool, 1)
	go func() {
		merged, _ := c.Proximity(ctx)
		first <- merged
	}()
	assert.Equal(t, 1, waitStarted(t, f))
	assert.True(t, c.Snapshot().InFlight)

	// 取得中の二度目のシグナルは無視される
	merged, err := c.Proximity(ctx)
	require.NoError(t, err)
	assert.False(t, merged)
	assert.Equal(t, 1, f.callCount())

	f.release <- struct{}{}
	assert.True(t, <-first)

	snap := c.Snapshot()
	assert.False(t, snap.InFlight)
	assert.Equal(t, []string{"a", "b"}, itemIDs(snap))

	// マージ後のシグナルは受け付けられる
	second := make(chan bool, 1)
	go func() {
		merged, _ := c.Proximity(ctx)
		second <- merged
	}()
	assert.Equal(t, 2, waitStarted(t, f))
	f.release <- struct{}{}
	assert.True(t, <-second)

	snap = c.Snapshot()
	assert.Equal(t, []string{"a", "b", "c", "d"}, itemIDs(snap))
	assert.False(t, snap.HasNextPage)

	merged, err = c.Proximity(ctx)
	require.NoError(t, err)
	assert.False(t, merged, "no next page")
	assert.Equal(t, 2, f.callCount())
}

func TestController_FetchFailureAllowsRetry(t *testing.T) {
	t.Parallel()

	f := &instantFetcher{err: errors.New("connection reset")}
	c := listing.NewController(f, &stubDeleter{}, 2, quietLogger())
	ctx := context.Background()

	merged, err := c.Proximity(ctx)
	assert.Error(t, err)
	assert.False(t, merged)
	assert.Equal(t, listing.NoticeLoadFailed, c.Snapshot().Notice)

	f.err = nil
	f.pages = map[int]api.Page{1: page(1, false, 1, "a")}
	c.DismissNotice()

	merged, err = c.Proximity(ctx)
	require.NoError(t, err)
	assert.True(t, merged)
	snap := c.Snapshot()
	assert.Equal(t, []string{"a"}, itemIDs(snap))
	assert.Empty(t, snap.Notice)
}

func TestController_Delete(t *testing.T) {
	t.Parallel()

	f := &instantFetcher{pages: map[int]api.Page{1: page(1, true, 5, "a", "b")}}
	d := &stubDeleter{}
	c := listing.NewController(f, d, 2, quietLogger())
	ctx := context.Background()

	_, err := c.Proximity(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Delete(ctx, "a"))
	snap := c.Snapshot()
	assert.Equal(t, []string{"b"}, itemIDs(snap))
	assert.Equal(t, 4, snap.TotalCount)
	assert.Equal(t, []string{"a"}, d.deleted)

	d.err = errors.New("HTTP 503")
	assert.Error(t, c.Delete(ctx, "b"))
	snap = c.Snapshot()
	assert.Equal(t, []string{"b"}, itemIDs(snap), "failed delete keeps the item")
	assert.Equal(t, listing.NoticeDeleteFailed, snap.Notice)

	// サーバ側で既に消えていればローカルからも除く
	d.err = &api.Error{Code: api.CodeNotFound, Message: "Article with id b not found"}
	assert.Error(t, c.Delete(ctx, "b"))
	assert.Empty(t, c.Snapshot().Items)
}

func TestController_RefreshDropsStalePage(t *testing.T) {
	t.Parallel()

	f := newGatedFetcher(map[int]api.Page{1: page(1, true, 3, "a", "b")})
	c := listing.NewController(f, &stubDeleter{}, 2, quietLogger())
	ctx := context.Background()

	stale := make(chan bool, 1)
	go func() {
		merged, _ := c.Proximity(ctx)
		stale <- merged
	}()
	waitStarted(t, f)

	refreshed := make(chan error, 1)
	go func() { refreshed <- c.Refresh(ctx) }()
	waitStarted(t, f)

	f.release <- struct{}{}
	f.release <- struct{}{}
	require.NoError(t, <-refreshed)
	assert.False(t, <-stale)

	assert.Equal(t, []string{"a", "b"}, itemIDs(c.Snapshot()))
}

func TestController_DeleteWhileFetchInFlight(t *testing.T) {
	t.Parallel()

	f := newGatedFetcher(map[int]api.Page{
		1: page(1, true, 5, "a", "b"),
		// 削除前のスナップショットから組まれたページ
		2: page(2, true, 5, "c", "d"),
	})
	d := &stubDeleter{}
	c := listing.NewController(f, d, 2, quietLogger())
	ctx := context.Background()

	done := make(chan bool, 1)
	go func() {
		merged, _ := c.Proximity(ctx)
		done <- merged
	}()
	waitStarted(t, f)
	f.release <- struct{}{}
	require.True(t, <-done)

	go func() {
		merged, _ := c.Proximity(ctx)
		done <- merged
	}()
	assert.Equal(t, 2, waitStarted(t, f))

	// ページ 2 の取得中に a を削除する
	require.NoError(t, c.Delete(ctx, "a"))
	snap := c.Snapshot()
	assert.True(t, snap.InFlight)
	assert.Equal(t, 4, snap.TotalCount)

	// 古くなった取得もそのままマージされる
	f.release <- struct{}{}
	require.True(t, <-done)

	snap = c.Snapshot()
	assert.Equal(t, []string{"b", "c", "d"}, itemIDs(snap))
	assert.NotContains(t, itemIDs(snap), "a")
	assert.Equal(t, 4, snap.TotalCount, "stale totalCount must not undo the delete")
	assert.Equal(t, []string{"a"}, d.deleted)
}

func TestController_RefreshKeepsDeleteMadeDuringReload(t *testing.T) {
	t.Parallel()

	f := newGatedFetcher(map[int]api.Page{1: page(1, true, 3, "a", "b")})
	c := listing.NewController(f, &stubDeleter{}, 2, quietLogger())
	ctx := context.Background()

	refreshed := make(chan error, 1)
	go func() { refreshed <- c.Refresh(ctx) }()
	waitStarted(t, f)

	require.NoError(t, c.Delete(ctx, "b"))

	f.release <- struct{}{}
	require.NoError(t, <-refreshed)

	snap := c.Snapshot()
	assert.Equal(t, []string{"a"}, itemIDs(snap))
	assert.Equal(t, 2, snap.TotalCount)
}
