// Package listing holds the infinite-scroll state of the article list.
//
// State is a plain value mutated only through its transition methods.
// Controller adds locking and drives a PageFetcher and a Deleter.
package listing

import (
	"errors"
	"maps"
	"slices"

	"sports-articles/internal/client/api"
)

// User-facing notices.
const (
	NoticeLoadFailed   = "Failed to load articles"
	NoticeDeleteFailed = "Failed to delete article"
	NoticeIncomplete   = "Some articles were skipped after deletions, refresh to reload"
)

// State is the accumulated list plus its paging cursor.
type State struct {
	Items       []api.Article
	Page        int // last merged page, 0 before the first
	Limit       int
	HasNextPage bool
	TotalCount  int
	InFlight    bool
	Notice      string

	// deleted maps a locally deleted id to the deleteSeq it was given.
	deleted   map[string]int
	deleteSeq int
	// fetchSeq is deleteSeq when the in-flight fetch was issued.
	fetchSeq int
}

// NewState returns an empty list that expects a first page.
func NewState(limit int) *State {
	return &State{
		Limit:       max(limit, 1),
		HasNextPage: true,
		deleted:     make(map[string]int),
	}
}

// RequestNextPage marks a fetch as in flight and returns the page to load.
// It refuses while another fetch is in flight or when no page is left.
func (s *State) RequestNextPage() (page int, ok bool) {
	if s.InFlight || !s.HasNextPage {
		return 0, false
	}
	s.beginFetch()
	return s.Page + 1, true
}

// BeginRefresh marks a first-page reload as in flight.
func (s *State) BeginRefresh() {
	s.beginFetch()
}

func (s *State) beginFetch() {
	s.InFlight = true
	s.fetchSeq = s.deleteSeq
}

// PageArrived appends a fetched page in order. Locally deleted ids are
// dropped, and deletes made while the page was in flight are taken off the
// server's totalCount, which was computed before them.
func (s *State) PageArrived(p api.Page) {
	s.InFlight = false
	for _, a := range p.Articles {
		if _, gone := s.deleted[a.ID]; gone {
			continue
		}
		s.Items = append(s.Items, a)
	}
	s.Page = p.Page
	s.HasNextPage = p.HasNextPage
	s.TotalCount = max(p.TotalCount-(s.deleteSeq-s.fetchSeq), 0)
	s.fetchSeq = s.deleteSeq

	// Every local delete shifts later server offsets back by one, so the
	// list can end short of totalCount.
	if !s.HasNextPage && len(s.Items) < s.TotalCount {
		s.Notice = NoticeIncomplete
	}
}

// Missing is how many active articles the finished list lacks. It is zero
// while more pages remain.
func (s *State) Missing() int {
	if s.HasNextPage || s.InFlight {
		return 0
	}
	return max(s.TotalCount-len(s.Items), 0)
}

// PageFailed clears the in-flight flag so the next signal retries the
// same page.
func (s *State) PageFailed(error) {
	s.InFlight = false
	s.Notice = NoticeLoadFailed
}

// ItemDeleted removes id in place and remembers it so that no later page
// brings it back.
func (s *State) ItemDeleted(id string) {
	if _, seen := s.deleted[id]; seen {
		return
	}
	s.deleteSeq++
	s.deleted[id] = s.deleteSeq
	i := slices.IndexFunc(s.Items, func(a api.Article) bool { return a.ID == id })
	if i >= 0 {
		s.Items = slices.Delete(s.Items, i, i+1)
	}
	if s.TotalCount > 0 {
		s.TotalCount--
	}
}

// ItemGone drops an id the server reported as already deleted. The
// server's totals never counted it after that delete, so TotalCount only
// moves when the item was on screen.
func (s *State) ItemGone(id string) {
	if _, seen := s.deleted[id]; !seen {
		s.deleted[id] = s.deleteSeq
	}
	i := slices.IndexFunc(s.Items, func(a api.Article) bool { return a.ID == id })
	if i < 0 {
		return
	}
	s.Items = slices.Delete(s.Items, i, i+1)
	if s.TotalCount > 0 {
		s.TotalCount--
	}
}

// DeleteFailed raises a notice, using the server message for bad input.
func (s *State) DeleteFailed(err error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Code == api.CodeBadUserInput {
		s.Notice = apiErr.Message
		return
	}
	s.Notice = NoticeDeleteFailed
}

// Reset replaces the list with a freshly fetched first page. Tombstones
// older than the reload are dropped; deletes made while it was in flight
// still apply.
func (s *State) Reset(first api.Page) {
	s.Items = nil
	s.Page = 0
	s.InFlight = false
	s.Notice = ""
	maps.DeleteFunc(s.deleted, func(_ string, seq int) bool { return seq <= s.fetchSeq })
	s.PageArrived(first)
}

// DismissNotice clears the current notice.
func (s *State) DismissNotice() {
	s.Notice = ""
}

// Snapshot is a copy of State safe to read without a lock.
type Snapshot struct {
	Items       []api.Article
	Page        int
	Limit       int
	HasNextPage bool
	TotalCount  int
	InFlight    bool
	Notice      string
	Missing     int
}

func (s *State) snapshot() Snapshot {
	return Snapshot{
		Items:       slices.Clone(s.Items),
		Page:        s.Page,
		Limit:       s.Limit,
		HasNextPage: s.HasNextPage,
		TotalCount:  s.TotalCount,
		InFlight:    s.InFlight,
		Notice:      s.Notice,
		Missing:     s.Missing(),
	}
}
