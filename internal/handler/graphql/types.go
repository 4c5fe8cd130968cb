package graphql

import (
	"github.com/graph-gophers/graphql-go"

	"sports-articles/internal/usecase/article"
)

type articleResolver struct {
	v article.View
}

func wrapArticles(views []article.View) []*articleResolver {
	out := make([]*articleResolver, len(views))
	for i := range views {
		out[i] = &articleResolver{v: views[i]}
	}
	return out
}

func (a *articleResolver) ID() graphql.ID     { return graphql.ID(a.v.ID) }
func (a *articleResolver) Title() string      { return a.v.Title }
func (a *articleResolver) Content() string    { return a.v.Content }
func (a *articleResolver) CreatedAt() *string { return a.v.CreatedAt }
func (a *articleResolver) DeletedAt() *string { return a.v.DeletedAt }
func (a *articleResolver) ImageURL() *string  { return a.v.ImageURL }

type pageResolver struct {
	res *article.PageResult
}

func (p *pageResolver) Articles() []*articleResolver { return wrapArticles(p.res.Items) }
func (p *pageResolver) TotalCount() int32            { return int32(p.res.TotalCount) }
func (p *pageResolver) Page() int32                  { return int32(p.res.Page) }
func (p *pageResolver) Limit() int32                 { return int32(p.res.Limit) }
func (p *pageResolver) TotalPages() int32            { return int32(p.res.TotalPages) }
func (p *pageResolver) HasNextPage() bool            { return p.res.HasNextPage }
func (p *pageResolver) HasPrevPage() bool            { return p.res.HasPrevPage }
