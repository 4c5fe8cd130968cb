package api

import "context"

// Article mirrors the SportsArticle GraphQL type.
type Article struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	CreatedAt *string `json:"createdAt"`
	DeletedAt *string `json:"deletedAt"`
	ImageURL  *string `json:"imageUrl"`
}

// Page mirrors the ArticlesPage GraphQL type.
type Page struct {
	Articles    []Article `json:"articles"`
	TotalCount  int       `json:"totalCount"`
	Page        int       `json:"page"`
	Limit       int       `json:"limit"`
	TotalPages  int       `json:"totalPages"`
	HasNextPage bool      `json:"hasNextPage"`
	HasPrevPage bool      `json:"hasPrevPage"`
}

// Input is create or update input. A nil ImageURL is omitted from the
// request, which leaves an existing image untouched on update.
type Input struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

const articleFields = `id title content createdAt deletedAt imageUrl`

const (
	listQuery = `query Articles { articles { ` + articleFields + ` } }`

	pageQuery = `query ArticlesPage($page: Int, $limit: Int) {
	articlesPage(page: $page, limit: $limit) {
		articles { ` + articleFields + ` }
		totalCount page limit totalPages hasNextPage hasPrevPage
	}
}`

	getQuery = `query Article($id: ID!) { article(id: $id) { ` + articleFields + ` } }`

	createMutation = `mutation CreateArticle($input: ArticleInput!) {
	createArticle(input: $input) { ` + articleFields + ` }
}`

	updateMutation = `mutation UpdateArticle($id: ID!, $input: ArticleInput!) {
	updateArticle(id: $id, input: $input) { ` + articleFields + ` }
}`

	deleteMutation = `mutation DeleteArticle($id: ID!) { deleteArticle(id: $id) }`
)

// List returns every active article.
func (c *Client) List(ctx context.Context) ([]Article, error) {
	var data struct {
		Articles []Article `json:"articles"`
	}
	if err := c.query(ctx, request{Query: listQuery, OperationName: "Articles"}, &data); err != nil {
		return nil, err
	}
	return data.Articles, nil
}

// Page fetches one page. The server clamps out-of-range values.
func (c *Client) Page(ctx context.Context, page, limit int) (*Page, error) {
	var data struct {
		ArticlesPage Page `json:"articlesPage"`
	}
	req := request{
		Query:         pageQuery,
		OperationName: "ArticlesPage",
		Variables:     map[string]interface{}{"page": page, "limit": limit},
	}
	if err := c.query(ctx, req, &data); err != nil {
		return nil, err
	}
	return &data.ArticlesPage, nil
}

// Get fetches one active article.
func (c *Client) Get(ctx context.Context, id string) (*Article, error) {
	var data struct {
		Article *Article `json:"article"`
	}
	req := request{Query: getQuery, OperationName: "Article", Variables: map[string]interface{}{"id": id}}
	if err := c.query(ctx, req, &data); err != nil {
		return nil, err
	}
	if data.Article == nil {
		return nil, &Error{Code: CodeNotFound, Message: "Article with id " + id + " not found"}
	}
	return data.Article, nil
}

// Create stores a new article.
func (c *Client) Create(ctx context.Context, in Input) (*Article, error) {
	var data struct {
		CreateArticle Article `json:"createArticle"`
	}
	req := request{Query: createMutation, OperationName: "CreateArticle", Variables: map[string]interface{}{"input": in}}
	if err := c.mutate(ctx, req, &data); err != nil {
		return nil, err
	}
	return &data.CreateArticle, nil
}

// Update overwrites title and content of an article.
func (c *Client) Update(ctx context.Context, id string, in Input) (*Article, error) {
	var data struct {
		UpdateArticle Article `json:"updateArticle"`
	}
	req := request{
		Query:         updateMutation,
		OperationName: "UpdateArticle",
		Variables:     map[string]interface{}{"id": id, "input": in},
	}
	if err := c.mutate(ctx, req, &data); err != nil {
		return nil, err
	}
	return &data.UpdateArticle, nil
}

// Delete soft-deletes an article.
func (c *Client) Delete(ctx context.Context, id string) error {
	var data struct {
		DeleteArticle bool `json:"deleteArticle"`
	}
	req := request{Query: deleteMutation, OperationName: "DeleteArticle", Variables: map[string]interface{}{"id": id}}
	return c.mutate(ctx, req, &data)
}
