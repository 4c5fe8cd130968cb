// Package graphql exposes the article service over GraphQL.
//
// The schema is parsed by graph-gophers/graphql-go and resolved by reflection
// against Resolver. Service errors reach clients through ErrorEnvelope as
// errors carrying extensions {code, field}.
package graphql

import (
	"github.com/graph-gophers/graphql-go"
)

// Schema is the GraphQL SDL served at /graphql.
const Schema = `
schema {
	query: Query
	mutation: Mutation
}

type SportsArticle {
	id: ID!
	title: String!
	content: String!
	createdAt: String
	deletedAt: String
	imageUrl: String
}

type ArticlesPage {
	articles: [SportsArticle!]!
	totalCount: Int!
	page: Int!
	limit: Int!
	totalPages: Int!
	hasNextPage: Boolean!
	hasPrevPage: Boolean!
}

input ArticleInput {
	title: String
	content: String
	imageUrl: String
}

type Query {
	articles: [SportsArticle!]!
	articlesPage(page: Int = 1, limit: Int = 10): ArticlesPage!
	article(id: ID!): SportsArticle
}

type Mutation {
	createArticle(input: ArticleInput!): SportsArticle!
	updateArticle(id: ID!, input: ArticleInput!): SportsArticle!
	deleteArticle(id: ID!): Boolean!
}
`

// Limits applied to every parsed query.
const (
	maxDepth       = 8
	maxParallelism = 8
)

// NewSchema parses Schema against a resolver backed by svc.
func NewSchema(svc ArticleService) (*graphql.Schema, error) {
	return graphql.ParseSchema(Schema, NewResolver(svc),
		graphql.MaxDepth(maxDepth),
		graphql.MaxParallelism(maxParallelism),
	)
}
