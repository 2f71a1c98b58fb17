package api

import (
	"context"
	"net/http"

	"github.com/nbmdigital/siteclient/pkg/apiclient"
)

const (
	articlesBasePath  = "/articles"
	articlesAdminPath = "/admin/articles"
)

// Articles exposes the article endpoints.
type Articles struct {
	client *apiclient.Client
}

// NewArticles creates the articles module over the given transport.
func NewArticles(client *apiclient.Client) *Articles {
	return &Articles{client: client}
}

// List returns all articles including unpublished drafts. Admin only.
func (a *Articles) List(ctx context.Context) ([]Article, error) {
	resp, err := a.client.AuthRequest(ctx, http.MethodGet, articlesAdminPath, nil)
	if err != nil {
		return nil, err
	}
	return apiclient.Decode[[]Article](resp)
}

// Get returns a single article by ID.
func (a *Articles) Get(ctx context.Context, id string) (*Article, error) {
	resp, err := a.client.AuthRequest(ctx, http.MethodGet, articlesBasePath+"/"+id, nil)
	if err != nil {
		return nil, err
	}
	article, err := apiclient.Decode[Article](resp)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// Create creates an article. Unpublished articles are drafts visible
// only through the admin listing.
func (a *Articles) Create(ctx context.Context, title, content string, published bool) (*Article, error) {
	resp, err := a.client.AuthRequest(ctx, http.MethodPost, articlesBasePath, map[string]any{
		"title":       title,
		"content":     content,
		"isPublished": published,
	})
	if err != nil {
		return nil, err
	}
	article, err := apiclient.Decode[Article](resp)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// UpdateArticleInput is a partial update; nil fields are left
// unchanged. Published maps to the wire field "isPublished".
type UpdateArticleInput struct {
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	Published *bool   `json:"isPublished,omitempty"`
}

// Update applies a partial update to an article.
func (a *Articles) Update(ctx context.Context, id string, in UpdateArticleInput) (*Article, error) {
	resp, err := a.client.AuthRequest(ctx, http.MethodPut, articlesBasePath+"/"+id, in)
	if err != nil {
		return nil, err
	}
	article, err := apiclient.Decode[Article](resp)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// Delete removes an article.
func (a *Articles) Delete(ctx context.Context, id string) error {
	_, err := a.client.AuthRequest(ctx, http.MethodDelete, articlesBasePath+"/"+id, nil)
	return err
}
