package siteclient

import (
	"context"
	"log/slog"

	"github.com/nbmdigital/siteclient/pkg/api"
	"github.com/nbmdigital/siteclient/pkg/apiclient"
	"github.com/nbmdigital/siteclient/pkg/config"
	"github.com/nbmdigital/siteclient/pkg/guard"
	"github.com/nbmdigital/siteclient/pkg/logger"
	"github.com/nbmdigital/siteclient/pkg/query"
	"github.com/nbmdigital/siteclient/pkg/session"
	"github.com/nbmdigital/siteclient/pkg/settings"
	"github.com/nbmdigital/siteclient/pkg/tokenstore"
)

// Client is the composed admin client: transport, token store, domain
// API modules, query cache, session resolver and settings projection
// wired together. Reads go through the cache; mutations invalidate the
// affected key prefixes so subsequent reads refetch.
type Client struct {
	log    *slog.Logger
	tokens tokenstore.Store
	cache  *query.Client

	auth         *api.Auth
	users        *api.Users
	articles     *api.Articles
	siteSettings *api.SiteSettings

	session  *session.Resolver
	settings *settings.Settings
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	tokens := o.tokens
	if tokens == nil {
		if o.tokenDir != "" {
			var err error
			tokens, err = tokenstore.NewFile(o.tokenDir)
			if err != nil {
				return nil, err
			}
		} else {
			tokens = tokenstore.NewMemory()
		}
	}

	transportOpts := []apiclient.Option{
		apiclient.WithTokenStore(tokens),
		apiclient.WithLogger(o.log, o.env),
	}
	if o.httpClient != nil {
		transportOpts = append(transportOpts, apiclient.WithHTTPClient(o.httpClient))
	}
	transport := apiclient.New(baseURL, transportOpts...)

	cacheOpts := []query.ClientOption{query.WithLogger(o.log)}
	if o.staleTime > 0 {
		cacheOpts = append(cacheOpts, query.WithDefaultStaleTime(o.staleTime))
	}
	if o.gcTime > 0 {
		cacheOpts = append(cacheOpts, query.WithDefaultGCTime(o.gcTime))
	}
	if o.gcInterval >= 0 {
		cacheOpts = append(cacheOpts, query.WithGCInterval(o.gcInterval))
	}
	cache := query.NewClient(cacheOpts...)

	c := &Client{
		log:          o.log,
		tokens:       tokens,
		cache:        cache,
		auth:         api.NewAuth(transport),
		users:        api.NewUsers(transport),
		articles:     api.NewArticles(transport),
		siteSettings: api.NewSiteSettings(transport),
	}
	c.session = session.New(c.auth, tokens, cache, session.WithLogger(o.log))
	c.settings = settings.New(c.siteSettings, cache)

	return c, nil
}

// NewFromConfig creates a client from a loaded configuration, wiring a
// real logger (with Sentry when a DSN is configured) and a file-backed
// token store when a token directory is set.
func NewFromConfig(cfg *config.Config) (*Client, error) {
	log := logger.NewWithSentry(cfg.Environment,
		logger.SentryConfig{DSN: cfg.SentryDSN},
		apiclient.RequestIDExtractor(),
	)

	opts := []Option{
		WithLogger(log),
		WithEnvironment(cfg.Environment),
	}
	if cfg.TokenDir != "" {
		opts = append(opts, WithTokenDir(cfg.TokenDir))
	}
	if cfg.StaleTime > 0 {
		opts = append(opts, WithStaleTime(cfg.StaleTime))
	}
	if cfg.GCTime > 0 {
		opts = append(opts, WithGCTime(cfg.GCTime))
	}

	return New(cfg.BaseURL, opts...)
}

// Close stops the cache janitor. The client must not be used after
// Close.
func (c *Client) Close() {
	c.cache.Close()
}

// Session returns the session resolver.
func (c *Client) Session() *session.Resolver { return c.session }

// Settings returns the typed site-settings projection.
func (c *Client) Settings() *settings.Settings { return c.settings }

// Cache returns the underlying query cache, for subscriptions and
// manual invalidation.
func (c *Client) Cache() *query.Client { return c.cache }

// Guard builds a route guard over this client's session.
func (c *Client) Guard(opts ...guard.Option) *guard.Guard {
	return guard.New(c.session, opts...)
}

// Resolve bootstraps the session from the stored token; see
// session.Resolver.Resolve.
func (c *Client) Resolve(ctx context.Context) {
	c.session.Resolve(ctx)
}

// Login authenticates and establishes the session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.session.Login(ctx, email, password)
}

// Logout tears the session down locally regardless of the server-side
// outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.session.Logout(ctx)
}

// Register creates a new account. Registration does not log in.
func (c *Client) Register(ctx context.Context, email, password, username string) (*api.User, error) {
	return c.auth.Register(ctx, email, password, username)
}

// ChangePassword updates the current user's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return c.session.ChangePassword(ctx, oldPassword, newPassword)
}

// RefetchStale refetches every stale cache entry that still has
// subscribers. Call it on app focus or network reconnect.
func (c *Client) RefetchStale(ctx context.Context) {
	c.cache.RefetchStale(ctx)
}

// ListUsers returns one cached page of users.
func (c *Client) ListUsers(ctx context.Context, page, limit int) (*api.UserList, error) {
	return query.Fetch(ctx, c.cache, api.KeyUsers(page, limit),
		func(ctx context.Context) (*api.UserList, error) {
			return c.users.List(ctx, page, limit)
		})
}

// GetUser returns one cached user.
func (c *Client) GetUser(ctx context.Context, id string) (*api.User, error) {
	return query.Fetch(ctx, c.cache, api.KeyUser(id),
		func(ctx context.Context) (*api.User, error) {
			return c.users.Get(ctx, id)
		})
}

// CreateUser creates a user and invalidates all cached user listings.
func (c *Client) CreateUser(ctx context.Context, in api.CreateUserInput) (*api.User, error) {
	return query.Mutate(ctx,
		func(ctx context.Context) (*api.User, error) {
			return c.users.Create(ctx, in)
		},
		query.Callbacks[*api.User]{
			OnSuccess: func(*api.User) { c.cache.Invalidate(ctx, api.KeyUsersPrefix()) },
		})
}

// UpdateUser applies a partial update and invalidates all cached user
// listings and details.
func (c *Client) UpdateUser(ctx context.Context, id string, in api.UpdateUserInput) (*api.User, error) {
	return query.Mutate(ctx,
		func(ctx context.Context) (*api.User, error) {
			return c.users.Update(ctx, id, in)
		},
		query.Callbacks[*api.User]{
			OnSuccess: func(*api.User) { c.cache.Invalidate(ctx, api.KeyUsersPrefix()) },
		})
}

// DeleteUser removes a user and invalidates all cached user listings
// and details.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := query.Mutate(ctx,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, c.users.Delete(ctx, id)
		},
		query.Callbacks[struct{}]{
			OnSuccess: func(struct{}) { c.cache.Invalidate(ctx, api.KeyUsersPrefix()) },
		})
	return err
}

// ListArticles returns the cached admin article listing, drafts
// included.
func (c *Client) ListArticles(ctx context.Context) ([]api.Article, error) {
	return query.Fetch(ctx, c.cache, api.KeyArticles(),
		func(ctx context.Context) ([]api.Article, error) {
			return c.articles.List(ctx)
		})
}

// GetArticle returns one cached article.
func (c *Client) GetArticle(ctx context.Context, id string) (*api.Article, error) {
	return query.Fetch(ctx, c.cache, api.KeyArticle(id),
		func(ctx context.Context) (*api.Article, error) {
			return c.articles.Get(ctx, id)
		})
}

// CreateArticle creates an article and invalidates the cached article
// listing and details.
func (c *Client) CreateArticle(ctx context.Context, title, content string, published bool) (*api.Article, error) {
	return query.Mutate(ctx,
		func(ctx context.Context) (*api.Article, error) {
			return c.articles.Create(ctx, title, content, published)
		},
		query.Callbacks[*api.Article]{
			OnSuccess: func(*api.Article) { c.cache.Invalidate(ctx, api.KeyArticles()) },
		})
}

// UpdateArticle applies a partial update and invalidates the cached
// article listing and details.
func (c *Client) UpdateArticle(ctx context.Context, id string, in api.UpdateArticleInput) (*api.Article, error) {
	return query.Mutate(ctx,
		func(ctx context.Context) (*api.Article, error) {
			return c.articles.Update(ctx, id, in)
		},
		query.Callbacks[*api.Article]{
			OnSuccess: func(*api.Article) { c.cache.Invalidate(ctx, api.KeyArticles()) },
		})
}

// DeleteArticle removes an article and invalidates the cached article
// listing and details.
func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	_, err := query.Mutate(ctx,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, c.articles.Delete(ctx, id)
		},
		query.Callbacks[struct{}]{
			OnSuccess: func(struct{}) { c.cache.Invalidate(ctx, api.KeyArticles()) },
		})
	return err
}

// ListSiteSettings returns the cached settings list.
func (c *Client) ListSiteSettings(ctx context.Context) ([]api.SiteSetting, error) {
	return c.settings.All(ctx)
}

// GetSiteSetting returns one cached setting by numeric ID or string
// key.
func (c *Client) GetSiteSetting(ctx context.Context, idOrKey string) (*api.SiteSetting, error) {
	return query.Fetch(ctx, c.cache, api.KeySiteSetting(idOrKey),
		func(ctx context.Context) (*api.SiteSetting, error) {
			return c.siteSettings.Get(ctx, idOrKey)
		})
}

// CreateSiteSetting creates a setting and invalidates the cached
// settings list and details.
func (c *Client) CreateSiteSetting(ctx context.Context, in api.CreateSiteSettingInput) (*api.SiteSetting, error) {
	return query.Mutate(ctx,
		func(ctx context.Context) (*api.SiteSetting, error) {
			return c.siteSettings.Create(ctx, in)
		},
		query.Callbacks[*api.SiteSetting]{
			OnSuccess: func(*api.SiteSetting) { c.cache.Invalidate(ctx, api.KeySiteSettings()) },
		})
}

// UpdateSiteSetting applies a partial update and invalidates the
// cached settings list and details.
func (c *Client) UpdateSiteSetting(ctx context.Context, id int64, in api.UpdateSiteSettingInput) (*api.SiteSetting, error) {
	return query.Mutate(ctx,
		func(ctx context.Context) (*api.SiteSetting, error) {
			return c.siteSettings.Update(ctx, id, in)
		},
		query.Callbacks[*api.SiteSetting]{
			OnSuccess: func(*api.SiteSetting) { c.cache.Invalidate(ctx, api.KeySiteSettings()) },
		})
}

// DeleteSiteSetting removes a setting and invalidates the cached
// settings list and details.
func (c *Client) DeleteSiteSetting(ctx context.Context, id int64) error {
	_, err := query.Mutate(ctx,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, c.siteSettings.Delete(ctx, id)
		},
		query.Callbacks[struct{}]{
			OnSuccess: func(struct{}) { c.cache.Invalidate(ctx, api.KeySiteSettings()) },
		})
	return err
}
