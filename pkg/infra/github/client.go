package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v72/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/winstrap/pkg/domain/interfaces"
	"github.com/m-mizutani/winstrap/pkg/domain/model"
)

// ErrAssetNotFound is returned when the release has no asset with the requested name
var ErrAssetNotFound = goerr.New("release asset not found")

type client struct {
	githubClient *github.Client
}

// config holds internal client configuration
type config struct {
	token   string
	baseURL string
}

// Option is a functional option for the release resolver
type Option func(*config)

// WithToken authenticates API calls, which raises the rate limit
func WithToken(token string) Option {
	return func(c *config) {
		c.token = token
	}
}

// WithBaseURL points the client at another API endpoint, such as GitHub Enterprise or a test server
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// NewClient creates a ReleaseResolver backed by the GitHub REST API
func NewClient(opts ...Option) (interfaces.ReleaseResolver, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	githubClient := github.NewClient(&http.Client{})
	if cfg.token != "" {
		githubClient = githubClient.WithAuthToken(cfg.token)
	}

	if cfg.baseURL != "" {
		baseURL := cfg.baseURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse GitHub API base URL", goerr.V("url", cfg.baseURL))
		}
		githubClient.BaseURL = u
	}

	return &client{
		githubClient: githubClient,
	}, nil
}

// ResolveAsset returns the browser download URL of the referenced release asset
func (c *client) ResolveAsset(ctx context.Context, ref *model.ReleaseRef) (string, error) {
	logger := ctxlog.From(ctx)

	var (
		release *github.RepositoryRelease
		err     error
	)
	if ref.IsLatest() {
		release, _, err = c.githubClient.Repositories.GetLatestRelease(ctx, ref.Owner, ref.Repo)
	} else {
		release, _, err = c.githubClient.Repositories.GetReleaseByTag(ctx, ref.Owner, ref.Repo, ref.Tag)
	}
	if err != nil {
		return "", goerr.Wrap(err, "failed to get release", goerr.V("release", ref.String()))
	}

	for _, asset := range release.Assets {
		if asset.GetName() == ref.Asset {
			logger.Debug("Resolved release asset",
				"release", ref.String(),
				"asset", ref.Asset,
				"url", asset.GetBrowserDownloadURL(),
			)
			return asset.GetBrowserDownloadURL(), nil
		}
	}

	return "", goerr.Wrap(ErrAssetNotFound, "no matching asset in release",
		goerr.V("release", ref.String()),
		goerr.V("tag", release.GetTagName()),
		goerr.V("asset", ref.Asset),
	)
}
