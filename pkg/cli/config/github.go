package config

import (
	"context"
	"log/slog"
	"path"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/winstrap/pkg/domain/interfaces"
	"github.com/m-mizutani/winstrap/pkg/domain/model"
	githubinfra "github.com/m-mizutani/winstrap/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub release configuration
type GitHub struct {
	Release string
	Asset   string
	Token   string `masq:"secret"`
	APIURL  string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-release",
			Usage:       "Resolve the archive URL from a GitHub release (owner/repo@tag, tag defaults to latest)",
			Destination: &c.Release,
			Sources:     cli.EnvVars("WINSTRAP_GITHUB_RELEASE"),
		},
		&cli.StringFlag{
			Name:        "github-asset",
			Usage:       "Asset file name in the GitHub release",
			Destination: &c.Asset,
			Sources:     cli.EnvVars("WINSTRAP_GITHUB_ASSET"),
		},
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token for API calls",
			Destination: &c.Token,
			Sources:     cli.EnvVars("WINSTRAP_GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub API base URL (for GitHub Enterprise)",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("WINSTRAP_GITHUB_API_URL"),
		},
	}
}

// Enabled reports whether a release should be resolved
func (c *GitHub) Enabled() bool {
	return c.Release != ""
}

// Apply points cfg at the configured release. The asset URL itself is looked
// up by the provisioner once the destination check passes. The download path
// becomes the asset name unless keepDownloadPath is set.
func (c *GitHub) Apply(ctx context.Context, cfg *model.ProvisionConfig, keepDownloadPath bool) error {
	ref, err := model.ParseReleaseRef(c.Release, c.Asset)
	if err != nil {
		return err
	}

	ctxlog.From(ctx).Debug("Using release asset", slog.Any("github", c))

	cfg.Release = ref
	if !keepDownloadPath {
		cfg.DownloadPath = path.Base(ref.Asset)
	}
	return nil
}

// NewResolver creates the release resolver for this configuration
func (c *GitHub) NewResolver() (interfaces.ReleaseResolver, error) {
	opts := []githubinfra.Option{githubinfra.WithToken(c.Token)}
	if c.APIURL != "" {
		opts = append(opts, githubinfra.WithBaseURL(c.APIURL))
	}

	resolver, err := githubinfra.NewClient(opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub client")
	}
	return resolver, nil
}
