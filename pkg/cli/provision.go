package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/winstrap/pkg/cli/config"
	"github.com/m-mizutani/winstrap/pkg/infra/download"
	"github.com/m-mizutani/winstrap/pkg/infra/shell"
	"github.com/m-mizutani/winstrap/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdProvision() *cli.Command {
	var (
		provisionCfg config.Provision
		githubCfg    config.GitHub
	)

	flags := append(provisionCfg.Flags(), githubCfg.Flags()...)

	return &cli.Command{
		Name:    "provision",
		Aliases: []string{"p"},
		Usage:   "Install the archive, ensure package managers and launch follow-up scripts",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			cfg, err := provisionCfg.Build(c)
			if err != nil {
				return goerr.Wrap(err, "failed to build provision config")
			}

			var opts []usecase.Option
			if githubCfg.Enabled() {
				if err := githubCfg.Apply(ctx, cfg, provisionCfg.DownloadPathExplicit()); err != nil {
					return err
				}
				resolver, err := githubCfg.NewResolver()
				if err != nil {
					return err
				}
				opts = append(opts, usecase.WithReleaseResolver(resolver))
			}

			uc := usecase.NewProvisioner(download.NewClient(), shell.NewRunner(), opts...)

			report, err := uc.Provision(ctx, cfg)
			if err != nil {
				return goerr.Wrap(err, "provisioning failed")
			}

			if report.Aborted {
				logger.Info("Provisioning aborted", slog.String("dest_dir", cfg.DestinationDir))
				return nil
			}

			logger.Info("Provisioning complete",
				slog.Int("files", len(report.Download.Files)),
				slog.Int("tools", len(report.Tools)),
				slog.Int("scripts_launched", report.LaunchedCount()),
			)
			return nil
		},
	}
}
