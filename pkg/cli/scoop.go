package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/winstrap/pkg/domain/model"
	"github.com/m-mizutani/winstrap/pkg/infra/shell"
	"github.com/m-mizutani/winstrap/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdEnsureScoop() *cli.Command {
	var workDir string

	return &cli.Command{
		Name:    "ensure-scoop",
		Aliases: []string{"scoop"},
		Usage:   "Install scoop globally unless it is already available",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "script-dir",
				Usage:       "Directory the installer runs in (default: executable directory)",
				Destination: &workDir,
				Sources:     cli.EnvVars("WINSTRAP_SCRIPT_DIR"),
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			// EnsureTool never downloads
			uc := usecase.NewProvisioner(nil, shell.NewRunner())

			status, err := uc.EnsureTool(ctx, model.ScoopGlobalTool(), workDir)
			if err != nil {
				return goerr.Wrap(err, "failed to ensure scoop")
			}

			ctxlog.From(ctx).Info("Scoop check complete",
				slog.Bool("available", status.Available),
				slog.Bool("installed", status.Installed),
			)
			return nil
		},
	}
}
