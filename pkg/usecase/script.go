package usecase

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/winstrap/pkg/domain/model"
)

// launchScripts spawns every script found in baseDir with elevation and does
// not wait for any of them
func (uc *provisioner) launchScripts(ctx context.Context, names []string, baseDir string) []model.ScriptLaunch {
	logger := ctxlog.From(ctx)

	launches := make([]model.ScriptLaunch, 0, len(names))
	for _, name := range names {
		launch := model.ScriptLaunch{
			Name: name,
			Path: filepath.Join(baseDir, name),
		}

		if _, err := os.Stat(launch.Path); err != nil {
			logger.Debug("Script not found", "script", name, "path", launch.Path)
			uc.console.Warn("Script %s not found in the script directory.", name)
			launches = append(launches, launch)
			continue
		}
		launch.Found = true

		uc.console.Info("Running %s...", name)
		if err := uc.runner.Start(ctx, model.ElevatedStart(launch.Path)); err != nil {
			logger.Error("Failed to launch script", "script", name, "error", err)
			uc.console.Warn("Failed to launch %s.", name)
			launches = append(launches, launch)
			continue
		}

		launch.Launched = true
		uc.console.Success("%s launched.", name)
		launches = append(launches, launch)
	}

	return launches
}
