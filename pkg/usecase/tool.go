package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/winstrap/pkg/domain/model"
)

// ErrInstallFailed is returned when an installer cannot run or exits non-zero
var ErrInstallFailed = goerr.New("tool installation failed")

// EnsureTool runs the tool's probe and runs its installer only when the probe
// fails. The installer runs in workDir unless it names its own directory; an
// empty workDir means the directory of the running executable.
func (uc *provisioner) EnsureTool(ctx context.Context, tool model.ToolSpec, workDir string) (*model.ToolStatus, error) {
	logger := ctxlog.From(ctx).With("tool", tool.Name)

	status := &model.ToolStatus{Name: tool.Name}
	if uc.probe(ctx, tool.Probe) {
		logger.Info("Tool already available", "probe", tool.Probe.String())
		status.Available = true
		return status, nil
	}

	workDir, err := resolveScriptDir(workDir)
	if err != nil {
		return nil, err
	}

	uc.console.Info("Installing %s...", tool.Name)
	logger.Info("Tool not available, running installer", "installer", tool.Install.String(), "dir", workDir)

	result, err := uc.runner.Run(ctx, tool.Install.WithDir(workDir))
	if err != nil {
		return nil, goerr.Wrap(errors.Join(ErrInstallFailed, err), "failed to run installer", goerr.V("tool", tool.Name))
	}
	if !result.Succeeded() {
		return nil, goerr.Wrap(ErrInstallFailed, "installer exited with non-zero status",
			goerr.V("tool", tool.Name),
			goerr.V("exit_code", result.ExitCode),
			goerr.V("stderr", string(result.Stderr)),
		)
	}

	uc.console.Success("%s installed.", tool.Name)
	status.Installed = true
	return status, nil
}

// probe reports whether the probe command ran and exited 0
func (uc *provisioner) probe(ctx context.Context, probe model.Command) bool {
	result, err := uc.runner.Run(ctx, probe)
	if err != nil {
		ctxlog.From(ctx).Debug("Probe could not run", "probe", probe.String(), "error", err)
		return false
	}
	return result.Succeeded()
}
