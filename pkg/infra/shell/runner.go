package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/winstrap/pkg/domain/interfaces"
	"github.com/m-mizutani/winstrap/pkg/domain/model"
	"github.com/m-mizutani/winstrap/pkg/utils/async"
)

type runner struct{}

// NewRunner creates a CommandRunner backed by os/exec
func NewRunner() interfaces.CommandRunner {
	return &runner{}
}

// Run executes cmd, captures stdout and stderr and waits for it to exit
func (r *runner) Run(ctx context.Context, cmd model.Command) (*model.CommandResult, error) {
	logger := ctxlog.From(ctx)

	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdout = &stdout
	c.Stderr = &stderr

	logger.Debug("Running command", "command", cmd.String(), "dir", cmd.Dir)

	err := c.Run()
	result := &model.CommandResult{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			logger.Debug("Command exited with non-zero status",
				"command", cmd.String(),
				"exit_code", result.ExitCode,
			)
			return result, nil
		}
		return nil, goerr.Wrap(err, "failed to run command", goerr.V("command", cmd.String()))
	}

	return result, nil
}

// Start launches cmd and returns as soon as the process exists
func (r *runner) Start(ctx context.Context, cmd model.Command) error {
	// Not bound to ctx: the child outlives the caller
	c := exec.Command(cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir

	if err := c.Start(); err != nil {
		return goerr.Wrap(err, "failed to start command", goerr.V("command", cmd.String()))
	}

	ctxlog.From(ctx).Debug("Started detached command",
		"command", cmd.String(),
		"pid", c.Process.Pid,
	)

	// Reap the child in the background; its exit status is not reported
	async.Dispatch(ctx, "reap "+cmd.Name, func(ctx context.Context) error {
		_ = c.Wait()
		return nil
	})

	return nil
}
