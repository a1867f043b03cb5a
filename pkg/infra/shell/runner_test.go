package shell_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/winstrap/pkg/domain/model"
	"github.com/m-mizutani/winstrap/pkg/infra/shell"
)

// helperCommand re-executes the test binary as a fake external program
func helperCommand(t *testing.T, args ...string) model.Command {
	t.Helper()
	t.Setenv("WINSTRAP_WANT_HELPER_PROCESS", "1")
	return model.Command{
		Name: os.Args[0],
		Args: append([]string{"-test.run=TestHelperProcess", "--"}, args...),
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("WINSTRAP_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	if len(args) < 2 {
		os.Exit(2)
	}

	switch args[1] {
	case "echo":
		fmt.Fprint(os.Stdout, args[2])
		fmt.Fprint(os.Stderr, "to stderr")
		os.Exit(0)
	case "exit":
		code, _ := strconv.Atoi(args[2])
		os.Exit(code)
	case "pwd":
		wd, _ := os.Getwd()
		fmt.Fprint(os.Stdout, wd)
		os.Exit(0)
	case "touch":
		_ = os.WriteFile(args[2], []byte("launched"), 0600)
		os.Exit(0)
	}
	os.Exit(2)
}

func TestRunner_Run_CapturesOutput(t *testing.T) {
	result, err := shell.NewRunner().Run(context.Background(), helperCommand(t, "echo", "winget v1.9"))
	gt.NoError(t, err)
	gt.True(t, result.Succeeded())
	gt.Equal(t, string(result.Stdout), "winget v1.9")
	gt.Equal(t, string(result.Stderr), "to stderr")
}

func TestRunner_Run_NonZeroExit(t *testing.T) {
	result, err := shell.NewRunner().Run(context.Background(), helperCommand(t, "exit", "3"))
	gt.NoError(t, err)
	gt.False(t, result.Succeeded())
	gt.Equal(t, result.ExitCode, 3)
}

func TestRunner_Run_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	cmd := helperCommand(t, "pwd").WithDir(dir)

	result, err := shell.NewRunner().Run(context.Background(), cmd)
	gt.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	gt.NoError(t, err)
	got, err := filepath.EvalSymlinks(string(result.Stdout))
	gt.NoError(t, err)
	gt.Equal(t, got, want)
}

func TestRunner_Run_CommandNotFound(t *testing.T) {
	result, err := shell.NewRunner().Run(context.Background(), model.Command{Name: "winstrap-no-such-command"})
	gt.Error(t, err)
	gt.True(t, result == nil)
}

func TestRunner_Start_DoesNotWait(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "launched.txt")

	err := shell.NewRunner().Start(context.Background(), helperCommand(t, "touch", marker))
	gt.NoError(t, err)

	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := os.Stat(marker); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("detached command did not run within timeout")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRunner_Start_CommandNotFound(t *testing.T) {
	err := shell.NewRunner().Start(context.Background(), model.Command{Name: "winstrap-no-such-command"})
	gt.Error(t, err)
}
