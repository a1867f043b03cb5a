package usecase_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/winstrap/pkg/domain/interfaces"
	"github.com/m-mizutani/winstrap/pkg/domain/model"
	"github.com/m-mizutani/winstrap/pkg/usecase"
	"github.com/m-mizutani/winstrap/pkg/utils/console"
)

// MockDownloader is a mock implementation of Downloader
type MockDownloader struct {
	downloadFunc func(ctx context.Context, url string, w io.Writer) (int64, error)
	urls         []string
}

func (m *MockDownloader) Download(ctx context.Context, url string, w io.Writer) (int64, error) {
	m.urls = append(m.urls, url)
	if m.downloadFunc != nil {
		return m.downloadFunc(ctx, url, w)
	}
	return 0, errors.New("mock not configured")
}

// serveBytes returns a download function writing data
func serveBytes(data []byte) func(ctx context.Context, url string, w io.Writer) (int64, error) {
	return func(ctx context.Context, url string, w io.Writer) (int64, error) {
		n, err := w.Write(data)
		return int64(n), err
	}
}

// MockReleaseResolver is a mock implementation of ReleaseResolver
type MockReleaseResolver struct {
	resolveFunc func(ctx context.Context, ref *model.ReleaseRef) (string, error)
	refs        []*model.ReleaseRef
}

func (m *MockReleaseResolver) ResolveAsset(ctx context.Context, ref *model.ReleaseRef) (string, error) {
	m.refs = append(m.refs, ref)
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, ref)
	}
	return "", errors.New("mock not configured")
}

// MockRunner is a mock implementation of CommandRunner
type MockRunner struct {
	runFunc   func(ctx context.Context, cmd model.Command) (*model.CommandResult, error)
	startFunc func(ctx context.Context, cmd model.Command) error
	runCalls  []model.Command
	started   []model.Command
}

func (m *MockRunner) Run(ctx context.Context, cmd model.Command) (*model.CommandResult, error) {
	m.runCalls = append(m.runCalls, cmd)
	if m.runFunc != nil {
		return m.runFunc(ctx, cmd)
	}
	return &model.CommandResult{}, nil
}

func (m *MockRunner) Start(ctx context.Context, cmd model.Command) error {
	m.started = append(m.started, cmd)
	if m.startFunc != nil {
		return m.startFunc(ctx, cmd)
	}
	return nil
}

// ranCommand reports how many times cmd was run synchronously
func (m *MockRunner) ranCommand(cmd model.Command) int {
	n := 0
	for _, c := range m.runCalls {
		if c.String() == cmd.String() {
			n++
		}
	}
	return n
}

// testTools returns a winget-like and a scoop-like tool with distinct commands
func testTools() []model.ToolSpec {
	return []model.ToolSpec{
		{
			Name:    "winget",
			Probe:   model.Command{Name: "winget", Args: []string{"--help"}},
			Install: model.PowerShell("install-winget"),
		},
		{
			Name:    "scoop",
			Probe:   model.Command{Name: "scoop", Args: []string{"--version"}},
			Install: model.PowerShell("install-scoop"),
		},
	}
}

type fixture struct {
	downloader *MockDownloader
	runner     *MockRunner
	out        *bytes.Buffer
	cfg        *model.ProvisionConfig
}

// newFixture prepares an existing destination, a script directory and a served archive
func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	destDir := filepath.Join(root, "System32")
	scriptDir := filepath.Join(root, "bootstrap")
	gt.NoError(t, os.MkdirAll(destDir, 0o755))
	gt.NoError(t, os.MkdirAll(scriptDir, 0o755))

	return &fixture{
		downloader: &MockDownloader{downloadFunc: serveBytes(createTestZip(t))},
		runner:     &MockRunner{},
		out:        &bytes.Buffer{},
		cfg: &model.ProvisionConfig{
			SourceURL:      "https://example.com/fzf-0.42.0-windows_amd64.zip",
			DownloadPath:   filepath.Join(root, "fzf-0.42.0-windows_amd64.zip"),
			DestinationDir: destDir,
			ScriptDir:      scriptDir,
			Scripts:        model.DefaultScripts,
			Tools:          testTools(),
		},
	}
}

func (f *fixture) provisioner() interfaces.ProvisionUseCase {
	return usecase.NewProvisioner(f.downloader, f.runner, usecase.WithConsole(console.New(f.out).NoColor()))
}

func (f *fixture) writeScripts(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		gt.NoError(t, os.WriteFile(filepath.Join(f.cfg.ScriptDir, name), []byte("@echo off\n"), 0o644))
	}
}

// createTestZip creates a test ZIP file for testing
func createTestZip(t *testing.T) []byte {
	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	files := map[string]string{
		"fzf.exe":         "MZ fake fzf binary",
		"docs/README.txt": "fzf is a general-purpose command-line fuzzy finder.",
	}

	for filename, content := range files {
		writer, err := zipWriter.Create(filename)
		gt.NoError(t, err)

		_, err = writer.Write([]byte(content))
		gt.NoError(t, err)
	}

	gt.NoError(t, zipWriter.Close())

	return buf.Bytes()
}
