package usecase

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/winstrap/pkg/domain/interfaces"
	"github.com/m-mizutani/winstrap/pkg/domain/model"
	"github.com/m-mizutani/winstrap/pkg/utils/console"
)

// ErrNoReleaseResolver is returned when a release is configured but the
// provisioner has no way to resolve it
var ErrNoReleaseResolver = goerr.New("release configured without a resolver")

type provisioner struct {
	downloader interfaces.Downloader
	runner     interfaces.CommandRunner
	resolver   interfaces.ReleaseResolver
	console    *console.Printer
}

// Option is a functional option for the provisioner
type Option func(*provisioner)

// WithConsole sets the printer used for progress notices
func WithConsole(p *console.Printer) Option {
	return func(uc *provisioner) {
		uc.console = p
	}
}

// WithReleaseResolver sets the resolver used when the config names a release
func WithReleaseResolver(r interfaces.ReleaseResolver) Option {
	return func(uc *provisioner) {
		uc.resolver = r
	}
}

// NewProvisioner creates a new instance of ProvisionUseCase. The downloader
// may be nil when only EnsureTool is used.
func NewProvisioner(
	downloader interfaces.Downloader,
	runner interfaces.CommandRunner,
	opts ...Option,
) interfaces.ProvisionUseCase {
	uc := &provisioner{
		downloader: downloader,
		runner:     runner,
		console:    console.New(os.Stdout),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Provision runs the provisioning pipeline. Steps run strictly in order and the
// first error stops the run. A missing destination directory aborts the run
// before anything else happens, including config validation and release
// lookup, and is not an error.
func (uc *provisioner) Provision(ctx context.Context, cfg *model.ProvisionConfig) (*model.ProvisionReport, error) {
	logger := ctxlog.From(ctx)

	report := &model.ProvisionReport{}

	if !dirExists(cfg.DestinationDir) {
		logger.Warn("Destination directory is missing, aborting", "dest_dir", cfg.DestinationDir)
		uc.console.Warn("Destination directory does not exist. Please ensure '%s' exists.", cfg.DestinationDir)
		report.Aborted = true
		return report, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid provision config")
	}

	sourceURL, err := uc.resolveSourceURL(ctx, cfg)
	if err != nil {
		return nil, err
	}

	scriptDir, err := resolveScriptDir(cfg.ScriptDir)
	if err != nil {
		return nil, err
	}

	logger.Info("Starting provisioning",
		"source_url", sourceURL,
		"download_path", cfg.DownloadPath,
		"dest_dir", cfg.DestinationDir,
		"script_dir", scriptDir,
	)

	result, err := uc.fetchAndUnpack(ctx, sourceURL, cfg.DownloadPath, cfg.DestinationDir)
	if err != nil {
		return nil, err
	}
	report.Download = result

	for _, tool := range cfg.Tools {
		status, err := uc.EnsureTool(ctx, tool, scriptDir)
		if err != nil {
			return nil, err
		}
		report.Tools = append(report.Tools, *status)
	}

	report.Scripts = uc.launchScripts(ctx, cfg.Scripts, scriptDir)

	logger.Info("Provisioning finished",
		"files", len(result.Files),
		"scripts_launched", report.LaunchedCount(),
	)

	return report, nil
}

func (uc *provisioner) resolveSourceURL(ctx context.Context, cfg *model.ProvisionConfig) (string, error) {
	if cfg.Release == nil {
		return cfg.SourceURL, nil
	}
	if uc.resolver == nil {
		return "", goerr.Wrap(ErrNoReleaseResolver, "cannot resolve release", goerr.V("release", cfg.Release.String()))
	}

	ctxlog.From(ctx).Debug("Resolving release asset", "release", cfg.Release.String(), "asset", cfg.Release.Asset)
	url, err := uc.resolver.ResolveAsset(ctx, cfg.Release)
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve release asset")
	}
	return url, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// resolveScriptDir falls back to the directory holding the running executable
func resolveScriptDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", goerr.Wrap(err, "failed to locate executable")
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
