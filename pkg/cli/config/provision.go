package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/winstrap/pkg/domain/model"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Provision holds provisioning target configuration
type Provision struct {
	ConfigFile     string
	SourceURL      string
	DownloadPath   string
	DestinationDir string
	ScriptDir      string
	Scripts        []string

	downloadPathExplicit bool
}

// Flags returns CLI flags for provisioning configuration
func (c *Provision) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML file with provisioning settings, flags take precedence",
			Destination: &c.ConfigFile,
			Sources:     cli.EnvVars("WINSTRAP_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "source-url",
			Usage:       "URL of the zip archive to install",
			Value:       model.DefaultSourceURL,
			Destination: &c.SourceURL,
			Sources:     cli.EnvVars("WINSTRAP_SOURCE_URL"),
		},
		&cli.StringFlag{
			Name:        "download-path",
			Usage:       "Temporary archive path, removed after extraction",
			Value:       model.DefaultDownloadPath,
			Destination: &c.DownloadPath,
			Sources:     cli.EnvVars("WINSTRAP_DOWNLOAD_PATH"),
		},
		&cli.StringFlag{
			Name:        "dest-dir",
			Usage:       "Existing directory the archive is extracted into",
			Value:       model.DefaultDestinationDir,
			Destination: &c.DestinationDir,
			Sources:     cli.EnvVars("WINSTRAP_DEST_DIR"),
		},
		&cli.StringFlag{
			Name:        "script-dir",
			Usage:       "Directory holding the auxiliary scripts (default: executable directory)",
			Destination: &c.ScriptDir,
			Sources:     cli.EnvVars("WINSTRAP_SCRIPT_DIR"),
		},
		&cli.StringSliceFlag{
			Name:        "script",
			Usage:       "Auxiliary script to launch after provisioning, repeatable",
			Value:       model.DefaultScripts,
			Destination: &c.Scripts,
			Sources:     cli.EnvVars("WINSTRAP_SCRIPTS"),
		},
	}
}

// Build merges defaults, the optional config file and explicitly set flags, in that order
func (c *Provision) Build(cmd *cli.Command) (*model.ProvisionConfig, error) {
	cfg := &model.ProvisionConfig{
		SourceURL:      model.DefaultSourceURL,
		DownloadPath:   model.DefaultDownloadPath,
		DestinationDir: model.DefaultDestinationDir,
		Scripts:        model.DefaultScripts,
		Tools:          model.DefaultTools(),
	}

	var fromFile bool
	if c.ConfigFile != "" {
		file, err := LoadProvisionFile(c.ConfigFile)
		if err != nil {
			return nil, err
		}
		fromFile = file.DownloadPath != ""
		mergeProvision(cfg, file)
	}

	if cmd.IsSet("source-url") {
		cfg.SourceURL = c.SourceURL
	}
	if cmd.IsSet("download-path") {
		cfg.DownloadPath = c.DownloadPath
	}
	if cmd.IsSet("dest-dir") {
		cfg.DestinationDir = c.DestinationDir
	}
	if cmd.IsSet("script-dir") {
		cfg.ScriptDir = c.ScriptDir
	}
	if cmd.IsSet("script") {
		cfg.Scripts = c.Scripts
	}

	c.downloadPathExplicit = fromFile || cmd.IsSet("download-path")

	return cfg, nil
}

// DownloadPathExplicit reports whether the last Build took the download path
// from the config file or a flag rather than the default
func (c *Provision) DownloadPathExplicit() bool {
	return c.downloadPathExplicit
}

// LoadProvisionFile reads a TOML provisioning file
func LoadProvisionFile(path string) (*model.ProvisionConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var cfg model.ProvisionConfig
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}
	return &cfg, nil
}

// mergeProvision copies every value set in src over dst
func mergeProvision(dst, src *model.ProvisionConfig) {
	if src.SourceURL != "" {
		dst.SourceURL = src.SourceURL
	}
	if src.DownloadPath != "" {
		dst.DownloadPath = src.DownloadPath
	}
	if src.DestinationDir != "" {
		dst.DestinationDir = src.DestinationDir
	}
	if src.ScriptDir != "" {
		dst.ScriptDir = src.ScriptDir
	}
	if src.Scripts != nil {
		dst.Scripts = src.Scripts
	}
	if src.Tools != nil {
		dst.Tools = src.Tools
	}
}
