package model

import "github.com/m-mizutani/goerr/v2"

// Default provisioning target, the fzf release for Windows
const (
	DefaultSourceURL      = "https://github.com/junegunn/fzf/releases/download/0.42.0/fzf-0.42.0-windows_amd64.zip"
	DefaultDownloadPath   = "fzf-0.42.0-windows_amd64.zip"
	DefaultDestinationDir = "C:/Windows/System32/"
)

// DefaultScripts are launched after core provisioning, in order
var DefaultScripts = []string{"setup.bat", "install_dependencies.ps1", "config.bat"}

// ToolSpec describes a tool verified by a probe and installed when the probe fails
type ToolSpec struct {
	Name    string  `toml:"name"`
	Probe   Command `toml:"probe"`
	Install Command `toml:"install"`
}

// ProvisionConfig holds everything a provisioning run needs
type ProvisionConfig struct {
	SourceURL      string     `toml:"source_url"`
	DownloadPath   string     `toml:"download_path"`
	DestinationDir string     `toml:"destination_dir"`
	ScriptDir      string     `toml:"script_dir"`
	Scripts        []string   `toml:"scripts"`
	Tools          []ToolSpec `toml:"tools"`

	// Release, when set, replaces SourceURL with the release asset URL. It is
	// resolved only after the destination directory check passes.
	Release *ReleaseRef `toml:"-"`
}

// ToolStatus is the outcome of probing (and possibly installing) one tool
type ToolStatus struct {
	Name      string
	Available bool // Probe succeeded, nothing was installed
	Installed bool // Installer ran and exited 0
}

// ScriptLaunch records what happened to one auxiliary script
type ScriptLaunch struct {
	Name     string
	Path     string
	Found    bool
	Launched bool
}

// ProvisionReport summarizes a provisioning run
type ProvisionReport struct {
	Aborted  bool // Destination directory was missing, nothing else ran
	Download *DownloadResult
	Tools    []ToolStatus
	Scripts  []ScriptLaunch
}

// LaunchedCount returns the number of scripts that were spawned
func (r *ProvisionReport) LaunchedCount() int {
	n := 0
	for _, s := range r.Scripts {
		if s.Launched {
			n++
		}
	}
	return n
}

// Validate checks that the configuration can drive a run
func (c *ProvisionConfig) Validate() error {
	if c.SourceURL == "" && c.Release == nil {
		return goerr.New("source URL is required")
	}
	if c.DownloadPath == "" {
		return goerr.New("download path is required")
	}
	if c.DestinationDir == "" {
		return goerr.New("destination directory is required")
	}
	for i, tool := range c.Tools {
		if tool.Name == "" || tool.Probe.IsZero() || tool.Install.IsZero() {
			return goerr.New("tool needs a name, a probe and an installer", goerr.V("index", i), goerr.V("name", tool.Name))
		}
	}
	return nil
}
