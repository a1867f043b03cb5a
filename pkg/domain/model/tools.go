package model

const powershell = "powershell.exe"

// PowerShell builds a non-interactive powershell.exe invocation of script
func PowerShell(script string) Command {
	return Command{
		Name: powershell,
		Args: []string{"-NoProfile", "-ExecutionPolicy", "Bypass", "-Command", script},
	}
}

// ElevatedStart builds a command that launches path through Start-Process with the RunAs verb
func ElevatedStart(path string) Command {
	return Command{
		Name: powershell,
		Args: []string{"-NoProfile", "-ExecutionPolicy", "Bypass", "Start-Process", path, "-Verb", "RunAs"},
	}
}

// WingetTool is the package manager front-end
func WingetTool() ToolSpec {
	return ToolSpec{
		Name:    "winget",
		Probe:   Command{Name: "winget", Args: []string{"--help"}},
		Install: PowerShell("iex (new-object net.webclient).downloadstring('https://github.com/microsoft/winget-cli/releases/latest/download/Microsoft.Winget.Source.appxbundle')"),
	}
}

// ScoopTool is the secondary package manager installed by the provision pipeline
func ScoopTool() ToolSpec {
	return ToolSpec{
		Name:    "scoop",
		Probe:   Command{Name: "scoop", Args: []string{"--version"}},
		Install: PowerShell("iex (new-object net.webclient).downloadstring('https://get.scoop.sh')"),
	}
}

const scoopGlobalInstallScript = `
$url = 'https://get.scoop.sh'
Invoke-WebRequest -Uri $url -OutFile scoop.ps1
Set-ExecutionPolicy RemoteSigned -Scope CurrentUser
.\scoop.ps1 -install -global
`

// ScoopGlobalTool installs scoop machine-wide from a downloaded installer script
func ScoopGlobalTool() ToolSpec {
	tool := ScoopTool()
	tool.Install = PowerShell(scoopGlobalInstallScript)
	return tool
}

// DefaultTools returns the tools checked by a provisioning run, in order
func DefaultTools() []ToolSpec {
	return []ToolSpec{WingetTool(), ScoopTool()}
}
