package model

import "strings"

// Command is an external program invocation in argv form
type Command struct {
	Name string   `toml:"name"`
	Args []string `toml:"args"`
	Dir  string   `toml:"dir,omitempty"` // Working directory, empty means the current one
}

// IsZero reports whether no program is configured
func (c Command) IsZero() bool {
	return c.Name == ""
}

// String renders the command line for logs and notices
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// WithDir returns a copy of the command running in dir unless it already has a directory
func (c Command) WithDir(dir string) Command {
	if c.Dir != "" {
		return c
	}
	c.Dir = dir
	return c
}

// CommandResult holds the outcome of a synchronous command run
type CommandResult struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Succeeded reports whether the command exited with status 0
func (r *CommandResult) Succeeded() bool {
	return r != nil && r.ExitCode == 0
}
