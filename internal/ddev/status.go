// Package ddev talks to the ddev CLI: it probes the project's run state
// via `ddev describe` and retrieves service logs via `ddev logs`.
package ddev

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// Status is the probe result for the DDEV environment. Available means a
// DDEV project exists here; Running means its containers are up.
// Available=false implies Running=false.
type Status struct {
	Available bool
	Running   bool
}

// RunnerFunc executes an external command and returns its combined output.
// A non-zero exit is reported through err, never panicked or raised.
type RunnerFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Run is the default RunnerFunc backed by os/exec.
func Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// describeOutput is the subset of `ddev describe -j` we care about.
// shortroot abbreviates the home directory with ~, approot is absolute.
type describeOutput struct {
	Raw struct {
		Status    string `json:"status"`
		ShortRoot string `json:"shortroot"`
		AppRoot   string `json:"approot"`
	} `json:"raw"`
}

// describe invokes the probe and parses its JSON output. The returned
// root may carry a leading ~.
func describe(ctx context.Context, runner RunnerFunc) (status string, root string, err error) {
	out, err := runner(ctx, "ddev", "describe", "-j")
	if err != nil {
		return "", "", fmt.Errorf("ddev describe: %s: %w", strings.TrimSpace(string(out)), err)
	}

	var desc describeOutput
	if err := json.Unmarshal(out, &desc); err != nil {
		return "", "", fmt.Errorf("parsing ddev describe output: %w", err)
	}

	root = desc.Raw.ShortRoot
	if root == "" {
		root = desc.Raw.AppRoot
	}
	return desc.Raw.Status, root, nil
}
