// Package intercept wires the status cache, session notifier and command
// rewriter together. Interceptor.Intercept runs once per shell command the
// agent is about to execute and decides between pass-through and rewriting
// the command into a `ddev exec` invocation.
package intercept

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/JUVOJustin/opencode-ddev-plugin/internal/ddev"
	"github.com/JUVOJustin/opencode-ddev-plugin/internal/rewrite"
	"github.com/JUVOJustin/opencode-ddev-plugin/internal/session"
	"github.com/rs/zerolog"
)

// hostOnlyCommands are first tokens that always run against the host.
// The ddev entry also keeps the management tool's own subcommands on the
// host.
var hostOnlyCommands = []string{"git", "gh", "docker", "ddev"}

// Interceptor holds everything one interception needs. One instance per
// process; all shared state lives behind it, none at package level.
type Interceptor struct {
	cache    *ddev.Cache
	notifier *session.Notifier
	log      zerolog.Logger
	hostOnly map[string]struct{}
}

// New builds an Interceptor. extraHostOnly extends the built-in host-only
// set with config-supplied tokens.
func New(cache *ddev.Cache, notifier *session.Notifier, log zerolog.Logger, extraHostOnly []string) *Interceptor {
	hostOnly := make(map[string]struct{}, len(hostOnlyCommands)+len(extraHostOnly))
	for _, c := range hostOnlyCommands {
		hostOnly[c] = struct{}{}
	}
	for _, c := range extraHostOnly {
		hostOnly[c] = struct{}{}
	}
	return &Interceptor{
		cache:    cache,
		notifier: notifier,
		log:      log,
		hostOnly: hostOnly,
	}
}

// Intercept decides what to execute in place of command. hostDir is the
// host working directory the command would run in. The returned command is
// either the input unchanged (pass-through) or a ddev exec invocation.
//
// Probe failures never surface here — they degrade to pass-through. A
// notification-send failure is returned alongside the pass-through
// command so the caller can fail loudly without losing the command.
func (i *Interceptor) Intercept(ctx context.Context, hostDir, command string) (string, error) {
	if i.isHostOnly(command) {
		return command, nil
	}

	status := i.cache.Refresh(ctx, hostDir)

	if !status.Available {
		return command, nil
	}

	if !status.Running {
		if err := i.notifier.AskToStartIfNeeded(ctx); err != nil {
			return command, err
		}
		return command, nil
	}

	if err := i.notifier.NotifyIfNeeded(ctx); err != nil {
		return command, err
	}

	rewritten := rewrite.Wrap(command, i.cache.ProjectRoot(), i.cache.ContainerDir())
	if rewritten != command && !strings.HasPrefix(command, "ddev exec") {
		i.log.Debug().Msgf("rewrote command: %s", truncate(rewritten, 80))
	}
	return rewritten, nil
}

// isHostOnly reports whether the command's first whitespace-delimited
// token names a tool pinned to the host.
func (i *Interceptor) isHostOnly(command string) bool {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return true
	}
	_, ok := i.hostOnly[fields[0]]
	return ok
}

// truncate shortens s to max runes. Byte slicing would split multi-byte
// characters in commands with non-ASCII paths or arguments.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}
