package main

import (
	"context"
	"fmt"
	"os"

	"github.com/JUVOJustin/opencode-ddev-plugin/internal/hook"
	"github.com/JUVOJustin/opencode-ddev-plugin/internal/intercept"
	"github.com/JUVOJustin/opencode-ddev-plugin/internal/session"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func hookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "hook",
		Short:  "Internal hook endpoints for the host runtime",
		Hidden: true,
	}
	cmd.AddCommand(hookPreExecCmd(), hookSessionStartCmd())
	return cmd
}

// hookPreExecCmd handles one intercepted shell command: event JSON on
// stdin, decision JSON on stdout. It never fails for probe problems —
// those degrade to a pass-through decision.
func hookPreExecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pre-exec",
		Short: "Intercept one shell command before execution",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			ev, err := hook.ReadEvent(cmd.InOrStdin())
			if err != nil {
				return err
			}

			// Only the generic shell tool is rewritten; everything else
			// passes through untouched.
			if !hook.IsShellTool(ev.Tool) {
				return hook.WriteDecision(cmd.OutOrStdout(), hook.Decision{Command: ev.Command})
			}

			cwd := ev.CWD
			if cwd == "" {
				if cwd, err = os.Getwd(); err != nil {
					return err
				}
			}

			rt, err := newRuntime(cwd)
			if err != nil {
				return err
			}

			collector := &hook.Collector{}
			notifier, err := eventNotifier(ctx, ev, collector)
			if err != nil {
				return err
			}

			interceptor := intercept.New(rt.cache, notifier, rt.log, rt.cfg.HostOnly)
			final, err := interceptor.Intercept(ctx, cwd, ev.Command)
			if err != nil {
				// Notification plumbing failed. The command itself is
				// fine, so answer with it and record the failure.
				rt.log.Error().Err(err).Msg("notification failed during interception")
			}

			return hook.WriteDecision(cmd.OutOrStdout(), hook.Decision{
				Command: final,
				Notices: collector.Notices(),
			})
		},
	}
}

// eventNotifier returns the notifier for one pre-exec event. An event
// without a session id means there is no active session: notifications
// are suppressed for this command and the persisted state of the last
// real session is left untouched. A session id we have not seen yet
// starts a fresh session, resetting the one-shot flags.
func eventNotifier(ctx context.Context, ev hook.Event, messenger session.Messenger) (*session.Notifier, error) {
	if ev.SessionID == "" {
		return session.NewNotifier(&session.MemoryStore{}, messenger), nil
	}

	notifier, store, err := newNotifier(messenger)
	if err != nil {
		return nil, err
	}
	state, err := store.Load(ctx)
	if err != nil || state.SessionID != ev.SessionID {
		if err := notifier.StartSession(ctx, ev.SessionID); err != nil {
			return nil, err
		}
	}
	return notifier, nil
}

// hookSessionStartCmd resets the notifier for a new session.
func hookSessionStartCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "session-start",
		Short: "Reset notification state for a new session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id := sessionID
			if id == "" {
				if ev, err := hook.ReadEvent(cmd.InOrStdin()); err == nil {
					id = ev.SessionID
				}
			}
			if id == "" {
				id = uuid.NewString()
			}

			notifier, _, err := newNotifier(&hook.Collector{})
			if err != nil {
				return err
			}
			if err := notifier.StartSession(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "session %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session-id", "", "Session identifier (read from the stdin event when omitted)")
	return cmd
}
