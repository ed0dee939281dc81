package main

import (
	"context"
	"testing"

	"github.com/JUVOJustin/opencode-ddev-plugin/internal/hook"
)

type captureMessenger struct {
	sent []string
}

func (m *captureMessenger) Send(_ context.Context, _ string, text string) error {
	m.sent = append(m.sent, text)
	return nil
}

func TestEventNotifierWithoutSessionStaysQuiet(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ctx := context.Background()
	msgr := &captureMessenger{}

	// A previous session left its one-shot state behind.
	prev, store, err := newNotifier(msgr)
	if err != nil {
		t.Fatalf("newNotifier: %v", err)
	}
	if err := prev.StartSession(ctx, "ses-old"); err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	// An event without a session id has no session to notify; it must
	// not fall back to the stale persisted one.
	n, err := eventNotifier(ctx, hook.Event{Type: hook.EventExecBefore, Command: "ls"}, msgr)
	if err != nil {
		t.Fatalf("eventNotifier: %v", err)
	}
	if err := n.NotifyIfNeeded(ctx); err != nil {
		t.Fatalf("NotifyIfNeeded: %v", err)
	}
	if len(msgr.sent) != 0 {
		t.Errorf("sent %d notices, want none without an active session", len(msgr.sent))
	}

	// The stale session's persisted flags stay untouched for when its
	// id reappears.
	state, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if state.SessionID != "ses-old" || state.Notified {
		t.Errorf("state = %+v, want ses-old with pending flags", state)
	}
}

func TestEventNotifierAdoptsUnseenSession(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ctx := context.Background()
	msgr := &captureMessenger{}

	n, err := eventNotifier(ctx, hook.Event{SessionID: "ses-1"}, msgr)
	if err != nil {
		t.Fatalf("eventNotifier: %v", err)
	}
	if err := n.NotifyIfNeeded(ctx); err != nil {
		t.Fatalf("NotifyIfNeeded: %v", err)
	}

	// The same session in a later hook process does not notify again.
	n2, err := eventNotifier(ctx, hook.Event{SessionID: "ses-1"}, msgr)
	if err != nil {
		t.Fatalf("eventNotifier: %v", err)
	}
	if err := n2.NotifyIfNeeded(ctx); err != nil {
		t.Fatalf("NotifyIfNeeded: %v", err)
	}
	if len(msgr.sent) != 1 {
		t.Errorf("sent %d notices, want exactly 1 per session", len(msgr.sent))
	}
}
