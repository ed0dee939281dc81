package session

import (
	"context"
	"fmt"
)

// Messages sent to the agent session. Both are one-way notices with the
// reply suppressed on the messaging side.
const (
	noticeText = "This project runs inside a DDEV container. Shell commands are " +
		"executed in the web container via `ddev exec`, with host paths mapped " +
		"to /var/www/html. Host-only tools (git, gh, docker, ddev) keep running " +
		"on the host."
	askToStartText = "A DDEV project was detected but it is not running. " +
		"Start it with `ddev start` to execute commands inside the container."
)

// Messenger delivers a one-way message to a session with the reply
// suppressed.
type Messenger interface {
	Send(ctx context.Context, sessionID, text string) error
}

// Notifier emits each notice at most once per session. It owns the
// session state exclusively; nothing else mutates it.
type Notifier struct {
	store     Store
	messenger Messenger
}

func NewNotifier(store Store, messenger Messenger) *Notifier {
	return &Notifier{store: store, messenger: messenger}
}

// StartSession resets both one-shot flags and records the new session id.
func (n *Notifier) StartSession(ctx context.Context, sessionID string) error {
	if err := n.store.Save(ctx, State{SessionID: sessionID}); err != nil {
		return fmt.Errorf("resetting session state: %w", err)
	}
	return nil
}

// NotifyIfNeeded tells the session once that commands now run inside the
// container. Called only after the environment is confirmed running.
func (n *Notifier) NotifyIfNeeded(ctx context.Context) error {
	return n.emitOnce(ctx, noticeText,
		func(s State) bool { return s.Notified },
		func(s *State) { s.Notified = true },
	)
}

// AskToStartIfNeeded nudges the session once to start the stopped
// environment.
func (n *Notifier) AskToStartIfNeeded(ctx context.Context) error {
	return n.emitOnce(ctx, askToStartText,
		func(s State) bool { return s.AskedToStart },
		func(s *State) { s.AskedToStart = true },
	)
}

// emitOnce sends text unless the flag is already set or no session is
// active. The flag is persisted before the send: a failed delivery does
// not retry for the rest of the session.
func (n *Notifier) emitOnce(ctx context.Context, text string, done func(State) bool, mark func(*State)) error {
	state, err := n.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading session state: %w", err)
	}
	if state.SessionID == "" || done(state) {
		return nil
	}

	mark(&state)
	if err := n.store.Save(ctx, state); err != nil {
		return fmt.Errorf("saving session state: %w", err)
	}

	if err := n.messenger.Send(ctx, state.SessionID, text); err != nil {
		return fmt.Errorf("sending session notice: %w", err)
	}
	return nil
}
