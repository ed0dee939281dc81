// Package hook defines the wire format between the host runtime and the
// plugin: one JSON event in on stdin, one JSON decision out on stdout.
package hook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// Event types delivered by the host runtime.
const (
	EventExecBefore     = "tool.execute.before"
	EventSessionCreated = "session.created"
)

// Event is a single hook invocation payload.
type Event struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Tool      string `json:"tool,omitempty"`
	Command   string `json:"command,omitempty"`
	CWD       string `json:"cwd,omitempty"`
}

// Notice is a one-way message back to the session. Replies are always
// suppressed; the agent is informed, not asked.
type Notice struct {
	SessionID     string `json:"session_id"`
	Text          string `json:"text"`
	SuppressReply bool   `json:"suppress_reply"`
}

// Decision is the hook's answer: the command to execute (possibly the
// input unchanged) plus any notices raised along the way.
type Decision struct {
	Command string   `json:"command"`
	Notices []Notice `json:"notices,omitempty"`
}

// ReadEvent decodes one event from r.
func ReadEvent(r io.Reader) (Event, error) {
	var ev Event
	if err := json.NewDecoder(r).Decode(&ev); err != nil {
		return Event{}, fmt.Errorf("decoding hook event: %w", err)
	}
	return ev, nil
}

// WriteDecision encodes d to w.
func WriteDecision(w io.Writer, d Decision) error {
	if err := json.NewEncoder(w).Encode(d); err != nil {
		return fmt.Errorf("encoding hook decision: %w", err)
	}
	return nil
}

// IsShellTool reports whether the named tool is the generic
// shell-execution tool the plugin intercepts. An empty name is treated
// as the shell tool so bare command events still work.
func IsShellTool(name string) bool {
	switch name {
	case "", "bash", "shell", "exec":
		return true
	}
	return false
}

// Collector is a session.Messenger that gathers notices into the hook
// decision instead of calling a remote sink.
type Collector struct {
	notices []Notice
}

func (c *Collector) Send(_ context.Context, sessionID, text string) error {
	c.notices = append(c.notices, Notice{
		SessionID:     sessionID,
		Text:          text,
		SuppressReply: true,
	})
	return nil
}

// Notices returns everything collected so far.
func (c *Collector) Notices() []Notice {
	return c.notices
}
