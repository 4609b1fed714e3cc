// Package chat manages a turn-based conversation against the AI backend,
// with two mutually exclusive modes: career assistant and mock interview.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/api"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// fallbackReply is shown in place of an assistant turn when the request
// fails. The user's own message is never retracted once shown.
const fallbackReply = "Sorry, I encountered an error. Please try again."

// ErrNoJobSelected is returned locally, before any network call, when
// interview mode is used without picking a job.
var ErrNoJobSelected = errors.New("select a job for mock interview")

type Message struct {
	Role    string
	Content string
}

// Controller owns one conversation. Messages render in strict append order;
// the running session id is adopted from the first server response and
// carried across turns until a reset.
type Controller struct {
	client *api.Client

	mu        sync.Mutex
	mode      string
	jobID     string
	sessionID *string
	messages  []Message
	pending   string
}

func NewController(client *api.Client) *Controller {
	return &Controller{client: client, mode: api.ModeAssistant}
}

func (c *Controller) Mode() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller) JobID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.jobID
}

// SelectJob picks the application interview mode drills against.
func (c *Controller) SelectJob(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobID = id
}

func (c *Controller) SessionID() *string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Messages returns a copy of the transcript in append order.
func (c *Controller) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.messages...)
}

// SwitchMode changes mode and wipes the conversation; modes are never mixed
// within one session. Switching also drops the selected job.
func (c *Controller) SwitchMode(mode string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
	c.jobID = ""
	c.resetLocked()
}

// Clear resets messages and session id without changing mode.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	c.messages = nil
	c.sessionID = nil
	c.pending = ""
}

// Stage validates and appends the user's turn immediately, ahead of the
// network round-trip. Returns false (and no error) for empty input.
func (c *Controller) Stage(text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == api.ModeInterview && c.jobID == "" {
		return false, ErrNoJobSelected
	}
	c.messages = append(c.messages, Message{Role: RoleUser, Content: text})
	c.pending = text
	return true, nil
}

// Deliver sends the staged turn and appends the assistant reply. On failure
// a local fallback assistant message is appended instead of rolling back the
// user turn, and the error is returned for notification.
func (c *Controller) Deliver(ctx context.Context) error {
	c.mu.Lock()
	req := api.ChatRequest{
		Message:   c.pending,
		SessionID: c.sessionID,
		Mode:      c.mode,
	}
	if c.mode == api.ModeInterview {
		req.JobID = c.jobID
	}
	c.mu.Unlock()

	resp, err := c.client.Chat(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = ""
	if err != nil {
		c.messages = append(c.messages, Message{Role: RoleAssistant, Content: fallbackReply})
		return err
	}
	sid := resp.SessionID
	c.sessionID = &sid
	c.messages = append(c.messages, Message{Role: RoleAssistant, Content: resp.Response})
	return nil
}

// Send is Stage followed by Deliver, for callers that do not need the
// optimistic render in between.
func (c *Controller) Send(ctx context.Context, text string) (bool, error) {
	staged, err := c.Stage(text)
	if err != nil || !staged {
		return staged, err
	}
	return true, c.Deliver(ctx)
}
