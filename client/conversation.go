package client

import (
	"context"
	"strings"
	"sync"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry in the conversation log. Order is meaningful.
type Message struct {
	Role    string
	Content string
}

// Canned controller messages. The backend owns all affirmation decisions;
// these only shape what the UI shows around its answers.
const (
	uploadFirstMessage = "Please upload a resume first so I have something to work with."
	defaultReply       = "I wasn't able to come up with a reply. Try rephrasing your request."
	confirmationHint   = "Reply yes or confirm to apply these edits, or describe a different change instead."
)

// chatBusyKey tracks the single in-flight chat turn. Tailor turns use their
// caller-supplied job key instead.
const chatBusyKey = "chat"

// Conversation owns the mutable chat state a UI renders: the message log,
// the attached document, the pending-confirmation flag, and per-key busy
// flags. It never classifies affirmations locally; every user utterance is
// forwarded verbatim and the server decides what it meant.
type Conversation struct {
	api *Client

	mu                   sync.Mutex
	messages             []Message
	docRef               string
	awaitingConfirmation bool
	busy                 map[string]bool
}

// NewConversation constructs a controller over the given transport client.
func NewConversation(api *Client) *Conversation {
	return &Conversation{
		api:  api,
		busy: make(map[string]bool),
	}
}

// AttachDocument points the conversation at an uploaded document.
func (c *Conversation) AttachDocument(docID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docRef = docID
}

// DocumentRef returns the attached document id, if any.
func (c *Conversation) DocumentRef() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.docRef
}

// Messages returns a copy of the conversation log.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// AwaitingConfirmation reports whether the last turn proposed edits.
func (c *Conversation) AwaitingConfirmation() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.awaitingConfirmation
}

// Busy reports whether an operation is in flight for the key.
func (c *Conversation) Busy(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy[key]
}

// SuggestedAffirmations returns display-only tokens a UI may pre-fill into
// the input box. They carry no client-side meaning.
func (c *Conversation) SuggestedAffirmations() []string {
	return []string{"yes", "confirm"}
}

// Submit sends one user message through the chat endpoint. Blank text is a
// no-op. Without an attached document it appends a single assistant message
// and makes no network call.
func (c *Conversation) Submit(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	c.mu.Lock()
	if c.docRef == "" {
		c.messages = append(c.messages,
			Message{Role: RoleUser, Content: text},
			Message{Role: RoleAssistant, Content: uploadFirstMessage},
		)
		c.mu.Unlock()
		return
	}
	if c.busy[chatBusyKey] {
		c.mu.Unlock()
		return
	}
	c.busy[chatBusyKey] = true
	c.messages = append(c.messages, Message{Role: RoleUser, Content: text})
	docRef := c.docRef
	c.mu.Unlock()

	defer c.clearBusy(chatBusyKey)

	result, err := c.api.Chat(ctx, docRef, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.messages = append(c.messages, Message{Role: RoleAssistant, Content: err.Error()})
		return
	}

	reply := result.AssistantMessage
	if reply == "" {
		reply = defaultReply
	}
	c.messages = append(c.messages, Message{Role: RoleAssistant, Content: reply})
	c.awaitingConfirmation = result.NeedsConfirmation
	if result.NeedsConfirmation {
		c.messages = append(c.messages, Message{Role: RoleAssistant, Content: confirmationHint})
	}
}

// TailorToJob requests a rewrite against a job description, tracked under the
// caller's job key. At most one tailor per key is in flight; concurrent keys
// do not block each other. A non-empty edit summary is appended as a bullet
// list between the primary message and the confirmation hint.
func (c *Conversation) TailorToJob(ctx context.Context, key, jobDescription string) {
	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription == "" {
		return
	}

	c.mu.Lock()
	if c.docRef == "" {
		c.messages = append(c.messages, Message{Role: RoleAssistant, Content: uploadFirstMessage})
		c.mu.Unlock()
		return
	}
	if c.busy[key] {
		c.mu.Unlock()
		return
	}
	c.busy[key] = true
	docRef := c.docRef
	c.mu.Unlock()

	defer c.clearBusy(key)

	result, err := c.api.Tailor(ctx, docRef, jobDescription)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.messages = append(c.messages, Message{Role: RoleAssistant, Content: err.Error()})
		return
	}

	reply := result.AssistantMessage
	if reply == "" {
		reply = defaultReply
	}
	c.messages = append(c.messages, Message{Role: RoleAssistant, Content: reply})
	if len(result.EditsSummary) > 0 {
		c.messages = append(c.messages, Message{Role: RoleAssistant, Content: bulletList(result.EditsSummary)})
	}
	c.awaitingConfirmation = result.NeedsConfirmation
	if result.NeedsConfirmation {
		c.messages = append(c.messages, Message{Role: RoleAssistant, Content: confirmationHint})
	}
}

func (c *Conversation) clearBusy(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.busy, key)
}

func bulletList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("• ")
		b.WriteString(item)
	}
	return b.String()
}
