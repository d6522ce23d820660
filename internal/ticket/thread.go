// Package ticket normalizes support-ticket conversations: the backend
// serves both a current messages array and a legacy single-response
// shape, and the dashboard renders one chronological thread either way.
package ticket

import (
	"sort"
	"time"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// Statuses is the unordered option set an administrator can pick from.
// Transitions are not enforced client-side.
func Statuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}
}

// Message is one entry in a ticket conversation.
type Message struct {
	Sender    string    `json:"sender"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Ticket is the backend's support-ticket record. AdminResponse and
// RespondedAt are the legacy single-reply fields still served for old
// tickets.
type Ticket struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Subject   string    `json:"subject"`
	Body      string    `json:"message"`
	Status    Status    `json:"status"`
	Messages  []Message `json:"messages,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	AdminResponse string    `json:"adminResponse,omitempty"`
	RespondedAt   time.Time `json:"respondedAt,omitempty"`
}

// Thread is the normalized conversation view: the ticket's original
// message plus its reply history in chronological order.
type Thread struct {
	Ticket   Ticket    `json:"ticket"`
	Original Message   `json:"originalMessage"`
	History  []Message `json:"history"`
}

// BuildThread is pure and deterministic: same ticket in, same thread
// out. When the ticket has a messages array the history is that array
// sorted by CreatedAt ascending (stable); otherwise a non-empty legacy
// AdminResponse is synthesized into a single admin message.
func BuildThread(t Ticket) Thread {
	var history []Message
	switch {
	case len(t.Messages) > 0:
		history = make([]Message, len(t.Messages))
		copy(history, t.Messages)
		sort.SliceStable(history, func(i, j int) bool {
			return history[i].CreatedAt.Before(history[j].CreatedAt)
		})
	case t.AdminResponse != "":
		history = []Message{{
			Sender:    "admin",
			Body:      t.AdminResponse,
			CreatedAt: t.RespondedAt,
		}}
	default:
		history = []Message{}
	}

	return Thread{
		Ticket: t,
		Original: Message{
			Sender:    "user",
			Body:      t.Body,
			CreatedAt: t.CreatedAt,
		},
		History: history,
	}
}

// ReplyPayload builds the respond-endpoint body. The thread itself is
// never mutated locally; the caller reloads the collection to see the
// appended message.
func ReplyPayload(body string, newStatus Status) map[string]any {
	p := map[string]any{"response": body}
	if newStatus != "" {
		p["status"] = string(newStatus)
	}
	return p
}
