package panel

import "sync"

type Kind int

const (
	KindSuccess Kind = iota
	KindFailure
)

// Notification is one message shown in the status line.
type Notification struct {
	Kind    Kind
	Message string
}

// Notifications collects messages for a front end to drain.
type Notifications struct {
	mu    sync.Mutex
	items []Notification
}

func (n *Notifications) Success(msg string) { n.push(KindSuccess, msg) }
func (n *Notifications) Failure(msg string) { n.push(KindFailure, msg) }

func (n *Notifications) push(k Kind, msg string) {
	n.mu.Lock()
	n.items = append(n.items, Notification{Kind: k, Message: msg})
	n.mu.Unlock()
}

// Drain returns and forgets every pending notification.
func (n *Notifications) Drain() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.items
	n.items = nil
	return out
}
