// Package modal holds the open/closed state of the add and edit dialogs.
package modal

import "user-admin/internal/model"

type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Add is the add-user dialog: Closed or Open.
type Add struct {
	state State
}

func (m *Add) Open()        { m.state = Open }
func (m *Add) Close()       { m.state = Closed }
func (m *Add) IsOpen() bool { return m.state == Open }
func (m *Add) State() State { return m.state }

// Edit is the edit-user dialog: Closed, or open for a snapshot of one user.
// Closing drops the snapshot.
type Edit struct {
	state State
	user  model.User
}

// Open binds a copy of u, replacing any previous binding.
func (m *Edit) Open(u model.User) {
	m.state = Open
	m.user = u
}

func (m *Edit) Close() {
	m.state = Closed
	m.user = model.User{}
}

func (m *Edit) IsOpen() bool { return m.state == Open }
func (m *Edit) State() State { return m.state }

// User returns the bound snapshot; ok is false when closed.
func (m *Edit) User() (model.User, bool) {
	if m.state != Open {
		return model.User{}, false
	}
	return m.user, true
}
