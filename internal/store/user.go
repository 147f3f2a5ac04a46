package store

import (
	"sync"

	"user-admin/internal/model"
)

// Listener 在每次變更後收到目前使用者列表的副本
type Listener func(users []model.User)

// UserStore holds the session's users in server order. Mutations match on
// the user id and are visible to the next read immediately.
type UserStore struct {
	mu        sync.RWMutex
	users     []model.User
	listeners []Listener
}

func NewUserStore() *UserStore {
	return &UserStore{}
}

// Subscribe registers fn and calls it once with the current list.
func (s *UserStore) Subscribe(fn Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	snapshot := s.copyLocked()
	s.mu.Unlock()
	fn(snapshot)
}

// SetAll replaces the whole list, e.g. after a fetch.
func (s *UserStore) SetAll(users []model.User) {
	s.mu.Lock()
	s.users = make([]model.User, len(users))
	copy(s.users, users)
	s.notifyLocked()
}

// Add appends u. The caller guarantees u already carries its server id.
func (s *UserStore) Add(u model.User) {
	s.mu.Lock()
	s.users = append(s.users, u)
	s.notifyLocked()
}

// Update replaces the user with the same id; absent ids are ignored.
func (s *UserStore) Update(u model.User) {
	id := u.Key()
	s.mu.Lock()
	for i := range s.users {
		if id != "" && s.users[i].Key() == id {
			s.users[i] = u
			s.notifyLocked()
			return
		}
	}
	s.mu.Unlock()
}

// Remove deletes the user with id; absent ids are ignored.
func (s *UserStore) Remove(id string) {
	s.mu.Lock()
	for i := range s.users {
		if id != "" && s.users[i].Key() == id {
			s.users = append(s.users[:i:i], s.users[i+1:]...)
			s.notifyLocked()
			return
		}
	}
	s.mu.Unlock()
}

func (s *UserStore) Get(id string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if id != "" && u.Key() == id {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *UserStore) All() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func (s *UserStore) copyLocked() []model.User {
	out := make([]model.User, len(s.users))
	copy(out, s.users)
	return out
}

// notifyLocked releases the lock before calling listeners so they may read
// the store.
func (s *UserStore) notifyLocked() {
	snapshot := s.copyLocked()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(snapshot)
	}
}
