package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"user-admin/internal/model"
)

func user(id, first string) model.User {
	return model.User{ID: model.NewObjectID(id), FirstName: first}
}

func TestUserStore(t *testing.T) {
	a, b, c := user("a", "Anna"), user("b", "Berta"), user("c", "Clara")

	t.Run("SetAll keeps order and copies", func(t *testing.T) {
		s := NewUserStore()
		in := []model.User{a, b, c}
		s.SetAll(in)
		in[0].FirstName = "changed"
		require.Equal(t, []model.User{a, b, c}, s.All())
		require.Equal(t, 3, s.Len())
	})

	t.Run("Add appends", func(t *testing.T) {
		s := NewUserStore()
		s.SetAll([]model.User{a})
		s.Add(b)
		require.Equal(t, []model.User{a, b}, s.All())
	})

	t.Run("Update replaces by id", func(t *testing.T) {
		s := NewUserStore()
		s.SetAll([]model.User{a, b, c})
		s.Update(user("b", "Bea"))
		got, ok := s.Get("b")
		require.True(t, ok)
		require.Equal(t, "Bea", got.FirstName)
		require.Equal(t, "b", s.All()[1].Key())
	})

	t.Run("Update absent is no-op", func(t *testing.T) {
		s := NewUserStore()
		s.SetAll([]model.User{a, b})
		s.Update(user("zz", "Nobody"))
		s.Update(model.User{FirstName: "draft"})
		require.Equal(t, []model.User{a, b}, s.All())
	})

	t.Run("Remove absent is no-op", func(t *testing.T) {
		s := NewUserStore()
		s.SetAll([]model.User{a, b})
		s.Remove("zz")
		s.Remove("")
		require.Equal(t, []model.User{a, b}, s.All())
	})

	t.Run("Add then Remove restores state", func(t *testing.T) {
		s := NewUserStore()
		s.SetAll([]model.User{a, b})
		before := s.All()
		s.Add(c)
		s.Remove("c")
		require.Equal(t, before, s.All())
	})

	t.Run("Remove keeps earlier snapshots intact", func(t *testing.T) {
		s := NewUserStore()
		s.SetAll([]model.User{a, b, c})
		snap := s.All()
		s.Remove("a")
		require.Equal(t, []model.User{a, b, c}, snap)
		require.Equal(t, []model.User{b, c}, s.All())
	})

	t.Run("Get missing", func(t *testing.T) {
		s := NewUserStore()
		_, ok := s.Get("a")
		require.False(t, ok)
	})
}

func TestUserStoreSubscribe(t *testing.T) {
	s := NewUserStore()
	var calls [][]model.User
	s.Subscribe(func(users []model.User) {
		// listeners may read the store
		require.Equal(t, len(users), s.Len())
		calls = append(calls, users)
	})

	s.SetAll([]model.User{user("a", "Anna")})
	s.Add(user("b", "Berta"))
	s.Update(user("zz", "x"))
	s.Remove("a")

	require.Len(t, calls, 4)
	require.Empty(t, calls[0])
	require.Len(t, calls[2], 2)
	require.Equal(t, "b", calls[3][0].Key())
}
