package modal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"user-admin/internal/model"
)

func TestAdd(t *testing.T) {
	var m Add
	require.False(t, m.IsOpen())
	require.Equal(t, Closed, m.State())

	m.Open()
	require.True(t, m.IsOpen())
	m.Open()
	require.True(t, m.IsOpen())

	m.Close()
	require.False(t, m.IsOpen())
	require.Equal(t, "closed", m.State().String())
}

func TestEdit(t *testing.T) {
	var m Edit
	_, ok := m.User()
	require.False(t, ok)

	anna := model.User{ID: model.NewObjectID("a"), FirstName: "Anna"}
	m.Open(anna)
	got, ok := m.User()
	require.True(t, ok)
	require.Equal(t, anna, got)

	// the binding is a snapshot
	anna.FirstName = "changed"
	got, _ = m.User()
	require.Equal(t, "Anna", got.FirstName)

	berta := model.User{ID: model.NewObjectID("b"), FirstName: "Berta"}
	m.Open(berta)
	got, _ = m.User()
	require.Equal(t, "b", got.Key())

	m.Close()
	require.False(t, m.IsOpen())
	_, ok = m.User()
	require.False(t, ok)

	m.Close()
	require.Equal(t, Closed, m.State())
}
