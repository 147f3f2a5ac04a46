package table

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"user-admin/internal/model"
)

func named(first string) model.User {
	return model.User{
		ID:         model.NewObjectID(strings.ToLower(first)),
		FirstName:  first,
		LastName:   "Muster",
		Location:   "Bern",
		Occupation: "Dev",
		AHVNr:      "756.0000.0000.00",
	}
}

func many(n int) []model.User {
	users := make([]model.User, n)
	for i := range users {
		users[i] = named(fmt.Sprintf("U%03d", i))
	}
	return users
}

func keys(users []model.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.FirstName
	}
	return out
}

func TestScenarioReverseOrder(t *testing.T) {
	v := New(15)
	v.SetUsers([]model.User{named("A"), named("B"), named("C")})
	require.Equal(t, 1, v.Page())
	require.Equal(t, []string{"C", "B", "A"}, keys(v.Rows()))
}

func TestScenarioSingleMatch(t *testing.T) {
	v := New(15)
	v.SetUsers([]model.User{named("Anna"), named("Berta"), named("Clara")})
	v.SetFilter("BERT")
	require.Equal(t, []string{"Berta"}, keys(v.Rows()))
	require.Equal(t, 1, v.TotalPages())
	require.Equal(t, 1, v.Page())
	require.False(t, v.CanPrev())
	require.False(t, v.CanNext())
}

func TestScenarioEmpty(t *testing.T) {
	v := New(15)
	v.SetUsers(nil)
	require.Equal(t, 0, v.TotalPages())
	require.Empty(t, v.PageNumbers())
	require.True(t, v.Empty())
	require.False(t, v.CanPrev())
	require.False(t, v.CanNext())
	require.False(t, v.Prev())
	require.False(t, v.Next())
	require.False(t, v.GoTo(1))
	require.Empty(t, v.Rows())

	v.SetUsers([]model.User{named("Anna")})
	v.SetFilter("nobody")
	require.True(t, v.Empty())
	require.Equal(t, 0, v.Page())
	require.False(t, v.Next())
}

func TestFilterProperty(t *testing.T) {
	users := []model.User{
		{FirstName: "Anna", LastName: "Keller", Location: "Zürich", Occupation: "Nurse", AHVNr: "756.1"},
		{FirstName: "Bruno", LastName: "Annen", Location: "Basel", Occupation: "Cook", AHVNr: "756.2"},
		{FirstName: "Carla", LastName: "Meier", Location: "Bern", Occupation: "Nurse", AHVNr: "756.3", Age: 33},
	}
	filters := []string{"", "ann", "ANN", "zür", "cook", "756.", "33", "x", "e"}
	for _, f := range filters {
		got := Filter(users, f)
		var want []model.User
		for _, u := range users {
			hit := f == ""
			for _, field := range []string{u.FirstName, u.LastName, u.Location, u.Occupation, u.AHVNr} {
				if strings.Contains(strings.ToLower(field), strings.ToLower(f)) {
					hit = true
				}
			}
			if hit {
				want = append(want, u)
			}
		}
		require.ElementsMatch(t, want, got, "filter %q", f)
	}
	require.Equal(t, users, Filter(users, ""))
}

func TestPaginationReconstructs(t *testing.T) {
	for _, n := range []int{0, 1, 14, 15, 16, 30, 31, 47} {
		for _, p := range []int{1, 3, 15} {
			users := many(n)
			v := New(p)
			v.SetUsers(users)
			require.Equal(t, TotalPages(n, p), v.TotalPages())
			require.Equal(t, (n+p-1)/p, v.TotalPages())

			var all []model.User
			for page := 1; page <= v.TotalPages(); page++ {
				require.True(t, v.GoTo(page))
				all = append(all, v.Rows()...)
			}
			want := make([]model.User, 0, n)
			for i := n - 1; i >= 0; i-- {
				want = append(want, users[i])
			}
			require.Equal(t, want, append([]model.User{}, all...), "n=%d p=%d", n, p)
		}
	}
}

func TestNavigation(t *testing.T) {
	v := New(15)
	v.SetUsers(many(40))
	require.Equal(t, []int{1, 2, 3}, v.PageNumbers())
	require.Equal(t, 1, v.Page())
	require.False(t, v.Prev())

	require.True(t, v.Next())
	require.True(t, v.Next())
	require.Equal(t, 3, v.Page())
	require.False(t, v.CanNext())
	require.False(t, v.Next())
	require.Len(t, v.Rows(), 10)

	require.True(t, v.Prev())
	require.Equal(t, 2, v.Page())
	require.False(t, v.GoTo(4))
	require.False(t, v.GoTo(0))
	require.True(t, v.GoTo(1))
	require.Equal(t, "U039", v.Rows()[0].FirstName)
}

func TestFilterChangeResetsPage(t *testing.T) {
	v := New(15)
	v.SetUsers(many(40))
	v.GoTo(3)

	v.SetFilter("U0")
	require.Equal(t, 1, v.Page())

	v.GoTo(2)
	v.SetUsers(many(41))
	require.Equal(t, 1, v.Page())
}

func TestDefaultPageSize(t *testing.T) {
	require.Equal(t, DefaultPageSize, New(0).PageSize())
}
