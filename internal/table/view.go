// Package table derives the visible user page from the store: filter,
// reverse, paginate.
package table

import "user-admin/internal/model"

const DefaultPageSize = 15

// View is the filtered, paginated projection of a user list. Page numbers
// are 1-based; page 0 means there is nothing to show.
type View struct {
	pageSize int
	users    []model.User
	filter   string
	filtered []model.User
	page     int
}

// New returns an empty view. pageSize <= 0 falls back to DefaultPageSize.
func New(pageSize int) *View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &View{pageSize: pageSize}
}

// Filter returns the users matching filter, in input order.
func Filter(users []model.User, filter string) []model.User {
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		if u.Matches(filter) {
			out = append(out, u)
		}
	}
	return out
}

// TotalPages is ceil(n / pageSize).
func TotalPages(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

func (v *View) SetUsers(users []model.User) {
	v.users = users
	v.recompute()
}

func (v *View) SetFilter(filter string) {
	v.filter = filter
	v.recompute()
}

// recompute re-filters and jumps to the page holding the first match.
func (v *View) recompute() {
	v.filtered = Filter(v.users, v.filter)
	first := -1
	for i, u := range v.filtered {
		if u.Matches(v.filter) {
			first = i
			break
		}
	}
	v.page = TotalPages(first+1, v.pageSize)
}

func (v *View) PageSize() int  { return v.pageSize }
func (v *View) Filter() string { return v.filter }
func (v *View) Page() int      { return v.page }

// Count is the number of filtered users.
func (v *View) Count() int { return len(v.filtered) }

func (v *View) TotalPages() int {
	return TotalPages(len(v.filtered), v.pageSize)
}

// Empty reports the "no results" state.
func (v *View) Empty() bool { return len(v.filtered) == 0 }

// PageNumbers lists 1..TotalPages for the page bar.
func (v *View) PageNumbers() []int {
	n := v.TotalPages()
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Rows returns the current page window of the reversed filtered list.
func (v *View) Rows() []model.User {
	return v.window(v.page)
}

func (v *View) window(page int) []model.User {
	if page < 1 {
		return nil
	}
	n := len(v.filtered)
	start := (page - 1) * v.pageSize
	if start >= n {
		return nil
	}
	end := start + v.pageSize
	if end > n {
		end = n
	}
	rows := make([]model.User, 0, end-start)
	// index i of the reversed list is n-1-i of the filtered list
	for i := start; i < end; i++ {
		rows = append(rows, v.filtered[n-1-i])
	}
	return rows
}

func (v *View) CanPrev() bool { return v.page > 1 }
func (v *View) CanNext() bool { return v.page >= 1 && v.page < v.TotalPages() }

// Prev moves one page back; it reports whether the page changed.
func (v *View) Prev() bool {
	if !v.CanPrev() {
		return false
	}
	v.page--
	return true
}

func (v *View) Next() bool {
	if !v.CanNext() {
		return false
	}
	v.page++
	return true
}

// GoTo jumps to page n if it exists.
func (v *View) GoTo(n int) bool {
	if n < 1 || n > v.TotalPages() {
		return false
	}
	v.page = n
	return true
}
