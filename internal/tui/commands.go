package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"user-admin/internal/apiclient"
	"user-admin/internal/debounce"
	"user-admin/internal/model"
	"user-admin/internal/panel"
)

// fetchedMsg carries a list fetch; id matches Model.fetchID, older fetches
// are discarded.
type fetchedMsg struct {
	listing panel.Listing
	id      int64
}

// searchMsg is a settled search box value.
type searchMsg struct {
	filter string
}

type createdMsg struct {
	user model.User
	res  apiclient.Result
	err  error
}

type updatedMsg struct {
	patch model.PartialUser
	res   apiclient.Result
	err   error
}

type deletedMsg struct {
	id  string
	res apiclient.Result
	err error
}

func fetchCmd(p *panel.Panel, id int64) tea.Cmd {
	return func() tea.Msg {
		return fetchedMsg{listing: p.Fetch(context.Background()), id: id}
	}
}

// waitSearch blocks until the debouncer settles.
func waitSearch(d *debounce.Debouncer[string]) tea.Cmd {
	return func() tea.Msg {
		return searchMsg{filter: <-d.C()}
	}
}

func createCmd(p *panel.Panel, u model.User) tea.Cmd {
	return func() tea.Msg {
		res, err := p.AddForm.Create(context.Background(), u)
		return createdMsg{user: u, res: res, err: err}
	}
}

func updateCmd(p *panel.Panel, patch model.PartialUser) tea.Cmd {
	return func() tea.Msg {
		res, err := p.EditForm.Update(context.Background(), patch)
		return updatedMsg{patch: patch, res: res, err: err}
	}
}

func deleteCmd(p *panel.Panel, id string) tea.Cmd {
	return func() tea.Msg {
		res, err := p.SendDelete(context.Background(), id)
		return deletedMsg{id: id, res: res, err: err}
	}
}
