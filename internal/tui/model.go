// Package tui is the interactive terminal panel: a paged user table with a
// debounced search box, add/edit dialogs and delete confirmation.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"user-admin/internal/debounce"
	"user-admin/internal/form"
	"user-admin/internal/model"
	"user-admin/internal/panel"
	"user-admin/internal/ui"
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeAdd
	modeEdit
	modeConfirmDelete
)

// 表單欄位順序，與 form.Values 一致
var fieldLabels = [7]string{"Vorname", "Nachname", "Alter", "Pensum", "Ort", "Beruf", "AHV Nr."}

var fieldPlaceholders = [7]string{"First name", "Last name", "Age", "Pensum", "Location", "Occupation", "AHV Number"}

type Model struct {
	panel    *panel.Panel
	notes    *panel.Notifications
	searches *debounce.Debouncer[string]

	table   table.Model
	rows    []model.User
	search  textinput.Model
	inputs  [7]textinput.Model
	focus   int
	spinner spinner.Model

	mode     mode
	loading  bool
	fetchID  int64
	deleteID string
	deleting bool

	status    string
	statusErr bool

	width  int
	height int
}

// New builds the terminal model. notes must be the notifier p was built with.
func New(p *panel.Panel, notes *panel.Notifications, searchDelay time.Duration) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ui.WarningStyle

	search := textinput.New()
	search.Placeholder = "Search"
	search.Prompt = "/ "
	search.CharLimit = 100

	var inputs [7]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = fieldPlaceholders[i]
		ti.CharLimit = 100
		inputs[i] = ti
	}

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(p.View.PageSize()),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.Border).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color("236")).
		Bold(false)
	t.SetStyles(st)

	return Model{
		panel:    p,
		notes:    notes,
		searches: debounce.New[string](searchDelay),
		table:    t,
		search:   search,
		inputs:   inputs,
		spinner:  s,
		loading:  true,
		fetchID:  time.Now().UnixNano(),
	}
}

func columns(width int) []table.Column {
	w := (width - 4 - 16) / 4
	if w < 10 {
		w = 10
	}
	return []table.Column{
		{Title: "First Name", Width: w},
		{Title: "Last Name", Width: w},
		{Title: "Location", Width: w},
		{Title: "Occupation", Width: w},
		{Title: "AHV Nr.", Width: 16},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(fetchCmd(m.panel, m.fetchID), m.spinner.Tick, waitSearch(m.searches))
}

// withRows copies the current page into the table.
func (m Model) withRows() Model {
	m.rows = m.panel.View.Rows()
	rows := make([]table.Row, len(m.rows))
	for i, u := range m.rows {
		rows[i] = table.Row{u.FirstName, u.LastName, u.Location, u.Occupation, u.AHVNr}
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) || c < 0 {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
	return m
}

func (m Model) selected() (model.User, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.rows) {
		return model.User{}, false
	}
	return m.rows[c], true
}

// drainNotes moves pending notifications into the status line.
func (m Model) drainNotes() Model {
	for _, n := range m.notes.Drain() {
		m.status = n.Message
		m.statusErr = n.Kind == panel.KindFailure
	}
	return m
}

func (m Model) busy() bool {
	return m.panel.AddForm.Busy() || m.panel.EditForm.Busy() || m.deleting
}

func (m Model) refresh() (Model, tea.Cmd) {
	m.loading = true
	m.fetchID = time.Now().UnixNano()
	return m, tea.Batch(fetchCmd(m.panel, m.fetchID), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetColumns(columns(msg.Width))
		return m, nil

	case fetchedMsg:
		if msg.id != m.fetchID {
			return m, nil
		}
		m.loading = false
		m.panel.Apply(msg.listing)
		if err := m.panel.LastError(); err != nil {
			m.status, m.statusErr = "Could not load users: "+err.Error(), true
		}
		return m.withRows(), nil

	case searchMsg:
		m.panel.Search(msg.filter)
		return m.withRows(), waitSearch(m.searches)

	case createdMsg:
		if m.panel.AddForm.Complete(msg.user, msg.res, msg.err) {
			m.mode = modeNormal
			m.blurInputs()
		}
		return m.drainNotes().withRows(), nil

	case updatedMsg:
		if m.panel.EditForm.Complete(msg.patch, msg.res, msg.err) {
			m.mode = modeNormal
			m.blurInputs()
		}
		return m.drainNotes().withRows(), nil

	case deletedMsg:
		m.deleting = false
		m.panel.CompleteDelete(msg.id, msg.res, msg.err)
		return m.drainNotes().withRows(), nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.loading || m.busy() {
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.searches.Stop()
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeAdd, modeEdit:
			return m.updateDialog(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		}
		return m.updateNormal(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.searches.Stop()
		return m, tea.Quit
	case "/":
		m.mode = modeSearch
		cmd := m.search.Focus()
		return m, cmd
	case "a":
		m.panel.OpenAdd()
		m.mode = modeAdd
		cmd := m.loadInputs(m.panel.AddForm.Values)
		return m, cmd
	case "e", "enter":
		u, ok := m.selected()
		if !ok || !m.panel.OpenEdit(u.Key()) {
			return m, nil
		}
		m.mode = modeEdit
		cmd := m.loadInputs(m.panel.EditForm.Values)
		return m, cmd
	case "d":
		u, ok := m.selected()
		if !ok || m.deleting {
			return m, nil
		}
		m.deleteID = u.Key()
		m.mode = modeConfirmDelete
		return m, nil
	case "left", "p":
		m.panel.View.Prev()
		return m.withRows(), nil
	case "right", "n":
		m.panel.View.Next()
		return m.withRows(), nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.panel.View.GoTo(int(msg.String()[0] - '0'))
		return m.withRows(), nil
	case "ctrl+r":
		return m.refresh()
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.mode = modeNormal
		m.search.Blur()
		return m, nil
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != before {
		m.searches.Push(v)
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "y":
		m.mode = modeNormal
		if m.deleteID == "" {
			return m, nil
		}
		m.deleting = true
		id := m.deleteID
		m.deleteID = ""
		return m, tea.Batch(deleteCmd(m.panel, id), m.spinner.Tick)
	case "esc", "n":
		m.mode = modeNormal
		m.deleteID = ""
	}
	return m, nil
}

func (m Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// inputs are disabled while a request is in flight
	if m.busy() {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		if m.mode == modeAdd {
			m.panel.CloseAdd()
		} else {
			m.panel.CloseEdit()
		}
		m.mode = modeNormal
		m.blurInputs()
		return m, nil
	case "tab", "down":
		cmd := m.focusInput((m.focus + 1) % len(m.inputs))
		return m, cmd
	case "shift+tab", "up":
		cmd := m.focusInput((m.focus + len(m.inputs) - 1) % len(m.inputs))
		return m, cmd
	case "enter":
		if m.focus < len(m.inputs)-1 {
			cmd := m.focusInput(m.focus + 1)
			return m, cmd
		}
		return m.submit()
	case "ctrl+s":
		return m.submit()
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	vals := m.values()
	if m.mode == modeAdd {
		m.panel.AddForm.Values = vals
		u, err := m.panel.AddForm.Begin()
		if err != nil {
			return m.drainNotes(), nil
		}
		m.status = ""
		return m, tea.Batch(createCmd(m.panel, u), m.spinner.Tick)
	}
	m.panel.EditForm.Values = vals
	p, err := m.panel.EditForm.Begin()
	if err != nil {
		return m.drainNotes(), nil
	}
	m.status = ""
	return m, tea.Batch(updateCmd(m.panel, p), m.spinner.Tick)
}

func (m Model) values() form.Values {
	return form.Values{
		FirstName:  m.inputs[0].Value(),
		LastName:   m.inputs[1].Value(),
		Age:        m.inputs[2].Value(),
		Pensum:     m.inputs[3].Value(),
		Location:   m.inputs[4].Value(),
		Occupation: m.inputs[5].Value(),
		AHVNr:      m.inputs[6].Value(),
	}
}

func (m *Model) loadInputs(v form.Values) tea.Cmd {
	vals := [7]string{v.FirstName, v.LastName, v.Age, v.Pensum, v.Location, v.Occupation, v.AHVNr}
	for i := range m.inputs {
		m.inputs[i].SetValue(vals[i])
	}
	return m.focusInput(0)
}

func (m *Model) focusInput(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m *Model) blurInputs() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = 0
}
