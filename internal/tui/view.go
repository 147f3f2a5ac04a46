package tui

import (
	"fmt"
	"strconv"
	"strings"

	"user-admin/internal/ui"
)

func (m Model) View() string {
	title := ui.TitleStyle.Render("User Admin") + ui.MutedStyle.Render(fmt.Sprintf(" (%d)", m.panel.Store.Len()))

	if m.loading && !m.panel.Loaded() {
		return ui.ContainerStyle.Render(title + "\n\n" + ui.WarningStyle.Render(m.spinner.View()+" Loading..."))
	}

	switch m.mode {
	case modeAdd:
		return ui.ContainerStyle.Render(title + "\n\n" + m.dialogView("Add User"))
	case modeEdit:
		return ui.ContainerStyle.Render(title + "\n\n" + m.dialogView("Edit User"))
	}

	lines := []string{title}
	if stale, since := m.panel.Stale(); stale {
		lines = append(lines, ui.StaleStyle.Render("Offline: showing users saved "+since.Local().Format("2006-01-02 15:04")+"  [ctrl+r] retry"))
	}
	lines = append(lines, "", m.search.View(), "")

	if m.panel.View.Empty() {
		lines = append(lines, ui.MutedStyle.Render("No users found"))
	} else {
		lines = append(lines, m.table.View())
	}
	lines = append(lines, "", m.pageBar())

	switch {
	case m.mode == modeConfirmDelete:
		lines = append(lines, "", ui.WarningStyle.Render(m.confirmText()+"  [Enter] confirm   [Esc] cancel"))
	case m.deleting || m.loading:
		lines = append(lines, "", ui.WarningStyle.Render(m.spinner.View()+" Working..."))
	case m.status != "" && m.statusErr:
		lines = append(lines, "", ui.ErrorStyle.Render(m.status))
	case m.status != "":
		lines = append(lines, "", ui.SuccessStyle.Render(m.status))
	default:
		lines = append(lines, "")
	}
	lines = append(lines,
		ui.HelpStyle.Render("[/] search   [a] add   [e] edit   [d] delete   [←/→] page   [1-9] jump"),
		ui.HelpStyle.Render("[ctrl+r] reload   [q] quit"),
	)
	return ui.ContainerStyle.Render(strings.Join(lines, "\n"))
}

// pageBar renders Previous, the page numbers and Next. Disabled controls
// are dimmed; an empty result has no page numbers.
func (m Model) pageBar() string {
	v := m.panel.View
	var parts []string
	if v.CanPrev() {
		parts = append(parts, ui.PageStyle.Render("‹ Previous"))
	} else {
		parts = append(parts, ui.DisabledStyle.Render("‹ Previous"))
	}
	for _, n := range v.PageNumbers() {
		if n == v.Page() {
			parts = append(parts, ui.CurrentPageStyle.Render(strconv.Itoa(n)))
		} else {
			parts = append(parts, ui.PageStyle.Render(strconv.Itoa(n)))
		}
	}
	if v.CanNext() {
		parts = append(parts, ui.PageStyle.Render("Next ›"))
	} else {
		parts = append(parts, ui.DisabledStyle.Render("Next ›"))
	}
	return strings.Join(parts, "")
}

func (m Model) confirmText() string {
	if u, ok := m.panel.Store.Get(m.deleteID); ok {
		return fmt.Sprintf("Delete %s %s?", u.FirstName, u.LastName)
	}
	return "Delete user?"
}

func (m Model) dialogView(heading string) string {
	lines := []string{ui.TitleStyle.Render(heading), ""}
	for i, in := range m.inputs {
		label := ui.LabelStyle.Render(fieldLabels[i] + ":")
		if i == m.focus && !m.busy() {
			label = ui.FocusedLabelStyle.Render(fieldLabels[i] + ":")
		}
		lines = append(lines, label+in.View())
	}
	lines = append(lines, "")
	switch {
	case m.busy():
		lines = append(lines, ui.WarningStyle.Render(m.spinner.View()+" Saving..."))
	case m.status != "" && m.statusErr:
		lines = append(lines, ui.ErrorStyle.Render(m.status))
	default:
		lines = append(lines, "")
	}
	lines = append(lines, ui.HelpStyle.Render("[Tab] next field   [Enter] next/save   [ctrl+s] save   [Esc] cancel"))
	return ui.DialogStyle.Render(strings.Join(lines, "\n"))
}
