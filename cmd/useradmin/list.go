package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var (
		filter   string
		page     int
		pageSize int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of users, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if pageSize < 0 {
				return fmt.Errorf("invalid --page-size %d", pageSize)
			}
			if err := a.setup(cmd, false, pageSize); err != nil {
				return err
			}
			defer a.close()

			p := a.panel
			if err := p.Mount(ctxOf(cmd)); err != nil {
				stale, since := p.Stale()
				if !stale {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "API unreachable (%v); showing users saved %s\n", err, since.Local().Format("2006-01-02 15:04"))
			}
			p.Search(filter)

			v := p.View
			if v.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "No users found")
				return nil
			}
			if cmd.Flags().Changed("page") && !v.GoTo(page) {
				return fmt.Errorf("page %d out of range 1-%d", page, v.TotalPages())
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "First Name", "Last Name", "Age", "Pensum", "Location", "Occupation", "AHV Nr.")
			for _, u := range v.Rows() {
				t.Row(u.Key(), u.FirstName, u.LastName, u.Age.String(), u.Pensum.String(), u.Location, u.Occupation, u.AHVNr)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (%d users)\n", v.Page(), v.TotalPages(), v.Count())
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "Case-insensitive search over name, location, occupation and AHV number")
	cmd.Flags().IntVar(&page, "page", 1, "Page to print")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Rows per page (overrides USERADMIN_PAGE_SIZE)")
	return cmd
}
