package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"user-admin/internal/form"
)

// fieldFlags binds the seven user inputs to flags.
type fieldFlags struct {
	vals form.Values
}

func (f *fieldFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.vals.FirstName, "first-name", "", "First name")
	fl.StringVar(&f.vals.LastName, "last-name", "", "Last name")
	fl.StringVar(&f.vals.Age, "age", "", "Age in years")
	fl.StringVar(&f.vals.Pensum, "pensum", "", "Workload in percent")
	fl.StringVar(&f.vals.Location, "location", "", "Location")
	fl.StringVar(&f.vals.Occupation, "occupation", "", "Occupation")
	fl.StringVar(&f.vals.AHVNr, "ahv-nr", "", "AHV number, e.g. 756.1234.5678.97")
}

// apply overwrites the inputs in v whose flag was given.
func (f *fieldFlags) apply(cmd *cobra.Command, v form.Values) form.Values {
	set := func(name string, dst *string, src string) {
		if cmd.Flags().Changed(name) {
			*dst = src
		}
	}
	set("first-name", &v.FirstName, f.vals.FirstName)
	set("last-name", &v.LastName, f.vals.LastName)
	set("age", &v.Age, f.vals.Age)
	set("pensum", &v.Pensum, f.vals.Pensum)
	set("location", &v.Location, f.vals.Location)
	set("occupation", &v.Occupation, f.vals.Occupation)
	set("ahv-nr", &v.AHVNr, f.vals.AHVNr)
	return v
}

func newCreateCmd(a *app) *cobra.Command {
	var fields fieldFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd, false, 0); err != nil {
				return err
			}
			defer a.close()

			p := a.panel
			p.OpenAdd()
			p.AddForm.Values = fields.vals
			ok, err := p.AddForm.Submit(ctxOf(cmd))
			if err := a.outcome(cmd, ok, err); err != nil {
				return err
			}
			if users := p.Store.All(); len(users) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "id: %s\n", users[len(users)-1].Key())
			}
			return nil
		},
	}
	fields.register(cmd)
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var (
		id     string
		fields fieldFlags
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update fields of a user; omitted flags keep their value",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				return fmt.Errorf("--id is required")
			}
			if err := a.setup(cmd, false, 0); err != nil {
				return err
			}
			defer a.close()

			p := a.panel
			if err := p.Mount(ctxOf(cmd)); err != nil {
				return err
			}
			if !p.OpenEdit(id) {
				return fmt.Errorf("user %s not found", id)
			}
			p.EditForm.Values = fields.apply(cmd, p.EditForm.Values)
			ok, err := p.EditForm.Submit(ctxOf(cmd))
			return a.outcome(cmd, ok, err)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Id of the user to update")
	fields.register(cmd)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				return fmt.Errorf("--id is required")
			}
			if err := a.setup(cmd, false, 0); err != nil {
				return err
			}
			defer a.close()

			ok, err := a.panel.Delete(ctxOf(cmd), id)
			return a.outcome(cmd, ok, err)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Id of the user to delete")
	return cmd
}
