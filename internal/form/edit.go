package form

import (
	"context"

	"user-admin/internal/apiclient"
	"user-admin/internal/modal"
	"user-admin/internal/model"
	"user-admin/internal/store"
)

const MessageUpdated = "User updated successfully"

// Edit is the edit-user form bound to the edit dialog.
type Edit struct {
	Values Values

	api      Updater
	store    *store.UserStore
	modal    *modal.Edit
	notify   Notifier
	validate *Validator
	busy     bool
}

func NewEdit(api Updater, st *store.UserStore, m *modal.Edit, n Notifier, v *Validator) *Edit {
	return &Edit{api: api, store: st, modal: m, notify: n, validate: v}
}

func (f *Edit) Busy() bool { return f.busy }

// Open binds u to the dialog and pre-fills the inputs.
func (f *Edit) Open(u model.User) {
	f.modal.Open(u)
	f.Load(u)
}

// Load pre-fills the inputs from u.
func (f *Edit) Load(u model.User) { f.Values = ValuesFrom(u) }

// Cancel closes the dialog. Ignored while busy.
func (f *Edit) Cancel() bool {
	if f.busy {
		return false
	}
	f.modal.Close()
	return true
}

// Begin validates the inputs against the edit rules and builds the patch
// for the bound user. Empty inputs are left out of the patch.
func (f *Edit) Begin() (model.PartialUser, error) {
	if f.busy {
		return model.PartialUser{}, ErrBusy
	}
	bound, ok := f.modal.User()
	if !ok {
		return model.PartialUser{}, ErrNotOpen
	}
	v := f.Values.trimmed()
	if err := f.validate.Validate(patchValues(v), v.AHVNr); err != nil {
		f.notify.Failure(err.Error())
		return model.PartialUser{}, err
	}
	p, err := v.Patch(bound.Key())
	if err != nil {
		f.notify.Failure(err.Error())
		return model.PartialUser{}, err
	}
	f.busy = true
	return p, nil
}

// Complete applies the answer to an update started by Begin and reports
// whether the user was changed.
func (f *Edit) Complete(p model.PartialUser, res apiclient.Result, err error) bool {
	f.busy = false
	ok, msg := outcome(res, err)
	if !ok {
		f.notify.Failure(msg)
		return false
	}
	if cur, found := f.store.Get(p.Key()); found {
		f.store.Update(p.Apply(cur))
	}
	f.notify.Success(MessageUpdated)
	f.modal.Close()
	return true
}

// Submit runs Begin, the update call and Complete in one go.
func (f *Edit) Submit(ctx context.Context) (bool, error) {
	p, err := f.Begin()
	if err != nil {
		return false, err
	}
	res, err := f.api.UpdateUser(ctx, p)
	return f.Complete(p, res, err), err
}

// Update sends a patch from Begin, for callers that run it off the event loop.
func (f *Edit) Update(ctx context.Context, p model.PartialUser) (apiclient.Result, error) {
	return f.api.UpdateUser(ctx, p)
}
