package form

import (
	"context"

	"user-admin/internal/apiclient"
	"user-admin/internal/modal"
	"user-admin/internal/model"
	"user-admin/internal/store"
)

const MessageAdded = "User added successfully"

// Add is the add-user form bound to the add dialog.
type Add struct {
	Values Values

	api      Creator
	store    *store.UserStore
	modal    *modal.Add
	notify   Notifier
	validate *Validator
	busy     bool
}

func NewAdd(api Creator, st *store.UserStore, m *modal.Add, n Notifier, v *Validator) *Add {
	return &Add{api: api, store: st, modal: m, notify: n, validate: v}
}

func (f *Add) Busy() bool { return f.busy }

// Reset clears every input.
func (f *Add) Reset() { f.Values = Values{} }

// Cancel closes the dialog and discards the inputs. Ignored while busy.
func (f *Add) Cancel() bool {
	if f.busy {
		return false
	}
	f.Reset()
	f.modal.Close()
	return true
}

// Begin validates the inputs and marks the form busy. The returned user has
// no id; the server assigns one.
func (f *Add) Begin() (model.User, error) {
	if f.busy {
		return model.User{}, ErrBusy
	}
	if !f.modal.IsOpen() {
		return model.User{}, ErrNotOpen
	}
	v := f.Values.trimmed()
	if err := f.validate.Validate(v, v.AHVNr); err != nil {
		f.notify.Failure(err.Error())
		return model.User{}, err
	}
	u, err := v.User()
	if err != nil {
		f.notify.Failure(err.Error())
		return model.User{}, err
	}
	f.busy = true
	return u, nil
}

// Complete applies the answer to a create started by Begin and reports
// whether the user was added.
func (f *Add) Complete(u model.User, res apiclient.Result, err error) bool {
	f.busy = false
	ok, msg := outcome(res, err)
	if !ok {
		f.notify.Failure(msg)
		return false
	}
	f.store.Add(u.WithID(res.ID))
	f.notify.Success(MessageAdded)
	f.Reset()
	f.modal.Close()
	return true
}

// Submit runs Begin, the create call and Complete in one go.
func (f *Add) Submit(ctx context.Context) (bool, error) {
	u, err := f.Begin()
	if err != nil {
		return false, err
	}
	res, err := f.api.CreateUser(ctx, u)
	return f.Complete(u, res, err), err
}

// Create returns the call Begin's payload should be sent with, for callers
// that run it off the event loop.
func (f *Add) Create(ctx context.Context, u model.User) (apiclient.Result, error) {
	return f.api.CreateUser(ctx, u)
}
