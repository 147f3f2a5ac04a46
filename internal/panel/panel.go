// Package panel wires the store, the table view, the dialogs and the forms
// into the single object the terminal and CLI front ends drive.
package panel

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"user-admin/internal/apiclient"
	"user-admin/internal/cache"
	"user-admin/internal/form"
	"user-admin/internal/modal"
	"user-admin/internal/model"
	"user-admin/internal/store"
	"user-admin/internal/table"
)

const MessageDeleted = "User deleted successfully"

// API is the user REST API as the panel uses it. *apiclient.Client satisfies it.
type API interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, u model.User) (apiclient.Result, error)
	UpdateUser(ctx context.Context, p model.PartialUser) (apiclient.Result, error)
	DeleteUser(ctx context.Context, id string) (apiclient.Result, error)
}

// Snapshotter keeps the last good list. *cache.Snapshots satisfies it.
type Snapshotter interface {
	Save(ctx context.Context, users []model.User) error
	Load(ctx context.Context) (cache.Snapshot, error)
}

type Options struct {
	PageSize  int
	StrictAHV bool
	// Snapshots is optional; nil disables the stale fallback.
	Snapshots Snapshotter
	Logger    *zap.Logger
}

type Panel struct {
	Store     *store.UserStore
	View      *table.View
	AddModal  *modal.Add
	EditModal *modal.Edit
	AddForm   *form.Add
	EditForm  *form.Edit

	api       API
	notify    form.Notifier
	snapshots Snapshotter
	log       *zap.Logger

	loaded     bool
	stale      bool
	staleSince time.Time
	lastErr    error
}

func New(api API, n form.Notifier, opts Options) *Panel {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	v := form.NewValidator(opts.StrictAHV)
	p := &Panel{
		Store:     store.NewUserStore(),
		View:      table.New(opts.PageSize),
		AddModal:  &modal.Add{},
		EditModal: &modal.Edit{},
		api:       api,
		notify:    n,
		snapshots: opts.Snapshots,
		log:       log,
	}
	p.AddForm = form.NewAdd(api, p.Store, p.AddModal, n, v)
	p.EditForm = form.NewEdit(api, p.Store, p.EditModal, n, v)
	p.Store.Subscribe(p.View.SetUsers)
	return p
}

// Listing is the outcome of one list fetch.
type Listing struct {
	Users []model.User
	Err   error
	// Snapshot is set when the fetch failed and a stored list was found.
	Snapshot *cache.Snapshot
}

// Fetch lists the users and keeps the snapshot in step. It does not touch
// panel state, so it may run off the event loop.
func (p *Panel) Fetch(ctx context.Context) Listing {
	users, err := p.api.ListUsers(ctx)
	if err == nil {
		if p.snapshots != nil {
			if serr := p.snapshots.Save(ctx, users); serr != nil {
				p.log.Warn("snapshot save failed", zap.Error(serr))
			}
		}
		return Listing{Users: users}
	}

	l := Listing{Err: err}
	if p.snapshots == nil {
		return l
	}
	snap, serr := p.snapshots.Load(ctx)
	switch {
	case errors.Is(serr, cache.ErrNoSnapshot):
	case serr != nil:
		p.log.Warn("snapshot load failed", zap.Error(serr))
	default:
		l.Snapshot = &snap
	}
	return l
}

// Apply installs a listing. A failed fetch leaves an empty table unless a
// snapshot was found, which is then shown as stale.
func (p *Panel) Apply(l Listing) {
	p.loaded = true
	if l.Err == nil {
		p.stale, p.staleSince, p.lastErr = false, time.Time{}, nil
		p.Store.SetAll(l.Users)
		return
	}
	p.log.Error("list users failed", zap.Error(l.Err))
	p.lastErr = l.Err
	if l.Snapshot != nil {
		p.stale, p.staleSince = true, l.Snapshot.SavedAt
		p.Store.SetAll(l.Snapshot.Users)
		return
	}
	p.stale, p.staleSince = false, time.Time{}
	p.Store.SetAll(nil)
}

// Mount loads the initial list.
func (p *Panel) Mount(ctx context.Context) error {
	l := p.Fetch(ctx)
	p.Apply(l)
	return l.Err
}

// Refresh reloads the list; it is the manual retry after a failed Mount.
func (p *Panel) Refresh(ctx context.Context) error { return p.Mount(ctx) }

func (p *Panel) Loaded() bool { return p.loaded }

// Stale reports whether the table shows a snapshot and when it was taken.
func (p *Panel) Stale() (bool, time.Time) { return p.stale, p.staleSince }

// LastError is the error of the latest failed fetch, nil after a success.
func (p *Panel) LastError() error { return p.lastErr }

// Search sets the table filter.
func (p *Panel) Search(filter string) { p.View.SetFilter(filter) }

func (p *Panel) OpenAdd() { p.AddModal.Open() }

// CloseAdd closes the add dialog and clears its inputs. Ignored while busy.
func (p *Panel) CloseAdd() bool { return p.AddForm.Cancel() }

// OpenEdit binds the stored user with id to the edit dialog.
func (p *Panel) OpenEdit(id string) bool {
	u, ok := p.Store.Get(id)
	if !ok {
		return false
	}
	p.EditForm.Open(u)
	return true
}

func (p *Panel) CloseEdit() bool { return p.EditForm.Cancel() }

// SendDelete issues the delete call. Safe off the event loop.
func (p *Panel) SendDelete(ctx context.Context, id string) (apiclient.Result, error) {
	return p.api.DeleteUser(ctx, id)
}

// CompleteDelete applies a delete answer and reports whether id was removed.
func (p *Panel) CompleteDelete(id string, res apiclient.Result, err error) bool {
	if err != nil {
		p.log.Error("delete user failed", zap.String("id", id), zap.Error(err))
		p.notify.Failure(err.Error())
		return false
	}
	if !res.OK() {
		p.notify.Failure(res.Message)
		return false
	}
	p.Store.Remove(id)
	p.notify.Success(MessageDeleted)
	return true
}

// Delete removes the user with id on the server and then locally. An empty
// id is a no-op.
func (p *Panel) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	res, err := p.SendDelete(ctx, id)
	return p.CompleteDelete(id, res, err), err
}
