// Package form drives the add and edit dialogs: input validation, the
// busy guard and the store/notification effects of a submit.
package form

import (
	"context"
	"errors"

	"user-admin/internal/apiclient"
	"user-admin/internal/model"
)

var (
	ErrBusy    = errors.New("a request is already in flight")
	ErrNotOpen = errors.New("dialog is not open")
)

// Notifier shows transient success and error messages.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// Creator is the part of the API the add form needs.
type Creator interface {
	CreateUser(ctx context.Context, u model.User) (apiclient.Result, error)
}

// Updater is the part of the API the edit form needs.
type Updater interface {
	UpdateUser(ctx context.Context, p model.PartialUser) (apiclient.Result, error)
}

// outcome turns a finished call into the text shown to the user.
func outcome(res apiclient.Result, err error) (ok bool, msg string) {
	if err != nil {
		return false, err.Error()
	}
	if !res.OK() {
		return false, res.Message
	}
	return true, res.Message
}
