package form

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"user-admin/internal/apiclient"
	"user-admin/internal/apitest"
	"user-admin/internal/modal"
	"user-admin/internal/model"
	"user-admin/internal/store"
)

// fakeAPI records calls through function fields.
type fakeAPI struct {
	CreateUserFn func(ctx context.Context, u model.User) (apiclient.Result, error)
	UpdateUserFn func(ctx context.Context, p model.PartialUser) (apiclient.Result, error)
}

func (f *fakeAPI) CreateUser(ctx context.Context, u model.User) (apiclient.Result, error) {
	return f.CreateUserFn(ctx, u)
}

func (f *fakeAPI) UpdateUser(ctx context.Context, p model.PartialUser) (apiclient.Result, error) {
	return f.UpdateUserFn(ctx, p)
}

type recorder struct {
	successes []string
	failures  []string
}

func (r *recorder) Success(msg string) { r.successes = append(r.successes, msg) }
func (r *recorder) Failure(msg string) { r.failures = append(r.failures, msg) }

func filled() Values {
	return Values{
		FirstName:  "Anna",
		LastName:   "Muster",
		Age:        "34",
		Pensum:     "80",
		Location:   "Bern",
		Occupation: "Nurse",
		AHVNr:      "756.9217.0769.85",
	}
}

func seeded() model.User {
	return model.User{
		ID:         model.NewObjectID("u1"),
		FirstName:  "Max",
		LastName:   "Muster",
		Age:        40,
		Pensum:     100,
		Location:   "Basel",
		Occupation: "Baker",
		AHVNr:      "756.1234.5678.97",
	}
}

func TestValidAHV(t *testing.T) {
	require.True(t, ValidAHV("756.9217.0769.85"))
	require.True(t, ValidAHV("756.1234.5678.97"))
	require.False(t, ValidAHV("756.1234.5678.90"))
	require.False(t, ValidAHV("756.12345678.97"))
	require.False(t, ValidAHV("123.1234.5678.97"))
	require.False(t, ValidAHV(""))
}

func TestValidator(t *testing.T) {
	t.Run("add rules", func(t *testing.T) {
		v := NewValidator(false)
		require.NoError(t, v.Validate(filled(), ""))

		err := v.Validate(Values{Age: "3x"}, "")
		require.ErrorIs(t, err, ErrValidation)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.True(t, verr.Has("first_name"))
		require.True(t, verr.Has("age"))
		require.True(t, verr.Has("ahv_nr"))
		require.Contains(t, err.Error(), "first_name is required")
		require.Contains(t, err.Error(), "age must be a whole number")
	})

	t.Run("edit rules", func(t *testing.T) {
		v := NewValidator(false)
		require.NoError(t, v.Validate(patchValues{AHVNr: "x"}, "x"))

		err := v.Validate(patchValues{Pensum: "-1"}, "")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.True(t, verr.Has("pensum"))
		require.True(t, verr.Has("ahv_nr"))
		require.False(t, verr.Has("first_name"))
	})

	t.Run("strict ahv", func(t *testing.T) {
		v := NewValidator(true)
		vals := filled()
		require.NoError(t, v.Validate(vals, vals.AHVNr))

		vals.AHVNr = "756.1234.5678.90"
		err := v.Validate(vals, vals.AHVNr)
		require.EqualError(t, err, "ahv_nr is not a valid AHV number")
	})
}

func TestAddSubmit(t *testing.T) {
	t.Run("success adds the server id and closes", func(t *testing.T) {
		st := store.NewUserStore()
		m := &modal.Add{}
		n := &recorder{}
		var sent model.User
		api := &fakeAPI{CreateUserFn: func(ctx context.Context, u model.User) (apiclient.Result, error) {
			sent = u
			return apiclient.Result{Status: apiclient.StatusSucceeded, Message: apiclient.MessageCreated, ID: "abc"}, nil
		}}
		f := NewAdd(api, st, m, n, NewValidator(false))
		m.Open()
		f.Values = filled()

		ok, err := f.Submit(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
		require.Nil(t, sent.ID)

		got, found := st.Get("abc")
		require.True(t, found)
		require.Equal(t, "Anna", got.FirstName)
		require.Equal(t, model.Number(34), got.Age)
		require.Equal(t, model.Number(80), got.Pensum)
		require.False(t, m.IsOpen())
		require.Equal(t, Values{}, f.Values)
		require.Equal(t, []string{MessageAdded}, n.successes)
		require.False(t, f.Busy())
	})

	t.Run("rejection keeps the dialog open", func(t *testing.T) {
		st := store.NewUserStore()
		m := &modal.Add{}
		n := &recorder{}
		api := &fakeAPI{CreateUserFn: func(ctx context.Context, u model.User) (apiclient.Result, error) {
			return apiclient.Result{Status: apiclient.StatusRejected, Message: "AHV number already exists"}, nil
		}}
		f := NewAdd(api, st, m, n, NewValidator(false))
		m.Open()
		f.Values = filled()

		ok, err := f.Submit(context.Background())
		require.NoError(t, err)
		require.False(t, ok)
		require.Equal(t, 0, st.Len())
		require.True(t, m.IsOpen())
		require.Equal(t, filled(), f.Values)
		require.Equal(t, []string{"AHV number already exists"}, n.failures)
	})

	t.Run("transport error is shown", func(t *testing.T) {
		m := &modal.Add{}
		n := &recorder{}
		api := &fakeAPI{CreateUserFn: func(ctx context.Context, u model.User) (apiclient.Result, error) {
			return apiclient.Result{}, errors.New("CreateUser: connection refused")
		}}
		f := NewAdd(api, store.NewUserStore(), m, n, NewValidator(false))
		m.Open()
		f.Values = filled()

		ok, err := f.Submit(context.Background())
		require.Error(t, err)
		require.False(t, ok)
		require.Equal(t, []string{"CreateUser: connection refused"}, n.failures)
		require.True(t, m.IsOpen())
	})

	t.Run("invalid input never calls the API", func(t *testing.T) {
		m := &modal.Add{}
		n := &recorder{}
		api := &fakeAPI{CreateUserFn: func(ctx context.Context, u model.User) (apiclient.Result, error) {
			t.Fatal("CreateUser must not be called")
			return apiclient.Result{}, nil
		}}
		f := NewAdd(api, store.NewUserStore(), m, n, NewValidator(false))
		m.Open()
		f.Values = filled()
		f.Values.Age = "thirty"

		_, err := f.Submit(context.Background())
		require.ErrorIs(t, err, ErrValidation)
		require.False(t, f.Busy())
		require.Len(t, n.failures, 1)
	})

	t.Run("busy rejects a second submit", func(t *testing.T) {
		m := &modal.Add{}
		f := NewAdd(&fakeAPI{}, store.NewUserStore(), m, &recorder{}, NewValidator(false))
		m.Open()
		f.Values = filled()

		u, err := f.Begin()
		require.NoError(t, err)
		require.True(t, f.Busy())
		require.False(t, f.Cancel())

		_, err = f.Begin()
		require.ErrorIs(t, err, ErrBusy)

		f.Complete(u, apiclient.Result{Status: apiclient.StatusRejected, Message: "no"}, nil)
		require.False(t, f.Busy())
		require.True(t, f.Cancel())
		require.False(t, m.IsOpen())
		require.Equal(t, Values{}, f.Values)
	})

	t.Run("closed dialog", func(t *testing.T) {
		f := NewAdd(&fakeAPI{}, store.NewUserStore(), &modal.Add{}, &recorder{}, NewValidator(false))
		f.Values = filled()
		_, err := f.Begin()
		require.ErrorIs(t, err, ErrNotOpen)
	})
}

func TestAddSubmitAgainstBackend(t *testing.T) {
	b := apitest.NewBackend()
	b.Override(http.MethodPost, "/user", http.StatusOK, `{"message":"User successfully created!","id":{"$oid":"abc"}}`)
	srv := apitest.NewServer(t, b)
	c, err := apiclient.New(srv.URL)
	require.NoError(t, err)

	st := store.NewUserStore()
	m := &modal.Add{}
	f := NewAdd(c, st, m, &recorder{}, NewValidator(false))
	m.Open()
	f.Values = filled()

	ok, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	got, found := st.Get("abc")
	require.True(t, found)
	require.Equal(t, "756.9217.0769.85", got.AHVNr)
	require.False(t, m.IsOpen())
	require.Equal(t, Values{}, f.Values)
}

func TestEditSubmit(t *testing.T) {
	t.Run("load pre-fills", func(t *testing.T) {
		f := NewEdit(&fakeAPI{}, store.NewUserStore(), &modal.Edit{}, &recorder{}, NewValidator(false))
		f.Open(seeded())
		require.Equal(t, "40", f.Values.Age)
		require.Equal(t, "Basel", f.Values.Location)
	})

	t.Run("patch omits empty inputs and merges", func(t *testing.T) {
		st := store.NewUserStore()
		st.SetAll([]model.User{seeded()})
		m := &modal.Edit{}
		n := &recorder{}
		var sent model.PartialUser
		api := &fakeAPI{UpdateUserFn: func(ctx context.Context, p model.PartialUser) (apiclient.Result, error) {
			sent = p
			return apiclient.Result{Status: apiclient.StatusSucceeded, Message: apiclient.MessageUpdated}, nil
		}}
		f := NewEdit(api, st, m, n, NewValidator(false))
		f.Open(seeded())
		f.Values = Values{Location: "Zürich", Pensum: "60", AHVNr: "756.1234.5678.97"}

		ok, err := f.Submit(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "u1", sent.Key())
		require.Nil(t, sent.FirstName)
		require.Nil(t, sent.Age)
		require.Equal(t, "Zürich", *sent.Location)

		got, _ := st.Get("u1")
		require.Equal(t, "Max", got.FirstName)
		require.Equal(t, "Zürich", got.Location)
		require.Equal(t, model.Number(60), got.Pensum)
		require.Equal(t, model.Number(40), got.Age)
		require.False(t, m.IsOpen())
		_, bound := m.User()
		require.False(t, bound)
		require.Equal(t, []string{MessageUpdated}, n.successes)
	})

	t.Run("server rejection leaves the store alone", func(t *testing.T) {
		st := store.NewUserStore()
		st.SetAll([]model.User{seeded()})
		m := &modal.Edit{}
		n := &recorder{}
		api := &fakeAPI{UpdateUserFn: func(ctx context.Context, p model.PartialUser) (apiclient.Result, error) {
			return apiclient.Result{Status: apiclient.StatusRejected, Message: "Update failed"}, nil
		}}
		f := NewEdit(api, st, m, n, NewValidator(false))
		f.Open(seeded())
		f.Values.FirstName = "Moritz"

		ok, err := f.Submit(context.Background())
		require.NoError(t, err)
		require.False(t, ok)
		require.Equal(t, []model.User{seeded()}, st.All())
		require.True(t, m.IsOpen())
		require.Equal(t, []string{"Update failed"}, n.failures)
	})

	t.Run("ahv is required", func(t *testing.T) {
		m := &modal.Edit{}
		api := &fakeAPI{UpdateUserFn: func(ctx context.Context, p model.PartialUser) (apiclient.Result, error) {
			t.Fatal("UpdateUser must not be called")
			return apiclient.Result{}, nil
		}}
		f := NewEdit(api, store.NewUserStore(), m, &recorder{}, NewValidator(false))
		f.Open(seeded())
		f.Values.AHVNr = "  "

		_, err := f.Submit(context.Background())
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.True(t, verr.Has("ahv_nr"))
	})

	t.Run("not open", func(t *testing.T) {
		f := NewEdit(&fakeAPI{}, store.NewUserStore(), &modal.Edit{}, &recorder{}, NewValidator(false))
		_, err := f.Begin()
		require.ErrorIs(t, err, ErrNotOpen)
	})
}

func TestEditUpdateFailedAgainstBackend(t *testing.T) {
	b := apitest.NewBackend(seeded())
	b.Override(http.MethodPut, "/user/u1", http.StatusOK, `{"message":"Update failed"}`)
	srv := apitest.NewServer(t, b)
	c, err := apiclient.New(srv.URL)
	require.NoError(t, err)

	st := store.NewUserStore()
	st.SetAll([]model.User{seeded()})
	m := &modal.Edit{}
	n := &recorder{}
	f := NewEdit(c, st, m, n, NewValidator(false))
	f.Open(seeded())
	f.Values.Occupation = "Chef"

	ok, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, []model.User{seeded()}, st.All())
	require.True(t, m.IsOpen())
	require.Equal(t, []string{"Update failed"}, n.failures)
}
