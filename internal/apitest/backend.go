// Package apitest provides an in-memory stand-in for the user REST API,
// served by echo. It answers with the same messages and status codes as the
// real backend so clients can be exercised end to end.
package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"user-admin/internal/dto"
	"user-admin/internal/model"
)

// Request is a recorded inbound call.
type Request struct {
	Method string
	Path   string
	Body   string
	Header http.Header
}

// Reply is a canned response installed with Override.
type Reply struct {
	Status int
	Body   string
}

type Backend struct {
	mu        sync.Mutex
	users     []model.User
	requests  []Request
	overrides map[string]Reply
}

// NewBackend seeds the backend. Seed users without an id get a fresh ObjectID.
func NewBackend(seed ...model.User) *Backend {
	b := &Backend{overrides: map[string]Reply{}}
	for _, u := range seed {
		if u.Key() == "" {
			u = u.WithID(primitive.NewObjectID().Hex())
		}
		b.users = append(b.users, u)
	}
	return b
}

// Override makes "METHOD path" answer with status and a raw body instead of
// the default handler.
func (b *Backend) Override(method, path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.overrides[method+" "+path] = Reply{Status: status, Body: body}
}

func (b *Backend) Users() []model.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.User, len(b.users))
	copy(out, b.users)
	return out
}

func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Request, len(b.requests))
	copy(out, b.requests)
	return out
}

// LastRequest returns the most recent call, or a zero Request.
func (b *Backend) LastRequest() Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return Request{}
	}
	return b.requests[len(b.requests)-1]
}

// NewServer starts an httptest server for b and closes it with the test.
func NewServer(t testing.TB, b *Backend) *httptest.Server {
	t.Helper()
	e := echo.New()
	e.HideBanner = true
	Setup(e, b)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func (b *Backend) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		body, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewReader(body))

		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method: req.Method,
			Path:   req.URL.Path,
			Body:   string(body),
			Header: req.Header.Clone(),
		})
		reply, ok := b.overrides[req.Method+" "+req.URL.Path]
		b.mu.Unlock()

		if ok {
			return c.Blob(reply.Status, echo.MIMEApplicationJSONCharsetUTF8, []byte(reply.Body))
		}
		return next(c)
	}
}

func (b *Backend) listUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, b.Users())
}

func (b *Backend) createUser(c echo.Context) error {
	var u model.User
	if err := json.NewDecoder(c.Request().Body).Decode(&u); err != nil {
		return c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Json deserialize error"})
	}
	for _, f := range []string{u.FirstName, u.LastName, u.Location, u.Occupation, u.AHVNr} {
		if f == "" {
			return c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "missing field"})
		}
	}
	oid := primitive.NewObjectID().Hex()
	u = u.WithID(oid)

	b.mu.Lock()
	b.users = append(b.users, u)
	b.mu.Unlock()

	return c.JSON(http.StatusOK, dto.CreateUserResponse{
		Message: "User successfully created!",
		ID:      model.NewObjectID(oid),
	})
}

func (b *Backend) updateUser(c echo.Context) error {
	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid ID"})
	}
	var p model.PartialUser
	if err := json.NewDecoder(c.Request().Body).Decode(&p); err != nil {
		return c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Json deserialize error"})
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, u := range b.users {
		if u.Key() == id {
			updated := p.Apply(u)
			if updated == u {
				break
			}
			b.users[i] = updated
			return c.JSON(http.StatusOK, dto.MessageResponse{Message: "User successfully updated!"})
		}
	}
	return c.JSON(http.StatusNotFound, dto.MessageResponse{Message: "Nothing changed."})
}

func (b *Backend) deleteUser(c echo.Context) error {
	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid ID"})
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, u := range b.users {
		if u.Key() == id {
			b.users = append(b.users[:i], b.users[i+1:]...)
			return c.JSON(http.StatusOK, dto.MessageResponse{Message: "User successfully deleted!"})
		}
	}
	return c.JSON(http.StatusNotFound, dto.MessageResponse{Message: "User with specified ID not found!"})
}
