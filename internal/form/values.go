package form

import (
	"fmt"
	"strings"

	"user-admin/internal/model"
)

// Values are the seven inputs exactly as typed. The tags are the add-form
// rules; the edit form checks patchValues instead.
type Values struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Age        string `json:"age" validate:"required,number"`
	Pensum     string `json:"pensum" validate:"required,number"`
	Location   string `json:"location" validate:"required"`
	Occupation string `json:"occupation" validate:"required"`
	AHVNr      string `json:"ahv_nr" validate:"required"`
}

// patchValues only requires ahv_nr; other inputs may be left empty.
type patchValues struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Age        string `json:"age" validate:"omitempty,number"`
	Pensum     string `json:"pensum" validate:"omitempty,number"`
	Location   string `json:"location"`
	Occupation string `json:"occupation"`
	AHVNr      string `json:"ahv_nr" validate:"required"`
}

// ValuesFrom pre-fills the inputs from u.
func ValuesFrom(u model.User) Values {
	return Values{
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Age:        u.Age.String(),
		Pensum:     u.Pensum.String(),
		Location:   u.Location,
		Occupation: u.Occupation,
		AHVNr:      u.AHVNr,
	}
}

func (v Values) trimmed() Values {
	return Values{
		FirstName:  strings.TrimSpace(v.FirstName),
		LastName:   strings.TrimSpace(v.LastName),
		Age:        strings.TrimSpace(v.Age),
		Pensum:     strings.TrimSpace(v.Pensum),
		Location:   strings.TrimSpace(v.Location),
		Occupation: strings.TrimSpace(v.Occupation),
		AHVNr:      strings.TrimSpace(v.AHVNr),
	}
}

// User converts complete inputs into a draft user without an id.
func (v Values) User() (model.User, error) {
	age, err := model.ParseNumber(v.Age)
	if err != nil {
		return model.User{}, fmt.Errorf("age: %w", err)
	}
	pensum, err := model.ParseNumber(v.Pensum)
	if err != nil {
		return model.User{}, fmt.Errorf("pensum: %w", err)
	}
	return model.User{
		FirstName:  v.FirstName,
		LastName:   v.LastName,
		Age:        age,
		Pensum:     pensum,
		Location:   v.Location,
		Occupation: v.Occupation,
		AHVNr:      v.AHVNr,
	}, nil
}

// Patch converts the inputs into a patch for id. Empty inputs are omitted.
func (v Values) Patch(id string) (model.PartialUser, error) {
	p := model.PartialUser{ID: model.NewObjectID(id)}
	p.FirstName = optional(v.FirstName)
	p.LastName = optional(v.LastName)
	p.Location = optional(v.Location)
	p.Occupation = optional(v.Occupation)
	p.AHVNr = optional(v.AHVNr)
	if v.Age != "" {
		n, err := model.ParseNumber(v.Age)
		if err != nil {
			return model.PartialUser{}, fmt.Errorf("age: %w", err)
		}
		p.Age = &n
	}
	if v.Pensum != "" {
		n, err := model.ParseNumber(v.Pensum)
		if err != nil {
			return model.PartialUser{}, fmt.Errorf("pensum: %w", err)
		}
		p.Pensum = &n
	}
	return p, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
