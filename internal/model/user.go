// File: internal/model/user.go
package model

import "strings"

// ObjectID 文件資料庫指派的識別碼，線上格式為 {"$oid": "<hex>"}
type ObjectID struct {
	OID string `json:"$oid"`
}

// NewObjectID wraps a raw identifier. An empty id yields nil.
func NewObjectID(id string) *ObjectID {
	if id == "" {
		return nil
	}
	return &ObjectID{OID: id}
}

type User struct {
	ID         *ObjectID `json:"_id,omitempty"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Age        Number    `json:"age"`
	Pensum     Number    `json:"pensum"`
	Location   string    `json:"location"`
	Occupation string    `json:"occupation"`
	AHVNr      string    `json:"ahv_nr"`
}

// Key 回傳使用者的識別碼，尚未建立時為空字串
func (u User) Key() string {
	if u.ID == nil {
		return ""
	}
	return u.ID.OID
}

// WithID returns a copy of u bound to id.
func (u User) WithID(id string) User {
	u.ID = NewObjectID(id)
	return u
}

// SearchFields lists the values matched by the table filter.
func (u User) SearchFields() []string {
	return []string{u.FirstName, u.LastName, u.Location, u.Occupation, u.AHVNr}
}

// Matches reports whether filter is a case-insensitive substring of any
// searchable field. An empty filter matches every user.
func (u User) Matches(filter string) bool {
	if filter == "" {
		return true
	}
	needle := strings.ToLower(filter)
	for _, f := range u.SearchFields() {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// PartialUser 更新用的稀疏欄位，nil 代表不修改
type PartialUser struct {
	ID         *ObjectID `json:"_id,omitempty"`
	FirstName  *string   `json:"first_name,omitempty"`
	LastName   *string   `json:"last_name,omitempty"`
	Age        *Number   `json:"age,omitempty"`
	Pensum     *Number   `json:"pensum,omitempty"`
	Location   *string   `json:"location,omitempty"`
	Occupation *string   `json:"occupation,omitempty"`
	AHVNr      *string   `json:"ahv_nr,omitempty"`
}

func (p PartialUser) Key() string {
	if p.ID == nil {
		return ""
	}
	return p.ID.OID
}

// Apply merges the patch onto u. The id of u is never changed.
func (p PartialUser) Apply(u User) User {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Pensum != nil {
		u.Pensum = *p.Pensum
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.Occupation != nil {
		u.Occupation = *p.Occupation
	}
	if p.AHVNr != nil {
		u.AHVNr = *p.AHVNr
	}
	return u
}
