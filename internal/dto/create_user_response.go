// File: internal/dto/create_user_response.go
package dto

import "user-admin/internal/model"

// CreateUserResponse is returned by POST /user.
type CreateUserResponse struct {
	Message string          `json:"message"`
	ID      *model.ObjectID `json:"id,omitempty"`
}
