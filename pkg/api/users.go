package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nbmdigital/siteclient/pkg/apiclient"
)

const usersBasePath = "/admin/users"

// Users exposes the admin user-management endpoints. All operations
// require authentication; role rules (only a superadmin may create an
// admin) are enforced server-side.
type Users struct {
	client *apiclient.Client
}

// NewUsers creates the users module over the given transport.
func NewUsers(client *apiclient.Client) *Users {
	return &Users{client: client}
}

// List returns one page of users. The endpoint double-wraps its
// payload; the transport unwraps one level, so the decoded shape here
// is still {"data": [...], "pagination": {...}}.
func (u *Users) List(ctx context.Context, page, limit int) (*UserList, error) {
	path := fmt.Sprintf("%s?page=%d&limit=%d", usersBasePath, page, limit)
	resp, err := u.client.AuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	list, err := apiclient.Decode[UserList](resp)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// Get returns a single user by ID.
func (u *Users) Get(ctx context.Context, id string) (*User, error) {
	resp, err := u.client.AuthRequest(ctx, http.MethodGet, usersBasePath+"/"+id, nil)
	if err != nil {
		return nil, err
	}
	user, err := apiclient.Decode[User](resp)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUserInput is the payload for creating a user.
type CreateUserInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Create creates a new user.
func (u *Users) Create(ctx context.Context, in CreateUserInput) (*User, error) {
	resp, err := u.client.AuthRequest(ctx, http.MethodPost, usersBasePath, in)
	if err != nil {
		return nil, err
	}
	user, err := apiclient.Decode[User](resp)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserInput is a partial update; nil fields are left unchanged.
type UpdateUserInput struct {
	Email    *string `json:"email,omitempty"`
	Username *string `json:"username,omitempty"`
	Role     *Role   `json:"role,omitempty"`
}

// Update applies a partial update to a user.
func (u *Users) Update(ctx context.Context, id string, in UpdateUserInput) (*User, error) {
	resp, err := u.client.AuthRequest(ctx, http.MethodPut, usersBasePath+"/"+id, in)
	if err != nil {
		return nil, err
	}
	user, err := apiclient.Decode[User](resp)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user.
func (u *Users) Delete(ctx context.Context, id string) error {
	_, err := u.client.AuthRequest(ctx, http.MethodDelete, usersBasePath+"/"+id, nil)
	return err
}
