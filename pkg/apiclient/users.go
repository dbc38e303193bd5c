package apiclient

import (
	"context"
	"net/http"
)

// ListUsers returns the users of the tenant.
func (c *Client) ListUsers(ctx context.Context, p Page) ([]User, error) {
	q := query{}
	p.apply(q)
	list, err := Request[[]User](ctx, c, http.MethodGet, "/api/users", WithQuery(map[string][]string(q)))
	if err != nil {
		return nil, err
	}
	return orEmpty(list), nil
}

// CreateUser creates an account.
func (c *Client) CreateUser(ctx context.Context, in UserInput) (*User, error) {
	u, err := Request[User](ctx, c, http.MethodPost, "/api/users", WithBody(in))
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser edits an account.
func (c *Client) UpdateUser(ctx context.Context, id ID, in UserInput) (*User, error) {
	path, err := resourcePath("/api/users/%s", id)
	if err != nil {
		return nil, c.errors.Unknown(err)
	}
	u, err := Request[User](ctx, c, http.MethodPut, path, WithBody(in))
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ToggleUserActive flips the active flag of an account.
func (c *Client) ToggleUserActive(ctx context.Context, id ID) (*User, error) {
	path, err := resourcePath("/api/users/%s/toggle-active", id)
	if err != nil {
		return nil, c.errors.Unknown(err)
	}
	u, err := Request[User](ctx, c, http.MethodPatch, path)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id ID) error {
	path, err := resourcePath("/api/users/%s", id)
	if err != nil {
		return c.errors.Unknown(err)
	}
	_, err = Request[struct{}](ctx, c, http.MethodDelete, path)
	return err
}
