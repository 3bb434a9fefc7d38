package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/hotelmanager/staffkit/core"
)

// UsersAPI is the staff administration surface.
type UsersAPI struct {
	client *Client
}

type ListUsersParams struct {
	Role   core.Role
	Active *bool
	Page   int
	Limit  int
}

func (p ListUsersParams) values() url.Values {
	q := url.Values{}
	if p.Role != "" {
		q.Set("rol", string(p.Role))
	}
	if p.Active != nil {
		q.Set("activo", strconv.FormatBool(*p.Active))
	}
	addPaging(q, p.Page, p.Limit)
	return q
}

type CreateUserRequest struct {
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Name     string    `json:"nombre"`
	Role     core.Role `json:"rol"`
}

// UpdateUserRequest is a partial update; nil fields are left untouched.
type UpdateUserRequest struct {
	Name   *string    `json:"nombre,omitempty"`
	Role   *core.Role `json:"rol,omitempty"`
	Active *bool      `json:"activo,omitempty"`
}

type UpdateProfileRequest struct {
	Name *string `json:"nombre,omitempty"`
}

func (u *UsersAPI) List(ctx context.Context, params ListUsersParams) ([]core.User, *core.Pagination, error) {
	var users []core.User
	page, err := u.client.get(ctx, "/users", params.values(), &users)
	if err != nil {
		return nil, nil, err
	}
	return users, page, nil
}

func (u *UsersAPI) Get(ctx context.Context, id string) (*core.User, error) {
	var user core.User
	if _, err := u.client.get(ctx, "/users/"+url.PathEscape(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UsersAPI) Create(ctx context.Context, req CreateUserRequest) (*core.User, error) {
	var user core.User
	if err := u.client.post(ctx, "/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UsersAPI) Update(ctx context.Context, id string, req UpdateUserRequest) (*core.User, error) {
	var user core.User
	if err := u.client.put(ctx, "/users/"+url.PathEscape(id), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UsersAPI) Delete(ctx context.Context, id string) error {
	return u.client.delete(ctx, "/users/"+url.PathEscape(id))
}

// Profile returns the calling user's own record.
func (u *UsersAPI) Profile(ctx context.Context) (*core.User, error) {
	var user core.User
	if _, err := u.client.get(ctx, "/users/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UsersAPI) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*core.User, error) {
	var user core.User
	if err := u.client.put(ctx, "/users/profile", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UsersAPI) Stats(ctx context.Context, id string) (*core.UserStats, error) {
	var stats core.UserStats
	if _, err := u.client.get(ctx, "/users/"+url.PathEscape(id)+"/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func addPaging(q url.Values, page, limit int) {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
}
