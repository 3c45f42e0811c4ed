package chatkit

import (
	"context"
	"net/http"
)

// User is a directory entry. Role tags drive authorization decisions: a user
// may be assigned as a provider only when tagged "provider".
type User struct {
	ID       string   `json:"id"`
	FullName string   `json:"full_name,omitempty"`
	Email    string   `json:"email,omitempty"`
	UserTags []string `json:"user_tags,omitempty"`
}

// HasTag reports whether the user carries the given role tag.
func (u *User) HasTag(tag string) bool {
	for _, t := range u.UserTags {
		if t == tag {
			return true
		}
	}
	return false
}

// UsersService accesses the provider's user directory.
type UsersService struct {
	client *Client
}

type userEnvelope struct {
	User User `json:"user"`
}

// GetByID looks up a user. A missing user is (nil, nil), not an error.
func (s *UsersService) GetByID(ctx context.Context, id string) (*User, error) {
	var env userEnvelope
	err := s.client.do(ctx, http.MethodGet, "/users/"+id, nil, &env)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &env.User, nil
}
