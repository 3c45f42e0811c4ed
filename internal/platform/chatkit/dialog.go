package chatkit

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DialogService manages chat dialogs and their message history.
type DialogService struct {
	client *Client
}

// OccupantsPush appends user ids to a dialog's occupant list without
// duplicating ids already present.
type OccupantsPush struct {
	OccupantsIDs []string `json:"occupants_ids"`
}

// DialogUpdate is a partial dialog mutation.
type DialogUpdate struct {
	PushAll *OccupantsPush `json:"push_all,omitempty"`
	Name    string         `json:"name,omitempty"`
}

// Update applies a partial mutation to a dialog.
func (s *DialogService) Update(ctx context.Context, dialogID string, upd DialogUpdate) error {
	return s.client.do(ctx, http.MethodPut, "/dialogs/"+dialogID, upd, nil)
}

// Messages reads a page of a dialog's message history, newest last, into out.
func (s *DialogService) Messages(ctx context.Context, dialogID string, limit, skip int, out interface{}) error {
	q := url.Values{}
	q.Set("chat_dialog_id", dialogID)
	if limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", limit))
	}
	if skip > 0 {
		q.Set("skip", fmt.Sprintf("%d", skip))
	}
	return s.client.do(ctx, http.MethodGet, "/messages?"+q.Encode(), nil, out)
}

// UserJID is the deterministic chat address of a user: user id and app id
// joined at the chat host.
func (c *Client) UserJID(userID string) string {
	return fmt.Sprintf("%s-%s@%s", userID, c.cfg.AppID, c.chatHost())
}

func (c *Client) chatHost() string {
	host := c.cfg.ChatEndpoint
	if u, err := url.Parse(host); err == nil && u.Host != "" {
		host = u.Host
	}
	return strings.TrimPrefix(host, "ws.")
}
