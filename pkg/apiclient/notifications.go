package apiclient

import (
	"context"
	"net/http"
)

// ListNotifications returns the notifications of the current user.
// Returns an empty list when the viewer may not see them.
func (c *Client) ListNotifications(ctx context.Context, unreadOnly bool) ([]Notification, error) {
	var opts []RequestOption
	if unreadOnly {
		opts = append(opts, WithQuery(map[string][]string{"unread": {"true"}}))
	}
	list, err := Request[[]Notification](ctx, c, http.MethodGet, "/api/notifications", opts...)
	if err != nil {
		if degraded(err) {
			return []Notification{}, nil
		}
		return nil, err
	}
	return orEmpty(list), nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id ID) error {
	path, err := resourcePath("/api/notifications/%s/read", id)
	if err != nil {
		return c.errors.Unknown(err)
	}
	_, err = Request[struct{}](ctx, c, http.MethodPost, path)
	return err
}

// MarkAllNotificationsRead marks every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	_, err := Request[struct{}](ctx, c, http.MethodPost, "/api/notifications/read-all")
	return err
}
