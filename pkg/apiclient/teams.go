package apiclient

import (
	"context"
	"net/http"
)

// ListTeams returns the teams of the tenant.
func (c *Client) ListTeams(ctx context.Context) ([]Team, error) {
	list, err := Request[[]Team](ctx, c, http.MethodGet, "/api/teams")
	if err != nil {
		return nil, err
	}
	return orEmpty(list), nil
}

// CreateTeam creates a team.
func (c *Client) CreateTeam(ctx context.Context, in TeamInput) (*Team, error) {
	team, err := Request[Team](ctx, c, http.MethodPost, "/api/teams", WithBody(in))
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// AddTeamMember adds a user to a team.
func (c *Client) AddTeamMember(ctx context.Context, teamID, userID ID) (*Team, error) {
	path, err := resourcePath("/api/teams/%s/members", teamID)
	if err != nil {
		return nil, c.errors.Unknown(err)
	}
	if userID == "" {
		return nil, c.errors.Unknown(ErrMissingID)
	}
	team, err := Request[Team](ctx, c, http.MethodPost, path, WithBody(map[string]ID{"user_id": userID}))
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// RemoveTeamMember removes a user from a team.
func (c *Client) RemoveTeamMember(ctx context.Context, teamID, userID ID) error {
	path, err := resourcePath("/api/teams/%s/members/%s", teamID, userID)
	if err != nil {
		return c.errors.Unknown(err)
	}
	_, err = Request[struct{}](ctx, c, http.MethodDelete, path)
	return err
}
