package session

// Profile is the user information stored alongside the token.
type Profile struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// Session is a snapshot of the authenticated user.
type Session struct {
	AccessToken string
	Profile     Profile
}

// Role returns the parsed role of the session.
func (s *Session) Role() Role {
	if s == nil {
		return RoleNone
	}
	return ParseRole(s.Profile.Role)
}
