package models

// AuthUser is the authenticated principal resolved from a bearer token. Users
// live in the identity provider; nothing here is persisted.
type AuthUser struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

// ParticipantName picks the label recorded on an attempt: an explicit name
// wins, then the user's display name, then their email.
func ParticipantName(given string, user *AuthUser) string {
	if given != "" {
		return given
	}
	if user != nil {
		if user.DisplayName != "" {
			return user.DisplayName
		}
		if user.Email != "" {
			return user.Email
		}
	}
	return AnonymousParticipant
}
