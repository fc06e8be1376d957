package domain

import "time"

// Session is the client-side view of who is logged in.
// OriginalUser and OriginalToken are set only while an administrator is impersonating.
type Session struct {
	AccessToken   string     `json:"access_token,omitempty"`
	User          *User      `json:"user,omitempty"`
	OriginalToken string     `json:"original_access_token,omitempty"`
	OriginalUser  *User      `json:"original_user,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.AccessToken != ""
}

func (s *Session) IsImpersonating() bool {
	return s != nil && s.OriginalUser != nil
}

func (s *Session) IsExpired(reference time.Time) bool {
	if s == nil || s.ExpiresAt == nil {
		return false
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !s.ExpiresAt.After(reference)
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.User = s.User.Clone()
	out.OriginalUser = s.OriginalUser.Clone()
	if s.ExpiresAt != nil {
		exp := *s.ExpiresAt
		out.ExpiresAt = &exp
	}
	return &out
}

// Persisted state keys.
const (
	KeyAccessToken         = "accessToken"
	KeyUser                = "user"
	KeyOriginalAccessToken = "original_accessToken"
	KeyOriginalUser        = "original_user"
)

// SessionKeys lists every key the session manager owns.
var SessionKeys = []string{KeyAccessToken, KeyUser, KeyOriginalAccessToken, KeyOriginalUser}

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
