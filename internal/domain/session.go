package domain

// Session is the per-visitor state carried in the signed session cookie.
// The zero value is the anonymous session. SignatureID is only ever set
// alongside UserID: a signature always belongs to an authenticated session.
type Session struct {
	UserID      int64
	SignatureID int64
}

// Authenticated reports whether the session belongs to a logged-in user.
func (s Session) Authenticated() bool {
	return s.UserID != 0
}

// Signed reports whether the session's user has a recorded signature.
func (s Session) Signed() bool {
	return s.SignatureID != 0
}
