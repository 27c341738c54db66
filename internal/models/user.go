package models

// UserID is the canonical user identifier. Storage normalizes whatever form
// an id arrives in (raw string, row reference) into this type before the
// engine sees it.
type UserID string

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID UserID

	// Username is the display name of the user.
	Username string

	// Email is the user's email address (unique).
	Email string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

// UserInfo is the resolved display record attached to balance output.
// It is structured data: rendering ("You paid...", avatars) is the caller's
// concern.
type UserInfo struct {
	ID       UserID `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Info returns the display record for a user.
func (u *User) Info() UserInfo {
	return UserInfo{ID: u.ID, Username: u.Username, Email: u.Email}
}
