package domain

import "time"

// CookiePreferences are stored per user in the local store.
type CookiePreferences struct {
	UserID     string    `json:"userId"`
	Essential  bool      `json:"essential"`
	Statistics bool      `json:"statistics"`
	Marketing  bool      `json:"marketing"`
	SavedAt    time.Time `json:"savedAt"`
}

// AutoLogin remembers a user between sessions until ExpiresAt.
type AutoLogin struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (a *AutoLogin) Expired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && now.After(a.ExpiresAt)
}
