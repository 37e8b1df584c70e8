package localstore

import (
	"context"
	"encoding/json"
	"strconv"

	"kw8/gym-app/internal/domain"
)

// RemoteEnabled reads the persisted backend flag; absent means false.
func (s *Store) RemoteEnabled(ctx context.Context) bool {
	v, ok := s.GetItem(ctx, KeyRemoteEnabled)
	if !ok {
		return false
	}
	enabled, err := strconv.ParseBool(v)
	return err == nil && enabled
}

func (s *Store) SetRemoteEnabled(ctx context.Context, enabled bool) {
	s.SetItem(ctx, KeyRemoteEnabled, strconv.FormatBool(enabled))
}

func cookiePreferencesKey(userID string) string {
	return cookiePreferencesPrefix + userID
}

func (s *Store) GetCookiePreferences(ctx context.Context, userID string) (domain.CookiePreferences, bool) {
	var prefs domain.CookiePreferences
	if !s.getJSON(ctx, cookiePreferencesKey(userID), &prefs) {
		return domain.CookiePreferences{}, false
	}
	return prefs, true
}

// SaveCookiePreferences stores prefs under the user's key. Essential cookies
// are always on.
func (s *Store) SaveCookiePreferences(ctx context.Context, prefs domain.CookiePreferences) domain.CookiePreferences {
	prefs.Essential = true
	prefs.SavedAt = s.now()
	s.setJSON(ctx, cookiePreferencesKey(prefs.UserID), prefs)
	return prefs
}

// GetAutoLogin returns the remembered login; expired records read as absent
// and are removed.
func (s *Store) GetAutoLogin(ctx context.Context) (domain.AutoLogin, bool) {
	var a domain.AutoLogin
	if !s.getJSON(ctx, KeyAutoLogin, &a) {
		return domain.AutoLogin{}, false
	}
	if a.Expired(s.now()) {
		s.RemoveItem(ctx, KeyAutoLogin)
		return domain.AutoLogin{}, false
	}
	return a, true
}

func (s *Store) SetAutoLogin(ctx context.Context, a domain.AutoLogin) {
	s.setJSON(ctx, KeyAutoLogin, a)
}

func (s *Store) ClearAutoLogin(ctx context.Context) {
	s.RemoveItem(ctx, KeyAutoLogin)
}

func (s *Store) getJSON(ctx context.Context, key string, dst any) bool {
	raw, ok := s.GetItem(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.log.Error(ctx, "malformed item", "key", key, "err", err)
		return false
	}
	return true
}

func (s *Store) setJSON(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.log.Error(ctx, "encode item", "key", key, "err", err)
		return
	}
	s.SetItem(ctx, key, string(b))
}
