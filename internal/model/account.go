package model

import (
	"strconv"
	"strings"
	"time"
)

// Account is a stored credential record. The password itself is never
// persisted, only the hex digest of "salt:password".
//
// The JSON field names are the wire format of the auth.users.v1 storage key
// and must not change.
type Account struct {
	Email        string    `json:"email"` // normalized: trimmed, lowercased
	Salt         string    `json:"salt"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    UnixMilli `json:"createdAt"`
}

// Session is the single current-authenticated-identity record. At most one
// exists at a time; it is overwritten on login/signup and deleted on logout.
//
// The JSON field names are the wire format of the auth.session.v1 storage key.
type Session struct {
	Email         string    `json:"email"`
	EstablishedAt UnixMilli `json:"ts"`
}

// NormalizeEmail canonicalizes an email for use as the unique account key.
// Accounts are compared case-insensitively after trimming.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UnixMilli is a time.Time that marshals as integer milliseconds since the
// epoch, the Date.now() representation used in the stored records.
type UnixMilli struct {
	time.Time
}

// NewUnixMilli truncates t to millisecond precision so a record round-trips
// through storage unchanged.
func NewUnixMilli(t time.Time) UnixMilli {
	return UnixMilli{time.UnixMilli(t.UnixMilli()).UTC()}
}

// MarshalJSON encodes the time as epoch milliseconds.
func (t UnixMilli) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}

// UnmarshalJSON decodes epoch milliseconds.
func (t *UnixMilli) UnmarshalJSON(data []byte) error {
	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return ErrMalformedRecord
	}
	t.Time = time.UnixMilli(ms).UTC()
	return nil
}
