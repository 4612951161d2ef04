package redis

// Storage key layout. The values are JSON strings: a whole-array document of
// account records and a single-object session slot. The v1 suffix versions
// the wire format.
const (
	usersKey   = "auth.users.v1"
	sessionKey = "auth.session.v1"
)
