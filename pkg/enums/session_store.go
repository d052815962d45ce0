package enums

import "fmt"

// SessionStoreKind selects where browsing sessions and their carts are kept.
type SessionStoreKind string

const (
	SessionStoreMemory SessionStoreKind = "memory"
	SessionStoreRedis  SessionStoreKind = "redis"
)

var validSessionStoreKinds = []SessionStoreKind{
	SessionStoreMemory,
	SessionStoreRedis,
}

// String implements fmt.Stringer.
func (k SessionStoreKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known SessionStoreKind.
func (k SessionStoreKind) IsValid() bool {
	for _, candidate := range validSessionStoreKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseSessionStoreKind converts raw input into a SessionStoreKind.
func ParseSessionStoreKind(value string) (SessionStoreKind, error) {
	for _, candidate := range validSessionStoreKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid session store kind %q", value)
}
