package instance

import (
	"os"

	"github.com/angelmondragon/daypass-backend/pkg/env"
)

// GetID identifies this API process in logs. Falls back to the hostname, then "local".
func GetID() string {
	if id := env.First("DAYPASS_INSTANCE_ID", "DYNO"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
