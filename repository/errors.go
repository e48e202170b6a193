package repository

import (
	"fmt"

	"keeper/utils"
)

// storeErr marks a MongoDB failure so callers can tell a backend outage
// apart from a bad request. Handlers answer it with 503.
func storeErr(msg string, err error) error {
	utils.TrackError("database")
	return fmt.Errorf("%s: %w: %w", msg, utils.ErrUpstreamUnavailable, err)
}
