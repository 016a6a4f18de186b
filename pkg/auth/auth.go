package auth

import (
	"crypto/subtle"
	"errors"
	"github.com/tfindley/prometheus-teams-webhook-forwarder/pkg/config"
)

var ErrUnauthorized = errors.New("unauthorized")

// Authorize checks the inbound Authorization header against the route secret.
// Routes without a secret accept any request.
func Authorize(route config.Route, header string) error {
	if route.Auth == nil {
		return nil
	}

	expected := "Bearer " + *route.Auth
	if subtle.ConstantTimeCompare([]byte(header), []byte(expected)) != 1 {
		return ErrUnauthorized
	}

	return nil
}
