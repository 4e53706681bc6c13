// Package queue defines message payloads exchanged over the message broker
// and the publisher that delivers them.
package queue

// Auth event types published to the auth.events queue.
const (
    EventUserRegistered = "user.registered"
    EventUserLogin      = "user.login"
    EventUserLogout     = "user.logout"
)

// AuthEvent is published when a user registers, logs in or logs out. It
// contains enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type AuthEvent struct {
    Type     string `json:"type"`
    Username string `json:"username,omitempty"`
    At       string `json:"at"`
}
