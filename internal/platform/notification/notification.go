// Package notification delivers in-chat system notifications. Notifications
// ride the provider's chat transport as system-typed messages; recipients'
// clients react to the extension payload rather than showing message text.
package notification

import (
	"context"

	"github.com/rs/zerolog"
)

// TypeAppointment marks notifications caused by an appointment change.
const TypeAppointment = "appointment"

// SystemMessenger sends a system message to a chat address.
type SystemMessenger interface {
	SendSystemMessage(to string, extension map[string]string) error
	Close() error
}

// AppointmentChange describes an appointment update to announce.
type AppointmentChange struct {
	AppointmentID  string
	PrevProviderID string
	NewProviderID  string
	ClientID       string

	// ActorID and Token identify the authenticated user the notification is
	// sent as. The actor never notifies themselves.
	ActorID string
	Token   string
}

// Notifier fans appointment notifications out to affected users.
type Notifier struct {
	connect func(ctx context.Context, userID, token string) (SystemMessenger, error)
	jid     func(userID string) string
	logger  zerolog.Logger
}

// New builds a Notifier. connect opens a chat connection as a given user and
// jid resolves a user id to its chat address.
func New(
	connect func(ctx context.Context, userID, token string) (SystemMessenger, error),
	jid func(userID string) string,
	logger zerolog.Logger,
) *Notifier {
	return &Notifier{connect: connect, jid: jid, logger: logger}
}

// Recipients returns ids with empty values, the actor and duplicates removed,
// preserving first-occurrence order.
func Recipients(actorID string, ids ...string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || id == actorID || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// AppointmentUpdated notifies everyone affected by an appointment change: the
// previous provider, the new provider and the client, minus the actor.
// Delivery is best effort; failures are logged and never propagated.
func (n *Notifier) AppointmentUpdated(ctx context.Context, change AppointmentChange) {
	recipients := Recipients(change.ActorID, change.PrevProviderID, change.NewProviderID, change.ClientID)
	if len(recipients) == 0 {
		return
	}

	conn, err := n.connect(ctx, change.ActorID, change.Token)
	if err != nil {
		n.logger.Error().Err(err).
			Str("appointment_id", change.AppointmentID).
			Msg("connect chat for notification")
		return
	}
	defer conn.Close()

	extension := map[string]string{
		"notification_type": TypeAppointment,
		"appointment_id":    change.AppointmentID,
	}
	for _, userID := range recipients {
		if err := conn.SendSystemMessage(n.jid(userID), extension); err != nil {
			n.logger.Error().Err(err).
				Str("appointment_id", change.AppointmentID).
				Str("recipient", userID).
				Msg("send appointment notification")
		}
	}
}
