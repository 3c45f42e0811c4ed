package appointment

import "context"

// User is the subset of the provider's user profile the service needs.
type User struct {
	ID   string
	Tags []string
}

// HasTag reports whether the user carries the given account tag.
func (u *User) HasTag(tag string) bool {
	for _, t := range u.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Directory looks up user profiles.
type Directory interface {
	// GetUserByID returns the user, or (nil, nil) when no such user exists.
	GetUserByID(ctx context.Context, id string) (*User, error)
}

// Store reads and mutates appointments and their consultation records.
type Store interface {
	GetAppointment(ctx context.Context, id string) (*Appointment, error)
	UpdateAppointment(ctx context.Context, id string, patch map[string]interface{}) (*Appointment, error)
	// UpdateRecordsByAppointment patches every record belonging to the
	// appointment.
	UpdateRecordsByAppointment(ctx context.Context, appointmentID string, patch map[string]interface{}) error
}

// DialogUpdater grows a dialog's occupant list.
type DialogUpdater interface {
	AddOccupants(ctx context.Context, dialogID string, userIDs ...string) error
}
