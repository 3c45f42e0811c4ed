package appointment

import (
	"context"

	"github.com/teleconsult/teleconsult/internal/platform/chatkit"
)

// Object store classes holding consultation data.
const (
	classAppointment = "Appointment"
	classRecord      = "Record"
)

// ChatKitRepo backs the appointment domain with the messaging provider's
// user directory, custom-object store and dialog API.
type ChatKitRepo struct {
	client *chatkit.Client
}

func NewChatKitRepo(client *chatkit.Client) *ChatKitRepo {
	return &ChatKitRepo{client: client}
}

func (r *ChatKitRepo) GetUserByID(ctx context.Context, id string) (*User, error) {
	u, err := r.client.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return &User{ID: u.ID, Tags: u.UserTags}, nil
}

func (r *ChatKitRepo) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	var appt Appointment
	if err := r.client.Data.Get(ctx, classAppointment, id, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *ChatKitRepo) UpdateAppointment(ctx context.Context, id string, patch map[string]interface{}) (*Appointment, error) {
	var appt Appointment
	if err := r.client.Data.Update(ctx, classAppointment, id, patch, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *ChatKitRepo) UpdateRecordsByAppointment(ctx context.Context, appointmentID string, patch map[string]interface{}) error {
	criteria := map[string]string{"appointment_id": appointmentID}
	return r.client.Data.UpdateByCriteria(ctx, classRecord, criteria, patch)
}

func (r *ChatKitRepo) AddOccupants(ctx context.Context, dialogID string, userIDs ...string) error {
	return r.client.Dialogs.Update(ctx, dialogID, chatkit.DialogUpdate{
		PushAll: &chatkit.OccupantsPush{OccupantsIDs: userIDs},
	})
}
