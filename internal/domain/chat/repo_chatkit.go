package chat

import (
	"context"

	"github.com/teleconsult/teleconsult/internal/platform/chatkit"
)

// History reads a dialog's message history.
type History interface {
	Messages(ctx context.Context, dialogID string, limit, skip int) ([]Message, error)
}

// ChatKitRepo reads message history from the messaging provider and resolves
// attachment URLs against its content store.
type ChatKitRepo struct {
	client *chatkit.Client
}

func NewChatKitRepo(client *chatkit.Client) *ChatKitRepo {
	return &ChatKitRepo{client: client}
}

func (r *ChatKitRepo) Messages(ctx context.Context, dialogID string, limit, skip int) ([]Message, error) {
	var envelope struct {
		Items []Message `json:"items"`
	}
	if err := r.client.Dialogs.Messages(ctx, dialogID, limit, skip, &envelope); err != nil {
		return nil, err
	}
	return envelope.Items, nil
}

// AttachmentURL resolves an attachment uid to its download URL.
func (r *ChatKitRepo) AttachmentURL(uid string) string {
	return r.client.Content.PrivateURL(uid)
}
