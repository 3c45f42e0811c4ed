// Package ai provides the assistant features offered on consultation chats:
// message translation and suggested quick answers.
package ai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/teleconsult/teleconsult/internal/domain/chat"
)

// ErrMessageNotFound indicates the referenced message is not in the dialog's
// recent history.
var ErrMessageNotFound = errors.New("message not found")

// historyWindow is how far back in a dialog the assistant looks.
const historyWindow = 100

type Service struct {
	history   chat.History
	completer Completer
}

func NewService(history chat.History, completer Completer) *Service {
	return &Service{history: history, completer: completer}
}

// Translate renders a dialog message in the requested language.
func (s *Service) Translate(ctx context.Context, dialogID, messageID, language string) (string, error) {
	msg, _, err := s.findMessage(ctx, dialogID, messageID)
	if err != nil {
		return "", err
	}

	return s.completer.Complete(ctx, []Message{
		{Role: openai.ChatMessageRoleSystem, Content: translatePrompt(language)},
		{Role: openai.ChatMessageRoleUser, Content: msg.Body},
	})
}

// QuickAnswer drafts a reply to a dialog message on the provider's behalf.
// The conversation up to and including the message is given to the model,
// with the message's sender as the user side.
func (s *Service) QuickAnswer(ctx context.Context, dialogID, messageID string) (string, error) {
	target, history, err := s.findMessage(ctx, dialogID, messageID)
	if err != nil {
		return "", err
	}

	conversation := []Message{{Role: openai.ChatMessageRoleSystem, Content: quickAnswerPrompt}}
	for _, msg := range history {
		if msg.Body == "" {
			continue
		}
		role := openai.ChatMessageRoleAssistant
		if msg.SenderID == target.SenderID {
			role = openai.ChatMessageRoleUser
		}
		conversation = append(conversation, Message{Role: role, Content: msg.Body})
		if msg.ID == target.ID {
			break
		}
	}

	return s.completer.Complete(ctx, conversation)
}

// findMessage locates a message in the dialog's recent history and returns
// it together with the history window it came from.
func (s *Service) findMessage(ctx context.Context, dialogID, messageID string) (*chat.Message, []chat.Message, error) {
	messages, err := s.history.Messages(ctx, dialogID, historyWindow, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("load dialog history: %w", err)
	}
	for i := range messages {
		if messages[i].ID == messageID {
			return &messages[i], messages, nil
		}
	}
	return nil, nil, ErrMessageNotFound
}
