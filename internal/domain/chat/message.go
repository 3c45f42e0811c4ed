// Package chat turns raw dialog messages into render models: attachment
// classification, autolinked HTML bodies, day grouping, and the client-side
// state machines for translation and quick answers.
package chat

import (
	"fmt"
	"strings"
	"time"
)

// Message is a chat message as stored by the messaging provider. DateSent is
// a unix timestamp in seconds.
type Message struct {
	ID          string       `json:"_id"`
	DialogID    string       `json:"chat_dialog_id"`
	SenderID    string       `json:"sender_id"`
	Body        string       `json:"message"`
	DateSent    int64        `json:"date_sent"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment is an uploaded blob referenced by a message.
type Attachment struct {
	UID  string `json:"uid"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	Size int64  `json:"size,omitempty"`
}

// AttachmentKind is how a renderer should present an attachment.
type AttachmentKind string

const (
	KindImage AttachmentKind = "image"
	KindVideo AttachmentKind = "video"
	KindAudio AttachmentKind = "audio"
	KindFile  AttachmentKind = "file"
)

// Kind classifies the attachment by its content type. Unrecognized types
// render as generic downloadable files.
func (a Attachment) Kind() AttachmentKind {
	switch {
	case strings.Contains(a.Type, "image"):
		return KindImage
	case strings.Contains(a.Type, "video"):
		return KindVideo
	case strings.Contains(a.Type, "audio"):
		return KindAudio
	default:
		return KindFile
	}
}

// AttachmentView is the render model for one attachment.
type AttachmentView struct {
	Kind AttachmentKind `json:"kind"`
	URL  string         `json:"url"`
	Name string         `json:"name,omitempty"`
	Size string         `json:"size,omitempty"`
}

// View is the render model for one message.
type View struct {
	ID          string           `json:"id"`
	SenderID    string           `json:"sender_id"`
	Mine        bool             `json:"mine"`
	SentAt      time.Time        `json:"sent_at"`
	BodyHTML    string           `json:"body_html,omitempty"`
	Attachments []AttachmentView `json:"attachments,omitempty"`

	// Assist actions available on this message for the viewer.
	CanTranslate   bool `json:"can_translate"`
	CanQuickAnswer bool `json:"can_quick_answer"`
}

// AssistFlags gates the AI actions offered on messages.
type AssistFlags struct {
	Translate   bool
	QuickAnswer bool
}

// BuildView renders one message for a viewer. urlFor resolves attachment
// uids to download URLs. Assist actions only apply to the other party's
// messages: providers translate and quick-answer what the client wrote.
func BuildView(msg Message, viewerID string, flags AssistFlags, urlFor func(uid string) string) View {
	mine := msg.SenderID == viewerID
	v := View{
		ID:             msg.ID,
		SenderID:       msg.SenderID,
		Mine:           mine,
		SentAt:         time.Unix(msg.DateSent, 0).UTC(),
		CanTranslate:   flags.Translate && !mine && msg.Body != "",
		CanQuickAnswer: flags.QuickAnswer && !mine && msg.Body != "",
	}
	if len(msg.Attachments) > 0 {
		v.Attachments = make([]AttachmentView, 0, len(msg.Attachments))
		for _, a := range msg.Attachments {
			av := AttachmentView{Kind: a.Kind(), URL: urlFor(a.UID)}
			if av.Kind == KindFile {
				av.Name = a.Name
				av.Size = FormatFileSize(a.Size)
			}
			v.Attachments = append(v.Attachments, av)
		}
		return v
	}
	v.BodyHTML = Autolink(msg.Body)
	return v
}

// FormatFileSize renders a byte count for display, e.g. "2.5 MB".
func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	// "KMGTPE" covers the whole int64 range; exp tops out at E.
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
