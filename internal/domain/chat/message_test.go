package chat

import (
	"strings"
	"testing"
)

func TestAttachment_Kind(t *testing.T) {
	cases := []struct {
		contentType string
		want        AttachmentKind
	}{
		{"image/png", KindImage},
		{"image", KindImage},
		{"video/mp4", KindVideo},
		{"audio/ogg", KindAudio},
		{"application/pdf", KindFile},
		{"", KindFile},
	}
	for _, tc := range cases {
		if got := (Attachment{Type: tc.contentType}).Kind(); got != tc.want {
			t.Errorf("Kind(%q) = %q, want %q", tc.contentType, got, tc.want)
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	cases := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
		{1 << 40, "1.0 TB"},
		{1 << 50, "1.0 PB"},
		{1 << 62, "4.0 EB"},
	}
	for _, tc := range cases {
		if got := FormatFileSize(tc.size); got != tc.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tc.size, got, tc.want)
		}
	}
}

func urlFor(uid string) string { return "https://cdn.test/" + uid }

func TestBuildView_TextMessage(t *testing.T) {
	msg := Message{
		ID:       "m1",
		SenderID: "client-1",
		Body:     "hello",
		DateSent: 1716200000,
	}
	flags := AssistFlags{Translate: true, QuickAnswer: true}

	v := BuildView(msg, "prov-1", flags, urlFor)
	if v.Mine {
		t.Error("message from another user must not be mine")
	}
	if v.BodyHTML != "hello" {
		t.Errorf("unexpected body %q", v.BodyHTML)
	}
	if !v.CanTranslate || !v.CanQuickAnswer {
		t.Error("assist actions expected on the other party's text message")
	}
	if v.SentAt.Unix() != 1716200000 {
		t.Errorf("unexpected sent time %v", v.SentAt)
	}
}

func TestBuildView_OwnMessageHasNoAssist(t *testing.T) {
	msg := Message{ID: "m1", SenderID: "prov-1", Body: "hi", DateSent: 1}
	flags := AssistFlags{Translate: true, QuickAnswer: true}

	v := BuildView(msg, "prov-1", flags, urlFor)
	if !v.Mine {
		t.Error("expected own message")
	}
	if v.CanTranslate || v.CanQuickAnswer {
		t.Error("assist actions must not appear on own messages")
	}
}

func TestBuildView_AssistDisabledByFlags(t *testing.T) {
	msg := Message{ID: "m1", SenderID: "client-1", Body: "hi", DateSent: 1}

	v := BuildView(msg, "prov-1", AssistFlags{}, urlFor)
	if v.CanTranslate || v.CanQuickAnswer {
		t.Error("assist actions must honor the feature flags")
	}
}

func TestBuildView_ImageAttachment(t *testing.T) {
	msg := Message{
		ID:       "m2",
		SenderID: "client-1",
		DateSent: 1,
		Attachments: []Attachment{
			{UID: "blob-1", Type: "image/jpeg", Name: "photo.jpg", Size: 1000},
		},
	}

	v := BuildView(msg, "prov-1", AssistFlags{}, urlFor)
	if v.BodyHTML != "" {
		t.Error("attachment messages render no body")
	}
	if len(v.Attachments) != 1 {
		t.Fatalf("expected one attachment, got %d", len(v.Attachments))
	}
	a := v.Attachments[0]
	if a.Kind != KindImage || a.URL != "https://cdn.test/blob-1" {
		t.Errorf("unexpected attachment %+v", a)
	}
	if a.Name != "" || a.Size != "" {
		t.Error("media attachments do not carry name or size")
	}
}

func TestBuildView_GenericFileAttachment(t *testing.T) {
	msg := Message{
		ID:       "m3",
		SenderID: "client-1",
		DateSent: 1,
		Attachments: []Attachment{
			{UID: "blob-2", Type: "application/pdf", Name: "results.pdf", Size: 2048},
		},
	}

	v := BuildView(msg, "prov-1", AssistFlags{}, urlFor)
	a := v.Attachments[0]
	if a.Kind != KindFile {
		t.Fatalf("expected file kind, got %q", a.Kind)
	}
	if a.Name != "results.pdf" || a.Size != "2.0 KB" {
		t.Errorf("unexpected file attachment %+v", a)
	}
}

func TestBuildView_OversizedAttachment(t *testing.T) {
	msg := Message{
		ID:       "m6",
		SenderID: "client-1",
		DateSent: 1,
		Attachments: []Attachment{
			{UID: "blob-4", Type: "application/octet-stream", Name: "export.tar", Size: 1 << 50},
		},
	}

	v := BuildView(msg, "prov-1", AssistFlags{}, urlFor)
	if got := v.Attachments[0].Size; got != "1.0 PB" {
		t.Errorf("unexpected size label %q", got)
	}
}

func TestBuildView_AttachmentMessageHasNoAssist(t *testing.T) {
	msg := Message{
		ID:          "m4",
		SenderID:    "client-1",
		DateSent:    1,
		Attachments: []Attachment{{UID: "blob-3", Type: "image/png"}},
	}
	flags := AssistFlags{Translate: true, QuickAnswer: true}

	v := BuildView(msg, "prov-1", flags, urlFor)
	if v.CanTranslate || v.CanQuickAnswer {
		t.Error("assist actions require message text")
	}
}

func TestBuildView_AutolinksBody(t *testing.T) {
	msg := Message{ID: "m5", SenderID: "client-1", Body: "see https://example.com/x", DateSent: 1}

	v := BuildView(msg, "prov-1", AssistFlags{}, urlFor)
	if !strings.Contains(v.BodyHTML, `<a href="https://example.com/x"`) {
		t.Errorf("expected autolinked body, got %q", v.BodyHTML)
	}
}
