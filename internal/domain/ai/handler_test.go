package ai

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func postJSON(t *testing.T, handler echo.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func newTestHandler(completer Completer) *Handler {
	return NewHandler(NewService(&mockHistory{messages: dialogHistory()}, completer))
}

func TestTranslateHandler(t *testing.T) {
	h := newTestHandler(&mockCompleter{reply: "Desde ayer"})

	rec := postJSON(t, h.Translate, "/ai/translate",
		`{"dialog_id":"dlg-1","message_id":"m3","language":"Spanish"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["translation"] != "Desde ayer" {
		t.Errorf("unexpected response %v", resp)
	}
}

func TestTranslateHandler_UnsupportedLanguage(t *testing.T) {
	h := newTestHandler(&mockCompleter{})

	rec := postJSON(t, h.Translate, "/ai/translate",
		`{"dialog_id":"dlg-1","message_id":"m3","language":"Klingon"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "body/language Invalid property") {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestTranslateHandler_MissingDialog(t *testing.T) {
	h := newTestHandler(&mockCompleter{})

	rec := postJSON(t, h.Translate, "/ai/translate",
		`{"message_id":"m3","language":"Spanish"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTranslateHandler_MessageNotFound(t *testing.T) {
	h := newTestHandler(&mockCompleter{})

	rec := postJSON(t, h.Translate, "/ai/translate",
		`{"dialog_id":"dlg-1","message_id":"missing","language":"Spanish"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestQuickAnswerHandler(t *testing.T) {
	h := newTestHandler(&mockCompleter{reply: "Rest and hydrate."})

	rec := postJSON(t, h.QuickAnswer, "/ai/quick-answer",
		`{"dialog_id":"dlg-1","message_id":"m3"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["answer"] != "Rest and hydrate." {
		t.Errorf("unexpected response %v", resp)
	}
}

func TestQuickAnswerHandler_MissingMessage(t *testing.T) {
	h := newTestHandler(&mockCompleter{})

	rec := postJSON(t, h.QuickAnswer, "/ai/quick-answer", `{"dialog_id":"dlg-1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRegisterRoutes_FeatureFlags(t *testing.T) {
	e := echo.New()
	h := newTestHandler(&mockCompleter{})
	h.RegisterRoutes(e.Group(""), true, false)

	registered := make(map[string]bool)
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}
	if !registered["POST /ai/translate"] {
		t.Error("expected translate route registered")
	}
	if registered["POST /ai/quick-answer"] {
		t.Error("quick answer route must honor its flag")
	}
}
