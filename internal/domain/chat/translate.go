package chat

import "sync"

// Languages a message can be translated into.
var Languages = []string{
	"English",
	"Spanish",
	"Ukrainian",
	"French",
	"Arabic",
	"Hindi",
	"Chinese",
}

// IsSupportedLanguage reports whether translation into language is offered.
func IsSupportedLanguage(language string) bool {
	for _, l := range Languages {
		if l == language {
			return true
		}
	}
	return false
}

// TranslationState tracks translations of a single message. Completed
// translations are cached per language; re-selecting a cached language
// switches the display without another request.
type TranslationState struct {
	mu           sync.Mutex
	language     string
	translations map[string]string
	showOriginal bool
}

func NewTranslationState() *TranslationState {
	return &TranslationState{translations: make(map[string]string)}
}

// Select picks a target language and reports whether a translation request
// is needed. A cached language is displayed immediately.
func (s *TranslationState) Select(language string) (needsFetch bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = language
	s.showOriginal = false
	_, cached := s.translations[language]
	return !cached
}

// Apply stores a completed translation and displays it.
func (s *TranslationState) Apply(language, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.translations[language] = text
	s.language = language
	s.showOriginal = false
}

// Fail reverts the selection after a failed translation request, so the
// original text stays visible.
func (s *TranslationState) Fail(language string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.language == language {
		if _, cached := s.translations[language]; !cached {
			s.showOriginal = true
		}
	}
}

// ToggleOriginal flips between the original text and the last translation.
func (s *TranslationState) ToggleOriginal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showOriginal = !s.showOriginal
}

// Displayed returns the text to render for the message.
func (s *TranslationState) Displayed(original string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.showOriginal {
		return original
	}
	if text, ok := s.translations[s.language]; ok {
		return text
	}
	return original
}

// Translated reports whether a translation is currently displayed.
func (s *TranslationState) Translated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.showOriginal {
		return false
	}
	_, ok := s.translations[s.language]
	return ok
}
