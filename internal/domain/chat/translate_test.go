package chat

import "testing"

func TestIsSupportedLanguage(t *testing.T) {
	for _, l := range Languages {
		if !IsSupportedLanguage(l) {
			t.Errorf("expected %q supported", l)
		}
	}
	if IsSupportedLanguage("Klingon") {
		t.Error("unexpected language accepted")
	}
}

func TestTranslationState_FetchThenDisplay(t *testing.T) {
	s := NewTranslationState()

	if !s.Select("Spanish") {
		t.Fatal("first selection must request a translation")
	}
	if s.Displayed("hello") != "hello" {
		t.Error("original shown until the translation arrives")
	}

	s.Apply("Spanish", "hola")
	if s.Displayed("hello") != "hola" {
		t.Error("translation shown after it arrives")
	}
	if !s.Translated() {
		t.Error("expected translated display state")
	}
}

func TestTranslationState_CachedLanguageNeedsNoFetch(t *testing.T) {
	s := NewTranslationState()
	s.Apply("Spanish", "hola")
	s.Apply("French", "salut")

	if s.Select("Spanish") {
		t.Error("cached language must not refetch")
	}
	if s.Displayed("hello") != "hola" {
		t.Error("cached translation shown on reselect")
	}
}

func TestTranslationState_ToggleOriginal(t *testing.T) {
	s := NewTranslationState()
	s.Apply("Spanish", "hola")

	s.ToggleOriginal()
	if s.Displayed("hello") != "hello" {
		t.Error("expected original after toggle")
	}
	if s.Translated() {
		t.Error("expected untranslated display state")
	}
	s.ToggleOriginal()
	if s.Displayed("hello") != "hola" {
		t.Error("expected translation after second toggle")
	}
}

func TestTranslationState_FailRevertsToOriginal(t *testing.T) {
	s := NewTranslationState()
	s.Select("Hindi")
	s.Fail("Hindi")

	if s.Displayed("hello") != "hello" {
		t.Error("expected original after failed translation")
	}
	if s.Translated() {
		t.Error("failed translation must not count as translated")
	}
}

func TestTranslationState_FailForSupersededLanguageIgnored(t *testing.T) {
	s := NewTranslationState()
	s.Select("Hindi")
	s.Apply("Spanish", "hola")
	s.Fail("Hindi")

	if s.Displayed("hello") != "hola" {
		t.Error("late failure of an abandoned request must not hide the translation")
	}
}
