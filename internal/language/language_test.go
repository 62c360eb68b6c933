package language_test

import (
	"testing"

	"mivideo/internal/language"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"en-US", "en-us"},
		{"EN-us", "en-us"},
		{"en_US", "en-us"},
		{" fr ", "fr"},
		{"", ""},
		{"x-unknown-thing", "x-unknown-thing"},
	}
	for _, tc := range cases {
		if got := language.Normalize(tc.input); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestSetContainsIsCaseInsensitive(t *testing.T) {
	set := language.NewSet("en-us", "FR")
	for _, tag := range []string{"en-US", "EN-US", "en-us", "fr", "FR"} {
		if !set.Contains(tag) {
			t.Errorf("expected set to contain %q", tag)
		}
	}
	if set.Contains("es") {
		t.Error("set should not contain es")
	}
}

func TestNilSetContainsNothing(t *testing.T) {
	var set *language.Set
	if set.Contains("en") {
		t.Fatal("nil set must not match")
	}
	if set.Len() != 0 {
		t.Fatal("nil set has zero length")
	}
}

func TestDefaultEnglishCoversDialects(t *testing.T) {
	set := language.DefaultEnglish()
	for _, tag := range []string{"en", "en-us", "en-GB", "en-za"} {
		if !set.Contains(tag) {
			t.Errorf("expected default set to contain %q", tag)
		}
	}
	if set.Contains("fr") {
		t.Error("default set should not contain fr")
	}
	if set.Len() != 13 {
		t.Errorf("expected 13 dialect tags, got %d", set.Len())
	}
}
