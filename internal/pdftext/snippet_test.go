package pdftext

import (
	"testing"
	"unicode/utf8"
)

func TestSnippet_Window(t *testing.T) {
	text := "AAAAA Heartland Payroll BBBBB"
	got := Snippet(text, "heartland payroll", 5)

	// 5 chars before the match, the matched phrase, 5 chars after.
	want := "AAAA Heartland Payroll BBBB"
	if got != want {
		t.Errorf("Snippet = %q, want %q", got, want)
	}
}

func TestSnippet_ClampedAtStart(t *testing.T) {
	text := "Heartland Payroll rollout announced"
	got := Snippet(text, "heartland payroll", 10)
	want := "Heartland Payroll rollout a"
	if got != want {
		t.Errorf("Snippet = %q, want %q", got, want)
	}
}

func TestSnippet_ClampedAtEnd(t *testing.T) {
	text := "selected Heartland Payroll"
	got := Snippet(text, "heartland payroll", 100)
	if got != text {
		t.Errorf("Snippet = %q, want the whole text %q", got, text)
	}
}

func TestSnippet_KeywordAbsent(t *testing.T) {
	if got := Snippet("no relevant keywords here", "heartland payroll", 50); got != "" {
		t.Errorf("expected empty snippet, got %q", got)
	}
}

func TestSnippet_CaseInsensitive(t *testing.T) {
	text := "xx HEARTLAND PAYROLL yy"
	got := Snippet(text, "heartland payroll", 3)
	want := "xx HEARTLAND PAYROLL yy"
	if got != want {
		t.Errorf("Snippet = %q, want %q", got, want)
	}
}

func TestSnippet_EmptyInputs(t *testing.T) {
	if got := Snippet("", "heartland payroll", 10); got != "" {
		t.Errorf("expected empty snippet for empty text, got %q", got)
	}
	if got := Snippet("some text", "", 10); got != "" {
		t.Errorf("expected empty snippet for empty keyword, got %q", got)
	}
}

func TestSnippet_MultibyteContext(t *testing.T) {
	// Each é is two bytes but one character; the window must count
	// characters, not bytes.
	text := "ééééé Heartland Payroll x"
	got := Snippet(text, "heartland payroll", 3)
	want := "éé Heartland Payroll x"
	if got != want {
		t.Errorf("Snippet = %q, want %q", got, want)
	}
	if !utf8.ValidString(got) {
		t.Errorf("Snippet produced invalid UTF-8: %q", got)
	}
}

func TestSnippet_MultibyteNeverSplitsRunes(t *testing.T) {
	text := "日本語 Heartland Payroll 日本語テキスト"
	for context := 0; context <= 12; context++ {
		got := Snippet(text, "heartland payroll", context)
		if !utf8.ValidString(got) {
			t.Errorf("context=%d: invalid UTF-8 snippet %q", context, got)
		}
	}
}

func TestSnippet_ZeroContext(t *testing.T) {
	text := "aa Heartland Payroll bb"
	got := Snippet(text, "heartland payroll", 0)
	want := "Heartland Payroll"
	if got != want {
		t.Errorf("Snippet = %q, want %q", got, want)
	}
}
