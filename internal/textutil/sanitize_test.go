package textutil

import (
	"testing"
)

func TestSanitizeTerminalTextLeavesSafeInput(t *testing.T) {
	input := "第一章 It was a dark\tand stormy night."
	if got := SanitizeTerminalText(input); got != input {
		t.Fatalf("expected %q to remain untouched, got %q", input, got)
	}
}

func TestSanitizeTerminalTextReplacesControlSequences(t *testing.T) {
	input := "bad\x1b[31m\rline\x9bx"
	got := SanitizeTerminalText(input)
	if got != "bad?[31m line?x" {
		t.Fatalf("expected sanitized string \"bad?[31m line?x\", got %q", got)
	}
	if containsControl(got) {
		t.Fatalf("sanitized text should not contain control characters: %q", got)
	}
}

func TestSanitizeTerminalTextDropsBidiControls(t *testing.T) {
	input := "a" + string(rune(0x202E)) + "b" + string(rune(0x2067)) + "c" + string(rune(0xFEFF))
	if got := SanitizeTerminalText(input); got != "abc" {
		t.Fatalf("SanitizeTerminalText = %q, want %q", got, "abc")
	}
}

func TestSanitizeTerminalTextKeepsJoiners(t *testing.T) {
	input := "a" + string(rune(0x200D)) + "b"
	if got := SanitizeTerminalText(input); got != input {
		t.Fatalf("zero width joiner should survive, got %q", got)
	}
}

func containsControl(s string) bool {
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return true
		}
	}
	return false
}
